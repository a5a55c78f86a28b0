package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vgokul27/Recipe-API/internal/model"
	"github.com/vgokul27/Recipe-API/internal/search"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Recipe{}))
	return db
}

func f64(v float64) *float64 { return &v }

// recipe builds a test record; calories == "" leaves the nutrients entry
// absent entirely.
func recipe(title, cuisine string, rating, totalTime *float64, calories string) model.Recipe {
	nutrients := model.JSONBStringMap{}
	if calories != "" {
		nutrients["calories"] = calories
	}
	return model.Recipe{
		ID:        uuid.New(),
		Title:     title,
		Cuisine:   cuisine,
		Rating:    rating,
		TotalTime: totalTime,
		Nutrients: nutrients,
	}
}

func seed(t *testing.T, db *gorm.DB, recipes ...model.Recipe) {
	t.Helper()
	for i := range recipes {
		require.NoError(t, db.Create(&recipes[i]).Error)
	}
}

func titles(items []model.Recipe) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.Title
	}
	return out
}

func TestSearchTitleContainsIsCaseInsensitive(t *testing.T) {
	db := setupDB(t)
	seed(t, db,
		recipe("Apple Pie", "", f64(4.5), nil, ""),
		recipe("PIE night", "", f64(4.0), nil, ""),
		recipe("shepherd's pie", "", f64(3.5), nil, ""),
		recipe("Cake", "", f64(5.0), nil, ""),
	)

	svc := NewRecipeService(db)
	page, err := svc.Search(context.Background(), search.Filter{Title: "pie"}, 1, 15)
	require.NoError(t, err)

	assert.EqualValues(t, 3, page.Total)
	assert.Equal(t, []string{"Apple Pie", "PIE night", "shepherd's pie"}, titles(page.Items))
}

func TestSearchCuisineContains(t *testing.T) {
	db := setupDB(t)
	seed(t, db,
		recipe("Biryani", "South Indian", f64(4.7), nil, ""),
		recipe("Taco", "Mexican", f64(4.3), nil, ""),
	)

	svc := NewRecipeService(db)
	page, err := svc.Search(context.Background(), search.Filter{Cuisine: "indian"}, 1, 15)
	require.NoError(t, err)

	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, []string{"Biryani"}, titles(page.Items))
}

func TestSearchCombinedFilters(t *testing.T) {
	db := setupDB(t)
	seed(t, db,
		recipe("A", "", f64(4.8), f64(35), "380 kcal"),
		recipe("B", "", f64(4.2), f64(50), "600 kcal"),
		recipe("C", "", f64(4.9), f64(20), "none"),
	)

	filter, err := search.ParseFilter("", "", ">=4.5", "<=40", "<=400")
	require.NoError(t, err)

	svc := NewRecipeService(db)
	page, err := svc.Search(context.Background(), filter, 1, 15)
	require.NoError(t, err)

	// B fails rating and total_time; C survives both but has no
	// derivable calories value, so the calories stage drops it.
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, []string{"A"}, titles(page.Items))
}

func TestListOrdersByRatingDescendingAbsentLast(t *testing.T) {
	db := setupDB(t)

	tied1 := recipe("Tied First", "", f64(4.9), nil, "")
	tied1.ID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	tied2 := recipe("Tied Second", "", f64(4.9), nil, "")
	tied2.ID = uuid.MustParse("22222222-2222-2222-2222-222222222222")

	seed(t, db,
		recipe("Middling", "", f64(4.2), nil, ""),
		tied2,
		recipe("Unrated", "", nil, nil, ""),
		tied1,
	)

	svc := NewRecipeService(db)
	page, err := svc.List(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, []string{"Tied First", "Tied Second", "Middling", "Unrated"}, titles(page.Items))
}

func TestPaginationCompleteAndIdempotent(t *testing.T) {
	db := setupDB(t)
	for i := 0; i < 7; i++ {
		seed(t, db, recipe(fmt.Sprintf("Recipe %d", i), "", f64(4.0), nil, ""))
	}

	svc := NewRecipeService(db)

	collect := func() []string {
		var all []string
		for p := 1; p <= 3; p++ {
			page, err := svc.List(context.Background(), p, 3)
			require.NoError(t, err)
			assert.EqualValues(t, 7, page.Total)
			assert.Equal(t, 3, page.TotalPages)
			assert.LessOrEqual(t, len(page.Items), 3)
			for _, r := range page.Items {
				all = append(all, r.ID.String())
			}
		}
		return all
	}

	first := collect()
	assert.Len(t, first, 7)

	unique := map[string]bool{}
	for _, id := range first {
		unique[id] = true
	}
	assert.Len(t, unique, 7, "pages must not overlap or omit records")

	// identical requests against an unchanged store repeat the ordering
	assert.Equal(t, first, collect())
}

func TestPageBeyondLastReturnsEmpty(t *testing.T) {
	db := setupDB(t)
	seed(t, db,
		recipe("One", "", f64(4.0), nil, ""),
		recipe("Two", "", f64(3.0), nil, ""),
	)

	svc := NewRecipeService(db)
	page, err := svc.List(context.Background(), 5, 10)
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 5, page.Page)
}

func TestSearchDerivedPath(t *testing.T) {
	db := setupDB(t)
	seed(t, db,
		recipe("Light", "", f64(4.0), nil, "120 kcal"),
		recipe("Heavy", "", f64(4.5), nil, "900 kcal"),
		recipe("Unknown", "", f64(3.0), nil, ""),
	)

	filter, err := search.ParseFilter("", "", "", "", "<=200")
	require.NoError(t, err)

	svc := NewRecipeService(db)
	page, err := svc.Search(context.Background(), filter, 1, 15)
	require.NoError(t, err)

	// Heavy exceeds the bound; Unknown has no derivable calories value
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, []string{"Light"}, titles(page.Items))
}

func TestSearchDerivedPathPagination(t *testing.T) {
	db := setupDB(t)
	for i := 0; i < 5; i++ {
		seed(t, db, recipe(fmt.Sprintf("Meal %d", i), "", f64(4.0), nil, "300 kcal"))
	}
	seed(t, db, recipe("Feast", "", f64(5.0), nil, "1200 kcal"))

	filter, err := search.ParseFilter("", "", "", "", "<500")
	require.NoError(t, err)

	svc := NewRecipeService(db)

	page, err := svc.Search(context.Background(), filter, 3, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 1)

	beyond, err := svc.Search(context.Background(), filter, 4, 2)
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.EqualValues(t, 5, beyond.Total)
}

func TestNewResultPage(t *testing.T) {
	page := NewResultPage(nil, 31, 2, 10)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 31, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 4, page.TotalPages)
}
