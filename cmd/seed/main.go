package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/vgokul27/Recipe-API/config"
	"github.com/vgokul27/Recipe-API/internal/database"
	"github.com/vgokul27/Recipe-API/internal/model"
)

const batchSize = 500

// nullableNumber coerces every representation a dump may carry (number,
// numeric string, "NaN", null) into a present-or-absent float. Nothing
// non-finite ever reaches the store; comparisons rely on that.
type nullableNumber struct {
	value *float64
}

func (n *nullableNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	n.value = &v
	return nil
}

// rawRecipe mirrors one entry of the source dump. Nutrient values are
// kept as the formatted display strings they ship as.
type rawRecipe struct {
	Title        string                     `json:"title"`
	Cuisine      string                     `json:"cuisine"`
	Rating       nullableNumber             `json:"rating"`
	PrepTime     nullableNumber             `json:"prep_time"`
	CookTime     nullableNumber             `json:"cook_time"`
	TotalTime    nullableNumber             `json:"total_time"`
	Description  string                     `json:"description"`
	Nutrients    map[string]json.RawMessage `json:"nutrients"`
	Serves       string                     `json:"serves"`
	Ingredients  []string                   `json:"ingredients"`
	Instructions []string                   `json:"instructions"`
	Continent    string                     `json:"continent"`
	Region       string                     `json:"region"`
	Country      string                     `json:"country"`
	URL          string                     `json:"url"`
}

func (r rawRecipe) toModel() model.Recipe {
	nutrients := make(model.JSONBStringMap, len(r.Nutrients))
	for name, raw := range r.Nutrients {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			// numeric or other non-string value; keep its literal text
			s = strings.TrimSpace(string(raw))
		}
		nutrients[name] = s
	}

	return model.Recipe{
		ID:           uuid.New(),
		Title:        r.Title,
		Cuisine:      r.Cuisine,
		Rating:       r.Rating.value,
		PrepTime:     r.PrepTime.value,
		CookTime:     r.CookTime.value,
		TotalTime:    r.TotalTime.value,
		Description:  r.Description,
		Nutrients:    nutrients,
		Serves:       r.Serves,
		Ingredients:  model.JSONBStringArray(r.Ingredients),
		Instructions: model.JSONBStringArray(r.Instructions),
		Continent:    r.Continent,
		Region:       r.Region,
		Country:      r.Country,
		URL:          r.URL,
	}
}

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <recipes.json>", os.Args[0])
	}
	path := os.Args[1]

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}

	records, err := decodeRecipes(data)
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", path, err)
	}

	recipes := make([]model.Recipe, 0, len(records))
	for _, r := range records {
		recipes = append(recipes, r.toModel())
	}

	if err := db.CreateInBatches(recipes, batchSize).Error; err != nil {
		log.Fatalf("Failed to insert recipes: %v", err)
	}

	log.Printf("Successfully seeded %d recipes", len(recipes))
}

// decodeRecipes accepts both dump layouts: a JSON array, or an object
// keyed by row index.
func decodeRecipes(data []byte) ([]rawRecipe, error) {
	var list []rawRecipe
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var keyed map[string]rawRecipe
	if err := json.Unmarshal(data, &keyed); err != nil {
		return nil, fmt.Errorf("expected an array or an index-keyed object of recipes: %w", err)
	}
	list = make([]rawRecipe, 0, len(keyed))
	for _, r := range keyed {
		list = append(list, r)
	}
	return list, nil
}
