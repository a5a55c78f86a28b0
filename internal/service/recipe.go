package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vgokul27/Recipe-API/internal/model"
	"github.com/vgokul27/Recipe-API/internal/search"
)

// queryTimeout bounds every store round trip; a slow store surfaces as an
// error instead of hanging the request.
const queryTimeout = 5 * time.Second

// caloriesExpr derives a numeric calories value from the nutrients JSONB
// display string; NULL when no leading number can be extracted, so
// underivable records drop out of every calories comparison. Must stay
// in sync with search.CaloriesValue.
const caloriesExpr = `substring(btrim(coalesce(nutrients->>'calories', '')) from '^[0-9]+\.?[0-9]*')::numeric`

// recipeColumns is the projection used on the derived-calories path so
// the transient calories_value column never leaves the service.
const recipeColumns = "id, created_at, updated_at, title, cuisine, description, rating, prep_time, cook_time, total_time, nutrients, serves, ingredients, instructions, continent, region, country, url"

// ResultPage is one page of matching recipes plus paging metadata.
type ResultPage struct {
	Items      []model.Recipe
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// NewResultPage wraps raw records into the page shape. Page and limit are
// echoed back as given; an out-of-range page simply carries no items.
func NewResultPage(items []model.Recipe, total int64, page, limit int) ResultPage {
	if items == nil {
		items = []model.Recipe{}
	}
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return ResultPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// RecipeService runs catalog queries against the record store.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// List returns the unfiltered catalog sorted by rating descending.
func (s *RecipeService) List(ctx context.Context, page, limit int) (ResultPage, error) {
	return s.Search(ctx, search.Filter{}, page, limit)
}

// Search runs the composite filter and returns the requested page. A
// calories predicate cannot be evaluated as a plain WHERE clause, so its
// presence selects the two-stage derived-value path; everything else
// takes the direct path.
func (s *RecipeService) Search(ctx context.Context, f search.Filter, page, limit int) (ResultPage, error) {
	if f.NeedsDerived() {
		return s.searchDerived(ctx, f, page, limit)
	}
	return s.searchDirect(ctx, f, page, limit)
}

func (s *RecipeService) searchDirect(ctx context.Context, f search.Filter, page, limit int) (ResultPage, error) {
	cctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var total int64
	if err := s.filtered(cctx, f).Count(&total).Error; err != nil {
		return ResultPage{}, fmt.Errorf("count recipes: %w", err)
	}

	qctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var recipes []model.Recipe
	err := s.filtered(qctx, f).
		Order(s.orderClause()).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return ResultPage{}, fmt.Errorf("query recipes: %w", err)
	}

	return NewResultPage(recipes, total, page, limit), nil
}

func (s *RecipeService) searchDerived(ctx context.Context, f search.Filter, page, limit int) (ResultPage, error) {
	if s.db.Dialector.Name() != "postgres" {
		return s.searchDerivedFallback(ctx, f, page, limit)
	}

	cctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var total int64
	if err := s.derived(cctx, f).Count(&total).Error; err != nil {
		return ResultPage{}, fmt.Errorf("count recipes by calories: %w", err)
	}

	qctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var recipes []model.Recipe
	err := s.derived(qctx, f).
		Select(recipeColumns).
		Order(s.orderClause()).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return ResultPage{}, fmt.Errorf("query recipes by calories: %w", err)
	}

	return NewResultPage(recipes, total, page, limit), nil
}

// searchDerivedFallback runs the second reduction stage in-process for
// dialects without the JSONB derivation SQL. The first stage still runs
// in the store with the usual ordering, so paging semantics are shared
// with the Postgres path.
func (s *RecipeService) searchDerivedFallback(ctx context.Context, f search.Filter, page, limit int) (ResultPage, error) {
	qctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var candidates []model.Recipe
	if err := s.filtered(qctx, f).Order(s.orderClause()).Find(&candidates).Error; err != nil {
		return ResultPage{}, fmt.Errorf("query recipes: %w", err)
	}

	matched := make([]model.Recipe, 0, len(candidates))
	for _, r := range candidates {
		if v, ok := search.CaloriesValue(r.Nutrients["calories"]); ok && f.Calories.Matches(v) {
			matched = append(matched, r)
		}
	}

	total := int64(len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	return NewResultPage(matched[start:end], total, page, limit), nil
}

// filtered starts a fresh query with every non-derived condition applied.
// Each call builds its own statement so count and fetch never share
// state.
func (s *RecipeService) filtered(ctx context.Context, f search.Filter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&model.Recipe{})
	for _, c := range f.Conditions() {
		switch c.Kind {
		case search.KindContains:
			q = q.Where(fmt.Sprintf("LOWER(%s) LIKE ?", c.Field), "%"+strings.ToLower(c.Term)+"%")
		case search.KindCompare:
			q = q.Where(fmt.Sprintf("%s %s ?", c.Field, sqlOp(c.Pred.Op)), c.Pred.Value)
		case search.KindDerived:
			// evaluated by the derived execution path
		}
	}
	return q
}

// derived wraps the filtered rows in a subquery projecting the derived
// calories column and applies the calories predicate against it.
func (s *RecipeService) derived(ctx context.Context, f search.Filter) *gorm.DB {
	pred := f.Calories
	sub := s.filtered(ctx, f).Select("*, " + caloriesExpr + " AS calories_value")
	return s.db.WithContext(ctx).
		Table("(?) AS recipes", sub).
		Where(fmt.Sprintf("calories_value %s ?", sqlOp(pred.Op)), pred.Value)
}

// orderClause sorts by rating descending with absent ratings last, then
// by id for a stable page boundary on rating ties. Postgres needs NULLS
// LAST spelled out; SQLite already sorts NULLs last under DESC.
func (s *RecipeService) orderClause() string {
	if s.db.Dialector.Name() == "postgres" {
		return "rating DESC NULLS LAST, id ASC"
	}
	return "rating DESC, id ASC"
}

func sqlOp(op search.Op) string {
	if op == search.OpEq {
		return "="
	}
	return string(op)
}
