package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vgokul27/Recipe-API/internal/middleware"
	"github.com/vgokul27/Recipe-API/internal/search"
	"github.com/vgokul27/Recipe-API/internal/service"
)

const (
	defaultListLimit   = 10
	defaultSearchLimit = 15
)

type RecipeHandler struct {
	service *service.RecipeService
	limiter *middleware.RateLimiter
}

// NewRecipeHandler creates the handler; limiter may be nil when Redis is
// not configured.
func NewRecipeHandler(svc *service.RecipeService, limiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		service: svc,
		limiter: limiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	if h.limiter != nil {
		recipes.Use(h.limiter.Middleware())
	}
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/search", h.SearchRecipes)
	}
}

// ListRecipes handles GET /recipes: the unfiltered catalog sorted by
// rating descending.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", defaultListLimit)

	result, err := h.service.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(result))
}

// SearchRecipes handles GET /recipes/search. All filters are optional and
// combinable; rating, total_time and calories accept an optional leading
// >=, <=, >, < or == operator.
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	filter, err := search.ParseFilter(
		c.Query("title"),
		c.Query("cuisine"),
		c.Query("rating"),
		c.Query("total_time"),
		c.Query("calories"),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", defaultSearchLimit)

	result, err := h.service.Search(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(result))
}

// respondError is the single transport-boundary mapping from the error
// taxonomy to status codes: malformed filter input is rejected with a
// 400, everything else is a store failure and becomes a uniform 500.
func respondError(c *gin.Context, err error) {
	var fieldErr *search.FieldError
	if errors.As(err, &fieldErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid search filter",
			Error:   fieldErr.Error(),
		})
		return
	}

	log.Printf("recipe query failed: %v", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Message: "Failed to fetch recipes",
		Error:   err.Error(),
	})
}

// intQuery reads a positive integer query parameter, falling back to the
// default when absent, non-numeric or below 1.
func intQuery(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 1 {
		return def
	}
	return v
}
