package api

import (
	"github.com/vgokul27/Recipe-API/internal/model"
	"github.com/vgokul27/Recipe-API/internal/service"
)

// RecipeListResponse is the envelope returned by both read endpoints.
type RecipeListResponse struct {
	Success    bool           `json:"success"`
	Count      int            `json:"count"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	Data       []model.Recipe `json:"data"`
}

// ErrorResponse is the envelope returned on any failure.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func newListResponse(page service.ResultPage) RecipeListResponse {
	return RecipeListResponse{
		Success:    true,
		Count:      len(page.Items),
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
		Data:       page.Items,
	}
}
