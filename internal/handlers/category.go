package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/quest-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/quest-tracker-api/internal/errors"
	"github.com/yukikurage/quest-tracker-api/internal/services"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories returns the category catalog
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		apierrors.StorageFailure(c)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTOs(categories))
}
