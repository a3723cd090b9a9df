package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/quest-tracker-api/internal/models"
	"github.com/yukikurage/quest-tracker-api/internal/repository"
)

// CategoryService exposes the read-only category catalog.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
