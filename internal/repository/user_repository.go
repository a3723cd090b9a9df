package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/quest-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// DeleteWithQuests removes the user node, every quest it owns and all edges
// incident to those quests in one transaction. Unknown users are a no-op.
func (r *GormUserRepository) DeleteWithQuests(ctx context.Context, username string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("username = ?", username).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("find user: %w", err)
		}

		var questIDs []string
		if err := tx.Model(&models.OwnsEdge{}).Where("user_id = ?", user.ID).Pluck("quest_id", &questIDs).Error; err != nil {
			return fmt.Errorf("list owned quests: %w", err)
		}

		if len(questIDs) > 0 {
			if err := tx.Where("quest_id IN ?", questIDs).Delete(&models.CategorizedAsEdge{}).Error; err != nil {
				return fmt.Errorf("delete categorized_as edges: %w", err)
			}
			if err := tx.Where("quest_id IN ?", questIDs).Delete(&models.OwnsEdge{}).Error; err != nil {
				return fmt.Errorf("delete owns edges: %w", err)
			}
			if err := tx.Where("id IN ?", questIDs).Delete(&models.Quest{}).Error; err != nil {
				return fmt.Errorf("delete quests: %w", err)
			}
		}

		if err := tx.Delete(&user).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}
