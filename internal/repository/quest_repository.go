package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/quest-tracker-api/internal/database"
	"github.com/yukikurage/quest-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const questRecordColumns = "quests.id, quests.title, quests.due_to, quests.description, quests.state, categories.name AS category"

// GormQuestRepository is a GORM implementation of QuestRepository
type GormQuestRepository struct {
	db *gorm.DB
}

// NewQuestRepository creates a new QuestRepository
func NewQuestRepository(db *gorm.DB) QuestRepository {
	return &GormQuestRepository{db: db}
}

// Create writes the quest node and both of its edges in one transaction.
func (r *GormQuestRepository) Create(ctx context.Context, username string, quest *models.Quest, category models.CategoryName) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("username = ?", username).First(&owner).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOwnerNotFound
			}
			return fmt.Errorf("find owner: %w", err)
		}

		var cat models.Category
		if err := tx.Where("name = ?", category).First(&cat).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownCategory
			}
			return fmt.Errorf("find category: %w", err)
		}

		quest.State = models.QuestStateCurrent
		if err := tx.Create(quest).Error; err != nil {
			return translateQuestError("create quest", err)
		}

		if err := tx.Create(&models.OwnsEdge{QuestID: quest.ID, UserID: owner.ID}).Error; err != nil {
			return fmt.Errorf("create owns edge: %w", err)
		}

		if err := tx.Create(&models.CategorizedAsEdge{QuestID: quest.ID, CategoryID: cat.ID}).Error; err != nil {
			return fmt.Errorf("create categorized_as edge: %w", err)
		}

		return nil
	})
}

// TitleExists reports whether any quest, of any owner, uses title.
func (r *GormQuestRepository) TitleExists(ctx context.Context, title string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Quest{}).Where("title = ?", title).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count quests by title: %w", err)
	}
	return count > 0, nil
}

// ListOwned lists the owner's quests with their resolved category names.
func (r *GormQuestRepository) ListOwned(ctx context.Context, username, category string) ([]models.QuestRecord, error) {
	records := []models.QuestRecord{}
	err := r.db.WithContext(ctx).
		Scopes(database.QuestGraph, database.OwnedBy(username), database.InCategory(category)).
		Select(questRecordColumns).
		Order("quests.due_to ASC, quests.id ASC").
		Scan(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list quests: %w", err)
	}
	return records, nil
}

// FindOwned finds a single quest owned by username whose category edge resolves.
func (r *GormQuestRepository) FindOwned(ctx context.Context, username, id string) (*models.QuestRecord, error) {
	var record models.QuestRecord
	result := r.db.WithContext(ctx).
		Scopes(database.QuestGraph, database.OwnedBy(username)).
		Select(questRecordColumns).
		Where("quests.id = ?", id).
		Limit(1).
		Scan(&record)
	if result.Error != nil {
		return nil, fmt.Errorf("find quest: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &record, nil
}

// Update applies changes to an owned quest. Field updates and the category
// edge swap commit together, so readers never see zero or two category edges.
func (r *GormQuestRepository) Update(ctx context.Context, username, id string, changes QuestChanges) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireOwned(tx, username, id); err != nil {
			return err
		}
		if changes.IsEmpty() {
			return nil
		}

		columns := map[string]interface{}{}
		if changes.Title != nil {
			columns["title"] = *changes.Title
		}
		if changes.DueTo != nil {
			columns["due_to"] = *changes.DueTo
		}
		if changes.Description != nil {
			columns["description"] = *changes.Description
		}
		if len(columns) > 0 {
			if err := tx.Model(&models.Quest{}).Where("id = ?", id).Updates(columns).Error; err != nil {
				return translateQuestError("update quest", err)
			}
		}

		if changes.Category != nil {
			var cat models.Category
			if err := tx.Where("name = ?", *changes.Category).First(&cat).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrUnknownCategory
				}
				return fmt.Errorf("find category: %w", err)
			}

			if err := tx.Where("quest_id = ?", id).Delete(&models.CategorizedAsEdge{}).Error; err != nil {
				return fmt.Errorf("delete categorized_as edge: %w", err)
			}
			if err := tx.Create(&models.CategorizedAsEdge{QuestID: id, CategoryID: cat.ID}).Error; err != nil {
				return fmt.Errorf("create categorized_as edge: %w", err)
			}
		}

		return nil
	})
}

// Complete sets the owned quest's state to DONE. Completing a DONE quest succeeds.
func (r *GormQuestRepository) Complete(ctx context.Context, username, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireOwned(tx, username, id); err != nil {
			return err
		}

		if err := tx.Model(&models.Quest{}).Where("id = ?", id).Update("state", models.QuestStateDone).Error; err != nil {
			return fmt.Errorf("complete quest: %w", err)
		}
		return nil
	})
}

// Delete removes an owned quest with both incident edges. Ids that do not
// resolve to one of the caller's quests are ignored.
func (r *GormQuestRepository) Delete(ctx context.Context, username, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := requireOwned(tx, username, id)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Where("quest_id = ?", id).Delete(&models.CategorizedAsEdge{}).Error; err != nil {
			return fmt.Errorf("delete categorized_as edge: %w", err)
		}
		if err := tx.Where("quest_id = ?", id).Delete(&models.OwnsEdge{}).Error; err != nil {
			return fmt.Errorf("delete owns edge: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Quest{}).Error; err != nil {
			return fmt.Errorf("delete quest: %w", err)
		}
		return nil
	})
}

// requireOwned resolves id through the caller's OWNS edge inside tx and holds
// row locks on the quest, its edge and the owner until tx ends.
func requireOwned(tx *gorm.DB, username, id string) error {
	var ids []string
	err := tx.Scopes(database.QuestOwnership, database.OwnedBy(username)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("quests.id = ?", id).
		Limit(1).
		Pluck("quests.id", &ids).Error
	if err != nil {
		return fmt.Errorf("resolve quest owner: %w", err)
	}
	if len(ids) == 0 {
		return ErrNotFound
	}
	return nil
}

func translateQuestError(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateTitle
	}
	return fmt.Errorf("%s: %w", op, err)
}
