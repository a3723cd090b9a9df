package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/quest-tracker-api/internal/models"
	"github.com/yukikurage/quest-tracker-api/internal/repository"
	"github.com/yukikurage/quest-tracker-api/internal/utils"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrQuestNotFound  = errors.New("quest not found")
	ErrDuplicateTitle = errors.New("you already created a quest with this title")
)

// QuestService handles quest business logic. Each operation checks the caller
// identity, then validates input, then reaches the repository.
type QuestService struct {
	questRepo repository.QuestRepository
	drafter   QuestDrafter
	now       func() time.Time
}

// NewQuestService creates a new QuestService. drafter may be nil when
// suggestions are not configured.
func NewQuestService(questRepo repository.QuestRepository, drafter QuestDrafter) *QuestService {
	return &QuestService{
		questRepo: questRepo,
		drafter:   drafter,
		now:       time.Now,
	}
}

// CreateQuestInput represents input for creating a quest
type CreateQuestInput struct {
	Title       string
	DueTo       string
	Category    string
	Description string
}

// UpdateQuestInput represents a partial quest update. Only supplied fields change.
type UpdateQuestInput struct {
	Title       utils.Optional[string]
	DueTo       utils.Optional[string]
	Description utils.Optional[string]
	Category    utils.Optional[string]
}

// CreateQuest validates input and creates the quest with its owner and category edges.
func (s *QuestService) CreateQuest(ctx context.Context, username string, input CreateQuestInput) (*models.Quest, error) {
	if username == "" {
		return nil, ErrUnauthorized
	}

	if err := ValidateTitle(input.Title); err != nil {
		return nil, err
	}
	if err := ValidateCategory(input.Category); err != nil {
		return nil, err
	}

	dueTo, err := ParseDueDate(input.DueTo, s.now())
	if err != nil {
		return nil, err
	}

	exists, err := s.questRepo.TitleExists(ctx, input.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to check quest title: %w", err)
	}
	if exists {
		return nil, ErrDuplicateTitle
	}

	quest := &models.Quest{
		Title:       input.Title,
		DueTo:       dueTo,
		Description: input.Description,
	}

	if err := s.questRepo.Create(ctx, username, quest, models.CategoryName(input.Category)); err != nil {
		return nil, mapQuestError("create quest", err)
	}

	return quest, nil
}

// ListQuests returns the caller's quests, optionally filtered by category name
func (s *QuestService) ListQuests(ctx context.Context, username, category string) ([]models.QuestRecord, error) {
	if username == "" {
		return nil, ErrUnauthorized
	}

	quests, err := s.questRepo.ListOwned(ctx, username, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list quests: %w", err)
	}
	return quests, nil
}

// GetQuest returns one of the caller's quests
func (s *QuestService) GetQuest(ctx context.Context, username, id string) (*models.QuestRecord, error) {
	if username == "" {
		return nil, ErrUnauthorized
	}

	quest, err := s.questRepo.FindOwned(ctx, username, id)
	if err != nil {
		return nil, mapQuestError("find quest", err)
	}
	return quest, nil
}

// UpdateQuest validates the supplied fields and applies them to one of the caller's quests
func (s *QuestService) UpdateQuest(ctx context.Context, username, id string, input UpdateQuestInput) error {
	if username == "" {
		return ErrUnauthorized
	}

	var changes repository.QuestChanges

	if input.Title.Set {
		if err := ValidateTitle(input.Title.Value); err != nil {
			return err
		}
		changes.Title = input.Title.Ptr()
	}
	if input.DueTo.Set {
		dueTo, err := ParseDueDate(input.DueTo.Value, s.now())
		if err != nil {
			return err
		}
		changes.DueTo = &dueTo
	}
	if input.Description.Set {
		changes.Description = input.Description.Ptr()
	}
	if input.Category.Set {
		if err := ValidateCategory(input.Category.Value); err != nil {
			return err
		}
		category := models.CategoryName(input.Category.Value)
		changes.Category = &category
	}

	if err := s.questRepo.Update(ctx, username, id, changes); err != nil {
		return mapQuestError("update quest", err)
	}
	return nil
}

// CompleteQuest marks one of the caller's quests as DONE
func (s *QuestService) CompleteQuest(ctx context.Context, username, id string) error {
	if username == "" {
		return ErrUnauthorized
	}

	if err := s.questRepo.Complete(ctx, username, id); err != nil {
		return mapQuestError("complete quest", err)
	}
	return nil
}

// DeleteQuest deletes one of the caller's quests. Unknown ids succeed.
func (s *QuestService) DeleteQuest(ctx context.Context, username, id string) error {
	if username == "" {
		return ErrUnauthorized
	}

	if err := s.questRepo.Delete(ctx, username, id); err != nil {
		return fmt.Errorf("failed to delete quest: %w", err)
	}
	return nil
}

func mapQuestError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrQuestNotFound
	case errors.Is(err, repository.ErrDuplicateTitle):
		return ErrDuplicateTitle
	case errors.Is(err, repository.ErrUnknownCategory):
		return ErrInvalidInput
	case errors.Is(err, repository.ErrOwnerNotFound):
		// the session names a user that no longer exists
		return ErrUnauthorized
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}
