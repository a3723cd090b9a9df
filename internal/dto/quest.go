package dto

import (
	"time"

	"github.com/yukikurage/quest-tracker-api/internal/models"
	"github.com/yukikurage/quest-tracker-api/internal/services"
)

// QuestDTO represents a quest record in API responses
type QuestDTO struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	DueTo       time.Time           `json:"dueTo"`
	Description string              `json:"description"`
	State       models.QuestState   `json:"state"`
	Category    models.CategoryName `json:"category"`
}

// QuestDraftDTO represents an unsaved quest suggestion
type QuestDraftDTO struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueTo       *time.Time `json:"dueTo"`
	Category    string     `json:"category"`
}

// CategoryDTO represents an entry of the category catalog
type CategoryDTO struct {
	Name models.CategoryName `json:"name"`
}

// ToQuestDTO converts a QuestRecord to QuestDTO
func ToQuestDTO(record models.QuestRecord) QuestDTO {
	return QuestDTO{
		ID:          record.ID,
		Title:       record.Title,
		DueTo:       record.DueTo.UTC(),
		Description: record.Description,
		State:       record.State,
		Category:    record.Category,
	}
}

// ToQuestDTOs converts quest records, always yielding a non-nil slice
func ToQuestDTOs(records []models.QuestRecord) []QuestDTO {
	items := make([]QuestDTO, len(records))
	for i, record := range records {
		items[i] = ToQuestDTO(record)
	}
	return items
}

// ToQuestDraftDTOs converts suggestion drafts
func ToQuestDraftDTOs(drafts []services.QuestDraft) []QuestDraftDTO {
	items := make([]QuestDraftDTO, len(drafts))
	for i, draft := range drafts {
		items[i] = QuestDraftDTO{
			Title:       draft.Title,
			Description: draft.Description,
			DueTo:       draft.DueTo,
			Category:    draft.Category,
		}
	}
	return items
}

// ToCategoryDTOs converts catalog rows
func ToCategoryDTOs(categories []models.Category) []CategoryDTO {
	items := make([]CategoryDTO, len(categories))
	for i, category := range categories {
		items[i] = CategoryDTO{Name: category.Name}
	}
	return items
}
