package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestState string

const (
	QuestStateCurrent QuestState = "CURRENT"
	QuestStateDone    QuestState = "DONE"
)

// Quest is the quest node. Its owner and category live on edges, never on the node.
type Quest struct {
	ID          string     `gorm:"type:varchar(36);primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(30);uniqueIndex;not null" json:"title"`
	DueTo       time.Time  `gorm:"not null" json:"dueTo"`
	Description string     `gorm:"type:text" json:"description"`
	State       QuestState `gorm:"type:varchar(20);not null;default:'CURRENT'" json:"state"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate assigns the opaque datastore id.
func (q *Quest) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// QuestRecord is a quest node joined with its resolved category name.
type QuestRecord struct {
	ID          string
	Title       string
	DueTo       time.Time
	Description string
	State       QuestState
	Category    CategoryName
}
