package models

import "time"

// OwnsEdge is the OWNS relationship User -> Quest. Keying on the quest id
// means a quest can never carry two owners. Both ends are foreign keys, so the
// database refuses an edge whose quest or user is gone.
type OwnsEdge struct {
	QuestID   string `gorm:"type:varchar(36);primarykey"`
	UserID    uint64 `gorm:"not null;index"`
	CreatedAt time.Time

	Quest Quest `gorm:"foreignKey:QuestID;constraint:OnDelete:CASCADE"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (OwnsEdge) TableName() string {
	return "owns_edges"
}

// CategorizedAsEdge is the CATEGORIZED_AS relationship Quest -> Category.
// Keying on the quest id means a quest can never carry two categories.
type CategorizedAsEdge struct {
	QuestID    string `gorm:"type:varchar(36);primarykey"`
	CategoryID uint64 `gorm:"not null;index"`
	CreatedAt  time.Time

	Quest    Quest    `gorm:"foreignKey:QuestID;constraint:OnDelete:CASCADE"`
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

func (CategorizedAsEdge) TableName() string {
	return "categorized_as_edges"
}
