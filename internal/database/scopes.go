package database

import (
	"gorm.io/gorm"
)

// QuestGraph joins a quest node to its owner and category through both edges.
// Quests missing either edge never match.
func QuestGraph(db *gorm.DB) *gorm.DB {
	return db.Table("quests").
		Joins("JOIN owns_edges ON owns_edges.quest_id = quests.id").
		Joins("JOIN users ON users.id = owns_edges.user_id").
		Joins("JOIN categorized_as_edges ON categorized_as_edges.quest_id = quests.id").
		Joins("JOIN categories ON categories.id = categorized_as_edges.category_id")
}

// OwnedBy restricts a quest query to quests reachable from username over OWNS.
// Callers must already have joined owns_edges and users.
func OwnedBy(username string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("users.username = ?", username)
	}
}

// InCategory filters by category name; an empty name leaves the query untouched.
func InCategory(name string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if name == "" {
			return db
		}
		return db.Where("categories.name = ?", name)
	}
}

// QuestOwnership joins a quest node to its owner only. Mutations resolve the
// target through this join so a foreign quest id never matches.
func QuestOwnership(db *gorm.DB) *gorm.DB {
	return db.Table("quests").
		Joins("JOIN owns_edges ON owns_edges.quest_id = quests.id").
		Joins("JOIN users ON users.id = owns_edges.user_id")
}
