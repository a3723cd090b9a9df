package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yukikurage/quest-tracker-api/internal/models"
)

var (
	// ErrNotFound is returned when a node does not exist or is not reachable from the caller.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicateTitle is returned when a quest title collides with an existing quest.
	ErrDuplicateTitle = errors.New("repository: duplicate quest title")
	// ErrUnknownCategory is returned when a category name has no node in the catalog.
	ErrUnknownCategory = errors.New("repository: unknown category")
	// ErrOwnerNotFound is returned when the owning user node does not exist.
	ErrOwnerNotFound = errors.New("repository: owner not found")
	// ErrUsernameTaken is returned when a username collides with an existing user.
	ErrUsernameTaken = errors.New("repository: username taken")
)

// QuestChanges is a partial quest update. Nil fields are left untouched.
type QuestChanges struct {
	Title       *string
	DueTo       *time.Time
	Description *string
	Category    *models.CategoryName
}

// IsEmpty reports whether no field is set.
func (c QuestChanges) IsEmpty() bool {
	return c.Title == nil && c.DueTo == nil && c.Description == nil && c.Category == nil
}

// QuestRepository defines the interface for quest graph access. Every
// caller-facing operation is scoped by the owner's username inside the query.
type QuestRepository interface {
	// Create writes the quest node, its OWNS edge and its CATEGORIZED_AS edge atomically
	Create(ctx context.Context, username string, quest *models.Quest, category models.CategoryName) error

	// TitleExists reports whether any quest already uses title
	TitleExists(ctx context.Context, title string) (bool, error)

	// ListOwned lists the owner's quests, optionally filtered by category name
	ListOwned(ctx context.Context, username, category string) ([]models.QuestRecord, error)

	// FindOwned finds a single quest owned by username
	FindOwned(ctx context.Context, username, id string) (*models.QuestRecord, error)

	// Update applies a partial update, swapping the category edge when requested
	Update(ctx context.Context, username, id string, changes QuestChanges) error

	// Complete moves the quest to DONE
	Complete(ctx context.Context, username, id string) error

	// Delete removes the quest node and its edges; absent quests are a no-op
	Delete(ctx context.Context, username, id string) error

	// Audit reports quests and edges that break the one-owner, one-category rule
	Audit(ctx context.Context) (*IntegrityReport, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// DeleteWithQuests deletes the user together with every owned quest and edge
	DeleteWithQuests(ctx context.Context, username string) error
}

// CategoryRepository defines read access to the category catalog
type CategoryRepository interface {
	// List returns every seeded category
	List(ctx context.Context) ([]models.Category, error)

	// FindByName finds a category node by name
	FindByName(ctx context.Context, name models.CategoryName) (*models.Category, error)
}
