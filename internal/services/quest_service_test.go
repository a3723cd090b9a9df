package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/quest-tracker-api/internal/database"
	"github.com/yukikurage/quest-tracker-api/internal/models"
	"github.com/yukikurage/quest-tracker-api/internal/repository"
	"github.com/yukikurage/quest-tracker-api/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type questTestEnv struct {
	db          *gorm.DB
	service     *QuestService
	authService *AuthService
	ctx         context.Context
}

func setupQuestTestEnv(t *testing.T, drafter QuestDrafter) questTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(database.SQLiteDSN(":memory:")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))

	env := questTestEnv{
		db:          db,
		service:     NewQuestService(repository.NewQuestRepository(db), drafter),
		authService: NewAuthService(repository.NewUserRepository(db)),
		ctx:         context.Background(),
	}

	_, err = env.authService.Register(env.ctx, CredentialsInput{Username: "alice1", Password: "Aa1!aaaa"})
	require.NoError(t, err)
	_, err = env.authService.Register(env.ctx, CredentialsInput{Username: "bob22", Password: "Bb2@bbbb"})
	require.NoError(t, err)

	return env
}

func tomorrow() string {
	return time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
}

func (env questTestEnv) questCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, env.db.Model(&models.Quest{}).Count(&count).Error)
	return count
}

// unreachableRepo fails the test through a nil-interface panic if any method is called.
type unreachableRepo struct {
	repository.QuestRepository
}

func TestQuestService_UnauthenticatedNeverReachesStorage(t *testing.T) {
	service := NewQuestService(unreachableRepo{}, nil)
	ctx := context.Background()

	// invalid input on purpose: the identity check must win
	_, err := service.CreateQuest(ctx, "", CreateQuestInput{Title: "", Category: "NOPE"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = service.ListQuests(ctx, "", "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = service.GetQuest(ctx, "", "id")
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = service.UpdateQuest(ctx, "", "id", UpdateQuestInput{Title: utils.Some("")})
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.ErrorIs(t, service.CompleteQuest(ctx, "", "id"), ErrUnauthorized)
	assert.ErrorIs(t, service.DeleteQuest(ctx, "", "id"), ErrUnauthorized)

	_, err = service.SuggestQuests(ctx, "", "text")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestQuestService_InvalidInputNeverReachesStorage(t *testing.T) {
	service := NewQuestService(unreachableRepo{}, nil)
	ctx := context.Background()

	_, err := service.CreateQuest(ctx, "alice1", CreateQuestInput{Title: "Buy milk", DueTo: tomorrow(), Category: "NOT_A_CATEGORY"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = service.UpdateQuest(ctx, "alice1", "id", UpdateQuestInput{DueTo: utils.Some("2000-01-01T00:00:00Z")})
	assert.ErrorIs(t, err, ErrInvalidDueDate)

	err = service.UpdateQuest(ctx, "alice1", "id", UpdateQuestInput{Category: utils.Some("")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestQuestService_CreateValidationOrder(t *testing.T) {
	env := setupQuestTestEnv(t, nil)

	// title and category failures win over a bad due date
	_, err := env.service.CreateQuest(env.ctx, "alice1", CreateQuestInput{Title: "", DueTo: "garbage", Category: "HOME"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.service.CreateQuest(env.ctx, "alice1", CreateQuestInput{Title: "Buy milk", DueTo: "garbage", Category: "NOT_A_CATEGORY"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.service.CreateQuest(env.ctx, "alice1", CreateQuestInput{Title: "Buy milk", DueTo: "2000-01-01T00:00:00Z", Category: "HOME"})
	assert.ErrorIs(t, err, ErrInvalidDueDate)

	assert.Equal(t, int64(0), env.questCount(t))
}

func TestQuestService_CreateAndRead(t *testing.T) {
	env := setupQuestTestEnv(t, nil)

	quest, err := env.service.CreateQuest(env.ctx, "alice1", CreateQuestInput{
		Title:       "Buy milk",
		DueTo:       tomorrow(),
		Category:    "HOME",
		Description: "two liters",
	})
	require.NoError(t, err)

	record, err := env.service.GetQuest(env.ctx, "alice1", quest.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", record.Title)
	assert.Equal(t, "two liters", record.Description)
	assert.Equal(t, models.QuestStateCurrent, record.State)
	assert.Equal(t, models.CategoryHome, record.Category)

	quests, err := env.service.ListQuests(env.ctx, "alice1", "")
	require.NoError(t, err)
	assert.Len(t, quests, 1)

	quests, err = env.service.ListQuests(env.ctx, "bob22", "")
	require.NoError(t, err)
	assert.Empty(t, quests)
}

func TestQuestService_WhitespaceTitleIsKept(t *testing.T) {
	env := setupQuestTestEnv(t, nil)

	quest, err := env.service.CreateQuest(env.ctx, "alice1", CreateQuestInput{Title: "   ", DueTo: tomorrow(), Category: "HOME"})
	require.NoError(t, err)

	record, err := env.service.GetQuest(env.ctx, "alice1", quest.ID)
	require.NoError(t, err)
	assert.Equal(t, "   ", record.Title)
}

func TestQuestService_DuplicateTitleAcrossUsers(t *testing.T) {
	env := setupQuestTestEnv(t, nil)

	_, err := env.service.CreateQuest(env.ctx, "alice1", CreateQuestInput{Title: "Buy milk", DueTo: tomorrow(), Category: "HOME"})
	require.NoError(t, err)

	_, err = env.service.CreateQuest(env.ctx, "bob22", CreateQuestInput{Title: "Buy milk", DueTo: tomorrow(), Category: "WORK"})
	assert.ErrorIs(t, err, ErrDuplicateTitle)
	assert.Equal(t, int64(1), env.questCount(t))
}

func TestQuestService_UpdateQuest(t *testing.T) {
	env := setupQuestTestEnv(t, nil)

	quest, err := env.service.CreateQuest(env.ctx, "alice1", CreateQuestInput{
		Title:       "Study Go",
		DueTo:       tomorrow(),
		Category:    "HOBBY",
		Description: "generics",
	})
	require.NoError(t, err)

	err = env.service.UpdateQuest(env.ctx, "alice1", quest.ID, UpdateQuestInput{
		Description: utils.Some(""),
		Category:    utils.Some("LEARNING"),
	})
	require.NoError(t, err)

	record, err := env.service.GetQuest(env.ctx, "alice1", quest.ID)
	require.NoError(t, err)
	assert.Equal(t, "Study Go", record.Title)
	assert.Equal(t, "", record.Description)
	assert.Equal(t, models.CategoryLearning, record.Category)

	err = env.service.UpdateQuest(env.ctx, "bob22", quest.ID, UpdateQuestInput{Title: utils.Some("Stolen")})
	assert.ErrorIs(t, err, ErrQuestNotFound)

	err = env.service.UpdateQuest(env.ctx, "alice1", "missing", UpdateQuestInput{})
	assert.ErrorIs(t, err, ErrQuestNotFound)
}

func TestQuestService_CompleteAndDelete(t *testing.T) {
	env := setupQuestTestEnv(t, nil)

	quest, err := env.service.CreateQuest(env.ctx, "alice1", CreateQuestInput{Title: "Water plants", DueTo: tomorrow(), Category: "HOME"})
	require.NoError(t, err)

	assert.ErrorIs(t, env.service.CompleteQuest(env.ctx, "bob22", quest.ID), ErrQuestNotFound)
	require.NoError(t, env.service.CompleteQuest(env.ctx, "alice1", quest.ID))
	require.NoError(t, env.service.CompleteQuest(env.ctx, "alice1", quest.ID))

	record, err := env.service.GetQuest(env.ctx, "alice1", quest.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuestStateDone, record.State)

	require.NoError(t, env.service.DeleteQuest(env.ctx, "bob22", quest.ID))
	_, err = env.service.GetQuest(env.ctx, "alice1", quest.ID)
	require.NoError(t, err)

	require.NoError(t, env.service.DeleteQuest(env.ctx, "alice1", quest.ID))
	_, err = env.service.GetQuest(env.ctx, "alice1", quest.ID)
	assert.ErrorIs(t, err, ErrQuestNotFound)

	require.NoError(t, env.service.DeleteQuest(env.ctx, "alice1", quest.ID))
}

func TestQuestService_DeletedOwnerIsUnauthorized(t *testing.T) {
	env := setupQuestTestEnv(t, nil)
	require.NoError(t, env.authService.DeleteAccount(env.ctx, "alice1"))

	_, err := env.service.CreateQuest(env.ctx, "alice1", CreateQuestInput{Title: "Ghost quest", DueTo: tomorrow(), Category: "HOME"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int64(0), env.questCount(t))
}

type fakeDrafter struct {
	drafts []QuestDraft
	err    error
}

func (f fakeDrafter) DraftQuests(ctx context.Context, text string) ([]QuestDraft, error) {
	return f.drafts, f.err
}

func TestQuestService_SuggestQuests(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	env := setupQuestTestEnv(t, fakeDrafter{drafts: []QuestDraft{
		{Title: " Dentist ", Category: "HEALTH", DueTo: &future},
		{Title: "Old deadline", Category: "WORK", DueTo: &past},
		{Title: "", Category: "WORK"},
		{Title: "Bad category", Category: "CHORES"},
	}})

	drafts, err := env.service.SuggestQuests(env.ctx, "alice1", "dentist tomorrow, report was due yesterday")
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "Dentist", drafts[0].Title)
	assert.NotNil(t, drafts[0].DueTo)
	assert.Nil(t, drafts[1].DueTo)

	// drafts are never persisted
	assert.Equal(t, int64(0), env.questCount(t))
}

func TestQuestService_SuggestQuestsErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewQuestService(unreachableRepo{}, nil).SuggestQuests(ctx, "alice1", "text")
	assert.ErrorIs(t, err, ErrSuggestionsUnavailable)

	_, err = NewQuestService(unreachableRepo{}, fakeDrafter{}).SuggestQuests(ctx, "alice1", "  ")
	assert.ErrorIs(t, err, ErrSuggestionTextRequired)

	_, err = NewQuestService(unreachableRepo{}, fakeDrafter{}).SuggestQuests(ctx, "alice1", "nothing to do")
	assert.ErrorIs(t, err, ErrNoValidSuggestions)

	boom := errors.New("upstream down")
	_, err = NewQuestService(unreachableRepo{}, fakeDrafter{err: boom}).SuggestQuests(ctx, "alice1", "text")
	assert.ErrorIs(t, err, boom)
}

func TestParseQuestDrafts(t *testing.T) {
	content := "```json\n[{\"title\":\"Run\",\"category\":\"HEALTH\",\"dueTo\":\"2030-01-01T00:00:00Z\"}]\n```"

	drafts, err := parseQuestDrafts(content)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Run", drafts[0].Title)
	require.NotNil(t, drafts[0].DueTo)
	assert.Equal(t, 2030, drafts[0].DueTo.Year())

	_, err = parseQuestDrafts("not json")
	assert.Error(t, err)
}
