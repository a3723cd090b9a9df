package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/quest-tracker-api/internal/config"
	"github.com/yukikurage/quest-tracker-api/internal/database"
	"github.com/yukikurage/quest-tracker-api/internal/middleware"
	"github.com/yukikurage/quest-tracker-api/internal/repository"
	"github.com/yukikurage/quest-tracker-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type handlerTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func openTestDB(t *testing.T) *gorm.DB {
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
	return db
}

// newTestRouter wires the handlers over db the way the server does.
func newTestRouter(db *gorm.DB, drafter services.QuestDrafter) *gin.Engine {
	gin.SetMode(gin.TestMode)

	authHandler := NewAuthHandler(services.NewAuthService(repository.NewUserRepository(db)))
	questHandler := NewQuestHandler(services.NewQuestService(repository.NewQuestRepository(db), drafter))
	categoryHandler := NewCategoryHandler(services.NewCategoryService(repository.NewCategoryRepository(db)))

	r := gin.New()
	r.Use(middleware.Sessions(testSessionStore()))

	r.GET("/categories", categoryHandler.ListCategories)
	r.POST("/user/register", authHandler.Register)
	r.POST("/user/login", authHandler.Login)
	r.POST("/user/logout", authHandler.Logout)
	r.DELETE("/user/delete", authHandler.DeleteAccount)

	quests := r.Group("/quests", middleware.RequireAuth())
	quests.GET("", questHandler.ListQuests)
	quests.POST("/new", questHandler.CreateQuest)
	quests.POST("/suggest", questHandler.SuggestQuests)
	quests.GET("/:id", questHandler.GetQuest)
	quests.PUT("/edit/:id", questHandler.EditQuest)
	quests.PUT("/done/:id", questHandler.CompleteQuest)
	quests.DELETE("/delete/:id", questHandler.DeleteQuest)

	return r
}

func testSessionStore() sessions.Store {
	store, err := middleware.NewSessionStore(&config.Config{SessionStore: "cookie", SessionSecret: "secret"})
	if err != nil {
		panic(err)
	}
	return store
}

func setupHandlerTestEnv(t *testing.T, drafter services.QuestDrafter) handlerTestEnv {
	t.Helper()
	db := openTestDB(t)
	return handlerTestEnv{db: db, router: newTestRouter(db, drafter)}
}

// do sends a JSON request, replaying cookies and returning the recorder.
func do(t *testing.T, r http.Handler, method, url string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, url, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// register creates a user and returns its session cookies.
func register(t *testing.T, r http.Handler, username, password string) []*http.Cookie {
	t.Helper()

	w := do(t, r, http.MethodPost, "/user/register", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
