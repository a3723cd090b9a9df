package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/quest-tracker-api/internal/handlers"
	"github.com/yukikurage/quest-tracker-api/internal/middleware"
	"github.com/yukikurage/quest-tracker-api/internal/services"
)

// Deps holds everything the HTTP surface needs.
type Deps struct {
	AuthService     *services.AuthService
	QuestService    *services.QuestService
	CategoryService *services.CategoryService
	SessionStore    sessions.Store
	AllowedOrigins  []string
}

// New builds the Gin engine with every route registered.
func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	if len(deps.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     deps.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(middleware.Sessions(deps.SessionStore))

	authHandler := handlers.NewAuthHandler(deps.AuthService)
	questHandler := handlers.NewQuestHandler(deps.QuestService)
	categoryHandler := handlers.NewCategoryHandler(deps.CategoryService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Quest Tracker API is running",
		})
	})

	r.GET("/categories", categoryHandler.ListCategories)

	// User routes
	user := r.Group("/user")
	{
		user.POST("/register", authHandler.Register)
		user.POST("/login", authHandler.Login)
		user.POST("/logout", authHandler.Logout)
		user.DELETE("/delete", authHandler.DeleteAccount)
	}

	// Quest routes (protected)
	quests := r.Group("/quests")
	quests.Use(middleware.RequireAuth())
	{
		quests.GET("", questHandler.ListQuests)
		quests.POST("/new", questHandler.CreateQuest)
		quests.POST("/suggest", questHandler.SuggestQuests)
		quests.GET("/:id", questHandler.GetQuest)
		quests.PUT("/edit/:id", questHandler.EditQuest)
		quests.PUT("/done/:id", questHandler.CompleteQuest)
		quests.DELETE("/delete/:id", questHandler.DeleteQuest)
	}

	return r
}
