package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/quest-tracker-api/internal/config"
	"github.com/yukikurage/quest-tracker-api/internal/database"
	"github.com/yukikurage/quest-tracker-api/internal/middleware"
	"github.com/yukikurage/quest-tracker-api/internal/repository"
	"github.com/yukikurage/quest-tracker-api/internal/router"
	"github.com/yukikurage/quest-tracker-api/internal/services"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		Long: `Run migrations, start the scheduled integrity audit and serve the HTTP API.

Example:
  quest-tracker serve --config ./config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rootOpts)
		},
	}
}

func loadConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(newLogger(os.Stderr, cfg))
	return cfg, nil
}

func runServe(parentCtx context.Context, opts *RootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}

	store, err := middleware.NewSessionStore(cfg)
	if err != nil {
		return err
	}

	questRepo := repository.NewQuestRepository(db)

	// Initialize AI service
	var drafter services.QuestDrafter
	if cfg.OpenAIAPIKey != "" {
		drafter = services.NewAIService(cfg.OpenAIAPIKey)
	} else {
		slog.Info("OPENAI_API_KEY not set, quest suggestions disabled")
	}

	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	auditService := services.NewAuditService(questRepo)
	scheduler := services.NewSchedulerService(time.UTC)
	if _, err := scheduler.Schedule(cfg.AuditSchedule, func() {
		if _, err := auditService.Run(ctx); err != nil {
			slog.Error("scheduled audit failed", "error", err)
		}
	}); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := router.New(router.Deps{
		AuthService:     services.NewAuthService(repository.NewUserRepository(db)),
		QuestService:    services.NewQuestService(questRepo, drafter),
		CategoryService: services.NewCategoryService(repository.NewCategoryRepository(db)),
		SessionStore:    store,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
		case <-ctx.Done():
		}
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("server starting", "port", cfg.Port, "session_store", cfg.SessionStore)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
