package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/quest-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/quest-tracker-api/internal/errors"
	"github.com/yukikurage/quest-tracker-api/internal/middleware"
	"github.com/yukikurage/quest-tracker-api/internal/services"
	"github.com/yukikurage/quest-tracker-api/internal/utils"
)

type QuestHandler struct {
	questService *services.QuestService
}

func NewQuestHandler(questService *services.QuestService) *QuestHandler {
	return &QuestHandler{
		questService: questService,
	}
}

// CreateQuest creates a quest owned by the caller
func (h *QuestHandler) CreateQuest(c *gin.Context) {
	type CreateQuestRequest struct {
		Title       string `json:"title"`
		DueTo       string `json:"dueTo"`
		Category    string `json:"category"`
		Description string `json:"description"`
	}

	var req CreateQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	_, err := h.questService.CreateQuest(c.Request.Context(), middleware.GetUsername(c), services.CreateQuestInput{
		Title:       req.Title,
		DueTo:       req.DueTo,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		respondQuestError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Quest created successfully"})
}

// ListQuests returns the caller's quests
// Can filter by category
func (h *QuestHandler) ListQuests(c *gin.Context) {
	quests, err := h.questService.ListQuests(c.Request.Context(), middleware.GetUsername(c), c.Query("category"))
	if err != nil {
		respondQuestError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestDTOs(quests))
}

// GetQuest returns a single quest owned by the caller
func (h *QuestHandler) GetQuest(c *gin.Context) {
	quest, err := h.questService.GetQuest(c.Request.Context(), middleware.GetUsername(c), c.Param("id"))
	if err != nil {
		respondQuestError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestDTO(*quest))
}

// EditQuest applies a partial update. Omitted or null fields stay unchanged.
func (h *QuestHandler) EditQuest(c *gin.Context) {
	type EditQuestRequest struct {
		Title       utils.Optional[string] `json:"title"`
		DueTo       utils.Optional[string] `json:"dueTo"`
		Description utils.Optional[string] `json:"description"`
		Category    utils.Optional[string] `json:"category"`
	}

	var req EditQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.questService.UpdateQuest(c.Request.Context(), middleware.GetUsername(c), c.Param("id"), services.UpdateQuestInput{
		Title:       req.Title,
		DueTo:       req.DueTo,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		respondQuestError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Quest updated successfully"})
}

// CompleteQuest marks a quest as DONE
func (h *QuestHandler) CompleteQuest(c *gin.Context) {
	if err := h.questService.CompleteQuest(c.Request.Context(), middleware.GetUsername(c), c.Param("id")); err != nil {
		respondQuestError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Quest completed successfully"})
}

// DeleteQuest deletes a quest. Unknown ids also answer 200.
func (h *QuestHandler) DeleteQuest(c *gin.Context) {
	if err := h.questService.DeleteQuest(c.Request.Context(), middleware.GetUsername(c), c.Param("id")); err != nil {
		respondQuestError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Quest deleted successfully"})
}

// SuggestQuests drafts quests from free text using AI. Nothing is saved.
func (h *QuestHandler) SuggestQuests(c *gin.Context) {
	type SuggestQuestsRequest struct {
		Text string `json:"text"`
	}

	var req SuggestQuestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drafts, err := h.questService.SuggestQuests(c.Request.Context(), middleware.GetUsername(c), req.Text)
	if err != nil {
		respondQuestError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestDraftDTOs(drafts))
}

func respondQuestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		apierrors.Unauthorized(c, "")
	case errors.Is(err, services.ErrInvalidInput):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidDueDate):
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeInvalidDueDate, err.Error())
	case errors.Is(err, services.ErrDuplicateTitle):
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeDuplicateTitle, err.Error())
	case errors.Is(err, services.ErrQuestNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrSuggestionTextRequired),
		errors.Is(err, services.ErrNoValidSuggestions):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrSuggestionsUnavailable):
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
	default:
		slog.Error("quest request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		apierrors.StorageFailure(c)
	}
}
