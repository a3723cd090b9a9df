package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/quest-tracker-api/internal/constants"
	"github.com/yukikurage/quest-tracker-api/internal/models"
)

var (
	ErrSuggestionsUnavailable = errors.New("quest suggestions are not configured")
	ErrSuggestionTextRequired = errors.New("text is required")
	ErrNoValidSuggestions     = errors.New("no valid quests could be drafted from the text")
)

// QuestDraft is an unsaved quest proposed from free text.
type QuestDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueTo       *time.Time `json:"dueTo"`
	Category    string     `json:"category"`
}

// QuestDrafter turns free text into quest drafts.
type QuestDrafter interface {
	DraftQuests(ctx context.Context, text string) ([]QuestDraft, error)
}

type AIService struct {
	client *openai.Client
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// DraftQuests asks OpenAI to extract quests from text
func (s *AIService) DraftQuests(ctx context.Context, text string) ([]QuestDraft, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	categories := make([]string, len(models.CategoryCatalog))
	for i, c := range models.CategoryCatalog {
		categories[i] = string(c)
	}

	currentTime := time.Now().UTC().Format(time.RFC3339)
	prompt := fmt.Sprintf(`You extract personal quests (tasks) from text.

Current time: %s

Text:
%s

Return a JSON array of quests in this shape:
[
  {
    "title": "short title, at most %d characters",
    "description": "details of the quest",
    "dueTo": "deadline in RFC3339, e.g. 2025-10-28T23:59:59Z",
    "category": "one of: %s"
  }
]

Rules:
- Return [] when the text contains no quests
- Convert relative deadlines ("tomorrow", "next week") to absolute timestamps
- Return JSON only, without any explanation`, currentTime, text, constants.MaxQuestTitleLength, strings.Join(categories, ", "))

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseQuestDrafts(resp.Choices[0].Message.Content)
}

// parseQuestDrafts decodes the model output, tolerating a markdown code fence.
func parseQuestDrafts(content string) ([]QuestDraft, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	var drafts []QuestDraft
	if err := json.Unmarshal([]byte(content), &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	return drafts, nil
}

// SuggestQuests drafts quests from text and keeps only drafts that would pass
// creation validation. Drafts are never persisted.
func (s *QuestService) SuggestQuests(ctx context.Context, username, text string) ([]QuestDraft, error) {
	if username == "" {
		return nil, ErrUnauthorized
	}
	if s.drafter == nil {
		return nil, ErrSuggestionsUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrSuggestionTextRequired
	}

	drafts, err := s.drafter.DraftQuests(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to draft quests: %w", err)
	}

	now := s.now()
	valid := make([]QuestDraft, 0, len(drafts))
	for _, draft := range drafts {
		if len(valid) == constants.MaxSuggestedQuests {
			break
		}
		draft.Title = strings.TrimSpace(draft.Title)
		if ValidateTitle(draft.Title) != nil || ValidateCategory(draft.Category) != nil {
			continue
		}
		if draft.DueTo != nil && !draft.DueTo.After(now) {
			draft.DueTo = nil
		}
		valid = append(valid, draft)
	}

	if len(valid) == 0 {
		return nil, ErrNoValidSuggestions
	}
	return valid, nil
}
