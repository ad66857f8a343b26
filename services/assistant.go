package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"study-planner-api/config"
	"study-planner-api/models"
)

const (
	notesSummaryPrompt = "You are an AI tutor. Summarize and extract key study points from the provided text."
	goalPlannerPrompt  = "You are a goal planner AI that creates small, time-bound study goals based on topics and deadlines."

	// maxNotesChars bounds how much of an uploaded note is sent for extraction.
	maxNotesChars = 30000

	extractTokens  = 600
	scheduleTokens = 1000
)

const schedulePlannerPrompt = `You are an expert AI study planner.
Your task is to create a personalized study schedule for a student based on their preferences and upcoming exams.

Analyze and plan according to these rules:
1. Hard subjects should appear more frequently but with shorter sessions.
2. Easy subjects should appear fewer times but for longer sessions.
3. Morning learners: focus heavy topics early.
4. Evening/night learners: keep focus subjects after warmup sessions.
5. If studyType = "continuous", group 2-3 goals together.
6. If studyType = "breaks", insert short 10-15 min rest intervals.
7. Prioritize subjects by how soon their exams are.

Return the output as structured JSON:
{
  "sessions": [
    {
      "date": "YYYY-MM-DD",
      "time": "HH:MM",
      "duration": "X hours",
      "topic": "Goal title",
      "subject": "Subject name"
    }
  ],
  "summary": "A short motivational line."
}`

// ChatClient is satisfied by *openai.Client.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Assistant forwards chat, summarisation and planning prompts to an
// OpenAI-compatible API.
type Assistant struct {
	client    ChatClient
	model     string
	maxTokens int
	cache     *CacheService
	cacheTTL  time.Duration
}

// NewAssistant builds an assistant from configuration. Without an API key
// the assistant is disabled and every call returns ErrMissingAPIKey.
func NewAssistant(cfg *config.Config, cache *CacheService) *Assistant {
	var client ChatClient
	if cfg.HasAPIKey() {
		clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
		if cfg.OpenAIBaseURL != "" {
			clientCfg.BaseURL = cfg.OpenAIBaseURL
		}
		client = openai.NewClientWithConfig(clientCfg)
	}
	return NewAssistantWithClient(client, cfg.OpenAIModel, cfg.AIMaxTokens, cache, cfg.CacheTTL)
}

func NewAssistantWithClient(client ChatClient, model string, maxTokens int, cache *CacheService, cacheTTL time.Duration) *Assistant {
	if model == "" {
		model = openai.GPT4oMini
	}
	if maxTokens <= 0 {
		maxTokens = 800
	}
	return &Assistant{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// Enabled reports whether an API key is configured.
func (a *Assistant) Enabled() bool {
	return a.client != nil
}

// Chat forwards messages as-is and returns the provider's response.
func (a *Assistant) Chat(ctx context.Context, messages []models.ChatMessage, maxTokens int) (*openai.ChatCompletionResponse, error) {
	if maxTokens <= 0 {
		maxTokens = a.maxTokens
	}
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return a.complete(ctx, openai.ChatCompletionRequest{
		Model:               a.model,
		Messages:            chatMessages,
		MaxCompletionTokens: maxTokens,
	})
}

// SummarizeNotes returns key study points for uploaded notes. Results are
// cached by content hash.
func (a *Assistant) SummarizeNotes(ctx context.Context, notes string) (string, error) {
	sum := sha256.Sum256([]byte(notes))
	cacheKey := "summary:" + hex.EncodeToString(sum[:])
	if a.cache != nil {
		if cached, found := a.cache.GetString(cacheKey); found {
			return cached, nil
		}
	}

	summary, err := a.text(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: notesSummaryPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Here are the notes:\n\n" + notes},
		},
		MaxCompletionTokens: a.maxTokens,
	})
	if err != nil {
		return "", err
	}

	if a.cache != nil {
		a.cache.Set(cacheKey, summary, a.cacheTTL)
	}
	return summary, nil
}

// SuggestGoals asks for free-text daily goals for the given topics.
func (a *Assistant) SuggestGoals(ctx context.Context, topics []string, examDate string) (string, error) {
	return a.text(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: goalPlannerPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(
				"Exam date: %s\nTopics: %s\nCreate small daily goals with estimated durations.",
				examDate, strings.Join(topics, ", "))},
		},
	})
}

// ExtractNotes asks for topics, a summary and suggested tasks. A reply
// that holds no JSON object comes back as {"raw": reply}.
func (a *Assistant) ExtractNotes(ctx context.Context, notes, prompt string) (map[string]any, error) {
	if prompt == "" {
		prompt = `You are a study assistant. Extract the key topics and a 4-line study plan from these notes. ` +
			`Return JSON: {"topics":[...],"summary":"...","suggested_tasks":[{ "title":"", "minutes":30}]}` +
			"\n\nNotes:\n" + truncateRunes(notes, maxNotesChars)
	}

	reply, err := a.text(ctx, openai.ChatCompletionRequest{
		Model:               a.model,
		Messages:            []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}},
		MaxCompletionTokens: extractTokens,
	})
	if err != nil {
		return nil, err
	}

	var parsed map[string]any
	if body, ok := outermostObject(reply); ok && json.Unmarshal([]byte(body), &parsed) == nil {
		return parsed, nil
	}
	return map[string]any{"raw": reply}, nil
}

// PlanSchedule asks the model for a seven-day schedule.
func (a *Assistant) PlanSchedule(ctx context.Context, goals []string, prefs map[string]any) (models.AISchedule, error) {
	prefsJSON, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return models.AISchedule{}, fmt.Errorf("failed to encode study preferences: %w", err)
	}

	reply, err := a.text(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: schedulePlannerPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(
				"Here are the student's current notes-based study goals:\n%s\n\nStudy preferences:\n%s\n\n"+
					"Generate a study schedule for the next 7 days. Use realistic session timings and durations.",
				strings.Join(goals, "\n"), prefsJSON)},
		},
		Temperature:         0.8,
		MaxCompletionTokens: scheduleTokens,
	})
	if err != nil {
		return models.AISchedule{}, err
	}
	return ParseAISchedule(reply), nil
}

// ParseAISchedule reads a model reply as a schedule. Replies that are not
// JSON become an empty session list with the reply as summary.
func ParseAISchedule(reply string) models.AISchedule {
	var schedule models.AISchedule
	if err := json.Unmarshal([]byte(reply), &schedule); err != nil {
		body, ok := outermostObject(reply)
		if !ok || json.Unmarshal([]byte(body), &schedule) != nil {
			log.Println("AI response was not JSON, fallback applied.")
			return models.AISchedule{Sessions: []models.AISession{}, Summary: reply}
		}
	}
	if schedule.Sessions == nil {
		schedule.Sessions = []models.AISession{}
	}
	return schedule
}

func (a *Assistant) text(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	resp, err := a.complete(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", &ErrInvalidResponse{Err: fmt.Errorf("no choices in response")}
	}
	return resp.Choices[0].Message.Content, nil
}

func (a *Assistant) complete(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	if a.client == nil {
		return nil, ErrMissingAPIKey
	}
	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	return &resp, nil
}

// outermostObject returns the text between the first '{' and the last '}'.
func outermostObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
