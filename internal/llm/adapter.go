package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"booklingo/internal/apperr"
	"booklingo/internal/contextutil"
)

const adaptTemperature = 0.3

// Adaptation is the oracle's answer for one chunk.
type Adaptation struct {
	Content   string
	Reasoning string
}

// ChatClient is the subset of Client the adapter needs.
type ChatClient interface {
	ChatWithMessages(ctx context.Context, messages []Message, params ChatParams) (string, error)
}

// Adapter rewrites text for a learner at a given CEFR level.
type Adapter struct {
	client ChatClient
}

// NewAdapter creates a new adapter on top of a chat client.
func NewAdapter(client ChatClient) *Adapter {
	return &Adapter{client: client}
}

// Adapt rewrites text in targetLanguage at the requested level. Transport failures
// and unparsable replies are both reported with kind oracle.
func (a *Adapter) Adapt(ctx context.Context, text, level, targetLanguage string) (Adaptation, error) {
	const op = "llm.Adapt"
	logger := contextutil.LoggerFromContext(ctx)

	messages := []Message{
		{Role: "system", Content: adaptSystemPrompt(level, targetLanguage)},
		{Role: "user", Content: text},
	}

	reply, err := a.client.ChatWithMessages(ctx, messages, ChatParams{
		Temperature: adaptTemperature,
		JSON:        true,
	})
	if err != nil {
		return Adaptation{}, apperr.New(apperr.KindOracle, op, err)
	}

	adaptation, err := parseAdaptation(reply)
	if err != nil {
		logger.Warn("unparsable adaptation reply",
			"reply_len", len(reply),
			"error", err.Error(),
		)
		return Adaptation{}, apperr.New(apperr.KindOracle, op, err)
	}
	return adaptation, nil
}

func adaptSystemPrompt(level, targetLanguage string) string {
	return fmt.Sprintf(`You are an experienced %[1]s teacher and editor.
Rewrite the text you receive for a learner at CEFR level %[2]s.

Rules:
1. Write only in %[1]s.
2. Keep the plot, facts and order of events of the original.
3. Use vocabulary and grammar appropriate for level %[2]s.
4. Drop page numbers, running headers, footers and copyright notices.
5. Reply with a JSON object with exactly two fields:
   "reasoning": one or two sentences in English on what you changed,
   "adapted_text": the adapted %[1]s text.`, targetLanguage, level)
}

// parseAdaptation accepts the JSON reply, optionally wrapped in a markdown code fence.
// "content" and "text" are accepted in place of "adapted_text".
func parseAdaptation(reply string) (Adaptation, error) {
	cleaned := strings.TrimSpace(reply)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var parsed struct {
		Reasoning   string `json:"reasoning"`
		AdaptedText string `json:"adapted_text"`
		Content     string `json:"content"`
		Text        string `json:"text"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return Adaptation{}, fmt.Errorf("failed to parse adaptation: %w", err)
	}

	content := parsed.AdaptedText
	if content == "" {
		content = parsed.Content
	}
	if content == "" {
		content = parsed.Text
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return Adaptation{}, fmt.Errorf("adaptation reply has no adapted text")
	}

	reasoning := strings.TrimSpace(parsed.Reasoning)
	if reasoning == "" {
		reasoning = "No reasoning provided."
	}
	return Adaptation{Content: content, Reasoning: reasoning}, nil
}
