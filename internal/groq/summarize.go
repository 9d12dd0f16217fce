package groq

import (
	"context"
	"encoding/json"
	"strings"
)

// EntrySummary is the strict JSON shape the model is asked to return.
type EntrySummary struct {
	Summary string `json:"summary"`
	Tone    string `json:"tone"`
}

const summarySystemPrompt = "You are a reflective journaling assistant. " +
	"Given a journal entry, output ONLY valid JSON of the form " +
	`{"summary":"one or two sentences","tone":"one word"}. No other text.`

// SummarizeEntry asks the model for a short summary and a one-word tone.
// Any response that does not match the expected shape yields nil, nil:
// AI enrichment is best-effort and the caller shows nothing on mismatch.
func (c *Client) SummarizeEntry(ctx context.Context, text string, temperature float32) (*EntrySummary, error) {
	content, err := c.Chat(ctx, ChatRequest{
		Messages: []map[string]string{
			{"role": "system", "content": summarySystemPrompt},
			{"role": "user", "content": text},
		},
		MaxTokens:   300,
		Temperature: temperature,
	})
	if err != nil {
		return nil, err
	}

	var out EntrySummary
	if err := json.Unmarshal([]byte(stripFences(content)), &out); err != nil {
		return nil, nil
	}
	if out.Summary == "" {
		return nil, nil
	}
	return &out, nil
}

const feedbackSystemPrompt = "You are an encouraging learning coach. " +
	"Given a list of recent journal reflections, reply with two or three " +
	"sentences of supportive, specific feedback. Plain text only."

// WeeklyFeedback asks the model for encouragement over recent entry texts.
func (c *Client) WeeklyFeedback(ctx context.Context, texts []string, temperature float32) (string, error) {
	return c.Chat(ctx, ChatRequest{
		Messages: []map[string]string{
			{"role": "system", "content": feedbackSystemPrompt},
			{"role": "user", "content": strings.Join(texts, "\n---\n")},
		},
		MaxTokens:   300,
		Temperature: temperature,
	})
}

// stripFences drops a markdown code fence if the model wrapped its JSON anyway.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
