package model

import (
	"errors"
	"time"
)

// EntryKind discriminates the two content shapes an entry can carry.
type EntryKind string

const (
	EntryKindText    EntryKind = "text"
	EntryKindPrompts EntryKind = "prompts"
)

// PromptResponse is one prompt/answer pair from a guided reflection.
type PromptResponse struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// EntryContent is a tagged union: free-form text or a list of prompt responses.
// Exactly one of Body / Prompts is populated, gated by Kind.
type EntryContent struct {
	Kind    EntryKind        `json:"kind"`
	Body    string           `json:"body,omitempty"`
	Prompts []PromptResponse `json:"prompts,omitempty"`
}

var (
	ErrEmptyContent = errors.New("entry content is empty")
	ErrMixedContent = errors.New("entry content mixes text and prompt shapes")
)

func (c EntryContent) Validate() error {
	switch c.Kind {
	case EntryKindText:
		if c.Body == "" {
			return ErrEmptyContent
		}
		if len(c.Prompts) > 0 {
			return ErrMixedContent
		}
	case EntryKindPrompts:
		if len(c.Prompts) == 0 {
			return ErrEmptyContent
		}
		if c.Body != "" {
			return ErrMixedContent
		}
	default:
		return errors.New("unknown entry kind: " + string(c.Kind))
	}
	return nil
}

// Text flattens the content for analysis regardless of kind.
func (c EntryContent) Text() string {
	if c.Kind == EntryKindText {
		return c.Body
	}
	out := ""
	for _, pr := range c.Prompts {
		if out != "" {
			out += "\n"
		}
		out += pr.Response
	}
	return out
}

// EntryInsights is the on-device metadata extracted from entry text.
type EntryInsights struct {
	Sentiment  string   `json:"sentiment"`
	Themes     []string `json:"themes"`
	Entities   []string `json:"entities"`
	KeyPhrases []string `json:"key_phrases"`
}

// JournalEntry is one journaled reflection session. Identity is by ID;
// content may change on re-save, display order is CreatedAt descending.
type JournalEntry struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Subject        string         `json:"subject"`
	EmotionalState string         `json:"emotional_state"`
	Content        EntryContent   `json:"content"`
	AISummary      string         `json:"ai_summary,omitempty"`
	AITone         string         `json:"ai_tone,omitempty"`
	AudioRef       string         `json:"audio_ref,omitempty"`
	Insights       *EntryInsights `json:"insights,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Chapter is a generated narrative rendering of one entry.
type Chapter struct {
	Genre     string    `json:"genre"`
	Title     string    `json:"title"`
	Narrative string    `json:"narrative"`
	CreatedAt time.Time `json:"created_at"`
}

type SaveEntryRequest struct {
	Title          string       `json:"title" binding:"required"`
	Subject        string       `json:"subject"`
	EmotionalState string       `json:"emotional_state"`
	Content        EntryContent `json:"content" binding:"required"`
	AudioRef       string       `json:"audio_ref"`
}

type ListEntriesQuery struct {
	Subject string `form:"subject"`
	Limit   int    `form:"limit,default=50"`
}

type StoryRequest struct {
	Genre string `json:"genre"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
	Tone    string `json:"tone"`
}
