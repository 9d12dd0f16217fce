package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentValidate(t *testing.T) {
	tests := []struct {
		name    string
		content EntryContent
		wantErr error
	}{
		{"text ok", EntryContent{Kind: EntryKindText, Body: "hello"}, nil},
		{"prompts ok", EntryContent{Kind: EntryKindPrompts, Prompts: []PromptResponse{{Prompt: "p", Response: "r"}}}, nil},
		{"empty text", EntryContent{Kind: EntryKindText}, ErrEmptyContent},
		{"empty prompts", EntryContent{Kind: EntryKindPrompts}, ErrEmptyContent},
		{"text with prompts", EntryContent{Kind: EntryKindText, Body: "x", Prompts: []PromptResponse{{Prompt: "p"}}}, ErrMixedContent},
		{"prompts with body", EntryContent{Kind: EntryKindPrompts, Body: "x", Prompts: []PromptResponse{{Prompt: "p", Response: "r"}}}, ErrMixedContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.content.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestContentValidateUnknownKind(t *testing.T) {
	assert.Error(t, EntryContent{Kind: "audio"}.Validate())
}

func TestContentTextFlattensPrompts(t *testing.T) {
	c := EntryContent{
		Kind: EntryKindPrompts,
		Prompts: []PromptResponse{
			{Prompt: "What did you learn?", Response: "Fractions"},
			{Prompt: "What was hard?", Response: "Dividing"},
		},
	}
	assert.Equal(t, "Fractions\nDividing", c.Text())
}

func TestContentJSONRoundTrip(t *testing.T) {
	orig := EntryContent{Kind: EntryKindText, Body: "a reflection"}
	b, err := json.Marshal(orig)
	require.NoError(t, err)

	var back EntryContent
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, orig, back)
	assert.NotContains(t, string(b), "prompts", "empty variant fields stay omitted")
}

func TestHasBadge(t *testing.T) {
	p := NewProgress()
	assert.False(t, p.HasBadge(BadgeFirstEntry))
	p.Badges = append(p.Badges, BadgeFirstEntry)
	assert.True(t, p.HasBadge(BadgeFirstEntry))
}
