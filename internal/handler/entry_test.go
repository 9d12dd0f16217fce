package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/gamify"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/groq"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/ratelimit"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/store"
	"github.com/paulinmemphis/AchievrAI-sub004/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, passphrase string) (*Handler, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec := store.NewCodec(passphrase)
	s, err := store.New(t.TempDir(), codec, zap.NewNop())
	require.NoError(t, err)

	g := gamify.New(gamify.Config{BasePoints: 10, StreakBonus: 2, PointsPerLevel: 100},
		time.UTC, s, zap.NewNop())

	h := &Handler{
		Logger:  zap.NewNop(),
		Store:   s,
		Gamify:  g,
		Limiter: ratelimit.New(true, 30, map[string]int{EndpointSummarize: 2}),
		Groq:    groq.NewClient("", "test-model", time.Second),
	}

	r := gin.New()
	r.POST("/entries", h.CreateEntry)
	r.GET("/entries", h.ListEntries)
	r.GET("/entries/:id", h.GetEntry)
	r.PUT("/entries/:id", h.UpdateEntry)
	r.DELETE("/entries/:id", h.DeleteEntry)
	r.GET("/entries/:id/insights", h.GetInsights)
	r.POST("/entries/:id/story", h.ComposeStory)
	r.POST("/entries/:id/summarize", h.SummarizeEntry)
	r.GET("/progress", h.GetProgress)
	return h, r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func saveReq(title, body string) model.SaveEntryRequest {
	return model.SaveEntryRequest{
		Title:   title,
		Subject: "math",
		Content: model.EntryContent{Kind: model.EntryKindText, Body: body},
	}
}

func createdEntryID(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Data struct {
			Entry model.JournalEntry `json:"entry"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotEmpty(t, env.Data.Entry.ID)
	return env.Data.Entry.ID
}

func TestCreateAndGetEntry(t *testing.T) {
	_, r := newTestHandler(t, "pw")

	w := doJSON(r, http.MethodPost, "/entries", saveReq("fractions", "I was happy, I finally learned fractions"))
	require.Equal(t, http.StatusCreated, w.Code)
	id := createdEntryID(t, w)

	w = doJSON(r, http.MethodGet, "/entries/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fractions")
	assert.Contains(t, w.Body.String(), `"sentiment":"positive"`)
}

func TestCreateEntryValidation(t *testing.T) {
	_, r := newTestHandler(t, "pw")

	// missing title
	w := doJSON(r, http.MethodPost, "/entries", gin.H{"content": gin.H{"kind": "text", "body": "x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// mixed content shapes
	w = doJSON(r, http.MethodPost, "/entries", gin.H{
		"title": "t",
		"content": gin.H{
			"kind":    "text",
			"body":    "x",
			"prompts": []gin.H{{"prompt": "p", "response": "r"}},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown kind
	w = doJSON(r, http.MethodPost, "/entries", gin.H{"title": "t", "content": gin.H{"kind": "audio"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePromptEntry(t *testing.T) {
	_, r := newTestHandler(t, "pw")

	w := doJSON(r, http.MethodPost, "/entries", model.SaveEntryRequest{
		Title: "guided",
		Content: model.EntryContent{
			Kind: model.EntryKindPrompts,
			Prompts: []model.PromptResponse{
				{Prompt: "What did you learn?", Response: "I learned about volcanoes"},
				{Prompt: "What was hard?", Response: "Spelling the words"},
			},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestListEntriesNewestFirst(t *testing.T) {
	h, r := newTestHandler(t, "pw")

	for i := 0; i < 3; i++ {
		w := doJSON(r, http.MethodPost, "/entries", saveReq(fmt.Sprintf("e%d", i), "body"))
		require.Equal(t, http.StatusCreated, w.Code)
	}
	assert.Equal(t, 3, h.Store.Count())

	w := doJSON(r, http.MethodGet, "/entries?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data struct {
			Entries []model.JournalEntry `json:"entries"`
			Total   int                  `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Len(t, env.Data.Entries, 2)
	assert.False(t, env.Data.Entries[0].CreatedAt.Before(env.Data.Entries[1].CreatedAt))
}

func TestUpdateEntryKeepsIdentity(t *testing.T) {
	_, r := newTestHandler(t, "pw")

	w := doJSON(r, http.MethodPost, "/entries", saveReq("before", "old body"))
	id := createdEntryID(t, w)

	w = doJSON(r, http.MethodPut, "/entries/"+id, saveReq("after", "new body"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "after")

	w = doJSON(r, http.MethodGet, "/entries/"+id, nil)
	assert.Contains(t, w.Body.String(), "new body")
}

func TestDeleteEntry(t *testing.T) {
	_, r := newTestHandler(t, "pw")

	w := doJSON(r, http.MethodPost, "/entries", saveReq("gone", "body"))
	id := createdEntryID(t, w)

	w = doJSON(r, http.MethodDelete, "/entries/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodGet, "/entries/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodDelete, "/entries/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLockedStoreReturns403(t *testing.T) {
	_, r := newTestHandler(t, "")

	w := doJSON(r, http.MethodPost, "/entries", saveReq("t", "body"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "LOCKED")
}

func TestProgressAdvancesOnCreate(t *testing.T) {
	_, r := newTestHandler(t, "pw")

	doJSON(r, http.MethodPost, "/entries", saveReq("t", "body"))

	w := doJSON(r, http.MethodGet, "/progress", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data model.ProgressResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, 1, env.Data.Streak)
	assert.Equal(t, 10, env.Data.Points)
	assert.Contains(t, env.Data.Badges, model.BadgeFirstEntry)
}

func TestInsightsEndpoint(t *testing.T) {
	_, r := newTestHandler(t, "pw")

	w := doJSON(r, http.MethodPost, "/entries", saveReq("t", "It was hard but I tried again with Maya"))
	id := createdEntryID(t, w)

	w = doJSON(r, http.MethodGet, "/entries/"+id+"/insights", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "challenge")
	assert.Contains(t, w.Body.String(), "Maya")
}

func TestStoryEndpoint(t *testing.T) {
	_, r := newTestHandler(t, "pw")

	w := doJSON(r, http.MethodPost, "/entries", saveReq("t", "I solved the puzzle and felt proud"))
	id := createdEntryID(t, w)

	w = doJSON(r, http.MethodPost, "/entries/"+id+"/story", model.StoryRequest{Genre: "mystery"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"genre":"mystery"`)

	// same input, same chapter text
	again := doJSON(r, http.MethodPost, "/entries/"+id+"/story", model.StoryRequest{Genre: "mystery"})
	var a, b struct {
		Data model.Chapter `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(again.Body.Bytes(), &b))
	assert.Equal(t, a.Data.Narrative, b.Data.Narrative)
}

func TestSummarizeUnconfiguredReturns503(t *testing.T) {
	_, r := newTestHandler(t, "pw")

	w := doJSON(r, http.MethodPost, "/entries", saveReq("t", "body"))
	id := createdEntryID(t, w)

	w = doJSON(r, http.MethodPost, "/entries/"+id+"/summarize", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
