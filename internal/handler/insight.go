package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/insight"
	"github.com/paulinmemphis/AchievrAI-sub004/pkg/model"
	"github.com/paulinmemphis/AchievrAI-sub004/pkg/response"
)

// GetInsights returns the on-device metadata for an entry, extracting on the
// fly for entries saved before extraction existed
// GET /api/v1/entries/:id/insights
func (h *Handler) GetInsights(c *gin.Context) {
	entry, ok := h.Store.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "entry not found")
		return
	}
	if entry.Insights == nil {
		ins := insight.Extract(entry.Content.Text())
		entry.Insights = &ins
	}
	response.OK(c, entry.Insights)
}

// ComposeStory renders an entry as a narrative chapter in the requested genre
// POST /api/v1/entries/:id/story
func (h *Handler) ComposeStory(c *gin.Context) {
	entry, ok := h.Store.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "entry not found")
		return
	}

	var req model.StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, err.Error())
		return
	}

	var ins model.EntryInsights
	if entry.Insights != nil {
		ins = *entry.Insights
	} else {
		ins = insight.Extract(entry.Content.Text())
	}

	chapter := insight.ComposeChapter(req.Genre, entry.Subject, ins, time.Now())
	response.OK(c, chapter)
}

// SummarizeEntry asks the chat-completion API for a summary and tone, storing
// them on the entry. Advisory rate limited; fail-soft on malformed responses.
// POST /api/v1/entries/:id/summarize
func (h *Handler) SummarizeEntry(c *gin.Context) {
	if !h.Groq.Enabled() {
		response.ServiceUnavailable(c, "ai summaries are not configured")
		return
	}
	if !h.Limiter.Allow(EndpointSummarize) {
		response.TooManyRequests(c, "")
		return
	}

	entry, ok := h.Store.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "entry not found")
		return
	}

	h.Limiter.Record(EndpointSummarize)
	summary, err := h.Groq.SummarizeEntry(c.Request.Context(), entry.Content.Text(), h.GroqTemperature)
	if err != nil {
		h.Logger.Sugar().Errorw("summarize failed", "entry", entry.ID, "err", err)
		response.ServiceUnavailable(c, "summary service failed")
		return
	}
	if summary == nil {
		// model returned an unusable shape; show nothing
		h.Logger.Sugar().Warnw("summarize returned unusable shape", "entry", entry.ID)
		response.OK(c, nil)
		return
	}

	entry.AISummary = summary.Summary
	entry.AITone = summary.Tone
	entry.UpdatedAt = time.Now()
	if err := h.Store.SaveEntry(entry); err != nil {
		h.storeError(c, "save summary", err)
		return
	}
	h.mirrorAsync()

	response.OK(c, model.SummarizeResponse{Summary: summary.Summary, Tone: summary.Tone})
}

// WeeklyFeedback asks the model for encouragement over the most recent entries
// POST /api/v1/feedback
func (h *Handler) WeeklyFeedback(c *gin.Context) {
	if !h.Groq.Enabled() {
		response.ServiceUnavailable(c, "ai feedback is not configured")
		return
	}
	if !h.Limiter.Allow(EndpointFeedback) {
		response.TooManyRequests(c, "")
		return
	}

	entries := h.Store.List()
	if len(entries) == 0 {
		response.BadRequest(c, "no entries to reflect on")
		return
	}
	if len(entries) > 10 {
		entries = entries[:10]
	}
	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		texts = append(texts, e.Content.Text())
	}

	h.Limiter.Record(EndpointFeedback)
	feedback, err := h.Groq.WeeklyFeedback(c.Request.Context(), texts, h.GroqTemperature)
	if err != nil {
		h.Logger.Sugar().Errorw("feedback failed", "err", err)
		response.ServiceUnavailable(c, "feedback service failed")
		return
	}

	response.OK(c, gin.H{"feedback": feedback})
}
