package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/insight"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/store"
	"github.com/paulinmemphis/AchievrAI-sub004/pkg/model"
	"github.com/paulinmemphis/AchievrAI-sub004/pkg/response"
)

// CreateEntry saves a new journal entry, extracts on-device insights and
// records the gamification event
// POST /api/v1/entries
func (h *Handler) CreateEntry(c *gin.Context) {
	var req model.SaveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Sugar().Warnw("create entry bad request", "err", err)
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Content.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	now := time.Now()
	ins := insight.Extract(req.Content.Text())
	entry := model.JournalEntry{
		ID:             uuid.New().String(),
		Title:          req.Title,
		Subject:        req.Subject,
		EmotionalState: req.EmotionalState,
		Content:        req.Content,
		AudioRef:       req.AudioRef,
		Insights:       &ins,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.Store.SaveEntry(entry); err != nil {
		h.storeError(c, "create entry", err)
		return
	}

	progress := h.Gamify.RecordEntry(now)
	h.mirrorAsync()

	response.Created(c, gin.H{"entry": entry, "streak": progress.Streak, "points": progress.Points})
}

// ListEntries returns entries newest first, optionally filtered by subject
// GET /api/v1/entries
func (h *Handler) ListEntries(c *gin.Context) {
	var q model.ListEntriesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entries := h.Store.List()
	if q.Subject != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if e.Subject == q.Subject {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	if q.Limit > 0 && len(entries) > q.Limit {
		entries = entries[:q.Limit]
	}

	response.OK(c, gin.H{"entries": entries, "total": len(entries)})
}

// GetEntry returns an entry by id
// GET /api/v1/entries/:id
func (h *Handler) GetEntry(c *gin.Context) {
	entry, ok := h.Store.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "entry not found")
		return
	}
	response.OK(c, entry)
}

// UpdateEntry re-saves an existing entry, keeping its identity and creation
// time. Insights are re-extracted; a stale AI summary is dropped.
// PUT /api/v1/entries/:id
func (h *Handler) UpdateEntry(c *gin.Context) {
	id := c.Param("id")
	existing, ok := h.Store.Get(id)
	if !ok {
		response.NotFound(c, "entry not found")
		return
	}

	var req model.SaveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Content.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ins := insight.Extract(req.Content.Text())
	existing.Title = req.Title
	existing.Subject = req.Subject
	existing.EmotionalState = req.EmotionalState
	existing.Content = req.Content
	existing.AudioRef = req.AudioRef
	existing.Insights = &ins
	existing.AISummary = ""
	existing.AITone = ""
	existing.UpdatedAt = time.Now()

	if err := h.Store.SaveEntry(existing); err != nil {
		h.storeError(c, "update entry", err)
		return
	}
	h.mirrorAsync()

	response.OK(c, existing)
}

// DeleteEntry removes an entry
// DELETE /api/v1/entries/:id
func (h *Handler) DeleteEntry(c *gin.Context) {
	found, err := h.Store.DeleteEntry(c.Param("id"))
	if err != nil {
		h.storeError(c, "delete entry", err)
		return
	}
	if !found {
		response.NotFound(c, "entry not found")
		return
	}
	h.mirrorAsync()
	response.NoContent(c)
}

func (h *Handler) storeError(c *gin.Context, op string, err error) {
	if errors.Is(err, store.ErrLocked) {
		h.Logger.Sugar().Warnw(op+" skipped", "reason", "store locked")
		response.Locked(c, "")
		return
	}
	h.Logger.Sugar().Errorw(op+" failed", "err", err)
	response.InternalError(c, "")
}

// mirrorAsync pushes the current sealed blobs to the cloud mirror without
// blocking the request. Failures land in the offline queue.
func (h *Handler) mirrorAsync() {
	if !h.CloudEnabled {
		return
	}
	blob, err := h.Store.Snapshot()
	if err != nil {
		h.Logger.Sugar().Warnw("journal snapshot failed", "err", err)
		return
	}
	progressBlob, err := h.Store.ProgressSnapshot()
	if err != nil {
		h.Logger.Sugar().Warnw("progress snapshot failed", "err", err)
	}
	go func() {
		ctx, cancel := contextWithPushTimeout()
		defer cancel()
		_ = h.Queue.Submit(ctx, cloudJournalKey, blob)
		if progressBlob != nil {
			_ = h.Queue.Submit(ctx, cloudProgressKey, progressBlob)
		}
	}()
}
