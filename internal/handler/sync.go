package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/cloud"
	"github.com/paulinmemphis/AchievrAI-sub004/pkg/response"
)

const (
	cloudJournalKey  = cloud.JournalKey
	cloudProgressKey = cloud.ProgressKey
	pushTimeout      = 10 * time.Second
)

func contextWithPushTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), pushTimeout)
}

// PushSync mirrors the sealed journal and progress blobs to the cloud store
// POST /api/v1/sync/push
func (h *Handler) PushSync(c *gin.Context) {
	if !h.CloudEnabled {
		response.BadRequest(c, "cloud sync is disabled")
		return
	}

	blob, err := h.Store.Snapshot()
	if err != nil {
		h.storeError(c, "sync snapshot", err)
		return
	}
	progressBlob, err := h.Store.ProgressSnapshot()
	if err != nil {
		h.Logger.Sugar().Warnw("progress snapshot failed", "err", err)
	}

	ctx := c.Request.Context()
	queued := false
	if err := h.Queue.Submit(ctx, cloudJournalKey, blob); err != nil {
		queued = true
	}
	if progressBlob != nil {
		if err := h.Queue.Submit(ctx, cloudProgressKey, progressBlob); err != nil {
			queued = true
		}
	}

	if queued {
		response.OK(c, gin.H{"pushed": false, "queued": h.Queue.Pending()})
		return
	}
	response.OK(c, gin.H{"pushed": true})
}

// PullSync replaces local state from the cloud blobs
// POST /api/v1/sync/pull
func (h *Handler) PullSync(c *gin.Context) {
	if !h.CloudEnabled {
		response.BadRequest(c, "cloud sync is disabled")
		return
	}

	ctx := c.Request.Context()
	blob, err := h.Mirror.Pull(ctx, cloudJournalKey)
	if err != nil {
		if errors.Is(err, cloud.ErrNoRemoteBlob) {
			response.NotFound(c, "no cloud journal to pull")
			return
		}
		h.Logger.Sugar().Errorw("cloud pull failed", "err", err)
		response.ServiceUnavailable(c, "cloud store unreachable")
		return
	}

	if err := h.Store.Restore(blob); err != nil {
		h.storeError(c, "sync restore", err)
		return
	}

	if progressBlob, err := h.Mirror.Pull(ctx, cloudProgressKey); err == nil {
		if err := h.Store.RestoreProgress(progressBlob); err != nil {
			h.Logger.Sugar().Warnw("progress restore failed", "err", err)
		} else if err := h.Gamify.Reload(); err != nil {
			h.Logger.Sugar().Warnw("progress reload failed", "err", err)
		}
	} else if !errors.Is(err, cloud.ErrNoRemoteBlob) {
		h.Logger.Sugar().Warnw("progress pull failed", "err", err)
	}

	response.OK(c, gin.H{"entries": h.Store.Count()})
}

// SyncStatus reports queue depth and cloud reachability
// GET /api/v1/sync/status
func (h *Handler) SyncStatus(c *gin.Context) {
	if !h.CloudEnabled {
		response.OK(c, gin.H{"enabled": false})
		return
	}

	reachable := h.Mirror.Ping(c.Request.Context()) == nil
	response.OK(c, gin.H{
		"enabled":   true,
		"reachable": reachable,
		"pending":   h.Queue.Pending(),
	})
}
