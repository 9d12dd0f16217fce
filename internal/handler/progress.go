package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/paulinmemphis/AchievrAI-sub004/pkg/model"
	"github.com/paulinmemphis/AchievrAI-sub004/pkg/response"
)

// GetProgress returns the current gamification state
// GET /api/v1/progress
func (h *Handler) GetProgress(c *gin.Context) {
	p := h.Gamify.State()
	response.OK(c, model.ProgressResponse{
		Points:        p.Points,
		Level:         p.Level,
		PointsToLevel: h.Gamify.PointsToLevel(),
		Streak:        p.Streak,
		Badges:        p.Badges,
		LastEntryDate: p.LastEntryDate,
		EntryCount:    p.EntryCount,
	})
}
