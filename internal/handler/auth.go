package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/auth"
	"github.com/paulinmemphis/AchievrAI-sub004/pkg/model"
	"github.com/paulinmemphis/AchievrAI-sub004/pkg/response"
)

// Unlock verifies the owner passcode and issues a session token
// POST /api/v1/auth/unlock
func (h *Handler) Unlock(c *gin.Context) {
	var req model.UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Sugar().Warnw("unlock bad request", "err", err)
		response.BadRequest(c, err.Error())
		return
	}

	if err := auth.VerifyPasscode(h.PasscodeHash, req.Passcode); err != nil {
		h.Logger.Sugar().Warnw("unlock rejected")
		response.Unauthorized(c, "invalid passcode")
		return
	}

	token, expires, err := auth.GenerateToken(h.JWTSecret, h.TokenTTL)
	if err != nil {
		h.Logger.Sugar().Errorw("token generation failed", "err", err)
		response.InternalError(c, "")
		return
	}

	response.OK(c, model.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expires.Unix(),
	})
}
