package handler

import (
	"time"

	"github.com/paulinmemphis/AchievrAI-sub004/internal/cloud"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/gamify"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/groq"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/ratelimit"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/store"
	"go.uber.org/zap"
)

// Endpoint names the rate limiter tracks.
const (
	EndpointSummarize = "ai.summarize"
	EndpointFeedback  = "ai.feedback"
)

// Handler carries every dependency the HTTP layer needs, injected once at
// startup from cmd/api.
type Handler struct {
	Logger  *zap.Logger
	Store   *store.Store
	Gamify  *gamify.Service
	Limiter *ratelimit.Limiter
	Groq    *groq.Client

	CloudEnabled bool
	Mirror       *cloud.Mirror
	Queue        *cloud.Queue

	JWTSecret    string
	TokenTTL     time.Duration
	PasscodeHash string

	GroqTemperature float32
}
