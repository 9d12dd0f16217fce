package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (app *application) routes() http.Handler {
	if !app.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// simple logger middleware that uses zap
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Sugar().Infow("http", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "duration", time.Since(start))
	})

	r.Use(app.CORSMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "entries": app.Store.Count()})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/unlock", app.Handler.Unlock)
	}

	protected := v1.Group("/")
	protected.Use(app.AuthMiddleware())
	{
		// entry routes
		protected.POST("/entries", app.Handler.CreateEntry)
		protected.GET("/entries", app.Handler.ListEntries)
		protected.GET("/entries/:id", app.Handler.GetEntry)
		protected.PUT("/entries/:id", app.Handler.UpdateEntry)
		protected.DELETE("/entries/:id", app.Handler.DeleteEntry)

		// insight and story routes
		protected.GET("/entries/:id/insights", app.Handler.GetInsights)
		protected.POST("/entries/:id/story", app.Handler.ComposeStory)
		protected.POST("/entries/:id/summarize", app.Handler.SummarizeEntry)
		protected.POST("/feedback", app.Handler.WeeklyFeedback)

		// gamification
		protected.GET("/progress", app.Handler.GetProgress)

		// cloud sync
		protected.POST("/sync/push", app.Handler.PushSync)
		protected.POST("/sync/pull", app.Handler.PullSync)
		protected.GET("/sync/status", app.Handler.SyncStatus)
	}

	return r
}
