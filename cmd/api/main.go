package main

import (
	"context"

	"github.com/paulinmemphis/AchievrAI-sub004/internal/cloud"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/config"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/gamify"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/groq"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/handler"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/logger"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/ratelimit"
	"github.com/paulinmemphis/AchievrAI-sub004/internal/store"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

type application struct {
	Logger  *zap.Logger
	Config  *config.Config
	Store   *store.Store
	Gamify  *gamify.Service
	Limiter *ratelimit.Limiter
	Handler *handler.Handler
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded, env=%s", cfg.Env)

	loc, err := cfg.Location()
	if err != nil {
		sugar.Fatal(err)
	}

	codec := store.NewCodec(cfg.Store.Passphrase)
	journalStore, err := store.New(cfg.Store.Dir, codec, log)
	if err != nil {
		sugar.Fatal(err)
	}
	if err := journalStore.Load(); err != nil {
		// a locked or unreadable store is survivable: the API reports LOCKED
		// per request and in-memory state starts empty
		sugar.Warnw("journal load failed", "err", err)
	}

	gamifyService := gamify.New(gamify.Config{
		BasePoints:     cfg.Gamify.BasePoints,
		StreakBonus:    cfg.Gamify.StreakBonus,
		PointsPerLevel: cfg.Gamify.PointsPerLevel,
	}, loc, journalStore, log)

	limiter := ratelimit.New(cfg.Limiter.Enabled, cfg.Limiter.DefaultCeiling, map[string]int{
		handler.EndpointSummarize: cfg.Limiter.AICeiling,
		handler.EndpointFeedback:  cfg.Limiter.AICeiling,
	})

	groqClient := groq.NewClient(cfg.Groq.APIKey, cfg.Groq.Model, cfg.Groq.Timeout)

	var mirror *cloud.Mirror
	var queue *cloud.Queue
	if cfg.Cloud.Enabled {
		mirror = cloud.NewMirror(cfg.Cloud.RedisAddr, cfg.Cloud.RedisPassword, cfg.Cloud.RedisDB)
		defer mirror.Close()
		queue = cloud.NewQueue(mirror, log)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go queue.Run(ctx, cfg.Cloud.DrainInterval)
	}

	h := &handler.Handler{
		Logger:          log,
		Store:           journalStore,
		Gamify:          gamifyService,
		Limiter:         limiter,
		Groq:            groqClient,
		CloudEnabled:    cfg.Cloud.Enabled,
		Mirror:          mirror,
		Queue:           queue,
		JWTSecret:       cfg.JWT.Secret,
		TokenTTL:        cfg.JWT.TokenTTL,
		PasscodeHash:    cfg.JWT.PasscodeHash,
		GroqTemperature: cfg.Groq.Temperature,
	}

	app := &application{
		Logger:  log,
		Config:  cfg,
		Store:   journalStore,
		Gamify:  gamifyService,
		Limiter: limiter,
		Handler: h,
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}
