package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"sync"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/aliskhannn/loftfit-bot/internal/analytics"
	"github.com/aliskhannn/loftfit-bot/internal/config"
	"github.com/aliskhannn/loftfit-bot/internal/delivery/telegram"
	apphttp "github.com/aliskhannn/loftfit-bot/internal/http"
	"github.com/aliskhannn/loftfit-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/loftfit-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/loftfit-bot/internal/logger"
	"github.com/aliskhannn/loftfit-bot/internal/repository"
	"github.com/aliskhannn/loftfit-bot/internal/service"
	"github.com/aliskhannn/loftfit-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog, err := repository.NewCatalogRepository(cfg.CatalogPath)
	if err != nil {
		lg.Fatal("failed to load catalog", zap.String("path", cfg.CatalogPath), zap.Error(err))
	}
	if problems := catalog.ValidateClaimCoverage(); len(problems) > 0 {
		lg.Warn("catalog claims without valid evidence", zap.Strings("problems", problems))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize analytics sinks.
	sinks := []analytics.Sink{
		analytics.NewLogSink(lg.Named("events")),
		analytics.NewMetricsSink(registry),
	}

	if cfg.Redis.Addr != "" {
		rdb, err := analytics.NewRedisClient(ctx, cfg.Redis.Addr)
		if err != nil {
			lg.Fatal("failed to connect to redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()
		sinks = append(sinks, analytics.NewRedisSink(rdb, cfg.Redis.Channel))
	}

	if dsn, err := cfg.DB.DSN(); err == nil {
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			lg.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()
		sinks = append(sinks, pgrepo.NewEventRepository(pool))
	} else {
		lg.Info("DATABASE_URL is not set, quiz events are not persisted")
	}

	dispatcher := analytics.NewDispatcher(analytics.DispatcherConfig{
		BufferSize:     cfg.Analytics.BufferSize,
		PublishTimeout: cfg.Analytics.PublishTimeout,
	}, lg.Named("analytics"), sinks...)

	sessions := storage.NewSessionStorage(func(int64) *service.QuizFlow {
		return service.NewQuizFlow(catalog, dispatcher)
	})

	factory := promauto.With(registry)
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "loftfit_quiz_sessions",
		Help: "Quiz sessions currently held in memory.",
	}, func() float64 { return float64(sessions.Len()) })
	factory.NewCounterFunc(prometheus.CounterOpts{
		Name: "loftfit_analytics_dropped_events_total",
		Help: "Quiz events dropped because the analytics buffer was full.",
	}, func() float64 { return float64(dispatcher.Dropped()) })

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create telegram bot", zap.Error(err))
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.BotCommands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	dispatcherDone := make(chan struct{})
	go func() {
		defer close(dispatcherDone)
		dispatcher.Run(ctx)
	}()

	var wg sync.WaitGroup

	sweeper := service.NewSessionSweeper(sessions, cfg.Quiz.SweepSchedule, cfg.Quiz.IdleTimeout, lg.Named("sweeper"))
	wg.Go(func() {
		if err := sweeper.Start(ctx); err != nil {
			lg.Error("session sweeper failed", zap.Error(err))
			stop()
		}
	})

	if cfg.HTTP.Addr != "" {
		srv, err := apphttp.NewServer(cfg.HTTP.Addr, registry, lg.Named("http"))
		if err != nil {
			lg.Fatal("failed to create http server", zap.Error(err))
		}
		wg.Go(func() {
			if err := srv.Run(ctx); err != nil {
				lg.Error("http server failed", zap.Error(err))
				stop()
			}
		})
	}

	handler := telegram.NewHandler(bot, lg.Named("telegram"), sessions, catalog, cfg.Quiz.CloseGrace)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler failed", zap.Error(err))
	}

	lg.Info("shutdown signal received")
	stop()
	bot.StopReceivingUpdates()

	wg.Wait()
	<-dispatcherDone
}
