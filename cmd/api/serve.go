package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/zizouhuweidi/trivia/internal/database"
	"github.com/zizouhuweidi/trivia/internal/handler"
	"github.com/zizouhuweidi/trivia/internal/metrics"
	"github.com/zizouhuweidi/trivia/internal/service"
	"github.com/zizouhuweidi/trivia/internal/session"
	"github.com/zizouhuweidi/trivia/internal/websocket"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	if cfg.Store.AutoMigrate {
		if err := st.Migrate(ctx); err != nil {
			return err
		}
	}

	// Initialize websocket hub
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	opts := []service.Option{
		service.WithLogger(logger),
		service.WithEventPublisher(hub),
	}
	var mutating []echo.MiddlewareFunc

	if cfg.Redis.Enabled {
		redisClient, err := database.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		sessions := session.NewManager(redisClient, cfg.Redis.HistoryTTLDuration())
		opts = append(opts, service.WithQuizHistory(sessions))
		if cfg.Redis.RateLimit > 0 {
			mutating = append(mutating, handler.RateLimit(sessions, cfg.Redis.RateLimit, cfg.Redis.RateWindowDuration()))
		}
		logger.Infof("quiz history and rate limiting backed by redis at %s", cfg.Redis.Addr())
	}

	questionService := service.NewQuestionService(st.Questions(), st.Categories(), opts...)

	collector := metrics.NewCollector(hub.Count)
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collector,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	e := handler.NewEcho(logger, cfg.Server.BodyLimit, collector.Middleware())
	handler.NewQuestionHandler(questionService, collector).Register(e, mutating...)
	handler.NewWebSocketHandler(hub).Register(e)
	e.GET("/metrics", metrics.Handler(registry))

	errc := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
	defer cancel()

	return e.Shutdown(shutdownCtx)
}
