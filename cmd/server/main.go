// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"trucking-site/internal/common/config"
	"trucking-site/internal/common/database"
	"trucking-site/internal/common/logger"
	"trucking-site/internal/common/observability"
	"trucking-site/internal/intake"
	"trucking-site/internal/notify"
	"trucking-site/internal/server"
	"trucking-site/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting website server...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	if cfg.Observability.TracingEnabled {
		obs = obs.WithTracing(cfg.App.Name, cfg.Observability.JaegerEndpoint)
	}
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init document store ---
	docStore, err := store.NewFromConfig(cfg, log)
	if err != nil {
		zapLog.Fatal("store init failed", zap.Error(err))
	}
	defer docStore.Close()

	if cfg.StoreConfigured() {
		err = retryWithBackoff(func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return docStore.Ping(pingCtx)
		}, 10, 2*time.Second, zapLog, "Document store connection")
		if err != nil {
			zapLog.Fatal("document store failed after retries", zap.Error(err))
		}
		zapLog.Info("Document store connected successfully",
			zap.String("driver", cfg.Store.Driver),
		)
	}

	// --- Init Redis for dedup reservations ---
	var redisClient *database.RedisClient
	if cfg.Dedup.Reservation {
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")
	}

	// --- Init dispatch notifier ---
	var notifier notify.Notifier = notify.NoopNotifier{}
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		awsNotifier, err := notify.NewAWSNotifier(ctx, cfg.Notifications, log)
		if err != nil {
			zapLog.Fatal("notifier init failed", zap.Error(err))
		}
		notifier = awsNotifier
		zapLog.Info("Dispatch notifier initialized")
	}

	// --- Build intake pipelines ---
	storeTimeout := config.GetDuration(cfg.Store.Timeout)

	var guardRedis *database.RedisClient
	if cfg.Dedup.Reservation {
		guardRedis = redisClient
	}
	guard := intake.NewGuard(docStore, redisGuardClient(guardRedis), cfg.DedupWindow(), intake.SystemClock{}, log)

	contact := intake.New(intake.ContactPolicy(cfg.Dedup.Contact), docStore, guard, notifier, storeTimeout, log,
		intake.WithObservability(obs))
	apply := intake.New(intake.ApplicationPolicy(cfg.Dedup.Application), docStore, guard, notifier, storeTimeout, log,
		intake.WithObservability(obs))

	// --- HTTP server ---
	srv := server.New(cfg, contact, apply, docStore, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	case sig := <-sigCh:
		zapLog.Info("Shutdown signal received, draining requests...",
			zap.String("signal", sig.String()),
		)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zapLog.Error("server shutdown failed", zap.Error(err))
		}
	}

	zapLog.Info("Website server stopped gracefully")
}

// redisGuardClient unwraps the raw client, preserving nil for a disabled
// reservation layer.
func redisGuardClient(c *database.RedisClient) *redis.Client {
	if c == nil {
		return nil
	}
	return c.Client
}
