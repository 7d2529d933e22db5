package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"aigallery/internal/activity"
	"aigallery/internal/cache"
	"aigallery/internal/config"
	"aigallery/internal/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment, cfg.Logging.Level).With().Str("component", "worker").Logger()

	if !cfg.Redis.Enabled {
		logger.Fatal().Msg("redis.enabled must be true to run the activity worker")
	}

	client, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}
	defer client.Close()

	processor := activity.NewProcessor(logger)
	consumer := activity.NewConsumer(
		client,
		cfg.Activity.Stream,
		cfg.Activity.Group,
		cfg.Activity.Consumer,
		cfg.Activity.ClaimInterval,
		logger,
		processor,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Fatal().Err(err).Msg("consumer stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")
	time.Sleep(500 * time.Millisecond)
}
