package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/issafronov/leadredirect/internal/app/config"
	"github.com/issafronov/leadredirect/internal/app/sink"
	"github.com/issafronov/leadredirect/internal/scripts"
)

type closeFunc func(ctx context.Context) error

// sinkSet — собранные по конфигурации приёмники
type sinkSet struct {
	clicks  sink.Sink
	stats   sink.StatsReader
	closers []closeFunc
}

// close закрывает приёмники в обратном порядке: сначала очереди, потом клиенты
func (s *sinkSet) close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func ignoreCtx(fn func() error) closeFunc {
	return func(context.Context) error { return fn() }
}

// buildSinks создаёт приёмники, перечисленные в cfg.SinkKind.
// Сетевые приёмники оборачиваются в AsyncSink. Если ни один из них не умеет
// считать статистику, добавляется счётчик в памяти.
func buildSinks(ctx context.Context, cfg *config.Config) (_ *sinkSet, err error) {
	set := &sinkSet{}
	defer func() {
		if err != nil {
			set.close(ctx)
		}
	}()

	var sinks sink.MultiSink
	async := func(next sink.Sink) sink.Sink {
		a := sink.NewAsyncSink(next, cfg.SinkQueueSize, 0)
		set.closers = append(set.closers, a.Close)
		return a
	}

	for _, kind := range cfg.Sinks() {
		switch kind {
		case config.SinkLog:
			sinks = append(sinks, sink.NewLogSink(nil))

		case config.SinkFile:
			fileSink, err := sink.NewFileSink(cfg.ClickLogPath)
			if err != nil {
				return nil, fmt.Errorf("open click log: %w", err)
			}
			set.closers = append(set.closers, ignoreCtx(fileSink.Close))
			sinks = append(sinks, fileSink)

		case config.SinkWebhook:
			if cfg.WebhookURL == "" {
				return nil, errors.New("webhook sink requires WEBHOOK_URL")
			}
			sinks = append(sinks, async(sink.NewWebhookSink(cfg.WebhookURL, 0)))

		case config.SinkRedis:
			if cfg.RedisAddr == "" {
				return nil, errors.New("redis sink requires REDIS_ADDR")
			}
			rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
			set.closers = append(set.closers, ignoreCtx(rdb.Close))

			redisSink := sink.NewRedisSink(rdb)
			if err := redisSink.Ping(ctx); err != nil {
				return nil, fmt.Errorf("connect to redis: %w", err)
			}
			if set.stats == nil {
				set.stats = redisSink
			}
			sinks = append(sinks, async(redisSink))

		case config.SinkPostgres:
			if cfg.DatabaseDSN == "" {
				return nil, errors.New("postgres sink requires DATABASE_DSN")
			}
			if err := scripts.RunMigrations(cfg.MigrationsPath, cfg.DatabaseDSN); err != nil {
				return nil, err
			}
			pgSink, err := sink.NewPostgresSink(ctx, cfg.DatabaseDSN)
			if err != nil {
				return nil, fmt.Errorf("connect to postgres: %w", err)
			}
			set.closers = append(set.closers, ignoreCtx(pgSink.Close))
			if set.stats == nil {
				set.stats = pgSink
			}
			sinks = append(sinks, async(pgSink))

		default:
			return nil, fmt.Errorf("unknown click sink %q", kind)
		}
	}

	if set.stats == nil {
		counting := sink.NewCountingSink()
		set.stats = counting
		sinks = append(sinks, counting)
	}

	if len(sinks) == 1 {
		set.clicks = sinks[0]
	} else {
		set.clicks = sinks
	}
	return set, nil
}
