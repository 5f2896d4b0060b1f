package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/issafronov/leadredirect/internal/app/models"
)

const (
	// RedisClicksKey — список, в конец которого дописываются записи
	RedisClicksKey = "leads:clicks"
	// RedisCountersKey — хеш lead -> количество переходов
	RedisCountersKey = "leads:clicks:by_lead"
)

// RedisSink дописывает записи в список Redis и ведёт счётчики по лидам
type RedisSink struct {
	rdb *redis.Client
}

// NewRedisSink создаёт приёмник поверх готового клиента
func NewRedisSink(rdb *redis.Client) *RedisSink {
	return &RedisSink{rdb: rdb}
}

// Record выполняет RPUSH записи и HINCRBY счётчика в одной транзакции
func (s *RedisSink) Record(ctx context.Context, event models.ClickEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, RedisClicksKey, data)
	pipe.HIncrBy(ctx, RedisCountersKey, event.Lead, 1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append click to redis: %w", err)
	}
	return nil
}

// Stats читает счётчики переходов
func (s *RedisSink) Stats(ctx context.Context) ([]models.LeadStats, error) {
	counters, err := s.rdb.HGetAll(ctx, RedisCountersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("read click counters: %w", err)
	}

	stats := make([]models.LeadStats, 0, len(counters))
	for lead, raw := range counters {
		clicks, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse click counter %q: %w", lead, err)
		}
		stats = append(stats, models.LeadStats{Lead: lead, Clicks: clicks})
	}
	slices.SortFunc(stats, compareLeadStats)
	return stats, nil
}

// Ping проверяет соединение с Redis
func (s *RedisSink) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
