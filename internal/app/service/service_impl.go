package service

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/issafronov/leadredirect/internal/app/models"
	"github.com/issafronov/leadredirect/internal/app/redirects"
	"github.com/issafronov/leadredirect/internal/app/sink"
	"github.com/issafronov/leadredirect/internal/middleware/logger"
)

var (
	ErrNotFound         = errors.New("lead not found")
	ErrStatsUnavailable = errors.New("click stats unavailable")
)

type leadService struct {
	routes *redirects.Mapping
	clicks sink.Sink
	stats  sink.StatsReader
}

// NewService создаёт сервис. stats может быть nil, тогда статистика недоступна.
func NewService(routes *redirects.Mapping, clicks sink.Sink, stats sink.StatsReader) Service {
	return &leadService{routes: routes, clicks: clicks, stats: stats}
}

// Resolve ищет лид в таблице переадресаций
func (s *leadService) Resolve(_ context.Context, lead string) (string, error) {
	dest, ok := s.routes.Lookup(lead)
	if !ok {
		return "", ErrNotFound
	}
	return dest, nil
}

// Track отправляет запись в приёмник
func (s *leadService) Track(ctx context.Context, event models.ClickEvent) {
	if s.clicks == nil {
		return
	}
	if err := s.clicks.Record(ctx, event); err != nil {
		logger.Log.Warn("failed to record click",
			zap.String("lead", event.Lead),
			zap.Error(err),
		)
	}
}

// Routes возвращает таблицу переадресаций
func (s *leadService) Routes(_ context.Context) []models.LeadRoute {
	return s.routes.Routes()
}

// Stats собирает статистику переходов
func (s *leadService) Stats(ctx context.Context) (models.Stats, error) {
	if s.stats == nil {
		return models.Stats{}, ErrStatsUnavailable
	}

	byLead, err := s.stats.Stats(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	if byLead == nil {
		byLead = []models.LeadStats{}
	}

	return models.Stats{
		Leads: s.routes.Len(),
		Clicks: lo.SumBy(byLead, func(item models.LeadStats) int64 {
			return item.Clicks
		}),
		ByLead: byLead,
	}, nil
}

// Ping проверяет приёмник. Приёмники без проверки считаются доступными.
func (s *leadService) Ping(ctx context.Context) error {
	err := sink.Ping(ctx, s.clicks)
	if errors.Is(err, sink.ErrNoPinger) {
		return nil
	}
	return err
}
