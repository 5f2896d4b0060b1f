package service

import (
	"context"

	"github.com/issafronov/leadredirect/internal/app/models"
)

// Service определяет бизнес-логику переадресации по лид-ссылкам
type Service interface {
	// Resolve возвращает адрес назначения для лида или ErrNotFound
	Resolve(ctx context.Context, lead string) (string, error)

	// Track отправляет запись о переходе в приёмник. Ошибки только логируются.
	Track(ctx context.Context, event models.ClickEvent)

	// Routes возвращает все настроенные лиды
	Routes(ctx context.Context) []models.LeadRoute

	// Stats возвращает статистику переходов или ErrStatsUnavailable
	Stats(ctx context.Context) (models.Stats, error)

	// Ping проверяет доступность приёмника
	Ping(ctx context.Context) error
}
