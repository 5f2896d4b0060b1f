// Package sink содержит приёмники записей о переходах по лид-ссылкам.
//
// Запись о переходе отправляется в приёмник по принципу fire-and-forget:
// ошибка приёмника не должна влиять на ответ клиенту. Медленные сетевые
// приёмники оборачиваются в AsyncSink.
package sink

import (
	"context"
	"errors"

	"go.uber.org/multierr"

	"github.com/issafronov/leadredirect/internal/app/models"
)

// ErrNoPinger возвращается, когда ни один из приёмников не поддерживает проверку доступности
var ErrNoPinger = errors.New("sink has no health probe")

// Sink принимает записи о переходах
type Sink interface {
	// Record сохраняет или отправляет одну запись
	Record(ctx context.Context, event models.ClickEvent) error
}

// StatsReader возвращает количество переходов по каждому лиду
type StatsReader interface {
	Stats(ctx context.Context) ([]models.LeadStats, error)
}

// Pinger проверяет доступность хранилища приёмника
type Pinger interface {
	Ping(ctx context.Context) error
}

// MultiSink отправляет запись во все вложенные приёмники
type MultiSink []Sink

// Record вызывает Record у каждого приёмника, ошибки объединяются
func (m MultiSink) Record(ctx context.Context, event models.ClickEvent) error {
	var err error
	for _, s := range m {
		err = multierr.Append(err, s.Record(ctx, event))
	}
	return err
}

// Ping проверяет все вложенные приёмники, поддерживающие проверку доступности
func (m MultiSink) Ping(ctx context.Context) error {
	var err error
	for _, s := range m {
		if pingErr := Ping(ctx, s); !errors.Is(pingErr, ErrNoPinger) {
			err = multierr.Append(err, pingErr)
		}
	}
	return err
}

// Ping проверяет доступность приёмника, если он это поддерживает
func Ping(ctx context.Context, s Sink) error {
	p, ok := s.(Pinger)
	if !ok {
		return ErrNoPinger
	}
	return p.Ping(ctx)
}
