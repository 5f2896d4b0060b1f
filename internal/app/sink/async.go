package sink

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/issafronov/leadredirect/internal/app/models"
	"github.com/issafronov/leadredirect/internal/middleware/logger"
)

var (
	// ErrQueueFull — очередь AsyncSink заполнена, запись отброшена
	ErrQueueFull = errors.New("click queue is full")
	// ErrClosed — AsyncSink уже закрыт
	ErrClosed = errors.New("click sink is closed")
)

const defaultRecordTimeout = 10 * time.Second

// AsyncSink передаёт записи вложенному приёмнику из отдельной горутины.
// Record никогда не блокируется: при заполненной очереди запись отбрасывается.
type AsyncSink struct {
	next    Sink
	queue   chan models.ClickEvent
	timeout time.Duration
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewAsyncSink запускает обработчик очереди размером size.
// timeout ограничивает время одной отправки во вложенный приёмник.
func NewAsyncSink(next Sink, size int, timeout time.Duration) *AsyncSink {
	if size <= 0 {
		size = 1
	}
	if timeout <= 0 {
		timeout = defaultRecordTimeout
	}

	s := &AsyncSink{
		next:    next,
		queue:   make(chan models.ClickEvent, size),
		timeout: timeout,
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

// Record ставит запись в очередь. Контекст запроса не передаётся дальше:
// отправка продолжается после завершения запроса.
func (s *AsyncSink) Record(_ context.Context, event models.ClickEvent) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClosed
	}

	select {
	case s.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Ping проверяет вложенный приёмник
func (s *AsyncSink) Ping(ctx context.Context) error {
	return Ping(ctx, s.next)
}

// Close перестаёт принимать записи и ждёт, пока очередь опустеет,
// или пока не истечёт ctx.
func (s *AsyncSink) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *AsyncSink) run() {
	defer close(s.done)

	for event := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		if err := s.next.Record(ctx, event); err != nil {
			logger.Log.Warn("failed to deliver click event",
				zap.String("lead", event.Lead),
				zap.Error(err),
			)
		}
		cancel()
	}
}
