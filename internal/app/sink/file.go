package sink

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/issafronov/leadredirect/internal/app/models"
	"github.com/issafronov/leadredirect/internal/middleware/logger"
)

// FileSink дописывает записи в файл в формате JSON Lines
type FileSink struct {
	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
}

// NewFileSink открывает файл на дозапись, создавая его при необходимости
func NewFileSink(path string) (*FileSink, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileSink{
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

// Record записывает одну строку и сбрасывает буфер на диск
func (f *FileSink) Record(_ context.Context, event models.ClickEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Info("Failed to marshal click event", zap.Error(err))
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.writer.Write(data); err != nil {
		logger.Log.Info("Failed to write click event", zap.String("lead", event.Lead), zap.Error(err))
		return err
	}
	if err := f.writer.WriteByte('\n'); err != nil {
		logger.Log.Info("Error writing data new line", zap.Error(err))
		return err
	}
	return f.writer.Flush()
}

// Ping проверяет, что файл всё ещё доступен
func (f *FileSink) Ping(_ context.Context) error {
	_, err := f.file.Stat()
	return err
}

// Close сбрасывает буфер и закрывает файл
func (f *FileSink) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.writer.Flush(); err != nil {
		f.file.Close()
		return err
	}
	return f.file.Close()
}
