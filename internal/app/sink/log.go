package sink

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/issafronov/leadredirect/internal/app/models"
)

// LogSink пишет каждую запись отдельной JSON-строкой.
// Строка содержит только поля записи: event, lead, timestamp, ip, ua.
type LogSink struct {
	log *zap.Logger
}

// NewLogSink создаёт приёмник, пишущий в w. При w == nil используется stdout.
func NewLogSink(w zapcore.WriteSyncer) *LogSink {
	if w == nil {
		w = zapcore.Lock(os.Stdout)
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey:     "event",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), w, zap.InfoLevel)

	return &LogSink{log: zap.New(core)}
}

// Record пишет запись в лог
func (s *LogSink) Record(_ context.Context, event models.ClickEvent) error {
	s.log.Info(event.Event,
		zap.String("lead", event.Lead),
		zap.String("timestamp", event.Timestamp),
		zap.String("ip", event.IP),
		zap.Stringp("ua", event.UA),
	)
	return nil
}
