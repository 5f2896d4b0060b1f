package sink

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx"
	_ "github.com/jackc/pgx/stdlib"
	"go.uber.org/zap"

	"github.com/issafronov/leadredirect/internal/app/models"
	"github.com/issafronov/leadredirect/internal/middleware/logger"
)

// ErrSchemaMissing возвращается, если таблица clicks не создана миграциями
var ErrSchemaMissing = errors.New("clicks table is missing, run migrations")

// PostgresSink сохраняет записи в таблицу clicks
type PostgresSink struct {
	db *sql.DB
}

// NewPostgresSink открывает соединение и проверяет его доступность
func NewPostgresSink(ctx context.Context, dsn string) (*PostgresSink, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &PostgresSink{db: db}, nil
}

// Record вставляет одну запись
func (s *PostgresSink) Record(ctx context.Context, event models.ClickEvent) error {
	clickedAt, err := time.Parse(time.RFC3339, event.Timestamp)
	if err != nil {
		clickedAt = time.Now().UTC()
	}

	query := `
	INSERT INTO clicks (
	    lead,
	    clicked_at,
	    ip,
	    user_agent
	    )
	VALUES ($1, $2, $3, $4)
	`
	var userAgent sql.NullString
	if event.UA != nil {
		userAgent = sql.NullString{String: *event.UA, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, query, event.Lead, clickedAt, event.IP, userAgent)
	if err != nil {
		return classifyPgError(err)
	}
	return nil
}

// Stats считает переходы по каждому лиду
func (s *PostgresSink) Stats(ctx context.Context) ([]models.LeadStats, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT lead, COUNT(*) FROM clicks GROUP BY lead ORDER BY lead")
	if err != nil {
		logger.Log.Info("Failed to count clicks", zap.Error(err))
		return nil, classifyPgError(err)
	}
	defer rows.Close()

	var result []models.LeadStats
	for rows.Next() {
		var stat models.LeadStats
		if err := rows.Scan(&stat.Lead, &stat.Clicks); err != nil {
			return nil, err
		}
		result = append(result, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Ping проверяет соединение с базой
func (s *PostgresSink) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close закрывает пул соединений
func (s *PostgresSink) Close() error {
	return s.db.Close()
}

func classifyPgError(err error) error {
	var pgErr pgx.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pgErr.Code == pgerrcode.UndefinedTable:
		return fmt.Errorf("%w: %s", ErrSchemaMissing, pgErr.Message)
	case pgerrcode.IsConnectionException(pgErr.Code):
		logger.Log.Warn("postgres connection exception", zap.String("code", pgErr.Code), zap.Error(err))
	}
	return err
}
