package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/ordermesh/ordermesh/internal/domain/errors"
	"github.com/ordermesh/ordermesh/internal/domain/model"
	"github.com/ordermesh/ordermesh/internal/domain/repository"
)

// pool is the subset of pgxpool.Pool the storage needs. Every operation
// is a single auto-committing statement; no multi-statement transactions.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type notificationRepository struct {
	storage *Storage
}

type recommendationRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pgPool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pgPool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pgPool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Notifications() repository.NotificationRepository {
	return &notificationRepository{storage: s}
}

func (s *Storage) Recommendations() repository.RecommendationRepository {
	return &recommendationRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL,
            status TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS notifications (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL,
            type TEXT NOT NULL,
            content TEXT NOT NULL,
            sent_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            read BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE TABLE IF NOT EXISTS recommendations (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL,
            product_id BIGINT NOT NULL,
            reason TEXT
        )`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, sent_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, userID int64) (*model.Order, error) {
	const query = `INSERT INTO orders (user_id, status) VALUES ($1, $2) RETURNING id`
	var order model.Order
	err := r.storage.pool.QueryRow(ctx, query, userID, model.OrderStatusPlaced).Scan(&order.ID)
	if err != nil {
		return nil, err
	}
	order.UserID = userID
	order.Status = model.OrderStatusPlaced
	return &order, nil
}

// AdvanceStatuses moves every eligible order one step forward in one
// statement. Either all eligible rows advance in the tick or none do.
func (r *orderRepository) AdvanceStatuses(ctx context.Context) ([]model.Order, error) {
	const query = `UPDATE orders
                   SET status = CASE
                     WHEN status = $1 THEN $2
                     WHEN status = $2 THEN $3
                     ELSE status
                   END
                   WHERE status != $3
                   RETURNING id, user_id, status`

	rows, err := r.storage.pool.Query(ctx, query, model.OrderStatusPlaced, model.OrderStatusShipped, model.OrderStatusDelivered)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- NotificationRepository implementation ---

func (r *notificationRepository) Create(ctx context.Context, userID int64, category model.NotificationCategory, content string) (*model.Notification, error) {
	const query = `INSERT INTO notifications (user_id, type, content)
                   VALUES ($1, $2, $3)
                   RETURNING id, sent_at, read`
	n := model.Notification{UserID: userID, Category: category, Content: content}
	err := r.storage.pool.QueryRow(ctx, query, userID, category, content).Scan(&n.ID, &n.SentAt, &n.Read)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// --- RecommendationRepository implementation ---

func (r *recommendationRepository) Create(ctx context.Context, rec model.Recommendation) (*model.Recommendation, error) {
	// Second existence check at the data layer: the user may be gone by
	// the time the event is processed.
	const userQuery = `SELECT id FROM users WHERE id = $1`
	var userID int64
	if err := r.storage.pool.QueryRow(ctx, userQuery, rec.UserID).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, err
	}

	const query = `INSERT INTO recommendations (user_id, product_id, reason)
                   VALUES ($1, $2, $3)
                   RETURNING id`
	if err := r.storage.pool.QueryRow(ctx, query, rec.UserID, rec.ProductID, rec.Reason).Scan(&rec.ID); err != nil {
		return nil, err
	}
	return &rec, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
