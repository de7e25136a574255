package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/commtrack/api/internal/entity"
)

// NotificationsRepository stores the derived notification set.
type NotificationsRepository interface {
	Replace(ctx context.Context, notifications []entity.Notification) (int64, error)
	List(ctx context.Context, notificationType string) ([]entity.Notification, error)
}

var notificationColumns = []string{"company_id", "company_name", "type", "message", "due_date"}

// PGXNotificationsRepository implements NotificationsRepository with pgx.
type PGXNotificationsRepository struct {
	pool pgxPool
}

// NewPGXNotificationsRepository instantiates a notifications repository.
func NewPGXNotificationsRepository(pool *pgxpool.Pool) *PGXNotificationsRepository {
	return &PGXNotificationsRepository{pool: pool}
}

// Replace swaps the stored notifications for the given set atomically.
func (r *PGXNotificationsRepository) Replace(ctx context.Context, notifications []entity.Notification) (int64, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("start notifications tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM notifications`); err != nil {
		return 0, fmt.Errorf("clear notifications: %w", err)
	}

	var copied int64
	if len(notifications) > 0 {
		copied, err = tx.CopyFrom(ctx, pgx.Identifier{"notifications"}, notificationColumns,
			pgx.CopyFromSlice(len(notifications), func(i int) ([]any, error) {
				n := notifications[i]
				return []any{n.CompanyID, n.CompanyName, n.Type, n.Message, n.DueDate}, nil
			}),
		)
		if err != nil {
			return 0, fmt.Errorf("copy notifications: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit notifications tx: %w", err)
	}
	return copied, nil
}

// List returns notifications ordered by due date, optionally narrowed to one type.
func (r *PGXNotificationsRepository) List(ctx context.Context, notificationType string) ([]entity.Notification, error) {
	query := `SELECT id, company_id, company_name, type, message, due_date, created_at FROM notifications`
	var args []any
	if notificationType != "" {
		query += ` WHERE type = $1`
		args = append(args, notificationType)
	}
	query += ` ORDER BY due_date ASC, company_name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []entity.Notification{}
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.CompanyName, &n.Type, &n.Message, &n.DueDate, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return notifications, nil
}
