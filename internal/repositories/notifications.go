package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/musicadm/internal/services"
	"github.com/desertthunder/musicadm/internal/shared"
)

// DefaultJournalLimit is the number of entries returned by [NotificationJournal.List] when no limit is given.
const DefaultJournalLimit = 20

// NotificationJournal persists notifications in the notifications table.
//
// It implements [services.Notifier]; write failures are logged and otherwise ignored.
type NotificationJournal struct {
	db     *sql.DB
	logger *log.Logger
}

// NewNotificationJournal creates a [NotificationJournal] on db. A nil logger discards journal errors.
func NewNotificationJournal(db *sql.DB, logger *log.Logger) *NotificationJournal {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &NotificationJournal{db: db, logger: logger}
}

// Notify records n, detached from the caller's cancellation.
func (j *NotificationJournal) Notify(ctx context.Context, n services.Notification) {
	if err := j.Record(context.WithoutCancel(ctx), n); err != nil {
		j.logger.Warn("failed to journal notification", "error", err)
	}
}

// Record inserts n. Missing ID and timestamp are filled in.
func (j *NotificationJournal) Record(ctx context.Context, n services.Notification) error {
	if n.ID == "" {
		n.ID = shared.GenerateID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	sequence, err := NextSequence(ctx, j.db, "notifications")
	if err != nil {
		return fmt.Errorf("%w: failed to generate sequence: %v", shared.ErrDatabase, err)
	}

	query := `
		INSERT INTO notifications (id, sequence, level, message, status, created_at) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = j.db.ExecContext(ctx, query, n.ID, sequence, string(n.Level), n.Message, n.Status, n.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("%w: failed to insert notification: %v", shared.ErrDatabase, err)
	}
	return nil
}

// List returns up to limit notifications, newest first. A limit <= 0 uses [DefaultJournalLimit].
func (j *NotificationJournal) List(ctx context.Context, limit int) ([]services.Notification, error) {
	if limit <= 0 {
		limit = DefaultJournalLimit
	}

	query := `
		SELECT id, level, message, status, created_at
		FROM notifications
		ORDER BY sequence DESC
		LIMIT ?
	`

	rows, err := j.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query notifications: %v", shared.ErrDatabase, err)
	}
	defer rows.Close()

	notifications := []services.Notification{}
	for rows.Next() {
		var (
			n     services.Notification
			level string
		)
		if err := rows.Scan(&n.ID, &level, &n.Message, &n.Status, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan notification: %v", shared.ErrDatabase, err)
		}
		n.Level = services.Level(level)
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating notifications: %v", shared.ErrDatabase, err)
	}
	return notifications, nil
}

// Clear removes every notification and returns how many were deleted.
func (j *NotificationJournal) Clear(ctx context.Context) (int64, error) {
	result, err := j.db.ExecContext(ctx, "DELETE FROM notifications")
	if err != nil {
		return 0, fmt.Errorf("%w: failed to clear notifications: %v", shared.ErrDatabase, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}
