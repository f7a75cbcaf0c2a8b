package repository

import (
    "context"
    "database/sql"

    "github.com/aerovia/emptyleg/internal/model"
)

// NotificationRepo persists advisory inbox messages.  Writes happen
// from the queue consumer, never from the booking transaction, so a
// failure here can never roll back a committed booking.
type NotificationRepo struct {
    db *sql.DB
}

// NewNotificationRepo constructs a NotificationRepo.
func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

// Create inserts a notification and returns its generated id.
// Duplicates are acceptable: notifications are advisory and carry no
// idempotency requirement.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) (uint64, error) {
    const q = `INSERT INTO notifications (user_id, title, message, type) VALUES (?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, n.UserID, n.Title, n.Message, n.Type)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    n.ID = uint64(id)
    return n.ID, nil
}

// ListByUser returns a user's notifications, newest first.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Notification, error) {
    const q = `SELECT id, user_id, title, message, type, read_at, created_at
        FROM notifications WHERE user_id = ? ORDER BY created_at DESC, id DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    items := make([]model.Notification, 0)
    for rows.Next() {
        var n model.Notification
        var readAt sql.NullTime
        if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &readAt, &n.CreatedAt); err != nil {
            return nil, err
        }
        if readAt.Valid {
            t := readAt.Time
            n.ReadAt = &t
        }
        items = append(items, n)
    }
    return items, rows.Err()
}

// MarkRead stamps a notification as read.  Only the recipient can mark
// their own notifications; a mismatch matches zero rows.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uint64) error {
    const q = `UPDATE notifications SET read_at = NOW() WHERE id = ? AND user_id = ? AND read_at IS NULL`
    res, err := r.db.ExecContext(ctx, q, id, userID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}
