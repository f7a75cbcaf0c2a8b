package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/aerovia/emptyleg/internal/model"
)

// CustomerRepo persists customer profiles.  Profiles are created lazily
// on the first booking attempt, so Resolve must be safe under
// concurrent first bookings from the same account.
type CustomerRepo struct {
    db *sql.DB
}

// NewCustomerRepo constructs a CustomerRepo bound to the given database.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerColumns = `id, reference, user_id, full_name, phone, created_at, updated_at`

func scanCustomer(row interface{ Scan(...any) error }, c *model.Customer) error {
    return row.Scan(&c.ID, &c.Reference, &c.UserID, &c.FullName, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
}

// Resolve returns the customer for an account, creating it when absent.
// The upsert is keyed on the unique user_id index and uses
// LAST_INSERT_ID(id) so the existing row's id is reported on the
// duplicate path; two racing first bookings therefore always converge
// on a single customer row.  The reference is only consumed when the
// insert actually happens.
func (r *CustomerRepo) Resolve(ctx context.Context, userID uint64, reference, fullName, phone string) (*model.Customer, error) {
    const upsert = `INSERT INTO customers (reference, user_id, full_name, phone)
        VALUES (?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)`
    res, err := r.db.ExecContext(ctx, upsert, reference, userID, fullName, phone)
    if err != nil {
        return nil, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return nil, err
    }
    var c model.Customer
    const sel = `SELECT ` + customerColumns + ` FROM customers WHERE id = ?`
    if err := scanCustomer(r.db.QueryRowContext(ctx, sel, id), &c); err != nil {
        return nil, err
    }
    return &c, nil
}

// GetByUserID returns the customer profile for an account.
func (r *CustomerRepo) GetByUserID(ctx context.Context, userID uint64) (*model.Customer, error) {
    const q = `SELECT ` + customerColumns + ` FROM customers WHERE user_id = ?`
    var c model.Customer
    if err := scanCustomer(r.db.QueryRowContext(ctx, q, userID), &c); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, err
    }
    return &c, nil
}
