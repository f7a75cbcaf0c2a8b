package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/aerovia/emptyleg/internal/model"
)

// OperatorRepo persists operator records.  An operator row is created
// when an OPERATOR account first registers its company details.
type OperatorRepo struct {
    db *sql.DB
}

// NewOperatorRepo constructs an OperatorRepo bound to the given database.
func NewOperatorRepo(db *sql.DB) *OperatorRepo { return &OperatorRepo{db: db} }

const operatorColumns = `id, reference, user_id, company_name, contact_email, created_at, updated_at`

func scanOperator(row interface{ Scan(...any) error }, o *model.Operator) error {
    return row.Scan(&o.ID, &o.Reference, &o.UserID, &o.CompanyName, &o.ContactEmail, &o.CreatedAt, &o.UpdatedAt)
}

// Resolve returns the operator for an account, creating it when absent.
// Same upsert shape as CustomerRepo.Resolve: the unique user_id index
// plus LAST_INSERT_ID(id) keeps one row per account under concurrency.
func (r *OperatorRepo) Resolve(ctx context.Context, userID uint64, reference, companyName, contactEmail string) (*model.Operator, error) {
    const upsert = `INSERT INTO operators (reference, user_id, company_name, contact_email)
        VALUES (?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)`
    res, err := r.db.ExecContext(ctx, upsert, reference, userID, companyName, contactEmail)
    if err != nil {
        return nil, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return nil, err
    }
    var o model.Operator
    const sel = `SELECT ` + operatorColumns + ` FROM operators WHERE id = ?`
    if err := scanOperator(r.db.QueryRowContext(ctx, sel, id), &o); err != nil {
        return nil, err
    }
    return &o, nil
}

// GetByUserID returns the operator owned by an account.
func (r *OperatorRepo) GetByUserID(ctx context.Context, userID uint64) (*model.Operator, error) {
    const q = `SELECT ` + operatorColumns + ` FROM operators WHERE user_id = ?`
    var o model.Operator
    if err := scanOperator(r.db.QueryRowContext(ctx, q, userID), &o); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, err
    }
    return &o, nil
}

// GetByID returns an operator by primary key.
func (r *OperatorRepo) GetByID(ctx context.Context, id uint64) (*model.Operator, error) {
    const q = `SELECT ` + operatorColumns + ` FROM operators WHERE id = ?`
    var o model.Operator
    if err := scanOperator(r.db.QueryRowContext(ctx, q, id), &o); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, err
    }
    return &o, nil
}
