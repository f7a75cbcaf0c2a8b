// Package repository contains data access logic for the marketplace.
// This file covers flights: the seat inventory is the only contended
// resource in the system, so every mutation of available_seats goes
// through a conditional UPDATE and never through read-modify-write in
// application code.
package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/aerovia/emptyleg/internal/model"
)

const flightColumns = `id, reference, operator_id, aircraft, origin_code, origin_city,
    destination_code, destination_city, departs_at, arrives_at,
    original_price_cents, price_cents, currency, total_seats, available_seats,
    status, created_at, updated_at`

// FlightRepo manages persistence for flights.
type FlightRepo struct {
    db *sql.DB
}

// NewFlightRepo constructs a FlightRepo bound to the given database.
func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

// DB exposes the underlying sql.DB so callers can begin transactions
// spanning multiple repositories.
func (r *FlightRepo) DB() *sql.DB { return r.db }

func scanFlight(row interface{ Scan(...any) error }, f *model.Flight) error {
    return row.Scan(
        &f.ID, &f.Reference, &f.OperatorID, &f.Aircraft, &f.OriginCode, &f.OriginCity,
        &f.DestinationCode, &f.DestinationCity, &f.DepartsAt, &f.ArrivesAt,
        &f.OriginalPriceCents, &f.PriceCents, &f.Currency, &f.TotalSeats, &f.AvailableSeats,
        &f.Status, &f.CreatedAt, &f.UpdatedAt,
    )
}

// Create inserts a new flight in PENDING status with available_seats
// initialised to total_seats.  The generated ID and DB-default fields
// are populated on the given Flight.
func (r *FlightRepo) Create(ctx context.Context, f *model.Flight) error {
    const q = `INSERT INTO flights (reference, operator_id, aircraft, origin_code, origin_city,
        destination_code, destination_city, departs_at, arrives_at,
        original_price_cents, price_cents, currency, total_seats, available_seats, status)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'PENDING')`
    res, err := r.db.ExecContext(ctx, q,
        f.Reference, f.OperatorID, f.Aircraft, f.OriginCode, f.OriginCity,
        f.DestinationCode, f.DestinationCity, f.DepartsAt, f.ArrivesAt,
        f.OriginalPriceCents, f.PriceCents, f.Currency, f.TotalSeats, f.TotalSeats)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    f.ID = uint64(id)
    const sel = `SELECT ` + flightColumns + ` FROM flights WHERE id = ?`
    return scanFlight(r.db.QueryRowContext(ctx, sel, f.ID), f)
}

// GetByID returns a flight by its primary key.
func (r *FlightRepo) GetByID(ctx context.Context, id uint64) (*model.Flight, error) {
    const q = `SELECT ` + flightColumns + ` FROM flights WHERE id = ?`
    var f model.Flight
    if err := scanFlight(r.db.QueryRowContext(ctx, q, id), &f); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, err
    }
    return &f, nil
}

// ListAvailable returns flights open for sale, soonest departure first.
// Flights whose seats are exhausted are still listed; clients see them
// as FULLY_BOOKED via the derived selling status.
func (r *FlightRepo) ListAvailable(ctx context.Context) ([]model.Flight, error) {
    const q = `SELECT ` + flightColumns + ` FROM flights
        WHERE status = 'AVAILABLE' AND departs_at > UTC_TIMESTAMP()
        ORDER BY departs_at`
    return r.list(ctx, q)
}

// ListByOperator returns all flights published by an operator, newest
// first, regardless of status.
func (r *FlightRepo) ListByOperator(ctx context.Context, operatorID uint64) ([]model.Flight, error) {
    const q = `SELECT ` + flightColumns + ` FROM flights
        WHERE operator_id = ? ORDER BY created_at DESC`
    return r.list(ctx, q, operatorID)
}

// ListByStatus returns flights in the given lifecycle status, oldest
// first so admins review submissions in arrival order.
func (r *FlightRepo) ListByStatus(ctx context.Context, status string) ([]model.Flight, error) {
    const q = `SELECT ` + flightColumns + ` FROM flights
        WHERE status = ? ORDER BY created_at`
    return r.list(ctx, q, status)
}

func (r *FlightRepo) list(ctx context.Context, q string, args ...any) ([]model.Flight, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    flights := make([]model.Flight, 0)
    for rows.Next() {
        var f model.Flight
        if err := scanFlight(rows, &f); err != nil {
            return nil, err
        }
        flights = append(flights, f)
    }
    return flights, rows.Err()
}

// UpdateStatus transitions a flight's lifecycle status.  The fromStatus
// guard makes transitions race-safe: approving an already-cancelled
// flight, or cancelling one twice, matches zero rows and returns
// ErrNotFound.
func (r *FlightRepo) UpdateStatus(ctx context.Context, id uint64, fromStatus, toStatus string) error {
    const q = `UPDATE flights SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?`
    res, err := r.db.ExecContext(ctx, q, toStatus, id, fromStatus)
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

// GetForBookingTx reads a flight inside the booking transaction and
// returns it only when it is AVAILABLE and has at least seats open
// seats; otherwise ErrFlightNotBookable.  A missing flight reports the
// same error so callers cannot distinguish unlisted inventory.
func (r *FlightRepo) GetForBookingTx(ctx context.Context, tx *sql.Tx, flightID uint64, seats uint32) (*model.Flight, error) {
    const q = `SELECT ` + flightColumns + ` FROM flights
        WHERE id = ? AND status = 'AVAILABLE' AND available_seats >= ?`
    var f model.Flight
    if err := scanFlight(tx.QueryRowContext(ctx, q, flightID, seats), &f); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrFlightNotBookable
        }
        return nil, err
    }
    return &f, nil
}

// ReserveSeatsTx decrements available_seats by exactly n within the
// caller's transaction.  The WHERE guard lets the database enforce the
// non-negativity invariant under concurrency: when a competing booking
// got there first the update matches zero rows and ErrInsufficientSeats
// is returned, which must abort the whole transaction.
func (r *FlightRepo) ReserveSeatsTx(ctx context.Context, tx *sql.Tx, flightID uint64, n uint32) error {
    const q = `UPDATE flights SET available_seats = available_seats - ?, updated_at = NOW()
        WHERE id = ? AND status = 'AVAILABLE' AND available_seats >= ?`
    res, err := tx.ExecContext(ctx, q, n, flightID, n)
    if err != nil {
        return err
    }
    affected, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        return ErrInsufficientSeats
    }
    return nil
}

// RestoreSeatsTx is the inverse of ReserveSeatsTx, used when a booking
// is cancelled.  The upper-bound guard keeps available_seats from ever
// exceeding total_seats; exactly-once crediting is guaranteed by the
// booking status transition that precedes this call in the same
// transaction.
func (r *FlightRepo) RestoreSeatsTx(ctx context.Context, tx *sql.Tx, flightID uint64, n uint32) error {
    const q = `UPDATE flights SET available_seats = available_seats + ?, updated_at = NOW()
        WHERE id = ? AND available_seats + ? <= total_seats`
    res, err := tx.ExecContext(ctx, q, n, flightID, n)
    if err != nil {
        return err
    }
    affected, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        return ErrNotFound
    }
    return nil
}
