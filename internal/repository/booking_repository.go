package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/aerovia/emptyleg/internal/model"
)

// BookingRepo persists bookings and their passenger rows.  The two
// write paths — CreateConfirmed and Cancel — each run as a single
// database transaction so a booking can never exist without its
// passengers and matching seat adjustment, or vice versa.
type BookingRepo struct {
    db      *sql.DB
    flights *FlightRepo
}

// NewBookingRepo constructs a BookingRepo.  The flight repository is
// required because seat reservation happens inside the same
// transaction as the booking insert.
func NewBookingRepo(db *sql.DB, flights *FlightRepo) *BookingRepo {
    return &BookingRepo{db: db, flights: flights}
}

const bookingColumns = `id, reference, customer_id, flight_id, passenger_count,
    total_amount_cents, currency, payment_method, contact_email, special_requests,
    status, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }, b *model.Booking) error {
    return row.Scan(
        &b.ID, &b.Reference, &b.CustomerID, &b.FlightID, &b.PassengerCount,
        &b.TotalAmountCents, &b.Currency, &b.PaymentMethod, &b.ContactEmail, &b.SpecialRequests,
        &b.Status, &b.CreatedAt, &b.UpdatedAt,
    )
}

// CreateConfirmed atomically books seats: it re-reads the flight under
// the transaction, inserts the booking in CONFIRMED status, bulk
// inserts one passenger row per seat and applies the conditional seat
// decrement.  Any failure rolls back every write.  On success the
// booking's generated fields are populated and the flight as read
// inside the transaction is returned for use in notifications.
func (r *BookingRepo) CreateConfirmed(ctx context.Context, b *model.Booking, passengers []model.Passenger) (*model.Flight, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    flight, err := r.flights.GetForBookingTx(ctx, tx, b.FlightID, b.PassengerCount)
    if err != nil {
        return nil, err
    }

    // Price from the row read under the transaction, not from whatever
    // the caller saw earlier.
    b.TotalAmountCents = flight.PriceCents * uint64(b.PassengerCount)
    b.Currency = flight.Currency

    const ins = `INSERT INTO bookings (reference, customer_id, flight_id, passenger_count,
        total_amount_cents, currency, payment_method, contact_email, special_requests, status)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 'CONFIRMED')`
    res, err := tx.ExecContext(ctx, ins,
        b.Reference, b.CustomerID, b.FlightID, b.PassengerCount,
        b.TotalAmountCents, b.Currency, b.PaymentMethod, b.ContactEmail, b.SpecialRequests)
    if err != nil {
        return nil, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return nil, err
    }
    b.ID = uint64(id)

    if err := r.createPassengersTx(ctx, tx, b.ID, passengers); err != nil {
        return nil, err
    }

    // The conditional decrement is what actually prevents overselling;
    // the availability read above is only a fast-fail.
    if err := r.flights.ReserveSeatsTx(ctx, tx, b.FlightID, b.PassengerCount); err != nil {
        return nil, err
    }

    const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    if err := scanBooking(tx.QueryRowContext(ctx, sel, b.ID), b); err != nil {
        return nil, err
    }

    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true
    return flight, nil
}

// createPassengersTx bulk inserts passenger rows for a booking in one
// statement.  An empty slice is rejected upstream by validation.
func (r *BookingRepo) createPassengersTx(ctx context.Context, tx *sql.Tx, bookingID uint64, passengers []model.Passenger) error {
    if len(passengers) == 0 {
        return nil
    }
    query := `INSERT INTO passengers (booking_id, first_name, last_name, date_of_birth, document_type, document_number) VALUES `
    args := make([]any, 0, len(passengers)*6)
    for i, p := range passengers {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?, ?, ?, ?)"
        args = append(args, bookingID, p.FirstName, p.LastName, p.DateOfBirth, p.DocumentType, p.DocumentNumber)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}

// Cancel flips a CONFIRMED booking owned by the given customer to
// CANCELLED and credits its seats back to the flight, all in one
// transaction.  The status-guarded UPDATE is the idempotency barrier:
// a repeated cancel matches zero rows and returns ErrAlreadyCancelled
// without touching the seat counter again.
func (r *BookingRepo) Cancel(ctx context.Context, bookingID, customerID uint64) (*model.Booking, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    var owner uint64
    if err := tx.QueryRowContext(ctx, `SELECT customer_id FROM bookings WHERE id = ?`, bookingID).Scan(&owner); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, err
    }
    if owner != customerID {
        return nil, ErrForbidden
    }

    const upd = `UPDATE bookings SET status = 'CANCELLED', updated_at = NOW()
        WHERE id = ? AND status = 'CONFIRMED'`
    res, err := tx.ExecContext(ctx, upd, bookingID)
    if err != nil {
        return nil, err
    }
    affected, err := res.RowsAffected()
    if err != nil {
        return nil, err
    }
    if affected == 0 {
        return nil, ErrAlreadyCancelled
    }

    var b model.Booking
    const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    if err := scanBooking(tx.QueryRowContext(ctx, sel, bookingID), &b); err != nil {
        return nil, err
    }

    if err := r.flights.RestoreSeatsTx(ctx, tx, b.FlightID, b.PassengerCount); err != nil {
        return nil, err
    }

    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true
    return &b, nil
}

// GetForCustomer returns a booking with its passengers, enforcing
// ownership.  ErrNotFound is returned when the booking does not exist;
// ErrForbidden when it belongs to another customer.
func (r *BookingRepo) GetForCustomer(ctx context.Context, bookingID, customerID uint64) (*model.Booking, []model.Passenger, error) {
    var b model.Booking
    const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    if err := scanBooking(r.db.QueryRowContext(ctx, q, bookingID), &b); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, nil, ErrNotFound
        }
        return nil, nil, err
    }
    if b.CustomerID != customerID {
        return nil, nil, ErrForbidden
    }
    passengers, err := r.listPassengers(ctx, bookingID)
    if err != nil {
        return nil, nil, err
    }
    return &b, passengers, nil
}

func (r *BookingRepo) listPassengers(ctx context.Context, bookingID uint64) ([]model.Passenger, error) {
    // DATE_FORMAT keeps date_of_birth a plain string under parseTime=true.
    const q = `SELECT id, booking_id, first_name, last_name, DATE_FORMAT(date_of_birth, '%Y-%m-%d'),
        document_type, document_number, created_at
        FROM passengers WHERE booking_id = ? ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q, bookingID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    passengers := make([]model.Passenger, 0)
    for rows.Next() {
        var p model.Passenger
        if err := rows.Scan(&p.ID, &p.BookingID, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.DocumentType, &p.DocumentNumber, &p.CreatedAt); err != nil {
            return nil, err
        }
        passengers = append(passengers, p)
    }
    return passengers, rows.Err()
}

// BookingWithRoute pairs a booking with display fields of its flight
// for list endpoints.
type BookingWithRoute struct {
    model.Booking
    FlightReference string // flights.reference
    OriginCode      string // flights.origin_code
    DestinationCode string // flights.destination_code
    DepartsAt       string // flights.departs_at, RFC3339
}

// ListByCustomer returns all bookings of a customer, newest first.
func (r *BookingRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]BookingWithRoute, error) {
    const q = `SELECT b.id, b.reference, b.customer_id, b.flight_id, b.passenger_count,
            b.total_amount_cents, b.currency, b.payment_method, b.contact_email, b.special_requests,
            b.status, b.created_at, b.updated_at,
            f.reference, f.origin_code, f.destination_code, f.departs_at
        FROM bookings b
        JOIN flights f ON f.id = b.flight_id
        WHERE b.customer_id = ?
        ORDER BY b.created_at DESC`
    return r.listWithRoute(ctx, q, customerID)
}

// ListByOperator returns all bookings taken on an operator's flights,
// newest first.
func (r *BookingRepo) ListByOperator(ctx context.Context, operatorID uint64) ([]BookingWithRoute, error) {
    const q = `SELECT b.id, b.reference, b.customer_id, b.flight_id, b.passenger_count,
            b.total_amount_cents, b.currency, b.payment_method, b.contact_email, b.special_requests,
            b.status, b.created_at, b.updated_at,
            f.reference, f.origin_code, f.destination_code, f.departs_at
        FROM bookings b
        JOIN flights f ON f.id = b.flight_id
        WHERE f.operator_id = ?
        ORDER BY b.created_at DESC`
    return r.listWithRoute(ctx, q, operatorID)
}

func (r *BookingRepo) listWithRoute(ctx context.Context, q string, arg any) ([]BookingWithRoute, error) {
    rows, err := r.db.QueryContext(ctx, q, arg)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    items := make([]BookingWithRoute, 0)
    for rows.Next() {
        var it BookingWithRoute
        var departsAt sql.NullTime
        if err := rows.Scan(
            &it.ID, &it.Reference, &it.CustomerID, &it.FlightID, &it.PassengerCount,
            &it.TotalAmountCents, &it.Currency, &it.PaymentMethod, &it.ContactEmail, &it.SpecialRequests,
            &it.Status, &it.CreatedAt, &it.UpdatedAt,
            &it.FlightReference, &it.OriginCode, &it.DestinationCode, &departsAt,
        ); err != nil {
            return nil, err
        }
        if departsAt.Valid {
            it.DepartsAt = departsAt.Time.UTC().Format(time.RFC3339)
        }
        items = append(items, it)
    }
    return items, rows.Err()
}
