package repository

import (
    "context"
    "database/sql"
)

// RevenueRepo runs the read-only aggregate queries behind financial
// reporting.  It has no write path and therefore cannot corrupt
// inventory or booking state; all numbers are reconstructed from the
// committed booking set on every call.
type RevenueRepo struct {
    db *sql.DB
}

// NewRevenueRepo constructs a RevenueRepo bound to the given database.
func NewRevenueRepo(db *sql.DB) *RevenueRepo { return &RevenueRepo{db: db} }

// GrossPlatform returns the sum of total_amount_cents over all
// CONFIRMED bookings together with their count.
func (r *RevenueRepo) GrossPlatform(ctx context.Context) (uint64, uint64, error) {
    const q = `SELECT COALESCE(SUM(total_amount_cents), 0), COUNT(*)
        FROM bookings WHERE status = 'CONFIRMED'`
    var gross, count uint64
    if err := r.db.QueryRowContext(ctx, q).Scan(&gross, &count); err != nil {
        return 0, 0, err
    }
    return gross, count, nil
}

// GrossOperator returns the confirmed-booking sum and count restricted
// to one operator's flights.
func (r *RevenueRepo) GrossOperator(ctx context.Context, operatorID uint64) (uint64, uint64, error) {
    const q = `SELECT COALESCE(SUM(b.total_amount_cents), 0), COUNT(b.id)
        FROM bookings b
        JOIN flights f ON f.id = b.flight_id
        WHERE b.status = 'CONFIRMED' AND f.operator_id = ?`
    var gross, count uint64
    if err := r.db.QueryRowContext(ctx, q, operatorID).Scan(&gross, &count); err != nil {
        return 0, 0, err
    }
    return gross, count, nil
}

// FlightOccupancy is a per-flight seat and revenue summary derived
// purely from already-stored fields.
type FlightOccupancy struct {
    FlightID        uint64 `json:"flight_id"`
    Reference       string `json:"reference"`
    OriginCode      string `json:"origin_code"`
    DestinationCode string `json:"destination_code"`
    TotalSeats      uint32 `json:"total_seats"`
    AvailableSeats  uint32 `json:"available_seats"`
    BookedSeats     uint32 `json:"booked_seats"`
    RevenueCents    uint64 `json:"revenue_cents"`
}

// OccupancyByOperator returns seat-occupancy and revenue statistics for
// each of an operator's flights.  booked_seats is derived as
// total_seats - available_seats; revenue sums only CONFIRMED bookings.
// Pass operatorID = 0 for the platform-wide view.
func (r *RevenueRepo) OccupancyByOperator(ctx context.Context, operatorID uint64) ([]FlightOccupancy, error) {
    q := `SELECT f.id, f.reference, f.origin_code, f.destination_code,
            f.total_seats, f.available_seats,
            COALESCE(SUM(CASE WHEN b.status = 'CONFIRMED' THEN b.total_amount_cents ELSE 0 END), 0)
        FROM flights f
        LEFT JOIN bookings b ON b.flight_id = f.id
        WHERE f.status <> 'DECLINED'`
    args := []any{}
    if operatorID != 0 {
        q += ` AND f.operator_id = ?`
        args = append(args, operatorID)
    }
    q += ` GROUP BY f.id, f.reference, f.origin_code, f.destination_code, f.total_seats, f.available_seats
        ORDER BY f.departs_at`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    stats := make([]FlightOccupancy, 0)
    for rows.Next() {
        var s FlightOccupancy
        if err := rows.Scan(&s.FlightID, &s.Reference, &s.OriginCode, &s.DestinationCode,
            &s.TotalSeats, &s.AvailableSeats, &s.RevenueCents); err != nil {
            return nil, err
        }
        s.BookedSeats = s.TotalSeats - s.AvailableSeats
        stats = append(stats, s)
    }
    return stats, rows.Err()
}
