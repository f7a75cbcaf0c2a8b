// Package revenue aggregates confirmed-booking totals into platform and
// operator earnings summaries. It only ever reads; all numbers derive
// from committed bookings at query time.
package revenue

import (
    "context"

    "github.com/aerovia/emptyleg/internal/repository"
)

// CommissionBasisPoints is the flat platform take on every confirmed
// booking: 1000 basis points, i.e. 10%.
const CommissionBasisPoints = 1000

// Store is the read-only aggregation surface. *repository.RevenueRepo
// satisfies it.
type Store interface {
    GrossPlatform(ctx context.Context) (grossCents, bookings uint64, err error)
    GrossOperator(ctx context.Context, operatorID uint64) (grossCents, bookings uint64, err error)
    OccupancyByOperator(ctx context.Context, operatorID uint64) ([]repository.FlightOccupancy, error)
}

// Summary is an earnings roll-up. Gross always equals commission plus
// net; commission rounds down to the cent and net absorbs the remainder.
type Summary struct {
    GrossCents      uint64                       `json:"gross_cents"`
    CommissionCents uint64                       `json:"commission_cents"`
    NetCents        uint64                       `json:"net_cents"`
    Bookings        uint64                       `json:"bookings"`
    Flights         []repository.FlightOccupancy `json:"flights"`
}

// Service computes revenue summaries.
type Service struct {
    store Store
}

// NewService constructs a revenue Service.
func NewService(store Store) *Service { return &Service{store: store} }

// Platform summarises earnings across every operator, with per-flight
// occupancy rows for the whole marketplace.
func (s *Service) Platform(ctx context.Context) (*Summary, error) {
    gross, bookings, err := s.store.GrossPlatform(ctx)
    if err != nil {
        return nil, err
    }
    flights, err := s.store.OccupancyByOperator(ctx, 0)
    if err != nil {
        return nil, err
    }
    return summarize(gross, bookings, flights), nil
}

// Operator summarises one operator's earnings and flight occupancy.
func (s *Service) Operator(ctx context.Context, operatorID uint64) (*Summary, error) {
    gross, bookings, err := s.store.GrossOperator(ctx, operatorID)
    if err != nil {
        return nil, err
    }
    flights, err := s.store.OccupancyByOperator(ctx, operatorID)
    if err != nil {
        return nil, err
    }
    return summarize(gross, bookings, flights), nil
}

// Commission returns the platform cut of a gross amount in cents,
// rounded down.
func Commission(grossCents uint64) uint64 {
    return grossCents * CommissionBasisPoints / 10000
}

func summarize(gross, bookings uint64, flights []repository.FlightOccupancy) *Summary {
    commission := Commission(gross)
    return &Summary{
        GrossCents:      gross,
        CommissionCents: commission,
        NetCents:        gross - commission,
        Bookings:        bookings,
        Flights:         flights,
    }
}
