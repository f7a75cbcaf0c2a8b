package model

import "time"

// Flight lifecycle statuses as stored in the flights.status column.
// PENDING flights await admin review; only AVAILABLE flights are
// bookable.  CANCELLED and DECLINED are terminal.
const (
    FlightStatusPending   = "PENDING"
    FlightStatusAvailable = "AVAILABLE"
    FlightStatusCancelled = "CANCELLED"
    FlightStatusDeclined  = "DECLINED"
)

// Derived selling states reported to clients.  They are computed from
// seat counts on every read and never written to the database, so a
// flight whose last seat was just sold shows up as FULLY_BOOKED on the
// next read without any extra write.
const (
    SellingStatusAvailable       = "AVAILABLE"
    SellingStatusPartiallyBooked = "PARTIALLY_BOOKED"
    SellingStatusFullyBooked     = "FULLY_BOOKED"
)

// Flight represents one sellable empty-leg trip published by an
// operator.  TotalSeats is immutable after creation; AvailableSeats is
// mutated exclusively through conditional updates in the repository
// layer and always satisfies 0 <= AvailableSeats <= TotalSeats.
//
// Fields:
//  ID                 – primary key identifier.
//  Reference          – human-readable display id ("FL-…"), unique.
//  OperatorID         – operator who published the flight.
//  Aircraft           – aircraft descriptor (e.g. "Citation XLS+").
//  OriginCode         – IATA/ICAO code of the departure airport.
//  OriginCity         – departure city name.
//  DestinationCode    – code of the arrival airport.
//  DestinationCity    – arrival city name.
//  DepartsAt          – scheduled departure (UTC).
//  ArrivesAt          – scheduled arrival (UTC).
//  OriginalPriceCents – full charter price before the empty-leg discount.
//  PriceCents         – discounted price per seat in cents.
//  Currency           – ISO 4217 currency code.
//  TotalSeats         – seat capacity, immutable.
//  AvailableSeats     – seats still open for sale.
//  Status             – lifecycle status (see constants above).
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Flight struct {
    ID                 uint64    // flights.id
    Reference          string    // flights.reference
    OperatorID         uint64    // flights.operator_id
    Aircraft           string    // flights.aircraft
    OriginCode         string    // flights.origin_code
    OriginCity         string    // flights.origin_city
    DestinationCode    string    // flights.destination_code
    DestinationCity    string    // flights.destination_city
    DepartsAt          time.Time // flights.departs_at
    ArrivesAt          time.Time // flights.arrives_at
    OriginalPriceCents uint64    // flights.original_price_cents
    PriceCents         uint64    // flights.price_cents
    Currency           string    // flights.currency
    TotalSeats         uint32    // flights.total_seats
    AvailableSeats     uint32    // flights.available_seats
    Status             string    // flights.status
    CreatedAt          time.Time // flights.created_at
    UpdatedAt          time.Time // flights.updated_at
}

// SellingStatus derives the client-facing state of an AVAILABLE flight
// from its seat counters.  For flights in any other lifecycle status it
// returns the stored status unchanged.
func (f *Flight) SellingStatus() string {
    if f.Status != FlightStatusAvailable {
        return f.Status
    }
    switch {
    case f.AvailableSeats == 0:
        return SellingStatusFullyBooked
    case f.AvailableSeats < f.TotalSeats:
        return SellingStatusPartiallyBooked
    default:
        return SellingStatusAvailable
    }
}

// BookedSeats returns the number of seats already sold on the flight.
func (f *Flight) BookedSeats() uint32 {
    if f.AvailableSeats > f.TotalSeats {
        return 0
    }
    return f.TotalSeats - f.AvailableSeats
}
