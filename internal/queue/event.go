// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published after a booking transaction commits.
// It carries enough information for downstream consumers to notify the
// operator and log the sale without querying the primary database.
type BookingCreatedEvent struct {
    EventID          string `json:"event_id"`
    BookingID        uint64 `json:"booking_id"`
    BookingReference string `json:"booking_reference"`
    CustomerID       uint64 `json:"customer_id"`
    FlightID         uint64 `json:"flight_id"`
    FlightReference  string `json:"flight_reference"`
    OperatorID       uint64 `json:"operator_id"`
    OperatorUserID   uint64 `json:"operator_user_id"`
    OriginCode       string `json:"origin_code"`
    DestinationCode  string `json:"destination_code"`
    DepartsAt        string `json:"departs_at"`
    PassengerCount   uint32 `json:"passenger_count"`
    TotalAmountCents uint64 `json:"total_amount_cents"`
    Currency         string `json:"currency"`
    ContactEmail     string `json:"contact_email"`
    CreatedAt        string `json:"created_at"`
}

// BookingCancelledEvent is published after a booking is cancelled and its
// seats have been returned to the flight.
type BookingCancelledEvent struct {
    EventID          string `json:"event_id"`
    BookingID        uint64 `json:"booking_id"`
    BookingReference string `json:"booking_reference"`
    FlightID         uint64 `json:"flight_id"`
    FlightReference  string `json:"flight_reference"`
    OperatorUserID   uint64 `json:"operator_user_id"`
    PassengerCount   uint32 `json:"passenger_count"`
    CancelledAt      string `json:"cancelled_at"`
}
