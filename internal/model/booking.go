package model

import "time"

// Booking statuses.  Bookings are created directly as CONFIRMED because
// payment is validated by the caller before the booking transaction
// runs.  CANCELLED is terminal; the transition restores the flight's
// seats exactly once.
const (
    BookingStatusConfirmed = "CONFIRMED"
    BookingStatusCancelled = "CANCELLED"
)

// Booking records a customer's reservation of one or more seats on a
// flight.  It is created atomically with its Passenger rows and the
// corresponding seat decrement; PassengerCount always equals the number
// of passenger rows attached to the booking.
//
// Fields:
//  ID               – primary key identifier.
//  Reference        – human-readable display id ("BK-…"), unique.
//  CustomerID       – customer who made the booking.
//  FlightID         – flight being booked.
//  PassengerCount   – number of seats reserved.
//  TotalAmountCents – total amount charged in cents.
//  Currency         – ISO 4217 currency code.
//  PaymentMethod    – method reported by the payment collaborator.
//  ContactEmail     – email for booking correspondence.
//  SpecialRequests  – free-form customer notes (may be empty).
//  Status           – CONFIRMED or CANCELLED.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Booking struct {
    ID               uint64    // bookings.id
    Reference        string    // bookings.reference
    CustomerID       uint64    // bookings.customer_id
    FlightID         uint64    // bookings.flight_id
    PassengerCount   uint32    // bookings.passenger_count
    TotalAmountCents uint64    // bookings.total_amount_cents
    Currency         string    // bookings.currency
    PaymentMethod    string    // bookings.payment_method
    ContactEmail     string    // bookings.contact_email
    SpecialRequests  string    // bookings.special_requests
    Status           string    // bookings.status
    CreatedAt        time.Time // bookings.created_at
    UpdatedAt        time.Time // bookings.updated_at
}

// Passenger is one seat's occupant in a booking.  Passenger rows are
// owned exclusively by their booking: created with it, never updated,
// deleted only by cascading booking deletion.
//
// Fields:
//  ID             – primary key identifier.
//  BookingID      – owning booking.
//  FirstName      – passenger given name.
//  LastName       – passenger family name.
//  DateOfBirth    – date of birth ("YYYY-MM-DD", may be empty).
//  DocumentType   – travel document type (e.g. PASSPORT).
//  DocumentNumber – travel document number.
//  CreatedAt      – creation timestamp.
type Passenger struct {
    ID             uint64    // passengers.id
    BookingID      uint64    // passengers.booking_id
    FirstName      string    // passengers.first_name
    LastName       string    // passengers.last_name
    DateOfBirth    string    // passengers.date_of_birth
    DocumentType   string    // passengers.document_type
    DocumentNumber string    // passengers.document_number
    CreatedAt      time.Time // passengers.created_at
}
