// Package booking implements the booking workflow: input validation,
// customer resolution, the atomic create/cancel transaction and the
// fire-and-forget operator notification.  Persistence and dispatch are
// consumed through small interfaces so the workflow is testable without
// a database or a broker.
package booking

import (
    "context"
    "fmt"
    "log"
    "time"

    "github.com/go-playground/validator/v10"
    "github.com/google/uuid"

    "github.com/aerovia/emptyleg/internal/model"
    "github.com/aerovia/emptyleg/internal/queue"
    "github.com/aerovia/emptyleg/internal/utils"
)

// Store is the transactional persistence surface the workflow needs.
// *repository.BookingRepo satisfies it.
type Store interface {
    CreateConfirmed(ctx context.Context, b *model.Booking, passengers []model.Passenger) (*model.Flight, error)
    Cancel(ctx context.Context, bookingID, customerID uint64) (*model.Booking, error)
}

// CustomerStore resolves the customer row for an authenticated user,
// creating it on first booking. *repository.CustomerRepo satisfies it.
type CustomerStore interface {
    Resolve(ctx context.Context, userID uint64, reference, fullName, phone string) (*model.Customer, error)
    GetByUserID(ctx context.Context, userID uint64) (*model.Customer, error)
}

// OperatorStore looks up the operator that owns a flight so the
// notification can reach the right account.
type OperatorStore interface {
    GetByID(ctx context.Context, id uint64) (*model.Operator, error)
}

// FlightStore reads flight rows outside the booking transaction.
type FlightStore interface {
    GetByID(ctx context.Context, id uint64) (*model.Flight, error)
}

// Dispatcher delivers domain events to the broker. Failures are
// advisory: the booking has already committed when dispatch runs.
type Dispatcher interface {
    BookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
    BookingCancelled(ctx context.Context, ev queue.BookingCancelledEvent) error
}

// PassengerInput is one traveller on the requested booking.
type PassengerInput struct {
    FirstName      string `json:"first_name" validate:"required,max=100"`
    LastName       string `json:"last_name" validate:"required,max=100"`
    DateOfBirth    string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
    DocumentType   string `json:"document_type" validate:"required,oneof=PASSPORT ID_CARD"`
    DocumentNumber string `json:"document_number" validate:"required,max=64"`
}

// CreateInput is the request body for creating a booking. The seat
// count is implied by the passenger list; one seat per passenger.
type CreateInput struct {
    FlightID        uint64           `json:"flight_id" validate:"required"`
    FullName        string           `json:"full_name" validate:"required,max=200"`
    Phone           string           `json:"phone" validate:"omitempty,max=32"`
    ContactEmail    string           `json:"contact_email" validate:"required,email"`
    PaymentMethod   string           `json:"payment_method" validate:"required,oneof=CARD WIRE INVOICE"`
    SpecialRequests string           `json:"special_requests" validate:"omitempty,max=1000"`
    Passengers      []PassengerInput `json:"passengers" validate:"required,min=1,max=19,dive"`
}

// ValidationError reports which input fields failed validation. It maps
// to HTTP 400 at the handler layer.
type ValidationError struct {
    Fields map[string]string
}

func (e *ValidationError) Error() string {
    return fmt.Sprintf("invalid input: %d field(s) rejected", len(e.Fields))
}

// Service coordinates the booking workflow.
type Service struct {
    store     Store
    customers CustomerStore
    operators OperatorStore
    flights   FlightStore
    dispatch  Dispatcher
    validate  *validator.Validate
}

// NewService wires the workflow's dependencies.
func NewService(store Store, customers CustomerStore, operators OperatorStore, flights FlightStore, dispatch Dispatcher) *Service {
    return &Service{
        store:     store,
        customers: customers,
        operators: operators,
        flights:   flights,
        dispatch:  dispatch,
        validate:  validator.New(),
    }
}

// Create books seats on a flight for the authenticated user. It
// validates the input, resolves (or creates) the customer row, runs the
// atomic booking transaction and, after commit, publishes a
// booking.created event. Dispatch failures are logged and swallowed;
// the booking stands regardless.
func (s *Service) Create(ctx context.Context, userID uint64, in CreateInput) (*model.Booking, *model.Flight, error) {
    if err := s.validate.Struct(in); err != nil {
        return nil, nil, asValidationError(err)
    }

    custRef, err := utils.NewRef(utils.RefPrefixCustomer)
    if err != nil {
        return nil, nil, err
    }
    customer, err := s.customers.Resolve(ctx, userID, custRef, in.FullName, in.Phone)
    if err != nil {
        return nil, nil, err
    }

    ref, err := utils.NewRef(utils.RefPrefixBooking)
    if err != nil {
        return nil, nil, err
    }

    b := &model.Booking{
        Reference:       ref,
        CustomerID:      customer.ID,
        FlightID:        in.FlightID,
        PassengerCount:  uint32(len(in.Passengers)),
        PaymentMethod:   in.PaymentMethod,
        ContactEmail:    in.ContactEmail,
        SpecialRequests: in.SpecialRequests,
    }
    passengers := make([]model.Passenger, 0, len(in.Passengers))
    for _, p := range in.Passengers {
        passengers = append(passengers, model.Passenger{
            FirstName:      p.FirstName,
            LastName:       p.LastName,
            DateOfBirth:    p.DateOfBirth,
            DocumentType:   p.DocumentType,
            DocumentNumber: p.DocumentNumber,
        })
    }

    flight, err := s.store.CreateConfirmed(ctx, b, passengers)
    if err != nil {
        return nil, nil, err
    }

    s.notifyCreated(ctx, b, flight)
    return b, flight, nil
}

// Cancel voids a CONFIRMED booking owned by the user and returns its
// seats to the flight, then publishes a booking.cancelled event.
func (s *Service) Cancel(ctx context.Context, userID uint64, bookingID uint64) (*model.Booking, error) {
    // A user with no customer row has never booked anything.
    customer, err := s.customers.GetByUserID(ctx, userID)
    if err != nil {
        return nil, err
    }
    b, err := s.store.Cancel(ctx, bookingID, customer.ID)
    if err != nil {
        return nil, err
    }
    s.notifyCancelled(ctx, b)
    return b, nil
}

func (s *Service) notifyCreated(ctx context.Context, b *model.Booking, flight *model.Flight) {
    op, err := s.operators.GetByID(ctx, flight.OperatorID)
    if err != nil {
        log.Printf("booking: operator lookup for notification failed: %v", err)
        return
    }
    ev := queue.BookingCreatedEvent{
        EventID:          uuid.NewString(),
        BookingID:        b.ID,
        BookingReference: b.Reference,
        CustomerID:       b.CustomerID,
        FlightID:         flight.ID,
        FlightReference:  flight.Reference,
        OperatorID:       op.ID,
        OperatorUserID:   op.UserID,
        OriginCode:       flight.OriginCode,
        DestinationCode:  flight.DestinationCode,
        DepartsAt:        flight.DepartsAt.UTC().Format(time.RFC3339),
        PassengerCount:   b.PassengerCount,
        TotalAmountCents: b.TotalAmountCents,
        Currency:         b.Currency,
        ContactEmail:     b.ContactEmail,
        CreatedAt:        time.Now().UTC().Format(time.RFC3339),
    }
    if err := s.dispatch.BookingCreated(ctx, ev); err != nil {
        log.Printf("booking: dispatch booking.created failed for %s: %v", b.Reference, err)
    }
}

func (s *Service) notifyCancelled(ctx context.Context, b *model.Booking) {
    flight, err := s.flights.GetByID(ctx, b.FlightID)
    if err != nil {
        log.Printf("booking: flight lookup for notification failed: %v", err)
        return
    }
    op, err := s.operators.GetByID(ctx, flight.OperatorID)
    if err != nil {
        log.Printf("booking: operator lookup for notification failed: %v", err)
        return
    }
    ev := queue.BookingCancelledEvent{
        EventID:          uuid.NewString(),
        BookingID:        b.ID,
        BookingReference: b.Reference,
        FlightID:         flight.ID,
        FlightReference:  flight.Reference,
        OperatorUserID:   op.UserID,
        PassengerCount:   b.PassengerCount,
        CancelledAt:      time.Now().UTC().Format(time.RFC3339),
    }
    if err := s.dispatch.BookingCancelled(ctx, ev); err != nil {
        log.Printf("booking: dispatch booking.cancelled failed for %s: %v", b.Reference, err)
    }
}

func asValidationError(err error) error {
    verrs, ok := err.(validator.ValidationErrors)
    if !ok {
        return err
    }
    fields := make(map[string]string, len(verrs))
    for _, fe := range verrs {
        fields[fe.Namespace()] = fe.Tag()
    }
    return &ValidationError{Fields: fields}
}
