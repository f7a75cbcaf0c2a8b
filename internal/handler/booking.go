package handler

import (
    "context"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/aerovia/emptyleg/internal/model"
    "github.com/aerovia/emptyleg/internal/repository"
    "github.com/aerovia/emptyleg/internal/service/booking"
)

// BookingService is the write surface of the booking workflow.
// *booking.Service satisfies it; tests substitute a stub.
type BookingService interface {
    Create(ctx context.Context, userID uint64, in booking.CreateInput) (*model.Booking, *model.Flight, error)
    Cancel(ctx context.Context, userID, bookingID uint64) (*model.Booking, error)
}

// BookingHandler exposes the booking endpoints. Writes go through the
// booking service so allocation rules live in one place; reads go to
// the repository directly.
type BookingHandler struct {
    Svc       BookingService
    Bookings  *repository.BookingRepo
    Customers *repository.CustomerRepo
}

func NewBookingHandler(svc BookingService, bookings *repository.BookingRepo, customers *repository.CustomerRepo) *BookingHandler {
    if svc == nil || bookings == nil || customers == nil {
        panic("nil dependency passed to NewBookingHandler")
    }
    return &BookingHandler{Svc: svc, Bookings: bookings, Customers: customers}
}

type bookingResp struct {
    ID               uint64    `json:"id"`
    Reference        string    `json:"reference"`
    FlightID         uint64    `json:"flight_id"`
    PassengerCount   uint32    `json:"passenger_count"`
    TotalAmountCents uint64    `json:"total_amount_cents"`
    Currency         string    `json:"currency"`
    PaymentMethod    string    `json:"payment_method"`
    ContactEmail     string    `json:"contact_email"`
    Status           string    `json:"status"`
    CreatedAt        time.Time `json:"created_at"`
}

func toBookingResp(b *model.Booking) bookingResp {
    return bookingResp{
        ID:               b.ID,
        Reference:        b.Reference,
        FlightID:         b.FlightID,
        PassengerCount:   b.PassengerCount,
        TotalAmountCents: b.TotalAmountCents,
        Currency:         b.Currency,
        PaymentMethod:    b.PaymentMethod,
        ContactEmail:     b.ContactEmail,
        Status:           b.Status,
        CreatedAt:        b.CreatedAt,
    }
}

// bookingListItem is a booking row with its flight's route fields, as
// returned by the list endpoints.
type bookingListItem struct {
    bookingResp
    FlightReference string `json:"flight_reference"`
    OriginCode      string `json:"origin_code"`
    DestinationCode string `json:"destination_code"`
    DepartsAt       string `json:"departs_at"`
}

func toBookingListItems(rows []repository.BookingWithRoute) []bookingListItem {
    out := make([]bookingListItem, 0, len(rows))
    for i := range rows {
        out = append(out, bookingListItem{
            bookingResp:     toBookingResp(&rows[i].Booking),
            FlightReference: rows[i].FlightReference,
            OriginCode:      rows[i].OriginCode,
            DestinationCode: rows[i].DestinationCode,
            DepartsAt:       rows[i].DepartsAt,
        })
    }
    return out
}

// Create handles POST /v1/bookings. 201 on success, 400 on invalid
// input, 409 when the flight is unbookable or the seats were lost to a
// concurrent booking, 500 otherwise.
func (h *BookingHandler) Create(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var in booking.CreateInput
    if err := c.Bind(&in); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    b, flight, err := h.Svc.Create(ctx, uid, in)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "booking": toBookingResp(b),
        "flight": echo.Map{
            "reference":       flight.Reference,
            "available_seats": flight.AvailableSeats,
        },
    })
}

// List handles GET /v1/bookings and returns the authenticated
// customer's bookings with route context, newest first.
func (h *BookingHandler) List(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx := c.Request().Context()

    customer, err := h.Customers.GetByUserID(ctx, uid)
    if err != nil {
        if err == repository.ErrNotFound {
            // Never booked, nothing to list.
            return c.JSON(http.StatusOK, echo.Map{"items": []bookingListItem{}})
        }
        return respondError(c, err)
    }
    rows, err := h.Bookings.ListByCustomer(ctx, customer.ID)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": toBookingListItems(rows)})
}

// Get handles GET /v1/bookings/:id with the passenger manifest.
// Ownership is enforced in the query itself.
func (h *BookingHandler) Get(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    ctx := c.Request().Context()

    customer, err := h.Customers.GetByUserID(ctx, uid)
    if err != nil {
        return respondError(c, err)
    }
    b, passengers, err := h.Bookings.GetForCustomer(ctx, id, customer.ID)
    if err != nil {
        return respondError(c, err)
    }

    type passengerResp struct {
        FirstName      string `json:"first_name"`
        LastName       string `json:"last_name"`
        DateOfBirth    string `json:"date_of_birth"`
        DocumentType   string `json:"document_type"`
        DocumentNumber string `json:"document_number"`
    }
    ps := make([]passengerResp, 0, len(passengers))
    for _, p := range passengers {
        ps = append(ps, passengerResp{
            FirstName:      p.FirstName,
            LastName:       p.LastName,
            DateOfBirth:    p.DateOfBirth,
            DocumentType:   p.DocumentType,
            DocumentNumber: p.DocumentNumber,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{
        "booking":    toBookingResp(b),
        "passengers": ps,
    })
}

// Cancel handles DELETE /v1/bookings/:id. Cancelling twice yields 409,
// not a second seat credit.
func (h *BookingHandler) Cancel(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    b, err := h.Svc.Cancel(ctx, uid, id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, toBookingResp(b))
}
