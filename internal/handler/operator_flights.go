package handler

import (
    "context"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/aerovia/emptyleg/internal/model"
    "github.com/aerovia/emptyleg/internal/repository"
    "github.com/aerovia/emptyleg/internal/service/revenue"
    "github.com/aerovia/emptyleg/internal/utils"
)

// OperatorHandler bundles what operators need to list empty legs and
// follow their sales. All methods assume JWT auth and the OPERATOR role
// check already ran in middleware.
type OperatorHandler struct {
    Flights   *repository.FlightRepo
    Operators *repository.OperatorRepo
    Bookings  *repository.BookingRepo
    Revenue   *revenue.Service
}

func NewOperatorHandler(flights *repository.FlightRepo, operators *repository.OperatorRepo, bookings *repository.BookingRepo, rev *revenue.Service) *OperatorHandler {
    if flights == nil || operators == nil || bookings == nil || rev == nil {
        panic("nil dependency passed to NewOperatorHandler")
    }
    return &OperatorHandler{Flights: flights, Operators: operators, Bookings: bookings, Revenue: rev}
}

type createFlightReq struct {
    CompanyName        string `json:"company_name"` // used on first flight to create the operator profile
    ContactEmail       string `json:"contact_email"`
    Aircraft           string `json:"aircraft"`
    OriginCode         string `json:"origin_code"`
    OriginCity         string `json:"origin_city"`
    DestinationCode    string `json:"destination_code"`
    DestinationCity    string `json:"destination_city"`
    DepartsAt          string `json:"departs_at"` // RFC3339
    ArrivesAt          string `json:"arrives_at"` // RFC3339
    OriginalPriceCents uint64 `json:"original_price_cents"`
    PriceCents         uint64 `json:"price_cents"`
    Currency           string `json:"currency"`
    TotalSeats         uint32 `json:"total_seats"`
}

func (r *createFlightReq) validate() (departs, arrives time.Time, msg string) {
    r.OriginCode = strings.ToUpper(strings.TrimSpace(r.OriginCode))
    r.DestinationCode = strings.ToUpper(strings.TrimSpace(r.DestinationCode))
    r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))

    if len(r.OriginCode) < 3 || len(r.OriginCode) > 4 || len(r.DestinationCode) < 3 || len(r.DestinationCode) > 4 {
        return departs, arrives, "origin_code and destination_code must be 3-4 letter airport codes"
    }
    if r.OriginCode == r.DestinationCode {
        return departs, arrives, "origin and destination must differ"
    }
    if strings.TrimSpace(r.Aircraft) == "" {
        return departs, arrives, "aircraft is required"
    }
    if len(r.Currency) != 3 {
        return departs, arrives, "currency must be a 3-letter code"
    }
    if r.PriceCents == 0 || r.PriceCents > r.OriginalPriceCents {
        return departs, arrives, "price_cents must be positive and not exceed original_price_cents"
    }
    if r.TotalSeats < 1 || r.TotalSeats > 19 {
        return departs, arrives, "total_seats must be between 1 and 19"
    }
    var err error
    if departs, err = time.Parse(time.RFC3339, r.DepartsAt); err != nil {
        return departs, arrives, "departs_at must be RFC3339"
    }
    if arrives, err = time.Parse(time.RFC3339, r.ArrivesAt); err != nil {
        return departs, arrives, "arrives_at must be RFC3339"
    }
    if !arrives.After(departs) {
        return departs, arrives, "arrives_at must be after departs_at"
    }
    if !departs.After(time.Now()) {
        return departs, arrives, "departs_at must be in the future"
    }
    return departs, arrives, ""
}

// CreateFlight handles POST /v1/operator/flights. The flight enters in
// PENDING status and only reaches the marketplace once an admin
// approves it. The operator profile is created on first use.
func (h *OperatorHandler) CreateFlight(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createFlightReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    departs, arrives, msg := req.validate()
    if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    opRef, err := utils.NewRef(utils.RefPrefixOperator)
    if err != nil {
        return respondError(c, err)
    }
    op, err := h.Operators.Resolve(ctx, uid, opRef, strings.TrimSpace(req.CompanyName), strings.TrimSpace(req.ContactEmail))
    if err != nil {
        return respondError(c, err)
    }

    ref, err := utils.NewRef(utils.RefPrefixFlight)
    if err != nil {
        return respondError(c, err)
    }
    f := &model.Flight{
        Reference:          ref,
        OperatorID:         op.ID,
        Aircraft:           strings.TrimSpace(req.Aircraft),
        OriginCode:         req.OriginCode,
        OriginCity:         strings.TrimSpace(req.OriginCity),
        DestinationCode:    req.DestinationCode,
        DestinationCity:    strings.TrimSpace(req.DestinationCity),
        DepartsAt:          departs.UTC(),
        ArrivesAt:          arrives.UTC(),
        OriginalPriceCents: req.OriginalPriceCents,
        PriceCents:         req.PriceCents,
        Currency:           req.Currency,
        TotalSeats:         req.TotalSeats,
    }
    if err := h.Flights.Create(ctx, f); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, toPublicFlight(*f))
}

// ListFlights handles GET /v1/operator/flights across every lifecycle
// status, including PENDING and DECLINED ones the public never sees.
func (h *OperatorHandler) ListFlights(c echo.Context) error {
    op, err := h.currentOperator(c)
    if err != nil {
        return respondError(c, err)
    }
    flights, err := h.Flights.ListByOperator(c.Request().Context(), op.ID)
    if err != nil {
        return respondError(c, err)
    }
    type row struct {
        PublicFlight
        Status      string `json:"status"`
        BookedSeats uint32 `json:"booked_seats"`
    }
    out := make([]row, 0, len(flights))
    for _, f := range flights {
        out = append(out, row{PublicFlight: toPublicFlight(f), Status: f.Status, BookedSeats: f.BookedSeats()})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// CancelFlight handles DELETE /v1/operator/flights/:id. Existing
// bookings stay CONFIRMED; cancelling the flight only stops new sales.
// Customers are compensated through the separate booking-cancellation
// path.
func (h *OperatorHandler) CancelFlight(c echo.Context) error {
    op, err := h.currentOperator(c)
    if err != nil {
        return respondError(c, err)
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    ctx := c.Request().Context()

    f, err := h.Flights.GetByID(ctx, id)
    if err != nil {
        return respondError(c, err)
    }
    if f.OperatorID != op.ID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    if f.Status != model.FlightStatusAvailable && f.Status != model.FlightStatusPending {
        return c.JSON(http.StatusConflict, echo.Map{"error": "flight cannot be cancelled from status " + f.Status})
    }
    if err := h.Flights.UpdateStatus(ctx, id, f.Status, model.FlightStatusCancelled); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "flight cancelled"})
}

// ListBookings handles GET /v1/operator/bookings: every booking on the
// operator's flights, with route context.
func (h *OperatorHandler) ListBookings(c echo.Context) error {
    op, err := h.currentOperator(c)
    if err != nil {
        return respondError(c, err)
    }
    rows, err := h.Bookings.ListByOperator(c.Request().Context(), op.ID)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": toBookingListItems(rows)})
}

// RevenueSummary handles GET /v1/operator/revenue.
func (h *OperatorHandler) RevenueSummary(c echo.Context) error {
    op, err := h.currentOperator(c)
    if err != nil {
        return respondError(c, err)
    }
    sum, err := h.Revenue.Operator(c.Request().Context(), op.ID)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, sum)
}

func (h *OperatorHandler) currentOperator(c echo.Context) (*model.Operator, error) {
    uid, err := getUserID(c)
    if err != nil {
        return nil, repository.ErrForbidden
    }
    return h.Operators.GetByUserID(c.Request().Context(), uid)
}
