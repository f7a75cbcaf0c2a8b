// This file defines the unauthenticated browsing API. Anyone can list
// open empty legs and inspect a single flight; sensitive fields
// (operator ids, internal timestamps) are filtered from responses.

package handler

import (
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/aerovia/emptyleg/internal/model"
    "github.com/aerovia/emptyleg/internal/repository"
)

// PublicHandler serves flight browsing for unauthenticated users.
type PublicHandler struct {
    Flights *repository.FlightRepo
}

func NewPublicHandler(flights *repository.FlightRepo) *PublicHandler {
    return &PublicHandler{Flights: flights}
}

// PublicFlight is a flight as exposed on the marketplace. The selling
// status is derived from the live seat counter at response time.
type PublicFlight struct {
    ID              uint64    `json:"id"`
    Reference       string    `json:"reference"`
    Aircraft        string    `json:"aircraft"`
    OriginCode      string    `json:"origin_code"`
    OriginCity      string    `json:"origin_city"`
    DestinationCode string    `json:"destination_code"`
    DestinationCity string    `json:"destination_city"`
    DepartsAt       time.Time `json:"departs_at"`
    ArrivesAt       time.Time `json:"arrives_at"`
    OriginalPrice   uint64    `json:"original_price_cents"`
    Price           uint64    `json:"price_cents"`
    Currency        string    `json:"currency"`
    TotalSeats      uint32    `json:"total_seats"`
    AvailableSeats  uint32    `json:"available_seats"`
    SellingStatus   string    `json:"selling_status"`
}

func toPublicFlight(f model.Flight) PublicFlight {
    return PublicFlight{
        ID:              f.ID,
        Reference:       f.Reference,
        Aircraft:        f.Aircraft,
        OriginCode:      f.OriginCode,
        OriginCity:      f.OriginCity,
        DestinationCode: f.DestinationCode,
        DestinationCity: f.DestinationCity,
        DepartsAt:       f.DepartsAt,
        ArrivesAt:       f.ArrivesAt,
        OriginalPrice:   f.OriginalPriceCents,
        Price:           f.PriceCents,
        Currency:        f.Currency,
        TotalSeats:      f.TotalSeats,
        AvailableSeats:  f.AvailableSeats,
        SellingStatus:   f.SellingStatus(),
    }
}

// ListFlights handles GET /v1/flights. It returns open flights that
// have not yet departed, newest departure last.
func (h *PublicHandler) ListFlights(c echo.Context) error {
    flights, err := h.Flights.ListAvailable(c.Request().Context())
    if err != nil {
        return respondError(c, err)
    }
    out := make([]PublicFlight, 0, len(flights))
    for _, f := range flights {
        out = append(out, toPublicFlight(f))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetFlight handles GET /v1/flights/:id. Flights stay visible after
// selling out or being cancelled so shared links keep resolving; the
// selling status tells the client whether booking is still possible.
func (h *PublicHandler) GetFlight(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    f, err := h.Flights.GetByID(c.Request().Context(), id)
    if err != nil {
        return respondError(c, err)
    }
    if f.Status == model.FlightStatusPending || f.Status == model.FlightStatusDeclined {
        // Not yet (or never) admitted to the marketplace.
        return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
    }
    return c.JSON(http.StatusOK, toPublicFlight(*f))
}
