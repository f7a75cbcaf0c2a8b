package handler

import (
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/aerovia/emptyleg/internal/model"
    "github.com/aerovia/emptyleg/internal/repository"
)

// AdminHandler moderates submitted flights. Runs behind the ADMIN role
// check.
type AdminHandler struct {
    Flights *repository.FlightRepo
}

func NewAdminHandler(flights *repository.FlightRepo) *AdminHandler {
    return &AdminHandler{Flights: flights}
}

// ListFlights handles GET /v1/admin/flights?status=PENDING. Without a
// status filter it returns the moderation queue.
func (h *AdminHandler) ListFlights(c echo.Context) error {
    status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
    if status == "" {
        status = model.FlightStatusPending
    }
    switch status {
    case model.FlightStatusPending, model.FlightStatusAvailable, model.FlightStatusCancelled, model.FlightStatusDeclined:
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status " + status})
    }
    flights, err := h.Flights.ListByStatus(c.Request().Context(), status)
    if err != nil {
        return respondError(c, err)
    }
    type row struct {
        PublicFlight
        OperatorID uint64 `json:"operator_id"`
        Status     string `json:"status"`
    }
    out := make([]row, 0, len(flights))
    for _, f := range flights {
        out = append(out, row{PublicFlight: toPublicFlight(f), OperatorID: f.OperatorID, Status: f.Status})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ApproveFlight handles POST /v1/admin/flights/:id/approve and moves a
// PENDING flight onto the marketplace. The guarded update makes
// concurrent moderation of one flight settle to a single winner.
func (h *AdminHandler) ApproveFlight(c echo.Context) error {
    return h.moderate(c, model.FlightStatusAvailable, "flight approved")
}

// DeclineFlight handles POST /v1/admin/flights/:id/decline.
func (h *AdminHandler) DeclineFlight(c echo.Context) error {
    return h.moderate(c, model.FlightStatusDeclined, "flight declined")
}

func (h *AdminHandler) moderate(c echo.Context, toStatus, okMsg string) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    err = h.Flights.UpdateStatus(c.Request().Context(), id, model.FlightStatusPending, toStatus)
    if err == repository.ErrNotFound {
        return c.JSON(http.StatusConflict, echo.Map{"error": "flight is not pending review"})
    }
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"message": okMsg})
}
