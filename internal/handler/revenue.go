package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/aerovia/emptyleg/internal/service/revenue"
)

// RevenueHandler serves the platform-wide earnings view for admins.
// The per-operator view lives on OperatorHandler.
type RevenueHandler struct {
    Revenue *revenue.Service
}

func NewRevenueHandler(rev *revenue.Service) *RevenueHandler {
    return &RevenueHandler{Revenue: rev}
}

// PlatformSummary handles GET /v1/crm/revenue: gross, commission and
// net across the whole marketplace plus per-flight occupancy.
func (h *RevenueHandler) PlatformSummary(c echo.Context) error {
    sum, err := h.Revenue.Platform(c.Request().Context())
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, sum)
}
