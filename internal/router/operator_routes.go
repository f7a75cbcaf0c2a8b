package router

import (
    "github.com/labstack/echo/v4"

    "github.com/aerovia/emptyleg/internal/handler"
    "github.com/aerovia/emptyleg/internal/middleware"
    "github.com/aerovia/emptyleg/internal/model"
)

// RegisterOperator registers OPERATOR-scoped endpoints under
// /v1/operator: empty-leg submission, flight and booking listings,
// cancellation of open flights and the earnings summary.
func RegisterOperator(e *echo.Echo, h *handler.OperatorHandler, jwtSecret string) {
    g := e.Group(
        "/v1/operator",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleOperator),
    )
    g.POST("/flights", h.CreateFlight)
    g.GET("/flights", h.ListFlights)
    g.DELETE("/flights/:id", h.CancelFlight)
    g.GET("/bookings", h.ListBookings)
    g.GET("/revenue", h.RevenueSummary)
}
