package router

import (
    "github.com/labstack/echo/v4"

    "github.com/aerovia/emptyleg/internal/handler"
    "github.com/aerovia/emptyleg/internal/middleware"
    "github.com/aerovia/emptyleg/internal/model"
)

// RegisterCustomer registers the booking endpoints under /v1. All
// routes require a valid JWT and the CUSTOMER role. Customers book
// flights, list and inspect their bookings, and cancel them.
func RegisterCustomer(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleCustomer),
    )
    g.POST("/bookings", h.Create)
    g.GET("/bookings", h.List)
    g.GET("/bookings/:id", h.Get)
    g.DELETE("/bookings/:id", h.Cancel)
}
