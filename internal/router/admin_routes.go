package router

import (
    "github.com/labstack/echo/v4"

    "github.com/aerovia/emptyleg/internal/handler"
    "github.com/aerovia/emptyleg/internal/middleware"
    "github.com/aerovia/emptyleg/internal/model"
)

// RegisterAdmin registers ADMIN-scoped endpoints: the flight moderation
// queue under /v1/admin and the platform revenue view under /v1/crm.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, rev *handler.RevenueHandler, jwtSecret string) {
    adminOnly := []echo.MiddlewareFunc{
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleAdmin),
    }

    g := e.Group("/v1/admin", adminOnly...)
    g.GET("/flights", h.ListFlights)
    g.POST("/flights/:id/approve", h.ApproveFlight)
    g.POST("/flights/:id/decline", h.DeclineFlight)

    crm := e.Group("/v1/crm", adminOnly...)
    crm.GET("/revenue", rev.PlatformSummary)
}
