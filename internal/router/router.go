package router // route registration for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/aerovia/emptyleg/internal/handler"
    "github.com/aerovia/emptyleg/internal/middleware"
    "github.com/aerovia/emptyleg/internal/model"
)

// RegisterRoutes registers routes that require no authentication beyond
// being reachable. Currently only the health check.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Unauthenticated
// operations live under /v1/auth; /v1/me and /v1/auth/logout require a
// valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    g.POST("/refresh", a.Refresh)
    g.POST("/logout", a.Logout, middleware.JWTAuth(jwtSecret))

    auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated marketplace browse
// endpoints. The flight listing sits behind the response cache; the
// detail endpoint is served live so a just-made booking is reflected
// immediately.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
    e.GET("/v1/flights", p.ListFlights, cache)
    e.GET("/v1/flights/:id", p.GetFlight)
}

// RegisterNotifications registers the inbox endpoints, shared by every
// authenticated role.
func RegisterNotifications(e *echo.Echo, n *handler.NotificationHandler, jwtSecret string) {
    g := e.Group(
        "/v1/notifications",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleCustomer, model.RoleOperator, model.RoleAdmin),
    )
    g.GET("", n.List)
    g.POST("/:id/read", n.MarkRead)
}
