package handler // HTTP handlers for the empty-leg API

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/aerovia/emptyleg/internal/middleware"
    "github.com/aerovia/emptyleg/internal/repository"
    "github.com/aerovia/emptyleg/internal/service/booking"
)

// getUserID extracts the authenticated user's id placed in the context
// by the JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
    if v, ok := c.Get(middleware.CtxUserID).(uint64); ok && v != 0 {
        return v, nil
    }
    return 0, errors.New("invalid user_id in context")
}

// respondError maps domain errors to HTTP responses. Conflicts (lost
// seat race, unbookable flight, repeated cancel) come back as 409 so
// clients can distinguish "pick another flight" from a transient 500
// that is safe to retry as-is.
func respondError(c echo.Context, err error) error {
    var verr *booking.ValidationError
    switch {
    case errors.As(err, &verr):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input", "fields": verr.Fields})
    case errors.Is(err, repository.ErrInsufficientSeats):
        return c.JSON(http.StatusConflict, echo.Map{"error": "not enough seats available"})
    case errors.Is(err, repository.ErrFlightNotBookable):
        return c.JSON(http.StatusConflict, echo.Map{"error": "flight is not open for booking"})
    case errors.Is(err, repository.ErrAlreadyCancelled):
        return c.JSON(http.StatusConflict, echo.Map{"error": "booking already cancelled"})
    case errors.Is(err, repository.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    case errors.Is(err, repository.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
    default:
        c.Logger().Errorf("internal error: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
}
