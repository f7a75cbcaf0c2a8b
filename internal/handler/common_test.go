package handler

import (
    "errors"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/aerovia/emptyleg/internal/middleware"
    "github.com/aerovia/emptyleg/internal/repository"
    "github.com/aerovia/emptyleg/internal/service/booking"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

// The status mapping is load-bearing for clients: 409 means the request
// was understood but lost to marketplace state (retry with different
// input), while 500 is transient and safe to retry as-is.
func TestRespondErrorStatusMapping(t *testing.T) {
    cases := []struct {
        name string
        err  error
        want int
    }{
        {"validation", &booking.ValidationError{Fields: map[string]string{"ContactEmail": "email"}}, http.StatusBadRequest},
        {"insufficient seats", repository.ErrInsufficientSeats, http.StatusConflict},
        {"flight not bookable", repository.ErrFlightNotBookable, http.StatusConflict},
        {"already cancelled", repository.ErrAlreadyCancelled, http.StatusConflict},
        {"forbidden", repository.ErrForbidden, http.StatusForbidden},
        {"not found", repository.ErrNotFound, http.StatusNotFound},
        {"unknown", errors.New("connection reset"), http.StatusInternalServerError},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            c, rec := newTestContext(t)
            require.NoError(t, respondError(c, tc.err))
            assert.Equal(t, tc.want, rec.Code)
        })
    }
}

func TestGetUserID(t *testing.T) {
    c, _ := newTestContext(t)
    _, err := getUserID(c)
    assert.Error(t, err, "missing user_id must not resolve")

    c.Set(middleware.CtxUserID, uint64(42))
    uid, err := getUserID(c)
    require.NoError(t, err)
    assert.Equal(t, uint64(42), uid)
}
