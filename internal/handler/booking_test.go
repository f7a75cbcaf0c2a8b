package handler

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/aerovia/emptyleg/internal/middleware"
    "github.com/aerovia/emptyleg/internal/model"
    "github.com/aerovia/emptyleg/internal/repository"
    "github.com/aerovia/emptyleg/internal/service/booking"
)

// stubBookingService returns canned results so the handler's status
// mapping can be exercised without a database.
type stubBookingService struct {
    booking   *model.Booking
    flight    *model.Flight
    createErr error
    cancelErr error
    gotUserID uint64
    gotInput  booking.CreateInput
}

func (s *stubBookingService) Create(_ context.Context, userID uint64, in booking.CreateInput) (*model.Booking, *model.Flight, error) {
    s.gotUserID = userID
    s.gotInput = in
    if s.createErr != nil {
        return nil, nil, s.createErr
    }
    return s.booking, s.flight, nil
}

func (s *stubBookingService) Cancel(_ context.Context, userID, bookingID uint64) (*model.Booking, error) {
    s.gotUserID = userID
    if s.cancelErr != nil {
        return nil, s.cancelErr
    }
    return s.booking, nil
}

const createBody = `{
    "flight_id": 42,
    "full_name": "Ada Lovelace",
    "contact_email": "ada@example.com",
    "payment_method": "CARD",
    "passengers": [{
        "first_name": "Ada", "last_name": "Lovelace",
        "date_of_birth": "1985-12-10",
        "document_type": "PASSPORT", "document_number": "X1234567"
    }]
}`

func postBooking(t *testing.T, svc BookingService, body string) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set(middleware.CtxUserID, uint64(99))

    h := &BookingHandler{Svc: svc}
    require.NoError(t, h.Create(c))
    return rec
}

func TestCreateBookingStatusCodes(t *testing.T) {
    confirmed := &model.Booking{
        ID: 1, Reference: "BK-TEST123456", FlightID: 42,
        PassengerCount: 1, TotalAmountCents: 250000, Currency: "EUR",
        Status: model.BookingStatusConfirmed,
    }
    flight := &model.Flight{Reference: "FL-TEST42TEST", AvailableSeats: 7}

    t.Run("created", func(t *testing.T) {
        svc := &stubBookingService{booking: confirmed, flight: flight}
        rec := postBooking(t, svc, createBody)
        assert.Equal(t, http.StatusCreated, rec.Code)
        assert.Equal(t, uint64(99), svc.gotUserID)
        assert.Equal(t, uint64(42), svc.gotInput.FlightID)

        var resp struct {
            Booking bookingResp `json:"booking"`
        }
        require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
        assert.Equal(t, "BK-TEST123456", resp.Booking.Reference)
    })

    t.Run("validation failure", func(t *testing.T) {
        svc := &stubBookingService{createErr: &booking.ValidationError{Fields: map[string]string{"Passengers": "min"}}}
        rec := postBooking(t, svc, createBody)
        assert.Equal(t, http.StatusBadRequest, rec.Code)
    })

    t.Run("lost seat race", func(t *testing.T) {
        svc := &stubBookingService{createErr: repository.ErrInsufficientSeats}
        rec := postBooking(t, svc, createBody)
        assert.Equal(t, http.StatusConflict, rec.Code)
    })

    t.Run("flight closed", func(t *testing.T) {
        svc := &stubBookingService{createErr: repository.ErrFlightNotBookable}
        rec := postBooking(t, svc, createBody)
        assert.Equal(t, http.StatusConflict, rec.Code)
    })

    t.Run("transient failure", func(t *testing.T) {
        svc := &stubBookingService{createErr: errors.New("driver: bad connection")}
        rec := postBooking(t, svc, createBody)
        assert.Equal(t, http.StatusInternalServerError, rec.Code)
    })

    t.Run("malformed body", func(t *testing.T) {
        svc := &stubBookingService{}
        rec := postBooking(t, svc, "{not json")
        assert.Equal(t, http.StatusBadRequest, rec.Code)
    })
}

func TestCancelBookingStatusCodes(t *testing.T) {
    cancel := func(t *testing.T, svc BookingService) *httptest.ResponseRecorder {
        t.Helper()
        e := echo.New()
        req := httptest.NewRequest(http.MethodDelete, "/v1/bookings/11", nil)
        rec := httptest.NewRecorder()
        c := e.NewContext(req, rec)
        c.SetPath("/v1/bookings/:id")
        c.SetParamNames("id")
        c.SetParamValues("11")
        c.Set(middleware.CtxUserID, uint64(99))

        h := &BookingHandler{Svc: svc}
        require.NoError(t, h.Cancel(c))
        return rec
    }

    t.Run("cancelled", func(t *testing.T) {
        svc := &stubBookingService{booking: &model.Booking{ID: 11, Status: model.BookingStatusCancelled}}
        rec := cancel(t, svc)
        assert.Equal(t, http.StatusOK, rec.Code)
    })

    t.Run("repeat cancel", func(t *testing.T) {
        svc := &stubBookingService{cancelErr: repository.ErrAlreadyCancelled}
        rec := cancel(t, svc)
        assert.Equal(t, http.StatusConflict, rec.Code)
    })

    t.Run("someone else's booking", func(t *testing.T) {
        svc := &stubBookingService{cancelErr: repository.ErrForbidden}
        rec := cancel(t, svc)
        assert.Equal(t, http.StatusForbidden, rec.Code)
    })
}
