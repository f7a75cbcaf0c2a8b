package model

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestSellingStatusDerivation(t *testing.T) {
    cases := []struct {
        name      string
        status    string
        total     uint32
        available uint32
        want      string
    }{
        {"untouched", FlightStatusAvailable, 8, 8, SellingStatusAvailable},
        {"partially booked", FlightStatusAvailable, 8, 3, SellingStatusPartiallyBooked},
        {"one left", FlightStatusAvailable, 8, 1, SellingStatusPartiallyBooked},
        {"sold out", FlightStatusAvailable, 8, 0, SellingStatusFullyBooked},
        {"single seat sold out", FlightStatusAvailable, 1, 0, SellingStatusFullyBooked},
        {"pending passes through", FlightStatusPending, 8, 8, FlightStatusPending},
        {"cancelled passes through", FlightStatusCancelled, 8, 2, FlightStatusCancelled},
        {"declined passes through", FlightStatusDeclined, 8, 8, FlightStatusDeclined},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            f := Flight{Status: tc.status, TotalSeats: tc.total, AvailableSeats: tc.available}
            assert.Equal(t, tc.want, f.SellingStatus())
        })
    }
}

func TestBookedSeats(t *testing.T) {
    f := Flight{TotalSeats: 8, AvailableSeats: 3}
    assert.Equal(t, uint32(5), f.BookedSeats())

    f = Flight{TotalSeats: 8, AvailableSeats: 8}
    assert.Zero(t, f.BookedSeats())

    // A corrupt counter must not wrap around.
    f = Flight{TotalSeats: 8, AvailableSeats: 9}
    assert.Zero(t, f.BookedSeats())
}
