package revenue

import (
    "context"
    "errors"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/aerovia/emptyleg/internal/repository"
)

type fakeStore struct {
    platformGross uint64
    platformCount uint64
    operatorGross map[uint64]uint64
    operatorCount map[uint64]uint64
    occupancy     map[uint64][]repository.FlightOccupancy
    err           error
}

func (f *fakeStore) GrossPlatform(context.Context) (uint64, uint64, error) {
    return f.platformGross, f.platformCount, f.err
}

func (f *fakeStore) GrossOperator(_ context.Context, operatorID uint64) (uint64, uint64, error) {
    return f.operatorGross[operatorID], f.operatorCount[operatorID], f.err
}

func (f *fakeStore) OccupancyByOperator(_ context.Context, operatorID uint64) ([]repository.FlightOccupancy, error) {
    return f.occupancy[operatorID], f.err
}

func TestCommission(t *testing.T) {
    cases := []struct {
        gross, want uint64
    }{
        {0, 0},
        {100, 10},
        {250000, 25000},
        {999, 99},  // rounds down, remainder stays with the operator
        {1001, 100},
    }
    for _, c := range cases {
        assert.Equal(t, c.want, Commission(c.gross), "gross=%d", c.gross)
    }
}

func TestPlatformSummaryReconciles(t *testing.T) {
    store := &fakeStore{
        platformGross: 1234567,
        platformCount: 9,
        occupancy: map[uint64][]repository.FlightOccupancy{
            0: {
                {FlightID: 1, TotalSeats: 8, AvailableSeats: 3, BookedSeats: 5, RevenueCents: 1000000},
                {FlightID: 2, TotalSeats: 6, AvailableSeats: 6, BookedSeats: 0, RevenueCents: 234567},
            },
        },
    }
    svc := NewService(store)

    sum, err := svc.Platform(context.Background())
    require.NoError(t, err)

    assert.Equal(t, uint64(1234567), sum.GrossCents)
    assert.Equal(t, uint64(123456), sum.CommissionCents)
    assert.Equal(t, uint64(1111111), sum.NetCents)
    assert.Equal(t, sum.GrossCents, sum.CommissionCents+sum.NetCents,
        "commission and net must reconcile to gross exactly")
    assert.Equal(t, uint64(9), sum.Bookings)
    assert.Len(t, sum.Flights, 2)
}

func TestOperatorSummary(t *testing.T) {
    store := &fakeStore{
        operatorGross: map[uint64]uint64{3: 500000},
        operatorCount: map[uint64]uint64{3: 2},
        occupancy: map[uint64][]repository.FlightOccupancy{
            3: {{FlightID: 42, TotalSeats: 8, AvailableSeats: 6, BookedSeats: 2, RevenueCents: 500000}},
        },
    }
    svc := NewService(store)

    sum, err := svc.Operator(context.Background(), 3)
    require.NoError(t, err)
    assert.Equal(t, uint64(500000), sum.GrossCents)
    assert.Equal(t, uint64(50000), sum.CommissionCents)
    assert.Equal(t, uint64(450000), sum.NetCents)
    require.Len(t, sum.Flights, 1)
    assert.Equal(t, uint32(2), sum.Flights[0].BookedSeats)

    empty, err := svc.Operator(context.Background(), 999)
    require.NoError(t, err)
    assert.Zero(t, empty.GrossCents)
    assert.Zero(t, empty.Bookings)
    assert.Empty(t, empty.Flights)
}

func TestSummaryPropagatesStoreErrors(t *testing.T) {
    store := &fakeStore{err: errors.New("db gone")}
    svc := NewService(store)

    _, err := svc.Platform(context.Background())
    require.Error(t, err)
    _, err = svc.Operator(context.Background(), 3)
    require.Error(t, err)
}
