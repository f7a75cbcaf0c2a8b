package booking

import (
    "context"
    "errors"
    "sync"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/aerovia/emptyleg/internal/model"
    "github.com/aerovia/emptyleg/internal/queue"
    "github.com/aerovia/emptyleg/internal/repository"
)

// fakeStore simulates the booking transaction against an in-memory seat
// counter. The mutex-guarded conditional decrement mirrors what the SQL
// store does with its guarded UPDATE.
type fakeStore struct {
    mu        sync.Mutex
    available uint32
    flight    model.Flight
    nextID    uint64
    created   []model.Booking
    cancelErr error
    cancelled *model.Booking
}

func (f *fakeStore) CreateConfirmed(_ context.Context, b *model.Booking, passengers []model.Passenger) (*model.Flight, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    if f.flight.Status != model.FlightStatusAvailable {
        return nil, repository.ErrFlightNotBookable
    }
    if f.available < b.PassengerCount {
        return nil, repository.ErrInsufficientSeats
    }
    f.available -= b.PassengerCount
    f.nextID++
    b.ID = f.nextID
    b.TotalAmountCents = f.flight.PriceCents * uint64(b.PassengerCount)
    b.Currency = f.flight.Currency
    b.Status = model.BookingStatusConfirmed
    f.created = append(f.created, *b)
    fl := f.flight
    fl.AvailableSeats = f.available
    return &fl, nil
}

func (f *fakeStore) Cancel(_ context.Context, bookingID, customerID uint64) (*model.Booking, error) {
    if f.cancelErr != nil {
        return nil, f.cancelErr
    }
    if f.cancelled == nil {
        return nil, repository.ErrNotFound
    }
    return f.cancelled, nil
}

// fakeCustomers is mutex-guarded like fakeStore: the concurrency test
// below resolves customers from many goroutines at once.
type fakeCustomers struct {
    mu       sync.Mutex
    customer *model.Customer
    getErr   error
    resolved int
}

func (f *fakeCustomers) Resolve(_ context.Context, userID uint64, reference, fullName, phone string) (*model.Customer, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    f.resolved++
    if f.customer == nil {
        f.customer = &model.Customer{ID: 7, Reference: reference, UserID: userID, FullName: fullName, Phone: phone}
    }
    return f.customer, nil
}

func (f *fakeCustomers) GetByUserID(_ context.Context, userID uint64) (*model.Customer, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    if f.getErr != nil {
        return nil, f.getErr
    }
    if f.customer == nil {
        return nil, repository.ErrNotFound
    }
    return f.customer, nil
}

func (f *fakeCustomers) resolveCount() int {
    f.mu.Lock()
    defer f.mu.Unlock()
    return f.resolved
}

type fakeOperators struct{ op model.Operator }

func (f *fakeOperators) GetByID(_ context.Context, id uint64) (*model.Operator, error) {
    if id != f.op.ID {
        return nil, repository.ErrNotFound
    }
    return &f.op, nil
}

type fakeFlights struct{ flight model.Flight }

func (f *fakeFlights) GetByID(_ context.Context, id uint64) (*model.Flight, error) {
    if id != f.flight.ID {
        return nil, repository.ErrNotFound
    }
    fl := f.flight
    return &fl, nil
}

type fakeDispatcher struct {
    mu        sync.Mutex
    created   []queue.BookingCreatedEvent
    cancelled []queue.BookingCancelledEvent
    err       error
}

func (f *fakeDispatcher) BookingCreated(_ context.Context, ev queue.BookingCreatedEvent) error {
    f.mu.Lock()
    defer f.mu.Unlock()
    f.created = append(f.created, ev)
    return f.err
}

func (f *fakeDispatcher) BookingCancelled(_ context.Context, ev queue.BookingCancelledEvent) error {
    f.mu.Lock()
    defer f.mu.Unlock()
    f.cancelled = append(f.cancelled, ev)
    return f.err
}

func testFlight(available uint32) model.Flight {
    return model.Flight{
        ID:              42,
        Reference:       "FL-TEST42TEST",
        OperatorID:      3,
        Aircraft:        "Citation XLS",
        OriginCode:      "LTN",
        OriginCity:      "London",
        DestinationCode: "NCE",
        DestinationCity: "Nice",
        DepartsAt:       time.Now().Add(48 * time.Hour).UTC(),
        ArrivesAt:       time.Now().Add(50 * time.Hour).UTC(),
        PriceCents:      250000,
        Currency:        "EUR",
        TotalSeats:      8,
        AvailableSeats:  available,
        Status:          model.FlightStatusAvailable,
    }
}

func validInput(passengers int) CreateInput {
    in := CreateInput{
        FlightID:      42,
        FullName:      "Ada Lovelace",
        Phone:         "+44 20 7946 0000",
        ContactEmail:  "ada@example.com",
        PaymentMethod: "CARD",
    }
    for i := 0; i < passengers; i++ {
        in.Passengers = append(in.Passengers, PassengerInput{
            FirstName:      "Ada",
            LastName:       "Lovelace",
            DateOfBirth:    "1985-12-10",
            DocumentType:   "PASSPORT",
            DocumentNumber: "X1234567",
        })
    }
    return in
}

func newTestService(store *fakeStore, disp *fakeDispatcher) (*Service, *fakeCustomers) {
    customers := &fakeCustomers{}
    operators := &fakeOperators{op: model.Operator{ID: 3, UserID: 30, CompanyName: "SkyBridge"}}
    flights := &fakeFlights{flight: store.flight}
    return NewService(store, customers, operators, flights, disp), customers
}

func TestCreateBooksSeatsAndDispatches(t *testing.T) {
    store := &fakeStore{available: 8, flight: testFlight(8)}
    disp := &fakeDispatcher{}
    svc, customers := newTestService(store, disp)

    b, flight, err := svc.Create(context.Background(), 99, validInput(2))
    require.NoError(t, err)
    require.NotNil(t, b)

    assert.Equal(t, model.BookingStatusConfirmed, b.Status)
    assert.Equal(t, uint32(2), b.PassengerCount)
    assert.Equal(t, uint64(500000), b.TotalAmountCents)
    assert.Equal(t, "EUR", b.Currency)
    assert.Regexp(t, `^BK-[2-9A-HJ-NP-Z]{10}$`, b.Reference)
    assert.Equal(t, uint32(6), flight.AvailableSeats)
    assert.Equal(t, 1, customers.resolved)

    require.Len(t, disp.created, 1)
    ev := disp.created[0]
    assert.Equal(t, b.Reference, ev.BookingReference)
    assert.Equal(t, uint64(30), ev.OperatorUserID)
    assert.NotEmpty(t, ev.EventID)
}

func TestCreateReusesCustomerRow(t *testing.T) {
    store := &fakeStore{available: 8, flight: testFlight(8)}
    svc, customers := newTestService(store, &fakeDispatcher{})

    _, _, err := svc.Create(context.Background(), 99, validInput(1))
    require.NoError(t, err)
    first := customers.customer.ID

    _, _, err = svc.Create(context.Background(), 99, validInput(1))
    require.NoError(t, err)
    assert.Equal(t, first, customers.customer.ID)
    require.Len(t, store.created, 2)
    assert.Equal(t, store.created[0].CustomerID, store.created[1].CustomerID)
}

func TestCreateRejectsBadInput(t *testing.T) {
    store := &fakeStore{available: 8, flight: testFlight(8)}
    disp := &fakeDispatcher{}
    svc, _ := newTestService(store, disp)

    cases := map[string]func(*CreateInput){
        "no passengers":    func(in *CreateInput) { in.Passengers = nil },
        "bad email":        func(in *CreateInput) { in.ContactEmail = "not-an-email" },
        "bad payment":      func(in *CreateInput) { in.PaymentMethod = "BARTER" },
        "bad birth date":   func(in *CreateInput) { in.Passengers[0].DateOfBirth = "10/12/1985" },
        "missing document": func(in *CreateInput) { in.Passengers[0].DocumentNumber = "" },
    }
    for name, mutate := range cases {
        t.Run(name, func(t *testing.T) {
            in := validInput(1)
            mutate(&in)
            _, _, err := svc.Create(context.Background(), 99, in)
            var verr *ValidationError
            require.ErrorAs(t, err, &verr)
            assert.NotEmpty(t, verr.Fields)
        })
    }
    assert.Empty(t, store.created, "rejected input must not reach the store")
    assert.Empty(t, disp.created, "rejected input must not dispatch")
}

func TestCreateInsufficientSeats(t *testing.T) {
    store := &fakeStore{available: 1, flight: testFlight(1)}
    disp := &fakeDispatcher{}
    svc, _ := newTestService(store, disp)

    _, _, err := svc.Create(context.Background(), 99, validInput(2))
    require.ErrorIs(t, err, repository.ErrInsufficientSeats)
    assert.Empty(t, disp.created, "failed booking must not dispatch")
    assert.Equal(t, uint32(1), store.available, "failed booking must not consume seats")
}

func TestCreateFlightNotBookable(t *testing.T) {
    flight := testFlight(8)
    flight.Status = model.FlightStatusCancelled
    store := &fakeStore{available: 8, flight: flight}
    svc, _ := newTestService(store, &fakeDispatcher{})

    _, _, err := svc.Create(context.Background(), 99, validInput(1))
    require.ErrorIs(t, err, repository.ErrFlightNotBookable)
}

func TestCreateSwallowsDispatchFailure(t *testing.T) {
    store := &fakeStore{available: 8, flight: testFlight(8)}
    disp := &fakeDispatcher{err: errors.New("broker down")}
    svc, _ := newTestService(store, disp)

    b, _, err := svc.Create(context.Background(), 99, validInput(1))
    require.NoError(t, err, "a dead broker must not fail the booking")
    assert.Equal(t, model.BookingStatusConfirmed, b.Status)
}

func TestCancelDispatchesRelease(t *testing.T) {
    store := &fakeStore{available: 8, flight: testFlight(8)}
    store.cancelled = &model.Booking{
        ID: 11, Reference: "BK-CANCELME22", CustomerID: 7, FlightID: 42,
        PassengerCount: 3, Status: model.BookingStatusCancelled,
    }
    disp := &fakeDispatcher{}
    svc, customers := newTestService(store, disp)
    customers.customer = &model.Customer{ID: 7, UserID: 99}

    b, err := svc.Cancel(context.Background(), 99, 11)
    require.NoError(t, err)
    assert.Equal(t, model.BookingStatusCancelled, b.Status)
    require.Len(t, disp.cancelled, 1)
    assert.Equal(t, uint32(3), disp.cancelled[0].PassengerCount)
    assert.Equal(t, uint64(30), disp.cancelled[0].OperatorUserID)
}

func TestCancelAlreadyCancelled(t *testing.T) {
    store := &fakeStore{available: 8, flight: testFlight(8), cancelErr: repository.ErrAlreadyCancelled}
    disp := &fakeDispatcher{}
    svc, customers := newTestService(store, disp)
    customers.customer = &model.Customer{ID: 7, UserID: 99}

    _, err := svc.Cancel(context.Background(), 99, 11)
    require.ErrorIs(t, err, repository.ErrAlreadyCancelled)
    assert.Empty(t, disp.cancelled)
}

func TestCancelUnknownCustomer(t *testing.T) {
    store := &fakeStore{available: 8, flight: testFlight(8)}
    svc, _ := newTestService(store, &fakeDispatcher{})

    _, err := svc.Cancel(context.Background(), 12345, 11)
    require.ErrorIs(t, err, repository.ErrNotFound)
}

// TestConcurrentCreateNeverOversells hammers one flight with more
// concurrent single-seat bookings than it has seats and checks that
// exactly the available number succeed.
func TestConcurrentCreateNeverOversells(t *testing.T) {
    const seats = 5
    const attempts = 40

    store := &fakeStore{available: seats, flight: testFlight(seats)}
    disp := &fakeDispatcher{}
    svc, customers := newTestService(store, disp)

    var wg sync.WaitGroup
    errs := make([]error, attempts)
    for i := 0; i < attempts; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            _, _, errs[i] = svc.Create(context.Background(), uint64(1000+i), validInput(1))
        }(i)
    }
    wg.Wait()

    succeeded, soldOut := 0, 0
    for _, err := range errs {
        switch {
        case err == nil:
            succeeded++
        case errors.Is(err, repository.ErrInsufficientSeats):
            soldOut++
        default:
            t.Fatalf("unexpected error: %v", err)
        }
    }
    assert.Equal(t, seats, succeeded)
    assert.Equal(t, attempts-seats, soldOut)
    assert.Equal(t, uint32(0), store.available)
    assert.Len(t, disp.created, seats)
    // Every attempt resolves its customer before hitting the store.
    assert.Equal(t, attempts, customers.resolveCount())
}
