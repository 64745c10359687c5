package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
	cartStorage "github.com/m04kA/SMC-PetCafeGateway/internal/infra/storage/cart"
	"github.com/m04kA/SMC-PetCafeGateway/internal/service/cart/models"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type countingMetrics struct{ kinds []string }

func (m *countingMetrics) IncCartEvent(kind string) { m.kinds = append(m.kinds, kind) }

type failingStore struct{ err error }

func (s failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, s.err
}

func (s failingStore) Set(context.Context, string, []byte) error {
	return s.err
}

func (s failingStore) Delete(context.Context, string) error {
	return s.err
}

func newTestService(store StateStore) (*Service, *countingMetrics) {
	m := &countingMetrics{}
	svc := NewService(store, m, logger.NewNop())
	svc.timeProvider = fixedTime{now: time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)}
	return svc, m
}

func addRequest(slotID string, info domain.CustomerInfo) *models.AddItemRequest {
	return &models.AddItemRequest{
		Service:      domain.ServiceRef{ID: "svc-1", Name: "Cat café visit", BasePrice: 100000},
		Slot:         domain.Slot{ID: slotID, MaxCapacity: 5, ServiceStatus: domain.ServiceStatusAvailable},
		BookingDate:  "2026-10-20",
		CustomerInfo: info,
	}
}

func TestService_AddGetRemove(t *testing.T) {
	ctx := context.Background()
	svc, metrics := newTestService(cartStorage.NewMemoryStore())

	cart, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	cart, err = svc.Add(ctx, "s1", addRequest("slot-1", domain.CustomerInfo{FullName: "An", Phone: "0900"}))
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	first := cart.Items[0]
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC), first.AddedAt)

	stored, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, first.ID, stored.Items[0].ID)
	assert.Equal(t, "slot-1", stored.Items[0].Slot.ID)

	other, err := svc.Get(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())

	cart, err = svc.Remove(ctx, "s1", first.ID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	_, err = svc.Remove(ctx, "s1", first.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	assert.Equal(t, []string{models.EventItemAdded, models.EventItemRemoved}, metrics.kinds)
}

func TestService_AddKeepsDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(cartStorage.NewMemoryStore())

	_, err := svc.Add(ctx, "s1", addRequest("slot-1", domain.CustomerInfo{}))
	require.NoError(t, err)
	cart, err := svc.Add(ctx, "s1", addRequest("slot-1", domain.CustomerInfo{}))
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.NotEqual(t, cart.Items[0].ID, cart.Items[1].ID)
	assert.InDelta(t, 200000.0, cart.Total(), 0.001)
}

func TestService_AddSharesCustomerInfo(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(cartStorage.NewMemoryStore())
	first := domain.CustomerInfo{FullName: "An", Phone: "0900"}

	_, err := svc.Add(ctx, "s1", addRequest("slot-1", first))
	require.NoError(t, err)
	cart, err := svc.Add(ctx, "s1", addRequest("slot-2", domain.CustomerInfo{FullName: "Binh", Phone: "0911"}))
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, first, cart.Items[1].CustomerInfo)
	assert.Equal(t, first, cart.CustomerInfo())
}

func TestService_AddFillsMissingCustomerInfo(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(cartStorage.NewMemoryStore())
	info := domain.CustomerInfo{FullName: "An", Phone: "0900"}

	_, err := svc.Add(ctx, "s1", addRequest("slot-1", domain.CustomerInfo{}))
	require.NoError(t, err)
	cart, err := svc.Add(ctx, "s1", addRequest("slot-2", info))
	require.NoError(t, err)

	for _, item := range cart.Items {
		assert.Equal(t, info, item.CustomerInfo)
	}
}

func TestService_AddValidation(t *testing.T) {
	svc, _ := newTestService(cartStorage.NewMemoryStore())

	tests := []struct {
		name   string
		mutate func(r *models.AddItemRequest)
	}{
		{name: "no slot", mutate: func(r *models.AddItemRequest) { r.Slot.ID = " " }},
		{name: "no service", mutate: func(r *models.AddItemRequest) { r.Service.ID = "" }},
		{name: "bad date", mutate: func(r *models.AddItemRequest) { r.BookingDate = "20-10-2026" }},
		{name: "bad selected date", mutate: func(r *models.AddItemRequest) { r.SelectedDate = "tomorrow" }},
		{name: "date with junk", mutate: func(r *models.AddItemRequest) { r.BookingDate = "2026-10-20junk" }},
		{name: "date with space and time", mutate: func(r *models.AddItemRequest) { r.BookingDate = "2026-10-20 09:00" }},
		{name: "timestamp with short offset", mutate: func(r *models.AddItemRequest) { r.BookingDate = "2026-10-20T09:00:00+07" }},
		{name: "long notes", mutate: func(r *models.AddItemRequest) {
			notes := make([]rune, domain.MaxNotesLength+1)
			for i := range notes {
				notes[i] = 'ă'
			}
			r.Notes = string(notes)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := addRequest("slot-1", domain.CustomerInfo{})
			tt.mutate(req)
			_, err := svc.Add(context.Background(), "s1", req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_AddAcceptsTimestamps(t *testing.T) {
	svc, _ := newTestService(cartStorage.NewMemoryStore())

	for _, value := range []string{"2026-10-20T09:00:00+07:00", "2026-10-20T02:00:00.000Z", "2026-10-20T09:00"} {
		req := addRequest("slot-1", domain.CustomerInfo{})
		req.BookingDate = value
		_, err := svc.Add(context.Background(), "s1", req)
		assert.NoError(t, err, value)
	}
}

func TestService_AddWithoutDateIsAllowed(t *testing.T) {
	svc, _ := newTestService(cartStorage.NewMemoryStore())
	req := addRequest("slot-1", domain.CustomerInfo{})
	req.BookingDate = ""

	cart, err := svc.Add(context.Background(), "s1", req)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestService_SubscribeReceivesSnapshots(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(cartStorage.NewMemoryStore())

	var events []models.CartEvent
	unsubscribe := svc.Subscribe(func(e models.CartEvent) {
		events = append(events, e)
	})

	_, err := svc.Add(ctx, "s1", addRequest("slot-1", domain.CustomerInfo{}))
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, "s1"))

	unsubscribe()
	_, err = svc.Add(ctx, "s1", addRequest("slot-2", domain.CustomerInfo{}))
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, domain.CartUpdatedEvent, events[0].Name)
	assert.Equal(t, models.EventItemAdded, events[0].Kind)
	assert.Equal(t, "s1", events[0].Session)
	assert.Len(t, events[0].Cart.Items, 1)
	assert.Equal(t, models.EventCleared, events[1].Kind)
	assert.True(t, events[1].Cart.IsEmpty())
}

func TestService_SubscriberMayReadCart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(cartStorage.NewMemoryStore())

	var seen int
	svc.Subscribe(func(e models.CartEvent) {
		cart, err := svc.Get(ctx, e.Session)
		if assert.NoError(t, err) {
			seen = len(cart.Items)
		}
	})

	_, err := svc.Add(ctx, "s1", addRequest("slot-1", domain.CustomerInfo{}))
	require.NoError(t, err)
	assert.Equal(t, 1, seen)
}

func TestService_CorruptedCartIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := cartStorage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "booking_cart:s1", []byte(`{not json`)))
	svc, _ := newTestService(store)

	cart, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestService_LastOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(cartStorage.NewMemoryStore())

	_, err := svc.LastOrder(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoLastOrder)

	amount := 250000.0
	require.NoError(t, svc.SaveLastOrder(ctx, "s1", &domain.Order{ID: "X", OrderNumber: "N1", FinalAmount: &amount}))

	order, err := svc.LastOrder(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "X", order.ID)
	assert.Equal(t, "N1", order.OrderNumber)
	assert.InDelta(t, amount, order.Amount(), 0.001)
}

func TestService_StorageErrors(t *testing.T) {
	ctx := context.Background()
	svc, metrics := newTestService(failingStore{err: errors.New("connection refused")})

	_, err := svc.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.Add(ctx, "s1", addRequest("slot-1", domain.CustomerInfo{}))
	assert.ErrorIs(t, err, ErrInternal)

	assert.ErrorIs(t, svc.Clear(ctx, "s1"), ErrInternal)
	assert.ErrorIs(t, svc.SaveLastOrder(ctx, "s1", &domain.Order{ID: "X"}), ErrInternal)

	_, err = svc.LastOrder(ctx, "s1")
	assert.ErrorIs(t, err, ErrInternal)

	assert.Empty(t, metrics.kinds)
}
