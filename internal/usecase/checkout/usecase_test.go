package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
	cartStorage "github.com/m04kA/SMC-PetCafeGateway/internal/infra/storage/cart"
	"github.com/m04kA/SMC-PetCafeGateway/internal/integrations/cafeapi"
	"github.com/m04kA/SMC-PetCafeGateway/internal/service/cart"
	"github.com/m04kA/SMC-PetCafeGateway/internal/service/cart/models"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/logger"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/types"
)

var ict = time.FixedZone("ICT", 7*3600)

// пятница, 10:00 во времени кафе
var friday = time.Date(2026, 10, 16, 10, 0, 0, 0, ict)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeCafeClient struct {
	submitted []domain.OrderSubmission
	order     *domain.Order
	createErr error
	clearErr  error
	clears    int
}

func (f *fakeCafeClient) CreateOrder(_ context.Context, s *domain.OrderSubmission) (*domain.Order, error) {
	f.submitted = append(f.submitted, *s)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.order, nil
}

func (f *fakeCafeClient) ClearRemoteCart(context.Context) error {
	f.clears++
	return f.clearErr
}

type backend struct {
	requests atomic.Int32
	orders   atomic.Int32
	clears   atomic.Int32
	status   int
	body     string
	received chan domain.OrderSubmission
}

func newBackend(t *testing.T, status int, body string) (*backend, *cafeapi.Client) {
	t.Helper()
	b := &backend{status: status, body: body, received: make(chan domain.OrderSubmission, 1)}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.requests.Add(1)
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/orders":
			b.orders.Add(1)
			var s domain.OrderSubmission
			if assert.NoError(t, json.NewDecoder(r.Body).Decode(&s)) {
				b.received <- s
			}
			w.WriteHeader(b.status)
			_, _ = w.Write([]byte(b.body))
		case r.Method == http.MethodDelete && r.URL.Path == "/carts":
			b.clears.Add(1)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return b, cafeapi.NewClient(srv.URL, 2*time.Second, logger.NewNop(), nil)
}

func newCartService() *cart.Service {
	return cart.NewService(cartStorage.NewMemoryStore(), nil, logger.NewNop())
}

func newTestUseCase(cartService CartService, client CafeAPIClient) *UseCase {
	uc := NewUseCase(cartService, client, Config{Location: ict}, logger.NewNop())
	uc.timeProvider = fixedTime{now: friday}
	return uc
}

func recurringItem(info domain.CustomerInfo) *models.AddItemRequest {
	monday := domain.Monday
	return &models.AddItemRequest{
		Service: domain.ServiceRef{ID: "svc-1", Name: "Cat café visit", BasePrice: 100000},
		Slot: domain.Slot{
			ID:            "slot-mon",
			DayOfWeek:     &monday,
			StartTime:     types.MustTimeString("10:00"),
			EndTime:       types.MustTimeString("11:00"),
			MaxCapacity:   5,
			ServiceStatus: domain.ServiceStatusAvailable,
		},
		Notes:        "first visit",
		CustomerInfo: info,
	}
}

var contact = domain.CustomerInfo{FullName: "Nguyen Van A", Phone: "0900000000", Address: "1 Le Loi", Notes: "allergic to dogs"}

func TestExecute_RecurringSlotWithoutDate(t *testing.T) {
	ctx := context.Background()
	carts := newCartService()
	_, err := carts.Add(ctx, "s1", recurringItem(contact))
	require.NoError(t, err)

	client := &fakeCafeClient{order: &domain.Order{ID: "X"}}
	uc := newTestUseCase(carts, client)

	_, err = uc.Execute(ctx, &Request{Session: "s1"})
	require.NoError(t, err)

	require.Len(t, client.submitted, 1)
	require.Len(t, client.submitted[0].Services, 1)
	line := client.submitted[0].Services[0]
	assert.Equal(t, "slot-mon", line.SlotID)
	assert.Equal(t, "first visit", line.Notes)
	assert.Equal(t, "2026-10-19T03:00:00.000Z", line.BookingDate)
}

func TestExecute_MissingPhoneMakesNoRequest(t *testing.T) {
	ctx := context.Background()
	carts := newCartService()
	_, err := carts.Add(ctx, "s1", recurringItem(domain.CustomerInfo{FullName: "Nguyen Van A", Phone: ""}))
	require.NoError(t, err)

	b, client := newBackend(t, http.StatusCreated, `{"data":{"id":"X"}}`)
	uc := newTestUseCase(carts, client)

	_, err = uc.Execute(ctx, &Request{Session: "s1"})
	assert.ErrorIs(t, err, ErrMissingContactInfo)
	assert.Equal(t, int32(0), b.requests.Load())

	stored, err := carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)
}

func TestExecute_EmptyCartCheckedBeforeContact(t *testing.T) {
	b, client := newBackend(t, http.StatusCreated, `{"data":{"id":"X"}}`)
	uc := newTestUseCase(newCartService(), client)

	_, err := uc.Execute(context.Background(), &Request{
		Session:      "s1",
		CustomerInfo: &domain.CustomerInfo{FullName: "Nguyen Van A", Phone: ""},
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.NotErrorIs(t, err, ErrMissingContactInfo)
	assert.Equal(t, int32(0), b.requests.Load())
}

func TestExecute_EndToEnd(t *testing.T) {
	ctx := context.Background()
	carts := newCartService()
	_, err := carts.Add(ctx, "s1", recurringItem(contact))
	require.NoError(t, err)

	var events []models.CartEvent
	carts.Subscribe(func(e models.CartEvent) { events = append(events, e) })

	b, client := newBackend(t, http.StatusCreated, `{"data":{"id":"X","order_number":"N1","final_amount":100000}}`)
	uc := newTestUseCase(carts, client)

	resp, err := uc.Execute(ctx, &Request{Session: "s1", PaymentMethod: domain.PaymentBankTransfer})
	require.NoError(t, err)
	assert.Equal(t, "X", resp.Order.ID)
	assert.Equal(t, "N1", resp.Order.OrderNumber)

	submitted := <-b.received
	assert.Equal(t, "Nguyen Van A", submitted.FullName)
	assert.Equal(t, "0900000000", submitted.Phone)
	assert.Equal(t, "1 Le Loi", submitted.Address)
	assert.Equal(t, "allergic to dogs", submitted.Notes)
	assert.Equal(t, domain.ServerPaymentOnline, submitted.PaymentMethod)
	assert.Equal(t, int32(1), b.orders.Load())
	assert.Equal(t, int32(1), b.clears.Load())

	stored, err := carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, stored.IsEmpty())

	last, err := carts.LastOrder(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "X", last.ID)

	require.Len(t, events, 1)
	assert.Equal(t, models.EventCleared, events[0].Kind)
}

func TestExecute_BackendRejectionKeepsCart(t *testing.T) {
	ctx := context.Background()
	carts := newCartService()
	_, err := carts.Add(ctx, "s1", recurringItem(contact))
	require.NoError(t, err)

	b, client := newBackend(t, http.StatusBadRequest, `{"message":"Slot is full"}`)
	uc := newTestUseCase(carts, client)

	_, err = uc.Execute(ctx, &Request{Session: "s1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrderRejected)

	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, "Slot is full", rejected.Message)
	assert.Equal(t, int32(0), b.clears.Load())

	stored, err := carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)

	_, err = carts.LastOrder(ctx, "s1")
	assert.ErrorIs(t, err, cart.ErrNoLastOrder)
}

func TestExecute_TransportFailure(t *testing.T) {
	ctx := context.Background()
	carts := newCartService()
	_, err := carts.Add(ctx, "s1", recurringItem(contact))
	require.NoError(t, err)

	client := &fakeCafeClient{createErr: fmt.Errorf("%w: dial tcp: refused", cafeapi.ErrInternal)}
	uc := newTestUseCase(carts, client)

	_, err = uc.Execute(ctx, &Request{Session: "s1"})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, client.clears)

	stored, err := carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)
}

func TestExecute_RemoteCartClearIsBestEffort(t *testing.T) {
	ctx := context.Background()
	carts := newCartService()
	_, err := carts.Add(ctx, "s1", recurringItem(contact))
	require.NoError(t, err)

	client := &fakeCafeClient{order: &domain.Order{ID: "X"}, clearErr: errors.New("boom")}
	uc := newTestUseCase(carts, client)

	resp, err := uc.Execute(ctx, &Request{Session: "s1"})
	require.NoError(t, err)
	assert.Equal(t, "X", resp.Order.ID)

	stored, err := carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, stored.IsEmpty())
}

func TestExecute_Gates(t *testing.T) {
	ctx := context.Background()
	client := &fakeCafeClient{order: &domain.Order{ID: "X"}}

	uc := newTestUseCase(newCartService(), client)
	_, err := uc.Execute(ctx, &Request{Session: "s1"})
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = uc.Execute(ctx, &Request{Session: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	carts := newCartService()
	_, err = carts.Add(ctx, "s1", recurringItem(domain.CustomerInfo{FullName: "   ", Phone: "0900"}))
	require.NoError(t, err)
	uc = newTestUseCase(carts, client)
	_, err = uc.Execute(ctx, &Request{Session: "s1"})
	assert.ErrorIs(t, err, ErrMissingContactInfo)

	assert.Empty(t, client.submitted)
}

func TestExecute_RequestContactOverridesCart(t *testing.T) {
	ctx := context.Background()
	carts := newCartService()
	_, err := carts.Add(ctx, "s1", recurringItem(domain.CustomerInfo{}))
	require.NoError(t, err)

	client := &fakeCafeClient{order: &domain.Order{ID: "X"}}
	uc := newTestUseCase(carts, client)

	notes := "window seat"
	_, err = uc.Execute(ctx, &Request{
		Session:      "s1",
		CustomerInfo: &domain.CustomerInfo{FullName: " Tran Thi B ", Phone: "0911"},
		Notes:        &notes,
	})
	require.NoError(t, err)

	require.Len(t, client.submitted, 1)
	assert.Equal(t, "Tran Thi B", client.submitted[0].FullName)
	assert.Equal(t, "0911", client.submitted[0].Phone)
	assert.Equal(t, "window seat", client.submitted[0].Notes)
}

func TestExecute_PaymentMapping(t *testing.T) {
	tests := []struct {
		method domain.PaymentMethod
		want   domain.ServerPaymentMethod
	}{
		{method: domain.PaymentCash, want: domain.ServerPaymentAtCounter},
		{method: domain.PaymentBankTransfer, want: domain.ServerPaymentOnline},
		{method: "crypto", want: domain.ServerPaymentAtCounter},
		{method: "", want: domain.ServerPaymentAtCounter},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			ctx := context.Background()
			carts := newCartService()
			_, err := carts.Add(ctx, "s1", recurringItem(contact))
			require.NoError(t, err)

			client := &fakeCafeClient{order: &domain.Order{ID: "X"}}
			_, err = newTestUseCase(carts, client).Execute(ctx, &Request{Session: "s1", PaymentMethod: tt.method})
			require.NoError(t, err)
			require.Len(t, client.submitted, 1)
			assert.Equal(t, tt.want, client.submitted[0].PaymentMethod)
		})
	}
}
