package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
	"github.com/m04kA/SMC-PetCafeGateway/internal/integrations/cafeapi"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/logger"
)

var ict = time.FixedZone("ICT", 7*3600)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeCafeClient struct {
	slots    []domain.Slot
	slotsErr error
	release  chan struct{}

	groups    map[string]domain.PetGroup
	groupErr  map[string]error
	groupWait time.Duration

	slotCalls  atomic.Int32
	groupCalls atomic.Int32
	inFlight   atomic.Int32
	maxFlight  atomic.Int32
}

func (f *fakeCafeClient) ListServiceSlots(ctx context.Context, serviceID string, limit int) ([]domain.Slot, error) {
	f.slotCalls.Add(1)
	if f.release != nil {
		<-f.release
	}
	if f.slotsErr != nil {
		return nil, f.slotsErr
	}
	return f.slots, nil
}

func (f *fakeCafeClient) GetPetGroup(ctx context.Context, groupID string) (*domain.PetGroup, error) {
	f.groupCalls.Add(1)
	current := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		prev := f.maxFlight.Load()
		if current <= prev || f.maxFlight.CompareAndSwap(prev, current) {
			break
		}
	}
	if f.groupWait > 0 {
		time.Sleep(f.groupWait)
	}

	if err, ok := f.groupErr[groupID]; ok {
		return nil, err
	}
	group, ok := f.groups[groupID]
	if !ok {
		return nil, cafeapi.ErrNotFound
	}
	return &group, nil
}

func newTestUseCase(client CafeAPIClient, concurrency int, now time.Time) *UseCase {
	uc := NewUseCase(client, Config{
		Location:         ict,
		RecurringWeeks:   4,
		PageLimit:        50,
		FetchConcurrency: concurrency,
	}, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func withGroup(s domain.Slot, groupID string) domain.Slot {
	s.PetGroupID = &groupID
	return s
}

func TestUseCase_TodayInCafeTimezone(t *testing.T) {
	client := &fakeCafeClient{slots: []domain.Slot{
		pinnedSlot("yesterday-local", "2026-10-18", "10:00", 5),
		pinnedSlot("today-local", "2026-10-19", "10:00", 5),
		recurringSlot("monday", domain.Monday, "09:00", 5),
	}}
	// 20:00 UTC воскресенья это уже 03:00 понедельника в кафе
	uc := newTestUseCase(client, 2, time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1"})
	require.NoError(t, err)

	assert.Equal(t, "2026-10-19", resp.Today.String())
	assert.Equal(t, "svc-1", resp.ServiceID)
	assert.Equal(t, []string{
		"today-local_2026-10-19",
		"monday_2026-10-26",
		"monday_2026-11-02",
		"monday_2026-11-09",
	}, keys(resp.Occurrences))
}

func TestUseCase_AttachesPetGroupsBestEffort(t *testing.T) {
	client := &fakeCafeClient{
		slots: []domain.Slot{
			withGroup(pinnedSlot("a", "2026-10-20", "09:00", 5), "cats"),
			withGroup(pinnedSlot("b", "2026-10-20", "10:00", 5), "dogs"),
			withGroup(pinnedSlot("c", "2026-10-21", "09:00", 5), "cats"),
			pinnedSlot("d", "2026-10-21", "10:00", 5),
		},
		groups:   map[string]domain.PetGroup{"cats": {ID: "cats", Name: "Mèo"}},
		groupErr: map[string]error{"dogs": fmt.Errorf("%w: boom", cafeapi.ErrInternal)},
	}
	uc := newTestUseCase(client, 4, time.Date(2026, 10, 16, 3, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1"})
	require.NoError(t, err)
	require.Len(t, resp.Occurrences, 4)

	assert.Equal(t, int32(2), client.groupCalls.Load())

	require.NotNil(t, resp.Occurrences[0].PetGroup)
	assert.Equal(t, "Mèo", resp.Occurrences[0].PetGroup.Name)
	assert.Nil(t, resp.Occurrences[1].PetGroup)
	require.NotNil(t, resp.Occurrences[2].PetGroup)
	assert.Nil(t, resp.Occurrences[3].PetGroup)
}

func TestUseCase_BoundedFanOut(t *testing.T) {
	var slots []domain.Slot
	groups := map[string]domain.PetGroup{}
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("g%d", i)
		slots = append(slots, withGroup(pinnedSlot(fmt.Sprintf("s%d", i), "2026-10-20", "09:00", 5), id))
		groups[id] = domain.PetGroup{ID: id}
	}
	client := &fakeCafeClient{slots: slots, groups: groups, groupWait: 10 * time.Millisecond}
	uc := newTestUseCase(client, 2, time.Date(2026, 10, 16, 3, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1"})
	require.NoError(t, err)

	assert.Equal(t, int32(8), client.groupCalls.Load())
	assert.LessOrEqual(t, client.maxFlight.Load(), int32(2))
}

func TestUseCase_Errors(t *testing.T) {
	now := time.Date(2026, 10, 16, 3, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeCafeClient{}, 1, now)
	_, err := uc.Execute(context.Background(), &Request{ServiceID: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	uc = newTestUseCase(&fakeCafeClient{slotsErr: &cafeapi.APIError{StatusCode: 404}}, 1, now)
	_, err = uc.Execute(context.Background(), &Request{ServiceID: "svc-1"})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	uc = newTestUseCase(&fakeCafeClient{slotsErr: errors.New("dial tcp: refused")}, 1, now)
	_, err = uc.Execute(context.Background(), &Request{ServiceID: "svc-1"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUseCase_CallerCancellation(t *testing.T) {
	client := &fakeCafeClient{release: make(chan struct{})}
	uc := newTestUseCase(client, 1, time.Date(2026, 10, 16, 3, 0, 0, 0, time.UTC))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := uc.Execute(ctx, &Request{ServiceID: "svc-1"})
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrInternal)
		assert.ErrorContains(t, err, context.Canceled.Error())
	case <-time.After(2 * time.Second):
		t.Fatal("Execute did not return after cancellation")
	}

	close(client.release)
}

func TestUseCase_CollapsesConcurrentRequests(t *testing.T) {
	client := &fakeCafeClient{
		slots:   []domain.Slot{pinnedSlot("a", "2026-10-20", "09:00", 5)},
		release: make(chan struct{}),
	}
	uc := newTestUseCase(client, 1, time.Date(2026, 10, 16, 3, 0, 0, 0, time.UTC))

	const callers = 5
	var wg sync.WaitGroup
	results := make([]*Response, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = uc.Execute(context.Background(), &Request{ServiceID: "svc-1"})
		}()
	}

	// ждем, пока первый запрос дойдет до бэкенда, остальные встанут в очередь за ним
	require.Eventually(t, func() bool { return client.slotCalls.Load() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(client.release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Len(t, results[i].Occurrences, 1)
	}
	assert.Equal(t, int32(1), client.slotCalls.Load())
}
