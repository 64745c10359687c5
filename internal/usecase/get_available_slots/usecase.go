package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
	"github.com/m04kA/SMC-PetCafeGateway/internal/integrations/cafeapi"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/reqctx"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/types"
)

// UseCase use case для получения занятий услуги на ближайшие даты
type UseCase struct {
	cafeClient   CafeAPIClient
	cfg          Config
	timeProvider TimeProvider
	logger       Logger

	// одинаковые параллельные запросы по одной услуге схлопываются в один поход в бэкенд
	inflight singleflight.Group
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cafeClient CafeAPIClient,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.RecurringWeeks <= 0 {
		cfg.RecurringWeeks = domain.RecurringWeeksAhead
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = domain.DefaultSlotPageLimit
	}
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = 1
	}

	return &UseCase{
		cafeClient:   cafeClient,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения занятий
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. "Сегодня" определяется в часовом поясе кафе
	today := types.DateOf(uc.timeProvider.Now().In(uc.cfg.Location))
	uc.logger.Info("GetAvailableSlots: service=%s, today=%s", req.ServiceID, today)

	// 3. Схлопываем одинаковые запросы. Общая работа не отменяется вместе
	// с контекстом одного из ожидающих, но ограничена таймаутом клиента.
	token, _ := reqctx.AuthToken(ctx)
	key := req.ServiceID + "|" + today.String() + "|" + token
	shared := context.WithoutCancel(ctx)

	ch := uc.inflight.DoChan(key, func() (interface{}, error) {
		return uc.resolve(shared, req.ServiceID, today)
	})

	select {
	case <-ctx.Done():
		uc.logger.Warn("GetAvailableSlots: service=%s request canceled: %v", req.ServiceID, ctx.Err())
		return nil, fmt.Errorf("%w: %v", ErrInternal, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		occurrences := res.Val.([]domain.Occurrence)
		if res.Shared {
			// у каждого вызывающего свой срез
			occurrences = append([]domain.Occurrence(nil), occurrences...)
		}
		return &Response{
			ServiceID:   req.ServiceID,
			Today:       today,
			Occurrences: occurrences,
		}, nil
	}
}

func (uc *UseCase) resolve(ctx context.Context, serviceID string, today types.Date) ([]domain.Occurrence, error) {
	// 1. Выгружаем все страницы слотов
	slots, err := uc.cafeClient.ListServiceSlots(ctx, serviceID, uc.cfg.PageLimit)
	if err != nil {
		if errors.Is(err, cafeapi.ErrNotFound) {
			uc.logger.Warn("GetAvailableSlots: service=%s not found", serviceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to list slots for service=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 2. Разворачиваем слоты в занятия
	occurrences := Resolve(slots, today, uc.cfg.RecurringWeeks)

	// 3. Подтягиваем группы питомцев для отображения
	groups, err := uc.fetchPetGroups(ctx, occurrences)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: service=%s pet group fetch interrupted: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to fetch pet groups: %v", ErrInternal, err)
	}
	attachPetGroups(occurrences, groups)

	uc.logger.Info("GetAvailableSlots: service=%s, slots=%d, occurrences=%d, pet groups=%d",
		serviceID, len(slots), len(occurrences), len(groups))
	return occurrences, nil
}

// fetchPetGroups запрашивает группы питомцев параллельно, не больше FetchConcurrency одновременно.
// Ошибка по отдельной группе не фатальна: занятие просто остается без группы.
// Ошибку возвращает только отмена контекста.
func (uc *UseCase) fetchPetGroups(ctx context.Context, occurrences []domain.Occurrence) (map[string]domain.PetGroup, error) {
	ids := uniquePetGroupIDs(occurrences)
	groups := make(map[string]domain.PetGroup, len(ids))
	if len(ids) == 0 {
		return groups, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.FetchConcurrency)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			group, err := uc.cafeClient.GetPetGroup(gctx, id)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				uc.logger.Warn("GetAvailableSlots: pet group id=%s unavailable: %v", id, err)
				return nil
			}

			mu.Lock()
			groups[id] = *group
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return groups, nil
}

func uniquePetGroupIDs(occurrences []domain.Occurrence) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for i := range occurrences {
		id := occurrences[i].Slot.PetGroupID
		if id == nil || *id == "" {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		ids = append(ids, *id)
	}
	sort.Strings(ids)
	return ids
}

func attachPetGroups(occurrences []domain.Occurrence, groups map[string]domain.PetGroup) {
	for i := range occurrences {
		id := occurrences[i].Slot.PetGroupID
		if id == nil {
			continue
		}
		if group, ok := groups[*id]; ok {
			g := group
			occurrences[i].PetGroup = &g
		}
	}
}
