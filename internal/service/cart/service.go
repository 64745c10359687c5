package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
	cartStorage "github.com/m04kA/SMC-PetCafeGateway/internal/infra/storage/cart"
	"github.com/m04kA/SMC-PetCafeGateway/internal/service/cart/models"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/eventbus"
)

// Service корзина бронирований и последний заказ клиента.
// Каждое изменение корзины публикует bookingCartUpdated подписчикам.
type Service struct {
	store        StateStore
	bus          *eventbus.Bus[models.CartEvent]
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger

	mu sync.Mutex
}

// NewService создает новый экземпляр сервиса корзины. metrics может быть nil.
func NewService(store StateStore, metrics Metrics, logger Logger) *Service {
	return &Service{
		store:        store,
		bus:          eventbus.New[models.CartEvent](),
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Subscribe подписка на bookingCartUpdated. Возвращает функцию отписки.
func (s *Service) Subscribe(fn func(event models.CartEvent)) (unsubscribe func()) {
	return s.bus.Subscribe(fn)
}

// Get возвращает корзину сессии. Отсутствующая или испорченная корзина считается пустой.
func (s *Service) Get(ctx context.Context, session string) (*domain.Cart, error) {
	return s.load(ctx, session)
}

// Add добавляет позицию. Дубликаты не отсеиваются: один и тот же слот на одну дату
// можно положить дважды. Контактные данные у всех позиций общие.
func (s *Service) Add(ctx context.Context, session string, req *models.AddItemRequest) (*domain.Cart, error) {
	if err := validateAddItem(req); err != nil {
		s.logger.Warn("Add: session=%s validation failed: %v", session, err)
		return nil, err
	}

	item := domain.CartItem{
		ID:           uuid.NewString(),
		Service:      req.Service,
		Slot:         req.Slot,
		BookingDate:  strings.TrimSpace(req.BookingDate),
		SelectedDate: strings.TrimSpace(req.SelectedDate),
		Notes:        req.Notes,
		CustomerInfo: req.CustomerInfo,
		AddedAt:      s.timeProvider.Now().UTC(),
	}

	cart, err := s.mutate(ctx, session, func(cart *domain.Cart) error {
		if !cart.IsEmpty() {
			shared := cart.CustomerInfo()
			switch {
			case !shared.IsEmpty():
				item.CustomerInfo = shared
			case !item.CustomerInfo.IsEmpty():
				for i := range cart.Items {
					cart.Items[i].CustomerInfo = item.CustomerInfo
				}
			}
		}
		cart.Items = append(cart.Items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Add: session=%s slot=%s date=%s item=%s, cart size=%d",
		session, item.Slot.ID, item.BookingDate, item.ID, len(cart.Items))
	s.publish(models.EventItemAdded, session, cart)
	return cart, nil
}

// Remove удаляет позицию по ID
func (s *Service) Remove(ctx context.Context, session, itemID string) (*domain.Cart, error) {
	cart, err := s.mutate(ctx, session, func(cart *domain.Cart) error {
		if !cart.Remove(itemID) {
			return ErrItemNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			s.logger.Warn("Remove: session=%s item=%s not found", session, itemID)
		}
		return nil, err
	}

	s.logger.Info("Remove: session=%s item=%s removed, cart size=%d", session, itemID, len(cart.Items))
	s.publish(models.EventItemRemoved, session, cart)
	return cart, nil
}

// Clear очищает корзину сессии
func (s *Service) Clear(ctx context.Context, session string) error {
	s.mu.Lock()
	err := s.store.Delete(ctx, cartKey(session))
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Clear: session=%s storage error: %v", session, err)
		return fmt.Errorf("%w: Clear - storage error: %v", ErrInternal, err)
	}

	s.logger.Info("Clear: session=%s cart cleared", session)
	s.publish(models.EventCleared, session, &domain.Cart{})
	return nil
}

// SaveLastOrder запоминает последний оформленный заказ для экрана подтверждения
func (s *Service) SaveLastOrder(ctx context.Context, session string, order *domain.Order) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("%w: SaveLastOrder - encode: %v", ErrInternal, err)
	}

	if err := s.store.Set(ctx, lastOrderKey(session), raw); err != nil {
		s.logger.Error("SaveLastOrder: session=%s storage error: %v", session, err)
		return fmt.Errorf("%w: SaveLastOrder - storage error: %v", ErrInternal, err)
	}
	return nil
}

// LastOrder возвращает последний заказ сессии
func (s *Service) LastOrder(ctx context.Context, session string) (*domain.Order, error) {
	raw, err := s.store.Get(ctx, lastOrderKey(session))
	if err != nil {
		if errors.Is(err, cartStorage.ErrNotFound) {
			return nil, ErrNoLastOrder
		}
		s.logger.Error("LastOrder: session=%s storage error: %v", session, err)
		return nil, fmt.Errorf("%w: LastOrder - storage error: %v", ErrInternal, err)
	}

	var order domain.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		s.logger.Warn("LastOrder: session=%s stored order is corrupted: %v", session, err)
		return nil, ErrNoLastOrder
	}
	return &order, nil
}

// mutate загружает корзину, применяет fn и сохраняет результат.
// Подписчики уведомляются уже после снятия блокировки.
func (s *Service) mutate(ctx context.Context, session string, fn func(cart *domain.Cart) error) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// load читает корзину. В хранилище она лежит JSON массивом позиций.
func (s *Service) load(ctx context.Context, session string) (*domain.Cart, error) {
	raw, err := s.store.Get(ctx, cartKey(session))
	if err != nil {
		if errors.Is(err, cartStorage.ErrNotFound) {
			return &domain.Cart{}, nil
		}
		s.logger.Error("load: session=%s storage error: %v", session, err)
		return nil, fmt.Errorf("%w: load cart - storage error: %v", ErrInternal, err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		// испорченную корзину считаем пустой
		s.logger.Warn("load: session=%s stored cart is corrupted, starting empty: %v", session, err)
		return &domain.Cart{}, nil
	}
	return &domain.Cart{Items: items}, nil
}

func (s *Service) save(ctx context.Context, session string, cart *domain.Cart) error {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: save cart - encode: %v", ErrInternal, err)
	}
	if err := s.store.Set(ctx, cartKey(session), raw); err != nil {
		s.logger.Error("save: session=%s storage error: %v", session, err)
		return fmt.Errorf("%w: save cart - storage error: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) publish(kind, session string, cart *domain.Cart) {
	if s.metrics != nil {
		s.metrics.IncCartEvent(kind)
	}

	snapshot := domain.Cart{Items: append([]domain.CartItem(nil), cart.Items...)}
	s.bus.Publish(models.CartEvent{
		Name:    domain.CartUpdatedEvent,
		Kind:    kind,
		Session: session,
		Cart:    snapshot,
	})
}

func validateAddItem(req *models.AddItemRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Slot.ID) == "" {
		return fmt.Errorf("%w: slot id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Service.ID) == "" {
		return fmt.Errorf("%w: service id is required", ErrInvalidInput)
	}
	// дата не обязательна: при оформлении она выводится из слота
	for name, value := range map[string]string{"booking_date": req.BookingDate, "selectedDate": req.SelectedDate} {
		if value = strings.TrimSpace(value); value == "" {
			continue
		}
		// разбор как при оформлении
		if _, err := domain.ParseBookingDate(value, req.Slot.StartTime, time.UTC); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidInput, name, err)
		}
	}
	if len([]rune(req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

func cartKey(session string) string {
	return domain.CartStorageKey + ":" + session
}

func lastOrderKey(session string) string {
	return domain.LastOrderStorageKey + ":" + session
}
