package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
	"github.com/m04kA/SMC-PetCafeGateway/internal/integrations/cafeapi"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/ptr"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/types"
)

// UseCase use case оформления корзины в заказ
type UseCase struct {
	cartService  CartService
	cafeClient   CafeAPIClient
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cartService CartService,
	cafeClient CafeAPIClient,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &UseCase{
		cartService:  cartService,
		cafeClient:   cafeClient,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case оформления заказа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Checkout: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем корзину
	cart, err := uc.cartService.Get(ctx, req.Session)
	if err != nil {
		uc.logger.Error("Checkout: session=%s failed to load cart: %v", req.Session, err)
		return nil, fmt.Errorf("%w: failed to load cart: %v", ErrInternal, err)
	}
	if cart.IsEmpty() {
		uc.logger.Warn("Checkout: session=%s cart is empty", req.Session)
		return nil, ErrEmptyCart
	}

	// 3. Контактные данные: из формы, иначе общие данные корзины. Без них бэкенд не вызывается.
	info := cart.CustomerInfo()
	if req.CustomerInfo != nil && !req.CustomerInfo.IsEmpty() {
		info = *req.CustomerInfo
	}
	if err := validateContact(info); err != nil {
		uc.logger.Warn("Checkout: session=%s contact info missing", req.Session)
		return nil, err
	}

	// 4. Собираем заказ
	submission := uc.buildSubmission(cart, info, req)

	// 5. Отправляем в бэкенд
	order, err := uc.cafeClient.CreateOrder(ctx, &submission)
	if err != nil {
		if msg, ok := cafeapi.MessageOf(err); ok {
			uc.logger.Warn("Checkout: session=%s order rejected: %s", req.Session, msg)
			return nil, &RejectedError{Message: msg}
		}
		uc.logger.Error("Checkout: session=%s failed to create order: %v", req.Session, err)
		return nil, fmt.Errorf("%w: failed to create order: %v", ErrInternal, err)
	}

	uc.logger.Info("Checkout: session=%s order created id=%s number=%s, items=%d",
		req.Session, order.ID, order.OrderNumber, len(submission.Services))

	// 6. Заказ создан: дальше только уборка, ошибки не отменяют результат
	if err := uc.cartService.SaveLastOrder(ctx, req.Session, order); err != nil {
		uc.logger.Error("Checkout: session=%s failed to save last order: %v", req.Session, err)
	}
	if err := uc.cafeClient.ClearRemoteCart(ctx); err != nil {
		uc.logger.Warn("Checkout: session=%s failed to clear remote cart: %v", req.Session, err)
	}
	if err := uc.cartService.Clear(ctx, req.Session); err != nil {
		uc.logger.Error("Checkout: session=%s failed to clear cart: %v", req.Session, err)
	}

	return &Response{
		Order:      *order,
		Submission: submission,
	}, nil
}

func (uc *UseCase) buildSubmission(cart *domain.Cart, info domain.CustomerInfo, req *Request) domain.OrderSubmission {
	today := types.DateOf(uc.timeProvider.Now().In(uc.cfg.Location))

	notes := ptr.Deref(req.Notes, info.Notes)

	lines := make([]domain.OrderServiceLine, 0, len(cart.Items))
	for i := range cart.Items {
		item := &cart.Items[i]
		lines = append(lines, domain.OrderServiceLine{
			SlotID:      item.Slot.ID,
			Notes:       item.Notes,
			BookingDate: formatOrderDate(resolveBookingTime(item, today, uc.cfg.Location)),
		})
	}

	return domain.OrderSubmission{
		FullName:      strings.TrimSpace(info.FullName),
		Address:       strings.TrimSpace(info.Address),
		Phone:         strings.TrimSpace(info.Phone),
		Notes:         notes,
		Services:      lines,
		PaymentMethod: req.PaymentMethod.ToServer(),
	}
}
