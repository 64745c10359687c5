package cafeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/reqctx"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/types"
)

// maxSlotPages защита от бэкенда, который бесконечно сообщает о следующей странице
const maxSlotPages = 50

// Endpoint labels for metrics
const (
	endpointServiceSlots = "service_slots"
	endpointPetGroup     = "pet_group"
	endpointCreateOrder  = "create_order"
	endpointClearCart    = "clear_cart"
	endpointTeams        = "teams"
	endpointShifts       = "shifts"
	endpointAttendance   = "attendance"
)

// Client клиент REST бэкенда кафе
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
	metrics    Metrics
}

// NewClient создает клиента. Таймаут применяется к каждому запросу, запросов без дедлайна нет.
// metrics может быть nil.
func NewClient(baseURL string, timeout time.Duration, log Logger, metrics Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:     log,
		metrics: metrics,
	}
}

// SlotPage одна страница слотов услуги
type SlotPage struct {
	Slots []domain.Slot
	Page  Page
}

// GetServiceSlots GET /services/{id}/slots?page&limit
func (c *Client) GetServiceSlots(ctx context.Context, serviceID string, page, limit int) (*SlotPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	path := fmt.Sprintf("/services/%s/slots", url.PathEscape(serviceID))
	body, err := c.do(ctx, endpointServiceSlots, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	raw, p, err := adaptEnvelope(body, PageRequest{Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}

	var dtos []SlotDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, fmt.Errorf("%w: failed to decode slots: %v", ErrInvalidResponse, err)
	}

	slots := make([]domain.Slot, 0, len(dtos))
	for i := range dtos {
		slot := dtos[i].ToDomain()
		if slot.ServiceID == "" {
			slot.ServiceID = serviceID
		}
		slots = append(slots, slot)
	}

	return &SlotPage{Slots: slots, Page: p}, nil
}

// ListServiceSlots обходит все страницы слотов услуги
func (c *Client) ListServiceSlots(ctx context.Context, serviceID string, limit int) ([]domain.Slot, error) {
	var all []domain.Slot

	for page := 1; page <= maxSlotPages; page++ {
		result, err := c.GetServiceSlots(ctx, serviceID, page, limit)
		if err != nil {
			return nil, err
		}
		all = append(all, result.Slots...)

		if !result.Page.HasNext() || len(result.Slots) == 0 {
			return all, nil
		}
	}

	c.log.Warn("ListServiceSlots: service=%s stopped after %d pages", serviceID, maxSlotPages)
	return all, nil
}

// GetPetGroup GET /pet-groups/{id}
func (c *Client) GetPetGroup(ctx context.Context, groupID string) (*domain.PetGroup, error) {
	path := fmt.Sprintf("/pet-groups/%s", url.PathEscape(groupID))
	body, err := c.do(ctx, endpointPetGroup, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var dto PetGroupDTO
	if err := decodeEntity(body, &dto); err != nil {
		return nil, err
	}

	group := dto.ToDomain()
	if group.ID == "" {
		group.ID = groupID
	}
	return &group, nil
}

// CreateOrder POST /orders
func (c *Client) CreateOrder(ctx context.Context, submission *domain.OrderSubmission) (*domain.Order, error) {
	body, err := c.do(ctx, endpointCreateOrder, http.MethodPost, "/orders", nil, submission)
	if err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := decodeEntity(body, &dto); err != nil {
		return nil, err
	}
	if dto.ID == "" {
		return nil, fmt.Errorf("%w: order response has no id", ErrInvalidResponse)
	}

	order := dto.ToDomain()
	return &order, nil
}

// ClearRemoteCart DELETE /carts
func (c *Client) ClearRemoteCart(ctx context.Context) error {
	_, err := c.do(ctx, endpointClearCart, http.MethodDelete, "/carts", nil, nil)
	return err
}

// ListTeams GET /teams
func (c *Client) ListTeams(ctx context.Context) ([]domain.Team, error) {
	body, err := c.do(ctx, endpointTeams, http.MethodGet, "/teams", nil, nil)
	if err != nil {
		return nil, err
	}

	raw, _, err := adaptAny(body, PageRequest{Page: 1})
	if err != nil {
		return nil, err
	}

	var dtos []TeamDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, fmt.Errorf("%w: failed to decode teams: %v", ErrInvalidResponse, err)
	}

	teams := make([]domain.Team, 0, len(dtos))
	for i := range dtos {
		teams = append(teams, dtos[i].ToDomain())
	}
	return teams, nil
}

// ListShifts GET /shifts. Смены с некорректным временем пропускаются.
func (c *Client) ListShifts(ctx context.Context) ([]domain.Shift, error) {
	body, err := c.do(ctx, endpointShifts, http.MethodGet, "/shifts", nil, nil)
	if err != nil {
		return nil, err
	}

	raw, _, err := adaptAny(body, PageRequest{Page: 1})
	if err != nil {
		return nil, err
	}

	var dtos []ShiftDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, fmt.Errorf("%w: failed to decode shifts: %v", ErrInvalidResponse, err)
	}

	shifts := make([]domain.Shift, 0, len(dtos))
	for i := range dtos {
		shift, err := dtos[i].ToDomain()
		if err != nil {
			c.log.Warn("ListShifts: skip shift id=%s: %v", dtos[i].ID, err)
			continue
		}
		shifts = append(shifts, shift)
	}
	return shifts, nil
}

// ListAttendanceOverrides GET /attendance?from&to
func (c *Client) ListAttendanceOverrides(ctx context.Context, from, to types.Date) ([]domain.AttendanceOverride, error) {
	query := url.Values{}
	query.Set("from", from.String())
	query.Set("to", to.String())

	body, err := c.do(ctx, endpointAttendance, http.MethodGet, "/attendance", query, nil)
	if err != nil {
		return nil, err
	}

	raw, _, err := adaptAny(body, PageRequest{Page: 1})
	if err != nil {
		return nil, err
	}

	var dtos []AttendanceDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, fmt.Errorf("%w: failed to decode attendance: %v", ErrInvalidResponse, err)
	}

	overrides := make([]domain.AttendanceOverride, 0, len(dtos))
	for i := range dtos {
		o, err := dtos[i].ToDomain()
		if err != nil {
			c.log.Warn("ListAttendanceOverrides: skip record with date=%q: %v", dtos[i].Date, err)
			continue
		}
		overrides = append(overrides, o)
	}
	return overrides, nil
}

// do выполняет запрос и возвращает тело успешного ответа
func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	started := time.Now()
	status := "error"
	defer func() {
		if c.metrics != nil {
			c.metrics.ObserveUpstream(endpoint, status, started)
		}
	}()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := reqctx.AuthToken(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID, ok := reqctx.RequestID(ctx)
	if !ok {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			status = "canceled"
		}
		return nil, fmt.Errorf("%w: failed to execute %s %s: %v", ErrInternal, method, path, err)
	}
	defer resp.Body.Close()

	status = strconv.Itoa(resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrInternal, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: extractMessage(body)}
		c.log.Warn("cafeapi: %s %s request_id=%s returned %d: %s", method, path, requestID, resp.StatusCode, apiErr.Message)
		return nil, apiErr
	}

	return body, nil
}

// decodeEntity разбирает одиночную сущность, завернутую в {data: ...} или без обертки
func decodeEntity(body []byte, dst interface{}) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	raw := json.RawMessage(body)
	if isJSONObject(env.Data) {
		raw = env.Data
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

// extractMessage достает текст ошибки из полей message или error.
// message бывает строкой или массивом строк (ошибки валидации).
func extractMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}

	for _, raw := range []json.RawMessage{eb.Message, eb.Error} {
		if len(raw) == 0 {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
			return strings.Join(list, "; ")
		}
	}
	return ""
}
