package cafeapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Page нормализованная пагинация. Вызывающий код никогда не видит, в каком диалекте ответил бэкенд.
type Page struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// HasNext есть ли следующая страница
func (p Page) HasNext() bool {
	return p.Page < p.TotalPages
}

// PageRequest запрошенная страница, используется для значений по умолчанию
type PageRequest struct {
	Page  int
	Limit int
}

// pageAdapter разбирает тело ответа списочного эндпоинта в элементы и Page.
// Каждый эндпоинт явно выбирает свой адаптер.
type pageAdapter func(body []byte, req PageRequest) (json.RawMessage, Page, error)

// envelopePagination {"data": [...], "pagination": {"page", "limit", "total", "totalPages"}}
type envelopePagination struct {
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Page            *int `json:"page"`
		CurrentPage     *int `json:"currentPage"`
		Limit           *int `json:"limit"`
		PageSize        *int `json:"pageSize"`
		Total           *int `json:"total"`
		TotalItems      *int `json:"totalItems"`
		TotalPages      *int `json:"totalPages"`
		TotalPagesSnake *int `json:"total_pages"`
	} `json:"pagination"`
}

// metaPagination {"data": [...], "meta": {"current_page", "per_page", "total", "last_page"}}
type metaPagination struct {
	Data json.RawMessage `json:"data"`
	Meta *struct {
		CurrentPage *int `json:"current_page"`
		PerPage     *int `json:"per_page"`
		Total       *int `json:"total"`
		LastPage    *int `json:"last_page"`
	} `json:"meta"`
}

// flatPagination {"items": [...], "page", "limit", "total", "total_pages"}
type flatPagination struct {
	Items      json.RawMessage `json:"items"`
	Page       *int            `json:"page"`
	Limit      *int            `json:"limit"`
	Total      *int            `json:"total"`
	TotalPages *int            `json:"total_pages"`
}

// adaptEnvelope адаптер для эндпоинтов со структурой {data, pagination}.
// Встречается и дважды завернутый вариант {data: {data, pagination}}.
func adaptEnvelope(body []byte, req PageRequest) (json.RawMessage, Page, error) {
	var env envelopePagination
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, Page{}, fmt.Errorf("%w: decode paginated envelope: %v", ErrInvalidResponse, err)
	}

	if isJSONObject(env.Data) && env.Pagination == nil {
		return adaptEnvelope(env.Data, req)
	}
	if !isJSONArray(env.Data) {
		return nil, Page{}, fmt.Errorf("%w: paginated envelope has no data array", ErrInvalidResponse)
	}

	var page, limit, total, totalPages *int
	if p := env.Pagination; p != nil {
		page = firstInt(p.Page, p.CurrentPage)
		limit = firstInt(p.Limit, p.PageSize)
		total = firstInt(p.Total, p.TotalItems)
		totalPages = firstInt(p.TotalPages, p.TotalPagesSnake)
	}

	return env.Data, normalizePage(req, countItems(env.Data), page, limit, total, totalPages), nil
}

// adaptMeta адаптер для эндпоинтов со структурой {data, meta}
func adaptMeta(body []byte, req PageRequest) (json.RawMessage, Page, error) {
	var env metaPagination
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, Page{}, fmt.Errorf("%w: decode meta envelope: %v", ErrInvalidResponse, err)
	}
	if !isJSONArray(env.Data) {
		return nil, Page{}, fmt.Errorf("%w: meta envelope has no data array", ErrInvalidResponse)
	}

	var page, limit, total, totalPages *int
	if m := env.Meta; m != nil {
		page, limit, total, totalPages = m.CurrentPage, m.PerPage, m.Total, m.LastPage
	}

	return env.Data, normalizePage(req, countItems(env.Data), page, limit, total, totalPages), nil
}

// adaptFlat адаптер для эндпоинтов со структурой {items, page, limit, total}
func adaptFlat(body []byte, req PageRequest) (json.RawMessage, Page, error) {
	var env flatPagination
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, Page{}, fmt.Errorf("%w: decode flat page: %v", ErrInvalidResponse, err)
	}
	if !isJSONArray(env.Items) {
		return nil, Page{}, fmt.Errorf("%w: flat page has no items array", ErrInvalidResponse)
	}

	return env.Items, normalizePage(req, countItems(env.Items), env.Page, env.Limit, env.Total, env.TotalPages), nil
}

// adaptBareList адаптер для эндпоинтов без пагинации, отдающих массив (или {data: [...]})
func adaptBareList(body []byte, req PageRequest) (json.RawMessage, Page, error) {
	trimmed := bytes.TrimSpace(body)
	if !isJSONArray(trimmed) {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &env); err != nil || !isJSONArray(env.Data) {
			return nil, Page{}, fmt.Errorf("%w: expected a JSON array", ErrInvalidResponse)
		}
		trimmed = env.Data
	}

	n := countItems(trimmed)
	return trimmed, Page{Page: 1, Limit: n, Total: n, TotalPages: 1}, nil
}

// normalizePage заполняет отсутствующие поля: страница и лимит из запроса,
// total из числа элементов, totalPages из total и лимита
func normalizePage(req PageRequest, itemCount int, page, limit, total, totalPages *int) Page {
	p := Page{
		Page:  req.Page,
		Limit: req.Limit,
	}
	if p.Page <= 0 {
		p.Page = 1
	}
	if page != nil && *page > 0 {
		p.Page = *page
	}
	if limit != nil && *limit > 0 {
		p.Limit = *limit
	}
	if p.Limit <= 0 {
		p.Limit = itemCount
	}

	switch {
	case total != nil && *total >= 0:
		p.Total = *total
	default:
		p.Total = (p.Page-1)*p.Limit + itemCount
	}

	switch {
	case totalPages != nil && *totalPages > 0:
		p.TotalPages = *totalPages
	case p.Limit > 0:
		p.TotalPages = (p.Total + p.Limit - 1) / p.Limit
	}
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}

	return p
}

func firstInt(values ...*int) *int {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func isJSONArray(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func isJSONObject(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func countItems(raw json.RawMessage) int {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0
	}
	return len(items)
}

// adaptAny для эндпоинтов, диалект которых различается между версиями бэкенда.
// Выбирает один из явных адаптеров по ключам верхнего уровня.
func adaptAny(body []byte, req PageRequest) (json.RawMessage, Page, error) {
	trimmed := bytes.TrimSpace(body)
	if isJSONArray(trimmed) {
		return adaptBareList(trimmed, req)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &keys); err != nil {
		return nil, Page{}, fmt.Errorf("%w: decode list response: %v", ErrInvalidResponse, err)
	}

	switch {
	case keys["meta"] != nil:
		return adaptMeta(trimmed, req)
	case keys["items"] != nil:
		return adaptFlat(trimmed, req)
	case keys["data"] != nil:
		return adaptEnvelope(trimmed, req)
	default:
		return nil, Page{}, fmt.Errorf("%w: unknown list response shape", ErrInvalidResponse)
	}
}
