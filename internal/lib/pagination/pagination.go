// Package pagination реализует постраничный вывод списков: разбор
// параметров запроса page и page_size и формирование метаданных страницы.
package pagination

import (
	"net/http"
	"strconv"
)

// Ограничения размера страницы.
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Params описывает запрошенную страницу.
type Params struct {
	Page     int
	PageSize int
}

// Meta описывает метаданные страницы в ответе списка.
type Meta struct {
	Count       int  `json:"count"`
	TotalPages  int  `json:"total_pages"`
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// FromRequest извлекает параметры пагинации из query-строки.
// Некорректные значения заменяются значениями по умолчанию,
// page_size ограничивается сверху MaxPageSize.
func FromRequest(r *http.Request) Params {
	p := Params{Page: 1, PageSize: DefaultPageSize}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			p.Page = page
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			p.PageSize = size
		}
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Limit возвращает лимит выборки для слоя хранилища.
func (p Params) Limit() int {
	return p.PageSize
}

// Offset возвращает смещение выборки для слоя хранилища.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// NewMeta формирует метаданные страницы по общему числу записей.
func NewMeta(count int, p Params) Meta {
	totalPages := count / p.PageSize
	if count%p.PageSize != 0 {
		totalPages++
	}
	if totalPages == 0 {
		totalPages = 1
	}
	return Meta{
		Count:       count,
		TotalPages:  totalPages,
		CurrentPage: p.Page,
		PageSize:    p.PageSize,
		HasNext:     p.Page < totalPages,
		HasPrevious: p.Page > 1,
	}
}
