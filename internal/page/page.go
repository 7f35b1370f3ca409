// Package page converts page/limit parameters into offsets and assembles page envelopes.
package page

import (
	"context"
	"errors"
	"math"

	"golang.org/x/sync/errgroup"
)

// Default limits used when the caller does not configure any.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

var (
	ErrInvalidPage  = errors.New("page must be at least 1")
	ErrInvalidLimit = errors.New("limit must be at least 1")
)

// Request is a one-based page request.
type Request struct {
	Page  int
	Limit int
}

// Normalize fills a zero page or limit with defaults and caps the limit at maxLimit.
// Negative values are left in place for Validate to reject.
func (r Request) Normalize(defaultLimit, maxLimit int) Request {
	if r.Page == 0 {
		r.Page = 1
	}
	if r.Limit == 0 {
		r.Limit = defaultLimit
	}
	if maxLimit > 0 && r.Limit > maxLimit {
		r.Limit = maxLimit
	}
	return r
}

// Validate rejects pages and limits below one.
func (r Request) Validate() error {
	if r.Page < 1 {
		return ErrInvalidPage
	}
	if r.Limit < 1 {
		return ErrInvalidLimit
	}
	return nil
}

// Offset is the number of rows skipped before this page. It saturates at math.MaxInt
// so an absurdly large page lands past the end instead of wrapping around.
func (r Request) Offset() int {
	if r.Page < 1 || r.Limit < 1 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.Limit {
		return math.MaxInt
	}
	return (r.Page - 1) * r.Limit
}

// Envelope is one page of items plus the metadata needed to walk the rest.
type Envelope[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// TotalPages is ceil(total/limit), and 0 when there are no items.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// NewEnvelope wraps items already cut to req's window.
func NewEnvelope[T any](items []T, req Request, total int) Envelope[T] {
	if items == nil {
		items = []T{}
	}
	return Envelope[T]{
		Items:      items,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalItems: total,
		TotalPages: TotalPages(total, req.Limit),
	}
}

// Map converts the items of an envelope, keeping its metadata.
func Map[T, U any](e Envelope[T], fn func(T) U) Envelope[U] {
	items := make([]U, len(e.Items))
	for i, item := range e.Items {
		items[i] = fn(item)
	}
	return Envelope[U]{
		Items:      items,
		Page:       e.Page,
		Limit:      e.Limit,
		TotalItems: e.TotalItems,
		TotalPages: e.TotalPages,
	}
}

// Slice pages an in-memory candidate set. A page past the end yields no items.
func Slice[T any](all []T, req Request) Envelope[T] {
	start := min(max(req.Offset(), 0), len(all))
	end := min(start+max(req.Limit, 0), len(all))
	items := make([]T, end-start)
	copy(items, all[start:end])
	return NewEnvelope(items, req, len(all))
}

// CountFunc returns the total number of matching rows.
type CountFunc func(ctx context.Context) (int, error)

// ListFunc returns the rows inside the window.
type ListFunc[T any] func(ctx context.Context, offset, limit int) ([]T, error)

// Fetch runs count and list concurrently and combines them into an envelope.
// If either fails the other is cancelled and the first error is returned.
func Fetch[T any](ctx context.Context, req Request, count CountFunc, list ListFunc[T]) (Envelope[T], error) {
	var (
		total int
		items []T
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := count(gctx)
		total = n
		return err
	})
	g.Go(func() error {
		rows, err := list(gctx, req.Offset(), req.Limit)
		items = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return Envelope[T]{}, err
	}
	return NewEnvelope(items, req, total), nil
}
