package query

import "cmp"

// Post is a predicate over a value whose fields only exist after derivation.
type Post[T any] func(T) bool

// Plan splits a filter into the part the store evaluates and the part applied after
// derived fields are attached.
type Plan[T any] struct {
	Where Where
	Post  []Post[T]
}

// Store adds a storage predicate.
func (p *Plan[T]) Store(pred Predicate) {
	p.Where = p.Where.And(pred)
}

// Derived adds a post-computation predicate.
func (p *Plan[T]) Derived(pred Post[T]) {
	p.Post = append(p.Post, pred)
}

// HasPost reports whether any predicate needs derived fields.
func (p Plan[T]) HasPost() bool {
	return len(p.Post) > 0
}

// Match reports whether v satisfies every post predicate.
func (p Plan[T]) Match(v T) bool {
	for _, pred := range p.Post {
		if !pred(v) {
			return false
		}
	}
	return true
}

// Filter returns the items that satisfy every post predicate, preserving order.
func (p Plan[T]) Filter(items []T) []T {
	if !p.HasPost() {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if p.Match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Between reports whether v lies in the inclusive range bounded by min and max. Nil bounds are open.
func Between[N cmp.Ordered](v N, min, max *N) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}
