package page

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest(t *testing.T) {
	r := Request{}.Normalize(10, 100)
	assert.Equal(t, Request{Page: 1, Limit: 10}, r)
	assert.Equal(t, 0, r.Offset())

	r = Request{Page: 3, Limit: 500}.Normalize(10, 100)
	assert.Equal(t, 100, r.Limit)
	assert.Equal(t, 200, r.Offset())

	assert.ErrorIs(t, Request{Page: -1, Limit: 10}.Normalize(10, 100).Validate(), ErrInvalidPage)
	assert.ErrorIs(t, Request{Page: 1, Limit: -5}.Normalize(10, 100).Validate(), ErrInvalidLimit)
	assert.NoError(t, Request{Page: 2, Limit: 10}.Validate())
}

func TestOffsetSaturates(t *testing.T) {
	assert.Equal(t, math.MaxInt, Request{Page: 1<<62 + 1, Limit: 2}.Offset())
	assert.Equal(t, math.MaxInt, Request{Page: 1<<61 + 1, Limit: 8}.Offset())
	assert.Equal(t, math.MaxInt, Request{Page: math.MaxInt, Limit: MaxLimit}.Offset())

	// The largest page whose offset still fits is computed exactly.
	last := math.MaxInt/MaxLimit + 1
	assert.Equal(t, (last-1)*MaxLimit, Request{Page: last, Limit: MaxLimit}.Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 2, TotalPages(15, 10))
}

func TestNewEnvelope_Empty(t *testing.T) {
	e := NewEnvelope[string](nil, Request{Page: 1, Limit: 10}, 0)
	assert.NotNil(t, e.Items)
	assert.Empty(t, e.Items)
	assert.Equal(t, 0, e.TotalPages)
}

func TestSlice(t *testing.T) {
	all := make([]int, 15)
	for i := range all {
		all[i] = i
	}

	e := Slice(all, Request{Page: 2, Limit: 10})
	assert.Equal(t, []int{10, 11, 12, 13, 14}, e.Items)
	assert.Equal(t, 15, e.TotalItems)
	assert.Equal(t, 2, e.TotalPages)

	e = Slice(all, Request{Page: 5, Limit: 10})
	assert.Empty(t, e.Items)
	assert.NotNil(t, e.Items)
	assert.Equal(t, 15, e.TotalItems)

	e = Slice(all, Request{Page: 1<<62 + 1, Limit: 2})
	assert.NotNil(t, e.Items)
	assert.Empty(t, e.Items)
	assert.Equal(t, 15, e.TotalItems)
}

func TestFetch(t *testing.T) {
	rows := make([]int, 15)
	for i := range rows {
		rows[i] = i
	}
	count := func(ctx context.Context) (int, error) { return len(rows), nil }
	list := func(ctx context.Context, offset, limit int) ([]int, error) {
		if offset >= len(rows) {
			return nil, nil
		}
		return rows[offset:min(offset+limit, len(rows))], nil
	}

	t.Run("second page of fifteen", func(t *testing.T) {
		e, err := Fetch(context.Background(), Request{Page: 2, Limit: 10}, count, list)
		require.NoError(t, err)
		assert.Equal(t, 15, e.TotalItems)
		assert.Equal(t, 2, e.TotalPages)
		assert.Len(t, e.Items, 5)
	})

	t.Run("page beyond the end is empty, not an error", func(t *testing.T) {
		e, err := Fetch(context.Background(), Request{Page: 9, Limit: 10}, count, list)
		require.NoError(t, err)
		assert.NotNil(t, e.Items)
		assert.Empty(t, e.Items)
		assert.Equal(t, 2, e.TotalPages)
	})

	t.Run("count failure fails the whole request", func(t *testing.T) {
		boom := errors.New("count failed")
		_, err := Fetch(context.Background(), Request{Page: 1, Limit: 10},
			func(ctx context.Context) (int, error) { return 0, boom }, list)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("list failure fails the whole request", func(t *testing.T) {
		boom := errors.New("list failed")
		_, err := Fetch(context.Background(), Request{Page: 1, Limit: 10}, count,
			func(ctx context.Context, offset, limit int) ([]int, error) { return nil, boom })
		assert.ErrorIs(t, err, boom)
	})
}

func TestMap(t *testing.T) {
	e := Map(NewEnvelope([]int{1, 2}, Request{Page: 1, Limit: 2}, 3), func(v int) string {
		return string(rune('a' + v))
	})
	assert.Equal(t, []string{"b", "c"}, e.Items)
	assert.Equal(t, 3, e.TotalItems)
	assert.Equal(t, 2, e.TotalPages)
}

func TestPaginationProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("totalPages is ceil(N/L)", prop.ForAll(
		func(n, l int) bool {
			pages := TotalPages(n, l)
			return pages*l >= n && (pages == 0 || (pages-1)*l < n)
		},
		gen.IntRange(0, 10000),
		gen.IntRange(1, 100),
	))

	properties.Property("pages past the end are empty", prop.ForAll(
		func(n, l, extra int) bool {
			all := make([]int, n)
			e := Slice(all, Request{Page: TotalPages(n, l) + extra, Limit: l})
			return len(e.Items) == 0 && e.TotalItems == n
		},
		gen.IntRange(0, 500),
		gen.IntRange(1, 50),
		gen.IntRange(1, 5),
	))

	properties.Property("walking every page visits every item once", prop.ForAll(
		func(n, l int) bool {
			all := make([]int, n)
			for i := range all {
				all[i] = i
			}
			seen := 0
			for p := 1; p <= TotalPages(n, l); p++ {
				for _, v := range Slice(all, Request{Page: p, Limit: l}).Items {
					if v != seen {
						return false
					}
					seen++
				}
			}
			return seen == n
		},
		gen.IntRange(0, 300),
		gen.IntRange(1, 40),
	))

	properties.TestingRun(t)
}
