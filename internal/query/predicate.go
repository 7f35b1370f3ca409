// Package query composes conjunctive filters that are split between the storage layer and
// post-computation over derived fields.
package query

import (
	"fmt"
	"strings"
)

// Predicate is a filter the storage layer can evaluate natively.
// The concrete kinds are Equal, Contains and Range.
type Predicate interface {
	render(d Dialect, n *int) (string, []any)
}

// Equal matches rows whose Column equals Value.
type Equal struct {
	Column string
	Value  any
}

// Contains matches rows whose Column contains Text, ignoring case.
type Contains struct {
	Column string
	Text   string
}

// Range matches rows whose Column lies in the inclusive range [Min, Max].
// A nil bound leaves that side open.
type Range struct {
	Column string
	Min    any
	Max    any
}

// RangeOf builds a Range from optional bounds, leaving nil pointers open.
func RangeOf[N any](column string, min, max *N) Range {
	r := Range{Column: column}
	if min != nil {
		r.Min = *min
	}
	if max != nil {
		r.Max = *max
	}
	return r
}

func (p Equal) render(d Dialect, n *int) (string, []any) {
	return fmt.Sprintf("%s = %s", p.Column, next(d, n)), []any{p.Value}
}

func (p Contains) render(d Dialect, n *int) (string, []any) {
	pattern := "%" + escapeLike(strings.ToLower(p.Text)) + "%"
	return fmt.Sprintf(`LOWER(%s) LIKE %s ESCAPE '\'`, p.Column, next(d, n)), []any{pattern}
}

func (p Range) render(d Dialect, n *int) (string, []any) {
	var parts []string
	var args []any
	if p.Min != nil {
		parts = append(parts, fmt.Sprintf("%s >= %s", p.Column, next(d, n)))
		args = append(args, p.Min)
	}
	if p.Max != nil {
		parts = append(parts, fmt.Sprintf("%s <= %s", p.Column, next(d, n)))
		args = append(args, p.Max)
	}
	return strings.Join(parts, " AND "), args
}

func next(d Dialect, n *int) string {
	*n++
	return d.Placeholder(*n)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Where is a conjunction of storage predicates.
type Where []Predicate

// And returns a copy of w with p appended. Empty ranges are dropped.
func (w Where) And(p Predicate) Where {
	if r, ok := p.(Range); ok && r.Min == nil && r.Max == nil {
		return w
	}
	out := make(Where, len(w), len(w)+1)
	copy(out, w)
	return append(out, p)
}

// SQL renders w as a WHERE clause, numbering placeholders from 1. An empty Where renders "".
func (w Where) SQL(d Dialect) (string, []any) {
	return w.SQLFrom(d, 0)
}

// SQLFrom renders w as a WHERE clause whose first placeholder is offset+1.
func (w Where) SQLFrom(d Dialect, offset int) (string, []any) {
	if len(w) == 0 {
		return "", nil
	}
	n := offset
	clauses := make([]string, 0, len(w))
	var args []any
	for _, p := range w {
		clause, a := p.render(d, &n)
		if clause == "" {
			continue
		}
		clauses = append(clauses, clause)
		args = append(args, a...)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}
