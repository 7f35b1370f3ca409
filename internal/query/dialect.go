package query

import (
	"fmt"
	"strconv"
)

// Dialect describes how a SQL backend spells bind parameters.
type Dialect interface {
	Placeholder(n int) string
}

type questionDialect struct{}

func (questionDialect) Placeholder(int) string { return "?" }

type dollarDialect struct{}

func (dollarDialect) Placeholder(n int) string { return "$" + strconv.Itoa(n) }

var (
	// Question is used by sqlite3 and libsql.
	Question Dialect = questionDialect{}
	// Dollar is used by postgres.
	Dollar Dialect = dollarDialect{}
)

// DialectFor returns the placeholder dialect for a database/sql driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "sqlite3", "libsql":
		return Question, nil
	case "pgx", "postgres":
		return Dollar, nil
	}
	return nil, fmt.Errorf("unsupported driver %q", driver)
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Order is a whitelisted ORDER BY clause. Column must come from a fixed table, never from input.
type Order struct {
	Column    string
	Direction Direction
	// Tiebreak keeps paging stable when Column has duplicates.
	Tiebreak string
}

// SQL renders the ORDER BY clause, or "" when no column is set.
func (o Order) SQL() string {
	if o.Column == "" {
		return ""
	}
	dir := o.Direction
	if dir != Desc {
		dir = Asc
	}
	clause := fmt.Sprintf("ORDER BY %s %s", o.Column, dir)
	if o.Tiebreak != "" && o.Tiebreak != o.Column {
		clause += fmt.Sprintf(", %s %s", o.Tiebreak, dir)
	}
	return clause
}

// Window limits a data query. A nil *Window reads every matching row.
type Window struct {
	Offset int
	Limit  int
}

// SQL renders LIMIT/OFFSET with placeholders numbered after offset.
func (w *Window) SQL(d Dialect, offset int) (string, []any) {
	if w == nil {
		return "", nil
	}
	return fmt.Sprintf("LIMIT %s OFFSET %s", d.Placeholder(offset+1), d.Placeholder(offset+2)), []any{w.Limit, w.Offset}
}
