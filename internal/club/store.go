package club

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/rally-stats/internal/query"
)

// New creates a new ClubStore. The dialect must match the driver db was opened with.
func New(db *sql.DB, dialect query.Dialect) ClubStore {
	return &store{
		db:      db,
		dialect: dialect,
	}
}

// bind rewrites the ? placeholders of a static statement for the store's dialect.
func (s *store) bind(stmt string) string {
	if s.dialect == query.Question {
		return stmt
	}
	var b strings.Builder
	n := 0
	for _, r := range stmt {
		if r == '?' {
			n++
			b.WriteString(s.dialect.Placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// compose joins base with the WHERE, ORDER BY and LIMIT clauses of opts.
func (s *store) compose(base string, opts ListOptions, ordered bool) (string, []any) {
	where, args := opts.Where.SQL(s.dialect)
	parts := []string{base}
	if where != "" {
		parts = append(parts, where)
	}
	if ordered {
		if order := opts.Order.SQL(); order != "" {
			parts = append(parts, order)
		}
		if window, wargs := opts.Window.SQL(s.dialect, len(args)); window != "" {
			parts = append(parts, window)
			args = append(args, wargs...)
		}
	}
	return strings.Join(parts, " "), args
}

func (s *store) count(ctx context.Context, from string, opts ListOptions) (int, error) {
	stmt, args := s.compose("SELECT COUNT(*) FROM "+from, opts, false)
	var n int
	if err := s.db.QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", from, err)
	}
	return n, nil
}

func (s *store) exists(ctx context.Context, table, id string) (bool, error) {
	var exists bool
	stmt := s.bind(fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = ?)", table))
	if err := s.db.QueryRowContext(ctx, stmt, id).Scan(&exists); err != nil {
		log.Error("Failed to check if row exists", "error", err, "table", table, "id", id)
		return false, err
	}
	return exists, nil
}

// execByID runs a single-row UPDATE or DELETE and maps zero affected rows to ErrNotFound.
func (s *store) execByID(ctx context.Context, stmt string, args ...any) error {
	res, err := s.db.ExecContext(ctx, s.bind(stmt), args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func millis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// ---- players ----

const playerColumns = "id, name, date_of_birth, gender, preferred_hand, created_at, updated_at"

func scanPlayer(scanner interface{ Scan(...any) error }) (*Player, error) {
	var p Player
	var createdAt, updatedAt int64
	if err := scanner.Scan(&p.ID, &p.Name, &p.DateOfBirth, &p.Gender, &p.PreferredHand, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return &p, nil
}

func (s *store) CountPlayers(ctx context.Context, opts ListOptions) (int, error) {
	return s.count(ctx, "players", opts)
}

func (s *store) ListPlayers(ctx context.Context, opts ListOptions) ([]Player, error) {
	stmt, args := s.compose("SELECT "+playerColumns+" FROM players", opts, true)
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()

	players := []Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (s *store) GetPlayer(ctx context.Context, id string) (*Player, error) {
	row := s.db.QueryRowContext(ctx, s.bind("SELECT "+playerColumns+" FROM players WHERE id = ?"), id)
	p, err := scanPlayer(row)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *store) PlayerExists(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, "players", id)
}

func (s *store) InsertPlayer(ctx context.Context, p Player) error {
	_, err := s.db.ExecContext(ctx, s.bind(`
		INSERT INTO players (id, name, date_of_birth, gender, preferred_hand, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		p.ID, p.Name, p.DateOfBirth, p.Gender, p.PreferredHand, millis(p.CreatedAt), millis(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert player %s: %w", p.ID, err)
	}
	log.FromContext(ctx).Debug("Inserted player", "playerID", p.ID)
	return nil
}

func (s *store) UpdatePlayer(ctx context.Context, p Player) error {
	return s.execByID(ctx, `
		UPDATE players SET name = ?, date_of_birth = ?, gender = ?, preferred_hand = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.DateOfBirth, p.Gender, p.PreferredHand, millis(p.UpdatedAt), p.ID)
}

func (s *store) DeletePlayer(ctx context.Context, id string) error {
	return s.execByID(ctx, "DELETE FROM players WHERE id = ?", id)
}

// ---- tests ----

const testColumns = "id, name, test_type, playing_time, recovery_time, date_conducted, description, created_at, updated_at"

func scanTest(scanner interface{ Scan(...any) error }) (*Test, error) {
	var t Test
	var testType, description sql.NullString
	var createdAt, updatedAt int64
	if err := scanner.Scan(&t.ID, &t.Name, &testType, &t.PlayingTime, &t.RecoveryTime, &t.DateConducted, &description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	t.TestType = TestType(testType.String)
	if description.Valid {
		t.Description = &description.String
	}
	t.CreatedAt = fromMillis(createdAt)
	t.UpdatedAt = fromMillis(updatedAt)
	return &t, nil
}

func nullable[T ~string](v T) sql.NullString {
	return sql.NullString{String: string(v), Valid: v != ""}
}

func nullableRef(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func (s *store) CountTests(ctx context.Context, opts ListOptions) (int, error) {
	return s.count(ctx, "tests", opts)
}

func (s *store) ListTests(ctx context.Context, opts ListOptions) ([]Test, error) {
	stmt, args := s.compose("SELECT "+testColumns+" FROM tests", opts, true)
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("Failed to query tests", "error", err)
		return nil, err
	}
	defer rows.Close()

	tests := []Test{}
	for rows.Next() {
		t, err := scanTest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan test: %w", err)
		}
		tests = append(tests, *t)
	}
	return tests, rows.Err()
}

func (s *store) GetTest(ctx context.Context, id string) (*Test, error) {
	row := s.db.QueryRowContext(ctx, s.bind("SELECT "+testColumns+" FROM tests WHERE id = ?"), id)
	t, err := scanTest(row)
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (s *store) TestExists(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, "tests", id)
}

func (s *store) InsertTest(ctx context.Context, t Test) error {
	_, err := s.db.ExecContext(ctx, s.bind(`
		INSERT INTO tests (id, name, test_type, playing_time, recovery_time, date_conducted, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		t.ID, t.Name, nullable(t.TestType), t.PlayingTime, t.RecoveryTime, t.DateConducted, nullableRef(t.Description), millis(t.CreatedAt), millis(t.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert test %s: %w", t.ID, err)
	}
	log.FromContext(ctx).Debug("Inserted test", "testID", t.ID)
	return nil
}

func (s *store) UpdateTest(ctx context.Context, t Test) error {
	return s.execByID(ctx, `
		UPDATE tests SET name = ?, test_type = ?, playing_time = ?, recovery_time = ?, date_conducted = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		t.Name, nullable(t.TestType), t.PlayingTime, t.RecoveryTime, t.DateConducted, nullableRef(t.Description), millis(t.UpdatedAt), t.ID)
}

func (s *store) DeleteTest(ctx context.Context, id string) error {
	return s.execByID(ctx, "DELETE FROM tests WHERE id = ?", id)
}

// ---- results ----

const (
	resultFrom    = "test_results r JOIN players p ON p.id = r.player_id JOIN tests t ON t.id = r.test_id"
	resultColumns = "r.id, r.player_id, r.test_id, r.left_hand, r.right_hand, r.forehand, r.backhand, r.created_at, r.updated_at, p.name, p.date_of_birth, t.name, t.date_conducted"
)

func scanResult(scanner interface{ Scan(...any) error }) (*Result, error) {
	var r Result
	var createdAt, updatedAt int64
	err := scanner.Scan(
		&r.ID, &r.PlayerID, &r.TestID,
		&r.LeftHand, &r.RightHand, &r.Forehand, &r.Backhand,
		&createdAt, &updatedAt,
		&r.PlayerName, &r.DateOfBirth, &r.TestName, &r.DateConducted,
	)
	if err != nil {
		return nil, err
	}
	r.CreatedAt = fromMillis(createdAt)
	r.UpdatedAt = fromMillis(updatedAt)
	return &r, nil
}

func (s *store) CountResults(ctx context.Context, opts ListOptions) (int, error) {
	return s.count(ctx, resultFrom, opts)
}

func (s *store) ListResults(ctx context.Context, opts ListOptions) ([]Result, error) {
	stmt, args := s.compose("SELECT "+resultColumns+" FROM "+resultFrom, opts, true)
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("Failed to query results", "error", err)
		return nil, err
	}
	defer rows.Close()

	results := []Result{}
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, *r)
	}
	return results, rows.Err()
}

func (s *store) GetResult(ctx context.Context, id string) (*Result, error) {
	row := s.db.QueryRowContext(ctx, s.bind("SELECT "+resultColumns+" FROM "+resultFrom+" WHERE r.id = ?"), id)
	r, err := scanResult(row)
	if err != nil {
		return nil, notFound(err)
	}
	return r, nil
}

func (s *store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx, s.bind(`
		INSERT INTO test_results (id, player_id, test_id, left_hand, right_hand, forehand, backhand, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		r.ID, r.PlayerID, r.TestID, r.LeftHand, r.RightHand, r.Forehand, r.Backhand, millis(r.CreatedAt), millis(r.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert result %s: %w", r.ID, err)
	}
	log.FromContext(ctx).Debug("Inserted result", "resultID", r.ID, "playerID", r.PlayerID, "testID", r.TestID)
	return nil
}

func (s *store) UpdateResult(ctx context.Context, r Result) error {
	return s.execByID(ctx, `
		UPDATE test_results SET player_id = ?, test_id = ?, left_hand = ?, right_hand = ?, forehand = ?, backhand = ?, updated_at = ?
		WHERE id = ?`,
		r.PlayerID, r.TestID, r.LeftHand, r.RightHand, r.Forehand, r.Backhand, millis(r.UpdatedAt), r.ID)
}

func (s *store) DeleteResult(ctx context.Context, id string) error {
	return s.execByID(ctx, "DELETE FROM test_results WHERE id = ?", id)
}
