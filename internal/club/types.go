package club

import (
	"database/sql"
	"errors"
	"time"

	"github.com/mauv0809/rally-stats/internal/query"
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("not found")

// store handles all database operations for the club.
type store struct {
	db      *sql.DB
	dialect query.Dialect
}

type Gender string

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type Hand string

func (h Hand) Valid() bool {
	return h == HandLeft || h == HandRight || h == HandBoth
}

const (
	HandLeft  Hand = "left"
	HandRight Hand = "right"
	HandBoth  Hand = "both"
)

// TestType is a named preset that fixes a test's playing and recovery time.
type TestType string

const (
	TestTypeSprint    TestType = "sprint"
	TestTypeStandard  TestType = "standard"
	TestTypeEndurance TestType = "endurance"
)

// TestTypes lists the presets in display order.
func TestTypes() []TestType {
	return []TestType{TestTypeSprint, TestTypeStandard, TestTypeEndurance}
}

// Durations returns the playing and recovery seconds fixed by a preset.
func (t TestType) Durations() (playing, recovery int, ok bool) {
	switch t {
	case TestTypeSprint:
		return 30, 30, true
	case TestTypeStandard:
		return 45, 15, true
	case TestTypeEndurance:
		return 60, 30, true
	}
	return 0, 0, false
}

// Player is a stored athlete.
type Player struct {
	ID            string
	Name          string
	DateOfBirth   string // YYYY-MM-DD
	Gender        Gender
	PreferredHand Hand
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Test is a stored standardized test. TestType is empty when the durations were given directly.
type Test struct {
	ID            string
	Name          string
	TestType      TestType
	PlayingTime   int    // seconds
	RecoveryTime  int    // seconds
	DateConducted string // YYYY-MM-DD
	Description   *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Result is a stored test result with the names of the player and test it belongs to.
// PlayerName, TestName and DateOfBirth are filled by reads and ignored by writes.
type Result struct {
	ID            string
	PlayerID      string
	TestID        string
	LeftHand      int
	RightHand     int
	Forehand      int
	Backhand      int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	PlayerName    string
	DateOfBirth   string
	TestName      string
	DateConducted string
}

// ListOptions narrows and orders a list read. A nil Window reads every matching row.
type ListOptions struct {
	Where  query.Where
	Order  query.Order
	Window *query.Window
}

// Filterable columns. Result columns are qualified because result reads join players and tests.
const (
	PlayerColumnID          = "id"
	PlayerColumnName        = "name"
	PlayerColumnDateOfBirth = "date_of_birth"
	PlayerColumnGender      = "gender"
	PlayerColumnHand        = "preferred_hand"
	PlayerColumnCreatedAt   = "created_at"

	TestColumnID            = "id"
	TestColumnName          = "name"
	TestColumnType          = "test_type"
	TestColumnPlayingTime   = "playing_time"
	TestColumnRecoveryTime  = "recovery_time"
	TestColumnDateConducted = "date_conducted"
	TestColumnCreatedAt     = "created_at"

	ResultColumnID            = "r.id"
	ResultColumnPlayerID      = "r.player_id"
	ResultColumnTestID        = "r.test_id"
	ResultColumnCreatedAt     = "r.created_at"
	ResultColumnPlayerName    = "p.name"
	ResultColumnTestName      = "t.name"
	ResultColumnDateConducted = "t.date_conducted"
	ResultColumnTotalScore    = "(r.left_hand + r.right_hand + r.forehand + r.backhand)"
)
