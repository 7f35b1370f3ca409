package analytics

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for birth dates and test dates.
const DateLayout = "2006-01-02"

// MaxAge is the oldest age a valid date of birth may produce.
const MaxAge = 130

// AgeGroup is a bracket label derived from a player's age.
type AgeGroup string

const (
	AgeGroupMini    AgeGroup = "Mini"
	AgeGroupU09     AgeGroup = "U-09"
	AgeGroupU11     AgeGroup = "U-11"
	AgeGroupU13     AgeGroup = "U-13"
	AgeGroupU15     AgeGroup = "U-15"
	AgeGroupU17     AgeGroup = "U-17"
	AgeGroupU19     AgeGroup = "U-19"
	AgeGroupU21     AgeGroup = "U-21"
	AgeGroupSeniors AgeGroup = "Seniors"
)

// ageBracket is an exclusive upper bound: an age strictly below Below belongs to Group.
type ageBracket struct {
	Below int
	Group AgeGroup
}

// ageBrackets is checked in ascending order and the first match wins.
// Anything not matched is Seniors.
var ageBrackets = []ageBracket{
	{Below: 7, Group: AgeGroupMini},
	{Below: 9, Group: AgeGroupU09},
	{Below: 11, Group: AgeGroupU11},
	{Below: 13, Group: AgeGroupU13},
	{Below: 15, Group: AgeGroupU15},
	{Below: 17, Group: AgeGroupU17},
	{Below: 19, Group: AgeGroupU19},
	{Below: 21, Group: AgeGroupU21},
}

// AgeGroups lists every bracket from youngest to oldest.
func AgeGroups() []AgeGroup {
	groups := make([]AgeGroup, 0, len(ageBrackets)+1)
	for _, b := range ageBrackets {
		groups = append(groups, b.Group)
	}
	return append(groups, AgeGroupSeniors)
}

// ParseAgeGroup converts a label such as "U-11" into an AgeGroup.
func ParseAgeGroup(s string) (AgeGroup, error) {
	for _, g := range AgeGroups() {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown age group %q", s)
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// Age returns the number of whole years between dob and ref.
// The year difference is reduced by one when ref's month/day falls before dob's.
func Age(dob, ref time.Time) int {
	age := ref.Year() - dob.Year()
	if ref.Month() < dob.Month() || (ref.Month() == dob.Month() && ref.Day() < dob.Day()) {
		age--
	}
	return age
}

// GroupForAge maps an age onto its bracket.
func GroupForAge(age int) AgeGroup {
	for _, b := range ageBrackets {
		if age < b.Below {
			return b.Group
		}
	}
	return AgeGroupSeniors
}

// AgeRange returns the inclusive age span covered by a group. Seniors has no upper bound and
// reports max as -1.
func AgeRange(group AgeGroup) (min, max int) {
	lower := 0
	for _, b := range ageBrackets {
		if b.Group == group {
			return lower, b.Below - 1
		}
		lower = b.Below
	}
	return lower, -1
}

// Classifier computes age and age group relative to a clock.
type Classifier struct {
	now func() time.Time
}

// NewClassifier returns a Classifier reading the current time from now. A nil now uses time.Now.
func NewClassifier(now func() time.Time) *Classifier {
	if now == nil {
		now = time.Now
	}
	return &Classifier{now: now}
}

// Now returns the classifier's reference time.
func (c *Classifier) Now() time.Time {
	return c.now()
}

// Classify returns the age and age group of someone born on dob.
func (c *Classifier) Classify(dob time.Time) (int, AgeGroup) {
	age := Age(dob, c.now())
	return age, GroupForAge(age)
}

// BirthWindow returns the inclusive range of birth dates whose age, as of ref, lies in
// [minAge, maxAge]. A negative bound leaves that side open and is returned as the zero time.
func BirthWindow(ref time.Time, minAge, maxAge int) (earliest, latest time.Time) {
	if minAge >= 0 {
		// Born on or before this day to have turned minAge.
		latest = yearsBefore(ref, minAge)
	}
	if maxAge >= 0 {
		// Born after this day to not yet have turned maxAge+1.
		earliest = yearsBefore(ref, maxAge+1).AddDate(0, 0, 1)
	}
	return earliest, latest
}

// yearsBefore moves ref back n calendar years, clamping Feb 29 to Feb 28.
func yearsBefore(ref time.Time, n int) time.Time {
	d := time.Date(ref.Year()-n, ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	if d.Month() != ref.Month() {
		d = d.AddDate(0, 0, -d.Day())
	}
	return d
}
