package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mauv0809/rally-stats/internal/analytics"
	"github.com/mauv0809/rally-stats/internal/club"
	"github.com/mauv0809/rally-stats/internal/page"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
)

// validator collects field errors so a request reports all of them at once.
type validator struct {
	fields []FieldError
}

func (v *validator) add(field, format string, args ...any) {
	v.fields = append(v.fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

func (v *validator) name(field, value string) string {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		v.add(field, "is required")
	case utf8.RuneCountInString(value) > maxNameLength:
		v.add(field, "must be at most %d characters", maxNameLength)
	}
	return value
}

func (v *validator) date(field, value string) (time.Time, bool) {
	if value == "" {
		v.add(field, "is required")
		return time.Time{}, false
	}
	d, err := analytics.ParseDate(value)
	if err != nil {
		v.add(field, "must be a date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return d, true
}

// birthDate rejects dates in the future and dates implying an impossible age.
func (v *validator) birthDate(field, value string, now time.Time) {
	dob, ok := v.date(field, value)
	if !ok {
		return
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch {
	case dob.After(today):
		v.add(field, "must not be in the future")
	case analytics.Age(dob, now) > analytics.MaxAge:
		v.add(field, "implies an age above %d", analytics.MaxAge)
	}
}

func (v *validator) gender(field, value string) club.Gender {
	g := club.Gender(value)
	if !g.Valid() {
		v.add(field, "must be one of male, female")
	}
	return g
}

func (v *validator) hand(field, value string) club.Hand {
	h := club.Hand(value)
	if !h.Valid() {
		v.add(field, "must be one of left, right, both")
	}
	return h
}

func (v *validator) testType(field, value string) club.TestType {
	t := club.TestType(value)
	if _, _, ok := t.Durations(); !ok {
		v.add(field, "must be one of sprint, standard, endurance")
	}
	return t
}

func (v *validator) score(field string, value *int) int {
	if value == nil {
		v.add(field, "is required")
		return 0
	}
	switch {
	case *value < 0:
		v.add(field, "must not be negative")
	case *value > analytics.MaxSubScore:
		v.add(field, "must be at most %d", analytics.MaxSubScore)
	}
	return *value
}

func (v *validator) nonNegative(field string, value *int) {
	if value != nil && *value < 0 {
		v.add(field, "must not be negative")
	}
}

func (v *validator) bounds(minField, maxField string, min, max *int) {
	v.nonNegative(minField, min)
	v.nonNegative(maxField, max)
	if min != nil && max != nil && *min > *max {
		v.add(minField, "must not exceed %s", maxField)
	}
}

func (v *validator) page(req page.Request) {
	if req.Page < 1 {
		v.add("page", "must be at least 1")
	}
	if req.Limit < 1 {
		v.add("limit", "must be at least 1")
	}
}
