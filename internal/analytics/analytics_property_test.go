package analytics

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var propertyRef = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

// dobFromDays turns a day offset into a birth date at most MaxAge years before propertyRef.
func dobFromDays(days int) time.Time {
	return propertyRef.AddDate(0, 0, -days)
}

func TestAgeProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	maxDays := MaxAge * 365

	properties.Property("age stays within [0, MaxAge] for past birth dates", prop.ForAll(
		func(days int) bool {
			age := Age(dobFromDays(days), propertyRef)
			return age >= 0 && age <= MaxAge
		},
		gen.IntRange(0, maxDays),
	))

	properties.Property("age is non-increasing as the reference moves backward", prop.ForAll(
		func(days, back int) bool {
			dob := dobFromDays(days)
			earlier := propertyRef.AddDate(0, 0, -back)
			return Age(dob, earlier) <= Age(dob, propertyRef)
		},
		gen.IntRange(0, maxDays),
		gen.IntRange(0, 3650),
	))

	properties.Property("age group is monotone in age", prop.ForAll(
		func(a, b int) bool {
			if a > b {
				a, b = b, a
			}
			return groupRank(GroupForAge(a)) <= groupRank(GroupForAge(b))
		},
		gen.IntRange(0, MaxAge),
		gen.IntRange(0, MaxAge),
	))

	properties.Property("birth window bounds classify back into the requested ages", prop.ForAll(
		func(minAge, span int) bool {
			maxAge := minAge + span
			earliest, latest := BirthWindow(propertyRef, minAge, maxAge)
			return Age(latest, propertyRef) == minAge &&
				Age(earliest, propertyRef) == maxAge &&
				Age(latest.AddDate(0, 0, 1), propertyRef) == minAge-1 &&
				Age(earliest.AddDate(0, 0, -1), propertyRef) == maxAge+1
		},
		gen.IntRange(0, 80),
		gen.IntRange(0, 40),
	))

	properties.TestingRun(t)
}

func TestScoreProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	analyzer := NewAnalyzer(DefaultConfig())

	properties.Property("total is the exact sum and average is total/4", prop.ForAll(
		func(l, r, f, b int) bool {
			s := Aggregate(Scores{LeftHand: l, RightHand: r, Forehand: f, Backhand: b})
			return s.TotalScore == l+r+f+b &&
				s.AverageScore*4 == float64(s.TotalScore) &&
				s.ScoreDistribution.HandTotal+s.ScoreDistribution.StrokeTotal == s.TotalScore
		},
		gen.IntRange(0, 10000),
		gen.IntRange(0, 10000),
		gen.IntRange(0, 10000),
		gen.IntRange(0, 10000),
	))

	properties.Property("lowest <= average <= highest", prop.ForAll(
		func(l, r, f, b int) bool {
			s := Aggregate(Scores{LeftHand: l, RightHand: r, Forehand: f, Backhand: b})
			return float64(s.LowestScore) <= s.AverageScore && s.AverageScore <= float64(s.HighestScore)
		},
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
	))

	properties.Property("category never improves as the total drops", prop.ForAll(
		func(a, b int) bool {
			if a > b {
				a, b = b, a
			}
			return categoryRank(analyzer, analyzer.Category(a)) >= categoryRank(analyzer, analyzer.Category(b))
		},
		gen.IntRange(0, 200),
		gen.IntRange(0, 200),
	))

	properties.TestingRun(t)
}

func groupRank(g AgeGroup) int {
	for i, candidate := range AgeGroups() {
		if candidate == g {
			return i
		}
	}
	return -1
}

// categoryRank is 0 for the best category.
func categoryRank(a *Analyzer, label string) int {
	for i, l := range a.Config().Labels() {
		if l == label {
			return i
		}
	}
	return -1
}
