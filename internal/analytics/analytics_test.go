package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestAge(t *testing.T) {
	tests := []struct {
		name string
		dob  string
		ref  string
		want int
	}{
		{"birthday today", "2015-06-01", "2024-06-01", 9},
		{"day before birthday", "2015-06-01", "2024-05-31", 8},
		{"later month", "2015-06-01", "2024-07-01", 9},
		{"earlier month", "2015-06-01", "2024-01-15", 8},
		{"born today", "2024-06-01", "2024-06-01", 0},
		{"leap day in non-leap year", "2012-02-29", "2023-02-28", 10},
		{"leap day after feb", "2012-02-29", "2023-03-01", 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Age(mustDate(t, tt.dob), mustDate(t, tt.ref)))
		})
	}
}

func TestGroupForAge_Boundaries(t *testing.T) {
	tests := []struct {
		age  int
		want AgeGroup
	}{
		{0, AgeGroupMini},
		{6, AgeGroupMini},
		{7, AgeGroupU09},
		{8, AgeGroupU09},
		{9, AgeGroupU11},
		{10, AgeGroupU11},
		{11, AgeGroupU13},
		{13, AgeGroupU15},
		{15, AgeGroupU17},
		{17, AgeGroupU19},
		{19, AgeGroupU21},
		{20, AgeGroupU21},
		{21, AgeGroupSeniors},
		{64, AgeGroupSeniors},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GroupForAge(tt.age), "age %d", tt.age)
	}
}

func TestClassifier_Classify(t *testing.T) {
	ref := mustDate(t, "2024-06-01")
	c := NewClassifier(func() time.Time { return ref })

	age, group := c.Classify(mustDate(t, "2015-06-01"))
	assert.Equal(t, 9, age)
	assert.Equal(t, AgeGroupU11, group)
}

func TestAgeRange(t *testing.T) {
	min, max := AgeRange(AgeGroupMini)
	assert.Equal(t, 0, min)
	assert.Equal(t, 6, max)

	min, max = AgeRange(AgeGroupU11)
	assert.Equal(t, 9, min)
	assert.Equal(t, 10, max)

	min, max = AgeRange(AgeGroupSeniors)
	assert.Equal(t, 21, min)
	assert.Equal(t, -1, max)

	for _, g := range AgeGroups() {
		lo, _ := AgeRange(g)
		assert.Equal(t, g, GroupForAge(lo), "lower bound of %s", g)
	}
}

func TestParseAgeGroup(t *testing.T) {
	g, err := ParseAgeGroup("U-13")
	require.NoError(t, err)
	assert.Equal(t, AgeGroupU13, g)

	_, err = ParseAgeGroup("U-12")
	assert.Error(t, err)
}

func TestBirthWindow(t *testing.T) {
	ref := mustDate(t, "2024-06-01")

	earliest, latest := BirthWindow(ref, 9, 9)
	assert.Equal(t, "2014-06-02", earliest.Format(DateLayout))
	assert.Equal(t, "2015-06-01", latest.Format(DateLayout))
	assert.Equal(t, 9, Age(earliest, ref))
	assert.Equal(t, 9, Age(latest, ref))
	assert.Equal(t, 10, Age(earliest.AddDate(0, 0, -1), ref))
	assert.Equal(t, 8, Age(latest.AddDate(0, 0, 1), ref))

	earliest, latest = BirthWindow(ref, -1, 5)
	assert.True(t, latest.IsZero())
	assert.Equal(t, "2018-06-02", earliest.Format(DateLayout))

	leap := mustDate(t, "2024-02-29")
	_, latest = BirthWindow(leap, 1, -1)
	assert.Equal(t, "2023-02-28", latest.Format(DateLayout))
	assert.Equal(t, 1, Age(latest, leap))
}

func TestAggregate(t *testing.T) {
	s := Aggregate(Scores{LeftHand: 10, RightHand: 8, Forehand: 7, Backhand: 5})

	assert.Equal(t, 30, s.TotalScore)
	assert.Equal(t, 7.5, s.AverageScore)
	assert.Equal(t, 10, s.HighestScore)
	assert.Equal(t, 5, s.LowestScore)
	assert.Equal(t, 18, s.ScoreDistribution.HandTotal)
	assert.Equal(t, 12, s.ScoreDistribution.StrokeTotal)
	assert.Equal(t, 10, s.ScoreDistribution.LeftHand)
	assert.Equal(t, 5, s.ScoreDistribution.Backhand)
}

func TestAggregate_AllZero(t *testing.T) {
	s := Aggregate(Scores{})
	assert.Equal(t, 0, s.TotalScore)
	assert.Equal(t, 0.0, s.AverageScore)
	assert.Equal(t, 0, s.HighestScore)
	assert.Equal(t, 0, s.LowestScore)
}

func TestAnalyzer_Category(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	tests := []struct {
		total int
		want  string
	}{
		{0, CategoryBelowAverage},
		{19, CategoryBelowAverage},
		{20, CategoryAverage},
		{27, CategoryAverage},
		{28, CategoryGood},
		{30, CategoryGood},
		{35, CategoryGood},
		{36, CategoryExcellent},
		{400, CategoryExcellent},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, a.Category(tt.total), "total %d", tt.total)
	}
	assert.True(t, a.IsCategory(CategoryGood))
	assert.False(t, a.IsCategory("legendary"))
}

func TestAnalyzer_Analyze(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())

	t.Run("left dominant, strokes balanced", func(t *testing.T) {
		got := a.Analyze(Scores{LeftHand: 10, RightHand: 6, Forehand: 7, Backhand: 5})
		assert.Equal(t, DominantLeft, got.Hand.Dominant)
		assert.Equal(t, 4, got.Hand.Difference)
		require.NotNil(t, got.Hand.Ratio)
		assert.InDelta(t, 10.0/6.0, *got.Hand.Ratio, 1e-9)
		assert.Equal(t, DominantBalanced, got.Stroke.Dominant)
		assert.Equal(t, 2, got.Stroke.Difference)
		assert.False(t, got.Balanced)
	})

	t.Run("backhand dominant", func(t *testing.T) {
		got := a.Analyze(Scores{LeftHand: 5, RightHand: 5, Forehand: 2, Backhand: 9})
		assert.Equal(t, DominantBalanced, got.Hand.Dominant)
		assert.Equal(t, DominantBackhand, got.Stroke.Dominant)
		assert.Equal(t, -7, got.Stroke.Difference)
	})

	t.Run("zero denominator has no ratio", func(t *testing.T) {
		got := a.Analyze(Scores{LeftHand: 4, RightHand: 0, Forehand: 0, Backhand: 0})
		assert.Nil(t, got.Hand.Ratio)
		assert.Equal(t, DominantRight, a.Analyze(Scores{LeftHand: 0, RightHand: 3}).Hand.Dominant)
		assert.Nil(t, got.Stroke.Ratio)
		assert.Equal(t, DominantLeft, got.Hand.Dominant)
	})

	t.Run("fully balanced", func(t *testing.T) {
		got := a.Analyze(Scores{LeftHand: 8, RightHand: 7, Forehand: 6, Backhand: 6})
		assert.True(t, got.Balanced)
	})
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty", Config{}},
		{"negative tolerance", Config{Categories: []Threshold{{Label: "x", MinTotal: 0}}, BalanceTolerance: -1}},
		{"unsorted", Config{Categories: []Threshold{{Label: "a", MinTotal: 10}, {Label: "b", MinTotal: 20}, {Label: "c", MinTotal: 0}}}},
		{"duplicate label", Config{Categories: []Threshold{{Label: "a", MinTotal: 10}, {Label: "a", MinTotal: 0}}}},
		{"no floor", Config{Categories: []Threshold{{Label: "a", MinTotal: 10}, {Label: "b", MinTotal: 5}}}},
		{"missing label", Config{Categories: []Threshold{{MinTotal: 0}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestAnalyzer_ConfigIsCopied(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAnalyzer(cfg)
	cfg.Categories[0].Label = "mutated"
	assert.Equal(t, CategoryExcellent, a.Category(40))

	got := a.Config()
	got.Categories[0].Label = "mutated"
	assert.Equal(t, CategoryExcellent, a.Category(40))
}
