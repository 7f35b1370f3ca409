package service

import (
	"github.com/mauv0809/rally-stats/internal/analytics"
	"github.com/mauv0809/rally-stats/internal/club"
	"github.com/mauv0809/rally-stats/internal/query"
)

// sortField maps a public sort key onto a column. Inverted columns sort opposite to the key,
// so "age asc" orders by date of birth descending.
type sortField struct {
	column string
	invert bool
}

type sortSpec struct {
	fields   map[string]sortField
	def      string
	defOrder query.Direction
	tiebreak string
}

var (
	playerSort = sortSpec{
		fields: map[string]sortField{
			"name":        {column: club.PlayerColumnName},
			"dateOfBirth": {column: club.PlayerColumnDateOfBirth},
			"age":         {column: club.PlayerColumnDateOfBirth, invert: true},
			"createdAt":   {column: club.PlayerColumnCreatedAt},
		},
		def:      "name",
		defOrder: query.Asc,
		tiebreak: club.PlayerColumnID,
	}
	testSort = sortSpec{
		fields: map[string]sortField{
			"name":          {column: club.TestColumnName},
			"dateConducted": {column: club.TestColumnDateConducted},
			"playingTime":   {column: club.TestColumnPlayingTime},
			"createdAt":     {column: club.TestColumnCreatedAt},
		},
		def:      "dateConducted",
		defOrder: query.Desc,
		tiebreak: club.TestColumnID,
	}
	resultSort = sortSpec{
		fields: map[string]sortField{
			"createdAt":     {column: club.ResultColumnCreatedAt},
			"playerName":    {column: club.ResultColumnPlayerName},
			"testName":      {column: club.ResultColumnTestName},
			"dateConducted": {column: club.ResultColumnDateConducted},
			"totalScore":    {column: club.ResultColumnTotalScore},
		},
		def:      "createdAt",
		defOrder: query.Desc,
		tiebreak: club.ResultColumnID,
	}
)

// order resolves sort and direction against the whitelist.
func (s sortSpec) order(v *validator, sort, direction string) query.Order {
	key := sort
	if key == "" {
		key = s.def
	}
	field, ok := s.fields[key]
	if !ok {
		v.add("sort", "unknown sort field %q", sort)
		return query.Order{}
	}

	dir := s.defOrder
	switch direction {
	case "":
		if sort != "" {
			dir = query.Asc
		}
	case "asc":
		dir = query.Asc
	case "desc":
		dir = query.Desc
	default:
		v.add("order", "must be asc or desc")
	}
	if field.invert {
		dir = flip(dir)
	}
	return query.Order{Column: field.column, Direction: dir, Tiebreak: s.tiebreak}
}

func flip(d query.Direction) query.Direction {
	if d == query.Desc {
		return query.Asc
	}
	return query.Desc
}

// playerPlan translates a player filter into storage predicates and age group post-filtering.
// Age bounds become a birth date window relative to the classifier's clock.
func (c *core) playerPlan(f PlayerFilter) (query.Plan[PlayerView], query.Order, error) {
	var v validator
	var plan query.Plan[PlayerView]

	if f.Name != "" {
		plan.Store(query.Contains{Column: club.PlayerColumnName, Text: f.Name})
	}
	if f.Gender != "" {
		plan.Store(query.Equal{Column: club.PlayerColumnGender, Value: string(v.gender("gender", f.Gender))})
	}
	if f.PreferredHand != "" {
		plan.Store(query.Equal{Column: club.PlayerColumnHand, Value: string(v.hand("preferredHand", f.PreferredHand))})
	}

	v.bounds("minAge", "maxAge", f.MinAge, f.MaxAge)
	if f.MinAge != nil && *f.MinAge > analytics.MaxAge {
		v.add("minAge", "must be at most %d", analytics.MaxAge)
	}
	if f.MaxAge != nil && *f.MaxAge > analytics.MaxAge {
		v.add("maxAge", "must be at most %d", analytics.MaxAge)
	}
	if f.MinAge != nil || f.MaxAge != nil {
		minAge, maxAge := -1, -1
		if f.MinAge != nil {
			minAge = *f.MinAge
		}
		if f.MaxAge != nil {
			maxAge = *f.MaxAge
		}
		earliest, latest := analytics.BirthWindow(c.classifier.Now(), minAge, maxAge)
		r := query.Range{Column: club.PlayerColumnDateOfBirth}
		if !earliest.IsZero() {
			r.Min = earliest.Format(analytics.DateLayout)
		}
		if !latest.IsZero() {
			r.Max = latest.Format(analytics.DateLayout)
		}
		plan.Store(r)
	}

	if f.AgeGroup != "" {
		group, err := analytics.ParseAgeGroup(f.AgeGroup)
		if err != nil {
			v.add("ageGroup", "unknown age group %q", f.AgeGroup)
		}
		plan.Derived(func(p PlayerView) bool { return p.AgeGroup == group })
	}

	order := playerSort.order(&v, f.Sort, f.Order)
	return plan, order, v.err()
}

// testPlan translates a test filter; every predicate is pushed to storage.
func testPlan(f TestFilter) (query.Plan[TestView], query.Order, error) {
	var v validator
	var plan query.Plan[TestView]

	if f.Name != "" {
		plan.Store(query.Contains{Column: club.TestColumnName, Text: f.Name})
	}
	if f.TestType != "" {
		plan.Store(query.Equal{Column: club.TestColumnType, Value: string(v.testType("testType", f.TestType))})
	}

	var from, to *string
	if f.From != "" {
		if d, ok := v.date("from", f.From); ok {
			s := d.Format(analytics.DateLayout)
			from = &s
		}
	}
	if f.To != "" {
		if d, ok := v.date("to", f.To); ok {
			s := d.Format(analytics.DateLayout)
			to = &s
		}
	}
	if from != nil && to != nil && *from > *to {
		v.add("from", "must not be after to")
	}
	plan.Store(query.RangeOf(club.TestColumnDateConducted, from, to))

	v.bounds("minPlayingTime", "maxPlayingTime", f.MinPlayingTime, f.MaxPlayingTime)
	plan.Store(query.RangeOf(club.TestColumnPlayingTime, f.MinPlayingTime, f.MaxPlayingTime))

	order := testSort.order(&v, f.Sort, f.Order)
	return plan, order, v.err()
}

// resultPlan translates a result filter. Score bounds and category apply to derived fields.
func (c *core) resultPlan(f ResultFilter) (query.Plan[ResultView], query.Order, error) {
	var v validator
	var plan query.Plan[ResultView]

	if f.PlayerID != "" {
		plan.Store(query.Equal{Column: club.ResultColumnPlayerID, Value: f.PlayerID})
	}
	if f.TestID != "" {
		plan.Store(query.Equal{Column: club.ResultColumnTestID, Value: f.TestID})
	}
	if f.PlayerName != "" {
		plan.Store(query.Contains{Column: club.ResultColumnPlayerName, Text: f.PlayerName})
	}

	v.bounds("minScore", "maxScore", f.MinScore, f.MaxScore)
	if f.MinScore != nil || f.MaxScore != nil {
		minScore, maxScore := f.MinScore, f.MaxScore
		plan.Derived(func(r ResultView) bool { return query.Between(r.TotalScore, minScore, maxScore) })
	}

	if f.Category != "" {
		if !c.analyzer.IsCategory(f.Category) {
			v.add("category", "unknown performance category %q", f.Category)
		}
		category := f.Category
		plan.Derived(func(r ResultView) bool { return r.PerformanceCategory == category })
	}

	order := resultSort.order(&v, f.Sort, f.Order)
	return plan, order, v.err()
}
