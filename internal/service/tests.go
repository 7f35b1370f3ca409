package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/rally-stats/internal/club"
	"github.com/mauv0809/rally-stats/internal/metrics"
	"github.com/mauv0809/rally-stats/internal/page"
	"github.com/mauv0809/rally-stats/internal/query"
	"golang.org/x/sync/errgroup"
)

type tests struct {
	*core
}

var _ TestService = (*tests)(nil)

func testView(t club.Test) TestView {
	return TestView{
		ID:            t.ID,
		Name:          t.Name,
		TestType:      t.TestType,
		PlayingTime:   t.PlayingTime,
		RecoveryTime:  t.RecoveryTime,
		DateConducted: t.DateConducted,
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// durations resolves a test's playing and recovery time. A preset fixes both and explicit values
// must agree with it; without a preset both must be given.
func (v *validator) durations(testType club.TestType, playing, recovery *int) (int, int) {
	if testType != "" {
		presetPlaying, presetRecovery, ok := testType.Durations()
		if !ok {
			return 0, 0
		}
		if playing != nil && *playing != presetPlaying {
			v.add("playingTime", "conflicts with testType %s (%ds)", testType, presetPlaying)
		}
		if recovery != nil && *recovery != presetRecovery {
			v.add("recoveryTime", "conflicts with testType %s (%ds)", testType, presetRecovery)
		}
		return presetPlaying, presetRecovery
	}

	var p, r int
	switch {
	case playing == nil:
		v.add("playingTime", "is required when testType is not set")
	case *playing <= 0:
		v.add("playingTime", "must be positive")
	default:
		p = *playing
	}
	switch {
	case recovery == nil:
		v.add("recoveryTime", "is required when testType is not set")
	case *recovery < 0:
		v.add("recoveryTime", "must not be negative")
	default:
		r = *recovery
	}
	return p, r
}

func (v *validator) description(value *string) *string {
	if value == nil {
		return nil
	}
	d := strings.TrimSpace(*value)
	if d == "" {
		return nil
	}
	if utf8.RuneCountInString(d) > maxDescriptionLength {
		v.add("description", "must be at most %d characters", maxDescriptionLength)
	}
	return &d
}

func (s *tests) FindAll(ctx context.Context, filter TestFilter, req page.Request) (page.Envelope[TestView], error) {
	plan, order, err := testPlan(filter)
	if err != nil {
		return page.Envelope[TestView]{}, err
	}
	if req, err = s.pageRequest(req); err != nil {
		return page.Envelope[TestView]{}, err
	}
	return listing[club.Test, TestView]{
		entity: metrics.EntityTest,
		count:  s.store.CountTests,
		list:   s.store.ListTests,
		derive: func(t club.Test) (TestView, error) { return testView(t), nil },
	}.run(ctx, s.core, plan, order, req)
}

// FindByID returns the test with its results count and results, most recent first.
func (s *tests) FindByID(ctx context.Context, id string) (*TestDetail, error) {
	t, err := s.store.GetTest(ctx, id)
	if err != nil {
		return nil, lookup(err, "test", id)
	}
	view := testView(*t)

	opts := club.ListOptions{
		Where: query.Where{query.Equal{Column: club.ResultColumnTestID, Value: id}},
		Order: query.Order{Column: club.ResultColumnCreatedAt, Direction: query.Desc, Tiebreak: club.ResultColumnID},
	}
	var (
		count int
		rows  []club.Result
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.store.CountResults(gctx, opts)
		count = n
		return err
	})
	g.Go(func() error {
		r, err := s.store.ListResults(gctx, opts)
		rows = r
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load results for test %s: %w", id, err)
	}
	return &TestDetail{TestView: view, ResultsCount: count, Results: s.resultViews(rows)}, nil
}

func (s *tests) Create(ctx context.Context, in CreateTest) (*TestView, error) {
	now := s.now()
	t := club.Test{
		ID:            s.newID(),
		DateConducted: in.DateConducted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	var v validator
	t.Name = v.name("name", in.Name)
	if in.TestType != "" {
		t.TestType = v.testType("testType", in.TestType)
	}
	t.PlayingTime, t.RecoveryTime = v.durations(t.TestType, in.PlayingTime, in.RecoveryTime)
	v.date("dateConducted", in.DateConducted)
	t.Description = v.description(in.Description)
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.store.InsertTest(ctx, t); err != nil {
		return nil, err
	}
	s.metrics.IncMutation(metrics.EntityTest, metrics.OpCreate)
	log.Info("Created test", "testID", t.ID, "testType", t.TestType)

	view := testView(t)
	return &view, nil
}

func (s *tests) Update(ctx context.Context, id string, in UpdateTest) (*TestView, error) {
	existing, err := s.store.GetTest(ctx, id)
	if err != nil {
		return nil, lookup(err, "test", id)
	}
	t := *existing

	var v validator
	if in.Name != nil {
		t.Name = v.name("name", *in.Name)
	}

	// Durations not given in the patch keep their stored value unless a new preset replaces them.
	playing, recovery := in.PlayingTime, in.RecoveryTime
	if in.TestType != nil {
		t.TestType = ""
		if *in.TestType != "" {
			t.TestType = v.testType("testType", *in.TestType)
		}
	}
	presetChanged := in.TestType != nil && *in.TestType != ""
	if playing == nil && !presetChanged {
		playing = &existing.PlayingTime
	}
	if recovery == nil && !presetChanged {
		recovery = &existing.RecoveryTime
	}
	t.PlayingTime, t.RecoveryTime = v.durations(t.TestType, playing, recovery)

	if in.DateConducted != nil {
		t.DateConducted = *in.DateConducted
		v.date("dateConducted", t.DateConducted)
	}
	if in.Description != nil {
		t.Description = v.description(in.Description)
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	t.UpdatedAt = s.now()
	if err := s.store.UpdateTest(ctx, t); err != nil {
		return nil, lookup(err, "test", id)
	}
	s.metrics.IncMutation(metrics.EntityTest, metrics.OpUpdate)

	view := testView(t)
	return &view, nil
}

// Delete removes the test and, through the foreign key, all of its results.
func (s *tests) Delete(ctx context.Context, id string) error {
	ok, err := s.store.TestExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("test", id)
	}
	if err := s.store.DeleteTest(ctx, id); err != nil {
		return lookup(err, "test", id)
	}
	s.metrics.IncMutation(metrics.EntityTest, metrics.OpDelete)
	log.Info("Deleted test", "testID", id)
	return nil
}
