package service

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/rally-stats/internal/analytics"
	"github.com/mauv0809/rally-stats/internal/club"
	"github.com/mauv0809/rally-stats/internal/metrics"
	"github.com/mauv0809/rally-stats/internal/page"
	"github.com/mauv0809/rally-stats/internal/pubsub"
	"golang.org/x/sync/errgroup"
)

const publishTimeout = 5 * time.Second

type results struct {
	*core
}

var _ ResultService = (*results)(nil)

func scoresOf(r club.Result) analytics.Scores {
	return analytics.Scores{
		LeftHand:  r.LeftHand,
		RightHand: r.RightHand,
		Forehand:  r.Forehand,
		Backhand:  r.Backhand,
	}
}

// resultView attaches the aggregate metrics and analysis, computed fresh from the stored scores.
func (c *core) resultView(r club.Result) ResultView {
	scores := scoresOf(r)
	summary := analytics.Aggregate(scores)
	return ResultView{
		ID:                  r.ID,
		PlayerID:            r.PlayerID,
		PlayerName:          r.PlayerName,
		TestID:              r.TestID,
		TestName:            r.TestName,
		Scores:              scores,
		Summary:             summary,
		PerformanceCategory: c.analyzer.Category(summary.TotalScore),
		Analysis:            c.analyzer.Analyze(scores),
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func (c *core) resultViews(rows []club.Result) []ResultView {
	views := make([]ResultView, len(rows))
	for i, r := range rows {
		views[i] = c.resultView(r)
	}
	return views
}

func (s *results) FindAll(ctx context.Context, filter ResultFilter, req page.Request) (page.Envelope[ResultView], error) {
	plan, order, err := s.resultPlan(filter)
	if err != nil {
		return page.Envelope[ResultView]{}, err
	}
	if req, err = s.pageRequest(req); err != nil {
		return page.Envelope[ResultView]{}, err
	}
	return listing[club.Result, ResultView]{
		entity: metrics.EntityResult,
		count:  s.store.CountResults,
		list:   s.store.ListResults,
		derive: func(r club.Result) (ResultView, error) { return s.resultView(r), nil },
	}.run(ctx, s.core, plan, order, req)
}

// FindByID returns the result with its player, including age fields, and a summary of its test.
func (s *results) FindByID(ctx context.Context, id string) (*ResultDetail, error) {
	r, err := s.store.GetResult(ctx, id)
	if err != nil {
		return nil, lookup(err, "result", id)
	}

	var (
		player *club.Player
		test   *club.Test
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.store.GetPlayer(gctx, r.PlayerID)
		player = p
		return lookup(err, "player", r.PlayerID)
	})
	g.Go(func() error {
		t, err := s.store.GetTest(gctx, r.TestID)
		test = t
		return lookup(err, "test", r.TestID)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	playerView, err := s.playerView(*player)
	if err != nil {
		return nil, err
	}
	return &ResultDetail{
		ResultView: s.resultView(*r),
		Player:     playerView,
		Test: TestSummary{
			ID:            test.ID,
			Name:          test.Name,
			TestType:      test.TestType,
			PlayingTime:   test.PlayingTime,
			RecoveryTime:  test.RecoveryTime,
			DateConducted: test.DateConducted,
		},
	}, nil
}

// references reports a NotFoundError if the player or test does not exist.
func (s *results) references(ctx context.Context, playerID, testID string) error {
	ok, err := s.store.PlayerExists(ctx, playerID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("player", playerID)
	}
	ok, err = s.store.TestExists(ctx, testID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("test", testID)
	}
	return nil
}

func (s *results) Create(ctx context.Context, in CreateResult) (*ResultView, error) {
	var v validator
	if in.PlayerID == "" {
		v.add("playerId", "is required")
	}
	if in.TestID == "" {
		v.add("testId", "is required")
	}
	now := s.now()
	r := club.Result{
		ID:        s.newID(),
		PlayerID:  in.PlayerID,
		TestID:    in.TestID,
		LeftHand:  v.score("leftHand", in.LeftHand),
		RightHand: v.score("rightHand", in.RightHand),
		Forehand:  v.score("forehand", in.Forehand),
		Backhand:  v.score("backhand", in.Backhand),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := v.err(); err != nil {
		return nil, err
	}
	if err := s.references(ctx, r.PlayerID, r.TestID); err != nil {
		return nil, err
	}

	if err := s.store.InsertResult(ctx, r); err != nil {
		return nil, err
	}
	s.metrics.IncMutation(metrics.EntityResult, metrics.OpCreate)
	log.Info("Recorded result", "resultID", r.ID, "playerID", r.PlayerID, "testID", r.TestID)

	stored, err := s.store.GetResult(ctx, r.ID)
	if err != nil {
		return nil, fmt.Errorf("reload result %s: %w", r.ID, err)
	}
	view := s.resultView(*stored)
	s.publish(ctx, *stored, view)
	return &view, nil
}

// publish announces a recorded result. Failures are logged and never fail the request.
func (s *results) publish(ctx context.Context, r club.Result, view ResultView) {
	if s.publisher == nil {
		return
	}
	event := pubsub.ResultRecorded{
		ResultID:      view.ID,
		PlayerID:      view.PlayerID,
		PlayerName:    view.PlayerName,
		TestID:        view.TestID,
		TestName:      view.TestName,
		DateConducted: r.DateConducted,
		TotalScore:    view.TotalScore,
		AverageScore:  view.AverageScore,
		Category:      view.PerformanceCategory,
		Balanced:      view.Analysis.Balanced,
		RecordedAt:    view.CreatedAt.UnixMilli(),
	}
	if dob, err := analytics.ParseDate(r.DateOfBirth); err == nil {
		_, group := s.classifier.Classify(dob)
		event.AgeGroup = string(group)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.SendMessage(ctx, s.resultsTopic, event); err != nil {
		s.metrics.IncEventPublishFailed()
		log.Error("Failed to publish result event", "error", err, "resultID", r.ID, "topic", s.resultsTopic)
		return
	}
	s.metrics.IncEventPublished()
}

func (s *results) Update(ctx context.Context, id string, in UpdateResult) (*ResultView, error) {
	existing, err := s.store.GetResult(ctx, id)
	if err != nil {
		return nil, lookup(err, "result", id)
	}
	r := *existing

	var v validator
	if in.PlayerID != nil {
		if *in.PlayerID == "" {
			v.add("playerId", "must not be empty")
		}
		r.PlayerID = *in.PlayerID
	}
	if in.TestID != nil {
		if *in.TestID == "" {
			v.add("testId", "must not be empty")
		}
		r.TestID = *in.TestID
	}
	if in.LeftHand != nil {
		r.LeftHand = v.score("leftHand", in.LeftHand)
	}
	if in.RightHand != nil {
		r.RightHand = v.score("rightHand", in.RightHand)
	}
	if in.Forehand != nil {
		r.Forehand = v.score("forehand", in.Forehand)
	}
	if in.Backhand != nil {
		r.Backhand = v.score("backhand", in.Backhand)
	}
	if err := v.err(); err != nil {
		return nil, err
	}
	if r.PlayerID != existing.PlayerID || r.TestID != existing.TestID {
		if err := s.references(ctx, r.PlayerID, r.TestID); err != nil {
			return nil, err
		}
	}

	r.UpdatedAt = s.now()
	if err := s.store.UpdateResult(ctx, r); err != nil {
		return nil, lookup(err, "result", id)
	}
	s.metrics.IncMutation(metrics.EntityResult, metrics.OpUpdate)

	stored, err := s.store.GetResult(ctx, id)
	if err != nil {
		return nil, lookup(err, "result", id)
	}
	view := s.resultView(*stored)
	return &view, nil
}

func (s *results) Delete(ctx context.Context, id string) error {
	if _, err := s.store.GetResult(ctx, id); err != nil {
		return lookup(err, "result", id)
	}
	if err := s.store.DeleteResult(ctx, id); err != nil {
		return lookup(err, "result", id)
	}
	s.metrics.IncMutation(metrics.EntityResult, metrics.OpDelete)
	log.Info("Deleted result", "resultID", id)
	return nil
}
