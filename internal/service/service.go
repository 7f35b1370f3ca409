// Package service validates requests, runs filtered and paginated reads against the club store and
// attaches the derived age, score and performance fields to every row it returns.
package service

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/rally-stats/internal/analytics"
	"github.com/mauv0809/rally-stats/internal/club"
	"github.com/mauv0809/rally-stats/internal/config"
	"github.com/mauv0809/rally-stats/internal/metrics"
	"github.com/mauv0809/rally-stats/internal/page"
	"github.com/mauv0809/rally-stats/internal/pubsub"
	"github.com/mauv0809/rally-stats/internal/query"
)

// Deps are the collaborators shared by every service. Publisher is optional.
type Deps struct {
	Store        club.ClubStore
	Analyzer     *analytics.Analyzer
	Classifier   *analytics.Classifier
	Paging       config.PagingConfig
	Metrics      metrics.Metrics
	Publisher    pubsub.PubSubClient
	ResultsTopic string
	// NewID defaults to random UUIDs.
	NewID func() string
}

// Services groups the entity services built from one set of Deps.
type Services struct {
	Players PlayerService
	Tests   TestService
	Results ResultService
}

type core struct {
	store        club.ClubStore
	analyzer     *analytics.Analyzer
	classifier   *analytics.Classifier
	paging       config.PagingConfig
	metrics      metrics.Metrics
	publisher    pubsub.PubSubClient
	resultsTopic string
	newID        func() string
}

// New builds the player, test and result services.
func New(deps Deps) *Services {
	c := &core{
		store:        deps.Store,
		analyzer:     deps.Analyzer,
		classifier:   deps.Classifier,
		paging:       deps.Paging,
		metrics:      deps.Metrics,
		publisher:    deps.Publisher,
		resultsTopic: deps.ResultsTopic,
		newID:        deps.NewID,
	}
	if c.analyzer == nil {
		c.analyzer = analytics.NewAnalyzer(analytics.DefaultConfig())
	}
	if c.classifier == nil {
		c.classifier = analytics.NewClassifier(nil)
	}
	if c.paging.DefaultLimit == 0 {
		c.paging.DefaultLimit = page.DefaultLimit
	}
	if c.paging.MaxLimit == 0 {
		c.paging.MaxLimit = page.MaxLimit
	}
	if c.metrics == nil {
		c.metrics = metrics.NewMock()
	}
	if c.resultsTopic == "" {
		c.resultsTopic = string(pubsub.EventResultRecorded)
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	return &Services{
		Players: &players{c},
		Tests:   &tests{c},
		Results: &results{c},
	}
}

// now is the timestamp written to created_at and updated_at, truncated to storage precision.
func (c *core) now() time.Time {
	return c.classifier.Now().UTC().Truncate(time.Millisecond)
}

// pageRequest applies the configured limits and validates the result.
func (c *core) pageRequest(req page.Request) (page.Request, error) {
	req = req.Normalize(c.paging.DefaultLimit, c.paging.MaxLimit)
	var v validator
	v.page(req)
	return req, v.err()
}

// listing is one entity's store access and derivation step.
type listing[R, V any] struct {
	entity string
	count  func(ctx context.Context, opts club.ListOptions) (int, error)
	list   func(ctx context.Context, opts club.ListOptions) ([]R, error)
	derive func(R) (V, error)
}

// run executes plan. Without post predicates the page is cut by the store and counted concurrently.
// With post predicates the whole storage-filtered set is derived and filtered first, so totals stay exact.
func (l listing[R, V]) run(ctx context.Context, c *core, plan query.Plan[V], order query.Order, req page.Request) (page.Envelope[V], error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveListDuration(l.entity, time.Since(start).Seconds())
	}()

	opts := club.ListOptions{Where: plan.Where, Order: order}

	if !plan.HasPost() {
		return page.Fetch(ctx, req,
			func(ctx context.Context) (int, error) {
				return l.count(ctx, opts)
			},
			func(ctx context.Context, offset, limit int) ([]V, error) {
				windowed := opts
				windowed.Window = &query.Window{Offset: offset, Limit: limit}
				rows, err := l.list(ctx, windowed)
				if err != nil {
					return nil, err
				}
				return deriveAll(rows, l.derive)
			})
	}

	rows, err := l.list(ctx, opts)
	if err != nil {
		return page.Envelope[V]{}, err
	}
	views, err := deriveAll(rows, l.derive)
	if err != nil {
		return page.Envelope[V]{}, err
	}
	matched := plan.Filter(views)
	c.metrics.AddPostFilterDropped(l.entity, len(views)-len(matched))
	log.FromContext(ctx).Debug("Applied derived filters", "entity", l.entity, "candidates", len(views), "matched", len(matched))
	return page.Slice(matched, req), nil
}

func deriveAll[R, V any](rows []R, derive func(R) (V, error)) ([]V, error) {
	views := make([]V, 0, len(rows))
	for _, row := range rows {
		view, err := derive(row)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
