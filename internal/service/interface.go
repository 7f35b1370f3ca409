package service

import (
	"context"

	"github.com/mauv0809/rally-stats/internal/page"
)

// PlayerService manages players. Lookups and mutations of a missing player return a NotFoundError.
type PlayerService interface {
	FindAll(ctx context.Context, filter PlayerFilter, req page.Request) (page.Envelope[PlayerView], error)
	FindByID(ctx context.Context, id string) (*PlayerDetail, error)
	Create(ctx context.Context, in CreatePlayer) (*PlayerView, error)
	Update(ctx context.Context, id string, in UpdatePlayer) (*PlayerView, error)
	Delete(ctx context.Context, id string) error
}

// TestService manages tests.
type TestService interface {
	FindAll(ctx context.Context, filter TestFilter, req page.Request) (page.Envelope[TestView], error)
	FindByID(ctx context.Context, id string) (*TestDetail, error)
	Create(ctx context.Context, in CreateTest) (*TestView, error)
	Update(ctx context.Context, id string, in UpdateTest) (*TestView, error)
	Delete(ctx context.Context, id string) error
}

// ResultService manages test results. Creating or re-pointing a result at a missing player or
// test returns a NotFoundError without writing anything.
type ResultService interface {
	FindAll(ctx context.Context, filter ResultFilter, req page.Request) (page.Envelope[ResultView], error)
	FindByID(ctx context.Context, id string) (*ResultDetail, error)
	Create(ctx context.Context, in CreateResult) (*ResultView, error)
	Update(ctx context.Context, id string, in UpdateResult) (*ResultView, error)
	Delete(ctx context.Context, id string) error
}
