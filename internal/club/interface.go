package club

import "context"

// ClubStore defines the interface for interacting with the club's data.
// Lookups and mutations addressed by id return ErrNotFound when the row is absent.
type ClubStore interface {
	CountPlayers(ctx context.Context, opts ListOptions) (int, error)
	ListPlayers(ctx context.Context, opts ListOptions) ([]Player, error)
	GetPlayer(ctx context.Context, id string) (*Player, error)
	PlayerExists(ctx context.Context, id string) (bool, error)
	InsertPlayer(ctx context.Context, p Player) error
	UpdatePlayer(ctx context.Context, p Player) error
	DeletePlayer(ctx context.Context, id string) error

	CountTests(ctx context.Context, opts ListOptions) (int, error)
	ListTests(ctx context.Context, opts ListOptions) ([]Test, error)
	GetTest(ctx context.Context, id string) (*Test, error)
	TestExists(ctx context.Context, id string) (bool, error)
	InsertTest(ctx context.Context, t Test) error
	UpdateTest(ctx context.Context, t Test) error
	DeleteTest(ctx context.Context, id string) error

	CountResults(ctx context.Context, opts ListOptions) (int, error)
	ListResults(ctx context.Context, opts ListOptions) ([]Result, error)
	GetResult(ctx context.Context, id string) (*Result, error)
	InsertResult(ctx context.Context, r Result) error
	UpdateResult(ctx context.Context, r Result) error
	DeleteResult(ctx context.Context, id string) error
}
