package club

import (
	"context"
	"sync"
)

var _ ClubStore = (*Mock)(nil)

// Mock is a mock implementation of ClubStore for testing.
// Unset funcs return zero values. It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	CountPlayersFunc func(ctx context.Context, opts ListOptions) (int, error)
	ListPlayersFunc  func(ctx context.Context, opts ListOptions) ([]Player, error)
	GetPlayerFunc    func(ctx context.Context, id string) (*Player, error)
	PlayerExistsFunc func(ctx context.Context, id string) (bool, error)
	InsertPlayerFunc func(ctx context.Context, p Player) error
	UpdatePlayerFunc func(ctx context.Context, p Player) error
	DeletePlayerFunc func(ctx context.Context, id string) error

	CountTestsFunc func(ctx context.Context, opts ListOptions) (int, error)
	ListTestsFunc  func(ctx context.Context, opts ListOptions) ([]Test, error)
	GetTestFunc    func(ctx context.Context, id string) (*Test, error)
	TestExistsFunc func(ctx context.Context, id string) (bool, error)
	InsertTestFunc func(ctx context.Context, t Test) error
	UpdateTestFunc func(ctx context.Context, t Test) error
	DeleteTestFunc func(ctx context.Context, id string) error

	CountResultsFunc func(ctx context.Context, opts ListOptions) (int, error)
	ListResultsFunc  func(ctx context.Context, opts ListOptions) ([]Result, error)
	GetResultFunc    func(ctx context.Context, id string) (*Result, error)
	InsertResultFunc func(ctx context.Context, r Result) error
	UpdateResultFunc func(ctx context.Context, r Result) error
	DeleteResultFunc func(ctx context.Context, id string) error

	// Call records
	ListPlayersCalls  []ListOptions
	ListResultsCalls  []ListOptions
	InsertPlayerCalls []Player
	InsertTestCalls   []Test
	InsertResultCalls []Result
	DeleteCalls       []string
}

// NewMock creates a new mock ClubStore.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) CountPlayers(ctx context.Context, opts ListOptions) (int, error) {
	if m.CountPlayersFunc != nil {
		return m.CountPlayersFunc(ctx, opts)
	}
	return 0, nil
}

func (m *Mock) ListPlayers(ctx context.Context, opts ListOptions) ([]Player, error) {
	m.mu.Lock()
	m.ListPlayersCalls = append(m.ListPlayersCalls, opts)
	m.mu.Unlock()
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc(ctx, opts)
	}
	return nil, nil
}

func (m *Mock) GetPlayer(ctx context.Context, id string) (*Player, error) {
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(ctx, id)
	}
	return nil, ErrNotFound
}

func (m *Mock) PlayerExists(ctx context.Context, id string) (bool, error) {
	if m.PlayerExistsFunc != nil {
		return m.PlayerExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *Mock) InsertPlayer(ctx context.Context, p Player) error {
	m.mu.Lock()
	m.InsertPlayerCalls = append(m.InsertPlayerCalls, p)
	m.mu.Unlock()
	if m.InsertPlayerFunc != nil {
		return m.InsertPlayerFunc(ctx, p)
	}
	return nil
}

func (m *Mock) UpdatePlayer(ctx context.Context, p Player) error {
	if m.UpdatePlayerFunc != nil {
		return m.UpdatePlayerFunc(ctx, p)
	}
	return nil
}

func (m *Mock) DeletePlayer(ctx context.Context, id string) error {
	m.recordDelete(id)
	if m.DeletePlayerFunc != nil {
		return m.DeletePlayerFunc(ctx, id)
	}
	return nil
}

func (m *Mock) CountTests(ctx context.Context, opts ListOptions) (int, error) {
	if m.CountTestsFunc != nil {
		return m.CountTestsFunc(ctx, opts)
	}
	return 0, nil
}

func (m *Mock) ListTests(ctx context.Context, opts ListOptions) ([]Test, error) {
	if m.ListTestsFunc != nil {
		return m.ListTestsFunc(ctx, opts)
	}
	return nil, nil
}

func (m *Mock) GetTest(ctx context.Context, id string) (*Test, error) {
	if m.GetTestFunc != nil {
		return m.GetTestFunc(ctx, id)
	}
	return nil, ErrNotFound
}

func (m *Mock) TestExists(ctx context.Context, id string) (bool, error) {
	if m.TestExistsFunc != nil {
		return m.TestExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *Mock) InsertTest(ctx context.Context, t Test) error {
	m.mu.Lock()
	m.InsertTestCalls = append(m.InsertTestCalls, t)
	m.mu.Unlock()
	if m.InsertTestFunc != nil {
		return m.InsertTestFunc(ctx, t)
	}
	return nil
}

func (m *Mock) UpdateTest(ctx context.Context, t Test) error {
	if m.UpdateTestFunc != nil {
		return m.UpdateTestFunc(ctx, t)
	}
	return nil
}

func (m *Mock) DeleteTest(ctx context.Context, id string) error {
	m.recordDelete(id)
	if m.DeleteTestFunc != nil {
		return m.DeleteTestFunc(ctx, id)
	}
	return nil
}

func (m *Mock) CountResults(ctx context.Context, opts ListOptions) (int, error) {
	if m.CountResultsFunc != nil {
		return m.CountResultsFunc(ctx, opts)
	}
	return 0, nil
}

func (m *Mock) ListResults(ctx context.Context, opts ListOptions) ([]Result, error) {
	m.mu.Lock()
	m.ListResultsCalls = append(m.ListResultsCalls, opts)
	m.mu.Unlock()
	if m.ListResultsFunc != nil {
		return m.ListResultsFunc(ctx, opts)
	}
	return nil, nil
}

func (m *Mock) GetResult(ctx context.Context, id string) (*Result, error) {
	if m.GetResultFunc != nil {
		return m.GetResultFunc(ctx, id)
	}
	return nil, ErrNotFound
}

func (m *Mock) InsertResult(ctx context.Context, r Result) error {
	m.mu.Lock()
	m.InsertResultCalls = append(m.InsertResultCalls, r)
	m.mu.Unlock()
	if m.InsertResultFunc != nil {
		return m.InsertResultFunc(ctx, r)
	}
	return nil
}

func (m *Mock) UpdateResult(ctx context.Context, r Result) error {
	if m.UpdateResultFunc != nil {
		return m.UpdateResultFunc(ctx, r)
	}
	return nil
}

func (m *Mock) DeleteResult(ctx context.Context, id string) error {
	m.recordDelete(id)
	if m.DeleteResultFunc != nil {
		return m.DeleteResultFunc(ctx, id)
	}
	return nil
}

func (m *Mock) recordDelete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)
}
