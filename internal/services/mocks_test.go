package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/hyppolabs/hyppo-backend/internal/logger"
	"github.com/hyppolabs/hyppo-backend/internal/repos"
	"github.com/hyppolabs/hyppo-backend/internal/types"
)

// The service transactions only need Begin/Commit/Rollback to succeed; every
// actual read and write goes through the mocked repos. stubConnPool gives
// gorm a connection pool that satisfies exactly that.
type stubConnPool struct{}

func (stubConnPool) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, nil
}

func (stubConnPool) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (stubConnPool) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (stubConnPool) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

type stubTxPool struct{ stubConnPool }

func (stubTxPool) Commit() error   { return nil }
func (stubTxPool) Rollback() error { return nil }

type stubBeginner struct{ stubConnPool }

func (stubBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (gorm.ConnPool, error) {
	return &stubTxPool{}, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{
		ConnPool:               stubBeginner{},
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

type mockPostRepo struct {
	CreateFn         func(ctx context.Context, tx *gorm.DB, posts []*types.Post) ([]*types.Post, error)
	GetByIDFn        func(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (*types.Post, error)
	ListPageFn       func(ctx context.Context, tx *gorm.DB, sort repos.PostSort, offset, limit int) ([]*types.Post, error)
	ListByUserIDFn   func(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Post, error)
	SetUpvoteCountFn func(ctx context.Context, tx *gorm.DB, postID uuid.UUID, count int) error
	DeleteFn         func(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error
}

func (m *mockPostRepo) Create(ctx context.Context, tx *gorm.DB, posts []*types.Post) ([]*types.Post, error) {
	return m.CreateFn(ctx, tx, posts)
}

func (m *mockPostRepo) GetByID(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (*types.Post, error) {
	return m.GetByIDFn(ctx, tx, postID)
}

func (m *mockPostRepo) ListPage(ctx context.Context, tx *gorm.DB, sort repos.PostSort, offset, limit int) ([]*types.Post, error) {
	return m.ListPageFn(ctx, tx, sort, offset, limit)
}

func (m *mockPostRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Post, error) {
	return m.ListByUserIDFn(ctx, tx, userID, limit)
}

func (m *mockPostRepo) SetUpvoteCount(ctx context.Context, tx *gorm.DB, postID uuid.UUID, count int) error {
	return m.SetUpvoteCountFn(ctx, tx, postID, count)
}

func (m *mockPostRepo) Delete(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error {
	return m.DeleteFn(ctx, tx, postID)
}

// fakeUpvoteStore is a stateful in-memory stand-in for the upvote junction
// table, so toggle round-trips exercise real membership semantics.
type fakeUpvoteStore struct {
	mu    sync.Mutex
	votes map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeUpvoteStore() *fakeUpvoteStore {
	return &fakeUpvoteStore{votes: map[uuid.UUID]map[uuid.UUID]bool{}}
}

func (f *fakeUpvoteStore) Exists(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.votes[postID][userID], nil
}

func (f *fakeUpvoteStore) Create(ctx context.Context, tx *gorm.DB, vote *types.PostUpvote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.votes[vote.PostID] == nil {
		f.votes[vote.PostID] = map[uuid.UUID]bool{}
	}
	f.votes[vote.PostID][vote.UserID] = true
	return nil
}

func (f *fakeUpvoteStore) Delete(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.votes[postID], userID)
	return nil
}

func (f *fakeUpvoteStore) CountForPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.votes[postID])), nil
}

type mockQuestionRepo struct {
	CreateFn   func(ctx context.Context, tx *gorm.DB, question *types.DebateQuestion) (*types.DebateQuestion, error)
	GetByIDFn  func(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (*types.DebateQuestion, error)
	ListPageFn func(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.DebateQuestion, error)
}

func (m *mockQuestionRepo) Create(ctx context.Context, tx *gorm.DB, question *types.DebateQuestion) (*types.DebateQuestion, error) {
	return m.CreateFn(ctx, tx, question)
}

func (m *mockQuestionRepo) GetByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (*types.DebateQuestion, error) {
	return m.GetByIDFn(ctx, tx, questionID)
}

func (m *mockQuestionRepo) ListPage(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.DebateQuestion, error) {
	return m.ListPageFn(ctx, tx, offset, limit)
}

type mockArgumentRepo struct {
	CreateFn          func(ctx context.Context, tx *gorm.DB, argument *types.DebateArgument) (*types.DebateArgument, error)
	GetByIDFn         func(ctx context.Context, tx *gorm.DB, argumentID uuid.UUID) (*types.DebateArgument, error)
	ListForQuestionFn func(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) ([]*types.DebateArgument, error)
	CountByStanceFn   func(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (types.StanceCounts, error)
}

func (m *mockArgumentRepo) Create(ctx context.Context, tx *gorm.DB, argument *types.DebateArgument) (*types.DebateArgument, error) {
	return m.CreateFn(ctx, tx, argument)
}

func (m *mockArgumentRepo) GetByID(ctx context.Context, tx *gorm.DB, argumentID uuid.UUID) (*types.DebateArgument, error) {
	return m.GetByIDFn(ctx, tx, argumentID)
}

func (m *mockArgumentRepo) ListForQuestion(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) ([]*types.DebateArgument, error) {
	return m.ListForQuestionFn(ctx, tx, questionID)
}

func (m *mockArgumentRepo) CountByStance(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (types.StanceCounts, error) {
	return m.CountByStanceFn(ctx, tx, questionID)
}

type mockCounterRepo struct {
	CreateFn           func(ctx context.Context, tx *gorm.DB, counter *types.DebateCounterargument) (*types.DebateCounterargument, error)
	ListForArgumentsFn func(ctx context.Context, tx *gorm.DB, argumentIDs []uuid.UUID) ([]*types.DebateCounterargument, error)
}

func (m *mockCounterRepo) Create(ctx context.Context, tx *gorm.DB, counter *types.DebateCounterargument) (*types.DebateCounterargument, error) {
	return m.CreateFn(ctx, tx, counter)
}

func (m *mockCounterRepo) ListForArguments(ctx context.Context, tx *gorm.DB, argumentIDs []uuid.UUID) ([]*types.DebateCounterargument, error) {
	return m.ListForArgumentsFn(ctx, tx, argumentIDs)
}

type mockWeeklyPostRepo struct {
	CreateFn        func(ctx context.Context, tx *gorm.DB, post *types.WeeklyPost) (*types.WeeklyPost, error)
	GetByIDFn       func(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (*types.WeeklyPost, error)
	ListFn          func(ctx context.Context, tx *gorm.DB) ([]*types.WeeklyPost, error)
	ExistsForWeekFn func(ctx context.Context, tx *gorm.DB, year, weekNumber int) (bool, error)
}

func (m *mockWeeklyPostRepo) Create(ctx context.Context, tx *gorm.DB, post *types.WeeklyPost) (*types.WeeklyPost, error) {
	return m.CreateFn(ctx, tx, post)
}

func (m *mockWeeklyPostRepo) GetByID(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (*types.WeeklyPost, error) {
	return m.GetByIDFn(ctx, tx, postID)
}

func (m *mockWeeklyPostRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.WeeklyPost, error) {
	return m.ListFn(ctx, tx)
}

func (m *mockWeeklyPostRepo) ExistsForWeek(ctx context.Context, tx *gorm.DB, year, weekNumber int) (bool, error) {
	return m.ExistsForWeekFn(ctx, tx, year, weekNumber)
}

// fakeCountCache records cache traffic for the stance-count tests.
type fakeCountCache struct {
	mu     sync.Mutex
	counts map[string]types.StanceCounts
	hits   int
	misses int
}

func newFakeCountCache() *fakeCountCache {
	return &fakeCountCache{counts: map[string]types.StanceCounts{}}
}

func (f *fakeCountCache) GetStanceCounts(ctx context.Context, questionID string) (types.StanceCounts, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts, ok := f.counts[questionID]
	if ok {
		f.hits++
	} else {
		f.misses++
	}
	return counts, ok
}

func (f *fakeCountCache) SetStanceCounts(ctx context.Context, questionID string, counts types.StanceCounts) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[questionID] = counts
}

func (f *fakeCountCache) Invalidate(ctx context.Context, questionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.counts, questionID)
}

func (f *fakeCountCache) Close() error { return nil }
