package clips

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/killallgit/clipper-api/internal/database"
	"github.com/killallgit/clipper-api/internal/models"
	"github.com/killallgit/clipper-api/internal/services/artifacts"
	"github.com/killallgit/clipper-api/internal/services/auth"
	"github.com/killallgit/clipper-api/internal/services/features"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	owner = auth.Identity{ID: "user-owner", Role: auth.RoleUser}
	other = auth.Identity{ID: "user-other", Role: auth.RoleUser}
	admin = auth.Identity{ID: "user-admin", Role: auth.RoleAdmin}
)

const sourceRef = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Resolve(ctx context.Context, ref string) (models.SourceMetadata, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(models.SourceMetadata), args.Error(1)
}

type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Write(ctx context.Context, clipID string, data []byte) (string, error) {
	args := m.Called(ctx, clipID, data)
	return args.String(0), args.Error(1)
}

func (m *MockArtifactStore) Read(ctx context.Context, locator string) ([]byte, error) {
	args := m.Called(ctx, locator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockArtifactStore) Delete(ctx context.Context, locator string) error {
	args := m.Called(ctx, locator)
	return args.Error(0)
}

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "clips_test.db"), database.Options{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestArtifactStore(t *testing.T) *artifacts.LocalStore {
	t.Helper()
	store, err := artifacts.NewLocalStore(filepath.Join(t.TempDir(), "artifacts"))
	require.NoError(t, err)
	return store
}

type testEnv struct {
	repo    Repository
	fetcher *MockFetcher
	store   artifacts.Store
	service *Service
}

func newTestEnv(t *testing.T, store artifacts.Store, opts ...ServiceOption) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	repo := NewRepository(db.DB)
	fetcher := new(MockFetcher)
	if store == nil {
		store = newTestArtifactStore(t)
	}
	executor := features.NewExecutor(features.NewStaticRegistry())

	return &testEnv{
		repo:    repo,
		fetcher: fetcher,
		store:   store,
		service: NewService(repo, fetcher, executor, store, opts...),
	}
}

func ptr[T any](v T) *T {
	return &v
}
