package clips_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/killallgit/clipper-api/internal/database"
	"github.com/killallgit/clipper-api/internal/models"
	"github.com/killallgit/clipper-api/internal/services/artifacts"
	"github.com/killallgit/clipper-api/internal/services/auth"
	"github.com/killallgit/clipper-api/internal/services/cleanup"
	"github.com/killallgit/clipper-api/internal/services/clips"
	"github.com/killallgit/clipper-api/internal/services/features"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourceRef = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

var owner = auth.Identity{ID: "integration-owner", Role: auth.RoleUser}

type fixedFetcher struct {
	duration float64
}

func (f fixedFetcher) Resolve(ctx context.Context, ref string) (models.SourceMetadata, error) {
	return models.SourceMetadata{Title: "Integration Source", Duration: f.duration}, nil
}

// ClipTestSuite holds all dependencies for clip integration tests
type ClipTestSuite struct {
	t           *testing.T
	dbPath      string
	db          *database.DB
	repo        clips.Repository
	store       *artifacts.LocalStore
	clipService *clips.Service
}

// setupClipTestSuite initializes an isolated environment backed by a sqlite
// file and a real artifact directory
func setupClipTestSuite(t *testing.T) *ClipTestSuite {
	tempDir := t.TempDir()

	store, err := artifacts.NewLocalStore(filepath.Join(tempDir, "artifacts"))
	require.NoError(t, err, "Failed to create artifact store")

	suite := &ClipTestSuite{
		t:      t,
		dbPath: filepath.Join(tempDir, "clipper.db"),
		store:  store,
	}
	suite.open()

	t.Cleanup(func() { _ = suite.db.Close() })
	return suite
}

func (suite *ClipTestSuite) open() {
	db, err := database.Open(suite.dbPath, database.Options{EnableWAL: true})
	require.NoError(suite.t, err, "Failed to open test database")
	require.NoError(suite.t, db.AutoMigrate(models.All()...), "Failed to migrate test database")

	suite.db = db
	suite.repo = clips.NewRepository(db.DB)
	suite.clipService = clips.NewService(
		suite.repo,
		fixedFetcher{duration: 212},
		features.NewExecutor(features.NewStaticRegistry(), features.WithMaxConcurrency(2)),
		suite.store,
	)
}

// reopen simulates a process restart against the same database file
func (suite *ClipTestSuite) reopen() {
	require.NoError(suite.t, suite.db.Close())
	suite.open()
}

func TestEndToEndClipProcessing(t *testing.T) {
	suite := setupClipTestSuite(t)
	end := 45.0

	clip, err := suite.clipService.CreateClip(context.Background(), clips.CreateClipParams{
		SourceRef: sourceRef,
		StartTime: 15,
		EndTime:   &end,
		Name:      "Opening Hook",
		Features:  []string{"face_tracking", "auto_captions", "face_tracking"},
	}, owner)
	require.NoError(t, err)
	require.Equal(t, models.ClipStateCompleted, clip.State)
	require.NotNil(t, clip.DownloadLocator)

	data, err := os.ReadFile(suite.store.Path(*clip.DownloadLocator))
	require.NoError(t, err, "Artifact should be on disk")
	assert.Contains(t, string(data), clip.ID)
	assert.Equal(t, int64(len(data)), *clip.SizeBytes)

	suite.reopen()

	stored, err := suite.repo.FindByID(context.Background(), clip.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClipStateCompleted, stored.State)
	assert.Equal(t, "Opening Hook", stored.Name)
	assert.Equal(t, "Integration Source", stored.Metadata.Title)
	require.Len(t, stored.Results, 3)
	for i, id := range []string{"face_tracking", "auto_captions", "face_tracking"} {
		assert.Equal(t, id, stored.Results[i].FeatureID)
	}
	assert.Equal(t, 0.95, stored.Results[1].Confidence)
}

func TestStaleClipSweptAfterRestart(t *testing.T) {
	suite := setupClipTestSuite(t)
	ctx := context.Background()

	// A clip left behind by a process that died mid request
	orphan := &models.Clip{OwnerID: owner.ID, SourceRef: sourceRef, Metadata: models.SourceMetadata{Duration: 212}}
	require.NoError(t, suite.repo.Insert(ctx, orphan))
	require.Equal(t, models.ClipStateCreated, orphan.State)

	suite.reopen()
	time.Sleep(20 * time.Millisecond)

	sweeper := cleanup.NewService(suite.repo, suite.clipService.Lifecycle(), 10*time.Millisecond, time.Hour)
	n, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stored, err := suite.repo.FindByID(ctx, orphan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClipStateFailed, stored.State)
	assert.Equal(t, cleanup.FailureReason, stored.FailureReason)
	assert.Nil(t, stored.DownloadLocator)

	// Terminal clips are never picked up again
	time.Sleep(20 * time.Millisecond)
	n, err = sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestConcurrentClipCreation(t *testing.T) {
	suite := setupClipTestSuite(t)
	const workers = 8

	var wg sync.WaitGroup
	ids := make([]string, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			clip, err := suite.clipService.CreateClip(context.Background(), clips.CreateClipParams{
				SourceRef: sourceRef,
				StartTime: float64(i),
				Name:      fmt.Sprintf("clip %d", i),
				Features:  []string{"translation", "b_roll"},
			}, owner)
			errs[i] = err
			if clip != nil {
				ids[i] = clip.ID
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, workers)
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.False(t, seen[ids[i]], "clip ids must be unique")
		seen[ids[i]] = true
	}

	list, err := suite.clipService.ListClips(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, list, workers)
	for _, clip := range list {
		assert.Equal(t, models.ClipStateCompleted, clip.State)
		assert.Len(t, clip.Results, 2)
	}
}
