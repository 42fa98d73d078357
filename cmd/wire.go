package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/killallgit/clipper-api/api/types"
	"github.com/killallgit/clipper-api/internal/database"
	"github.com/killallgit/clipper-api/internal/services/artifacts"
	"github.com/killallgit/clipper-api/internal/services/auth"
	"github.com/killallgit/clipper-api/internal/services/cleanup"
	"github.com/killallgit/clipper-api/internal/services/clips"
	"github.com/killallgit/clipper-api/internal/services/features"
	"github.com/killallgit/clipper-api/internal/services/metadata"
	"github.com/killallgit/clipper-api/internal/services/videos"
	"github.com/killallgit/clipper-api/pkg/config"
	"github.com/killallgit/clipper-api/pkg/logging"
)

// application is the wired set of services behind the HTTP server
type application struct {
	deps    *types.Dependencies
	sweeper *cleanup.Service
}

func buildApplication(ctx context.Context, cfg *config.Config, db *database.DB) (*application, error) {
	authService, err := newAuthService(ctx, cfg.Auth)
	if err != nil {
		return nil, err
	}

	fetcher, err := newFetcher(ctx, cfg.Media)
	if err != nil {
		return nil, err
	}

	store, err := artifacts.NewLocalStore(cfg.Storage.ArtifactDir)
	if err != nil {
		return nil, err
	}

	repo := clips.NewRepository(db.DB)
	clipService := clips.NewService(
		repo,
		fetcher,
		newExecutor(cfg.Features, cfg.AI),
		store,
		clips.WithRequestTimeout(cfg.Processing.RequestTimeout),
		clips.WithListLimit(cfg.Processing.ListLimit),
	)

	return &application{
		deps: &types.Dependencies{
			DB:           db,
			Auth:         authService,
			ClipService:  clipService,
			VideoService: videos.NewService(db.DB, fetcher),
			Build:        types.BuildInfo{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime},
		},
		sweeper: cleanup.NewService(repo, clipService.Lifecycle(), cfg.Processing.StaleAfter, cfg.Processing.SweepInterval),
	}, nil
}

func newAuthService(ctx context.Context, cfg config.AuthConfig) (*auth.Service, error) {
	secret := cfg.JWTSecret
	if secret == "" && cfg.JWKSURL == "" && cfg.DevAuthEnabled {
		// Dev mode without a configured secret still needs one to issue tokens
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate dev JWT secret: %w", err)
		}
		secret = hex.EncodeToString(buf)
		logging.WithComponent("auth").Warn("No JWT secret configured, using an ephemeral one for dev auth")
	}

	opts := []auth.Option{
		auth.WithJWKS(cfg.JWKSURL, &http.Client{Timeout: 10 * time.Second}),
		auth.WithIssuer(cfg.Issuer),
	}
	if cfg.DevAuthEnabled {
		opts = append(opts, auth.WithDevAuth(cfg.DevAuthToken))
	}

	service, err := auth.NewService(ctx, secret, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}
	return service, nil
}

func newFetcher(ctx context.Context, cfg config.MediaConfig) (metadata.Fetcher, error) {
	switch cfg.Fetcher {
	case "youtube":
		fetcher, err := metadata.NewYouTubeFetcher(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			return nil, err
		}
		return fetcher, nil
	case "", "ytdlp":
		return metadata.NewYtDlpFetcher(cfg.YtDlpPath, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown media fetcher %q", cfg.Fetcher)
	}
}

func newExecutor(cfg config.FeaturesConfig, ai config.AIConfig) *features.Executor {
	opts := []features.ExecutorOption{
		features.WithMaxConcurrency(cfg.MaxConcurrency),
		features.WithStageTimeout(cfg.StageTimeout),
	}

	if cfg.EnableHookTitles && ai.OpenAIAPIKey != "" {
		client := features.NewOpenAIClient(ai.OpenAIAPIKey, ai.OpenAIBaseURL)
		opts = append(opts, features.WithStage(features.HookTitles, features.NewHookTitleStage(client, ai.Model)))
		logging.WithComponent("features").WithField("model", ai.Model).Info("Hook title generation enabled")
	}

	return features.NewExecutor(features.NewStaticRegistry(), opts...)
}
