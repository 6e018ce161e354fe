// Package app wires configuration, storage and the remote services together
// and drives the dataset sync pipeline.
package app

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/hexzhou/ygocdb/internal/config"
	"github.com/hexzhou/ygocdb/internal/database"
	"github.com/hexzhou/ygocdb/internal/domain"
	"github.com/hexzhou/ygocdb/internal/imagecache"
	"github.com/hexzhou/ygocdb/internal/logger"
	"github.com/hexzhou/ygocdb/internal/prerelease"
	"github.com/hexzhou/ygocdb/internal/store"
	"github.com/hexzhou/ygocdb/internal/ygodb"
)

// App holds all initialized dependencies.
type App struct {
	log   zerolog.Logger
	cfg   *domain.Config
	paths *domain.Paths

	db         *database.DB
	store      *store.Store
	ygodb      ygodb.Service
	images     *imagecache.Cache
	prerelease prerelease.Service
}

// NewApp initializes logging, configuration and every service. The data
// directory is created if missing.
func NewApp(logLevel string) (*App, error) {
	log := logger.NewWithLevel(logLevel)

	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	paths := domain.NewPaths(cfg.DataDir, cfg.ImageCacheDir)
	if err := os.MkdirAll(paths.DataDir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create data directory")
	}

	db, err := database.NewDB(paths.DatabaseDir, log)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	images, err := imagecache.New(log, cfg, paths.ImageCacheDir)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to initialize image cache")
	}

	return &App{
		log:        log,
		cfg:        cfg,
		paths:      paths,
		db:         db,
		store:      store.NewStore(log, database.NewCardRepo(log, db), paths),
		ygodb:      ygodb.NewService(log, cfg),
		images:     images,
		prerelease: prerelease.NewService(log, cfg),
	}, nil
}

func (a *App) Config() *domain.Config         { return a.cfg }
func (a *App) Paths() *domain.Paths           { return a.paths }
func (a *App) Store() *store.Store            { return a.store }
func (a *App) YGODB() ygodb.Service           { return a.ygodb }
func (a *App) Images() *imagecache.Cache      { return a.images }
func (a *App) PreRelease() prerelease.Service { return a.prerelease }

func (a *App) Close() error {
	return a.db.Close()
}

// Sync brings the local snapshot up to date with the remote dataset. It
// returns true when a new snapshot was downloaded and persisted. With force
// set, the version probe is skipped and the dataset is always re-downloaded.
func (a *App) Sync(ctx context.Context, force bool) (bool, error) {
	if err := a.store.Load(ctx); err != nil {
		return false, errors.Wrap(err, "failed to load local snapshot")
	}

	if !force && a.store.Loaded() {
		changed, err := a.ygodb.HasRemoteChanged(ctx, a.store.LocalToken())
		if err != nil {
			return false, errors.Wrap(err, "failed to probe remote version")
		}
		if !changed {
			a.log.Info().Str("token", a.store.LocalToken()).Msg("local snapshot is up to date")
			return false, nil
		}
	}

	a.log.Info().Msg("downloading card dataset")

	lastLogged := -10
	cards, token, err := a.ygodb.DownloadCards(ctx, func(fraction float64) {
		pct := int(fraction * 100)
		if pct/10 > lastLogged/10 {
			lastLogged = pct
			a.log.Info().Int("percent", pct).Msg("download progress")
		}
	})
	if err != nil {
		return false, errors.Wrap(err, "failed to download card dataset")
	}

	if err := a.store.Save(ctx, cards, token); err != nil {
		return false, errors.Wrap(err, "failed to persist card dataset")
	}

	a.log.Info().Int("cards", a.store.Count()).Str("token", token).Msg("snapshot updated")
	return true, nil
}

// Load reads the local snapshot without touching the network.
func (a *App) Load(ctx context.Context) error {
	return a.store.Load(ctx)
}
