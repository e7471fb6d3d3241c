package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/tally-dev/tally/internal/appdir"
	"github.com/tally-dev/tally/internal/bankformat"
	"github.com/tally-dev/tally/internal/category"
	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/logging"
	"github.com/tally-dev/tally/internal/session"
)

const (
	configFile   = "tally.yaml"
	mappingsFile = "category_mappings.json"
)

// env bundles the per-invocation state every command needs: resolved data
// directory, configuration, format registry, category store and session.
type env struct {
	dataDir  string
	cfg      *config.Config
	registry *bankformat.Registry
	store    *category.Store
	session  *session.Service
	log      zerolog.Logger
}

// loadEnv resolves the data directory and loads all session state.
// A missing config or category document falls back to defaults.
func loadEnv() (*env, error) {
	log := logging.New()

	dataDir, err := appdir.Resolve()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(filepath.Join(dataDir, configFile))
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		return nil, err
	}

	registry := bankformat.DefaultRegistry()
	if err := cfg.RegisterFormats(registry); err != nil {
		return nil, err
	}

	store, warn := category.Load(filepath.Join(dataDir, mappingsFile))
	if warn != nil {
		log.Warn().Err(warn).Msg("category config unreadable")
	}

	return &env{
		dataDir:  dataDir,
		cfg:      cfg,
		registry: registry,
		store:    store,
		session:  session.NewService(dataDir),
		log:      log,
	}, nil
}

// saveStore persists the category document back to the data directory.
func (e *env) saveStore() error {
	if err := e.store.Save(filepath.Join(e.dataDir, mappingsFile)); err != nil {
		return fmt.Errorf("saving category config: %w", err)
	}
	return nil
}
