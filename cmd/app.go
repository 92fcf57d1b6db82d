package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"bookmark-sync/core/config"
	"bookmark-sync/core/database"
	"bookmark-sync/core/logger"
	"bookmark-sync/core/state"
	"bookmark-sync/core/storage"
	"bookmark-sync/feature/bookmarks"
	"bookmark-sync/feature/destination"
	"bookmark-sync/feature/source"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// environment holds what every command needs once configuration is loaded.
type environment struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	store   state.Store
	feature *bookmarks.Feature
}

func (e *environment) service() *bookmarks.Service {
	return e.feature.Service()
}

// setup loads configuration and wires the source, destination and state
// store into the bookmarks feature.
func setup(ctx context.Context) (*environment, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	dest := destination.NewStore(db)
	if err := dest.Migrate(ctx); err != nil {
		return nil, err
	}
	if err := dest.VerifySchema(); err != nil {
		return nil, err
	}

	fs := afero.NewOsFs()
	store, err := openStateStore(ctx, cfg, db, fs)
	if err != nil {
		return nil, err
	}

	feature := bookmarks.NewFeature(bookmarks.Config{
		Source:    source.NewSource(fs, cfg.Sync.SourcePath),
		Dest:      dest,
		Store:     store,
		Options:   cfg.Sync.Options(),
		RootTitle: cfg.Sync.RootTitle,
		Timeout:   cfg.Server.SyncTimeout(),
		Logger:    l,
	})

	return &environment{cfg: cfg, logger: l, db: db, store: store, feature: feature}, nil
}

// openStateStore builds the configured SyncState backend and prepares it.
func openStateStore(ctx context.Context, cfg *config.Config, db *gorm.DB, fs afero.Fs) (state.Store, error) {
	deps := state.Deps{Fs: fs, Bucket: cfg.Storage.Bucket, DB: db}
	if cfg.State.Backend == state.BackendObject {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		deps.Client = client
	}

	store, err := state.NewStore(cfg.State, deps)
	if err != nil {
		return nil, err
	}

	switch s := store.(type) {
	case *state.DBStore:
		if err := s.Migrate(ctx); err != nil {
			return nil, err
		}
	case *state.ObjectStore:
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// confirmDestructiveAction asks for a typed "yes" unless yes is already set.
func confirmDestructiveAction(yes bool, prompt string) bool {
	if yes {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  %s Type 'yes' to confirm: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
