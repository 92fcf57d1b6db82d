package bookmarks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookmark-sync/core/bookmark"
	"bookmark-sync/core/reconcile"
	"bookmark-sync/core/state"
	"bookmark-sync/core/tree"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Destination is a reconcile.Destination that can provision its managed root.
type Destination interface {
	reconcile.Destination
	EnsureRoot(ctx context.Context, title string) (bookmark.Folder, error)
}

// Config wires a Service.
type Config struct {
	Source    reconcile.Source
	Dest      Destination
	Store     state.Store
	Options   reconcile.Options
	RootTitle string
	// Timeout bounds each sync. Zero means no limit.
	Timeout time.Duration
	Logger  *zap.Logger
}

// Service runs syncs and reports on the destination.
type Service struct {
	engine    *reconcile.Engine
	source    reconcile.Source
	dest      Destination
	store     state.Store
	opts      reconcile.Options
	rootTitle string
	timeout   time.Duration
	logger    *zap.Logger
	group     singleflight.Group
}

// NewService creates a new bookmarks service.
func NewService(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		engine:    reconcile.NewEngine(cfg.Source, cfg.Dest, cfg.Store, logger, cfg.Options),
		source:    cfg.Source,
		dest:      cfg.Dest,
		store:     cfg.Store,
		opts:      cfg.Options,
		rootTitle: cfg.RootTitle,
		timeout:   cfg.Timeout,
		logger:    logger,
	}
}

// SyncResult is what a sync reports back.
type SyncResult struct {
	Mode   reconcile.Mode  `json:"mode"`
	RootID string          `json:"rootId"`
	Stats  reconcile.Stats `json:"stats"`
	// Shared is set when the call joined a sync already in flight.
	Shared bool `json:"shared"`
}

// Root returns the managed destination folder, creating it on first use.
func (s *Service) Root(ctx context.Context) (bookmark.Folder, error) {
	root, err := s.dest.EnsureRoot(ctx, s.rootTitle)
	if err != nil {
		return bookmark.Folder{}, fmt.Errorf("failed to ensure root folder %q: %w", s.rootTitle, err)
	}
	return root, nil
}

// Sync runs one sync in the given mode. Concurrent calls for the same mode
// share a single run; calls for another mode while a run is active fail with
// reconcile.ErrRunInProgress.
func (s *Service) Sync(ctx context.Context, mode reconcile.Mode) (*SyncResult, error) {
	v, err, shared := s.group.Do(string(mode), func() (any, error) {
		// Joined callers must not lose the run when the first caller goes away.
		return s.Run(context.WithoutCancel(ctx), mode)
	})
	if err != nil {
		return nil, err
	}

	result := *v.(*SyncResult)
	result.Shared = shared
	return &result, nil
}

// Run executes one sync bound to ctx and the configured timeout.
func (s *Service) Run(ctx context.Context, mode reconcile.Mode) (*SyncResult, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	root, err := s.Root(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.engine.Sync(ctx, mode, root.FolderID)
	if err != nil {
		return nil, err
	}
	return &SyncResult{Mode: mode, RootID: root.FolderID, Stats: stats}, nil
}

// Running reports whether a sync is in progress.
func (s *Service) Running() bool {
	return s.engine.Running()
}

// DiffEntry is one node of a diff report.
type DiffEntry struct {
	Path   string `json:"path"`
	URL    string `json:"url,omitempty"`
	Folder bool   `json:"folder"`
	// Was holds the destination title for changed entries.
	Was string `json:"was,omitempty"`
}

// DiffReport compares the source with the managed destination subtree.
type DiffReport struct {
	RootID  string                `json:"rootId"`
	Summary reconcile.DiffSummary `json:"summary"`
	Add     []DiffEntry           `json:"add"`
	Remove  []DiffEntry           `json:"remove"`
	Update  []DiffEntry           `json:"update"`
}

// Diff reports what a sync would change without mutating anything.
func (s *Service) Diff(ctx context.Context) (*DiffReport, error) {
	root, err := s.Root(ctx)
	if err != nil {
		return nil, err
	}
	diff, err := s.compute(ctx, root.FolderID)
	if err != nil {
		return nil, err
	}

	report := &DiffReport{
		RootID:  root.FolderID,
		Summary: diff.Summary(),
		Add:     make([]DiffEntry, 0, len(diff.OnlyInLeft)),
		Remove:  make([]DiffEntry, 0, len(diff.OnlyInRight)),
		Update:  make([]DiffEntry, 0, len(diff.InBothButDifferent)),
	}
	for _, n := range diff.OnlyInLeft {
		report.Add = append(report.Add, entryOf(n))
	}
	for _, n := range diff.OnlyInRight {
		report.Remove = append(report.Remove, entryOf(n))
	}
	for _, p := range diff.InBothButDifferent {
		e := entryOf(p.Left)
		e.Was = p.Right.Data.Name()
		report.Update = append(report.Update, e)
	}
	return report, nil
}

// Compute diffs the source against the managed destination subtree.
func (s *Service) Compute(ctx context.Context) (*reconcile.SyncDiff[tree.NodeData, tree.NodeData], error) {
	root, err := s.Root(ctx)
	if err != nil {
		return nil, err
	}
	return s.compute(ctx, root.FolderID)
}

func (s *Service) compute(ctx context.Context, rootID string) (*reconcile.SyncDiff[tree.NodeData, tree.NodeData], error) {
	left, err := reconcile.SourceSnapshot(ctx, s.source, s.opts)
	if err != nil {
		return nil, err
	}
	right, err := reconcile.DestinationSnapshot(ctx, s.dest, rootID)
	if err != nil {
		return nil, err
	}
	return reconcile.ComputeDiff(left, right), nil
}

func entryOf(n *tree.TreeNode[tree.NodeData]) DiffEntry {
	return DiffEntry{
		Path:   strings.Join(n.FullPath(), "/"),
		URL:    n.Data.URL(),
		Folder: n.Data.IsFolder(),
	}
}

// State returns the stored snapshot, or an empty one before the first sync.
func (s *Service) State(ctx context.Context) (*state.SyncState, error) {
	st, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sync state: %w", err)
	}
	if st == nil {
		st = state.New()
	}
	return st, nil
}

// Reset forgets the stored snapshot. The next incremental sync then behaves
// like a first sync. It refuses while a sync is running.
func (s *Service) Reset(ctx context.Context) error {
	if s.engine.Running() {
		return reconcile.ErrRunInProgress
	}
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear sync state: %w", err)
	}
	s.logger.Info("Sync state cleared")
	return nil
}
