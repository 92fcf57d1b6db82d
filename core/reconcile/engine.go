package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"bookmark-sync/core/bookmark"
	"bookmark-sync/core/state"
	"bookmark-sync/core/tree"
	"bookmark-sync/core/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine applies a source tree to a destination folder.
//
// An Engine serves one SyncState. Runs are serialized: a second run started
// while one is active fails with ErrRunInProgress.
type Engine struct {
	source  Source
	dest    Destination
	store   state.Store
	logger  *zap.Logger
	opts    Options
	running atomic.Bool
}

// NewEngine wires an engine. A nil logger discards output.
func NewEngine(source Source, dest Destination, store state.Store, logger *zap.Logger, opts Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		source: source,
		dest:   dest,
		store:  store,
		logger: logger,
		opts:   opts.withDefaults(),
	}
}

// Running reports whether a run currently holds the engine.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// Sync lists the source tree and runs the given mode against rootID.
func (e *Engine) Sync(ctx context.Context, mode Mode, rootID string) (Stats, error) {
	return e.execute(ctx, mode, rootID, func(ctx context.Context) (*tree.TreeNode[bookmark.Collection], error) {
		if e.source == nil {
			return nil, errors.New("no source configured")
		}
		root, err := e.source.ListCollectionsAsTree(ctx)
		if err != nil {
			if errors.Is(err, tree.ErrMalformedTree) {
				return nil, err
			}
			return nil, &SourceFetchFailure{Err: err}
		}
		return root, nil
	})
}

// IncrementalSync applies the delta between sourceTree and the previous
// SyncState to the destination folder rootID.
func (e *Engine) IncrementalSync(ctx context.Context, sourceTree *tree.TreeNode[bookmark.Collection], rootID string) (Stats, error) {
	return e.execute(ctx, ModeIncremental, rootID, given(sourceTree))
}

// FullResync clears every child of rootID and recreates the structure of
// sourceTree without looking at the previous SyncState. An interrupted full
// resync leaves the destination partially rebuilt.
func (e *Engine) FullResync(ctx context.Context, sourceTree *tree.TreeNode[bookmark.Collection], rootID string) (Stats, error) {
	return e.execute(ctx, ModeFull, rootID, given(sourceTree))
}

type treeFunc func(ctx context.Context) (*tree.TreeNode[bookmark.Collection], error)

func given(root *tree.TreeNode[bookmark.Collection]) treeFunc {
	return func(context.Context) (*tree.TreeNode[bookmark.Collection], error) {
		if root == nil {
			return nil, errors.New("source tree is nil")
		}
		return root, nil
	}
}

func (e *Engine) execute(ctx context.Context, mode Mode, rootID string, build treeFunc) (Stats, error) {
	if mode != ModeIncremental && mode != ModeFull {
		return Stats{}, fmt.Errorf("unknown sync mode %q", mode)
	}
	if !e.running.CompareAndSwap(false, true) {
		return Stats{}, ErrRunInProgress
	}
	defer e.running.Store(false)

	r := &run{
		Engine:    e,
		mode:      mode,
		rootID:    rootID,
		next:      state.New(),
		preserved: make(map[string]struct{}),
		contained: make(map[string]bool),
		logger:    e.logger.With(zap.String("mode", string(mode)), zap.String("root", rootID)),
	}

	stats, err := r.perform(ctx, build)
	if err != nil {
		r.enter(PhaseFailed)
		r.logger.Error("Sync failed", zap.Error(err), zap.Any("stats", stats))
		return stats, err
	}
	r.enter(PhaseDone)
	r.logger.Info("Sync finished",
		zap.Int("added", stats.Added),
		zap.Int("updated", stats.Updated),
		zap.Int("deleted", stats.Deleted),
		zap.Int("unchanged", stats.Unchanged),
		zap.Int("failed", stats.Failed),
	)
	return stats, nil
}

// run holds the working state of one execution.
type run struct {
	*Engine
	mode   Mode
	rootID string
	logger *zap.Logger

	prev *state.SyncState

	mu    sync.Mutex
	next  *state.SyncState
	stats Stats

	// preserved holds keys carried over from a failed subtree. A collection
	// that lists the same URL later still claims it.
	preserved map[string]struct{}
	// partial is set once any subtree was preserved. A partial run deletes
	// nothing: a bookmark missing from the walk may sit in the unread part.
	partial bool

	containMu sync.Mutex
	contained map[string]bool
}

func (r *run) enter(p Phase) {
	r.logger.Debug("Entering phase", zap.String("phase", string(p)))
	if r.opts.OnPhase != nil {
		r.opts.OnPhase(p)
	}
}

func (r *run) snapshot() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *run) perform(ctx context.Context, build treeFunc) (Stats, error) {
	r.enter(PhaseLoadingState)
	if err := r.loadState(ctx); err != nil {
		return r.snapshot(), err
	}
	if _, err := r.dest.GetFolder(ctx, r.rootID); err != nil {
		return r.snapshot(), fmt.Errorf("failed to get destination root %s: %w", r.rootID, err)
	}
	if err := ctx.Err(); err != nil {
		return r.snapshot(), err
	}

	r.enter(PhaseBuildingSourceTree)
	sourceTree, err := build(ctx)
	if err != nil {
		return r.snapshot(), err
	}
	if err := ctx.Err(); err != nil {
		return r.snapshot(), err
	}

	r.enter(PhaseWalkingTree)
	if r.mode == ModeFull {
		r.clearRoot(ctx)
	}
	if err := r.walk(ctx, sourceTree); err != nil {
		return r.snapshot(), err
	}
	if err := ctx.Err(); err != nil {
		return r.snapshot(), err
	}

	r.enter(PhaseDeletingStale)
	if err := r.deleteStale(ctx); err != nil {
		return r.snapshot(), err
	}
	if err := ctx.Err(); err != nil {
		return r.snapshot(), err
	}

	r.enter(PhasePersistingState)
	r.next.LastSync = r.opts.Now().UTC()
	if err := r.store.Save(ctx, r.next); err != nil {
		return r.snapshot(), &StatePersistFailure{Err: err}
	}
	return r.snapshot(), nil
}

func (r *run) loadState(ctx context.Context) error {
	if r.mode == ModeFull {
		r.prev = state.New()
		return nil
	}
	prev, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sync state: %w", err)
	}
	if prev == nil {
		r.logger.Info("No previous sync state, starting fresh")
		prev = state.New()
	}
	r.prev = prev
	return nil
}

// clearRoot removes every child of the managed root.
func (r *run) clearRoot(ctx context.Context) {
	children, err := r.dest.ListChildren(ctx, r.rootID)
	if err != nil {
		r.fail(&MutationFailure{Op: "list children of", ID: r.rootID, Err: err})
		return
	}
	for _, child := range children {
		var err error
		if child.IsFolder() {
			err = r.dest.RemoveSubtree(ctx, child.ID())
		} else {
			err = r.dest.RemoveItem(ctx, child.ID())
		}
		if err != nil {
			r.fail(&MutationFailure{Op: "clear", ID: child.ID(), Err: err})
		}
	}
}

func (r *run) walk(ctx context.Context, sourceTree *tree.TreeNode[bookmark.Collection]) error {
	top := []*tree.TreeNode[bookmark.Collection]{sourceTree}
	if sourceTree.IsSynthetic() || sourceTree.Data.CollectionID == 0 {
		top = sourceTree.Children
	}
	if err := r.processSiblings(ctx, top, r.rootID); err != nil {
		return err
	}

	if r.opts.IncludeUnsorted {
		unsorted := tree.NewNode(bookmark.Unsorted(r.opts.UnsortedTitle))
		if err := r.processCollection(ctx, unsorted, r.rootID); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) processSiblings(ctx context.Context, nodes []*tree.TreeNode[bookmark.Collection], parentFolderID string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)
	for _, node := range nodes {
		// The unsorted bucket is handled after the main walk.
		if node.Data.IsUnsorted() {
			continue
		}
		g.Go(func() error {
			return r.processCollection(gctx, node, parentFolderID)
		})
	}
	return g.Wait()
}

// processCollection resolves the folder of node, writes its items and then
// recurses into its children. Only cancellation is returned as an error;
// everything else is counted and logged.
func (r *run) processCollection(ctx context.Context, node *tree.TreeNode[bookmark.Collection], parentFolderID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	collection := node.Data
	log := r.logger.With(zap.Int64("collection", collection.CollectionID), zap.String("title", collection.Title))

	folderID, record, fresh, ok := r.resolveFolder(ctx, collection, parentFolderID, log)
	if !ok {
		r.preserveSubtree(node)
		return ctx.Err()
	}
	r.mu.Lock()
	r.next.CollectionFolders[collection.CollectionID] = folderID
	r.next.Collections[collection.CollectionID] = record
	r.mu.Unlock()

	items, err := r.source.ListItems(ctx, collection.CollectionID)
	if err != nil {
		r.fail(&SourceFetchFailure{CollectionID: collection.CollectionID, Err: err})
		r.preserveSubtree(node)
		return ctx.Err()
	}

	if err := r.processItems(ctx, collection, folderID, fresh, items); err != nil {
		return err
	}

	return r.processSiblings(ctx, node.Children, folderID)
}

// resolveFolder returns the destination folder for collection, creating it
// when the previous mapping is absent, stale or no longer under the managed
// root. fresh reports a newly created folder; ok is false when no folder
// could be obtained.
func (r *run) resolveFolder(ctx context.Context, collection bookmark.Collection, parentFolderID string, log *zap.Logger) (folderID string, record state.CollectionState, fresh, ok bool) {
	if mapped, found := r.prev.CollectionFolders[collection.CollectionID]; found {
		folder, inside, err := r.mappedFolder(ctx, mapped)
		switch {
		case err == nil && inside:
			return folder.FolderID, r.realignFolder(ctx, folder, collection, parentFolderID, log), false, true
		case err == nil:
			log.Info("Folder was moved out of the managed root, creating a new one", zap.String("folder", mapped))
		case errors.Is(err, bookmark.ErrNotFound):
			log.Info("Recreating folder", zap.String("folder", mapped), zap.Error(ErrDestinationFolderMissing))
		default:
			r.fail(&MutationFailure{Op: "get folder", ID: mapped, Err: err})
			return "", state.CollectionState{}, false, false
		}
	}

	folder, err := r.dest.CreateFolder(ctx, parentFolderID, collection.Title)
	if err != nil {
		r.fail(&MutationFailure{Op: "create folder", ID: collection.Title, Err: err})
		return "", state.CollectionState{}, false, false
	}
	log.Debug("Created folder", zap.String("folder", folder.FolderID))
	return folder.FolderID, collectionState(collection), true, true
}

// mappedFolder fetches a previously mapped folder and reports whether it
// still sits under the managed root.
func (r *run) mappedFolder(ctx context.Context, folderID string) (bookmark.Folder, bool, error) {
	folder, err := r.dest.GetFolder(ctx, folderID)
	if err != nil {
		return bookmark.Folder{}, false, err
	}
	inside, err := r.insideRoot(ctx, folder.ParentFolderID)
	if err != nil {
		return bookmark.Folder{}, false, err
	}
	return folder, inside, nil
}

// realignFolder carries source renames and re-parents over to an existing
// folder. Only values that changed in the source since the last run are
// applied, so edits made on the destination side stay. The returned record
// keeps the old value of any change that failed, so it is retried.
func (r *run) realignFolder(ctx context.Context, folder bookmark.Folder, collection bookmark.Collection, parentFolderID string, log *zap.Logger) state.CollectionState {
	record := collectionState(collection)
	last, known := r.prev.Collections[collection.CollectionID]
	if !known {
		// Snapshots without collection records adopt the folder as it is.
		return record
	}

	if last.Title != collection.Title && folder.Title != collection.Title {
		if err := r.dest.UpdateItem(ctx, folder.FolderID, bookmark.ItemChanges{Title: collection.Title}); err != nil {
			r.fail(&MutationFailure{Op: "rename folder", ID: folder.FolderID, Err: err})
			record.Title = last.Title
		} else {
			log.Debug("Renamed folder", zap.String("folder", folder.FolderID), zap.String("from", folder.Title))
		}
	}
	if last.ParentCollectionID != collection.ParentCollectionID && folder.ParentFolderID != parentFolderID {
		if err := r.dest.MoveItem(ctx, folder.FolderID, parentFolderID); err != nil {
			r.fail(&MutationFailure{Op: "move folder", ID: folder.FolderID, Err: err})
			record.ParentCollectionID = last.ParentCollectionID
			return record
		}
		log.Debug("Moved folder", zap.String("folder", folder.FolderID), zap.String("parent", parentFolderID))
		r.forgetContainment()
	}
	return record
}

type itemTask struct {
	key     string
	item    bookmark.Item
	current state.BookmarkState
	prev    state.BookmarkState
	known   bool
}

func (r *run) processItems(ctx context.Context, collection bookmark.Collection, folderID string, fresh bool, items []bookmark.Item) error {
	// Claims happen in listing order so the first duplicate URL wins
	// deterministically within a collection.
	tasks := make([]itemTask, 0, len(items))
	r.mu.Lock()
	for _, item := range items {
		key := utils.NormalizeURL(item.Link)
		if key == "" {
			continue
		}
		if _, claimed := r.next.Bookmarks[key]; claimed && !r.takeOver(key) {
			r.logger.Debug("Skipping duplicate URL", zap.String("url", item.Link), zap.Int64("item", item.ItemID))
			continue
		}
		current := bookmarkState(collection.CollectionID, item)
		prev, known := r.prev.Bookmarks[key]
		r.next.Bookmarks[key] = current
		tasks = append(tasks, itemTask{key: key, item: item, current: current, prev: prev, known: known})
	}
	r.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)
	for _, task := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r.processItem(gctx, task, folderID, fresh)
			return nil
		})
	}
	return g.Wait()
}

// processItem applies one claimed bookmark. Known bookmarks whose title and
// collection are unchanged are left alone unless their folder was just
// recreated, in which case they are looked up and restored if missing.
func (r *run) processItem(ctx context.Context, task itemTask, folderID string, fresh bool) {
	if !task.known {
		r.createItem(ctx, task, folderID)
		return
	}
	same := task.prev.Title == task.current.Title && task.prev.SourceCollectionID == task.current.SourceCollectionID
	if same && !fresh {
		r.count(func(s *Stats) { s.Unchanged++ })
		return
	}

	entry, found, err := r.findManaged(ctx, task.current.URL)
	if err != nil {
		r.fail(&MutationFailure{Op: "find", URL: task.current.URL, Err: err})
		r.restore(task)
		return
	}
	if !found {
		r.createItem(ctx, task, folderID)
		return
	}

	changed := false
	if entry.Title != task.current.Title {
		if err := r.dest.UpdateItem(ctx, entry.EntryID, bookmark.ItemChanges{Title: task.current.Title}); err != nil {
			r.fail(&MutationFailure{Op: "update", ID: entry.EntryID, URL: task.current.URL, Err: err})
			r.restore(task)
			return
		}
		changed = true
	}
	if entry.ParentFolderID != folderID {
		if err := r.dest.MoveItem(ctx, entry.EntryID, folderID); err != nil {
			r.fail(&MutationFailure{Op: "move", ID: entry.EntryID, URL: task.current.URL, Err: err})
			r.restore(task)
			return
		}
		changed = true
	}

	if !changed && same {
		r.count(func(s *Stats) { s.Unchanged++ })
		return
	}
	r.logger.Debug("Updated bookmark", zap.String("url", task.current.URL), zap.String("entry", entry.EntryID))
	r.count(func(s *Stats) { s.Updated++ })
}

func (r *run) createItem(ctx context.Context, task itemTask, folderID string) {
	entry, err := r.dest.CreateItem(ctx, folderID, task.current.Title, task.current.URL)
	if err != nil {
		r.fail(&MutationFailure{Op: "create", URL: task.current.URL, Err: err})
		r.mu.Lock()
		if task.known {
			r.next.Bookmarks[task.key] = task.prev
		} else {
			delete(r.next.Bookmarks, task.key)
		}
		r.mu.Unlock()
		return
	}
	r.logger.Debug("Created bookmark", zap.String("url", task.current.URL), zap.String("entry", entry.EntryID))
	r.count(func(s *Stats) { s.Added++ })
}

// restore puts the previous state back so the next run retries the item.
func (r *run) restore(task itemTask) {
	r.mu.Lock()
	r.next.Bookmarks[task.key] = task.prev
	r.mu.Unlock()
}

// preserveSubtree carries the previous state of node and its descendants
// over unchanged, so a transient failure does not turn into deletions.
func (r *run) preserveSubtree(node *tree.TreeNode[bookmark.Collection]) {
	ids := make(map[int64]struct{})
	node.Walk(func(n *tree.TreeNode[bookmark.Collection]) bool {
		ids[n.Data.CollectionID] = struct{}{}
		return true
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	r.partial = true
	for id := range ids {
		if folderID, ok := r.prev.CollectionFolders[id]; ok {
			if _, set := r.next.CollectionFolders[id]; !set {
				r.next.CollectionFolders[id] = folderID
				r.carryCollection(id)
			}
		}
	}
	for key, prev := range r.prev.Bookmarks {
		if _, ok := ids[prev.SourceCollectionID]; !ok {
			continue
		}
		if _, claimed := r.next.Bookmarks[key]; !claimed {
			r.next.Bookmarks[key] = prev
			r.preserved[key] = struct{}{}
		}
	}
}

// takeOver releases a preserved key to a new claim. Callers hold r.mu.
func (r *run) takeOver(key string) bool {
	if _, ok := r.preserved[key]; !ok {
		return false
	}
	delete(r.preserved, key)
	return true
}

// deleteStale removes bookmarks and collection folders that the previous run
// wrote and this run did not. After a partial walk they are carried over
// instead and left for the next complete run.
func (r *run) deleteStale(ctx context.Context) error {
	var stale []string
	for key := range r.prev.Bookmarks {
		if _, ok := r.next.Bookmarks[key]; !ok {
			stale = append(stale, key)
		}
	}

	r.mu.Lock()
	partial := r.partial
	r.mu.Unlock()
	if partial {
		r.keepStale(stale)
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)
	for _, key := range stale {
		prev := r.prev.Bookmarks[key]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r.deleteBookmark(gctx, key, prev)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	live := make(map[string]struct{}, len(r.next.CollectionFolders))
	for _, folderID := range r.next.CollectionFolders {
		live[folderID] = struct{}{}
	}
	for collectionID, folderID := range r.prev.CollectionFolders {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := r.next.CollectionFolders[collectionID]; ok {
			continue
		}
		if _, ok := live[folderID]; ok || folderID == r.rootID {
			continue
		}
		r.deleteFolder(ctx, collectionID, folderID)
	}
	return nil
}

func (r *run) deleteBookmark(ctx context.Context, key string, prev state.BookmarkState) {
	entries, err := r.managedEntries(ctx, prev.URL)
	if err != nil {
		r.fail(&MutationFailure{Op: "find", URL: prev.URL, Err: err})
		r.keep(key, prev)
		return
	}

	removed := 0
	for _, entry := range entries {
		if err := r.dest.RemoveItem(ctx, entry.EntryID); err != nil && !errors.Is(err, bookmark.ErrNotFound) {
			r.fail(&MutationFailure{Op: "remove", ID: entry.EntryID, URL: prev.URL, Err: err})
			r.keep(key, prev)
			return
		}
		removed++
	}
	if removed > 0 {
		r.logger.Debug("Removed bookmark", zap.String("url", prev.URL), zap.Int("entries", removed))
		r.count(func(s *Stats) { s.Deleted++ })
	}
}

func (r *run) deleteFolder(ctx context.Context, collectionID int64, folderID string) {
	inside, err := r.insideRoot(ctx, folderID)
	if err != nil {
		if errors.Is(err, bookmark.ErrNotFound) {
			return
		}
		r.fail(&MutationFailure{Op: "get folder", ID: folderID, Err: err})
		r.keepFolder(collectionID, folderID)
		return
	}
	if !inside {
		r.logger.Warn("Stale folder is outside the managed root, leaving it", zap.String("folder", folderID))
		return
	}
	if err := r.dest.RemoveSubtree(ctx, folderID); err != nil && !errors.Is(err, bookmark.ErrNotFound) {
		r.fail(&MutationFailure{Op: "remove folder", ID: folderID, Err: err})
		r.keepFolder(collectionID, folderID)
		return
	}
	r.logger.Debug("Removed folder", zap.String("folder", folderID), zap.Int64("collection", collectionID))
}

func (r *run) keep(key string, prev state.BookmarkState) {
	r.mu.Lock()
	r.next.Bookmarks[key] = prev
	r.mu.Unlock()
}

func (r *run) keepFolder(collectionID int64, folderID string) {
	r.mu.Lock()
	r.next.CollectionFolders[collectionID] = folderID
	r.carryCollection(collectionID)
	r.mu.Unlock()
}

// keepStale carries stale bookmarks and folder mappings into the next state
// untouched.
func (r *run) keepStale(stale []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range stale {
		r.next.Bookmarks[key] = r.prev.Bookmarks[key]
	}
	folders := 0
	for collectionID, folderID := range r.prev.CollectionFolders {
		if _, ok := r.next.CollectionFolders[collectionID]; !ok {
			r.next.CollectionFolders[collectionID] = folderID
			r.carryCollection(collectionID)
			folders++
		}
	}
	if len(stale) > 0 || folders > 0 {
		r.logger.Info("Source was read partially, keeping stale entries",
			zap.Int("bookmarks", len(stale)), zap.Int("folders", folders))
	}
}

// carryCollection copies the previous record of collectionID. Callers hold r.mu.
func (r *run) carryCollection(collectionID int64) {
	if record, ok := r.prev.Collections[collectionID]; ok {
		r.next.Collections[collectionID] = record
	}
}

// findManaged returns the first bookmark for url inside the managed root.
func (r *run) findManaged(ctx context.Context, url string) (bookmark.Entry, bool, error) {
	entries, err := r.managedEntries(ctx, url)
	if err != nil || len(entries) == 0 {
		return bookmark.Entry{}, false, err
	}
	return entries[0], true, nil
}

// managedEntries returns the bookmarks for url that live under the managed
// root. Bookmarks elsewhere are never returned, whatever their URL.
func (r *run) managedEntries(ctx context.Context, url string) ([]bookmark.Entry, error) {
	entries, err := r.dest.FindItemsByURL(ctx, url)
	if err != nil {
		return nil, err
	}
	managed := entries[:0:0]
	for _, entry := range entries {
		inside, err := r.insideRoot(ctx, entry.ParentFolderID)
		if err != nil && !errors.Is(err, bookmark.ErrNotFound) {
			return nil, err
		}
		if inside {
			managed = append(managed, entry)
		}
	}
	return managed, nil
}

// insideRoot walks the ancestor chain of folderID up to the managed root.
// Answers are memoized for the run.
func (r *run) insideRoot(ctx context.Context, folderID string) (bool, error) {
	var chain []string
	visited := make(map[string]struct{})
	answer := false

	for id := folderID; ; {
		if id == r.rootID {
			answer = true
			break
		}
		if id == "" {
			break
		}
		if _, loop := visited[id]; loop {
			break
		}
		visited[id] = struct{}{}

		r.containMu.Lock()
		known, ok := r.contained[id]
		r.containMu.Unlock()
		if ok {
			answer = known
			break
		}

		chain = append(chain, id)
		folder, err := r.dest.GetFolder(ctx, id)
		if err != nil {
			return false, err
		}
		id = folder.ParentFolderID
	}

	r.containMu.Lock()
	for _, id := range chain {
		r.contained[id] = answer
	}
	r.containMu.Unlock()
	return answer, nil
}

func (r *run) forgetContainment() {
	r.containMu.Lock()
	r.contained = make(map[string]bool)
	r.containMu.Unlock()
}

func (r *run) fail(err error) {
	r.logger.Warn("Sync step failed", zap.Error(err))
	r.count(func(s *Stats) { s.Failed++ })
}

func (r *run) count(fn func(*Stats)) {
	r.mu.Lock()
	fn(&r.stats)
	r.mu.Unlock()
}

func collectionState(c bookmark.Collection) state.CollectionState {
	return state.CollectionState{Title: c.Title, ParentCollectionID: c.ParentCollectionID}
}

func bookmarkState(collectionID int64, item bookmark.Item) state.BookmarkState {
	s := state.BookmarkState{
		URL:                item.Link,
		Title:              item.Title,
		SourceCollectionID: collectionID,
		SourceItemID:       item.ItemID,
		Cover:              item.Cover,
	}
	if !item.LastUpdate.IsZero() {
		modified := item.LastUpdate.UTC()
		s.LastModified = &modified
	}
	return s
}
