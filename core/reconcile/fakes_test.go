package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"bookmark-sync/core/bookmark"
	"bookmark-sync/core/state"
	"bookmark-sync/core/tree"
	"bookmark-sync/core/utils"
)

// fakeSource serves collections and items from memory.
type fakeSource struct {
	mu          sync.Mutex
	collections []bookmark.Collection
	items       map[int64][]bookmark.Item
	failItems   map[int64]error
	listHook    func(ctx context.Context) error
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		items:     make(map[int64][]bookmark.Item),
		failItems: make(map[int64]error),
	}
}

func (s *fakeSource) addCollection(id, parent int64, title string) *fakeSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections = append(s.collections, bookmark.Collection{CollectionID: id, ParentCollectionID: parent, Title: title})
	return s
}

func (s *fakeSource) addItem(id, collection int64, title, link string) *fakeSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[collection] = append(s.items[collection], bookmark.Item{ItemID: id, CollectionID: collection, Title: title, Link: link})
	return s
}

func (s *fakeSource) removeItem(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c, items := range s.items {
		kept := items[:0:0]
		for _, item := range items {
			if item.ItemID != id {
				kept = append(kept, item)
			}
		}
		s.items[c] = kept
	}
}

func (s *fakeSource) moveItem(id, collection int64) {
	s.mu.Lock()
	var moved bookmark.Item
	for c, items := range s.items {
		kept := items[:0:0]
		for _, item := range items {
			if item.ItemID == id {
				moved = item
				continue
			}
			kept = append(kept, item)
		}
		s.items[c] = kept
	}
	s.mu.Unlock()
	s.addItem(moved.ItemID, collection, moved.Title, moved.Link)
}

func (s *fakeSource) renameCollection(id int64, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.collections {
		if s.collections[i].CollectionID == id {
			s.collections[i].Title = title
		}
	}
}

func (s *fakeSource) reparentCollection(id, parent int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.collections {
		if s.collections[i].CollectionID == id {
			s.collections[i].ParentCollectionID = parent
		}
	}
}

func (s *fakeSource) removeCollection(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.collections[:0:0]
	for _, c := range s.collections {
		if c.CollectionID != id {
			kept = append(kept, c)
		}
	}
	s.collections = kept
	delete(s.items, id)
}

func (s *fakeSource) tree() *tree.TreeNode[bookmark.Collection] {
	root, err := s.ListCollectionsAsTree(context.Background())
	if err != nil {
		panic(err)
	}
	return root
}

func (s *fakeSource) ListCollectionsAsTree(ctx context.Context) (*tree.TreeNode[bookmark.Collection], error) {
	if s.listHook != nil {
		if err := s.listHook(ctx); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	list := append([]bookmark.Collection(nil), s.collections...)
	s.mu.Unlock()
	return tree.CreateTreeWithRoot(bookmark.Collection{}, list)
}

func (s *fakeSource) ListItems(ctx context.Context, collectionID int64) ([]bookmark.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failItems[collectionID]; err != nil {
		return nil, err
	}
	return append([]bookmark.Item(nil), s.items[collectionID]...), nil
}

// fakeCall is one successful create, in the order the destination saw it.
type fakeCall struct {
	op, parent, id string
}

type fakeNode struct {
	id, parent, title, url string
	folder                 bool
}

// fakeDest is an in-memory destination tree. "root" is the managed folder
// and "other" is an unmanaged sibling.
type fakeDest struct {
	mu       sync.Mutex
	nodes    map[string]*fakeNode
	children map[string][]string
	seq      int

	failCreate map[string]error
	failRemove map[string]error
	failMove   error
	calls      map[string]int
	history    []fakeCall
}

func newFakeDest() *fakeDest {
	d := &fakeDest{
		nodes:      make(map[string]*fakeNode),
		children:   make(map[string][]string),
		failCreate: make(map[string]error),
		failRemove: make(map[string]error),
		calls:      make(map[string]int),
	}
	d.nodes["root"] = &fakeNode{id: "root", title: "Synced", folder: true}
	d.nodes["other"] = &fakeNode{id: "other", title: "Personal", folder: true}
	return d
}

func (d *fakeDest) add(parent string, n *fakeNode) {
	d.nodes[n.id] = n
	d.children[parent] = append(d.children[parent], n.id)
}

func (d *fakeDest) detach(id string) {
	n := d.nodes[id]
	siblings := d.children[n.parent]
	for i, sid := range siblings {
		if sid == id {
			d.children[n.parent] = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
}

func (d *fakeDest) nextID(prefix string) string {
	d.seq++
	return fmt.Sprintf("%s-%d", prefix, d.seq)
}

func (d *fakeDest) CreateFolder(ctx context.Context, parentID, title string) (bookmark.Folder, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls["CreateFolder"]++
	if err := d.failCreate[title]; err != nil {
		return bookmark.Folder{}, err
	}
	if _, ok := d.nodes[parentID]; !ok {
		return bookmark.Folder{}, bookmark.ErrNotFound
	}
	n := &fakeNode{id: d.nextID("f"), parent: parentID, title: title, folder: true}
	d.add(parentID, n)
	d.history = append(d.history, fakeCall{op: "CreateFolder", parent: parentID, id: n.id})
	return bookmark.Folder{FolderID: n.id, ParentFolderID: parentID, Title: title}, nil
}

func (d *fakeDest) CreateItem(ctx context.Context, parentID, title, url string) (bookmark.Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls["CreateItem"]++
	if err := d.failCreate[url]; err != nil {
		return bookmark.Entry{}, err
	}
	if _, ok := d.nodes[parentID]; !ok {
		return bookmark.Entry{}, bookmark.ErrNotFound
	}
	n := &fakeNode{id: d.nextID("e"), parent: parentID, title: title, url: url}
	d.add(parentID, n)
	d.history = append(d.history, fakeCall{op: "CreateItem", parent: parentID, id: n.id})
	return bookmark.Entry{EntryID: n.id, ParentFolderID: parentID, Title: title, Link: url}, nil
}

func (d *fakeDest) UpdateItem(ctx context.Context, id string, changes bookmark.ItemChanges) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls["UpdateItem"]++
	n, ok := d.nodes[id]
	if !ok {
		return bookmark.ErrNotFound
	}
	n.title = changes.Title
	return nil
}

func (d *fakeDest) MoveItem(ctx context.Context, id, parentID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls["MoveItem"]++
	if d.failMove != nil {
		return d.failMove
	}
	n, ok := d.nodes[id]
	if !ok {
		return bookmark.ErrNotFound
	}
	d.detach(id)
	n.parent = parentID
	d.children[parentID] = append(d.children[parentID], id)
	return nil
}

func (d *fakeDest) RemoveItem(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls["RemoveItem"]++
	if err := d.failRemove[id]; err != nil {
		return err
	}
	if _, ok := d.nodes[id]; !ok {
		return bookmark.ErrNotFound
	}
	d.detach(id)
	delete(d.nodes, id)
	return nil
}

func (d *fakeDest) RemoveSubtree(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls["RemoveSubtree"]++
	if _, ok := d.nodes[id]; !ok {
		return bookmark.ErrNotFound
	}
	d.detach(id)
	d.drop(id)
	return nil
}

func (d *fakeDest) drop(id string) {
	for _, child := range d.children[id] {
		d.drop(child)
	}
	delete(d.children, id)
	delete(d.nodes, id)
}

func (d *fakeDest) FindItemsByURL(ctx context.Context, url string) ([]bookmark.Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var found []bookmark.Entry
	d.visit("", func(n *fakeNode) {
		if !n.folder && utils.SameURL(n.url, url) {
			found = append(found, bookmark.Entry{EntryID: n.id, ParentFolderID: n.parent, Title: n.title, Link: n.url})
		}
	})
	return found, nil
}

// visit walks top-level folders and their descendants in position order.
func (d *fakeDest) visit(parent string, fn func(*fakeNode)) {
	ids := d.children[parent]
	if parent == "" {
		ids = []string{"root", "other"}
	}
	for _, id := range ids {
		n, ok := d.nodes[id]
		if !ok {
			continue
		}
		fn(n)
		d.visit(id, fn)
	}
}

func (d *fakeDest) GetFolder(ctx context.Context, id string) (bookmark.Folder, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls["GetFolder"]++
	n, ok := d.nodes[id]
	if !ok || !n.folder {
		return bookmark.Folder{}, bookmark.ErrNotFound
	}
	return bookmark.Folder{FolderID: n.id, ParentFolderID: n.parent, Title: n.title}, nil
}

func (d *fakeDest) ListChildren(ctx context.Context, folderID string) ([]tree.NodeData, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.nodes[folderID]; !ok {
		return nil, bookmark.ErrNotFound
	}
	var out []tree.NodeData
	for _, id := range d.children[folderID] {
		n := d.nodes[id]
		if n.folder {
			out = append(out, bookmark.Folder{FolderID: n.id, ParentFolderID: n.parent, Title: n.title})
		} else {
			out = append(out, bookmark.Entry{EntryID: n.id, ParentFolderID: n.parent, Title: n.title, Link: n.url})
		}
	}
	return out, nil
}

// put places a node directly, bypassing call counters.
func (d *fakeDest) put(parent string, n fakeNode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n.parent = parent
	d.add(parent, &n)
}

func (d *fakeDest) folderByTitle(parent, title string) *fakeNode {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, id := range d.children[parent] {
		if n := d.nodes[id]; n.folder && n.title == title {
			return n
		}
	}
	return nil
}

func (d *fakeDest) entries(parent string) []fakeNode {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []fakeNode
	for _, id := range d.children[parent] {
		if n := d.nodes[id]; !n.folder {
			out = append(out, *n)
		}
	}
	return out
}

func (d *fakeDest) entryByURL(parent, url string) *fakeNode {
	for _, e := range d.entries(parent) {
		if e.url == url {
			return &e
		}
	}
	return nil
}

func (d *fakeDest) urlsUnder(parent string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var urls []string
	d.visit(parent, func(n *fakeNode) {
		if !n.folder {
			urls = append(urls, n.url)
		}
	})
	return urls
}

func (d *fakeDest) callCount(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls[name]
}

func (d *fakeDest) createHistory() []fakeCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]fakeCall(nil), d.history...)
}

func (d *fakeDest) resetCalls() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = make(map[string]int)
}

// failingStore loads like a memory store and rejects saves.
type failingStore struct {
	*state.MemoryStore
}

func (failingStore) Save(context.Context, *state.SyncState) error {
	return errBoom
}

var errBoom = errors.New("boom")
