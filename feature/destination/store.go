package destination

import (
	"context"
	"errors"
	"fmt"

	"bookmark-sync/core/bookmark"
	"bookmark-sync/core/database"
	"bookmark-sync/core/reconcile"
	"bookmark-sync/core/tree"
	"bookmark-sync/core/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrNotFolder is returned when a folder operation targets a bookmark.
	ErrNotFolder = errors.New("not a folder")
	// ErrIsFolder is returned when RemoveItem targets a folder.
	ErrIsFolder = errors.New("is a folder")
	// ErrCycle is returned when a folder would move under itself.
	ErrCycle = errors.New("folder cannot move into its own subtree")
)

// Store is a reconcile.Destination backed by the bookmark_nodes table.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the bookmark_nodes table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Node{}); err != nil {
		return fmt.Errorf("failed to migrate bookmark_nodes: %w", err)
	}
	return nil
}

// VerifySchema checks that bookmark_nodes carries every expected column.
func (s *Store) VerifySchema() error {
	missing, err := database.MissingColumns(s.db, Node{}.TableName(), Columns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("bookmark_nodes is missing columns %v", missing)
	}
	return nil
}

// EnsureRoot returns the top-level folder named title, creating it if needed.
func (s *Store) EnsureRoot(ctx context.Context, title string) (bookmark.Folder, error) {
	var node Node
	err := s.db.WithContext(ctx).
		Where("parent_id = ? AND is_folder = ? AND title = ?", "", true, title).
		Order("position").
		Take(&node).Error
	if err == nil {
		return node.folder(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return bookmark.Folder{}, fmt.Errorf("failed to query root folder: %w", err)
	}
	node, err = s.insert(ctx, Node{Title: title, IsFolder: true})
	return node.folder(), err
}

// CreateFolder implements reconcile.Destination.
func (s *Store) CreateFolder(ctx context.Context, parentID, title string) (bookmark.Folder, error) {
	if _, err := s.GetFolder(ctx, parentID); err != nil {
		return bookmark.Folder{}, err
	}
	node, err := s.insert(ctx, Node{ParentID: parentID, Title: title, IsFolder: true})
	if err != nil {
		return bookmark.Folder{}, err
	}
	return node.folder(), nil
}

// CreateItem implements reconcile.Destination.
func (s *Store) CreateItem(ctx context.Context, parentID, title, url string) (bookmark.Entry, error) {
	if _, err := s.GetFolder(ctx, parentID); err != nil {
		return bookmark.Entry{}, err
	}
	node, err := s.insert(ctx, Node{ParentID: parentID, Title: title, URL: url, URLKey: urlKey(url)})
	if err != nil {
		return bookmark.Entry{}, err
	}
	return node.entry(), nil
}

func (s *Store) insert(ctx context.Context, node Node) (Node, error) {
	node.ID = uuid.NewString()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pos, err := nextPosition(tx, node.ParentID)
		if err != nil {
			return err
		}
		node.Position = pos
		return tx.Create(&node).Error
	})
	if err != nil {
		return Node{}, fmt.Errorf("failed to insert %q: %w", node.Title, err)
	}
	return node, nil
}

func nextPosition(tx *gorm.DB, parentID string) (int, error) {
	var next int
	err := tx.Model(&Node{}).
		Where("parent_id = ?", parentID).
		Select("COALESCE(MAX(position) + 1, 0)").
		Scan(&next).Error
	return next, err
}

// UpdateItem implements reconcile.Destination. It renames bookmarks and
// folders alike.
func (s *Store) UpdateItem(ctx context.Context, id string, changes bookmark.ItemChanges) error {
	node, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(&node).Update("title", changes.Title).Error; err != nil {
		return fmt.Errorf("failed to update %s: %w", id, err)
	}
	return nil
}

// MoveItem implements reconcile.Destination. The node is appended to the end
// of its new parent.
func (s *Store) MoveItem(ctx context.Context, id, parentID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		node, err := getNode(tx, id)
		if err != nil {
			return err
		}
		parent, err := getNode(tx, parentID)
		if err != nil {
			return err
		}
		if !parent.IsFolder {
			return fmt.Errorf("failed to move %s under %s: %w", id, parentID, ErrNotFolder)
		}
		if node.IsFolder {
			if err := checkAncestors(tx, parent, node.ID); err != nil {
				return fmt.Errorf("failed to move %s under %s: %w", id, parentID, err)
			}
		}
		pos, err := nextPosition(tx, parentID)
		if err != nil {
			return err
		}
		return tx.Model(&node).Updates(map[string]any{"parent_id": parentID, "position": pos}).Error
	})
}

// checkAncestors fails with ErrCycle if id is folder or one of its ancestors.
func checkAncestors(tx *gorm.DB, folder Node, id string) error {
	seen := make(map[string]struct{})
	for cur := folder; ; {
		if cur.ID == id {
			return ErrCycle
		}
		if _, loop := seen[cur.ID]; loop || cur.ParentID == "" {
			return nil
		}
		seen[cur.ID] = struct{}{}
		next, err := getNode(tx, cur.ParentID)
		if err != nil {
			return err
		}
		cur = next
	}
}

// RemoveItem implements reconcile.Destination. Folders must go through
// RemoveSubtree.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	node, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if node.IsFolder {
		return fmt.Errorf("failed to remove %s: %w", id, ErrIsFolder)
	}
	if err := s.db.WithContext(ctx).Delete(&Node{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to remove %s: %w", id, err)
	}
	return nil
}

// RemoveSubtree implements reconcile.Destination. The node and all of its
// descendants are deleted in one transaction.
func (s *Store) RemoveSubtree(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getNode(tx, id); err != nil {
			return err
		}
		ids := []string{id}
		frontier := []string{id}
		for len(frontier) > 0 {
			var children []string
			if err := tx.Model(&Node{}).Where("parent_id IN ?", frontier).Pluck("id", &children).Error; err != nil {
				return fmt.Errorf("failed to list descendants of %s: %w", id, err)
			}
			ids = append(ids, children...)
			frontier = children
		}
		if err := tx.Delete(&Node{}, "id IN ?", ids).Error; err != nil {
			return fmt.Errorf("failed to remove subtree %s: %w", id, err)
		}
		return nil
	})
}

// FindItemsByURL implements reconcile.Destination. The url_key index narrows
// the candidates; the stored URL decides the match.
func (s *Store) FindItemsByURL(ctx context.Context, url string) ([]bookmark.Entry, error) {
	var nodes []Node
	err := s.db.WithContext(ctx).
		Where("url_key = ? AND is_folder = ?", urlKey(url), false).
		Order("created_at, id").
		Find(&nodes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find bookmarks for %s: %w", url, err)
	}
	entries := make([]bookmark.Entry, 0, len(nodes))
	for _, n := range nodes {
		if !utils.SameURL(n.URL, url) {
			continue
		}
		entries = append(entries, n.entry())
	}
	return entries, nil
}

// GetFolder implements reconcile.Destination.
func (s *Store) GetFolder(ctx context.Context, id string) (bookmark.Folder, error) {
	node, err := s.get(ctx, id)
	if err != nil {
		return bookmark.Folder{}, err
	}
	if !node.IsFolder {
		return bookmark.Folder{}, fmt.Errorf("%s: %w: %w", id, ErrNotFolder, bookmark.ErrNotFound)
	}
	return node.folder(), nil
}

// ListChildren implements reconcile.Destination. Children come back in
// position order.
func (s *Store) ListChildren(ctx context.Context, folderID string) ([]tree.NodeData, error) {
	if _, err := s.GetFolder(ctx, folderID); err != nil {
		return nil, err
	}
	var nodes []Node
	err := s.db.WithContext(ctx).
		Where("parent_id = ?", folderID).
		Order("position, created_at").
		Find(&nodes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list children of %s: %w", folderID, err)
	}
	children := make([]tree.NodeData, 0, len(nodes))
	for _, n := range nodes {
		children = append(children, n.nodeData())
	}
	return children, nil
}

func (s *Store) get(ctx context.Context, id string) (Node, error) {
	return getNode(s.db.WithContext(ctx), id)
}

func getNode(db *gorm.DB, id string) (Node, error) {
	var node Node
	if err := db.Where("id = ?", id).Take(&node).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Node{}, fmt.Errorf("%s: %w", id, bookmark.ErrNotFound)
		}
		return Node{}, fmt.Errorf("failed to get %s: %w", id, err)
	}
	return node, nil
}

var _ reconcile.Destination = (*Store)(nil)
