package destination

import (
	"time"

	"bookmark-sync/core/bookmark"
	"bookmark-sync/core/tree"
	"bookmark-sync/core/utils"
)

// Node is one row of the local bookmark tree. Folders have no URL.
type Node struct {
	ID        string    `gorm:"column:id;primaryKey;size:36"`
	ParentID  string    `gorm:"column:parent_id;size:36;index"`
	Title     string    `gorm:"column:title;size:512"`
	URL       string    `gorm:"column:url;type:text"`
	URLKey    string    `gorm:"column:url_key;size:32;index"`
	IsFolder  bool      `gorm:"column:is_folder"`
	Position  int       `gorm:"column:position"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (Node) TableName() string {
	return "bookmark_nodes"
}

// Columns lists the columns VerifySchema expects.
var Columns = []string{"id", "parent_id", "title", "url", "url_key", "is_folder", "position", "created_at", "updated_at"}

// urlKey indexes a URL by its normalized form so lookups ignore a trailing
// slash and surrounding whitespace.
func urlKey(url string) string {
	return utils.Fingerprint(utils.NormalizeURL(url))
}

func (n Node) folder() bookmark.Folder {
	return bookmark.Folder{FolderID: n.ID, ParentFolderID: n.ParentID, Title: n.Title}
}

func (n Node) entry() bookmark.Entry {
	return bookmark.Entry{EntryID: n.ID, ParentFolderID: n.ParentID, Title: n.Title, Link: n.URL}
}

func (n Node) nodeData() tree.NodeData {
	if n.IsFolder {
		return n.folder()
	}
	return n.entry()
}
