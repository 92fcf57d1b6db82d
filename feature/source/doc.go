// Package source reads bookmarks from an export file.
//
// The file lists collections and items in YAML (or JSON):
//
//	collections:
//	  - id: 1
//	    title: Reading
//	  - id: 2
//	    parent: 1
//	    title: Go
//	items:
//	  - id: 11
//	    collection: 1
//	    title: Go blog
//	    link: https://go.dev/blog
//
// Items with no collection are served as the unsorted pseudo-collection.
package source
