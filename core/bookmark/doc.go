// Package bookmark defines the concrete node variants that flow through the
// generic tree and reconcile machinery.
//
// The source side is made of Collections (folder-like groupings) and Items
// (URL-bearing entries). The destination side is made of Folders and Entries.
// All four satisfy tree.NodeData; nothing downstream inspects which variant it
// holds.
//
// Leaf hashes are derived from the normalized URL because the two sides use
// disjoint id spaces. Folder hashes are derived from the title.
package bookmark
