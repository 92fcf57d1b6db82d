package utils

import "strings"

// NormalizeURL returns the key under which a bookmark URL is matched across trees.
//
// The input is trimmed, exactly one trailing slash is removed, and then every
// backslash and every forward slash is escaped with a backslash (backslashes
// first). Query parameter order is kept as is, so two URLs that differ only in
// query order normalize to different keys.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "/")
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "/", `\/`)
	return s
}

// SameURL reports whether two URLs normalize to the same key.
func SameURL(a, b string) bool {
	return NormalizeURL(a) == NormalizeURL(b)
}
