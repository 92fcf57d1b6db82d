// Package utils provides common utility functions for the bookmark-sync application.
// It includes URL normalization, content fingerprints and other shared logic that
// doesn't fit into domain-specific packages.
package utils
