package utils

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns the hex xxHash of the given parts, separated by NUL so
// that ("ab", "c") and ("a", "bc") differ.
func Fingerprint(parts ...string) string {
	h := xxhash.New()
	for i, part := range parts {
		if i > 0 {
			_, _ = h.Write([]byte{0})
		}
		_, _ = h.WriteString(part)
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
