// Package ids generates opaque identifiers for entities the kernel itself
// creates at runtime (purchase order lines, and restaurants added to a
// simulation without an explicit id). Catalog-seeded entities keep their
// caller-supplied ids verbatim; this package is never consulted for those.
package ids

import "github.com/google/uuid"

// New returns a fresh random identifier string.
func New() string {
	return uuid.NewString()
}

// NewPrefixed returns a fresh identifier with a human-readable prefix,
// e.g. "po_" for purchase orders.
func NewPrefixed(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
