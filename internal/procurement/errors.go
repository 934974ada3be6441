package procurement

import "fmt"

// CatalogError reports malformed seed data discovered while building a
// purchase order: a pack size of zero, an offer with no ingredient match,
// and similar conditions the catalog itself should have rejected.
type CatalogError struct {
	Reason string
}

func (e *CatalogError) Error() string { return fmt.Sprintf("procurement: %s", e.Reason) }

func newCatalogError(format string, args ...any) error {
	return &CatalogError{Reason: fmt.Sprintf(format, args...)}
}

// ReceivingError reports a delivery that references an unknown PO line or
// an unknown ingredient.
type ReceivingError struct {
	Reason string
}

func (e *ReceivingError) Error() string { return fmt.Sprintf("procurement: %s", e.Reason) }

func newReceivingError(format string, args ...any) error {
	return &ReceivingError{Reason: fmt.Sprintf(format, args...)}
}
