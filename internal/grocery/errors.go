package grocery

import "errors"

var (
	// ErrItemNotFound is the lookup-miss signal for exact item queries
	ErrItemNotFound = errors.New("grocery item not found")

	ErrInvalidCatalog = errors.New("invalid catalog")
)
