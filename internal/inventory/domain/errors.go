package domain

import "errors"

var (
	// ErrNotFound means the item id does not resolve to a live record
	ErrNotFound = errors.New("inventory item not found")

	// ErrInsufficientStock means quantity on hand is below the requested amount
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrVersionConflict means the stored version no longer matches the
	// caller's token; the item was mutated by a concurrent writer
	ErrVersionConflict = errors.New("version conflict")
)
