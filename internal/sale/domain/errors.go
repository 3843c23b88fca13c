package domain

import "errors"

var (
	// ErrInvalidCustomer means the request's customer id is malformed or unknown
	ErrInvalidCustomer = errors.New("invalid customer")

	// ErrDuplicateLineItem means the same accessory id appears twice in one request
	ErrDuplicateLineItem = errors.New("duplicate line item")

	// ErrInvalidLineItem means a line references the wrong category or a
	// non-positive quantity
	ErrInvalidLineItem = errors.New("invalid line item")

	// ErrInsufficientStock reflects true business state and is not retryable
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrConflict means a concurrent sale won the race; the whole call may be retried
	ErrConflict = errors.New("concurrent modification conflict")

	// ErrItemVanished means a referenced item was deleted mid-transaction
	ErrItemVanished = errors.New("item vanished during transaction")

	// ErrSaleNotFound means the sale id does not resolve to a committed sale
	ErrSaleNotFound = errors.New("sale not found")
)
