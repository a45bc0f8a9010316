package errors

import "fmt"

// ErrInvalidInput indicates a caller supplied a malformed value, such as a
// non-positive quantity
type ErrInvalidInput struct {
	Field  string
	Reason string
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrOutOfRange indicates an index-based cart operation referenced a
// non-existent slot
type ErrOutOfRange struct {
	Index int
	Size  int
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("index %d out of range for cart of size %d", e.Index, e.Size)
}

// ErrEmptyCart indicates checkout was attempted with no items
type ErrEmptyCart struct{}

func (e *ErrEmptyCart) Error() string {
	return "cart is empty"
}

// ErrInsufficientPayment indicates the tendered amount is below the cart total
type ErrInsufficientPayment struct {
	Total    float64
	Tendered float64
}

func (e *ErrInsufficientPayment) Error() string {
	return fmt.Sprintf("tendered %.2f is less than total %.2f", e.Tendered, e.Total)
}

// ErrPersistence indicates the persistence collaborator failed to store or
// update a record
type ErrPersistence struct {
	Op  string
	Err error
}

func (e *ErrPersistence) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *ErrPersistence) Unwrap() error {
	return e.Err
}

// ErrNotFound indicates a resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}
