package storage

import "errors"

// Expected domain outcomes. Callers distinguish these with errors.Is; any
// other error from a Store means the backend itself failed and the operation
// should be treated as retryable.
var (
	ErrNotFound        = errors.New("not found")
	ErrContainerExists = errors.New("container already exists")
	ErrItemExists      = errors.New("item already exists in container")
	ErrRecipeExists    = errors.New("recipe already saved")

	ErrEmptyName        = errors.New("name cannot be empty")
	ErrInvalidQuantity  = errors.New("quantity must not be negative")
	ErrInvalidFoodGroup = errors.New("invalid food group")
)
