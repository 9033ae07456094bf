package models

import "errors"

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ErrCategoryNotFound is returned when a category is not found.
var ErrCategoryNotFound = errors.New("category not found")

// ErrTagNotFound is returned when a referenced tag does not exist.
var ErrTagNotFound = errors.New("tag not found")

var (
	// ErrInvalidQuantity rejects movements with a non-positive quantity.
	ErrInvalidQuantity = errors.New("movement quantity must be a positive integer")

	// ErrInsufficientStock rejects OUT movements larger than on-hand stock.
	ErrInsufficientStock = errors.New("cannot move out more than quantity on hand")

	// ErrInvalidGroupParent rejects self-parenting and group nesting deeper
	// than one level (only header products may be parents).
	ErrInvalidGroupParent = errors.New("group parent must be a different header product")

	// ErrTransientContention is returned when a concurrent movement on the
	// same product caused a serialization conflict; the caller may retry.
	ErrTransientContention = errors.New("conflicting concurrent movement, retry")

	ErrDuplicateSKU  = errors.New("a product with this SKU already exists")
	ErrDuplicateName = errors.New("name is already taken")
	ErrCategoryInUse = errors.New("category is still referenced by products")
)
