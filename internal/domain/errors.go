package domain

import "errors"

var (
	// ErrCollectionNotFound is returned when a collection is not found
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrCollectionItemNotFound is returned when a collection item is not found
	ErrCollectionItemNotFound = errors.New("collection item not found")

	// ErrOfferNotFound is returned when a collection item offer is not found
	ErrOfferNotFound = errors.New("collection item offer not found")
)
