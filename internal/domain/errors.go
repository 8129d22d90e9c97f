package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrNoMatch is returned when no catalog candidate clears the
	// acceptance threshold
	ErrNoMatch = errors.New("no acceptable catalog match")

	// ErrLowConfidence is returned when the best match scored below the
	// configured threshold but a result is still available for review
	ErrLowConfidence = errors.New("match score below threshold")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCatalogUnavailable is returned when the product catalog cannot
	// be reached
	ErrCatalogUnavailable = errors.New("product catalog unavailable")
)
