package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is the umbrella for lookups the caller should render as
// "not found" rather than treat as a fault.
var ErrNotFound = errors.New("not found")

// A product can be missing from either table independently; both cases
// match errors.Is(err, ErrNotFound).
var (
	ErrNoReviews   = fmt.Errorf("%w: no reviews for product", ErrNotFound)
	ErrNoAggregate = fmt.Errorf("%w: no rating information for product", ErrNotFound)
)
