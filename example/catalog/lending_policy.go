package catalog

import (
	"time"
)

// LendingPolicy is internal configuration of the library, not a domain type: it declares no serializers.
type LendingPolicy struct {
	MaxBooksPerReader int
	LoanPeriod        time.Duration
}

// DefaultLendingPolicy returns the policy of the sample library.
func DefaultLendingPolicy() LendingPolicy {
	return LendingPolicy{
		MaxBooksPerReader: 10,
		LoanPeriod:        21 * 24 * time.Hour,
	}
}
