package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownFormat  = errors.New("unknown report format")
	ErrNegativeCount  = errors.New("mutant count must not be negative")
	ErrOutcomeMissing = errors.New("mutation outcome file not found")
	ErrNoPullRequest  = errors.New("pull request could not be determined")
	ErrNoToken        = errors.New("no GitHub token configured")
)

// CountError reports a count that failed validation.
type CountError struct {
	Key   string
	Value int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("%s = %d: %v", e.Key, e.Value, ErrNegativeCount)
}

func (e *CountError) Unwrap() error { return ErrNegativeCount }
