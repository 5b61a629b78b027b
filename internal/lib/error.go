package lib

import (
	"errors"
	"fmt"
)

// WrapError combines a sentinel error with its cause so both can be checked
// using errors.Is
func WrapError(outer error, inner error) error {
	return &wrappedError{
		outer: outer,
		inner: inner,
	}
}

type wrappedError struct {
	outer error
	inner error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.outer, e.inner)
}

func (e *wrappedError) Is(target error) bool {
	return errors.Is(e.outer, target)
}

func (e *wrappedError) Unwrap() error {
	return e.inner
}
