package metrics

import (
	"errors"
	"fmt"
)

var ErrDataUnavailable = errors.New("data unavailable")

// DataUnavailableError reports which read dependency failed during a snapshot load.
type DataUnavailableError struct {
	Source string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDataUnavailable, e.Source, e.Err)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

func (e *DataUnavailableError) Is(target error) bool {
	return target == ErrDataUnavailable
}
