package render

import (
	"errors"
	"fmt"
)

var ErrRender = errors.New("render failed")

// RenderError marks a document that could not be turned into output. Stage
// names the step that failed (validate, decode, execute, export).
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrRender, e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}
