package hybrid

import (
	"errors"
	"fmt"
)

// WindowOp names a host window operation for error reporting.
type WindowOp string

const (
	OpCreate     WindowOp = "create"
	OpNavigate   WindowOp = "navigate"
	OpClose      WindowOp = "close"
	OpSetBounds  WindowOp = "set_bounds"
	OpSetVisible WindowOp = "set_visible"
	OpFocus      WindowOp = "focus"
	OpGoBack     WindowOp = "go_back"
	OpGoForward  WindowOp = "go_forward"
	OpReload     WindowOp = "reload"
	OpGetURL     WindowOp = "get_url"
	OpGetTitle   WindowOp = "get_title"
	OpEvalScript WindowOp = "eval_script"
)

// ErrNoWindow reports an operation against a tab that has no native window.
var ErrNoWindow = errors.New("no native window for tab")

// WindowError wraps a failed host window call with the attempted operation
// and the tab it targeted, so callers can branch on kind instead of message
// text.
type WindowError struct {
	Op    WindowOp
	TabID string
	Err   error
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("window %s failed for tab %q: %v", e.Op, e.TabID, e.Err)
}

func (e *WindowError) Unwrap() error {
	return e.Err
}

func newWindowError(op WindowOp, tabID string, err error) *WindowError {
	return &WindowError{Op: op, TabID: tabID, Err: err}
}

// noWindowError is the missing-record case of a window operation.
func noWindowError(op WindowOp, tabID string) *WindowError {
	return &WindowError{Op: op, TabID: tabID, Err: ErrNoWindow}
}
