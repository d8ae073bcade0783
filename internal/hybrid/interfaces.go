package hybrid

import "context"

// WindowAPI abstracts the host OS window surface the controller drives. The
// concrete implementation (an IPC bridge into the host shell) lives outside
// this subsystem; tests substitute fakes.
type WindowAPI interface {
	CreateWindow(ctx context.Context, label, url string, bounds Bounds) error
	Navigate(ctx context.Context, label, url string) error
	CloseWindow(ctx context.Context, label string) error
	SetBounds(ctx context.Context, label string, bounds Bounds) error
	SetVisible(ctx context.Context, label string, visible bool) error
	Focus(ctx context.Context, label string) error
	WindowURL(ctx context.Context, label string) (string, error)
	WindowTitle(ctx context.Context, label string) (string, error)
	EvalScript(ctx context.Context, label, script string) error
}

// HostWindow reports the main application window's current position and
// size, used to derive overlay bounds when the caller supplies none.
type HostWindow interface {
	Geometry(ctx context.Context) (Bounds, error)
}
