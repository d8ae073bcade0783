package hybrid

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Options configures a Coordinator at construction time.
type Options struct {
	// AlwaysEmbedded forces ModeProxy for every navigation.
	AlwaysEmbedded bool
	// ProxyPort is the port of the local rewriting proxy.
	ProxyPort int
	// ToolbarHeight is the vertical offset below the host window's top edge
	// where derived overlay bounds begin.
	ToolbarHeight int
	// ExtraSites are classifier rules merged ahead of the built-in list.
	ExtraSites []SiteRule
}

// LoadResult reports the effective mode for a navigation and the URL the
// embedding surface should load: the proxy-rewritten URL in proxy mode, the
// target itself in native mode.
type LoadResult struct {
	Mode Mode   `json:"mode"`
	URL  string `json:"url"`
}

// LoadOptions carries optional per-navigation overrides for LoadURL.
type LoadOptions struct {
	// Mode forces ModeNative or ModeProxy; ModeAuto defers to the classifier.
	Mode Mode
	// Bounds positions the overlay window; nil derives bounds from the host
	// window geometry minus the toolbar height.
	Bounds *Bounds
}

// Coordinator is the top-level state machine tying mode decisions to native
// window lifecycle transitions. It owns the authoritative tab-to-mode map;
// the registry of window records is owned by its controller. After every
// operation, a tab has a window record exactly when its recorded mode is
// ModeNative.
type Coordinator struct {
	policy     *Policy
	controller *Controller
	host       HostWindow
	log        zerolog.Logger

	proxyPort int

	mu            sync.Mutex
	toolbarHeight int
	modes         map[string]Mode
	tabLocks      map[string]*tabLock
}

// tabLock serializes operations per tab. Overlapping calls for the same tab
// queue instead of racing a create against a close; calls for different
// tabs proceed independently.
type tabLock struct {
	mu   sync.Mutex
	refs int
}

// NewCoordinator constructs the coordinator and its owned collaborators.
// One coordinator exists per application session; call Cleanup on teardown.
func NewCoordinator(api WindowAPI, host HostWindow, opts Options, log zerolog.Logger) *Coordinator {
	classifier := NewSiteClassifier(opts.ExtraSites...)
	registry := NewRegistry()

	return &Coordinator{
		policy:        NewPolicy(opts.AlwaysEmbedded, classifier),
		controller:    NewController(api, registry, log),
		host:          host,
		log:           log.With().Str("component", "hybrid-coordinator").Logger(),
		proxyPort:     opts.ProxyPort,
		toolbarHeight: opts.ToolbarHeight,
		modes:         make(map[string]Mode),
		tabLocks:      make(map[string]*tabLock),
	}
}

// Controller exposes the native window controller for pass-through
// operations not mediated by mode state (focus, script eval, title).
func (c *Coordinator) Controller() *Controller {
	return c.controller
}

// LoadURL decides the effective rendering mode for url and drives the tab
// into it. Leaving native mode closes the existing window before the new
// mode is committed. Create/navigate failures are returned with the mode map
// untouched, so the caller can retry or force ModeProxy.
func (c *Coordinator) LoadURL(ctx context.Context, tabID, url string, opts LoadOptions) (LoadResult, error) {
	unlock := c.lockTab(tabID)
	defer unlock()

	mode := c.policy.Decide(url, opts.Mode)

	c.log.Debug().
		Str("tab_id", tabID).
		Str("url", url).
		Str("mode", string(mode)).
		Msg("load url")

	prev, hadPrev := c.tabMode(tabID)
	if hadPrev && prev == ModeNative && mode != ModeNative {
		// The old window must be gone before the new mode is recorded.
		_ = c.controller.Close(ctx, tabID)
	}

	if mode == ModeProxy {
		c.setTabMode(tabID, ModeProxy)
		return LoadResult{Mode: ModeProxy, URL: BuildProxyURL(url, c.proxyPort)}, nil
	}

	if c.controller.HasWindow(tabID) {
		if err := c.controller.Navigate(ctx, tabID, url); err != nil {
			return LoadResult{}, err
		}
	} else {
		bounds, err := c.resolveBounds(ctx, tabID, opts.Bounds)
		if err != nil {
			return LoadResult{}, err
		}
		if _, err := c.controller.Create(ctx, tabID, url, bounds); err != nil {
			return LoadResult{}, err
		}
	}

	c.setTabMode(tabID, ModeNative)
	return LoadResult{Mode: ModeNative, URL: url}, nil
}

// CloseTab tears down whatever the tab currently holds: its native window in
// native mode, just the mode entry otherwise. Closing an unknown or already
// closed tab is a no-op.
func (c *Coordinator) CloseTab(ctx context.Context, tabID string) {
	unlock := c.lockTab(tabID)
	defer unlock()

	if mode, ok := c.tabMode(tabID); ok && mode == ModeNative {
		_ = c.controller.Close(ctx, tabID)
	}
	c.removeTabMode(tabID)
}

// SetTabVisible shows or hides the tab's native window. Proxy-mode tabs are
// a no-op: their visibility is owned by the embedding surface.
func (c *Coordinator) SetTabVisible(ctx context.Context, tabID string, visible bool) error {
	if !c.isNative(tabID) {
		return nil
	}
	return c.controller.SetVisible(ctx, tabID, visible)
}

// UpdateBounds re-aligns the tab's native window with a moved or resized
// host window. Proxy-mode tabs are a no-op.
func (c *Coordinator) UpdateBounds(ctx context.Context, tabID string, bounds Bounds) error {
	if !c.isNative(tabID) {
		return nil
	}
	return c.controller.SetBounds(ctx, tabID, bounds)
}

// GoBack steps the tab's native window back in history; no-op in proxy mode.
func (c *Coordinator) GoBack(ctx context.Context, tabID string) error {
	if !c.isNative(tabID) {
		return nil
	}
	return c.controller.GoBack(ctx, tabID)
}

// GoForward steps the tab's native window forward in history; no-op in
// proxy mode.
func (c *Coordinator) GoForward(ctx context.Context, tabID string) error {
	if !c.isNative(tabID) {
		return nil
	}
	return c.controller.GoForward(ctx, tabID)
}

// Reload reloads the tab's native window; no-op in proxy mode.
func (c *Coordinator) Reload(ctx context.Context, tabID string) error {
	if !c.isNative(tabID) {
		return nil
	}
	return c.controller.Reload(ctx, tabID)
}

// TabMode returns the tab's current rendering mode, if it has one.
func (c *Coordinator) TabMode(tabID string) (Mode, bool) {
	return c.tabMode(tabID)
}

// TabModes returns a snapshot of the tab-to-mode map for UI synchronization.
func (c *Coordinator) TabModes() map[string]Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := make(map[string]Mode, len(c.modes))
	for id, mode := range c.modes {
		snapshot[id] = mode
	}
	return snapshot
}

// WillUseNativeMode reports whether a plain LoadURL for url would pick
// native mode under current policy.
func (c *Coordinator) WillUseNativeMode(url string) bool {
	return c.policy.Decide(url, ModeAuto) == ModeNative
}

// NativeModeReason returns the human-readable reason url needs a native
// window, or "" when it does not (including while the always-embedded
// override is active).
func (c *Coordinator) NativeModeReason(url string) string {
	if c.policy.AlwaysEmbedded() {
		return ""
	}
	rule, ok := c.policy.Classifier().Match(url)
	if !ok {
		return ""
	}
	return rule.Reason
}

// SetAlwaysEmbedded flips the global override at runtime (config reload).
// Tabs already in native mode keep their windows until the next navigation.
func (c *Coordinator) SetAlwaysEmbedded(v bool) {
	c.policy.SetAlwaysEmbedded(v)
}

// SetToolbarHeight updates the offset used when deriving overlay bounds.
func (c *Coordinator) SetToolbarHeight(px int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toolbarHeight = px
}

// Cleanup tears the subsystem down: every native window is closed (all
// attempts settle, failures logged) and the mode map is cleared.
func (c *Coordinator) Cleanup(ctx context.Context) {
	c.controller.CloseAll(ctx)

	c.mu.Lock()
	c.modes = make(map[string]Mode)
	c.mu.Unlock()

	c.log.Info().Msg("hybrid coordinator cleaned up")
}

// resolveBounds uses caller-supplied bounds when present, otherwise derives
// them from the host window geometry minus the toolbar offset.
func (c *Coordinator) resolveBounds(ctx context.Context, tabID string, explicit *Bounds) (Bounds, error) {
	if explicit != nil {
		return *explicit, nil
	}

	geo, err := c.host.Geometry(ctx)
	if err != nil {
		return Bounds{}, newWindowError(OpCreate, tabID, err)
	}

	c.mu.Lock()
	offset := c.toolbarHeight
	c.mu.Unlock()

	height := geo.Height - offset
	if height < 0 {
		height = 0
	}
	return Bounds{
		X:      geo.X,
		Y:      geo.Y + offset,
		Width:  geo.Width,
		Height: height,
	}, nil
}

func (c *Coordinator) tabMode(tabID string) (Mode, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	mode, ok := c.modes[tabID]
	return mode, ok
}

func (c *Coordinator) setTabMode(tabID string, mode Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modes[tabID] = mode
}

func (c *Coordinator) removeTabMode(tabID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.modes, tabID)
}

func (c *Coordinator) isNative(tabID string) bool {
	mode, ok := c.tabMode(tabID)
	return ok && mode == ModeNative
}

// lockTab acquires the tab's serialization lock and returns its release
// function. Lock entries are reference counted so the map does not grow
// with every tab ever seen.
func (c *Coordinator) lockTab(tabID string) func() {
	c.mu.Lock()
	l, ok := c.tabLocks[tabID]
	if !ok {
		l = &tabLock{}
		c.tabLocks[tabID] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.tabLocks, tabID)
		}
		c.mu.Unlock()
	}
}
