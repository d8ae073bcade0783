package hybrid

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const windowLabelPrefix = "browser_"

// WindowLabel returns the host window label used for a tab's overlay window.
func WindowLabel(tabID string) string {
	return windowLabelPrefix + tabID
}

// Controller owns the lifecycle of native overlay windows and the registry
// bookkeeping that tracks them. Every operation is a round-trip into the
// host window API.
type Controller struct {
	api      WindowAPI
	registry *Registry
	log      zerolog.Logger
}

// NewController creates a controller over api using registry as its store.
func NewController(api WindowAPI, registry *Registry, log zerolog.Logger) *Controller {
	return &Controller{
		api:      api,
		registry: registry,
		log:      log.With().Str("component", "native-window").Logger(),
	}
}

// Create spawns an overlay window for the tab at bounds, navigated to url,
// and registers the resulting record. If the host call fails no record is
// kept. If the tab already has a window it is reused: navigated to url when
// that differs from what it shows, and its existing label returned.
func (c *Controller) Create(ctx context.Context, tabID, url string, bounds Bounds) (string, error) {
	if rec, ok := c.registry.Get(tabID); ok {
		c.log.Debug().Str("tab_id", tabID).Msg("window already exists")
		if url != "" && url != rec.URL {
			if err := c.Navigate(ctx, tabID, url); err != nil {
				return "", err
			}
		}
		return rec.WindowLabel, nil
	}

	label := WindowLabel(tabID)
	if err := c.api.CreateWindow(ctx, label, url, bounds); err != nil {
		return "", newWindowError(OpCreate, tabID, err)
	}

	c.registry.Set(WindowRecord{
		TabID:       tabID,
		WindowLabel: label,
		URL:         url,
		Visible:     true,
	})

	c.log.Info().
		Str("tab_id", tabID).
		Str("window", label).
		Str("url", url).
		Int("width", bounds.Width).
		Int("height", bounds.Height).
		Msg("created native window")
	return label, nil
}

// Navigate points the tab's existing window at url and updates the record.
func (c *Controller) Navigate(ctx context.Context, tabID, url string) error {
	rec, ok := c.registry.Get(tabID)
	if !ok {
		return noWindowError(OpNavigate, tabID)
	}

	if err := c.api.Navigate(ctx, rec.WindowLabel, url); err != nil {
		return newWindowError(OpNavigate, tabID, err)
	}

	rec.URL = url
	c.registry.Set(rec)
	c.log.Debug().Str("tab_id", tabID).Str("url", url).Msg("navigated native window")
	return nil
}

// Close requests disposal of the tab's window, then drops the record whether
// or not disposal succeeded. That keeps Close idempotent and guarantees the
// registry never holds entries for windows that failed to close; a failed
// host close is logged, never surfaced.
func (c *Controller) Close(ctx context.Context, tabID string) error {
	rec, ok := c.registry.Get(tabID)
	if !ok {
		return nil
	}

	err := c.api.CloseWindow(ctx, rec.WindowLabel)
	c.registry.Remove(tabID)

	if err != nil {
		c.log.Warn().
			Err(err).
			Str("tab_id", tabID).
			Str("window", rec.WindowLabel).
			Msg("native window close failed, record dropped anyway")
	} else {
		c.log.Debug().Str("tab_id", tabID).Msg("closed native window")
	}
	return nil
}

// SetBounds repositions the tab's window to an absolute screen rectangle.
func (c *Controller) SetBounds(ctx context.Context, tabID string, bounds Bounds) error {
	rec, ok := c.registry.Get(tabID)
	if !ok {
		return noWindowError(OpSetBounds, tabID)
	}
	if err := c.api.SetBounds(ctx, rec.WindowLabel, bounds); err != nil {
		return newWindowError(OpSetBounds, tabID, err)
	}
	return nil
}

// SetVisible shows or hides the tab's window and updates the record.
func (c *Controller) SetVisible(ctx context.Context, tabID string, visible bool) error {
	rec, ok := c.registry.Get(tabID)
	if !ok {
		return noWindowError(OpSetVisible, tabID)
	}
	if err := c.api.SetVisible(ctx, rec.WindowLabel, visible); err != nil {
		return newWindowError(OpSetVisible, tabID, err)
	}
	rec.Visible = visible
	c.registry.Set(rec)
	return nil
}

// Focus gives the tab's window keyboard focus.
func (c *Controller) Focus(ctx context.Context, tabID string) error {
	rec, ok := c.registry.Get(tabID)
	if !ok {
		return noWindowError(OpFocus, tabID)
	}
	if err := c.api.Focus(ctx, rec.WindowLabel); err != nil {
		return newWindowError(OpFocus, tabID, err)
	}
	return nil
}

// GoBack navigates the window one step back in its history. History is
// driven through script evaluation so session state survives the hop.
func (c *Controller) GoBack(ctx context.Context, tabID string) error {
	return c.evalHistoryOp(ctx, tabID, OpGoBack, "window.history.back();")
}

// GoForward navigates the window one step forward in its history.
func (c *Controller) GoForward(ctx context.Context, tabID string) error {
	return c.evalHistoryOp(ctx, tabID, OpGoForward, "window.history.forward();")
}

// Reload reloads the window's current page.
func (c *Controller) Reload(ctx context.Context, tabID string) error {
	return c.evalHistoryOp(ctx, tabID, OpReload, "window.location.reload();")
}

func (c *Controller) evalHistoryOp(ctx context.Context, tabID string, op WindowOp, script string) error {
	rec, ok := c.registry.Get(tabID)
	if !ok {
		return noWindowError(op, tabID)
	}
	if err := c.api.EvalScript(ctx, rec.WindowLabel, script); err != nil {
		return newWindowError(op, tabID, err)
	}
	return nil
}

// CurrentURL asks the host window for the URL it is actually showing, which
// may differ from the record after in-window navigation.
func (c *Controller) CurrentURL(ctx context.Context, tabID string) (string, error) {
	rec, ok := c.registry.Get(tabID)
	if !ok {
		return "", noWindowError(OpGetURL, tabID)
	}
	url, err := c.api.WindowURL(ctx, rec.WindowLabel)
	if err != nil {
		return "", newWindowError(OpGetURL, tabID, err)
	}
	return url, nil
}

// Title returns the window's current page title.
func (c *Controller) Title(ctx context.Context, tabID string) (string, error) {
	rec, ok := c.registry.Get(tabID)
	if !ok {
		return "", noWindowError(OpGetTitle, tabID)
	}
	title, err := c.api.WindowTitle(ctx, rec.WindowLabel)
	if err != nil {
		return "", newWindowError(OpGetTitle, tabID, err)
	}
	return title, nil
}

// EvalScript runs script in the tab's window.
func (c *Controller) EvalScript(ctx context.Context, tabID, script string) error {
	rec, ok := c.registry.Get(tabID)
	if !ok {
		return noWindowError(OpEvalScript, tabID)
	}
	if err := c.api.EvalScript(ctx, rec.WindowLabel, script); err != nil {
		return newWindowError(OpEvalScript, tabID, err)
	}
	return nil
}

// HasWindow reports whether the tab currently has a tracked window.
func (c *Controller) HasWindow(tabID string) bool {
	return c.registry.Has(tabID)
}

// Windows returns a snapshot of all tracked window records.
func (c *Controller) Windows() []WindowRecord {
	return c.registry.Records()
}

// CloseAll closes every tracked window concurrently and waits for every
// attempt to settle before returning. Close swallows host failures, so a
// window that refuses to die cannot short-circuit the join: the registry
// always ends empty.
func (c *Controller) CloseAll(ctx context.Context) {
	ids := c.registry.TabIDs()
	if len(ids) == 0 {
		return
	}

	var g errgroup.Group
	for _, tabID := range ids {
		tabID := tabID
		g.Go(func() error {
			return c.Close(ctx, tabID)
		})
	}
	// Close never returns an error; Wait is purely the fan-in point.
	_ = g.Wait()

	c.log.Info().Int("count", len(ids)).Msg("closed all native windows")
}
