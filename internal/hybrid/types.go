// Package hybrid implements the content-rendering coordinator that decides,
// per navigation, whether a tab renders through the local rewriting proxy or
// through an OS-native overlay window, and that owns the lifecycle of native
// windows bound to tab identifiers.
package hybrid

// Mode selects how a tab's content is rendered.
type Mode string

const (
	// ModeAuto defers the decision to the site classifier.
	ModeAuto Mode = ""
	// ModeNative renders in an OS-native overlay window.
	ModeNative Mode = "native"
	// ModeProxy renders in the embedded surface via the local proxy.
	ModeProxy Mode = "proxy"
)

// Bounds is an absolute screen rectangle in pixels.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WindowRecord tracks the native overlay window currently bound to a tab.
// A record exists exactly while the tab's mode is ModeNative.
type WindowRecord struct {
	TabID       string `json:"tab_id"`
	WindowLabel string `json:"window_label"`
	URL         string `json:"url"`
	Visible     bool   `json:"visible"`
}
