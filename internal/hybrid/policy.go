package hybrid

import "sync/atomic"

// Policy combines the site classifier, an optional caller-forced mode, and
// the global always-embedded override into an effective rendering mode.
type Policy struct {
	alwaysEmbedded atomic.Bool
	classifier     *SiteClassifier
}

// NewPolicy creates a policy backed by classifier. When alwaysEmbedded is
// set, every decision is ModeProxy, even against an explicit forced mode.
func NewPolicy(alwaysEmbedded bool, classifier *SiteClassifier) *Policy {
	p := &Policy{classifier: classifier}
	p.alwaysEmbedded.Store(alwaysEmbedded)
	return p
}

// Decide returns the effective mode for rawURL. Precedence: global
// always-embedded override, then forced (ModeNative/ModeProxy), then the
// classifier.
func (p *Policy) Decide(rawURL string, forced Mode) Mode {
	if p.alwaysEmbedded.Load() {
		return ModeProxy
	}
	switch forced {
	case ModeNative, ModeProxy:
		return forced
	}
	if p.classifier.Classify(rawURL) {
		return ModeNative
	}
	return ModeProxy
}

// AlwaysEmbedded reports whether the global override is active.
func (p *Policy) AlwaysEmbedded() bool {
	return p.alwaysEmbedded.Load()
}

// SetAlwaysEmbedded flips the global override at runtime (config reload).
// In-flight navigations keep the mode they already decided.
func (p *Policy) SetAlwaysEmbedded(v bool) {
	p.alwaysEmbedded.Store(v)
}

// Classifier exposes the underlying site classifier for reason lookups.
func (p *Policy) Classifier() *SiteClassifier {
	return p.classifier
}
