package hybrid

import (
	neturl "net/url"
	"strings"
)

// SiteRule is one entry of the curated native-required list. Domain matches
// the URL hostname exactly or as a dot-boundary suffix; a non-empty
// PathPrefix additionally requires the URL path to start with it.
type SiteRule struct {
	Domain     string
	PathPrefix string
	Reason     string
}

// DefaultSiteRules returns the built-in list of sites that need a real
// browser context: DRM-protected streaming, sign-in flows, and payment
// providers that refuse to run behind the rewriting proxy.
func DefaultSiteRules() []SiteRule {
	return []SiteRule{
		{Domain: "youtube.com", Reason: "video streaming with DRM"},
		{Domain: "netflix.com", Reason: "video streaming with DRM"},
		{Domain: "hulu.com", Reason: "video streaming with DRM"},
		{Domain: "disneyplus.com", Reason: "video streaming with DRM"},
		{Domain: "spotify.com", Reason: "audio streaming with DRM"},
		{Domain: "twitch.tv", Reason: "live video streaming"},
		{Domain: "accounts.google.com", Reason: "sign-in flow requires real browser context"},
		{Domain: "login.microsoftonline.com", Reason: "sign-in flow requires real browser context"},
		{Domain: "appleid.apple.com", Reason: "sign-in flow requires real browser context"},
		{Domain: "github.com", PathPrefix: "/login", Reason: "sign-in flow requires real browser context"},
		{Domain: "paypal.com", Reason: "payment provider blocks proxied sessions"},
		{Domain: "drive.google.com", Reason: "session-bound document storage"},
	}
}

// SiteClassifier maps a URL to a "native window required" recommendation.
type SiteClassifier struct {
	rules []SiteRule
}

// NewSiteClassifier builds a classifier from the built-in rules plus any
// extra rules from configuration. Extra rules are checked first so they can
// narrow a built-in domain with a path prefix.
func NewSiteClassifier(extra ...SiteRule) *SiteClassifier {
	rules := make([]SiteRule, 0, len(extra)+12)
	rules = append(rules, extra...)
	rules = append(rules, DefaultSiteRules()...)
	return &SiteClassifier{rules: rules}
}

// Classify reports whether rawURL needs a native window. Blank URLs,
// about:blank, and anything that fails to parse classify as false: a
// malformed URL falls open to proxy mode, it never errors.
func (c *SiteClassifier) Classify(rawURL string) bool {
	_, ok := c.Match(rawURL)
	return ok
}

// Match returns the rule that makes rawURL native-required, if any.
func (c *SiteClassifier) Match(rawURL string) (SiteRule, bool) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" || trimmed == "about:blank" {
		return SiteRule{}, false
	}

	u, err := neturl.Parse(trimmed)
	if err != nil {
		return SiteRule{}, false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return SiteRule{}, false
	}

	for _, rule := range c.rules {
		if !hostMatchesDomain(host, rule.Domain) {
			continue
		}
		if rule.PathPrefix != "" && !strings.HasPrefix(u.Path, rule.PathPrefix) {
			continue
		}
		return rule, true
	}

	return SiteRule{}, false
}

// hostMatchesDomain matches exact hosts and dot-boundary subdomains, so
// "www.youtube.com" matches "youtube.com" but "notyoutube.com" does not.
func hostMatchesDomain(host, domain string) bool {
	if domain == "" {
		return false
	}
	domain = strings.ToLower(domain)
	return host == domain || strings.HasSuffix(host, "."+domain)
}
