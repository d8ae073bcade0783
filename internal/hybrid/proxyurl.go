package hybrid

import (
	"fmt"
	neturl "net/url"
	"strings"
)

// BuildProxyURL rewrites target so the embedded surface loads it through the
// local proxy: http://127.0.0.1:{port}/proxy?url={encoded}. The url query
// parameter decodes back to target byte-for-byte, including for targets
// containing '?', '&', '#', spaces, and non-ASCII characters.
//
// Spaces encode as %20, never '+': the proxy decodes strictly per RFC 3986
// and would pass a literal '+' through unchanged.
func BuildProxyURL(target string, port int) string {
	escaped := strings.ReplaceAll(neturl.QueryEscape(target), "+", "%20")
	return fmt.Sprintf("http://127.0.0.1:%d/proxy?url=%s", port, escaped)
}
