package gateway

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spec-kit/food-delivery-platform/internal/config"
)

// Route maps a public path prefix to an upstream service. The table is
// built once at startup and read-only afterwards, so concurrent requests
// share it without locking.
type Route struct {
	// Name appears in synthesized failure bodies, e.g. "Auth service".
	Name     string
	Prefix   string
	Upstream string
	// StripPrefix removes the matched prefix before forwarding. Off by
	// default: upstreams mount their routes under the public prefix.
	StripPrefix bool
	// RetryIdempotent allows one extra attempt on transport failure. It is
	// an explicit opt-in reserved for routes whose operations are declared
	// idempotent; the default is single-attempt because a proxied POST may
	// not be safe to repeat.
	RetryIdempotent bool
}

// Table holds the immutable route table.
type Table struct {
	routes []Route
}

// NewTable validates and freezes the route set.
func NewTable(routes []Route) (*Table, error) {
	if len(routes) == 0 {
		return nil, errors.New("route table is empty")
	}
	for _, r := range routes {
		if !strings.HasPrefix(r.Prefix, "/") || strings.HasSuffix(r.Prefix, "/") {
			return nil, fmt.Errorf("route %q: prefix must start with / and not end with /", r.Name)
		}
		parsed, err := url.Parse(r.Upstream)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return nil, fmt.Errorf("route %q: invalid upstream %q", r.Name, r.Upstream)
		}
	}
	return &Table{routes: routes}, nil
}

// Match selects the route whose prefix is the longest match for the path.
func (t *Table) Match(path string) (Route, bool) {
	var best Route
	bestLen := -1
	for _, r := range t.routes {
		if path != r.Prefix && !strings.HasPrefix(path, r.Prefix+"/") {
			continue
		}
		if len(r.Prefix) > bestLen {
			best = r
			bestLen = len(r.Prefix)
		}
	}
	return best, bestLen >= 0
}

// TargetURL builds the upstream URL for a matched request.
func (r Route) TargetURL(path, rawQuery string) string {
	forwarded := path
	if r.StripPrefix {
		forwarded = strings.TrimPrefix(path, r.Prefix)
		if forwarded == "" {
			forwarded = "/"
		}
	}
	target := strings.TrimSuffix(r.Upstream, "/") + forwarded
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return target
}

// DefaultRoutes builds the platform route table from configuration.
func DefaultRoutes(cfg config.GatewayConfig) []Route {
	return []Route{
		{Name: "Auth service", Prefix: "/api/auth", Upstream: cfg.AuthServiceURL},
		{Name: "Restaurant service", Prefix: "/api/foods", Upstream: cfg.RestaurantServiceURL},
	}
}
