package resolver

import (
	"net/http"
	"net/url"
	"strings"
)

// Resolver extracts a site identifier (the subdomain label) from an inbound
// request. An empty string means the request is not a site request.
type Resolver interface {
	Resolve(r *http.Request) string
}

// reserved labels are never site names.
var reserved = map[string]bool{
	"order": true,
	"www":   true,
}

// HostResolver takes the first label of the Host header under the configured
// base domain. Requests to the bare domain or to a reserved label yield no
// identifier.
type HostResolver struct {
	BaseDomain string
}

func (h HostResolver) Resolve(r *http.Request) string {
	host := r.Host
	if i := strings.LastIndex(host, ":"); i != -1 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	host = strings.ToLower(host)

	if host == h.BaseDomain {
		return ""
	}
	if !strings.HasSuffix(host, "."+h.BaseDomain) {
		return ""
	}
	label := strings.TrimSuffix(host, "."+h.BaseDomain)
	if label == "" || strings.Contains(label, ".") || reserved[label] {
		return ""
	}
	return label
}

// QueryResolver serves local development, where no wildcard DNS exists: the
// identifier comes from a preview/sub query parameter, or from the same
// parameter in the Referer URL. Asset requests issued by a previewed page
// carry the original query string only in the referer.
type QueryResolver struct{}

var queryParams = []string{"preview", "sub"}

func (QueryResolver) Resolve(r *http.Request) string {
	for _, p := range queryParams {
		if v := r.URL.Query().Get(p); v != "" {
			return strings.ToLower(v)
		}
	}
	if ref := r.Header.Get("Referer"); ref != "" {
		if u, err := url.Parse(ref); err == nil {
			for _, p := range queryParams {
				if v := u.Query().Get(p); v != "" {
					return strings.ToLower(v)
				}
			}
		}
	}
	return ""
}

// ForMode selects the resolver configured for this deployment.
func ForMode(mode, baseDomain string) Resolver {
	if mode == "query" {
		return QueryResolver{}
	}
	return HostResolver{BaseDomain: baseDomain}
}
