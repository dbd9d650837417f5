package tests

import (
	"net/http/httptest"
	"testing"

	"loveplanet/site-svc/internal/resolver"

	"github.com/stretchr/testify/assert"
)

func TestHostResolver(t *testing.T) {
	res := resolver.HostResolver{BaseDomain: "inanhxink.com"}

	tests := []struct {
		name string
		host string
		want string
	}{
		{"single label subdomain", "abc123.inanhxink.com", "abc123"},
		{"host with port stripped", "abc123.inanhxink.com:8082", "abc123"},
		{"uppercase host normalized", "ABC123.INANHXINK.COM", "abc123"},
		{"bare domain", "inanhxink.com", ""},
		{"reserved order label", "order.inanhxink.com", ""},
		{"reserved www label", "www.inanhxink.com", ""},
		{"nested labels rejected", "a.b.inanhxink.com", ""},
		{"unrelated domain", "abc123.example.com", ""},
		{"suffix without dot", "evilinanhxink.com", ""},
		{"empty label", ".inanhxink.com", ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "http://"+testCase.host+"/", nil)
			r.Host = testCase.host
			assert.Equal(t, testCase.want, res.Resolve(r))
		})
	}
}

func TestQueryResolver(t *testing.T) {
	res := resolver.QueryResolver{}

	tests := []struct {
		name    string
		url     string
		referer string
		want    string
	}{
		{"preview param", "http://localhost:8082/?preview=abc123", "", "abc123"},
		{"sub param", "http://localhost:8082/?sub=abc123", "", "abc123"},
		{"preview wins over sub", "http://localhost:8082/?preview=first&sub=second", "", "first"},
		{"uppercase normalized", "http://localhost:8082/?preview=ABC123", "", "abc123"},
		{"asset request falls back to referer", "http://localhost:8082/js/main.js", "http://localhost:8082/?preview=abc123", "abc123"},
		{"referer without param", "http://localhost:8082/js/main.js", "http://localhost:8082/", ""},
		{"malformed referer ignored", "http://localhost:8082/js/main.js", "::bad::", ""},
		{"no identifier", "http://localhost:8082/", "", ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", testCase.url, nil)
			if testCase.referer != "" {
				r.Header.Set("Referer", testCase.referer)
			}
			assert.Equal(t, testCase.want, res.Resolve(r))
		})
	}
}

func TestForMode(t *testing.T) {
	assert.IsType(t, resolver.QueryResolver{}, resolver.ForMode("query", "inanhxink.com"))
	assert.IsType(t, resolver.HostResolver{}, resolver.ForMode("host", "inanhxink.com"))
	assert.IsType(t, resolver.HostResolver{}, resolver.ForMode("", "inanhxink.com"))
}
