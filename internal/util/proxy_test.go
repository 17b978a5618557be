package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func requestTo(t *testing.T, rawURL string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, rawURL, nil)
	return req
}

func TestNewProxyFunc_ExplicitProxies(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.internal:3128", "http://sproxy.internal:3128", "")

	u, err := proxy(requestTo(t, "http://example.org/path"))
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	if u == nil || u.Host != "proxy.internal:3128" {
		t.Errorf("Expected http proxy, got %v", u)
	}

	u, err = proxy(requestTo(t, "https://example.org/path"))
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	if u == nil || u.Host != "sproxy.internal:3128" {
		t.Errorf("Expected https proxy, got %v", u)
	}
}

func TestNewProxyFunc_BypassList(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.internal:3128", "", "example.org, internal.gov")

	tests := []struct {
		url      string
		bypassed bool
	}{
		{"http://example.org/", true},
		{"http://api.example.org/", true}, // suffix match
		{"http://internal.gov/", true},
		{"http://example.com/", false},
		{"http://notexample.org.evil.net/", false},
	}

	for _, tt := range tests {
		u, err := proxy(requestTo(t, tt.url))
		if err != nil {
			t.Fatalf("proxy(%s): %v", tt.url, err)
		}
		if tt.bypassed && u != nil {
			t.Errorf("Expected %s to bypass the proxy, got %v", tt.url, u)
		}
		if !tt.bypassed && u == nil {
			t.Errorf("Expected %s to use the proxy", tt.url)
		}
	}
}
