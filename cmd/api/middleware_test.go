package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		remoteAddr string
		want       string
	}{
		{"203.0.113.7:49152", "203.0.113.7"},
		{"203.0.113.7:60001", "203.0.113.7"},
		{"[2001:db8::1]:8080", "2001:db8::1"},
		{"203.0.113.7", "203.0.113.7"},
	}

	for _, tc := range tests {
		req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
		req.RemoteAddr = tc.remoteAddr
		assert.Equal(t, tc.want, clientIP(req), "remote addr %s", tc.remoteAddr)
	}
}
