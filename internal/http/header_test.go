package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		expected   string
	}{
		{
			name:       "socket peer without proxy",
			remoteAddr: "203.0.113.7:51234",
			expected:   "203.0.113.7",
		},
		{
			name:       "single forwarded entry wins",
			remoteAddr: "10.0.0.1:8080",
			forwarded:  "198.51.100.4",
			expected:   "198.51.100.4",
		},
		{
			name:       "first of forwarded chain",
			remoteAddr: "10.0.0.1:8080",
			forwarded:  "198.51.100.4, 10.0.0.2, 10.0.0.1",
			expected:   "198.51.100.4",
		},
		{
			name:       "ipv6 peer",
			remoteAddr: "[2001:db8::1]:443",
			expected:   "2001:db8::1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set(headerForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.expected, clientAddr(req))
		})
	}
}
