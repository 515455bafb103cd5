package http

import (
	"net/http"
	"strings"
)

const (
	headerRequestID   = "x-request-id"
	headerContentType = "content-type"

	// headerForwardedFor carries the original client address when the
	// service sits behind a reverse proxy.
	headerForwardedFor = "x-forwarded-for"
)

func requestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerRequestID))
}

func setRequestID(r *http.Request, requestID string) {
	r.Header.Set(headerRequestID, requestID)
}

func contentType(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerContentType))
}

// clientAddr resolves the originating client address, preferring the first
// entry of x-forwarded-for over the socket peer.
func clientAddr(r *http.Request) string {
	forwarded := strings.TrimSpace(r.Header.Get(headerForwardedFor))
	if forwarded != "" {
		if idx := strings.IndexByte(forwarded, ','); idx >= 0 {
			forwarded = forwarded[:idx]
		}
		return strings.TrimSpace(forwarded)
	}

	host := r.RemoteAddr
	if idx := strings.LastIndexByte(host, ':'); idx >= 0 {
		host = host[:idx]
	}
	return strings.Trim(host, "[]")
}
