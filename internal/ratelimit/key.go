package ratelimit

import (
	"net/http"
	"strings"
)

// KeyFunc is a function that extracts a rate limit key from an HTTP request.
type KeyFunc func(r *http.Request) string

// IPKeyFunc returns the client IP as the rate limit key.
func IPKeyFunc(r *http.Request) string {
	return GetClientIP(r)
}

// HeaderKeyFunc returns a KeyFunc that uses a specific header value as the
// rate limit key, falling back to the client IP when the header is absent.
func HeaderKeyFunc(header string) KeyFunc {
	return func(r *http.Request) string {
		if value := r.Header.Get(header); value != "" {
			return value
		}
		return GetClientIP(r)
	}
}

// MethodPathKeyFunc combines method and path into the key.
func MethodPathKeyFunc(r *http.Request) string {
	return r.Method + ":" + r.URL.Path
}

// GetClientIP extracts the client IP from the request.
func GetClientIP(r *http.Request) string {
	// Check X-Forwarded-For header
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}

	// Remove brackets from IPv6 addresses
	ip = strings.TrimPrefix(ip, "[")
	ip = strings.TrimSuffix(ip, "]")

	return ip
}
