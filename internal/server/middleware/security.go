package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// SecurityConfig holds configuration for the security headers middleware.
type SecurityConfig struct {
	// HSTS configuration
	HSTSEnabled           bool
	HSTSMaxAge            int
	HSTSIncludeSubDomains bool

	// Content Security Policy
	ContentSecurityPolicy string

	// X-Frame-Options
	XFrameOptions string

	// X-Content-Type-Options
	XContentTypeOptions string

	// X-XSS-Protection
	XXSSProtection string

	// Referrer-Policy
	ReferrerPolicy string

	// Cross-Origin-Resource-Policy
	CrossOriginResourcePolicy string

	// Cache-Control for sensitive responses
	CacheControl string

	// Custom headers
	CustomHeaders map[string]string
}

// DefaultSecurityConfig returns a SecurityConfig with defaults suitable for
// a JSON API.
func DefaultSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		HSTSEnabled:               true,
		HSTSMaxAge:                31536000, // 1 year
		HSTSIncludeSubDomains:     true,
		XFrameOptions:             "DENY",
		XContentTypeOptions:       "nosniff",
		XXSSProtection:            "1; mode=block",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginResourcePolicy: "same-origin",
		CacheControl:              "no-store",
	}
}

// SecurityHeaders returns a middleware that adds default security headers.
func SecurityHeaders() gin.HandlerFunc {
	return SecurityHeadersWithConfig(DefaultSecurityConfig())
}

// SecurityHeadersWithConfig returns a security headers middleware with
// custom configuration.
func SecurityHeadersWithConfig(config *SecurityConfig) gin.HandlerFunc {
	if config == nil {
		config = DefaultSecurityConfig()
	}

	// Pre-compute HSTS header value
	var hstsValue string
	if config.HSTSEnabled {
		hstsValue = fmt.Sprintf("max-age=%d", config.HSTSMaxAge)
		if config.HSTSIncludeSubDomains {
			hstsValue += "; includeSubDomains"
		}
	}

	return func(c *gin.Context) {
		if hstsValue != "" {
			c.Header("Strict-Transport-Security", hstsValue)
		}

		if config.ContentSecurityPolicy != "" {
			c.Header("Content-Security-Policy", config.ContentSecurityPolicy)
		}

		if config.XFrameOptions != "" {
			c.Header("X-Frame-Options", config.XFrameOptions)
		}

		if config.XContentTypeOptions != "" {
			c.Header("X-Content-Type-Options", config.XContentTypeOptions)
		}

		if config.XXSSProtection != "" {
			c.Header("X-XSS-Protection", config.XXSSProtection)
		}

		if config.ReferrerPolicy != "" {
			c.Header("Referrer-Policy", config.ReferrerPolicy)
		}

		if config.CrossOriginResourcePolicy != "" {
			c.Header("Cross-Origin-Resource-Policy", config.CrossOriginResourcePolicy)
		}

		if config.CacheControl != "" {
			c.Header("Cache-Control", config.CacheControl)
		}

		for name, value := range config.CustomHeaders {
			c.Header(name, value)
		}

		c.Next()
	}
}
