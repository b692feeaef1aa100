package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestDefaultSecurityConfig(t *testing.T) {
	config := DefaultSecurityConfig()

	assert.True(t, config.HSTSEnabled)
	assert.Equal(t, 31536000, config.HSTSMaxAge)
	assert.True(t, config.HSTSIncludeSubDomains)
	assert.Equal(t, "DENY", config.XFrameOptions)
	assert.Equal(t, "nosniff", config.XContentTypeOptions)
	assert.Equal(t, "1; mode=block", config.XXSSProtection)
	assert.Equal(t, "strict-origin-when-cross-origin", config.ReferrerPolicy)
	assert.Equal(t, "same-origin", config.CrossOriginResourcePolicy)
	assert.Equal(t, "no-store", config.CacheControl)
}

func TestSecurityHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(SecurityHeaders())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Strict-Transport-Security"), "max-age=31536000")
	assert.Contains(t, w.Header().Get("Strict-Transport-Security"), "includeSubDomains")
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestSecurityHeadersWithConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		config          *SecurityConfig
		expectedHeaders map[string]string
		absentHeaders   []string
	}{
		{
			name:   "nil config uses defaults",
			config: nil,
			expectedHeaders: map[string]string{
				"X-Frame-Options":        "DENY",
				"X-Content-Type-Options": "nosniff",
			},
		},
		{
			name: "custom HSTS without subdomains",
			config: &SecurityConfig{
				HSTSEnabled: true,
				HSTSMaxAge:  86400,
			},
			expectedHeaders: map[string]string{
				"Strict-Transport-Security": "max-age=86400",
			},
		},
		{
			name:          "HSTS disabled",
			config:        &SecurityConfig{},
			absentHeaders: []string{"Strict-Transport-Security"},
		},
		{
			name: "custom CSP",
			config: &SecurityConfig{
				ContentSecurityPolicy: "default-src 'none'",
			},
			expectedHeaders: map[string]string{
				"Content-Security-Policy": "default-src 'none'",
			},
		},
		{
			name: "custom headers",
			config: &SecurityConfig{
				CustomHeaders: map[string]string{
					"X-Custom-Header": "custom-value",
				},
			},
			expectedHeaders: map[string]string{
				"X-Custom-Header": "custom-value",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(SecurityHeadersWithConfig(tt.config))
			router.GET("/test", func(c *gin.Context) {
				c.String(http.StatusOK, "OK")
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			for name, value := range tt.expectedHeaders {
				assert.Equal(t, value, w.Header().Get(name), name)
			}
			for _, name := range tt.absentHeaders {
				assert.Empty(t, w.Header().Get(name), name)
			}
		})
	}
}
