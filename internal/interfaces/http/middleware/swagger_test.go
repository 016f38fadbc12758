package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newSwaggerTestRouter(cfg SwaggerConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/swagger/index.html", SwaggerProtection(cfg), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})
	return r
}

func TestSwaggerProtectionDisabled(t *testing.T) {
	r := newSwaggerTestRouter(SwaggerConfig{Enabled: false})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSwaggerProtectionEnabledNoRestrictions(t *testing.T) {
	r := newSwaggerTestRouter(SwaggerConfig{Enabled: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "docs", w.Body.String())
}

func TestSwaggerProtectionIPAllowlist(t *testing.T) {
	tests := []struct {
		name       string
		allowedIPs []string
		remoteAddr string
		wantStatus int
	}{
		{"allowed exact ip", []string{"10.1.2.3"}, "10.1.2.3:51000", http.StatusOK},
		{"allowed cidr", []string{"10.0.0.0/8"}, "10.9.8.7:51000", http.StatusOK},
		{"blocked ip", []string{"10.1.2.3"}, "192.168.1.50:51000", http.StatusForbidden},
		{"blocked outside cidr", []string{"10.0.0.0/8"}, "172.16.0.1:51000", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newSwaggerTestRouter(SwaggerConfig{Enabled: true, AllowedIPs: tt.allowedIPs})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
			req.RemoteAddr = tt.remoteAddr
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
