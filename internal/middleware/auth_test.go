package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/01moynul/flower-pricing-golang/internal/auth"
	"github.com/gin-gonic/gin"
)

func newRouter(gate *auth.Gate) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(gate), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString("userEmail")})
	})
	r.GET("/restricted", AuthMiddleware(gate), RestrictedMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	gate := auth.NewGate("secret", "", []string{"owner@example.com"})
	ownerToken, err := gate.GenerateToken("owner@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	guestToken, err := gate.GenerateToken("guest@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	r := newRouter(gate)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing header", "/me", "", http.StatusUnauthorized},
		{"wrong scheme", "/me", "Token " + ownerToken, http.StatusUnauthorized},
		{"garbage token", "/me", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", "/me", "Bearer " + guestToken, http.StatusOK},
		{"restricted for guest", "/restricted", "Bearer " + guestToken, http.StatusForbidden},
		{"restricted for owner", "/restricted", "Bearer " + ownerToken, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}
