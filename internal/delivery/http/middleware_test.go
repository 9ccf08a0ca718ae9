package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		allowed []string
		want    bool
	}{
		{"exact match", "https://app.example.com", []string{"https://app.example.com"}, true},
		{"exact mismatch", "https://evil.example.com", []string{"https://app.example.com"}, false},
		{"wildcard all", "https://anywhere.test", []string{"*"}, true},
		{"wildcard prefix match", "https://app.example.com", []string{"https://app.*"}, true},
		{"wildcard prefix mismatch", "https://other.test", []string{"https://app.*"}, false},
		{"empty allow list", "https://app.example.com", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isAllowedOrigin(tt.origin, tt.allowed); got != tt.want {
				t.Errorf("isAllowedOrigin(%q, %v) = %v, want %v", tt.origin, tt.allowed, got, tt.want)
			}
		})
	}
}

func corsTestRouter(allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(CORSMiddleware(allowedOrigins))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("sets headers for allowed origin", func(t *testing.T) {
		router := corsTestRouter([]string{"https://app.example.com"})

		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
			t.Errorf("Allow-Origin = %q, want origin echoed", got)
		}
	})

	t.Run("skips headers for disallowed origin", func(t *testing.T) {
		router := corsTestRouter([]string{"https://app.example.com"})

		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Allow-Origin = %q, want empty", got)
		}
	})

	t.Run("preflight returns 204", func(t *testing.T) {
		router := corsTestRouter([]string{"*"})

		req, _ := http.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "https://anywhere.test")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Status = %d, want 204", w.Code)
		}
	})
}

func TestAPIKeyAuthMiddleware(t *testing.T) {
	authRouter := func(secret string) *gin.Engine {
		router := gin.New()
		router.Use(APIKeyAuth(secret))
		router.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})
		return router
	}

	t.Run("open mode with empty secret", func(t *testing.T) {
		router := authRouter("")

		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want 200 in open mode", w.Code)
		}
	})

	t.Run("rejects missing key", func(t *testing.T) {
		router := authRouter("secret")

		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Status = %d, want 401", w.Code)
		}
	})

	t.Run("accepts correct key", func(t *testing.T) {
		router := authRouter("secret")

		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-API-Key", "secret")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want 200", w.Code)
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("disabled when limit is zero", func(t *testing.T) {
		router := gin.New()
		router.Use(RateLimitMiddleware(0))
		router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

		for i := 0; i < 50; i++ {
			req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				t.Fatalf("request %d: Status = %d, want 200", i, w.Code)
			}
		}
	})

	t.Run("throttles past the burst", func(t *testing.T) {
		router := gin.New()
		router.Use(RateLimitMiddleware(3))
		router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

		statuses := make([]int, 0, 4)
		for i := 0; i < 4; i++ {
			req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			statuses = append(statuses, w.Code)
		}

		for i := 0; i < 3; i++ {
			if statuses[i] != http.StatusOK {
				t.Errorf("request %d: Status = %d, want 200", i, statuses[i])
			}
		}
		if statuses[3] != http.StatusTooManyRequests {
			t.Errorf("request 4: Status = %d, want 429", statuses[3])
		}
	})
}
