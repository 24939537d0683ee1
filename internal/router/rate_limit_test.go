package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/khoborpatra/khoborpatra/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

func rateLimitTestRouter(store ratelimit.Store, rule RateLimitRule) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(store, rule, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRateLimitMiddlewareWithoutStore(t *testing.T) {
	r := rateLimitTestRouter(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("nil store should never limit, got %d on request %d", w.Code, i+1)
		}
	}
}

func TestRateLimitMiddlewareBlocksOverBudget(t *testing.T) {
	r := rateLimitTestRouter(ratelimit.NewMemoryStore(), RateLimitRule{
		Prefix:        "test:rate",
		WindowSeconds: 60,
		MaxRequests:   2,
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "9.9.9.9:1000"
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d should pass, got %d", i+1, w.Code)
		}
		if got := w.Header().Get("X-RateLimit-Limit"); got != "2" {
			t.Fatalf("limit header want 2 got %s", got)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "9.9.9.9:1000"
	r.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("third request should be limited, got %d", w.Code)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Fatalf("remaining header want 0 got %s", got)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatalf("limited response should carry Retry-After")
	}
}

func TestRateLimitMiddlewareKeysByClient(t *testing.T) {
	r := rateLimitTestRouter(ratelimit.NewMemoryStore(), RateLimitRule{
		Prefix:        "test:rate",
		WindowSeconds: 60,
		MaxRequests:   1,
	})

	first := httptest.NewRecorder()
	reqA := httptest.NewRequest(http.MethodGet, "/ping", nil)
	reqA.RemoteAddr = "1.1.1.1:1000"
	r.ServeHTTP(first, reqA)
	if first.Code != http.StatusOK {
		t.Fatalf("first client first request should pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	reqB := httptest.NewRequest(http.MethodGet, "/ping", nil)
	reqB.RemoteAddr = "2.2.2.2:1000"
	r.ServeHTTP(second, reqB)
	if second.Code != http.StatusOK {
		t.Fatalf("other client should have its own window, got %d", second.Code)
	}
}
