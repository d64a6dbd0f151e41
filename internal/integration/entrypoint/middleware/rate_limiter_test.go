// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/kakeibo-scan/backend/internal/domain/error"
	"github.com/kakeibo-scan/backend/internal/integration/entrypoint/dto"
)

func TestRateLimiterAllow(t *testing.T) {
	tests := []struct {
		name        string
		maxAttempts int
		attempts    int
		wantAllowed int
	}{
		{
			name:        "all attempts within limit",
			maxAttempts: 3,
			attempts:    3,
			wantAllowed: 3,
		},
		{
			name:        "attempts past limit are rejected",
			maxAttempts: 3,
			attempts:    5,
			wantAllowed: 3,
		},
		{
			name:        "single attempt limit",
			maxAttempts: 1,
			attempts:    4,
			wantAllowed: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiterWithConfig(tt.maxAttempts, time.Minute)

			allowed := 0
			for i := 0; i < tt.attempts; i++ {
				if rl.allow("192.0.2.1") {
					allowed++
				}
			}
			if allowed != tt.wantAllowed {
				t.Errorf("allowed %d attempts, want %d", allowed, tt.wantAllowed)
			}
		})
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiterWithConfig(1, time.Minute)

	if !rl.allow("192.0.2.1") {
		t.Fatal("first attempt for first key should be allowed")
	}
	if rl.allow("192.0.2.1") {
		t.Error("second attempt for first key should be rejected")
	}
	if !rl.allow("192.0.2.2") {
		t.Error("first attempt for second key should be allowed")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiterWithConfig(2, time.Minute)

	key := "192.0.2.1"
	rl.allow(key)
	rl.allow(key)
	if rl.allow(key) {
		t.Fatal("third attempt inside the window should be rejected")
	}

	// Expire the window instead of sleeping through it.
	rl.mu.Lock()
	rl.entries[key].resetTime = time.Now().Add(-time.Second)
	rl.mu.Unlock()

	if !rl.allow(key) {
		t.Error("attempt after window expiry should be allowed")
	}
	if !rl.allow(key) {
		t.Error("second attempt of the fresh window should be allowed")
	}
	if rl.allow(key) {
		t.Error("fresh window should enforce the limit again")
	}
}

func TestRateLimiterReset(t *testing.T) {
	rl := NewRateLimiterWithConfig(1, time.Minute)

	rl.allow("192.0.2.1")
	if rl.allow("192.0.2.1") {
		t.Fatal("limit should be hit before reset")
	}

	rl.Reset()

	if !rl.allow("192.0.2.1") {
		t.Error("attempt after Reset should be allowed")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiterWithConfig(1, time.Minute)

	rl.allow("expired")
	rl.allow("fresh")
	rl.mu.Lock()
	rl.entries["expired"].resetTime = time.Now().Add(-time.Second)
	rl.mu.Unlock()

	rl.Cleanup()

	rl.mu.Lock()
	_, expiredKept := rl.entries["expired"]
	_, freshKept := rl.entries["fresh"]
	rl.mu.Unlock()

	if expiredKept {
		t.Error("expired entry should be removed by Cleanup")
	}
	if !freshKept {
		t.Error("unexpired entry should survive Cleanup")
	}
}

func TestRateLimiterMiddlewareReturns429(t *testing.T) {
	t.Setenv("ENV", "")
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiterWithConfig(2, time.Minute)
	engine := gin.New()
	engine.POST("/scan", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/scan", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		engine.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := do(); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, w.Code, http.StatusOK)
		}
	}

	w := do()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("limited request: status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}

	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if body.Code != string(domainerror.ErrCodeScanRateLimited) {
		t.Errorf("error code = %q, want %q", body.Code, domainerror.ErrCodeScanRateLimited)
	}
}

func TestRateLimiterMiddlewareSkipsInTestEnv(t *testing.T) {
	t.Setenv("ENV", "test")
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiterWithConfig(1, time.Minute)
	engine := gin.New()
	engine.POST("/scan", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/scan", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		engine.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, w.Code, http.StatusOK)
		}
	}
}
