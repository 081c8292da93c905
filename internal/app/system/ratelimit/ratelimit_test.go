package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/carpoolhub/internal/app/system/auth"
	"github.com/dalemusser/carpoolhub/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestLimiter_Allow(t *testing.T) {
	c := &clock{t: time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)}
	l := ratelimit.New(2, time.Minute)
	l.SetNow(c.now)

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two requests should be allowed")
	}
	if l.Allow("a") {
		t.Error("third request in the window should be limited")
	}
	if !l.Allow("b") {
		t.Error("other keys have their own window")
	}

	if got := l.RetryAfter("a"); got != time.Minute {
		t.Errorf("RetryAfter: got %v, want %v", got, time.Minute)
	}

	c.t = c.t.Add(time.Minute)
	if !l.Allow("a") {
		t.Error("window should reset after its duration")
	}
}

func TestLimiter_RetryAfterUnknownKey(t *testing.T) {
	l := ratelimit.New(1, time.Minute)
	if got := l.RetryAfter("nobody"); got != 0 {
		t.Errorf("RetryAfter: got %v, want 0", got)
	}
}

func TestMiddleware(t *testing.T) {
	l := ratelimit.New(1, time.Minute)
	handler := l.Middleware("send", zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	signedIn := func() *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/messages/x", nil)
		return auth.WithTestUser(r, &auth.SessionUser{ID: "u1"})
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, signedIn())
	if rec.Code != http.StatusCreated {
		t.Fatalf("first: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, signedIn())
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second: got %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}

	// Anonymous callers are keyed separately by IP.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/messages/x", nil))
	if rec.Code != http.StatusCreated {
		t.Errorf("anonymous: got %d", rec.Code)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		req  func() *http.Request
		want string
	}{
		{"signed in", func() *http.Request {
			return auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: "abc"})
		}, "user:abc"},
		{"forwarded", func() *http.Request {
			r := httptest.NewRequest("GET", "/", nil)
			r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
			return r
		}, "ip:203.0.113.7"},
		{"real ip", func() *http.Request {
			r := httptest.NewRequest("GET", "/", nil)
			r.Header.Set("X-Real-IP", " 198.51.100.2 ")
			return r
		}, "ip:198.51.100.2"},
		{"remote addr", func() *http.Request {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = "192.0.2.9:5555"
			return r
		}, "ip:192.0.2.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ratelimit.Key(tt.req()); got != tt.want {
				t.Errorf("Key: got %q, want %q", got, tt.want)
			}
		})
	}
}
