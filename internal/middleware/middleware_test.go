package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/services"
	"github.com/Sumit-Kumar-0/whatsapp-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthenticator struct {
	tokens map[string]*models.User
	err    error
}

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.tokens[token]
	if !ok {
		return nil, jwt.ErrInvalidToken
	}
	return user, nil
}

func TestJWTAuthMiddleware(t *testing.T) {
	vendor := &models.User{ID: primitive.NewObjectID(), Role: models.RoleVendor}
	auth := stubAuthenticator{tokens: map[string]*models.User{"good": vendor}}

	tests := []struct {
		name       string
		auth       Authenticator
		header     string
		cookie     string
		wantStatus int
	}{
		{"bearer", auth, "Bearer good", "", http.StatusOK},
		{"cookie", auth, "", "good", http.StatusOK},
		{"missing", auth, "", "", http.StatusUnauthorized},
		{"wrong scheme", auth, "Basic good", "", http.StatusUnauthorized},
		{"unknown token", auth, "Bearer bad", "", http.StatusUnauthorized},
		{"expired", stubAuthenticator{err: jwt.ErrExpiredToken}, "Bearer good", "", http.StatusUnauthorized},
		{"inactive", stubAuthenticator{err: services.ErrAccountInactive}, "Bearer good", "", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID primitive.ObjectID
			r := gin.New()
			r.GET("/me", JWTAuthMiddleware(tt.auth), func(c *gin.Context) {
				gotID, _ = CurrentUserID(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("got %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && gotID != vendor.ID {
				t.Errorf("got user id %v, want %v", gotID, vendor.ID)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		role string
		want int
	}{
		{models.RoleAdmin, http.StatusOK},
		{models.RoleVendor, http.StatusForbidden},
		{"", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			r := gin.New()
			r.GET("/admin", func(c *gin.Context) {
				if tt.role != "" {
					c.Set(ContextUserRole, tt.role)
				}
			}, Authorize(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
			if w.Code != tt.want {
				t.Errorf("got %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example.com"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{"allowed origin", http.MethodGet, "https://app.example.com", http.StatusOK, "https://app.example.com"},
		{"other origin", http.MethodGet, "https://evil.example.com", http.StatusOK, ""},
		{"preflight", http.MethodOptions, "https://app.example.com", http.StatusNoContent, "https://app.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/ping", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("got %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("got allow origin %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("RequestID")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	if len(generated) != 36 || w.Body.String() != generated {
		t.Errorf("got header %q body %q", generated, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("got %q, want caller's id", got)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter("auth", 3, time.Minute)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 3; i++ {
		if code := hit("10.0.0.1"); code != http.StatusOK {
			t.Fatalf("request %d: got %d", i+1, code)
		}
	}
	if code := hit("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Fatalf("got %d, want 429", code)
	}
	if code := hit("10.0.0.2"); code != http.StatusOK {
		t.Errorf("other client got %d", code)
	}

	// one request's worth of budget refills every window/limit
	now = now.Add(20 * time.Second)
	if code := hit("10.0.0.1"); code != http.StatusOK {
		t.Errorf("after refill got %d", code)
	}
	if code := hit("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("got %d, want 429", code)
	}
}

func TestRateLimiterForgetsIdleClients(t *testing.T) {
	rl := NewRateLimiter("general", 10, time.Minute)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("a")
	now = now.Add(2 * time.Minute)
	rl.allow("b")

	if _, ok := rl.limiters["a"]; ok {
		t.Error("idle client was not swept")
	}
	if len(rl.limiters) != 1 {
		t.Errorf("got %d limiters, want 1", len(rl.limiters))
	}
}
