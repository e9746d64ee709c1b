package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "middleware-test-secret"

func signToken(t *testing.T, claims JWTClaims, secret string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func validClaims(perms ...string) JWTClaims {
	now := time.Now()
	return JWTClaims{
		UserID:      "u-001",
		Name:        "Design Engineer",
		Email:       "design@example.com",
		Permissions: perms,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "swconnect",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func newAuthRouter(issuer string, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuth(testSecret, issuer)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(KeyUserID)})
	})
	r.GET("/p", handlers...)
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := newAuthRouter("swconnect")

	t.Run("missing token", func(t *testing.T) {
		if w := get(r, ""); w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		w := get(r, signToken(t, validClaims(), testSecret))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		if w := get(r, signToken(t, validClaims(), "other")); w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := validClaims()
		claims.Issuer = "someone-else"
		if w := get(r, signToken(t, claims, testSecret)); w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("expired", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		if w := get(r, signToken(t, claims, testSecret)); w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}

func TestRequirePermission(t *testing.T) {
	r := newAuthRouter("", RequirePermission(PermItemWrite))

	if w := get(r, signToken(t, validClaims(), testSecret)); w.Code != http.StatusForbidden {
		t.Errorf("no permissions: expected 403, got %d", w.Code)
	}
	if w := get(r, signToken(t, validClaims(PermItemWrite), testSecret)); w.Code != http.StatusOK {
		t.Errorf("item:write: expected 200, got %d", w.Code)
	}
	if w := get(r, signToken(t, validClaims(PermAll), testSecret)); w.Code != http.StatusOK {
		t.Errorf("wildcard: expected 200, got %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/p", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("expected echoed request id, got %q", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p", nil))
	if w.Body.Len() == 0 || w.Header().Get("X-Request-ID") != w.Body.String() {
		t.Errorf("expected generated request id, header=%q body=%q", w.Header().Get("X-Request-ID"), w.Body.String())
	}
}
