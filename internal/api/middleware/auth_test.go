package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/inventory-api/internal/api/handler"
	"github.com/99minutos/inventory-api/internal/core/domain"
)

type stubResolver struct {
	resolveFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubResolver) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	return s.resolveFn(ctx, token)
}

func acceptOnly(valid string) *stubResolver {
	return &stubResolver{resolveFn: func(_ context.Context, token string) (*domain.User, error) {
		if token == valid {
			return &domain.User{ID: "u1", Email: "a@x.com"}, nil
		}
		return nil, domain.ErrUnauthorized
	}}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := Auth(acceptOnly("good-token"))(func(c echo.Context) error {
		called = true
		user, ok := c.Get(handler.ContextKeyUser).(*domain.User)
		if !ok || user.ID != "u1" {
			t.Fatalf("user not set in context: %v", c.Get(handler.ContextKeyUser))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_LowercaseScheme(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer good-token")
	c := e.NewContext(req, httptest.NewRecorder())

	h := Auth(acceptOnly("good-token"))(func(c echo.Context) error { return nil })
	if err := h(c); err != nil {
		t.Fatalf("expected lowercase scheme to be accepted, got %v", err)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic Zm9vOmJhcg=="},
		{"no token", "Bearer "},
		{"unknown token", "Bearer bad-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h := Auth(acceptOnly("good-token"))(func(c echo.Context) error {
				t.Fatal("next must not be called")
				return nil
			})

			err := h(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401 HTTPError, got %v", err)
			}
			if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
				t.Fatalf("expected WWW-Authenticate: Bearer, got %q", got)
			}
		})
	}
}

func TestAuthMiddleware_ResolverFailure(t *testing.T) {
	boom := errors.New("store down")
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer any")
	c := e.NewContext(req, httptest.NewRecorder())

	resolver := &stubResolver{resolveFn: func(context.Context, string) (*domain.User, error) {
		return nil, boom
	}}
	h := Auth(resolver)(func(c echo.Context) error { return nil })

	if err := h(c); !errors.Is(err, boom) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}
