package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/inventory-api/internal/api/handler"
	"github.com/99minutos/inventory-api/internal/api/metrics"
	"github.com/99minutos/inventory-api/internal/core/domain"
)

// TokenResolver maps an opaque bearer token to its owner.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}

// Auth resolves the bearer token and injects the owning user into context.
// Every rejection is a 401 carrying a WWW-Authenticate challenge.
func Auth(resolver TokenResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.TokenResolutionsTotal.WithLabelValues("missing").Inc()
				return unauthorized(c, "not authenticated")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				metrics.TokenResolutionsTotal.WithLabelValues("missing").Inc()
				return unauthorized(c, "invalid authorization header")
			}

			user, err := resolver.ResolveToken(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					metrics.TokenResolutionsTotal.WithLabelValues("unauthorized").Inc()
					return unauthorized(c, "invalid or expired token")
				}
				metrics.TokenResolutionsTotal.WithLabelValues("error").Inc()
				return err
			}

			metrics.TokenResolutionsTotal.WithLabelValues("ok").Inc()
			c.Set(handler.ContextKeyUser, user)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}
