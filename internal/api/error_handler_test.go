package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/99minutos/inventory-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, `{"error":"user not found"}`},
		{"item not found", fmt.Errorf("find: %w", domain.ErrItemNotFound), http.StatusNotFound, `{"error":"item not found"}`},
		{"user exists", domain.ErrUserExists, http.StatusConflict, `{"error":"user already exists"}`},
		{"item exists", domain.ErrItemExists, http.StatusConflict, `{"error":"item already exists"}`},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, `{"error":"incorrect email or password"}`},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, `{"error":"invalid or expired token"}`},
		{"validation", fmt.Errorf("%w: stock must be between 0 and 10000", domain.ErrValidation), http.StatusUnprocessableEntity, `{"error":"validation failed: stock must be between 0 and 10000"}`},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, `{"error":"invalid payload"}`},
		{"token collision", domain.ErrTokenExists, http.StatusInternalServerError, `{"error":"internal server error"}`},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			if tt.wantCode == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
