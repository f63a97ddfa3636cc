package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/inventory-api/internal/core/domain"
	"github.com/99minutos/inventory-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (*domain.AccessToken, error)
}

func (s *stubAuthService) Authenticate(context.Context, string, string) (*domain.User, error) {
	panic("not used")
}

func (s *stubAuthService) CreateAccessToken(context.Context, *domain.User) (*domain.AccessToken, error) {
	panic("not used")
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.AccessToken, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ResolveToken(context.Context, string) (*domain.User, error) {
	panic("not used")
}

type stubUserService struct {
	createFn func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	listFn   func(ctx context.Context) ([]*domain.User, error)
	updateFn func(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error)
}

func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}

type stubItemService struct {
	createFn func(ctx context.Context, in ports.CreateItemInput) (*domain.Item, error)
	getFn    func(ctx context.Context, id string) (*domain.Item, error)
	listFn   func(ctx context.Context, in ports.ListItemsInput) ([]*domain.Item, error)
	updateFn func(ctx context.Context, id string, in ports.UpdateItemInput) (*domain.Item, error)
}

func (s *stubItemService) Create(ctx context.Context, in ports.CreateItemInput) (*domain.Item, error) {
	return s.createFn(ctx, in)
}

func (s *stubItemService) Get(ctx context.Context, id string) (*domain.Item, error) {
	return s.getFn(ctx, id)
}

func (s *stubItemService) List(ctx context.Context, in ports.ListItemsInput) ([]*domain.Item, error) {
	return s.listFn(ctx, in)
}

func (s *stubItemService) Update(ctx context.Context, id string, in ports.UpdateItemInput) (*domain.Item, error) {
	return s.updateFn(ctx, id, in)
}

// newContext builds an echo context with the validator installed.
func newContext(method, target string, body io.Reader, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
