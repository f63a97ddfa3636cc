package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/inventory-api/internal/core/domain"
	"github.com/99minutos/inventory-api/internal/core/ports"
)

func TestItemHandler_List_PriceAndLimit(t *testing.T) {
	var got ports.ListItemsInput
	stub := &stubItemService{
		listFn: func(_ context.Context, in ports.ListItemsInput) ([]*domain.Item, error) {
			got = in
			return []*domain.Item{{ID: "b", Name: "Bolt", Price: 50, Stock: 1}}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/items/?price=50&limit=5", nil, "")

	if err := NewItemHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.MinPrice == nil || *got.MinPrice != 50 || got.Limit == nil || *got.Limit != 5 {
		t.Fatalf("unexpected input: %+v", got)
	}

	var items []itemResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(items) != 1 || items[0].ID != "b" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestItemHandler_List_NoFilter(t *testing.T) {
	stub := &stubItemService{
		listFn: func(_ context.Context, in ports.ListItemsInput) ([]*domain.Item, error) {
			if in.MinPrice != nil {
				t.Fatal("no price filter expected")
			}
			return nil, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/items", nil, "")

	if err := NewItemHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestItemHandler_List_BadQuery(t *testing.T) {
	for _, target := range []string{
		"/items/?price=cheap",
		"/items/?price=NaN",
		"/items/?price=Inf",
		"/items/?price=-Inf",
		"/items/?price=1&limit=many",
	} {
		c, _ := newContext(http.MethodGet, target, nil, "")
		err := NewItemHandler(&stubItemService{}).List(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %v", target, err)
		}
	}
}

func TestItemHandler_Create(t *testing.T) {
	stub := &stubItemService{
		createFn: func(_ context.Context, in ports.CreateItemInput) (*domain.Item, error) {
			return &domain.Item{ID: "i1", Name: in.Name, Description: in.Description, Price: in.Price, Stock: in.Stock}, nil
		},
	}
	body := strings.NewReader(`{"name":"Hammer","description":"steel head","price":12.5,"stock":3}`)
	c, rec := newContext(http.MethodPost, "/items/", body, echo.MIMEApplicationJSON)

	if err := NewItemHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestItemHandler_Create_OutOfRange(t *testing.T) {
	tests := []string{
		`{"name":"Hammer","price":-1,"stock":1}`,
		`{"name":"Hammer","price":1,"stock":-1}`,
		`{"name":"Hammer","price":1,"stock":10001}`,
		`{"name":"H","price":1,"stock":1}`,
	}
	for _, body := range tests {
		stub := &stubItemService{
			createFn: func(context.Context, ports.CreateItemInput) (*domain.Item, error) {
				t.Fatalf("%s: invalid item reached the service", body)
				return nil, nil
			},
		}
		c, _ := newContext(http.MethodPost, "/items/", strings.NewReader(body), echo.MIMEApplicationJSON)

		err := NewItemHandler(stub).Create(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %v", body, err)
		}
	}
}

func TestItemHandler_Update_UsesItemIDParam(t *testing.T) {
	stub := &stubItemService{
		updateFn: func(_ context.Context, id string, in ports.UpdateItemInput) (*domain.Item, error) {
			if id != "i1" {
				return nil, domain.ErrItemNotFound
			}
			if in.Stock == nil || *in.Stock != 7 || in.Name != nil || in.Price != nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Item{ID: id, Name: "Hammer", Stock: *in.Stock}, nil
		},
	}
	c, rec := newContext(http.MethodPut, "/items/i1", strings.NewReader(`{"stock":7}`), echo.MIMEApplicationJSON)
	c.SetParamNames("item_id")
	c.SetParamValues("i1")

	if err := NewItemHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestItemHandler_Get_NotFound(t *testing.T) {
	stub := &stubItemService{
		getFn: func(context.Context, string) (*domain.Item, error) { return nil, domain.ErrItemNotFound },
	}
	c, _ := newContext(http.MethodGet, "/items/ghost", nil, "")
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	if err := NewItemHandler(stub).Get(c); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}
