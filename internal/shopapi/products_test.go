package shopapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orinoco-shop/orinoco/internal/catalog"
	"github.com/orinoco-shop/orinoco/internal/domain"
)

const (
	cam1 = "5be1ed2b1c9d440000cf315d"
	cam2 = "5beaf06a4fc1c777824537b3"
)

type structValidator struct {
	validate *validator.Validate
}

func (v *structValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &structValidator{validate: validator.New()}
	return e
}

type fakeCatalog struct {
	products map[string]domain.Product
	err      error
}

func (f *fakeCatalog) List(ctx context.Context, cat domain.Category, origin string) ([]domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Product
	for _, p := range f.products {
		p.Image = origin + "/images/" + p.Image
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalog) Get(ctx context.Context, cat domain.Category, id string, origin string) (*domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, errors.Wrapf(catalog.ErrProductNotFound, "%s %s", cat, id)
	}
	p.Image = origin + "/images/" + p.Image
	return &p, nil
}

type fakePlacer struct {
	fn func(ctx context.Context, cat domain.Category, contact domain.Contact, ids []string) (*domain.Order, error)
}

func (f *fakePlacer) PlaceOrder(ctx context.Context, cat domain.Category, contact domain.Contact, ids []string) (*domain.Order, error) {
	return f.fn(ctx, cat, contact, ids)
}

func twoCameras() *fakeCatalog {
	return &fakeCatalog{products: map[string]domain.Product{
		cam1: {ID: cam1, Name: "Konica Minolta Maxxum 5D", Price: 100, Image: "km_maxxum_5d.jpg"},
		cam2: {ID: cam2, Name: "Canon EOS 4000D", Price: 250, Image: "canon_eos_4000d.jpg"},
	}}
}

func TestListProducts(t *testing.T) {
	e := newTestEcho()
	h := NewHandler(twoCameras(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cameras", nil)
	req.Host = "shop.example.com"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListProducts(domain.CategoryCamera)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http://shop.example.com/images/km_maxxum_5d.jpg")
}

func TestListProductsRepositoryError(t *testing.T) {
	e := newTestEcho()
	h := NewHandler(&fakeCatalog{err: errors.New("connection refused")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cameras", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListProducts(domain.CategoryCamera)(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to retrieve cameras")
}

func TestGetProduct(t *testing.T) {
	e := newTestEcho()
	h := NewHandler(twoCameras(), nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(cam1)

	require.NoError(t, h.GetProduct(domain.CategoryCamera)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Konica Minolta Maxxum 5D")
}

func TestGetProductInvalidID(t *testing.T) {
	e := newTestEcho()
	h := NewHandler(twoCameras(), nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("teapot")

	require.NoError(t, h.GetProduct(domain.CategoryCamera)(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid product ID")
}

func TestGetProductNotFound(t *testing.T) {
	e := newTestEcho()
	h := NewHandler(twoCameras(), nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strings.Repeat("a", 24))

	require.NoError(t, h.GetProduct(domain.CategoryCamera)(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Camera not found")
}
