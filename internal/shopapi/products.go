package shopapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/orinoco-shop/orinoco/internal/domain"
	"github.com/orinoco-shop/orinoco/internal/webserver"
)

// CatalogService is the product query surface consumed by the public
// handlers.
type CatalogService interface {
	List(ctx context.Context, cat domain.Category, origin string) ([]domain.Product, error)
	Get(ctx context.Context, cat domain.Category, id string, origin string) (*domain.Product, error)
}

// OrderPlacer assembles and persists orders.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, cat domain.Category, contact domain.Contact, productIDs []string) (*domain.Order, error)
}

// Handler serves the public shop endpoints for every catalog category.
type Handler struct {
	catalog CatalogService
	orders  OrderPlacer
}

func NewHandler(catalogSvc CatalogService, orderSvc OrderPlacer) *Handler {
	return &Handler{catalog: catalogSvc, orders: orderSvc}
}

// InitRouter registers the shop routes: list, get and order placement
// per category.
func InitRouter(catalogSvc CatalogService, orderSvc OrderPlacer) {
	h := NewHandler(catalogSvc, orderSvc)
	for _, cat := range domain.Categories {
		base := "/" + cat.Plural()
		webserver.PubGET(base, h.ListProducts(cat))
		webserver.PubGET(base+"/:id", h.GetProduct(cat))
		webserver.PubPOST(base+"/order", h.PlaceOrder(cat))
	}
}

// requestOrigin is the scheme://host the current request arrived on,
// used to absolutize stored image paths.
func requestOrigin(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host
}

func (h *Handler) ListProducts(cat domain.Category) echo.HandlerFunc {
	return func(c echo.Context) error {
		products, err := h.catalog.List(c.Request().Context(), cat, requestOrigin(c))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Failed to retrieve " + cat.Plural(),
			})
		}
		return c.JSON(http.StatusOK, products)
	}
}

func (h *Handler) GetProduct(cat domain.Category) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		if !domain.IsProductID(id) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product ID"})
		}
		p, err := h.catalog.Get(c.Request().Context(), cat, id, requestOrigin(c))
		if err != nil {
			if isNotFound(err) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": cat.Label() + " not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to retrieve " + strings.ToLower(cat.Label()),
			})
		}
		return c.JSON(http.StatusOK, p)
	}
}
