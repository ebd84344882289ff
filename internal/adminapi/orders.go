package adminapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/orinoco-shop/orinoco/internal/domain"
	"github.com/orinoco-shop/orinoco/internal/ordering"
	"github.com/orinoco-shop/orinoco/internal/webserver"
)

// OrderAdminService is the order management surface consumed by the
// admin handlers.
type OrderAdminService interface {
	ListOrders(ctx context.Context, status domain.OrderStatus, page, pageSize int) ([]domain.Order, *ordering.Pagination, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*domain.OrderStats, error)
}

type Handler struct {
	orders OrderAdminService
}

func NewHandler(orders OrderAdminService) *Handler {
	return &Handler{orders: orders}
}

// InitRouter registers the admin order endpoints. The webserver mounts
// this group behind JWT with the admin role.
func InitRouter(orders OrderAdminService) {
	h := NewHandler(orders)
	webserver.ApiGET("/orders", h.ListOrders)
	webserver.ApiGET("/orders/:id", h.GetOrder)
	webserver.ApiPATCH("/orders/:id/status", h.UpdateStatus)
	webserver.ApiDELETE("/orders/:id", h.DeleteOrder)
	webserver.ApiGET("/stats", h.Stats)
}

func (h *Handler) ListOrders(c echo.Context) error {
	page, pageSize := parsePagination(c)
	status := domain.OrderStatus(c.QueryParam("status"))

	orders, pagination, err := h.orders.ListOrders(c.Request().Context(), status, page, pageSize)
	if err != nil {
		if errors.Is(err, ordering.ErrValidation) {
			return fail(c, http.StatusBadRequest, "Validation failed", err.Error())
		}
		return fail(c, http.StatusInternalServerError, "Failed to retrieve orders", err.Error())
	}
	return paged(c, orders, pagination)
}

func (h *Handler) GetOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid order ID", nil)
	}
	order, err := h.orders.GetOrder(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ordering.ErrOrderNotFound) {
			return fail(c, http.StatusNotFound, "Order not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "Failed to retrieve order", err.Error())
	}
	return ok(c, order)
}

type statusPayload struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid order ID", nil)
	}
	var payload statusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Validation failed", err.Error())
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), id, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, ordering.ErrValidation):
			return fail(c, http.StatusBadRequest, "Validation failed", err.Error())
		case errors.Is(err, ordering.ErrOrderNotFound):
			return fail(c, http.StatusNotFound, "Order not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "Failed to update order status", err.Error())
	}
	return ok(c, echo.Map{
		"message": "Order status updated",
		"order":   order,
	})
}

func (h *Handler) DeleteOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid order ID", nil)
	}
	if err := h.orders.DeleteOrder(c.Request().Context(), id); err != nil {
		if errors.Is(err, ordering.ErrOrderNotFound) {
			return fail(c, http.StatusNotFound, "Order not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "Failed to delete order", err.Error())
	}
	return ok(c, echo.Map{
		"message": "Order deleted successfully",
		"orderId": c.Param("id"),
	})
}
