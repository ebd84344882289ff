package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orinoco-shop/orinoco/internal/domain"
)

// Stats answers the aggregate order view. Computed per request; a
// by-status row exists only for statuses with at least one order.
func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.orders.Stats(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to retrieve statistics", err.Error())
	}
	if stats.ByStatus == nil {
		stats.ByStatus = []domain.StatusStat{}
	}
	return ok(c, stats)
}
