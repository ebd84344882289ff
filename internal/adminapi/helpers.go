package adminapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/orinoco-shop/orinoco/internal/domain"
	"github.com/orinoco-shop/orinoco/internal/ordering"
)

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func fail(c echo.Context, status int, message string, details interface{}) error {
	body := echo.Map{"error": message}
	if details != nil {
		body["details"] = details
	}
	return c.JSON(status, body)
}

func paged(c echo.Context, orders []domain.Order, p *ordering.Pagination) error {
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"orders":     orders,
		"pagination": p,
	})
}

// parsePagination reads page/limit query params with the historical
// defaults (page 1, 20 per page, 100 max).
func parsePagination(c echo.Context) (page, pageSize int) {
	page = cast.ToInt(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize = cast.ToInt(c.QueryParam("limit"))
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
}
