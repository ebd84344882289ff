package shopapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/orinoco-shop/orinoco/internal/catalog"
	"github.com/orinoco-shop/orinoco/internal/domain"
	"github.com/orinoco-shop/orinoco/internal/ordering"
)

type orderPayload struct {
	Contact  domain.Contact `json:"contact"`
	Products []string       `json:"products" validate:"required,min=1,dive,len=24,hexadecimal"`
}

// orderSummary is the placement response: the persisted order without
// its timestamps.
type orderSummary struct {
	OrderID    string             `json:"orderId"`
	Contact    domain.Contact     `json:"contact"`
	Products   []domain.OrderItem `json:"products"`
	TotalPrice float64            `json:"totalPrice"`
	Status     domain.OrderStatus `json:"status"`
}

func (h *Handler) PlaceOrder(cat domain.Category) echo.HandlerFunc {
	return func(c echo.Context) error {
		var payload orderPayload
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation failed"})
		}
		if err := c.Validate(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":   "Validation failed",
				"details": validationDetails(err),
			})
		}

		order, err := h.orders.PlaceOrder(c.Request().Context(), cat, payload.Contact, payload.Products)
		if err != nil {
			if errors.Is(err, ordering.ErrValidation) {
				return c.JSON(http.StatusBadRequest, echo.Map{
					"error":   "Validation failed",
					"details": err.Error(),
				})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error":   "There was a problem with your order!",
				"details": err.Error(),
			})
		}

		return c.JSON(http.StatusCreated, orderSummary{
			OrderID:    strconv.FormatInt(order.ID, 10),
			Contact:    order.Contact,
			Products:   order.Items,
			TotalPrice: order.TotalPrice,
			Status:     order.Status,
		})
	}
}

// validationDetails flattens validator errors into field/message pairs.
func validationDetails(err error) []echo.Map {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []echo.Map{{"message": err.Error()}}
	}
	details := make([]echo.Map, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, echo.Map{
			"field":   fe.Namespace(),
			"message": fe.Tag(),
		})
	}
	return details
}

func isNotFound(err error) bool {
	return errors.Is(err, catalog.ErrProductNotFound)
}
