package ordering

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/orinoco-shop/orinoco/internal/domain"
)

var (
	// ErrValidation marks input rejected before any repository access.
	ErrValidation = errors.New("validation failed")

	// ErrOrderNotFound is returned when an order id matches no record.
	ErrOrderNotFound = errors.New("order not found")
)

// ResolutionError reports the identifier that could not be resolved
// during order assembly. The whole placement fails; nothing is written.
type ResolutionError struct {
	Category  domain.Category
	ProductID string
	Err       error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Category, e.ProductID)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
