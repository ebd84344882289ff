package ordering

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/orinoco-shop/orinoco/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Pagination is the metadata returned alongside an order page.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

// AdminService is the order management surface: listing, lookup, status
// transition, deletion and revenue aggregation. It never creates orders.
type AdminService struct {
	orders OrderRepository
}

func NewAdminService(orderRepo OrderRepository) *AdminService {
	return &AdminService{orders: orderRepo}
}

// ListOrders returns one page of orders, newest first, optionally
// filtered by status. An empty status means no filter.
func (s *AdminService) ListOrders(ctx context.Context, status domain.OrderStatus, page, pageSize int) ([]domain.Order, *Pagination, error) {
	if status != "" && !status.Valid() {
		return nil, nil, errors.Wrapf(ErrValidation, "unknown status %q", status)
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	orders, total, err := s.orders.List(ctx, ListQuery{Status: status, Page: page, PageSize: pageSize})
	if err != nil {
		return nil, nil, err
	}

	pages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		pages++
	}
	return orders, &Pagination{Total: total, Page: page, Limit: pageSize, Pages: pages}, nil
}

func (s *AdminService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// UpdateStatus moves an order to the given status and refreshes
// UpdatedAt. Any status may move to any other status.
func (s *AdminService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, errors.Wrapf(ErrValidation, "unknown status %q", status)
	}
	order, err := s.orders.UpdateStatus(ctx, id, status, time.Now())
	if err != nil {
		return nil, err
	}
	zap.L().Info("order status updated",
		zap.Int64("order_id", id),
		zap.String("status", string(status)))
	return order, nil
}

func (s *AdminService) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	zap.L().Info("order deleted", zap.Int64("order_id", id))
	return nil
}

// Stats aggregates totals and per-status counts/revenue over all
// orders, computed at request time.
func (s *AdminService) Stats(ctx context.Context) (*domain.OrderStats, error) {
	return s.orders.Stats(ctx)
}
