package ordering

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/orinoco-shop/orinoco/internal/catalog"
	"github.com/orinoco-shop/orinoco/internal/domain"
)

// Service assembles orders: it resolves every requested product against
// the catalog, snapshots name and price per item, and persists the
// result as a single insert. No write happens unless every resolution
// succeeds.
type Service struct {
	catalog  catalog.Repository
	orders   OrderRepository
	node     *snowflake.Node
	validate *validator.Validate
}

func NewService(catalogRepo catalog.Repository, orderRepo OrderRepository, node *snowflake.Node) *Service {
	return &Service{
		catalog:  catalogRepo,
		orders:   orderRepo,
		node:     node,
		validate: validator.New(),
	}
}

// PlaceOrder resolves productIDs concurrently against the category's
// catalog and, on full success, persists a pending order whose items
// follow the input order. Any unresolved id fails the whole call with
// zero writes.
func (s *Service) PlaceOrder(ctx context.Context, cat domain.Category, contact domain.Contact, productIDs []string) (*domain.Order, error) {
	if !cat.Valid() {
		return nil, errors.Wrapf(ErrValidation, "unknown category %q", cat)
	}
	if len(productIDs) == 0 {
		return nil, errors.Wrap(ErrValidation, "products list is empty")
	}
	for _, id := range productIDs {
		if !domain.IsProductID(id) {
			return nil, errors.Wrapf(ErrValidation, "invalid product id %q", id)
		}
	}
	if err := s.validate.Struct(contact); err != nil {
		return nil, errors.Wrap(ErrValidation, err.Error())
	}

	// Items are written by input position, never by completion order.
	items := make([]domain.OrderItem, len(productIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range productIDs {
		i, id := i, id
		g.Go(func() error {
			p, err := s.catalog.FindByID(gctx, cat, id)
			if err != nil {
				if errors.Is(err, catalog.ErrProductNotFound) {
					return &ResolutionError{Category: cat, ProductID: id, Err: err}
				}
				return err
			}
			items[i] = domain.OrderItem{
				Position:    i,
				ProductID:   p.ID,
				ProductName: p.Name,
				Price:       p.Price,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total float64
	for _, item := range items {
		total += item.Price
	}

	now := time.Now()
	order := &domain.Order{
		ID:         s.node.Generate().Int64(),
		Contact:    contact,
		Items:      items,
		TotalPrice: total,
		Status:     domain.OrderStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	zap.L().Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.String("category", string(cat)),
		zap.Int("items", len(items)),
		zap.Float64("total_price", total))
	return order, nil
}
