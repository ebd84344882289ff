package ordering

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/orinoco-shop/orinoco/internal/domain"
)

// ListQuery narrows and pages an order listing. An empty Status means
// no status filter.
type ListQuery struct {
	Status   domain.OrderStatus
	Page     int
	PageSize int
}

// OrderRepository is the order store. Insert writes an order together
// with its items in one create; no other operation touches items.
type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, q ListQuery) ([]domain.Order, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, at time.Time) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*domain.OrderStats, error)
}

type GormOrderRepository struct {
	db *gorm.DB
}

var _ OrderRepository = (*GormOrderRepository)(nil)

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return errors.Wrap(err, "insert order")
	}
	return nil
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).Preload("Items", preloadItems).Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrOrderNotFound, "id %d", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "query order")
	}
	return &order, nil
}

func (r *GormOrderRepository) List(ctx context.Context, q ListQuery) ([]domain.Order, int64, error) {
	db := r.db.WithContext(ctx).Model(&domain.Order{})
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count orders")
	}

	var orders []domain.Order
	err := db.Preload("Items", preloadItems).
		Order("created_at DESC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "query orders")
	}
	return orders, total, nil
}

func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, at time.Time) (*domain.Order, error) {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": at,
		})
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "update order status")
	}
	if res.RowsAffected == 0 {
		return nil, errors.Wrapf(ErrOrderNotFound, "id %d", id)
	}
	return r.FindByID(ctx, id)
}

func (r *GormOrderRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Order{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete order")
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(ErrOrderNotFound, "id %d", id)
	}
	if err := r.db.WithContext(ctx).Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
		return errors.Wrap(err, "delete order items")
	}
	return nil
}

func (r *GormOrderRepository) Stats(ctx context.Context) (*domain.OrderStats, error) {
	stats := &domain.OrderStats{}

	err := r.db.WithContext(ctx).Model(&domain.Order{}).Count(&stats.TotalOrders).Error
	if err != nil {
		return nil, errors.Wrap(err, "count orders")
	}

	err = r.db.WithContext(ctx).Model(&domain.Order{}).
		Select("COALESCE(SUM(total_price),0)").Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, errors.Wrap(err, "sum revenue")
	}

	err = r.db.WithContext(ctx).Model(&domain.Order{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(total_price),0) as revenue").
		Group("status").
		Scan(&stats.ByStatus).Error
	if err != nil {
		return nil, errors.Wrap(err, "aggregate by status")
	}
	return stats, nil
}
