package catalog

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/orinoco-shop/orinoco/internal/domain"
)

// ErrProductNotFound is returned when an identifier resolves to no
// catalog record. Repository failures are returned as-is so callers can
// tell a missing product from an unreachable store.
var ErrProductNotFound = errors.New("product not found")

// Repository reads one category's catalog. Catalogs are managed
// externally; this system never writes them.
type Repository interface {
	FindAll(ctx context.Context, cat domain.Category) ([]domain.Product, error)
	FindByID(ctx context.Context, cat domain.Category, id string) (*domain.Product, error)
}

type GormRepository struct {
	db *gorm.DB
}

var _ Repository = (*GormRepository)(nil)

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) FindAll(ctx context.Context, cat domain.Category) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Table(cat.TableName()).Order("name ASC").Find(&products).Error
	if err != nil {
		return nil, errors.Wrapf(err, "query %s catalog", cat)
	}
	return products, nil
}

func (r *GormRepository) FindByID(ctx context.Context, cat domain.Category, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Table(cat.TableName()).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrProductNotFound, "%s %s", cat, id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "query %s %s", cat, id)
	}
	return &p, nil
}
