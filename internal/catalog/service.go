package catalog

import (
	"context"
	"strings"

	"github.com/orinoco-shop/orinoco/internal/domain"
)

// Service is the product query surface: pure read-through to the
// catalog repository, plus image URL rewriting. The serving origin
// (scheme://host) is known only to the HTTP layer and is passed in per
// call rather than discovered here.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, cat domain.Category, origin string) ([]domain.Product, error) {
	products, err := s.repo.FindAll(ctx, cat)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Image = imageURL(origin, products[i].Image)
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, cat domain.Category, id string, origin string) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, cat, id)
	if err != nil {
		return nil, err
	}
	p.Image = imageURL(origin, p.Image)
	return p, nil
}

// imageURL turns a stored relative image path into an absolute URL
// under the /images prefix of the given origin.
func imageURL(origin, image string) string {
	if image == "" {
		return ""
	}
	return strings.TrimSuffix(origin, "/") + "/images/" + strings.TrimPrefix(image, "/")
}
