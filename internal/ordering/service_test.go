package ordering

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orinoco-shop/orinoco/internal/domain"
)

const (
	cam1 = "5be1ed2b1c9d440000cf315d"
	cam2 = "5beaf06a4fc1c777824537b3"
)

func testContact() domain.Contact {
	return domain.Contact{
		FirstName: "Jo",
		LastName:  "Li",
		Address:   "1 Main St",
		City:      "Springfield",
		Email:     "jo@x.com",
	}
}

func testNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func twoCameraCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		products: map[string]domain.Product{
			cam1: {ID: cam1, Name: "Konica Minolta Maxxum 5D", Price: 100},
			cam2: {ID: cam2, Name: "Canon EOS 4000D", Price: 250},
		},
	}
}

func TestPlaceOrder(t *testing.T) {
	catalogRepo := twoCameraCatalog()
	orderRepo := newFakeOrderRepo()
	svc := NewService(catalogRepo, orderRepo, testNode(t))

	order, err := svc.PlaceOrder(context.Background(), domain.CategoryCamera, testContact(), []string{cam1, cam2})
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, 350.0, order.TotalPrice)
	assert.Equal(t, "Jo", order.Contact.FirstName)
	require.Len(t, order.Items, 2)
	assert.Equal(t, cam1, order.Items[0].ProductID)
	assert.Equal(t, "Konica Minolta Maxxum 5D", order.Items[0].ProductName)
	assert.Equal(t, 100.0, order.Items[0].Price)
	assert.Equal(t, cam2, order.Items[1].ProductID)
	assert.Equal(t, 1, orderRepo.insertCount())
}

func TestPlaceOrderItemsFollowInputOrder(t *testing.T) {
	catalogRepo := twoCameraCatalog()
	// First lookup finishes last.
	catalogRepo.delays = map[string]time.Duration{cam1: 50 * time.Millisecond}
	orderRepo := newFakeOrderRepo()
	svc := NewService(catalogRepo, orderRepo, testNode(t))

	order, err := svc.PlaceOrder(context.Background(), domain.CategoryCamera, testContact(), []string{cam1, cam2})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, cam1, order.Items[0].ProductID)
	assert.Equal(t, cam2, order.Items[1].ProductID)
	assert.Equal(t, 0, order.Items[0].Position)
	assert.Equal(t, 1, order.Items[1].Position)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	catalogRepo := twoCameraCatalog()
	orderRepo := newFakeOrderRepo()
	svc := NewService(catalogRepo, orderRepo, testNode(t))

	missing := "5be9c8541c9d440000a23d81"
	order, err := svc.PlaceOrder(context.Background(), domain.CategoryCamera, testContact(), []string{cam1, missing})
	require.Error(t, err)
	assert.Nil(t, order)

	var resErr *ResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, missing, resErr.ProductID)
	assert.Equal(t, 0, orderRepo.insertCount(), "no order may be written on a failed resolution")
}

func TestPlaceOrderCatalogUnavailable(t *testing.T) {
	catalogRepo := twoCameraCatalog()
	catalogRepo.err = errors.New("connection refused")
	orderRepo := newFakeOrderRepo()
	svc := NewService(catalogRepo, orderRepo, testNode(t))

	_, err := svc.PlaceOrder(context.Background(), domain.CategoryCamera, testContact(), []string{cam1})
	require.Error(t, err)
	assert.Equal(t, 0, orderRepo.insertCount())
}

func TestPlaceOrderValidation(t *testing.T) {
	tests := []struct {
		name     string
		category domain.Category
		contact  domain.Contact
		products []string
	}{
		{
			name:     "empty product list",
			category: domain.CategoryCamera,
			contact:  testContact(),
			products: nil,
		},
		{
			name:     "malformed product id",
			category: domain.CategoryCamera,
			contact:  testContact(),
			products: []string{"not-a-product-id"},
		},
		{
			name:     "unknown category",
			category: domain.Category("books"),
			contact:  testContact(),
			products: []string{cam1},
		},
		{
			name:     "short first name",
			category: domain.CategoryCamera,
			contact:  domain.Contact{FirstName: "J", LastName: "Li", Address: "1 Main St", City: "Springfield", Email: "jo@x.com"},
			products: []string{cam1},
		},
		{
			name:     "short address",
			category: domain.CategoryCamera,
			contact:  domain.Contact{FirstName: "Jo", LastName: "Li", Address: "1 St", City: "Springfield", Email: "jo@x.com"},
			products: []string{cam1},
		},
		{
			name:     "invalid email",
			category: domain.CategoryCamera,
			contact:  domain.Contact{FirstName: "Jo", LastName: "Li", Address: "1 Main St", City: "Springfield", Email: "not-an-email"},
			products: []string{cam1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalogRepo := twoCameraCatalog()
			orderRepo := newFakeOrderRepo()
			svc := NewService(catalogRepo, orderRepo, testNode(t))

			_, err := svc.PlaceOrder(context.Background(), tt.category, tt.contact, tt.products)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation), "expected validation error, got %v", err)
			assert.Equal(t, 0, catalogRepo.lookups, "validation must reject before any repository access")
			assert.Equal(t, 0, orderRepo.insertCount())
		})
	}
}

func TestPlaceOrderInsertFailure(t *testing.T) {
	catalogRepo := twoCameraCatalog()
	orderRepo := newFakeOrderRepo()
	orderRepo.insertErr = errors.New("connection reset")
	svc := NewService(catalogRepo, orderRepo, testNode(t))

	_, err := svc.PlaceOrder(context.Background(), domain.CategoryCamera, testContact(), []string{cam1})
	require.Error(t, err)
	assert.Equal(t, 0, orderRepo.insertCount())
}
