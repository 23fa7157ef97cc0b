package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/unideals/unideals-backend/pkg/db/models"
	pkgerrors "github.com/unideals/unideals-backend/pkg/errors"
	"github.com/unideals/unideals-backend/pkg/pagination"
)

type stubProductRepo struct {
	byID    map[uuid.UUID]*models.Product
	created []*models.Product
	updates map[uuid.UUID]map[string]any
	deleted []uuid.UUID
	listed  []models.Product
	total   int64
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		byID:    map[uuid.UUID]*models.Product{},
		updates: map[uuid.UUID]map[string]any{},
	}
}

func (s *stubProductRepo) Create(_ context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	s.created = append(s.created, product)
	s.byID[product.ID] = product
	return product, nil
}

func (s *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProductRepo) ListBySupplier(_ context.Context, supplierID uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.byID {
		if p.SupplierID == supplierID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProductRepo) ListAvailable(_ context.Context, _ pagination.Params) ([]models.Product, int64, error) {
	return s.listed, s.total, nil
}

func (s *stubProductRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates[id] = updates
	return nil
}

func (s *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	delete(s.byID, id)
	return nil
}

func TestCreateProductValidation(t *testing.T) {
	repo := newStubProductRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), uuid.Nil, CreateProductInput{Name: "Tacos", Price: decimal.NewFromInt(10)})
	require.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())

	supplierID := uuid.New()
	_, err = svc.Create(context.Background(), supplierID, CreateProductInput{Name: "  ", Price: decimal.NewFromInt(10)})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Create(context.Background(), supplierID, CreateProductInput{Name: "Tacos", Price: decimal.Zero})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	created, err := svc.Create(context.Background(), supplierID, CreateProductInput{
		Name:      " Tacos ",
		Price:     decimal.RequireFromString("12.50"),
		Available: true,
	})
	require.NoError(t, err)
	require.Equal(t, "Tacos", created.Name)
	require.Equal(t, supplierID, created.SupplierID)
	require.Len(t, repo.created, 1)
}

func TestUpdateProductEnforcesOwnership(t *testing.T) {
	repo := newStubProductRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	owner := uuid.New()
	other := uuid.New()
	product := &models.Product{ID: uuid.New(), SupplierID: owner, Name: "Panini", Price: decimal.NewFromInt(20)}
	repo.byID[product.ID] = product

	newName := "Panini XL"
	_, err = svc.Update(context.Background(), other, product.ID, UpdateProductInput{Name: &newName})
	require.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	_, err = svc.Update(context.Background(), owner, uuid.New(), UpdateProductInput{Name: &newName})
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	_, err = svc.Update(context.Background(), owner, product.ID, UpdateProductInput{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, "Panini XL", repo.updates[product.ID]["name"])
}

func TestUpdateProductRejectsNonPositivePrice(t *testing.T) {
	repo := newStubProductRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	owner := uuid.New()
	product := &models.Product{ID: uuid.New(), SupplierID: owner, Name: "Juice", Price: decimal.NewFromInt(8)}
	repo.byID[product.ID] = product

	bad := decimal.NewFromInt(-1)
	_, err = svc.Update(context.Background(), owner, product.ID, UpdateProductInput{Price: &bad})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	require.Empty(t, repo.updates)
}

func TestDeleteProduct(t *testing.T) {
	repo := newStubProductRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	owner := uuid.New()
	product := &models.Product{ID: uuid.New(), SupplierID: owner, Name: "Salade", Price: decimal.NewFromInt(15)}
	repo.byID[product.ID] = product

	require.NoError(t, svc.Delete(context.Background(), owner, product.ID))
	require.Equal(t, []uuid.UUID{product.ID}, repo.deleted)
}

func TestBrowseGroupsBySupplier(t *testing.T) {
	repo := newStubProductRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	supplierA := uuid.New()
	supplierB := uuid.New()
	repo.listed = []models.Product{
		{ID: uuid.New(), SupplierID: supplierA, Name: "Tacos", Supplier: &models.Supplier{ID: supplierA, Name: "Snack Ali"}},
		{ID: uuid.New(), SupplierID: supplierA, Name: "Panini", Supplier: &models.Supplier{ID: supplierA, Name: "Snack Ali"}},
		{ID: uuid.New(), SupplierID: supplierB, Name: "Juice", Supplier: &models.Supplier{ID: supplierB, Name: "Fresh Corner"}},
	}
	repo.total = 3

	result, err := svc.Browse(context.Background(), pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Suppliers, 2)
	require.Equal(t, "Snack Ali", result.Suppliers[0].SupplierName)
	require.Len(t, result.Suppliers[0].Products, 2)
	require.Equal(t, "Fresh Corner", result.Suppliers[1].SupplierName)
	require.Len(t, result.Suppliers[1].Products, 1)
	require.Equal(t, int64(3), result.Meta.Total)
}
