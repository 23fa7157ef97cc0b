package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/unideals/unideals-backend/pkg/db/models"
	pkgerrors "github.com/unideals/unideals-backend/pkg/errors"
	"github.com/unideals/unideals-backend/pkg/pagination"
)

// Service exposes catalog management and browsing operations.
type Service interface {
	Create(ctx context.Context, supplierID uuid.UUID, input CreateProductInput) (*models.Product, error)
	Update(ctx context.Context, supplierID, productID uuid.UUID, input UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, supplierID, productID uuid.UUID) error
	ListForSupplier(ctx context.Context, supplierID uuid.UUID) ([]models.Product, error)
	Browse(ctx context.Context, params pagination.Params) (*BrowseResult, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Image       *string
	Price       decimal.Decimal
	Description *string
	Available   bool
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name        *string
	Image       *string
	Price       *decimal.Decimal
	Description *string
	Available   *bool
}

// SupplierProducts groups a supplier's purchasable products for browsing.
type SupplierProducts struct {
	SupplierID   uuid.UUID        `json:"supplier_id"`
	SupplierName string           `json:"supplier_name"`
	Products     []models.Product `json:"products"`
}

// BrowseResult is a paginated browse response grouped by supplier.
type BrowseResult struct {
	Suppliers []SupplierProducts `json:"suppliers"`
	Meta      pagination.Meta    `json:"meta"`
}

type repository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.Product, error)
	ListAvailable(ctx context.Context, params pagination.Params) ([]models.Product, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

// NewService builds the products service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, supplierID uuid.UUID, input CreateProductInput) (*models.Product, error) {
	if supplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "supplier identity missing")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must be positive")
	}

	product := &models.Product{
		SupplierID:  supplierID,
		Name:        name,
		Image:       input.Image,
		Price:       input.Price,
		Description: input.Description,
		Available:   input.Available,
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, supplierID, productID uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	product, err := s.loadOwned(ctx, supplierID, productID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
		updates["name"] = name
	}
	if input.Image != nil {
		updates["image"] = *input.Image
	}
	if input.Price != nil {
		if input.Price.LessThanOrEqual(decimal.Zero) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must be positive")
		}
		updates["price"] = *input.Price
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Available != nil {
		updates["available"] = *input.Available
	}
	if len(updates) == 0 {
		return product, nil
	}

	if err := s.repo.Update(ctx, productID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	refreshed, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}
	return refreshed, nil
}

func (s *service) Delete(ctx context.Context, supplierID, productID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, supplierID, productID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) ListForSupplier(ctx context.Context, supplierID uuid.UUID) ([]models.Product, error) {
	if supplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "supplier identity missing")
	}
	items, err := s.repo.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list supplier products")
	}
	return items, nil
}

func (s *service) Browse(ctx context.Context, params pagination.Params) (*BrowseResult, error) {
	params = pagination.Normalize(params)
	items, total, err := s.repo.ListAvailable(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "browse products")
	}

	grouped := make([]SupplierProducts, 0)
	index := map[uuid.UUID]int{}
	for _, item := range items {
		pos, ok := index[item.SupplierID]
		if !ok {
			name := ""
			if item.Supplier != nil {
				name = item.Supplier.Name
			}
			grouped = append(grouped, SupplierProducts{
				SupplierID:   item.SupplierID,
				SupplierName: name,
			})
			pos = len(grouped) - 1
			index[item.SupplierID] = pos
		}
		item.Supplier = nil
		grouped[pos].Products = append(grouped[pos].Products, item)
	}

	return &BrowseResult{
		Suppliers: grouped,
		Meta:      pagination.MetaFor(params, total),
	}, nil
}

func (s *service) loadOwned(ctx context.Context, supplierID, productID uuid.UUID) (*models.Product, error) {
	if supplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "supplier identity missing")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.SupplierID != supplierID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product does not belong to supplier")
	}
	return product, nil
}
