package offers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/unideals/unideals-backend/pkg/db/models"
	pkgerrors "github.com/unideals/unideals-backend/pkg/errors"
)

var maxDiscount = decimal.NewFromInt(100)

// Service exposes promotional offer management and browsing.
type Service interface {
	Create(ctx context.Context, supplierID uuid.UUID, input CreateOfferInput) (*models.Offer, error)
	Update(ctx context.Context, supplierID, offerID uuid.UUID, input UpdateOfferInput) (*models.Offer, error)
	Delete(ctx context.Context, supplierID, offerID uuid.UUID) error
	ListForSupplier(ctx context.Context, supplierID uuid.UUID) ([]models.Offer, error)
	ListActive(ctx context.Context) ([]models.Offer, error)
}

// CreateOfferInput holds the validated payload to create an offer.
type CreateOfferInput struct {
	Name               string
	Description        *string
	DiscountPercentage decimal.Decimal
	StartDate          time.Time
	EndDate            time.Time
	ProductIDs         []uuid.UUID
}

// UpdateOfferInput holds optional mutation values for an offer.
type UpdateOfferInput struct {
	Name               *string
	Description        *string
	DiscountPercentage *decimal.Decimal
	StartDate          *time.Time
	EndDate            *time.Time
	Active             *bool
	ProductIDs         *[]uuid.UUID
}

type repository interface {
	Create(ctx context.Context, offer *models.Offer) (*models.Offer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Offer, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.Offer, error)
	ListActive(ctx context.Context, now time.Time) ([]models.Offer, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ReplaceProducts(ctx context.Context, offer *models.Offer, products []models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo     repository
	products productLoader
	now      func() time.Time
}

// NewService builds the offers service.
func NewService(repo repository, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("offers repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, products: products, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, supplierID uuid.UUID, input CreateOfferInput) (*models.Offer, error) {
	if supplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "supplier identity missing")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "offer name is required")
	}
	if err := validateDiscount(input.DiscountPercentage); err != nil {
		return nil, err
	}
	if err := validateWindow(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	products, err := s.loadOwnedProducts(ctx, supplierID, input.ProductIDs)
	if err != nil {
		return nil, err
	}

	offer := &models.Offer{
		SupplierID:         supplierID,
		Name:               name,
		Description:        input.Description,
		DiscountPercentage: input.DiscountPercentage,
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		Active:             true,
		Products:           products,
	}
	created, err := s.repo.Create(ctx, offer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create offer")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, supplierID, offerID uuid.UUID, input UpdateOfferInput) (*models.Offer, error) {
	offer, err := s.loadOwned(ctx, supplierID, offerID)
	if err != nil {
		return nil, err
	}

	start := offer.StartDate
	end := offer.EndDate
	if input.StartDate != nil {
		start = *input.StartDate
	}
	if input.EndDate != nil {
		end = *input.EndDate
	}
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "offer name cannot be empty")
		}
		updates["name"] = name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.DiscountPercentage != nil {
		if err := validateDiscount(*input.DiscountPercentage); err != nil {
			return nil, err
		}
		updates["discount_percentage"] = *input.DiscountPercentage
	}
	if input.StartDate != nil {
		updates["start_date"] = start
	}
	if input.EndDate != nil {
		updates["end_date"] = end
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}

	if input.ProductIDs != nil {
		products, err := s.loadOwnedProducts(ctx, supplierID, *input.ProductIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceProducts(ctx, offer, products); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace offer products")
		}
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, offerID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update offer")
		}
	}

	refreshed, err := s.repo.FindByID(ctx, offerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload offer")
	}
	return refreshed, nil
}

func (s *service) Delete(ctx context.Context, supplierID, offerID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, supplierID, offerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, offerID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete offer")
	}
	return nil
}

func (s *service) ListForSupplier(ctx context.Context, supplierID uuid.UUID) ([]models.Offer, error) {
	if supplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "supplier identity missing")
	}
	offers, err := s.repo.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list supplier offers")
	}
	return offers, nil
}

func (s *service) ListActive(ctx context.Context) ([]models.Offer, error) {
	offers, err := s.repo.ListActive(ctx, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active offers")
	}
	return offers, nil
}

func (s *service) loadOwned(ctx context.Context, supplierID, offerID uuid.UUID) (*models.Offer, error) {
	if supplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "supplier identity missing")
	}
	if offerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "offer id required")
	}
	offer, err := s.repo.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
	}
	if offer.SupplierID != supplierID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "offer does not belong to supplier")
	}
	return offer, nil
}

func (s *service) loadOwnedProducts(ctx context.Context, supplierID uuid.UUID, ids []uuid.UUID) ([]models.Product, error) {
	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.products.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "offer references unknown product").
					WithDetails(map[string]string{"product_id": id.String()})
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer product")
		}
		if product.SupplierID != supplierID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "offer references another supplier's product")
		}
		products = append(products, *product)
	}
	return products, nil
}

func validateDiscount(discount decimal.Decimal) error {
	if discount.LessThanOrEqual(decimal.Zero) || discount.GreaterThan(maxDiscount) {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount percentage must be between 0 and 100")
	}
	return nil
}

func validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "offer start and end dates are required")
	}
	if !end.After(start) {
		return pkgerrors.New(pkgerrors.CodeValidation, "offer end date must be after start date")
	}
	return nil
}
