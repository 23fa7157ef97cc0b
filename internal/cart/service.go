package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unideals/unideals-backend/pkg/db/models"
	pkgerrors "github.com/unideals/unideals-backend/pkg/errors"
)

// Service exposes the client's active panier operations.
type Service interface {
	Get(ctx context.Context, clientID uuid.UUID) (*models.Panier, error)
	AddItem(ctx context.Context, clientID, productID uuid.UUID, quantity int) (*models.Panier, error)
	UpdateItemQuantity(ctx context.Context, clientID, itemID uuid.UUID, quantity int) (*models.Panier, error)
	RemoveItem(ctx context.Context, clientID, itemID uuid.UUID) (*models.Panier, error)
}

type repository interface {
	CreatePanier(ctx context.Context, clientID uuid.UUID) (*models.Panier, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Panier, error)
	FindItem(ctx context.Context, itemID uuid.UUID) (*models.PanierItem, error)
	FindItemByProduct(ctx context.Context, panierID, productID uuid.UUID) (*models.PanierItem, error)
	CreateItem(ctx context.Context, item *models.PanierItem) (*models.PanierItem, error)
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
}

type clientStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	SetPanierID(ctx context.Context, id, panierID uuid.UUID) error
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo     repository
	clients  clientStore
	products productLoader
}

// NewService builds the cart service.
func NewService(repo repository, clients clientStore, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if clients == nil {
		return nil, fmt.Errorf("client store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, clients: clients, products: products}, nil
}

// Get returns the client's active panier, provisioning one when missing.
func (s *service) Get(ctx context.Context, clientID uuid.UUID) (*models.Panier, error) {
	return s.activePanier(ctx, clientID)
}

func (s *service) AddItem(ctx context.Context, clientID, productID uuid.UUID, quantity int) (*models.Panier, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	panier, err := s.activePanier(ctx, clientID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.Available {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}

	existing, err := s.repo.FindItemByProduct(ctx, panier.ID, productID)
	switch {
	case err == nil:
		// same product re-added, merge quantities
		if err := s.repo.UpdateItemQuantity(ctx, existing.ID, existing.Quantity+quantity); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "merge panier item")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &models.PanierItem{
			PanierID:    panier.ID,
			ProductID:   productID,
			Quantity:    quantity,
			PriceAtTime: product.Price,
		}
		if _, err := s.repo.CreateItem(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create panier item")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find panier item")
	}

	return s.reload(ctx, panier.ID)
}

func (s *service) UpdateItemQuantity(ctx context.Context, clientID, itemID uuid.UUID, quantity int) (*models.Panier, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	panier, item, err := s.ownedItem(ctx, clientID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update panier item")
	}
	return s.reload(ctx, panier.ID)
}

func (s *service) RemoveItem(ctx context.Context, clientID, itemID uuid.UUID) (*models.Panier, error) {
	panier, item, err := s.ownedItem(ctx, clientID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteItem(ctx, item.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove panier item")
	}
	return s.reload(ctx, panier.ID)
}

// activePanier resolves the client's panier, lazily provisioning one when the
// pointer is unset or dangling.
func (s *service) activePanier(ctx context.Context, clientID uuid.UUID) (*models.Panier, error) {
	if clientID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "client identity missing")
	}

	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client")
	}

	if client.PanierID != nil {
		panier, err := s.repo.FindByID(ctx, *client.PanierID)
		if err == nil {
			return panier, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load panier")
		}
	}

	panier, err := s.repo.CreatePanier(ctx, clientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "provision panier")
	}
	if err := s.clients.SetPanierID(ctx, clientID, panier.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bind panier to client")
	}
	return panier, nil
}

func (s *service) ownedItem(ctx context.Context, clientID, itemID uuid.UUID) (*models.Panier, *models.PanierItem, error) {
	if itemID == uuid.Nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}

	panier, err := s.activePanier(ctx, clientID)
	if err != nil {
		return nil, nil, err
	}

	item, err := s.repo.FindItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "panier item not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load panier item")
	}
	if item.PanierID != panier.ID {
		return nil, nil, pkgerrors.New(pkgerrors.CodeForbidden, "item does not belong to the active panier")
	}
	return panier, item, nil
}

func (s *service) reload(ctx context.Context, panierID uuid.UUID) (*models.Panier, error) {
	panier, err := s.repo.FindByID(ctx, panierID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload panier")
	}
	return panier, nil
}
