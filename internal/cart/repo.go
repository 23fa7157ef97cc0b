package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/unideals/unideals-backend/pkg/db/models"
)

// Repository exposes panier persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// CreatePanier provisions an empty panier for the client.
func (r *Repository) CreatePanier(ctx context.Context, clientID uuid.UUID) (*models.Panier, error) {
	panier := &models.Panier{ID: uuid.New(), ClientID: clientID}
	if err := r.db.WithContext(ctx).Create(panier).Error; err != nil {
		return nil, err
	}
	return panier, nil
}

// FindByID loads a panier with its items and their products.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Panier, error) {
	var panier models.Panier
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("panier_items.created_at ASC")
		}).
		Preload("Items.Product").
		First(&panier, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &panier, nil
}

// FindByIDForUpdate loads a panier holding a row lock for the enclosing
// transaction. The lock clause is skipped on dialects without FOR UPDATE
// support (sqlite in tests).
func (r *Repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Panier, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var panier models.Panier
	if err := query.First(&panier, "id = ?", id).Error; err != nil {
		return nil, err
	}

	items, err := r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	panier.Items = items
	return &panier, nil
}

// ListItems returns the panier's items with their products, oldest first.
func (r *Repository) ListItems(ctx context.Context, panierID uuid.UUID) ([]models.PanierItem, error) {
	var items []models.PanierItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Supplier").
		Where("panier_id = ?", panierID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FindItem loads one panier item by its id.
func (r *Repository) FindItem(ctx context.Context, itemID uuid.UUID) (*models.PanierItem, error) {
	var item models.PanierItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindItemByProduct loads the panier's line for a given product, if any.
func (r *Repository) FindItemByProduct(ctx context.Context, panierID, productID uuid.UUID) (*models.PanierItem, error) {
	var item models.PanierItem
	err := r.db.WithContext(ctx).
		Where("panier_id = ? AND product_id = ?", panierID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a new panier line.
func (r *Repository) CreateItem(ctx context.Context, item *models.PanierItem) (*models.PanierItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemQuantity overwrites the line's quantity.
func (r *Repository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.PanierItem{}).
		Where("id = ?", itemID).
		UpdateColumn("quantity", quantity).Error
}

// DeleteItem removes one panier line.
func (r *Repository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PanierItem{}, "id = ?", itemID).Error
}

// DeleteItems empties the panier.
func (r *Repository) DeleteItems(ctx context.Context, panierID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PanierItem{}, "panier_id = ?", panierID).Error
}
