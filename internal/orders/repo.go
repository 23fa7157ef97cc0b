package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unideals/unideals-backend/pkg/db/models"
	"github.com/unideals/unideals-backend/pkg/enums"
	"github.com/unideals/unideals-backend/pkg/pagination"
)

// Repository exposes order persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repo bound to the provided GORM DB.
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

// CreateOrder inserts the order header.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.Status == "" {
		order.Status = enums.OrderStatusPending
	}
	if err := r.db.WithContext(ctx).Omit("Items").Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// CreateLineItems inserts the order's denormalized line snapshots.
func (r *Repository) CreateLineItems(ctx context.Context, items []models.OrderLineItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// FindByID loads an order with its line items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByClient returns a page of the client's orders, newest first.
func (r *Repository) ListByClient(ctx context.Context, clientID uuid.UUID, params pagination.Params) ([]models.Order, int64, error) {
	params = pagination.Normalize(params)

	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("client_id = ?", clientID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err = r.db.WithContext(ctx).
		Preload("Items").
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListBySupplier returns a page of orders containing the supplier's line
// items; each order carries only that supplier's lines.
func (r *Repository) ListBySupplier(ctx context.Context, supplierID uuid.UUID, params pagination.Params) ([]models.Order, int64, error) {
	params = pagination.Normalize(params)

	sub := r.db.WithContext(ctx).
		Model(&models.OrderLineItem{}).
		Select("DISTINCT order_id").
		Where("supplier_id = ?", supplierID)

	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id IN (?)", sub).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err = r.db.WithContext(ctx).
		Preload("Items", "supplier_id = ?", supplierID).
		Where("id IN (?)", sub).
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// HasSupplierLineItems reports whether the order contains lines from the supplier.
func (r *Repository) HasSupplierLineItems(ctx context.Context, orderID, supplierID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderLineItem{}).
		Where("order_id = ? AND supplier_id = ?", orderID, supplierID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateStatus overwrites the order's status column.
func (r *Repository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		UpdateColumn("status", status).Error
}
