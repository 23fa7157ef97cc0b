package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/unideals/unideals-backend/pkg/db/models"
	"github.com/unideals/unideals-backend/pkg/pagination"
)

// OrderLineItemDTO is the transport shape of one order line snapshot.
type OrderLineItemDTO struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	SupplierID   uuid.UUID       `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	Quantity     int             `json:"quantity"`
	PriceAtTime  decimal.Decimal `json:"price_at_time"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// OrderDTO is the transport shape of a confirmed order.
type OrderDTO struct {
	ID           uuid.UUID          `json:"id"`
	Status       string             `json:"status"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	DeliveryFee  decimal.Decimal    `json:"delivery_fee"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	LocationType string             `json:"location_type"`
	Etage        *string            `json:"etage,omitempty"`
	Address      *string            `json:"address,omitempty"`
	Phone        string             `json:"phone"`
	ClientName   string             `json:"client_name"`
	Items        []OrderLineItemDTO `json:"items,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// OrderListDTO is a paginated page of orders in transport shape.
type OrderListDTO struct {
	Orders []OrderDTO      `json:"orders"`
	Meta   pagination.Meta `json:"meta"`
}

// FromModel converts a persisted order into its transport shape.
func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:           o.ID,
		Status:       o.Status.String(),
		Subtotal:     o.Subtotal,
		DeliveryFee:  o.DeliveryFee,
		TotalAmount:  o.TotalAmount,
		LocationType: o.LocationType.String(),
		Etage:        o.Etage,
		Address:      o.Address,
		Phone:        o.Phone,
		ClientName:   o.ClientName,
		Items:        make([]OrderLineItemDTO, 0, len(o.Items)),
		CreatedAt:    o.CreatedAt,
	}
	for i := range o.Items {
		item := &o.Items[i]
		dto.Items = append(dto.Items, OrderLineItemDTO{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			SupplierID:   item.SupplierID,
			SupplierName: item.SupplierName,
			Quantity:     item.Quantity,
			PriceAtTime:  item.PriceAtTime,
			LineTotal:    item.PriceAtTime.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	return dto
}

// FromList converts a service page into its transport shape.
func FromList(list *OrderList) *OrderListDTO {
	if list == nil {
		return nil
	}
	dto := &OrderListDTO{
		Orders: make([]OrderDTO, 0, len(list.Orders)),
		Meta:   list.Meta,
	}
	for i := range list.Orders {
		dto.Orders = append(dto.Orders, *FromModel(&list.Orders[i]))
	}
	return dto
}
