package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unideals/unideals-backend/pkg/db/models"
	"github.com/unideals/unideals-backend/pkg/enums"
	pkgerrors "github.com/unideals/unideals-backend/pkg/errors"
	"github.com/unideals/unideals-backend/pkg/metrics"
	"github.com/unideals/unideals-backend/pkg/pagination"
)

// Service exposes order listing and the supplier status transition.
type Service interface {
	ListForClient(ctx context.Context, clientID uuid.UUID, params pagination.Params) (*OrderList, error)
	ListForSupplier(ctx context.Context, supplierID uuid.UUID, params pagination.Params) (*OrderList, error)
	UpdateStatus(ctx context.Context, supplierID, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

// OrderList is a paginated page of orders.
type OrderList struct {
	Orders []models.Order  `json:"orders"`
	Meta   pagination.Meta `json:"meta"`
}

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, params pagination.Params) ([]models.Order, int64, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID, params pagination.Params) ([]models.Order, int64, error)
	HasSupplierLineItems(ctx context.Context, orderID, supplierID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error
}

type service struct {
	repo    repository
	metrics *metrics.OrderMetrics
}

// allowedTransitions encodes the order lifecycle; terminal states have no entry.
var allowedTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending:  {enums.OrderStatusAccepted, enums.OrderStatusCancelled},
	enums.OrderStatusAccepted: {enums.OrderStatusDelivered, enums.OrderStatusCancelled},
}

// NewService builds the orders service. Metrics may be nil.
func NewService(repo repository, m *metrics.OrderMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo, metrics: m}, nil
}

func (s *service) ListForClient(ctx context.Context, clientID uuid.UUID, params pagination.Params) (*OrderList, error) {
	if clientID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "client identity missing")
	}
	params = pagination.Normalize(params)
	orders, total, err := s.repo.ListByClient(ctx, clientID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list client orders")
	}
	return &OrderList{Orders: orders, Meta: pagination.MetaFor(params, total)}, nil
}

func (s *service) ListForSupplier(ctx context.Context, supplierID uuid.UUID, params pagination.Params) (*OrderList, error) {
	if supplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "supplier identity missing")
	}
	params = pagination.Normalize(params)
	orders, total, err := s.repo.ListBySupplier(ctx, supplierID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list supplier orders")
	}
	return &OrderList{Orders: orders, Meta: pagination.MetaFor(params, total)}, nil
}

func (s *service) UpdateStatus(ctx context.Context, supplierID, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if supplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "supplier identity missing")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	involved, err := s.repo.HasSupplierLineItems(ctx, orderID, supplierID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check order ownership")
	}
	if !involved {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not involve supplier")
	}

	if order.Status == status {
		return order, nil
	}
	if !transitionAllowed(order.Status, status) {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("cannot move order from %s to %s", order.Status, status))
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	s.metrics.IncTransition(order.Status.String(), status.String())

	order.Status = status
	return order, nil
}

func transitionAllowed(from, to enums.OrderStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
