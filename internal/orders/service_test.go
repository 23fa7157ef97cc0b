package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/unideals/unideals-backend/pkg/db/models"
	"github.com/unideals/unideals-backend/pkg/enums"
	pkgerrors "github.com/unideals/unideals-backend/pkg/errors"
	"github.com/unideals/unideals-backend/pkg/pagination"
)

type stubOrderRepo struct {
	byID      map[uuid.UUID]*models.Order
	suppliers map[uuid.UUID][]uuid.UUID // orderID -> supplier IDs with lines
	updated   map[uuid.UUID]enums.OrderStatus
	clientOut []models.Order
	total     int64
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		byID:      map[uuid.UUID]*models.Order{},
		suppliers: map[uuid.UUID][]uuid.UUID{},
		updated:   map[uuid.UUID]enums.OrderStatus{},
	}
}

func (s *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	if o, ok := s.byID[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) ListByClient(_ context.Context, _ uuid.UUID, _ pagination.Params) ([]models.Order, int64, error) {
	return s.clientOut, s.total, nil
}

func (s *stubOrderRepo) ListBySupplier(_ context.Context, _ uuid.UUID, _ pagination.Params) ([]models.Order, int64, error) {
	return s.clientOut, s.total, nil
}

func (s *stubOrderRepo) HasSupplierLineItems(_ context.Context, orderID, supplierID uuid.UUID) (bool, error) {
	for _, id := range s.suppliers[orderID] {
		if id == supplierID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, orderID uuid.UUID, status enums.OrderStatus) error {
	s.updated[orderID] = status
	if o, ok := s.byID[orderID]; ok {
		o.Status = status
	}
	return nil
}

func seedOrder(repo *stubOrderRepo, status enums.OrderStatus, supplierID uuid.UUID) *models.Order {
	order := &models.Order{ID: uuid.New(), ClientID: uuid.New(), Status: status}
	repo.byID[order.ID] = order
	repo.suppliers[order.ID] = []uuid.UUID{supplierID}
	return order
}

func TestUpdateStatusTransitions(t *testing.T) {
	supplierID := uuid.New()

	cases := []struct {
		name     string
		from     enums.OrderStatus
		to       enums.OrderStatus
		wantCode pkgerrors.Code
	}{
		{"pending to accepted", enums.OrderStatusPending, enums.OrderStatusAccepted, ""},
		{"pending to cancelled", enums.OrderStatusPending, enums.OrderStatusCancelled, ""},
		{"accepted to delivered", enums.OrderStatusAccepted, enums.OrderStatusDelivered, ""},
		{"accepted to cancelled", enums.OrderStatusAccepted, enums.OrderStatusCancelled, ""},
		{"pending to delivered", enums.OrderStatusPending, enums.OrderStatusDelivered, pkgerrors.CodeConflict},
		{"delivered is terminal", enums.OrderStatusDelivered, enums.OrderStatusCancelled, pkgerrors.CodeConflict},
		{"cancelled is terminal", enums.OrderStatusCancelled, enums.OrderStatusAccepted, pkgerrors.CodeConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubOrderRepo()
			order := seedOrder(repo, tc.from, supplierID)
			svc, err := NewService(repo, nil)
			require.NoError(t, err)

			updated, err := svc.UpdateStatus(context.Background(), supplierID, order.ID, tc.to)
			if tc.wantCode != "" {
				require.Equal(t, tc.wantCode, pkgerrors.As(err).Code())
				require.Empty(t, repo.updated)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.to, updated.Status)
			require.Equal(t, tc.to, repo.updated[order.ID])
		})
	}
}

func TestUpdateStatusSameStatusIsNoop(t *testing.T) {
	supplierID := uuid.New()
	repo := newStubOrderRepo()
	order := seedOrder(repo, enums.OrderStatusPending, supplierID)
	svc, err := NewService(repo, nil)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), supplierID, order.ID, enums.OrderStatusPending)
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusPending, updated.Status)
	require.Empty(t, repo.updated)
}

func TestUpdateStatusRejectsUninvolvedSupplier(t *testing.T) {
	repo := newStubOrderRepo()
	order := seedOrder(repo, enums.OrderStatusPending, uuid.New())
	svc, err := NewService(repo, nil)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), order.ID, enums.OrderStatusAccepted)
	require.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo := newStubOrderRepo()
	svc, err := NewService(repo, nil)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), enums.OrderStatusAccepted)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListForClientPaginates(t *testing.T) {
	repo := newStubOrderRepo()
	repo.clientOut = []models.Order{{ID: uuid.New()}, {ID: uuid.New()}}
	repo.total = 12
	svc, err := NewService(repo, nil)
	require.NoError(t, err)

	list, err := svc.ListForClient(context.Background(), uuid.New(), pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, list.Orders, 2)
	require.Equal(t, int64(12), list.Meta.Total)
	require.Equal(t, 6, list.Meta.TotalPages)
}
