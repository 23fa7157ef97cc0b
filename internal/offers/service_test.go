package offers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/unideals/unideals-backend/pkg/db/models"
	pkgerrors "github.com/unideals/unideals-backend/pkg/errors"
)

type stubOfferRepo struct {
	byID     map[uuid.UUID]*models.Offer
	created  []*models.Offer
	updates  map[uuid.UUID]map[string]any
	deleted  []uuid.UUID
	active   []models.Offer
	replaced [][]models.Product
}

func newStubOfferRepo() *stubOfferRepo {
	return &stubOfferRepo{
		byID:    map[uuid.UUID]*models.Offer{},
		updates: map[uuid.UUID]map[string]any{},
	}
}

func (s *stubOfferRepo) Create(_ context.Context, offer *models.Offer) (*models.Offer, error) {
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	s.created = append(s.created, offer)
	s.byID[offer.ID] = offer
	return offer, nil
}

func (s *stubOfferRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Offer, error) {
	if o, ok := s.byID[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOfferRepo) ListBySupplier(_ context.Context, supplierID uuid.UUID) ([]models.Offer, error) {
	var out []models.Offer
	for _, o := range s.byID {
		if o.SupplierID == supplierID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubOfferRepo) ListActive(_ context.Context, _ time.Time) ([]models.Offer, error) {
	return s.active, nil
}

func (s *stubOfferRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates[id] = updates
	return nil
}

func (s *stubOfferRepo) ReplaceProducts(_ context.Context, _ *models.Offer, products []models.Product) error {
	s.replaced = append(s.replaced, products)
	return nil
}

func (s *stubOfferRepo) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	delete(s.byID, id)
	return nil
}

type stubOfferProducts struct {
	byID map[uuid.UUID]*models.Product
}

func (s *stubOfferProducts) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestCreateOfferValidation(t *testing.T) {
	repo := newStubOfferRepo()
	supplierID := uuid.New()
	product := &models.Product{ID: uuid.New(), SupplierID: supplierID, Name: "Tacos"}
	loader := &stubOfferProducts{byID: map[uuid.UUID]*models.Product{product.ID: product}}

	svc, err := NewService(repo, loader)
	require.NoError(t, err)

	start := time.Now()
	end := start.Add(48 * time.Hour)
	base := CreateOfferInput{
		Name:               "Ramadan deal",
		DiscountPercentage: decimal.NewFromInt(20),
		StartDate:          start,
		EndDate:            end,
		ProductIDs:         []uuid.UUID{product.ID},
	}

	bad := base
	bad.DiscountPercentage = decimal.NewFromInt(150)
	_, err = svc.Create(context.Background(), supplierID, bad)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	bad = base
	bad.EndDate = start.Add(-time.Hour)
	_, err = svc.Create(context.Background(), supplierID, bad)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	bad = base
	bad.ProductIDs = []uuid.UUID{uuid.New()}
	_, err = svc.Create(context.Background(), supplierID, bad)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	created, err := svc.Create(context.Background(), supplierID, base)
	require.NoError(t, err)
	require.True(t, created.Active)
	require.Len(t, created.Products, 1)
}

func TestCreateOfferRejectsForeignProduct(t *testing.T) {
	repo := newStubOfferRepo()
	supplierID := uuid.New()
	foreign := &models.Product{ID: uuid.New(), SupplierID: uuid.New(), Name: "Panini"}
	loader := &stubOfferProducts{byID: map[uuid.UUID]*models.Product{foreign.ID: foreign}}

	svc, err := NewService(repo, loader)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), supplierID, CreateOfferInput{
		Name:               "Deal",
		DiscountPercentage: decimal.NewFromInt(10),
		StartDate:          time.Now(),
		EndDate:            time.Now().Add(time.Hour),
		ProductIDs:         []uuid.UUID{foreign.ID},
	})
	require.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
	require.Empty(t, repo.created)
}

func TestUpdateOfferOwnershipAndWindow(t *testing.T) {
	repo := newStubOfferRepo()
	supplierID := uuid.New()
	loader := &stubOfferProducts{byID: map[uuid.UUID]*models.Product{}}

	svc, err := NewService(repo, loader)
	require.NoError(t, err)

	offer := &models.Offer{
		ID:                 uuid.New(),
		SupplierID:         supplierID,
		Name:               "Deal",
		DiscountPercentage: decimal.NewFromInt(10),
		StartDate:          time.Now(),
		EndDate:            time.Now().Add(24 * time.Hour),
	}
	repo.byID[offer.ID] = offer

	_, err = svc.Update(context.Background(), uuid.New(), offer.ID, UpdateOfferInput{})
	require.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	badEnd := offer.StartDate.Add(-time.Hour)
	_, err = svc.Update(context.Background(), supplierID, offer.ID, UpdateOfferInput{EndDate: &badEnd})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	inactive := false
	_, err = svc.Update(context.Background(), supplierID, offer.ID, UpdateOfferInput{Active: &inactive})
	require.NoError(t, err)
	require.Equal(t, false, repo.updates[offer.ID]["active"])
}

func TestListActiveDelegates(t *testing.T) {
	repo := newStubOfferRepo()
	repo.active = []models.Offer{{ID: uuid.New(), Name: "Live deal"}}
	loader := &stubOfferProducts{byID: map[uuid.UUID]*models.Product{}}

	svc, err := NewService(repo, loader)
	require.NoError(t, err)

	offers, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, offers, 1)
	require.Equal(t, "Live deal", offers[0].Name)
}
