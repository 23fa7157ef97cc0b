package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/unideals/unideals-backend/internal/cart"
	"github.com/unideals/unideals-backend/internal/clients"
	"github.com/unideals/unideals-backend/internal/orders"
	"github.com/unideals/unideals-backend/pkg/db/models"
	"github.com/unideals/unideals-backend/pkg/enums"
	pkgerrors "github.com/unideals/unideals-backend/pkg/errors"
	"github.com/unideals/unideals-backend/pkg/logger"
	"github.com/unideals/unideals-backend/pkg/metrics"
)

// DeliveryInput carries the delivery details submitted on confirmation.
type DeliveryInput struct {
	Phone        string
	LocationType string
	Etage        *string
	Address      *string
	DisplayName  *string
}

// Service converts the client's panier into an immutable order.
type Service interface {
	Confirm(ctx context.Context, clientID uuid.UUID, input DeliveryInput) (*models.Order, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	tx         txRunner
	carts      *cart.Repository
	orders     *orders.Repository
	clients    *clients.Repository
	outsideFee decimal.Decimal
	logg       *logger.Logger
	metrics    *metrics.OrderMetrics
}

// NewService builds the checkout service. Metrics may be nil.
func NewService(
	tx txRunner,
	carts *cart.Repository,
	ordersRepo *orders.Repository,
	clientsRepo *clients.Repository,
	outsideFee decimal.Decimal,
	logg *logger.Logger,
	m *metrics.OrderMetrics,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if clientsRepo == nil {
		return nil, fmt.Errorf("clients repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if outsideFee.IsNegative() {
		return nil, fmt.Errorf("outside delivery fee cannot be negative")
	}
	return &service{
		tx:         tx,
		carts:      carts,
		orders:     ordersRepo,
		clients:    clientsRepo,
		outsideFee: outsideFee,
		logg:       logg,
		metrics:    m,
	}, nil
}

// Confirm validates delivery input, snapshots the panier into an order inside
// one transaction, then provisions a fresh panier for the client.
func (s *service) Confirm(ctx context.Context, clientID uuid.UUID, input DeliveryInput) (*models.Order, error) {
	order, err := s.confirm(ctx, clientID, input)
	if err != nil {
		s.metrics.IncConfirmFailed(failureReason(err))
		return nil, err
	}
	s.metrics.IncConfirmed(order.LocationType.String())
	return order, nil
}

func (s *service) confirm(ctx context.Context, clientID uuid.UUID, input DeliveryInput) (*models.Order, error) {
	if clientID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "client identity missing")
	}

	delivery, err := validateDelivery(input)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client")
	}
	if client.PanierID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active panier")
	}
	panierID := *client.PanierID

	// Remember the delivery details on the profile. Failure here must not
	// block the order.
	s.updateProfile(ctx, clientID, delivery)

	order := &models.Order{
		ClientID:     clientID,
		PanierID:     panierID,
		Status:       enums.OrderStatusPending,
		LocationType: delivery.location,
		Etage:        delivery.etage,
		Address:      delivery.address,
		Phone:        delivery.phone,
		ClientName:   displayName(input.DisplayName, client),
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)

		panier, err := carts.FindByIDForUpdate(ctx, panierID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "no active panier")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock panier")
		}
		if len(panier.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "panier is empty")
		}

		subtotal := decimal.Zero
		lines := make([]models.OrderLineItem, 0, len(panier.Items))
		for _, item := range panier.Items {
			if item.Product == nil || item.Product.Supplier == nil {
				return pkgerrors.New(pkgerrors.CodeInternal, "panier item lost its product")
			}
			lineTotal := item.PriceAtTime.Mul(decimal.NewFromInt(int64(item.Quantity)))
			subtotal = subtotal.Add(lineTotal)
			lines = append(lines, models.OrderLineItem{
				ProductID:    item.ProductID,
				ProductName:  item.Product.Name,
				SupplierID:   item.Product.SupplierID,
				SupplierName: item.Product.Supplier.Name,
				Quantity:     item.Quantity,
				PriceAtTime:  item.PriceAtTime,
			})
		}

		fee := decimal.Zero
		if delivery.location == enums.DeliveryLocationOutside {
			fee = s.outsideFee
		}
		order.Subtotal = subtotal
		order.DeliveryFee = fee
		order.TotalAmount = subtotal.Add(fee)

		ordersRepo := s.orders.WithTx(tx)
		if _, err := ordersRepo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		for i := range lines {
			lines[i].OrderID = order.ID
		}
		if err := ordersRepo.CreateLineItems(ctx, lines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order line items")
		}
		if err := carts.DeleteItems(ctx, panierID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear panier")
		}
		order.Items = lines
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.provisionFreshPanier(ctx, clientID)
	return order, nil
}

// provisionFreshPanier moves the client onto a new empty panier after a
// confirmed order. Cart reads lazily provision, so failures are only logged.
func (s *service) provisionFreshPanier(ctx context.Context, clientID uuid.UUID) {
	fresh, err := s.carts.CreatePanier(ctx, clientID)
	if err != nil {
		s.logg.Warn(s.logg.WithClientID(ctx, clientID.String()), "provisioning fresh panier failed")
		return
	}
	if err := s.clients.SetPanierID(ctx, clientID, fresh.ID); err != nil {
		s.logg.Warn(s.logg.WithClientID(ctx, clientID.String()), "repointing client panier failed")
	}
}

func (s *service) updateProfile(ctx context.Context, clientID uuid.UUID, delivery deliveryDetails) {
	updates := map[string]any{
		"phone":         delivery.phone,
		"location_type": delivery.location,
	}
	if delivery.etage != nil {
		updates["etage"] = *delivery.etage
	}
	if delivery.address != nil {
		updates["address"] = *delivery.address
	}
	if err := s.clients.UpdateProfile(ctx, clientID, updates); err != nil {
		s.logg.Warn(s.logg.WithClientID(ctx, clientID.String()), "saving delivery details to profile failed")
	}
}

type deliveryDetails struct {
	phone    string
	location enums.DeliveryLocation
	etage    *string
	address  *string
}

func validateDelivery(input DeliveryInput) (deliveryDetails, error) {
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		return deliveryDetails{}, pkgerrors.New(pkgerrors.CodeValidation, "phone number is required")
	}

	location, err := enums.ParseDeliveryLocation(strings.TrimSpace(input.LocationType))
	if err != nil {
		return deliveryDetails{}, pkgerrors.New(pkgerrors.CodeValidation, "location type must be emsi or outside")
	}

	details := deliveryDetails{phone: phone, location: location}
	switch location {
	case enums.DeliveryLocationCampus:
		if input.Etage == nil || strings.TrimSpace(*input.Etage) == "" {
			return deliveryDetails{}, pkgerrors.New(pkgerrors.CodeValidation, "etage is required for campus delivery")
		}
		etage := strings.TrimSpace(*input.Etage)
		details.etage = &etage
	case enums.DeliveryLocationOutside:
		if input.Address == nil || strings.TrimSpace(*input.Address) == "" {
			return deliveryDetails{}, pkgerrors.New(pkgerrors.CodeValidation, "address is required for outside delivery")
		}
		address := strings.TrimSpace(*input.Address)
		details.address = &address
	}
	return details, nil
}

// displayName picks the name stamped on the order: the name submitted with
// the confirmation wins, then the profile name, then the registered email.
func displayName(submitted *string, client *models.Client) string {
	if submitted != nil && strings.TrimSpace(*submitted) != "" {
		return strings.TrimSpace(*submitted)
	}
	if client.Name != nil && strings.TrimSpace(*client.Name) != "" {
		return strings.TrimSpace(*client.Name)
	}
	return client.Email
}

func failureReason(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return "internal"
	}
	switch typed.Code() {
	case pkgerrors.CodeValidation:
		if typed.Message() == "panier is empty" {
			return "empty_cart"
		}
		return "validation"
	case pkgerrors.CodeNotFound:
		return "no_cart"
	default:
		return strings.ToLower(string(typed.Code()))
	}
}
