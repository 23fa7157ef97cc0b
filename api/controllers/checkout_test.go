package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/unideals/unideals-backend/api/middleware"
	"github.com/unideals/unideals-backend/internal/checkout"
	"github.com/unideals/unideals-backend/pkg/db/models"
	"github.com/unideals/unideals-backend/pkg/enums"
	pkgerrors "github.com/unideals/unideals-backend/pkg/errors"
	"github.com/unideals/unideals-backend/pkg/logger"
)

type stubCheckoutService struct {
	gotClientID uuid.UUID
	gotInput    checkout.DeliveryInput
	order       *models.Order
	err         error
}

func (s *stubCheckoutService) Confirm(_ context.Context, clientID uuid.UUID, input checkout.DeliveryInput) (*models.Order, error) {
	s.gotClientID = clientID
	s.gotInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "controllers-test", Output: io.Discard})
}

func confirmRequestWithActor(body string, clientID uuid.UUID) *http.Request {
	req := httptest.NewRequest("POST", "/api/client/panier/confirm", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(middleware.WithActor(req.Context(), clientID, "client"))
}

func TestPanierConfirmReturnsOrderAndItems(t *testing.T) {
	clientID := uuid.New()
	etage := "3"
	svc := &stubCheckoutService{
		order: &models.Order{
			ID:           uuid.New(),
			ClientID:     clientID,
			Status:       enums.OrderStatusPending,
			LocationType: enums.DeliveryLocationCampus,
			Etage:        &etage,
			Subtotal:     decimal.RequireFromString("25.00"),
			DeliveryFee:  decimal.Zero,
			TotalAmount:  decimal.RequireFromString("25.00"),
			Phone:        "0612345678",
			ClientName:   "Amine",
			Items: []models.OrderLineItem{{
				ID:          uuid.New(),
				ProductID:   uuid.New(),
				ProductName: "Msemen",
				SupplierID:  uuid.New(),
				Quantity:    2,
				PriceAtTime: decimal.RequireFromString("12.50"),
			}},
		},
	}

	handler := PanierConfirm(svc, testLogger())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, confirmRequestWithActor(
		`{"phone":"0612345678","location_type":"emsi","etage":"3","client_name":"Amine"}`, clientID))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, clientID, svc.gotClientID)
	require.Equal(t, "emsi", svc.gotInput.LocationType)
	require.Equal(t, "0612345678", svc.gotInput.Phone)
	require.NotNil(t, svc.gotInput.DisplayName)
	require.Equal(t, "Amine", *svc.gotInput.DisplayName)

	// order and its line items ride side by side in the payload
	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Order struct {
				Status      string `json:"status"`
				TotalAmount string `json:"total_amount"`
				ClientName  string `json:"client_name"`
			} `json:"order"`
			Items []struct {
				ProductName string `json:"product_name"`
				Quantity    int    `json:"quantity"`
			} `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	require.Equal(t, "pending", envelope.Data.Order.Status)
	require.Equal(t, "25", envelope.Data.Order.TotalAmount)
	require.Equal(t, "Amine", envelope.Data.Order.ClientName)
	require.Len(t, envelope.Data.Items, 1)
	require.Equal(t, "Msemen", envelope.Data.Items[0].ProductName)
	require.Equal(t, 2, envelope.Data.Items[0].Quantity)

	var raw struct {
		Data struct {
			Order map[string]json.RawMessage `json:"order"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	require.NotContains(t, raw.Data.Order, "items")
}

func TestPanierConfirmRejectsBadPayload(t *testing.T) {
	svc := &stubCheckoutService{}
	handler := PanierConfirm(svc, testLogger())

	cases := []string{
		`{}`,
		`{"phone":"0612345678"}`,
		`{"phone":"0612345678","location_type":"mars"}`,
		`not json`,
	}
	for _, body := range cases {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, confirmRequestWithActor(body, uuid.New()))
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	require.Equal(t, uuid.Nil, svc.gotClientID)
}

func TestPanierConfirmMapsEmptyCartToBadRequest(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeValidation, "panier is empty")}
	handler := PanierConfirm(svc, testLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, confirmRequestWithActor(
		`{"phone":"0612345678","location_type":"emsi","etage":"3"}`, uuid.New()))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.False(t, envelope.Success)
	require.Equal(t, "panier is empty", envelope.Message)
}

func TestPanierConfirmMapsMissingCartToNotFound(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeNotFound, "no active panier")}
	handler := PanierConfirm(svc, testLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, confirmRequestWithActor(
		`{"phone":"0612345678","location_type":"emsi","etage":"3"}`, uuid.New()))

	require.Equal(t, http.StatusNotFound, rec.Code)
}
