package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/service"
)

type stubOrderService struct {
	createErr error
	order     *domain.Order
}

func (s *stubOrderService) CreateOrder(context.Context, service.CreateOrderInput) (*domain.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.order, nil
}

func (s *stubOrderService) GetOrder(context.Context, uuid.UUID) (*domain.Order, error) {
	return s.order, nil
}

func (s *stubOrderService) ListOrders(context.Context) ([]domain.Order, error) {
	if s.order == nil {
		return nil, nil
	}
	return []domain.Order{*s.order}, nil
}

func newTestRouter(svc service.OrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewOrderHandler(svc)
	r.POST("/orders", h.CreateOrder)
	r.GET("/orders", h.ListOrders)
	r.GET("/orders/:id", h.GetOrder)
	return r
}

func orderPayload() map[string]any {
	return map[string]any{
		"orderDetails": []map[string]any{
			{"variantId": uuid.NewString(), "quantity": 2},
		},
		"delivery": map[string]any{
			"address":        "Jl. Kenanga No. 5, Jakarta",
			"recipientName":  "Budi",
			"recipientPhone": "08123456789",
		},
		"payment": map[string]any{"paymentMethod": "Bank Transfer"},
	}
}

func postOrders(t *testing.T, router *gin.Engine, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateOrderHandlerSuccess(t *testing.T) {
	order := &domain.Order{
		ID:          uuid.New(),
		OrderNumber: "ORDER-AB12CD34-1730000000000",
		Status:      domain.OrderPending,
		TotalFinal:  decimal.NewFromInt(35),
	}
	router := newTestRouter(&stubOrderService{order: order})

	w := postOrders(t, router, orderPayload())

	assert.Equal(t, http.StatusCreated, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, order.OrderNumber, got["orderNumber"])
	assert.Equal(t, "PENDING", got["status"])
}

func TestCreateOrderHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"empty order", service.ErrEmptyOrder, http.StatusBadRequest, "order must contain at least one item"},
		{"variant not found", service.ErrVariantNotFound, http.StatusNotFound, "one or more product variants not found"},
		{"insufficient stock", &service.InsufficientStockError{SKU: "V1"}, http.StatusConflict, "not enough stock for variant V1"},
		{"voucher not found", service.ErrVoucherNotFound, http.StatusNotFound, "voucher not found"},
		{"voucher expired", service.ErrVoucherExpired, http.StatusBadRequest, "voucher is expired"},
		{"voucher exhausted", service.ErrVoucherExhausted, http.StatusBadRequest, "voucher is out of stock"},
		{"transaction failure", service.ErrCreateOrder, http.StatusInternalServerError, "failed to create order"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&stubOrderService{createErr: tc.err})

			w := postOrders(t, router, orderPayload())

			assert.Equal(t, tc.wantStatus, w.Code)
			var got map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tc.wantBody, got["error"])
		})
	}
}

func TestCreateOrderHandlerRejectsMalformedBody(t *testing.T) {
	router := newTestRouter(&stubOrderService{})

	cases := []struct {
		name    string
		mutate  func(map[string]any)
		payload map[string]any
	}{
		{"empty details", func(p map[string]any) { p["orderDetails"] = []map[string]any{} }, orderPayload()},
		{"zero quantity", func(p map[string]any) {
			p["orderDetails"] = []map[string]any{{"variantId": uuid.NewString(), "quantity": 0}}
		}, orderPayload()},
		{"bad variant id", func(p map[string]any) {
			p["orderDetails"] = []map[string]any{{"variantId": "not-a-uuid", "quantity": 1}}
		}, orderPayload()},
		{"short address", func(p map[string]any) {
			p["delivery"] = map[string]any{"address": "x", "recipientName": "Budi", "recipientPhone": "0812"}
		}, orderPayload()},
		{"missing payment method", func(p map[string]any) { p["payment"] = map[string]any{} }, orderPayload()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := tc.payload
			tc.mutate(payload)
			w := postOrders(t, router, payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetOrderHandlerUnknownID(t *testing.T) {
	router := newTestRouter(&stubOrderService{})

	req := httptest.NewRequest(http.MethodGet, "/orders/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOrderHandlerBadID(t *testing.T) {
	router := newTestRouter(&stubOrderService{})

	req := httptest.NewRequest(http.MethodGet, "/orders/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOrdersHandler(t *testing.T) {
	order := &domain.Order{ID: uuid.New(), OrderNumber: "ORDER-1", Status: domain.OrderPending}
	router := newTestRouter(&stubOrderService{order: order})

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "ORDER-1", got[0]["orderNumber"])
}
