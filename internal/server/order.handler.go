package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/service"
)

type OrderHandler struct {
	svc service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type orderDetailRequest struct {
	VariantID string `json:"variantId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type deliveryRequest struct {
	Address        string `json:"address" binding:"required,min=10"`
	RecipientName  string `json:"recipientName" binding:"required"`
	RecipientPhone string `json:"recipientPhone" binding:"required"`
}

type paymentRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

type createOrderRequest struct {
	OrderDetails []orderDetailRequest `json:"orderDetails" binding:"required,min=1,dive"`
	Delivery     deliveryRequest      `json:"delivery" binding:"required"`
	Payment      paymentRequest       `json:"payment" binding:"required"`
	VoucherCode  string               `json:"voucherCode"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	in := service.CreateOrderInput{
		Delivery: service.DeliveryInput{
			Address:        req.Delivery.Address,
			RecipientName:  req.Delivery.RecipientName,
			RecipientPhone: req.Delivery.RecipientPhone,
		},
		Payment:     service.PaymentInput{PaymentMethod: req.Payment.PaymentMethod},
		VoucherCode: req.VoucherCode,
	}
	for _, detail := range req.OrderDetails {
		id, err := uuid.Parse(detail.VariantID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": "variantId must be a UUID"})
			return
		}
		in.Details = append(in.Details, service.OrderLine{VariantID: id, Quantity: detail.Quantity})
	}

	order, err := h.svc.CreateOrder(c.Request.Context(), in)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			log.Printf("POST /orders: %v", err)
			c.JSON(status, gin.H{"error": service.ErrCreateOrder.Error()})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.svc.ListOrders(c.Request.Context())
	if err != nil {
		log.Printf("GET /orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		log.Printf("GET /orders/%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// statusForError maps the service error taxonomy to HTTP statuses:
// validation problems are 400, unresolved references 404, stock
// contention 409, and everything else a generic 500.
func statusForError(err error) int {
	var stockErr *service.InsufficientStockError
	switch {
	case errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrVoucherExpired),
		errors.Is(err, service.ErrVoucherExhausted):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrVariantNotFound),
		errors.Is(err, service.ErrVoucherNotFound):
		return http.StatusNotFound
	case errors.As(err, &stockErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
