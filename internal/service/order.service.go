package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/notify"
	"storefront/internal/preorder"
	"storefront/internal/pricing"
	"storefront/internal/repo"
)

type OrderLine struct {
	VariantID uuid.UUID
	Quantity  int
}

type DeliveryInput struct {
	Address        string
	RecipientName  string
	RecipientPhone string
}

type PaymentInput struct {
	PaymentMethod string
}

type CreateOrderInput struct {
	Details     []OrderLine
	Delivery    DeliveryInput
	Payment     PaymentInput
	VoucherCode string
}

type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

type orderService struct {
	db          *sql.DB
	catalogRepo repo.CatalogRepo
	orderRepo   repo.OrderRepo
	dispatcher  *notify.Dispatcher
}

// NewOrderService wires the checkout coordinator. dispatcher may be nil
// when confirmations are not configured.
func NewOrderService(
	db *sql.DB,
	catalogRepo repo.CatalogRepo,
	orderRepo repo.OrderRepo,
	dispatcher *notify.Dispatcher,
) OrderService {
	return &orderService{
		db:          db,
		catalogRepo: catalogRepo,
		orderRepo:   orderRepo,
		dispatcher:  dispatcher,
	}
}

// CreateOrder validates the request against current catalog state,
// prices it, schedules delivery, and persists the whole order graph
// in one transaction. All validation happens before the transaction
// opens, so a rejected request leaves no partial state behind.
func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if len(in.Details) == 0 {
		return nil, ErrEmptyOrder
	}

	variantIDs := make([]uuid.UUID, len(in.Details))
	for i, line := range in.Details {
		variantIDs[i] = line.VariantID
	}

	variants, err := s.catalogRepo.FindVariantsByIDs(ctx, variantIDs)
	if err != nil {
		return nil, err
	}
	if len(variants) != len(variantIDs) {
		return nil, ErrVariantNotFound
	}
	variantByID := make(map[uuid.UUID]*domain.ProductVariant, len(variants))
	for i := range variants {
		variantByID[variants[i].ID] = &variants[i]
	}

	for _, line := range in.Details {
		variant := variantByID[line.VariantID]
		if variant == nil {
			return nil, ErrVariantNotFound
		}
		if variant.Stock < line.Quantity {
			return nil, &InsufficientStockError{SKU: variant.SKU}
		}
	}

	now := time.Now()

	var voucher *domain.Voucher
	if in.VoucherCode != "" {
		voucher, err = s.catalogRepo.FindVoucherByCode(ctx, in.VoucherCode)
		if err != nil {
			return nil, err
		}
		if voucher == nil {
			return nil, ErrVoucherNotFound
		}
		if voucher.Expired(now) {
			return nil, ErrVoucherExpired
		}
		if voucher.Exhausted() {
			return nil, ErrVoucherExhausted
		}
	}

	lines := make([]pricing.Line, len(in.Details))
	for i, line := range in.Details {
		lines[i] = pricing.Line{
			UnitPrice: variantByID[line.VariantID].Price,
			Quantity:  line.Quantity,
		}
	}
	quote := pricing.Calculate(lines, voucher)

	// The order ships only when every item is ready: the scheduled
	// date is the latest across all line items.
	deliveryDate := now
	deliveryStatus := domain.DeliveryPreparing
	for _, line := range in.Details {
		rule := variantByID[line.VariantID].Product.PreOrderRule
		if rule == nil {
			continue
		}
		deliveryStatus = domain.DeliveryScheduled
		if d := preorder.CalculateDeliveryDate(rule, now); d.After(deliveryDate) {
			deliveryDate = d
		}
	}

	order := s.buildOrder(in, variantByID, voucher, quote, now, deliveryStatus, deliveryDate)

	if err := s.persistOrder(ctx, in, voucher, order); err != nil {
		log.Printf("Failed to create order %s: %v", order.OrderNumber, err)
		return nil, ErrCreateOrder
	}

	if s.dispatcher != nil {
		s.dispatcher.Enqueue(notify.OrderConfirmation(order))
	}

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

func (s *orderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.ListOrders(ctx)
}

func (s *orderService) buildOrder(
	in CreateOrderInput,
	variantByID map[uuid.UUID]*domain.ProductVariant,
	voucher *domain.Voucher,
	quote pricing.Quote,
	now time.Time,
	deliveryStatus domain.DeliveryStatus,
	deliveryDate time.Time,
) *domain.Order {
	orderID := uuid.New()
	order := &domain.Order{
		ID:            orderID,
		OrderNumber:   newOrderNumber(now),
		Status:        domain.OrderPending,
		Subtotal:      quote.Subtotal,
		TotalDiscount: quote.Discount,
		TotalFinal:    quote.Total,
		OrderDate:     now,
		Voucher:       voucher,
	}
	if voucher != nil {
		order.VoucherID = &voucher.ID
	}

	for _, line := range in.Details {
		variant := variantByID[line.VariantID]
		order.OrderDetails = append(order.OrderDetails, domain.OrderDetail{
			ID:           uuid.New(),
			OrderID:      orderID,
			VariantID:    line.VariantID,
			Quantity:     line.Quantity,
			PriceAtOrder: variant.Price,
			Variant:      variant,
		})
	}

	order.Delivery = &domain.Delivery{
		ID:             uuid.New(),
		OrderID:        orderID,
		Address:        in.Delivery.Address,
		RecipientName:  in.Delivery.RecipientName,
		RecipientPhone: in.Delivery.RecipientPhone,
		DeliveryFee:    decimal.Zero,
		Status:         deliveryStatus,
		DeliveryDate:   deliveryDate,
	}

	order.Payments = []domain.Payment{{
		ID:            uuid.New(),
		OrderID:       orderID,
		PaymentMethod: in.Payment.PaymentMethod,
		Amount:        quote.Total,
		PaymentDate:   now,
		Status:        domain.PaymentPending,
	}}

	return order
}

// persistOrder is the all-or-nothing step: stock decrements, the
// voucher redemption, and the order graph insert either all commit or
// all roll back.
func (s *orderService) persistOrder(ctx context.Context, in CreateOrderInput, voucher *domain.Voucher, order *domain.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, line := range in.Details {
		if err := s.catalogRepo.DecrementStock(ctx, tx, line.VariantID, line.Quantity); err != nil {
			return err
		}
	}

	// One unit of voucher stock per order, independent of quantities.
	if voucher != nil {
		if err := s.catalogRepo.DecrementVoucherStock(ctx, tx, voucher.ID); err != nil {
			return err
		}
	}

	if err := s.orderRepo.InsertOrder(ctx, tx, order); err != nil {
		return err
	}

	return tx.Commit()
}

// newOrderNumber is best-effort unique: four random bytes plus the
// order timestamp. Collisions are theoretically possible but the
// orders table does not enforce uniqueness on this column.
func newOrderNumber(now time.Time) string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("ORDER-%d", now.UnixNano())
	}
	return fmt.Sprintf("ORDER-%s-%d", strings.ToUpper(hex.EncodeToString(buf)), now.UnixMilli())
}
