package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func TestFormatPhoneNumber(t *testing.T) {
	assert.Equal(t, "6281234567890", FormatPhoneNumber("081234567890"))
	assert.Equal(t, "6281234567890", FormatPhoneNumber("6281234567890"))
	assert.Equal(t, "+15551234", FormatPhoneNumber("+15551234"))
}

func confirmationOrder(method string) *domain.Order {
	variant := &domain.ProductVariant{
		Name:    "500ml",
		Product: &domain.Product{Name: "Sambal Bawang"},
	}
	return &domain.Order{
		OrderNumber: "ORDER-AB12CD34-1730000000000",
		TotalFinal:  decimal.NewFromInt(35000),
		OrderDetails: []domain.OrderDetail{
			{VariantID: uuid.New(), Quantity: 2, Variant: variant},
		},
		Delivery: &domain.Delivery{
			RecipientName:  "Budi",
			RecipientPhone: "08123456789",
			Address:        "Jl. Kenanga No. 5, Jakarta",
		},
		Payments: []domain.Payment{{PaymentMethod: method}},
	}
}

func TestOrderConfirmationIncludesPaymentInstructions(t *testing.T) {
	msg := OrderConfirmation(confirmationOrder("Bank Transfer"))

	assert.Equal(t, "628123456789", msg.Destination)
	assert.Equal(t, "ORDER-AB12CD34-1730000000000", msg.OrderNumber)
	assert.Contains(t, msg.Body, "Halo Budi")
	assert.Contains(t, msg.Body, "2x Sambal Bawang - 500ml")
	assert.Contains(t, msg.Body, "Total: Rp35000")
	assert.Contains(t, msg.Body, "Silakan selesaikan pembayaran melalui Bank Transfer")
}

func TestOrderConfirmationDescribesPreOrderItems(t *testing.T) {
	order := confirmationOrder("Bank Transfer")
	order.OrderDetails[0].Variant.Product.PreOrderRule = &domain.PreOrderRule{
		Kind: domain.RuleOffset,
		Days: 3,
	}

	msg := OrderConfirmation(order)

	assert.Contains(t, msg.Body, "Akan dikirimkan 3 hari setelah pemesanan.")
}

func TestOrderConfirmationCashOnDelivery(t *testing.T) {
	msg := OrderConfirmation(confirmationOrder("COD"))

	assert.Contains(t, msg.Body, "pembayaran tunai")
	assert.NotContains(t, msg.Body, "Silakan selesaikan pembayaran")
}

func TestDispatcherDeliversInBackground(t *testing.T) {
	recorder := NewRecorder()
	dispatcher := NewDispatcher(recorder, 8, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dispatcher.Run(ctx)

	dispatcher.Enqueue(Message{Destination: "628123", Body: "hi", OrderNumber: "ORDER-1"})

	require.Eventually(t, func() bool {
		return len(recorder.Sent()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "ORDER-1", recorder.Sent()[0].OrderNumber)
}

func TestDispatcherSwallowsSendFailures(t *testing.T) {
	recorder := NewRecorder()
	recorder.Fail = errors.New("gateway down")
	dispatcher := NewDispatcher(recorder, 8, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dispatcher.Run(ctx)

	// Must not panic or block; the failure only reaches the log.
	dispatcher.Enqueue(Message{OrderNumber: "ORDER-2"})

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, recorder.Sent())
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	recorder := NewRecorder()
	dispatcher := NewDispatcher(recorder, 1, time.Second)

	// Run loop intentionally not started: the second message has
	// nowhere to go and must be dropped without blocking.
	done := make(chan struct{})
	go func() {
		dispatcher.Enqueue(Message{OrderNumber: "ORDER-3"})
		dispatcher.Enqueue(Message{OrderNumber: "ORDER-4"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}
