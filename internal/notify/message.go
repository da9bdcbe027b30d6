package notify

import (
	"fmt"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/preorder"
)

// OrderConfirmation renders the WhatsApp-style confirmation text for a
// freshly created order. Payment instructions are included unless the
// order is cash on delivery.
func OrderConfirmation(order *domain.Order) Message {
	var b strings.Builder

	delivery := order.Delivery
	fmt.Fprintf(&b, "Halo %s,\n\n", delivery.RecipientName)
	fmt.Fprintf(&b, "Pesanan %s telah kami terima.\n\n", order.OrderNumber)

	for _, detail := range order.OrderDetails {
		name := detail.VariantID.String()
		var rule *domain.PreOrderRule
		if detail.Variant != nil {
			name = detail.Variant.Name
			if detail.Variant.Product != nil {
				name = detail.Variant.Product.Name + " - " + detail.Variant.Name
				rule = detail.Variant.Product.PreOrderRule
			}
		}
		fmt.Fprintf(&b, "%dx %s\n", detail.Quantity, name)
		if desc := preorder.DescribeRule(rule); desc != "" {
			fmt.Fprintf(&b, "   %s\n", desc)
		}
	}

	fmt.Fprintf(&b, "\nTotal: Rp%s\n", order.TotalFinal.StringFixed(0))
	fmt.Fprintf(&b, "Alamat pengiriman: %s\n", delivery.Address)

	method := paymentMethod(order)
	if isCashOnDelivery(method) {
		b.WriteString("\nSiapkan pembayaran tunai saat kurir tiba. Terima kasih!")
	} else {
		fmt.Fprintf(&b, "\nSilakan selesaikan pembayaran melalui %s sebesar Rp%s agar pesanan segera kami proses.",
			method, order.TotalFinal.StringFixed(0))
	}

	return Message{
		Destination: FormatPhoneNumber(delivery.RecipientPhone),
		Body:        b.String(),
		OrderNumber: order.OrderNumber,
	}
}

func paymentMethod(order *domain.Order) string {
	if len(order.Payments) == 0 {
		return ""
	}
	return order.Payments[0].PaymentMethod
}

func isCashOnDelivery(method string) bool {
	m := strings.ToLower(strings.TrimSpace(method))
	return m == "cod" || m == "cash on delivery"
}
