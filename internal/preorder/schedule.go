// Package preorder turns a product's pre-order rule into a concrete
// delivery date.
package preorder

import (
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain"
)

var weekDays = []string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

// CalculateDeliveryDate applies a pre-order rule to the order date.
//
// An offset rule ships days calendar days later. A schedule rule ships
// on the next occurrence of the first matching entry's delivery day;
// "next" is strict, so a delivery day equal to the order day means one
// full week out. A nil rule, a non-positive offset, or a schedule with
// no matching entry all leave the order date untouched. The time of day
// is normalized to midnight only when the date actually moved, so an
// unchanged date stays comparable to the input.
func CalculateDeliveryDate(rule *domain.PreOrderRule, orderDate time.Time) time.Time {
	if rule == nil {
		return orderDate
	}

	deliveryDate := orderDate

	switch rule.Kind {
	case domain.RuleOffset:
		if rule.Days > 0 {
			deliveryDate = orderDate.AddDate(0, 0, rule.Days)
		}
	case domain.RuleSchedule:
		orderDay := int(orderDate.Weekday())
		for _, entry := range rule.Rules {
			if !containsDay(entry.OrderDays, orderDay) {
				continue
			}
			delta := (entry.DeliveryDay - orderDay + 7) % 7
			if delta == 0 {
				delta = 7
			}
			deliveryDate = orderDate.AddDate(0, 0, delta)
			break
		}
	}

	if !deliveryDate.Equal(orderDate) {
		y, m, d := deliveryDate.Date()
		deliveryDate = time.Date(y, m, d, 0, 0, 0, 0, orderDate.Location())
	}

	return deliveryDate
}

// DescribeRule renders a rule as a customer-facing sentence, or an
// empty string when the rule says nothing useful.
func DescribeRule(rule *domain.PreOrderRule) string {
	if rule == nil {
		return ""
	}

	switch rule.Kind {
	case domain.RuleOffset:
		if rule.Days <= 0 {
			return ""
		}
		return fmt.Sprintf("Akan dikirimkan %d hari setelah pemesanan.", rule.Days)
	case domain.RuleSchedule:
		if len(rule.Rules) == 0 {
			return ""
		}
		entry := rule.Rules[0]
		if entry.DeliveryDay < 0 || entry.DeliveryDay > 6 {
			return ""
		}
		var orderDays []string
		for _, d := range entry.OrderDays {
			if d >= 0 && d <= 6 {
				orderDays = append(orderDays, weekDays[d])
			}
		}
		if len(orderDays) == 0 {
			return ""
		}
		return fmt.Sprintf(
			"Pesanan yang dibuat pada hari %s akan dikirimkan pada hari %s berikutnya.",
			strings.Join(orderDays, ", "), weekDays[entry.DeliveryDay],
		)
	}

	return ""
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
