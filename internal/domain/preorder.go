package domain

import "encoding/json"

// Pre-order rules are stored on products as a loose JSON blob. Two rule
// kinds are recognized:
//
//	{"type": "offset", "days": 1}
//	{"type": "schedule", "rules": [{"orderDays": [1, 2, 3], "deliveryDay": 5}]}
//
// Weekday indices run 0=Sunday through 6=Saturday. Anything else parses
// to nil, which means the product ships immediately.
type RuleKind string

const (
	RuleOffset   RuleKind = "offset"
	RuleSchedule RuleKind = "schedule"
)

type ScheduleEntry struct {
	OrderDays   []int `json:"orderDays"`
	DeliveryDay int   `json:"deliveryDay"`
}

type PreOrderRule struct {
	Kind  RuleKind        `json:"type"`
	Days  int             `json:"days,omitempty"`
	Rules []ScheduleEntry `json:"rules,omitempty"`
}

// ParsePreOrderRule validates the stored blob at the read boundary.
// Unrecognized kinds and malformed payloads are treated as no rule
// rather than guessed at.
func ParsePreOrderRule(raw []byte) *PreOrderRule {
	if len(raw) == 0 {
		return nil
	}
	var rule PreOrderRule
	if err := json.Unmarshal(raw, &rule); err != nil {
		return nil
	}
	switch rule.Kind {
	case RuleOffset, RuleSchedule:
		return &rule
	default:
		return nil
	}
}
