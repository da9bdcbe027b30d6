package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreOrderRuleOffset(t *testing.T) {
	rule := ParsePreOrderRule([]byte(`{"type": "offset", "days": 1}`))

	require.NotNil(t, rule)
	assert.Equal(t, RuleOffset, rule.Kind)
	assert.Equal(t, 1, rule.Days)
}

func TestParsePreOrderRuleSchedule(t *testing.T) {
	rule := ParsePreOrderRule([]byte(`{"type": "schedule", "rules": [{"orderDays": [1, 2, 3], "deliveryDay": 5}]}`))

	require.NotNil(t, rule)
	assert.Equal(t, RuleSchedule, rule.Kind)
	require.Len(t, rule.Rules, 1)
	assert.Equal(t, []int{1, 2, 3}, rule.Rules[0].OrderDays)
	assert.Equal(t, 5, rule.Rules[0].DeliveryDay)
}

func TestParsePreOrderRuleRejectsGarbage(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
	}{
		{"nil blob", nil},
		{"empty blob", []byte{}},
		{"json null", []byte(`null`)},
		{"unknown type", []byte(`{"type": "invalid"}`)},
		{"missing type", []byte(`{"days": 3}`)},
		{"not json", []byte(`{{{`)},
		{"wrong shape", []byte(`"offset"`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, ParsePreOrderRule(tc.raw))
		})
	}
}
