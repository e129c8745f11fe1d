package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcOutcome_ApprovesBelowThreshold(t *testing.T) {
	for _, n := range []int{0, 50, 94} {
		outcome := calcOutcome(n)
		assert.True(t, outcome.Approved)
		assert.Empty(t, outcome.Reason)
	}
}

func TestCalcOutcome_RefusesWithReason(t *testing.T) {
	for n := 95; n <= 100; n++ {
		outcome := calcOutcome(n)
		assert.False(t, outcome.Approved)
		assert.NotEmpty(t, outcome.Reason)
	}
}
