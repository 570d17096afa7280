package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutStateTransitions(t *testing.T) {
	tests := []struct {
		from    CheckoutState
		to      CheckoutState
		allowed bool
	}{
		{CheckoutIdle, CheckoutOrderCreated, true},
		{CheckoutIdle, CheckoutSessionCreated, false},
		{CheckoutIdle, CheckoutCompleted, false},
		{CheckoutOrderCreated, CheckoutSessionCreated, true},
		{CheckoutOrderCreated, CheckoutRedirected, false},
		{CheckoutSessionCreated, CheckoutRedirected, true},
		{CheckoutSessionCreated, CheckoutCompleted, false},
		{CheckoutRedirected, CheckoutCompleted, true},
		{CheckoutRedirected, CheckoutFailed, true},
		{CheckoutRedirected, CheckoutIdle, false},
		{CheckoutCompleted, CheckoutFailed, false},
		{CheckoutFailed, CheckoutOrderCreated, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"_to_"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestCheckoutStateIsTerminal(t *testing.T) {
	assert.True(t, CheckoutCompleted.IsTerminal())
	assert.True(t, CheckoutFailed.IsTerminal())

	assert.False(t, CheckoutIdle.IsTerminal())
	assert.False(t, CheckoutOrderCreated.IsTerminal())
	assert.False(t, CheckoutSessionCreated.IsTerminal())
	assert.False(t, CheckoutRedirected.IsTerminal())
}

func TestTerminalStatesHaveNoSuccessors(t *testing.T) {
	all := []CheckoutState{
		CheckoutIdle, CheckoutOrderCreated, CheckoutSessionCreated,
		CheckoutRedirected, CheckoutCompleted, CheckoutFailed,
	}
	for _, next := range all {
		assert.False(t, CheckoutCompleted.CanTransitionTo(next))
		assert.False(t, CheckoutFailed.CanTransitionTo(next))
	}
}
