package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, s := range []OrderStatus{StatusProcessing, StatusAccepted, StatusSent, StatusReceived, StatusCanceled} {
		assert.True(t, IsValidStatus(s), "%s devrait être un statut connu", s)
	}

	assert.False(t, IsValidStatus("expédiée"))
	assert.False(t, IsValidStatus(""))
}

func TestCanTransition(t *testing.T) {
	all := []OrderStatus{StatusProcessing, StatusAccepted, StatusSent, StatusReceived, StatusCanceled}

	legal := map[OrderStatus][]OrderStatus{
		StatusProcessing: {StatusAccepted, StatusCanceled},
		StatusAccepted:   {StatusSent, StatusCanceled},
		StatusSent:       {StatusReceived, StatusCanceled},
		StatusReceived:   {},
		StatusCanceled:   {StatusCanceled},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, allowed := range legal[from] {
				if allowed == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusReceived))

	for _, s := range []OrderStatus{StatusProcessing, StatusAccepted, StatusSent, StatusCanceled} {
		assert.False(t, IsTerminal(s), "%s ne devrait pas être terminal", s)
	}
}
