package handlers

import (
	"testing"

	"lumera_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartSyncFrameWithCart(t *testing.T) {
	cart := &models.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items: []models.CartItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
		TotalPrice: 115.0,
	}

	frame := cartSyncFrame(cart)

	assert.Equal(t, "cart_updated", frame["type"])
	assert.Equal(t, 115.0, frame["total"])
	// le compteur additionne les quantités, pas les lignes
	assert.Equal(t, 3, frame["count"])

	items, ok := frame["items"].([]models.CartItem)
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestCartSyncFrameWithoutCart(t *testing.T) {
	frame := cartSyncFrame(nil)

	assert.Equal(t, "cart_updated", frame["type"])
	assert.Equal(t, 0.0, frame["total"])
	assert.Equal(t, 0, frame["count"])
	assert.Empty(t, frame["items"])
}
