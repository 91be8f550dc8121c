package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("produit").HTTPStatus())
	assert.Equal(t, http.StatusForbidden, AuthorizationRequired("email requis").HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, Validation("quantité invalide").HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, IllegalTransition("déjà terminée").HTTPStatus())
}

func TestIsMatchesKind(t *testing.T) {
	err := NotFoundID("commande", "abc")
	assert.True(t, Is(err, KindNotFound))
	assert.False(t, Is(err, KindValidation))

	// erreur enveloppée : errors.As doit la retrouver
	wrapped := fmt.Errorf("lecture commande: %w", err)
	assert.True(t, Is(wrapped, KindNotFound))

	assert.False(t, Is(errors.New("boom"), KindNotFound))
}

func TestStatusDefaultsTo500(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, Status(NotFound("produit")))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("gocql: no hosts available")))
}
