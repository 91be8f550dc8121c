package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classe les erreurs métier pour le mapping HTTP
type Kind int

const (
	KindNotFound Kind = iota
	KindValidation
	KindAuthorizationRequired
	KindIllegalTransition
)

// Error est l'erreur métier remontée telle quelle jusqu'aux handlers :
// pas de retry, pas d'enrobage silencieux.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus retourne le code HTTP associé au type d'erreur
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorizationRequired:
		return http.StatusForbidden
	case KindValidation, KindIllegalTransition:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NotFound : l'entité référencée n'existe pas
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s introuvable", entity)}
}

// NotFoundID précise l'identifiant manquant
func NotFoundID(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s introuvable: %s", entity, id)}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func AuthorizationRequired(msg string) *Error {
	return &Error{Kind: KindAuthorizationRequired, Message: msg}
}

func IllegalTransition(msg string) *Error {
	return &Error{Kind: KindIllegalTransition, Message: msg}
}

// Is teste le type d'une erreur métier
func Is(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// Status extrait le code HTTP d'une erreur, 500 par défaut
func Status(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}
