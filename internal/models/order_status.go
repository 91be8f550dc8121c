package models

type OrderStatus string

// penser à ajouter tout nouveau statut dans statusTransitions
const (
	StatusProcessing OrderStatus = "processing"
	StatusAccepted   OrderStatus = "accepted"
	StatusSent       OrderStatus = "sent"
	StatusReceived   OrderStatus = "received"
	StatusCanceled   OrderStatus = "canceled"
)

// statusTransitions décrit les enchaînements autorisés.
// "canceled" est traité à part : atteignable depuis tout statut sauf "received".
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusProcessing: {StatusAccepted, StatusCanceled},
	StatusAccepted:   {StatusSent, StatusCanceled},
	StatusSent:       {StatusReceived, StatusCanceled},
	StatusReceived:   {},
	StatusCanceled:   {},
}

// IsValidStatus vérifie que le statut fait partie de l'énumération
func IsValidStatus(s OrderStatus) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition indique si le passage from → to est légal
func CanTransition(from, to OrderStatus) bool {
	// annulation possible tant que la commande n'est pas reçue
	if to == StatusCanceled {
		return from != StatusReceived
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal : plus aucune transition possible depuis ce statut
func IsTerminal(s OrderStatus) bool {
	return s == StatusReceived
}
