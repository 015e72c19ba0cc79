package services

import (
	"strings"

	"dreamhouse/internal/domain"
	"dreamhouse/internal/domain/models"
)

// ParseStatus validates an operator-selected booking state.
func ParseStatus(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !models.ValidStatus(s) {
		return "", domain.ValidationError{Field: "booking_state", Msg: "estado de reserva inválido"}
	}
	return s, nil
}

// CanTransition reports whether a status change is allowed. Every valid
// state can move to every other by explicit operator selection; nothing is
// automatic. Cancelada is terminal in practice but not forbidden as a
// source, matching how the dashboard has always behaved.
func CanTransition(from, to string) bool {
	return models.ValidStatus(from) && models.ValidStatus(to)
}
