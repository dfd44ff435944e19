package schedule

import (
	"strings"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// NormalizeStatus reduz as variantes históricas (legado em pt-BR misturado
// com inglês) a um enum fechado com serialização única. Entrada vazia ou
// desconhecida vira pending.
func NormalizeStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pendente", "pending", "":
		return StatusPending
	case "confirmado", "confirmed":
		return StatusConfirmed
	case "concluido", "concluído", "completed":
		return StatusCompleted
	case "cancelado", "cancelled", "canceled":
		return StatusCancelled
	default:
		return StatusPending
	}
}

// ===============================
// Validations
// ===============================

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed && current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
