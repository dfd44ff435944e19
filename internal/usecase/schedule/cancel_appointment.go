package schedule

import (
	"context"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/audit"
	domain "github.com/semprecheioapp/semprecheioapp-sub001/internal/domain/schedule"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CancelAppointmentInput struct {
	AppointmentID string

	// tenant do chamador autenticado; reserva de outro tenant responde
	// como inexistente. Vazio apenas no fluxo de webhook, que se
	// identifica pelo telefone.
	ClientID string

	AvailabilityID string // opcional: sobrepõe a janela gravada na reserva

	// preenchido no fluxo de webhook: telefone do chamador, que deve bater
	// com o telefone gravado na reserva. Vazio = chamada autenticada.
	SessionPhone string
}

// ======================================================
// USE CASE
// ======================================================

// CancelAppointment libera a janela e apaga a reserva, nessa ordem, na
// mesma transação. Se a liberação falhar a reserva permanece intocada —
// nunca se perde uma janela por apagar a reserva primeiro.
type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelAppointmentInput,
) error {

	if in.AppointmentID == "" {
		return httperr.ErrBusiness("missing_required_field")
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return httperr.ErrBusiness("appointment_not_found")
	}

	// reserva de outro tenant responde como inexistente
	if in.ClientID != "" && ap.ClientID != in.ClientID {
		return httperr.ErrBusiness("appointment_not_found")
	}

	// verificação de identidade do webhook: telefone errado responde como
	// inexistente para não vazar que a reserva existe
	if in.SessionPhone != "" && ap.CustomerPhone != in.SessionPhone {
		return httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanCancel(domain.NormalizeStatus(ap.Status)); err != nil {
		return err
	}

	availabilityID := ap.AvailabilityID
	if in.AvailabilityID != "" && in.AvailabilityID != ap.AvailabilityID {
		// a janela substituta tem que pertencer ao mesmo tenant da reserva
		slot, err := uc.repo.GetAvailability(ctx, in.AvailabilityID)
		if err != nil || slot.ClientID != ap.ClientID {
			return httperr.ErrBusiness("availability_not_found")
		}
		availabilityID = in.AvailabilityID
	}

	err = uc.repo.Transaction(ctx, func(r domain.Repository) error {
		if err := r.ReleaseAvailability(ctx, availabilityID); err != nil {
			return err
		}
		return r.DeleteAppointment(ctx, ap.ID)
	})
	if err != nil {
		return err
	}

	uc.dispatchCancelled(ap)
	return nil
}

func (uc *CancelAppointment) dispatchCancelled(ap *models.Appointment) {
	uc.audit.Dispatch(audit.Event{
		ClientID: ap.ClientID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})
}
