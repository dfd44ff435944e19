package schedule

import (
	"context"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/audit"
	domain "github.com/semprecheioapp/semprecheioapp-sub001/internal/domain/schedule"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID       string
	ProfessionalID string
	ServiceID      string
	AvailabilityID string

	CustomerID    *string
	CustomerName  string
	CustomerPhone string

	Status string
	Notes  string
}

// ======================================================
// USE CASE
// ======================================================

// CreateAppointment ocupa uma janela livre e grava a reserva na mesma
// transação: a janela é trancada, recusada se já ocupada e só então a
// reserva é inserida. Duas reservas simultâneas da mesma janela resultam
// em slot_already_booked para a segunda.
type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if in.ClientID == "" || in.ProfessionalID == "" ||
		in.ServiceID == "" || in.AvailabilityID == "" {
		return nil, httperr.ErrBusiness("missing_required_field")
	}

	client, err := uc.repo.GetClientByID(ctx, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	if _, err := uc.repo.GetService(ctx, in.ClientID, in.ServiceID); err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	var created *models.Appointment

	err = uc.repo.Transaction(ctx, func(r domain.Repository) error {

		slot, err := r.ClaimAvailability(ctx, in.AvailabilityID)
		if err != nil {
			return err
		}

		// template semanal nunca é reservado; o cliente reserva a instância datada
		if slot.Date == nil {
			return httperr.ErrBusiness("availability_not_bookable")
		}

		scheduledAt, err := domain.CombineDateTime(
			*slot.Date,
			slot.StartTime,
			timezone.Location(client.Timezone),
		)
		if err != nil {
			return err
		}

		ap := &models.Appointment{
			ClientID:       in.ClientID,
			ProfessionalID: in.ProfessionalID,
			ServiceID:      in.ServiceID,
			AvailabilityID: in.AvailabilityID,
			CustomerID:     in.CustomerID,
			CustomerName:   in.CustomerName,
			CustomerPhone:  in.CustomerPhone,
			ScheduledAt:    scheduledAt,
			Status:         string(domain.NormalizeStatus(in.Status)),
			Notes:          in.Notes,
		}

		if err := r.CreateAppointment(ctx, ap); err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness("slot_already_booked")
			}
			return err
		}

		created = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClientID: in.ClientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &created.ID,
	})

	return created, nil
}
