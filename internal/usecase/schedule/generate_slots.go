package schedule

import (
	"context"

	domain "github.com/semprecheioapp/semprecheioapp-sub001/internal/domain/schedule"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type GenerateSlotsInput struct {
	ClientID       string
	ProfessionalID string

	// exatamente um dos dois: data concreta ou template semanal
	Date      *string
	DayOfWeek *int

	StartTime   string
	EndTime     string
	DurationMin int

	ServiceID         *string
	CustomPrice       *float64
	CustomDurationMin *int
}

// ======================================================
// USE CASE
// ======================================================

// GenerateSlots fatia um expediente em janelas de duração fixa e grava uma
// linha de disponibilidade por janela, pulando as que já existem.
type GenerateSlots struct {
	repo domain.Repository
}

func NewGenerateSlots(repo domain.Repository) *GenerateSlots {
	return &GenerateSlots{repo: repo}
}

func (uc *GenerateSlots) Execute(
	ctx context.Context,
	in GenerateSlotsInput,
) ([]models.Availability, error) {

	if in.ClientID == "" || in.ProfessionalID == "" {
		return nil, httperr.ErrBusiness("missing_required_field")
	}
	if (in.Date == nil) == (in.DayOfWeek == nil) {
		return nil, httperr.ErrBusiness("date_or_day_of_week_required")
	}
	if in.DayOfWeek != nil && (*in.DayOfWeek < 0 || *in.DayOfWeek > 6) {
		return nil, httperr.ErrBusiness("invalid_day_of_week")
	}

	slots, err := domain.SplitIntoSlots(in.StartTime, in.EndTime, in.DurationMin)
	if err != nil {
		return nil, err
	}

	created := make([]models.Availability, 0, len(slots))
	for _, slot := range slots {

		if in.Date != nil {
			exists, err := uc.repo.AvailabilityExists(
				ctx,
				in.ProfessionalID,
				*in.Date,
				slot.Start,
				slot.End,
			)
			if err != nil {
				return nil, err
			}
			if exists {
				continue
			}
		}

		av := models.Availability{
			ClientID:          in.ClientID,
			ProfessionalID:    in.ProfessionalID,
			Date:              in.Date,
			DayOfWeek:         in.DayOfWeek,
			StartTime:         slot.Start,
			EndTime:           slot.End,
			IsActive:          true,
			ServiceID:         in.ServiceID,
			CustomPrice:       in.CustomPrice,
			CustomDurationMin: in.CustomDurationMin,
		}

		if err := uc.repo.CreateAvailability(ctx, &av); err != nil {
			return nil, err
		}
		created = append(created, av)
	}

	return created, nil
}
