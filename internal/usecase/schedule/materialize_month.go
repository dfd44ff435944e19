package schedule

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/semprecheioapp/semprecheioapp-sub001/internal/domain/schedule"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type MaterializeMonthInput struct {
	ProfessionalID string // vazio = todos os profissionais com template
	Month          int    // 0 = mês corrente
	Year           int    // 0 = ano corrente
}

type MaterializeResult struct {
	Created int `json:"created"`
	Month   int `json:"month"`
	Year    int `json:"year"`
}

// ======================================================
// USE CASE
// ======================================================

// MaterializeMonth expande templates semanais em janelas concretas datadas
// para o mês alvo, sem duplicar linhas já existentes.
type MaterializeMonth struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewMaterializeMonth(
	repo domain.Repository,
	log *zap.Logger,
) *MaterializeMonth {
	return &MaterializeMonth{
		repo: repo,
		log:  log,
	}
}

func (uc *MaterializeMonth) Execute(
	ctx context.Context,
	in MaterializeMonthInput,
) (*MaterializeResult, error) {

	now := timezone.Now()
	year := in.Year
	month := in.Month
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_month")
	}

	templates, err := uc.repo.ListTemplates(ctx, in.ProfessionalID)
	if err != nil {
		return nil, err
	}

	created := 0
	for _, tmpl := range templates {
		if tmpl.DayOfWeek == nil {
			continue
		}

		dates := domain.MonthDates(
			year,
			time.Month(month),
			time.Weekday(*tmpl.DayOfWeek),
		)

		for _, date := range dates {
			n, err := uc.materializeDate(ctx, &tmpl, date)
			if err != nil {
				// melhor esforço: a falha de uma data não derruba o lote
				uc.log.Warn("failed to materialize availability",
					zap.String("professional_id", tmpl.ProfessionalID),
					zap.String("date", date),
					zap.Error(err),
				)
				continue
			}
			created += n
		}
	}

	return &MaterializeResult{
		Created: created,
		Month:   month,
		Year:    year,
	}, nil
}

func (uc *MaterializeMonth) materializeDate(
	ctx context.Context,
	tmpl *models.Availability,
	date string,
) (int, error) {

	exists, err := uc.repo.AvailabilityExists(
		ctx,
		tmpl.ProfessionalID,
		date,
		tmpl.StartTime,
		tmpl.EndTime,
	)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, nil
	}

	d := date
	av := &models.Availability{
		ClientID:          tmpl.ClientID,
		ProfessionalID:    tmpl.ProfessionalID,
		Date:              &d,
		DayOfWeek:         nil, // instância datada, não template
		StartTime:         tmpl.StartTime,
		EndTime:           tmpl.EndTime,
		IsActive:          true,
		ServiceID:         tmpl.ServiceID,
		CustomPrice:       tmpl.CustomPrice,
		CustomDurationMin: tmpl.CustomDurationMin,
	}

	if err := uc.repo.CreateAvailability(ctx, av); err != nil {
		return 0, err
	}

	return 1, nil
}

// ======================================================
// NEXT MONTH
// ======================================================

// GenerateNextMonth materializa o mês seguinte ao corrente, virando o ano
// em dezembro, delegando ao mesmo contrato de MaterializeMonth.
type GenerateNextMonth struct {
	materialize *MaterializeMonth
}

func NewGenerateNextMonth(materialize *MaterializeMonth) *GenerateNextMonth {
	return &GenerateNextMonth{materialize: materialize}
}

func (uc *GenerateNextMonth) Execute(
	ctx context.Context,
	professionalID string,
) (*MaterializeResult, error) {

	now := timezone.Now()
	year, month := domain.NextMonth(now.Year(), now.Month())

	return uc.materialize.Execute(ctx, MaterializeMonthInput{
		ProfessionalID: professionalID,
		Month:          int(month),
		Year:           year,
	})
}
