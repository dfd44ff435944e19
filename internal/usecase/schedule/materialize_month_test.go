package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
)

func seedTemplate(repo *fakeRepo, professionalID string, dayOfWeek int) *models.Availability {
	av := &models.Availability{
		ClientID:       "client-1",
		ProfessionalID: professionalID,
		DayOfWeek:      intPtr(dayOfWeek),
		StartTime:      "09:00",
		EndTime:        "10:00",
		IsActive:       true,
	}
	_ = repo.CreateAvailability(context.Background(), av)
	return av
}

func TestMaterializeMonth(t *testing.T) {
	repo := newFakeRepo()
	seedTemplate(repo, "prof-1", 1) // segundas

	uc := NewMaterializeMonth(repo, zap.NewNop())

	res, err := uc.Execute(context.Background(), MaterializeMonthInput{
		ProfessionalID: "prof-1",
		Month:          3,
		Year:           2025,
	})
	require.NoError(t, err)

	// março de 2025 tem cinco segundas
	assert.Equal(t, 5, res.Created)
	assert.Equal(t, 3, res.Month)
	assert.Equal(t, 2025, res.Year)

	concrete := 0
	for _, av := range repo.availability {
		if av.Date == nil {
			continue
		}
		concrete++
		assert.Nil(t, av.DayOfWeek, "instância datada não carrega day_of_week")
		assert.Equal(t, "09:00", av.StartTime)
		assert.Equal(t, "10:00", av.EndTime)
		assert.True(t, av.IsActive)
	}
	assert.Equal(t, 5, concrete)
}

func TestMaterializeMonth_Idempotent(t *testing.T) {
	repo := newFakeRepo()
	seedTemplate(repo, "prof-1", 1)

	uc := NewMaterializeMonth(repo, zap.NewNop())
	in := MaterializeMonthInput{ProfessionalID: "prof-1", Month: 3, Year: 2025}

	first, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, 5, first.Created)

	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created, "segunda rodada não cria nada")

	concrete := 0
	for _, av := range repo.availability {
		if av.Date != nil {
			concrete++
		}
	}
	assert.Equal(t, 5, concrete)
}

func TestMaterializeMonth_AllProfessionals(t *testing.T) {
	repo := newFakeRepo()
	seedTemplate(repo, "prof-1", 1)
	seedTemplate(repo, "prof-2", 3)

	uc := NewMaterializeMonth(repo, zap.NewNop())

	// ProfessionalID vazio materializa todo mundo
	res, err := uc.Execute(context.Background(), MaterializeMonthInput{
		Month: 3,
		Year:  2025,
	})
	require.NoError(t, err)
	assert.Equal(t, 5+4, res.Created) // cinco segundas, quatro quartas
}

func TestMaterializeMonth_InvalidMonth(t *testing.T) {
	repo := newFakeRepo()
	uc := NewMaterializeMonth(repo, zap.NewNop())

	_, err := uc.Execute(context.Background(), MaterializeMonthInput{
		Month: 13,
		Year:  2025,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_month"))
}

func TestMaterializeMonth_IgnoresConcreteRows(t *testing.T) {
	repo := newFakeRepo()

	date := "2025-03-03"
	_ = repo.CreateAvailability(context.Background(), &models.Availability{
		ClientID:       "client-1",
		ProfessionalID: "prof-1",
		Date:           &date,
		StartTime:      "09:00",
		EndTime:        "10:00",
		IsActive:       true,
	})

	uc := NewMaterializeMonth(repo, zap.NewNop())

	res, err := uc.Execute(context.Background(), MaterializeMonthInput{
		ProfessionalID: "prof-1",
		Month:          3,
		Year:           2025,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created, "linha concreta não é template")
}
