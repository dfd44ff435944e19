package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
)

func TestGenerateSlots_ConcreteDate(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGenerateSlots(repo)

	created, err := uc.Execute(context.Background(), GenerateSlotsInput{
		ClientID:       "client-1",
		ProfessionalID: "prof-1",
		Date:           strPtr("2025-03-10"),
		StartTime:      "09:00",
		EndTime:        "12:00",
		DurationMin:    60,
	})
	require.NoError(t, err)
	require.Len(t, created, 3)

	assert.Equal(t, "09:00", created[0].StartTime)
	assert.Equal(t, "10:00", created[0].EndTime)
	assert.Equal(t, "11:00", created[2].StartTime)

	for _, av := range created {
		require.NotNil(t, av.Date)
		assert.Equal(t, "2025-03-10", *av.Date)
		assert.Nil(t, av.DayOfWeek)
		assert.True(t, av.IsActive)
	}
}

func TestGenerateSlots_WeeklyTemplate(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGenerateSlots(repo)

	created, err := uc.Execute(context.Background(), GenerateSlotsInput{
		ClientID:       "client-1",
		ProfessionalID: "prof-1",
		DayOfWeek:      intPtr(1),
		StartTime:      "09:00",
		EndTime:        "11:00",
		DurationMin:    60,
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	for _, av := range created {
		assert.Nil(t, av.Date)
		require.NotNil(t, av.DayOfWeek)
		assert.Equal(t, 1, *av.DayOfWeek)
		assert.True(t, av.IsTemplate())
	}
}

func TestGenerateSlots_SkipsExisting(t *testing.T) {
	repo := newFakeRepo()

	date := "2025-03-10"
	_ = repo.CreateAvailability(context.Background(), &models.Availability{
		ClientID:       "client-1",
		ProfessionalID: "prof-1",
		Date:           &date,
		StartTime:      "09:00",
		EndTime:        "10:00",
		IsActive:       true,
	})

	uc := NewGenerateSlots(repo)

	created, err := uc.Execute(context.Background(), GenerateSlotsInput{
		ClientID:       "client-1",
		ProfessionalID: "prof-1",
		Date:           &date,
		StartTime:      "09:00",
		EndTime:        "12:00",
		DurationMin:    60,
	})
	require.NoError(t, err)

	// a janela das 09:00 já existia, só as outras duas entram
	assert.Len(t, created, 2)
	assert.Equal(t, "10:00", created[0].StartTime)
}

func TestGenerateSlots_RequiresExactlyOneShape(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGenerateSlots(repo)

	// nenhum dos dois
	_, err := uc.Execute(context.Background(), GenerateSlotsInput{
		ClientID:       "client-1",
		ProfessionalID: "prof-1",
		StartTime:      "09:00",
		EndTime:        "12:00",
		DurationMin:    60,
	})
	assert.True(t, httperr.IsBusiness(err, "date_or_day_of_week_required"))

	// os dois ao mesmo tempo
	_, err = uc.Execute(context.Background(), GenerateSlotsInput{
		ClientID:       "client-1",
		ProfessionalID: "prof-1",
		Date:           strPtr("2025-03-10"),
		DayOfWeek:      intPtr(1),
		StartTime:      "09:00",
		EndTime:        "12:00",
		DurationMin:    60,
	})
	assert.True(t, httperr.IsBusiness(err, "date_or_day_of_week_required"))
}

func TestGenerateSlots_InvalidDayOfWeek(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGenerateSlots(repo)

	_, err := uc.Execute(context.Background(), GenerateSlotsInput{
		ClientID:       "client-1",
		ProfessionalID: "prof-1",
		DayOfWeek:      intPtr(7),
		StartTime:      "09:00",
		EndTime:        "12:00",
		DurationMin:    60,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_day_of_week"))
}

func TestGenerateSlots_PropagatesSplitErrors(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGenerateSlots(repo)

	_, err := uc.Execute(context.Background(), GenerateSlotsInput{
		ClientID:       "client-1",
		ProfessionalID: "prof-1",
		Date:           strPtr("2025-03-10"),
		StartTime:      "12:00",
		EndTime:        "09:00",
		DurationMin:    60,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_range"))
	assert.Empty(t, repo.availability)
}
