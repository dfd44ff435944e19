package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
)

// monta tenant, serviço e uma janela concreta livre
func seedBookable(repo *fakeRepo) (clientID, serviceID, availabilityID string) {
	repo.clients["client-1"] = &models.Client{
		ID:       "client-1",
		Name:     "Studio Glow",
		Timezone: "America/Sao_Paulo",
	}
	repo.services["svc-1"] = &models.Service{
		ID:          "svc-1",
		ClientID:    "client-1",
		Name:        "Corte",
		DurationMin: 60,
		Price:       80,
	}

	date := "2025-03-10"
	_ = repo.CreateAvailability(context.Background(), &models.Availability{
		ID:             "slot-1",
		ClientID:       "client-1",
		ProfessionalID: "prof-1",
		Date:           &date,
		StartTime:      "09:00",
		EndTime:        "10:00",
		IsActive:       true,
	})

	return "client-1", "svc-1", "slot-1"
}

func bookingInput(clientID, serviceID, availabilityID string) CreateAppointmentInput {
	return CreateAppointmentInput{
		ClientID:       clientID,
		ProfessionalID: "prof-1",
		ServiceID:      serviceID,
		AvailabilityID: availabilityID,
		CustomerName:   "Maria",
		CustomerPhone:  "5511999990000",
	}
}

func TestCreateAppointment(t *testing.T) {
	repo := newFakeRepo()
	clientID, serviceID, slotID := seedBookable(repo)

	uc := NewCreateAppointment(repo, newTestDispatcher())

	ap, err := uc.Execute(context.Background(), bookingInput(clientID, serviceID, slotID))
	require.NoError(t, err)
	require.NotNil(t, ap)

	assert.Equal(t, "pending", ap.Status)
	assert.Equal(t, "Maria", ap.CustomerName)

	// ScheduledAt nasce da data + hora da janela no fuso do tenant
	loc, _ := time.LoadLocation("America/Sao_Paulo")
	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, loc), ap.ScheduledAt)

	// a janela sai de circulação
	slot := repo.availability[slotID]
	assert.False(t, slot.IsActive)
}

func TestCreateAppointment_MissingFields(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, newTestDispatcher())

	in := bookingInput("client-1", "svc-1", "slot-1")
	in.ServiceID = ""

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "missing_required_field"))
	assert.Empty(t, repo.appointments)
}

func TestCreateAppointment_UnknownClient(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, newTestDispatcher())

	_, err := uc.Execute(context.Background(), bookingInput("ghost", "svc-1", "slot-1"))
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}

func TestCreateAppointment_UnknownService(t *testing.T) {
	repo := newFakeRepo()
	clientID, _, slotID := seedBookable(repo)

	uc := NewCreateAppointment(repo, newTestDispatcher())

	_, err := uc.Execute(context.Background(), bookingInput(clientID, "ghost", slotID))
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreateAppointment_SlotAlreadyBooked(t *testing.T) {
	repo := newFakeRepo()
	clientID, serviceID, slotID := seedBookable(repo)

	uc := NewCreateAppointment(repo, newTestDispatcher())
	in := bookingInput(clientID, serviceID, slotID)

	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	// segunda tentativa encontra a janela ocupada
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "slot_already_booked"))
	assert.Len(t, repo.appointments, 1)
}

func TestCreateAppointment_TemplateNotBookable(t *testing.T) {
	repo := newFakeRepo()
	clientID, serviceID, _ := seedBookable(repo)

	_ = repo.CreateAvailability(context.Background(), &models.Availability{
		ID:             "tmpl-1",
		ClientID:       clientID,
		ProfessionalID: "prof-1",
		DayOfWeek:      intPtr(1),
		StartTime:      "09:00",
		EndTime:        "10:00",
		IsActive:       true,
	})

	uc := NewCreateAppointment(repo, newTestDispatcher())

	_, err := uc.Execute(context.Background(), bookingInput(clientID, serviceID, "tmpl-1"))
	assert.True(t, httperr.IsBusiness(err, "availability_not_bookable"))
	assert.Empty(t, repo.appointments)
}

func TestCreateAppointment_NormalizesLegacyStatus(t *testing.T) {
	repo := newFakeRepo()
	clientID, serviceID, slotID := seedBookable(repo)

	uc := NewCreateAppointment(repo, newTestDispatcher())

	in := bookingInput(clientID, serviceID, slotID)
	in.Status = "confirmado"

	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", ap.Status)
}
