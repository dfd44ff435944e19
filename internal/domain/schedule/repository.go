package schedule

import (
	"context"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
)

type Repository interface {
	// Transaction executa fn com um Repository preso à mesma transação;
	// erro de fn desfaz tudo.
	Transaction(
		ctx context.Context,
		fn func(Repository) error,
	) error

	// -------- Tenant --------
	GetClientByID(
		ctx context.Context,
		id string,
	) (*models.Client, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		clientID string,
		serviceID string,
	) (*models.Service, error)

	// -------- Availability --------
	ListTemplates(
		ctx context.Context,
		professionalID string, // vazio = todos os profissionais
	) ([]models.Availability, error)

	AvailabilityExists(
		ctx context.Context,
		professionalID string,
		date string,
		startTime string,
		endTime string,
	) (bool, error)

	CreateAvailability(
		ctx context.Context,
		av *models.Availability,
	) error

	GetAvailability(
		ctx context.Context,
		id string,
	) (*models.Availability, error)

	// ClaimAvailability tranca a janela, exige is_active e a ocupa.
	// Devolve slot_already_booked se outra reserva chegou antes.
	ClaimAvailability(
		ctx context.Context,
		id string,
	) (*models.Availability, error)

	ReleaseAvailability(
		ctx context.Context,
		id string,
	) error

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	DeleteAppointment(
		ctx context.Context,
		id string,
	) error
}
