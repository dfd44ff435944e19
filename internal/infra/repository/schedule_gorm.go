package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/semprecheioapp/semprecheioapp-sub001/internal/domain/schedule"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *ScheduleGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewScheduleGormRepository(tx))
	})
}

// --------------------------------------------------
// Tenant
// --------------------------------------------------

func (r *ScheduleGormRepository) GetClientByID(
	ctx context.Context,
	id string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *ScheduleGormRepository) GetService(
	ctx context.Context,
	clientID string,
	serviceID string,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND client_id = ?", serviceID, clientID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *ScheduleGormRepository) ListTemplates(
	ctx context.Context,
	professionalID string,
) ([]models.Availability, error) {

	q := r.db.WithContext(ctx).
		Where("date IS NULL AND day_of_week IS NOT NULL AND is_active = true")

	if professionalID != "" {
		q = q.Where("professional_id = ?", professionalID)
	}

	var templates []models.Availability
	if err := q.Order("day_of_week ASC, start_time ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *ScheduleGormRepository) AvailabilityExists(
	ctx context.Context,
	professionalID string,
	date string,
	startTime string,
	endTime string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Availability{}).
		Where(
			"professional_id = ? AND date = ? AND start_time = ? AND end_time = ?",
			professionalID, date, startTime, endTime,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *ScheduleGormRepository) CreateAvailability(
	ctx context.Context,
	av *models.Availability,
) error {
	return r.db.WithContext(ctx).Create(av).Error
}

func (r *ScheduleGormRepository) GetAvailability(
	ctx context.Context,
	id string,
) (*models.Availability, error) {

	var av models.Availability
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&av).Error; err != nil {
		return nil, err
	}
	return &av, nil
}

func (r *ScheduleGormRepository) ClaimAvailability(
	ctx context.Context,
	id string,
) (*models.Availability, error) {

	var av models.Availability
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&av).Error; err != nil {
		return nil, httperr.ErrBusiness("availability_not_found")
	}

	if !av.IsActive {
		return nil, httperr.ErrBusiness("slot_already_booked")
	}

	av.IsActive = false
	if err := r.db.WithContext(ctx).Save(&av).Error; err != nil {
		return nil, err
	}

	return &av, nil
}

func (r *ScheduleGormRepository) ReleaseAvailability(
	ctx context.Context,
	id string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Availability{}).
		Where("id = ?", id).
		Update("is_active", true)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("availability_not_found")
	}
	return nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *ScheduleGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *ScheduleGormRepository) DeleteAppointment(
	ctx context.Context,
	id string,
) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Appointment{}).Error
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
