package schedule

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/audit"
	domain "github.com/semprecheioapp/semprecheioapp-sub001/internal/domain/schedule"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
)

// fakeRepo guarda tudo em memória e registra a ordem das mutações,
// o que permite verificar a sequência liberar-depois-apagar do
// cancelamento sem banco.
type fakeRepo struct {
	clients      map[string]*models.Client
	services     map[string]*models.Service
	availability map[string]*models.Availability
	appointments map[string]*models.Appointment

	ops []string
	seq int

	releaseErr error
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clients:      map[string]*models.Client{},
		services:     map[string]*models.Service{},
		availability: map[string]*models.Availability{},
		appointments: map[string]*models.Appointment{},
	}
}

func (f *fakeRepo) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeRepo) Transaction(ctx context.Context, fn func(domain.Repository) error) error {
	return fn(f)
}

func (f *fakeRepo) GetClientByID(ctx context.Context, id string) (*models.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, httperr.ErrBusiness("client_not_found")
	}
	return c, nil
}

func (f *fakeRepo) GetService(ctx context.Context, clientID, serviceID string) (*models.Service, error) {
	s, ok := f.services[serviceID]
	if !ok || s.ClientID != clientID {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return s, nil
}

func (f *fakeRepo) ListTemplates(ctx context.Context, professionalID string) ([]models.Availability, error) {
	var out []models.Availability
	for _, av := range f.availability {
		if !av.IsTemplate() || !av.IsActive {
			continue
		}
		if professionalID != "" && av.ProfessionalID != professionalID {
			continue
		}
		out = append(out, *av)
	}
	return out, nil
}

func (f *fakeRepo) AvailabilityExists(ctx context.Context, professionalID, date, startTime, endTime string) (bool, error) {
	for _, av := range f.availability {
		if av.ProfessionalID == professionalID &&
			av.Date != nil && *av.Date == date &&
			av.StartTime == startTime && av.EndTime == endTime {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateAvailability(ctx context.Context, av *models.Availability) error {
	if av.ID == "" {
		av.ID = f.nextID("av")
	}
	cp := *av
	f.availability[av.ID] = &cp
	f.ops = append(f.ops, "create_availability:"+av.ID)
	return nil
}

func (f *fakeRepo) GetAvailability(ctx context.Context, id string) (*models.Availability, error) {
	av, ok := f.availability[id]
	if !ok {
		return nil, httperr.ErrBusiness("availability_not_found")
	}
	return av, nil
}

func (f *fakeRepo) ClaimAvailability(ctx context.Context, id string) (*models.Availability, error) {
	av, ok := f.availability[id]
	if !ok {
		return nil, httperr.ErrBusiness("availability_not_found")
	}
	if !av.IsActive {
		return nil, httperr.ErrBusiness("slot_already_booked")
	}
	av.IsActive = false
	f.ops = append(f.ops, "claim:"+id)
	return av, nil
}

func (f *fakeRepo) ReleaseAvailability(ctx context.Context, id string) error {
	if f.releaseErr != nil {
		return f.releaseErr
	}
	av, ok := f.availability[id]
	if !ok {
		return httperr.ErrBusiness("availability_not_found")
	}
	av.IsActive = true
	f.ops = append(f.ops, "release:"+id)
	return nil
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if ap.ID == "" {
		ap.ID = f.nextID("ap")
	}
	cp := *ap
	f.appointments[ap.ID] = &cp
	f.ops = append(f.ops, "create_appointment:"+ap.ID)
	return nil
}

func (f *fakeRepo) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	ap, ok := f.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return ap, nil
}

func (f *fakeRepo) DeleteAppointment(ctx context.Context, id string) error {
	if _, ok := f.appointments[id]; !ok {
		return httperr.ErrBusiness("appointment_not_found")
	}
	delete(f.appointments, id)
	f.ops = append(f.ops, "delete_appointment:"+id)
	return nil
}

// --------- Helpers ---------

type nopSink struct{}

func (nopSink) Log(string, *string, string, string, *string, any) error {
	return nil
}

func newTestDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(nopSink{}, zap.NewNop())
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
