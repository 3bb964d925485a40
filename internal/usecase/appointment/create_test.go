package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowupapps/salon-scheduler/internal/audit"
	"github.com/glowupapps/salon-scheduler/internal/domain/schedule"
	"github.com/glowupapps/salon-scheduler/internal/httperr"
	"github.com/glowupapps/salon-scheduler/internal/models"
)

// ======================================================
// Fakes em memória
// ======================================================

var errFakeNotFound = errors.New("registro não encontrado")

// fakeRepo simula o repositório com as mesmas garantias de atomicidade:
// a checagem de conflito e o insert acontecem sob o mesmo lock.
type fakeRepo struct {
	mu sync.Mutex

	services map[uint]*models.Service
	stylists map[uint]*models.Stylist
	offers   map[uint]map[uint]bool // estilista -> serviços oferecidos

	appointments map[uint]*models.Appointment
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     map[uint]*models.Service{},
		stylists:     map[uint]*models.Stylist{},
		offers:       map[uint]map[uint]bool{},
		appointments: map[uint]*models.Appointment{},
	}
}

func (f *fakeRepo) addService(s models.Service) {
	f.services[s.ID] = &s
}

func (f *fakeRepo) addStylist(s models.Stylist, serviceIDs ...uint) {
	f.stylists[s.ID] = &s
	f.offers[s.ID] = map[uint]bool{}
	for _, id := range serviceIDs {
		f.offers[s.ID][id] = true
	}
}

func (f *fakeRepo) GetActiveService(_ context.Context, id uint) (*models.Service, error) {
	s, ok := f.services[id]
	if !ok || !s.IsActive {
		return nil, errFakeNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) GetActiveStylist(_ context.Context, id uint) (*models.Stylist, error) {
	s, ok := f.stylists[id]
	if !ok || !s.IsActive {
		return nil, errFakeNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) StylistOffersService(_ context.Context, stylistID, serviceID uint) (bool, error) {
	return f.offers[stylistID][serviceID], nil
}

func (f *fakeRepo) ListStylistsForService(_ context.Context, serviceID uint) ([]models.Stylist, error) {
	out := []models.Stylist{}
	for _, st := range f.stylists {
		if st.IsActive && f.offers[st.ID][serviceID] {
			out = append(out, *st)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBusyIntervals(
	_ context.Context,
	stylistIDs []uint,
	window schedule.TimeRange,
) (map[uint][]schedule.TimeRange, error) {

	f.mu.Lock()
	defer f.mu.Unlock()

	wanted := map[uint]bool{}
	for _, id := range stylistIDs {
		wanted[id] = true
	}

	busy := map[uint][]schedule.TimeRange{}
	for _, ap := range f.appointments {
		if !wanted[ap.StylistID] || !isActiveStatus(ap.Status) {
			continue
		}
		r := schedule.TimeRange{Start: ap.StartTime, End: ap.EndTime}
		if schedule.Overlaps(r, window) {
			busy[ap.StylistID] = append(busy[ap.StylistID], r)
		}
	}
	return busy, nil
}

func (f *fakeRepo) CreateAppointmentIfFree(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	candidate := schedule.TimeRange{Start: ap.StartTime, End: ap.EndTime}
	for _, other := range f.appointments {
		if other.StylistID != ap.StylistID || !isActiveStatus(other.Status) {
			continue
		}
		if schedule.Overlaps(candidate, schedule.TimeRange{Start: other.StartTime, End: other.EndTime}) {
			return httperr.ErrBusiness("slot_conflict")
		}
	}

	f.nextID++
	ap.ID = f.nextID
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ap, ok := f.appointments[id]
	if !ok {
		return nil, errFakeNotFound
	}
	cp := *ap
	if st, ok := f.stylists[ap.StylistID]; ok {
		cp.Stylist = *st
	}
	return &cp, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.appointments[ap.ID]; !ok {
		return errFakeNotFound
	}
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func isActiveStatus(s string) bool {
	for _, a := range schedule.ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// fakeCache registra chamadas; nunca interfere no resultado a menos
// que preloaded seja preenchido.
type fakeCache struct {
	mu sync.Mutex

	preloaded   map[string][]schedule.TimeSlot
	sets        int
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{preloaded: map[string][]schedule.TimeSlot{}}
}

func (c *fakeCache) Get(_ context.Context, _, _ uint, date string) ([]schedule.TimeSlot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	slots, ok := c.preloaded[date]
	return slots, ok
}

func (c *fakeCache) Set(_ context.Context, _, _ uint, _ string, _ []schedule.TimeSlot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
}

func (c *fakeCache) Invalidate(_ context.Context, date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, date)
}

// ======================================================
// Cenário padrão
// ======================================================

var testMonday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func mondayAt(hour, min int) time.Time {
	return testMonday.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func seedRepo() *fakeRepo {
	repo := newFakeRepo()

	fee := 15.0
	repo.addService(models.Service{
		ID:             10,
		SalonID:        3,
		Name:           "Corte feminino",
		DurationMin:    60,
		Price:          50,
		HomeServiceFee: &fee,
		IsActive:       true,
	})

	repo.addStylist(models.Stylist{
		ID:       1,
		SalonID:  3,
		FullName: "Ana",
		IsActive: true,
		WorkingHours: schedule.WeeklyHours{
			"monday": {{Start: "09:00", End: "18:00"}},
		},
	}, 10)

	return repo
}

func newCreateUC(repo *fakeRepo) (*CreateAppointment, *fakeCache) {
	cache := newFakeCache()
	return NewCreateAppointment(repo, cache, audit.NewDispatcher(nil)), cache
}

// ======================================================
// Testes
// ======================================================

func TestCreateAppointmentSuccess(t *testing.T) {
	repo := seedRepo()
	uc, cache := newCreateUC(repo)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:        42,
		ServiceID:       10,
		StylistID:       1,
		StartTime:       mondayAt(10, 0),
		AppointmentType: schedule.TypeInSalon,
	})
	require.NoError(t, err)

	assert.NotZero(t, ap.ID)
	assert.Len(t, ap.BookingRef, 36)
	assert.Equal(t, string(schedule.StatusPending), ap.Status)
	assert.False(t, ap.IsPaid)
	assert.Equal(t, mondayAt(11, 0), ap.EndTime)
	assert.Equal(t, 50.0, ap.Price)
	assert.Equal(t, 0.0, ap.AdditionalFees)

	assert.Equal(t, []string{"2025-03-10"}, cache.invalidated)
}

func TestCreateAppointmentAtHomePricing(t *testing.T) {
	repo := seedRepo()
	uc, _ := newCreateUC(repo)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:        42,
		ServiceID:       10,
		StylistID:       1,
		StartTime:       mondayAt(10, 0),
		AppointmentType: schedule.TypeAtHome,
		Address:         "Rua das Flores, 123",
	})
	require.NoError(t, err)

	assert.Equal(t, 65.0, ap.Price)
	assert.Equal(t, 50.0, ap.OriginalPrice)
	assert.Equal(t, 15.0, ap.AdditionalFees)
}

func TestCreateAppointmentAtHomeRequiresAddress(t *testing.T) {
	repo := seedRepo()
	uc, _ := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:        42,
		ServiceID:       10,
		StylistID:       1,
		StartTime:       mondayAt(10, 0),
		AppointmentType: schedule.TypeAtHome,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "address_required"))
}

func TestCreateAppointmentConflict(t *testing.T) {
	repo := seedRepo()
	uc, _ := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:        42,
		ServiceID:       10,
		StylistID:       1,
		StartTime:       mondayAt(10, 0),
		AppointmentType: schedule.TypeInSalon,
	})
	require.NoError(t, err)

	// sobreposição parcial com o agendamento existente
	_, err = uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:        77,
		ServiceID:       10,
		StylistID:       1,
		StartTime:       mondayAt(10, 30),
		AppointmentType: schedule.TypeInSalon,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "slot_conflict"))

	// encostado no fim do existente é permitido
	_, err = uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:        77,
		ServiceID:       10,
		StylistID:       1,
		StartTime:       mondayAt(11, 0),
		AppointmentType: schedule.TypeInSalon,
	})
	assert.NoError(t, err)
}

func TestCreateAppointmentCancelledSlotIsFree(t *testing.T) {
	repo := seedRepo()
	uc, _ := newCreateUC(repo)

	first, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:        42,
		ServiceID:       10,
		StylistID:       1,
		StartTime:       mondayAt(10, 0),
		AppointmentType: schedule.TypeInSalon,
	})
	require.NoError(t, err)

	stored := repo.appointments[first.ID]
	stored.Status = string(schedule.StatusCancelled)

	_, err = uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:        77,
		ServiceID:       10,
		StylistID:       1,
		StartTime:       mondayAt(10, 0),
		AppointmentType: schedule.TypeInSalon,
	})
	assert.NoError(t, err)
}

func TestCreateAppointmentDayOff(t *testing.T) {
	repo := seedRepo()
	uc, _ := newCreateUC(repo)

	sunday := testMonday.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:        42,
		ServiceID:       10,
		StylistID:       1,
		StartTime:       sunday.Add(10 * time.Hour),
		AppointmentType: schedule.TypeInSalon,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "stylist_day_off"))
}

func TestCreateAppointmentOutsideWorkingHours(t *testing.T) {
	repo := seedRepo()
	uc, _ := newCreateUC(repo)

	// 17:30 + 60min estoura o fim do expediente (18:00)
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:        42,
		ServiceID:       10,
		StylistID:       1,
		StartTime:       mondayAt(17, 30),
		AppointmentType: schedule.TypeInSalon,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
}

func TestCreateAppointmentStylistServiceMismatch(t *testing.T) {
	repo := seedRepo()
	repo.addStylist(models.Stylist{
		ID:       2,
		SalonID:  3,
		FullName: "Bia",
		IsActive: true,
		WorkingHours: schedule.WeeklyHours{
			"monday": {{Start: "09:00", End: "18:00"}},
		},
	}) // não oferece o serviço 10
	uc, _ := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:        42,
		ServiceID:       10,
		StylistID:       2,
		StartTime:       mondayAt(10, 0),
		AppointmentType: schedule.TypeInSalon,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "stylist_service_mismatch"))
}

func TestCreateAppointmentInactiveService(t *testing.T) {
	repo := seedRepo()
	repo.services[10].IsActive = false
	uc, _ := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:        42,
		ServiceID:       10,
		StylistID:       1,
		StartTime:       mondayAt(10, 0),
		AppointmentType: schedule.TypeInSalon,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreateAppointmentInvalidType(t *testing.T) {
	repo := seedRepo()
	uc, _ := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientID:        42,
		ServiceID:       10,
		StylistID:       1,
		StartTime:       mondayAt(10, 0),
		AppointmentType: "video_call",
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_appointment_type"))
}

// Disputa pelo mesmo horário: exatamente um cliente fica com o slot,
// os demais recebem slot_conflict.
func TestCreateAppointmentConcurrentSingleWinner(t *testing.T) {
	repo := seedRepo()
	uc, _ := newCreateUC(repo)

	const clients = 16

	var wg sync.WaitGroup
	results := make(chan error, clients)

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(clientID uint) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), CreateAppointmentInput{
				ClientID:        clientID,
				ServiceID:       10,
				StylistID:       1,
				StartTime:       mondayAt(14, 0),
				AppointmentType: schedule.TypeInSalon,
			})
			results <- err
		}(uint(i + 1))
	}

	wg.Wait()
	close(results)

	wins, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case httperr.IsBusiness(err, "slot_conflict"):
			conflicts++
		default:
			t.Fatalf("erro inesperado: %v", err)
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, clients-1, conflicts)
	assert.Len(t, repo.appointments, 1)
}
