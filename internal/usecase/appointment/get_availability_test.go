package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowupapps/salon-scheduler/internal/audit"
	"github.com/glowupapps/salon-scheduler/internal/domain/schedule"
	"github.com/glowupapps/salon-scheduler/internal/httperr"
	"github.com/glowupapps/salon-scheduler/internal/models"
)

func TestGetAvailabilityBaseline(t *testing.T) {
	repo := seedRepo()
	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		ServiceID: 10,
		Date:      testMonday,
	})
	require.NoError(t, err)

	// 09:00..17:00 de 30 em 30, serviço de 60min
	require.Len(t, slots, 17)
	assert.Equal(t, mondayAt(9, 0), slots[0].StartTime)
	assert.Equal(t, mondayAt(17, 0), slots[16].StartTime)
	assert.Equal(t, "Ana", slots[0].StylistName)
}

func TestGetAvailabilityIdempotentWithoutBooking(t *testing.T) {
	repo := seedRepo()
	uc := NewGetAvailability(repo, nil)

	in := AvailabilityInput{ServiceID: 10, Date: testMonday}

	first, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetAvailabilityExcludesBookedSlots(t *testing.T) {
	repo := seedRepo()
	create, _ := newCreateUC(repo)
	uc := NewGetAvailability(repo, nil)

	_, err := create.Execute(context.Background(), CreateAppointmentInput{
		ClientID:        42,
		ServiceID:       10,
		StylistID:       1,
		StartTime:       mondayAt(10, 0),
		AppointmentType: schedule.TypeInSalon,
	})
	require.NoError(t, err)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		ServiceID: 10,
		Date:      testMonday,
	})
	require.NoError(t, err)

	booked := schedule.TimeRange{Start: mondayAt(10, 0), End: mondayAt(11, 0)}
	for _, s := range slots {
		assert.False(t, schedule.Overlaps(
			schedule.TimeRange{Start: s.StartTime, End: s.EndTime},
			booked,
		))
	}
}

func TestGetAvailabilityPinnedStylist(t *testing.T) {
	repo := seedRepo()
	repo.addStylist(models.Stylist{
		ID:       2,
		SalonID:  3,
		FullName: "Bia",
		IsActive: true,
		WorkingHours: schedule.WeeklyHours{
			"monday": {{Start: "09:00", End: "12:00"}},
		},
	}, 10)
	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		ServiceID: 10,
		Date:      testMonday,
		StylistID: 2,
	})
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for _, s := range slots {
		assert.Equal(t, uint(2), s.StylistID)
	}
}

func TestGetAvailabilityNoCandidates(t *testing.T) {
	repo := seedRepo()
	uc := NewGetAvailability(repo, nil)

	// estilista fixado que não oferece o serviço: nenhum candidato
	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		ServiceID: 10,
		Date:      testMonday,
		StylistID: 99,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailabilityUnknownService(t *testing.T) {
	repo := seedRepo()
	uc := NewGetAvailability(repo, nil)

	_, err := uc.Execute(context.Background(), AvailabilityInput{
		ServiceID: 999,
		Date:      testMonday,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestGetAvailabilityServesFromCache(t *testing.T) {
	repo := seedRepo()
	cache := newFakeCache()
	canned := []schedule.TimeSlot{{StartTime: mondayAt(9, 0), EndTime: mondayAt(10, 0), StylistID: 1}}
	cache.preloaded["2025-03-10"] = canned

	uc := NewGetAvailability(repo, cache)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		ServiceID: 10,
		Date:      testMonday,
	})
	require.NoError(t, err)

	assert.Equal(t, canned, slots)
	assert.Zero(t, cache.sets)
}

func TestGetAvailabilityPopulatesCache(t *testing.T) {
	repo := seedRepo()
	cache := newFakeCache()
	uc := NewGetAvailability(repo, cache)

	_, err := uc.Execute(context.Background(), AvailabilityInput{
		ServiceID: 10,
		Date:      testMonday,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
}

func TestBookingInvalidatesAvailabilityCache(t *testing.T) {
	repo := seedRepo()
	cache := newFakeCache()
	create := NewCreateAppointment(repo, cache, audit.NewDispatcher(nil))

	_, err := create.Execute(context.Background(), CreateAppointmentInput{
		ClientID:        42,
		ServiceID:       10,
		StylistID:       1,
		StartTime:       mondayAt(10, 0),
		AppointmentType: schedule.TypeInSalon,
	})
	require.NoError(t, err)

	assert.Contains(t, cache.invalidated, "2025-03-10")
}
