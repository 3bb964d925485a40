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

func seedAppointment(repo *fakeRepo, t *testing.T) *models.Appointment {
	t.Helper()

	create, _ := newCreateUC(repo)
	ap, err := create.Execute(context.Background(), CreateAppointmentInput{
		ClientID:        42,
		ServiceID:       10,
		StylistID:       1,
		StartTime:       mondayAt(10, 0),
		AppointmentType: schedule.TypeInSalon,
	})
	require.NoError(t, err)
	return ap
}

func newStatusUC(repo *fakeRepo) (*UpdateStatus, *fakeCache) {
	cache := newFakeCache()
	return NewUpdateStatus(repo, cache, audit.NewDispatcher(nil)), cache
}

func TestUpdateStatusConfirm(t *testing.T) {
	repo := seedRepo()
	ap := seedAppointment(repo, t)
	uc, _ := newStatusUC(repo)

	updated, err := uc.Execute(context.Background(), 1, ap.ID, schedule.StatusConfirmed, "")
	require.NoError(t, err)

	assert.Equal(t, string(schedule.StatusConfirmed), updated.Status)
	assert.Nil(t, updated.CancelledAt)
	assert.Nil(t, updated.CompletedAt)
}

func TestUpdateStatusCancelRecordsReason(t *testing.T) {
	repo := seedRepo()
	ap := seedAppointment(repo, t)
	uc, cache := newStatusUC(repo)

	updated, err := uc.Execute(context.Background(), 42, ap.ID, schedule.StatusCancelled, "mudei de planos")
	require.NoError(t, err)

	assert.Equal(t, string(schedule.StatusCancelled), updated.Status)
	assert.Equal(t, "mudei de planos", updated.CancellationReason)
	require.NotNil(t, updated.CancelledAt)

	// cancelamento libera o horário: disponibilidade do dia é invalidada
	assert.Contains(t, cache.invalidated, "2025-03-10")
}

func TestUpdateStatusCancelWithoutReason(t *testing.T) {
	repo := seedRepo()
	ap := seedAppointment(repo, t)
	uc, _ := newStatusUC(repo)

	_, err := uc.Execute(context.Background(), 42, ap.ID, schedule.StatusCancelled, "")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "cancellation_reason_required"))

	// nada foi persistido
	stored, getErr := repo.GetAppointment(context.Background(), ap.ID)
	require.NoError(t, getErr)
	assert.Equal(t, string(schedule.StatusPending), stored.Status)
}

func TestUpdateStatusCompleteSetsTimestamp(t *testing.T) {
	repo := seedRepo()
	ap := seedAppointment(repo, t)
	uc, cache := newStatusUC(repo)

	_, err := uc.Execute(context.Background(), 1, ap.ID, schedule.StatusConfirmed, "")
	require.NoError(t, err)

	updated, err := uc.Execute(context.Background(), 1, ap.ID, schedule.StatusCompleted, "")
	require.NoError(t, err)

	assert.Equal(t, string(schedule.StatusCompleted), updated.Status)
	require.NotNil(t, updated.CompletedAt)

	// concluir não devolve horário, cache do dia fica como está
	assert.Empty(t, cache.invalidated)
}

func TestUpdateStatusTerminalIsFinal(t *testing.T) {
	repo := seedRepo()
	ap := seedAppointment(repo, t)
	uc, _ := newStatusUC(repo)

	_, err := uc.Execute(context.Background(), 1, ap.ID, schedule.StatusConfirmed, "")
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), 1, ap.ID, schedule.StatusCompleted, "")
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), 1, ap.ID, schedule.StatusCancelled, "tentativa tardia")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo := seedRepo()
	uc, _ := newStatusUC(repo)

	_, err := uc.Execute(context.Background(), 1, 999, schedule.StatusConfirmed, "")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
