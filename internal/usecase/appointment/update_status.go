package appointment

import (
	"context"

	"github.com/glowupapps/salon-scheduler/internal/audit"
	"github.com/glowupapps/salon-scheduler/internal/domain/schedule"
	"github.com/glowupapps/salon-scheduler/internal/httperr"
	"github.com/glowupapps/salon-scheduler/internal/models"
	"github.com/glowupapps/salon-scheduler/internal/timezone"
)

type UpdateStatus struct {
	repo  Repository
	cache SlotCache
	audit *audit.Dispatcher
}

func NewUpdateStatus(
	repo Repository,
	cache SlotCache,
	audit *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// Execute aplica a máquina de estados. Quem pode pedir qual transição
// já foi decidido pelo handler; aqui só vale a legalidade da mudança.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	actorID uint,
	appointmentID uint,
	newStatus schedule.Status,
	cancellationReason string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := schedule.CanTransition(schedule.Status(ap.Status), newStatus, cancellationReason); err != nil {
		return nil, err
	}

	now := timezone.Now()

	ap.Status = string(newStatus)
	switch newStatus {
	case schedule.StatusCancelled:
		ap.CancellationReason = cancellationReason
		ap.CancelledAt = &now
	case schedule.StatusCompleted:
		ap.CompletedAt = &now
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// cancelamento devolve o horário; invalida a disponibilidade do dia
	if uc.cache != nil && newStatus == schedule.StatusCancelled {
		uc.cache.Invalidate(ctx, ap.StartTime.Format("2006-01-02"))
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  ap.Stylist.SalonID,
		UserID:   &actorID,
		Action:   "appointment_status_" + string(newStatus),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
