package appointment

import (
	"context"

	"github.com/glowupapps/salon-scheduler/internal/audit"
	"github.com/glowupapps/salon-scheduler/internal/httperr"
	"github.com/glowupapps/salon-scheduler/internal/models"
)

type UpdatePayment struct {
	repo  Repository
	audit *audit.Dispatcher
}

func NewUpdatePayment(repo Repository, audit *audit.Dispatcher) *UpdatePayment {
	return &UpdatePayment{repo: repo, audit: audit}
}

// Execute marca o pagamento. Não mexe no status: pagamento é só um
// flag de controle do salão.
func (uc *UpdatePayment) Execute(
	ctx context.Context,
	actorID uint,
	appointmentID uint,
	isPaid bool,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	ap.IsPaid = isPaid

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  ap.Stylist.SalonID,
		UserID:   &actorID,
		Action:   "appointment_payment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
