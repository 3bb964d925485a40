package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/glowupapps/salon-scheduler/internal/audit"
	"github.com/glowupapps/salon-scheduler/internal/domain/schedule"
	"github.com/glowupapps/salon-scheduler/internal/httperr"
	"github.com/glowupapps/salon-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID  uint
	ServiceID uint
	StylistID uint

	StartTime       time.Time
	AppointmentType schedule.AppointmentType
	Address         string
	Notes           string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  Repository
	cache SlotCache
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo Repository,
	cache SlotCache,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// Execute valida o pedido, precifica e entrega o insert à checagem
// atômica do repositório. Ou o agendamento nasce inteiro, ou nada é
// gravado.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if !schedule.IsValidType(in.AppointmentType) {
		return nil, httperr.ErrBusiness("invalid_appointment_type")
	}

	if in.AppointmentType == schedule.TypeAtHome && in.Address == "" {
		return nil, httperr.ErrBusiness("address_required")
	}

	service, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	if service.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_service_duration")
	}

	stylist, err := uc.repo.GetActiveStylist(ctx, in.StylistID)
	if err != nil {
		return nil, httperr.ErrBusiness("stylist_not_found")
	}

	offers, err := uc.repo.StylistOffersService(ctx, stylist.ID, service.ID)
	if err != nil {
		return nil, err
	}
	if !offers {
		return nil, httperr.ErrBusiness("stylist_service_mismatch")
	}

	end := in.StartTime.Add(time.Duration(service.DurationMin) * time.Minute)
	interval := schedule.TimeRange{Start: in.StartTime, End: end}

	// Expediente: distinguir "não trabalha no dia" de "trabalha, mas
	// não nesse horário" só muda a mensagem para o cliente.
	if !stylist.WorkingHours.WorksOn(in.StartTime.Weekday()) {
		return nil, httperr.ErrBusiness("stylist_day_off")
	}

	blocks, err := stylist.WorkingHours.BlocksFor(in.StartTime)
	if err != nil {
		return nil, err
	}

	within := false
	for _, block := range blocks {
		if schedule.Contains(block, interval) {
			within = true
			break
		}
	}
	if !within {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	quote := schedule.QuotePrice(service.Price, service.HomeServiceFee, in.AppointmentType)

	ap := &models.Appointment{
		BookingRef: uuid.NewString(),

		ClientID:  in.ClientID,
		ServiceID: service.ID,
		StylistID: stylist.ID,

		StartTime: in.StartTime,
		EndTime:   end,

		Status:          string(schedule.StatusPending),
		AppointmentType: string(in.AppointmentType),
		Address:         in.Address,
		Notes:           in.Notes,

		Price:          quote.Price,
		OriginalPrice:  quote.OriginalPrice,
		AdditionalFees: quote.AdditionalFees,
		DiscountAmount: quote.DiscountAmount,
		IsPaid:         false,
	}

	if err := uc.repo.CreateAppointmentIfFree(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "slot_conflict") {
			uc.audit.Dispatch(audit.Event{
				SalonID: stylist.SalonID,
				UserID:  &in.ClientID,
				Action:  "appointment_conflict",
				Entity:  "appointment",
				Metadata: map[string]any{
					"stylist_id": stylist.ID,
					"start":      in.StartTime,
					"end":        end,
				},
			})
		}
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, in.StartTime.Format("2006-01-02"))
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  stylist.SalonID,
		UserID:   &in.ClientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
