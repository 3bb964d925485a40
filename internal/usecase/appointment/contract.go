package appointment

import (
	"context"

	"github.com/glowupapps/salon-scheduler/internal/domain/schedule"
	"github.com/glowupapps/salon-scheduler/internal/models"
)

// Repository reúne o catálogo (serviços/estilistas) e a persistência
// de agendamentos consumidos pelos casos de uso.
type Repository interface {
	// -------- Catálogo --------
	GetActiveService(ctx context.Context, id uint) (*models.Service, error)

	GetActiveStylist(ctx context.Context, id uint) (*models.Stylist, error)

	StylistOffersService(ctx context.Context, stylistID, serviceID uint) (bool, error)

	ListStylistsForService(ctx context.Context, serviceID uint) ([]models.Stylist, error)

	// -------- Agendamentos --------

	// ListBusyIntervals devolve, por estilista, os intervalos ocupados
	// por agendamentos pending/confirmed dentro da janela informada.
	// Leitura consultiva: pode rodar fora da transação de criação.
	ListBusyIntervals(ctx context.Context, stylistIDs []uint, window schedule.TimeRange) (map[uint][]schedule.TimeRange, error)

	// CreateAppointmentIfFree executa a checagem de sobreposição e o
	// insert como uma unidade serializável. Conflito detectado (ou
	// retries esgotados) vira BusinessError "slot_conflict".
	CreateAppointmentIfFree(ctx context.Context, ap *models.Appointment) error

	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
}

// SlotCache é o cache consultivo de disponibilidade. Nunca é fonte de
// verdade para conflito; só poupa leituras na listagem de horários.
type SlotCache interface {
	Get(ctx context.Context, serviceID, stylistID uint, date string) ([]schedule.TimeSlot, bool)
	Set(ctx context.Context, serviceID, stylistID uint, date string, slots []schedule.TimeSlot)
	Invalidate(ctx context.Context, date string)
}
