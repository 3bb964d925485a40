package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/glowupapps/salon-scheduler/internal/domain/schedule"
	"github.com/glowupapps/salon-scheduler/internal/httperr"
	"github.com/glowupapps/salon-scheduler/internal/models"
	ucAppointment "github.com/glowupapps/salon-scheduler/internal/usecase/appointment"
)

// Tentativas do commit atômico antes de devolver conflito ao cliente.
const maxCreateRetries = 3

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Catálogo
// --------------------------------------------------

func (r *AppointmentGormRepository) GetActiveService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = true", id).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *AppointmentGormRepository) GetActiveStylist(
	ctx context.Context,
	id uint,
) (*models.Stylist, error) {

	var stylist models.Stylist
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = true", id).
		First(&stylist).Error; err != nil {
		return nil, err
	}
	return &stylist, nil
}

func (r *AppointmentGormRepository) StylistOffersService(
	ctx context.Context,
	stylistID uint,
	serviceID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Table("stylist_services").
		Where("stylist_id = ? AND service_id = ?", stylistID, serviceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) ListStylistsForService(
	ctx context.Context,
	serviceID uint,
) ([]models.Stylist, error) {

	var stylists []models.Stylist
	if err := r.db.WithContext(ctx).
		Joins("JOIN stylist_services ss ON ss.stylist_id = stylists.id").
		Where("ss.service_id = ? AND stylists.is_active = true", serviceID).
		Order("stylists.id ASC").
		Find(&stylists).Error; err != nil {
		return nil, err
	}
	return stylists, nil
}

// --------------------------------------------------
// Agendamentos
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBusyIntervals(
	ctx context.Context,
	stylistIDs []uint,
	window schedule.TimeRange,
) (map[uint][]schedule.TimeRange, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("stylist_id", "start_time", "end_time").
		Where(
			"stylist_id IN ? AND status IN ? AND start_time < ? AND end_time > ?",
			stylistIDs, schedule.ActiveStatuses, window.End, window.Start,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	busy := make(map[uint][]schedule.TimeRange, len(stylistIDs))
	for _, ap := range aps {
		busy[ap.StylistID] = append(busy[ap.StylistID], schedule.TimeRange{
			Start: ap.StartTime,
			End:   ap.EndTime,
		})
	}
	return busy, nil
}

// CreateAppointmentIfFree re-checa a sobreposição e grava a linha como
// uma unidade serializável. Falha de serialização entre pedidos
// concorrentes é repetida; esgotadas as tentativas, o chamador recebe
// slot_conflict — nunca uma escrita parcial.
func (r *AppointmentGormRepository) CreateAppointmentIfFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	for attempt := 0; attempt < maxCreateRetries; attempt++ {
		ap.ID = 0 // rollback anterior pode ter deixado ID preenchido

		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var conflicts []models.Appointment
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Select("id").
				Where(
					"stylist_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
					ap.StylistID, schedule.ActiveStatuses, ap.EndTime, ap.StartTime,
				).
				Find(&conflicts).Error; err != nil {
				return err
			}

			if len(conflicts) > 0 {
				return httperr.ErrBusiness("slot_conflict")
			}

			return tx.Create(ap).Error
		}, &sql.TxOptions{Isolation: sql.LevelSerializable})

		if err == nil {
			return nil
		}

		if httperr.IsSerializationConflict(err) {
			continue
		}

		if httperr.IsExclusionConflict(err) {
			return httperr.ErrBusiness("slot_conflict")
		}

		return err
	}

	return httperr.ErrBusiness("slot_conflict")
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Stylist").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// Compile-time check
var _ ucAppointment.Repository = (*AppointmentGormRepository)(nil)
