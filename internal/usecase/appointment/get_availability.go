package appointment

import (
	"context"
	"time"

	"github.com/glowupapps/salon-scheduler/internal/domain/schedule"
	"github.com/glowupapps/salon-scheduler/internal/httperr"
)

// ======================================================
// INPUT
// ======================================================

type AvailabilityInput struct {
	ServiceID uint
	Date      time.Time

	// Zero = todos os estilistas ativos que oferecem o serviço
	StylistID uint
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailability struct {
	repo  Repository
	cache SlotCache
}

func NewGetAvailability(repo Repository, cache SlotCache) *GetAvailability {
	return &GetAvailability{repo: repo, cache: cache}
}

// Execute lista os horários livres para o serviço na data. O resultado
// é consultivo: um slot devolvido aqui ainda pode ser perdido para
// outro cliente até o commit da criação.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]schedule.TimeSlot, error) {

	dateKey := in.Date.Format("2006-01-02")

	if uc.cache != nil {
		if slots, ok := uc.cache.Get(ctx, in.ServiceID, in.StylistID, dateKey); ok {
			return slots, nil
		}
	}

	service, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	stylists, err := uc.repo.ListStylistsForService(ctx, service.ID)
	if err != nil {
		return nil, err
	}

	candidates := make([]schedule.StylistCandidate, 0, len(stylists))
	ids := make([]uint, 0, len(stylists))
	for _, st := range stylists {
		if in.StylistID != 0 && st.ID != in.StylistID {
			continue
		}
		candidates = append(candidates, schedule.StylistCandidate{
			ID:    st.ID,
			Name:  st.FullName,
			Hours: st.WorkingHours,
		})
		ids = append(ids, st.ID)
	}

	if len(candidates) == 0 {
		return []schedule.TimeSlot{}, nil
	}

	dayStart := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, in.Date.Location())
	window := schedule.TimeRange{Start: dayStart, End: dayStart.Add(24 * time.Hour)}

	busy, err := uc.repo.ListBusyIntervals(ctx, ids, window)
	if err != nil {
		return nil, err
	}

	slots, err := schedule.GenerateSlots(dayStart, service.DurationMin, candidates, busy)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, in.ServiceID, in.StylistID, dateKey, slots)
	}

	return slots, nil
}
