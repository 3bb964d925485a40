package schedule

import "time"

// ===============================
// Geração de slots
// ===============================

// SlotStepMinutes é o passo fixo entre candidatos a slot.
const SlotStepMinutes = 30

// TimeSlot é um horário livre de exatamente a duração do serviço,
// dentro do expediente do estilista.
type TimeSlot struct {
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	StylistID   uint      `json:"stylist_id"`
	StylistName string    `json:"stylist_name"`
}

// StylistCandidate é um estilista elegível para a busca de horários.
type StylistCandidate struct {
	ID    uint
	Name  string
	Hours WeeklyHours
}

// GenerateSlots produz os horários disponíveis na data informada.
//
// Para cada candidato, na ordem recebida: percorre os blocos do dia
// (ordenados), anda de SlotStepMinutes em SlotStepMinutes enquanto o
// slot couber no bloco, e descarta candidatos que conflitem com os
// intervalos ocupados do estilista. Saída determinística: agrupada
// por estilista, crescente por início dentro de cada um.
//
// O resultado é consultivo. A palavra final sobre conflito é sempre
// da transação de criação.
func GenerateSlots(
	date time.Time,
	durationMin int,
	stylists []StylistCandidate,
	busy map[uint][]TimeRange,
) ([]TimeSlot, error) {

	duration := time.Duration(durationMin) * time.Minute
	step := SlotStepMinutes * time.Minute

	slots := []TimeSlot{}

	for _, st := range stylists {
		blocks, err := st.Hours.BlocksFor(date)
		if err != nil {
			return nil, err
		}

		taken := busy[st.ID]

		for _, block := range blocks {
			// bloco menor que o serviço não gera slot algum
			for cur := block.Start; !cur.Add(duration).After(block.End); cur = cur.Add(step) {
				candidate := TimeRange{Start: cur, End: cur.Add(duration)}

				conflict := false
				for _, t := range taken {
					if Overlaps(candidate, t) {
						conflict = true
						break
					}
				}
				if conflict {
					continue
				}

				slots = append(slots, TimeSlot{
					StartTime:   candidate.Start,
					EndTime:     candidate.End,
					StylistID:   st.ID,
					StylistName: st.Name,
				})
			}
		}
	}

	return slots, nil
}
