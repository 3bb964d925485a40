package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ===============================
// Expediente semanal
// ===============================

// TimeBlock é um bloco de expediente em hora local ("HH:MM").
type TimeBlock struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeeklyHours mapeia o dia da semana (minúsculo, em inglês: "monday"...)
// para os blocos de expediente daquele dia. Uma pausa de almoço vira
// dois blocos. Persistido como JSONB no registro do estilista.
type WeeklyHours map[string][]TimeBlock

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

// WeekdayName devolve o nome usado como chave em WeeklyHours.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}

func parseHM(hm string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(hm))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: %w", hm, err)
	}
	return t.Hour(), t.Minute(), nil
}

// Materialize converte o bloco em um TimeRange no dia informado,
// mantendo a localização da data.
func (b TimeBlock) Materialize(date time.Time) (TimeRange, error) {
	sh, sm, err := parseHM(b.Start)
	if err != nil {
		return TimeRange{}, err
	}
	eh, em, err := parseHM(b.End)
	if err != nil {
		return TimeRange{}, err
	}

	loc := date.Location()
	start := time.Date(date.Year(), date.Month(), date.Day(), sh, sm, 0, 0, loc)
	end := time.Date(date.Year(), date.Month(), date.Day(), eh, em, 0, 0, loc)

	if !start.Before(end) {
		return TimeRange{}, fmt.Errorf("block %s-%s: start must be before end", b.Start, b.End)
	}

	return TimeRange{Start: start, End: end}, nil
}

// BlocksFor devolve os blocos do dia já materializados e ordenados por
// início. A ordem de armazenamento não é garantida, então ordenamos
// aqui antes de qualquer geração de slot. Dia sem expediente devolve
// lista vazia (não é erro).
func (w WeeklyHours) BlocksFor(date time.Time) ([]TimeRange, error) {
	if w == nil {
		return nil, nil
	}

	blocks, ok := w[WeekdayName(date.Weekday())]
	if !ok {
		return nil, nil
	}

	ranges := make([]TimeRange, 0, len(blocks))
	for _, b := range blocks {
		r, err := b.Materialize(date)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}

	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start.Before(ranges[j].Start)
	})

	return ranges, nil
}

// WorksOn informa se existe algum bloco cadastrado para o dia.
func (w WeeklyHours) WorksOn(d time.Weekday) bool {
	if w == nil {
		return false
	}
	return len(w[WeekdayName(d)]) > 0
}

// Validate confere o formato dos blocos e a disjunção dentro de cada
// dia. Usado na escrita (cadastro de expediente), não na leitura.
func (w WeeklyHours) Validate() error {
	ref := time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC) // segunda-feira qualquer

	for day, blocks := range w {
		if _, ok := nameToWeekday[day]; !ok {
			return fmt.Errorf("unknown weekday %q", day)
		}

		ranges := make([]TimeRange, 0, len(blocks))
		for _, b := range blocks {
			r, err := b.Materialize(ref)
			if err != nil {
				return fmt.Errorf("%s: %w", day, err)
			}
			ranges = append(ranges, r)
		}

		sort.Slice(ranges, func(i, j int) bool {
			return ranges[i].Start.Before(ranges[j].Start)
		})

		for i := 1; i < len(ranges); i++ {
			if Overlaps(ranges[i-1], ranges[i]) {
				return fmt.Errorf("%s: blocks overlap", day)
			}
		}
	}

	return nil
}

var nameToWeekday = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ===============================
// Persistência (JSONB)
// ===============================

func (w WeeklyHours) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	b, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (w *WeeklyHours) Scan(value any) error {
	if value == nil {
		*w = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, w)
	case string:
		return json.Unmarshal([]byte(v), w)
	default:
		return errors.New("unsupported type for WeeklyHours")
	}
}
