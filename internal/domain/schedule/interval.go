package schedule

import "time"

// ===============================
// Intervalos de tempo
// ===============================

// TimeRange é um intervalo meio-aberto [Start, End).
// Contrato do chamador: Start < End.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps verifica sobreposição real entre dois intervalos.
// Intervalos que apenas se tocam na borda NÃO contam como conflito,
// permitindo agendamentos consecutivos (ex: 10:00-11:00 e 11:00-12:00).
func Overlaps(a, b TimeRange) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Contains verifica se inner está inteiramente dentro de outer.
func Contains(outer, inner TimeRange) bool {
	return !inner.Start.Before(outer.Start) && !inner.End.After(outer.End)
}
