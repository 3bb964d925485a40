package schedule

import "github.com/glowupapps/salon-scheduler/internal/httperr"

// ===============================
// Status do agendamento
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// ===============================
// Tipo de atendimento
// ===============================

type AppointmentType string

const (
	TypeInSalon AppointmentType = "in_salon"
	TypeAtHome  AppointmentType = "at_home"
)

func IsValidType(t AppointmentType) bool {
	return t == TypeInSalon || t == TypeAtHome
}

// ActiveStatuses são os status que reservam o horário do estilista.
// Somente eles entram na detecção de conflito.
var ActiveStatuses = []string{string(StatusPending), string(StatusConfirmed)}

// transitions define a máquina de estados. Status ausente do mapa é
// terminal: nenhuma transição sai dele.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal informa se nenhuma transição sai do status.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}

// CanTransition valida a legalidade da mudança de status.
// Cancelamento exige motivo não vazio independente de quem chama;
// autorização por papel é responsabilidade da camada de cima.
func CanTransition(from, to Status, cancellationReason string) error {
	if !IsValidStatus(to) {
		return httperr.ErrBusiness("invalid_status")
	}

	allowed := false
	for _, next := range transitions[from] {
		if next == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return httperr.ErrBusiness("invalid_transition")
	}

	if to == StatusCancelled && cancellationReason == "" {
		return httperr.ErrBusiness("cancellation_reason_required")
	}

	return nil
}
