package timezone

import "time"

// Toda a plataforma opera no fuso local do salão; não há conversão
// entre fusos. O fuso vem da configuração, com um default razoável.

const DefaultTimezone = "America/Sao_Paulo"

var current = mustLoad(DefaultTimezone)

func mustLoad(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Init fixa o fuso da aplicação a partir da configuração.
func Init(tz string) {
	if IsValid(tz) {
		current = mustLoad(tz)
	}
}

func Location() *time.Location {
	return current
}

func Now() time.Time {
	return time.Now().In(current)
}
