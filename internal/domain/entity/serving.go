package entity

import "time"

// GestationDays duración de la gestación bovina usada para estimar el parto.
const GestationDays = 283

// Tipos de servicio.
const (
	ServingNatural    = "natural"
	ServingArtificial = "artificial_insemination"
)

// Resultado del servicio.
const (
	OutcomePending    = "pending"
	OutcomeSuccessful = "successful"
	OutcomeFailed     = "failed"
)

// Serving registro de monta o inseminación de una hembra.
type Serving struct {
	ID                  string
	FemaleID            string
	ServedAt            time.Time
	ServingType         string
	BullID              *string
	BullName            string
	Outcome             string
	ExpectedCalvingDate time.Time
	Notes               string
	RecordedBy          string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ExpectedCalving fecha estimada de parto a partir de la fecha de servicio.
func ExpectedCalving(servedAt time.Time) time.Time {
	return servedAt.AddDate(0, 0, GestationDays)
}

// IsValidServingType valida el tipo de servicio.
func IsValidServingType(t string) bool {
	return t == ServingNatural || t == ServingArtificial
}

// IsValidOutcome valida el resultado.
func IsValidOutcome(o string) bool {
	switch o {
	case OutcomePending, OutcomeSuccessful, OutcomeFailed:
		return true
	}
	return false
}
