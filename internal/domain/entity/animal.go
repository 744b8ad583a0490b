package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de animal.
const (
	AnimalTypeCow  = "cow"
	AnimalTypeBull = "bull"
	AnimalTypeCalf = "calf"
)

// Sexo del animal.
const (
	GenderFemale = "female"
	GenderMale   = "male"
)

// Estados de salud.
const (
	HealthHealthy    = "healthy"
	HealthSick       = "sick"
	HealthInjured    = "injured"
	HealthRecovering = "recovering"
)

// Animal representa un animal del hato identificado por su arete (TagNumber).
type Animal struct {
	ID           string
	TagNumber    string // único, en mayúsculas
	Name         string
	Type         string // cow, bull, calf
	Gender       string // female, male
	Breed        string
	BirthDate    *time.Time
	Weight       *decimal.Decimal // kg
	HealthStatus string
	ImageURL     string
	MotherID     *string
	FatherID     *string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanProduceMilk indica si el animal puede tener registros de producción o servicio:
// hembra y no ternera.
func (a *Animal) CanProduceMilk() bool {
	return a != nil && a.Gender == GenderFemale && a.Type != AnimalTypeCalf
}

// IsValidAnimalType valida el tipo.
func IsValidAnimalType(t string) bool {
	switch t {
	case AnimalTypeCow, AnimalTypeBull, AnimalTypeCalf:
		return true
	}
	return false
}

// IsValidGender valida el sexo.
func IsValidGender(g string) bool {
	return g == GenderFemale || g == GenderMale
}

// IsValidHealthStatus valida el estado de salud.
func IsValidHealthStatus(s string) bool {
	switch s {
	case HealthHealthy, HealthSick, HealthInjured, HealthRecovering:
		return true
	}
	return false
}
