package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAnimalRequest entrada para registrar un animal.
type CreateAnimalRequest struct {
	TagNumber    string           `json:"tag_number"`
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	Gender       string           `json:"gender"`
	Breed        string           `json:"breed"`
	BirthDate    string           `json:"birth_date"` // YYYY-MM-DD, opcional
	Weight       *decimal.Decimal `json:"weight"`
	HealthStatus string           `json:"health_status"`
	ImageURL     string           `json:"image_url"`
	MotherID     *string          `json:"mother_id"`
	FatherID     *string          `json:"father_id"`
	Notes        string           `json:"notes"`
}

// UpdateAnimalRequest actualización parcial (el arete no se modifica).
type UpdateAnimalRequest struct {
	Name         *string          `json:"name"`
	Type         *string          `json:"type"`
	Breed        *string          `json:"breed"`
	BirthDate    *string          `json:"birth_date"`
	Weight       *decimal.Decimal `json:"weight"`
	HealthStatus *string          `json:"health_status"`
	ImageURL     *string          `json:"image_url"`
	MotherID     *string          `json:"mother_id"`
	FatherID     *string          `json:"father_id"`
	Notes        *string          `json:"notes"`
}

// AnimalResponse salida de un animal.
type AnimalResponse struct {
	ID           string           `json:"id"`
	TagNumber    string           `json:"tag_number"`
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	Gender       string           `json:"gender"`
	Breed        string           `json:"breed"`
	BirthDate    *string          `json:"birth_date"`
	Weight       *decimal.Decimal `json:"weight"`
	HealthStatus string           `json:"health_status"`
	ImageURL     string           `json:"image_url,omitempty"`
	MotherID     *string          `json:"mother_id"`
	FatherID     *string          `json:"father_id"`
	Notes        string           `json:"notes"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// AnimalListResponse lista paginada de animales.
type AnimalListResponse struct {
	Items []AnimalResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
