package dto

import "time"

// CreateServingRequest entrada para registrar un servicio.
type CreateServingRequest struct {
	FemaleID    string  `json:"female_id"`
	ServedAt    string  `json:"served_at"` // YYYY-MM-DD
	ServingType string  `json:"serving_type"`
	BullID      *string `json:"bull_id"`
	BullName    string  `json:"bull_name"`
	Notes       string  `json:"notes"`
}

// UpdateServingRequest actualización parcial (normalmente el resultado).
type UpdateServingRequest struct {
	ServedAt    *string `json:"served_at"`
	ServingType *string `json:"serving_type"`
	BullName    *string `json:"bull_name"`
	Outcome     *string `json:"outcome"`
	Notes       *string `json:"notes"`
}

// ServingResponse salida de un servicio.
type ServingResponse struct {
	ID                  string    `json:"id"`
	FemaleID            string    `json:"female_id"`
	ServedAt            string    `json:"served_at"`
	ServingType         string    `json:"serving_type"`
	BullID              *string   `json:"bull_id"`
	BullName            string    `json:"bull_name"`
	Outcome             string    `json:"outcome"`
	ExpectedCalvingDate string    `json:"expected_calving_date"`
	Notes               string    `json:"notes"`
	RecordedBy          string    `json:"recorded_by"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ServingListResponse lista paginada de servicios.
type ServingListResponse struct {
	Items []ServingResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
