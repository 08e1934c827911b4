package dto

import "time"

// CreateProductionRequest registro de una corrida de producción.
type CreateProductionRequest struct {
	ProductID    string    `json:"product_id"`
	Quantity     int64     `json:"quantity"`
	MachineOnAt  time.Time `json:"machine_on_at"`
	MachineOffAt time.Time `json:"machine_off_at"`
	Notes        string    `json:"notes"`
}

// ProductionResponse corrida registrada.
type ProductionResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	Quantity        int64     `json:"quantity"`
	MachineOnAt     time.Time `json:"machine_on_at"`
	MachineOffAt    time.Time `json:"machine_off_at"`
	DurationMinutes int64     `json:"duration_minutes"`
	Notes           string    `json:"notes,omitempty"`
}
