package entity

import "time"

// ProductionRecord registra una corrida de producción (ventana de máquina
// encendida/apagada). Genera un movimiento PRODUCTION_IN del producto y
// consumos PRODUCTION_OUT de los insumos vinculados.
type ProductionRecord struct {
	ID           string
	ProductID    string
	Quantity     int64
	MachineOnAt  time.Time
	MachineOffAt time.Time
	Notes        string
	CreatedBy    string
	CreatedAt    time.Time
}

// DurationMinutes minutos de máquina de la corrida.
func (r *ProductionRecord) DurationMinutes() int64 {
	return int64(r.MachineOffAt.Sub(r.MachineOnAt).Minutes())
}
