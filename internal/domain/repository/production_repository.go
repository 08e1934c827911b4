package repository

import (
	"time"

	"github.com/tu-usuario/planta-pos/internal/domain/entity"
)

// ProductionRepository define el puerto de registros de producción.
type ProductionRepository interface {
	Create(record *entity.ProductionRecord) error
	GetByID(id string) (*entity.ProductionRecord, error)
	ListBetween(from, to time.Time) ([]*entity.ProductionRecord, error)
}
