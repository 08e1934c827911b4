package repository

import (
	"time"

	"github.com/tu-usuario/planta-pos/internal/domain/entity"
)

// PriceRepository define el puerto de lectura de precios. Los precios se
// crean/editan fuera de este núcleo; aquí solo se consultan y se referencian
// por snapshot al vender.
type PriceRepository interface {
	// GetByID devuelve el precio con su lista de roles autorizados cargada.
	GetByID(id string) (*entity.Price, error)
	// ListEligible devuelve los precios elegibles para rol+canal (activos, con
	// ventana vigente a now, canal igual o ALL, rol autorizado), ascendentes
	// por monto. productID vacío = todos los productos.
	ListEligible(role entity.Role, channel, productID string, now time.Time) ([]*entity.Price, error)
}
