package repository

import "github.com/tu-usuario/planta-pos/internal/domain/entity"

// CustomerRepository define el puerto de clientes. Este núcleo solo lee el
// estado de lista negra; el único escritor es el barrido de pagos vencidos.
type CustomerRepository interface {
	GetByID(id string) (*entity.Customer, error)
	SetBlacklisted(id string, reason string) error
}
