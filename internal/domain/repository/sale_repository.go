package repository

import (
	"time"

	"github.com/tu-usuario/planta-pos/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia de ventas y sus ítems.
// Las ventas no se editan salvo sus estados (status, payment, sync).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	// CountByChannelBetween cuenta ventas del canal creadas en [from, to);
	// alimenta la secuencia diaria del número de factura.
	CountByChannelBetween(channel string, from, to time.Time) (int64, error)
	UpdateStatus(id, status string) error
	UpdatePaymentStatus(id, paymentStatus string) error
	UpdateSyncStatus(id, syncStatus string) error
	// ListOverdueUnpaid devuelve ventas sin pagar con due_date vencida a now.
	ListOverdueUnpaid(now time.Time) ([]*entity.Sale, error)
}
