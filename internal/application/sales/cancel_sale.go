package sales

import (
	"context"
	"sort"
	"time"

	"github.com/tu-usuario/planta-pos/internal/application/authz"
	"github.com/tu-usuario/planta-pos/internal/application/inventory"
	"github.com/tu-usuario/planta-pos/internal/domain"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
)

// CancelSale cancela una venta completada asentando un movimiento RETURN por
// cada ítem. El libro sigue siendo solo-agregar: la cancelación nunca borra
// ni edita los movimientos de la venta original.
func (o *Orchestrator) CancelSale(ctx context.Context, actor authz.Context, saleID string) (*entity.Sale, error) {
	if !actor.Can(entity.CapSalesCancel) {
		return nil, domain.ErrForbidden
	}

	var cancelled *entity.Sale
	now := time.Now()
	err := o.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		supplyRepo repository.SupplyRepository,
		supplyMovRepo repository.SupplyMovementRepository,
	) error {
		sale, err := saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status == entity.SaleStatusCancelled {
			return domain.ErrAlreadyCancelled
		}
		if sale.Status != entity.SaleStatusCompleted {
			return domain.ErrInvalidInput
		}

		items, err := saleRepo.GetItems(saleID)
		if err != nil {
			return err
		}
		sort.Slice(items, func(i, j int) bool {
			return items[i].ProductID < items[j].ProductID
		})

		ref := entity.MovementReference{Kind: entity.ReferenceSale, ID: sale.ID}
		for _, item := range items {
			_, err := o.stock.RecordMovementInTx(movRepo, productRepo, inventory.MovementInput{
				ProductID: item.ProductID,
				Type:      entity.MovementReturn,
				Quantity:  item.Quantity,
				Actor:     actor.UserID,
				Reference: &ref,
			}, now)
			if err != nil {
				return err
			}
		}

		if err := saleRepo.UpdateStatus(saleID, entity.SaleStatusCancelled); err != nil {
			return err
		}
		sale.Status = entity.SaleStatusCancelled
		sale.Items = items
		cancelled = sale
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.log.Info().
		Str("sale_id", saleID).
		Str("invoice", cancelled.InvoiceNumber).
		Msg("venta cancelada")
	return cancelled, nil
}
