// Package supply implementa el motor de deducción de insumos: el libro de
// materias primas (tapas, etiquetas, envases) que se consume en cascada al
// vender o producir. A diferencia del stock de producto terminado, el saldo
// de un insumo sí puede quedar negativo: el consumo físico ya ocurrió y el
// libro debe reflejarlo; el faltante se detecta por el reporte de stock bajo.
package supply

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/planta-pos/internal/application/dto"
	"github.com/tu-usuario/planta-pos/internal/domain"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
	"github.com/tu-usuario/planta-pos/pkg/logger"
)

// DeductionEngine caso de uso del libro de insumos.
type DeductionEngine struct {
	txRunner   TxRunner
	supplyRepo repository.SupplyRepository
	movRepo    repository.SupplyMovementRepository
	log        *logger.Logger
}

// NewDeductionEngine crea el motor de insumos.
func NewDeductionEngine(
	txRunner TxRunner,
	supplyRepo repository.SupplyRepository,
	movRepo repository.SupplyMovementRepository,
	log *logger.Logger,
) *DeductionEngine {
	return &DeductionEngine{
		txRunner:   txRunner,
		supplyRepo: supplyRepo,
		movRepo:    movRepo,
		log:        log,
	}
}

// postInTx asienta un movimiento de insumo bajo lock de la fila del insumo.
// signed ya lleva el signo final.
func (e *DeductionEngine) postInTx(
	supplyRepo repository.SupplyRepository,
	movRepo repository.SupplyMovementRepository,
	supplyID string,
	movType string,
	signed int64,
	ref *entity.MovementReference,
	actor string,
	now time.Time,
) (*entity.SupplyMovement, error) {
	if !entity.ValidSupplyMovementType(movType) || signed == 0 {
		return nil, domain.ErrInvalidInput
	}

	s, err := supplyRepo.GetForUpdate(supplyID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}

	last, err := movRepo.LastBySupply(supplyID)
	if err != nil {
		return nil, err
	}
	current := int64(0)
	if last != nil {
		current = last.BalanceAfter
	}
	newBalance := current + signed

	mov := &entity.SupplyMovement{
		ID:           uuid.New().String(),
		SupplyID:     supplyID,
		Type:         movType,
		Quantity:     signed,
		BalanceAfter: newBalance,
		CreatedBy:    actor,
		CreatedAt:    now,
	}
	if ref != nil {
		mov.ReferenceKind = ref.Kind
		mov.ReferenceID = ref.ID
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}

	if newBalance < 0 {
		e.log.Warn().
			Str("supply_id", supplyID).
			Int64("balance", newBalance).
			Msg("insumo con saldo negativo")
	}
	return mov, nil
}

// DeductForSaleInTx descuenta los insumos ligados a un producto vendido.
// Cada insumo ligado consume DeductPerSale por unidad vendida. Los insumos
// llegan ordenados por id ascendente, que es el orden fijo de locks.
func (e *DeductionEngine) DeductForSaleInTx(
	supplyRepo repository.SupplyRepository,
	movRepo repository.SupplyMovementRepository,
	productID string,
	soldQty int64,
	ref entity.MovementReference,
	actor string,
	now time.Time,
) ([]*entity.SupplyMovement, error) {
	linked, err := supplyRepo.ListByLinkedProduct(productID)
	if err != nil {
		return nil, err
	}
	movs := make([]*entity.SupplyMovement, 0, len(linked))
	for _, s := range linked {
		if s.DeductPerSale <= 0 {
			continue
		}
		mov, err := e.postInTx(supplyRepo, movRepo, s.ID,
			entity.SupplyMovementSaleOut, -(s.DeductPerSale * soldQty), &ref, actor, now)
		if err != nil {
			return nil, err
		}
		movs = append(movs, mov)
	}
	return movs, nil
}

// DeductKitInTx descuenta los componentes de kit (envase retornable nuevo:
// botellón vacío + tapa), una unidad de cada componente por unidad vendida.
// Solo aplica cuando la venta es de unidad nueva, no recarga.
func (e *DeductionEngine) DeductKitInTx(
	supplyRepo repository.SupplyRepository,
	movRepo repository.SupplyMovementRepository,
	qty int64,
	ref entity.MovementReference,
	actor string,
	now time.Time,
) ([]*entity.SupplyMovement, error) {
	components, err := supplyRepo.ListKitComponents()
	if err != nil {
		return nil, err
	}
	movs := make([]*entity.SupplyMovement, 0, len(components))
	for _, s := range components {
		mov, err := e.postInTx(supplyRepo, movRepo, s.ID,
			entity.SupplyMovementSaleOut, -qty, &ref, actor, now)
		if err != nil {
			return nil, err
		}
		movs = append(movs, mov)
	}
	return movs, nil
}

// DeductForProductionInTx descuenta los insumos consumidos por una corrida de
// producción: los ligados al producto producido, DeductPerSale por unidad.
func (e *DeductionEngine) DeductForProductionInTx(
	supplyRepo repository.SupplyRepository,
	movRepo repository.SupplyMovementRepository,
	productID string,
	producedQty int64,
	ref entity.MovementReference,
	actor string,
	now time.Time,
) ([]*entity.SupplyMovement, error) {
	linked, err := supplyRepo.ListByLinkedProduct(productID)
	if err != nil {
		return nil, err
	}
	movs := make([]*entity.SupplyMovement, 0, len(linked))
	for _, s := range linked {
		if s.DeductPerSale <= 0 {
			continue
		}
		mov, err := e.postInTx(supplyRepo, movRepo, s.ID,
			entity.SupplyMovementProductionOut, -(s.DeductPerSale * producedQty), &ref, actor, now)
		if err != nil {
			return nil, err
		}
		movs = append(movs, mov)
	}
	return movs, nil
}

// AddStock entrada de insumo por compra.
func (e *DeductionEngine) AddStock(ctx context.Context, actorID string, req dto.AddSupplyStockRequest) (*entity.SupplyMovement, error) {
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var ref *entity.MovementReference
	if req.PurchaseID != "" {
		ref = &entity.MovementReference{Kind: entity.ReferencePurchase, ID: req.PurchaseID}
	}
	var mov *entity.SupplyMovement
	err := e.txRunner.Run(ctx, func(
		supplyRepo repository.SupplyRepository,
		movRepo repository.SupplyMovementRepository,
	) error {
		m, err := e.postInTx(supplyRepo, movRepo, req.SupplyID,
			entity.SupplyMovementPurchaseIn, req.Quantity, ref, actorID, time.Now())
		if err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// AdjustStock ajuste manual de insumo; la cantidad lleva signo.
func (e *DeductionEngine) AdjustStock(ctx context.Context, actorID string, req dto.AdjustSupplyStockRequest) (*entity.SupplyMovement, error) {
	if req.Quantity == 0 {
		return nil, domain.ErrInvalidInput
	}
	var mov *entity.SupplyMovement
	err := e.txRunner.Run(ctx, func(
		supplyRepo repository.SupplyRepository,
		movRepo repository.SupplyMovementRepository,
	) error {
		m, err := e.postInTx(supplyRepo, movRepo, req.SupplyID,
			entity.SupplyMovementAdjustment, req.Quantity, nil, actorID, time.Now())
		if err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// CurrentBalance saldo actual del insumo.
func (e *DeductionEngine) CurrentBalance(ctx context.Context, supplyID string) (int64, error) {
	last, err := e.movRepo.LastBySupply(supplyID)
	if err != nil {
		return 0, err
	}
	if last == nil {
		return 0, nil
	}
	return last.BalanceAfter, nil
}

// StockOverview saldos de todos los insumos activos.
func (e *DeductionEngine) StockOverview(ctx context.Context) ([]dto.SupplyStockItem, error) {
	supplies, err := e.supplyRepo.ListActive()
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplyStockItem, 0, len(supplies))
	for _, s := range supplies {
		balance, err := e.CurrentBalance(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, dto.SupplyStockItem{
			SupplyID:     s.ID,
			SKU:          s.SKU,
			Name:         s.Name,
			Unit:         s.Unit,
			CurrentStock: balance,
			MinStock:     s.MinStock,
			LowStock:     balance <= s.MinStock,
		})
	}
	return items, nil
}

// LowStock insumos con saldo en o bajo su mínimo.
func (e *DeductionEngine) LowStock(ctx context.Context) ([]dto.SupplyStockItem, error) {
	all, err := e.StockOverview(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]dto.SupplyStockItem, 0)
	for _, item := range all {
		if item.LowStock {
			low = append(low, item)
		}
	}
	return low, nil
}
