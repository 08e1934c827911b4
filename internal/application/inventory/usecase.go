// Package inventory implementa el motor de stock: un libro contable de
// movimientos inmutable del que se deriva todo saldo. No existe ninguna
// columna contador de stock; el saldo actual es el balance_after del último
// movimiento del producto.
package inventory

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

// MovementInput datos para asentar un movimiento.
// Quantity es magnitud positiva salvo para ADJUSTMENT, donde es un delta con
// signo. Force permite dejar saldo negativo (solo resolución de conflictos).
type MovementInput struct {
	ProductID string
	Type      string
	Quantity  int64
	Actor     string
	Reference *entity.MovementReference
	Force     bool
}

// StockEngine caso de uso del libro de inventario.
type StockEngine struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.InventoryMovementRepository
	log         *logger.Logger
}

// NewStockEngine crea el motor de stock.
func NewStockEngine(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	log *logger.Logger,
) *StockEngine {
	return &StockEngine{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		log:         log,
	}
}

// RecordMovement asienta un movimiento en su propia transacción.
func (e *StockEngine) RecordMovement(ctx context.Context, in MovementInput) (*entity.InventoryMovement, error) {
	var mov *entity.InventoryMovement
	err := e.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		m, err := e.RecordMovementInTx(movRepo, productRepo, in, time.Now())
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

// RecordMovementInTx asienta un movimiento usando repositorios ya ligados a
// una transacción abierta por el caller. Bloquea la fila del producto antes
// de leer el último movimiento: ese lock serializa las escrituras
// concurrentes sobre el mismo producto y hace imposible que dos movimientos
// partan del mismo balance.
func (e *StockEngine) RecordMovementInTx(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	in MovementInput,
	now time.Time,
) (*entity.InventoryMovement, error) {
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == entity.MovementAdjustment {
		if in.Quantity == 0 {
			return nil, domain.ErrInvalidInput
		}
	} else if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	product, err := productRepo.GetForUpdate(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	last, err := movRepo.LastByProduct(in.ProductID)
	if err != nil {
		return nil, err
	}
	current := int64(0)
	if last != nil {
		current = last.BalanceAfter
	}

	signed := signedQuantity(in.Type, in.Quantity)
	newBalance := current + signed
	if newBalance < 0 && !in.Force {
		return nil, domain.ErrInsufficientStock
	}

	mov := &entity.InventoryMovement{
		ID:           uuid.New().String(),
		ProductID:    in.ProductID,
		Type:         in.Type,
		Quantity:     signed,
		BalanceAfter: newBalance,
		CreatedBy:    in.Actor,
		CreatedAt:    now,
	}
	if in.Reference != nil {
		mov.ReferenceKind = in.Reference.Kind
		mov.ReferenceID = in.Reference.ID
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}

	if newBalance < 0 {
		e.log.Warn().
			Str("product_id", in.ProductID).
			Int64("balance", newBalance).
			Msg("movimiento forzado dejó saldo negativo")
	}
	return mov, nil
}

// CurrentBalance saldo actual del producto leyendo el último movimiento.
// Lectura sin lock; para decisiones transaccionales usar RecordMovementInTx.
func (e *StockEngine) CurrentBalance(ctx context.Context, productID string) (int64, error) {
	last, err := e.movRepo.LastByProduct(productID)
	if err != nil {
		return 0, err
	}
	if last == nil {
		return 0, nil
	}
	return last.BalanceAfter, nil
}

// Adjust asienta un ajuste manual. Requiere la capacidad de ajuste.
func (e *StockEngine) Adjust(ctx context.Context, actorID string, canAdjust bool, req dto.AdjustStockRequest) (*entity.InventoryMovement, error) {
	if !canAdjust {
		return nil, domain.ErrForbidden
	}
	return e.RecordMovement(ctx, MovementInput{
		ProductID: req.ProductID,
		Type:      entity.MovementAdjustment,
		Quantity:  req.Quantity,
		Actor:     actorID,
	})
}

// StockOverview saldos actuales de todos los productos activos.
func (e *StockEngine) StockOverview(ctx context.Context) ([]dto.StockItem, error) {
	products, err := e.productRepo.ListActive()
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockItem, 0, len(products))
	for _, p := range products {
		balance, err := e.CurrentBalance(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, dto.StockItem{
			ProductID:    p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			Unit:         p.Unit,
			CurrentStock: balance,
			MinStock:     p.MinStock,
			LowStock:     balance <= p.MinStock,
		})
	}
	return items, nil
}

// MovementHistory historial del libro de un producto, más reciente primero.
func (e *StockEngine) MovementHistory(ctx context.Context, productID string, req dto.MovementHistoryRequest) ([]dto.MovementResponse, error) {
	product, err := e.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	req.DefaultPage()
	movs, err := e.movRepo.ListByProduct(productID, req.From, req.To, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementResponse{
			ID:            m.ID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			BalanceAfter:  m.BalanceAfter,
			ReferenceKind: m.ReferenceKind,
			ReferenceID:   m.ReferenceID,
			CreatedBy:     m.CreatedBy,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out, nil
}

func signedQuantity(movType string, qty int64) int64 {
	switch movType {
	case entity.MovementProductionIn, entity.MovementReturn:
		return qty
	case entity.MovementSalePlant, entity.MovementSaleRoute:
		return -qty
	default: // ADJUSTMENT lleva el signo en la cantidad
		return qty
	}
}
