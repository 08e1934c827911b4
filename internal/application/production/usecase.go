// Package production registra corridas de producción: la corrida, la entrada
// de producto terminado y el consumo de insumos se confirman en una sola
// transacción.
package production

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/planta-pos/internal/application/authz"
	"github.com/tu-usuario/planta-pos/internal/application/dto"
	"github.com/tu-usuario/planta-pos/internal/application/inventory"
	"github.com/tu-usuario/planta-pos/internal/domain"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
	"github.com/tu-usuario/planta-pos/pkg/logger"
)

// Recorder caso de uso de producción.
type Recorder struct {
	txRunner    TxRunner
	stock       StockEngine
	supplies    SupplyEngine
	productRepo repository.ProductRepository
	prodRepo    repository.ProductionRepository
	log         *logger.Logger
}

// NewRecorder crea el registrador de producción.
func NewRecorder(
	txRunner TxRunner,
	stock StockEngine,
	supplies SupplyEngine,
	productRepo repository.ProductRepository,
	prodRepo repository.ProductionRepository,
	log *logger.Logger,
) *Recorder {
	return &Recorder{
		txRunner:    txRunner,
		stock:       stock,
		supplies:    supplies,
		productRepo: productRepo,
		prodRepo:    prodRepo,
		log:         log,
	}
}

// RecordProduction registra una corrida y asienta sus movimientos.
func (r *Recorder) RecordProduction(ctx context.Context, actor authz.Context, req dto.CreateProductionRequest) (*entity.ProductionRecord, error) {
	if !actor.Can(entity.CapProductionCreate) {
		return nil, domain.ErrForbidden
	}
	if req.Quantity <= 0 || !req.MachineOffAt.After(req.MachineOnAt) {
		return nil, domain.ErrInvalidInput
	}

	product, err := r.productRepo.GetByID(req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	record := &entity.ProductionRecord{
		ID:           uuid.New().String(),
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		MachineOnAt:  req.MachineOnAt,
		MachineOffAt: req.MachineOffAt,
		Notes:        req.Notes,
		CreatedBy:    actor.UserID,
		CreatedAt:    now,
	}

	err = r.txRunner.RunProduction(ctx, func(
		prodRepo repository.ProductionRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		supplyRepo repository.SupplyRepository,
		supplyMovRepo repository.SupplyMovementRepository,
	) error {
		if err := prodRepo.Create(record); err != nil {
			return err
		}
		ref := entity.MovementReference{Kind: entity.ReferenceProduction, ID: record.ID}
		if _, err := r.stock.RecordMovementInTx(movRepo, productRepo, inventory.MovementInput{
			ProductID: req.ProductID,
			Type:      entity.MovementProductionIn,
			Quantity:  req.Quantity,
			Actor:     actor.UserID,
			Reference: &ref,
		}, now); err != nil {
			return err
		}
		_, err := r.supplies.DeductForProductionInTx(supplyRepo, supplyMovRepo,
			req.ProductID, req.Quantity, ref, actor.UserID, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	r.log.Info().
		Str("production_id", record.ID).
		Str("product_id", record.ProductID).
		Int64("quantity", record.Quantity).
		Msg("producción registrada")
	return record, nil
}

// ListBetween corridas en un rango de fechas.
func (r *Recorder) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.ProductionRecord, error) {
	return r.prodRepo.ListBetween(from, to)
}
