// Package sync procesa los lotes de ventas creadas offline por los
// vendedores de ruta. Cada transacción del lote se procesa aislada: una que
// falla o entra en conflicto jamás impide sincronizar las demás. Los
// conflictos de stock no se resuelven solos; quedan en una cola para que un
// admin decida con visibilidad completa.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/planta-pos/internal/application/authz"
	"github.com/tu-usuario/planta-pos/internal/application/dto"
	"github.com/tu-usuario/planta-pos/internal/domain"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
	"github.com/tu-usuario/planta-pos/pkg/logger"
)

// Processor caso de uso de sincronización offline.
type Processor struct {
	sales     SaleCreator
	stock     StockReader
	queueRepo repository.SyncQueueRepository
	userRepo  repository.UserRepository
	log       *logger.Logger
}

// NewProcessor crea el procesador de sincronización.
func NewProcessor(
	sales SaleCreator,
	stock StockReader,
	queueRepo repository.SyncQueueRepository,
	userRepo repository.UserRepository,
	log *logger.Logger,
) *Processor {
	return &Processor{
		sales:     sales,
		stock:     stock,
		queueRepo: queueRepo,
		userRepo:  userRepo,
		log:       log,
	}
}

// PushBatch procesa un lote de transacciones offline y devuelve un resultado
// por transacción, en el mismo orden del request.
func (p *Processor) PushBatch(ctx context.Context, actor authz.Context, req dto.PushRequest) ([]dto.PushResult, error) {
	if !actor.Can(entity.CapSyncPush) {
		return nil, domain.ErrForbidden
	}
	if len(req.Transactions) == 0 {
		return nil, domain.ErrInvalidInput
	}

	results := make([]dto.PushResult, 0, len(req.Transactions))
	for _, tx := range req.Transactions {
		results = append(results, p.processOne(ctx, actor, tx))
	}
	return results, nil
}

func (p *Processor) processOne(ctx context.Context, actor authz.Context, tx dto.OfflineTransaction) dto.PushResult {
	result := dto.PushResult{LocalID: tx.LocalID}

	// Chequeo previo: si el stock ya no alcanza, la transacción va a la cola
	// de conflictos sin intentar la venta.
	required := make(map[string]int64)
	for _, line := range tx.Items {
		required[line.ProductID] += line.Quantity
	}
	for productID, qty := range required {
		balance, err := p.stock.CurrentBalance(ctx, productID)
		if err != nil {
			result.Status = dto.PushStatusFailed
			result.Error = err.Error()
			return result
		}
		if balance < qty {
			return p.enqueueConflict(actor, tx, result)
		}
	}

	sale, err := p.sales.CreateSale(ctx, actor, offlineToRequest(tx))
	if err != nil {
		// Carrera entre el chequeo previo y la transacción: también conflicto.
		if errors.Is(err, domain.ErrInsufficientStock) {
			return p.enqueueConflict(actor, tx, result)
		}
		result.Status = dto.PushStatusFailed
		result.Error = err.Error()
		return result
	}

	if err := p.sales.MarkSynced(ctx, sale.ID); err != nil {
		result.Status = dto.PushStatusFailed
		result.Error = err.Error()
		return result
	}
	result.Status = dto.PushStatusSynced
	result.SaleID = sale.ID
	result.InvoiceNumber = sale.InvoiceNumber
	return result
}

func (p *Processor) enqueueConflict(actor authz.Context, tx dto.OfflineTransaction, result dto.PushResult) dto.PushResult {
	payload, err := json.Marshal(tx)
	if err != nil {
		result.Status = dto.PushStatusFailed
		result.Error = err.Error()
		return result
	}
	entry := &entity.SyncQueueEntry{
		ID:           uuid.New().String(),
		UserID:       actor.UserID,
		Action:       entity.SyncActionCreateSale,
		Payload:      payload,
		Status:       entity.SyncStatusConflict,
		ErrorMessage: "stock insuficiente al sincronizar",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := p.queueRepo.Create(entry); err != nil {
		result.Status = dto.PushStatusFailed
		result.Error = err.Error()
		return result
	}
	p.log.Warn().
		Str("queue_id", entry.ID).
		Str("local_id", tx.LocalID).
		Msg("transacción offline en conflicto")
	result.Status = dto.PushStatusConflict
	result.QueueID = entry.ID
	return result
}

// ResolveConflict aplica la decisión del admin sobre una entrada en conflicto.
// approve reintenta la venta en modo forzado (puede dejar saldo negativo);
// reject marca la entrada como fallida. Tres reintentos fallidos la cierran.
func (p *Processor) ResolveConflict(ctx context.Context, actor authz.Context, queueID, decision string) (dto.ResolveConflictResponse, error) {
	if !actor.Can(entity.CapSyncResolve) {
		return dto.ResolveConflictResponse{}, domain.ErrForbidden
	}

	entry, err := p.queueRepo.GetByID(queueID)
	if err != nil {
		return dto.ResolveConflictResponse{}, err
	}
	if entry == nil {
		return dto.ResolveConflictResponse{}, domain.ErrNotFound
	}
	if entry.Status != entity.SyncStatusConflict {
		return dto.ResolveConflictResponse{}, domain.ErrInvalidInput
	}

	switch decision {
	case dto.DecisionReject:
		entry.Status = entity.SyncStatusFailed
		entry.ErrorMessage = "rechazada por el administrador"
		entry.UpdatedAt = time.Now()
		if err := p.queueRepo.Update(entry); err != nil {
			return dto.ResolveConflictResponse{}, err
		}
		return dto.ResolveConflictResponse{Status: entity.SyncStatusFailed}, nil

	case dto.DecisionApprove:
		return p.approve(ctx, entry)

	default:
		return dto.ResolveConflictResponse{}, domain.ErrInvalidInput
	}
}

func (p *Processor) approve(ctx context.Context, entry *entity.SyncQueueEntry) (dto.ResolveConflictResponse, error) {
	var tx dto.OfflineTransaction
	if err := json.Unmarshal(entry.Payload, &tx); err != nil {
		return dto.ResolveConflictResponse{}, domain.ErrInvalidInput
	}

	// La venta se reproduce a nombre del vendedor que la creó offline.
	seller, err := p.userRepo.GetByID(entry.UserID)
	if err != nil {
		return dto.ResolveConflictResponse{}, err
	}
	if seller == nil {
		return dto.ResolveConflictResponse{}, domain.ErrNotFound
	}
	sellerCtx := authz.NewContext(seller.ID, seller.Role)

	sale, err := p.sales.CreateSaleForced(ctx, sellerCtx, offlineToRequest(tx))
	if err != nil {
		entry.RetryCount++
		entry.ErrorMessage = err.Error()
		entry.UpdatedAt = time.Now()
		if entry.RetryCount >= entity.SyncMaxRetries {
			entry.Status = entity.SyncStatusFailed
		}
		if uerr := p.queueRepo.Update(entry); uerr != nil {
			return dto.ResolveConflictResponse{}, uerr
		}
		return dto.ResolveConflictResponse{}, err
	}

	if err := p.sales.MarkSynced(ctx, sale.ID); err != nil {
		return dto.ResolveConflictResponse{}, err
	}
	now := time.Now()
	entry.Status = entity.SyncStatusSynced
	entry.SyncedAt = &now
	entry.ErrorMessage = ""
	entry.UpdatedAt = now
	if err := p.queueRepo.Update(entry); err != nil {
		return dto.ResolveConflictResponse{}, err
	}

	p.log.Info().
		Str("queue_id", entry.ID).
		Str("sale_id", sale.ID).
		Msg("conflicto aprobado y venta reproducida")
	return dto.ResolveConflictResponse{Status: entity.SyncStatusSynced, SaleID: sale.ID}, nil
}

// ListConflicts entradas pendientes de decisión del admin.
func (p *Processor) ListConflicts(ctx context.Context, actor authz.Context) ([]dto.SyncQueueEntryResponse, error) {
	if !actor.Can(entity.CapSyncResolve) {
		return nil, domain.ErrForbidden
	}
	entries, err := p.queueRepo.ListByStatus(entity.SyncStatusConflict)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SyncQueueEntryResponse, 0, len(entries))
	for _, e := range entries {
		var payload any
		_ = json.Unmarshal(e.Payload, &payload)
		out = append(out, dto.SyncQueueEntryResponse{
			ID:           e.ID,
			UserID:       e.UserID,
			Status:       e.Status,
			RetryCount:   e.RetryCount,
			ErrorMessage: e.ErrorMessage,
			Payload:      payload,
			CreatedAt:    e.CreatedAt,
		})
	}
	return out, nil
}

func offlineToRequest(tx dto.OfflineTransaction) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		Channel:       entity.ChannelRoute,
		PaymentMethod: tx.PaymentMethod,
		CustomerID:    tx.CustomerID,
		DueDate:       tx.DueDate,
		SoldAt:        tx.SoldAt,
		IsNewKitUnit:  tx.IsNewKitUnit,
		Items:         tx.Items,
	}
}
