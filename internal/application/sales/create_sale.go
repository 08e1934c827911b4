package sales

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/planta-pos/internal/application/authz"
	"github.com/tu-usuario/planta-pos/internal/application/dto"
	"github.com/tu-usuario/planta-pos/internal/application/inventory"
	"github.com/tu-usuario/planta-pos/internal/domain"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
)

// CreateSale valida y registra una venta completa. Todo o nada: la venta,
// sus ítems y cada movimiento de producto e insumo se confirman juntos.
func (o *Orchestrator) CreateSale(ctx context.Context, actor authz.Context, req dto.CreateSaleRequest) (*entity.Sale, error) {
	return o.createSale(ctx, actor, req, false)
}

// CreateSaleForced registra la venta permitiendo saldo negativo de producto.
// Solo lo invoca la resolución de conflictos de sincronización aprobada por
// un admin; el saldo resultante nunca se recorta a cero.
func (o *Orchestrator) CreateSaleForced(ctx context.Context, actor authz.Context, req dto.CreateSaleRequest) (*entity.Sale, error) {
	return o.createSale(ctx, actor, req, true)
}

func (o *Orchestrator) createSale(ctx context.Context, actor authz.Context, req dto.CreateSaleRequest, forced bool) (*entity.Sale, error) {
	now := time.Now()

	if !actor.Can(entity.CapSalesCreate) {
		return nil, domain.ErrForbidden
	}
	if !entity.ValidChannel(req.Channel) || !entity.ValidPaymentMethod(req.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	if !actor.CanAccessChannel(req.Channel) {
		return nil, domain.ErrForbidden
	}
	if len(req.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	dueDate, err := parseDueDate(req.PaymentMethod, req.DueDate, now)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		customer, err := o.customerRepo.GetByID(*req.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		if customer.IsBlacklisted && req.PaymentMethod == entity.PaymentCredit {
			return nil, domain.ErrBlacklisted
		}
	}

	// Validación de todas las líneas antes de cualquier escritura.
	products := make(map[string]*entity.Product)
	required := make(map[string]int64)
	total := decimal.Zero
	items := make([]*entity.SaleItem, 0, len(req.Items))
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		product, ok := products[line.ProductID]
		if !ok {
			product, err = o.productRepo.GetByID(line.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil || !product.IsActive {
				return nil, domain.ErrNotFound
			}
			products[line.ProductID] = product
		}

		price, err := o.prices.Authorize(ctx, actor.Role, req.Channel, line.PriceID, line.ProductID, now)
		if err != nil {
			return nil, err
		}

		subtotal := price.Amount.Mul(decimal.NewFromInt(line.Quantity))
		total = total.Add(subtotal)
		required[line.ProductID] += line.Quantity
		items = append(items, &entity.SaleItem{
			ID:            uuid.New().String(),
			ProductID:     line.ProductID,
			PriceID:       price.ID,
			PriceSnapshot: price.Amount,
			Quantity:      line.Quantity,
			Subtotal:      subtotal,
		})
	}

	// Chequeo previo de stock por producto agregando líneas repetidas.
	// El chequeo definitivo ocurre bajo lock dentro de la transacción.
	if !forced {
		for productID, qty := range required {
			balance, err := o.stock.CurrentBalance(ctx, productID)
			if err != nil {
				return nil, err
			}
			if balance < qty {
				return nil, domain.ErrInsufficientStock
			}
		}
	}

	soldAt := now
	if req.SoldAt != nil {
		soldAt = *req.SoldAt
	}
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CustomerID:    req.CustomerID,
		Channel:       req.Channel,
		PaymentMethod: req.PaymentMethod,
		TotalAmount:   total,
		Status:        entity.SaleStatusCompleted,
		PaymentStatus: initialPaymentStatus(req.PaymentMethod),
		SyncStatus:    initialSyncStatus(req.Channel),
		DueDate:       dueDate,
		CreatedBy:     actor.UserID,
		SoldAt:        soldAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = o.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		supplyRepo repository.SupplyRepository,
		supplyMovRepo repository.SupplyMovementRepository,
	) error {
		dayStart, dayEnd := dayBounds(now)
		count, err := saleRepo.CountByChannelBetween(req.Channel, dayStart, dayEnd)
		if err != nil {
			return err
		}
		sale.InvoiceNumber = entity.FormatInvoiceNumber(req.Channel, now, count+1)

		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			item.SaleID = sale.ID
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}

		// Movimientos en orden ascendente de producto: orden fijo de locks
		// para que dos ventas concurrentes no se bloqueen en cruz.
		ordered := make([]*entity.SaleItem, len(items))
		copy(ordered, items)
		sort.Slice(ordered, func(i, j int) bool {
			return ordered[i].ProductID < ordered[j].ProductID
		})

		ref := entity.MovementReference{Kind: entity.ReferenceSale, ID: sale.ID}
		for _, item := range ordered {
			_, err := o.stock.RecordMovementInTx(movRepo, productRepo, inventory.MovementInput{
				ProductID: item.ProductID,
				Type:      entity.SaleMovementType(req.Channel),
				Quantity:  item.Quantity,
				Actor:     actor.UserID,
				Reference: &ref,
				Force:     forced,
			}, now)
			if err != nil {
				return err
			}

			if _, err := o.supplies.DeductForSaleInTx(supplyRepo, supplyMovRepo,
				item.ProductID, item.Quantity, ref, actor.UserID, now); err != nil {
				return err
			}
			if req.IsNewKitUnit && products[item.ProductID].ReturnableContainer {
				if _, err := o.supplies.DeductKitInTx(supplyRepo, supplyMovRepo,
					item.Quantity, ref, actor.UserID, now); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sale.Items = items
	o.log.Info().
		Str("sale_id", sale.ID).
		Str("invoice", sale.InvoiceNumber).
		Str("channel", sale.Channel).
		Str("total", sale.TotalAmount.String()).
		Msg("venta registrada")
	return sale, nil
}

func parseDueDate(paymentMethod string, raw *string, now time.Time) (*time.Time, error) {
	if paymentMethod != entity.PaymentCredit {
		return nil, nil
	}
	if raw == nil || *raw == "" {
		return nil, domain.ErrInvalidInput
	}
	d, err := time.ParseInLocation("2006-01-02", *raw, now.Location())
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.Before(today) {
		return nil, domain.ErrInvalidInput
	}
	return &d, nil
}

func initialPaymentStatus(paymentMethod string) string {
	if paymentMethod == entity.PaymentCredit {
		return entity.PaymentStatusUnpaid
	}
	return entity.PaymentStatusPaid
}

func initialSyncStatus(channel string) string {
	if channel == entity.ChannelRoute {
		return entity.SyncStatusPending
	}
	return entity.SyncStatusSynced
}
