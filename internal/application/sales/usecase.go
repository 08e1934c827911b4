// Package sales orquesta la venta transaccional: valida acceso a precios y
// stock, numera la factura, crea venta e ítems y asienta los movimientos de
// producto e insumo, todo dentro de una sola transacción. Si cualquier paso
// falla no queda rastro de ninguno.
package sales

import (
	"context"
	"time"

	"github.com/tu-usuario/planta-pos/internal/application/authz"
	"github.com/tu-usuario/planta-pos/internal/application/dto"
	"github.com/tu-usuario/planta-pos/internal/domain"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
	"github.com/tu-usuario/planta-pos/pkg/logger"
)

// Orchestrator caso de uso de ventas.
type Orchestrator struct {
	txRunner     TxRunner
	stock        StockEngine
	supplies     SupplyEngine
	prices       PriceAuthorizer
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	receipts     ReceiptGenerator
	log          *logger.Logger
}

// NewOrchestrator crea el orquestador de ventas.
func NewOrchestrator(
	txRunner TxRunner,
	stock StockEngine,
	supplies SupplyEngine,
	prices PriceAuthorizer,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	receipts ReceiptGenerator,
	log *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		txRunner:     txRunner,
		stock:        stock,
		supplies:     supplies,
		prices:       prices,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		receipts:     receipts,
		log:          log,
	}
}

// GetSale devuelve la venta con sus ítems.
func (o *Orchestrator) GetSale(ctx context.Context, saleID string) (*entity.Sale, error) {
	sale, err := o.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := o.saleRepo.GetItems(saleID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

// MarkAsPaid marca la venta como pagada.
func (o *Orchestrator) MarkAsPaid(ctx context.Context, actor authz.Context, saleID string) error {
	if !actor.Can(entity.CapSalesMarkPaid) {
		return domain.ErrForbidden
	}
	sale, err := o.saleRepo.GetByID(saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if sale.Status == entity.SaleStatusCancelled {
		return domain.ErrAlreadyCancelled
	}
	return o.saleRepo.UpdatePaymentStatus(saleID, entity.PaymentStatusPaid)
}

// MarkSynced marca la venta como sincronizada. Lo usa el flujo de sync.
func (o *Orchestrator) MarkSynced(ctx context.Context, saleID string) error {
	return o.saleRepo.UpdateSyncStatus(saleID, entity.SyncStatusSynced)
}

// ReceiptPDF genera el comprobante PDF de la venta.
func (o *Orchestrator) ReceiptPDF(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := o.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	var customer *entity.Customer
	if sale.CustomerID != nil {
		customer, err = o.customerRepo.GetByID(*sale.CustomerID)
		if err != nil {
			return nil, err
		}
	}

	products := make(map[string]*entity.Product, len(sale.Items))
	for _, item := range sale.Items {
		if _, ok := products[item.ProductID]; ok {
			continue
		}
		p, err := o.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		products[item.ProductID] = p
	}
	return o.receipts.Generate(sale, customer, products)
}

// ToSaleResponse mapea la venta al DTO de respuesta.
func ToSaleResponse(s *entity.Sale) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:            s.ID,
		InvoiceNumber: s.InvoiceNumber,
		Channel:       s.Channel,
		PaymentMethod: s.PaymentMethod,
		CustomerID:    s.CustomerID,
		TotalAmount:   s.TotalAmount,
		Status:        s.Status,
		PaymentStatus: s.PaymentStatus,
		SyncStatus:    s.SyncStatus,
		SoldAt:        s.SoldAt,
		Items:         make([]dto.SaleItemResponse, 0, len(s.Items)),
	}
	if s.DueDate != nil {
		d := s.DueDate.Format("2006-01-02")
		resp.DueDate = &d
	}
	for _, item := range s.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:            item.ID,
			ProductID:     item.ProductID,
			PriceID:       item.PriceID,
			PriceSnapshot: item.PriceSnapshot,
			Quantity:      item.Quantity,
			Subtotal:      item.Subtotal,
		})
	}
	return resp
}

func dayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}
