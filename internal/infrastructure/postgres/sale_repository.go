package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/planta-pos/internal/domain"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas e ítems sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, invoice_number, customer_id, channel, payment_method, total_amount, status, payment_status, sync_status, due_date, created_by, sold_at, created_at, updated_at`

// Create persiste la venta. El número de factura choca contra el índice
// único si otra venta del mismo canal tomó la misma secuencia.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.InvoiceNumber, sale.CustomerID, sale.Channel, sale.PaymentMethod,
		sale.TotalAmount, sale.Status, sale.PaymentStatus, sale.SyncStatus,
		sale.DueDate, sale.CreatedBy, sale.SoldAt, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, price_id, price_snapshot, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.PriceID,
		item.PriceSnapshot, item.Quantity, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("create sale item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID (sin ítems).
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return scanSale(r.q.QueryRow(context.Background(), query, id))
}

// GetItems obtiene las líneas de una venta.
func (r *SaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, price_id, price_snapshot, quantity, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()

	var items []*entity.SaleItem
	for rows.Next() {
		var item entity.SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.PriceID,
			&item.PriceSnapshot, &item.Quantity, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// CountByChannelBetween cuenta ventas del canal creadas en [from, to).
func (r *SaleRepo) CountByChannelBetween(channel string, from, to time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM sales WHERE channel = $1 AND created_at >= $2 AND created_at < $3`
	var count int64
	if err := r.q.QueryRow(context.Background(), query, channel, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return count, nil
}

// UpdateStatus actualiza el estado de la venta.
func (r *SaleRepo) UpdateStatus(id, status string) error {
	return r.updateField(id, "status", status)
}

// UpdatePaymentStatus actualiza el estado de pago.
func (r *SaleRepo) UpdatePaymentStatus(id, paymentStatus string) error {
	return r.updateField(id, "payment_status", paymentStatus)
}

// UpdateSyncStatus actualiza el estado de sincronización.
func (r *SaleRepo) UpdateSyncStatus(id, syncStatus string) error {
	return r.updateField(id, "sync_status", syncStatus)
}

func (r *SaleRepo) updateField(id, field, value string) error {
	query := fmt.Sprintf(`UPDATE sales SET %s = $1, updated_at = NOW() WHERE id = $2`, field)
	tag, err := r.q.Exec(context.Background(), query, value, id)
	if err != nil {
		return fmt.Errorf("update sale %s: %w", field, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListOverdueUnpaid ventas a crédito impagas con due_date vencida a now.
func (r *SaleRepo) ListOverdueUnpaid(now time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE payment_method = 'CREDIT'
		  AND payment_status = 'unpaid'
		  AND status = 'completed'
		  AND due_date IS NOT NULL
		  AND due_date < $1
		ORDER BY due_date`
	rows, err := r.q.Query(context.Background(), query, now)
	if err != nil {
		return nil, fmt.Errorf("list overdue sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.InvoiceNumber, &s.CustomerID, &s.Channel, &s.PaymentMethod,
		&s.TotalAmount, &s.Status, &s.PaymentStatus, &s.SyncStatus,
		&s.DueDate, &s.CreatedBy, &s.SoldAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	return &s, nil
}
