// Package overdue implementa el barrido de créditos vencidos: ventas a
// crédito impagas con due_date pasada pasan a overdue y su cliente queda en
// lista negra hasta saldar.
package overdue

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
	"github.com/tu-usuario/planta-pos/pkg/logger"
)

// Result resumen de un barrido.
type Result struct {
	SalesMarked          int `json:"sales_marked"`
	CustomersBlacklisted int `json:"customers_blacklisted"`
}

// Sweeper caso de uso del barrido de vencidos.
type Sweeper struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	log          *logger.Logger
}

// NewSweeper crea el barredor.
func NewSweeper(saleRepo repository.SaleRepository, customerRepo repository.CustomerRepository, log *logger.Logger) *Sweeper {
	return &Sweeper{saleRepo: saleRepo, customerRepo: customerRepo, log: log}
}

// Sweep marca como vencidas las ventas a crédito impagas con due_date
// anterior a now y pone en lista negra a sus clientes. Idempotente: las
// ventas ya vencidas y los clientes ya listados no se tocan de nuevo.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) (Result, error) {
	var res Result

	sales, err := s.saleRepo.ListOverdueUnpaid(now)
	if err != nil {
		return res, err
	}

	for _, sale := range sales {
		if err := s.saleRepo.UpdatePaymentStatus(sale.ID, entity.PaymentStatusOverdue); err != nil {
			return res, err
		}
		res.SalesMarked++

		if sale.CustomerID == nil {
			continue
		}
		customer, err := s.customerRepo.GetByID(*sale.CustomerID)
		if err != nil {
			return res, err
		}
		if customer == nil || customer.IsBlacklisted {
			continue
		}
		reason := fmt.Sprintf("factura %s vencida sin pago", sale.InvoiceNumber)
		if err := s.customerRepo.SetBlacklisted(customer.ID, reason); err != nil {
			return res, err
		}
		res.CustomersBlacklisted++
		s.log.Warn().
			Str("customer_id", customer.ID).
			Str("invoice", sale.InvoiceNumber).
			Msg("cliente en lista negra por crédito vencido")
	}

	s.log.Info().
		Int("sales_marked", res.SalesMarked).
		Int("customers_blacklisted", res.CustomersBlacklisted).
		Msg("barrido de vencidos completado")
	return res, nil
}
