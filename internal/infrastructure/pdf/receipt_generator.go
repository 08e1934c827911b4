// Package pdf genera el comprobante de venta en PDF usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Planta + Canal   │  N° Factura + Fecha             │
//	│  ───────────────────────────────────────────────────────── │
//	│  CLIENTE: Nombre + Tipo + Tel (si hay)                      │
//	│  ───────────────────────────────────────────────────────── │
//	│  TABLA: Cant | Producto | Precio | Subtotal                 │
//	│  ───────────────────────────────────────────────────────── │
//	│  TOTAL + Método de pago + Estado de pago                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appsales "github.com/tu-usuario/planta-pos/internal/application/sales"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
)

var _ appsales.ReceiptGenerator = (*ReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 140}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// es-CO: separador de miles con punto, como se lee un recibo en Colombia.
var moneyPrinter = message.NewPrinter(language.MustParse("es-CO"))

// ReceiptGenerator genera comprobantes de venta con Maroto v2.
type ReceiptGenerator struct {
	plantName string
}

// NewReceiptGenerator construye el generador con el nombre de la planta.
func NewReceiptGenerator(plantName string) *ReceiptGenerator {
	return &ReceiptGenerator{plantName: plantName}
}

// Generate genera el PDF del comprobante y devuelve sus bytes.
func (g *ReceiptGenerator) Generate(sale *entity.Sale, customer *entity.Customer, products map[string]*entity.Product) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de venta", true).
		WithAuthor(g.plantName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(sale.Items, products) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: planta + canal (izq) y N° factura + fecha (der).
func (g *ReceiptGenerator) headerRow(sale *entity.Sale) core.Row {
	channelLabel := "Venta en planta"
	if sale.Channel == entity.ChannelRoute {
		channelLabel = "Venta en ruta"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.plantName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(channelLabel, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(sale.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+sale.SoldAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente, o consumidor final si no hay.
func customerRow(customer *entity.Customer) core.Row {
	name := "Consumidor final"
	detail := ""
	if customer != nil {
		name = customer.Name
		detail = fmt.Sprintf("Tipo: %s   |   Tel: %s", customer.Type, nonEmpty(customer.Phone, "—"))
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(detail, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableItemRows: una fila por línea de venta.
func tableItemRows(items []*entity.SaleItem, products map[string]*entity.Product) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, item := range items {
		name := item.ProductID
		if p, ok := products[item.ProductID]; ok && p != nil {
			name = p.Name
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", item.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(item.PriceSnapshot),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatMoney(item.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: total y condiciones de pago.
func totalsRow(sale *entity.Sale) core.Row {
	payment := fmt.Sprintf("Pago: %s   |   Estado: %s", sale.PaymentMethod, sale.PaymentStatus)
	if sale.DueDate != nil {
		payment += "   |   Vence: " + sale.DueDate.Format("02/01/2006")
	}
	return row.New(14).Add(
		col.New(7).Add(
			text.New(payment, props.Text{Size: 8, Top: 4, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("TOTAL A PAGAR", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(formatMoney(sale.TotalAmount), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
		),
	)
}

func formatMoney(amount decimal.Decimal) string {
	return moneyPrinter.Sprintf("$%d", amount.IntPart())
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
