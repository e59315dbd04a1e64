// Package pdf renders a nota receipt as a paginated A4 document.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/notasmx/notas-service/internal/domain"
	"github.com/notasmx/notas-service/internal/port"
)

const (
	marginLeft = 50.0
	topY       = 50.0
	rowHeight  = 15.0
	// bottomGuard is the near-bottom threshold; a row is never started below it.
	bottomGuard = 80.0

	colCantidadX = 50.0
	colProductoX = 120.0
	colPrecioX   = 400.0 // right edge of the unit price column
	colImporteX  = 500.0 // right edge of the importe column
)

type renderer struct{}

func NewRenderer() port.Renderer {
	return &renderer{}
}

func (r *renderer) Render(cliente domain.Client, nota domain.Nota, items []domain.NotaItem) ([]byte, error) {
	doc := build(cliente, nota, items)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("doc.Output: %w", err)
	}

	return buf.Bytes(), nil
}

// build lays the receipt out page by page. Kept separate from Render so
// tests can inspect page counts without parsing PDF bytes.
func build(cliente domain.Client, nota domain.Nota, items []domain.NotaItem) *fpdf.Fpdf {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	_, pageHeight := doc.GetPageSize()
	breakY := pageHeight - bottomGuard

	y := topY

	doc.SetFont("Helvetica", "B", 14)
	doc.Text(marginLeft, y, cliente.RazonSocial)
	y += 20

	if cliente.NombreComercial != nil {
		doc.SetFont("Helvetica", "", 12)
		doc.Text(marginLeft, y, *cliente.NombreComercial)
		y += 20
	}

	doc.SetFont("Helvetica", "", 10)
	doc.Text(marginLeft, y, "RFC: "+cliente.RFC)
	y += 15
	doc.Text(marginLeft, y, fmt.Sprintf("Correo: %s  Tel: %s", strOrEmpty(cliente.Email), strOrEmpty(cliente.Telefono)))
	y += 25

	doc.SetFont("Helvetica", "B", 12)
	doc.Text(marginLeft, y, "Folio: "+nota.Folio)
	y += 30

	doc.SetFont("Helvetica", "B", 11)
	doc.Text(colCantidadX, y, "Cantidad")
	doc.Text(colProductoX, y, "Producto")
	doc.Text(320, y, "P. Unitario")
	doc.Text(430, y, "Importe")
	y += rowHeight

	doc.SetFont("Helvetica", "", 10)
	for _, item := range items {
		if y > breakY {
			doc.AddPage()
			y = topY
		}
		doc.Text(colCantidadX, y, item.Cantidad.String())
		doc.Text(colProductoX, y, item.ProductoNombre)
		textRight(doc, colPrecioX, y, item.PrecioUnitario.StringFixed(2))
		textRight(doc, colImporteX, y, item.Importe.StringFixed(2))
		y += rowHeight
	}

	y += 20
	doc.SetFont("Helvetica", "B", 12)
	textRight(doc, colImporteX, y, "Total: "+nota.Total.StringFixed(2))

	return doc
}

func textRight(doc *fpdf.Fpdf, rightX, y float64, s string) {
	doc.Text(rightX-doc.GetStringWidth(s), y, s)
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
