package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/notasmx/notas-service/internal/domain"
	"github.com/notasmx/notas-service/internal/port"
	"github.com/shopspring/decimal"
)

// FolioUniqueConstraint is the unique index backing notas.folio; the service
// retries creation with a fresh folio when an insert trips it.
const FolioUniqueConstraint = "notas_folio_key"

type notaRepository struct {
	q Querier
}

func NewNota(pool *pgxpool.Pool) port.NotaRepository {
	return &notaRepository{q: pool}
}

func NewNotaWithTx(tx pgx.Tx) port.NotaRepository {
	return &notaRepository{q: tx}
}

func (r *notaRepository) InsertNota(ctx context.Context, folio string, clienteID, domFacturacionID, domEnvioID int64) (int64, error) {
	var notaID int64

	row := r.q.QueryRow(ctx,
		`INSERT INTO notas (folio, cliente_id, domicilio_facturacion_id, domicilio_envio_id, total)
		 VALUES ($1, $2, $3, $4, 0)
		 RETURNING id`,
		folio, clienteID, domFacturacionID, domEnvioID)

	if err := row.Scan(&notaID); err != nil {
		return 0, fmt.Errorf("row.Scan: %w", err)
	}

	return notaID, nil
}

func (r *notaRepository) InsertItem(ctx context.Context, notaID int64, item domain.NotaItem) (int64, error) {
	var itemID int64

	row := r.q.QueryRow(ctx,
		`INSERT INTO nota_items (nota_id, producto_id, cantidad, precio_unitario, importe)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		notaID, item.ProductoID, item.Cantidad, item.PrecioUnitario, item.Importe)

	if err := row.Scan(&itemID); err != nil {
		return 0, fmt.Errorf("row.Scan: %w", err)
	}

	return itemID, nil
}

func (r *notaRepository) UpdateTotal(ctx context.Context, notaID int64, total decimal.Decimal) error {
	cmdTag, err := r.q.Exec(ctx, `UPDATE notas SET total = $1 WHERE id = $2`, total, notaID)
	if err != nil {
		return fmt.Errorf("q.Exec: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotaNotFound
	}

	return nil
}

func (r *notaRepository) UpdatePDFKey(ctx context.Context, notaID int64, key string) error {
	cmdTag, err := r.q.Exec(ctx, `UPDATE notas SET pdf_s3_key = $1 WHERE id = $2`, key, notaID)
	if err != nil {
		return fmt.Errorf("q.Exec: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotaNotFound
	}

	return nil
}

func (r *notaRepository) GetNotaByFolio(ctx context.Context, folio string) (domain.Nota, error) {
	var n domain.Nota

	row := r.q.QueryRow(ctx,
		`SELECT n.id, n.folio, n.cliente_id, n.domicilio_facturacion_id, n.domicilio_envio_id,
		        n.total, n.pdf_s3_key,
		        c.id, c.razon_social, c.nombre_comercial, c.rfc, c.email, c.telefono
		 FROM notas n
		 JOIN clientes c ON n.cliente_id = c.id
		 WHERE n.folio = $1`, folio)

	err := row.Scan(
		&n.ID, &n.Folio, &n.ClienteID, &n.DomicilioFacturacionID, &n.DomicilioEnvioID,
		&n.Total, &n.PDFKey,
		&n.Cliente.ID, &n.Cliente.RazonSocial, &n.Cliente.NombreComercial,
		&n.Cliente.RFC, &n.Cliente.Email, &n.Cliente.Telefono,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return n, domain.ErrNotaNotFound
		}
		return n, fmt.Errorf("row.Scan: %w", err)
	}

	return n, nil
}

// GetItems returns the items of a nota in insertion order.
func (r *notaRepository) GetItems(ctx context.Context, notaID int64) ([]domain.NotaItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT ni.id, ni.nota_id, ni.producto_id, p.nombre, ni.cantidad, ni.precio_unitario, ni.importe
		 FROM nota_items ni
		 JOIN productos p ON ni.producto_id = p.id
		 WHERE ni.nota_id = $1
		 ORDER BY ni.id`, notaID)
	if err != nil {
		return nil, fmt.Errorf("q.Query: %w", err)
	}
	defer rows.Close()

	var items []domain.NotaItem
	for rows.Next() {
		var it domain.NotaItem
		if err := rows.Scan(&it.ID, &it.NotaID, &it.ProductoID, &it.ProductoNombre,
			&it.Cantidad, &it.PrecioUnitario, &it.Importe); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return items, nil
}

func (r *notaRepository) GetPDFKeyByFolio(ctx context.Context, folio string) (*string, error) {
	var key *string

	row := r.q.QueryRow(ctx, `SELECT pdf_s3_key FROM notas WHERE folio = $1`, folio)
	if err := row.Scan(&key); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotaNotFound
		}
		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	return key, nil
}
