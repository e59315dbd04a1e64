package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/notasmx/notas-service/internal/domain"
	"github.com/notasmx/notas-service/internal/port"
)

type catalogRepository struct {
	q Querier
}

func NewCatalog(pool *pgxpool.Pool) port.CatalogRepository {
	return &catalogRepository{q: pool}
}

func NewCatalogWithTx(tx pgx.Tx) port.CatalogRepository {
	return &catalogRepository{q: tx}
}

func (r *catalogRepository) GetClient(ctx context.Context, clientID int64) (domain.Client, error) {
	var c domain.Client

	row := r.q.QueryRow(ctx,
		`SELECT id, razon_social, nombre_comercial, rfc, email, telefono
		 FROM clientes WHERE id = $1`, clientID)

	err := row.Scan(&c.ID, &c.RazonSocial, &c.NombreComercial, &c.RFC, &c.Email, &c.Telefono)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c, domain.ErrClientNotFound
		}
		return c, fmt.Errorf("row.Scan: %w", err)
	}

	return c, nil
}

func (r *catalogRepository) GetProduct(ctx context.Context, productID int64) (domain.Product, error) {
	var p domain.Product

	row := r.q.QueryRow(ctx,
		`SELECT id, nombre, precio_base FROM productos WHERE id = $1`, productID)

	err := row.Scan(&p.ID, &p.Nombre, &p.PrecioBase)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, domain.ProductNotFoundError{ProductoID: productID}
		}
		return p, fmt.Errorf("row.Scan: %w", err)
	}

	return p, nil
}
