package repository_test

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/notasmx/notas-service/internal/db"
	"github.com/notasmx/notas-service/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const postgresImage = "postgres:17-alpine"

// startPostgres runs a disposable Postgres, applies migrations and returns a
// ready-to-use connection string.
func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase("notas"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, "", fmt.Errorf("tcpostgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	if err := db.Migrate(connStr); err != nil {
		return container, "", fmt.Errorf("db.Migrate: %w", err)
	}

	return container, connStr, nil
}

func fakeClient() domain.Client {
	return domain.Client{
		RazonSocial:     gofakeit.Company(),
		NombreComercial: lo.ToPtr(gofakeit.AppName()),
		RFC:             gofakeit.LetterN(4) + gofakeit.DigitN(6) + gofakeit.LetterN(3),
		Email:           lo.ToPtr(gofakeit.Email()),
		Telefono:        lo.ToPtr(gofakeit.Phone()),
	}
}

func fakeProduct() domain.Product {
	return domain.Product{
		Nombre:     gofakeit.ProductName(),
		PrecioBase: decimal.NewFromFloat(gofakeit.Price(1, 500)).Round(2),
	}
}

func insertClient(ctx context.Context, pool *pgxpool.Pool, c domain.Client) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO clientes (razon_social, nombre_comercial, rfc, email, telefono)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		c.RazonSocial, c.NombreComercial, c.RFC, c.Email, c.Telefono).Scan(&id)
	return id, err
}

func insertProduct(ctx context.Context, pool *pgxpool.Pool, p domain.Product) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO productos (nombre, precio_base) VALUES ($1, $2) RETURNING id`,
		p.Nombre, p.PrecioBase).Scan(&id)
	return id, err
}
