package domain

import "github.com/shopspring/decimal"

// Client is read-only reference data; this service never writes it.
type Client struct {
	ID              int64
	RazonSocial     string
	NombreComercial *string
	RFC             string
	Email           *string
	Telefono        *string
}

// Product is read-only reference data.
type Product struct {
	ID         int64
	Nombre     string
	PrecioBase decimal.Decimal
}
