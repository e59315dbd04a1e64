// Package service orchestrates the nota use cases: creation, read and
// receipt download.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/notasmx/notas-service/internal/domain"
	"github.com/notasmx/notas-service/internal/port"
	"github.com/notasmx/notas-service/internal/pricing"
	"github.com/notasmx/notas-service/internal/repository"
	log "github.com/sirupsen/logrus"
)

const (
	// folioAttempts bounds the generate-and-retry loop on folio collisions.
	folioAttempts = 3

	notifyTimeout = 5 * time.Second
)

// FolioFunc generates a candidate folio for a client.
type FolioFunc func(clienteID int64) string

type NotaService struct {
	pool      *pgxpool.Pool
	catalog   port.CatalogRepository
	notas     port.NotaRepository
	artifacts port.ArtifactStore
	renderer  port.Renderer
	notifier  port.Notifier // nil when notification is not configured
	folios    FolioFunc
}

var _ port.NotaService = (*NotaService)(nil)

type Option func(*NotaService)

// WithFolioFunc replaces the default folio generator.
func WithFolioFunc(f FolioFunc) Option {
	return func(s *NotaService) {
		s.folios = f
	}
}

func New(pool *pgxpool.Pool, catalog port.CatalogRepository, notas port.NotaRepository,
	artifacts port.ArtifactStore, renderer port.Renderer, notifier port.Notifier, opts ...Option) *NotaService {
	s := &NotaService{
		pool:      pool,
		catalog:   catalog,
		notas:     notas,
		artifacts: artifacts,
		renderer:  renderer,
		notifier:  notifier,
		folios:    newFolio,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateNota runs the whole creation inside one transaction: header insert,
// pricing, item inserts, total, PDF upload and key recording all commit or
// roll back together. On a folio collision the transaction is retried with a
// fresh folio.
func (s *NotaService) CreateNota(ctx context.Context, req domain.CreateNotaRequest) (domain.NotaCreated, error) {
	var created domain.NotaCreated

	cliente, err := s.catalog.GetClient(ctx, req.ClienteID)
	if err != nil {
		return created, fmt.Errorf("catalog.GetClient: %w", err)
	}

	for attempt := 0; ; attempt++ {
		folio := s.folios(cliente.ID)

		created, err = s.createWithFolio(ctx, cliente, folio, req)
		if err != nil {
			if attempt+1 < folioAttempts && repository.IsUniqueViolation(err, repository.FolioUniqueConstraint) {
				continue
			}
			return domain.NotaCreated{}, err
		}
		break
	}

	s.notifyCreated(cliente, created)

	return created, nil
}

func (s *NotaService) createWithFolio(ctx context.Context, cliente domain.Client, folio string, req domain.CreateNotaRequest) (domain.NotaCreated, error) {
	var created domain.NotaCreated

	err := repository.RunInTx(ctx, s.pool, func(tx pgx.Tx) error {
		notas := repository.NewNotaWithTx(tx)
		catalog := repository.NewCatalogWithTx(tx)

		notaID, err := notas.InsertNota(ctx, folio, cliente.ID, req.DomicilioFacturacionID, req.DomicilioEnvioID)
		if err != nil {
			return fmt.Errorf("notas.InsertNota: %w", err)
		}

		items, total, err := pricing.PriceItems(ctx, req.Items, catalog.GetProduct)
		if err != nil {
			return fmt.Errorf("pricing.PriceItems: %w", err)
		}

		for _, item := range items {
			if _, err := notas.InsertItem(ctx, notaID, item); err != nil {
				return fmt.Errorf("notas.InsertItem: %w", err)
			}
		}

		if err := notas.UpdateTotal(ctx, notaID, total); err != nil {
			return fmt.Errorf("notas.UpdateTotal: %w", err)
		}

		nota := domain.Nota{ID: notaID, Folio: folio, ClienteID: cliente.ID, Total: total}

		pdfBytes, err := s.renderer.Render(cliente, nota, items)
		if err != nil {
			return fmt.Errorf("renderer.Render: %w", err)
		}

		key := fmt.Sprintf("%s/%s.pdf", cliente.RFC, folio)
		if err := s.artifacts.Put(ctx, key, pdfBytes); err != nil {
			return fmt.Errorf("artifacts.Put: %w", err)
		}

		if err := notas.UpdatePDFKey(ctx, notaID, key); err != nil {
			return fmt.Errorf("notas.UpdatePDFKey: %w", err)
		}

		created = domain.NotaCreated{ID: notaID, Folio: folio, Total: total}
		return nil
	})
	if err != nil {
		return domain.NotaCreated{}, err
	}

	return created, nil
}

// notifyCreated fires the best-effort notification after commit. Failures
// are logged and never reach the caller.
func (s *NotaService) notifyCreated(cliente domain.Client, created domain.NotaCreated) {
	if s.notifier == nil || cliente.Email == nil {
		return
	}

	notification := port.NotaNotification{
		Email: *cliente.Email,
		Folio: created.Folio,
		RFC:   cliente.RFC,
		S3Key: fmt.Sprintf("%s/%s.pdf", cliente.RFC, created.Folio),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.NotaCreated(ctx, notification); err != nil {
			log.WithError(err).WithField("folio", created.Folio).Error("mail-notifier call failed")
		}
	}()
}

func (s *NotaService) GetNota(ctx context.Context, folio string) (domain.Nota, error) {
	nota, err := s.notas.GetNotaByFolio(ctx, folio)
	if err != nil {
		return domain.Nota{}, fmt.Errorf("notas.GetNotaByFolio: %w", err)
	}

	items, err := s.notas.GetItems(ctx, nota.ID)
	if err != nil {
		return domain.Nota{}, fmt.Errorf("notas.GetItems: %w", err)
	}
	nota.Items = items

	return nota, nil
}

// DownloadNota marks the receipt downloaded on every call, then returns its
// bytes. The metadata write is deliberately unconditional.
func (s *NotaService) DownloadNota(ctx context.Context, folio string) ([]byte, error) {
	key, err := s.notas.GetPDFKeyByFolio(ctx, folio)
	if err != nil {
		return nil, fmt.Errorf("notas.GetPDFKeyByFolio: %w", err)
	}
	if key == nil {
		return nil, domain.ErrArtifactNotFound
	}

	metadata, err := s.artifacts.Metadata(ctx, *key)
	if err != nil {
		return nil, fmt.Errorf("artifacts.Metadata: %w", err)
	}

	metadata[port.MetaNotaDescargada] = "true"
	if err := s.artifacts.ReplaceMetadata(ctx, *key, metadata); err != nil {
		return nil, fmt.Errorf("artifacts.ReplaceMetadata: %w", err)
	}

	pdfBytes, err := s.artifacts.Get(ctx, *key)
	if err != nil {
		return nil, fmt.Errorf("artifacts.Get: %w", err)
	}

	return pdfBytes, nil
}

func newFolio(clienteID int64) string {
	token := uuid.NewString()[:8]
	return fmt.Sprintf("FOL-%d-%s", clienteID, token)
}
