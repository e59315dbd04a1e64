package transport_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/notasmx/notas-service/internal/domain"
	"github.com/notasmx/notas-service/internal/metrics"
	"github.com/notasmx/notas-service/internal/transport"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService cans responses per folio / request.
type stubService struct {
	created    domain.NotaCreated
	createErr  error
	nota       domain.Nota
	getErr     error
	pdfBytes   []byte
	getPDFErr  error
	lastCreate domain.CreateNotaRequest
}

func (s *stubService) CreateNota(_ context.Context, req domain.CreateNotaRequest) (domain.NotaCreated, error) {
	s.lastCreate = req
	return s.created, s.createErr
}

func (s *stubService) GetNota(_ context.Context, _ string) (domain.Nota, error) {
	return s.nota, s.getErr
}

func (s *stubService) DownloadNota(_ context.Context, _ string) ([]byte, error) {
	return s.pdfBytes, s.getPDFErr
}

func newTestRouter(svc *stubService) http.Handler {
	registry := prometheus.NewRegistry()
	m := metrics.New("test", registry)
	return transport.Router(svc, m, metrics.Handler(registry))
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, newTestRouter(&stubService{}), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(&stubService{})

	// generate one observation first
	doRequest(t, router, http.MethodGet, "/health", "")

	rec := doRequest(t, router, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_responses_total")
	assert.Contains(t, rec.Body.String(), "http_request_duration_seconds")
}

func TestCreateNota(t *testing.T) {
	validBody := `{
		"cliente_id": 1,
		"domicilio_facturacion_id": 2,
		"domicilio_envio_id": 3,
		"items": [{"producto_id": 7, "cantidad": 2, "precio_unitario": 10.50}]
	}`

	tests := []struct {
		name       string
		body       string
		svc        *stubService
		wantStatus int
		wantError  string
	}{
		{
			name: "valid request: 201",
			body: validBody,
			svc: &stubService{
				created: domain.NotaCreated{ID: 42, Folio: "FOL-1-abcd1234", Total: decimal.RequireFromString("21.00")},
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "malformed json: 400",
			body:       "{",
			svc:        &stubService{},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "missing cliente_id: 400",
			body:       `{"domicilio_facturacion_id": 2, "domicilio_envio_id": 3, "items": [{"producto_id": 7}]}`,
			svc:        &stubService{},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request: missing cliente_id",
		},
		{
			name:       "missing domicilio_facturacion_id: 400",
			body:       `{"cliente_id": 1, "domicilio_envio_id": 3, "items": [{"producto_id": 7}]}`,
			svc:        &stubService{},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request: missing domicilio_facturacion_id",
		},
		{
			name:       "missing domicilio_envio_id: 400",
			body:       `{"cliente_id": 1, "domicilio_facturacion_id": 2, "items": [{"producto_id": 7}]}`,
			svc:        &stubService{},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request: missing domicilio_envio_id",
		},
		{
			name:       "empty items: 400",
			body:       `{"cliente_id": 1, "domicilio_facturacion_id": 2, "domicilio_envio_id": 3, "items": []}`,
			svc:        &stubService{},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request: missing items",
		},
		{
			name:       "zero cantidad: 400",
			body:       `{"cliente_id": 1, "domicilio_facturacion_id": 2, "domicilio_envio_id": 3, "items": [{"producto_id": 7, "cantidad": 0}]}`,
			svc:        &stubService{},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request: items[0] cantidad must be positive",
		},
		{
			name:       "unknown client: 400",
			body:       validBody,
			svc:        &stubService{createErr: domain.ErrClientNotFound},
			wantStatus: http.StatusBadRequest,
			wantError:  "client not found",
		},
		{
			name:       "unknown product: 400",
			body:       validBody,
			svc:        &stubService{createErr: domain.ProductNotFoundError{ProductoID: 7}},
			wantStatus: http.StatusBadRequest,
			wantError:  "product 7 not found",
		},
		{
			name:       "backend failure: 500",
			body:       validBody,
			svc:        &stubService{createErr: domain.ErrStoreUnavailable},
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newTestRouter(tt.svc), http.MethodPost, "/notas", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rec))
				return
			}

			var resp struct {
				ID    int64           `json:"id"`
				Folio string          `json:"folio"`
				Total decimal.Decimal `json:"total"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, int64(42), resp.ID)
			assert.Equal(t, "FOL-1-abcd1234", resp.Folio)
			assert.True(t, decimal.RequireFromString("21.00").Equal(resp.Total))
		})
	}
}

func TestCreateNotaPassesItemsThrough(t *testing.T) {
	svc := &stubService{created: domain.NotaCreated{ID: 1, Folio: "FOL-1-x", Total: decimal.Zero}}

	body := `{
		"cliente_id": 5,
		"domicilio_facturacion_id": 6,
		"domicilio_envio_id": 7,
		"items": [
			{"producto_id": 1},
			{"producto_id": 2, "cantidad": 4},
			{"producto_id": 3, "precio_unitario": 99.90}
		]
	}`

	rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/notas", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	req := svc.lastCreate
	assert.Equal(t, int64(5), req.ClienteID)
	require.Len(t, req.Items, 3)

	assert.Nil(t, req.Items[0].Cantidad)
	assert.Nil(t, req.Items[0].PrecioUnitario)

	require.NotNil(t, req.Items[1].Cantidad)
	assert.True(t, req.Items[1].Cantidad.Equal(decimal.NewFromInt(4)))

	require.NotNil(t, req.Items[2].PrecioUnitario)
	assert.True(t, req.Items[2].PrecioUnitario.Equal(decimal.RequireFromString("99.90")))
}

func TestGetNota(t *testing.T) {
	nota := domain.Nota{
		ID:     42,
		Folio:  "FOL-1-abcd1234",
		Total:  decimal.RequireFromString("21.00"),
		PDFKey: lo.ToPtr("RFC1/FOL-1-abcd1234.pdf"),
		Cliente: domain.Client{
			ID:          1,
			RazonSocial: "Comercial del Valle SA",
			RFC:         "CVA900101AB2",
		},
		Items: []domain.NotaItem{
			{ID: 7, ProductoNombre: "Lamina", Cantidad: decimal.NewFromInt(2), PrecioUnitario: decimal.RequireFromString("10.50"), Importe: decimal.RequireFromString("21.00")},
		},
	}

	tests := []struct {
		name       string
		svc        *stubService
		wantStatus int
		wantError  string
	}{
		{
			name:       "existing nota: 200",
			svc:        &stubService{nota: nota},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown folio: 404",
			svc:        &stubService{getErr: domain.ErrNotaNotFound},
			wantStatus: http.StatusNotFound,
			wantError:  "nota not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newTestRouter(tt.svc), http.MethodGet, "/notas/FOL-1-abcd1234", "")

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rec))
				return
			}

			var resp struct {
				ID      int64  `json:"id"`
				Folio   string `json:"folio"`
				PDFKey  string `json:"pdf_s3_key"`
				Cliente struct {
					RFC string `json:"rfc"`
				} `json:"cliente"`
				Items []struct {
					ProductoNombre string `json:"producto_nombre"`
				} `json:"items"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, int64(42), resp.ID)
			assert.Equal(t, "FOL-1-abcd1234", resp.Folio)
			assert.Equal(t, "RFC1/FOL-1-abcd1234.pdf", resp.PDFKey)
			assert.Equal(t, "CVA900101AB2", resp.Cliente.RFC)
			require.Len(t, resp.Items, 1)
			assert.Equal(t, "Lamina", resp.Items[0].ProductoNombre)
		})
	}
}

func TestDownloadNota(t *testing.T) {
	tests := []struct {
		name            string
		svc             *stubService
		wantStatus      int
		wantContentType string
	}{
		{
			name:            "existing artifact: pdf bytes",
			svc:             &stubService{pdfBytes: []byte("%PDF-stub")},
			wantStatus:      http.StatusOK,
			wantContentType: "application/pdf",
		},
		{
			name:            "unknown folio: 404",
			svc:             &stubService{getPDFErr: domain.ErrNotaNotFound},
			wantStatus:      http.StatusNotFound,
			wantContentType: "application/json",
		},
		{
			name:            "missing artifact: 404",
			svc:             &stubService{getPDFErr: domain.ErrArtifactNotFound},
			wantStatus:      http.StatusNotFound,
			wantContentType: "application/json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newTestRouter(tt.svc), http.MethodGet, "/notas/FOL-1-abcd1234/download", "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantContentType, rec.Header().Get("Content-Type"))

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "%PDF-stub", rec.Body.String())
			}
		})
	}
}
