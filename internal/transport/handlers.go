// Package transport carries the HTTP surface: routing, typed DTOs and the
// request logging middleware.
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/notasmx/notas-service/internal/domain"
	"github.com/notasmx/notas-service/internal/metrics"
	"github.com/notasmx/notas-service/internal/port"
	log "github.com/sirupsen/logrus"
)

type handler struct {
	svc port.NotaService
}

// Router wires all routes behind the logging and metrics middleware.
func Router(svc port.NotaService, m *metrics.Metrics, metricsHandler http.Handler) http.Handler {
	h := &handler{svc: svc}

	r := mux.NewRouter()
	r.Use(m.Middleware)

	r.HandleFunc("/health", health).Methods(http.MethodGet)
	r.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	r.HandleFunc("/notas", h.createNota).Methods(http.MethodPost)
	r.HandleFunc("/notas/{folio}", h.getNota).Methods(http.MethodGet)
	r.HandleFunc("/notas/{folio}/download", h.downloadNota).Methods(http.MethodGet)

	return logMiddleware(r)
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}

func (h *handler) createNota(w http.ResponseWriter, r *http.Request) {
	var req createNotaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.svc.CreateNota(r.Context(), req.toDomain())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, notaCreatedResponse{
		ID:    created.ID,
		Folio: created.Folio,
		Total: created.Total,
	})
}

func (h *handler) getNota(w http.ResponseWriter, r *http.Request) {
	folio := mux.Vars(r)["folio"]

	nota, err := h.svc.GetNota(r.Context(), folio)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapNotaToResponse(nota))
}

func (h *handler) downloadNota(w http.ResponseWriter, r *http.Request) {
	folio := mux.Vars(r)["folio"]

	pdfBytes, err := h.svc.DownloadNota(r.Context(), folio)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfBytes); err != nil {
		log.WithError(err).Error("write pdf response")
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	var productNotFound domain.ProductNotFoundError

	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		writeError(w, http.StatusBadRequest, domain.ErrClientNotFound.Error())
	case errors.As(err, &productNotFound):
		writeError(w, http.StatusBadRequest, productNotFound.Error())
	case errors.Is(err, domain.ErrNotaNotFound):
		writeError(w, http.StatusNotFound, domain.ErrNotaNotFound.Error())
	case errors.Is(err, domain.ErrArtifactNotFound):
		writeError(w, http.StatusNotFound, domain.ErrArtifactNotFound.Error())
	default:
		log.WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("write json response")
	}
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL.String(),
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		next.ServeHTTP(w, r)
	})
}
