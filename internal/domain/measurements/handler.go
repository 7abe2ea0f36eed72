package measurements

import (
	"encoding/json"
	"errors"
	"net/http"

	"bodycomp-notion/internal/domain/journal"
	"bodycomp-notion/internal/platform/metrics"
	"bodycomp-notion/internal/ports/store"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta liveness y la ingesta. ingestMW se aplica solo a
// POST /create (token, rate limit).
func RegisterRoutes(r chi.Router, svc *Service, ingestMW ...func(http.Handler) http.Handler) {
	r.Get("/", heartbeatHandler())
	r.With(ingestMW...).Post("/create", createHandler(svc))
}

type heartbeatResponse struct {
	Alive bool `json:"alive"`
}

// heartbeatHandler godoc
// @Summary Liveness
// @Description Siempre responde {"alive": true}; no toca Notion.
// @Tags health
// @Produce json
// @Success 200 {object} heartbeatResponse
// @Router / [get]
func heartbeatHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, heartbeatResponse{Alive: true})
	}
}

// createHandler godoc
// @Summary Registrar medición de composición corporal
// @Description Declara las columnas de la unidad en la database de Notion (merge, no borra columnas de otra unidad) y crea una fila nueva. Usa NOTION_DATABASE o, si no está, la primera database accesible. Devuelve la page creada tal cual la devuelve Notion. Si INGEST_TOKEN está configurado requiere `Authorization: Bearer <token>`.
// @Tags measurements
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token si INGEST_TOKEN está configurado"
// @Param payload body CreateRequest true "Medición; date en formato MMMM DD, YYYY at HH:mmA"
// @Success 200 {object} object "page de Notion"
// @Failure 400 {string} string "invalid json / campo inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 429 {string} string "rate limit exceeded"
// @Failure 502 {string} string "notion error / no accessible database"
// @Failure 500 {string} string "internal error"
// @Router /create [post]
func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := DecodeCreateRequest(r.Body)
		if err != nil {
			reject(w, err)
			return
		}

		m, err := req.Measurement()
		if err != nil {
			reject(w, err)
			return
		}

		row, err := svc.Ingest(r.Context(), journal.SourceHTTP, m)
		if err != nil {
			switch {
			case errors.Is(err, ErrNoCollection):
				http.Error(w, "no accessible database", http.StatusBadGateway)
			case store.IsExternal(err):
				http.Error(w, "notion error", http.StatusBadGateway)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		// La page va tal cual la devolvió Notion.
		if len(row.Raw) == 0 {
			writeJSON(w, http.StatusOK, map[string]string{"id": row.ID, "url": row.URL})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(row.Raw)
	}
}

func reject(w http.ResponseWriter, err error) {
	metrics.IngestionsTotal.WithLabelValues(string(journal.SourceHTTP), "rejected").Inc()
	http.Error(w, err.Error(), http.StatusBadRequest)
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
