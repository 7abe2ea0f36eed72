package journal

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/journal", listJournalHandler(svc))
}

// entryResponse representa un intento de ingesta registrado.
type entryResponse struct {
	ID             string    `json:"id"`
	ReceivedAt     time.Time `json:"received_at"`
	Source         Source    `json:"source" enums:"http,mqtt,cli"`
	Collection     string    `json:"collection"`
	Unit           string    `json:"unit"`
	Date           string    `json:"date"`
	Weight         float64   `json:"weight"`
	FatMass        float64   `json:"fat_mass"`
	FatMassPercent float64   `json:"fat_mass_percent"`
	LeanMass       float64   `json:"lean_mass"`
	Status         Status    `json:"status" enums:"created,failed"`
	PageID         string    `json:"page_id,omitempty"`
	Error          string    `json:"error,omitempty"`
}

// listJournalHandler godoc
// @Summary Listar intentos de ingesta
// @Description Devuelve los intentos de ingesta más recientes primero (auditoría local; Notion sigue siendo la fuente de verdad). Si INGEST_TOKEN está configurado requiere `Authorization: Bearer <token>`.
// @Tags journal
// @Produce json
// @Param Authorization header string false "Bearer token si INGEST_TOKEN está configurado"
// @Param limit query int false "Máximo a devolver (1-200). Por defecto 50"
// @Success 200 {array} entryResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /journal [get]
func listJournalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := DefaultLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		items, err := svc.ListRecent(r.Context(), limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func toEntryResponse(e Entry) entryResponse {
	return entryResponse{
		ID:             e.ID,
		ReceivedAt:     e.ReceivedAt,
		Source:         e.Source,
		Collection:     e.Collection,
		Unit:           e.Unit,
		Date:           e.Date,
		Weight:         e.Weight,
		FatMass:        e.FatMass,
		FatMassPercent: e.FatMassPercent,
		LeanMass:       e.LeanMass,
		Status:         e.Status,
		PageID:         e.PageID,
		Error:          e.Error,
	}
}

// writeJSON está duplicado en measurements a propósito (igual que en los otros módulos).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
