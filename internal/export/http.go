package export

import (
	"encoding/json"
	"net/http"

	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/roster"
)

// Handler serves the export sheet for the active roster.
type Handler struct {
	svc *roster.Service
}

func NewHandler(svc *roster.Service) *Handler {
	return &Handler{svc: svc}
}

// Sheet builds the export view. GET uses the persisted settings; POST
// takes one-off options in the body without persisting them.
func (h *Handler) Sheet(w http.ResponseWriter, r *http.Request) {
	opts := DefaultOptions()
	switch r.Method {
	case http.MethodGet:
		if raw := h.svc.ExportSettings(); len(raw) > 0 {
			if err := json.Unmarshal(raw, &opts); err != nil {
				opts = DefaultOptions()
			}
		}
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json")
			return
		}
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	active := h.svc.Active()
	if active == nil {
		writeErr(w, http.StatusConflict, "no active roster")
		return
	}
	writeJSON(w, http.StatusOK, Build(h.svc.Catalog(), active, opts))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
