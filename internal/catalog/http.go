package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/model"
)

// Handler serves read-only catalog lookups.
type Handler struct {
	cat *Catalog
}

func NewHandler(cat *Catalog) *Handler {
	return &Handler{cat: cat}
}

// GET /api/catalog/cards?category=Torso&faction=RDL
//
// Without a category every definition is returned; a faction filters
// to cards that faction can field.
func (h *Handler) Cards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	category := model.Category(r.URL.Query().Get("category"))
	faction := r.URL.Query().Get("faction")

	var cards []*model.Card
	switch {
	case category == "":
		cards = h.cat.All()
	case faction == "":
		cards = h.cat.Category(category)
	default:
		cards = h.cat.ForFaction(category, faction)
	}
	writeJSON(w, http.StatusOK, map[string]any{"cards": cards})
}

// GET /api/catalog/keywords
func (h *Handler) KeywordList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"keywords": h.cat.Keywords()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
