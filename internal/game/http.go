package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/model"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/roster"
)

// Handler errors.
var (
	ErrNoSession      = errors.New("game mode is not active")
	ErrAlreadyInGame  = errors.New("game mode is already active")
	ErrCardNotFound   = errors.New("card not found")
	ErrUnknownZone    = errors.New("unknown card zone")
	ErrUnknownCommand = errors.New("unknown command")
)

// Handler serves the game-mode API. All card mutations run under one
// lock so commands apply in arrival order.
type Handler struct {
	mu      sync.Mutex
	svc     *roster.Service
	session *Session
}

func NewHandler(svc *roster.Service) *Handler {
	return &Handler{svc: svc}
}

// State is the game-mode view: the session snapshot plus per-unit
// derived stats.
type State struct {
	Active    bool              `json:"active"`
	Roster    *model.Roster     `json:"roster,omitempty"`
	SubCards  []*model.Card     `json:"subCards,omitempty"`
	UnitStats map[int]UnitStats `json:"unitStats,omitempty"`
}

func (h *Handler) state() State {
	if h.session == nil {
		return State{Active: false}
	}
	stats := make(map[int]UnitStats, len(h.session.Roster.Units))
	for id, unit := range h.session.Roster.Units {
		stats[id] = CalculateUnitStats(unit)
	}
	return State{
		Active:    true,
		Roster:    h.session.Roster,
		SubCards:  h.session.SubCards,
		UnitStats: stats,
	}
}

// POST /api/game/enter
func (h *Handler) Enter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session != nil {
		writeErr(w, http.StatusConflict, ErrAlreadyInGame.Error())
		return
	}
	active := h.svc.Active()
	if active == nil {
		writeErr(w, http.StatusConflict, "no active roster")
		return
	}
	h.session = NewSession(h.svc.Catalog(), active)
	h.svc.SetGameMode(true)
	writeJSON(w, http.StatusOK, h.state())
}

// POST /api/game/exit
//
// The session is discarded wholesale; nothing flows back into the
// roster.
func (h *Handler) Exit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = nil
	h.svc.SetGameMode(false)
	writeJSON(w, http.StatusOK, h.state())
}

// GET /api/game/state
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	writeJSON(w, http.StatusOK, h.state())
}

// CommandRequest is the request body for POST /api/game/cmd. Args
// locate the target card by zone: "unit" wants unitId and slot,
// "drone", "tactical" and "sub" want rosterId, "drone_back" wants the
// owning drone's rosterId.
type CommandRequest struct {
	Cmd  string         `json:"cmd"`
	Args map[string]any `json:"args"`
}

// CommandResponse is the response for POST /api/game/cmd.
type CommandResponse struct {
	OK    bool   `json:"ok"`
	State *State `json:"state,omitempty"`
	Error string `json:"error,omitempty"`
}

// POST /api/game/cmd
func (h *Handler) Command(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req CommandRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session == nil {
		writeJSON(w, http.StatusConflict, CommandResponse{OK: false, Error: ErrNoSession.Error()})
		return
	}

	if err := h.executeCommand(req.Cmd, req.Args); err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, ErrCardNotFound) {
			code = http.StatusNotFound
		}
		writeJSON(w, code, CommandResponse{OK: false, Error: err.Error()})
		return
	}

	state := h.state()
	writeJSON(w, http.StatusOK, CommandResponse{OK: true, State: &state})
}

func (h *Handler) executeCommand(cmd string, args map[string]any) error {
	switch cmd {
	case "card.advance":
		return h.cmdAdvance(args)
	case "card.set_resource":
		card, err := h.locateCard(args)
		if err != nil {
			return err
		}
		track, err := getString(args, "track")
		if err != nil {
			return err
		}
		index, err := getInt(args, "index")
		if err != nil {
			return err
		}
		return SetResource(card, ResourceTrack(track), index)
	case "card.toggle_charge":
		card, err := h.locateCard(args)
		if err != nil {
			return err
		}
		return ToggleCharge(card)
	case "card.toggle_drop":
		card, err := h.locateCard(args)
		if err != nil {
			return err
		}
		return ToggleDrop(card)
	case "card.toggle_blackbox":
		card, err := h.locateCard(args)
		if err != nil {
			return err
		}
		return ToggleBlackbox(card)
	case "card.toggle_reveal":
		card, err := h.locateCard(args)
		if err != nil {
			return err
		}
		return ToggleReveal(card)
	case "card.cycle_change":
		card, err := h.locateCard(args)
		if err != nil {
			return err
		}
		return h.session.CycleChange(card)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

func (h *Handler) cmdAdvance(args map[string]any) error {
	zone, err := getString(args, "zone")
	if err != nil {
		return err
	}
	switch zone {
	case "unit":
		unitID, err := getInt(args, "unitId")
		if err != nil {
			return err
		}
		slot, err := getString(args, "slot")
		if err != nil {
			return err
		}
		if !h.session.AdvancePart(unitID, model.Category(slot)) {
			return ErrCardNotFound
		}
		return nil
	case "drone", "tactical", "sub":
		rosterID, err := getString(args, "rosterId")
		if err != nil {
			return err
		}
		if !h.session.AdvanceCard(rosterID) {
			return ErrCardNotFound
		}
		return nil
	case "drone_back":
		rosterID, err := getString(args, "rosterId")
		if err != nil {
			return err
		}
		if !h.session.AdvanceDroneBack(rosterID) {
			return ErrCardNotFound
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownZone, zone)
	}
}

func (h *Handler) locateCard(args map[string]any) (*model.Card, error) {
	zone, err := getString(args, "zone")
	if err != nil {
		return nil, err
	}
	switch zone {
	case "unit":
		unitID, err := getInt(args, "unitId")
		if err != nil {
			return nil, err
		}
		slot, err := getString(args, "slot")
		if err != nil {
			return nil, err
		}
		unit := h.session.Unit(unitID)
		if unit == nil {
			return nil, ErrCardNotFound
		}
		card := unit.Part(model.Category(slot))
		if card == nil {
			return nil, ErrCardNotFound
		}
		return card, nil
	case "drone", "tactical", "sub":
		rosterID, err := getString(args, "rosterId")
		if err != nil {
			return nil, err
		}
		card := h.session.FindCard(rosterID)
		if card == nil {
			return nil, ErrCardNotFound
		}
		return card, nil
	case "drone_back":
		rosterID, err := getString(args, "rosterId")
		if err != nil {
			return nil, err
		}
		for _, d := range h.session.Roster.Drones {
			if d.RosterID == rosterID && d.BackCard != nil {
				return d.BackCard, nil
			}
		}
		return nil, ErrCardNotFound
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownZone, zone)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func getString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing required field: %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %s must be a string", key)
	}
	return s, nil
}

// JSON numbers decode as float64.
func getInt(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing required field: %s", key)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("field %s must be a number", key)
	}
	return int(f), nil
}
