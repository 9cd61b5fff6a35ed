package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/model"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/rostercode"
)

// Handler serves the roster-building API.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// State is the full builder view returned by GET /api/roster/state and
// after every successful command.
type State struct {
	ActiveRosterName string          `json:"activeRosterName"`
	RosterNames      []string        `json:"rosterNames"`
	Roster           *model.Roster   `json:"roster"`
	TotalPoints      int             `json:"totalPoints"`
	GameMode         bool            `json:"gameMode"`
	ExportSettings   json.RawMessage `json:"imageExportSettings,omitempty"`
}

func (h *Handler) state() State {
	return State{
		ActiveRosterName: h.svc.ActiveName(),
		RosterNames:      h.svc.Names(),
		Roster:           h.svc.Active(),
		TotalPoints:      h.svc.TotalPoints(),
		GameMode:         h.svc.GameMode(),
		ExportSettings:   h.svc.ExportSettings(),
	}
}

// GET /api/roster/state
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, h.state())
}

// CommandRequest is the request body for POST /api/roster/cmd.
type CommandRequest struct {
	Cmd  string         `json:"cmd"`
	Args map[string]any `json:"args"`
}

// CommandResponse is the response for POST /api/roster/cmd.
type CommandResponse struct {
	OK     bool   `json:"ok"`
	State  *State `json:"state,omitempty"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// POST /api/roster/cmd
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

	result, err := h.executeCommand(r, req.Cmd, req.Args)
	if err != nil {
		writeJSON(w, errStatus(err), CommandResponse{OK: false, Error: err.Error()})
		return
	}

	state := h.state()
	writeJSON(w, http.StatusOK, CommandResponse{OK: true, State: &state, Result: result})
}

func (h *Handler) executeCommand(r *http.Request, cmd string, args map[string]any) (any, error) {
	ctx := r.Context()
	switch cmd {
	case "roster.create":
		name, err := getString(args, "name")
		if err != nil {
			return nil, err
		}
		return nil, h.svc.Create(ctx, name)
	case "roster.rename":
		name, err := getString(args, "name")
		if err != nil {
			return nil, err
		}
		return nil, h.svc.Rename(ctx, name)
	case "roster.delete":
		return nil, h.svc.Delete(ctx)
	case "roster.select":
		name, err := getString(args, "name")
		if err != nil {
			return nil, err
		}
		return nil, h.svc.SetActive(ctx, name)
	case "roster.set_faction":
		faction, err := getString(args, "faction")
		if err != nil {
			return nil, err
		}
		return nil, h.svc.SetFaction(ctx, faction)
	case "roster.export":
		code := rostercode.Encode(h.svc.Active())
		if getBoolOr(args, "compress", false) {
			compressed, err := rostercode.Compress(code)
			if err != nil {
				return nil, err
			}
			code = compressed
		}
		return map[string]any{"code": code}, nil
	case "roster.import":
		code, err := getString(args, "code")
		if err != nil {
			return nil, err
		}
		name, imported, err := rostercode.Decode(code, h.svc.Catalog())
		if err != nil {
			return nil, err
		}
		final := h.svc.Register(ctx, name, imported)
		return map[string]any{"name": final}, nil
	case "unit.add":
		return map[string]any{"unitId": h.svc.AddUnit(ctx)}, nil
	case "unit.remove":
		unitID, err := getInt(args, "unitId")
		if err != nil {
			return nil, err
		}
		return nil, h.svc.RemoveUnit(ctx, unitID)
	case "unit.set_part":
		unitID, err := getInt(args, "unitId")
		if err != nil {
			return nil, err
		}
		slot, err := getString(args, "slot")
		if err != nil {
			return nil, err
		}
		fileName := getStringOr(args, "fileName", "")
		return nil, h.svc.SetPart(ctx, unitID, model.Category(slot), fileName)
	case "drone.add":
		fileName, err := getString(args, "fileName")
		if err != nil {
			return nil, err
		}
		card, err := h.svc.AddDrone(ctx, fileName)
		if err != nil {
			return nil, err
		}
		return map[string]any{"rosterId": card.RosterID}, nil
	case "drone.remove":
		rosterID, err := getString(args, "rosterId")
		if err != nil {
			return nil, err
		}
		return nil, h.svc.RemoveDrone(ctx, rosterID)
	case "drone.set_back":
		rosterID, err := getString(args, "rosterId")
		if err != nil {
			return nil, err
		}
		fileName := getStringOr(args, "fileName", "")
		return nil, h.svc.SetDroneBack(ctx, rosterID, fileName)
	case "tactical.add":
		fileName, err := getString(args, "fileName")
		if err != nil {
			return nil, err
		}
		card, err := h.svc.AddTactical(ctx, fileName)
		if err != nil {
			return nil, err
		}
		return map[string]any{"rosterId": card.RosterID}, nil
	case "tactical.remove":
		rosterID, err := getString(args, "rosterId")
		if err != nil {
			return nil, err
		}
		return nil, h.svc.RemoveTactical(ctx, rosterID)
	case "export.set_settings":
		raw, err := json.Marshal(args["settings"])
		if err != nil {
			return nil, err
		}
		h.svc.SetExportSettings(ctx, raw)
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown command: %s", cmd)
	}
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, ErrRosterNotFound),
		errors.Is(err, ErrUnitNotFound),
		errors.Is(err, ErrCardNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateName),
		errors.Is(err, ErrLastRoster),
		errors.Is(err, ErrGameModeActive):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
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

func getStringOr(args map[string]any, key, def string) string {
	if s, ok := args[key].(string); ok {
		return s
	}
	return def
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

func getBoolOr(args map[string]any, key string, def bool) bool {
	if b, ok := args[key].(bool); ok {
		return b
	}
	return def
}
