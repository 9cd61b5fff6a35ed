package game

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/model"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/roster"
)

func newTestGameHandler(t *testing.T) *Handler {
	t.Helper()
	cat := newTestCatalog()
	svc := roster.NewService(cat, roster.NewMemoryStore(), nil)
	require.NoError(t, svc.Load(context.Background()))
	ctx := context.Background()

	id := svc.AddUnit(ctx)
	for _, fn := range []string{"pilot.png", "torso.png", "chassis.png", "left.png", "right.png", "back.png"} {
		card := cat.Instance(fn)
		require.NoError(t, svc.SetPart(ctx, id, card.Category, fn))
	}
	_, err := svc.AddDrone(ctx, "drone.png")
	require.NoError(t, err)
	_, err = svc.AddTactical(ctx, "tactical_hidden.png")
	require.NoError(t, err)
	return NewHandler(svc)
}

func enter(t *testing.T, h *Handler) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Enter(rec, httptest.NewRequest(http.MethodPost, "/api/game/enter", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func postGameCmd(t *testing.T, h *Handler, cmd string, args map[string]any) (*httptest.ResponseRecorder, CommandResponse) {
	t.Helper()
	body, err := json.Marshal(CommandRequest{Cmd: cmd, Args: args})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/game/cmd", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Command(rec, req)
	var resp CommandResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestEnterExitLifecycle(t *testing.T) {
	h := newTestGameHandler(t)
	enter(t, h)
	assert.True(t, h.svc.GameMode())

	// Double entry is rejected.
	rec := httptest.NewRecorder()
	h.Enter(rec, httptest.NewRequest(http.MethodPost, "/api/game/enter", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	h.Exit(rec, httptest.NewRequest(http.MethodPost, "/api/game/exit", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, h.svc.GameMode())
}

func TestGameStateBeforeEnter(t *testing.T) {
	h := newTestGameHandler(t)
	rec := httptest.NewRecorder()
	h.GetState(rec, httptest.NewRequest(http.MethodGet, "/api/game/state", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var state State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.False(t, state.Active)
	assert.Nil(t, state.Roster)
}

func TestCommandWithoutSession(t *testing.T) {
	h := newTestGameHandler(t)
	rec, resp := postGameCmd(t, h, "card.advance", map[string]any{"zone": "drone", "rosterId": "d_0"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, resp.OK)
}

func TestAdvanceOverHTTP(t *testing.T) {
	h := newTestGameHandler(t)
	enter(t, h)

	rec, resp := postGameCmd(t, h, "card.advance", map[string]any{
		"zone": "unit", "unitId": float64(0), "slot": "Torso",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.OK)
	assert.Equal(t, model.StatusWarning, resp.State.Roster.Units[0].Part(model.CategoryTorso).Status)

	// The underlying roster never sees game-mode status.
	assert.Equal(t, model.StatusFresh, h.svc.Active().Units[0].Part(model.CategoryTorso).Status)
}

func TestAdvanceDroneOverHTTP(t *testing.T) {
	h := newTestGameHandler(t)
	enter(t, h)

	rec, resp := postGameCmd(t, h, "card.advance", map[string]any{"zone": "drone", "rosterId": "d_0"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.OK)

	rec, _ = postGameCmd(t, h, "card.advance", map[string]any{"zone": "drone", "rosterId": "d_99"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResourceAndTogglesOverHTTP(t *testing.T) {
	h := newTestGameHandler(t)
	enter(t, h)

	rec, resp := postGameCmd(t, h, "card.set_resource", map[string]any{
		"zone": "unit", "unitId": float64(0), "slot": "Left",
		"track": "ammunition", "index": float64(2),
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, resp.State.Roster.Units[0].Part(model.CategoryLeft).CurrentAmmunition)

	rec, resp = postGameCmd(t, h, "card.toggle_reveal", map[string]any{"zone": "tactical", "rosterId": "t_0"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.State.Roster.Tactical[0].IsRevealed)

	// Toggling charge on a card without one is a client error.
	rec, _ = postGameCmd(t, h, "card.toggle_charge", map[string]any{"zone": "drone", "rosterId": "d_0"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownZoneAndCommand(t *testing.T) {
	h := newTestGameHandler(t)
	enter(t, h)

	rec, _ := postGameCmd(t, h, "card.advance", map[string]any{"zone": "moon"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = postGameCmd(t, h, "card.levitate", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExitDiscardsSession(t *testing.T) {
	h := newTestGameHandler(t)
	enter(t, h)

	_, resp := postGameCmd(t, h, "card.advance", map[string]any{
		"zone": "unit", "unitId": float64(0), "slot": "Left",
	})
	require.True(t, resp.OK)

	rec := httptest.NewRecorder()
	h.Exit(rec, httptest.NewRequest(http.MethodPost, "/api/game/exit", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	enter(t, h)
	h.mu.Lock()
	status := h.session.Unit(0).Part(model.CategoryLeft).Status
	h.mu.Unlock()
	assert.Equal(t, model.StatusFresh, status)
}
