package roster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	svc := NewService(newTestCatalog(), NewMemoryStore(), nil)
	require.NoError(t, svc.Load(context.Background()))
	return NewHandler(svc)
}

func postCmd(t *testing.T, h *Handler, cmd string, args map[string]any) (*httptest.ResponseRecorder, CommandResponse) {
	t.Helper()
	body, err := json.Marshal(CommandRequest{Cmd: cmd, Args: args})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/roster/cmd", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Command(rec, req)
	var resp CommandResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestGetStateEndpoint(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/roster/state", nil)
	rec := httptest.NewRecorder()
	h.GetState(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var state State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, DefaultRosterName, state.ActiveRosterName)
	assert.False(t, state.GameMode)
	assert.Zero(t, state.TotalPoints)
}

func TestGetStateMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.GetState(rec, httptest.NewRequest(http.MethodPost, "/api/roster/state", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCommandBuildsRoster(t *testing.T) {
	h := newTestHandler(t)

	rec, resp := postCmd(t, h, "unit.add", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.OK)
	result := resp.Result.(map[string]any)
	unitID := result["unitId"].(float64)

	rec, resp = postCmd(t, h, "unit.set_part", map[string]any{
		"unitId": unitID, "slot": "Torso", "fileName": "Part_Torso_RDL_Raven.png",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.OK)
	assert.Equal(t, 10, resp.State.TotalPoints)

	rec, resp = postCmd(t, h, "drone.add", map[string]any{"fileName": "Drone_RDL_Scout.png"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 13, resp.State.TotalPoints)
}

func TestCommandErrorsMapToStatusCodes(t *testing.T) {
	h := newTestHandler(t)

	rec, _ := postCmd(t, h, "roster.create", map[string]any{"name": DefaultRosterName})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = postCmd(t, h, "roster.select", map[string]any{"name": "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = postCmd(t, h, "roster.delete", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = postCmd(t, h, "unit.remove", map[string]any{"unitId": float64(9)})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, resp := postCmd(t, h, "time.travel", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.OK)
	assert.NotEmpty(t, resp.Error)
}

func TestCommandMissingArgs(t *testing.T) {
	h := newTestHandler(t)
	rec, resp := postCmd(t, h, "roster.create", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp.Error, "name")
}

func TestCommandInvalidJSON(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/roster/cmd", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	h.Command(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportImportOverHTTP(t *testing.T) {
	h := newTestHandler(t)

	_, resp := postCmd(t, h, "unit.add", nil)
	require.True(t, resp.OK)
	_, resp = postCmd(t, h, "unit.set_part", map[string]any{
		"unitId": float64(0), "slot": "Torso", "fileName": "Part_Torso_RDL_Raven.png",
	})
	require.True(t, resp.OK)

	rec, resp := postCmd(t, h, "roster.export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	code := resp.Result.(map[string]any)["code"].(string)
	require.NotEmpty(t, code)

	rec, resp = postCmd(t, h, "roster.import", map[string]any{"code": code})
	require.Equal(t, http.StatusOK, rec.Code)
	imported := resp.Result.(map[string]any)["name"].(string)
	// The imported copy collides with the source name and gets a suffix.
	assert.Equal(t, fmt.Sprintf("%s (1)", DefaultRosterName), imported)
	assert.Equal(t, imported, resp.State.ActiveRosterName)
	assert.Equal(t, 10, resp.State.TotalPoints)
}

func TestImportBadCode(t *testing.T) {
	h := newTestHandler(t)
	rec, resp := postCmd(t, h, "roster.import", map[string]any{"code": "~~~~~~"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.OK)
	// A failed import leaves the collection untouched.
	assert.Equal(t, []string{DefaultRosterName}, h.svc.Names())
}

func TestCompressedExport(t *testing.T) {
	h := newTestHandler(t)
	rec, resp := postCmd(t, h, "roster.export", map[string]any{"compress": true})
	require.Equal(t, http.StatusOK, rec.Code)
	code := resp.Result.(map[string]any)["code"].(string)
	assert.Contains(t, code, "z;")

	rec, _ = postCmd(t, h, "roster.import", map[string]any{"code": code})
	assert.Equal(t, http.StatusOK, rec.Code)
}
