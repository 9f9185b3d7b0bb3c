package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"grid-tactics/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	mgr, err := NewSessionManager(models.DefaultGameConfig())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return NewRouter(mgr)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var payload map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
			t.Fatalf("response is not JSON: %v\n%s", err, w.Body.String())
		}
	}
	return w, payload
}

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, payload map[string]interface{}, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Errorf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
	if payload["code"] != code {
		t.Errorf("error code = %v, want %q", payload["code"], code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)
	w, payload := doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if payload["status"] != "ok" {
		t.Errorf("status field = %v, want ok", payload["status"])
	}
}

func TestStartBattleLifecycle(t *testing.T) {
	router := newTestRouter(t)

	w, payload := doJSON(t, router, http.MethodPost, "/api/start-battle", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("start-battle status = %d: %s", w.Code, w.Body.String())
	}
	state, ok := payload["game_state"].(map[string]interface{})
	if !ok {
		t.Fatalf("no game_state in response: %s", w.Body.String())
	}
	units, ok := state["units"].([]interface{})
	if !ok || len(units) != 8 {
		t.Errorf("units in game_state = %v, want 8 entries", state["units"])
	}
	if state["current_turn"] != "player" {
		t.Errorf("current_turn = %v, want player", state["current_turn"])
	}

	w, payload = doJSON(t, router, http.MethodPost, "/api/start-battle", nil)
	assertErrorCode(t, w, payload, http.StatusConflict, "already_started")
}

func TestGameStateBeforeStart(t *testing.T) {
	router := newTestRouter(t)
	w, payload := doJSON(t, router, http.MethodGet, "/api/game-state", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if started, _ := payload["started"].(bool); started {
		t.Error("fresh session reports started = true")
	}
}

func TestOperationsBeforeStartReturnConflict(t *testing.T) {
	router := newTestRouter(t)
	for _, tc := range []struct {
		path string
		body interface{}
	}{
		{"/api/move-unit", map[string]int{"unit_id": 1, "x": 0, "y": 0}},
		{"/api/attack", map[string]int{"attacker_id": 1, "target_id": 2}},
		{"/api/end-turn", nil},
		{"/api/get-movement-range", map[string]int{"unit_id": 1}},
	} {
		w, payload := doJSON(t, router, http.MethodPost, tc.path, tc.body)
		assertErrorCode(t, w, payload, http.StatusConflict, "not_started")
	}
}

func TestMovementRangeAndMove(t *testing.T) {
	router := newTestRouter(t)
	doJSON(t, router, http.MethodPost, "/api/start-battle", nil)

	w, payload := doJSON(t, router, http.MethodPost, "/api/get-movement-range", map[string]int{"unit_id": 1})
	if w.Code != http.StatusOK {
		t.Fatalf("get-movement-range status = %d: %s", w.Code, w.Body.String())
	}
	tiles, ok := payload["reachable_tiles"].([]interface{})
	if !ok || len(tiles) == 0 {
		t.Fatalf("reachable_tiles = %v, want non-empty list", payload["reachable_tiles"])
	}
	first, ok := tiles[0].(map[string]interface{})
	if !ok {
		t.Fatalf("tile entry = %v, want object", tiles[0])
	}
	x := int(first["x"].(float64))
	y := int(first["y"].(float64))

	w, _ = doJSON(t, router, http.MethodPost, "/api/move-unit", map[string]int{"unit_id": 1, "x": x, "y": y})
	if w.Code != http.StatusOK {
		t.Fatalf("move-unit status = %d: %s", w.Code, w.Body.String())
	}

	w, payload = doJSON(t, router, http.MethodPost, "/api/move-unit", map[string]int{"unit_id": 1, "x": -1, "y": 0})
	assertErrorCode(t, w, payload, http.StatusBadRequest, "out_of_bounds")

	w, payload = doJSON(t, router, http.MethodPost, "/api/move-unit", map[string]int{"unit_id": 2, "x": 16, "y": 5})
	assertErrorCode(t, w, payload, http.StatusBadRequest, "not_your_turn")

	w, payload = doJSON(t, router, http.MethodPost, "/api/get-movement-range", map[string]int{"unit_id": 99})
	assertErrorCode(t, w, payload, http.StatusNotFound, "invalid_unit")
}

func TestAttackErrorMapping(t *testing.T) {
	router := newTestRouter(t)
	doJSON(t, router, http.MethodPost, "/api/start-battle", nil)

	// Units 1 and 3 are both player units.
	w, payload := doJSON(t, router, http.MethodPost, "/api/attack", map[string]int{"attacker_id": 1, "target_id": 3})
	assertErrorCode(t, w, payload, http.StatusBadRequest, "friendly_fire")

	// Units 1 and 2 start 13 tiles apart, far past the warrior band.
	w, payload = doJSON(t, router, http.MethodPost, "/api/attack", map[string]int{"attacker_id": 1, "target_id": 2})
	assertErrorCode(t, w, payload, http.StatusBadRequest, "out_of_range")

	w, payload = doJSON(t, router, http.MethodPost, "/api/attack", map[string]int{"attacker_id": 2, "target_id": 1})
	assertErrorCode(t, w, payload, http.StatusBadRequest, "not_your_turn")

	w, payload = doJSON(t, router, http.MethodPost, "/api/attack", map[string]int{"attacker_id": 99, "target_id": 1})
	assertErrorCode(t, w, payload, http.StatusNotFound, "invalid_unit")
}

func TestEndTurnAndReset(t *testing.T) {
	router := newTestRouter(t)
	doJSON(t, router, http.MethodPost, "/api/start-battle", nil)

	w, payload := doJSON(t, router, http.MethodPost, "/api/end-turn", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("end-turn status = %d: %s", w.Code, w.Body.String())
	}
	if payload["current_turn"] != "enemy" {
		t.Errorf("current_turn = %v, want enemy", payload["current_turn"])
	}

	w, _ = doJSON(t, router, http.MethodPost, "/api/reset-game", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("reset-game status = %d", w.Code)
	}
	_, payload = doJSON(t, router, http.MethodGet, "/api/game-state", nil)
	if started, _ := payload["started"].(bool); started {
		t.Error("session still started after reset")
	}
}

func TestUnknownSessionRejected(t *testing.T) {
	router := newTestRouter(t)
	w, payload := doJSON(t, router, http.MethodPost, "/api/start-battle", map[string]string{"session_id": "no-such-id"})
	assertErrorCode(t, w, payload, http.StatusNotFound, "unknown_session")

	w, payload = doJSON(t, router, http.MethodGet, "/api/game-state?session_id=no-such-id", nil)
	assertErrorCode(t, w, payload, http.StatusNotFound, "unknown_session")
}

func TestCreateSessionIsolatesState(t *testing.T) {
	router := newTestRouter(t)

	w, payload := doJSON(t, router, http.MethodPost, "/api/sessions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("sessions status = %d: %s", w.Code, w.Body.String())
	}
	id, ok := payload["session_id"].(string)
	if !ok || id == "" {
		t.Fatalf("session_id = %v, want non-empty string", payload["session_id"])
	}

	w, _ = doJSON(t, router, http.MethodPost, "/api/start-battle", map[string]string{"session_id": id})
	if w.Code != http.StatusOK {
		t.Fatalf("start-battle on new session status = %d: %s", w.Code, w.Body.String())
	}

	// The default session is untouched.
	_, payload = doJSON(t, router, http.MethodGet, "/api/game-state", nil)
	if started, _ := payload["started"].(bool); started {
		t.Error("default session started by another session's battle")
	}
}
