package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/benbeisheim/variantchess-backend/internal/service"
	"github.com/benbeisheim/variantchess-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store, err := storage.Open("")
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	gameService := service.NewGameService(service.NewGameManager(store, "standard"), store)
	app := fiber.New()
	SetupRoutes(app, NewGameController(gameService), NewWebSocketController(gameService), []string{"http://localhost:5173"})
	return app
}

// call sends a request as playerID and decodes the JSON reply into out.
func call(t *testing.T, app *fiber.App, method, target, playerID string, body interface{}, out interface{}) int {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if playerID != "" {
		req.Header.Set("X-Player-ID", playerID)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, target, err)
		}
	}
	return resp.StatusCode
}

func createMatch(t *testing.T, app *fiber.App, layout string) string {
	t.Helper()
	var created struct {
		GameID string `json:"game_id"`
	}
	if status := call(t, app, http.MethodPost, "/api/game/create", "alice", fiber.Map{"layout": layout}, &created); status != fiber.StatusCreated {
		t.Fatalf("create status = %d", status)
	}
	for _, player := range []string{"alice", "bob"} {
		if status := call(t, app, http.MethodPost, "/api/game/join/"+created.GameID, player, nil, nil); status != fiber.StatusOK {
			t.Fatalf("join(%s) status = %d", player, status)
		}
	}
	return created.GameID
}

func TestRequiresPlayerID(t *testing.T) {
	app := newTestApp(t)
	if status := call(t, app, http.MethodPost, "/api/game/create", "", nil, nil); status != fiber.StatusUnauthorized {
		t.Errorf("status = %d; want 401", status)
	}
}

func TestCreateAndJoin(t *testing.T) {
	app := newTestApp(t)

	var created struct {
		GameID string `json:"game_id"`
	}
	if status := call(t, app, http.MethodPost, "/api/game/create", "alice", nil, &created); status != fiber.StatusCreated {
		t.Fatalf("create status = %d", status)
	}
	if created.GameID == "" {
		t.Fatal("no game id returned")
	}

	var joined struct {
		Color model.Color `json:"color"`
	}
	call(t, app, http.MethodPost, "/api/game/join/"+created.GameID, "alice", nil, &joined)
	if joined.Color != model.White {
		t.Errorf("alice got %v", joined.Color)
	}
	call(t, app, http.MethodPost, "/api/game/join/"+created.GameID, "bob", nil, &joined)
	if joined.Color != model.Black {
		t.Errorf("bob got %v", joined.Color)
	}
	if status := call(t, app, http.MethodPost, "/api/game/join/"+created.GameID, "carol", nil, nil); status != fiber.StatusConflict {
		t.Errorf("third join status = %d; want 409", status)
	}

	var state service.SessionState
	if status := call(t, app, http.MethodGet, "/api/game/"+created.GameID, "carol", nil, &state); status != fiber.StatusOK {
		t.Fatalf("state status = %d", status)
	}
	if !state.Game.InPlay || state.Game.ToMove != model.White {
		t.Errorf("game = %+v", state.Game)
	}
}

func TestCreateRejectsUnknownLayout(t *testing.T) {
	app := newTestApp(t)
	if status := call(t, app, http.MethodPost, "/api/game/create", "alice", fiber.Map{"layout": "chaos"}, nil); status != fiber.StatusBadRequest {
		t.Errorf("status = %d; want 400", status)
	}
}

func TestUnknownGame(t *testing.T) {
	app := newTestApp(t)
	if status := call(t, app, http.MethodGet, "/api/game/missing", "alice", nil, nil); status != fiber.StatusNotFound {
		t.Errorf("status = %d; want 404", status)
	}
}

func TestLegalMoves(t *testing.T) {
	app := newTestApp(t)
	gameID := createMatch(t, app, "standard")

	var reply struct {
		From  model.Spot   `json:"from"`
		Moves []model.Spot `json:"moves"`
	}
	if status := call(t, app, http.MethodGet, "/api/game/"+gameID+"/moves?row=0&col=1", "alice", nil, &reply); status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	want := []model.Spot{model.NewSpot(2, 2), model.NewSpot(2, 0)}
	byCol := cmpopts.SortSlices(func(a, b model.Spot) bool { return a.Col < b.Col })
	if diff := cmp.Diff(want, reply.Moves, byCol); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}

	if status := call(t, app, http.MethodGet, "/api/game/"+gameID+"/moves?row=9&col=1", "alice", nil, nil); status != fiber.StatusBadRequest {
		t.Errorf("off board status = %d; want 400", status)
	}
}

func TestMoveUndoResign(t *testing.T) {
	app := newTestApp(t)
	gameID := createMatch(t, app, "standard")
	e4 := moveRequest{From: model.NewSpot(1, 4), To: model.NewSpot(3, 4)}

	if status := call(t, app, http.MethodPost, "/api/game/"+gameID+"/move", "bob", e4, nil); status != fiber.StatusConflict {
		t.Errorf("out of turn status = %d; want 409", status)
	}
	if status := call(t, app, http.MethodPost, "/api/game/"+gameID+"/move", "carol", e4, nil); status != fiber.StatusForbidden {
		t.Errorf("spectator status = %d; want 403", status)
	}
	bad := moveRequest{From: model.NewSpot(1, 4), To: model.NewSpot(5, 4)}
	if status := call(t, app, http.MethodPost, "/api/game/"+gameID+"/move", "alice", bad, nil); status != fiber.StatusUnprocessableEntity {
		t.Errorf("illegal move status = %d; want 422", status)
	}

	var state service.SessionState
	if status := call(t, app, http.MethodPost, "/api/game/"+gameID+"/move", "alice", e4, &state); status != fiber.StatusOK {
		t.Fatalf("move status = %d", status)
	}
	if state.Game.ToMove != model.Black || len(state.Game.MoveHistory) != 1 {
		t.Errorf("after move: %+v", state.Game)
	}

	if status := call(t, app, http.MethodPost, "/api/game/"+gameID+"/undo", "alice", nil, &state); status != fiber.StatusOK {
		t.Fatalf("undo status = %d", status)
	}
	if state.Game.ToMove != model.White || len(state.Game.MoveHistory) != 0 {
		t.Errorf("after undo: %+v", state.Game)
	}

	if status := call(t, app, http.MethodPost, "/api/game/"+gameID+"/resign", "alice", nil, &state); status != fiber.StatusOK {
		t.Fatalf("resign status = %d", status)
	}
	if state.Game.InPlay || state.Game.Outcome == nil || state.Game.Outcome.Winner != model.Black {
		t.Errorf("after resign: %+v", state.Game)
	}

	var stats storage.Stats
	if status := call(t, app, http.MethodGet, "/api/stats", "alice", nil, &stats); status != fiber.StatusOK {
		t.Fatalf("stats status = %d", status)
	}
	if stats.GamesPlayed != 1 || stats.BlackWins != 1 || stats.ByMethod[model.MethodForfeit] != 1 {
		t.Errorf("stats = %+v", stats)
	}

	if status := call(t, app, http.MethodPost, "/api/game/"+gameID+"/restart", "bob", nil, &state); status != fiber.StatusOK {
		t.Fatalf("restart status = %d", status)
	}
	if !state.Game.InPlay {
		t.Error("restart did not start a new game")
	}
}
