package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/parlorgames/clueless/internal/clueless"
	"github.com/parlorgames/clueless/internal/database"
	"github.com/parlorgames/clueless/internal/migrations"
)

const testAdminPassword = "letmein"

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := migrations.Run(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	r := chi.NewRouter()
	addRoutes(r, logger,
		NewRegistry(),
		NewBroker(),
		NewSQLiteArchive(db),
		NewAdminAuth("admin@example.com", string(hash)),
		db,
	)
	return r
}

func doJSON(t *testing.T, r *chi.Mux, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createGame(t *testing.T, r *chi.Mux) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/games", "", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create game: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp CreateGameResponse
	json.NewDecoder(w.Body).Decode(&resp)
	return resp.GameID
}

func joinGame(t *testing.T, r *chi.Mux, gameID, playerID string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/games/"+gameID+"/join", "", JoinRequest{PlayerID: playerID})
	if w.Code != http.StatusOK {
		t.Fatalf("join %s: expected 200, got %d: %s", playerID, w.Code, w.Body.String())
	}
	var resp JoinResponse
	json.NewDecoder(w.Body).Decode(&resp)
	return resp.Token
}

func chooseSuspect(t *testing.T, r *chi.Mux, gameID, token, suspect string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/games/"+gameID+"/suspect", token, SuspectRequest{Suspect: suspect})
	if w.Code != http.StatusNoContent {
		t.Fatalf("choose %s: expected 204, got %d: %s", suspect, w.Code, w.Body.String())
	}
}

func gameState(t *testing.T, r *chi.Mux, gameID, token string) StateSnapshot {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, "/api/games/"+gameID+"/state", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get state: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var snap StateSnapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return snap
}

// startedLobby brings three players through join, suspect choice, and start.
// The returned tokens are keyed scarlet, mustard, plum.
func startedLobby(t *testing.T, r *chi.Mux) (gameID string, tokens map[string]string) {
	t.Helper()
	gameID = createGame(t, r)
	tokens = map[string]string{
		"scarlet": joinGame(t, r, gameID, "alice"),
		"mustard": joinGame(t, r, gameID, "bob"),
		"plum":    joinGame(t, r, gameID, "carol"),
	}
	chooseSuspect(t, r, gameID, tokens["scarlet"], "Miss Scarlet")
	chooseSuspect(t, r, gameID, tokens["mustard"], "Colonel Mustard")
	chooseSuspect(t, r, gameID, tokens["plum"], "Professor Plum")

	w := doJSON(t, r, http.MethodPost, "/api/games/"+gameID+"/start", tokens["scarlet"], nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("start: expected 204, got %d: %s", w.Code, w.Body.String())
	}
	return gameID, tokens
}

func TestUnknownGame(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/games/nope/join", "", JoinRequest{PlayerID: "alice"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestJoinRequiresPlayerID(t *testing.T) {
	r := newTestRouter(t)
	gameID := createGame(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/games/"+gameID+"/join", "", JoinRequest{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCommandsRequireSession(t *testing.T) {
	r := newTestRouter(t)
	gameID := createGame(t, r)
	joinGame(t, r, gameID, "alice")

	w := doJSON(t, r, http.MethodGet, "/api/games/"+gameID+"/state", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/games/"+gameID+"/state", "bogus", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", w.Code)
	}
}

func TestListGames(t *testing.T) {
	r := newTestRouter(t)
	gameID := createGame(t, r)
	joinGame(t, r, gameID, "alice")

	w := doJSON(t, r, http.MethodGet, "/api/games", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var summaries []GameSummary
	json.NewDecoder(w.Body).Decode(&summaries)
	if len(summaries) != 1 {
		t.Fatalf("expected 1 game, got %d", len(summaries))
	}
	if summaries[0].GameID != gameID {
		t.Errorf("gameId = %q, want %q", summaries[0].GameID, gameID)
	}
	if summaries[0].Players != 1 {
		t.Errorf("players = %d, want 1", summaries[0].Players)
	}
	if summaries[0].Status != clueless.StatusInitial {
		t.Errorf("status = %q, want %q", summaries[0].Status, clueless.StatusInitial)
	}
}

func TestDuplicateSuspectChoice(t *testing.T) {
	r := newTestRouter(t)
	gameID := createGame(t, r)
	t1 := joinGame(t, r, gameID, "alice")
	t2 := joinGame(t, r, gameID, "bob")
	chooseSuspect(t, r, gameID, t1, "Miss Scarlet")

	w := doJSON(t, r, http.MethodPost, "/api/games/"+gameID+"/suspect", t2, SuspectRequest{Suspect: "Miss Scarlet"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestStartRejectsLonelyLobby(t *testing.T) {
	r := newTestRouter(t)
	gameID := createGame(t, r)
	token := joinGame(t, r, gameID, "alice")
	chooseSuspect(t, r, gameID, token, "Miss Scarlet")

	w := doJSON(t, r, http.MethodPost, "/api/games/"+gameID+"/start", token, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestStartedGameState(t *testing.T) {
	r := newTestRouter(t)
	gameID, tokens := startedLobby(t, r)

	snap := gameState(t, r, gameID, tokens["scarlet"])

	if snap.Game.Status != clueless.StatusStarted {
		t.Fatalf("status = %q, want %q", snap.Game.Status, clueless.StatusStarted)
	}
	// Miss Scarlet is canonically first among the chosen suspects.
	if snap.Game.ActivePlayerID != "alice" {
		t.Errorf("active player = %q, want alice", snap.Game.ActivePlayerID)
	}
	// 18 cards minus 3 in the case file, dealt over 3 players.
	if len(snap.Hand) != 5 {
		t.Errorf("hand size = %d, want 5", len(snap.Hand))
	}
	if len(snap.MoveOptions) != 1 {
		t.Fatalf("move options = %v, want the single opening passageway", snap.MoveOptions)
	}
	if snap.MoveOptions[0] != "Hall-Lounge" {
		t.Errorf("opening passageway = %q, want Hall-Lounge", snap.MoveOptions[0])
	}
}

func TestHandsAreScopedPerPlayer(t *testing.T) {
	r := newTestRouter(t)
	gameID, tokens := startedLobby(t, r)

	scarlet := gameState(t, r, gameID, tokens["scarlet"])
	mustard := gameState(t, r, gameID, tokens["mustard"])

	seen := make(map[string]bool)
	for _, card := range scarlet.Hand {
		seen[card] = true
	}
	for _, card := range mustard.Hand {
		if seen[card] {
			t.Fatalf("card %q dealt to two players", card)
		}
	}
}

func TestMoveAndTurnRotation(t *testing.T) {
	r := newTestRouter(t)
	gameID, tokens := startedLobby(t, r)

	// Off-turn moves are rejected.
	w := doJSON(t, r, http.MethodPost, "/api/games/"+gameID+"/move", tokens["mustard"],
		MoveRequest{Destination: "Dining Room-Lounge"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("off-turn move: expected 403, got %d: %s", w.Code, w.Body.String())
	}

	// Scarlet takes her opening square.
	w = doJSON(t, r, http.MethodPost, "/api/games/"+gameID+"/move", tokens["scarlet"],
		MoveRequest{Destination: "Hall-Lounge"})
	if w.Code != http.StatusNoContent {
		t.Fatalf("opening move: expected 204, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/games/"+gameID+"/pass", tokens["scarlet"], nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("pass: expected 204, got %d: %s", w.Code, w.Body.String())
	}

	snap := gameState(t, r, gameID, tokens["mustard"])
	if snap.Game.ActivePlayerID != "bob" {
		t.Errorf("active player after pass = %q, want bob", snap.Game.ActivePlayerID)
	}
}

func TestIllegalMoveStatus(t *testing.T) {
	r := newTestRouter(t)
	gameID, tokens := startedLobby(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/games/"+gameID+"/move", tokens["scarlet"],
		MoveRequest{Destination: "Kitchen"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSuggestionOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	gameID, tokens := startedLobby(t, r)

	// Walk Scarlet through her opening passageway into the Lounge.
	for _, dest := range []string{"Hall-Lounge", "Lounge"} {
		w := doJSON(t, r, http.MethodPost, "/api/games/"+gameID+"/move", tokens["scarlet"],
			MoveRequest{Destination: dest})
		if w.Code != http.StatusNoContent {
			t.Fatalf("move to %s: expected 204, got %d: %s", dest, w.Code, w.Body.String())
		}
	}

	snap := gameState(t, r, gameID, tokens["scarlet"])
	if snap.SuggestionOptions == nil {
		t.Fatalf("expected suggestion options after entering a room")
	}

	w := doJSON(t, r, http.MethodPost, "/api/games/"+gameID+"/suggest", tokens["scarlet"],
		SuggestionRequest{Suspect: "Colonel Mustard", Weapon: "Rope"})
	if w.Code != http.StatusNoContent {
		t.Fatalf("suggest: expected 204, got %d: %s", w.Code, w.Body.String())
	}

	// Mustard's suspect was named, so he is pulled into the Lounge.
	snap = gameState(t, r, gameID, tokens["mustard"])
	found := false
	for _, s := range snap.Board["Lounge"] {
		if s == "Colonel Mustard" {
			found = true
		}
	}
	if !found {
		t.Errorf("Colonel Mustard not relocated to the Lounge: %v", snap.Board["Lounge"])
	}
}

func TestLeaveLeavesStandIn(t *testing.T) {
	r := newTestRouter(t)
	gameID, tokens := startedLobby(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/games/"+gameID+"/leave", tokens["plum"], nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("leave: expected 204, got %d: %s", w.Code, w.Body.String())
	}

	// The departed player's token is dead.
	w = doJSON(t, r, http.MethodGet, "/api/games/"+gameID+"/state", tokens["plum"], nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after leave, got %d", w.Code)
	}

	snap := gameState(t, r, gameID, tokens["scarlet"])
	var standIn *clueless.PlayerStateView
	for i, p := range snap.Players {
		if p.Suspect == "Professor Plum" {
			standIn = &snap.Players[i]
		}
	}
	if standIn == nil {
		t.Fatalf("Professor Plum gone from the roster entirely")
	}
	if !standIn.StandIn {
		t.Errorf("expected Professor Plum to remain as a stand-in")
	}
}
