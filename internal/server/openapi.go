package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Clue-Less API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the Clue-Less deduction game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/games
	createGame, _ := r.NewOperationContext(http.MethodPost, "/api/games")
	createGame.SetSummary("Create game")
	createGame.SetDescription("Creates a new game lobby and returns its identifier.")
	createGame.AddRespStructure(CreateGameResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	_ = r.AddOperation(createGame)

	// GET /api/games
	listGames, _ := r.NewOperationContext(http.MethodGet, "/api/games")
	listGames.SetSummary("List games")
	listGames.SetDescription("Returns all live games with status and player counts.")
	listGames.AddRespStructure([]GameSummary{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listGames)

	// POST /api/games/{game}/join
	join, _ := r.NewOperationContext(http.MethodPost, "/api/games/{game}/join")
	join.SetSummary("Join game")
	join.SetDescription("Registers a player in the lobby. Returns a session token.")
	join.AddReqStructure(JoinRequest{})
	join.AddRespStructure(JoinResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	join.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	join.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(join)

	// POST /api/games/{game}/leave
	leave, _ := r.NewOperationContext(http.MethodPost, "/api/games/{game}/leave")
	leave.SetSummary("Leave game")
	leave.SetDescription("Removes the player. Their suspect stays on the board as a stand-in. Requires Bearer token.")
	leave.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	leave.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	leave.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(leave)

	// POST /api/games/{game}/suspect
	chooseSuspect, _ := r.NewOperationContext(http.MethodPost, "/api/games/{game}/suspect")
	chooseSuspect.SetSummary("Choose suspect")
	chooseSuspect.SetDescription("Claims a free suspect for the player. Requires Bearer token.")
	chooseSuspect.AddReqStructure(SuspectRequest{})
	chooseSuspect.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	chooseSuspect.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	chooseSuspect.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(chooseSuspect)

	// POST /api/games/{game}/start
	start, _ := r.NewOperationContext(http.MethodPost, "/api/games/{game}/start")
	start.SetSummary("Start game")
	start.SetDescription("Builds the case file, deals hands, places suspects and opens the first turn. Requires Bearer token.")
	start.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	start.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	start.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	_ = r.AddOperation(start)

	// POST /api/games/{game}/move
	move, _ := r.NewOperationContext(http.MethodPost, "/api/games/{game}/move")
	move.SetSummary("Move")
	move.SetDescription("Moves the player's suspect to an adjacent location. Requires Bearer token.")
	move.AddReqStructure(MoveRequest{})
	move.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	move.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	move.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	_ = r.AddOperation(move)

	// POST /api/games/{game}/pass
	pass, _ := r.NewOperationContext(http.MethodPost, "/api/games/{game}/pass")
	pass.SetSummary("Pass turn")
	pass.SetDescription("Ends the player's turn without suggesting. Requires Bearer token.")
	pass.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	pass.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	_ = r.AddOperation(pass)

	// POST /api/games/{game}/suggest
	suggest, _ := r.NewOperationContext(http.MethodPost, "/api/games/{game}/suggest")
	suggest.SetSummary("Propose suggestion")
	suggest.SetDescription("Suggests a suspect and weapon in the player's current room. Requires Bearer token.")
	suggest.AddReqStructure(SuggestionRequest{})
	suggest.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	suggest.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	suggest.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	_ = r.AddOperation(suggest)

	// POST /api/games/{game}/disprove
	disprove, _ := r.NewOperationContext(http.MethodPost, "/api/games/{game}/disprove")
	disprove.SetSummary("Disprove suggestion")
	disprove.SetDescription("Defender reveals a named card or declares they cannot disprove. Requires Bearer token.")
	disprove.AddReqStructure(DisproofRequest{})
	disprove.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	disprove.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	disprove.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	_ = r.AddOperation(disprove)

	// POST /api/games/{game}/accuse
	accuse, _ := r.NewOperationContext(http.MethodPost, "/api/games/{game}/accuse")
	accuse.SetSummary("Propose accusation")
	accuse.SetDescription("Accuses a full suspect, weapon and room triple against the case file. Requires Bearer token.")
	accuse.AddReqStructure(AccusationRequest{})
	accuse.AddRespStructure(AccusationResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	accuse.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	accuse.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	_ = r.AddOperation(accuse)

	// GET /api/games/{game}/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/games/{game}/state")
	getState.SetSummary("Get game state")
	getState.SetDescription("Returns the state snapshot scoped to the requesting player. Requires Bearer token.")
	getState.AddRespStructure(StateSnapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	getState.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getState)

	// GET /api/games/{game}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/games/{game}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of state snapshots addressed to the player. Pass token as query parameter.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/games/{game}/ws
	getWS, _ := r.NewOperationContext(http.MethodGet, "/api/games/{game}/ws")
	getWS.SetSummary("WebSocket game channel")
	getWS.SetDescription("Upgrades to a WebSocket carrying NDJSON command and state envelopes. Pass token as query parameter.")
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with email and password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/matches
	listMatches, _ := r.NewOperationContext(http.MethodGet, "/api/admin/matches")
	listMatches.SetSummary("List matches")
	listMatches.SetDescription("Returns archived matches with winners and solutions. Requires admin_session cookie.")
	listMatches.AddRespStructure([]MatchRecord{}, openapi.WithHTTPStatus(http.StatusOK))
	listMatches.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listMatches)

	// DELETE /api/admin/matches/{matchID}
	deleteMatch, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/matches/{matchID}")
	deleteMatch.SetSummary("Delete match")
	deleteMatch.SetDescription("Deletes an archived match. Requires admin_session cookie.")
	deleteMatch.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteMatch.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	deleteMatch.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deleteMatch)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
