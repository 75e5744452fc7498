package clueless

import "math/rand/v2"

// Status is the game-level state.
type Status string

const (
	StatusInitial Status = "INITIAL"
	StatusStarted Status = "STARTED"
	StatusEnd     Status = "END"
)

// Game is the orchestrator: one instance per match, strictly
// command-at-a-time. It sequences the ledger, board, roster, and suggestion
// resolver in response to player commands and exposes read-only views.
type Game struct {
	ledger     *Ledger
	board      *Board
	roster     *Roster
	state      Status
	caseFile   CaseFile
	suggestion *SuggestionInProgress
	winner     *Player
}

// New constructs an empty game. rng drives the case-file draw.
func New(rng *rand.Rand) *Game {
	return &Game{
		ledger: NewLedger(rng),
		board:  NewBoard(),
		roster: NewRoster(),
		state:  StatusInitial,
	}
}

// Status returns the game-level state.
func (g *Game) Status() Status {
	return g.state
}

// Winner returns the winning player once the game has ended, nil before.
func (g *Game) Winner() *Player {
	return g.winner
}

// RegisterPlayer adds a player before the game starts.
func (g *Game) RegisterPlayer(id string) error {
	if g.state != StatusInitial {
		return newError(KindAuthorization, ErrWrongGameState, "game already %s", g.state)
	}
	_, err := g.roster.Register(id)
	return err
}

// ChooseSuspect binds a suspect to a registered player before the game
// starts.
func (g *Game) ChooseSuspect(id, suspect string) error {
	if g.state != StatusInitial {
		return newError(KindAuthorization, ErrWrongGameState, "game already %s", g.state)
	}
	return g.roster.ChooseSuspect(id, suspect)
}

// RemovePlayer drops a player from the game. Before the start the roster
// slot and suspect are released outright. Once the game is running, the
// player is demoted to a stand-in instead: their suspect stays on the
// board and their hand stays dealt, so the suggestion protocol and the
// occupancy invariant keep working. Mid-suggestion removal is rejected;
// resolve the suggestion first.
func (g *Game) RemovePlayer(id string) error {
	if g.suggestion != nil {
		return newError(KindAuthorization, ErrSuggestionOpen,
			"cannot remove a player while a suggestion is being resolved")
	}

	if g.state == StatusStarted {
		p, ok := g.roster.Player(id)
		if !ok {
			return newError(KindValidation, ErrUnknownPlayer, "player %q is not registered", id)
		}
		hadTurn := g.roster.HasTurn(id)
		p.StandIn = true
		if p.State == StateSuggest || p.State == StateLocked {
			p.State = StateInPlay
		}
		if hadTurn {
			if err := g.roster.AdvanceTurn(); err != nil {
				// Nobody left to play; the case stays unsolved.
				g.state = StatusEnd
			}
		}
		return nil
	}

	p, err := g.roster.Remove(id)
	if err != nil {
		return err
	}
	if loc, ok := g.board.LocationOf(p.ID); ok {
		loc.remove(p.ID)
	}
	return nil
}

// StartGame locks the roster, loads the case file, deals the remaining
// cards, places everyone at the Initial location, and opens the turn order.
func (g *Game) StartGame() error {
	if g.state != StatusInitial {
		return newError(KindAuthorization, ErrWrongGameState, "game already %s", g.state)
	}
	if err := g.roster.ValidateForStart(); err != nil {
		return err
	}
	g.roster.LockRoster()

	cf, err := g.ledger.LoadCaseFile()
	if err != nil {
		return err
	}
	g.caseFile = cf

	humans := g.roster.Humans()
	ids := make([]string, len(humans))
	for i, p := range humans {
		ids[i] = p.ID
	}
	if err := g.ledger.DealRemaining(ids); err != nil {
		return err
	}

	g.board.InitializePlayers(g.roster.Players())
	for _, p := range humans {
		p.State = StateInPlay
	}
	if err := g.roster.StartTurnOrder(); err != nil {
		return err
	}
	g.state = StatusStarted
	return nil
}

// MovePlayer moves the active player to a destination they can legally
// reach. Entering a room puts the player in the SUGGEST state.
func (g *Game) MovePlayer(id, destination string) error {
	p, err := g.commandGate(id)
	if err != nil {
		return err
	}
	return g.board.Move(p, destination, false)
}

// PassTurn ends the active player's turn and advances to the next in-game
// suspect.
func (g *Game) PassTurn(id string) error {
	p, err := g.commandGate(id)
	if err != nil {
		return err
	}
	if p.State == StateSuggest {
		p.State = StateInPlay
	}
	return g.roster.AdvanceTurn()
}

// commandGate is the shared precondition for turn-scoped commands: the game
// is running, no suggestion is outstanding, and the caller holds the turn.
func (g *Game) commandGate(id string) (*Player, error) {
	if g.state != StatusStarted {
		return nil, newError(KindAuthorization, ErrWrongGameState, "game is %s", g.state)
	}
	if g.suggestion != nil {
		return nil, newError(KindAuthorization, ErrSuggestionOpen,
			"only the defender may act while a suggestion is being resolved")
	}
	p, ok := g.roster.Player(id)
	if !ok {
		return nil, newError(KindValidation, ErrUnknownPlayer, "player %q is not registered", id)
	}
	if !g.roster.HasTurn(id) {
		return nil, newError(KindAuthorization, ErrNotYourTurn, "it is not %q's turn", id)
	}
	return p, nil
}
