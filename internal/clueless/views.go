package clueless

// The view surface is pure reads: safe to call at any time, never mutating.
// The transport collaborator serializes these and enforces per-recipient
// scoping where a view is confidential.

// GameStateView is the shared game header sent to everyone.
type GameStateView struct {
	ActivePlayerID    string   `json:"activePlayerId"`
	Status            Status   `json:"gameStatus"`
	AvailableSuspects []string `json:"availableSuspects"`
	SuspectsInPlay    []string `json:"suspectsInPlay"`
	WinnerID          string   `json:"winnerId,omitempty"`
}

// PlayerStateView is one entry of the per-player state listing.
type PlayerStateView struct {
	ID         string      `json:"playerId"`
	Suspect    string      `json:"suspect"`
	State      PlayerState `json:"state"`
	StandIn    bool        `json:"standIn"`
	CanSuggest bool        `json:"canSuggest"`
}

// OptionsView lists the candidate names a player may use in a suggestion or
// accusation.
type OptionsView struct {
	Suspects []string `json:"suspects"`
	Weapons  []string `json:"weapons"`
	Rooms    []string `json:"rooms,omitempty"`
}

// MessageView is transient per-player UI feedback.
type MessageView struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// GameState returns the shared game header.
func (g *Game) GameState() GameStateView {
	v := GameStateView{
		Status:            g.state,
		AvailableSuspects: g.roster.AvailableSuspects(),
		SuspectsInPlay:    g.roster.InGameSuspects(),
	}
	if current := g.roster.Current(); current != nil {
		v.ActivePlayerID = current.ID
	}
	if g.winner != nil {
		v.WinnerID = g.winner.ID
	}
	return v
}

// BoardView maps every location name to the suspect names currently there.
// Locations with no occupants map to an empty list.
func (g *Game) BoardView() map[string][]string {
	view := make(map[string][]string)
	for _, loc := range g.board.Locations() {
		suspects := []string{}
		for _, id := range loc.Occupants() {
			if p, ok := g.roster.Player(id); ok {
				suspects = append(suspects, p.Suspect)
			}
		}
		view[loc.Name] = suspects
	}
	return view
}

// PlayerStates lists every roster member's public state.
func (g *Game) PlayerStates() []PlayerStateView {
	var views []PlayerStateView
	for _, p := range g.roster.Players() {
		views = append(views, PlayerStateView{
			ID:         p.ID,
			Suspect:    p.Suspect,
			State:      p.State,
			StandIn:    p.StandIn,
			CanSuggest: p.State == StateSuggest,
		})
	}
	return views
}

// MoveOptions maps every human player to their legal destinations.
func (g *Game) MoveOptions() map[string][]string {
	options := make(map[string][]string)
	for _, p := range g.roster.Humans() {
		dests := g.board.DestinationsFrom(p)
		if dests == nil {
			dests = []string{}
		}
		options[p.ID] = dests
	}
	return options
}

// SuggestionOptions maps each player eligible to suggest to their candidate
// suspects and weapons. The room is implied by the suggester's location.
func (g *Game) SuggestionOptions() map[string]OptionsView {
	options := make(map[string]OptionsView)
	for _, p := range g.roster.Humans() {
		if p.State != StateSuggest || !g.roster.HasTurn(p.ID) {
			continue
		}
		options[p.ID] = OptionsView{Suspects: Suspects, Weapons: Weapons}
	}
	return options
}

// AccusationOptions maps each player who could accuse on their turn to the
// full candidate universe. Accusations are unconstrained by position.
func (g *Game) AccusationOptions() map[string]OptionsView {
	options := make(map[string]OptionsView)
	for _, p := range g.roster.Humans() {
		if !g.roster.HasTurn(p.ID) {
			continue
		}
		switch p.State {
		case StateInPlay, StateSuggest:
			options[p.ID] = OptionsView{Suspects: Suspects, Weapons: Weapons, Rooms: Rooms}
		}
	}
	return options
}

// Checklists maps every human player to their seen evidence, split by
// category.
func (g *Game) Checklists() map[string]map[Category][]string {
	lists := make(map[string]map[Category][]string)
	for _, p := range g.roster.Humans() {
		split := map[Category][]string{
			CategorySuspect: {},
			CategoryWeapon:  {},
			CategoryRoom:    {},
		}
		for _, name := range p.Checklist {
			if cat, ok := CategoryOf(name); ok {
				split[cat] = append(split[cat], name)
			}
		}
		lists[p.ID] = split
	}
	return lists
}

// HandContents returns the hand of one player only. Callers must pass the
// recipient's own id: the transport layer never sends one player's hand to
// another.
func (g *Game) HandContents(playerID string) []string {
	hand := g.ledger.CardsHeldBy(playerID)
	if hand == nil {
		hand = []string{}
	}
	return hand
}

// Messages maps every human player to their transient UI message.
func (g *Game) Messages() map[string]MessageView {
	msgs := make(map[string]MessageView)
	for _, p := range g.roster.Humans() {
		msgs[p.ID] = MessageView{Message: p.Message, Severity: p.Severity}
	}
	return msgs
}

// Solution reveals the case file, but only once the game has ended. Before
// that the triple is only ever matched against accusations.
func (g *Game) Solution() (CaseFile, bool) {
	if g.state != StatusEnd {
		return CaseFile{}, false
	}
	return g.caseFile, true
}

// Suggestion returns the outstanding suggestion, nil when none is open.
func (g *Game) Suggestion() *SuggestionInProgress {
	return g.suggestion
}

// Roster exposes the player registry for read-only use by tests and views.
func (g *Game) Roster() *Roster {
	return g.roster
}

// Board exposes the board topology for read-only use by tests and views.
func (g *Game) Board() *Board {
	return g.board
}

// Ledger exposes the card ledger for read-only use by tests.
func (g *Game) Ledger() *Ledger {
	return g.ledger
}
