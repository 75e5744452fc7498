package clueless

// PlayerState is the per-player finite state.
type PlayerState string

const (
	// StateInitial: registered, pre-game.
	StateInitial PlayerState = "INITIAL"
	// StateInPlay: normal turn-eligible play.
	StateInPlay PlayerState = "IN_PLAY"
	// StateSuggest: just entered a room, may propose a suggestion.
	StateSuggest PlayerState = "SUGGEST"
	// StateDefend: must disprove a suggestion targeting this player.
	StateDefend PlayerState = "DEFEND"
	// StateLocked: frozen while another player's suggestion is resolved.
	StateLocked PlayerState = "LOCKED"
	// StateWin and StateLose are terminal.
	StateWin  PlayerState = "WIN"
	StateLose PlayerState = "LOSE"
)

// Roster bounds.
const (
	MinPlayers = 2
	MaxPlayers = 6
)

// Player is one registered participant, or a stand-in bound to an unclaimed
// suspect so turn and suggestion logic never special-case "nobody plays this
// suspect". Stand-ins never move, suggest, or disprove.
type Player struct {
	ID      string
	Suspect string
	State   PlayerState
	StandIn bool

	// Checklist accumulates card names this player has been shown via
	// disproof. It only ever grows and holds no duplicates.
	Checklist []string

	// Message and Severity are transient UI feedback for this player.
	Message  string
	Severity string
}

// Note appends a card name to the checklist, ignoring duplicates.
func (p *Player) Note(cardName string) {
	for _, seen := range p.Checklist {
		if seen == cardName {
			return
		}
	}
	p.Checklist = append(p.Checklist, cardName)
}

// SetMessage stages transient UI feedback for the player.
func (p *Player) SetMessage(severity, message string) {
	p.Severity = severity
	p.Message = message
}

func standInID(suspect string) string {
	return "standin:" + suspect
}

// Roster owns the registered players, suspect availability, and the active
// turn pointer. Insertion order is preserved for dealing; turn order is a
// function over the canonical suspect list, not a stored list.
type Roster struct {
	order     []*Player
	byID      map[string]*Player
	bySuspect map[string]*Player
	available map[string]bool
	current   *Player
}

// NewRoster starts with every suspect available and no players.
func NewRoster() *Roster {
	available := make(map[string]bool, len(Suspects))
	for _, s := range Suspects {
		available[s] = true
	}
	return &Roster{
		byID:      make(map[string]*Player),
		bySuspect: make(map[string]*Player),
		available: available,
	}
}

// Register adds a player in state INITIAL with no suspect.
func (r *Roster) Register(id string) (*Player, error) {
	if _, ok := r.byID[id]; ok {
		return nil, newError(KindStateConflict, ErrDuplicateID, "player %q already registered", id)
	}
	p := &Player{ID: id, State: StateInitial}
	r.order = append(r.order, p)
	r.byID[id] = p
	return p, nil
}

// Remove drops a player from the roster and releases their suspect.
func (r *Roster) Remove(id string) (*Player, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, newError(KindValidation, ErrUnknownPlayer, "player %q is not registered", id)
	}
	for i, q := range r.order {
		if q == p {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	delete(r.byID, id)
	if p.Suspect != "" {
		delete(r.bySuspect, p.Suspect)
		r.available[p.Suspect] = true
	}
	return p, nil
}

// ChooseSuspect binds a suspect to a player. The binding is permanent and
// the suspect leaves the available set.
func (r *Roster) ChooseSuspect(id, suspect string) error {
	p, ok := r.byID[id]
	if !ok {
		return newError(KindValidation, ErrUnknownPlayer, "player %q is not registered", id)
	}
	if _, known := CategoryOf(suspect); !known || !isSuspect(suspect) {
		return newError(KindValidation, ErrUnknownSuspect, "%q is not a suspect", suspect)
	}
	if !r.available[suspect] {
		return newError(KindStateConflict, ErrSuspectTaken, "%s has already been picked", suspect)
	}
	if p.Suspect != "" {
		return newError(KindStateConflict, ErrSuspectTaken, "player %q already plays %s", id, p.Suspect)
	}
	p.Suspect = suspect
	r.bySuspect[suspect] = p
	delete(r.available, suspect)
	return nil
}

func isSuspect(name string) bool {
	cat, ok := CategoryOf(name)
	return ok && cat == CategorySuspect
}

// ValidateForStart checks the [2,6] roster bound and that every player has a
// suspect.
func (r *Roster) ValidateForStart() error {
	humans := 0
	for _, p := range r.order {
		if !p.StandIn {
			humans++
		}
	}
	if humans < MinPlayers {
		return newError(KindStateConflict, ErrNotEnoughPlayers,
			"need at least %d players, have %d", MinPlayers, humans)
	}
	if humans > MaxPlayers {
		return newError(KindStateConflict, ErrTooManyPlayers,
			"need at most %d players, have %d", MaxPlayers, humans)
	}
	for _, p := range r.order {
		if p.Suspect == "" {
			return newError(KindStateConflict, ErrNoSuspectChosen,
				"player %q has not chosen a suspect", p.ID)
		}
	}
	return nil
}

// LockRoster binds every still-available suspect to a stand-in player and
// closes suspect selection. Called once at game start.
func (r *Roster) LockRoster() {
	for _, suspect := range Suspects {
		if !r.available[suspect] {
			continue
		}
		p := &Player{
			ID:      standInID(suspect),
			Suspect: suspect,
			State:   StateInPlay,
			StandIn: true,
		}
		r.order = append(r.order, p)
		r.byID[p.ID] = p
		r.bySuspect[suspect] = p
		delete(r.available, suspect)
	}
}

// Players returns the roster in insertion order, stand-ins last.
func (r *Roster) Players() []*Player {
	return r.order
}

// Humans returns the non-stand-in players in insertion order.
func (r *Roster) Humans() []*Player {
	var humans []*Player
	for _, p := range r.order {
		if !p.StandIn {
			humans = append(humans, p)
		}
	}
	return humans
}

// Player resolves a player by id.
func (r *Roster) Player(id string) (*Player, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// PlayerBySuspect resolves a player by bound suspect name.
func (r *Roster) PlayerBySuspect(suspect string) (*Player, bool) {
	p, ok := r.bySuspect[suspect]
	return p, ok
}

// AvailableSuspects lists the suspects not yet bound, in canonical order.
func (r *Roster) AvailableSuspects() []string {
	var avail []string
	for _, s := range Suspects {
		if r.available[s] {
			avail = append(avail, s)
		}
	}
	return avail
}

// InGameSuspects lists the suspects bound to a human player who has not
// lost, in canonical order. This is the turn-order domain.
func (r *Roster) InGameSuspects() []string {
	var in []string
	for _, s := range Suspects {
		if p, ok := r.bySuspect[s]; ok && !p.StandIn && p.State != StateLose {
			in = append(in, s)
		}
	}
	return in
}

// Current returns the active player, nil before StartTurnOrder.
func (r *Roster) Current() *Player {
	return r.current
}

// HasTurn is the sole authorization gate for move, suggestion, and pass
// commands.
func (r *Roster) HasTurn(id string) bool {
	return r.current != nil && r.current.ID == id
}

// SetCurrent moves the turn pointer directly; the suggestion resolver uses
// this to hand the turn to a defender and back.
func (r *Roster) SetCurrent(p *Player) {
	r.current = p
}

// StartTurnOrder points the turn at the earliest in-game suspect.
func (r *Roster) StartTurnOrder() error {
	in := r.InGameSuspects()
	if len(in) == 0 {
		return newError(KindStateConflict, ErrNoEligiblePlayers, "no players eligible for a turn")
	}
	r.current = r.bySuspect[in[0]]
	return nil
}

// AdvanceTurn recomputes the in-game suspect subset and moves the pointer to
// the entry after the active player's suspect, wrapping around. Losers and
// stand-ins are skipped because they are never in the subset.
func (r *Roster) AdvanceTurn() error {
	in := r.InGameSuspects()
	if len(in) == 0 {
		return newError(KindStateConflict, ErrNoEligiblePlayers, "no players eligible for a turn")
	}
	if r.current == nil {
		r.current = r.bySuspect[in[0]]
		return nil
	}
	// The active suspect may have just left the subset (a failed accusation),
	// so walk the canonical order from it instead of indexing into the subset.
	at := suspectIndex(r.current.Suspect)
	for step := 1; step <= len(Suspects); step++ {
		candidate := Suspects[(at+step)%len(Suspects)]
		for _, s := range in {
			if s == candidate {
				r.current = r.bySuspect[s]
				return nil
			}
		}
	}
	r.current = r.bySuspect[in[0]]
	return nil
}

func suspectIndex(suspect string) int {
	for i, s := range Suspects {
		if s == suspect {
			return i
		}
	}
	return 0
}
