package clueless

// SuggestionInProgress is the transient sub-state machine created when a
// suggestion is proposed and destroyed when it resolves. Holding it in one
// object keeps the freeze/relocate/hand-off transition commit-or-abort: all
// validation happens before the first mutation.
type SuggestionInProgress struct {
	Accuser  *Player
	Defender *Player
	Suspect  string
	Weapon   string
	Room     string
}

// Names reports whether the card is one of the three named by the suggestion.
func (s *SuggestionInProgress) Names(cardName string) bool {
	return cardName == s.Suspect || cardName == s.Weapon || cardName == s.Room
}

// ProposeSuggestion starts the multi-party disproof protocol: the named
// suspect is relocated into the accuser's room, every player freezes, and
// the turn moves to the defender. When the named suspect is a stand-in, a
// knocked-out player, or the accuser themself, the defender is the next
// still-playing human in canonical suspect order who is not the accuser.
func (g *Game) ProposeSuggestion(accuserID, suspectName, weaponName string) error {
	accuser, err := g.commandGate(accuserID)
	if err != nil {
		return err
	}
	if !isSuspect(suspectName) {
		return newError(KindValidation, ErrUnknownSuspect, "%q is not a suspect", suspectName)
	}
	if !isWeapon(weaponName) {
		return newError(KindValidation, ErrUnknownWeapon, "%q is not a weapon", weaponName)
	}

	room, ok := g.board.LocationOf(accuserID)
	if !ok || room.Kind != KindRoom {
		return newError(KindRuleViolation, ErrNotInRoom,
			"player %q must be in a room to make a suggestion", accuserID)
	}

	accused, ok := g.roster.PlayerBySuspect(suspectName)
	if !ok {
		return newError(KindValidation, ErrUnknownSuspect, "%s is not bound to a player", suspectName)
	}

	// LOSE is terminal: a knocked-out player keeps their cards but never
	// defends, exactly like a stand-in.
	defender := accused
	if defender.StandIn || defender.State == StateLose || defender == accuser {
		defender, ok = g.nextHumanDefender(suspectName, accuser)
		if !ok {
			return newError(KindStateConflict, ErrNoDefenderAvailable,
				"every other suspect is the accuser, a stand-in, or out of the game")
		}
	}

	// Validation is done; commit the whole transition.
	g.freezeAll()
	if err := g.board.Move(accused, room.Name, true); err != nil {
		return err
	}
	defender.State = StateDefend
	defender.SetMessage("warn", "Disprove the suggestion or declare you cannot.")
	g.suggestion = &SuggestionInProgress{
		Accuser:  accuser,
		Defender: defender,
		Suspect:  suspectName,
		Weapon:   weaponName,
		Room:     room.Name,
	}
	g.roster.SetCurrent(defender)
	return nil
}

// DisproveSuggestion resolves the outstanding suggestion. With
// cannotDisprove the suggestion is discarded and the turn returns to the
// accuser with no checklist change. Otherwise the named card must be one of
// the three the suggestion names and must actually be in the defender's
// hand; the accuser's checklist records it and the turn advances.
func (g *Game) DisproveSuggestion(defenderID, cardName string, cannotDisprove bool) error {
	if g.state != StatusStarted {
		return newError(KindAuthorization, ErrWrongGameState, "game is %s", g.state)
	}
	s := g.suggestion
	if s == nil {
		return newError(KindAuthorization, ErrNoSuggestionOpen, "nothing to disprove")
	}
	if s.Defender.ID != defenderID {
		return newError(KindAuthorization, ErrNotYourTurn,
			"player %q is not the defender", defenderID)
	}

	if cannotDisprove {
		g.unfreezeAll()
		g.roster.SetCurrent(s.Accuser)
		s.Accuser.SetMessage("info", "Nobody could disprove your suggestion.")
		g.suggestion = nil
		return nil
	}

	if !s.Names(cardName) {
		return newError(KindRuleViolation, ErrInvalidDisproof,
			"%q is not among the suggested suspect, weapon, or room", cardName)
	}
	if !g.ledger.Holds(defenderID, cardName) {
		return newError(KindRuleViolation, ErrCardNotOwned,
			"player %q does not hold %q", defenderID, cardName)
	}

	g.unfreezeAll()
	g.roster.SetCurrent(s.Accuser)
	s.Accuser.Note(cardName)
	s.Accuser.SetMessage("info", "Your suggestion was disproved with "+cardName+".")
	g.suggestion = nil
	return g.roster.AdvanceTurn()
}

// ProposeAccusation builds the accusation triple, checks it against the
// case file, and either ends the game or knocks the accuser out of the turn
// order.
func (g *Game) ProposeAccusation(accuserID, suspectName, weaponName, roomName string) error {
	accuser, err := g.commandGate(accuserID)
	if err != nil {
		return err
	}
	if !isSuspect(suspectName) {
		return newError(KindValidation, ErrUnknownSuspect, "%q is not a suspect", suspectName)
	}
	if !isWeapon(weaponName) {
		return newError(KindValidation, ErrUnknownWeapon, "%q is not a weapon", weaponName)
	}
	if !isRoom(roomName) {
		return newError(KindValidation, ErrUnknownRoom, "%q is not a room", roomName)
	}

	if g.caseFile.Matches(suspectName, weaponName, roomName) {
		accuser.State = StateWin
		accuser.SetMessage("info", "Correct! You solved the case.")
		if accused, ok := g.roster.PlayerBySuspect(suspectName); ok && !accused.StandIn && accused != accuser {
			accused.State = StateLose
		}
		g.winner = accuser
		g.state = StatusEnd
		return nil
	}

	accuser.State = StateLose
	accuser.SetMessage("error", "Wrong accusation. You are out of the game.")
	if err := g.roster.AdvanceTurn(); err != nil {
		// Every player has accused and lost. The case stays unsolved.
		g.state = StatusEnd
	}
	return nil
}

// nextHumanDefender walks the canonical suspect order starting just after
// the named suspect, skipping the accuser, stand-ins, and knocked-out
// players, until a still-playing human is bound.
func (g *Game) nextHumanDefender(suspect string, accuser *Player) (*Player, bool) {
	at := suspectIndex(suspect)
	for step := 1; step < len(Suspects); step++ {
		candidate := Suspects[(at+step)%len(Suspects)]
		p, ok := g.roster.PlayerBySuspect(candidate)
		if !ok || p.StandIn || p == accuser || p.State == StateLose {
			continue
		}
		return p, true
	}
	return nil, false
}

func (g *Game) freezeAll() {
	for _, p := range g.roster.Players() {
		switch p.State {
		case StateWin, StateLose:
		default:
			p.State = StateLocked
		}
	}
}

func (g *Game) unfreezeAll() {
	for _, p := range g.roster.Players() {
		if p.State == StateLocked || p.State == StateDefend {
			p.State = StateInPlay
		}
	}
}

func isWeapon(name string) bool {
	cat, ok := CategoryOf(name)
	return ok && cat == CategoryWeapon
}

func isRoom(name string) bool {
	cat, ok := CategoryOf(name)
	return ok && cat == CategoryRoom
}
