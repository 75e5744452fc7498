// Package clueless implements the rules engine for Clueless, a turn-based
// deduction board game for 2-6 players. A Game instance is strictly
// single-threaded: callers run one command at a time and synchronize outside
// the package.
package clueless

import "math/rand/v2"

// Category is which of the three sub-universes a card belongs to.
type Category string

const (
	CategorySuspect Category = "suspect"
	CategoryWeapon  Category = "weapon"
	CategoryRoom    Category = "room"
)

// Suspects is the canonical suspect order. Turn order walks this list, so
// the first entry always opens the game.
var Suspects = []string{
	"Miss Scarlet",
	"Colonel Mustard",
	"Mrs White",
	"Mr Green",
	"Mrs Peacock",
	"Professor Plum",
}

var Weapons = []string{
	"Candlestick",
	"Knife",
	"Lead Pipe",
	"Revolver",
	"Rope",
	"Wrench",
}

// Rooms reads like the board layout: three rows of three.
var Rooms = []string{
	"Study", "Hall", "Lounge",
	"Library", "Billiard Room", "Dining Room",
	"Conservatory", "Ballroom", "Kitchen",
}

// Card holders beside player ids.
const (
	holderUnassigned = "UNASSIGNED"
	holderCaseFile   = "CASE_FILE"
)

// Card is one of the 21 fixed card identities.
type Card struct {
	Name     string
	Category Category
}

// CaseFile is the hidden solution: one card per category, withheld from the
// dealt hands and never revealed directly.
type CaseFile struct {
	Suspect string
	Weapon  string
	Room    string
}

// Matches reports whether the accusation triple equals the case file exactly.
func (cf CaseFile) Matches(suspect, weapon, room string) bool {
	return cf.Suspect == suspect && cf.Weapon == weapon && cf.Room == room
}

// Ledger owns every card identity and its assignment to a holder: a player
// id, the case file, or unassigned. A card's holder is write-once.
type Ledger struct {
	cards   []Card
	holders map[string]string
	rng     *rand.Rand
}

// NewLedger populates all 21 cards as unassigned. rng drives the case-file
// draw; pass a seeded source in tests for determinism.
func NewLedger(rng *rand.Rand) *Ledger {
	l := &Ledger{
		holders: make(map[string]string, len(Suspects)+len(Weapons)+len(Rooms)),
		rng:     rng,
	}
	add := func(names []string, cat Category) {
		for _, name := range names {
			l.cards = append(l.cards, Card{Name: name, Category: cat})
			l.holders[name] = holderUnassigned
		}
	}
	add(Suspects, CategorySuspect)
	add(Weapons, CategoryWeapon)
	add(Rooms, CategoryRoom)
	return l
}

// CategoryOf returns the category of a card name, or false if the name is
// not in the universe.
func CategoryOf(name string) (Category, bool) {
	for _, s := range Suspects {
		if s == name {
			return CategorySuspect, true
		}
	}
	for _, w := range Weapons {
		if w == name {
			return CategoryWeapon, true
		}
	}
	for _, r := range Rooms {
		if r == name {
			return CategoryRoom, true
		}
	}
	return "", false
}

// Assign binds a card to a holder. Reassignment fails: once a card is dealt
// or placed in the case file it never moves.
func (l *Ledger) Assign(cardName, holder string) error {
	current, ok := l.holders[cardName]
	if !ok {
		return newError(KindValidation, ErrUnknownCard, "%q is not a card", cardName)
	}
	if current != holderUnassigned {
		return newError(KindStateConflict, ErrAlreadyAssigned, "%q is already held", cardName)
	}
	l.holders[cardName] = holder
	return nil
}

// LoadCaseFile draws one unassigned card per category uniformly at random and
// assigns the three to the case file.
func (l *Ledger) LoadCaseFile() (CaseFile, error) {
	var cf CaseFile
	for _, cat := range []Category{CategorySuspect, CategoryWeapon, CategoryRoom} {
		pool := l.unassigned(cat)
		if len(pool) == 0 {
			return CaseFile{}, newError(KindStateConflict, ErrIncompleteUniverse,
				"no unassigned %s cards to draw from", cat)
		}
		pick := pool[l.rng.IntN(len(pool))]
		if err := l.Assign(pick, holderCaseFile); err != nil {
			return CaseFile{}, err
		}
		switch cat {
		case CategorySuspect:
			cf.Suspect = pick
		case CategoryWeapon:
			cf.Weapon = pick
		case CategoryRoom:
			cf.Room = pick
		}
	}
	return cf, nil
}

// DealRemaining assigns every still-unassigned card round-robin over
// playerIDs in roster order, re-evaluating the pool after each assignment.
// Leftovers land on the earliest players. Fairness of order, not secrecy, is
// the contract here; secrecy comes from the ledger never exposing another
// player's hand.
func (l *Ledger) DealRemaining(playerIDs []string) error {
	if len(playerIDs) == 0 {
		return newError(KindStateConflict, ErrNotEnoughPlayers, "no players to deal to")
	}
	i := 0
	for {
		pool := l.unassignedAll()
		if len(pool) == 0 {
			return nil
		}
		if err := l.Assign(pool[0], playerIDs[i%len(playerIDs)]); err != nil {
			return err
		}
		i++
	}
}

// CardsHeldBy returns the card names assigned to the given holder, in
// universe order.
func (l *Ledger) CardsHeldBy(holder string) []string {
	var held []string
	for _, c := range l.cards {
		if l.holders[c.Name] == holder {
			held = append(held, c.Name)
		}
	}
	return held
}

// Holds reports whether the holder has the named card.
func (l *Ledger) Holds(holder, cardName string) bool {
	return l.holders[cardName] == holder
}

// UnassignedCount is used by tests to check deal completeness.
func (l *Ledger) UnassignedCount() int {
	return len(l.unassignedAll())
}

func (l *Ledger) unassigned(cat Category) []string {
	var pool []string
	for _, c := range l.cards {
		if c.Category == cat && l.holders[c.Name] == holderUnassigned {
			pool = append(pool, c.Name)
		}
	}
	return pool
}

func (l *Ledger) unassignedAll() []string {
	var pool []string
	for _, c := range l.cards {
		if l.holders[c.Name] == holderUnassigned {
			pool = append(pool, c.Name)
		}
	}
	return pool
}
