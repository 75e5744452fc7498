package clueless

import (
	"fmt"
	"sort"
)

// LocationKind tags the board-node variant. The three kinds share a name and
// an occupant list and differ only in connectivity and capacity.
type LocationKind int

const (
	KindRoom LocationKind = iota
	KindPassageway
	KindInitial
)

func (k LocationKind) String() string {
	switch k {
	case KindRoom:
		return "room"
	case KindPassageway:
		return "passageway"
	case KindInitial:
		return "initial"
	}
	return "unknown"
}

// InitialLocation is the synthetic off-board node holding every player
// before the game starts.
const InitialLocation = "INITIAL"

// Location is a node of the board graph: a Room, a Passageway, or the
// single Initial location.
type Location struct {
	Name string
	Kind LocationKind

	// maxOccupancy of 0 means unbounded. Passageways hold at most one.
	maxOccupancy int
	occupants    []string

	// Rooms: incident passageways and an optional secret-passage room.
	passageways []*Location
	secret      *Location

	// Passageways: exactly two incident rooms.
	ends [2]*Location
}

// Occupants returns the player ids currently at the location.
func (loc *Location) Occupants() []string {
	return loc.occupants
}

func (loc *Location) full() bool {
	return loc.maxOccupancy > 0 && len(loc.occupants) >= loc.maxOccupancy
}

func (loc *Location) holds(playerID string) bool {
	for _, id := range loc.occupants {
		if id == playerID {
			return true
		}
	}
	return false
}

func (loc *Location) add(playerID string) {
	loc.occupants = append(loc.occupants, playerID)
}

func (loc *Location) remove(playerID string) {
	for i, id := range loc.occupants {
		if id == playerID {
			loc.occupants = append(loc.occupants[:i], loc.occupants[i+1:]...)
			return
		}
	}
}

// openingRooms maps each suspect to the two rooms whose shared passageway is
// that suspect's opening move off the Initial location.
var openingRooms = map[string][2]string{
	"Miss Scarlet":    {"Hall", "Lounge"},
	"Colonel Mustard": {"Dining Room", "Lounge"},
	"Mrs White":       {"Ballroom", "Kitchen"},
	"Mr Green":        {"Ballroom", "Conservatory"},
	"Mrs Peacock":     {"Conservatory", "Library"},
	"Professor Plum":  {"Library", "Study"},
}

// secretPassages are bound pairs of non-adjacent rooms.
var secretPassages = [][2]string{
	{"Study", "Kitchen"},
	{"Lounge", "Conservatory"},
}

// Board is the fixed game graph: nine rooms on a 3x3 grid, a passageway
// between every orthogonally adjacent pair, two secret passages, and the
// Initial location. Built once at game construction.
type Board struct {
	dimension   int
	rooms       []*Location
	passageways []*Location
	initial     *Location
	byName      map[string]*Location
}

// NewBoard builds the board from the fixed room universe.
func NewBoard() *Board {
	b := &Board{
		dimension: 3,
		initial:   &Location{Name: InitialLocation, Kind: KindInitial},
		byName:    make(map[string]*Location),
	}
	b.byName[b.initial.Name] = b.initial

	for _, name := range Rooms {
		room := &Location{Name: name, Kind: KindRoom}
		b.rooms = append(b.rooms, room)
		b.byName[name] = room
	}

	// Join every orthogonally adjacent room pair; east and south neighbors
	// cover each pair exactly once.
	for i := range b.rooms {
		x, y := i%b.dimension, i/b.dimension
		if x+1 < b.dimension {
			b.connect(b.rooms[i], b.rooms[i+1])
		}
		if y+1 < b.dimension {
			b.connect(b.rooms[i], b.rooms[i+b.dimension])
		}
	}

	for _, pair := range secretPassages {
		a, c := b.byName[pair[0]], b.byName[pair[1]]
		a.secret = c
		c.secret = a
	}
	return b
}

func (b *Board) connect(roomA, roomB *Location) {
	pw := &Location{
		Name:         passagewayName(roomA.Name, roomB.Name),
		Kind:         KindPassageway,
		maxOccupancy: 1,
		ends:         [2]*Location{roomA, roomB},
	}
	roomA.passageways = append(roomA.passageways, pw)
	roomB.passageways = append(roomB.passageways, pw)
	b.passageways = append(b.passageways, pw)
	b.byName[pw.Name] = pw
}

// passagewayName joins the two room names sorted alphabetically, so every
// room pair has exactly one stable name.
func passagewayName(roomA, roomB string) string {
	names := []string{roomA, roomB}
	sort.Strings(names)
	return fmt.Sprintf("%s-%s", names[0], names[1])
}

// Locations returns every board node including the Initial location.
func (b *Board) Locations() []*Location {
	all := make([]*Location, 0, len(b.rooms)+len(b.passageways)+1)
	all = append(all, b.rooms...)
	all = append(all, b.passageways...)
	all = append(all, b.initial)
	return all
}

// Location resolves a node by name.
func (b *Board) Location(name string) (*Location, bool) {
	loc, ok := b.byName[name]
	return loc, ok
}

// InitializePlayers places every roster member, stand-ins included, at the
// Initial location.
func (b *Board) InitializePlayers(roster []*Player) {
	for _, p := range roster {
		b.initial.add(p.ID)
	}
}

// LocationOf returns the single location holding the player. The occupancy
// invariant guarantees at most one match.
func (b *Board) LocationOf(playerID string) (*Location, bool) {
	for _, loc := range b.Locations() {
		if loc.holds(playerID) {
			return loc, true
		}
	}
	return nil, false
}

// OpeningPassageway is the precomputed first destination for a suspect still
// at the Initial location.
func (b *Board) OpeningPassageway(suspect string) (*Location, bool) {
	pair, ok := openingRooms[suspect]
	if !ok {
		return nil, false
	}
	loc, ok := b.byName[passagewayName(pair[0], pair[1])]
	return loc, ok
}

// DestinationsFrom computes the legal destinations for a player. From the
// Initial location it is the singleton opening passageway for the player's
// suspect; from a room, every unoccupied incident passageway plus the secret
// passage room if bound; from a passageway, both incident rooms.
func (b *Board) DestinationsFrom(p *Player) []string {
	loc, ok := b.LocationOf(p.ID)
	if !ok {
		return nil
	}
	switch loc.Kind {
	case KindInitial:
		if opening, ok := b.OpeningPassageway(p.Suspect); ok {
			return []string{opening.Name}
		}
		return nil
	case KindRoom:
		var dests []string
		for _, pw := range loc.passageways {
			if !pw.full() {
				dests = append(dests, pw.Name)
			}
		}
		if loc.secret != nil {
			dests = append(dests, loc.secret.Name)
		}
		return dests
	case KindPassageway:
		return []string{loc.ends[0].Name, loc.ends[1].Name}
	}
	return nil
}

// Move relocates the player to the named destination. A forced move, used
// when a suggestion relocates the accused, bypasses legality and capacity
// checks entirely. An unforced move must name a destination in
// DestinationsFrom and sets the player's state to StateSuggest when entering
// a room, StateInPlay otherwise.
func (b *Board) Move(p *Player, destination string, forced bool) error {
	dest, ok := b.byName[destination]
	if !ok {
		return newError(KindValidation, ErrUnknownLocation, "%q is not on the board", destination)
	}
	from, ok := b.LocationOf(p.ID)
	if !ok {
		return newError(KindValidation, ErrUnknownPlayer, "player %q is not on the board", p.ID)
	}

	if !forced {
		legal := false
		for _, name := range b.DestinationsFrom(p) {
			if name == destination {
				legal = true
				break
			}
		}
		if !legal {
			return newError(KindRuleViolation, ErrIllegalMove,
				"cannot move from %s to %s", from.Name, destination)
		}
	}

	from.remove(p.ID)
	dest.add(p.ID)

	if !forced {
		if dest.Kind == KindRoom {
			p.State = StateSuggest
		} else {
			p.State = StateInPlay
		}
	}
	return nil
}
