package clueless

import (
	"errors"
	"fmt"
)

// Kind classifies a game error so the transport layer can pick a status
// code without inspecting individual sentinels.
type Kind int

const (
	// KindValidation marks an unknown player, suspect, weapon or room name.
	KindValidation Kind = iota
	// KindAuthorization marks a command issued by a non-active player or in
	// the wrong game state.
	KindAuthorization
	// KindStateConflict marks a collision with existing state: card already
	// assigned, suspect taken, occupied passageway, duplicate player id.
	KindStateConflict
	// KindRuleViolation marks a legal-looking command the rules forbid.
	KindRuleViolation
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindStateConflict:
		return "state conflict"
	case KindRuleViolation:
		return "rule violation"
	}
	return "unknown"
}

// Error is the only error type the engine returns. Every failure is
// recoverable: the game state is exactly as it was before the command.
type Error struct {
	Kind Kind
	// Sentinel identifies the condition; errors.Is matches against it.
	Sentinel error
	// Message is player-directed and safe to forward to clients.
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Sentinel, e.Message)
}

func (e *Error) Is(target error) bool {
	return errors.Is(e.Sentinel, target)
}

func newError(kind Kind, sentinel error, format string, args ...any) *Error {
	return &Error{Kind: kind, Sentinel: sentinel, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the Kind of err if it is a game error, or KindValidation
// otherwise.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindValidation
}

var (
	ErrAlreadyAssigned     = errors.New("card already assigned")
	ErrIncompleteUniverse  = errors.New("card universe missing a category")
	ErrIllegalMove         = errors.New("illegal move")
	ErrDuplicateID         = errors.New("duplicate player id")
	ErrUnknownPlayer       = errors.New("unknown player")
	ErrSuspectTaken        = errors.New("suspect already taken")
	ErrUnknownSuspect      = errors.New("unknown suspect")
	ErrUnknownWeapon       = errors.New("unknown weapon")
	ErrUnknownRoom         = errors.New("unknown room")
	ErrUnknownLocation     = errors.New("unknown location")
	ErrUnknownCard         = errors.New("unknown card")
	ErrNotEnoughPlayers    = errors.New("not enough players")
	ErrTooManyPlayers      = errors.New("too many players")
	ErrNoSuspectChosen     = errors.New("player has no suspect")
	ErrNoEligiblePlayers   = errors.New("no eligible players")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrWrongGameState      = errors.New("command not valid in current game state")
	ErrSuggestionOpen      = errors.New("a suggestion is being resolved")
	ErrNoSuggestionOpen    = errors.New("no suggestion is being resolved")
	ErrNotInRoom           = errors.New("player is not in a room")
	ErrNoDefenderAvailable = errors.New("no defender available")
	ErrInvalidDisproof     = errors.New("card is not part of the suggestion")
	ErrCardNotOwned        = errors.New("card is not in the defender's hand")
)
