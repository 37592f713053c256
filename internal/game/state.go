// Package game provides the game session: the player's creature, encounters,
// and running battles to completion.
package game

// State represents the current game state.
type State int

const (
	// StateIdle is the resting state between battles.
	StateIdle State = iota
	// StateBattle is a single-player battle against a wild creature.
	StateBattle
	// StateMultiplayer is a two-player battle exchanged between peers.
	StateMultiplayer
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBattle:
		return "battle"
	case StateMultiplayer:
		return "multiplayer"
	default:
		return "unknown"
	}
}
