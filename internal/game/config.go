package game

import (
	"go.uber.org/zap"

	"github.com/samdwyer/darktamagotchi/internal/battle"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible encounters and battles.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// PlayerCreature is the species ID of the player's pet. Empty picks one at random.
	PlayerCreature string

	// Battle holds the constants every battle runs with.
	Battle battle.Config

	// Logger receives game events. Nil discards them.
	Logger *zap.Logger
}

// DefaultConfig returns a config with a random seed, a random pet and the
// stock battle constants.
func DefaultConfig() Config {
	return Config{Battle: battle.DefaultConfig()}
}
