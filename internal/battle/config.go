package battle

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when battle constants are out of range.
var ErrInvalidConfig = errors.New("invalid battle config")

const (
	DefaultStunChance       = 0.2
	DefaultMaxTurns         = 20
	DefaultXPGainPerBattle  = 50
	DefaultXPLossPercent    = 10
	critChance              = 0.05
	critMultiplier          = 1.5
	varianceMin             = 0.9
	varianceSpread          = 0.2
	lootChance              = 0.3
	recoveryEnergyFraction  = 0.3
	recoveryHealthFraction  = 0.1
	lowHealthFraction       = 0.3
	finishingHealthFraction = 0.2
	healWantedFraction      = 0.7
)

// Config holds the tunable battle constants. Values are owned by the caller.
type Config struct {
	StunChance      float64 // Probability a damage ability stuns the defender
	MaxTurns        int     // Turns before the battle is declared a draw
	XPGainPerBattle int     // Base XP awarded for a win
	XPLossPercent   int     // Percentage of current XP lost on defeat
}

// DefaultConfig returns the stock game constants.
func DefaultConfig() Config {
	return Config{
		StunChance:      DefaultStunChance,
		MaxTurns:        DefaultMaxTurns,
		XPGainPerBattle: DefaultXPGainPerBattle,
		XPLossPercent:   DefaultXPLossPercent,
	}
}

// Validate reports whether the constants are usable.
func (c Config) Validate() error {
	if c.StunChance < 0 || c.StunChance > 1 {
		return fmt.Errorf("%w: stun chance %v outside [0,1]", ErrInvalidConfig, c.StunChance)
	}
	if c.MaxTurns <= 0 {
		return fmt.Errorf("%w: max turns must be positive, got %d", ErrInvalidConfig, c.MaxTurns)
	}
	if c.XPGainPerBattle < 0 {
		return fmt.Errorf("%w: xp gain must not be negative, got %d", ErrInvalidConfig, c.XPGainPerBattle)
	}
	if c.XPLossPercent < 0 || c.XPLossPercent > 100 {
		return fmt.Errorf("%w: xp loss percent %d outside [0,100]", ErrInvalidConfig, c.XPLossPercent)
	}
	return nil
}
