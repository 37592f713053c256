// Package battle provides the turn-based battle system for Dark Tamagotchi.
package battle

// Stat names a combatant attribute that active effects may modify.
type Stat string

const (
	StatAttack  Stat = "attack"
	StatDefense Stat = "defense"
	StatSpeed   Stat = "speed"
)

// StatusKind identifies a status effect that changes how a turn plays out.
type StatusKind string

const (
	StatusNone StatusKind = ""
	// StatusStun makes the affected combatant skip its next turn.
	StatusStun StatusKind = "stun"
)

// AbilityType categorizes what an ability does.
// The AI policy only distinguishes damage and heal; everything else is "other".
type AbilityType string

const (
	AbilityDamage AbilityType = "damage"
	AbilityHeal   AbilityType = "heal"
	AbilityBuff   AbilityType = "buff"
	AbilityDebuff AbilityType = "debuff"
	AbilityDrain  AbilityType = "drain"
	AbilityStatus AbilityType = "status"
	AbilityAOE    AbilityType = "aoe"
)

// Rarity selects the loot table used for post-victory items.
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
)

// Effect is a timed modifier attached to a combatant.
// A status effect sets Status; a stat modifier sets Stat and Multiplier.
type Effect struct {
	Name       string
	Status     StatusKind
	Stat       Stat
	Multiplier float64
	Duration   int // Remaining turns
}

// Combatant is the capability interface the battle engine consumes.
// The engine borrows both combatants for the lifetime of a battle and is
// their only writer while a turn is being resolved.
type Combatant interface {
	// Identity
	GetName() string
	GetLevel() int
	GetXP() int
	GetAllowedTier() int

	// Vitals
	GetHP() int
	GetMaxHP() int
	GetEnergy() int
	GetMaxEnergy() int
	GetStatWithEffects(stat Stat) int

	// Mutations
	TakeDamage(amount int) int    // Returns actual damage taken, HP clamps at 0
	Heal(amount int) int          // Returns actual amount healed
	SpendEnergy(amount int) bool  // Returns false if insufficient energy
	RestoreEnergy(amount int) int // Returns actual amount restored

	// Abilities
	GetAbilities() []Ability

	// Effects
	HasStatusEffect(kind StatusKind) bool
	AddEffect(effect Effect)
	UpdateEffects()

	// Progression
	GainXP(amount int)
	LoseXP(amount int)
	AddItem(item Item)
}

// Ability is the capability interface for an action a combatant may invoke.
type Ability interface {
	GetName() string
	GetDamage() int // Tier-adjusted base damage
	GetEnergyCost() int
	GetTier() int
	GetType() AbilityType

	GetCooldown() int
	RemainingCooldown() int
	IsOnCooldown() bool
	StartCooldown()
	ReduceCooldown()

	// ApplyEffect runs the ability's secondary effect after base damage has been
	// dealt. It reports whether an effect was applied.
	ApplyEffect(attacker, defender Combatant, ctx Context) bool
}

// Context is the view of the running battle handed to ability effect hooks.
type Context interface {
	Logf(format string, args ...any)
}

// Item is anything a combatant can receive as loot.
type Item interface {
	GetName() string
}

// ItemGenerator produces random loot for a rarity tier.
// It may return nil when nothing could be generated.
type ItemGenerator interface {
	GenerateRandomItem(rarity Rarity) Item
}

// Rand is the random source used for damage variance, critical hits, stun
// rolls, loot rolls and the AI's weighted choice. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}
