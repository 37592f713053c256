package creature

import (
	"github.com/samdwyer/darktamagotchi/internal/battle"
	"github.com/samdwyer/darktamagotchi/internal/gamedata"
)

// minDebuffMultiplier keeps a debuffed stat from collapsing to nothing.
const minDebuffMultiplier = 0.1

// Ability is a learned ability with its own cooldown state.
type Ability struct {
	Name            string
	BaseDamage      int
	Type            battle.AbilityType
	Tier            int
	MinLevel        int
	EnergyCost      int
	EffectValue     float64
	Duration        int
	Cooldown        int
	Description     string
	currentCooldown int
}

// NewAbility builds an ability from a data definition. A zero tier is tier 1.
func NewAbility(def gamedata.AbilityDef) *Ability {
	tier := def.Tier
	if tier < 1 {
		tier = 1
	}
	return &Ability{
		Name:        def.Name,
		BaseDamage:  def.BaseDamage,
		Type:        battle.AbilityType(def.Type),
		Tier:        tier,
		MinLevel:    def.MinLevel,
		EnergyCost:  def.EnergyCost,
		EffectValue: def.EffectValue,
		Duration:    def.Duration,
		Cooldown:    def.Cooldown,
		Description: def.Description,
	}
}

// GetName returns the ability name.
func (a *Ability) GetName() string { return a.Name }

// GetDamage returns the base damage scaled by tier: +30% per tier above 1.
func (a *Ability) GetDamage() int {
	multiplier := 1 + float64(a.Tier-1)*0.3
	return int(float64(a.BaseDamage) * multiplier)
}

// GetEnergyCost returns the energy spent on use.
func (a *Ability) GetEnergyCost() int { return a.EnergyCost }

// GetTier returns the ability tier.
func (a *Ability) GetTier() int { return a.Tier }

// GetType returns the ability type.
func (a *Ability) GetType() battle.AbilityType { return a.Type }

// GetCooldown returns the cooldown length in turns.
func (a *Ability) GetCooldown() int { return a.Cooldown }

// RemainingCooldown returns the turns left before the ability is ready.
func (a *Ability) RemainingCooldown() int { return a.currentCooldown }

// IsOnCooldown reports whether the ability is still recharging.
func (a *Ability) IsOnCooldown() bool { return a.currentCooldown > 0 }

// StartCooldown begins the recharge period.
func (a *Ability) StartCooldown() { a.currentCooldown = a.Cooldown }

// ReduceCooldown ticks the recharge period by one turn.
func (a *Ability) ReduceCooldown() {
	if a.currentCooldown > 0 {
		a.currentCooldown--
	}
}

// ApplyEffect runs the type-specific secondary effect after base damage.
func (a *Ability) ApplyEffect(attacker, defender battle.Combatant, ctx battle.Context) bool {
	switch a.Type {
	case battle.AbilityBuff:
		attacker.AddEffect(battle.Effect{
			Name:       a.Name,
			Stat:       battle.StatAttack,
			Multiplier: 1 + a.EffectValue,
			Duration:   a.Duration,
		})
		ctx.Logf("%s's %s was increased!", attacker.GetName(), battle.StatAttack)
		return true

	case battle.AbilityDebuff:
		multiplier := 1 - a.EffectValue
		if multiplier < minDebuffMultiplier {
			multiplier = minDebuffMultiplier
		}
		defender.AddEffect(battle.Effect{
			Name:       a.Name,
			Stat:       battle.StatDefense,
			Multiplier: multiplier,
			Duration:   a.Duration,
		})
		ctx.Logf("%s's %s was decreased!", defender.GetName(), battle.StatDefense)
		return true

	case battle.AbilityHeal:
		healed := attacker.Heal(int(float64(attacker.GetMaxHP()) * a.EffectValue))
		ctx.Logf("%s healed for %d HP!", attacker.GetName(), healed)
		return true

	case battle.AbilityDrain:
		drained := attacker.Heal(int(float64(a.GetDamage()) * a.EffectValue))
		ctx.Logf("%s drained %d HP from %s!", attacker.GetName(), drained, defender.GetName())
		return true

	case battle.AbilityStatus:
		defender.AddEffect(battle.Effect{
			Name:     a.Name,
			Status:   battle.StatusStun,
			Duration: a.Duration,
		})
		ctx.Logf("%s was stunned!", defender.GetName())
		return true

	case battle.AbilityAOE:
		extra := defender.TakeDamage(int(float64(a.GetDamage()) * a.EffectValue))
		ctx.Logf("%s dealt %d additional AoE damage!", a.Name, extra)
		return true

	default:
		// Damage abilities have no effect beyond base damage.
		return false
	}
}

var _ battle.Ability = (*Ability)(nil)
