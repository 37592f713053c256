// Package creature provides the creatures that fight in battles.
package creature

import (
	"math"
	"math/rand"

	"github.com/samdwyer/darktamagotchi/internal/battle"
	"github.com/samdwyer/darktamagotchi/internal/gamedata"
)

// Progression is the subset of creature data rules needed for levelling.
type Progression interface {
	Growth() gamedata.StatGrowth
	XPToLevel(level int) int
	TierForLevel(level int) int
	Evolution(speciesID string, stage, level, wellness, moodDiff int) *gamedata.EvolutionDef
}

// Creature is a player's or an opponent's pet.
type Creature struct {
	Species string // Creature definition ID (e.g., "troll")
	Name    string // Display name

	// Combat stats
	HP, MaxHP         int
	Energy, MaxEnergy int
	Attack            int
	Defense           int
	Speed             int

	// Care, 0-100
	Mood      int
	IdealMood int
	Hunger    int

	// Progression
	Level          int
	XP             int
	AllowedTier    int
	EvolutionStage int

	abilities     []*Ability
	activeEffects []battle.Effect
	inventory     []*Item
	pendingSkill  *Ability

	progression Progression
	pool        *gamedata.AbilityRegistry
	rng         *rand.Rand
}

// MaxAbilities is the number of ability slots a creature fights with.
const MaxAbilities = 4

// New rolls a fresh level-1 creature from def: HP and energy vary by ±5,
// attack, defense and speed by ±2 around the species base.
func New(def *gamedata.CreatureDef, abilities *gamedata.AbilityRegistry, progression Progression, rng *rand.Rand) *Creature {
	c := &Creature{
		Species:        def.ID,
		Name:           def.Name,
		MaxHP:          def.HP + jitter(rng, 5),
		Attack:         def.Attack + jitter(rng, 2),
		Defense:        def.Defense + jitter(rng, 2),
		Speed:          def.Speed + jitter(rng, 2),
		MaxEnergy:      def.EnergyMax + jitter(rng, 5),
		Mood:           def.IdealMood,
		IdealMood:      def.IdealMood,
		Level:          1,
		AllowedTier:    1,
		EvolutionStage: 1,
		progression:    progression,
		pool:           abilities,
		rng:            rng,
	}
	c.HP = c.MaxHP
	c.Energy = c.MaxEnergy

	for _, ab := range abilities.StartingAbilities(rng, def.ID) {
		c.abilities = append(c.abilities, NewAbility(ab))
	}
	return c
}

// jitter returns a uniform value in [-n, n].
func jitter(rng *rand.Rand, n int) int {
	return rng.Intn(2*n+1) - n
}

// Clone returns a deep copy. Each multiplayer peer battles its own copy of
// both creatures.
func (c *Creature) Clone() *Creature {
	out := *c
	out.abilities = make([]*Ability, len(c.abilities))
	for i, a := range c.abilities {
		ab := *a
		out.abilities[i] = &ab
	}
	out.activeEffects = c.ActiveEffects()
	out.inventory = make([]*Item, len(c.inventory))
	for i, item := range c.inventory {
		it := *item
		out.inventory[i] = &it
	}
	if c.pendingSkill != nil {
		skill := *c.pendingSkill
		out.pendingSkill = &skill
	}
	return &out
}

// LevelTo raises the creature to level by granting the XP each level needs.
// It does nothing when the creature is already at or above level.
func (c *Creature) LevelTo(level int) {
	if c.progression == nil {
		return
	}
	for c.Level < level {
		need := c.progression.XPToLevel(c.Level) - c.XP
		if need <= 0 {
			return
		}
		c.GainXP(need)
	}
}

// LearnAbility appends an ability. Creatures may hold more than four; the
// caller decides which to replace.
func (c *Creature) LearnAbility(a *Ability) {
	c.abilities = append(c.abilities, a)
}

// ReplaceAbility swaps the ability at oldIndex for the one at newIndex. When
// newIndex is the last slot the new ability takes oldIndex's place and the
// list shrinks by one.
func (c *Creature) ReplaceAbility(oldIndex, newIndex int) bool {
	n := len(c.abilities)
	if oldIndex < 0 || oldIndex >= n || newIndex < 0 || newIndex >= n {
		return false
	}
	if newIndex == n-1 {
		c.abilities[oldIndex] = c.abilities[newIndex]
		c.abilities = c.abilities[:n-1]
		return true
	}
	c.abilities[oldIndex], c.abilities[newIndex] = c.abilities[newIndex], c.abilities[oldIndex]
	return true
}

// PendingSkill returns the ability offered at the last level up, or nil.
func (c *Creature) PendingSkill() *Ability {
	return c.pendingSkill
}

// TakePendingSkill returns the offered ability and clears the offer.
func (c *Creature) TakePendingSkill() *Ability {
	skill := c.pendingSkill
	c.pendingSkill = nil
	return skill
}

// Inventory returns the items the creature carries.
func (c *Creature) Inventory() []*Item {
	return c.inventory
}

// Wellness rates the creature's condition from 0 to 100, weighting HP 40%,
// energy 30% and fullness 30%.
func (c *Creature) Wellness() int {
	hp, energy := 0.0, 0.0
	if c.MaxHP > 0 {
		hp = float64(c.HP) / float64(c.MaxHP)
	}
	if c.MaxEnergy > 0 {
		energy = float64(c.Energy) / float64(c.MaxEnergy)
	}
	fullness := 1 - float64(c.Hunger)/100

	overall := int((hp*0.4 + energy*0.3 + fullness*0.3) * 100)
	return clamp(overall, 0, 100)
}

// moodDiff is the distance between the creature's mood and its ideal.
func (c *Creature) moodDiff() int {
	if c.Mood > c.IdealMood {
		return c.Mood - c.IdealMood
	}
	return c.IdealMood - c.Mood
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// ActiveEffects returns a copy of the active effects.
func (c *Creature) ActiveEffects() []battle.Effect {
	out := make([]battle.Effect, len(c.activeEffects))
	copy(out, c.activeEffects)
	return out
}

// =============================================================================
// battle.Combatant implementation
// =============================================================================

// GetName returns the creature's display name.
func (c *Creature) GetName() string { return c.Name }

// GetLevel returns the current level.
func (c *Creature) GetLevel() int { return c.Level }

// GetXP returns XP accumulated towards the next level.
func (c *Creature) GetXP() int { return c.XP }

// GetAllowedTier returns the highest ability tier the creature may use.
func (c *Creature) GetAllowedTier() int { return c.AllowedTier }

// GetHP returns current HP.
func (c *Creature) GetHP() int { return c.HP }

// GetMaxHP returns maximum HP.
func (c *Creature) GetMaxHP() int { return c.MaxHP }

// GetEnergy returns current energy.
func (c *Creature) GetEnergy() int { return c.Energy }

// GetMaxEnergy returns maximum energy.
func (c *Creature) GetMaxEnergy() int { return c.MaxEnergy }

// GetStatWithEffects returns a stat multiplied by every active effect on it.
func (c *Creature) GetStatWithEffects(stat battle.Stat) int {
	var base int
	switch stat {
	case battle.StatAttack:
		base = c.Attack
	case battle.StatDefense:
		base = c.Defense
	case battle.StatSpeed:
		base = c.Speed
	default:
		return 0
	}

	multiplier := 1.0
	for _, e := range c.activeEffects {
		if e.Stat == stat && e.Multiplier != 0 {
			multiplier *= e.Multiplier
		}
	}
	return int(float64(base) * multiplier)
}

// TakeDamage reduces HP and returns actual damage taken.
func (c *Creature) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > c.HP {
		actual = c.HP
	}
	c.HP -= actual
	return actual
}

// Heal restores HP and returns actual amount healed.
func (c *Creature) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if c.HP+actual > c.MaxHP {
		actual = c.MaxHP - c.HP
	}
	c.HP += actual
	return actual
}

// SpendEnergy reduces energy and returns false if insufficient.
func (c *Creature) SpendEnergy(amount int) bool {
	if c.Energy < amount {
		return false
	}
	c.Energy -= amount
	return true
}

// RestoreEnergy restores energy and returns actual amount restored.
func (c *Creature) RestoreEnergy(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if c.Energy+actual > c.MaxEnergy {
		actual = c.MaxEnergy - c.Energy
	}
	c.Energy += actual
	return actual
}

// GetAbilities returns the creature's abilities in slot order.
func (c *Creature) GetAbilities() []battle.Ability {
	out := make([]battle.Ability, len(c.abilities))
	for i, a := range c.abilities {
		out[i] = a
	}
	return out
}

// HasStatusEffect reports whether a status of the given kind is active.
func (c *Creature) HasStatusEffect(kind battle.StatusKind) bool {
	for _, e := range c.activeEffects {
		if e.Status == kind && kind != battle.StatusNone {
			return true
		}
	}
	return false
}

// AddEffect attaches a timed effect. Effects of the same name do not replace
// each other; they stack.
func (c *Creature) AddEffect(effect battle.Effect) {
	c.activeEffects = append(c.activeEffects, effect)
}

// UpdateEffects ticks every effect by one turn and drops the expired ones.
func (c *Creature) UpdateEffects() {
	remaining := c.activeEffects[:0]
	for _, e := range c.activeEffects {
		e.Duration--
		if e.Duration > 0 {
			remaining = append(remaining, e)
		}
	}
	c.activeEffects = remaining
}

// GainXP adds XP and levels up once the threshold for the current level is met.
func (c *Creature) GainXP(amount int) {
	if amount <= 0 {
		return
	}
	c.XP += amount
	if c.progression != nil && c.XP >= c.progression.XPToLevel(c.Level) {
		c.levelUp()
	}
}

// LoseXP removes XP, dropping levels while XP is negative. Abilities above the
// new level are forgotten and XP never goes below zero.
func (c *Creature) LoseXP(amount int) {
	if amount <= 0 {
		return
	}
	c.XP -= amount

	dropped := false
	for c.XP < 0 && c.Level > 1 {
		c.Level--
		if c.progression != nil {
			c.XP += c.progression.XPToLevel(c.Level)
		}
		dropped = true
	}
	if c.XP < 0 {
		c.XP = 0
	}
	if dropped {
		c.forgetHighLevelAbilities()
	}
}

// AddItem stores an item, stacking it onto an existing entry with the same name.
func (c *Creature) AddItem(item battle.Item) {
	incoming, ok := item.(*Item)
	if !ok {
		return
	}
	for _, existing := range c.inventory {
		if existing.GetName() == incoming.GetName() {
			existing.Quantity += incoming.Quantity
			return
		}
	}
	c.inventory = append(c.inventory, incoming)
}

// levelUp advances one level: XP resets, stats grow, vitals refill and the
// allowed tier follows the level. A creature with an ability pool is also
// offered a new skill, and a creature past its stage threshold evolves.
func (c *Creature) levelUp() {
	c.Level++
	c.XP = 0

	growth := c.progression.Growth()
	c.MaxHP += growth.HP.Roll(c.rng)
	c.Attack += growth.Attack.Roll(c.rng)
	c.Defense += growth.Defense.Roll(c.rng)
	c.Speed += growth.Speed.Roll(c.rng)
	c.MaxEnergy += growth.EnergyMax.Roll(c.rng)

	c.HP = c.MaxHP
	c.Energy = c.MaxEnergy

	if tier := c.progression.TierForLevel(c.Level); tier > c.AllowedTier {
		c.AllowedTier = tier
	}

	if c.pool != nil {
		c.pendingSkill = NewAbility(c.pool.RandomAbility(c.rng, c.Species, c.Level))
	}

	if evo := c.progression.Evolution(c.Species, c.EvolutionStage, c.Level, c.Wellness(), c.moodDiff()); evo != nil {
		c.evolve(evo)
	}
}

// evolve turns the creature into its next form. The form's special ability,
// if the pool has it, replaces the pending skill offer.
func (c *Creature) evolve(evo *gamedata.EvolutionDef) {
	c.Name = evo.Name
	c.MaxHP = boost(c.MaxHP, evo.StatBoosts.MaxHP)
	c.Attack = boost(c.Attack, evo.StatBoosts.Attack)
	c.Defense = boost(c.Defense, evo.StatBoosts.Defense)
	c.Speed = boost(c.Speed, evo.StatBoosts.Speed)
	c.HP = min(c.HP, c.MaxHP)
	c.EvolutionStage++

	if c.pool == nil || evo.AbilityBonus == "" {
		return
	}
	if special := c.pool.Special(evo.AbilityBonus); special != nil {
		c.pendingSkill = NewAbility(*special)
	}
}

func boost(stat int, multiplier float64) int {
	if multiplier == 0 {
		return stat
	}
	return int(math.Floor(float64(stat) * multiplier))
}

func (c *Creature) forgetHighLevelAbilities() {
	kept := c.abilities[:0]
	for _, a := range c.abilities {
		if a.MinLevel <= c.Level {
			kept = append(kept, a)
		}
	}
	c.abilities = kept
}

// Ensure Creature implements battle.Combatant
var _ battle.Combatant = (*Creature)(nil)
