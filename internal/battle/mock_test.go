package battle

import (
	"testing"

	"github.com/samdwyer/darktamagotchi/internal/telemetry"
)

// mockCombatant is a test implementation of the Combatant interface.
type mockCombatant struct {
	name        string
	level, xp   int
	allowedTier int
	hp, maxHP   int
	energy      int
	maxEnergy   int
	attack      int
	defense     int
	speed       int
	abilities   []Ability
	effects     []Effect
	items       []Item

	gainedXP      int
	lostXP        int
	effectUpdates int
}

func newMockCombatant(name string, hp, energy, attack, defense int, abilities ...Ability) *mockCombatant {
	return &mockCombatant{
		name:        name,
		level:       1,
		allowedTier: 1,
		hp:          hp,
		maxHP:       hp,
		energy:      energy,
		maxEnergy:   energy,
		attack:      attack,
		defense:     defense,
		abilities:   abilities,
	}
}

func (m *mockCombatant) GetName() string         { return m.name }
func (m *mockCombatant) GetLevel() int           { return m.level }
func (m *mockCombatant) GetXP() int              { return m.xp }
func (m *mockCombatant) GetAllowedTier() int     { return m.allowedTier }
func (m *mockCombatant) GetHP() int              { return m.hp }
func (m *mockCombatant) GetMaxHP() int           { return m.maxHP }
func (m *mockCombatant) GetEnergy() int          { return m.energy }
func (m *mockCombatant) GetMaxEnergy() int       { return m.maxEnergy }
func (m *mockCombatant) GetAbilities() []Ability { return m.abilities }

func (m *mockCombatant) GetStatWithEffects(stat Stat) int {
	base := 0
	switch stat {
	case StatAttack:
		base = m.attack
	case StatDefense:
		base = m.defense
	case StatSpeed:
		base = m.speed
	}
	multiplier := 1.0
	for _, e := range m.effects {
		if e.Stat == stat && e.Multiplier != 0 {
			multiplier *= e.Multiplier
		}
	}
	return int(float64(base) * multiplier)
}

func (m *mockCombatant) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > m.hp {
		actual = m.hp
	}
	m.hp -= actual
	return actual
}

func (m *mockCombatant) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if m.hp+actual > m.maxHP {
		actual = m.maxHP - m.hp
	}
	m.hp += actual
	return actual
}

func (m *mockCombatant) SpendEnergy(amount int) bool {
	if m.energy < amount {
		return false
	}
	m.energy -= amount
	return true
}

func (m *mockCombatant) RestoreEnergy(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if m.energy+actual > m.maxEnergy {
		actual = m.maxEnergy - m.energy
	}
	m.energy += actual
	return actual
}

func (m *mockCombatant) HasStatusEffect(kind StatusKind) bool {
	for _, e := range m.effects {
		if e.Status == kind {
			return true
		}
	}
	return false
}

func (m *mockCombatant) AddEffect(effect Effect) {
	m.effects = append(m.effects, effect)
}

func (m *mockCombatant) UpdateEffects() {
	m.effectUpdates++
	remaining := []Effect{}
	for _, e := range m.effects {
		e.Duration--
		if e.Duration > 0 {
			remaining = append(remaining, e)
		}
	}
	m.effects = remaining
}

func (m *mockCombatant) GainXP(amount int) {
	m.gainedXP += amount
	m.xp += amount
}

func (m *mockCombatant) LoseXP(amount int) {
	m.lostXP += amount
	m.xp -= amount
	if m.xp < 0 {
		m.xp = 0
	}
}

func (m *mockCombatant) AddItem(item Item) {
	m.items = append(m.items, item)
}

// mockAbility is a test implementation of the Ability interface.
type mockAbility struct {
	name      string
	damage    int
	cost      int
	tier      int
	kind      AbilityType
	cooldown  int
	remaining int
	applied   int
}

func newMockAbility(name string, kind AbilityType, damage, cost int) *mockAbility {
	return &mockAbility{name: name, kind: kind, damage: damage, cost: cost, tier: 1}
}

func (a *mockAbility) GetName() string        { return a.name }
func (a *mockAbility) GetDamage() int         { return a.damage }
func (a *mockAbility) GetEnergyCost() int     { return a.cost }
func (a *mockAbility) GetTier() int           { return a.tier }
func (a *mockAbility) GetType() AbilityType   { return a.kind }
func (a *mockAbility) GetCooldown() int       { return a.cooldown }
func (a *mockAbility) RemainingCooldown() int { return a.remaining }
func (a *mockAbility) IsOnCooldown() bool     { return a.remaining > 0 }
func (a *mockAbility) StartCooldown()         { a.remaining = a.cooldown }

func (a *mockAbility) ReduceCooldown() {
	if a.remaining > 0 {
		a.remaining--
	}
}

func (a *mockAbility) ApplyEffect(attacker, defender Combatant, ctx Context) bool {
	a.applied++
	return false
}

type mockItem string

func (i mockItem) GetName() string { return string(i) }

// mockLoot hands out a fixed item and counts requests.
type mockLoot struct {
	item     Item
	requests []Rarity
}

func (l *mockLoot) GenerateRandomItem(rarity Rarity) Item {
	l.requests = append(l.requests, rarity)
	return l.item
}

// scriptedRand returns queued values in order, then 0.5 forever. With 0.5 the
// damage variance is exactly 1.0 and neither crits nor default stuns fire.
type scriptedRand struct {
	values []float64
}

func (r *scriptedRand) Float64() float64 {
	if len(r.values) == 0 {
		return 0.5
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v
}

func newTestBattle(t *testing.T, player, enemy Combatant, cfg Config, rolls ...float64) *Battle {
	t.Helper()
	b, err := New(player, enemy, cfg, WithRand(&scriptedRand{values: rolls}), WithTracer(telemetry.NoopTracer()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func lastLine(b *Battle) string {
	tail := b.Tail(1)
	if len(tail) == 0 {
		return ""
	}
	return tail[0]
}

func containsLine(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}
