package gamedata

import (
	"errors"
	"math/rand"
	"sort"
)

// =============================================================================
// ABILITY DATA
// =============================================================================
//
// Abilities come from three pools in abilities.json:
//   - typePools: abilities only a given creature species can learn
//   - common:    abilities every species can learn
//   - special:   named abilities granted by evolution, keyed by ID
//
// Every entry carries a minimum level. A creature draws its abilities from
// the type pool plus the common pool, filtered by level. The tier of a drawn
// ability is rolled from tierChances and capped by 1 + level/10, up to 3.
// Tier raises damage by 30% per tier above 1.
//
// Effect semantics per type (applied by the creature package):
//   damage  - base damage only
//   buff    - attacker attack x (1 + effectValue) for duration turns
//   debuff  - defender defense x max(0.1, 1 - effectValue) for duration turns
//   heal    - attacker heals maxHP x effectValue
//   drain   - attacker heals damage x effectValue
//   status  - defender is stunned for duration turns
//   aoe     - defender loses an extra damage x effectValue HP

// AbilityType is the kind of effect an ability has.
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

// AbilityDef defines an ability loaded from JSON.
type AbilityDef struct {
	Name        string      `json:"name"`
	BaseDamage  int         `json:"baseDamage"`
	Type        AbilityType `json:"type"`
	Tier        int         `json:"tier,omitempty"`
	MinLevel    int         `json:"minLevel"`
	EnergyCost  int         `json:"energyCost"`
	EffectValue float64     `json:"effectValue,omitempty"`
	Duration    int         `json:"duration,omitempty"`
	Cooldown    int         `json:"cooldown,omitempty"`
	Description string      `json:"description"`
}

// TierChance is the probability of rolling a given tier.
type TierChance struct {
	Tier   int     `json:"tier"`
	Chance float64 `json:"chance"`
}

// AbilitiesFile represents the structure of abilities.json.
type AbilitiesFile struct {
	TierChances []TierChance            `json:"tierChances"`
	TypePools   map[string][]AbilityDef `json:"typePools"`
	Common      []AbilityDef            `json:"common"`
	Special     map[string]AbilityDef   `json:"special"`
}

// AbilityRegistry holds loaded ability pools and provides random selection.
type AbilityRegistry struct {
	file AbilitiesFile
}

// NewAbilityRegistry creates a registry from a loaded abilities file.
func NewAbilityRegistry(file AbilitiesFile) *AbilityRegistry {
	chances := make([]TierChance, len(file.TierChances))
	copy(chances, file.TierChances)
	sort.Slice(chances, func(i, j int) bool { return chances[i].Tier < chances[j].Tier })
	file.TierChances = chances
	return &AbilityRegistry{file: file}
}

// LoadAbilityRegistry loads and creates a registry from the embedded abilities.json.
func LoadAbilityRegistry() (*AbilityRegistry, error) {
	file, err := Load[AbilitiesFile]("abilities.json")
	if err != nil {
		return nil, err
	}
	if len(file.Common) == 0 {
		return nil, errors.New("no common abilities loaded from abilities.json")
	}
	return NewAbilityRegistry(file), nil
}

// MustLoadAbilityRegistry loads a registry, panicking on error.
func MustLoadAbilityRegistry() *AbilityRegistry {
	registry, err := LoadAbilityRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// TypePool returns the species-specific abilities for creatureID.
func (r *AbilityRegistry) TypePool(creatureID string) []AbilityDef {
	return r.file.TypePools[creatureID]
}

// Common returns the abilities every species can learn.
func (r *AbilityRegistry) Common() []AbilityDef {
	return r.file.Common
}

// Special returns the special ability with the given key, or nil if not found.
func (r *AbilityRegistry) Special(key string) *AbilityDef {
	def, ok := r.file.Special[key]
	if !ok {
		return nil
	}
	if def.Tier == 0 {
		def.Tier = 2
	}
	return &def
}

// Eligible returns the type and common abilities available at level. If none
// qualify the whole common pool is returned.
func (r *AbilityRegistry) Eligible(creatureID string, level int) []AbilityDef {
	var eligible []AbilityDef
	for _, pool := range [][]AbilityDef{r.TypePool(creatureID), r.file.Common} {
		for _, def := range pool {
			if def.MinLevel <= level {
				eligible = append(eligible, def)
			}
		}
	}
	if len(eligible) == 0 {
		return r.file.Common
	}
	return eligible
}

// RandomTier rolls a tier using the configured chances. It falls back to tier 1.
func (r *AbilityRegistry) RandomTier(rng *rand.Rand) int {
	roll := rng.Float64()
	cumulative := 0.0
	for _, tc := range r.file.TierChances {
		cumulative += tc.Chance
		if roll < cumulative {
			return tc.Tier
		}
	}
	return 1
}

// MaxTierForLevel returns the highest tier a random ability may roll at level.
func MaxTierForLevel(level int) int {
	tier := 1 + level/10
	if tier > 3 {
		tier = 3
	}
	return tier
}

// RandomAbility draws an eligible ability for the species and level, with a
// rolled tier capped by the level.
func (r *AbilityRegistry) RandomAbility(rng *rand.Rand, creatureID string, level int) AbilityDef {
	eligible := r.Eligible(creatureID, level)
	def := eligible[rng.Intn(len(eligible))]

	tier := r.RandomTier(rng)
	if maxTier := MaxTierForLevel(level); tier > maxTier {
		tier = maxTier
	}
	def.Tier = tier
	return def
}

// StartingAbilities returns four distinct tier-1 abilities: one species damage
// ability available at level 1, then random picks.
func (r *AbilityRegistry) StartingAbilities(rng *rand.Rand, creatureID string) []AbilityDef {
	const count = 4

	var abilities []AbilityDef
	var attacks []AbilityDef
	for _, def := range r.TypePool(creatureID) {
		if def.Type == AbilityDamage && def.MinLevel == 1 {
			attacks = append(attacks, def)
		}
	}
	if len(attacks) > 0 {
		def := attacks[rng.Intn(len(attacks))]
		def.Tier = 1
		abilities = append(abilities, def)
	}

	// Bounded by the number of distinct eligible names.
	distinct := map[string]bool{}
	for _, def := range r.Eligible(creatureID, 1) {
		distinct[def.Name] = true
	}
	want := count
	if len(distinct) < want {
		want = len(distinct)
	}

	for len(abilities) < want {
		def := r.RandomAbility(rng, creatureID, 1)
		if containsAbility(abilities, def.Name) {
			continue
		}
		def.Tier = 1
		abilities = append(abilities, def)
	}
	return abilities
}

func containsAbility(abilities []AbilityDef, name string) bool {
	for _, a := range abilities {
		if a.Name == name {
			return true
		}
	}
	return false
}
