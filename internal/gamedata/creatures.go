package gamedata

import (
	"errors"
	"math/rand"
)

// CreatureDef defines a creature species loaded from JSON.
type CreatureDef struct {
	ID        string `json:"id"`        // Unique identifier (e.g., "fire_elemental")
	Name      string `json:"name"`      // Display name (e.g., "Fire Elemental")
	HP        int    `json:"hp"`        // Base hit points
	Attack    int    `json:"attack"`    // Base attack power
	Defense   int    `json:"defense"`   // Base defense value
	Speed     int    `json:"speed"`     // Base speed
	EnergyMax int    `json:"energyMax"` // Base energy pool
	IdealMood int    `json:"idealMood"` // Mood the creature is happiest at
}

// Range is an inclusive integer range.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Roll returns a uniform value in [Min, Max].
func (r Range) Roll(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// StatGrowth holds the per-stat gain ranges applied on level up.
type StatGrowth struct {
	HP        Range `json:"hp"`
	Attack    Range `json:"attack"`
	Defense   Range `json:"defense"`
	Speed     Range `json:"speed"`
	EnergyMax Range `json:"energyMax"`
}

// Evolution quality, from the worst path to the best.
const (
	EvolutionPoor = iota
	EvolutionGood
	EvolutionBest
)

// StatBoosts multiplies stats when a creature evolves. Zero leaves a stat alone.
type StatBoosts struct {
	MaxHP   float64 `json:"maxHp"`
	Attack  float64 `json:"attack"`
	Defense float64 `json:"defense"`
	Speed   float64 `json:"speed"`
}

// EvolutionDef is one evolved form a species can take.
type EvolutionDef struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	StatBoosts   StatBoosts `json:"statBoosts"`
	AbilityBonus string     `json:"abilityBonus"` // Key into the special ability pool
}

// QualityThreshold is the minimum wellness and maximum distance from the ideal
// mood needed for an evolution quality.
type QualityThreshold struct {
	Wellness int `json:"wellness"`
	MoodDiff int `json:"moodDiff"`
}

// EvolutionRules holds the evolution level thresholds and paths.
//
// Paths are indexed [species][stage-1][quality]. A creature in stage s evolves
// once its level reaches Thresholds[s-1], and the last threshold is the final
// stage.
type EvolutionRules struct {
	Thresholds []int                      `json:"thresholds"`
	Best       QualityThreshold           `json:"best"`
	Good       QualityThreshold           `json:"good"`
	Paths      map[string][][]EvolutionDef `json:"paths"`
}

// CreaturesFile represents the structure of creatures.json.
type CreaturesFile struct {
	XPPerLevel      int            `json:"xpPerLevel"`      // XP needed per level: level * XPPerLevel
	MaxTier         int            `json:"maxTier"`         // Highest ability tier a creature can unlock
	TierEveryLevels int            `json:"tierEveryLevels"` // Levels between tier unlocks
	Growth          StatGrowth     `json:"growth"`
	Evolution       EvolutionRules `json:"evolution"`
	Creatures       []CreatureDef  `json:"creatures"`
}

// CreatureRegistry holds loaded creature definitions and progression rules.
type CreatureRegistry struct {
	file CreaturesFile
}

// NewCreatureRegistry creates a registry from a loaded creatures file.
func NewCreatureRegistry(file CreaturesFile) *CreatureRegistry {
	return &CreatureRegistry{file: file}
}

// LoadCreatureRegistry loads and creates a registry from the embedded creatures.json.
func LoadCreatureRegistry() (*CreatureRegistry, error) {
	file, err := Load[CreaturesFile]("creatures.json")
	if err != nil {
		return nil, err
	}
	if len(file.Creatures) == 0 {
		return nil, errors.New("no creatures loaded from creatures.json")
	}
	return NewCreatureRegistry(file), nil
}

// MustLoadCreatureRegistry loads a registry, panicking on error.
func MustLoadCreatureRegistry() *CreatureRegistry {
	registry, err := LoadCreatureRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the creature definition with the given ID, or nil if not found.
func (r *CreatureRegistry) GetByID(id string) *CreatureDef {
	for i := range r.file.Creatures {
		if r.file.Creatures[i].ID == id {
			return &r.file.Creatures[i]
		}
	}
	return nil
}

// Random returns a uniformly chosen creature definition.
func (r *CreatureRegistry) Random(rng *rand.Rand) *CreatureDef {
	if len(r.file.Creatures) == 0 {
		return nil
	}
	return &r.file.Creatures[rng.Intn(len(r.file.Creatures))]
}

// Growth returns the level-up stat growth ranges.
func (r *CreatureRegistry) Growth() StatGrowth {
	return r.file.Growth
}

// XPToLevel returns the XP needed to advance past level.
func (r *CreatureRegistry) XPToLevel(level int) int {
	return level * r.file.XPPerLevel
}

// TierForLevel returns the highest ability tier unlocked at level.
func (r *CreatureRegistry) TierForLevel(level int) int {
	if r.file.TierEveryLevels <= 0 {
		return 1
	}
	tier := 1 + level/r.file.TierEveryLevels
	if tier > r.file.MaxTier {
		tier = r.file.MaxTier
	}
	return tier
}

// EvolutionQuality grades a creature's care: wellness is 0-100 and moodDiff is
// the distance between its mood and its ideal mood.
func (r *CreatureRegistry) EvolutionQuality(wellness, moodDiff int) int {
	rules := r.file.Evolution
	switch {
	case wellness >= rules.Best.Wellness && moodDiff <= rules.Best.MoodDiff:
		return EvolutionBest
	case wellness >= rules.Good.Wellness && moodDiff <= rules.Good.MoodDiff:
		return EvolutionGood
	default:
		return EvolutionPoor
	}
}

// Evolution returns the form a creature of speciesID in stage evolves into at
// level, or nil if it is not ready or has no further form.
func (r *CreatureRegistry) Evolution(speciesID string, stage, level, wellness, moodDiff int) *EvolutionDef {
	rules := r.file.Evolution
	if stage < 1 || stage >= len(rules.Thresholds) {
		return nil
	}
	if level < rules.Thresholds[stage-1] {
		return nil
	}

	stages := rules.Paths[speciesID]
	if stage > len(stages) || len(stages[stage-1]) == 0 {
		return nil
	}
	forms := stages[stage-1]
	quality := r.EvolutionQuality(wellness, moodDiff)
	if quality >= len(forms) {
		quality = len(forms) - 1
	}
	def := forms[quality]
	return &def
}
