package gamedata

import (
	"errors"
	"math/rand"
)

// Rarity selects which pool weights are used when generating loot.
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
)

// ItemEffect describes what using an item does.
type ItemEffect struct {
	Type   string `json:"type"`             // heal, energy, mood, hunger, skill, stat_boost
	Stat   string `json:"stat,omitempty"`   // For stat_boost
	Amount int    `json:"amount,omitempty"` // Magnitude of the primary effect
	Hunger int    `json:"hunger,omitempty"` // Secondary hunger reduction
	Mood   int    `json:"mood,omitempty"`   // Secondary mood change
}

// ItemDef defines an item loaded from JSON.
type ItemDef struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	ItemType    string     `json:"itemType"`
	Effect      ItemEffect `json:"effect"`
	Description string     `json:"description"`
	Value       int        `json:"value"`
}

// PoolWeight is the chance of drawing from a named item pool.
type PoolWeight struct {
	Pool   string  `json:"pool"`
	Weight float64 `json:"weight"`
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Pools    map[string][]ItemDef    `json:"pools"`
	Rarities map[Rarity][]PoolWeight `json:"rarities"`
}

// ItemRegistry holds loaded item pools and generates random loot.
type ItemRegistry struct {
	file ItemsFile
}

// NewItemRegistry creates a registry from a loaded items file.
func NewItemRegistry(file ItemsFile) *ItemRegistry {
	return &ItemRegistry{file: file}
}

// LoadItemRegistry loads and creates a registry from the embedded items.json.
func LoadItemRegistry() (*ItemRegistry, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	if len(file.Rarities[RarityCommon]) == 0 {
		return nil, errors.New("no common rarity weights loaded from items.json")
	}
	return NewItemRegistry(file), nil
}

// MustLoadItemRegistry loads a registry, panicking on error.
func MustLoadItemRegistry() *ItemRegistry {
	registry, err := LoadItemRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// Pool returns the items in the named pool.
func (r *ItemRegistry) Pool(name string) []ItemDef {
	return r.file.Pools[name]
}

// GenerateRandomItem picks a pool by the rarity's weights, then a uniform item
// from that pool. Unknown rarities use the common weights. It returns nil if
// the chosen pool is empty.
func (r *ItemRegistry) GenerateRandomItem(rng *rand.Rand, rarity Rarity) *ItemDef {
	weights, ok := r.file.Rarities[rarity]
	if !ok {
		weights = r.file.Rarities[RarityCommon]
	}
	if len(weights) == 0 {
		return nil
	}

	// Default to the first pool, which the data keeps as consumables.
	chosen := weights[0].Pool
	roll := rng.Float64()
	cumulative := 0.0
	for _, w := range weights {
		cumulative += w.Weight
		if roll <= cumulative {
			chosen = w.Pool
			break
		}
	}

	pool := r.Pool(chosen)
	if len(pool) == 0 {
		return nil
	}
	item := pool[rng.Intn(len(pool))]
	return &item
}
