package creature

import (
	"math/rand"

	"github.com/samdwyer/darktamagotchi/internal/battle"
	"github.com/samdwyer/darktamagotchi/internal/gamedata"
)

// Item is an inventory entry. Items with the same name stack.
type Item struct {
	Def      gamedata.ItemDef
	Quantity int
}

// NewItem wraps a definition as a single item.
func NewItem(def gamedata.ItemDef) *Item {
	return &Item{Def: def, Quantity: 1}
}

// GetName returns the item's display name.
func (i *Item) GetName() string { return i.Def.Name }

// UseItem consumes one of the named items and applies its effect. It returns
// false when the creature has none left or the effect cannot be applied, in
// which case nothing is consumed.
func (c *Creature) UseItem(name string) bool {
	for i, item := range c.inventory {
		if item.GetName() != name || item.Quantity <= 0 {
			continue
		}
		if !c.applyItem(item.Def.Effect) {
			return false
		}
		item.Quantity--
		if item.Quantity == 0 {
			c.inventory = append(c.inventory[:i], c.inventory[i+1:]...)
		}
		return true
	}
	return false
}

func (c *Creature) applyItem(effect gamedata.ItemEffect) bool {
	switch effect.Type {
	case "heal":
		c.Heal(effect.Amount)
	case "energy":
		c.RestoreEnergy(effect.Amount)
	case "mood":
		c.Mood = clamp(c.Mood+effect.Amount, 0, 100)
	case "hunger":
		c.Hunger = clamp(c.Hunger-effect.Amount, 0, 100)
	case "skill":
		if c.pool == nil {
			return false
		}
		c.LearnAbility(NewAbility(c.pool.RandomAbility(c.rng, c.Species, c.Level)))
	case "stat_boost":
		switch effect.Stat {
		case "attack":
			c.Attack += effect.Amount
		case "defense":
			c.Defense += effect.Amount
		case "speed":
			c.Speed += effect.Amount
		case "max_hp":
			c.MaxHP += effect.Amount
		case "energy_max":
			c.MaxEnergy += effect.Amount
		default:
			return false
		}
	default:
		return false
	}

	if effect.Hunger != 0 {
		c.Hunger = clamp(c.Hunger-effect.Hunger, 0, 100)
	}
	if effect.Mood != 0 {
		c.Mood = clamp(c.Mood+effect.Mood, 0, 100)
	}
	return true
}

var _ battle.Item = (*Item)(nil)

// LootTable adapts the item registry to the battle's ItemGenerator.
type LootTable struct {
	registry *gamedata.ItemRegistry
	rng      *rand.Rand
}

// NewLootTable creates a loot table drawing from registry with rng.
func NewLootTable(registry *gamedata.ItemRegistry, rng *rand.Rand) *LootTable {
	return &LootTable{registry: registry, rng: rng}
}

// GenerateRandomItem implements battle.ItemGenerator.
func (l *LootTable) GenerateRandomItem(rarity battle.Rarity) battle.Item {
	def := l.registry.GenerateRandomItem(l.rng, gamedata.Rarity(rarity))
	if def == nil {
		return nil
	}
	return NewItem(*def)
}

var _ battle.ItemGenerator = (*LootTable)(nil)
