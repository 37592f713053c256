package game

import (
	"go.uber.org/zap"

	"github.com/samdwyer/darktamagotchi/internal/creature"
)

// UseItem has the player's creature use one of the named items.
func (g *Game) UseItem(name string) bool {
	if !g.player.UseItem(name) {
		return false
	}
	g.logger.Info("item used",
		zap.String("species", g.player.Species),
		zap.String("item", name),
		zap.Int("hp", g.player.HP),
		zap.Int("energy", g.player.Energy),
	)
	return true
}

// RecoverWithItems spends the player's healing and energy items until its HP
// and energy are full or the items run out. It returns the names of the items
// used, in order.
func (g *Game) RecoverWithItems() []string {
	var used []string
	for _, item := range append([]*creature.Item(nil), g.player.Inventory()...) {
		for item.Quantity > 0 && g.needs(item.Def.Effect.Type) {
			if !g.UseItem(item.GetName()) {
				break
			}
			used = append(used, item.GetName())
		}
	}
	return used
}

func (g *Game) needs(effect string) bool {
	switch effect {
	case "heal":
		return g.player.HP < g.player.MaxHP
	case "energy":
		return g.player.Energy < g.player.MaxEnergy
	default:
		return false
	}
}
