package battle

import (
	"context"
	"math"

	"go.opentelemetry.io/otel/attribute"
)

// FinalizeRewards applies end-of-battle rewards to the player side and returns
// the winner. It is a no-op returning WinnerNone while the battle is ongoing.
// Rewards are applied once; later calls only return the winner.
func (b *Battle) FinalizeRewards(ctx context.Context) Winner {
	return b.FinalizeRewardsFor(ctx, SidePlayer)
}

// FinalizeRewardsFor applies end-of-battle rewards to side.
//
// A win grants XP scaled by level difference and remaining health plus a
// chance at a common item; a loss costs a percentage of current XP; a draw
// changes nothing. Every outcome restores 30% energy and 10% HP.
func (b *Battle) FinalizeRewardsFor(ctx context.Context, side Side) Winner {
	if !b.over {
		return WinnerNone
	}
	if b.rewarded {
		return b.winner
	}
	b.rewarded = true

	_, span := b.tracer.Start(ctx, "battle.end")
	defer span.End()

	self := b.Combatant(side)
	opponent := b.Combatant(side.Opponent())
	outcome := b.winner.OutcomeFor(side)

	span.SetAttributes(
		attribute.String("battle.id", b.id),
		attribute.String("side", side.String()),
		attribute.String("outcome", outcome.String()),
		attribute.Int("turns_taken", b.turnCount),
	)

	switch outcome {
	case OutcomeVictory:
		xp := XPGain(b.cfg.XPGainPerBattle, opponent.GetLevel(), self.GetLevel(), self.GetHP(), self.GetMaxHP())
		self.GainXP(xp)
		b.log.Appendf("%s gained %d XP!", self.GetName(), xp)
		span.SetAttributes(attribute.Int("xp_delta", xp))

		if b.loot != nil && b.rng.Float64() < lootChance {
			if item := b.loot.GenerateRandomItem(RarityCommon); item != nil {
				self.AddItem(item)
				b.log.Appendf("Found %s!", item.GetName())
				span.SetAttributes(attribute.String("loot", item.GetName()))
			}
		}
	case OutcomeDefeat:
		xp := XPLoss(self.GetXP(), b.cfg.XPLossPercent)
		if xp > 0 {
			self.LoseXP(xp)
			b.log.Appendf("%s lost %d XP.", self.GetName(), xp)
		}
		span.SetAttributes(attribute.Int("xp_delta", -xp))
	}

	self.RestoreEnergy(int(float64(self.GetMaxEnergy()) * recoveryEnergyFraction))
	self.Heal(int(float64(self.GetMaxHP()) * recoveryHealthFraction))
	b.log.Append("Battle ended. Some energy and health restored.")

	return b.winner
}

// XPGain computes the XP awarded for a win:
// floor(base * (1 + 0.1*(enemyLevel-playerLevel)) * (1 + 0.2*hp/maxHP)).
func XPGain(base, enemyLevel, playerLevel, hp, maxHP int) int {
	levelModifier := 1.0 + float64(enemyLevel-playerLevel)*0.1
	healthRatio := 0.0
	if maxHP > 0 {
		healthRatio = float64(hp) / float64(maxHP)
	}
	healthBonus := 1.0 + healthRatio*0.2
	xp := int(math.Floor(float64(base) * levelModifier * healthBonus))
	if xp < 0 {
		return 0
	}
	return xp
}

// XPLoss computes the XP lost on defeat: floor(xp * percent / 100).
func XPLoss(xp, percent int) int {
	if xp <= 0 || percent <= 0 {
		return 0
	}
	return xp * percent / 100
}
