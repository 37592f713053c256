package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/darktamagotchi/internal/battle"
	"github.com/samdwyer/darktamagotchi/internal/creature"
	"github.com/samdwyer/darktamagotchi/internal/telemetry"
)

// Result is a finished battle as seen by one side.
type Result struct {
	Summary battle.Summary
	Log     []string
}

// RunBattle fights enemy with the player's creature until the battle ends.
// Both sides are driven by the battle's AI policy. Rewards are applied to the
// player's creature before returning.
func (g *Game) RunBattle(ctx context.Context, enemy *creature.Creature) (Result, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.battle")
	defer span.End()

	b, err := battle.New(g.player, enemy, g.cfg.Battle,
		battle.WithRand(g.rng),
		battle.WithItemGenerator(creature.NewLootTable(g.items, g.rng)),
	)
	if err != nil {
		return Result{}, fmt.Errorf("start battle: %w", err)
	}

	g.state = StateBattle
	defer func() { g.state = StateIdle }()

	span.SetAttributes(
		attribute.String("battle.id", b.ID()),
		attribute.String("player", g.player.GetName()),
		attribute.String("enemy", enemy.GetName()),
	)

	for !b.IsOver() {
		b.AutoTurn(ctx, b.TurnOwner())
	}

	// Read the summary first: it reports the XP the rewards are about to apply.
	summary, _ := b.Summary()
	name, stage := g.player.GetName(), g.player.EvolutionStage
	b.FinalizeRewards(ctx)
	if g.player.EvolutionStage > stage {
		b.Logf("%s evolved into %s!", name, g.player.GetName())
		g.logger.Info("creature evolved",
			zap.String("species", g.player.Species),
			zap.String("form", g.player.GetName()),
			zap.Int("stage", g.player.EvolutionStage),
		)
	}
	g.learnPendingSkill(b)

	span.SetAttributes(
		attribute.String("outcome", summary.Outcome.String()),
		attribute.Int("turns_taken", summary.Turns),
	)
	g.logger.Info("battle finished",
		zap.String("battle_id", summary.BattleID),
		zap.String("outcome", summary.Outcome.String()),
		zap.Int("turns", summary.Turns),
		zap.Int("xp_gain", summary.XPGain),
		zap.Int("xp_loss", summary.XPLoss),
	)

	return Result{Summary: summary, Log: b.Log()}, nil
}

// learnPendingSkill teaches the player the ability offered at level up. With
// every slot taken it replaces the weakest ability.
func (g *Game) learnPendingSkill(b *battle.Battle) {
	skill := g.player.TakePendingSkill()
	if skill == nil {
		return
	}

	g.player.LearnAbility(skill)
	abilities := g.player.GetAbilities()
	if len(abilities) > creature.MaxAbilities {
		weakest := 0
		for i, a := range abilities[:len(abilities)-1] {
			if a.GetDamage() < abilities[weakest].GetDamage() {
				weakest = i
			}
		}
		b.Logf("%s forgot %s.", g.player.GetName(), abilities[weakest].GetName())
		g.player.ReplaceAbility(weakest, len(abilities)-1)
	}
	b.Logf("%s learned %s!", g.player.GetName(), skill.GetName())

	g.logger.Info("ability learned",
		zap.String("species", g.player.Species),
		zap.Int("level", g.player.Level),
		zap.String("ability", skill.GetName()),
	)
}
