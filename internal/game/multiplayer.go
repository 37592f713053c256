package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/darktamagotchi/internal/battle"
	"github.com/samdwyer/darktamagotchi/internal/creature"
	"github.com/samdwyer/darktamagotchi/internal/telemetry"
)

var (
	// ErrStalled is returned when the acting peer can neither act nor pass.
	ErrStalled = errors.New("multiplayer battle stalled")
	// ErrDesync is returned when the peers disagree about the battle state.
	ErrDesync = errors.New("multiplayer peers out of sync")
)

// MultiplayerResult holds both peers' views of a finished two-player battle.
type MultiplayerResult struct {
	First    Result // player1's view
	Second   Result // player2's view
	Messages int    // Actions exchanged
}

// RunMultiplayer plays first against second as two peers exchanging JSON
// action messages. Each peer holds its own copies of both creatures and a
// random source seeded identically, so both engines resolve every action the
// same way. Each peer's choice is a random usable ability, or a pass when it
// has none. The original creatures are not modified.
func (g *Game) RunMultiplayer(ctx context.Context, first, second *creature.Creature) (MultiplayerResult, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.multiplayer")
	defer span.End()

	seed := g.rng.Int63()
	span.SetAttributes(
		attribute.String("player1", first.GetName()),
		attribute.String("player2", second.GetName()),
		attribute.Int64("seed", seed),
	)

	p1, err := battle.NewMultiplayer(first.Clone(), second.Clone(), battle.RoleFirstPlayer, g.cfg.Battle,
		battle.WithRand(rand.New(rand.NewSource(seed))))
	if err != nil {
		return MultiplayerResult{}, fmt.Errorf("start player1 peer: %w", err)
	}
	p2, err := battle.NewMultiplayer(second.Clone(), first.Clone(), battle.RoleSecondPlayer, g.cfg.Battle,
		battle.WithRand(rand.New(rand.NewSource(seed))))
	if err != nil {
		return MultiplayerResult{}, fmt.Errorf("start player2 peer: %w", err)
	}

	g.state = StateMultiplayer
	defer func() { g.state = StateIdle }()

	peers := map[battle.Role]*battle.MultiplayerBattle{
		battle.RoleFirstPlayer:  p1,
		battle.RoleSecondPlayer: p2,
	}

	messages := 0
	for !p1.Battle().IsOver() {
		sender := peers[p1.CurrentTurnRole()]
		receiver := peers[sender.LocalRole().Other()]

		var msg *battle.ActionMessage
		if index, ok := g.pickAbility(sender.Local()); ok {
			msg = sender.SubmitLocalAction(ctx, index)
		} else {
			msg = sender.SubmitLocalPass(ctx)
		}
		if msg == nil {
			span.SetAttributes(attribute.Bool("stalled", true))
			g.logger.Warn("multiplayer stalled",
				zap.String("role", string(sender.LocalRole())),
				zap.Int("turns", sender.Battle().TurnCount()),
			)
			return MultiplayerResult{}, fmt.Errorf("%w: %s cannot act", ErrStalled, sender.Local().GetName())
		}

		data, err := battle.EncodeAction(*msg)
		if err != nil {
			return MultiplayerResult{}, err
		}
		decoded, err := battle.DecodeAction(data)
		if err != nil {
			return MultiplayerResult{}, err
		}
		if !receiver.ReceiveRemoteAction(ctx, decoded) {
			return MultiplayerResult{}, fmt.Errorf("%w: %s rejected turn %d", ErrDesync, receiver.LocalRole(), messages)
		}
		messages++
	}

	if p1.Battle().Winner() != p2.Battle().Winner() {
		return MultiplayerResult{}, fmt.Errorf("%w: winners %s and %s", ErrDesync, p1.Battle().Winner(), p2.Battle().Winner())
	}

	result := MultiplayerResult{Messages: messages}
	result.First = finishPeer(ctx, p1)
	result.Second = finishPeer(ctx, p2)

	span.SetAttributes(
		attribute.String("winner", p1.Battle().Winner().String()),
		attribute.Int("messages", messages),
	)
	g.logger.Info("multiplayer finished",
		zap.String("winner", p1.Battle().Winner().String()),
		zap.Int("messages", messages),
	)
	return result, nil
}

// pickAbility chooses a random usable ability for c. It reports false when
// nothing is usable and the peer has to pass.
func (g *Game) pickAbility(c battle.Combatant) (int, bool) {
	usable := battle.UsableAbilities(c)
	if len(usable) == 0 {
		return 0, false
	}
	return usable[g.rng.Intn(len(usable))], true
}

func finishPeer(ctx context.Context, peer *battle.MultiplayerBattle) Result {
	summary, _ := peer.Summary()
	peer.FinalizeRewards(ctx)
	return Result{Summary: summary, Log: peer.Battle().Log()}
}
