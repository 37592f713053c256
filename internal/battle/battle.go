package battle

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/darktamagotchi/internal/telemetry"
)

// ErrNilCombatant is returned when a battle is created without both combatants.
var ErrNilCombatant = errors.New("battle requires two combatants")

// Battle is one fight between two combatants.
//
// A battle is single-threaded: every exported method runs to completion and
// no two calls may overlap. The combatants are borrowed, not owned.
type Battle struct {
	id     string
	cfg    Config
	rng    Rand
	loot   ItemGenerator
	tracer trace.Tracer

	player Combatant
	enemy  Combatant

	turnOwner Side
	turnCount int
	over      bool
	winner    Winner
	log       Log

	// turnStarted is set once the acting side's effects have been refreshed,
	// so a retry after a rejected action does not tick them again.
	turnStarted bool
	// lastUsed is the ability resolved this turn. Its fresh cooldown is not
	// ticked when the turn ends.
	lastUsed Ability
	rewarded bool
}

// Option configures a Battle.
type Option func(*Battle)

// WithRand sets the random source. Tests use this for deterministic rolls.
func WithRand(r Rand) Option {
	return func(b *Battle) {
		b.rng = r
	}
}

// WithItemGenerator sets the loot source used after a victory.
func WithItemGenerator(g ItemGenerator) Option {
	return func(b *Battle) {
		b.loot = g
	}
}

// WithTracer overrides the tracer used for battle spans.
func WithTracer(t trace.Tracer) Option {
	return func(b *Battle) {
		b.tracer = t
	}
}

// New starts a battle. The player side acts first.
func New(player, enemy Combatant, cfg Config, opts ...Option) (*Battle, error) {
	if player == nil || enemy == nil {
		return nil, ErrNilCombatant
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Battle{
		id:        uuid.NewString(),
		cfg:       cfg,
		player:    player,
		enemy:     enemy,
		turnOwner: SidePlayer,
		winner:    WinnerNone,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if b.tracer == nil {
		b.tracer = telemetry.Tracer("battle")
	}

	b.log.Append("Battle started!")
	return b, nil
}

// ID returns the unique identifier of this battle.
func (b *Battle) ID() string { return b.id }

// Player returns the combatant in the player slot.
func (b *Battle) Player() Combatant { return b.player }

// Enemy returns the combatant in the enemy slot.
func (b *Battle) Enemy() Combatant { return b.enemy }

// Combatant returns the combatant occupying side.
func (b *Battle) Combatant(side Side) Combatant {
	if side == SidePlayer {
		return b.player
	}
	return b.enemy
}

// TurnOwner returns the side permitted to act.
func (b *Battle) TurnOwner() Side { return b.turnOwner }

// TurnCount returns the number of completed turns.
func (b *Battle) TurnCount() int { return b.turnCount }

// IsOver reports whether the battle has ended.
func (b *Battle) IsOver() bool { return b.over }

// Winner returns the outcome, or WinnerNone while the battle is ongoing.
func (b *Battle) Winner() Winner { return b.winner }

// Log returns a copy of every log entry.
func (b *Battle) Log() []string { return b.log.Entries() }

// Tail returns the last n log entries.
func (b *Battle) Tail(n int) []string { return b.log.Tail(n) }

// Logf appends a formatted line to the battle log. Ability effect hooks log
// through this.
func (b *Battle) Logf(format string, args ...any) {
	b.log.Appendf(format, args...)
}

// ApplyTurn resolves side's turn using the ability at abilityIndex.
//
// It returns false without advancing the turn when the battle is over, when
// side does not own the turn, or when the ability cannot be used (bad index,
// tier too high, on cooldown, not enough energy); the caller may retry.
// A stunned combatant loses its turn and ApplyTurn returns true.
func (b *Battle) ApplyTurn(ctx context.Context, side Side, abilityIndex int) bool {
	if b.over {
		b.log.Append("The battle is already over!")
		return false
	}
	if side != b.turnOwner {
		b.log.Appendf("It is not %s's turn!", b.Combatant(side).GetName())
		return false
	}

	_, span := b.tracer.Start(ctx, "battle.turn")
	defer span.End()
	span.SetAttributes(
		attribute.String("battle.id", b.id),
		attribute.String("side", side.String()),
		attribute.Int("turn", b.turnCount),
		attribute.Int("ability_index", abilityIndex),
	)

	if b.beginTurn(span, side) {
		return true
	}
	return b.resolveAbility(span, side, abilityIndex)
}

// PlayerTurn is ApplyTurn for the player side.
func (b *Battle) PlayerTurn(ctx context.Context, abilityIndex int) bool {
	return b.ApplyTurn(ctx, SidePlayer, abilityIndex)
}

// EnemyAutoTurn lets the AI act for the enemy side. When no ability is usable
// the turn passes without damage. It returns false if the battle is over or
// it is not the enemy's turn.
func (b *Battle) EnemyAutoTurn(ctx context.Context) bool {
	return b.AutoTurn(ctx, SideEnemy)
}

// AutoTurn lets the AI act for side.
func (b *Battle) AutoTurn(ctx context.Context, side Side) bool {
	if b.over || side != b.turnOwner {
		return false
	}

	_, span := b.tracer.Start(ctx, "battle.turn")
	defer span.End()
	span.SetAttributes(
		attribute.String("battle.id", b.id),
		attribute.String("side", side.String()),
		attribute.Int("turn", b.turnCount),
		attribute.Bool("auto", true),
	)

	if b.beginTurn(span, side) {
		return true
	}

	index, ok := b.ChooseAbility(side)
	if !ok {
		b.pass(span, side)
		return true
	}
	span.SetAttributes(attribute.Int("ability_index", index))

	if !b.resolveAbility(span, side, index) {
		// The policy only offers usable abilities; never let the AI stall the battle.
		b.advanceTurn()
	}
	return true
}

// PassTurn gives up side's turn. It is only allowed when side has no usable
// ability; a stunned combatant loses the turn as it would in ApplyTurn.
func (b *Battle) PassTurn(ctx context.Context, side Side) bool {
	if b.over || side != b.turnOwner {
		return false
	}

	_, span := b.tracer.Start(ctx, "battle.turn")
	defer span.End()
	span.SetAttributes(
		attribute.String("battle.id", b.id),
		attribute.String("side", side.String()),
		attribute.Int("turn", b.turnCount),
		attribute.Bool("pass", true),
	)

	if b.beginTurn(span, side) {
		return true
	}
	if len(UsableAbilities(b.Combatant(side))) > 0 {
		b.log.Appendf("%s cannot pass while it has usable abilities!", b.Combatant(side).GetName())
		span.SetAttributes(attribute.Bool("failed", true))
		return false
	}
	b.pass(span, side)
	return true
}

func (b *Battle) pass(span trace.Span, side Side) {
	b.log.Appendf("%s has no usable abilities!", b.Combatant(side).GetName())
	span.SetAttributes(attribute.Bool("no_usable_ability", true))
	b.advanceTurn()
}

// beginTurn refreshes the acting side's effects once per turn and consumes the
// turn if the combatant started it stunned.
func (b *Battle) beginTurn(span trace.Span, side Side) bool {
	if b.turnStarted {
		return false
	}
	b.turnStarted = true

	actor := b.Combatant(side)
	stunned := actor.HasStatusEffect(StatusStun)
	actor.UpdateEffects()

	if !stunned {
		return false
	}
	b.log.Appendf("%s is stunned and cannot act!", actor.GetName())
	span.SetAttributes(attribute.Bool("stunned", true))
	b.advanceTurn()
	return true
}

// resolveAbility validates and applies one ability use. It is the single
// resolution path for player, AI and multiplayer turns.
func (b *Battle) resolveAbility(span trace.Span, side Side, abilityIndex int) bool {
	attacker := b.Combatant(side)
	defender := b.Combatant(side.Opponent())

	abilities := attacker.GetAbilities()
	if abilityIndex < 0 || abilityIndex >= len(abilities) {
		b.log.Append("Invalid ability selection!")
		span.SetAttributes(attribute.Bool("failed", true))
		return false
	}
	ability := abilities[abilityIndex]
	span.SetAttributes(attribute.String("ability", ability.GetName()))

	if ability.GetTier() > attacker.GetAllowedTier() {
		b.log.Appendf("Cannot use %s: tier %d > allowed tier %d!",
			ability.GetName(), ability.GetTier(), attacker.GetAllowedTier())
		span.SetAttributes(attribute.Bool("failed", true))
		return false
	}
	if ability.IsOnCooldown() {
		b.log.Appendf("%s is on cooldown for %d more turns!", ability.GetName(), ability.RemainingCooldown())
		span.SetAttributes(attribute.Bool("failed", true))
		return false
	}
	if !attacker.SpendEnergy(ability.GetEnergyCost()) {
		b.log.Appendf("Not enough energy to use %s (cost: %d)!", ability.GetName(), ability.GetEnergyCost())
		span.SetAttributes(attribute.Bool("failed", true))
		return false
	}

	damage, critical := b.calculateDamage(attacker, defender, ability)
	if critical {
		b.log.Append("Critical hit!")
	}
	dealt := defender.TakeDamage(damage)
	b.log.Appendf("%s used %s for %d damage!", attacker.GetName(), ability.GetName(), dealt)
	span.SetAttributes(
		attribute.Int("damage", dealt),
		attribute.Bool("critical", critical),
	)

	ability.ApplyEffect(attacker, defender, b)

	if ability.GetType() == AbilityDamage && b.rng.Float64() < b.cfg.StunChance {
		defender.AddEffect(Effect{Name: "Stunned", Status: StatusStun, Duration: 1})
		b.log.Appendf("%s is stunned for 1 turn(s)!", defender.GetName())
		span.SetAttributes(attribute.Bool("stun_applied", true))
	}

	if ability.GetCooldown() > 0 {
		ability.StartCooldown()
		b.lastUsed = ability
	}

	if defender.GetHP() <= 0 {
		b.over = true
		b.winner = winnerFor(side)
		b.log.Appendf("%s defeated %s!", attacker.GetName(), defender.GetName())
		span.SetAttributes(attribute.String("winner", b.winner.String()))
		return true
	}

	b.advanceTurn()
	return true
}

// calculateDamage applies the damage formula:
// (base + attack - floor(defense/2)) * variance[0.9,1.1] * crit, floored, min 1.
func (b *Battle) calculateDamage(attacker, defender Combatant, ability Ability) (int, bool) {
	attack := attacker.GetStatWithEffects(StatAttack)
	defense := defender.GetStatWithEffects(StatDefense)
	raw := ability.GetDamage() + attack - int(math.Floor(float64(defense)*0.5))

	variance := varianceMin + varianceSpread*b.rng.Float64()

	multiplier := 1.0
	critical := b.rng.Float64() < critChance
	if critical {
		multiplier = critMultiplier
	}

	damage := int(math.Floor(float64(raw) * variance * multiplier))
	if damage < 1 {
		damage = 1
	}
	return damage, critical
}

// advanceTurn ends the owner's turn: cooldowns other than the one just started
// tick down, the turn passes to the other side and the turn limit applies.
// A cooldown of N therefore blocks the ability for the owner's next N turns.
func (b *Battle) advanceTurn() {
	for _, ability := range b.Combatant(b.turnOwner).GetAbilities() {
		if ability != b.lastUsed {
			ability.ReduceCooldown()
		}
	}
	b.lastUsed = nil

	b.turnOwner = b.turnOwner.Opponent()
	b.turnCount++
	b.turnStarted = false

	if b.turnCount >= b.cfg.MaxTurns {
		b.over = true
		b.winner = WinnerDraw
		b.log.Appendf("Battle ended in a draw after %d turns!", b.turnCount)
	}
}
