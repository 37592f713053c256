package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/darktamagotchi/internal/config"
	"github.com/samdwyer/darktamagotchi/internal/creature"
	"github.com/samdwyer/darktamagotchi/internal/gamedata"
	"github.com/samdwyer/darktamagotchi/internal/logging"
	"github.com/samdwyer/darktamagotchi/internal/telemetry"
)

// ErrUnknownCreature is returned for a species ID missing from the game data.
var ErrUnknownCreature = errors.New("unknown creature")

// Game holds the entire game state.
type Game struct {
	cfg    Config
	seed   int64
	rng    *rand.Rand
	state  State
	logger *zap.Logger

	creatures *gamedata.CreatureRegistry
	abilities *gamedata.AbilityRegistry
	items     *gamedata.ItemRegistry

	player *creature.Creature
}

// New creates a new game instance and rolls the player's creature.
func New(cfg Config) (*Game, error) {
	if err := cfg.Battle.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = config.NewSeed(); err != nil {
			return nil, err
		}
	}

	creatures, err := gamedata.LoadCreatureRegistry()
	if err != nil {
		return nil, fmt.Errorf("load creatures: %w", err)
	}
	abilities, err := gamedata.LoadAbilityRegistry()
	if err != nil {
		return nil, fmt.Errorf("load abilities: %w", err)
	}
	items, err := gamedata.LoadItemRegistry()
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}

	g := &Game{
		cfg:       cfg,
		seed:      seed,
		rng:       rand.New(rand.NewSource(seed)),
		state:     StateIdle,
		logger:    logging.OrNop(cfg.Logger),
		creatures: creatures,
		abilities: abilities,
		items:     items,
	}

	species := cfg.PlayerCreature
	if species == "" {
		species = creatures.Random(g.rng).ID
	}
	g.player, err = g.NewCreature(species)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Player returns the player's creature.
func (g *Game) Player() *creature.Creature { return g.player }

// State returns the current game state.
func (g *Game) State() State { return g.state }

// Seed returns the seed the game's random source started from.
func (g *Game) Seed() int64 { return g.seed }

// NewCreature rolls a fresh level-1 creature of the given species.
func (g *Game) NewCreature(speciesID string) (*creature.Creature, error) {
	def := g.creatures.GetByID(speciesID)
	if def == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCreature, speciesID)
	}
	return creature.New(def, g.abilities, g.creatures, g.rng), nil
}

// NewEncounter generates a wild creature within one level of the player.
func (g *Game) NewEncounter(ctx context.Context) *creature.Creature {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.encounter")
	defer span.End()

	def := g.creatures.Random(g.rng)
	level := g.player.Level + g.rng.Intn(3) - 1
	if level < 1 {
		level = 1
	}

	enemy := creature.New(def, g.abilities, g.creatures, g.rng)
	enemy.LevelTo(level)

	span.SetAttributes(
		attribute.String("enemy.species", def.ID),
		attribute.Int("enemy.level", enemy.Level),
		attribute.Int("player.level", g.player.Level),
	)
	g.logger.Info("encounter generated",
		zap.String("species", def.ID),
		zap.Int("level", enemy.Level),
	)
	return enemy
}
