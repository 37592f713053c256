package battle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
)

// Role identifies a human player in a two-player battle.
type Role string

const (
	// RoleFirstPlayer always opens the battle and occupies SidePlayer.
	RoleFirstPlayer Role = "player1"
	// RoleSecondPlayer occupies SideEnemy.
	RoleSecondPlayer Role = "player2"
)

const (
	// MessageTypeBattleAction tags an ability use exchanged between peers.
	MessageTypeBattleAction = "BATTLE_ACTION"
	// MessageTypeBattlePass tags a turn given up for lack of usable abilities.
	MessageTypeBattlePass = "BATTLE_PASS"
)

var (
	// ErrInvalidRole is returned for a role other than player1 or player2.
	ErrInvalidRole = errors.New("invalid multiplayer role")
	// ErrUnknownMessage is returned when decoding a message of another type.
	ErrUnknownMessage = errors.New("unknown battle message type")
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleFirstPlayer || r == RoleSecondPlayer
}

// Other returns the opposing role.
func (r Role) Other() Role {
	if r == RoleFirstPlayer {
		return RoleSecondPlayer
	}
	return RoleFirstPlayer
}

// Side returns the battle slot a role occupies. Both peers use the same
// mapping, so their engines stay in lockstep.
func (r Role) Side() Side {
	if r == RoleFirstPlayer {
		return SidePlayer
	}
	return SideEnemy
}

// ActionMessage is the wire message sent to the peer after a local action.
// CurrentTurn names the role whose turn it is once the action is applied.
type ActionMessage struct {
	Type         string `json:"type"`
	AbilityIndex int    `json:"ability_index"`
	CurrentTurn  Role   `json:"current_turn"`
}

// EncodeAction serializes a message for transport.
func EncodeAction(msg ActionMessage) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode battle action: %w", err)
	}
	return data, nil
}

// DecodeAction parses a message received from the peer.
func DecodeAction(data []byte) (ActionMessage, error) {
	var msg ActionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return ActionMessage{}, fmt.Errorf("decode battle action: %w", err)
	}
	if msg.Type != MessageTypeBattleAction && msg.Type != MessageTypeBattlePass {
		return ActionMessage{}, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return msg, nil
}

// MultiplayerBattle coordinates a battle between a local and a remote human
// player. All damage resolution is delegated to the wrapped Battle.
//
// Delivery order is the transport's job. Out-of-turn messages are rejected
// and nothing is buffered; a lost message leaves the local side waiting.
type MultiplayerBattle struct {
	battle          *Battle
	localRole       Role
	currentTurnRole Role
	awaitingRemote  bool
}

// Snapshot is the turn-relevant state of a multiplayer battle. Two snapshots
// compare equal when no action was applied between them.
type Snapshot struct {
	LocalRole       Role
	CurrentTurnRole Role
	AwaitingRemote  bool
	TurnOwner       Side
	TurnCount       int
	Over            bool
	Winner          Winner
	PlayerHP        int
	PlayerEnergy    int
	EnemyHP         int
	EnemyEnergy     int
}

// NewMultiplayer creates a two-player battle. local is this peer's creature;
// role decides which slot it occupies.
func NewMultiplayer(local, remote Combatant, role Role, cfg Config, opts ...Option) (*MultiplayerBattle, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	player, enemy := local, remote
	if role == RoleSecondPlayer {
		player, enemy = remote, local
	}

	b, err := New(player, enemy, cfg, opts...)
	if err != nil {
		return nil, err
	}

	return &MultiplayerBattle{
		battle:          b,
		localRole:       role,
		currentTurnRole: RoleFirstPlayer,
		awaitingRemote:  role != RoleFirstPlayer,
	}, nil
}

// Battle returns the underlying engine.
func (m *MultiplayerBattle) Battle() *Battle { return m.battle }

// LocalRole returns this peer's role.
func (m *MultiplayerBattle) LocalRole() Role { return m.localRole }

// CurrentTurnRole returns the role expected to act next.
func (m *MultiplayerBattle) CurrentTurnRole() Role { return m.currentTurnRole }

// AwaitingRemote reports whether the local side is waiting for the peer.
func (m *MultiplayerBattle) AwaitingRemote() bool { return m.awaitingRemote }

// Local returns this peer's combatant.
func (m *MultiplayerBattle) Local() Combatant { return m.battle.Combatant(m.localRole.Side()) }

// Remote returns the peer's combatant.
func (m *MultiplayerBattle) Remote() Combatant {
	return m.battle.Combatant(m.localRole.Other().Side())
}

// Snapshot captures the current turn-relevant state.
func (m *MultiplayerBattle) Snapshot() Snapshot {
	b := m.battle
	return Snapshot{
		LocalRole:       m.localRole,
		CurrentTurnRole: m.currentTurnRole,
		AwaitingRemote:  m.awaitingRemote,
		TurnOwner:       b.turnOwner,
		TurnCount:       b.turnCount,
		Over:            b.over,
		Winner:          b.winner,
		PlayerHP:        b.player.GetHP(),
		PlayerEnergy:    b.player.GetEnergy(),
		EnemyHP:         b.enemy.GetHP(),
		EnemyEnergy:     b.enemy.GetEnergy(),
	}
}

// SubmitLocalAction resolves the local player's ability and returns the
// message to send to the peer. It returns nil when the battle is over, when
// the peer is expected to act, or when the action was rejected.
func (m *MultiplayerBattle) SubmitLocalAction(ctx context.Context, abilityIndex int) *ActionMessage {
	if m.battle.over || m.awaitingRemote || m.currentTurnRole != m.localRole {
		return nil
	}

	ctx, span := m.battle.tracer.Start(ctx, "multiplayer.local_action")
	defer span.End()
	span.SetAttributes(
		attribute.String("battle.id", m.battle.id),
		attribute.String("role", string(m.localRole)),
		attribute.Int("ability_index", abilityIndex),
	)

	if !m.battle.ApplyTurn(ctx, m.localRole.Side(), abilityIndex) {
		span.SetAttributes(attribute.Bool("failed", true))
		return nil
	}

	return m.sent(MessageTypeBattleAction, abilityIndex)
}

// SubmitLocalPass gives up the local player's turn when none of its abilities
// can be used, and returns the message to send to the peer. It returns nil
// under the same conditions as SubmitLocalAction, or when an ability is usable.
func (m *MultiplayerBattle) SubmitLocalPass(ctx context.Context) *ActionMessage {
	if m.battle.over || m.awaitingRemote || m.currentTurnRole != m.localRole {
		return nil
	}

	ctx, span := m.battle.tracer.Start(ctx, "multiplayer.local_pass")
	defer span.End()
	span.SetAttributes(
		attribute.String("battle.id", m.battle.id),
		attribute.String("role", string(m.localRole)),
	)

	if !m.battle.PassTurn(ctx, m.localRole.Side()) {
		span.SetAttributes(attribute.Bool("failed", true))
		return nil
	}
	return m.sent(MessageTypeBattlePass, 0)
}

func (m *MultiplayerBattle) sent(msgType string, abilityIndex int) *ActionMessage {
	m.currentTurnRole = m.localRole.Other()
	m.awaitingRemote = true

	return &ActionMessage{
		Type:         msgType,
		AbilityIndex: abilityIndex,
		CurrentTurn:  m.currentTurnRole,
	}
}

// ReceiveRemoteAction applies an action sent by the peer. It returns false
// when the battle is over, when the message arrives out of turn, or when the
// action itself was rejected; none of those change the battle state.
func (m *MultiplayerBattle) ReceiveRemoteAction(ctx context.Context, msg ActionMessage) bool {
	if m.battle.over {
		return false
	}
	if msg.Type != MessageTypeBattleAction && msg.Type != MessageTypeBattlePass {
		m.battle.Logf("Ignored unknown message %q from opponent.", msg.Type)
		return false
	}

	remote := m.localRole.Other()
	if m.currentTurnRole != remote || msg.CurrentTurn != m.localRole {
		m.battle.log.Append("Received out-of-turn action from opponent!")
		return false
	}

	ctx, span := m.battle.tracer.Start(ctx, "multiplayer.remote_action")
	defer span.End()
	span.SetAttributes(
		attribute.String("battle.id", m.battle.id),
		attribute.String("role", string(remote)),
		attribute.Int("ability_index", msg.AbilityIndex),
	)

	var applied bool
	if msg.Type == MessageTypeBattlePass {
		applied = m.battle.PassTurn(ctx, remote.Side())
	} else {
		applied = m.battle.ApplyTurn(ctx, remote.Side(), msg.AbilityIndex)
	}
	if !applied {
		span.SetAttributes(attribute.Bool("failed", true))
		return false
	}

	m.currentTurnRole = m.localRole
	m.awaitingRemote = false
	return true
}

// FinalizeRewards applies end-of-battle rewards to the local combatant.
func (m *MultiplayerBattle) FinalizeRewards(ctx context.Context) Winner {
	return m.battle.FinalizeRewardsFor(ctx, m.localRole.Side())
}

// Summary returns the result from the local player's perspective.
func (m *MultiplayerBattle) Summary() (Summary, bool) {
	return m.battle.SummaryFor(m.localRole.Side())
}
