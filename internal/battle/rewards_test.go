package battle

import (
	"context"
	"testing"
)

func TestXPGain(t *testing.T) {
	tests := []struct {
		name                   string
		base, enemyLvl, ownLvl int
		hp, maxHP              int
		want                   int
	}{
		{"stronger enemy, healthy", 100, 12, 10, 80, 100, 139},
		{"equal levels, full health", 50, 5, 5, 100, 100, 60},
		{"equal levels, no health", 50, 5, 5, 0, 100, 50},
		{"much weaker enemy", 50, 1, 20, 100, 100, 0},
		{"zero max HP", 50, 1, 1, 0, 0, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := XPGain(tt.base, tt.enemyLvl, tt.ownLvl, tt.hp, tt.maxHP); got != tt.want {
				t.Errorf("XPGain = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestXPLoss(t *testing.T) {
	tests := []struct {
		xp, percent, want int
	}{
		{500, 20, 100},
		{0, 20, 0},
		{7, 10, 0},
		{250, 10, 25},
		{100, 0, 0},
	}
	for _, tt := range tests {
		if got := XPLoss(tt.xp, tt.percent); got != tt.want {
			t.Errorf("XPLoss(%d, %d) = %d, want %d", tt.xp, tt.percent, got, tt.want)
		}
	}
}

func TestFinalizeRewardsVictory(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.XPGainPerBattle = 100

	player := newMockCombatant("Knight", 100, 100, 10, 0, newMockAbility("Hit", AbilityDamage, 10, 10))
	player.level = 10
	player.hp = 80
	player.energy = 50
	enemy := newMockCombatant("Ogre", 5, 50, 5, 0)
	enemy.level = 12
	loot := &mockLoot{item: mockItem("Bread")}

	// Rolls: variance, crit, stun, loot.
	rng := &scriptedRand{values: []float64{0.5, 0.5, 0.5, 0.1}}
	b, err := New(player, enemy, cfg, WithRand(rng), WithItemGenerator(loot))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if w := b.FinalizeRewards(ctx); w != WinnerNone {
		t.Fatalf("FinalizeRewards before the end = %s, want none", w)
	}

	b.PlayerTurn(ctx, 0)
	if b.Winner() != WinnerPlayer {
		t.Fatalf("winner = %s, want player", b.Winner())
	}

	s, ok := b.Summary()
	if !ok {
		t.Fatal("Summary not available")
	}
	if s.Outcome != OutcomeVictory || s.XPGain != 139 || s.OutcomeLine != "Knight defeated Ogre!" {
		t.Errorf("summary = %+v", s)
	}
	if s.PlayerHPPercent != 80 || s.EnemyHP != 0 {
		t.Errorf("summary HP = %d%% / %d", s.PlayerHPPercent, s.EnemyHP)
	}

	if w := b.FinalizeRewards(ctx); w != WinnerPlayer {
		t.Fatalf("FinalizeRewards = %s, want player", w)
	}
	if player.gainedXP != 139 {
		t.Errorf("gained XP = %d, want 139", player.gainedXP)
	}
	if len(player.items) != 1 || player.items[0].GetName() != "Bread" {
		t.Errorf("items = %v, want [Bread]", player.items)
	}
	if len(loot.requests) != 1 || loot.requests[0] != RarityCommon {
		t.Errorf("loot requests = %v, want [common]", loot.requests)
	}
	// 40 energy + 30% of 100; 80 HP + 10% of 100.
	if player.GetEnergy() != 70 || player.GetHP() != 90 {
		t.Errorf("recovery = energy %d HP %d, want 70/90", player.GetEnergy(), player.GetHP())
	}
	for _, want := range []string{"Knight gained 139 XP!", "Found Bread!", "Battle ended. Some energy and health restored."} {
		if !containsLine(b.Log(), want) {
			t.Errorf("log missing %q", want)
		}
	}
}

func TestFinalizeRewardsNoLootOnHighRoll(t *testing.T) {
	ctx := context.Background()
	player := newMockCombatant("Knight", 100, 100, 10, 0, newMockAbility("Hit", AbilityDamage, 10, 0))
	enemy := newMockCombatant("Rat", 5, 50, 5, 0)
	loot := &mockLoot{item: mockItem("Bread")}

	rng := &scriptedRand{values: []float64{0.5, 0.5, 0.5, 0.3}}
	b, err := New(player, enemy, DefaultConfig(), WithRand(rng), WithItemGenerator(loot))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.PlayerTurn(ctx, 0)
	b.FinalizeRewards(ctx)

	if len(player.items) != 0 || len(loot.requests) != 0 {
		t.Errorf("roll of 0.3 should not drop loot: items %v", player.items)
	}
}

func TestFinalizeRewardsDefeat(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.XPLossPercent = 20

	player := newMockCombatant("Knight", 100, 100, 0, 0, newMockAbility("Poke", AbilityDamage, 1, 0))
	player.xp = 500
	player.hp = 5
	enemy := newMockCombatant("Troll", 100, 50, 30, 0, newMockAbility("Smash", AbilityDamage, 10, 0))
	b := newTestBattle(t, player, enemy, cfg)

	b.PlayerTurn(ctx, 0)
	b.EnemyAutoTurn(ctx)
	if b.Winner() != WinnerEnemy {
		t.Fatalf("winner = %s, want enemy", b.Winner())
	}

	s, _ := b.Summary()
	if s.XPLoss != 100 {
		t.Errorf("summary XPLoss = %d, want 100", s.XPLoss)
	}

	b.FinalizeRewards(ctx)
	if player.lostXP != 100 || player.GetXP() != 400 {
		t.Errorf("lost %d XP, now %d; want 100 and 400", player.lostXP, player.GetXP())
	}
	if player.gainedXP != 0 {
		t.Errorf("loser gained %d XP", player.gainedXP)
	}
	if player.GetHP() != 10 {
		t.Errorf("player HP = %d, want 10", player.GetHP())
	}
	if !containsLine(b.Log(), "Knight lost 100 XP.") {
		t.Error("log is missing the XP loss line")
	}
}

func TestFinalizeRewardsDraw(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.MaxTurns = 1

	player := newMockCombatant("Knight", 100, 100, 0, 0, newMockAbility("Poke", AbilityDamage, 1, 20))
	player.xp = 300
	b := newTestBattle(t, player, newMockCombatant("Troll", 100, 50, 0, 0), cfg)

	b.PlayerTurn(ctx, 0)
	if w := b.FinalizeRewards(ctx); w != WinnerDraw {
		t.Fatalf("FinalizeRewards = %s, want draw", w)
	}
	if player.gainedXP != 0 || player.lostXP != 0 {
		t.Errorf("draw changed XP: +%d -%d", player.gainedXP, player.lostXP)
	}
	if player.GetEnergy() != 100 {
		t.Errorf("energy = %d, want 100 after recovery", player.GetEnergy())
	}
}

func TestFinalizeRewardsAppliesOnce(t *testing.T) {
	ctx := context.Background()
	player := newMockCombatant("Knight", 100, 100, 10, 0, newMockAbility("Hit", AbilityDamage, 10, 10))
	player.hp = 50
	enemy := newMockCombatant("Ogre", 5, 50, 5, 0)
	loot := &mockLoot{item: mockItem("Bread")}
	// Rolls: variance, crit, stun, loot, then a second loot roll if one is taken.
	rng := &scriptedRand{values: []float64{0.5, 0.5, 0.5, 0.1, 0.1}}
	b, err := New(player, enemy, DefaultConfig(), WithRand(rng), WithItemGenerator(loot))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	b.PlayerTurn(ctx, 0)
	if w := b.FinalizeRewards(ctx); w != WinnerPlayer {
		t.Fatalf("first FinalizeRewards = %s, want player", w)
	}
	xp, hp, energy, lines := player.gainedXP, player.GetHP(), player.GetEnergy(), len(b.Log())

	if w := b.FinalizeRewards(ctx); w != WinnerPlayer {
		t.Errorf("second FinalizeRewards = %s, want player", w)
	}
	if player.gainedXP != xp || player.GetHP() != hp || player.GetEnergy() != energy {
		t.Errorf("second call changed the player: xp %d->%d hp %d->%d energy %d->%d",
			xp, player.gainedXP, hp, player.GetHP(), energy, player.GetEnergy())
	}
	if len(player.items) != 1 || len(loot.requests) != 1 {
		t.Errorf("loot rolled again: items %v requests %v", player.items, loot.requests)
	}
	if len(b.Log()) != lines {
		t.Errorf("second call logged: %v", b.Tail(len(b.Log())-lines))
	}
}
