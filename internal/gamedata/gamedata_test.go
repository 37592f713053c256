package gamedata

import (
	"math/rand"
	"testing"
	"testing/fstest"
)

func TestLoadCreatureRegistry(t *testing.T) {
	registry, err := LoadCreatureRegistry()
	if err != nil {
		t.Fatalf("Failed to load creatures: %v", err)
	}

	if len(registry.file.Creatures) != 5 {
		t.Errorf("Expected 5 creatures, got %d", len(registry.file.Creatures))
	}

	for _, id := range []string{"skeleton", "fire_elemental", "knight", "goblin", "troll"} {
		if registry.GetByID(id) == nil {
			t.Errorf("Expected creature %q not found", id)
		}
	}

	troll := registry.GetByID("troll")
	if troll == nil {
		t.Fatal("Troll not found by ID")
	}
	if troll.HP != 70 || troll.Defense != 12 {
		t.Errorf("Troll stats = hp %d def %d, want 70/12", troll.HP, troll.Defense)
	}
	if registry.GetByID("dragon") != nil {
		t.Error("GetByID(dragon) should return nil")
	}
}

func TestCreatureRegistryProgression(t *testing.T) {
	registry := MustLoadCreatureRegistry()

	if got := registry.XPToLevel(3); got != 300 {
		t.Errorf("XPToLevel(3) = %d, want 300", got)
	}

	tests := []struct {
		level int
		tier  int
	}{
		{1, 1},
		{9, 1},
		{10, 2},
		{19, 2},
		{20, 3},
		{55, 3},
	}
	for _, tt := range tests {
		if got := registry.TierForLevel(tt.level); got != tt.tier {
			t.Errorf("TierForLevel(%d) = %d, want %d", tt.level, got, tt.tier)
		}
	}
}

func TestRangeRoll(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	r := Range{Min: 5, Max: 10}
	for i := 0; i < 200; i++ {
		v := r.Roll(rng)
		if v < 5 || v > 10 {
			t.Fatalf("Roll() = %d, outside [5,10]", v)
		}
	}

	if got := (Range{Min: 3, Max: 3}).Roll(rng); got != 3 {
		t.Errorf("degenerate Roll() = %d, want 3", got)
	}
}

func TestAbilityRegistryEligible(t *testing.T) {
	registry := MustLoadAbilityRegistry()

	// Level 1 knight: Sword Slash, Shield Bash + Quick Strike, Focus
	eligible := registry.Eligible("knight", 1)
	if len(eligible) != 4 {
		t.Fatalf("Eligible(knight, 1) returned %d abilities, want 4", len(eligible))
	}
	for _, def := range eligible {
		if def.MinLevel > 1 {
			t.Errorf("%s requires level %d, should not be eligible at 1", def.Name, def.MinLevel)
		}
	}

	// Unknown species still gets the common pool.
	if got := registry.Eligible("dragon", 1); len(got) != 2 {
		t.Errorf("Eligible(dragon, 1) returned %d abilities, want 2", len(got))
	}
}

func TestAbilityRegistryStartingAbilities(t *testing.T) {
	registry := MustLoadAbilityRegistry()
	rng := rand.New(rand.NewSource(42))

	abilities := registry.StartingAbilities(rng, "goblin")
	if len(abilities) != 4 {
		t.Fatalf("StartingAbilities returned %d abilities, want 4", len(abilities))
	}

	seen := map[string]bool{}
	for _, def := range abilities {
		if seen[def.Name] {
			t.Errorf("duplicate starting ability %q", def.Name)
		}
		seen[def.Name] = true
		if def.Tier != 1 {
			t.Errorf("%s has tier %d, want 1", def.Name, def.Tier)
		}
	}

	if abilities[0].Type != AbilityDamage {
		t.Errorf("first starting ability type = %s, want damage", abilities[0].Type)
	}
}

func TestAbilityRegistryRandomTierDeterministic(t *testing.T) {
	registry := MustLoadAbilityRegistry()

	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))

	for i := 0; i < 20; i++ {
		a := registry.RandomAbility(rng1, "troll", 25)
		b := registry.RandomAbility(rng2, "troll", 25)
		if a.Name != b.Name || a.Tier != b.Tier {
			t.Errorf("Roll %d mismatch: %s/%d != %s/%d", i, a.Name, a.Tier, b.Name, b.Tier)
		}
		if a.Tier < 1 || a.Tier > 3 {
			t.Errorf("Roll %d tier %d outside [1,3]", i, a.Tier)
		}
	}
}

func TestAbilityRegistryTierCappedByLevel(t *testing.T) {
	registry := MustLoadAbilityRegistry()
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 100; i++ {
		if def := registry.RandomAbility(rng, "skeleton", 1); def.Tier != 1 {
			t.Fatalf("level 1 ability rolled tier %d", def.Tier)
		}
	}
}

func TestAbilityRegistrySpecial(t *testing.T) {
	registry := MustLoadAbilityRegistry()

	nova := registry.Special("fire_nova")
	if nova == nil {
		t.Fatal("fire_nova not found")
	}
	if nova.Tier != 3 || nova.Cooldown != 3 {
		t.Errorf("fire_nova tier %d cooldown %d, want 3/3", nova.Tier, nova.Cooldown)
	}
	if registry.Special("missing") != nil {
		t.Error("Special(missing) should return nil")
	}
}

func TestItemRegistryGenerateRandomItem(t *testing.T) {
	registry := MustLoadItemRegistry()
	rng := rand.New(rand.NewSource(99))

	for _, rarity := range []Rarity{RarityCommon, RarityUncommon, RarityRare, Rarity("legendary")} {
		for i := 0; i < 50; i++ {
			item := registry.GenerateRandomItem(rng, rarity)
			if item == nil {
				t.Fatalf("GenerateRandomItem(%s) returned nil", rarity)
			}
			if !inPool(registry, item.ID) {
				t.Fatalf("generated item %q is not in the registry", item.ID)
			}
		}
	}
}

func TestItemRegistryGeneratedItemIsCopy(t *testing.T) {
	registry := MustLoadItemRegistry()
	rng := rand.New(rand.NewSource(1))

	item := registry.GenerateRandomItem(rng, RarityCommon)
	item.Name = "Changed"

	for _, def := range registry.Pool(item.ItemType) {
		if def.Name == "Changed" {
			t.Error("mutating a generated item changed the registry template")
		}
	}
}

func inPool(registry *ItemRegistry, id string) bool {
	for _, pool := range []string{"consumable", "stat_boost", "skill"} {
		for _, def := range registry.Pool(pool) {
			if def.ID == id {
				return true
			}
		}
	}
	return false
}

func TestEvolutionQuality(t *testing.T) {
	registry := MustLoadCreatureRegistry()

	tests := []struct {
		name     string
		wellness int
		moodDiff int
		want     int
	}{
		{"thriving", 95, 5, EvolutionBest},
		{"best boundary", 80, 15, EvolutionBest},
		{"healthy but moody", 90, 20, EvolutionGood},
		{"good boundary", 60, 30, EvolutionGood},
		{"neglected", 59, 0, EvolutionPoor},
		{"miserable", 100, 31, EvolutionPoor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := registry.EvolutionQuality(tt.wellness, tt.moodDiff); got != tt.want {
				t.Errorf("EvolutionQuality(%d, %d) = %d, want %d", tt.wellness, tt.moodDiff, got, tt.want)
			}
		})
	}
}

func TestEvolution(t *testing.T) {
	registry := MustLoadCreatureRegistry()

	tests := []struct {
		name     string
		species  string
		stage    int
		level    int
		wellness int
		want     string
	}{
		{"below threshold", "skeleton", 1, 9, 100, ""},
		{"best skeleton", "skeleton", 1, 10, 100, "Death Knight"},
		{"poor skeleton", "skeleton", 1, 10, 10, "Brittle Skeleton"},
		{"second stage", "skeleton", 2, 25, 70, "Skeletal Champion"},
		{"second stage too early", "skeleton", 2, 24, 100, ""},
		{"no second stage path", "troll", 2, 30, 100, ""},
		{"final stage", "skeleton", 5, 200, 100, ""},
		{"unknown species", "dragon", 1, 10, 100, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := registry.Evolution(tt.species, tt.stage, tt.level, tt.wellness, 0)
			got := ""
			if def != nil {
				got = def.Name
			}
			if got != tt.want {
				t.Errorf("Evolution = %q, want %q", got, tt.want)
			}
		})
	}

	inferno := registry.Evolution("fire_elemental", 1, 10, 100, 0)
	if inferno == nil || inferno.AbilityBonus != "fire_nova" || inferno.StatBoosts.Attack != 1.5 {
		t.Errorf("fire elemental best form = %+v", inferno)
	}
}

func TestLoadFSErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.json": &fstest.MapFile{Data: []byte("{not json")},
	}

	if _, err := LoadFS[ItemsFile](fsys, "missing.json"); err == nil {
		t.Error("LoadFS on missing file should fail")
	}
	if _, err := LoadFS[ItemsFile](fsys, "broken.json"); err == nil {
		t.Error("LoadFS on malformed JSON should fail")
	}
}

func TestLoadFSFixture(t *testing.T) {
	fsys := fstest.MapFS{
		"items.json": &fstest.MapFile{Data: []byte(`{
			"pools": {"consumable": [{"id": "bread", "name": "Bread"}]},
			"rarities": {"common": [{"pool": "consumable", "weight": 1}]}
		}`)},
	}

	file, err := LoadFS[ItemsFile](fsys, "items.json")
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	registry := NewItemRegistry(file)
	item := registry.GenerateRandomItem(rand.New(rand.NewSource(1)), RarityCommon)
	if item == nil || item.ID != "bread" {
		t.Fatalf("GenerateRandomItem = %+v, want bread", item)
	}
}
