package systems

import (
	"testing"

	"github.com/gonewx/spellcore/pkg/components"
	"github.com/gonewx/spellcore/pkg/ecs"
	"github.com/gonewx/spellcore/pkg/types"
)

func TestTrySpawnComposesDamage(t *testing.T) {
	em, _, spawner := newTestSpawner(t)

	id, result := spawner.TrySpawn("flame_bolt")
	if result != SpawnOK {
		t.Fatalf("Expected spawn ok, got %s", result)
	}

	proj, ok := ecs.GetComponent[*components.ProjectileComponent](em, id)
	if !ok {
		t.Fatal("Spawned entity should have ProjectileComponent")
	}
	// (100 + 20) * 1.5
	if proj.Damage != 180 {
		t.Errorf("Expected damage 180, got %f", proj.Damage)
	}
	if proj.Category != types.CategoryActive || proj.Archetype != "bolt" {
		t.Errorf("Unexpected projectile identity: %+v", proj)
	}
}

func TestTrySpawnCooldown(t *testing.T) {
	_, session, spawner := newTestSpawner(t)

	if _, result := spawner.TrySpawn("flame_bolt"); result != SpawnOK {
		t.Fatalf("First spawn should succeed, got %s", result)
	}
	if _, result := spawner.TrySpawn("flame_bolt"); result != SpawnOnCooldown {
		t.Errorf("Second spawn should be on cooldown, got %s", result)
	}

	session.Update(9.9)
	if _, result := spawner.TrySpawn("flame_bolt"); result != SpawnOnCooldown {
		t.Errorf("Spawn before 10s should be on cooldown, got %s", result)
	}

	session.Update(0.1)
	if _, result := spawner.TrySpawn("flame_bolt"); result != SpawnOK {
		t.Errorf("Spawn after 10s should succeed, got %s", result)
	}
}

func TestRequiredCooldownIsBaseRelative(t *testing.T) {
	_, session, spawner := newTestSpawner(t)
	session.Ledger.AddLevels("flame_bolt", types.RarityEpic)

	// 多次解析都从规范基础冷却 10s 计算：10 * 0.8 = 8，而不是 7.2
	for i := 0; i < 3; i++ {
		if got := spawner.RequiredCooldown("flame_bolt"); got != 8 {
			t.Fatalf("Resolve %d: expected cooldown 8, got %f", i, got)
		}
		spawner.TrySpawn("flame_bolt")
	}
}

func TestTrySpawnUnknownCard(t *testing.T) {
	_, _, spawner := newTestSpawner(t)
	for _, name := range []string{"", "missing"} {
		if id, result := spawner.TrySpawn(name); id != 0 || result != SpawnUnknownCard {
			t.Errorf("TrySpawn(%q) = (%d, %s), want (0, unknown_card)", name, id, result)
		}
	}
}

func TestPassiveVariantBypassesCooldownOnce(t *testing.T) {
	_, session, spawner := newTestSpawner(t)

	if _, result := spawner.TrySpawn("frost_orbital"); result != SpawnOK {
		t.Fatalf("First spawn should succeed, got %s", result)
	}

	session.Ledger.SetEnhancedVariant("frost_orbital", 1)

	if _, result := spawner.TrySpawn("frost_orbital"); result != SpawnOK {
		t.Errorf("Spawn right after selecting a variant should bypass cooldown, got %s", result)
	}
	if _, result := spawner.TrySpawn("frost_orbital"); result != SpawnOnCooldown {
		t.Errorf("Bypass is one-shot, got %s", result)
	}
}

func TestBypassNotRestoredOnManaFailure(t *testing.T) {
	_, session, spawner := newTestSpawner(t)

	spawner.TrySpawn("frost_orbital")
	session.Mana.Spend(session.Mana.Current())
	session.Ledger.SetEnhancedVariant("frost_orbital", 2)

	if _, result := spawner.TrySpawn("frost_orbital"); result != SpawnNoMana {
		t.Fatalf("Expected no_mana, got %s", result)
	}
	if session.Gate.HasBypass("frost_orbital") {
		t.Error("Bypass must stay consumed after a mana failure")
	}

	session.Mana.Refill()
	if _, result := spawner.TrySpawn("frost_orbital"); result != SpawnOnCooldown {
		t.Errorf("Expected on_cooldown once bypass is gone, got %s", result)
	}
}

func TestSpawnPierceComposition(t *testing.T) {
	tests := []struct {
		name     string
		card     string
		variant  int
		expected int
	}{
		{"预制体默认穿透保持不变", "frost_orbital", 0, 2},
		{"修正贡献与默认值相加", "flame_bolt", 1, 1},
		{"无穿透", "flame_bolt", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em, session, spawner := newTestSpawner(t)
			if tt.variant > 0 {
				session.Ledger.SetEnhancedVariant(tt.card, tt.variant)
			}
			id, result := spawner.TrySpawn(tt.card)
			if result != SpawnOK {
				t.Fatalf("Expected spawn ok, got %s", result)
			}
			pierce, _ := ecs.GetComponent[*components.PierceComponent](em, id)
			if pierce.PierceCount != tt.expected {
				t.Errorf("Expected pierce %d, got %d", tt.expected, pierce.PierceCount)
			}
		})
	}
}

func TestPassiveAutoFire(t *testing.T) {
	em, session, spawner := newTestSpawner(t)
	spawner.Equip("frost_orbital")
	spawner.Equip("flame_bolt") // 主动卡不能装备

	if got := spawner.Equipped(); len(got) != 1 || got[0] != "frost_orbital" {
		t.Fatalf("Expected only frost_orbital equipped, got %v", got)
	}

	spawner.Update(session.Update(0.1))
	spawner.Update(session.Update(0.1))
	if n := len(ecs.GetEntitiesWith1[*components.ProjectileComponent](em)); n != 1 {
		t.Errorf("Expected 1 projectile within the cooldown, got %d", n)
	}

	// 暂停期间不发射，也不推进冷却
	session.Clock.SetPaused(true)
	for i := 0; i < 10; i++ {
		spawner.Update(session.Update(1))
	}
	if n := len(ecs.GetEntitiesWith1[*components.ProjectileComponent](em)); n != 1 {
		t.Errorf("Paused frames must not spawn, got %d projectiles", n)
	}

	session.Clock.SetPaused(false)
	spawner.Update(session.Update(5))
	if n := len(ecs.GetEntitiesWith1[*components.ProjectileComponent](em)); n != 2 {
		t.Errorf("Expected a second projectile after the cooldown, got %d", n)
	}

	spawner.Unequip("frost_orbital")
	if len(spawner.Equipped()) != 0 {
		t.Error("Expected nothing equipped")
	}
}
