package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gonewx/spellcore/pkg/types"
)

const testCatalogYAML = `
cards:
  flame_bolt:
    category: active
    archetype: bolt
    baseRarity: common
    damage: 12
    spawnInterval: 0.8
    manaCost: 4
    status:
      burn: 20
    modifiers:
      common:
        damageFlat: 2
      rare:
        damageMultiplier: 1.2
    variants:
      1:
        pierceCount: 1
  aegis_shield:
    category: passive
    variantMode: bitmask
    spawnInterval: 8
`

func TestLoadCardCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.yaml")
	if err := os.WriteFile(path, []byte(testCatalogYAML), 0644); err != nil {
		t.Fatalf("Failed to write test catalog: %v", err)
	}

	catalog, err := LoadCardCatalog(path)
	if err != nil {
		t.Fatalf("LoadCardCatalog failed: %v", err)
	}

	t.Run("主动卡解析", func(t *testing.T) {
		bolt, ok := catalog.Get("flame_bolt")
		if !ok {
			t.Fatal("flame_bolt not found")
		}
		if bolt.Name != "flame_bolt" {
			t.Errorf("Expected Name filled in, got %q", bolt.Name)
		}
		if bolt.Category != types.CategoryActive {
			t.Errorf("Expected Active, got %v", bolt.Category)
		}
		if bolt.IsBitmask() {
			t.Error("flame_bolt should default to single variant mode")
		}
		if bolt.Size != 1 {
			t.Errorf("Expected default size 1, got %f", bolt.Size)
		}
		if chance, ok := bolt.Status.Chance(types.StatusBurn); !ok || chance != 20 {
			t.Errorf("Expected burn chance 20, got %f (ok=%v)", chance, ok)
		}
		if _, ok := bolt.Status.Chance(types.StatusSlow); ok {
			t.Error("flame_bolt should not have slow capability")
		}
	})

	t.Run("被动位掩码卡解析", func(t *testing.T) {
		shield, ok := catalog.Get("aegis_shield")
		if !ok {
			t.Fatal("aegis_shield not found")
		}
		if shield.Category != types.CategoryPassive {
			t.Errorf("Expected Passive, got %v", shield.Category)
		}
		if !shield.IsBitmask() {
			t.Error("aegis_shield should use bitmask variant mode")
		}
		// 未配置 archetype 时使用卡片名
		if shield.Archetype != "aegis_shield" {
			t.Errorf("Expected archetype fallback to name, got %q", shield.Archetype)
		}
	})

	t.Run("空名称与未知卡片", func(t *testing.T) {
		if _, ok := catalog.Get(""); ok {
			t.Error("Empty name should not resolve")
		}
		if _, ok := catalog.Get("unknown"); ok {
			t.Error("Unknown card should not resolve")
		}
		var nilCatalog *CardCatalog
		if _, ok := nilCatalog.Get("flame_bolt"); ok {
			t.Error("Nil catalog should not resolve")
		}
	})

	t.Run("名称排序", func(t *testing.T) {
		names := catalog.Names()
		if len(names) != 2 || names[0] != "aegis_shield" || names[1] != "flame_bolt" {
			t.Errorf("Unexpected names: %v", names)
		}
	})
}

func TestModifierPoolFallback(t *testing.T) {
	catalog, err := ParseCardCatalog([]byte(testCatalogYAML))
	if err != nil {
		t.Fatalf("ParseCardCatalog failed: %v", err)
	}
	bolt, _ := catalog.Get("flame_bolt")

	// 史诗未配置，向下回退到稀有
	set, ok := bolt.ModifierPool(types.RarityEpic)
	if !ok || set.DamageMultiplier != 1.2 {
		t.Errorf("Expected fallback to rare pool, got %+v (ok=%v)", set, ok)
	}

	set, ok = bolt.ModifierPool(types.RarityCommon)
	if !ok || set.DamageFlat != 2 {
		t.Errorf("Expected common pool, got %+v (ok=%v)", set, ok)
	}

	shield, _ := catalog.Get("aegis_shield")
	if _, ok := shield.ModifierPool(types.RarityMythic); ok {
		t.Error("aegis_shield has no modifier pools")
	}
}

func TestCardCatalogValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"空目录", "cards: {}\n"},
		{"未知类别", "cards:\n  a:\n    category: toggle\n"},
		{"未知变体模式", "cards:\n  a:\n    category: active\n    variantMode: stack\n"},
		{"变体编号越界", "cards:\n  a:\n    category: active\n    variants:\n      4:\n        damageFlat: 1\n"},
		{"未知稀有度修正池", "cards:\n  a:\n    category: active\n    modifiers:\n      shiny:\n        damageFlat: 1\n"},
		{"几率越界", "cards:\n  a:\n    category: active\n    status:\n      burn: 120\n"},
		{"负穿透", "cards:\n  a:\n    category: active\n    pierce: -1\n"},
		{"负时序", "cards:\n  a:\n    category: passive\n    sequence:\n      armingDelay: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCardCatalog([]byte(tt.content)); err == nil {
				t.Errorf("Expected validation error for:\n%s", tt.content)
			}
		})
	}
}

func TestShippedDataFiles(t *testing.T) {
	// 验证仓库内置的 data/ 配置可被正确加载
	catalog, err := LoadCardCatalog(filepath.Join("..", "..", "data", "cards.yaml"))
	if err != nil {
		t.Fatalf("Shipped cards.yaml failed to load: %v", err)
	}
	if len(catalog.Cards) == 0 {
		t.Error("Shipped catalog should not be empty")
	}

	cfg, err := LoadProgressionConfig(filepath.Join("..", "..", "data", "progression.yaml"))
	if err != nil {
		t.Fatalf("Shipped progression.yaml failed to load: %v", err)
	}
	if cfg.TierThreshold != 10 {
		t.Errorf("Expected shipped tierThreshold 10, got %d", cfg.TierThreshold)
	}
}
