package game

import (
	"testing"

	"github.com/gonewx/spellcore/pkg/config"
)

// sequenceRandom 按固定序列返回随机数，并记录被调用次数
type sequenceRandom struct {
	values []float64
	calls  int
}

func (r *sequenceRandom) Float64() float64 {
	v := r.values[r.calls%len(r.values)]
	r.calls++
	return v
}

const testCatalogYAML = `
cards:
  flame_bolt:
    category: active
    archetype: bolt
    baseRarity: common
    damage: 100
    spawnInterval: 10
    manaCost: 5
    status:
      burn: 20
    modifiers:
      common:
        damageFlat: 20
        damageMultiplier: 1.5
      rare:
        damageFlat: 20
        damageMultiplier: 1.5
        cooldownReductionPercent: 10
      epic:
        cooldownReductionPercent: 20
    variants:
      1:
        pierceCount: 1
      2:
        damageMultiplier: 2
      3:
        damageFlat: 5
  frost_orbital:
    category: passive
    archetype: orbital
    spawnInterval: 5
    manaCost: 10
    pierce: 2
  aegis_shield:
    category: passive
    variantMode: bitmask
    spawnInterval: 8
    variants:
      1:
        lifetimeIncrease: 1
      2:
        sizeMultiplier: 1.5
      3:
        lifetimeIncrease: 2
`

// newTestCatalog 解析测试用卡片目录
func newTestCatalog(t *testing.T) *config.CardCatalog {
	t.Helper()
	catalog, err := config.ParseCardCatalog([]byte(testCatalogYAML))
	if err != nil {
		t.Fatalf("Failed to parse test catalog: %v", err)
	}
	return catalog
}

// newTestLedger 创建阶位阈值为 10 的测试账本
func newTestLedger(t *testing.T) *CardProgressionLedger {
	t.Helper()
	return NewCardProgressionLedger(config.DefaultProgressionConfig(), newTestCatalog(t))
}
