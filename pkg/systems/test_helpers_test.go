package systems

import (
	"testing"

	"github.com/gonewx/spellcore/pkg/config"
	"github.com/gonewx/spellcore/pkg/ecs"
	"github.com/gonewx/spellcore/pkg/game"
)

// fixedRandom 按固定序列返回随机数
type fixedRandom struct {
	values []float64
	calls  int
}

func (r *fixedRandom) Float64() float64 {
	v := r.values[r.calls%len(r.values)]
	r.calls++
	return v
}

const systemsTestCatalogYAML = `
cards:
  flame_bolt:
    category: active
    archetype: bolt
    damage: 100
    lifetime: 2
    spawnInterval: 10
    manaCost: 5
    status:
      burn: 30
    modifiers:
      common:
        damageFlat: 20
        damageMultiplier: 1.5
      epic:
        damageFlat: 20
        damageMultiplier: 1.5
        cooldownReductionPercent: 20
    variants:
      1:
        pierceCount: 1
      2:
        damageFlat: 10
  frost_orbital:
    category: passive
    archetype: orbital
    spawnInterval: 5
    manaCost: 10
    pierce: 2
    status:
      slow: 50
  storm_mine:
    category: passive
    archetype: mine
    spawnInterval: 3
    sequence:
      armingDelay: 0.5
      tickInterval: 0.5
      activeDuration: 1
      endingDuration: 0.5
`

// newTestSession 创建使用测试目录的会话
func newTestSession(t *testing.T, rng game.RandomSource) *game.Session {
	t.Helper()
	catalog, err := config.ParseCardCatalog([]byte(systemsTestCatalogYAML))
	if err != nil {
		t.Fatalf("Failed to parse test catalog: %v", err)
	}
	if rng == nil {
		rng = &fixedRandom{values: []float64{0.5}}
	}
	return game.NewSession(config.DefaultProgressionConfig(), catalog, rng)
}

// newTestSpawner 创建实体管理器、会话和生成系统
func newTestSpawner(t *testing.T) (*ecs.EntityManager, *game.Session, *ProjectileSpawnSystem) {
	t.Helper()
	em := ecs.NewEntityManager()
	session := newTestSession(t, nil)
	return em, session, NewProjectileSpawnSystem(em, session)
}
