package systems

import (
	"log"
	"sort"

	"github.com/gonewx/spellcore/pkg/config"
	"github.com/gonewx/spellcore/pkg/ecs"
	"github.com/gonewx/spellcore/pkg/entities"
	"github.com/gonewx/spellcore/pkg/game"
	"github.com/gonewx/spellcore/pkg/types"
)

// SpawnResult 一次生成尝试的结果
type SpawnResult int

const (
	// SpawnOK 生成成功
	SpawnOK SpawnResult = iota
	// SpawnUnknownCard 卡片不在目录中
	SpawnUnknownCard
	// SpawnOnCooldown 投射物族仍在冷却
	SpawnOnCooldown
	// SpawnNoMana 法力不足
	SpawnNoMana
	// SpawnFailed 实体创建失败
	SpawnFailed
)

// String 返回结果名称
func (r SpawnResult) String() string {
	switch r {
	case SpawnOK:
		return "ok"
	case SpawnUnknownCard:
		return "unknown_card"
	case SpawnOnCooldown:
		return "on_cooldown"
	case SpawnNoMana:
		return "no_mana"
	case SpawnFailed:
		return "failed"
	}
	return "unknown"
}

// ProjectileSpawnSystem 卡片投射物生成管线
//
// 生成顺序：
//  1. 解析修正值（卡片修正 + 强化加成，在副本上组合）
//  2. 消费一次性跳过标记；未持有标记时检查冷却门（冷却基于规范基础冷却计算）
//  3. 扣除法力，失败则放弃（已消费的跳过标记不恢复）
//  4. 记录发射时间并创建实体
//
// 主动卡由外部输入调用 TrySpawn；已装备的被动卡在 Update 中自动发射。
type ProjectileSpawnSystem struct {
	entityManager *ecs.EntityManager
	session       *game.Session

	equipped map[string]bool

	logFrameCounter int
}

// NewProjectileSpawnSystem 创建投射物生成系统
func NewProjectileSpawnSystem(em *ecs.EntityManager, session *game.Session) *ProjectileSpawnSystem {
	return &ProjectileSpawnSystem{
		entityManager: em,
		session:       session,
		equipped:      make(map[string]bool),
	}
}

// Equip 装备被动卡，之后每帧在冷却允许时自动发射
func (s *ProjectileSpawnSystem) Equip(card string) {
	cc, ok := s.session.Catalog.Get(card)
	if !ok {
		log.Printf("[ProjectileSpawnSystem] Cannot equip unknown card %q", card)
		return
	}
	if cc.Category != types.CategoryPassive {
		log.Printf("[ProjectileSpawnSystem] %s is not a passive card, ignoring equip", card)
		return
	}
	s.equipped[card] = true
}

// Unequip 卸下被动卡
func (s *ProjectileSpawnSystem) Unequip(card string) {
	delete(s.equipped, card)
}

// Equipped 返回已装备的被动卡（按字母顺序排序）
func (s *ProjectileSpawnSystem) Equipped() []string {
	names := make([]string, 0, len(s.equipped))
	for name := range s.equipped {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RequiredCooldown 返回卡片当前所需冷却
// 始终从卡片配置的规范基础冷却计算，不会复利叠加
func (s *ProjectileSpawnSystem) RequiredCooldown(card string) float64 {
	cc, ok := s.session.Catalog.Get(card)
	if !ok {
		return 0
	}
	stats := s.session.Resolver.ResolveWithEnhancements(card)
	return game.ReduceCooldown(cc.SpawnInterval, stats.CooldownReductionPercent, s.session.Config.MinCooldown)
}

// TrySpawn 尝试为卡片生成一个投射物
//
// 返回：
//   - ecs.EntityID: 生成的实体（失败时为 0）
//   - SpawnResult: 生成结果
func (s *ProjectileSpawnSystem) TrySpawn(card string) (ecs.EntityID, SpawnResult) {
	cc, ok := s.session.Catalog.Get(card)
	if !ok {
		return 0, SpawnUnknownCard
	}

	stats := s.session.Resolver.ResolveWithEnhancements(card)
	now := s.session.Clock.Now()
	cooldown := game.ReduceCooldown(cc.SpawnInterval, stats.CooldownReductionPercent, s.session.Config.MinCooldown)

	bypassed := s.session.Gate.ConsumeBypass(card)
	if !bypassed && !s.session.Gate.Ready(cc.Archetype, now, cooldown) {
		return 0, SpawnOnCooldown
	}

	cost := manaCost(cc, stats)
	if !s.session.Mana.Spend(cost) {
		log.Printf("[ProjectileSpawnSystem] %s: not enough mana (need %.0f, have %.1f)", card, cost, s.session.Mana.Current())
		return 0, SpawnNoMana
	}
	s.session.Gate.Record(cc.Archetype, now)

	id, err := entities.NewProjectile(s.entityManager, buildSpec(cc, stats, now))
	if err != nil {
		log.Printf("[ProjectileSpawnSystem] %s: failed to create projectile: %v", card, err)
		return 0, SpawnFailed
	}

	if bypassed {
		log.Printf("[ProjectileSpawnSystem] %s fired with cooldown bypass (entity %d)", card, id)
	}
	return id, SpawnOK
}

// Update 自动发射已装备的被动卡
func (s *ProjectileSpawnSystem) Update(deltaTime float64) {
	if s.session.Clock.IsPaused() {
		return
	}

	s.logFrameCounter++
	spawned := 0
	for _, card := range s.Equipped() {
		if _, result := s.TrySpawn(card); result == SpawnOK {
			spawned++
		}
	}

	if spawned > 0 && s.logFrameCounter%LogOutputFrameInterval == 1 {
		log.Printf("[ProjectileSpawnSystem] t=%.2f spawned %d passive projectile(s), mana=%.1f",
			s.session.Clock.Now(), spawned, s.session.Mana.Current())
	}
}

// manaCost 计算法力消耗，基础消耗为 0 的卡片免费
func manaCost(cc *config.CardConfig, stats game.ModifierStats) float64 {
	if cc.ManaCost <= 0 {
		return 0
	}
	return game.ReduceManaCost(cc.ManaCost, stats.ManaCostReduction)
}

// buildSpec 按修正值运算约定组合卡片基础值与修正值
func buildSpec(cc *config.CardConfig, stats game.ModifierStats, now float64) entities.ProjectileSpec {
	explosion := game.ApplyAdditive(cc.ExplosionRadius, stats.ExplosionRadiusBonus)
	return entities.ProjectileSpec{
		CardName:        cc.Name,
		Category:        cc.Category,
		Archetype:       cc.Archetype,
		Damage:          game.ComposeDamage(cc.Damage, stats.DamageFlat, stats.DamageMultiplier),
		Speed:           game.ApplyAdditive(cc.Speed, stats.SpeedIncrease),
		Lifetime:        game.ApplyAdditive(cc.Lifetime, stats.LifetimeIncrease),
		Size:            game.ApplyMultiplicative(cc.Size, stats.SizeMultiplier),
		ExplosionRadius: game.ApplyMultiplicative(explosion, stats.ExplosionRadiusMultiplier),
		DamageRadius:    game.ApplyAdditive(cc.DamageRadius, stats.DamageRadiusIncrease),
		PullStrength:    game.ApplyAdditive(cc.PullStrength, stats.PullStrengthMultiplier),
		Pierce:          game.ComposePierce(cc.Pierce, stats.PierceCount),
		Status:          entities.StatusCapabilitiesFromConfig(cc.Status, stats.SpecialChanceBonusPercent),
		Sequence:        cc.Sequence,
		SpawnedAt:       now,
	}
}
