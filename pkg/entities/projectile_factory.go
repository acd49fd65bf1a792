package entities

import (
	"fmt"
	"log"

	"github.com/gonewx/spellcore/pkg/components"
	"github.com/gonewx/spellcore/pkg/config"
	"github.com/gonewx/spellcore/pkg/ecs"
	"github.com/gonewx/spellcore/pkg/types"
)

// ProjectileSpec 创建投射物实例所需的全部数据
// 所有数值都已经按修正值运算约定组合完毕
type ProjectileSpec struct {
	CardName  string
	Category  types.CardCategory
	Archetype string

	Damage          float64
	Speed           float64
	Lifetime        float64
	Size            float64
	ExplosionRadius float64
	DamageRadius    float64
	PullStrength    float64
	Pierce          int

	Status   components.StatusCapabilities
	Sequence *config.SequenceConfig

	SpawnedAt float64
}

// StatusCapabilitiesFromConfig 根据卡片配置的状态几率构造能力集合
//
// 参数：
//   - chances: 卡片配置的基础几率，未配置的状态族不具备能力
//   - specialBonus: 修正值带来的特殊判定几率加成（百分点），仅作用于 special
func StatusCapabilitiesFromConfig(chances config.StatusChances, specialBonus float64) components.StatusCapabilities {
	var caps components.StatusCapabilities
	for _, f := range types.AllStatusFamilies {
		base, ok := chances.Chance(f)
		if !ok {
			continue
		}
		capability := &components.StatusCapability{BaseChance: base}
		switch f {
		case types.StatusBurn:
			caps.Burn = capability
		case types.StatusSlow:
			caps.Slow = capability
		case types.StatusStatic:
			caps.Static = capability
		case types.StatusSpecial:
			capability.BaseChance += specialBonus
			caps.Special = capability
		}
	}
	return caps
}

// NewProjectile 创建投射物实体
//
// 每个实例都挂载 ProjectileComponent、PierceComponent 和 StatusRollComponent；
// Lifetime > 0 时挂载 LifetimeComponent，配置了时序的卡片挂载 SequenceComponent。
//
// 参数：
//   - em: 实体管理器
//   - p: 投射物数据
//
// 返回：
//   - ecs.EntityID: 创建的实体ID，失败返回 0
//   - error: 如果创建失败返回错误信息
func NewProjectile(em *ecs.EntityManager, p ProjectileSpec) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.ProjectileComponent{
		CardName:        p.CardName,
		Category:        p.Category,
		Archetype:       p.Archetype,
		Damage:          p.Damage,
		Speed:           p.Speed,
		Size:            p.Size,
		ExplosionRadius: p.ExplosionRadius,
		DamageRadius:    p.DamageRadius,
		PullStrength:    p.PullStrength,
		SpawnedAt:       p.SpawnedAt,
	})
	ecs.AddComponent(em, id, components.NewPierceComponent(p.Pierce))
	ecs.AddComponent(em, id, components.NewStatusRollComponent(p.Status, p.Category))

	if p.Lifetime > 0 {
		ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: p.Lifetime})
	}

	if seq := p.Sequence; seq != nil {
		ecs.AddComponent(em, id, &components.SequenceComponent{
			ArmingDelay:    seq.ArmingDelay,
			TickInterval:   seq.TickInterval,
			ActiveDuration: seq.ActiveDuration,
			EndingDuration: seq.EndingDuration,
		})
	}

	log.Printf("[ProjectileFactory] 创建投射物 %d: card=%s archetype=%s damage=%.1f pierce=%d status=%d",
		id, p.CardName, p.Archetype, p.Damage, p.Pierce, p.Status.Count())

	return id, nil
}
