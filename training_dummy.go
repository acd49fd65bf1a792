package main

import (
	"log"

	"github.com/gonewx/spellcore/pkg/components"
	"github.com/gonewx/spellcore/pkg/ecs"
	"github.com/gonewx/spellcore/pkg/systems"
	"github.com/gonewx/spellcore/pkg/types"
)

// hitDelay 投射物生成后多久抵达训练假人（秒）
const hitDelay = 0.3

// trainingDummies 调试场景中的一排训练假人
// 代替碰撞检测：投射物飞行 hitDelay 秒后依次命中每个假人，穿透账本决定能穿过几个
type trainingDummies struct {
	em       *ecs.EntityManager
	ids      []ecs.EntityID
	damage   map[ecs.EntityID]float64
	statuses map[ecs.EntityID][types.StatusFamilyCount]int
}

func newTrainingDummies(em *ecs.EntityManager, count int) *trainingDummies {
	d := &trainingDummies{
		em:       em,
		damage:   make(map[ecs.EntityID]float64),
		statuses: make(map[ecs.EntityID][types.StatusFamilyCount]int),
	}
	for i := 0; i < count; i++ {
		d.ids = append(d.ids, em.CreateEntity())
	}
	return d
}

// ApplyDamage 实现 systems.DamageApplier
func (d *trainingDummies) ApplyDamage(target ecs.EntityID, amount float64, projectile *components.ProjectileComponent) {
	d.damage[target] += amount
}

// ApplyStatus 实现 systems.StatusApplier
func (d *trainingDummies) ApplyStatus(target ecs.EntityID, family types.StatusFamily, projectile *components.ProjectileComponent) {
	counts := d.statuses[target]
	counts[family]++
	d.statuses[target] = counts
	log.Printf("[TrainingDummy] %d <- %s from %s", target, family, projectile.CardName)
}

// OnSequenceTick 实现 systems.SequenceTickHandler
// 激活中的地雷、光束每个 tick 对所有假人造成一次投射物伤害
func (d *trainingDummies) OnSequenceTick(projectile ecs.EntityID, ticks int) {
	proj, ok := ecs.GetComponent[*components.ProjectileComponent](d.em, projectile)
	if !ok {
		return
	}
	for _, target := range d.ids {
		d.ApplyDamage(target, proj.Damage*float64(ticks), proj)
	}
}

// collide 为到达假人位置的投射物排队命中
// 尚未激活的多阶段投射物不参与碰撞
// 重复命中同一假人由穿透账本忽略
func (d *trainingDummies) collide(hits *systems.HitSystem, now float64) {
	em := d.em
	for _, id := range ecs.GetEntitiesWith1[*components.ProjectileComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		proj, ok := ecs.GetComponent[*components.ProjectileComponent](em, id)
		if !ok || now-proj.SpawnedAt < hitDelay || !systems.CanHit(em, id) {
			continue
		}
		for _, target := range d.ids {
			hits.Enqueue(systems.HitEvent{Projectile: id, Target: target})
		}
	}
}

// reset 清空统计（新游戏）
func (d *trainingDummies) reset() {
	d.damage = make(map[ecs.EntityID]float64)
	d.statuses = make(map[ecs.EntityID][types.StatusFamilyCount]int)
}
