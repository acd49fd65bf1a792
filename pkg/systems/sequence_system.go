package systems

import (
	"log"

	"github.com/gonewx/spellcore/pkg/components"
	"github.com/gonewx/spellcore/pkg/ecs"
)

// SequenceTickHandler 处理多阶段投射物在激活期间产生的周期事件
type SequenceTickHandler interface {
	OnSequenceTick(projectile ecs.EntityID, ticks int)
}

// SequenceSystem 推进地雷、光束等多阶段投射物的状态机
// 状态机结束（Done）时标记实体待删除
type SequenceSystem struct {
	entityManager *ecs.EntityManager
	handler       SequenceTickHandler
}

// NewSequenceSystem 创建多阶段投射物系统
//
// 参数:
//   - em: 实体管理器
//   - handler: tick 事件处理者（可为 nil）
func NewSequenceSystem(em *ecs.EntityManager, handler SequenceTickHandler) *SequenceSystem {
	return &SequenceSystem{
		entityManager: em,
		handler:       handler,
	}
}

// Update 使用暂停安全增量推进所有状态机
func (s *SequenceSystem) Update(deltaTime float64) {
	if deltaTime <= 0 {
		return
	}

	entities := ecs.GetEntitiesWith1[*components.SequenceComponent](s.entityManager)
	for _, id := range entities {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		seq, ok := ecs.GetComponent[*components.SequenceComponent](s.entityManager, id)
		if !ok {
			continue
		}

		before := seq.Phase
		ticks := seq.Advance(deltaTime)
		if ticks > 0 && s.handler != nil {
			s.handler.OnSequenceTick(id, ticks)
		}
		if seq.Phase != before {
			log.Printf("[SequenceSystem] 实体 %d: %s -> %s", id, before, seq.Phase)
		}
		if seq.IsDone() {
			s.entityManager.DestroyEntity(id)
		}
	}
}

// CanHit 投射物当前是否可以命中目标
// 没有时序的投射物总是可以；地雷、光束等只在激活阶段可以命中
func CanHit(em *ecs.EntityManager, projectile ecs.EntityID) bool {
	seq, ok := ecs.GetComponent[*components.SequenceComponent](em, projectile)
	if !ok {
		return true
	}
	return seq.Phase == components.PhaseActive
}
