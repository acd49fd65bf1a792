package systems

import (
	"github.com/gonewx/spellcore/pkg/components"
	"github.com/gonewx/spellcore/pkg/ecs"
)

// LifetimeSystem 让投射物实例按会话时钟老化，到期后标记删除
//
// 只接受 GameClock 给出的暂停安全增量：暂停帧传入 0，实例不会老化。
// 标记删除的实体在帧末 RemoveMarkedEntities 时才真正移除，
// 同一帧内其他系统仍能读取它们的组件。
type LifetimeSystem struct {
	em *ecs.EntityManager
}

// NewLifetimeSystem 创建生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{em: em}
}

// Update 推进所有实例的存在时间，返回本帧新到期的实例数
//
// MaxLifetime <= 0 的实例没有上限；负增量按 0 处理。
func (s *LifetimeSystem) Update(dt float64) int {
	if dt < 0 {
		dt = 0
	}
	expired := 0
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.em) {
		if s.em.IsMarkedForDestroy(id) {
			continue
		}
		lt, ok := ecs.GetComponent[*components.LifetimeComponent](s.em, id)
		if !ok || lt.MaxLifetime <= 0 {
			continue
		}
		lt.CurrentLifetime += dt
		if !lt.IsExpired && lt.CurrentLifetime < lt.MaxLifetime {
			continue
		}
		lt.IsExpired = true
		s.em.DestroyEntity(id)
		expired++
	}
	return expired
}
