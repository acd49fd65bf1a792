package components

import "github.com/gonewx/spellcore/pkg/ecs"

// PierceComponent 单个投射物实例的穿透账本
//
// PierceCount 表示在第一个目标之外还能穿过的目标数：
// 穿透数为 1 时可以命中两个不同目标，第二次命中后投射物销毁。
type PierceComponent struct {
	PierceCount int
	HitCounter  int

	hitTargets map[ecs.EntityID]bool
}

// NewPierceComponent 创建穿透组件
func NewPierceComponent(pierceCount int) *PierceComponent {
	if pierceCount < 0 {
		pierceCount = 0
	}
	return &PierceComponent{
		PierceCount: pierceCount,
		hitTargets:  make(map[ecs.EntityID]bool),
	}
}

// OnHit 记录一次命中
//
// 同一目标的重复命中不计数，也不会导致销毁。
//
// 返回：
//   - bool: 投射物是否应继续存在（false 表示调用方应销毁它）
func (c *PierceComponent) OnHit(target ecs.EntityID) bool {
	if c.hitTargets == nil {
		c.hitTargets = make(map[ecs.EntityID]bool)
	}
	if c.hitTargets[target] {
		return true
	}
	c.hitTargets[target] = true
	c.HitCounter++
	return c.HitCounter <= c.PierceCount
}

// HasHitEnemy 是否已经命中过该目标
func (c *PierceComponent) HasHitEnemy(target ecs.EntityID) bool {
	return c.hitTargets[target]
}

// GetRemainingPierces 返回剩余穿透数，最小为 0
func (c *PierceComponent) GetRemainingPierces() int {
	return max(0, c.PierceCount-c.HitCounter)
}

// SetMaxPierces 设置穿透数（负数按 0 处理）
func (c *PierceComponent) SetMaxPierces(n int) {
	c.PierceCount = max(0, n)
}
