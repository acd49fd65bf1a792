package systems

import (
	"log"

	"github.com/gonewx/spellcore/pkg/components"
	"github.com/gonewx/spellcore/pkg/ecs"
	"github.com/gonewx/spellcore/pkg/types"
)

// LogOutputFrameInterval 日志输出间隔（每N帧输出一次）
const LogOutputFrameInterval = 100

// HitEvent 碰撞检测报告的一次命中
type HitEvent struct {
	Projectile ecs.EntityID
	Target     ecs.EntityID
}

// StatusApplier 将判定成功的状态效果施加到目标
type StatusApplier interface {
	ApplyStatus(target ecs.EntityID, family types.StatusFamily, projectile *components.ProjectileComponent)
}

// DamageApplier 对目标造成伤害
type DamageApplier interface {
	ApplyDamage(target ecs.EntityID, amount float64, projectile *components.ProjectileComponent)
}

// HitSystem 处理投射物命中
//
// 每次命中：同一目标的重复命中以及尚未激活的多阶段投射物的命中直接忽略；否则按缓存的状态判定结果施加状态、
// 造成伤害，再由穿透账本决定投射物是否销毁。
type HitSystem struct {
	entityManager *ecs.EntityManager
	roller        components.ChanceRoller
	status        StatusApplier
	damage        DamageApplier

	pending []HitEvent

	logFrameCounter int
	hitsThisWindow  int
}

// NewHitSystem 创建命中系统
//
// 参数:
//   - em: 实体管理器
//   - roller: 状态判定器（通常为 game.StatusRoller）
//   - status: 状态施加者（可为 nil）
//   - damage: 伤害施加者（可为 nil）
func NewHitSystem(em *ecs.EntityManager, roller components.ChanceRoller, status StatusApplier, damage DamageApplier) *HitSystem {
	return &HitSystem{
		entityManager: em,
		roller:        roller,
		status:        status,
		damage:        damage,
	}
}

// Enqueue 记录一次命中，在下一次 Update 中处理
func (s *HitSystem) Enqueue(ev HitEvent) {
	s.pending = append(s.pending, ev)
}

// Pending 返回尚未处理的命中数量
func (s *HitSystem) Pending() int {
	return len(s.pending)
}

// Update 按入队顺序处理所有命中
func (s *HitSystem) Update(deltaTime float64) {
	s.logFrameCounter++

	events := s.pending
	s.pending = nil
	for _, ev := range events {
		if s.resolve(ev) {
			s.hitsThisWindow++
		}
	}

	if s.logFrameCounter%LogOutputFrameInterval == 1 && s.hitsThisWindow > 0 {
		log.Printf("[HitSystem] %d hit(s) resolved in the last %d frames", s.hitsThisWindow, LogOutputFrameInterval)
		s.hitsThisWindow = 0
	}
}

// resolve 处理单次命中，返回命中是否生效
func (s *HitSystem) resolve(ev HitEvent) bool {
	em := s.entityManager
	if !em.Exists(ev.Projectile) || em.IsMarkedForDestroy(ev.Projectile) {
		return false
	}

	proj, ok := ecs.GetComponent[*components.ProjectileComponent](em, ev.Projectile)
	if !ok || !CanHit(em, ev.Projectile) {
		return false
	}
	pierce, hasPierce := ecs.GetComponent[*components.PierceComponent](em, ev.Projectile)
	if hasPierce && pierce.HasHitEnemy(ev.Target) {
		return false
	}

	if roll, ok := ecs.GetComponent[*components.StatusRollComponent](em, ev.Projectile); ok && s.roller != nil {
		for _, f := range roll.EnsureAllRolled(s.roller) {
			if s.status != nil {
				s.status.ApplyStatus(ev.Target, f, proj)
			}
		}
	}

	if s.damage != nil {
		s.damage.ApplyDamage(ev.Target, proj.Damage, proj)
	}

	// 没有穿透账本的投射物命中即销毁
	alive := hasPierce && pierce.OnHit(ev.Target)
	if !alive {
		em.DestroyEntity(ev.Projectile)
	}
	return true
}
