package game

import (
	"log"
	"sync"
)

// CooldownGate 按投射物族（而非实例）记录最后发射时间的冷却门
//
// 另外为每张卡片保存一个一次性的跳过标记：被动卡刚选择强化变体后，
// 下一次发射可以完全跳过冷却检查（仍记录发射时间）。标记在被消费时立即清除，
// 即使这次发射随后因法力不足等原因失败也不会恢复。
//
// 并发：跳过标记由账本在选择变体时写入，可能与生成系统不在同一 goroutine，
// 所有方法都持有内部互斥锁。
type CooldownGate struct {
	mu       sync.Mutex
	lastFire map[string]float64
	bypass   map[string]bool
}

// NewCooldownGate 创建冷却门
func NewCooldownGate() *CooldownGate {
	return &CooldownGate{
		lastFire: make(map[string]float64),
		bypass:   make(map[string]bool),
	}
}

// readyLocked 调用方必须持有锁
func (g *CooldownGate) readyLocked(archetype string, now, requiredCooldown float64) bool {
	last, ok := g.lastFire[archetype]
	if !ok {
		return true
	}
	return now-last >= requiredCooldown
}

// Ready 检查投射物族是否已冷却完毕（不记录）
// 从未发射过的族总是就绪
func (g *CooldownGate) Ready(archetype string, now, requiredCooldown float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.readyLocked(archetype, now, requiredCooldown)
}

// Record 记录投射物族的发射时间
func (g *CooldownGate) Record(archetype string, now float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastFire[archetype] = now
}

// TryFire 冷却完毕时记录发射时间并返回 true，否则返回 false（调用方必须放弃生成）
func (g *CooldownGate) TryFire(archetype string, now, requiredCooldown float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.readyLocked(archetype, now, requiredCooldown) {
		return false
	}
	g.lastFire[archetype] = now
	return true
}

// LastFire 返回投射物族的最后发射时间
func (g *CooldownGate) LastFire(archetype string) (float64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	t, ok := g.lastFire[archetype]
	return t, ok
}

// ArmBypass 为卡片设置一次性跳过标记，实现 BypassArmer
func (g *CooldownGate) ArmBypass(card string) {
	if card == "" {
		return
	}
	g.mu.Lock()
	g.bypass[card] = true
	g.mu.Unlock()
	log.Printf("[CooldownGate] Bypass armed for %s", card)
}

// HasBypass 卡片是否持有未消费的跳过标记
func (g *CooldownGate) HasBypass(card string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bypass[card]
}

// consumeBypassLocked 调用方必须持有锁
func (g *CooldownGate) consumeBypassLocked(card string) bool {
	if !g.bypass[card] {
		return false
	}
	delete(g.bypass, card)
	return true
}

// ConsumeBypass 消费卡片的跳过标记
// 返回消费前是否持有标记；无论之后的发射是否成功，标记都不会恢复
func (g *CooldownGate) ConsumeBypass(card string) bool {
	g.mu.Lock()
	consumed := g.consumeBypassLocked(card)
	g.mu.Unlock()
	if consumed {
		log.Printf("[CooldownGate] Bypass consumed for %s", card)
	}
	return consumed
}

// TryFireCard 带跳过标记的发射检查
//
// 返回：
//   - fired: 是否允许发射（允许时已记录发射时间）
//   - bypassed: 本次是否消费了跳过标记
func (g *CooldownGate) TryFireCard(card, archetype string, now, requiredCooldown float64) (fired, bypassed bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.consumeBypassLocked(card) {
		g.lastFire[archetype] = now
		return true, true
	}
	if !g.readyLocked(archetype, now, requiredCooldown) {
		return false, false
	}
	g.lastFire[archetype] = now
	return true, false
}

// Reset 清空所有发射记录与跳过标记
func (g *CooldownGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastFire = make(map[string]float64)
	g.bypass = make(map[string]bool)
}
