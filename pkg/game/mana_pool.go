package game

// ManaPool 施放投射物消耗的法力资源
type ManaPool struct {
	current float64
	max     float64
	regen   float64 // 每秒回复量
}

// NewManaPool 创建法力池
func NewManaPool(starting, maxMana, regenPerSecond float64) *ManaPool {
	if maxMana < starting {
		maxMana = starting
	}
	return &ManaPool{
		current: starting,
		max:     maxMana,
		regen:   regenPerSecond,
	}
}

// Spend 扣除法力，如果法力不足返回 false
// 只有当法力充足时才会扣除
func (p *ManaPool) Spend(amount float64) bool {
	if p.current < amount {
		return false
	}
	p.current -= amount
	return true
}

// Add 增加法力，带上限检查
func (p *ManaPool) Add(amount float64) {
	p.current += amount
	if p.current > p.max {
		p.current = p.max
	}
	if p.current < 0 {
		p.current = 0
	}
}

// Regenerate 按暂停安全增量回复法力
func (p *ManaPool) Regenerate(dt float64) {
	if dt <= 0 || p.regen <= 0 {
		return
	}
	p.Add(p.regen * dt)
}

// Current 返回当前法力
func (p *ManaPool) Current() float64 {
	return p.current
}

// Max 返回法力上限
func (p *ManaPool) Max() float64 {
	return p.max
}

// Refill 回满法力
func (p *ManaPool) Refill() {
	p.current = p.max
}
