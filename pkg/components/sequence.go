package components

// SequencePhase 多阶段投射物的阶段
type SequencePhase int

const (
	// PhasePending 刚生成，等待布置延迟
	PhasePending SequencePhase = iota
	// PhaseArmed 已布置，下一帧进入激活
	PhaseArmed
	// PhaseActive 激活中，按周期产生 tick
	PhaseActive
	// PhaseEnding 收尾阶段
	PhaseEnding
	// PhaseDone 结束，实体应被销毁
	PhaseDone
)

// String 返回阶段名称
func (p SequencePhase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseArmed:
		return "armed"
	case PhaseActive:
		return "active"
	case PhaseEnding:
		return "ending"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}

// SequenceComponent 地雷、光束等多阶段投射物的状态机
//
// Pending → Armed（布置延迟结束）→ Active（每 TickInterval 产生一次 tick）→ Ending → Done。
// 所有时间都使用暂停安全增量推进，暂停时状态机不前进。
type SequenceComponent struct {
	ArmingDelay    float64
	TickInterval   float64
	ActiveDuration float64
	EndingDuration float64

	Phase      SequencePhase
	PhaseTime  float64 // 当前阶段已经过的时间
	TickTimer  float64 // 距上一次 tick 经过的时间
	TotalTicks int
}

// Advance 推进状态机
//
// 一次推进可能跨越多个阶段；激活阶段内累计的 tick 全部计入返回值。
//
// 返回：
//   - int: 本次推进中产生的 tick 数
func (c *SequenceComponent) Advance(dt float64) int {
	if dt <= 0 || c.Phase == PhaseDone {
		return 0
	}

	ticks := 0
	remaining := dt
	for remaining > 0 && c.Phase != PhaseDone {
		switch c.Phase {
		case PhasePending:
			remaining = c.consume(remaining, c.ArmingDelay, PhaseArmed)
		case PhaseArmed:
			c.Phase = PhaseActive
			c.PhaseTime = 0
			c.TickTimer = 0
		case PhaseActive:
			step := remaining
			if left := c.ActiveDuration - c.PhaseTime; step > left {
				step = left
			}
			ticks += c.tick(step)
			remaining = c.consume(remaining, c.ActiveDuration, PhaseEnding)
		case PhaseEnding:
			remaining = c.consume(remaining, c.EndingDuration, PhaseDone)
		}
	}
	c.TotalTicks += ticks
	return ticks
}

// tick 在激活阶段累计周期时间，返回产生的 tick 数
func (c *SequenceComponent) tick(step float64) int {
	if c.TickInterval <= 0 || step <= 0 {
		return 0
	}
	c.TickTimer += step
	n := 0
	for c.TickTimer >= c.TickInterval {
		c.TickTimer -= c.TickInterval
		n++
	}
	return n
}

// consume 在当前阶段消耗时间，阶段时长用尽时切换到 next 并返回剩余时间
func (c *SequenceComponent) consume(dt, duration float64, next SequencePhase) float64 {
	left := duration - c.PhaseTime
	if dt < left {
		c.PhaseTime += dt
		return 0
	}
	c.Phase = next
	c.PhaseTime = 0
	return dt - left
}

// IsDone 状态机是否已结束
func (c *SequenceComponent) IsDone() bool {
	return c.Phase == PhaseDone
}
