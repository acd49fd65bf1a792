package game

// PauseClock 暂停安全时钟
//
// 本核心中所有冷却与状态窗口的时间比较都以它为准：游戏暂停期间不前进，
// 冷却不会在暂停时悄悄走完。由帧循环每帧调用 Advance 驱动。
type PauseClock struct {
	now    float64
	delta  float64
	paused bool
}

// NewPauseClock 创建从 0 开始的时钟
func NewPauseClock() *PauseClock {
	return &PauseClock{}
}

// Advance 推进一帧
// 暂停中或 dt <= 0 时本帧增量为 0
//
// 返回：
//   - float64: 本帧实际生效的增量（秒）
func (c *PauseClock) Advance(dt float64) float64 {
	if c.paused || dt <= 0 {
		c.delta = 0
		return 0
	}
	c.delta = dt
	c.now += dt
	return dt
}

// Now 返回当前暂停安全时间（秒）
func (c *PauseClock) Now() float64 {
	return c.now
}

// Delta 返回最近一帧的暂停安全增量（秒）
func (c *PauseClock) Delta() float64 {
	return c.delta
}

// SetPaused 设置暂停状态
func (c *PauseClock) SetPaused(paused bool) {
	c.paused = paused
	if paused {
		c.delta = 0
	}
}

// TogglePause 切换暂停状态并返回切换后的状态
func (c *PauseClock) TogglePause() bool {
	c.SetPaused(!c.paused)
	return c.paused
}

// IsPaused 是否处于暂停
func (c *PauseClock) IsPaused() bool {
	return c.paused
}

// Reset 归零（新游戏）
func (c *PauseClock) Reset() {
	c.now = 0
	c.delta = 0
	c.paused = false
}
