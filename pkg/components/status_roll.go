package components

import "github.com/gonewx/spellcore/pkg/types"

// ChanceRoller 执行一次状态几率判定
// 由 game.StatusRoller 实现，组件只负责缓存结果
type ChanceRoller interface {
	Roll(family types.StatusFamily, baseChance float64, source types.CardCategory) bool
}

// StatusCapability 投射物对某个状态族的能力
type StatusCapability struct {
	BaseChance float64 // 基础触发几率（百分比，已包含卡片修正带来的加成）
}

// StatusCapabilities 投射物具备的状态能力
// 字段为 nil 表示不具备该能力，判定时直接跳过（不判定、不报告）
type StatusCapabilities struct {
	Burn    *StatusCapability
	Slow    *StatusCapability
	Static  *StatusCapability
	Special *StatusCapability
}

// Get 返回指定状态族的能力
func (c StatusCapabilities) Get(family types.StatusFamily) *StatusCapability {
	switch family {
	case types.StatusBurn:
		return c.Burn
	case types.StatusSlow:
		return c.Slow
	case types.StatusStatic:
		return c.Static
	case types.StatusSpecial:
		return c.Special
	}
	return nil
}

// Count 返回已配置的能力数量
func (c StatusCapabilities) Count() int {
	n := 0
	for _, f := range types.AllStatusFamilies {
		if c.Get(f) != nil {
			n++
		}
	}
	return n
}

// StatusRollComponent 单个投射物实例的状态判定缓存
//
// 每个状态族在实例生命周期内最多判定一次：首次命中时判定并缓存，
// 之后的命中（包括穿透后的命中）复用缓存结果，不再消耗随机数。
type StatusRollComponent struct {
	Capabilities StatusCapabilities
	Source       types.CardCategory // 所属卡片类别，主动卡获得额外几率

	rolled    [types.StatusFamilyCount]bool
	willApply [types.StatusFamilyCount]bool
}

// NewStatusRollComponent 创建状态判定组件
func NewStatusRollComponent(caps StatusCapabilities, source types.CardCategory) *StatusRollComponent {
	return &StatusRollComponent{
		Capabilities: caps,
		Source:       source,
	}
}

// EnsureRolled 确保指定状态族已判定
//
// 返回：
//   - willApply: 缓存的判定结果
//   - ok: 投射物是否具备该能力；不具备时不判定，willApply 恒为 false
func (c *StatusRollComponent) EnsureRolled(family types.StatusFamily, roller ChanceRoller) (willApply, ok bool) {
	capability := c.Capabilities.Get(family)
	if capability == nil {
		return false, false
	}
	if !c.rolled[family] {
		c.willApply[family] = roller.Roll(family, capability.BaseChance, c.Source)
		c.rolled[family] = true
	}
	return c.willApply[family], true
}

// EnsureAllRolled 对所有具备的状态族执行 EnsureRolled
// 返回本次命中应施加的状态族（按 burn, slow, static, special 顺序）
func (c *StatusRollComponent) EnsureAllRolled(roller ChanceRoller) []types.StatusFamily {
	var apply []types.StatusFamily
	for _, f := range types.AllStatusFamilies {
		if will, ok := c.EnsureRolled(f, roller); ok && will {
			apply = append(apply, f)
		}
	}
	return apply
}

// IsRolled 状态族是否已经判定过
func (c *StatusRollComponent) IsRolled(family types.StatusFamily) bool {
	if int(family) < 0 || int(family) >= types.StatusFamilyCount {
		return false
	}
	return c.rolled[family]
}

// WillApply 返回缓存的判定结果，未判定时返回 false
func (c *StatusRollComponent) WillApply(family types.StatusFamily) bool {
	if !c.IsRolled(family) {
		return false
	}
	return c.willApply[family]
}
