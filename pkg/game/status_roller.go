package game

import (
	"math/rand"

	"github.com/gonewx/spellcore/pkg/types"
)

// RandomSource 均匀分布随机数来源，Float64 返回 [0,1)
// *rand.Rand 满足此接口；测试中可替换为固定序列
type RandomSource interface {
	Float64() float64
}

// StatusRoller 状态效果判定器
//
// 持有全局玩家加成，供每个投射物实例的 StatusRollComponent 调用。
// 判定规则：
//
//	effectiveChance = clamp(baseChance + 全局加成 (+ 主动来源加成，仅主动卡), 0, 100)
//	roll ~ U[0,100)
//	willApply = roll <= effectiveChance
type StatusRoller struct {
	rng               RandomSource
	globalBonus       [types.StatusFamilyCount]float64
	activeSourceBonus float64
	draws             int
}

// NewStatusRoller 创建状态判定器
//
// 参数：
//   - rng: 随机数来源，nil 时使用以固定种子初始化的 math/rand
//   - activeSourceBonus: 主动卡投射物额外获得的几率（百分点）
func NewStatusRoller(rng RandomSource, activeSourceBonus float64) *StatusRoller {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &StatusRoller{
		rng:               rng,
		activeSourceBonus: activeSourceBonus,
	}
}

// SetGlobalBonus 设置玩家对某个状态族的全局几率加成（百分点）
func (r *StatusRoller) SetGlobalBonus(family types.StatusFamily, bonus float64) {
	if int(family) < 0 || int(family) >= types.StatusFamilyCount {
		return
	}
	r.globalBonus[family] = bonus
}

// GlobalBonus 返回某个状态族的全局几率加成
func (r *StatusRoller) GlobalBonus(family types.StatusFamily) float64 {
	if int(family) < 0 || int(family) >= types.StatusFamilyCount {
		return 0
	}
	return r.globalBonus[family]
}

// EffectiveChance 计算最终触发几率，限制在 0..100
// 主动来源加成仅在投射物所属卡片为主动卡时生效，被动卡和无卡片投射物不获得
func (r *StatusRoller) EffectiveChance(family types.StatusFamily, baseChance float64, source types.CardCategory) float64 {
	chance := baseChance + r.GlobalBonus(family)
	if source == types.CategoryActive {
		chance += r.activeSourceBonus
	}
	if chance < 0 {
		return 0
	}
	if chance > 100 {
		return 100
	}
	return chance
}

// Roll 执行一次判定并返回是否触发
// 每次调用都会消耗一次随机数；缓存由调用方（StatusRollComponent）负责
func (r *StatusRoller) Roll(family types.StatusFamily, baseChance float64, source types.CardCategory) bool {
	chance := r.EffectiveChance(family, baseChance, source)
	roll := r.rng.Float64() * 100
	r.draws++
	return roll <= chance
}

// Draws 返回累计随机抽取次数
func (r *StatusRoller) Draws() int {
	return r.draws
}
