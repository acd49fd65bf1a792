package game

import "github.com/gonewx/spellcore/pkg/config"

// ModifierStats 一次解析得到的修正值集合
//
// 这是值类型：同一批次生成的多个投射物可能共享同一次解析结果，
// 需要叠加强化加成的调用方必须在副本上组合（见 Combine），不得回写。
type ModifierStats struct {
	// 加法字段：final = base + modifier
	SpeedIncrease        float64
	LifetimeIncrease     float64
	DamageFlat           float64
	DamageRadiusIncrease float64
	ExplosionRadiusBonus float64
	// PullStrengthMultiplier 作为平坦加成使用，按加法组合
	PullStrengthMultiplier float64

	// 乘法字段：final = base * modifier（恒等值为 1）
	DamageMultiplier          float64
	SizeMultiplier            float64
	ExplosionRadiusMultiplier float64

	// CooldownReductionPercent 冷却缩减百分比，始终相对规范基础冷却计算
	CooldownReductionPercent float64
	// ManaCostReduction 法力消耗缩减比例（0.0 ~ 1.0）
	ManaCostReduction float64
	// PierceCount 额外穿透数，在所有来源之间相加
	PierceCount int
	// SpecialChanceBonusPercent 特殊判定几率加成（百分点）
	SpecialChanceBonusPercent float64
}

// IdentityStats 返回不产生任何影响的修正值（乘法字段为 1）
func IdentityStats() ModifierStats {
	return ModifierStats{
		DamageMultiplier:          1,
		SizeMultiplier:            1,
		ExplosionRadiusMultiplier: 1,
	}
}

// StatsFromConfig 将配置中的修正集合转换为 ModifierStats
// 未配置（为 0）的乘法字段按 1 处理
func StatsFromConfig(set config.ModifierSet) ModifierStats {
	return ModifierStats{
		SpeedIncrease:             set.SpeedIncrease,
		LifetimeIncrease:          set.LifetimeIncrease,
		DamageFlat:                set.DamageFlat,
		DamageRadiusIncrease:      set.DamageRadiusIncrease,
		ExplosionRadiusBonus:      set.ExplosionRadiusBonus,
		PullStrengthMultiplier:    set.PullStrengthMultiplier,
		DamageMultiplier:          orOne(set.DamageMultiplier),
		SizeMultiplier:            orOne(set.SizeMultiplier),
		ExplosionRadiusMultiplier: orOne(set.ExplosionRadiusMultiplier),
		CooldownReductionPercent:  set.CooldownReductionPercent,
		ManaCostReduction:         set.ManaCostReduction,
		PierceCount:               set.PierceCount,
		SpecialChanceBonusPercent: set.SpecialChanceBonusPercent,
	}
}

// Combine 返回两组修正值组合后的新值，接收者与参数均不被修改
// 加法字段相加，乘法字段相乘
func (m ModifierStats) Combine(other ModifierStats) ModifierStats {
	return ModifierStats{
		SpeedIncrease:             m.SpeedIncrease + other.SpeedIncrease,
		LifetimeIncrease:          m.LifetimeIncrease + other.LifetimeIncrease,
		DamageFlat:                m.DamageFlat + other.DamageFlat,
		DamageRadiusIncrease:      m.DamageRadiusIncrease + other.DamageRadiusIncrease,
		ExplosionRadiusBonus:      m.ExplosionRadiusBonus + other.ExplosionRadiusBonus,
		PullStrengthMultiplier:    m.PullStrengthMultiplier + other.PullStrengthMultiplier,
		DamageMultiplier:          m.DamageMultiplier * other.DamageMultiplier,
		SizeMultiplier:            m.SizeMultiplier * other.SizeMultiplier,
		ExplosionRadiusMultiplier: m.ExplosionRadiusMultiplier * other.ExplosionRadiusMultiplier,
		CooldownReductionPercent:  m.CooldownReductionPercent + other.CooldownReductionPercent,
		ManaCostReduction:         m.ManaCostReduction + other.ManaCostReduction,
		PierceCount:               m.PierceCount + other.PierceCount,
		SpecialChanceBonusPercent: m.SpecialChanceBonusPercent + other.SpecialChanceBonusPercent,
	}
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
