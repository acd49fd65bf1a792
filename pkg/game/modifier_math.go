package game

import "math"

// 修正值运算约定
//
// 所有消费者必须使用这里的函数组合修正值，不要各自实现，
// 否则不同投射物之间的数值会出现分歧。

// ApplyAdditive 加法修正：final = base + modifier
func ApplyAdditive(base, modifier float64) float64 {
	return base + modifier
}

// ApplyMultiplicative 乘法修正：final = base * modifier
func ApplyMultiplicative(base, multiplier float64) float64 {
	return base * multiplier
}

// ComposeDamage 伤害组合：先加平坦值，再乘倍率
// (100 + 20) * 1.5 = 180，而不是 100 * 1.5 + 20 = 170
func ComposeDamage(base, flat, multiplier float64) float64 {
	return (base + flat) * multiplier
}

// ReduceCooldown 百分比冷却缩减
//
// canonicalBase 必须是卡片配置的规范基础冷却（每次重新解析时从配置取得），
// 不能传入上一次缩减后的值，否则缩减会复利叠加。
//
// final = max(minCooldown, canonicalBase * (1 - reductionPercent/100))
func ReduceCooldown(canonicalBase, reductionPercent, minCooldown float64) float64 {
	reduced := canonicalBase * (1 - reductionPercent/100)
	return math.Max(minCooldown, reduced)
}

// ReduceManaCost 法力消耗缩减：final = max(1, ceil(base * (1 - reduction)))
func ReduceManaCost(base, reduction float64) float64 {
	return math.Max(1, math.Ceil(base*(1-reduction)))
}

// ComposePierce 穿透数在所有来源之间相加，不做替换
//
// 预制体默认值 > 0 且修正贡献为 0 时保持默认值不变，
// 修正贡献 > 0 时两者相加。负数贡献视为 0。
func ComposePierce(baseline int, contributions ...int) int {
	total := 0
	for _, c := range contributions {
		if c > 0 {
			total += c
		}
	}
	if baseline < 0 {
		baseline = 0
	}
	return baseline + total
}
