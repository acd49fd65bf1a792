package components

import "github.com/gonewx/spellcore/pkg/types"

// ProjectileComponent 投射物实例的身份与生成时确定的有效数值
// 数值在生成时由卡片基础值与修正值组合得到，之后不再重新解析
type ProjectileComponent struct {
	CardName  string             // 所属卡片，空字符串表示不属于任何卡片
	Category  types.CardCategory // 所属卡片类别
	Archetype string             // 投射物族

	Damage          float64
	Speed           float64
	Size            float64
	ExplosionRadius float64
	DamageRadius    float64
	PullStrength    float64

	SpawnedAt float64 // 生成时的暂停安全时间
}
