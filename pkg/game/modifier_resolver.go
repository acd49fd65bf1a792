package game

import (
	"github.com/gonewx/spellcore/pkg/config"
)

// ModifierResolver 卡片修正值解析器
//
// Resolve 只返回卡片层面（稀有度修正池）的修正值；强化变体带来的加成由
// EnhancedBonus 单独计算，消费者在自己的副本上用 Combine 叠加。
// 两者分离，"卡片本身给了什么"与"所选强化给了什么"互不干扰。
type ModifierResolver struct {
	catalog *config.CardCatalog
	ledger  *CardProgressionLedger
}

// NewModifierResolver 创建修正值解析器
func NewModifierResolver(catalog *config.CardCatalog, ledger *CardProgressionLedger) *ModifierResolver {
	return &ModifierResolver{
		catalog: catalog,
		ledger:  ledger,
	}
}

// Resolve 返回卡片当前的修正值
//
// 修正池按卡片收集过的最高稀有度选择，尚未收集过时使用卡片配置的基础稀有度。
// 空名称、未知卡片或没有修正池的卡片返回 IdentityStats。
// 每次调用都返回新值，调用方可以随意修改。
func (r *ModifierResolver) Resolve(card string) ModifierStats {
	cc, ok := r.catalog.Get(card)
	if !ok {
		return IdentityStats()
	}

	rarity := cc.BaseRarity
	if r.ledger != nil {
		if highest, ok := r.ledger.HighestRarity(card); ok && highest > rarity {
			rarity = highest
		}
	}

	set, ok := cc.ModifierPool(rarity)
	if !ok {
		return IdentityStats()
	}
	return StatsFromConfig(set)
}

// EnhancedBonus 计算卡片已选强化变体带来的加成
//
// 覆盖式卡片：历史中每个变体的加成都叠加（阶位1选2、阶位2选3 视为 2 和 3 同时生效）。
// 位掩码卡片：当前选择中每个置位的变体叠加。
// 没有任何强化时返回 IdentityStats。
func (r *ModifierResolver) EnhancedBonus(card string) ModifierStats {
	bonus := IdentityStats()
	cc, ok := r.catalog.Get(card)
	if !ok || r.ledger == nil {
		return bonus
	}

	selection := r.ledger.GetSelection(card)
	for idx := 1; idx <= config.MaxVariantIndex; idx++ {
		active := r.ledger.HasChosenVariant(card, idx)
		if selection.Storage == StorageBitmask {
			active = selection.Includes(idx)
		}
		if !active {
			continue
		}
		if set, ok := cc.Variants[idx]; ok {
			bonus = bonus.Combine(StatsFromConfig(set))
		}
	}
	return bonus
}

// ResolveWithEnhancements 返回卡片修正值与强化加成组合后的新值
func (r *ModifierResolver) ResolveWithEnhancements(card string) ModifierStats {
	return r.Resolve(card).Combine(r.EnhancedBonus(card))
}
