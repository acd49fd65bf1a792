package types

import (
	"fmt"
	"strings"
)

// Rarity 卡片稀有度
// 数值越大越稀有，可直接比较大小
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
	RarityMythic
)

// AllRarities 按从低到高的顺序列出所有稀有度
var AllRarities = []Rarity{
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityEpic,
	RarityLegendary,
	RarityMythic,
}

// String 返回稀有度的配置名（与 YAML 中的键一致）
func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	case RarityMythic:
		return "mythic"
	default:
		return fmt.Sprintf("rarity(%d)", int(r))
	}
}

// ParseRarity 从配置字符串解析稀有度（不区分大小写）
func ParseRarity(s string) (Rarity, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, r := range AllRarities {
		if r.String() == key {
			return r, nil
		}
	}
	return RarityCommon, fmt.Errorf("unknown rarity %q", s)
}
