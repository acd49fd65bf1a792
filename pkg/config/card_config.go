package config

import (
	"fmt"
	"sort"

	"github.com/gonewx/spellcore/pkg/embedded"
	"github.com/gonewx/spellcore/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultCardCatalogPath 默认卡片目录文件路径
const DefaultCardCatalogPath = "data/cards.yaml"

// 变体存储方式
const (
	// VariantModeSingle 选择新变体时覆盖当前变体
	VariantModeSingle = "single"
	// VariantModeBitmask 选择的变体按位或叠加（如护盾类卡片）
	VariantModeBitmask = "bitmask"
)

// MaxVariantIndex 变体编号上限（变体编号为 1..3）
const MaxVariantIndex = 3

// ModifierSet 一组修正值的配置形式
// 乘法字段为 0 表示未配置，转换时按 1 处理
type ModifierSet struct {
	SpeedIncrease             float64 `yaml:"speedIncrease"`
	LifetimeIncrease          float64 `yaml:"lifetimeIncrease"`
	DamageFlat                float64 `yaml:"damageFlat"`
	DamageMultiplier          float64 `yaml:"damageMultiplier"`
	SizeMultiplier            float64 `yaml:"sizeMultiplier"`
	CooldownReductionPercent  float64 `yaml:"cooldownReductionPercent"`
	ManaCostReduction         float64 `yaml:"manaCostReduction"` // 0.0 ~ 1.0 的比例
	PierceCount               int     `yaml:"pierceCount"`
	ExplosionRadiusBonus      float64 `yaml:"explosionRadiusBonus"`
	ExplosionRadiusMultiplier float64 `yaml:"explosionRadiusMultiplier"`
	DamageRadiusIncrease      float64 `yaml:"damageRadiusIncrease"`
	PullStrengthMultiplier    float64 `yaml:"pullStrengthMultiplier"`
	SpecialChanceBonusPercent float64 `yaml:"specialChanceBonusPercent"`
}

// StatusChances 各状态效果族的基础触发几率（百分比）
// nil 表示该投射物不具备此状态能力，判定时直接跳过
type StatusChances struct {
	Burn    *float64 `yaml:"burn"`
	Slow    *float64 `yaml:"slow"`
	Static  *float64 `yaml:"static"`
	Special *float64 `yaml:"special"`
}

// Chance 返回指定状态族的基础几率，以及是否配置了该能力
func (s StatusChances) Chance(f types.StatusFamily) (float64, bool) {
	var p *float64
	switch f {
	case types.StatusBurn:
		p = s.Burn
	case types.StatusSlow:
		p = s.Slow
	case types.StatusStatic:
		p = s.Static
	case types.StatusSpecial:
		p = s.Special
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// SequenceConfig 多阶段投射物（地雷、光束等）的时序配置
type SequenceConfig struct {
	ArmingDelay    float64 `yaml:"armingDelay"`    // 布置后到激活前的延迟（秒）
	TickInterval   float64 `yaml:"tickInterval"`   // 激活期间的周期间隔（秒），0 表示不产生周期事件
	ActiveDuration float64 `yaml:"activeDuration"` // 激活阶段持续时间（秒）
	EndingDuration float64 `yaml:"endingDuration"` // 收尾阶段持续时间（秒）
}

// CardConfig 单张卡片的配置
type CardConfig struct {
	CategoryRaw   string `yaml:"category"`
	Archetype     string `yaml:"archetype"`   // 投射物族，冷却门按此键计时
	VariantMode   string `yaml:"variantMode"` // single | bitmask
	BaseRarityRaw string `yaml:"baseRarity"`

	Damage          float64 `yaml:"damage"`
	Speed           float64 `yaml:"speed"`
	Lifetime        float64 `yaml:"lifetime"`
	Size            float64 `yaml:"size"`
	SpawnInterval   float64 `yaml:"spawnInterval"` // 规范基础冷却（秒）
	ManaCost        float64 `yaml:"manaCost"`
	Pierce          int     `yaml:"pierce"` // 预制体默认穿透数
	ExplosionRadius float64 `yaml:"explosionRadius"`
	DamageRadius    float64 `yaml:"damageRadius"`
	PullStrength    float64 `yaml:"pullStrength"`

	Status   StatusChances   `yaml:"status"`
	Sequence *SequenceConfig `yaml:"sequence"`

	ModifiersRaw map[string]ModifierSet `yaml:"modifiers"`
	Variants     map[int]ModifierSet    `yaml:"variants"`

	// 以下字段由校验阶段填充
	Name       string                       `yaml:"-"`
	Category   types.CardCategory           `yaml:"-"`
	BaseRarity types.Rarity                 `yaml:"-"`
	Modifiers  map[types.Rarity]ModifierSet `yaml:"-"`
}

// IsBitmask 卡片的变体是否按位叠加
func (c *CardConfig) IsBitmask() bool {
	return c.VariantMode == VariantModeBitmask
}

// ModifierPool 返回指定稀有度的修正池
// 精确稀有度未配置时，向下寻找最接近的已配置稀有度
func (c *CardConfig) ModifierPool(r types.Rarity) (ModifierSet, bool) {
	for cur := r; cur >= types.RarityCommon; cur-- {
		if set, ok := c.Modifiers[cur]; ok {
			return set, true
		}
	}
	return ModifierSet{}, false
}

// CardCatalog 卡片目录配置文件结构
type CardCatalog struct {
	Cards map[string]*CardConfig `yaml:"cards"`
}

// Get 按名称获取卡片配置
// 空名称或未知卡片返回 nil 和 false
func (c *CardCatalog) Get(name string) (*CardConfig, bool) {
	if c == nil || name == "" {
		return nil, false
	}
	card, ok := c.Cards[name]
	return card, ok
}

// Names 返回所有卡片名称（按字母顺序排序）
func (c *CardCatalog) Names() []string {
	names := make([]string, 0, len(c.Cards))
	for name := range c.Cards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadCardCatalog 从 YAML 文件加载卡片目录
//
// 参数：
//
//	filepath - 配置文件路径（"data/" 前缀优先从嵌入资源读取）
//
// 返回：
//
//	*CardCatalog - 解析并校验后的目录
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadCardCatalog(filepath string) (*CardCatalog, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read card catalog %s: %w", filepath, err)
	}

	catalog, err := ParseCardCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("invalid card catalog %s: %w", filepath, err)
	}
	return catalog, nil
}

// ParseCardCatalog 解析 YAML 内容为卡片目录
func ParseCardCatalog(data []byte) (*CardCatalog, error) {
	var catalog CardCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse card catalog YAML: %w", err)
	}
	if err := validateCardCatalog(&catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// validateCardCatalog 校验卡片目录并填充解析后的字段
func validateCardCatalog(catalog *CardCatalog) error {
	if len(catalog.Cards) == 0 {
		return fmt.Errorf("at least one card is required")
	}

	for name, card := range catalog.Cards {
		if card == nil {
			return fmt.Errorf("card %s: empty definition", name)
		}
		card.Name = name

		category, err := types.ParseCardCategory(card.CategoryRaw)
		if err != nil {
			return fmt.Errorf("card %s: %w", name, err)
		}
		card.Category = category

		if card.Archetype == "" {
			card.Archetype = name
		}

		switch card.VariantMode {
		case "":
			card.VariantMode = VariantModeSingle
		case VariantModeSingle, VariantModeBitmask:
		default:
			return fmt.Errorf("card %s: unknown variantMode %q", name, card.VariantMode)
		}

		card.BaseRarity = types.RarityCommon
		if card.BaseRarityRaw != "" {
			if card.BaseRarity, err = types.ParseRarity(card.BaseRarityRaw); err != nil {
				return fmt.Errorf("card %s: baseRarity: %w", name, err)
			}
		}

		card.Modifiers = make(map[types.Rarity]ModifierSet, len(card.ModifiersRaw))
		for rarityName, set := range card.ModifiersRaw {
			r, err := types.ParseRarity(rarityName)
			if err != nil {
				return fmt.Errorf("card %s: modifiers: %w", name, err)
			}
			card.Modifiers[r] = set
		}

		for idx := range card.Variants {
			if idx < 1 || idx > MaxVariantIndex {
				return fmt.Errorf("card %s: variant index must be 1..%d, got %d", name, MaxVariantIndex, idx)
			}
		}

		if card.Damage < 0 || card.Speed < 0 || card.Lifetime < 0 || card.SpawnInterval < 0 || card.ManaCost < 0 {
			return fmt.Errorf("card %s: base stats cannot be negative", name)
		}
		if card.Pierce < 0 {
			return fmt.Errorf("card %s: pierce cannot be negative, got %d", name, card.Pierce)
		}
		if card.Size == 0 {
			card.Size = 1
		}

		for _, f := range types.AllStatusFamilies {
			if chance, ok := card.Status.Chance(f); ok && (chance < 0 || chance > 100) {
				return fmt.Errorf("card %s: %s chance must be 0..100, got %f", name, f, chance)
			}
		}

		if seq := card.Sequence; seq != nil {
			if seq.ArmingDelay < 0 || seq.TickInterval < 0 || seq.ActiveDuration < 0 || seq.EndingDuration < 0 {
				return fmt.Errorf("card %s: sequence durations cannot be negative", name)
			}
		}
	}

	return nil
}
