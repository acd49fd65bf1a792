package config

import (
	"fmt"

	"github.com/gonewx/spellcore/pkg/embedded"
	"github.com/gonewx/spellcore/pkg/types"
	"gopkg.in/yaml.v3"
)

// 进度配置默认值
const (
	// DefaultTierThreshold 每个阶位所需等级
	DefaultTierThreshold = 10
	// DefaultMaxTier 阶位上限（0..3）
	DefaultMaxTier = 3
	// MaxTierLimit maxTier 允许配置的最大值，阶位始终在 0..3 之间
	MaxTierLimit = 3
	// DefaultMinCooldown 百分比冷却缩减后的硬下限（秒）
	DefaultMinCooldown = 0.1
	// DefaultProgressionConfigPath 默认进度配置文件路径
	DefaultProgressionConfigPath = "data/progression.yaml"
)

// defaultLevelGain 稀有度到等级增量的默认表
var defaultLevelGain = map[types.Rarity]int{
	types.RarityCommon:    1,
	types.RarityUncommon:  1,
	types.RarityRare:      2,
	types.RarityEpic:      2,
	types.RarityLegendary: 3,
	types.RarityMythic:    4,
}

// ProgressionConfig 卡片进度与发射规则配置
type ProgressionConfig struct {
	TierThreshold int     `yaml:"tierThreshold"` // 每阶所需等级
	MaxTier       int     `yaml:"maxTier"`       // 阶位上限
	MinCooldown   float64 `yaml:"minCooldown"`   // 冷却下限（秒）

	// ActiveSourceBonus 主动卡投射物额外获得的状态触发几率（百分点）
	ActiveSourceBonus float64 `yaml:"activeSourceBonus"`

	StartingMana       float64 `yaml:"startingMana"`       // 开局法力值
	MaxMana            float64 `yaml:"maxMana"`            // 法力上限
	ManaRegenPerSecond float64 `yaml:"manaRegenPerSecond"` // 每秒法力回复（暂停时不回复）

	// LevelGainRaw YAML 中的稀有度 -> 等级增量，键为稀有度名
	LevelGainRaw map[string]int `yaml:"levelGain"`

	// LevelGain 解析后的稀有度 -> 等级增量（缺省项使用默认表）
	LevelGain map[types.Rarity]int `yaml:"-"`
}

// DefaultProgressionConfig 返回默认进度配置
func DefaultProgressionConfig() *ProgressionConfig {
	cfg := &ProgressionConfig{
		TierThreshold: DefaultTierThreshold,
		MaxTier:       DefaultMaxTier,
		MinCooldown:   DefaultMinCooldown,
		StartingMana:  100,
		MaxMana:       100,
		LevelGain:     make(map[types.Rarity]int, len(defaultLevelGain)),
	}
	for r, gain := range defaultLevelGain {
		cfg.LevelGain[r] = gain
	}
	return cfg
}

// LevelGainFor 返回指定稀有度的等级增量
// 未知稀有度按 1 处理
func (c *ProgressionConfig) LevelGainFor(r types.Rarity) int {
	if gain, ok := c.LevelGain[r]; ok {
		return gain
	}
	return 1
}

// LoadProgressionConfig 从 YAML 文件加载进度配置
// 文件中缺省的字段保持默认值
//
// 参数：
//
//	filepath - 配置文件路径（"data/" 前缀优先从嵌入资源读取）
//
// 返回：
//
//	*ProgressionConfig - 解析并校验后的配置
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadProgressionConfig(filepath string) (*ProgressionConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read progression config %s: %w", filepath, err)
	}

	cfg, err := ParseProgressionConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid progression config %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseProgressionConfig 解析 YAML 内容为进度配置
func ParseProgressionConfig(data []byte) (*ProgressionConfig, error) {
	cfg := DefaultProgressionConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse progression YAML: %w", err)
	}

	for name, gain := range cfg.LevelGainRaw {
		r, err := types.ParseRarity(name)
		if err != nil {
			return nil, fmt.Errorf("levelGain: %w", err)
		}
		cfg.LevelGain[r] = gain
	}

	if err := validateProgressionConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateProgressionConfig 校验进度配置的合法性
func validateProgressionConfig(cfg *ProgressionConfig) error {
	if cfg.TierThreshold < 1 {
		return fmt.Errorf("tierThreshold must be at least 1, got %d", cfg.TierThreshold)
	}
	if cfg.MaxTier < 1 || cfg.MaxTier > MaxTierLimit {
		return fmt.Errorf("maxTier must be 1..%d, got %d", MaxTierLimit, cfg.MaxTier)
	}
	if cfg.MinCooldown < 0 {
		return fmt.Errorf("minCooldown cannot be negative, got %f", cfg.MinCooldown)
	}
	if cfg.MaxMana < cfg.StartingMana {
		return fmt.Errorf("maxMana (%f) cannot be below startingMana (%f)", cfg.MaxMana, cfg.StartingMana)
	}
	for r, gain := range cfg.LevelGain {
		if gain < 0 {
			return fmt.Errorf("levelGain[%s] cannot be negative, got %d", r, gain)
		}
	}
	return nil
}
