package game

import (
	"fmt"
	"log"

	"github.com/gonewx/spellcore/pkg/config"
	"github.com/gonewx/spellcore/pkg/types"
)

// maxBitmaskValue 变体 1..3 全部置位时的位掩码
const maxBitmaskValue = 1<<config.MaxVariantIndex - 1

// CardSnapshot 单张卡片进度的可序列化形式
type CardSnapshot struct {
	Level           int    `yaml:"level"`
	Tier            int    `yaml:"tier"`
	SelectedVariant int    `yaml:"selectedVariant"`
	Bitmask         bool   `yaml:"bitmask"`
	History         []int  `yaml:"history"`
	HighestRarity   string `yaml:"highestRarity,omitempty"`
}

// LedgerSnapshot 账本快照，用于中途存档
type LedgerSnapshot struct {
	Cards map[string]CardSnapshot `yaml:"cards"`
}

// Snapshot 导出账本当前状态
// 未投递的事件不包含在快照中
func (l *CardProgressionLedger) Snapshot() LedgerSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snap := LedgerSnapshot{Cards: make(map[string]CardSnapshot, len(l.states))}
	for name, st := range l.states {
		cs := CardSnapshot{
			Level:           st.level,
			Tier:            st.tier,
			SelectedVariant: st.selected.Value,
			Bitmask:         st.selected.Storage == StorageBitmask,
			History:         make([]int, 0, config.MaxVariantIndex),
		}
		for idx := 1; idx <= config.MaxVariantIndex; idx++ {
			if st.history[idx] {
				cs.History = append(cs.History, idx)
			}
		}
		if st.hasRarity {
			cs.HighestRarity = st.highestRarity.String()
		}
		snap.Cards[name] = cs
	}
	return snap
}

// Restore 用快照替换账本状态
//
// 阶位取快照值与按等级重新计算值中的较大者，保证阶位不回退。
// 恢复不会产生阶位提升事件。
func (l *CardProgressionLedger) Restore(snap LedgerSnapshot) error {
	states := make(map[string]*cardState, len(snap.Cards))
	for name, cs := range snap.Cards {
		if name == "" {
			return fmt.Errorf("snapshot contains empty card name")
		}
		if cs.Level < 0 {
			return fmt.Errorf("card %s: negative level %d", name, cs.Level)
		}

		// 存储方式以卡片目录为准，快照中的 bitmask 仅用于目录中没有的卡片
		bitmask := cs.Bitmask
		cc, known := l.catalog.Get(name)
		if known {
			bitmask = cc.IsBitmask()
		}
		st := &cardState{level: cs.Level, tier: cs.Tier}
		if bitmask {
			if cs.SelectedVariant < 0 || cs.SelectedVariant > maxBitmaskValue {
				return fmt.Errorf("card %s: bitmask selection must be 0..%d, got %d", name, maxBitmaskValue, cs.SelectedVariant)
			}
			st.selected = Bitmask(cs.SelectedVariant)
		} else {
			if cs.SelectedVariant < 0 || cs.SelectedVariant > config.MaxVariantIndex {
				return fmt.Errorf("card %s: selected variant must be 0..%d, got %d", name, config.MaxVariantIndex, cs.SelectedVariant)
			}
			st.selected = Single(cs.SelectedVariant)
		}
		for _, idx := range cs.History {
			if idx < 1 || idx > config.MaxVariantIndex {
				return fmt.Errorf("card %s: invalid variant %d in history", name, idx)
			}
			st.history[idx] = true
		}
		// 当前选择的变体必定在历史中
		for idx := 1; idx <= config.MaxVariantIndex; idx++ {
			if st.selected.Includes(idx) {
				st.history[idx] = true
			}
		}
		if cs.HighestRarity != "" {
			r, err := types.ParseRarity(cs.HighestRarity)
			if err != nil {
				return fmt.Errorf("card %s: %w", name, err)
			}
			st.highestRarity = r
			st.hasRarity = true
		}
		if known {
			st.category = cc.Category
		}
		states[name] = st
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, st := range states {
		st.tier = max(l.tierFor(st.level), min(st.tier, l.cfg.MaxTier))
	}
	l.states = states
	l.events = nil
	log.Printf("[CardLedger] Restored %d cards from snapshot", len(states))
	return nil
}
