package game

import (
	"log"
	"sort"
	"sync"

	"github.com/gonewx/spellcore/pkg/config"
	"github.com/gonewx/spellcore/pkg/types"
)

// BypassArmer 接收"强化后首次生成跳过冷却"的一次性标记
// 由 CooldownGate 实现
type BypassArmer interface {
	ArmBypass(card string)
}

// cardState 单张卡片的进度状态
type cardState struct {
	level         int
	tier          int
	selected      VariantSelection
	history       [config.MaxVariantIndex + 1]bool // 下标 1..3
	highestRarity types.Rarity
	hasRarity     bool
	category      types.CardCategory
}

// CardProgressionLedger 卡片进度账本
//
// 按卡片名记录累计等级、阶位、当前选中的强化变体以及历史上选过的所有变体。
// 账本由会话显式持有并传给所有消费者（生成器、解析器、选择界面），生命周期与一局游戏相同。
//
// 并发：写操作（升级、选择变体、重置）持有写锁；阶位提升事件在锁内入队，
// 由 FlushEvents 在锁外按 AddLevels 的调用顺序投递，监听者可以安全地再次修改账本。
type CardProgressionLedger struct {
	mu      sync.RWMutex
	cfg     *config.ProgressionConfig
	catalog *config.CardCatalog
	states  map[string]*cardState
	events  []TierIncreasedEvent
	bypass  BypassArmer
}

// NewCardProgressionLedger 创建卡片进度账本
//
// 参数：
//   - cfg: 进度配置（nil 时使用默认配置）
//   - catalog: 卡片目录，用于确定卡片类别与变体存储方式（可为 nil，此时所有卡片按覆盖式、未知类别处理）
func NewCardProgressionLedger(cfg *config.ProgressionConfig, catalog *config.CardCatalog) *CardProgressionLedger {
	if cfg == nil {
		cfg = config.DefaultProgressionConfig()
	}
	// 未经 validateProgressionConfig 的配置在副本上修正，调用方的配置不变
	if cfg.TierThreshold < 1 || cfg.MaxTier < 1 || cfg.MaxTier > config.MaxTierLimit {
		fixed := *cfg
		if fixed.TierThreshold < 1 {
			fixed.TierThreshold = config.DefaultTierThreshold
		}
		if fixed.MaxTier < 1 || fixed.MaxTier > config.MaxTierLimit {
			fixed.MaxTier = config.DefaultMaxTier
		}
		log.Printf("[CardLedger] Invalid tier settings (threshold=%d, maxTier=%d), using threshold=%d maxTier=%d",
			cfg.TierThreshold, cfg.MaxTier, fixed.TierThreshold, fixed.MaxTier)
		cfg = &fixed
	}
	return &CardProgressionLedger{
		cfg:     cfg,
		catalog: catalog,
		states:  make(map[string]*cardState),
	}
}

// SetBypassArmer 设置被动卡选择变体时需要通知的冷却门
func (l *CardProgressionLedger) SetBypassArmer(armer BypassArmer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bypass = armer
}

// TierThreshold 返回每阶所需等级
func (l *CardProgressionLedger) TierThreshold() int {
	return l.cfg.TierThreshold
}

// tierFor 根据等级计算阶位，限制在 0..MaxTier
func (l *CardProgressionLedger) tierFor(level int) int {
	tier := level / l.cfg.TierThreshold
	if tier < 0 {
		return 0
	}
	if tier > l.cfg.MaxTier {
		return l.cfg.MaxTier
	}
	return tier
}

// stateLocked 查找或创建卡片状态，调用方必须持有写锁
// 变体存储方式在创建时按卡片配置确定
func (l *CardProgressionLedger) stateLocked(card string) *cardState {
	if st, ok := l.states[card]; ok {
		return st
	}
	st := &cardState{selected: Single(0)}
	if cc, ok := l.catalog.Get(card); ok {
		st.category = cc.Category
		if cc.IsBitmask() {
			st.selected = Bitmask(0)
		}
	}
	l.states[card] = st
	return st
}

// AddLevels 按稀有度为卡片增加等级
//
// 跨越阶位时入队恰好一个阶位提升事件，即使一次增加跨越了多个阶位也只报告新达到的最高阶位。
// 是否触发仅由与调用前阶位的严格大于比较决定，不依赖额外的"已通知"标记。
//
// 返回：
//   - bool: 本次调用是否提升了阶位
func (l *CardProgressionLedger) AddLevels(card string, rarity types.Rarity) bool {
	if card == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	st := l.stateLocked(card)
	oldLevel := st.level
	newLevel := oldLevel + l.cfg.LevelGainFor(rarity)
	st.level = newLevel

	if !st.hasRarity || rarity > st.highestRarity {
		st.highestRarity = rarity
		st.hasRarity = true
	}

	oldTier := st.tier
	newTier := l.tierFor(newLevel)
	if newTier <= oldTier {
		return false
	}

	st.tier = newTier
	l.events = append(l.events, TierIncreasedEvent{Card: card, Tier: newTier, Level: newLevel})
	log.Printf("[CardLedger] %s reached tier %d (level %d -> %d)", card, newTier, oldLevel, newLevel)
	return true
}

// GetLevel 返回卡片等级，未知卡片返回 0
func (l *CardProgressionLedger) GetLevel(card string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if st, ok := l.states[card]; ok {
		return st.level
	}
	return 0
}

// GetTier 返回卡片阶位，未知卡片返回 0
func (l *CardProgressionLedger) GetTier(card string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if st, ok := l.states[card]; ok {
		return st.tier
	}
	return 0
}

// HighestRarity 返回卡片收集过的最高稀有度
// 未收集过的卡片返回 false
func (l *CardProgressionLedger) HighestRarity(card string) (types.Rarity, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if st, ok := l.states[card]; ok && st.hasRarity {
		return st.highestRarity, true
	}
	return types.RarityCommon, false
}

// IsEnhancedUnlocked 卡片等级是否达到第一个阶位阈值
func (l *CardProgressionLedger) IsEnhancedUnlocked(card string) bool {
	return l.GetLevel(card) >= l.cfg.TierThreshold
}

// SetEnhancedVariant 记录玩家选择的强化变体
//
// 位掩码卡片按位或叠加，其余卡片覆盖当前选择；合法变体编号（1..3）总是加入历史集合。
// 超出 1..3 的编号被忽略，既不改变当前选择也不触发跳过冷却标记。
// 被动卡每次调用恰好触发一次"强化后首次生成跳过冷却"标记。
func (l *CardProgressionLedger) SetEnhancedVariant(card string, variantIndex int) {
	if card == "" || variantIndex < 1 || variantIndex > config.MaxVariantIndex {
		return
	}

	l.mu.Lock()
	st := l.stateLocked(card)
	st.selected = st.selected.With(variantIndex)
	st.history[variantIndex] = true
	category := st.category
	armer := l.bypass
	selected := st.selected
	l.mu.Unlock()

	log.Printf("[CardLedger] %s selected variant %d (stored=%d)", card, variantIndex, selected.Value)

	if category == types.CategoryPassive && armer != nil {
		armer.ArmBypass(card)
	}
}

// GetEnhancedVariant 返回当前选中的变体
// 覆盖式卡片返回变体编号，位掩码卡片返回按位或结果；未知卡片返回 0
func (l *CardProgressionLedger) GetEnhancedVariant(card string) int {
	return l.GetSelection(card).Value
}

// GetSelection 返回带存储方式标签的当前变体选择
func (l *CardProgressionLedger) GetSelection(card string) VariantSelection {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if st, ok := l.states[card]; ok {
		return st.selected
	}
	return Single(0)
}

// HasChosenVariant 变体是否在该卡片的历史选择中
//
// 多个阶位选择的效果需要叠加时，消费者应逐个变体查询本方法，
// 而不是与当前选中的变体做相等比较。
func (l *CardProgressionLedger) HasChosenVariant(card string, variantIndex int) bool {
	if variantIndex <= 0 || variantIndex > config.MaxVariantIndex {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if st, ok := l.states[card]; ok {
		return st.history[variantIndex]
	}
	return false
}

// ChosenVariants 返回历史上选过的所有变体编号（升序）
func (l *CardProgressionLedger) ChosenVariants(card string) []int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	result := make([]int, 0, config.MaxVariantIndex)
	if st, ok := l.states[card]; ok {
		for idx := 1; idx <= config.MaxVariantIndex; idx++ {
			if st.history[idx] {
				result = append(result, idx)
			}
		}
	}
	return result
}

// AvailableVariants 返回尚未选过、可供选择界面提供的变体编号
func (l *CardProgressionLedger) AvailableVariants(card string) []int {
	result := make([]int, 0, config.MaxVariantIndex)
	for idx := 1; idx <= config.MaxVariantIndex; idx++ {
		if !l.HasChosenVariant(card, idx) {
			result = append(result, idx)
		}
	}
	return result
}

// Cards 返回账本中所有卡片名（按字母顺序排序）
func (l *CardProgressionLedger) Cards() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.states))
	for name := range l.states {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResetAll 清空所有卡片状态以及未投递的事件（新游戏）
func (l *CardProgressionLedger) ResetAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.states = make(map[string]*cardState)
	l.events = nil
	log.Printf("[CardLedger] All card progression reset")
}

// PendingEvents 返回尚未投递的事件数量
func (l *CardProgressionLedger) PendingEvents() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// DrainEvents 取出并清空事件队列
func (l *CardProgressionLedger) DrainEvents() []TierIncreasedEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	events := l.events
	l.events = nil
	return events
}

// FlushEvents 按入队顺序把事件投递给监听者
//
// 投递在锁外进行；监听者内部再次升级产生的新事件会在本次调用中继续投递，
// 直到队列清空。
//
// 返回：
//   - int: 投递的事件总数
func (l *CardProgressionLedger) FlushEvents(listener func(TierIncreasedEvent)) int {
	delivered := 0
	for {
		batch := l.DrainEvents()
		if len(batch) == 0 {
			return delivered
		}
		for _, ev := range batch {
			if listener != nil {
				listener(ev)
			}
			delivered++
		}
	}
}
