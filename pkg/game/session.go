package game

import (
	"log"

	"github.com/gonewx/spellcore/pkg/config"
	"github.com/google/uuid"
)

// Session 一局游戏的核心状态集合
//
// 取代全局单例：账本、解析器、冷却门、时钟、法力池、状态判定器都由会话显式持有，
// 再以引用传给各系统。一局游戏对应一个会话，NewGame 开始新的一局。
type Session struct {
	RunID   uuid.UUID
	Config  *config.ProgressionConfig
	Catalog *config.CardCatalog

	Ledger   *CardProgressionLedger
	Resolver *ModifierResolver
	Gate     *CooldownGate
	Clock    *PauseClock
	Mana     *ManaPool
	Roller   *StatusRoller
}

// NewSession 创建会话并完成各组件之间的连线
//
// 参数：
//   - cfg: 进度配置（nil 时使用默认配置）
//   - catalog: 卡片目录
//   - rng: 状态判定使用的随机数来源（nil 时使用默认来源）
func NewSession(cfg *config.ProgressionConfig, catalog *config.CardCatalog, rng RandomSource) *Session {
	if cfg == nil {
		cfg = config.DefaultProgressionConfig()
	}

	ledger := NewCardProgressionLedger(cfg, catalog)
	gate := NewCooldownGate()
	ledger.SetBypassArmer(gate)

	s := &Session{
		RunID:    uuid.New(),
		Config:   cfg,
		Catalog:  catalog,
		Ledger:   ledger,
		Resolver: NewModifierResolver(catalog, ledger),
		Gate:     gate,
		Clock:    NewPauseClock(),
		Mana:     NewManaPool(cfg.StartingMana, cfg.MaxMana, cfg.ManaRegenPerSecond),
		Roller:   NewStatusRoller(rng, cfg.ActiveSourceBonus),
	}
	log.Printf("[Session] Created run %s (%d cards in catalog)", s.RunID, catalogSize(catalog))
	return s
}

// Update 推进一帧：时钟前进（暂停时不前进），法力按暂停安全增量回复
//
// 返回：
//   - float64: 本帧暂停安全增量，各系统应使用它而不是原始帧时间
func (s *Session) Update(dt float64) float64 {
	effective := s.Clock.Advance(dt)
	s.Mana.Regenerate(effective)
	return effective
}

// NewGame 开始新的一局：清空账本、冷却记录，重置时钟与法力，并生成新的 RunID
func (s *Session) NewGame() {
	s.Ledger.ResetAll()
	s.Gate.Reset()
	s.Clock.Reset()
	s.Mana = NewManaPool(s.Config.StartingMana, s.Config.MaxMana, s.Config.ManaRegenPerSecond)
	s.RunID = uuid.New()
	log.Printf("[Session] New game started, run %s", s.RunID)
}

func catalogSize(c *config.CardCatalog) int {
	if c == nil {
		return 0
	}
	return len(c.Cards)
}
