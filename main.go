package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/gonewx/spellcore/pkg/config"
	"github.com/gonewx/spellcore/pkg/ecs"
	"github.com/gonewx/spellcore/pkg/embedded"
	"github.com/gonewx/spellcore/pkg/game"
	"github.com/gonewx/spellcore/pkg/systems"
	"github.com/gonewx/spellcore/pkg/types"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

const (
	screenWidth  = 800
	screenHeight = 600
)

var (
	loadRun = flag.String("load", "", "恢复指定 RunID 的卡片进度存档")
	dummies = flag.Int("dummies", 3, "训练假人数量")
)

// fireKeys 数字键 1..9 依次对应目录中的主动卡
var fireKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// Game 调试场景：驱动会话与各系统，用键盘模拟施放、收集和选择强化
// 实现 ebiten.Game 接口
type Game struct {
	session       *game.Session
	store         *game.ProgressStore
	entityManager *ecs.EntityManager

	spawner   *systems.ProjectileSpawnSystem
	hits      *systems.HitSystem
	sequences *systems.SequenceSystem
	lifetimes *systems.LifetimeSystem
	notifier  *systems.TierNotificationSystem

	dummies     *trainingDummies
	activeCards []string
	lastEvent   string
}

// NewGame 创建调试场景并完成系统连线
func NewGame(session *game.Session, store *game.ProgressStore, dummyCount int) *Game {
	em := ecs.NewEntityManager()
	g := &Game{
		session:       session,
		store:         store,
		entityManager: em,
		spawner:       systems.NewProjectileSpawnSystem(em, session),
		lifetimes:     systems.NewLifetimeSystem(em),
		notifier:      systems.NewTierNotificationSystem(session.Ledger),
		dummies:       newTrainingDummies(em, dummyCount),
	}
	g.hits = systems.NewHitSystem(em, session.Roller, g.dummies, g.dummies)
	g.sequences = systems.NewSequenceSystem(em, g.dummies)
	g.notifier.AddListener(game.TierListenerFunc(g.onTierIncreased))

	for _, name := range session.Catalog.Names() {
		cc, _ := session.Catalog.Get(name)
		switch cc.Category {
		case types.CategoryActive:
			g.activeCards = append(g.activeCards, name)
		case types.CategoryPassive:
			g.spawner.Equip(name)
		}
	}
	return g
}

// onTierIncreased 自动选择第一个尚未选过的变体
func (g *Game) onTierIncreased(ev game.TierIncreasedEvent) {
	available := g.session.Ledger.AvailableVariants(ev.Card)
	if len(available) == 0 {
		return
	}
	g.session.Ledger.SetEnhancedVariant(ev.Card, available[0])
	g.lastEvent = fmt.Sprintf("%s tier %d -> variant %d", ev.Card, ev.Tier, available[0])
}

// Update 每 tick 调用一次
func (g *Game) Update() error {
	g.handleInput()

	dt := g.session.Update(1.0 / float64(ebiten.TPS()))

	g.spawner.Update(dt)
	g.sequences.Update(dt)
	g.dummies.collide(g.hits, g.session.Clock.Now())
	g.hits.Update(dt)
	g.lifetimes.Update(dt)
	g.notifier.Update(dt)

	g.entityManager.RemoveMarkedEntities()
	return nil
}

func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		paused := g.session.Clock.TogglePause()
		log.Printf("[Main] Paused: %v", paused)
	}

	for i, key := range fireKeys {
		if i >= len(g.activeCards) {
			break
		}
		if inpututil.IsKeyJustPressed(key) {
			if _, result := g.spawner.TrySpawn(g.activeCards[i]); result != systems.SpawnOK {
				g.lastEvent = fmt.Sprintf("%s: %s", g.activeCards[i], result)
			}
		}
	}

	// C: 收集一轮普通卡；R: 收集一轮稀有卡
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.collectAll(types.RarityCommon)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.collectAll(types.RarityRare)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.store.Save(g.session); err != nil {
			log.Printf("[Main] Save failed: %v", err)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.session.NewGame()
		g.dummies.reset()
		g.lastEvent = "new game"
	}
}

func (g *Game) collectAll(rarity types.Rarity) {
	for _, name := range g.session.Catalog.Names() {
		g.session.Ledger.AddLevels(name, rarity)
	}
}

// Draw 绘制调试信息
func (g *Game) Draw(screen *ebiten.Image) {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s  t=%.2f  paused=%v  mana=%.0f/%.0f  entities=%d\n",
		g.session.RunID, g.session.Clock.Now(), g.session.Clock.IsPaused(),
		g.session.Mana.Current(), g.session.Mana.Max(), g.entityManager.Count())
	b.WriteString("SPACE pause  1-9 fire  C/R collect  S save  N new game\n\n")

	for _, name := range g.session.Catalog.Names() {
		cd := g.spawner.RequiredCooldown(name)
		fmt.Fprintf(&b, "%-14s lv %2d  tier %d  variants %v  cd %.2fs\n",
			name, g.session.Ledger.GetLevel(name), g.session.Ledger.GetTier(name),
			g.session.Ledger.ChosenVariants(name), cd)
	}

	b.WriteString("\n")
	for i, id := range g.dummies.ids {
		s := g.dummies.statuses[id]
		fmt.Fprintf(&b, "dummy %d  dmg %.0f  burn %d slow %d static %d special %d\n",
			i+1, g.dummies.damage[id], s[types.StatusBurn], s[types.StatusSlow], s[types.StatusStatic], s[types.StatusSpecial])
	}

	if g.lastEvent != "" {
		fmt.Fprintf(&b, "\n%s\n", g.lastEvent)
	}
	ebitenutil.DebugPrint(screen, b.String())
}

// Layout 返回逻辑屏幕大小
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	cfg, err := config.LoadProgressionConfig(config.DefaultProgressionConfigPath)
	if err != nil {
		log.Fatalf("Failed to load progression config: %v", err)
	}
	catalog, err := config.LoadCardCatalog(config.DefaultCardCatalogPath)
	if err != nil {
		log.Fatalf("Failed to load card catalog: %v", err)
	}

	// gdata 不可用时降级为不持久化
	gdataManager, err := gdata.Open(gdata.Config{AppName: "spellcore"})
	if err != nil {
		log.Printf("[Main] Warning: gdata unavailable, checkpoints disabled: %v", err)
		gdataManager = nil
	}
	store := game.NewProgressStore(gdataManager)

	session := game.NewSession(cfg, catalog, rand.New(rand.NewSource(time.Now().UnixNano())))
	if *loadRun != "" {
		runID, err := uuid.Parse(*loadRun)
		if err != nil {
			log.Fatalf("Invalid run id %q: %v", *loadRun, err)
		}
		found, err := store.Load(runID, session)
		if err != nil {
			log.Fatalf("Failed to load checkpoint: %v", err)
		}
		if !found {
			log.Printf("[Main] No checkpoint for run %s, starting fresh", runID)
		}
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("spellcore - 卡片进度调试")

	if err := ebiten.RunGame(NewGame(session, store, *dummies)); err != nil {
		log.Fatal(err)
	}
}
