// verify_progression 无界面验证卡片进度与修正值解析
//
// 用法：
//
//	go run ./cmd/verify_progression -card flame_bolt -rarity common -count 25
//	go run ./cmd/verify_progression -card frost_orbital -seconds 30 -dummies 4
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/gonewx/spellcore/pkg/components"
	"github.com/gonewx/spellcore/pkg/config"
	"github.com/gonewx/spellcore/pkg/ecs"
	"github.com/gonewx/spellcore/pkg/game"
	"github.com/gonewx/spellcore/pkg/systems"
	"github.com/gonewx/spellcore/pkg/types"
)

var (
	cardsPath       = flag.String("cards", config.DefaultCardCatalogPath, "卡片目录文件")
	progressionPath = flag.String("progression", config.DefaultProgressionConfigPath, "进度配置文件")
	cardName        = flag.String("card", "flame_bolt", "要验证的卡片")
	rarityName      = flag.String("rarity", "common", "每次收集的稀有度")
	count           = flag.Int("count", 30, "收集次数")
	seconds         = flag.Float64("seconds", 0, "收集完成后模拟自动发射的秒数（仅被动卡）")
	dummyCount      = flag.Int("dummies", 3, "模拟命中的目标数量")
	seed            = flag.Int64("seed", 1, "状态判定随机种子")
	verbose         = flag.Bool("verbose", false, "显示详细调试信息")
)

const tick = 1.0 / 60

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadProgressionConfig(*progressionPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	catalog, err := config.LoadCardCatalog(*cardsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	rarity, err := types.ParseRarity(*rarityName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	cc, ok := catalog.Get(*cardName)
	if !ok {
		fmt.Fprintf(os.Stderr, "❌ unknown card %q (known: %v)\n", *cardName, catalog.Names())
		os.Exit(1)
	}

	session := game.NewSession(cfg, catalog, rand.New(rand.NewSource(*seed)))
	em := ecs.NewEntityManager()
	spawner := systems.NewProjectileSpawnSystem(em, session)
	notifier := systems.NewTierNotificationSystem(session.Ledger)
	notifier.AddListener(game.TierListenerFunc(func(ev game.TierIncreasedEvent) {
		available := session.Ledger.AvailableVariants(ev.Card)
		if len(available) == 0 {
			return
		}
		session.Ledger.SetEnhancedVariant(ev.Card, available[0])
		fmt.Printf("  ⭐ level %d: tier %d reached, selected variant %d\n", ev.Level, ev.Tier, available[0])
	}))

	fmt.Printf("=== %s (%s, archetype %s, base cooldown %.2fs) ===\n", cc.Name, cc.Category, cc.Archetype, cc.SpawnInterval)
	printStats(session, spawner, cc.Name)

	for i := 0; i < *count; i++ {
		session.Ledger.AddLevels(cc.Name, rarity)
		notifier.Update(0)
	}

	fmt.Printf("\n=== after %d x %s ===\n", *count, rarity)
	printStats(session, spawner, cc.Name)

	if *seconds > 0 {
		simulate(session, em, spawner, cc)
	}
}

func printStats(session *game.Session, spawner *systems.ProjectileSpawnSystem, card string) {
	stats := session.Resolver.ResolveWithEnhancements(card)
	cc, _ := session.Catalog.Get(card)
	mana := 0.0
	if cc.ManaCost > 0 {
		mana = game.ReduceManaCost(cc.ManaCost, stats.ManaCostReduction)
	}
	fmt.Printf("  level %d, tier %d, variants %v\n",
		session.Ledger.GetLevel(card), session.Ledger.GetTier(card), session.Ledger.ChosenVariants(card))
	fmt.Printf("  damage %.1f, pierce %d, cooldown %.2fs, mana %.0f\n",
		game.ComposeDamage(cc.Damage, stats.DamageFlat, stats.DamageMultiplier),
		game.ComposePierce(cc.Pierce, stats.PierceCount),
		spawner.RequiredCooldown(card),
		mana)
}

// simulate 模拟被动卡自动发射，可以命中的投射物在每帧依次命中每个目标
// 多阶段投射物在激活前不命中，激活期间每个 tick 对所有目标造成伤害
func simulate(session *game.Session, em *ecs.EntityManager, spawner *systems.ProjectileSpawnSystem, cc *config.CardConfig) {
	if cc.Category != types.CategoryPassive {
		fmt.Println("\n⚠️  auto-fire simulation only applies to passive cards")
		return
	}

	targets := make([]ecs.EntityID, *dummyCount)
	for i := range targets {
		targets[i] = em.CreateEntity()
	}
	counter := &hitCounter{em: em, targets: targets}
	hits := systems.NewHitSystem(em, session.Roller, counter, counter)
	lifetimes := systems.NewLifetimeSystem(em)
	sequences := systems.NewSequenceSystem(em, counter)

	spawner.Equip(cc.Name)
	spawned := 0
	for t := 0.0; t < *seconds; t += tick {
		dt := session.Update(tick)
		before := len(ecs.GetEntitiesWith1[*components.ProjectileComponent](em))
		spawner.Update(dt)
		spawned += len(ecs.GetEntitiesWith1[*components.ProjectileComponent](em)) - before

		for _, id := range ecs.GetEntitiesWith1[*components.ProjectileComponent](em) {
			if !systems.CanHit(em, id) {
				continue
			}
			for _, target := range targets {
				hits.Enqueue(systems.HitEvent{Projectile: id, Target: target})
			}
		}
		hits.Update(dt)
		sequences.Update(dt)
		lifetimes.Update(dt)
		em.RemoveMarkedEntities()
	}

	fmt.Printf("\n=== %.0fs auto-fire ===\n", *seconds)
	fmt.Printf("  spawned %d, status draws %d, mana left %.1f\n", spawned, session.Roller.Draws(), session.Mana.Current())
	fmt.Printf("  hit damage %.1f, tick damage %.1f (%d ticks)\n", counter.hitDamage, counter.tickDamage, counter.ticks)
	for _, f := range types.AllStatusFamilies {
		if counter.applied[f] > 0 {
			fmt.Printf("  %s applied %d time(s)\n", f, counter.applied[f])
		}
	}
}

// hitCounter 统计模拟中施加的状态与伤害
type hitCounter struct {
	em      *ecs.EntityManager
	targets []ecs.EntityID

	applied    [types.StatusFamilyCount]int
	hitDamage  float64
	tickDamage float64
	ticks      int
}

func (c *hitCounter) ApplyStatus(target ecs.EntityID, family types.StatusFamily, projectile *components.ProjectileComponent) {
	c.applied[family]++
}

func (c *hitCounter) ApplyDamage(target ecs.EntityID, amount float64, projectile *components.ProjectileComponent) {
	c.hitDamage += amount
}

func (c *hitCounter) OnSequenceTick(projectile ecs.EntityID, ticks int) {
	proj, ok := ecs.GetComponent[*components.ProjectileComponent](c.em, projectile)
	if !ok {
		return
	}
	c.ticks += ticks
	c.tickDamage += proj.Damage * float64(ticks*len(c.targets))
}
