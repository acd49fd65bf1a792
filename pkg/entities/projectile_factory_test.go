package entities

import (
	"testing"

	"github.com/gonewx/spellcore/pkg/components"
	"github.com/gonewx/spellcore/pkg/config"
	"github.com/gonewx/spellcore/pkg/ecs"
	"github.com/gonewx/spellcore/pkg/types"
)

func floatPtr(v float64) *float64 {
	return &v
}

// TestNewProjectile 测试投射物实体创建
func TestNewProjectile(t *testing.T) {
	tests := []struct {
		name         string
		input        ProjectileSpec
		wantLifetime bool
		wantSequence bool
	}{
		{
			name: "普通飞弹",
			input: ProjectileSpec{
				CardName: "flame_bolt", Category: types.CategoryActive, Archetype: "bolt",
				Damage: 180, Lifetime: 2, Pierce: 1,
			},
			wantLifetime: true,
		},
		{
			name: "带时序的地雷",
			input: ProjectileSpec{
				CardName: "storm_mine", Category: types.CategoryPassive, Archetype: "mine",
				Sequence: &config.SequenceConfig{ArmingDelay: 0.5, ActiveDuration: 1},
			},
			wantSequence: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			id, err := NewProjectile(em, tt.input)
			if err != nil {
				t.Fatalf("NewProjectile() error = %v", err)
			}
			if id == 0 {
				t.Fatal("Expected valid entity ID, got 0")
			}

			proj, ok := ecs.GetComponent[*components.ProjectileComponent](em, id)
			if !ok {
				t.Fatal("Projectile should have ProjectileComponent")
			}
			if proj.CardName != tt.input.CardName || proj.Damage != tt.input.Damage {
				t.Errorf("Unexpected projectile component: %+v", proj)
			}

			pierce, ok := ecs.GetComponent[*components.PierceComponent](em, id)
			if !ok || pierce.PierceCount != tt.input.Pierce {
				t.Errorf("Expected pierce %d, got %+v", tt.input.Pierce, pierce)
			}
			if !ecs.HasComponent[*components.StatusRollComponent](em, id) {
				t.Error("Projectile should have StatusRollComponent")
			}
			if got := ecs.HasComponent[*components.LifetimeComponent](em, id); got != tt.wantLifetime {
				t.Errorf("LifetimeComponent present = %v, want %v", got, tt.wantLifetime)
			}
			if got := ecs.HasComponent[*components.SequenceComponent](em, id); got != tt.wantSequence {
				t.Errorf("SequenceComponent present = %v, want %v", got, tt.wantSequence)
			}
		})
	}
}

func TestNewProjectileNilManager(t *testing.T) {
	if _, err := NewProjectile(nil, ProjectileSpec{}); err == nil {
		t.Error("Expected error for nil entity manager")
	}
}

func TestStatusCapabilitiesFromConfig(t *testing.T) {
	chances := config.StatusChances{
		Burn:    floatPtr(20),
		Special: floatPtr(5),
	}

	caps := StatusCapabilitiesFromConfig(chances, 10)

	if caps.Burn == nil || caps.Burn.BaseChance != 20 {
		t.Errorf("Expected burn 20, got %+v", caps.Burn)
	}
	if caps.Special == nil || caps.Special.BaseChance != 15 {
		t.Errorf("Expected special 15 with bonus, got %+v", caps.Special)
	}
	if caps.Slow != nil || caps.Static != nil {
		t.Error("Unconfigured families must stay nil")
	}
}
