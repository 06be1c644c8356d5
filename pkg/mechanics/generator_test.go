// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mechanics

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/typegamer/rhythm-core/pkg/difficulty"
)

// stubWords returns canned words per level and records requests.
type stubWords struct {
	byLevel  map[int]string
	requests []int
}

func (s *stubWords) Word(targetLevel int, variance float64) string {
	s.requests = append(s.requests, targetLevel)
	if w, ok := s.byLevel[targetLevel]; ok {
		return w
	}
	return fmt.Sprintf("level%dword", targetLevel)
}

func newTestGenerator(words WordSource) *Generator {
	return NewGeneratorWithRand(DefaultConfig(), words, rand.New(rand.NewSource(7)))
}

func TestGenerate_LevelStaysWithinBand(t *testing.T) {
	for userLevel := 1; userLevel <= 5; userLevel++ {
		words := &stubWords{}
		g := newTestGenerator(words)

		for i := 0; i < 200; i++ {
			c := g.Generate(userLevel)
			lo, hi := userLevel-1, userLevel+1
			if lo < 1 {
				lo = 1
			}
			if hi > 5 {
				hi = 5
			}
			if c.Level < lo || c.Level > hi {
				t.Fatalf("Generate(%d) selected level %d outside [%d,%d]", userLevel, c.Level, lo, hi)
			}
		}
	}
}

func TestGenerate_DrawsWordAtSelectedLevel(t *testing.T) {
	words := &stubWords{}
	g := newTestGenerator(words)

	for i := 0; i < 50; i++ {
		c := g.Generate(3)
		if want := fmt.Sprintf("level%dword", c.Level); c.Word != want {
			t.Fatalf("challenge word %q does not match selected level %d", c.Word, c.Level)
		}
	}
	for _, requested := range words.requests {
		if requested < 2 || requested > 4 {
			t.Errorf("word source asked for level %d, expected 2-4", requested)
		}
	}
}

func TestGenerate_PointsAndTimeLimit(t *testing.T) {
	words := &stubWords{byLevel: map[int]string{
		1: "keyboard", 2: "keyboard", 3: "keyboard",
	}}
	g := newTestGenerator(words)

	c := g.Generate(2)

	diff := difficulty.Analyze("keyboard").Level()
	if expected := 10 * diff; c.PointsPossible != expected {
		t.Errorf("PointsPossible = %d, expected %d", c.PointsPossible, expected)
	}
	if expected := round1(0.5 * 8 * (1 + 0.2*float64(diff))); c.TimeLimit != expected {
		t.Errorf("TimeLimit = %v, expected %v", c.TimeLimit, expected)
	}
}

func TestGenerate_ComboRequirementClamped(t *testing.T) {
	words := &stubWords{}
	g := newTestGenerator(words)

	for i := 0; i < 100; i++ {
		c := g.Generate(1 + i%5)
		if c.ComboRequirement < 3 || c.ComboRequirement > 10 {
			t.Fatalf("ComboRequirement = %d, expected within [3,10]", c.ComboRequirement)
		}
		if expected := clampInt(c.Level*2, 3, 10); c.ComboRequirement != expected {
			t.Fatalf("ComboRequirement = %d for level %d, expected %d",
				c.ComboRequirement, c.Level, expected)
		}
	}
}

func TestGenerate_PowerUpsUnlockedAndDistinct(t *testing.T) {
	words := &stubWords{}
	g := newTestGenerator(words)

	for i := 0; i < 100; i++ {
		c := g.Generate(1 + i%5)
		if len(c.PowerUps) > 2 {
			t.Fatalf("challenge carries %d power-ups, expected at most 2", len(c.PowerUps))
		}

		seen := make(map[PowerUp]bool)
		unlocked := UnlockedPowerUps(c.Level)
		for _, p := range c.PowerUps {
			if seen[p] {
				t.Fatalf("duplicate power-up %q", p)
			}
			seen[p] = true

			found := false
			for _, u := range unlocked {
				if u == p {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("power-up %q is not unlocked at level %d", p, c.Level)
			}
		}
	}
}

func TestGenerate_PatternFromBank(t *testing.T) {
	words := &stubWords{}
	g := newTestGenerator(words)

	for i := 0; i < 50; i++ {
		c := g.Generate(3)
		found := false
		for _, pattern := range patternBank {
			if reflect.DeepEqual(c.RhythmPattern, pattern) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("rhythm pattern %v is not in the pattern bank", c.RhythmPattern)
		}
	}
}

func TestUnlockedPowerUps_Gating(t *testing.T) {
	tests := []struct {
		level    int
		expected int
	}{
		{1, 2}, // time_freeze, point_boost
		{2, 3}, // + shield
		{3, 4}, // + slow_motion
		{4, 5}, // + instant_clear
		{5, 6}, // + combo_lock
	}

	for _, tt := range tests {
		if got := len(UnlockedPowerUps(tt.level)); got != tt.expected {
			t.Errorf("UnlockedPowerUps(%d) has %d entries, expected %d", tt.level, got, tt.expected)
		}
	}
}

func TestIsOneShot(t *testing.T) {
	oneShots := []PowerUp{PowerUpTimeFreeze, PowerUpPointBoost, PowerUpInstantClear}
	persistent := []PowerUp{PowerUpShield, PowerUpSlowMotion, PowerUpComboLock}

	for _, p := range oneShots {
		if !IsOneShot(p) {
			t.Errorf("IsOneShot(%q) = false, expected true", p)
		}
	}
	for _, p := range persistent {
		if IsOneShot(p) {
			t.Errorf("IsOneShot(%q) = true, expected false", p)
		}
	}
}
