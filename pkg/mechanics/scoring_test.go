// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mechanics

import (
	"math"
	"testing"

	"github.com/typegamer/rhythm-core/pkg/difficulty"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"cat", "cat", 0},
		{"cat", "", 3},
		{"", "cat", 3},
		{"cat", "cut", 1},
		{"cat", "cats", 1},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}

	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.expected {
			t.Errorf("levenshtein(%q, %q) = %d, expected %d", tt.a, tt.b, got, tt.expected)
		}
		if forward, backward := levenshtein(tt.a, tt.b), levenshtein(tt.b, tt.a); forward != backward {
			t.Errorf("levenshtein(%q, %q) = %d but reversed = %d", tt.a, tt.b, forward, backward)
		}
	}
}

func TestScore_EmptyInput(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	for _, tt := range []struct{ typed, target string }{
		{"", "cat"},
		{"cat", ""},
		{"", ""},
	} {
		if got := scorer.Score(tt.typed, tt.target, 1, 2, 0, nil); got != (ScoreResult{}) {
			t.Errorf("Score(%q, %q) = %+v, expected zero result", tt.typed, tt.target, got)
		}
	}
}

func TestScore_PerfectMatchWithTimeBonus(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	result := scorer.Score("cat", "cat", 1.0, 2.0, 0, nil)

	if result.Accuracy != 100.0 {
		t.Errorf("Accuracy = %v, expected 100.0", result.Accuracy)
	}
	if !result.ComboMaintained {
		t.Error("ComboMaintained = false for a perfect match")
	}

	// Time bonus is 1 + (2-1)/2 = 1.5; no combo or power-up multipliers.
	diff := float64(difficulty.Analyze("cat").Level())
	expected := int(math.Round(10 * diff * 1.5))
	if result.Points != expected {
		t.Errorf("Points = %d, expected %d", result.Points, expected)
	}
}

func TestScore_CaseInsensitiveMatch(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	result := scorer.Score("CaT", "cat", 1.0, 2.0, 0, nil)
	if result.Accuracy != 100.0 {
		t.Errorf("Accuracy = %v, expected 100.0 for case-insensitive match", result.Accuracy)
	}
	if !result.ComboMaintained {
		t.Error("ComboMaintained = false for a case-insensitive match")
	}
}

func TestScore_NoTimeBonusAtOrPastLimit(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	atLimit := scorer.Score("cat", "cat", 2.0, 2.0, 0, nil)
	pastLimit := scorer.Score("cat", "cat", 5.0, 2.0, 0, nil)

	diff := float64(difficulty.Analyze("cat").Level())
	expected := int(math.Round(10 * diff))
	if atLimit.Points != expected {
		t.Errorf("Points at limit = %d, expected %d", atLimit.Points, expected)
	}
	if pastLimit.Points != expected {
		t.Errorf("Points past limit = %d, expected %d", pastLimit.Points, expected)
	}
}

func TestScore_ComboBonus(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	none := scorer.Score("cat", "cat", 2.0, 2.0, 0, nil)
	five := scorer.Score("cat", "cat", 2.0, 2.0, 5, nil)

	// Combo of 5 multiplies by 1 + 5*0.1 = 1.5.
	expected := int(math.Round(float64(none.Points) * 1.5))
	if five.Points != expected {
		t.Errorf("Points with combo 5 = %d, expected %d", five.Points, expected)
	}
}

func TestScore_PowerUpMultipliers(t *testing.T) {
	scorer := NewScorer(DefaultConfig())
	base := scorer.Score("cat", "cat", 2.0, 2.0, 0, nil)

	boosted := scorer.Score("cat", "cat", 2.0, 2.0, 0, []PowerUp{PowerUpPointBoost})
	if boosted.Points != base.Points*2 {
		t.Errorf("point_boost Points = %d, expected %d", boosted.Points, base.Points*2)
	}

	// combo_lock multiplies the combo bonus even when no combo is running.
	locked := scorer.Score("cat", "cat", 2.0, 2.0, 0, []PowerUp{PowerUpComboLock})
	expected := int(math.Round(float64(base.Points) * 1.5))
	if locked.Points != expected {
		t.Errorf("combo_lock Points = %d, expected %d", locked.Points, expected)
	}
}

func TestScore_ShieldMaintainsCombo(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	// A badly mistyped word breaks the combo without a shield.
	broken := scorer.Score("zzz", "cat", 1.0, 2.0, 3, nil)
	if broken.ComboMaintained {
		t.Error("ComboMaintained = true for a badly mistyped word")
	}

	shielded := scorer.Score("zzz", "cat", 1.0, 2.0, 3, []PowerUp{PowerUpShield})
	if !shielded.ComboMaintained {
		t.Error("ComboMaintained = false despite an active shield")
	}
}

func TestScore_AccuracyThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AccuracyThreshold = 80
	scorer := NewScorer(cfg)

	// One substitution in a five letter word: accuracy 80.
	result := scorer.Score("hella", "hello", 1.0, 2.0, 1, nil)
	if result.Accuracy != 80.0 {
		t.Fatalf("Accuracy = %v, expected 80.0", result.Accuracy)
	}
	if !result.ComboMaintained {
		t.Error("ComboMaintained = false at exactly the threshold")
	}

	strict := NewScorer(DefaultConfig())
	if strict.Score("hella", "hello", 1.0, 2.0, 1, nil).ComboMaintained {
		t.Error("ComboMaintained = true below the default threshold")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero base points", func(c *Config) { c.BasePoints = 0 }, true},
		{"negative combo multiplier", func(c *Config) { c.ComboMultiplier = -0.1 }, true},
		{"zero challenge multiplier", func(c *Config) { c.ChallengeMultiplier = 0 }, true},
		{"threshold above 100", func(c *Config) { c.AccuracyThreshold = 101 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
