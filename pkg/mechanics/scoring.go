// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mechanics

import (
	"math"
	"strings"

	"github.com/typegamer/rhythm-core/pkg/difficulty"
)

// ScoreResult is the pure output of scoring one attempt. The caller folds it
// into session and persisted state; the result itself is never stored.
type ScoreResult struct {
	Points          int     `json:"points"`
	Accuracy        float64 `json:"accuracy"`
	ComboMaintained bool    `json:"comboMaintained"`
}

// Scorer scores attempts against the balance config. It is stateless and
// safe for concurrent use.
type Scorer struct {
	cfg Config
}

// NewScorer creates a scorer.
func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score computes the result of one typed attempt. Either string being empty
// yields the zero result. Accuracy derives from case-insensitive Levenshtein
// distance; the final points combine word difficulty with time, combo and
// power-up multipliers.
func (s *Scorer) Score(typed, target string, timeTaken, timeLimit float64, comboCount int, active []PowerUp) ScoreResult {
	if typed == "" || target == "" {
		return ScoreResult{}
	}

	typedLower := strings.ToLower(typed)
	targetLower := strings.ToLower(target)

	distance := levenshtein(typedLower, targetLower)
	maxLen := len([]rune(typed))
	if l := len([]rune(target)); l > maxLen {
		maxLen = l
	}
	accuracy := (1 - float64(distance)/float64(maxLen)) * 100

	perfect := typedLower == targetLower

	timeBonus := 1.0
	if timeTaken < timeLimit {
		timeBonus = 1 + (timeLimit-timeTaken)/timeLimit
	}

	comboBonus := 1.0
	if comboCount > 0 {
		comboBonus = 1 + float64(comboCount)*s.cfg.ComboMultiplier
	}

	powerUpMultiplier := 1.0
	if hasPowerUp(active, PowerUpPointBoost) {
		powerUpMultiplier *= 2.0
	}
	if hasPowerUp(active, PowerUpComboLock) {
		comboBonus *= 1.5
	}

	diff := float64(difficulty.Analyze(target).Level())
	points := math.Round(float64(s.cfg.BasePoints) * diff * timeBonus * comboBonus * powerUpMultiplier)

	return ScoreResult{
		Points:          int(points),
		Accuracy:        round1(accuracy),
		ComboMaintained: perfect || accuracy >= s.cfg.AccuracyThreshold || hasPowerUp(active, PowerUpShield),
	}
}

// levenshtein computes the classic single-edit-cost distance between two
// strings (insert, delete and substitute each cost 1).
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	previous := make([]int, len(rb)+1)
	current := make([]int, len(rb)+1)
	for j := range previous {
		previous[j] = j
	}

	for i, ca := range ra {
		current[0] = i + 1
		for j, cb := range rb {
			insertion := previous[j+1] + 1
			deletion := current[j] + 1
			substitution := previous[j]
			if ca != cb {
				substitution++
			}
			current[j+1] = minInt(insertion, deletion, substitution)
		}
		previous, current = current, previous
	}

	return previous[len(rb)]
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
