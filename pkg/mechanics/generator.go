// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package mechanics implements challenge generation and attempt scoring.
package mechanics

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/typegamer/rhythm-core/pkg/difficulty"
)

// Challenge is a single word challenge. It is immutable once generated and
// consumed by exactly one submit.
type Challenge struct {
	Word             string    `json:"word"`
	TimeLimit        float64   `json:"timeLimit"`
	PointsPossible   int       `json:"pointsPossible"`
	Level            int       `json:"level"`
	ComboRequirement int       `json:"comboRequirement"`
	PowerUps         []PowerUp `json:"powerUps"`
	RhythmPattern    []float64 `json:"rhythmPattern"`
}

// WordSource supplies one word at a target difficulty level.
type WordSource interface {
	Word(targetLevel int, variance float64) string
}

// challengeLevelWeights bias generated challenges toward the user's level:
// 20% one easier, 60% at level, 20% one harder.
var challengeLevelWeights = [3]float64{0.2, 0.6, 0.2}

// patternBank holds the per-letter beat weight patterns a challenge can
// carry: regular, syncopated, quick-slow, long-short, triple-long.
var patternBank = [][]float64{
	{1.0, 1.0, 1.0, 1.0},
	{0.8, 1.2, 0.8, 1.2},
	{0.5, 0.5, 1.0, 1.0},
	{1.5, 0.5, 1.5, 0.5},
	{0.7, 0.7, 0.7, 1.9},
}

// Generator produces challenges from a word source and the balance config.
type Generator struct {
	cfg   Config
	words WordSource

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator with a time-seeded random source.
func NewGenerator(cfg Config, words WordSource) *Generator {
	return NewGeneratorWithRand(cfg, words, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewGeneratorWithRand creates a generator with an explicit random source.
func NewGeneratorWithRand(cfg Config, words WordSource, rng *rand.Rand) *Generator {
	return &Generator{cfg: cfg, words: words, rng: rng}
}

// Generate produces the next challenge for a user level. The actual level is
// drawn from [userLevel-1, userLevel+1] clamped to [1,5] with fixed weights,
// and one word is drawn at exactly that level.
func (g *Generator) Generate(userLevel int) Challenge {
	g.mu.Lock()
	defer g.mu.Unlock()

	selected := g.selectLevel(userLevel)
	word := g.words.Word(selected, 0)
	diff := difficulty.Analyze(word).Level()

	points := int(math.Round(float64(g.cfg.BasePoints) * float64(diff) * g.cfg.ChallengeMultiplier))
	timeLimit := round1(0.5 * float64(len(word)) * (1 + 0.2*float64(diff)))

	challenge := Challenge{
		Word:             word,
		TimeLimit:        timeLimit,
		PointsPossible:   points,
		Level:            selected,
		ComboRequirement: clampInt(selected*2, 3, 10),
		PowerUps:         g.drawPowerUps(selected),
		RhythmPattern:    append([]float64(nil), patternBank[g.rng.Intn(len(patternBank))]...),
	}

	logrus.Debugf("generated challenge: word=%q level=%d points=%d timeLimit=%.1f",
		challenge.Word, challenge.Level, challenge.PointsPossible, challenge.TimeLimit)
	return challenge
}

func (g *Generator) selectLevel(userLevel int) int {
	levels := [3]int{
		clampInt(userLevel-1, 1, 5),
		clampInt(userLevel, 1, 5),
		clampInt(userLevel+1, 1, 5),
	}

	r := g.rng.Float64()
	cumulative := 0.0
	for i, w := range challengeLevelWeights {
		cumulative += w
		if r < cumulative {
			return levels[i]
		}
	}
	return levels[len(levels)-1]
}

// drawPowerUps samples up to two distinct power-ups unlocked at the level.
func (g *Generator) drawPowerUps(level int) []PowerUp {
	available := UnlockedPowerUps(level)
	count := len(available)
	if count > 2 {
		count = 2
	}

	drawn := make([]PowerUp, 0, count)
	for _, i := range g.rng.Perm(len(available))[:count] {
		drawn = append(drawn, available[i])
	}
	return drawn
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
