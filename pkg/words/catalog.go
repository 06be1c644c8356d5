// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package words owns the per-level word lists and the analyzed-word cache.
// Lists are partitioned by difficulty level 1-5; every word is analyzed once
// and the cache is append-only for the life of the process.
package words

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/typegamer/rhythm-core/pkg/difficulty"
)

const (
	// MinLevel and MaxLevel bound the difficulty partitions.
	MinLevel = 1
	MaxLevel = 5
)

// Catalog holds the word lists and the analyzed-word cache. All access is
// serialized by a single mutex; the catalog is safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	store ListStore
	lists map[int][]string
	cache map[string]difficulty.Profile
	rng   *rand.Rand
}

// NewCatalog creates an empty catalog backed by the given list store.
// Call Load before serving words.
func NewCatalog(store ListStore) *Catalog {
	return NewCatalogWithRand(store, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewCatalogWithRand creates a catalog with an explicit random source,
// mostly useful for deterministic tests.
func NewCatalogWithRand(store ListStore, rng *rand.Rand) *Catalog {
	return &Catalog{
		store: store,
		lists: make(map[int][]string),
		cache: make(map[string]difficulty.Profile),
		rng:   rng,
	}
}

// Load reads the persisted list for every level and analyzes each word into
// the cache. A missing list is populated from the built-in fallback and
// written back; an unreadable list degrades to the fallback for that level
// only. Load never fails.
func (c *Catalog) Load() {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for level := MinLevel; level <= MaxLevel; level++ {
		list, err := c.store.Read(level)
		switch {
		case errors.Is(err, ErrListMissing):
			list = fallbackWords(level)
			if werr := c.store.Write(level, list); werr != nil {
				logrus.Warnf("failed to persist fallback word list for level %d: %v", level, werr)
			}
		case err != nil:
			logrus.Errorf("failed to load word list for level %d, using fallback: %v", level, err)
			list = fallbackWords(level)
		}

		c.lists[level] = append([]string(nil), list...)
		for _, word := range list {
			if _, ok := c.cache[word]; !ok {
				c.cache[word] = difficulty.Analyze(word)
			}
		}
		total += len(list)
	}

	logrus.Infof("loaded %d words across %d difficulty levels", total, MaxLevel)
}

// Word draws a uniformly random word whose level lies within
// [target-round(variance), target+round(variance)], clamped to [1,5].
// Rounding is half-to-even, matching the original service: a variance below
// 0.5 (0.5 included) collapses the band to the target level alone.
// An empty candidate pool falls back to the built-in list for the target.
func (c *Catalog) Word(targetLevel int, variance float64) string {
	spread := int(math.RoundToEven(math.Abs(variance)))
	minLevel := clampLevel(targetLevel - spread)
	maxLevel := clampLevel(targetLevel + spread)

	c.mu.Lock()
	defer c.mu.Unlock()

	var pool []string
	for level := minLevel; level <= maxLevel; level++ {
		pool = append(pool, c.lists[level]...)
	}

	if len(pool) == 0 {
		logrus.Warnf("no words found for difficulty %d, using fallback", targetLevel)
		pool = fallbackWords(targetLevel)
	}
	return pool[c.rng.Intn(len(pool))]
}

// Add analyzes a word, appends it to the list for its own level and persists
// the updated list. Adding a known word is a no-op. Returns false and leaves
// the catalog unchanged when persistence fails.
func (c *Catalog) Add(word string) bool {
	if word == "" {
		return false
	}

	profile := difficulty.Analyze(word)
	level := profile.Level()

	c.mu.Lock()
	defer c.mu.Unlock()

	if containsWord(c.lists[level], word) {
		return true
	}

	updated := append(append([]string(nil), c.lists[level]...), word)
	if err := c.store.Write(level, updated); err != nil {
		logrus.Errorf("failed to persist word %q at level %d: %v", word, level, err)
		return false
	}

	c.lists[level] = updated
	if _, ok := c.cache[word]; !ok {
		c.cache[word] = profile
	}
	logrus.Infof("added word %q to difficulty level %d", word, level)
	return true
}

// DifficultyOf returns the cached analysis for a word. It is a pure cache
// lookup: unseen words report false and are never analyzed as a side effect.
func (c *Catalog) DifficultyOf(word string) (difficulty.Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	profile, ok := c.cache[word]
	return profile, ok
}

// Words returns a copy of the list for a level.
func (c *Catalog) Words(level int) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]string(nil), c.lists[level]...)
}

// LevelStats summarizes one difficulty partition.
type LevelStats struct {
	Count         int      `json:"count"`
	AverageLength float64  `json:"averageLength"`
	SampleWords   []string `json:"sampleWords"`
}

// Stats reports catalog totals and a per-level breakdown.
type Stats struct {
	TotalWords    int                `json:"totalWords"`
	WordsPerLevel map[int]int        `json:"wordsPerLevel"`
	Levels        map[int]LevelStats `json:"difficultyDistribution"`
}

// CatalogStats computes the current catalog summary.
func (c *Catalog) CatalogStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{
		WordsPerLevel: make(map[int]int, MaxLevel),
		Levels:        make(map[int]LevelStats, MaxLevel),
	}
	for level := MinLevel; level <= MaxLevel; level++ {
		list := c.lists[level]
		stats.TotalWords += len(list)
		stats.WordsPerLevel[level] = len(list)

		var totalLen int
		for _, word := range list {
			totalLen += len(word)
		}
		avg := 0.0
		if len(list) > 0 {
			avg = float64(totalLen) / float64(len(list))
		}

		samples := append([]string(nil), list...)
		sort.Strings(samples)
		if len(samples) > 5 {
			samples = samples[:5]
		}

		stats.Levels[level] = LevelStats{
			Count:         len(list),
			AverageLength: avg,
			SampleWords:   samples,
		}
	}
	return stats
}

func clampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

func containsWord(list []string, word string) bool {
	for _, w := range list {
		if w == word {
			return true
		}
	}
	return false
}
