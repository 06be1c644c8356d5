// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package stats

import (
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// wordsPerLevel is how many typed words advance the base level by one.
	wordsPerLevel = 50
	// accuracyBonusThreshold grants one bonus level to consistently
	// accurate typists.
	accuracyBonusThreshold = 95.0
	// maxGenerationLevel caps the level fed into challenge generation.
	maxGenerationLevel = 5
)

// Apply folds one scored attempt into the aggregate. The running average
// is derived from the accuracy total, so replaying the same attempts in
// any order yields the same aggregate.
func Apply(s *AggregateStats, score int, accuracy float64, words int, now time.Time) {
	s.TotalGames++
	s.TotalScore += score
	if score > s.HighScore {
		s.HighScore = score
	}
	s.TotalWords += words
	s.TotalAccuracy += accuracy
	s.AvgAccuracy = s.TotalAccuracy / float64(s.TotalGames)
	s.LastPlayed = now

	logrus.Debugf("applied attempt: score=%d accuracy=%.1f, totals games=%d avgAccuracy=%.2f",
		score, accuracy, s.TotalGames, s.AvgAccuracy)
}

// UserLevel derives a user's level from their aggregate stats. Every
// fifty typed words raises the base level up to four, and a lifetime
// average accuracy of 95% or better grants one bonus level. Unknown
// users start at level one.
func UserLevel(s *AggregateStats) int {
	if s == nil {
		return 1
	}

	base := s.TotalWords / wordsPerLevel
	if base > 4 {
		base = 4
	}

	bonus := 0
	if s.AvgAccuracy >= accuracyBonusThreshold {
		bonus = 1
	}

	return base + bonus + 1
}

// GenerationLevel is UserLevel clamped to the difficulty range used for
// challenge generation.
func GenerationLevel(s *AggregateStats) int {
	level := UserLevel(s)
	if level > maxGenerationLevel {
		return maxGenerationLevel
	}
	return level
}
