// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package stats persists per-user lifetime game statistics and recent
// score records in Redis.
package stats

import (
	"time"
)

// AggregateStats accumulates a user's lifetime game results.
type AggregateStats struct {
	TotalGames    int       `json:"totalGames"`
	TotalScore    int       `json:"totalScore"`
	HighScore     int       `json:"highScore"`
	TotalWords    int       `json:"totalWords"`
	TotalAccuracy float64   `json:"totalAccuracy"`
	AvgAccuracy   float64   `json:"avgAccuracy"`
	LastPlayed    time.Time `json:"lastPlayed"`
}

// ScoreRecord is one scored attempt, kept for the recent-scores view.
type ScoreRecord struct {
	Score      int       `json:"score"`
	Accuracy   float64   `json:"accuracy"`
	WordsTyped int       `json:"wordsTyped"`
	TimeTaken  float64   `json:"timeTaken"`
	Timestamp  time.Time `json:"timestamp"`
}
