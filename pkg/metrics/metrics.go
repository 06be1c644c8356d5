// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package metrics defines the Prometheus collectors for the game core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// SessionsStartedTotal counts started game sessions.
	SessionsStartedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "typing_rhythm_sessions_started_total",
			Help: "Total number of game sessions started",
		},
	)

	// SessionsEndedTotal counts ended game sessions.
	SessionsEndedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "typing_rhythm_sessions_ended_total",
			Help: "Total number of game sessions ended",
		},
	)

	// AttemptsScoredTotal counts scored attempts, split by whether the
	// combo was maintained.
	AttemptsScoredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "typing_rhythm_attempts_scored_total",
			Help: "Total number of scored word attempts",
		},
		[]string{"combo"},
	)

	// ChallengesGeneratedTotal counts generated challenges per difficulty level.
	ChallengesGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "typing_rhythm_challenges_generated_total",
			Help: "Total number of word challenges generated",
		},
		[]string{"level"},
	)

	// WordsAddedTotal counts words added to the catalog.
	WordsAddedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "typing_rhythm_words_added_total",
			Help: "Total number of words added to the catalog",
		},
	)

	// MusicStartsTotal counts music clock starts per difficulty level.
	MusicStartsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "typing_rhythm_music_starts_total",
			Help: "Total number of music clock starts",
		},
		[]string{"level"},
	)
)

// Register adds all game collectors to the given registry.
func Register(registry *prometheus.Registry) {
	registry.MustRegister(
		SessionsStartedTotal,
		SessionsEndedTotal,
		AttemptsScoredTotal,
		ChallengesGeneratedTotal,
		WordsAddedTotal,
		MusicStartsTotal,
	)
}
