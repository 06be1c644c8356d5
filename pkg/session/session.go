// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package session coordinates per-user game sessions: challenge flow,
// scoring, power-up lifecycle and the user's music clock.
package session

import (
	"fmt"
	"time"

	"github.com/typegamer/rhythm-core/pkg/mechanics"
)

// GameSession is the in-memory state of one user's running game.
type GameSession struct {
	UserID           string              `json:"userId"`
	ComboCount       int                 `json:"comboCount"`
	ActivePowerUps   []mechanics.PowerUp `json:"activePowerUps"`
	CurrentChallenge mechanics.Challenge `json:"currentChallenge"`
	TotalScore       int                 `json:"totalScore"`
	WordsCompleted   int                 `json:"wordsCompleted"`
	AvgAccuracy      float64             `json:"avgAccuracy"`
	StartTime        time.Time           `json:"startTime"`
}

// Attempt is one typed word submitted against the current challenge.
type Attempt struct {
	TypedWord    string              `json:"typedWord"`
	TargetWord   string              `json:"targetWord"`
	TimeTaken    float64             `json:"timeTaken"`
	TimeLimit    float64             `json:"timeLimit"`
	PowerUpsUsed []mechanics.PowerUp `json:"powerUpsUsed"`
}

// Validate rejects attempts that cannot be scored. An empty typed word is
// a valid attempt: it scores zero and breaks the combo.
func (a Attempt) Validate() error {
	if a.TargetWord == "" {
		return fmt.Errorf("%w: target word is required", ErrInvalidAttempt)
	}
	if a.TimeTaken < 0 {
		return fmt.Errorf("%w: time taken must not be negative", ErrInvalidAttempt)
	}
	if a.TimeLimit < 0 {
		return fmt.Errorf("%w: time limit must not be negative", ErrInvalidAttempt)
	}
	return nil
}
