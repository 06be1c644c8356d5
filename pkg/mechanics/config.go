// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mechanics

import "fmt"

// Config carries the game-balance constants. The values are deliberately
// explicit fields with validated ranges instead of a loose map.
type Config struct {
	// BasePoints is the point value of a word before multipliers.
	BasePoints int
	// ComboMultiplier is the per-combo score bonus applied while scoring
	// (0.1 means +10% per consecutive word).
	ComboMultiplier float64
	// ChallengeMultiplier scales the advertised points_possible of a
	// generated challenge.
	ChallengeMultiplier float64
	// AccuracyThreshold is the minimum accuracy (0-100) that keeps a combo
	// alive on an imperfect match.
	AccuracyThreshold float64
}

// DefaultConfig returns the balance constants of the original service.
func DefaultConfig() Config {
	return Config{
		BasePoints:          10,
		ComboMultiplier:     0.1,
		ChallengeMultiplier: 1.0,
		AccuracyThreshold:   95,
	}
}

// Validate checks that every constant is in a sane range.
func (c Config) Validate() error {
	if c.BasePoints <= 0 {
		return fmt.Errorf("base points must be positive, got %d", c.BasePoints)
	}
	if c.ComboMultiplier < 0 {
		return fmt.Errorf("combo multiplier must be non-negative, got %v", c.ComboMultiplier)
	}
	if c.ChallengeMultiplier <= 0 {
		return fmt.Errorf("challenge multiplier must be positive, got %v", c.ChallengeMultiplier)
	}
	if c.AccuracyThreshold < 0 || c.AccuracyThreshold > 100 {
		return fmt.Errorf("accuracy threshold must be within [0,100], got %v", c.AccuracyThreshold)
	}
	return nil
}
