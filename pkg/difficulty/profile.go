// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package difficulty

import "math"

// Profile holds the difficulty metrics computed for a single word.
// All component scores are in [1.0, 5.0]; the zero Profile (empty word)
// carries a Final of 0 and reports level 1 by convention.
type Profile struct {
	Word            string  `json:"word"`
	LengthScore     float64 `json:"lengthScore"`
	ComplexityScore float64 `json:"complexityScore"`
	PatternScore    float64 `json:"patternScore"`
	TypingScore     float64 `json:"typingScore"`
	Final           float64 `json:"finalScore"`
}

// Level returns the integer difficulty level (1-5) derived from the final score.
func (p Profile) Level() int {
	level := int(math.Round(p.Final))
	if level < 1 {
		return 1
	}
	if level > 5 {
		return 5
	}
	return level
}

// IsZero reports whether the profile is the zero result of an empty word.
func (p Profile) IsZero() bool {
	return p.Final == 0
}
