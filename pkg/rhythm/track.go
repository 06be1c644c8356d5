// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package rhythm owns track metadata and the beat clock that aligns word
// letters with a track's onset pattern.
package rhythm

import (
	"fmt"
	"time"
)

// Track describes one level's music: tempo, the cyclic onset pattern
// (1 = onset, 0 = rest) and the subdivision of each beat.
type Track struct {
	Name         string  `yaml:"name" json:"name"`
	URL          string  `yaml:"url" json:"url"`
	BPM          float64 `yaml:"bpm" json:"bpm"`
	Pattern      []int   `yaml:"pattern" json:"pattern"`
	BeatDivision int     `yaml:"beat_division" json:"beatDivision"`
}

// PatternLength returns the length of the onset pattern.
func (t Track) PatternLength() int {
	return len(t.Pattern)
}

// BeatDuration returns the wall-clock duration of one beat.
func (t Track) BeatDuration() time.Duration {
	return time.Duration(60 / t.BPM * float64(time.Second))
}

// Validate checks the track invariants: positive tempo, a non-empty 0/1
// pattern with at least one onset and at least one subdivision per beat.
func (t Track) Validate() error {
	if t.BPM <= 0 {
		return fmt.Errorf("bpm must be positive, got %v", t.BPM)
	}
	if len(t.Pattern) == 0 {
		return fmt.Errorf("pattern must not be empty")
	}
	onsets := 0
	for i, bit := range t.Pattern {
		if bit != 0 && bit != 1 {
			return fmt.Errorf("pattern[%d] = %d, expected 0 or 1", i, bit)
		}
		onsets += bit
	}
	if onsets == 0 {
		return fmt.Errorf("pattern must contain at least one onset")
	}
	if t.BeatDivision < 1 {
		return fmt.Errorf("beat division must be at least 1, got %d", t.BeatDivision)
	}
	return nil
}
