// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rhythm

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// BeatInfo describes the next beat of the active track.
type BeatInfo struct {
	BeatIndex    int       `json:"beatIndex"`
	AbsoluteTime time.Time `json:"absoluteTime"`
	PatternBit   int       `json:"patternBit"`
}

// LetterTiming assigns one letter of a word to an absolute onset time.
type LetterTiming struct {
	Letter       string    `json:"letter"`
	AbsoluteTime time.Time `json:"absoluteTime"`
}

// Clock tracks the beat phase of one playing track. It keeps no internal
// timer: the owner drives Advance from its own beat ticks. A Clock is
// intended to live alongside a single game session so that concurrent
// sessions never rebase each other's anchor.
type Clock struct {
	mu      sync.Mutex
	catalog Catalog
	now     func() time.Time

	track      *Track
	anchor     time.Time
	patternPos int
}

// NewClock creates a stopped clock over the given catalog.
func NewClock(catalog Catalog) *Clock {
	return NewClockWithNow(catalog, time.Now)
}

// NewClockWithNow creates a clock with an explicit time source.
func NewClockWithNow(catalog Catalog, now func() time.Time) *Clock {
	return &Clock{catalog: catalog, now: now}
}

// Start activates the track for a level and anchors the pattern's position
// zero at the current instant. A missing or unreachable track fails with
// ErrTrackUnavailable.
func (c *Clock) Start(level int) (Track, error) {
	track, ok := c.catalog.Track(level)
	if !ok || !c.catalog.Available(level) {
		return Track{}, fmt.Errorf("level %d: %w", level, ErrTrackUnavailable)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.track = &track
	c.anchor = c.now()
	c.patternPos = 0

	logrus.Infof("started music for level %d: %s (%.0f bpm)", level, track.Name, track.BPM)
	return track, nil
}

// Stop clears all clock state. It is idempotent.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.track = nil
	c.anchor = time.Time{}
	c.patternPos = 0
}

// Active reports whether a track is playing.
func (c *Clock) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.track != nil
}

// CurrentTrack returns the active track, if any.
func (c *Clock) CurrentTrack() (Track, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.track == nil {
		return Track{}, false
	}
	return *c.track, true
}

// NextBeat computes the upcoming beat from the anchor instant. Without an
// active track it reports false.
func (c *Clock) NextBeat() (BeatInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.track == nil {
		return BeatInfo{}, false
	}

	beatIndex, _ := c.nextBeatLocked()
	return BeatInfo{
		BeatIndex:    beatIndex,
		AbsoluteTime: c.beatTimeLocked(beatIndex),
		PatternBit:   c.track.Pattern[beatIndex%c.track.PatternLength()],
	}, true
}

// SyncWord assigns each letter of a word to an onset beat, starting from the
// next beat and skipping rests. Without an active track, or on a pattern
// with no onsets, every letter maps to the zero time; the call never fails.
func (c *Clock) SyncWord(word string) []LetterTiming {
	c.mu.Lock()
	defer c.mu.Unlock()

	letters := []rune(word)
	timings := make([]LetterTiming, 0, len(letters))

	if c.track == nil || !hasOnset(c.track.Pattern) {
		for _, letter := range letters {
			timings = append(timings, LetterTiming{Letter: string(letter)})
		}
		return timings
	}

	cursor, _ := c.nextBeatLocked()
	length := c.track.PatternLength()
	for _, letter := range letters {
		for c.track.Pattern[cursor%length] == 0 {
			cursor++
		}
		timings = append(timings, LetterTiming{
			Letter:       string(letter),
			AbsoluteTime: c.beatTimeLocked(cursor),
		})
		cursor++
	}
	return timings
}

// Advance moves the pattern position forward one beat and rebases the anchor
// to now. The owner calls this once per observed beat tick.
func (c *Clock) Advance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.track == nil {
		return
	}
	c.patternPos = (c.patternPos + 1) % c.track.PatternLength()
	c.anchor = c.now()
}

// Position returns the current pattern position.
func (c *Clock) Position() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.patternPos
}

// nextBeatLocked returns the index of the beat after the current instant and
// the beat duration in seconds. Callers must hold the mutex.
func (c *Clock) nextBeatLocked() (int, float64) {
	beatSeconds := 60 / c.track.BPM
	elapsed := c.now().Sub(c.anchor).Seconds()
	return int(math.Floor(elapsed/beatSeconds)) + 1, beatSeconds
}

func hasOnset(pattern []int) bool {
	for _, bit := range pattern {
		if bit == 1 {
			return true
		}
	}
	return false
}

func (c *Clock) beatTimeLocked(beatIndex int) time.Time {
	beatSeconds := 60 / c.track.BPM
	offset := time.Duration(float64(beatIndex) * beatSeconds * float64(time.Second))
	return c.anchor.Add(offset)
}
