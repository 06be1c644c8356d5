// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package session

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/typegamer/rhythm-core/pkg/mechanics"
	"github.com/typegamer/rhythm-core/pkg/metrics"
	"github.com/typegamer/rhythm-core/pkg/rhythm"
	"github.com/typegamer/rhythm-core/pkg/stats"
)

// StatsStore is the persistence surface the coordinator needs. It is
// satisfied by stats.Store.
type StatsStore interface {
	Get(ctx context.Context, userID string) (*stats.AggregateStats, error)
	Upsert(ctx context.Context, userID string, apply func(*stats.AggregateStats)) (*stats.AggregateStats, error)
	AppendScore(ctx context.Context, userID string, record stats.ScoreRecord) error
	RecentScores(ctx context.Context, userID string, limit int) ([]stats.ScoreRecord, error)
}

// StartResult is the initial state handed to a freshly started session.
type StartResult struct {
	Challenge         mechanics.Challenge `json:"challenge"`
	PowerUpsAvailable []mechanics.PowerUp `json:"powerUpsAvailable"`
	ComboCount        int                 `json:"comboCount"`
}

// SubmitResult is the outcome of scoring one attempt.
type SubmitResult struct {
	Score           int                 `json:"score"`
	Accuracy        float64             `json:"accuracy"`
	ComboMaintained bool                `json:"comboMaintained"`
	ComboCount      int                 `json:"comboCount"`
	TotalScore      int                 `json:"totalScore"`
	WordsCompleted  int                 `json:"wordsCompleted"`
	AvgAccuracy     float64             `json:"avgAccuracy"`
	ActivePowerUps  []mechanics.PowerUp `json:"activePowerUps"`
	NextChallenge   mechanics.Challenge `json:"nextChallenge"`
	NewLevel        int                 `json:"newLevel"`
	HighScore       int                 `json:"highScore"`
}

// Summary is the final accounting of an ended session.
type Summary struct {
	TotalScore     int     `json:"totalScore"`
	WordsCompleted int     `json:"wordsCompleted"`
	AvgAccuracy    float64 `json:"avgAccuracy"`
	Duration       float64 `json:"duration"`
	WordsPerMinute float64 `json:"wordsPerMinute"`
}

// StatsView is the user-facing statistics report.
type StatsView struct {
	TotalGames   int                 `json:"totalGames"`
	HighScore    int                 `json:"highScore"`
	AvgAccuracy  float64             `json:"avgAccuracy"`
	TotalWords   int                 `json:"totalWords"`
	Level        int                 `json:"level"`
	RecentScores []stats.ScoreRecord `json:"recentScores"`
}

// MusicState reports the user's music clock.
type MusicState struct {
	Active   bool         `json:"active"`
	Track    rhythm.Track `json:"track,omitempty"`
	Position int          `json:"position"`
}

// Coordinator owns all live game sessions and the per-user music clocks.
// One mutex guards the session table so that every operation observes and
// mutates a session atomically.
type Coordinator struct {
	mu       sync.Mutex
	sessions map[string]*GameSession
	clocks   map[string]*rhythm.Clock

	store     StatsStore
	generator *mechanics.Generator
	scorer    *mechanics.Scorer
	tracks    rhythm.Catalog
	now       func() time.Time
}

// NewCoordinator creates a coordinator over the given collaborators.
func NewCoordinator(store StatsStore, generator *mechanics.Generator, scorer *mechanics.Scorer, tracks rhythm.Catalog) *Coordinator {
	return NewCoordinatorWithNow(store, generator, scorer, tracks, time.Now)
}

// NewCoordinatorWithNow creates a coordinator with an explicit time source.
func NewCoordinatorWithNow(store StatsStore, generator *mechanics.Generator, scorer *mechanics.Scorer, tracks rhythm.Catalog, now func() time.Time) *Coordinator {
	return &Coordinator{
		sessions:  make(map[string]*GameSession),
		clocks:    make(map[string]*rhythm.Clock),
		store:     store,
		generator: generator,
		scorer:    scorer,
		tracks:    tracks,
		now:       now,
	}
}

// Start opens a fresh session for the user, replacing any running one,
// and hands out the first challenge.
func (c *Coordinator) Start(ctx context.Context, userID string) (StartResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.sessions[userID]; ok {
		logrus.Infof("replacing running session for user %s", userID)
		c.dropSessionLocked(userID)
	}

	challenge, err := c.generateLocked(ctx, userID)
	if err != nil {
		return StartResult{}, err
	}

	sess := &GameSession{
		UserID:           userID,
		CurrentChallenge: challenge,
		StartTime:        c.now(),
	}
	c.sessions[userID] = sess

	metrics.SessionsStartedTotal.Inc()
	logrus.Infof("started session for user %s at challenge level %d", userID, challenge.Level)

	return StartResult{
		Challenge:         challenge,
		PowerUpsAvailable: sess.ActivePowerUps,
		ComboCount:        sess.ComboCount,
	}, nil
}

// NextChallenge generates a new challenge for the user's level and makes
// it the session's current one. A user with no session gets one opened
// implicitly.
func (c *Coordinator) NextChallenge(ctx context.Context, userID string) (mechanics.Challenge, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.sessions[userID]
	if !ok {
		sess = &GameSession{UserID: userID, StartTime: c.now()}
		c.sessions[userID] = sess
	}

	challenge, err := c.generateLocked(ctx, userID)
	if err != nil {
		return mechanics.Challenge{}, err
	}
	sess.CurrentChallenge = challenge
	return challenge, nil
}

// Submit scores one attempt against the user's session. The score record
// and aggregate update are persisted before any session state changes, so
// a storage failure leaves the session exactly as it was.
func (c *Coordinator) Submit(ctx context.Context, userID string, attempt Attempt) (SubmitResult, error) {
	if err := attempt.Validate(); err != nil {
		return SubmitResult{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.sessions[userID]
	if !ok {
		return SubmitResult{}, ErrNoActiveSession
	}

	result := c.scorer.Score(
		attempt.TypedWord,
		attempt.TargetWord,
		attempt.TimeTaken,
		attempt.TimeLimit,
		sess.ComboCount,
		sess.ActivePowerUps,
	)

	now := c.now()
	record := stats.ScoreRecord{
		Score:      result.Points,
		Accuracy:   result.Accuracy,
		WordsTyped: 1,
		TimeTaken:  attempt.TimeTaken,
		Timestamp:  now,
	}
	if err := c.store.AppendScore(ctx, userID, record); err != nil {
		return SubmitResult{}, fmt.Errorf("failed to record score: %w", err)
	}

	agg, err := c.store.Upsert(ctx, userID, func(s *stats.AggregateStats) {
		stats.Apply(s, result.Points, result.Accuracy, 1, now)
	})
	if err != nil {
		return SubmitResult{}, fmt.Errorf("failed to update stats: %w", err)
	}

	sess.TotalScore += result.Points
	sess.WordsCompleted++
	sess.AvgAccuracy = (sess.AvgAccuracy*float64(sess.WordsCompleted-1) + result.Accuracy) / float64(sess.WordsCompleted)

	if result.ComboMaintained {
		sess.ComboCount++
		metrics.AttemptsScoredTotal.WithLabelValues("maintained").Inc()
	} else {
		sess.ComboCount = 0
		metrics.AttemptsScoredTotal.WithLabelValues("broken").Inc()
	}

	applyPowerUpUse(sess, attempt.PowerUpsUsed)

	next := c.generator.Generate(stats.GenerationLevel(agg))
	metrics.ChallengesGeneratedTotal.WithLabelValues(strconv.Itoa(next.Level)).Inc()
	sess.CurrentChallenge = next

	return SubmitResult{
		Score:           result.Points,
		Accuracy:        result.Accuracy,
		ComboMaintained: result.ComboMaintained,
		ComboCount:      sess.ComboCount,
		TotalScore:      sess.TotalScore,
		WordsCompleted:  sess.WordsCompleted,
		AvgAccuracy:     round1(sess.AvgAccuracy),
		ActivePowerUps:  sess.ActivePowerUps,
		NextChallenge:   next,
		NewLevel:        stats.UserLevel(agg),
		HighScore:       agg.HighScore,
	}, nil
}

// End closes the user's session and reports its final totals.
func (c *Coordinator) End(ctx context.Context, userID string) (Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.sessions[userID]
	if !ok {
		return Summary{}, ErrNoActiveSession
	}

	duration := c.now().Sub(sess.StartTime).Seconds()
	wpm := 0.0
	if duration > 0 {
		wpm = float64(sess.WordsCompleted) * 60 / duration
	}

	summary := Summary{
		TotalScore:     sess.TotalScore,
		WordsCompleted: sess.WordsCompleted,
		AvgAccuracy:    round1(sess.AvgAccuracy),
		Duration:       round1(duration),
		WordsPerMinute: round1(wpm),
	}

	c.dropSessionLocked(userID)
	metrics.SessionsEndedTotal.Inc()
	logrus.Infof("ended session for user %s: score=%d words=%d wpm=%.1f",
		userID, summary.TotalScore, summary.WordsCompleted, summary.WordsPerMinute)

	return summary, nil
}

// UserStats reports the user's lifetime statistics and best recent scores.
func (c *Coordinator) UserStats(ctx context.Context, userID string) (StatsView, error) {
	agg, err := c.store.Get(ctx, userID)
	if err != nil {
		return StatsView{}, fmt.Errorf("failed to load stats: %w", err)
	}

	recent, err := c.store.RecentScores(ctx, userID, stats.RecentScoreLimit)
	if err != nil {
		return StatsView{}, fmt.Errorf("failed to load recent scores: %w", err)
	}

	view := StatsView{Level: stats.UserLevel(agg), RecentScores: recent}
	if agg != nil {
		view.TotalGames = agg.TotalGames
		view.HighScore = agg.HighScore
		view.AvgAccuracy = round2(agg.AvgAccuracy)
		view.TotalWords = agg.TotalWords
	}
	return view, nil
}

// StartMusic starts the user's music clock on a level's track.
func (c *Coordinator) StartMusic(userID string, level int) (rhythm.Track, error) {
	track, err := c.userClock(userID).Start(level)
	if err != nil {
		return rhythm.Track{}, err
	}
	metrics.MusicStartsTotal.WithLabelValues(strconv.Itoa(level)).Inc()
	return track, nil
}

// StopMusic stops the user's music clock if one is running.
func (c *Coordinator) StopMusic(userID string) {
	c.mu.Lock()
	clock, ok := c.clocks[userID]
	c.mu.Unlock()
	if ok {
		clock.Stop()
	}
}

// NextBeat reports the upcoming beat of the user's music clock.
func (c *Coordinator) NextBeat(userID string) (rhythm.BeatInfo, bool) {
	return c.userClock(userID).NextBeat()
}

// SyncWord maps a word's letters onto the user's beat onsets.
func (c *Coordinator) SyncWord(userID, word string) []rhythm.LetterTiming {
	return c.userClock(userID).SyncWord(word)
}

// AdvanceBeat moves the user's music clock one beat forward.
func (c *Coordinator) AdvanceBeat(userID string) {
	c.userClock(userID).Advance()
}

// Music reports the state of the user's music clock.
func (c *Coordinator) Music(userID string) MusicState {
	clock := c.userClock(userID)
	track, active := clock.CurrentTrack()
	return MusicState{Active: active, Track: track, Position: clock.Position()}
}

// generateLocked draws the next challenge at the user's persisted level.
// Callers must hold the mutex.
func (c *Coordinator) generateLocked(ctx context.Context, userID string) (mechanics.Challenge, error) {
	agg, err := c.store.Get(ctx, userID)
	if err != nil {
		return mechanics.Challenge{}, fmt.Errorf("failed to load stats: %w", err)
	}

	challenge := c.generator.Generate(stats.GenerationLevel(agg))
	metrics.ChallengesGeneratedTotal.WithLabelValues(strconv.Itoa(challenge.Level)).Inc()
	return challenge, nil
}

// dropSessionLocked removes the session and stops the user's music clock.
// Callers must hold the mutex.
func (c *Coordinator) dropSessionLocked(userID string) {
	delete(c.sessions, userID)
	if clock, ok := c.clocks[userID]; ok {
		clock.Stop()
	}
}

// userClock returns the user's music clock, creating a stopped one on
// first use.
func (c *Coordinator) userClock(userID string) *rhythm.Clock {
	c.mu.Lock()
	defer c.mu.Unlock()

	clock, ok := c.clocks[userID]
	if !ok {
		clock = rhythm.NewClockWithNow(c.tracks, c.now)
		c.clocks[userID] = clock
	}
	return clock
}

// applyPowerUpUse updates the session's active power-ups after one
// attempt. Using an inactive power-up activates it; using an active
// one-shot consumes it for good. A consumed one-shot does not reactivate
// from the same attempt.
func applyPowerUpUse(sess *GameSession, used []mechanics.PowerUp) {
	var consumed []mechanics.PowerUp
	kept := make([]mechanics.PowerUp, 0, len(sess.ActivePowerUps))
	for _, p := range sess.ActivePowerUps {
		if mechanics.IsOneShot(p) && containsPowerUp(used, p) {
			consumed = append(consumed, p)
			continue
		}
		kept = append(kept, p)
	}

	for _, p := range used {
		if containsPowerUp(kept, p) || containsPowerUp(consumed, p) {
			continue
		}
		kept = append(kept, p)
	}
	sess.ActivePowerUps = kept
}

func containsPowerUp(list []mechanics.PowerUp, p mechanics.PowerUp) bool {
	for _, candidate := range list {
		if candidate == p {
			return true
		}
	}
	return false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
