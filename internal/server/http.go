// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package server hosts the HTTP API, the metrics endpoint and the
// telemetry setup.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/typegamer/rhythm-core/pkg/common"
	"github.com/typegamer/rhythm-core/pkg/metrics"
	"github.com/typegamer/rhythm-core/pkg/rhythm"
	"github.com/typegamer/rhythm-core/pkg/session"
	"github.com/typegamer/rhythm-core/pkg/stats"
	"github.com/typegamer/rhythm-core/pkg/words"
)

// userIDHeader identifies the calling user on every game route.
const userIDHeader = "X-User-ID"

// HTTPServer serves the game API.
type HTTPServer struct {
	server *http.Server
	port   int

	coordinator *session.Coordinator
	words       *words.Catalog
	health      *stats.HealthChecker

	// wordVariance is the default difficulty spread for word draws.
	wordVariance float64
}

// NewHTTPServer creates an HTTP server over the game components.
func NewHTTPServer(port int, coordinator *session.Coordinator, catalog *words.Catalog, health *stats.HealthChecker, wordVariance float64) *HTTPServer {
	return &HTTPServer{
		port:         port,
		coordinator:  coordinator,
		words:        catalog,
		health:       health,
		wordVariance: wordVariance,
	}
}

// Setup builds the route table.
func (s *HTTPServer) Setup() error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/v1/game/start", s.withUser(s.handleGameStart))
	mux.HandleFunc("GET /api/v1/game/challenge", s.withUser(s.handleGameChallenge))
	mux.HandleFunc("POST /api/v1/game/submit", s.withUser(s.handleGameSubmit))
	mux.HandleFunc("POST /api/v1/game/end", s.withUser(s.handleGameEnd))
	mux.HandleFunc("GET /api/v1/game/stats", s.withUser(s.handleGameStats))

	mux.HandleFunc("GET /api/v1/words/challenge", s.withUser(s.handleWordChallenge))
	mux.HandleFunc("POST /api/v1/words/analyze", s.withUser(s.handleWordAnalyze))
	mux.HandleFunc("GET /api/v1/words/list", s.withUser(s.handleWordList))
	mux.HandleFunc("POST /api/v1/words/add", s.withUser(s.handleWordAdd))
	mux.HandleFunc("GET /api/v1/words/stats", s.withUser(s.handleWordStats))

	mux.HandleFunc("POST /api/v1/music/start", s.withUser(s.handleMusicStart))
	mux.HandleFunc("POST /api/v1/music/stop", s.withUser(s.handleMusicStop))
	mux.HandleFunc("GET /api/v1/music/timing", s.withUser(s.handleMusicTiming))
	mux.HandleFunc("POST /api/v1/music/sync", s.withUser(s.handleMusicSync))
	mux.HandleFunc("POST /api/v1/music/advance", s.withUser(s.handleMusicAdvance))
	mux.HandleFunc("GET /api/v1/music/state", s.withUser(s.handleMusicState))

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return nil
}

// Handler exposes the route table, mostly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

// Start begins serving the API on the configured port.
func (s *HTTPServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("HTTP server listening on port %d", s.port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down HTTP server...")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("HTTP server stopped")
	return nil
}

// withUser enforces the user identity header.
func (s *HTTPServer) withUser(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(userIDHeader)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing "+userIDHeader+" header")
			return
		}
		next(w, r, userID)
	}
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.health.Check(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "dependency unhealthy")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleGameStart(w http.ResponseWriter, r *http.Request, userID string) {
	scope := common.GetScopeFromContext(r.Context(), "game.start")
	defer scope.Finish()
	scope.AddBaggage("userId", userID)

	result, err := s.coordinator.Start(scope.Ctx, userID)
	if err != nil {
		s.fail(scope, w, err, "failed to start game session")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *HTTPServer) handleGameChallenge(w http.ResponseWriter, r *http.Request, userID string) {
	scope := common.GetScopeFromContext(r.Context(), "game.challenge")
	defer scope.Finish()
	scope.AddBaggage("userId", userID)

	challenge, err := s.coordinator.NextChallenge(scope.Ctx, userID)
	if err != nil {
		s.fail(scope, w, err, "failed to generate challenge")
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

func (s *HTTPServer) handleGameSubmit(w http.ResponseWriter, r *http.Request, userID string) {
	scope := common.GetScopeFromContext(r.Context(), "game.submit")
	defer scope.Finish()
	scope.AddBaggage("userId", userID)

	var attempt session.Attempt
	if err := json.NewDecoder(r.Body).Decode(&attempt); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.coordinator.Submit(scope.Ctx, userID, attempt)
	if err != nil {
		s.fail(scope, w, err, "failed to submit attempt")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *HTTPServer) handleGameEnd(w http.ResponseWriter, r *http.Request, userID string) {
	scope := common.GetScopeFromContext(r.Context(), "game.end")
	defer scope.Finish()
	scope.AddBaggage("userId", userID)

	summary, err := s.coordinator.End(scope.Ctx, userID)
	if err != nil {
		s.fail(scope, w, err, "failed to end game session")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *HTTPServer) handleGameStats(w http.ResponseWriter, r *http.Request, userID string) {
	scope := common.GetScopeFromContext(r.Context(), "game.stats")
	defer scope.Finish()
	scope.AddBaggage("userId", userID)

	view, err := s.coordinator.UserStats(scope.Ctx, userID)
	if err != nil {
		s.fail(scope, w, err, "failed to load user stats")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleWordChallenge(w http.ResponseWriter, r *http.Request, userID string) {
	scope := common.GetScopeFromContext(r.Context(), "words.challenge")
	defer scope.Finish()

	level := queryInt(r, "level", 1)
	if level < words.MinLevel || level > words.MaxLevel {
		writeError(w, http.StatusBadRequest, "invalid difficulty level")
		return
	}
	variance := queryFloat(r, "variance", s.wordVariance)

	word := s.words.Word(level, variance)
	response := map[string]interface{}{"word": word}
	if profile, ok := s.words.DifficultyOf(word); ok {
		response["difficulty"] = profile
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *HTTPServer) handleWordAnalyze(w http.ResponseWriter, r *http.Request, userID string) {
	scope := common.GetScopeFromContext(r.Context(), "words.analyze")
	defer scope.Finish()

	word, ok := decodeWord(w, r)
	if !ok {
		return
	}

	profile, cached := s.words.DifficultyOf(word)
	if !cached {
		// An unseen word joins the catalog on first analysis.
		if !s.words.Add(word) {
			s.fail(scope, w, errors.New("word rejected"), "failed to analyze word")
			return
		}
		metrics.WordsAddedTotal.Inc()
		profile, _ = s.words.DifficultyOf(word)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"analysis": profile})
}

func (s *HTTPServer) handleWordList(w http.ResponseWriter, r *http.Request, userID string) {
	scope := common.GetScopeFromContext(r.Context(), "words.list")
	defer scope.Finish()

	level := queryInt(r, "level", 1)
	if level < words.MinLevel || level > words.MaxLevel {
		writeError(w, http.StatusBadRequest, "invalid difficulty level")
		return
	}

	list := s.words.Words(level)
	analyses := make([]interface{}, 0, len(list))
	for _, word := range list {
		if profile, ok := s.words.DifficultyOf(word); ok {
			analyses = append(analyses, profile)
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"level": level, "words": analyses})
}

func (s *HTTPServer) handleWordAdd(w http.ResponseWriter, r *http.Request, userID string) {
	scope := common.GetScopeFromContext(r.Context(), "words.add")
	defer scope.Finish()

	word, ok := decodeWord(w, r)
	if !ok {
		return
	}

	if !s.words.Add(word) {
		s.fail(scope, w, errors.New("word rejected"), "failed to add word")
		return
	}
	metrics.WordsAddedTotal.Inc()

	profile, _ := s.words.DifficultyOf(word)
	writeJSON(w, http.StatusOK, map[string]interface{}{"word": word, "analysis": profile})
}

func (s *HTTPServer) handleWordStats(w http.ResponseWriter, r *http.Request, userID string) {
	scope := common.GetScopeFromContext(r.Context(), "words.stats")
	defer scope.Finish()

	writeJSON(w, http.StatusOK, s.words.CatalogStats())
}

func (s *HTTPServer) handleMusicStart(w http.ResponseWriter, r *http.Request, userID string) {
	scope := common.GetScopeFromContext(r.Context(), "music.start")
	defer scope.Finish()
	scope.AddBaggage("userId", userID)

	var request struct {
		Level int `json:"level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	track, err := s.coordinator.StartMusic(userID, request.Level)
	if err != nil {
		s.fail(scope, w, err, "failed to start music")
		return
	}
	writeJSON(w, http.StatusOK, track)
}

func (s *HTTPServer) handleMusicStop(w http.ResponseWriter, r *http.Request, userID string) {
	scope := common.GetScopeFromContext(r.Context(), "music.stop")
	defer scope.Finish()

	s.coordinator.StopMusic(userID)
	writeJSON(w, http.StatusOK, map[string]bool{"stopped": true})
}

func (s *HTTPServer) handleMusicTiming(w http.ResponseWriter, r *http.Request, userID string) {
	scope := common.GetScopeFromContext(r.Context(), "music.timing")
	defer scope.Finish()

	beat, ok := s.coordinator.NextBeat(userID)
	if !ok {
		writeError(w, http.StatusNotFound, "no music playing")
		return
	}
	writeJSON(w, http.StatusOK, beat)
}

func (s *HTTPServer) handleMusicSync(w http.ResponseWriter, r *http.Request, userID string) {
	scope := common.GetScopeFromContext(r.Context(), "music.sync")
	defer scope.Finish()

	word, ok := decodeWord(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"timingPoints": s.coordinator.SyncWord(userID, word),
	})
}

func (s *HTTPServer) handleMusicAdvance(w http.ResponseWriter, r *http.Request, userID string) {
	scope := common.GetScopeFromContext(r.Context(), "music.advance")
	defer scope.Finish()

	s.coordinator.AdvanceBeat(userID)
	writeJSON(w, http.StatusOK, s.coordinator.Music(userID))
}

func (s *HTTPServer) handleMusicState(w http.ResponseWriter, r *http.Request, userID string) {
	scope := common.GetScopeFromContext(r.Context(), "music.state")
	defer scope.Finish()

	writeJSON(w, http.StatusOK, s.coordinator.Music(userID))
}

// fail maps a coordinator error onto an HTTP status and records it on
// the span.
func (s *HTTPServer) fail(scope *common.Scope, w http.ResponseWriter, err error, message string) {
	scope.TraceError(err)
	scope.Log.Errorf("%s: %v", message, err)

	switch {
	case errors.Is(err, session.ErrInvalidAttempt):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrNoActiveSession):
		writeError(w, http.StatusNotFound, session.ErrNoActiveSession.Error())
	case errors.Is(err, rhythm.ErrTrackUnavailable):
		writeError(w, http.StatusNotFound, rhythm.ErrTrackUnavailable.Error())
	default:
		writeError(w, http.StatusInternalServerError, message)
	}
}

func decodeWord(w http.ResponseWriter, r *http.Request) (string, bool) {
	var request struct {
		Word string `json:"word"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Word == "" {
		writeError(w, http.StatusBadRequest, "no word provided")
		return "", false
	}
	return request.Word, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func queryFloat(r *http.Request, key string, fallback float64) float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
