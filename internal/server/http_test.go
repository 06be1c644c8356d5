// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/typegamer/rhythm-core/pkg/mechanics"
	"github.com/typegamer/rhythm-core/pkg/rhythm"
	"github.com/typegamer/rhythm-core/pkg/session"
	"github.com/typegamer/rhythm-core/pkg/stats"
	"github.com/typegamer/rhythm-core/pkg/words"
)

// setupTestServer wires the full stack over miniredis and a temp word dir.
func setupTestServer(t *testing.T) http.Handler {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := stats.NewStore(client)

	catalog := words.NewCatalog(words.NewFileStore(t.TempDir()))
	catalog.Load()

	tracks := rhythm.NewStaticCatalog(map[int]rhythm.Track{
		1: {Name: "test", BPM: 120, Pattern: []int{1, 0, 1, 1}, BeatDivision: 4},
	})

	cfg := mechanics.DefaultConfig()
	coordinator := session.NewCoordinator(store, mechanics.NewGenerator(cfg, catalog), mechanics.NewScorer(cfg), tracks)

	srv := NewHTTPServer(8000, coordinator, catalog, stats.NewHealthChecker(client), 0.5)
	if err := srv.Setup(); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	return srv.Handler()
}

func doRequest(t *testing.T, handler http.Handler, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set(userIDHeader, userID)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %s: %v", recorder.Body.String(), err)
	}
}

func TestMissingUserHeader(t *testing.T) {
	handler := setupTestServer(t)

	recorder := doRequest(t, handler, http.MethodPost, "/api/v1/game/start", "", nil)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, expected 401", recorder.Code)
	}
}

func TestHealthz(t *testing.T) {
	handler := setupTestServer(t)

	recorder := doRequest(t, handler, http.MethodGet, "/healthz", "", nil)
	if recorder.Code != http.StatusOK {
		t.Errorf("status = %d, expected 200", recorder.Code)
	}
}

func TestGameFlow(t *testing.T) {
	handler := setupTestServer(t)
	user := "player-1"

	// Start a session.
	recorder := doRequest(t, handler, http.MethodPost, "/api/v1/game/start", user, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("start status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	var started session.StartResult
	decodeBody(t, recorder, &started)
	if started.Challenge.Word == "" {
		t.Fatal("start returned no challenge word")
	}

	// Submit a perfect attempt.
	attempt := session.Attempt{
		TypedWord:  started.Challenge.Word,
		TargetWord: started.Challenge.Word,
		TimeTaken:  started.Challenge.TimeLimit / 2,
		TimeLimit:  started.Challenge.TimeLimit,
	}
	recorder = doRequest(t, handler, http.MethodPost, "/api/v1/game/submit", user, attempt)
	if recorder.Code != http.StatusOK {
		t.Fatalf("submit status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	var submitted session.SubmitResult
	decodeBody(t, recorder, &submitted)
	if submitted.Score <= 0 || submitted.Accuracy != 100 || submitted.ComboCount != 1 {
		t.Errorf("submit result = %+v, expected a scored perfect attempt", submitted)
	}
	if submitted.NextChallenge.Word == "" {
		t.Error("submit returned no next challenge")
	}

	// Stats reflect the attempt.
	recorder = doRequest(t, handler, http.MethodGet, "/api/v1/game/stats", user, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("stats status = %d", recorder.Code)
	}
	var view session.StatsView
	decodeBody(t, recorder, &view)
	if view.TotalGames != 1 || view.HighScore != submitted.Score {
		t.Errorf("stats view = %+v, expected one recorded game", view)
	}

	// End the session.
	recorder = doRequest(t, handler, http.MethodPost, "/api/v1/game/end", user, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("end status = %d", recorder.Code)
	}
	var summary session.Summary
	decodeBody(t, recorder, &summary)
	if summary.WordsCompleted != 1 {
		t.Errorf("summary = %+v, expected one completed word", summary)
	}

	// Submitting after end is a 404.
	recorder = doRequest(t, handler, http.MethodPost, "/api/v1/game/submit", user, attempt)
	if recorder.Code != http.StatusNotFound {
		t.Errorf("submit after end status = %d, expected 404", recorder.Code)
	}
}

func TestSubmit_InvalidBody(t *testing.T) {
	handler := setupTestServer(t)
	user := "player-2"

	doRequest(t, handler, http.MethodPost, "/api/v1/game/start", user, nil)

	recorder := doRequest(t, handler, http.MethodPost, "/api/v1/game/submit", user, session.Attempt{
		TypedWord: "cat", TargetWord: "cat", TimeTaken: -1, TimeLimit: 2,
	})
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400", recorder.Code)
	}
}

func TestWordRoutes(t *testing.T) {
	handler := setupTestServer(t)
	user := "player-3"

	// A drawn word comes back analyzed.
	recorder := doRequest(t, handler, http.MethodGet, "/api/v1/words/challenge?level=2", user, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("challenge status = %d", recorder.Code)
	}
	var challenge struct {
		Word       string          `json:"word"`
		Difficulty json.RawMessage `json:"difficulty"`
	}
	decodeBody(t, recorder, &challenge)
	if challenge.Word == "" || len(challenge.Difficulty) == 0 {
		t.Errorf("challenge = %+v, expected a word with its analysis", challenge)
	}

	// Out-of-range level is rejected.
	recorder = doRequest(t, handler, http.MethodGet, "/api/v1/words/list?level=9", user, nil)
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("list status = %d, expected 400", recorder.Code)
	}

	// Adding a word makes it listable at its analyzed level.
	recorder = doRequest(t, handler, http.MethodPost, "/api/v1/words/add", user, map[string]string{"word": "gopher"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("add status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	// Analyzing an unknown word adds it as a side effect.
	recorder = doRequest(t, handler, http.MethodPost, "/api/v1/words/analyze", user, map[string]string{"word": "Sz!7xq"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("analyze status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	// Missing word body is rejected.
	recorder = doRequest(t, handler, http.MethodPost, "/api/v1/words/analyze", user, map[string]string{})
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("analyze status = %d, expected 400", recorder.Code)
	}

	// Catalog stats report the fallback population plus additions.
	recorder = doRequest(t, handler, http.MethodGet, "/api/v1/words/stats", user, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("stats status = %d", recorder.Code)
	}
	var catalogStats words.Stats
	decodeBody(t, recorder, &catalogStats)
	if catalogStats.TotalWords == 0 {
		t.Error("catalog stats report zero words")
	}
}

func TestMusicRoutes(t *testing.T) {
	handler := setupTestServer(t)
	user := "player-4"

	// Starting an unknown level is a 404.
	recorder := doRequest(t, handler, http.MethodPost, "/api/v1/music/start", user, map[string]int{"level": 9})
	if recorder.Code != http.StatusNotFound {
		t.Errorf("start status = %d, expected 404", recorder.Code)
	}

	// Start level 1.
	recorder = doRequest(t, handler, http.MethodPost, "/api/v1/music/start", user, map[string]int{"level": 1})
	if recorder.Code != http.StatusOK {
		t.Fatalf("start status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	var track rhythm.Track
	decodeBody(t, recorder, &track)
	if track.Name != "test" {
		t.Errorf("track = %+v, expected the test track", track)
	}

	// Timing and sync work while playing.
	recorder = doRequest(t, handler, http.MethodGet, "/api/v1/music/timing", user, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("timing status = %d", recorder.Code)
	}
	var beat rhythm.BeatInfo
	decodeBody(t, recorder, &beat)
	if beat.BeatIndex < 1 {
		t.Errorf("BeatIndex = %d, expected at least 1", beat.BeatIndex)
	}

	recorder = doRequest(t, handler, http.MethodPost, "/api/v1/music/sync", user, map[string]string{"word": "cat"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("sync status = %d", recorder.Code)
	}
	var synced struct {
		TimingPoints []rhythm.LetterTiming `json:"timingPoints"`
	}
	decodeBody(t, recorder, &synced)
	if len(synced.TimingPoints) != 3 {
		t.Errorf("sync produced %d timing points, expected 3", len(synced.TimingPoints))
	}

	// Another user's clock is untouched.
	recorder = doRequest(t, handler, http.MethodGet, "/api/v1/music/state", "player-5", nil)
	var otherState session.MusicState
	decodeBody(t, recorder, &otherState)
	if otherState.Active {
		t.Error("another user's clock reports active")
	}

	// Stop, then timing is a 404.
	recorder = doRequest(t, handler, http.MethodPost, "/api/v1/music/stop", user, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("stop status = %d", recorder.Code)
	}
	recorder = doRequest(t, handler, http.MethodGet, "/api/v1/music/timing", user, nil)
	if recorder.Code != http.StatusNotFound {
		t.Errorf("timing after stop status = %d, expected 404", recorder.Code)
	}
}
