// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

//go:build integration
// +build integration

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/typegamer/rhythm-core/pkg/stats"
)

// This is a manual integration test for Redis operations
// Run this with: go run test_redis_integration.go
// Requires: Redis running on localhost:6379

func main() {
	logrus.SetLevel(logrus.DebugLevel)
	logrus.Infof("Starting Redis integration test...")

	ctx := context.Background()

	client, err := stats.Connect(ctx, "localhost:6379", "", 5)
	if err != nil {
		logrus.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer client.Close()

	store := stats.NewStore(client)
	testUserID := fmt.Sprintf("test-user-%d", time.Now().Unix())
	logrus.Infof("Testing with user ID: %s", testUserID)

	// Test 1: Get stats for a new user
	logrus.Infof("\n=== Test 1: Get stats for new user ===")
	aggregate, err := store.Get(ctx, testUserID)
	if err != nil {
		logrus.Fatalf("Get failed: %v", err)
	}
	if aggregate != nil {
		logrus.Fatalf("❌ New user should have no stats record")
	}
	logrus.Infof("✓ New user has no stats record")

	// Test 2: Apply attempts through Upsert
	logrus.Infof("\n=== Test 2: Apply attempts ===")
	now := time.Now()
	aggregate, err = store.Upsert(ctx, testUserID, func(s *stats.AggregateStats) {
		stats.Apply(s, 120, 97.5, 1, now)
	})
	if err != nil {
		logrus.Fatalf("Upsert failed: %v", err)
	}
	aggregate, err = store.Upsert(ctx, testUserID, func(s *stats.AggregateStats) {
		stats.Apply(s, 80, 90, 1, now)
	})
	if err != nil {
		logrus.Fatalf("Upsert failed: %v", err)
	}
	logrus.Infof("✓ Applied two attempts: games=%d score=%d high=%d",
		aggregate.TotalGames, aggregate.TotalScore, aggregate.HighScore)

	if aggregate.TotalGames != 2 || aggregate.TotalScore != 200 || aggregate.HighScore != 120 {
		logrus.Fatalf("❌ Aggregate mismatch: %+v", aggregate)
	}

	// Test 3: User level derivation
	logrus.Infof("\n=== Test 3: User level ===")
	level := stats.UserLevel(aggregate)
	logrus.Infof("✓ User level: %d", level)
	if level != 1 {
		logrus.Fatalf("❌ Level mismatch: got %d, expected 1", level)
	}

	// Test 4: Score records
	logrus.Infof("\n=== Test 4: Score records ===")
	for _, score := range []int{40, 200, 90} {
		err = store.AppendScore(ctx, testUserID, stats.ScoreRecord{
			Score: score, Accuracy: 95, WordsTyped: 1, TimeTaken: 2.5, Timestamp: now,
		})
		if err != nil {
			logrus.Fatalf("AppendScore failed: %v", err)
		}
	}

	records, err := store.RecentScores(ctx, testUserID, stats.RecentScoreLimit)
	if err != nil {
		logrus.Fatalf("RecentScores failed: %v", err)
	}
	if len(records) != 3 || records[0].Score != 200 {
		logrus.Fatalf("❌ RecentScores mismatch: %+v", records)
	}
	logrus.Infof("✓ Recent scores ordered best first: %d, %d, %d",
		records[0].Score, records[1].Score, records[2].Score)

	// Test 5: Clean up
	logrus.Infof("\n=== Test 5: Clean up ===")
	if err := store.Delete(ctx, testUserID); err != nil {
		logrus.Fatalf("Delete failed: %v", err)
	}
	aggregate, err = store.Get(ctx, testUserID)
	if err != nil {
		logrus.Fatalf("Get after delete failed: %v", err)
	}
	if aggregate != nil {
		logrus.Fatalf("❌ Stats should be gone after deletion")
	}
	logrus.Infof("✓ Deleted test user records")

	logrus.Infof("\n==================================================")
	logrus.Infof("✅ All Redis integration tests passed!")
	logrus.Infof("==================================================")
}
