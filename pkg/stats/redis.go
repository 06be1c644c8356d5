// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultTTL is how long user records live in Redis (30 days).
	DefaultTTL = 30 * 24 * time.Hour
	// statsKeyPrefix namespaces the aggregate stats keys.
	statsKeyPrefix = "typing_rhythm:user_stats:"
	// scoresKeyPrefix namespaces the recent score lists.
	scoresKeyPrefix = "typing_rhythm:user_scores:"
	// maxStoredScores bounds the per-user score list.
	maxStoredScores = 50
	// RecentScoreLimit is how many top scores the stats view reports.
	RecentScoreLimit = 5
)

// Connect dials Redis with exponential backoff and verifies the
// connection with a ping.
func Connect(ctx context.Context, addr, password string, maxRetries uint64) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ping := func() error {
		_, err := client.Ping(ctx).Result()
		if err != nil {
			logrus.Warnf("Redis ping to %s failed: %v", addr, err)
		}
		return err
	}

	b := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	if err := backoff.Retry(ping, backoff.WithMaxRetries(b, maxRetries)); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	logrus.Infof("connected to Redis at %s", addr)
	return client, nil
}

// Store reads and writes user statistics in Redis.
type Store struct {
	client *redis.Client
}

// NewStore creates a store over an established Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func statsKey(userID string) string {
	return statsKeyPrefix + userID
}

func scoresKey(userID string) string {
	return scoresKeyPrefix + userID
}

// Get retrieves a user's aggregate stats. A user with no record yet
// yields nil with no error.
func (s *Store) Get(ctx context.Context, userID string) (*AggregateStats, error) {
	data, err := s.client.Get(ctx, statsKey(userID)).Result()
	if err == redis.Nil {
		logrus.Debugf("no stats for user %s", userID)
		return nil, nil
	}
	if err != nil {
		logrus.Errorf("failed to get stats for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	var stats AggregateStats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		logrus.Errorf("failed to unmarshal stats for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}
	return &stats, nil
}

// Upsert reads the user's aggregate, applies the mutation and writes the
// result back with a refreshed TTL. A missing record starts from zero.
func (s *Store) Upsert(ctx context.Context, userID string, apply func(*AggregateStats)) (*AggregateStats, error) {
	stats, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &AggregateStats{}
	}

	apply(stats)

	data, err := json.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stats: %w", err)
	}
	if err := s.client.Set(ctx, statsKey(userID), data, DefaultTTL).Err(); err != nil {
		logrus.Errorf("failed to set stats for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to set stats: %w", err)
	}

	logrus.Debugf("updated stats for user %s", userID)
	return stats, nil
}

// AppendScore records one scored attempt in the user's score list,
// trimmed to the most recent entries.
func (s *Store) AppendScore(ctx context.Context, userID string, record ScoreRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal score record: %w", err)
	}

	key := scoresKey(userID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -maxStoredScores, -1)
	pipe.Expire(ctx, key, DefaultTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		logrus.Errorf("failed to append score for user %s: %v", userID, err)
		return fmt.Errorf("failed to append score: %w", err)
	}
	return nil
}

// RecentScores returns up to limit of the user's best recorded scores,
// highest first.
func (s *Store) RecentScores(ctx context.Context, userID string, limit int) ([]ScoreRecord, error) {
	entries, err := s.client.LRange(ctx, scoresKey(userID), 0, -1).Result()
	if err != nil {
		logrus.Errorf("failed to read scores for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to read scores: %w", err)
	}

	records := make([]ScoreRecord, 0, len(entries))
	for _, entry := range entries {
		var record ScoreRecord
		if err := json.Unmarshal([]byte(entry), &record); err != nil {
			logrus.Warnf("skipping corrupt score record for user %s: %v", userID, err)
			continue
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Score > records[j].Score
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Delete removes all stored records for a user.
func (s *Store) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, statsKey(userID), scoresKey(userID)).Err(); err != nil {
		logrus.Errorf("failed to delete records for user %s: %v", userID, err)
		return fmt.Errorf("failed to delete records: %w", err)
	}
	logrus.Infof("deleted records for user %s", userID)
	return nil
}
