// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package words

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrListMissing indicates that no persisted list exists for a level.
var ErrListMissing = errors.New("word list missing")

// ListStore persists one ordered word list per difficulty level.
type ListStore interface {
	// Read returns the persisted list for a level, or ErrListMissing.
	Read(level int) ([]string, error)
	// Write replaces the persisted list for a level.
	Write(level int, words []string) error
}

// FileStore stores word lists as JSON arrays, one level_N.json per level.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed list store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(level int) string {
	return filepath.Join(s.dir, fmt.Sprintf("level_%d.json", level))
}

// Read loads the word list for a level from disk.
func (s *FileStore) Read(level int) ([]string, error) {
	data, err := os.ReadFile(s.path(level))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrListMissing
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read word list for level %d: %w", level, err)
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse word list for level %d: %w", level, err)
	}
	return list, nil
}

// Write persists the word list for a level to disk, creating the directory
// if needed.
func (s *FileStore) Write(level int, list []string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create word list directory: %w", err)
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal word list for level %d: %w", level, err)
	}

	if err := os.WriteFile(s.path(level), data, 0o644); err != nil {
		return fmt.Errorf("failed to write word list for level %d: %w", level, err)
	}
	return nil
}
