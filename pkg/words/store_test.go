// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package words

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	list := []string{"alpha", "beta", "gamma"}
	if err := store.Write(3, list); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := store.Read(3)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !reflect.DeepEqual(got, list) {
		t.Errorf("Read() = %v, expected %v", got, list)
	}
}

func TestFileStore_MissingList(t *testing.T) {
	store := NewFileStore(t.TempDir())

	if _, err := store.Read(1); !errors.Is(err, ErrListMissing) {
		t.Errorf("Read() error = %v, expected ErrListMissing", err)
	}
}

func TestFileStore_CorruptList(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	if err := os.WriteFile(filepath.Join(dir, "level_2.json"), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := store.Read(2)
	if err == nil || errors.Is(err, ErrListMissing) {
		t.Errorf("Read() error = %v, expected a parse error", err)
	}
}

func TestFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "word_lists")
	store := NewFileStore(dir)

	if err := store.Write(1, []string{"the"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "level_1.json")); err != nil {
		t.Errorf("expected list file to exist: %v", err)
	}
}
