// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rhythm

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrTrackUnavailable indicates that a level has no playable track.
var ErrTrackUnavailable = errors.New("rhythm track unavailable")

// Catalog maps difficulty levels to rhythm tracks.
type Catalog interface {
	// Track returns the track metadata for a level.
	Track(level int) (Track, bool)
	// Available reports whether the level's track can actually be played.
	// Probe failures of any kind report false, never an error.
	Available(level int) bool
}

// catalogFile is the on-disk shape of the music catalog.
type catalogFile struct {
	Levels map[int]Track `yaml:"levels"`
}

// FileCatalog is a YAML-backed catalog with an HTTP reachability probe.
type FileCatalog struct {
	tracks map[int]Track
	client *http.Client
}

// LoadCatalog reads the music catalog from a YAML file. A missing file is
// populated from the built-in default catalog and written back; a file that
// exists but fails to parse or validate is an error.
func LoadCatalog(path string) (*FileCatalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logrus.Infof("music catalog %s not found, writing defaults", path)
		if werr := writeDefaultCatalog(path); werr != nil {
			logrus.Warnf("failed to persist default music catalog: %v", werr)
		}
		return &FileCatalog{tracks: defaultTracks(), client: newProbeClient()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read music catalog %s: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse music catalog %s: %w", path, err)
	}

	for level, track := range file.Levels {
		if err := track.Validate(); err != nil {
			return nil, fmt.Errorf("invalid track for level %d: %w", level, err)
		}
	}

	logrus.Infof("loaded music catalog with %d tracks from %s", len(file.Levels), path)
	return &FileCatalog{tracks: file.Levels, client: newProbeClient()}, nil
}

// NewStaticCatalog builds a catalog from an in-memory track table. Tracks
// with no URL skip the reachability probe.
func NewStaticCatalog(tracks map[int]Track) *FileCatalog {
	return &FileCatalog{tracks: tracks, client: newProbeClient()}
}

// SetProbeClient overrides the HTTP client used for availability probes.
func (c *FileCatalog) SetProbeClient(client *http.Client) {
	c.client = client
}

// Track returns the track for a level.
func (c *FileCatalog) Track(level int) (Track, bool) {
	track, ok := c.tracks[level]
	return track, ok
}

// Available reports whether a level's track is reachable. The HEAD probe is
// retried with exponential backoff; any terminal failure maps to false.
func (c *FileCatalog) Available(level int) bool {
	track, ok := c.tracks[level]
	if !ok {
		return false
	}
	if track.URL == "" {
		return true
	}

	probe := func() error {
		resp, err := c.client.Head(track.URL)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("unexpected status %d", resp.StatusCode))
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	if err := backoff.Retry(probe, backoff.WithMaxRetries(b, 2)); err != nil {
		logrus.Warnf("track for level %d is unreachable: %v", level, err)
		return false
	}
	return true
}

func newProbeClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Second}
}

// defaultTracks is the built-in catalog, one track per difficulty level.
func defaultTracks() map[int]Track {
	return map[int]Track{
		1: {
			Name:         "Pixelated Heartbeat",
			URL:          "https://f005.backblazeb2.com/file/typegamer/Pixelated+Heartbeat.wav",
			BPM:          120,
			Pattern:      []int{1, 0, 1, 0, 1, 0, 1, 0},
			BeatDivision: 4,
		},
		2: {
			Name:         "Digital Dreams",
			URL:          "https://f005.backblazeb2.com/file/typegamer/level2_music.wav",
			BPM:          140,
			Pattern:      []int{1, 0, 1, 1, 1, 0, 1, 1},
			BeatDivision: 4,
		},
		3: {
			Name:         "Level 3 Music",
			URL:          "https://f005.backblazeb2.com/file/typegamer/level3_music.wav",
			BPM:          160,
			Pattern:      []int{1, 0, 0, 1, 1, 0, 1, 0, 1, 1, 0, 1, 1, 0, 1, 0},
			BeatDivision: 4,
		},
		4: {
			Name:         "Level 4 Music",
			URL:          "https://f005.backblazeb2.com/file/typegamer/level4_music.wav",
			BPM:          180,
			Pattern:      []int{1, 1, 0, 1, 1, 0, 1, 1, 1, 0, 1, 1, 0, 1, 1, 0},
			BeatDivision: 8,
		},
		5: {
			Name:         "Level 5 Music",
			URL:          "https://f005.backblazeb2.com/file/typegamer/level5_music.wav",
			BPM:          200,
			Pattern: []int{
				1, 1, 0, 1, 1, 1, 0, 1, 1, 0, 1, 1, 1, 1, 0, 1,
				1, 1, 0, 1, 1, 0, 1, 1, 1, 1, 0, 1, 1, 1, 0, 1,
			},
			BeatDivision: 8,
		},
	}
}

func writeDefaultCatalog(path string) error {
	data, err := yaml.Marshal(catalogFile{Levels: defaultTracks()})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
