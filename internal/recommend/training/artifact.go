// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package training

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// ErrModelNotFound is returned when no trained artifact exists yet.
var ErrModelNotFound = errors.New("no trained model found")

// Model bundles everything prediction needs: the fitted network and the
// vocabularies that define its feature layout.
type Model struct {
	Vocab *Vocabulary
	Net   *Network
}

// Metrics is the training report for one run.
type Metrics struct {
	Accuracy        float64 `json:"accuracy"`
	Loss            float64 `json:"loss"`
	ValAccuracy     float64 `json:"validation_accuracy"`
	ValLoss         float64 `json:"validation_loss"`
	DurationMS      int64   `json:"duration_ms"`
	DataPoints      int     `json:"data_points"`
	SyntheticPoints int     `json:"synthetic_points"`
	EpochsRun       int     `json:"epochs_run"`
}

// Metadata describes a stored artifact.
type Metadata struct {
	Version      int       `json:"version"`
	TrainedAt    time.Time `json:"trained_at"`
	FeatureWidth int       `json:"feature_width"`
	Checksum     string    `json:"checksum"`
	SizeBytes    int64     `json:"size_bytes"`
	Metrics      Metrics   `json:"metrics"`
}

// storedArtifact is the on-disk representation.
type storedArtifact struct {
	Metadata       Metadata
	CompressedData []byte
}

// ArtifactStore persists model artifacts as versioned files under one
// directory. A "latest" pointer file names the active version and is
// swapped atomically, so a crashed save never leaves a partial artifact
// active.
type ArtifactStore struct {
	baseDir string
	mu      sync.Mutex
}

const latestPointerFile = "latest"

// NewArtifactStore creates the store directory if needed.
func NewArtifactStore(baseDir string) (*ArtifactStore, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("create model directory: %w", err)
	}
	return &ArtifactStore{baseDir: baseDir}, nil
}

// Save writes the model as the next version, writes its training report
// beside it and atomically repoints "latest". Returns the new version.
func (s *ArtifactStore) Save(model *Model, meta Metadata) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	version := s.latestVersionLocked() + 1

	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(model); err != nil {
		return 0, fmt.Errorf("encode model: %w", err)
	}
	sum := sha256.Sum256(raw.Bytes())
	meta.Checksum = hex.EncodeToString(sum[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		return 0, fmt.Errorf("compress model: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return 0, fmt.Errorf("finalize compression: %w", err)
	}

	meta.Version = version
	meta.SizeBytes = int64(compressed.Len())
	if meta.TrainedAt.IsZero() {
		meta.TrainedAt = time.Now().UTC()
	}

	path := s.modelPath(version)
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create model file: %w", err)
	}
	encErr := gob.NewEncoder(f).Encode(storedArtifact{
		Metadata:       meta,
		CompressedData: compressed.Bytes(),
	})
	closeErr := f.Close()
	if encErr != nil {
		return 0, fmt.Errorf("write model file: %w", encErr)
	}
	if closeErr != nil {
		return 0, fmt.Errorf("close model file: %w", closeErr)
	}

	if err := s.writeReport(version, meta); err != nil {
		return 0, err
	}

	// Repoint "latest" last so a failure above never activates the
	// partial artifact.
	if err := s.swapLatest(version); err != nil {
		return 0, err
	}
	return version, nil
}

// LoadActive loads the artifact named by the "latest" pointer. Returns
// ErrModelNotFound when no artifact has ever been saved.
func (s *ArtifactStore) LoadActive() (*Model, *Metadata, error) {
	s.mu.Lock()
	version := s.latestVersionLocked()
	s.mu.Unlock()

	if version == 0 {
		return nil, nil, ErrModelNotFound
	}
	return s.load(version)
}

func (s *ArtifactStore) load(version int) (*Model, *Metadata, error) {
	f, err := os.Open(s.modelPath(version))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrModelNotFound
		}
		return nil, nil, fmt.Errorf("open model file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var sa storedArtifact
	if err := gob.NewDecoder(f).Decode(&sa); err != nil {
		return nil, nil, fmt.Errorf("read model file: %w", err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sa.CompressedData))
	if err != nil {
		return nil, nil, fmt.Errorf("decompress model: %w", err)
	}
	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, nil, fmt.Errorf("read decompressed model: %w", err)
	}
	if err := gzr.Close(); err != nil {
		return nil, nil, fmt.Errorf("close gzip reader: %w", err)
	}

	sum := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(sum[:]); checksum != sa.Metadata.Checksum {
		return nil, nil, fmt.Errorf("model checksum mismatch: expected %s, got %s", sa.Metadata.Checksum, checksum)
	}

	var model Model
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&model); err != nil {
		return nil, nil, fmt.Errorf("decode model: %w", err)
	}
	if model.Vocab != nil {
		model.Vocab.buildIndexes()
	}
	return &model, &sa.Metadata, nil
}

// writeReport persists the training report as JSON next to the artifact.
func (s *ArtifactStore) writeReport(version int, meta Metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal training report: %w", err)
	}
	path := filepath.Join(s.baseDir, fmt.Sprintf("report_v%06d.json", version))
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return fmt.Errorf("write training report: %w", err)
	}
	return nil
}

// swapLatest atomically updates the pointer file via rename.
func (s *ArtifactStore) swapLatest(version int) error {
	tmp := filepath.Join(s.baseDir, latestPointerFile+".tmp")
	if err := os.WriteFile(tmp, []byte(strconv.Itoa(version)), 0o640); err != nil {
		return fmt.Errorf("write latest pointer: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.baseDir, latestPointerFile)); err != nil {
		return fmt.Errorf("swap latest pointer: %w", err)
	}
	return nil
}

// latestVersionLocked reads the pointer file. Returns 0 when absent or
// unreadable.
func (s *ArtifactStore) latestVersionLocked() int {
	data, err := os.ReadFile(filepath.Join(s.baseDir, latestPointerFile))
	if err != nil {
		return 0
	}
	version, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || version < 0 {
		return 0
	}
	return version
}

func (s *ArtifactStore) modelPath(version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("model_v%06d.bin", version))
}
