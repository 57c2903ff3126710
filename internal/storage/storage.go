// Package storage persists per-user API keys and chat transcripts in flat
// JSON documents on disk.
//
// Each document maps a user ID to a partition of records keyed by a record
// key (unique API key name or conversation ID). Every mutation is a full
// load-modify-rewrite of the document, serialized by a single mutex per
// store instance. There is no cross-process coordination; the design
// assumes one persistence-owning process.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/raphaelgruber/realapps-go/internal/metrics"
)

const (
	apiKeysFileName     = "api_keys.json"
	chatHistoryFileName = "chat_history.json"
)

// Partition holds all records belonging to one user, keyed by record key.
type Partition map[string]map[string]any

// Document is the full on-disk structure of one JSON file, keyed by user ID.
type Document map[string]Partition

// Store owns the two JSON documents and serializes mutations to them.
type Store struct {
	mu sync.Mutex

	dataDir         string
	apiKeysFile     string
	chatHistoryFile string

	logger    *slog.Logger
	collector *metrics.Collector

	// now is swappable in tests.
	now func() time.Time
}

// New creates a store rooted at dataDir. The directory is created if
// missing, and both document files are seeded with an empty document
// without clobbering pre-existing files.
func New(dataDir string, logger *slog.Logger, collector *metrics.Collector) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if collector == nil {
		collector = metrics.NewCollector()
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &Store{
		dataDir:         dataDir,
		apiKeysFile:     filepath.Join(dataDir, apiKeysFileName),
		chatHistoryFile: filepath.Join(dataDir, chatHistoryFileName),
		logger:          logger,
		collector:       collector,
		now:             time.Now,
	}

	for _, path := range []string{s.apiKeysFile, s.chatHistoryFile} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
				return nil, fmt.Errorf("init %s: %w", filepath.Base(path), err)
			}
		} else if err != nil {
			return nil, fmt.Errorf("stat %s: %w", filepath.Base(path), err)
		}
	}

	return s, nil
}

// load reads and parses a document file. A missing or malformed file
// degrades to an empty document: callers cannot distinguish "absent" from
// "corrupt". The original backend behaved the same way.
func (s *Store) load(path string) Document {
	start := s.now()
	defer func() {
		s.collector.RecordTiming(metrics.OpStorageRead, time.Since(start))
	}()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn("document unreadable, treating as empty",
			"file", filepath.Base(path), "error", err)
		return Document{}
	}
	if doc == nil {
		doc = Document{}
	}
	return doc
}

// save rewrites the full document. The write goes to a temp file in the
// same directory followed by a rename, so concurrent readers observe
// either the old or the new complete content, never a partial write.
// Callers must hold s.mu.
func (s *Store) save(path string, doc Document) error {
	start := s.now()
	defer func() {
		s.collector.RecordTiming(metrics.OpStorageWrite, time.Since(start))
	}()

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	tmp, err := os.CreateTemp(s.dataDir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

// timestamp returns the current time in the format stored in documents.
func (s *Store) timestamp() string {
	return s.now().Format(time.RFC3339)
}
