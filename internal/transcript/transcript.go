// Package transcript writes per-tick episode records as zstd-compressed
// JSON lines, one file per episode.
package transcript

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/maxogod/AI-Donkey-Kong/internal/core"
)

// Ext is the file extension of transcript files.
const Ext = ".jsonl.zst"

// Record is one tick of an episode.
type Record struct {
	EpisodeID string          `json:"episode_id"`
	Tick      int             `json:"tick"`
	Action    core.ActionPair `json:"action"`
	Reward    float64         `json:"reward"`
	Phase     string          `json:"phase"`
	X         float64         `json:"x"`
	Y         float64         `json:"y"`
	Terminal  bool            `json:"terminal,omitempty"`
}

// Writer appends records to <dir>/<prefix>-<episode>.jsonl.zst, switching
// files whenever the episode ID changes. Safe for concurrent use.
type Writer struct {
	dir    string
	prefix string

	mu      sync.Mutex
	episode string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

// NewWriter creates a writer. No file is opened until the first Write.
func NewWriter(dir, prefix string) *Writer {
	if prefix == "" {
		prefix = "episode"
	}
	return &Writer{dir: dir, prefix: prefix}
}

// Path returns the file a given episode is written to.
func (w *Writer) Path(episodeID string) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s-%s%s", w.prefix, episodeID, Ext))
}

// Write appends one record.
func (w *Writer) Write(rec Record) error {
	if rec.EpisodeID == "" {
		return errors.New("transcript: record has no episode ID")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if rec.EpisodeID != w.episode {
		if err := w.rotateLocked(rec.EpisodeID); err != nil {
			return err
		}
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("transcript: marshal: %w", err)
	}
	if _, err := w.w.Write(b); err != nil {
		return fmt.Errorf("transcript: write: %w", err)
	}
	return w.w.WriteByte('\n')
}

// Close flushes and closes the current file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *Writer) rotateLocked(episodeID string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("transcript: cannot create directory %s: %w", w.dir, err)
	}
	f, err := os.OpenFile(w.Path(episodeID), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("transcript: cannot open file: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("transcript: zstd: %w", err)
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 64*1024)
	w.episode = episodeID
	return nil
}

func (w *Writer) closeLocked() error {
	var err error
	if w.w != nil {
		err = w.w.Flush()
	}
	if w.enc != nil {
		if cerr := w.enc.Close(); err == nil {
			err = cerr
		}
		w.enc = nil
	}
	if w.f != nil {
		if cerr := w.f.Close(); err == nil {
			err = cerr
		}
		w.f = nil
	}
	w.w = nil
	w.episode = ""
	return err
}

// ReadAll decodes every record of a transcript file.
func ReadAll(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("transcript: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("transcript: zstd: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var records []Record
	for sc.Scan() {
		var rec Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("%s: unmarshal: %w", filepath.Base(path), err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: read: %w", filepath.Base(path), err)
	}
	return records, nil
}

// Files lists transcript files in dir with the given prefix, sorted by name.
func Files(dir, prefix string) ([]string, error) {
	if prefix == "" {
		prefix = "episode"
	}
	matches, err := filepath.Glob(filepath.Join(dir, prefix+"-*"+Ext))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
