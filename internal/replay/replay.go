// Package replay stores every solved level as a compressed JSONL line and
// re-runs stored solutions through the engine.
package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Extension is the suffix of replay files.
const Extension = ".jsonl.zst"

// Record is one solved level.
type Record struct {
	Pack     string    `json:"pack"`
	LevelID  string    `json:"level_id"`
	Moves    int       `json:"moves"`
	Solution string    `json:"solution"`
	Player   string    `json:"player,omitempty"`
	Time     time.Time `json:"time"`
}

// Writer appends records to one file per pack under baseDir.
// Each open file is a separate zstd frame; concatenated frames decode as one
// stream, so reopening a file in append mode is safe.
type Writer struct {
	baseDir string

	mu      sync.Mutex
	curPack string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

// NewWriter returns a writer for baseDir. Files are opened on first write.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// PathFor returns the replay file of a pack.
func (w *Writer) PathFor(pack string) string {
	return filepath.Join(w.baseDir, fileName(pack))
}

// Close flushes and closes the open replay file, if any.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

// Write appends rec to its pack's file and flushes it.
func (w *Writer) Write(rec Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if rec.Pack == "" {
		return fmt.Errorf("replay: record for %q has no pack", rec.LevelID)
	}
	if rec.Time.IsZero() {
		rec.Time = time.Now().UTC()
	}
	if rec.Pack != w.curPack {
		if err := w.openLocked(rec.Pack); err != nil {
			return err
		}
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	if err := w.w.Flush(); err != nil {
		return err
	}
	return w.enc.Flush()
}

func (w *Writer) openLocked(pack string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.baseDir, 0o755); err != nil {
		return fmt.Errorf("replay: cannot create directory %s: %w", w.baseDir, err)
	}
	f, err := os.OpenFile(w.PathFor(pack), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 32*1024)
	w.curPack = pack
	return nil
}

func (w *Writer) closeLocked() error {
	var errs []error
	if w.w != nil {
		errs = append(errs, w.w.Flush())
	}
	if w.enc != nil {
		errs = append(errs, w.enc.Close())
		w.enc = nil
	}
	if w.f != nil {
		errs = append(errs, w.f.Close())
		w.f = nil
	}
	w.w = nil
	w.curPack = ""
	return errors.Join(errs...)
}

// Read decodes every record of a compressed JSONL stream.
func Read(r io.Reader) ([]Record, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	var recs []Record
	line := 0
	for sc.Scan() {
		line++
		b := sc.Bytes()
		if len(strings.TrimSpace(string(b))) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(b, &rec); err != nil {
			return recs, fmt.Errorf("replay: line %d: %w", line, err)
		}
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		return recs, fmt.Errorf("replay: %w", err)
	}
	return recs, nil
}

// ReadFile reads a replay file from disk.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// fileName keeps pack ids that contain separators inside baseDir.
func fileName(pack string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", "..", "_")
	return r.Replace(pack) + Extension
}
