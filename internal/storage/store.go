package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/sortviz/internal/sorting"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunRecord is the metadata saved for one finished run.
type RunRecord struct {
	ID        string        `json:"id"`
	Algorithm string        `json:"algorithm"`
	Outcome   string        `json:"outcome"`
	Timestamp time.Time     `json:"timestamp"`
	Seed      int64         `json:"seed"`
	Size      int           `json:"size"`
	DelayMs   int64         `json:"delay_ms"`
	ElapsedMs int64         `json:"elapsed_ms"`
	Stats     sorting.Stats `json:"stats"`
	Initial   []int         `json:"initial"`
	Final     []int         `json:"final"`
}

func (s *Store) Save(rec RunRecord, frames []sorting.Frame) (string, error) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	if rec.ID == "" {
		rec.ID = fmt.Sprintf("%s_%d", rec.Algorithm, rec.Timestamp.UnixNano())
	}
	runDir := filepath.Join(s.baseDir, rec.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeFrames(csvFile, frames); err != nil {
		return "", fmt.Errorf("write frames: %w", err)
	}

	return rec.ID, nil
}

func writeFrames(out io.Writer, frames []sorting.Frame) error {
	w := csv.NewWriter(out)

	if len(frames) == 0 {
		w.Flush()
		return w.Error()
	}

	header := []string{"step", "sorted", "active", "compare"}
	for i := range frames[0].Values {
		header = append(header, fmt.Sprintf("v%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, f := range frames {
		row := []string{
			strconv.Itoa(f.Step),
			strconv.Itoa(f.Highlight.SortedSuffix),
			joinInts(f.Highlight.Active),
			joinInts(f.Highlight.Compare),
		}
		for _, v := range f.Values {
			row = append(row, strconv.Itoa(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns saved runs, oldest first.
func (s *Store) List() ([]RunRecord, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunRecord{}, nil
		}
		return nil, err
	}

	runs := make([]RunRecord, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		rec, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *rec)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

// runDir resolves runID inside the data directory. Ids that would step out
// of it are reported as not found.
func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID == "." || runID == ".." || filepath.Base(runID) != runID || strings.ContainsAny(runID, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrRunNotFound, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

func (s *Store) Load(runID string) (*RunRecord, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var rec RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse metadata %s: %w", runID, err)
	}

	return &rec, nil
}

func (s *Store) LoadFrames(runID string) ([]sorting.Frame, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(dir, framesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []sorting.Frame{}, nil
	}

	frames := make([]sorting.Frame, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}

		step, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		sorted, _ := strconv.Atoi(record[1])

		values := make([]int, 0, len(record)-4)
		for _, field := range record[4:] {
			v, err := strconv.Atoi(field)
			if err != nil {
				continue
			}
			values = append(values, v)
		}

		frames = append(frames, sorting.Frame{
			Step:   step,
			Values: values,
			Highlight: sorting.Highlight{
				Active:       splitInts(record[2]),
				Compare:      splitInts(record[3]),
				SortedSuffix: sorted,
			},
		})
	}

	return frames, nil
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ";")
}

func splitInts(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		if v, err := strconv.Atoi(p); err == nil {
			out = append(out, v)
		}
	}
	return out
}
