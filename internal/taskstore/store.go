package taskstore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/daycal/internal/datenav"
)

// Options controls how a Store reads and writes its file.
type Options struct {
	// CreateIfMissing treats a missing file as an empty store.
	CreateIfMissing bool
	// Logger receives mutation and failure events. Nil discards them.
	Logger *log.Logger
}

// Store is a file-backed task store. It keeps no cached state: every call
// reads the file again.
type Store struct {
	path   string
	codec  codec
	schema *jsonschema.Schema
	opts   Options
	logger *log.Logger
}

// Open prepares a store for path. The file itself is not read until the
// first operation.
func Open(path string, opts Options) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("task file path is empty")
	}
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		path:   path,
		codec:  codecFor(path),
		schema: schema,
		opts:   opts,
		logger: logger,
	}, nil
}

// Path returns the task file path.
func (s *Store) Path() string {
	return s.path
}

// Format returns the codec name ("json" or "yaml").
func (s *Store) Format() string {
	return s.codec.Name()
}

// Load reads and validates the whole task file.
func (s *Store) Load() (Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && s.opts.CreateIfMissing {
			return Document{}, nil
		}
		return nil, s.fail("load", err)
	}

	raw, err := s.codec.Decode(data)
	if err != nil {
		return nil, s.fail("load", err)
	}
	doc, err := decodeDocument(s.schema, raw)
	if err != nil {
		return nil, s.fail("load", err)
	}
	return doc, nil
}

// Save writes the whole document. The data goes to a temporary file in the
// same directory first and is renamed over the target.
func (s *Store) Save(doc Document) error {
	data, err := s.codec.Encode(doc)
	if err != nil {
		return s.fail("save", err)
	}

	// An existing file keeps its permissions across the rename.
	perm := os.FileMode(0644)
	if info, err := os.Stat(s.path); err == nil {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return s.fail("save", fmt.Errorf("create dir: %w", err))
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return s.fail("save", fmt.Errorf("create temp file: %w", err))
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return s.fail("save", fmt.Errorf("write temp file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return s.fail("save", fmt.Errorf("sync temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return s.fail("save", fmt.Errorf("close temp file: %w", err))
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return s.fail("save", fmt.Errorf("chmod temp file: %w", err))
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return s.fail("save", fmt.Errorf("replace task file: %w", err))
	}
	return nil
}

// TasksForDay returns the tasks stored for date, or an empty slice.
func (s *Store) TasksForDay(date datenav.Date) ([]Task, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	tasks := doc[date.ISO()]
	if tasks == nil {
		return []Task{}, nil
	}
	return tasks, nil
}

// AddTask appends a pending task to date. Blank descriptions are rejected
// with ErrEmptyDescription before the file is touched.
func (s *Store) AddTask(date datenav.Date, description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return ErrEmptyDescription
	}

	doc, err := s.Load()
	if err != nil {
		return err
	}
	key := date.ISO()
	doc[key] = append(doc[key], Task{Description: description, Status: StatusPending})
	if err := s.Save(doc); err != nil {
		return err
	}

	s.logger.Info("task added", "date", key, "index", len(doc[key])-1)
	return nil
}

// ToggleStatus flips the status of the task at index. Out-of-range indexes
// are ignored and nothing is written.
func (s *Store) ToggleStatus(date datenav.Date, index int) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	key := date.ISO()
	tasks := doc[key]
	if index < 0 || index >= len(tasks) {
		s.logger.Debug("toggle ignored", "date", key, "index", index, "count", len(tasks))
		return nil
	}

	tasks[index].Status = tasks[index].Status.Toggled()
	if err := s.Save(doc); err != nil {
		return err
	}

	s.logger.Info("task toggled", "date", key, "index", index, "status", tasks[index].Status)
	return nil
}

// DeleteTask removes the task at index. Out-of-range indexes are ignored
// and nothing is written. A day left with no tasks is removed entirely.
func (s *Store) DeleteTask(date datenav.Date, index int) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	key := date.ISO()
	tasks := doc[key]
	if index < 0 || index >= len(tasks) {
		s.logger.Debug("delete ignored", "date", key, "index", index, "count", len(tasks))
		return nil
	}

	tasks = append(tasks[:index], tasks[index+1:]...)
	if len(tasks) == 0 {
		delete(doc, key)
	} else {
		doc[key] = tasks
	}
	if err := s.Save(doc); err != nil {
		return err
	}

	s.logger.Info("task deleted", "date", key, "index", index, "remaining", len(tasks))
	return nil
}

// MonthProgress summarizes every day of a month with a single read.
// Days without tasks are omitted from the map.
func (s *Store) MonthProgress(year int, month time.Month) (map[int]Progress, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	progress := make(map[int]Progress)
	for day := 1; day <= datenav.DaysInMonth(year, month); day++ {
		p := ProgressOf(doc[datenav.NewDate(year, month, day).ISO()])
		if p != ProgressFree {
			progress[day] = p
		}
	}
	return progress, nil
}

func (s *Store) fail(op string, err error) error {
	s.logger.Error("task file "+op+" failed", "path", s.path, "err", err)
	return &StorageError{Op: op, Path: s.path, Err: err}
}
