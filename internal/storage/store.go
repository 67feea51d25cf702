package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
)

// Entry is one stored record and the vnum it is filed under.
type Entry[T ValidatingSpec] struct {
	Vnum int
	Spec T
}

type Storer[T ValidatingSpec] interface {
	Save(vnum int, rec T) error
	Get(vnum int) (T, bool)
	Entries() []Entry[T]
}

// FileStore keeps one record per JSON file anywhere below a directory.
// Records are cached in memory after the first walk.
type FileStore[T ValidatingSpec] struct {
	dir string

	mu     sync.RWMutex
	byVnum map[int]T
}

func NewFileStore[T ValidatingSpec](dir string) (*FileStore[T], error) {
	s := &FileStore[T]{dir: dir}
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("loading %s: %w", dir, err)
	}
	return s, nil
}

func (s *FileStore[T]) load() error {
	byVnum := map[int]T{}
	files := map[int]string{}

	err := filepath.WalkDir(s.dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		file := filepath.Base(path)
		asset, err := readAsset[T](path)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		if err := asset.Validate(); err != nil {
			return fmt.Errorf("validating %s: %w", file, err)
		}

		v := asset.Vnum()
		if prev, ok := files[v]; ok {
			return fmt.Errorf("duplicate id %d in %s and %s", v, prev, file)
		}
		files[v] = file
		byVnum[v] = asset.Spec
		return nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.byVnum = byVnum
	s.mu.Unlock()
	return nil
}

func readAsset[T ValidatingSpec](path string) (*Asset[T], error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var a Asset[T]
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("unmarshalling asset: %w", err)
	}
	return &a, nil
}

// Save writes rec to <vnum>.json at the top of the directory and caches it.
func (s *FileStore[T]) Save(vnum int, rec T) error {
	a := &Asset[T]{Version: 1, Identifier: strconv.Itoa(vnum), Spec: rec}
	if err := a.Validate(); err != nil {
		return fmt.Errorf("validating %d: %w", vnum, err)
	}

	raw, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %d: %w", vnum, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := replaceFile(filepath.Join(s.dir, a.Identifier+".json"), raw); err != nil {
		return fmt.Errorf("saving %d: %w", vnum, err)
	}
	s.byVnum[vnum] = rec
	return nil
}

// replaceFile swaps path for a fully written copy of data, so a crash never
// leaves a truncated record behind.
func replaceFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			slog.Warn("leftover temp record", "path", tmp, "error", rmErr)
		}
		return err
	}
	return nil
}

// Get returns the record filed under vnum.
func (s *FileStore[T]) Get(vnum int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byVnum[vnum]
	return rec, ok
}

// Entries returns every record in ascending vnum order.
func (s *FileStore[T]) Entries() []Entry[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry[T], 0, len(s.byVnum))
	for _, v := range slices.Sorted(maps.Keys(s.byVnum)) {
		out = append(out, Entry[T]{Vnum: v, Spec: s.byVnum[v]})
	}
	return out
}
