package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/dateslicer/pkg/dialog"
	"tableflip.dev/dateslicer/pkg/filter"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("store: not found")

const (
	filterPrefix = "filter"
	resultPrefix = "result"

	// GeneralFilter is the filter slot the slicer writes to.
	GeneralFilter = "general"
)

// Channel is the host's filter and state channel.
type Channel interface {
	// ApplyFilter merges f into the named slot, replacing what was there.
	ApplyFilter(name string, f filter.Advanced) error
	ClearFilter(name string) error
	Filter(name string) (filter.Advanced, error)
	Filters(ctx context.Context) ([]filter.Advanced, error)
	SetResult(id string, r dialog.Result) error
	Result(id string) (dialog.Result, error)
}

// Load opens the channel under cfg's base path. A nil cfg reads the
// default configuration.
func Load(cfg Config) (*Store, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return New(cfg.BasePath()), nil
}

// New opens a diskv store rooted at basePath.
func New(basePath string) *Store {
	return &Store{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}
}

// Store implements Channel on diskv.
type Store struct {
	d        *diskv.Diskv
	basePath string
}

var _ Channel = (*Store)(nil)

// BasePath is the directory holding the store.
func (s *Store) BasePath() string { return s.basePath }

func (s *Store) ApplyFilter(name string, f filter.Advanced) error {
	return s.write(toKey(filterPrefix, name), f)
}

func (s *Store) ClearFilter(name string) error {
	err := s.d.Erase(toKey(filterPrefix, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear filter %s: %w", name, err)
	}
	return nil
}

func (s *Store) Filter(name string) (filter.Advanced, error) {
	var f filter.Advanced
	if err := s.read(toKey(filterPrefix, name), &f); err != nil {
		return filter.Advanced{}, err
	}
	return f, nil
}

// Filters returns every stored filter in key order. Unreadable entries are
// reported on stderr and skipped.
func (s *Store) Filters(ctx context.Context) ([]filter.Advanced, error) {
	keys := make([]string, 0)
	for key := range s.d.KeysPrefix(filterPrefix+"-", ctx.Done()) {
		keys = append(keys, key)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	all := make([]filter.Advanced, 0, len(keys))
	for _, key := range keys {
		var f filter.Advanced
		if err := s.read(key, &f); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, f)
	}
	return all, nil
}

func (s *Store) SetResult(id string, r dialog.Result) error {
	return s.write(toKey(resultPrefix, id), r)
}

func (s *Store) Result(id string) (dialog.Result, error) {
	var r dialog.Result
	if err := s.read(toKey(resultPrefix, id), &r); err != nil {
		return dialog.Result{}, err
	}
	return r, nil
}

func (s *Store) write(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.d.Write(key, b); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) read(key string, v any) error {
	if !s.d.Has(key) {
		return ErrNotFound
	}
	b, err := s.d.Read(key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// toKey makes `prefix-name`; dashes in name are folded so the key splits
// back into exactly one directory and one file.
func toKey(prefix, name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), "-", "_")
	if name == "" {
		name = "_"
	}
	return prefix + "-" + name
}

func keyToPathTransform(s string) *diskv.PathKey {
	prefix, name, _ := strings.Cut(s, "-")
	return &diskv.PathKey{
		Path:     []string{prefix},
		FileName: name + ".json",
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), strings.TrimSuffix(pathKey.FileName, ".json"))
}
