package dataset

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/leapstack-labs/datavis/pkg/core"
)

// snapshot pairs a dataset with the version it was stored under.
type snapshot struct {
	ds      *Dataset
	version uint64
}

// Store holds the current dataset. Writers swap a complete snapshot in, so
// readers never observe a partially built dataset. Every swap bumps the
// version, and Snapshot returns a dataset together with its own version.
type Store struct {
	mu      sync.Mutex // serializes writers
	current atomic.Pointer[snapshot]
	logger  *slog.Logger
}

// NewStore creates an empty store. A nil logger discards output.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{logger: logger}
}

// Current returns the current snapshot, or nil if nothing was loaded.
func (s *Store) Current() *Dataset {
	ds, _ := s.Snapshot()
	return ds
}

// Snapshot returns the current dataset and the version it was stored
// under. An empty store returns nil and 0.
func (s *Store) Snapshot() (*Dataset, uint64) {
	snap := s.current.Load()
	if snap == nil {
		return nil, 0
	}
	return snap.ds, snap.version
}

// Version returns the version of the current dataset.
func (s *Store) Version() uint64 {
	_, v := s.Snapshot()
	return v
}

// Swap replaces the current dataset and returns the previous one.
func (s *Store) Swap(ds *Dataset) *Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, _ := s.swapLocked(ds)
	return prev
}

func (s *Store) swapLocked(ds *Dataset) (prev *Dataset, version uint64) {
	old := s.current.Load()
	next := &snapshot{ds: ds, version: 1}
	if old != nil {
		prev = old.ds
		next.version = old.version + 1
	}
	s.current.Store(next)
	return prev, next.version
}

// LoadTable builds a dataset from raw and makes it current, returning it
// with its version. Invalid data is stored as well so later layout calls
// report the cached error.
func (s *Store) LoadTable(raw RawTable, opts Options) (*Dataset, uint64, error) {
	ds, err := Load(raw, opts)

	s.mu.Lock()
	_, v := s.swapLocked(ds)
	s.mu.Unlock()

	s.logResult(ds, v, err)
	return ds, v, err
}

// Reclassify re-derives the current dataset under kind and makes the
// result current. The header and label overrides are kept.
func (s *Store) Reclassify(kind Kind) (*Dataset, uint64, error) {
	s.mu.Lock()
	cur := s.current.Load()
	if cur == nil {
		s.mu.Unlock()
		return nil, 0, core.NewInvalidDataError("no dataset loaded")
	}
	ds, err := cur.ds.WithKind(kind)
	_, v := s.swapLocked(ds)
	s.mu.Unlock()

	s.logResult(ds, v, err)
	return ds, v, err
}

func (s *Store) logResult(ds *Dataset, version uint64, err error) {
	if err != nil {
		s.logger.Warn("dataset is invalid", "version", version, "rows", len(ds.Raw()), "error", err)
		return
	}
	s.logger.Debug("dataset loaded",
		"version", version,
		"kind", ds.Kind().String(),
		"dimensions", ds.Dimensions(),
		"rows", ds.Len(),
		"has_labels", ds.HasLabels(),
		"tail_length", ds.TailLength(),
	)
}
