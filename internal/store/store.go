// Package store bridges the thought codec to the opaque key-value engine:
// single-record reads and writes, batch reads with per-record failure
// isolation, and archive export/import.
//
// Propagation policy: single-record operations let failures reach the
// caller; batch operations fold each record's failure into a ParseError so
// the batch as a whole always completes.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/freecbt/journal/internal/archive"
	"github.com/freecbt/journal/internal/common"
	"github.com/freecbt/journal/internal/kv"
	"github.com/freecbt/journal/internal/logging"
	"github.com/freecbt/journal/internal/thought"
)

// ExistingUserKey flags that this device has journal history. It sits
// outside the thought key prefix, alongside other collaborators' keys, and
// is never touched by archive replaces.
const ExistingUserKey = "@Quirk:existing-user"

// Store persists thoughts through a kv.Engine.
type Store struct {
	engine kv.Engine
	log    logging.Logger
}

// New returns a Store over the given engine. A nil logger falls back to a
// no-op one.
func New(engine kv.Engine, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{engine: engine, log: log}
}

// Write encodes and stores one thought under its uuid, replacing any
// existing value at that key.
func (s *Store) Write(ctx context.Context, t thought.Thought) error {
	raw, err := thought.EncodeJSON(t)
	if err != nil {
		return fmt.Errorf("failed to encode thought: %w", err)
	}
	if err := s.engine.Set(ctx, t.UUID, string(raw)); err != nil {
		return fmt.Errorf("failed to store thought: %w", err)
	}
	return nil
}

// Read fetches and decodes one thought. Any failure propagates: engine and
// codec errors as-is, absence as common.ErrNotFound.
func (s *Store) Read(ctx context.Context, id string) (thought.Thought, error) {
	raw, ok, err := s.engine.Get(ctx, id)
	if err != nil {
		return thought.Thought{}, fmt.Errorf("failed to read thought: %w", err)
	}
	if !ok {
		return thought.Thought{}, fmt.Errorf("%w: %s", common.ErrNotFound, id)
	}
	return thought.Decode([]byte(raw))
}

// ReadResult is Read with the failure folded into a ParseError value, for
// callers that must keep going.
func (s *Store) ReadResult(ctx context.Context, id string) Result {
	raw, ok, err := s.engine.Get(ctx, id)
	if err == nil && !ok {
		err = common.ErrNotFound
	}
	if err != nil {
		return Result{Err: &ParseError{ID: id, Raw: raw, Err: err}}
	}
	return parseResult(id, raw)
}

func parseResult(id, raw string) Result {
	t, err := thought.Decode([]byte(raw))
	if err != nil {
		return Result{Err: &ParseError{ID: id, Raw: raw, Err: err}}
	}
	return Result{Thought: &t}
}

// ExerciseKeys lists the stored keys carrying the thought prefix. Keys
// owned by other collaborators never show up here.
func (s *Store) ExerciseKeys(ctx context.Context) ([]string, error) {
	all, err := s.engine.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	keys := make([]string, 0, len(all))
	for _, k := range all {
		if strings.HasPrefix(k, thought.KeyPrefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// rawExercises fetches every thought row in one multi-get.
func (s *Store) rawExercises(ctx context.Context) ([]kv.Pair, error) {
	keys, err := s.ExerciseKeys(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.engine.MultiGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to read thought rows: %w", err)
	}
	return rows, nil
}

// Exercises reads the whole journal, one Result per stored row. A corrupt
// row never cancels its siblings.
func (s *Store) Exercises(ctx context.Context) ([]Result, error) {
	rows, err := s.rawExercises(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, parseResult(row.Key, row.Value))
	}
	return out, nil
}

// ValidExercises returns only the rows that decoded.
func (s *Store) ValidExercises(ctx context.Context) ([]thought.Thought, error) {
	results, err := s.Exercises(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]thought.Thought, 0, len(results))
	for _, r := range results {
		if r.OK() {
			out = append(out, *r.Thought)
		}
	}
	return out, nil
}

// Count reports how many thought rows exist, decodable or not.
func (s *Store) Count(ctx context.Context) (int, error) {
	results, err := s.Exercises(ctx)
	if err != nil {
		return 0, err
	}
	return len(results), nil
}

// Remove deletes one thought, best effort: the record may already be gone,
// and deletion is not a data-integrity-critical path, so failures are
// logged and swallowed.
func (s *Store) Remove(ctx context.Context, id string) {
	if err := s.engine.Remove(ctx, id); err != nil {
		s.log.Error(ctx, "failed to remove thought", "uuid", id, "error", err)
	}
}

// Exists reports whether a non-empty value sits under key. Engine failures
// are logged and read as absence.
func (s *Store) Exists(ctx context.Context, key string) bool {
	v, ok, err := s.engine.Get(ctx, key)
	if err != nil {
		s.log.Error(ctx, "failed to check key", "key", key, "error", err)
		return false
	}
	return ok && v != ""
}

// IsExistingUser reports whether this device already has journal history.
func (s *Store) IsExistingUser(ctx context.Context) bool {
	return s.Exists(ctx, ExistingUserKey)
}

// SetExistingUser marks this device as having journal history, best effort.
func (s *Store) SetExistingUser(ctx context.Context) {
	if err := s.engine.Set(ctx, ExistingUserKey, "true"); err != nil {
		s.log.Error(ctx, "failed to set existing-user flag", "error", err)
	}
}

// ReadArchive snapshots the journal for export. Rows are decoded as the
// current shape only — export operates on what is already storable as
// current-generation JSON — and rows failing that narrower decode are
// silently excluded: export is best-effort, not an error report.
func (s *Store) ReadArchive(ctx context.Context) (archive.Archive, error) {
	rows, err := s.rawExercises(ctx)
	if err != nil {
		return archive.Archive{}, err
	}
	persists := make([]thought.Persist, 0, len(rows))
	for _, row := range rows {
		var p thought.Persist
		if err := json.Unmarshal([]byte(row.Value), &p); err != nil {
			continue
		}
		if _, err := thought.DecodePersist(p); err != nil {
			continue
		}
		persists = append(persists, p)
	}
	return archive.Create(persists), nil
}

// WriteArchive replaces the journal with the archive's entries: delete all
// thought keys, then write every entry under its own uuid. The sequence is
// deliberately not transactional — a crash in between can leave the store
// empty. Empty delete/write batches are skipped rather than handed to
// engines that reject them. Non-prefixed keys are never touched.
func (s *Store) WriteArchive(ctx context.Context, a archive.Archive) error {
	oldKeys, err := s.ExerciseKeys(ctx)
	if err != nil {
		return err
	}
	if len(oldKeys) > 0 {
		if err := s.engine.MultiRemove(ctx, oldKeys); err != nil {
			return fmt.Errorf("failed to clear journal: %w", err)
		}
	}

	pairs := make([]kv.Pair, 0, len(a.Thoughts))
	for _, p := range a.Thoughts {
		raw, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to encode archive entry: %w", err)
		}
		pairs = append(pairs, kv.Pair{Key: p.UUID, Value: string(raw)})
	}
	if len(pairs) > 0 {
		if err := s.engine.MultiSet(ctx, pairs); err != nil {
			return fmt.Errorf("failed to write archive entries: %w", err)
		}
	}
	return nil
}

// ReadArchiveString snapshots the journal into the transportable string.
func (s *Store) ReadArchiveString(ctx context.Context) (string, error) {
	a, err := s.ReadArchive(ctx)
	if err != nil {
		return "", err
	}
	return archive.EncodeString(a)
}

// WriteArchiveString decodes enc and replaces the journal with its
// contents. The decode error comes back as a plain value so callers can
// show it; on decode failure nothing in storage has been touched — import
// failure must never trigger the destructive replace.
func (s *Store) WriteArchiveString(ctx context.Context, enc string) error {
	a, err := archive.DecodeString(strings.TrimSpace(enc))
	if err != nil {
		return err
	}
	return s.WriteArchive(ctx, a)
}
