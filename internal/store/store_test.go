package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/freecbt/journal/internal/archive"
	"github.com/freecbt/journal/internal/common"
	"github.com/freecbt/journal/internal/i18n"
	"github.com/freecbt/journal/internal/kv"
	"github.com/freecbt/journal/internal/thought"
)

func newTestStore(t *testing.T) (*Store, *kv.Memory) {
	t.Helper()
	m := kv.NewMemory()
	return New(m, nil), m
}

func mustCreate(t *testing.T, auto string, slugs ...string) thought.Thought {
	t.Helper()
	th, err := thought.Create(thought.CreateArgs{
		AutomaticThought:   auto,
		Challenge:          "chal",
		AlternativeThought: "alt",
		Distortions:        slugs,
	})
	require.NoError(t, err)
	return th
}

func TestWriteRead(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	th := mustCreate(t, "auto", "all-or-nothing")
	require.NoError(t, s.Write(ctx, th))

	got, err := s.Read(ctx, th.UUID)
	require.NoError(t, err)
	require.True(t, th.Equal(got))
}

func TestRead_MissingKeyFails(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, err := s.Read(ctx, thought.Key("nope"))
	require.ErrorIs(t, err, common.ErrNotFound)

	r := s.ReadResult(ctx, thought.Key("nope"))
	require.False(t, r.OK())
	require.ErrorIs(t, r.Err, common.ErrNotFound)
}

func TestWrite_ReplacesFullRecord(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	th := mustCreate(t, "first")
	require.NoError(t, s.Write(ctx, th))

	th.AutomaticThought = "second"
	th.Touch()
	require.NoError(t, s.Write(ctx, th))

	got, err := s.Read(ctx, th.UUID)
	require.NoError(t, err)
	require.Equal(t, "second", got.AutomaticThought)
	require.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestReadResult_CorruptRow(t *testing.T) {
	ctx := context.Background()
	s, m := newTestStore(t)

	key := thought.Key("corrupt")
	require.NoError(t, m.Set(ctx, key, "{not json"))

	r := s.ReadResult(ctx, key)
	require.False(t, r.OK())
	require.Equal(t, key, r.Err.ID)
	require.Equal(t, "{not json", r.Err.Raw)
	require.Error(t, r.Err.Err)
}

func TestExercises_PartialFailureIsolation(t *testing.T) {
	ctx := context.Background()
	s, m := newTestStore(t)

	for _, auto := range []string{"one", "two", "three"} {
		require.NoError(t, s.Write(ctx, mustCreate(t, auto)))
	}
	badKey := thought.Key("bad")
	require.NoError(t, m.Set(ctx, badKey, "%%%"))

	results, err := s.Exercises(ctx)
	require.NoError(t, err)
	require.Len(t, results, 4, "one result per stored row")

	var failures []*ParseError
	var okCount int
	for _, r := range results {
		if r.OK() {
			okCount++
		} else {
			failures = append(failures, r.Err)
		}
	}
	require.Equal(t, 3, okCount)
	require.Len(t, failures, 1)
	require.Equal(t, badKey, failures[0].ID)
	require.Equal(t, "%%%", failures[0].Raw)

	valid, err := s.ValidExercises(ctx)
	require.NoError(t, err)
	require.Len(t, valid, 3)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, n, "count includes undecodable rows")
}

func TestExerciseKeys_IgnoresForeignKeys(t *testing.T) {
	ctx := context.Background()
	s, m := newTestStore(t)

	require.NoError(t, s.Write(ctx, mustCreate(t, "mine")))
	require.NoError(t, m.Set(ctx, "@Quirk:settings:locale", "en"))
	require.NoError(t, m.Set(ctx, ExistingUserKey, "true"))

	keys, err := s.ExerciseKeys(ctx)
	require.NoError(t, err)
	require.Len(t, keys, 1)
}

func TestRemove_BestEffort(t *testing.T) {
	ctx := context.Background()
	s, m := newTestStore(t)

	th := mustCreate(t, "gone")
	require.NoError(t, s.Write(ctx, th))
	s.Remove(ctx, th.UUID)
	_, ok, _ := m.Get(ctx, th.UUID)
	require.False(t, ok)

	// removing again, and removing through a broken engine, must not panic
	s.Remove(ctx, th.UUID)
	broken := New(&failingEngine{err: errors.New("disk on fire")}, nil)
	broken.Remove(ctx, th.UUID)
}

func TestExistingUserFlag(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.False(t, s.IsExistingUser(ctx))
	s.SetExistingUser(ctx)
	require.True(t, s.IsExistingUser(ctx))

	broken := New(&failingEngine{err: errors.New("nope")}, nil)
	require.False(t, broken.IsExistingUser(ctx), "engine failure reads as absence")
	broken.SetExistingUser(ctx) // logged and swallowed
}

func TestReadArchive_CurrentShapeOnly(t *testing.T) {
	ctx := context.Background()
	s, m := newTestStore(t)

	current := mustCreate(t, "current", "labeling")
	require.NoError(t, s.Write(ctx, current))

	// a legacy row decodes fine in listings but is excluded from export
	legacyKey := thought.Key("legacy")
	legacyRaw := `{
		"automaticThought": "old", "alternativeThought": "old", "challenge": "old",
		"cognitiveDistortions": ["labeling"],
		"createdAt": "2019-04-01T10:00:00.000Z",
		"updatedAt": "2019-04-01T10:00:00.000Z",
		"uuid": "` + legacyKey + `"
	}`
	require.NoError(t, m.Set(ctx, legacyKey, legacyRaw))

	// corrupt rows are excluded too, silently
	require.NoError(t, m.Set(ctx, thought.Key("junk"), "junk"))

	valid, err := s.ValidExercises(ctx)
	require.NoError(t, err)
	require.Len(t, valid, 2, "listing still sees the legacy row")

	a, err := s.ReadArchive(ctx)
	require.NoError(t, err)
	require.Equal(t, archive.Version, a.V)
	require.Len(t, a.Thoughts, 1)
	require.Equal(t, current.UUID, a.Thoughts[0].UUID)
}

func TestWriteArchive_ReplacesJournalOnly(t *testing.T) {
	ctx := context.Background()
	s, m := newTestStore(t)

	require.NoError(t, s.Write(ctx, mustCreate(t, "old-1")))
	require.NoError(t, s.Write(ctx, mustCreate(t, "old-2")))
	require.NoError(t, m.Set(ctx, "@Quirk:settings:locale", "en"))

	incoming := mustCreate(t, "imported", "catastrophizing")
	a := archive.Create([]thought.Persist{thought.Encode(incoming)})
	require.NoError(t, s.WriteArchive(ctx, a))

	valid, err := s.ValidExercises(ctx)
	require.NoError(t, err)
	require.Len(t, valid, 1)
	require.Equal(t, "imported", valid[0].AutomaticThought)

	v, ok, err := m.Get(ctx, "@Quirk:settings:locale")
	require.NoError(t, err)
	require.True(t, ok, "foreign keys survive the replace")
	require.Equal(t, "en", v)
}

func TestWriteArchive_EmptyBatchesSkipped(t *testing.T) {
	ctx := context.Background()
	// an engine that rejects empty batches must never see one
	e := &strictBatchEngine{Memory: kv.NewMemory()}
	s := New(e, nil)

	require.NoError(t, s.WriteArchive(ctx, archive.Create(nil)))

	th := mustCreate(t, "only")
	require.NoError(t, s.WriteArchive(ctx, archive.Create([]thought.Persist{thought.Encode(th)})))

	require.NoError(t, s.WriteArchive(ctx, archive.Create(nil)))
	valid, err := s.ValidExercises(ctx)
	require.NoError(t, err)
	require.Empty(t, valid)
}

func TestWriteArchiveString_DecodeFailureLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	keeper := mustCreate(t, "precious")
	require.NoError(t, s.Write(ctx, keeper))

	enc, err := s.ReadArchiveString(ctx)
	require.NoError(t, err)

	err = s.WriteArchiveString(ctx, "!"+enc)
	require.ErrorIs(t, err, common.ErrArchivePrefix)

	got, err := s.Read(ctx, keeper.UUID)
	require.NoError(t, err)
	require.True(t, keeper.Equal(got), "failed import must not trigger the replace")
}

func TestWriteArchiveString_TrimsWhitespace(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Write(ctx, mustCreate(t, "x")))
	enc, err := s.ReadArchiveString(ctx)
	require.NoError(t, err)

	require.NoError(t, s.WriteArchiveString(ctx, "  \n"+enc+"\t\n"))
}

func TestEndToEnd_ExportWipeImport(t *testing.T) {
	ctx := context.Background()
	s, m := newTestStore(t)

	th, err := thought.Create(thought.CreateArgs{
		AutomaticThought:   "auto",
		Challenge:          "chal",
		AlternativeThought: "alt",
		Distortions:        []string{"all-or-nothing"},
	})
	require.NoError(t, err)
	require.NoError(t, s.Write(ctx, th))

	valid, err := s.ValidExercises(ctx)
	require.NoError(t, err)
	require.Len(t, valid, 1)
	require.True(t, th.Equal(valid[0]))

	enc, err := s.ReadArchiveString(ctx)
	require.NoError(t, err)

	// wipe
	keys, err := m.Keys(ctx)
	require.NoError(t, err)
	require.NoError(t, m.MultiRemove(ctx, keys))
	valid, err = s.ValidExercises(ctx)
	require.NoError(t, err)
	require.Empty(t, valid)

	// import
	require.NoError(t, s.WriteArchiveString(ctx, enc))
	valid, err = s.ValidExercises(ctx)
	require.NoError(t, err)
	require.Len(t, valid, 1)
	require.True(t, th.Equal(valid[0]))
}

func TestLegacyFixtureSurvivesFullPath(t *testing.T) {
	// a legacy-encoded fixture written straight into the engine round-trips
	// through listing (union decode) even though export would skip it
	ctx := context.Background()
	s, m := newTestStore(t)

	tr := i18n.New(language.English)
	th := mustCreate(t, "legacy-born", "self-blaming")
	leg := thought.EncodeLegacy(th, tr)
	raw, err := json.Marshal(leg)
	require.NoError(t, err)
	require.NoError(t, m.Set(ctx, th.UUID, string(raw)))

	got, err := s.Read(ctx, th.UUID)
	require.NoError(t, err)
	require.True(t, th.Equal(got))
}

// failingEngine errors on every operation.
type failingEngine struct{ err error }

func (f *failingEngine) Get(context.Context, string) (string, bool, error) {
	return "", false, f.err
}
func (f *failingEngine) Set(context.Context, string, string) error { return f.err }
func (f *failingEngine) Remove(context.Context, string) error      { return f.err }
func (f *failingEngine) Keys(context.Context) ([]string, error)    { return nil, f.err }
func (f *failingEngine) MultiGet(context.Context, []string) ([]kv.Pair, error) {
	return nil, f.err
}
func (f *failingEngine) MultiSet(context.Context, []kv.Pair) error   { return f.err }
func (f *failingEngine) MultiRemove(context.Context, []string) error { return f.err }

// strictBatchEngine rejects empty batch operations, as the original
// AsyncStorage engine did.
type strictBatchEngine struct{ *kv.Memory }

func (s *strictBatchEngine) MultiSet(ctx context.Context, pairs []kv.Pair) error {
	if len(pairs) == 0 {
		return errors.New("empty batch")
	}
	return s.Memory.MultiSet(ctx, pairs)
}

func (s *strictBatchEngine) MultiRemove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return errors.New("empty batch")
	}
	return s.Memory.MultiRemove(ctx, keys)
}
