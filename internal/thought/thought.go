// Package thought defines the journal entry model and its persistence
// codec. Encode always produces the current wire shape; decode additionally
// accepts every shape the app has ever written, because the data lives only
// on the user's device and a decode regression destroys it.
package thought

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/freecbt/journal/internal/distortion"
)

// Version tags records produced by the current codec. Legacy records carry
// no tag at all.
const Version = "Thought-v1"

// KeyPrefix namespaces thought uuids in the key-value engine. Keys without
// it belong to other collaborators (settings, lock code, flags).
const KeyPrefix = "@Quirk:thoughts:"

// Key returns the storage key for the given uuid suffix.
func Key(info string) string { return KeyPrefix + info }

// Thought is a single journal entry.
//
// Invariants: UpdatedAt never precedes CreatedAt, and every member of
// Distortions resolves to a catalog slug. Timestamps are UTC at millisecond
// precision, matching the wire format.
type Thought struct {
	UUID               string
	AutomaticThought   string
	AlternativeThought string
	Challenge          string
	Distortions        distortion.Set
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Touch updates UpdatedAt for an edit-save. CreatedAt is immutable.
func (t *Thought) Touch() {
	t.UpdatedAt = timeNow().UTC().Truncate(time.Millisecond)
}

// Equal compares two thoughts field by field, timestamps by instant.
func (t Thought) Equal(other Thought) bool {
	return t.UUID == other.UUID &&
		t.AutomaticThought == other.AutomaticThought &&
		t.AlternativeThought == other.AlternativeThought &&
		t.Challenge == other.Challenge &&
		t.Distortions.Equal(other.Distortions) &&
		t.CreatedAt.Equal(other.CreatedAt) &&
		t.UpdatedAt.Equal(other.UpdatedAt)
}

// timeNow is a test seam for clock control.
var timeNow = time.Now

// CreateArgs carries the user-entered fields for a new thought.
type CreateArgs struct {
	AutomaticThought   string
	AlternativeThought string
	Challenge          string

	// Distortions are catalog slugs. They are resolved and deduplicated;
	// an unresolvable slug fails the whole create.
	Distortions []string
}

// Create builds a new thought: resolves the distortion slugs, stamps a
// fresh namespaced uuid and CreatedAt = UpdatedAt = now.
func Create(args CreateArgs) (Thought, error) {
	set := distortion.NewSet()
	for _, slug := range args.Distortions {
		d, err := distortion.DecodeID(slug)
		if err != nil {
			return Thought{}, fmt.Errorf("create thought: %w", err)
		}
		set.Add(d)
	}
	now := timeNow().UTC().Truncate(time.Millisecond)
	return Thought{
		UUID:               Key(uuid.NewString()),
		AutomaticThought:   args.AutomaticThought,
		AlternativeThought: args.AlternativeThought,
		Challenge:          args.Challenge,
		Distortions:        set,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// Group is one calendar day's worth of thoughts.
type Group struct {
	Date     string
	Thoughts []*Thought
}

// GroupByDay buckets thoughts by the local calendar day of CreatedAt.
// Groups come back most-recent-day-first and thoughts within a group
// most-recent-first, with the input's relative order breaking ties. The
// input slice is not mutated and the thoughts are shared into their groups,
// not copied.
func GroupByDay(thoughts []*Thought) []Group {
	sorted := make([]*Thought, len(thoughts))
	copy(sorted, thoughts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	var groups []Group
	index := make(map[string]int)
	for _, t := range sorted {
		date := t.CreatedAt.Local().Format("Mon Jan 02 2006")
		i, ok := index[date]
		if !ok {
			index[date] = len(groups)
			groups = append(groups, Group{Date: date, Thoughts: []*Thought{t}})
			continue
		}
		groups[i].Thoughts = append(groups[i].Thoughts, t)
	}
	return groups
}
