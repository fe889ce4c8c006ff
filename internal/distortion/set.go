package distortion

import "sort"

// Set is a slug-keyed set of catalog entries. Membership and equality are
// by slug; insertion order is not retained — persisted form is the sorted
// slug list, so encodes stay deterministic.
type Set map[string]Distortion

// NewSet builds a Set from the given entries, deduplicating by slug.
func NewSet(ds ...Distortion) Set {
	s := make(Set, len(ds))
	for _, d := range ds {
		s.Add(d)
	}
	return s
}

// Add inserts d, replacing any entry with the same slug.
func (s Set) Add(d Distortion) { s[d.slug] = d }

// Has reports membership by slug.
func (s Set) Has(slug string) bool {
	_, ok := s[slug]
	return ok
}

// Slugs returns the member slugs in sorted order.
func (s Set) Slugs() []string {
	out := make([]string, 0, len(s))
	for slug := range s {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}

// Values returns the member entries ordered by slug.
func (s Set) Values() []Distortion {
	out := make([]Distortion, 0, len(s))
	for _, slug := range s.Slugs() {
		out = append(out, s[slug])
	}
	return out
}

// Equal reports whether both sets hold exactly the same slugs.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for slug := range s {
		if !other.Has(slug) {
			return false
		}
	}
	return true
}
