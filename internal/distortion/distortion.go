// Package distortion holds the fixed catalog of cognitive-distortion
// categories and the codec between catalog entries and their persisted
// representations.
//
// Catalog entries are constructed once at process start and never mutated.
// Two entries are the same entry iff their slugs are equal; nothing else
// participates in identity.
package distortion

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Translator is the localization lookup injected by callers that render
// labels. i18n.Translator satisfies it.
type Translator interface {
	T(key string) string
	Locale() language.Tag
}

// Distortion is one immutable catalog entry.
type Distortion struct {
	slug           string
	emoji          []string
	labelKey       string
	descriptionKey string
}

// Slug returns the stable identifier. Slugs are never reused or reassigned.
func (d Distortion) Slug() string { return d.slug }

// Emoji returns the primary glyph.
func (d Distortion) Emoji() string {
	if len(d.emoji) == 0 {
		return ""
	}
	return d.emoji[0]
}

// FallbackEmoji returns the glyph for platforms with poor emoji support,
// or the primary glyph when no fallback was declared.
func (d Distortion) FallbackEmoji() string {
	if len(d.emoji) > 1 {
		return d.emoji[1]
	}
	return d.Emoji()
}

// LabelKey returns the localization key for the display label, derived from
// the slug when the catalog does not declare one explicitly.
func (d Distortion) LabelKey() string {
	if d.labelKey != "" {
		return d.labelKey
	}
	return snakeCase(d.slug)
}

// DescriptionKey returns the localization key for the one-line description.
func (d Distortion) DescriptionKey() string {
	if d.descriptionKey != "" {
		return d.descriptionKey
	}
	return snakeCase(d.slug) + "_one_liner"
}

// Label renders the localized display label.
func (d Distortion) Label(tr Translator) string { return tr.T(d.LabelKey()) }

// Description renders the localized one-line description.
func (d Distortion) Description(tr Translator) string { return tr.T(d.DescriptionKey()) }

// IsZero reports whether d is the zero value rather than a catalog entry.
func (d Distortion) IsZero() bool { return d.slug == "" }

func snakeCase(slug string) string {
	return strings.ReplaceAll(slug, "-", "_")
}

// The catalog. Declaration order is stable and doubles as the sort tiebreak
// in SortedList.
var list = []Distortion{
	{slug: "all-or-nothing", emoji: []string{"🌓"}, labelKey: "all_or_nothing_thinking", descriptionKey: "all_or_nothing_thinking_one_liner"},
	{slug: "overgeneralization", emoji: []string{"👯‍"}, labelKey: "over_generalization"},
	{slug: "mind-reading", emoji: []string{"🧠", "💭"}},
	{slug: "fortune-telling", emoji: []string{"🔮"}},
	{slug: "magnification-of-the-negative", emoji: []string{"👎"}},
	{slug: "minimization-of-the-positive", emoji: []string{"👍"}},
	{slug: "catastrophizing", emoji: []string{"🤯", "💥"}},
	{slug: "emotional-reasoning", emoji: []string{"🎭"}},
	{slug: "should-statements", emoji: []string{"✨"}},
	{slug: "labeling", emoji: []string{"🏷", "🍙"}},
	{slug: "self-blaming", emoji: []string{"👁", "🚷"}},
	{slug: "other-blaming", emoji: []string{"🧛‍", "👺"}},
}

var bySlug = func() map[string]Distortion {
	m := make(map[string]Distortion, len(list))
	for _, d := range list {
		m[d.slug] = d
	}
	return m
}()

// List returns all catalog entries in declaration order.
func List() []Distortion {
	out := make([]Distortion, len(list))
	copy(out, list)
	return out
}

// BySlug resolves a slug to its catalog entry. Absence is a decode-time
// error for callers, never silently defaulted.
func BySlug(slug string) (Distortion, bool) {
	d, ok := bySlug[slug]
	return d, ok
}

// SortedList returns the catalog sorted by uppercased localized label using
// the locale's collation rules. The order depends on the active locale and
// localization table, so it is recomputed on every call, never cached.
// Declaration order breaks ties.
func SortedList(tr Translator) []Distortion {
	c := collate.New(tr.Locale())
	out := List()
	sort.SliceStable(out, func(i, j int) bool {
		a := strings.ToUpper(out[i].Label(tr))
		b := strings.ToUpper(out[j].Label(tr))
		return c.CompareString(a, b) < 0
	})
	return out
}
