// Package i18n provides the localization lookup that is injected into
// catalog sorting and label rendering. There is deliberately no package-level
// singleton: callers construct a Translator and pass it down, so anything
// locale-dependent stays reproducible in tests.
package i18n

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is the fallback locale for missing translations.
var DefaultLocale = language.English

// Translator resolves localization keys to display strings for one locale.
// Lookup order: the translator's own locale table, then the default locale
// table, then the key itself.
type Translator struct {
	locale language.Tag
	tables map[string]map[string]string
}

// New returns a Translator for the given locale backed by the built-in
// string tables.
func New(locale language.Tag) *Translator {
	return &Translator{locale: locale, tables: tables}
}

// NewWithTable returns a Translator whose locale table is supplied by the
// caller. Used by tests that need full control over labels.
func NewWithTable(locale language.Tag, table map[string]string) *Translator {
	return &Translator{
		locale: locale,
		tables: map[string]map[string]string{locale.String(): table},
	}
}

// T resolves key to a display string.
func (tr *Translator) T(key string) string {
	if table, ok := tr.tables[tr.locale.String()]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if table, ok := tr.tables[DefaultLocale.String()]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	return key
}

// Locale reports the translator's active locale.
func (tr *Translator) Locale() language.Tag {
	return tr.locale
}

// Collator returns a collator for the translator's locale. Label sorting
// goes through here so ordering follows the locale's collation rules, not
// byte order.
func (tr *Translator) Collator() *collate.Collator {
	return collate.New(tr.locale)
}
