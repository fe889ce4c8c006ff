// Package export renders the journal into shareable text formats. Every
// renderer takes already-decoded thoughts; undecodable rows never reach
// this layer.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/freecbt/journal/internal/distortion"
	"github.com/freecbt/journal/internal/thought"
)

// shrug stands in for fields the user left blank.
const shrug = "\U0001F937\u200d"

var markdownEscaper = strings.NewReplacer(
	"#", `\#`,
	"_", `\_`,
	"=", `\=`,
	"`", "\\`",
)

// escapeMarkdown neutralizes markdown syntax inside user text, plus the
// archive delimiter so an exported document can never be mistaken for an
// importable archive.
func escapeMarkdown(s string) string {
	s = markdownEscaper.Replace(s)
	return strings.ReplaceAll(s, ":FreeCBT:", `\:FreeCBT\:`)
}

// Markdown renders the thoughts as human-readable markdown, one block per
// thought, blocks separated by horizontal rules. Distortion labels come
// from the translator and are listed alphabetically.
func Markdown(ts []thought.Thought, tr distortion.Translator) string {
	blocks := make([]string, 0, len(ts))
	for _, t := range ts {
		blocks = append(blocks, markdownBlock(t, tr))
	}
	return strings.Join(blocks, "\n---\n")
}

func markdownBlock(t thought.Thought, tr distortion.Translator) string {
	labels := make([]string, 0, len(t.Distortions))
	for _, d := range t.Distortions.Values() {
		labels = append(labels, "- "+d.Label(tr))
	}
	sort.Strings(labels)

	return fmt.Sprintf(`created: %s,
updated: %s,
id: %s

# Automatic Thought

%s

# Cognitive Distortions

%s

# Challenge

%s

# Alternative Thought

%s
`,
		thought.FormatTime(t.CreatedAt),
		thought.FormatTime(t.UpdatedAt),
		t.UUID,
		orShrug(escapeMarkdown(t.AutomaticThought)),
		strings.Join(labels, "\n"),
		orShrug(escapeMarkdown(t.Challenge)),
		orShrug(escapeMarkdown(t.AlternativeThought)),
	)
}

func orShrug(s string) string {
	if s == "" {
		return shrug
	}
	return s
}
