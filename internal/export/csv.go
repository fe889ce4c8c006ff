package export

import (
	"strings"

	"github.com/freecbt/journal/internal/thought"
)

var csvHeaders = []string{
	"uuid",
	"createdAt",
	"updatedAt",
	"automaticThought",
	"cognitiveDistortions",
	"challenge",
	"alternativeThought",
}

// CSV renders the thoughts as a spreadsheet-importable table, one row per
// thought. Distortions appear as sorted slugs joined by commas inside a
// single quoted cell.
func CSV(ts []thought.Thought) string {
	rows := make([]string, 0, len(ts)+1)
	rows = append(rows, csvRow(csvHeaders))
	for _, t := range ts {
		rows = append(rows, csvRow([]string{
			t.UUID,
			thought.FormatTime(t.CreatedAt),
			thought.FormatTime(t.UpdatedAt),
			t.AutomaticThought,
			strings.Join(t.Distortions.Slugs(), ","),
			t.Challenge,
			t.AlternativeThought,
		}))
	}
	return strings.Join(rows, "\n")
}

func csvRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = escapeCSV(c)
	}
	return strings.Join(escaped, ",")
}

// escapeCSV doubles quotes unconditionally, then quotes the cell when it
// carries a separator or quote-like character.
func escapeCSV(s string) string {
	s = strings.ReplaceAll(s, `"`, `""`)
	if strings.ContainsAny(s, ",\"'\n\\") {
		s = `"` + s + `"`
	}
	return s
}
