package export

import (
	"encoding/json"
	"fmt"

	"github.com/freecbt/journal/internal/archive"
)

// ArchiveJSON renders the archive as indented JSON for users who want an
// inspectable export rather than the compressed transport string.
func ArchiveJSON(a archive.Archive) (string, error) {
	raw, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode archive json: %w", err)
	}
	return string(raw), nil
}
