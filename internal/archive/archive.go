// Package archive packages persisted thought records into one compact,
// transportable string for clipboard and file export, and recovers them.
//
// The string pipeline is, in encode order: JSON → gzip → base64 → a fixed
// delimiter on both ends. Decode reverses it stage by stage and reports the
// failing stage through the sentinels in internal/common.
package archive

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/freecbt/journal/internal/common"
	"github.com/freecbt/journal/internal/thought"
)

// Version tags the archive format itself, independent of the thought schema
// version the entries carry.
const Version = "Archive-v1"

// Delimiter wraps the payload on both ends. It doubles as a quick sanity
// check that a pasted string is one of ours.
const Delimiter = ":FreeCBT:"

// Archive is an exportable snapshot: a version tag plus persisted thought
// records (wire-shaped, not live objects). It is never itself persisted —
// only its string encoding travels.
type Archive struct {
	V        string            `json:"v"`
	Thoughts []thought.Persist `json:"thoughts"`
}

// Create wraps the given records with the current archive version.
func Create(thoughts []thought.Persist) Archive {
	if thoughts == nil {
		thoughts = []thought.Persist{}
	}
	return Archive{V: Version, Thoughts: thoughts}
}

// EncodeString renders the archive into its delimited string form. The
// output is deterministic: the same archive always yields the same string.
func EncodeString(a Archive) (string, error) {
	body, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("marshal archive: %w", err)
	}
	return encodeBody(body)
}

// encodeBody applies the compress → base64 → delimit stages to an already
// marshalled body.
func encodeBody(body []byte) (string, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(body); err != nil {
		return "", fmt.Errorf("compress archive: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compress archive: %w", err)
	}
	return Delimiter + base64.StdEncoding.EncodeToString(buf.Bytes()) + Delimiter, nil
}

// DecodeString reverses EncodeString. Verification order: prefix, suffix,
// base64, compression, JSON, archive shape. A corrupted or foreign string —
// even one stray leading character — is rejected at the first failing
// stage, never partially accepted.
//
// Entries go through the thought union decode, so legacy-shaped thoughts
// inside an otherwise-current archive still decode; they are normalized to
// the current shape on the way in.
func DecodeString(enc string) (Archive, error) {
	if !strings.HasPrefix(enc, Delimiter) {
		return Archive{}, common.ErrArchivePrefix
	}
	rest := strings.TrimPrefix(enc, Delimiter)
	if !strings.HasSuffix(rest, Delimiter) {
		return Archive{}, common.ErrArchiveSuffix
	}
	payload := strings.TrimSuffix(rest, Delimiter)

	blob, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Archive{}, fmt.Errorf("%w: %w", common.ErrArchiveBase64, err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return Archive{}, fmt.Errorf("%w: %w", common.ErrArchiveCompression, err)
	}
	body, err := io.ReadAll(zr)
	if cerr := zr.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return Archive{}, fmt.Errorf("%w: %w", common.ErrArchiveCompression, err)
	}

	var w struct {
		V        *string           `json:"v"`
		Thoughts []json.RawMessage `json:"thoughts"`
	}
	if err := json.Unmarshal(body, &w); err != nil {
		return Archive{}, fmt.Errorf("%w: %w", common.ErrArchiveJSON, err)
	}
	if w.V == nil || *w.V != Version {
		return Archive{}, fmt.Errorf("%w: version tag", common.ErrArchiveShape)
	}
	if w.Thoughts == nil {
		return Archive{}, fmt.Errorf("%w: missing thoughts", common.ErrArchiveShape)
	}

	out := make([]thought.Persist, 0, len(w.Thoughts))
	for i, raw := range w.Thoughts {
		t, err := thought.Decode(raw)
		if err != nil {
			return Archive{}, fmt.Errorf("%w: thoughts[%d]: %w", common.ErrArchiveShape, i, err)
		}
		out = append(out, thought.Encode(t))
	}
	return Archive{V: Version, Thoughts: out}, nil
}
