package distortion

import (
	"encoding/json"
	"fmt"

	"github.com/freecbt/journal/internal/common"
)

// EncodeID is the canonical encode: always the bare slug, never an object.
// Normal write paths produce nothing else.
func EncodeID(d Distortion) string { return d.slug }

// DecodeID resolves a slug to its catalog entry.
func DecodeID(slug string) (Distortion, error) {
	d, ok := bySlug[slug]
	if !ok {
		return Distortion{}, fmt.Errorf("%w: %q", common.ErrNoSuchDistortion, slug)
	}
	return d, nil
}

// Legacy is the old persisted object form. Real user archives predate the
// identifier-only format, so decode support stays forever. Only Slug
// participates in resolution: the snapshot label/description/emoji were
// captured before translations and catalog text were fixed and must never
// shadow the canonical entry.
type Legacy struct {
	Slug        string      `json:"slug"`
	Label       string      `json:"label,omitempty"`
	Description string      `json:"description,omitempty"`
	Emoji       LegacyEmoji `json:"emoji,omitempty"`
	Selected    *bool       `json:"selected,omitempty"`
}

// LegacyEmoji absorbs both wire forms the old app wrote: a single string or
// an array of glyphs.
type LegacyEmoji []string

func (e *LegacyEmoji) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*e = LegacyEmoji{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("legacy emoji is neither string nor array: %w", err)
	}
	*e = LegacyEmoji(many)
	return nil
}

func (e LegacyEmoji) MarshalJSON() ([]byte, error) {
	if len(e) == 1 {
		return json.Marshal(e[0])
	}
	return json.Marshal([]string(e))
}

// DecodeLegacy resolves a legacy object by its slug. The oldest snapshots
// carry the full {slug, label, description} shape, later ones only {slug};
// both are accepted.
func DecodeLegacy(raw json.RawMessage) (Distortion, error) {
	var leg Legacy
	if err := json.Unmarshal(raw, &leg); err != nil {
		return Distortion{}, fmt.Errorf("legacy distortion: %w", err)
	}
	if leg.Slug == "" {
		return Distortion{}, fmt.Errorf("legacy distortion: missing slug")
	}
	return DecodeID(leg.Slug)
}

// DecodeAny is the union decode: canonical slug string first, legacy object
// second. An unknown slug fails hard under either path.
func DecodeAny(raw json.RawMessage) (Distortion, error) {
	var slug string
	if err := json.Unmarshal(raw, &slug); err == nil {
		return DecodeID(slug)
	}
	return DecodeLegacy(raw)
}

// EncodeLegacy snapshots an entry into the legacy object form with its
// current localized text. Retained for producing legacy-format fixtures;
// normal writes never use it.
func EncodeLegacy(d Distortion, tr Translator) Legacy {
	return Legacy{
		Slug:        d.slug,
		Label:       d.Label(tr),
		Description: d.Description(tr),
		Emoji:       LegacyEmoji{d.Emoji()},
	}
}
