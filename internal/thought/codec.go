package thought

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/freecbt/journal/internal/common"
	"github.com/freecbt/journal/internal/distortion"
)

// isoLayout matches the ISO-8601 strings the app has always written:
// millisecond precision, UTC.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTime renders a timestamp in the persisted ISO-8601 form.
func FormatTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// ParseTime parses a persisted ISO-8601 timestamp.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// Encode produces the current wire shape. It is the only shape writes ever
// produce; distortions come out as sorted canonical slugs.
func Encode(t Thought) Persist {
	return Persist{
		V:                    Version,
		AutomaticThought:     t.AutomaticThought,
		AlternativeThought:   t.AlternativeThought,
		CognitiveDistortions: t.Distortions.Slugs(),
		Challenge:            t.Challenge,
		CreatedAt:            FormatTime(t.CreatedAt),
		UpdatedAt:            FormatTime(t.UpdatedAt),
		UUID:                 t.UUID,
	}
}

// EncodeJSON is Encode followed by JSON marshalling, the exact bytes the
// store writes.
func EncodeJSON(t Thought) ([]byte, error) {
	return json.Marshal(Encode(t))
}

// EncodeLegacy produces the legacy wire shape with full distortion objects.
// Retained only for interop fixtures and debugging; the write path never
// calls it.
func EncodeLegacy(t Thought, tr distortion.Translator) LegacyPersist {
	legs := make([]distortion.Legacy, 0, len(t.Distortions))
	for _, d := range t.Distortions.Values() {
		legs = append(legs, distortion.EncodeLegacy(d, tr))
	}
	return LegacyPersist{
		AutomaticThought:     t.AutomaticThought,
		AlternativeThought:   t.AlternativeThought,
		CognitiveDistortions: legs,
		Challenge:            t.Challenge,
		CreatedAt:            FormatTime(t.CreatedAt),
		UpdatedAt:            FormatTime(t.UpdatedAt),
		UUID:                 t.UUID,
	}
}

// wire is the loosely-typed envelope both decode paths read from. Pointers
// distinguish absent fields from zero values; dates stay raw so the old
// epoch-millisecond generation can be rejected with a precise error.
type wire struct {
	V                    *json.RawMessage  `json:"v"`
	AutomaticThought     *string           `json:"automaticThought"`
	AlternativeThought   *string           `json:"alternativeThought"`
	CognitiveDistortions []json.RawMessage `json:"cognitiveDistortions"`
	Challenge            *string           `json:"challenge"`
	CreatedAt            json.RawMessage   `json:"createdAt"`
	UpdatedAt            json.RawMessage   `json:"updatedAt"`
	UUID                 *string           `json:"uuid"`
}

// Decode turns persisted JSON back into a Thought. The current shape is
// attempted first, then the legacy shape; when both fail the errors are
// joined so the caller sees what each path rejected, with the current-shape
// error first.
func Decode(raw []byte) (Thought, error) {
	var w wire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Thought{}, fmt.Errorf("thought: %w", err)
	}

	t, curErr := decodeCurrent(w)
	if curErr == nil {
		return t, nil
	}
	t, legErr := decodeLegacy(w)
	if legErr == nil {
		return t, nil
	}
	return Thought{}, fmt.Errorf("thought matches no persisted shape: %w", errors.Join(curErr, legErr))
}

// DecodePersist validates a current-shape record. Unlike Decode it never
// falls back to the legacy shape; archive export uses it to keep exports
// strictly current-generation.
func DecodePersist(p Persist) (Thought, error) {
	if p.V != Version {
		return Thought{}, fmt.Errorf("%w: %q", common.ErrBadVersion, p.V)
	}
	set := distortion.NewSet()
	for _, slug := range p.CognitiveDistortions {
		d, err := distortion.DecodeID(slug)
		if err != nil {
			return Thought{}, err
		}
		set.Add(d)
	}
	createdAt, err := ParseTime(p.CreatedAt)
	if err != nil {
		return Thought{}, fmt.Errorf("createdAt: %w", err)
	}
	updatedAt, err := ParseTime(p.UpdatedAt)
	if err != nil {
		return Thought{}, fmt.Errorf("updatedAt: %w", err)
	}
	if updatedAt.Before(createdAt) {
		return Thought{}, common.ErrTimeOrder
	}
	return Thought{
		UUID:               p.UUID,
		AutomaticThought:   p.AutomaticThought,
		AlternativeThought: p.AlternativeThought,
		Challenge:          p.Challenge,
		Distortions:        set,
		CreatedAt:          createdAt,
		UpdatedAt:          updatedAt,
	}, nil
}

func decodeCurrent(w wire) (Thought, error) {
	if w.V == nil {
		return Thought{}, fmt.Errorf("%w: missing version tag", common.ErrBadVersion)
	}
	var v string
	if err := json.Unmarshal(*w.V, &v); err != nil || v != Version {
		return Thought{}, fmt.Errorf("%w: %s", common.ErrBadVersion, string(*w.V))
	}

	set := distortion.NewSet()
	for _, el := range w.CognitiveDistortions {
		var slug string
		if err := json.Unmarshal(el, &slug); err != nil {
			return Thought{}, fmt.Errorf("current shape requires slug strings: %s", string(el))
		}
		d, err := distortion.DecodeID(slug)
		if err != nil {
			return Thought{}, err
		}
		set.Add(d)
	}
	return validateShared(w, set)
}

// decodeLegacy handles records written before the version tag existed.
// Distortions may be bare slugs or legacy objects. Past this one field the
// legacy record is validated by the same pass as a current one.
func decodeLegacy(w wire) (Thought, error) {
	if w.V != nil {
		return Thought{}, fmt.Errorf("%w: legacy shape carries no version tag", common.ErrBadVersion)
	}
	set := distortion.NewSet()
	for _, el := range w.CognitiveDistortions {
		d, err := distortion.DecodeAny(el)
		if err != nil {
			return Thought{}, err
		}
		set.Add(d)
	}
	return validateShared(w, set)
}

// validateShared is the single field-by-field validation pass both decode
// generations funnel into once distortions and the version tag are handled.
func validateShared(w wire, set distortion.Set) (Thought, error) {
	if w.AutomaticThought == nil || w.AlternativeThought == nil || w.Challenge == nil {
		return Thought{}, errors.New("missing text fields")
	}
	if w.CognitiveDistortions == nil {
		return Thought{}, errors.New("missing cognitiveDistortions")
	}
	if w.UUID == nil || *w.UUID == "" {
		return Thought{}, errors.New("missing uuid")
	}
	createdAt, err := parseWireTime(w.CreatedAt, "createdAt")
	if err != nil {
		return Thought{}, err
	}
	updatedAt, err := parseWireTime(w.UpdatedAt, "updatedAt")
	if err != nil {
		return Thought{}, err
	}
	if updatedAt.Before(createdAt) {
		return Thought{}, common.ErrTimeOrder
	}
	return Thought{
		UUID:               *w.UUID,
		AutomaticThought:   *w.AutomaticThought,
		AlternativeThought: *w.AlternativeThought,
		Challenge:          *w.Challenge,
		Distortions:        set,
		CreatedAt:          createdAt,
		UpdatedAt:          updatedAt,
	}, nil
}

// parseWireTime rejects the pre-legacy epoch-millisecond generation with a
// precise error instead of misreading the number, and parses ISO-8601
// strings for everything else.
func parseWireTime(raw json.RawMessage, field string) (time.Time, error) {
	if raw == nil {
		return time.Time{}, fmt.Errorf("missing %s", field)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n float64
		if numErr := json.Unmarshal(raw, &n); numErr == nil {
			return time.Time{}, fmt.Errorf("%s: %w: epoch milliseconds", field, common.ErrUnsupportedDateFormat)
		}
		return time.Time{}, fmt.Errorf("%s: %w: %s", field, common.ErrUnsupportedDateFormat, string(raw))
	}
	t, err := ParseTime(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}
