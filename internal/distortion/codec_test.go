package distortion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/freecbt/journal/internal/common"
	"github.com/freecbt/journal/internal/i18n"
)

func TestDecodeID(t *testing.T) {
	d, err := DecodeID("all-or-nothing")
	require.NoError(t, err)
	require.Equal(t, "all-or-nothing", d.Slug())

	_, err = DecodeID("bogus")
	require.ErrorIs(t, err, common.ErrNoSuchDistortion)
}

func TestEncodeID_AlwaysSlug(t *testing.T) {
	for _, d := range List() {
		require.Equal(t, d.Slug(), EncodeID(d))
	}
}

func TestDecodeLegacy_IgnoresSnapshotText(t *testing.T) {
	raw := json.RawMessage(`{"slug":"all-or-nothing","label":"x","description":"y"}`)
	d, err := DecodeLegacy(raw)
	require.NoError(t, err)

	canonical, _ := BySlug("all-or-nothing")
	require.Equal(t, canonical, d, "the stale snapshot must resolve to the canonical entry")

	tr := i18n.New(language.English)
	require.NotEqual(t, "x", d.Label(tr))
}

func TestDecodeLegacy_Variants(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"full object", `{"slug":"labeling","label":"l","description":"d"}`, false},
		{"slug only", `{"slug":"labeling"}`, false},
		{"with selected", `{"slug":"labeling","selected":true}`, false},
		{"emoji as string", `{"slug":"labeling","label":"l","description":"d","emoji":"🏷"}`, false},
		{"emoji as array", `{"slug":"labeling","label":"l","description":"d","emoji":["🏷","🍙"]}`, false},
		{"missing slug", `{"label":"l","description":"d"}`, true},
		{"unknown slug", `{"slug":"nope","label":"l","description":"d"}`, true},
		{"not an object", `42`, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := DecodeLegacy(json.RawMessage(tc.raw))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "labeling", d.Slug())
		})
	}
}

func TestDecodeAny(t *testing.T) {
	d, err := DecodeAny(json.RawMessage(`"self-blaming"`))
	require.NoError(t, err)
	require.Equal(t, "self-blaming", d.Slug())

	d, err = DecodeAny(json.RawMessage(`{"slug":"self-blaming","label":"old","description":"old"}`))
	require.NoError(t, err)
	require.Equal(t, "self-blaming", d.Slug())

	_, err = DecodeAny(json.RawMessage(`"bogus"`))
	require.ErrorIs(t, err, common.ErrNoSuchDistortion)

	_, err = DecodeAny(json.RawMessage(`{"slug":"bogus"}`))
	require.ErrorIs(t, err, common.ErrNoSuchDistortion)
}

func TestEncodeLegacy_SnapshotsCurrentText(t *testing.T) {
	tr := i18n.New(language.English)
	d, _ := BySlug("all-or-nothing")
	leg := EncodeLegacy(d, tr)
	require.Equal(t, "all-or-nothing", leg.Slug)
	require.Equal(t, "All or Nothing Thinking", leg.Label)
	require.NotEmpty(t, leg.Description)
	require.Equal(t, LegacyEmoji{"🌓"}, leg.Emoji)

	// legacy snapshots round-trip through the union decode
	b, err := json.Marshal(leg)
	require.NoError(t, err)
	back, err := DecodeAny(b)
	require.NoError(t, err)
	require.Equal(t, d, back)
}

func TestLegacyEmoji_MarshalForms(t *testing.T) {
	one, err := json.Marshal(LegacyEmoji{"🔮"})
	require.NoError(t, err)
	require.JSONEq(t, `"🔮"`, string(one))

	two, err := json.Marshal(LegacyEmoji{"🧠", "💭"})
	require.NoError(t, err)
	require.JSONEq(t, `["🧠","💭"]`, string(two))
}
