package thought

import (
	"github.com/freecbt/journal/internal/distortion"
)

// Persist is the current wire shape, exactly as stored in the key-value
// engine and inside archives.
type Persist struct {
	V                    string   `json:"v"`
	AutomaticThought     string   `json:"automaticThought"`
	AlternativeThought   string   `json:"alternativeThought"`
	CognitiveDistortions []string `json:"cognitiveDistortions"`
	Challenge            string   `json:"challenge"`
	CreatedAt            string   `json:"createdAt"`
	UpdatedAt            string   `json:"updatedAt"`
	UUID                 string   `json:"uuid"`
}

// LegacyPersist is the old wire shape: no version tag, and distortions as
// full legacy objects. These were persisted in user data, so decode support
// lives forever. Encoding one is only ever done to produce fixtures; see
// EncodeLegacy.
type LegacyPersist struct {
	AutomaticThought     string              `json:"automaticThought"`
	AlternativeThought   string              `json:"alternativeThought"`
	CognitiveDistortions []distortion.Legacy `json:"cognitiveDistortions"`
	Challenge            string              `json:"challenge"`
	CreatedAt            string              `json:"createdAt"`
	UpdatedAt            string              `json:"updatedAt"`
	UUID                 string              `json:"uuid"`
}
