package i18n

// tables holds the built-in locale tables. Only English ships with the
// core; additional locales overlay it at construction time.
var tables = map[string]map[string]string{
	"en": {
		"all_or_nothing_thinking":           "All or Nothing Thinking",
		"all_or_nothing_thinking_one_liner": "You see things in black-and-white categories.",

		"over_generalization":          "Overgeneralization",
		"overgeneralization_one_liner": "You see a single negative event as a never-ending pattern of defeat.",

		"mind_reading":           "Mind Reading",
		"mind_reading_one_liner": "You assume you know what other people are thinking about you.",

		"fortune_telling":           "Fortune Telling",
		"fortune_telling_one_liner": "You predict that things will turn out badly.",

		"magnification_of_the_negative":           "Magnification of the Negative",
		"magnification_of_the_negative_one_liner": "You exaggerate the importance of your problems and shortcomings.",

		"minimization_of_the_positive":           "Minimization of the Positive",
		"minimization_of_the_positive_one_liner": "You shrink your positive qualities until they seem unimportant.",

		"catastrophizing":           "Catastrophizing",
		"catastrophizing_one_liner": "You expect disaster to strike no matter what.",

		"emotional_reasoning":           "Emotional Reasoning",
		"emotional_reasoning_one_liner": "You assume your negative emotions reflect the way things really are.",

		"should_statements":           "Should Statements",
		"should_statements_one_liner": "You criticize yourself or other people with \"shoulds\", \"oughts\" and \"musts\".",

		"labeling":           "Labeling",
		"labeling_one_liner": "You attach a negative label to yourself or others instead of describing the behavior.",

		"self_blaming":           "Self-Blaming",
		"self_blaming_one_liner": "You hold yourself personally responsible for events that aren't entirely under your control.",

		"other_blaming":           "Other-Blaming",
		"other_blaming_one_liner": "You blame other people and overlook ways your own attitude contributed to a problem.",
	},
}
