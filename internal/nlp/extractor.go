// Package nlp guesses cities and intent signals from free-form user text.
package nlp

import (
	"log"
	"regexp"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/pfjus/Weather-Chatbot/internal/common"
)

// cityPattern captures one to three word tokens following a location
// preposition ("weather in New York" -> "New York").
var cityPattern = regexp.MustCompile(`(?i)\b(?:in|of|for|about)\s+([\p{L}][\p{L}'-]*(?:\s[\p{L}][\p{L}'-]*){0,2})`)

// stopwords are temporal/weather filler words that disqualify a captured
// phrase from being a city name.
var stopwords = map[string]struct{}{
	"today":     {},
	"tomorrow":  {},
	"tonight":   {},
	"yesterday": {},
	"morning":   {},
	"afternoon": {},
	"evening":   {},
	"week":      {},
	"weather":   {},
	"forecast":  {},
	"rain":      {},
	"snow":      {},
	"wind":      {},
	"time":      {},
	"there":     {},
	"here":      {},
	"now":       {},
	"the":       {},
	"a":         {},
	"an":        {},
	"it":        {},
	"me":        {},
	"that":      {},
	"this":      {},
	"please":    {},
}

// ExtractCity returns a best-guess city name from text, title-cased.
// It tries the preposition pattern first, then falls back to named-entity
// recognition. ok is false when nothing plausible is found; absence of a
// city is an expected, common case, not an error. Conversational memory is
// never consulted here.
func ExtractCity(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	// First preposition match with a stoplist-free capture wins.
	for _, m := range cityPattern.FindAllStringSubmatch(text, -1) {
		if phrase := m[1]; !containsStopword(phrase) {
			return common.TitleCase(phrase), true
		}
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		log.Printf("nlp: entity recognition failed: %v", err)
		return "", false
	}
	for _, ent := range doc.Entities() {
		if ent.Label == "GPE" || ent.Label == "LOC" {
			return common.TitleCase(ent.Text), true
		}
	}

	return "", false
}

func containsStopword(phrase string) bool {
	for _, word := range strings.Fields(strings.ToLower(phrase)) {
		if _, ok := stopwords[word]; ok {
			return true
		}
	}
	return false
}
