// Package mood infers a mood label from free-form journal text.
package mood

import (
	"regexp"
	"strings"
)

// Vocabulary is the fixed set of mood keywords, in match order.
var Vocabulary = []string{
	"happy", "sad", "angry", "anxious", "relaxed", "calm", "grateful", "bored", "tired", "excited", "lonely",
	"energetic", "peaceful", "hopeful", "confused", "curious", "impatient", "motivated", "frustrated",
}

// keywordPatterns holds one whole-word matcher per vocabulary entry.
var keywordPatterns = compileKeywords(Vocabulary)

func compileKeywords(words []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return patterns
}

// MatchKeywords returns the vocabulary words found in text as whole words.
// Matching is case-insensitive and results follow vocabulary order, not the
// order in which the words appear in text. Returns nil if nothing matches.
func MatchKeywords(text string) []string {
	lower := strings.ToLower(text)

	var matches []string
	for i, re := range keywordPatterns {
		if re.MatchString(lower) {
			matches = append(matches, Vocabulary[i])
		}
	}
	return matches
}
