package mood

import (
	"slices"
	"testing"
)

func TestMatchKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single keyword",
			text: "Today I am tired after work",
			want: []string{"tired"},
		},
		{
			name: "case insensitive",
			text: "So HAPPY right now",
			want: []string{"happy"},
		},
		{
			name: "vocabulary order not input order",
			text: "I feel so happy and excited today",
			want: []string{"happy", "excited"},
		},
		{
			name: "reversed input keeps vocabulary order",
			text: "frustrated, then calm",
			want: []string{"calm", "frustrated"},
		},
		{
			name: "whole words only",
			text: "unhappy sadness calmly",
			want: nil,
		},
		{
			name: "punctuation boundaries",
			text: "lonely... but hopeful!",
			want: []string{"lonely", "hopeful"},
		},
		{
			name: "repeated keyword counted once",
			text: "sad sad sad",
			want: []string{"sad"},
		},
		{
			name: "no keywords",
			text: "blah blah blah",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchKeywords(tt.text)
			if !slices.Equal(got, tt.want) {
				t.Errorf("MatchKeywords(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMatchKeywords_EveryWordAlone(t *testing.T) {
	for _, word := range Vocabulary {
		t.Run(word, func(t *testing.T) {
			got := MatchKeywords("Honestly I feel " + word + " today.")
			if len(got) != 1 || got[0] != word {
				t.Errorf("MatchKeywords() = %v, want [%s]", got, word)
			}
		})
	}
}
