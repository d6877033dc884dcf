package network

import (
	"reflect"
	"testing"

	"castnet/pkg/common"
)

func TestUniqueEntities(t *testing.T) {
	accepted := map[string]bool{"PERSON": true}

	tests := []struct {
		name     string
		sentence common.Sentence
		want     map[string]bool
	}{
		{
			name:     "no mentions",
			sentence: common.Sentence{Text: "The rain fell."},
			want:     set(),
		},
		{
			name: "filters by label",
			sentence: common.Sentence{
				Mentions: []common.EntityMention{
					{Text: "Alice", Label: "PERSON"},
					{Text: "Paris", Label: "LOCATION"},
				},
			},
			want: set("Alice"),
		},
		{
			name: "deduplicates repeated mentions",
			sentence: common.Sentence{
				Mentions: []common.EntityMention{
					{Text: "Alice", Label: "PERSON"},
					{Text: "Alice", Label: "PERSON"},
					{Text: "Bob", Label: "PERSON"},
				},
			},
			want: set("Alice", "Bob"),
		},
		{
			name: "surface forms stay distinct",
			sentence: common.Sentence{
				Mentions: []common.EntityMention{
					{Text: "Bob", Label: "PERSON"},
					{Text: "bob", Label: "PERSON"},
					{Text: "Robert", Label: "PERSON"},
				},
			},
			want: set("Bob", "bob", "Robert"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UniqueEntities(tt.sentence, accepted)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("UniqueEntities() = %v, want %v", got, tt.want)
			}
		})
	}
}
