package sentiment

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{name: "one star", label: "1 star", want: "negative"},
		{name: "two stars", label: "2 stars", want: "negative"},
		{name: "three stars", label: "3 stars", want: "neutral"},
		{name: "four stars", label: "4 stars", want: "positive"},
		{name: "five stars", label: "5 stars", want: "positive"},
		{name: "star uppercase", label: "STAR 5", want: "positive"},
		{name: "label prefix low", label: "LABEL_0", want: "negative"},
		{name: "label prefix mid", label: "label_3", want: "neutral"},
		{name: "label prefix high", label: "LABEL_4", want: "positive"},
		{name: "plain word", label: "Positive", want: "positive"},
		{name: "plain negative", label: "NEGATIVE", want: "negative"},
		{name: "unrecognized", label: "Joy", want: "joy"},
		{name: "digitless star prefix", label: "starry", want: "starry"},
		{name: "digitless label prefix", label: "label_unknown", want: "label_unknown"},
		{name: "empty", label: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.label))
		})
	}
}

func TestNormalizeStarMonotonic(t *testing.T) {
	want := map[int]string{
		1: "negative",
		2: "negative",
		3: "neutral",
		4: "positive",
		5: "positive",
	}

	for stars, label := range want {
		assert.Equal(t, label, Normalize(fmt.Sprintf("%d stars", stars)))
		assert.Equal(t, label, Normalize(fmt.Sprintf("star rating %d", stars)))
	}
}
