package sentiment

import (
	"strconv"
	"strings"
)

const (
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
	LabelPositive = "positive"
)

// Normalize maps a raw classifier label to a canonical three-way sentiment.
// Multilingual models return either sentiment words or star ratings;
// nlptown/bert-base-multilingual-uncased-sentiment for example returns
// "1 star" through "5 stars", and some checkpoints return opaque "LABEL_n"
// classes. Star counts map 1-2 to negative, 3 to neutral and 4-5 to positive.
// Anything unrecognized passes through lower-cased, including star/label
// prefixed strings that carry no digits.
func Normalize(label string) string {
	cleaned := strings.ToLower(label)
	if !strings.HasPrefix(cleaned, "star") && !strings.HasPrefix(cleaned, "label_") {
		return cleaned
	}

	var digits strings.Builder
	for _, r := range cleaned {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return cleaned
	}

	stars, err := strconv.Atoi(digits.String())
	if err != nil {
		return cleaned
	}

	switch {
	case stars <= 2:
		return LabelNegative
	case stars == 3:
		return LabelNeutral
	default:
		return LabelPositive
	}
}
