package pii

import (
	"strings"
	"unicode/utf8"
)

// Validate computes readability diagnostics for a masked output. It never
// mutates or blocks the redaction result; a failing validation is purely
// informational.
//
// PreservedRatio is masked length over original length in runes. Readability
// is graded from placeholder density: the share of whitespace-delimited
// tokens in the masked text that contain a placeholder.
func Validate(original, masked string) ValidationResult {
	origLen := utf8.RuneCountInString(original)
	maskedLen := utf8.RuneCountInString(masked)

	ratio := 1.0
	if origLen > 0 {
		ratio = float64(maskedLen) / float64(origLen)
	}

	density := placeholderDensity(masked)
	readability := ReadabilityHigh
	switch {
	case density > 0.5:
		readability = ReadabilityLow
	case density > 0.3:
		readability = ReadabilityMedium
	}

	return ValidationResult{
		IsValid:        ratio > 0.5 && ratio < 1.5,
		PreservedRatio: ratio,
		Readability:    readability,
	}
}

func placeholderDensity(masked string) float64 {
	tokens := strings.Fields(masked)
	if len(tokens) == 0 {
		return 0
	}
	count := 0
	for _, c := range Categories() {
		count += strings.Count(masked, c.Placeholder())
	}
	return float64(count) / float64(len(tokens))
}
