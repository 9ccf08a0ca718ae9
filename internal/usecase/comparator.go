package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/labelproof/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	// First numeric literal (integer or decimal) in an ABV string
	numberRegex = regexp.MustCompile(`\d+(?:\.\d+)?`)

	// Quantity plus volume unit, optionally separated by whitespace or a hyphen
	volumeRegex = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)[\s-]*(ml|l|oz)`)
)

// US fluid ounce in millilitres
const ozToMilliliters = 29.5735

// CompareTextField compares a claimed free-text field against its extracted
// counterpart using normalized keys. A blank claim is NotProvided regardless
// of the extracted side; a missing extracted value is a Mismatch.
func CompareTextField(provided string, extracted *string) domain.ComparisonStatus {
	if strings.TrimSpace(provided) == "" {
		return domain.NotProvided
	}
	if extracted == nil {
		return domain.Mismatch
	}
	if normalizeText(provided) == normalizeText(*extracted) {
		return domain.Match
	}
	return domain.Mismatch
}

// CompareAlcoholContent compares claimed and extracted ABV strings by their
// first numeric literal. Either side failing to parse counts as a Mismatch,
// not NotProvided: a value the label should carry but doesn't is a flag, not
// a pass. Equality is exact, no tolerance.
func CompareAlcoholContent(provided string, extracted *string) domain.ComparisonStatus {
	if strings.TrimSpace(provided) == "" {
		return domain.NotProvided
	}

	p, okProvided := parseAlcoholPercent(provided)
	var e float64
	okExtracted := false
	if extracted != nil {
		e, okExtracted = parseAlcoholPercent(*extracted)
	}

	if !okProvided || !okExtracted {
		return domain.Mismatch
	}
	if p == e {
		return domain.Match
	}
	return domain.Mismatch
}

// CompareNetContents compares claimed and extracted volumes after converting
// both to millilitres, so "1L" reconciles with "1000ml". Parse failure on
// either side is a Mismatch; converted values must be exactly equal.
func CompareNetContents(provided string, extracted *string) domain.ComparisonStatus {
	if strings.TrimSpace(provided) == "" {
		return domain.NotProvided
	}

	p, okProvided := convertToMilliliters(provided)
	var e float64
	okExtracted := false
	if extracted != nil {
		e, okExtracted = convertToMilliliters(*extracted)
	}

	if !okProvided || !okExtracted {
		return domain.Mismatch
	}
	if p == e {
		return domain.Match
	}
	return domain.Mismatch
}

// CompareBrandName tests each whitespace-delimited word of the claimed brand
// for presence (normalized, substring) in the normalized full label text.
// Match requires every word to be found. The words that were located are
// returned space-joined even on a partial Mismatch, so the caller can report
// what the label actually shows.
func CompareBrandName(provided, fullText string) domain.BrandComparison {
	if strings.TrimSpace(provided) == "" {
		return domain.BrandComparison{Status: domain.NotProvided}
	}

	words := strings.Fields(provided)
	normalizedFull := normalizeText(fullText)

	var found []string
	for _, word := range words {
		if strings.Contains(normalizedFull, normalizeText(word)) {
			found = append(found, word)
		}
	}

	if len(found) == 0 {
		return domain.BrandComparison{Status: domain.Mismatch}
	}

	foundBrand := strings.Join(found, " ")
	status := domain.Mismatch
	if len(found) == len(words) {
		status = domain.Match
	}
	return domain.BrandComparison{Status: status, FoundBrand: &foundBrand}
}

// parseAlcoholPercent pulls the first numeric literal out of an ABV string.
func parseAlcoholPercent(s string) (float64, bool) {
	m := numberRegex.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// convertToMilliliters parses "<number><unit>" and converts to millilitres.
func convertToMilliliters(s string) (float64, bool) {
	m := volumeRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	qty, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	switch strings.ToLower(m[2]) {
	case "l":
		return qty * 1000, true
	case "oz":
		return qty * ozToMilliliters, true
	}
	return qty, true
}
