package usecase

import (
	"regexp"
	"strings"

	"github.com/labelproof/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	// First "<number>%" anywhere in the scan buffer
	abvRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)

	// First "<number><unit>" with unit ml/L/oz, case-insensitive
	netContentsRegex = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(ml|L|oz)`)

	// The mandated phrase, case-sensitive, tolerating arbitrary non-word
	// separators between the two words. Matched against the space-joined
	// token text, not the scan buffer.
	healthWarningRegex = regexp.MustCompile(`GOVERNMENT\W*WARNING`)

	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// alcoholTypes are the recognized product categories, scanned in priority
// order as case-insensitive substrings of the scan buffer.
var alcoholTypes = []string{
	"vodka", "whiskey", "whisky", "rum", "gin", "tequila",
	"brandy", "wine", "beer", "bourbon", "scotch", "cognac",
}

// beerSubtypes are style descriptors, scanned in priority order as
// case-insensitive whole words. A style hit is more specific than a
// category hit and wins the product class.
var beerSubtypes = []string{
	"lager", "ipa", "stout", "porter", "pilsner", "ale", "sour", "bock",
	"kolsch", "dubbel", "tripel", "quad", "goose", "brown", "red", "blonde",
	"pale", "amber", "session", "hazy", "imperial", "barleywine", "mild",
	"schwarzbier", "marzen", "dunkel", "helles", "altbier", "rauchbier",
	"witbier", "gose", "farmhouse", "wild", "fruit", "cream", "rice",
	"corn", "dry", "sweet", "extra", "strong", "light", "dark",
}

var beerSubtypeRegexes = compileSubtypePatterns()

func compileSubtypePatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(beerSubtypes))
	for i, subtype := range beerSubtypes {
		patterns[i] = regexp.MustCompile(`(?i)\b` + subtype + `\b`)
	}
	return patterns
}

// ExtractFields scans an ordered bag of recognized token texts and produces
// the structured extraction result. The scan buffer (FullText) is the token
// texts concatenated with all internal whitespace removed; every content
// pattern except the health warning matches against it. The first token is
// kept verbatim as a brand-name placeholder until the comparator refines it.
//
// An empty token slice is the caller's responsibility to reject; here it
// simply yields a result with no fields found.
func ExtractFields(allText []string) *domain.ExtractionResult {
	spacedText := strings.Join(allText, " ")
	fullText := whitespaceRegex.ReplaceAllString(spacedText, "")

	result := &domain.ExtractionResult{
		AllText:  allText,
		FullText: fullText,
	}

	if len(allText) > 0 {
		brand := allText[0]
		result.BrandName = &brand
	}

	if m := abvRegex.FindStringSubmatch(fullText); m != nil {
		abv := m[1] + "%"
		result.AlcoholContent = &abv
	}

	if m := netContentsRegex.FindString(fullText); m != "" {
		result.NetContents = &m
	}

	result.HealthWarning = healthWarningRegex.MatchString(spacedText)

	var alcoholType, alcoholSubtype *string
	lowerFull := strings.ToLower(fullText)
	for _, t := range alcoholTypes {
		if strings.Contains(lowerFull, t) {
			titled := titleCase(t)
			alcoholType = &titled
			break
		}
	}
	for i, pattern := range beerSubtypeRegexes {
		if pattern.MatchString(fullText) {
			titled := titleCase(beerSubtypes[i])
			alcoholSubtype = &titled
			break
		}
	}

	if alcoholSubtype != nil {
		result.ProductClass = alcoholSubtype
	} else {
		result.ProductClass = alcoholType
	}

	return result
}

// titleCase uppercases the first letter of a single lowercase word.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
