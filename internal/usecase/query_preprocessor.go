package usecase

import (
	"log"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/grocersmart/backend/internal/domain"
)

const maxQueryLength = 100

// QueryPreprocessor cleans free-text search queries before they reach the provider
type QueryPreprocessor struct {
	enableDebugLogging bool
}

// Compiled regex patterns for query preprocessing
var (
	// Characters the provider's proxy rejects or that carry no search meaning
	specialCharsRegex = regexp.MustCompile(`[#%+@!^*()=\[\]{}<>|\\~;?"` + "`" + `]`)

	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// NewQueryPreprocessor creates a new query preprocessor
func NewQueryPreprocessor(enableDebugLogging bool) *QueryPreprocessor {
	return &QueryPreprocessor{
		enableDebugLogging: enableDebugLogging,
	}
}

// PreprocessQuery cleans a user query for the provider search API.
// Replaces "&", strips special characters, collapses whitespace and caps the length.
func (p *QueryPreprocessor) PreprocessQuery(query string) string {
	if query == "" {
		return ""
	}

	original := query

	cleaned := strings.ReplaceAll(query, "&", " and ")
	cleaned = specialCharsRegex.ReplaceAllString(cleaned, " ")
	cleaned = cleanOrphanedPunctuation(cleaned)
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) > maxQueryLength {
		cleaned = truncateUTF8(cleaned, maxQueryLength)
		// Try to cut at word boundary
		if lastSpace := strings.LastIndex(cleaned, " "); lastSpace > maxQueryLength/2 {
			cleaned = cleaned[:lastSpace]
		}
	}

	if p.enableDebugLogging {
		log.Printf("[PREPROCESS] Input: %q → Output: %q", original, cleaned)
	}

	return cleaned
}

// Validate preprocesses query and rejects it when nothing searchable remains
func (p *QueryPreprocessor) Validate(query string) (string, error) {
	cleaned := p.PreprocessQuery(query)
	if cleaned == "" {
		return "", domain.ErrInvalidQuery
	}
	return cleaned, nil
}

// CacheKey builds the cache key for a cleaned query.
// Format: "search:{normalized_query}"
func (p *QueryPreprocessor) CacheKey(query string) string {
	return "search:" + normalizeForCacheKey(query)
}

// normalizeForCacheKey lowercases s and collapses whitespace. Every other
// character is kept so distinct provider queries never share a key.
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = multiSpacePattern.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// cleanOrphanedPunctuation removes punctuation that's now alone (e.g., lone commas)
func cleanOrphanedPunctuation(s string) string {
	// Remove lone punctuation surrounded by spaces
	result := loneUnitPunctuation.ReplaceAllString(s, " ")
	result = trailingPunctuation.ReplaceAllString(result, "")
	result = leadingPunctuation.ReplaceAllString(result, "")
	return result
}

var (
	loneUnitPunctuation = regexp.MustCompile(`\s+[,\-:]+\s+`)
	trailingPunctuation = regexp.MustCompile(`[,\-:]+\s*$`)
	leadingPunctuation  = regexp.MustCompile(`^\s*[,\-:]+`)
)
