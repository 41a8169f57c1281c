package textutil

import (
	"regexp"
	"strings"
)

// tokenSplitPattern matches non-alphanumeric character sequences for tokenization.
var tokenSplitPattern = regexp.MustCompile(`[^a-z0-9]+`)

var articleTokens = map[string]struct{}{
	"the": {},
	"a":   {},
	"an":  {},
}

// Tokenize splits text into lowercase alphanumeric tokens.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	raw := tokenSplitPattern.Split(lowered, -1)
	terms := make([]string, 0, len(raw))
	for _, token := range raw {
		if token == "" {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}

// SignificantWords returns the tokens of text with leading articles removed.
func SignificantWords(text string) []string {
	tokens := Tokenize(text)
	for len(tokens) > 0 {
		if _, ok := articleTokens[tokens[0]]; !ok {
			break
		}
		tokens = tokens[1:]
	}
	return tokens
}

// IsArticle reports whether token is one of the leading articles stripped
// during title normalization.
func IsArticle(token string) bool {
	_, ok := articleTokens[strings.ToLower(token)]
	return ok
}
