package foi

import "strings"

// Classifier decides whether a message is an FOI request.
type Classifier interface {
	Match(subject, body string) bool
}

// KeywordClassifier matches when the keyword appears as a case-insensitive
// substring of either the subject or the body. This is the entire policy:
// no ranking, no confidence score.
type KeywordClassifier struct {
	keyword string
}

// NewKeywordClassifier creates a classifier for the given keyword.
func NewKeywordClassifier(keyword string) KeywordClassifier {
	return KeywordClassifier{keyword: strings.ToLower(keyword)}
}

// Match reports whether subject or body contains the keyword.
func (c KeywordClassifier) Match(subject, body string) bool {
	return strings.Contains(strings.ToLower(subject), c.keyword) ||
		strings.Contains(strings.ToLower(body), c.keyword)
}
