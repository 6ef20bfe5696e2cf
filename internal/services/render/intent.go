package render

import (
	"strings"

	"github.com/ternarybob/lectio/internal/models"
)

// analysisKeywords mark a request as wanting analysis/summary rather than a
// plain extraction dump. Intent only moves the truncation threshold; it never
// changes how the document is parsed.
var analysisKeywords = []string{
	"analyze",
	"analyse",
	"summarize",
	"summarise",
	"summary",
	"overview",
	"explain",
	"what is in this",
	"explain this document",
	"key points",
	"main ideas",
}

// DetectIntent classifies the caller's request text as extraction or analysis
func DetectIntent(userMessage string) models.Intent {
	messageLower := strings.ToLower(userMessage)
	for _, keyword := range analysisKeywords {
		if strings.Contains(messageLower, keyword) {
			return models.IntentAnalysis
		}
	}
	return models.IntentExtraction
}
