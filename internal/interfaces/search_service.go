package interfaces

import "context"

// SearchService answers a query from web search results
type SearchService interface {
	// SearchWeb queries the configured providers and synthesizes an answer.
	// The original user message gives the synthesis step its context.
	SearchWeb(ctx context.Context, query, userMessage string) (string, error)
}
