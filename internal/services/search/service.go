// -----------------------------------------------------------------------
// Web search agent - SearXNG primary with Brave Search API fallback,
// synthesized into an answer by the router model
// -----------------------------------------------------------------------

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/lectio/internal/common"
	"github.com/ternarybob/lectio/internal/interfaces"
	"github.com/ternarybob/lectio/internal/services/generation"
	"golang.org/x/time/rate"
)

const (
	maxResults     = 5
	maxSources     = 3
	braveSearchURL = "https://api.search.brave.com/res/v1/web/search"
)

// Result is one normalized web search hit
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Service implements the SearchService interface
type Service struct {
	searxngURL   string
	braveURL     string
	braveAPIKey  string
	braveLimiter *rate.Limiter
	client       *http.Client
	provider     generation.Provider
	routerModel  string
	logger       arbor.ILogger
}

// NewService creates the web search agent
func NewService(cfg *common.SearchConfig, provider generation.Provider, routerModel string, logger arbor.ILogger) interfaces.SearchService {
	limit := cfg.BraveRateLimit
	if limit <= 0 {
		limit = 1.0
	}
	return &Service{
		searxngURL:   strings.TrimRight(cfg.SearXNGURL, "/"),
		braveURL:     braveSearchURL,
		braveAPIKey:  cfg.BraveAPIKey,
		braveLimiter: rate.NewLimiter(rate.Limit(limit), 1),
		client:       &http.Client{Timeout: cfg.SearchTimeoutDuration()},
		provider:     provider,
		routerModel:  routerModel,
		logger:       logger,
	}
}

// SearchWeb queries SearXNG first, falls back to Brave, and synthesizes the
// results into an answer with cited sources
func (s *Service) SearchWeb(ctx context.Context, query, userMessage string) (string, error) {
	results, err := s.searchSearXNG(ctx, query)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("SearXNG search failed, trying Brave")
		results, err = s.searchBrave(ctx, query)
		if err != nil {
			return "", err
		}
	}
	if len(results) == 0 {
		return fmt.Sprintf("I searched the web for \"%s\" but found no results. Try rephrasing your query.", query), nil
	}

	answer, err := s.synthesize(ctx, userMessage, results)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Search synthesis failed, returning raw results")
		answer = formatRawResults(results)
	}

	var out strings.Builder
	out.WriteString(answer)
	out.WriteString("\n\n**Sources:**\n")
	for i, r := range results {
		if i >= maxSources {
			break
		}
		out.WriteString(fmt.Sprintf("%d. [%s](%s)\n", i+1, r.Title, r.URL))
	}
	return out.String(), nil
}

type searxngResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

func (s *Service) searchSearXNG(ctx context.Context, query string) ([]Result, error) {
	if s.searxngURL == "" {
		return nil, fmt.Errorf("searxng not configured")
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&format=json", s.searxngURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build searxng request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searxng request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("searxng returned status %d", resp.StatusCode)
	}

	var parsed searxngResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode searxng response: %w", err)
	}

	var results []Result
	for _, r := range parsed.Results {
		if len(results) >= maxResults {
			break
		}
		results = append(results, Result{Title: r.Title, URL: r.URL, Snippet: r.Content})
	}
	return results, nil
}

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

func (s *Service) searchBrave(ctx context.Context, query string) ([]Result, error) {
	if s.braveAPIKey == "" {
		return nil, fmt.Errorf("no search backend available: searxng unreachable and brave api key not configured")
	}

	// Brave free tier is strictly rate limited; block here rather than burn
	// requests into 429s
	if err := s.braveLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("brave rate limit wait cancelled: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", fmt.Sprintf("%d", maxResults))
	params.Set("offset", "0")
	params.Set("mkt", "en-US")
	params.Set("safesearch", "moderate")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.braveURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build brave request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", s.braveAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brave request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("brave search rejected the api key")
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("brave search rate limit exceeded")
	default:
		return nil, fmt.Errorf("brave search returned status %d", resp.StatusCode)
	}

	var parsed braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode brave response: %w", err)
	}

	var results []Result
	for _, r := range parsed.Web.Results {
		if len(results) >= maxResults {
			break
		}
		results = append(results, Result{Title: r.Title, URL: r.URL, Snippet: r.Description})
	}
	return results, nil
}

// synthesize asks the router model to answer the user's question from the
// collected snippets
func (s *Service) synthesize(ctx context.Context, userMessage string, results []Result) (string, error) {
	var prompt strings.Builder
	prompt.WriteString("Answer the user's question using the web search results below. Be concise and factual. If the results do not answer the question, say so.\n\n")
	prompt.WriteString("Question: " + userMessage + "\n\nSearch results:\n")
	for i, r := range results {
		prompt.WriteString(fmt.Sprintf("%d. %s\n%s\n\n", i+1, r.Title, r.Snippet))
	}

	answer, err := s.provider.GenerateText(ctx, s.routerModel, prompt.String())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func formatRawResults(results []Result) string {
	var out strings.Builder
	out.WriteString("Here is what I found:\n\n")
	for i, r := range results {
		out.WriteString(fmt.Sprintf("**%d. %s**\n%s\n\n", i+1, r.Title, r.Snippet))
	}
	return strings.TrimSpace(out.String())
}
