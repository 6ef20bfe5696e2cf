// -----------------------------------------------------------------------
// Agent router - keyword-based routing between document processing, web
// search, and general conversation
// -----------------------------------------------------------------------

package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/lectio/internal/interfaces"
	"github.com/ternarybob/lectio/internal/models"
	"github.com/ternarybob/lectio/internal/services/generation"
)

// documentKeywords route a message to the document processing agent
var documentKeywords = []string{
	"document", "pdf", "image", "parse", "extract", "analyze", "process",
	"ocr", "text", "table", "chart", "graph", "scan", "read", "understand",
	"content", "data", "information", "structure", "layout", "form",
	"invoice", "receipt", "contract", "report", "paper", "file",
	"what does this say", "what is in this", "explain this document",
	"summarize", "key points", "main ideas",
}

// webSearchKeywords route a message to the web search agent
var webSearchKeywords = []string{
	"search", "find", "look up", "google", "web search", "internet search",
	"current", "latest", "recent", "news", "today", "now",
	"what is", "who is", "where is", "when is", "how to", "why is",
	"weather", "stock", "price", "news about", "information about",
	"tell me about", "find information", "look for", "search for",
}

// capabilityKeywords trigger the capabilities explanation
var capabilityKeywords = []string{"what can you do", "capabilities", "agents", "tools", "help"}

// greetingKeywords trigger plain conversation
var greetingKeywords = []string{"hello", "hi", "hey", "greetings", "good morning", "good afternoon", "good evening"}

const historyTurns = 3

// Service implements the RouterService interface. It owns the general
// conversation path; document and search agents are separate services.
type Service struct {
	provider    generation.Provider
	history     interfaces.HistoryStorage
	routerModel string
	logger      arbor.ILogger
}

// NewService creates the agent router
func NewService(provider generation.Provider, history interfaces.HistoryStorage, routerModel string, logger arbor.ILogger) interfaces.RouterService {
	return &Service{
		provider:    provider,
		history:     history,
		routerModel: routerModel,
		logger:      logger,
	}
}

// RouteMessage picks an agent from message content and file context. An
// attached file always wins; keyword families decide the rest.
func (s *Service) RouteMessage(message string, hasFile bool) *models.RoutingDecision {
	messageLower := strings.ToLower(message)

	if hasFile {
		return &models.RoutingDecision{
			Agent:  "document",
			Action: "process_document",
			Reason: "File uploaded - routing to document processor",
		}
	}

	if matched := matchKeywords(messageLower, webSearchKeywords); len(matched) > 0 {
		return &models.RoutingDecision{
			Agent:  "web_search",
			Action: "search_web",
			Reason: fmt.Sprintf("Web search keywords detected: %s", strings.Join(matched, ", ")),
		}
	}

	if matched := matchKeywords(messageLower, documentKeywords); len(matched) > 0 {
		return &models.RoutingDecision{
			Agent:  "document",
			Action: "process_document",
			Reason: fmt.Sprintf("Document processing keywords detected: %s", strings.Join(matched, ", ")),
		}
	}

	if len(matchKeywords(messageLower, capabilityKeywords)) > 0 {
		return &models.RoutingDecision{
			Agent:  "router",
			Action: "explain_capabilities",
			Reason: "User asking about system capabilities",
		}
	}

	if len(matchKeywords(messageLower, greetingKeywords)) > 0 {
		return &models.RoutingDecision{
			Agent:  "router",
			Action: "general_chat",
			Reason: "Greeting detected - general conversation",
		}
	}

	return &models.RoutingDecision{
		Agent:  "router",
		Action: "general_chat",
		Reason: "Default routing - general query",
	}
}

// GeneralChat answers a general message, folding in the last few exchanges
// of the session so follow-up questions keep their context
func (s *Service) GeneralChat(ctx context.Context, sessionID, message string) (string, error) {
	var prompt strings.Builder
	prompt.WriteString("You are a helpful AI assistant. You can help with general questions, chat, and can also process documents when uploaded.\n\n")

	if s.history != nil {
		entries, err := s.history.RecentBySession(sessionID, historyTurns)
		if err != nil {
			s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to load conversation history")
		} else if len(entries) > 0 {
			prompt.WriteString("Previous conversation:\n")
			for _, entry := range entries {
				prompt.WriteString(fmt.Sprintf("User: %s\nAssistant: %s\n\n", entry.UserMessage, entry.Assistant))
			}
		}
	}

	prompt.WriteString("Current message: " + message)

	response, err := s.provider.GenerateText(ctx, s.routerModel, prompt.String())
	if err != nil {
		return "", fmt.Errorf("general chat generation failed: %w", err)
	}
	return strings.TrimSpace(response), nil
}

// ExplainCapabilities describes the agents available in the system
func (s *Service) ExplainCapabilities() string {
	return `**Multi-Agent Document System**

I'm a router agent coordinating the following capabilities:

**Router Agent**
- General conversation and chat
- Request routing and coordination
- Session-aware responses

**Document Agent**
- Document parsing and analysis
- Text extraction from images and PDFs
- Table and structure detection

**Web Search Agent**
- Real-time web search
- Current information and news

**How to use:**
- General chat: just talk to me
- Document processing: upload a file and ask me to "analyze this document" or "extract text"
- Web search: ask me to "search for" or "find information about" something

**Supported file types:** JPG, PNG, PDF, DOCX`
}

// matchKeywords returns every keyword found in the lowercased message
func matchKeywords(messageLower string, keywords []string) []string {
	var matched []string
	for _, keyword := range keywords {
		if strings.Contains(messageLower, keyword) {
			matched = append(matched, keyword)
		}
	}
	return matched
}
