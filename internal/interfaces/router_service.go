package interfaces

import (
	"context"

	"github.com/ternarybob/lectio/internal/models"
)

// RouterService decides which agent handles a message and carries the
// general-conversation path itself
type RouterService interface {
	// RouteMessage picks an agent from message content and file context
	RouteMessage(message string, hasFile bool) *models.RoutingDecision

	// GeneralChat answers a general message with recent session context
	GeneralChat(ctx context.Context, sessionID, message string) (string, error)

	// ExplainCapabilities describes the agents available in the system
	ExplainCapabilities() string
}
