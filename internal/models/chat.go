package models

import "time"

// ChatRequest is the inbound chat payload
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	FileID    string `json:"file_id,omitempty"`
}

// ChatResponse is the outbound chat payload
type ChatResponse struct {
	Response       string  `json:"response"`
	AgentUsed      string  `json:"agent_used"`
	ProcessingTime float64 `json:"processing_time"` // Seconds, rounded to 2 decimals
	SessionID      string  `json:"session_id"`
}

// ChatEntry is one stored user/assistant exchange
type ChatEntry struct {
	ID             string    `json:"id" badgerhold:"key"`
	SessionID      string    `json:"session_id" badgerhold:"index"`
	UserMessage    string    `json:"user_message"`
	Assistant      string    `json:"assistant"`
	AgentUsed      string    `json:"agent_used"`
	ProcessingTime float64   `json:"processing_time"`
	CreatedAt      time.Time `json:"created_at"`
}

// UploadedFile records metadata for a stored upload; the bytes live on disk
type UploadedFile struct {
	ID          string    `json:"id" badgerhold:"key"`
	Filename    string    `json:"filename"`
	Path        string    `json:"path"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// RoutingDecision explains which agent a message was routed to and why
type RoutingDecision struct {
	Agent  string `json:"agent"`  // "router", "document", "web_search"
	Action string `json:"action"` // "general_chat", "process_document", "search_web", "explain_capabilities"
	Reason string `json:"reason"`
}
