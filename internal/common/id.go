package common

import (
	"github.com/google/uuid"
)

// NewFileID generates a unique uploaded-file ID with the "file_" prefix
func NewFileID() string {
	return "file_" + uuid.New().String()
}

// NewSessionID generates a unique chat session ID with the "session_" prefix
func NewSessionID() string {
	return "session_" + uuid.New().String()
}

// NewEntryID generates a unique chat history entry ID
func NewEntryID() string {
	return "entry_" + uuid.New().String()
}
