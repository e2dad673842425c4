package domain

import (
	"errors"
)

var (
	MessageSuccessChat = "question answered successfully"
	MessageFailedChat  = "failed to answer question"

	ErrUnsafeQuery       = errors.New("generated query rejected by safety checks")
	ErrAgentNoAnswer     = errors.New("agent could not produce an answer")
	ErrGeminiUnavailable = errors.New("gemini request failed")
	ErrEmptyChatQuestion = errors.New("question must not be empty")
)

type (
	ChatRequest struct {
		Question string `json:"question" validate:"required"`
	}

	ChatResponse struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
		Query    string `json:"query,omitempty"`
	}
)
