// File: services/chat/interface.go
package chat

import (
	"context"

	"adeonabot/models"
	"adeonabot/services/generation"
	"adeonabot/services/intent"
	"adeonabot/services/retrieval"
)

// Service is the conversational core: one message in, one reply out.
type Service interface {
	ProcessMessage(ctx context.Context, req models.ChatRequest) models.ChatResponse
	Sessions() *SessionStore
}

type chatService struct {
	sessions     *SessionStore
	router       *intent.Router
	retriever    *retrieval.Orchestrator
	generator    generation.Service
	booking      *BookingFlow
	cancellation *CancellationFlow
	info         CompanyInfo
}

// NewChatService assembles the dispatch service from its collaborators.
func NewChatService(
	sessions *SessionStore,
	router *intent.Router,
	retriever *retrieval.Orchestrator,
	generator generation.Service,
	booking *BookingFlow,
	cancellation *CancellationFlow,
	info CompanyInfo,
) Service {
	return &chatService{
		sessions:     sessions,
		router:       router,
		retriever:    retriever,
		generator:    generator,
		booking:      booking,
		cancellation: cancellation,
		info:         info,
	}
}

func (s *chatService) Sessions() *SessionStore {
	return s.sessions
}
