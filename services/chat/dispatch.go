// File: services/chat/dispatch.go
package chat

import (
	"context"
	"strings"
	"time"

	"adeonabot/models"
	"adeonabot/services/generation"
	"adeonabot/utils"

	"go.uber.org/zap"
)

const assistantPersona = "You are AdeonaBot, the helpful and professional AI assistant for Adeona Technologies, an IT solutions company in Colombo, Sri Lanka."

// Every external call inside a turn carries its own deadline. The turn
// runs under the session lock, so an unbounded Gemini or Mongo call
// would wedge the session for every later message.
const (
	generationTimeout  = 30 * time.Second
	recordStoreTimeout = 10 * time.Second
)

// ProcessMessage runs one conversational turn. The whole turn executes
// under the session's lock, so concurrent requests on the same session
// are serialized and mid-flow state never interleaves.
func (s *chatService) ProcessMessage(ctx context.Context, req models.ChatRequest) models.ChatResponse {
	var reply string
	var sources []string

	sessionID := s.sessions.With(req.SessionID, func(sess *models.Session) {
		sess.AddMessage("user", req.Message)
		reply, sources = s.dispatch(ctx, sess, req.Message)
		sess.AddMessage("assistant", reply)
	})

	if sources == nil {
		sources = []string{}
	}
	return models.ChatResponse{
		Response:  reply,
		SessionID: sessionID,
		Sources:   sources,
	}
}

// dispatch picks the handler for a message. Flow state outranks intent
// classification: a pending cancellation consumes the message first,
// then an in-progress booking, and only then does the router run.
func (s *chatService) dispatch(ctx context.Context, sess *models.Session, message string) (string, []string) {
	if sess.CancellationPending {
		return s.cancellation.HandlePendingID(ctx, sess, message), nil
	}
	if sess.BookingDraft != nil {
		return s.booking.Handle(ctx, sess, message), nil
	}

	cls := s.router.Classify(message)
	utils.GetLogger().Debug("intent classified",
		zap.String("category", string(cls.Category)),
		zap.Float64("confidence", cls.Confidence),
		zap.String("rule", cls.Rule))

	switch cls.Category {
	case models.IntentCancellation:
		return s.cancellation.HandleRequest(ctx, sess, message), nil
	case models.IntentSocialMedia:
		return s.info.socialMediaResponse(strings.ToLower(message)), nil
	case models.IntentContactRequest:
		return s.info.contactResponse(strings.ToLower(message)), nil
	case models.IntentServiceBooking:
		return s.booking.Start(sess), nil
	case models.IntentGreeting:
		return s.info.greetingResponse(), nil
	case models.IntentPrivacyInquiry:
		return s.answerWithRetrieval(ctx, message, 10, s.info.privacyResponse())
	case models.IntentServiceInquiry:
		return s.answerWithRetrieval(ctx, message, 15, s.info.serviceListResponse())
	default:
		if answer, ok := s.info.basicInfoResponse(message); ok {
			return answer, nil
		}
		return s.answerWithRetrieval(ctx, message, 12, s.info.fallbackResponse(message))
	}
}

// answerWithRetrieval grounds a generated answer in retrieved
// knowledge. Any collaborator failure degrades to the canned fallback
// so the user never sees raw error text.
func (s *chatService) answerWithRetrieval(ctx context.Context, question string, topK int, fallback string) (string, []string) {
	log := utils.GetLogger()

	chunks, usedFallback, err := s.retriever.SearchWithFallback(ctx, question, topK)
	if err != nil {
		log.Warn("retrieval failed, using canned answer", zap.Error(err))
		return fallback, nil
	}
	if len(chunks) == 0 {
		return fallback, nil
	}

	facts := make([]string, 0, len(chunks))
	sources := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		facts = append(facts, ch.Text)
		sources = append(sources, ch.SourceKind)
	}

	gctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	answer, err := s.generator.Generate(gctx, generation.PromptContext{
		Persona:       assistantPersona,
		VerifiedFacts: facts,
		Question:      question,
		Constraints: []string{
			"Answer using only the verified information above.",
			"Be concise, friendly, and professional.",
			"If the information does not cover the question, say so and offer the contact details.",
		},
		ContactInfo: s.info.ContactBlock(),
	})
	if err != nil {
		log.Error("generation failed, using canned answer",
			zap.Bool("usedWebFallback", usedFallback), zap.Error(err))
		return fallback, nil
	}
	return answer, sources
}
