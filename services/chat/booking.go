// File: services/chat/booking.go
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"adeonabot/models"
	"adeonabot/utils"

	customerRepo "adeonabot/database/repository/customer"

	"go.uber.org/zap"
)

// BookingFlow walks a session through service-booking data collection
// and commits the finished record to the customer store.
type BookingFlow struct {
	Repo customerRepo.CustomerRepository
	Info CompanyInfo
}

func NewBookingFlow(repo customerRepo.CustomerRepository, info CompanyInfo) *BookingFlow {
	return &BookingFlow{Repo: repo, Info: info}
}

// Start attaches a fresh draft to the session and asks for the first field.
func (b *BookingFlow) Start(sess *models.Session) string {
	sess.BookingDraft = &models.BookingDraft{Step: models.StepName}
	return "Great! I'd be happy to help you book a service with " + b.Info.Name + ".\n\nLet's start with your details. What's your full name?"
}

// Handle consumes one message while a booking draft is in progress.
// Validation failures re-prompt without advancing the step.
func (b *BookingFlow) Handle(ctx context.Context, sess *models.Session, message string) string {
	draft := sess.BookingDraft
	input := strings.TrimSpace(message)

	switch draft.Step {
	case models.StepName:
		if len(input) < 2 {
			return "Please provide a valid name (at least 2 characters)."
		}
		draft.Name = input
		draft.Step = models.StepEmail
		return fmt.Sprintf("Thanks, %s! Now, what's your email address?", draft.Name)

	case models.StepEmail:
		if !validEmail(input) {
			return "Please provide a valid email address (e.g. name@example.com)."
		}
		draft.Email = input
		draft.Step = models.StepPhone
		return "Got it. What's your phone number?"

	case models.StepPhone:
		if digitCount(input) < 10 {
			return "Please provide a valid phone number (at least 10 digits)."
		}
		draft.Phone = input
		draft.Step = models.StepAddress
		return "Perfect. What's your address?"

	case models.StepAddress:
		if len(input) < 5 {
			return "Please provide a complete address (at least 5 characters)."
		}
		draft.Address = input
		draft.Step = models.StepServiceDetails
		return "Almost done! Please describe the service you need (at least 10 characters)."

	case models.StepServiceDetails:
		if len(input) < 10 {
			return "Please provide more detail about the service you need (at least 10 characters)."
		}
		draft.ServiceDetails = input
		draft.Step = models.StepConfirmation
		return b.confirmationSummary(draft)

	case models.StepConfirmation:
		return b.handleConfirmation(ctx, sess, input)
	}

	// Completed or unknown step means the draft is stale.
	sess.BookingDraft = nil
	return "Your booking flow has ended. Say \"book a service\" to start a new one."
}

func (b *BookingFlow) confirmationSummary(draft *models.BookingDraft) string {
	return fmt.Sprintf(`Please confirm your booking details:

Name: %s
Email: %s
Phone: %s
Address: %s
Service: %s

Reply "confirm" to complete your booking, or "edit" to start over.`,
		draft.Name, draft.Email, draft.Phone, draft.Address, draft.ServiceDetails)
}

func (b *BookingFlow) handleConfirmation(ctx context.Context, sess *models.Session, input string) string {
	switch strings.ToLower(input) {
	case "confirm", "yes", "confirmed":
		return b.commit(ctx, sess)
	case "edit", "no", "change":
		sess.BookingDraft.Reset()
		return "No problem, let's start over. What's your full name?"
	default:
		return `Please reply "confirm" to complete your booking, or "edit" to change your details.`
	}
}

func (b *BookingFlow) commit(ctx context.Context, sess *models.Session) string {
	draft := sess.BookingDraft
	record := models.CustomerRecord{
		UserID:         GenerateUserID(),
		Name:           draft.Name,
		Email:          draft.Email,
		Phone:          draft.Phone,
		Address:        draft.Address,
		ServiceDetails: draft.ServiceDetails,
		Status:         models.StatusActive,
		CreatedAt:      time.Now(),
	}

	cctx, cancel := context.WithTimeout(ctx, recordStoreTimeout)
	defer cancel()

	if _, err := b.Repo.Create(cctx, record); err != nil {
		utils.GetLogger().Error("booking commit failed", zap.Error(err))
		return "I'm sorry, something went wrong while saving your booking. Please try again, or contact us at " + b.Info.Phone + "."
	}

	sess.BookingDraft = nil
	return fmt.Sprintf(`Your booking is confirmed!

Your reference ID is: %s

Please keep this ID safe. You'll need it if you want to cancel or ask about your booking. Our team will contact you at %s shortly.

Is there anything else I can help you with?`,
		record.UserID, record.Email)
}

func validEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return strings.Contains(s[at+1:], ".")
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
