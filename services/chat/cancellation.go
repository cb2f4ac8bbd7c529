// File: services/chat/cancellation.go
package chat

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"adeonabot/models"
	"adeonabot/utils"

	customerRepo "adeonabot/database/repository/customer"

	"go.uber.org/zap"
)

var candidateIDPattern = regexp.MustCompile(`^[A-Za-z0-9]{8}$`)

// CancellationFlow resolves a customer's request to cancel an active
// service booking, enforcing the cancellation window.
type CancellationFlow struct {
	Repo   customerRepo.CustomerRepository
	Window time.Duration
	Info   CompanyInfo
}

func NewCancellationFlow(repo customerRepo.CustomerRepository, window time.Duration, info CompanyInfo) *CancellationFlow {
	return &CancellationFlow{Repo: repo, Window: window, Info: info}
}

// HandleRequest processes a freshly detected cancellation intent. If
// the message already carries a reference ID the cancellation proceeds
// immediately, otherwise the session is put into the awaiting-ID state.
func (c *CancellationFlow) HandleRequest(ctx context.Context, sess *models.Session, message string) string {
	if id, ok := ExtractUserID(message); ok {
		return c.cancel(ctx, id)
	}
	sess.CancellationPending = true
	return `I can help you cancel your booking. Please provide your 8-character reference ID (e.g. "AB12CD34"). You received it when your booking was confirmed.`
}

// HandlePendingID consumes the next message after the assistant asked
// for a reference ID. The whole trimmed message is tried first so a
// bare ID always parses, then embedded extraction.
func (c *CancellationFlow) HandlePendingID(ctx context.Context, sess *models.Session, message string) string {
	trimmed := strings.TrimSpace(message)

	var id string
	if candidateIDPattern.MatchString(trimmed) {
		id = strings.ToUpper(trimmed)
	} else if extracted, ok := ExtractUserID(trimmed); ok {
		id = extracted
	} else {
		return `That doesn't look like a valid reference ID. It should be 8 characters of letters and numbers (e.g. "AB12CD34"). Please try again.`
	}

	sess.CancellationPending = false
	return c.cancel(ctx, id)
}

func (c *CancellationFlow) cancel(ctx context.Context, userID string) string {
	record, err := c.check(ctx, userID)
	if err != nil {
		return c.rejectionMessage(userID, err)
	}

	dctx, cancel := context.WithTimeout(ctx, recordStoreTimeout)
	defer cancel()

	if err := c.Repo.DeleteByUserID(dctx, userID); err != nil {
		utils.GetLogger().Error("cancellation delete failed",
			zap.String("userId", userID), zap.Error(err))
		return "I'm sorry, something went wrong while cancelling your booking. Please try again, or call us at " + c.Info.Phone + "."
	}

	utils.GetLogger().Info("booking cancelled",
		zap.String("userId", userID), zap.String("service", record.ServiceDetails))
	return fmt.Sprintf(`Your booking %s has been cancelled successfully.

If you change your mind, you're always welcome to book again. Is there anything else I can help you with?`, userID)
}

// check verifies the record exists, is active, and is still inside the
// cancellation window.
func (c *CancellationFlow) check(ctx context.Context, userID string) (*models.CustomerRecord, error) {
	lctx, cancel := context.WithTimeout(ctx, recordStoreTimeout)
	defer cancel()

	record, err := c.Repo.FindByUserID(lctx, userID)
	if err != nil {
		return nil, err
	}
	if record.Status != models.StatusActive {
		return nil, &AlreadyCancelledError{UserID: userID}
	}
	if !record.CanCancel(c.Window) {
		return nil, &WindowExpiredError{
			UserID:   userID,
			Deadline: record.CancellationDeadline(c.Window),
		}
	}
	return record, nil
}

func (c *CancellationFlow) rejectionMessage(userID string, err error) string {
	var expired *WindowExpiredError
	var inactive *AlreadyCancelledError

	switch {
	case errors.Is(err, customerRepo.ErrRecordNotFound):
		return fmt.Sprintf(`I couldn't find a booking with reference ID %s. Please double-check your ID and try again, or contact us at %s for assistance.`, userID, c.Info.Phone)
	case errors.As(err, &inactive):
		return fmt.Sprintf("The booking %s has already been cancelled. Is there anything else I can help you with?", userID)
	case errors.As(err, &expired):
		hours := int(c.Window.Hours())
		return fmt.Sprintf(`I'm sorry, but booking %s can no longer be cancelled here. Cancellations are only possible within %d hours of booking (the window closed %s).

Please call our support team at %s and they will assist you directly.`,
			userID, hours, expired.Deadline.Format("Jan 2, 2006 at 3:04 PM"), c.Info.Phone)
	default:
		utils.GetLogger().Error("cancellation lookup failed",
			zap.String("userId", userID), zap.Error(err))
		return "I'm sorry, something went wrong while looking up your booking. Please try again, or call us at " + c.Info.Phone + "."
	}
}
