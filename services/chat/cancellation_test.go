package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"adeonabot/models"
)

func newCancellationFixture(t *testing.T) (*CancellationFlow, *fakeCustomerRepo) {
	t.Helper()
	repo := newFakeRepo()
	return NewCancellationFlow(repo, 24*time.Hour, DefaultCompanyInfo()), repo
}

func activeRecord(userID string, age time.Duration) models.CustomerRecord {
	return models.CustomerRecord{
		UserID:    userID,
		Name:      "Kasun Perera",
		Email:     "kasun@example.com",
		Status:    models.StatusActive,
		CreatedAt: time.Now().Add(-age),
	}
}

func TestCancellationWithInlineID(t *testing.T) {
	flow, repo := newCancellationFixture(t)
	repo.records["AB12CD34"] = activeRecord("AB12CD34", time.Hour)
	sess := newTestSession()

	reply := flow.HandleRequest(context.Background(), sess, "please cancel AB12CD34")
	if sess.CancellationPending {
		t.Fatal("inline id must not set the pending flag")
	}
	if !strings.Contains(reply, "cancelled successfully") {
		t.Fatalf("expected success copy, got %q", reply)
	}
	if _, ok := repo.records["AB12CD34"]; ok {
		t.Fatal("record should have been deleted")
	}
}

func TestCancellationPromptsForMissingID(t *testing.T) {
	flow, _ := newCancellationFixture(t)
	sess := newTestSession()

	reply := flow.HandleRequest(context.Background(), sess, "I want to cancel my booking")
	if !sess.CancellationPending {
		t.Fatal("pending flag must be set when no id is present")
	}
	if !strings.Contains(reply, "reference ID") {
		t.Fatalf("expected an id prompt, got %q", reply)
	}
}

func TestPendingIDWholeMessageWins(t *testing.T) {
	flow, repo := newCancellationFixture(t)
	repo.records["AB12CD34"] = activeRecord("AB12CD34", time.Hour)
	sess := newTestSession()
	sess.CancellationPending = true

	reply := flow.HandlePendingID(context.Background(), sess, "  ab12cd34  ")
	if sess.CancellationPending {
		t.Fatal("pending flag must clear after a parseable id")
	}
	if !strings.Contains(reply, "cancelled successfully") {
		t.Fatalf("expected success copy, got %q", reply)
	}
}

func TestPendingIDInvalidFormatKeepsFlag(t *testing.T) {
	flow, _ := newCancellationFixture(t)
	sess := newTestSession()
	sess.CancellationPending = true

	reply := flow.HandlePendingID(context.Background(), sess, "I don't remember it")
	if !sess.CancellationPending {
		t.Fatal("unparseable input must keep the pending flag")
	}
	if !strings.Contains(reply, "8 characters") {
		t.Fatalf("expected format guidance, got %q", reply)
	}
}

func TestCancellationNotFound(t *testing.T) {
	flow, _ := newCancellationFixture(t)
	sess := newTestSession()
	sess.CancellationPending = true

	reply := flow.HandlePendingID(context.Background(), sess, "ZZ99XX11")
	if sess.CancellationPending {
		t.Fatal("flag must clear even when the lookup fails")
	}
	if !strings.Contains(reply, "couldn't find") {
		t.Fatalf("expected not-found copy, got %q", reply)
	}
}

func TestCancellationCallsCarryDeadline(t *testing.T) {
	flow, repo := newCancellationFixture(t)
	repo.records["AB12CD34"] = activeRecord("AB12CD34", time.Hour)
	sess := newTestSession()

	flow.HandleRequest(context.Background(), sess, "cancel AB12CD34")

	if !repo.ctxHasDeadline["find"] {
		t.Fatal("record lookup was called without a deadline")
	}
	if !repo.ctxHasDeadline["delete"] {
		t.Fatal("record delete was called without a deadline")
	}
}

func TestCancellationWindowExpired(t *testing.T) {
	flow, repo := newCancellationFixture(t)
	repo.records["AB12CD34"] = activeRecord("AB12CD34", 25*time.Hour)
	sess := newTestSession()

	reply := flow.HandleRequest(context.Background(), sess, "cancel AB12CD34")
	if !strings.Contains(reply, "no longer be cancelled") {
		t.Fatalf("expected window-expired copy, got %q", reply)
	}
	if !strings.Contains(reply, DefaultCompanyInfo().Phone) {
		t.Fatalf("expired copy must offer the support phone, got %q", reply)
	}
	if _, ok := repo.records["AB12CD34"]; !ok {
		t.Fatal("expired record must not be deleted")
	}
}

func TestCancellationAlreadyInactive(t *testing.T) {
	flow, repo := newCancellationFixture(t)
	record := activeRecord("AB12CD34", time.Hour)
	record.Status = models.StatusCancelled
	repo.records["AB12CD34"] = record
	sess := newTestSession()

	reply := flow.HandleRequest(context.Background(), sess, "cancel AB12CD34")
	if !strings.Contains(reply, "already been cancelled") {
		t.Fatalf("expected already-cancelled copy, got %q", reply)
	}
}

func TestCancellationDeleteFailure(t *testing.T) {
	flow, repo := newCancellationFixture(t)
	repo.records["AB12CD34"] = activeRecord("AB12CD34", time.Hour)
	repo.deleteErr = errors.New("mongo down")
	sess := newTestSession()
	sess.CancellationPending = true

	reply := flow.HandlePendingID(context.Background(), sess, "AB12CD34")
	if sess.CancellationPending {
		t.Fatal("flag must clear even when the delete fails")
	}
	if strings.Contains(reply, "mongo") {
		t.Fatalf("raw error text leaked to the user: %q", reply)
	}
	if !strings.Contains(reply, "something went wrong") {
		t.Fatalf("expected transient-error copy, got %q", reply)
	}
}

func TestWindowExpiredErrorMessage(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	err := &WindowExpiredError{UserID: "AB12CD34", Deadline: deadline}
	if !strings.Contains(err.Error(), "AB12CD34") {
		t.Fatalf("error should name the record: %s", err.Error())
	}
}
