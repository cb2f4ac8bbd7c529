package chat

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	customerRepo "adeonabot/database/repository/customer"
	"adeonabot/models"
)

// fakeCustomerRepo is an in-memory CustomerRepository for flow tests.
// ctxHasDeadline records, per operation, whether the incoming context
// carried a deadline.
type fakeCustomerRepo struct {
	records        map[string]models.CustomerRecord
	ctxHasDeadline map[string]bool
	createErr      error
	deleteErr      error
	findErr        error
}

func newFakeRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		records:        make(map[string]models.CustomerRecord),
		ctxHasDeadline: make(map[string]bool),
	}
}

func (f *fakeCustomerRepo) noteDeadline(ctx context.Context, op string) {
	_, ok := ctx.Deadline()
	f.ctxHasDeadline[op] = ok
}

func (f *fakeCustomerRepo) Create(ctx context.Context, record models.CustomerRecord) (string, error) {
	f.noteDeadline(ctx, "create")
	if f.createErr != nil {
		return "", f.createErr
	}
	f.records[record.UserID] = record
	return record.UserID, nil
}

func (f *fakeCustomerRepo) FindByUserID(ctx context.Context, userID string) (*models.CustomerRecord, error) {
	f.noteDeadline(ctx, "find")
	if f.findErr != nil {
		return nil, f.findErr
	}
	record, ok := f.records[userID]
	if !ok {
		return nil, customerRepo.ErrRecordNotFound
	}
	return &record, nil
}

func (f *fakeCustomerRepo) DeleteByUserID(ctx context.Context, userID string) error {
	f.noteDeadline(ctx, "delete")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.records[userID]; !ok {
		return customerRepo.ErrRecordNotFound
	}
	delete(f.records, userID)
	return nil
}

func (f *fakeCustomerRepo) UpdateStatus(ctx context.Context, userID string, status string) error {
	record, ok := f.records[userID]
	if !ok {
		return customerRepo.ErrRecordNotFound
	}
	record.Status = status
	f.records[userID] = record
	return nil
}

func (f *fakeCustomerRepo) Stats(ctx context.Context) (*models.CustomerStats, error) {
	stats := &models.CustomerStats{TotalCustomers: len(f.records)}
	for _, r := range f.records {
		if r.Status == models.StatusActive {
			stats.ActiveCustomers++
		} else {
			stats.CancelledCustomers++
		}
	}
	return stats, nil
}

func newTestSession() *models.Session {
	return &models.Session{ID: "test", LastActivity: time.Now()}
}

func TestBookingHappyPath(t *testing.T) {
	repo := newFakeRepo()
	flow := NewBookingFlow(repo, DefaultCompanyInfo())
	sess := newTestSession()
	ctx := context.Background()

	reply := flow.Start(sess)
	if !strings.Contains(reply, "name") {
		t.Fatalf("start should ask for a name, got %q", reply)
	}
	if sess.BookingDraft == nil || sess.BookingDraft.Step != models.StepName {
		t.Fatal("draft not initialized at the name step")
	}

	steps := []struct {
		input    string
		nextStep models.BookingStep
	}{
		{"Kasun Perera", models.StepEmail},
		{"kasun@example.com", models.StepPhone},
		{"0771234567", models.StepAddress},
		{"42 Galle Road, Colombo", models.StepServiceDetails},
		{"We need a CRM system for our sales team", models.StepConfirmation},
	}
	for _, st := range steps {
		flow.Handle(ctx, sess, st.input)
		if sess.BookingDraft.Step != st.nextStep {
			t.Fatalf("after %q expected step %s, got %s", st.input, st.nextStep, sess.BookingDraft.Step)
		}
	}

	reply = flow.Handle(ctx, sess, "confirm")
	if sess.BookingDraft != nil {
		t.Fatal("draft must be cleared after a successful commit")
	}
	idShape := regexp.MustCompile(`\b[A-Z0-9]{8}\b`)
	id := idShape.FindString(reply)
	if id == "" {
		t.Fatalf("confirmation must include the reference id, got %q", reply)
	}

	record, ok := repo.records[id]
	if !ok {
		t.Fatalf("no record stored under %s", id)
	}
	if record.Status != models.StatusActive {
		t.Errorf("status = %q, want active", record.Status)
	}
	if record.Name != "Kasun Perera" || record.Email != "kasun@example.com" {
		t.Errorf("record fields not carried over: %+v", record)
	}
}

func TestBookingCommitCarriesDeadline(t *testing.T) {
	repo := newFakeRepo()
	flow := NewBookingFlow(repo, DefaultCompanyInfo())
	sess := newTestSession()
	ctx := context.Background()
	flow.Start(sess)

	for _, input := range []string{"Kasun Perera", "kasun@example.com", "0771234567", "42 Galle Road, Colombo", "We need a CRM system built"} {
		flow.Handle(ctx, sess, input)
	}
	flow.Handle(ctx, sess, "confirm")

	// The commit runs under the session lock, so the store call must
	// carry its own deadline even when the caller's context has none.
	if !repo.ctxHasDeadline["create"] {
		t.Fatal("record store create was called without a deadline")
	}
}

func TestBookingValidationReprompts(t *testing.T) {
	flow := NewBookingFlow(newFakeRepo(), DefaultCompanyInfo())
	sess := newTestSession()
	ctx := context.Background()
	flow.Start(sess)

	cases := []struct {
		step  models.BookingStep
		input string
	}{
		{models.StepName, "x"},
		{models.StepName, " "},
	}
	for _, tc := range cases {
		flow.Handle(ctx, sess, tc.input)
		if sess.BookingDraft.Step != tc.step {
			t.Fatalf("invalid input %q advanced the step to %s", tc.input, sess.BookingDraft.Step)
		}
	}

	flow.Handle(ctx, sess, "Kasun")
	if sess.BookingDraft.Step != models.StepEmail {
		t.Fatal("valid name did not advance")
	}

	for _, bad := range []string{"not-an-email", "missing@tld", "@nolocal.com"} {
		flow.Handle(ctx, sess, bad)
		if sess.BookingDraft.Step != models.StepEmail {
			t.Fatalf("invalid email %q advanced the step", bad)
		}
	}

	flow.Handle(ctx, sess, "kasun@example.com")
	for _, bad := range []string{"12345", "call me"} {
		flow.Handle(ctx, sess, bad)
		if sess.BookingDraft.Step != models.StepPhone {
			t.Fatalf("invalid phone %q advanced the step", bad)
		}
	}

	// Formatting characters don't count toward the digit minimum.
	flow.Handle(ctx, sess, "+94 (77) 123-4567")
	if sess.BookingDraft.Step != models.StepAddress {
		t.Fatal("formatted phone with 11 digits did not advance")
	}
}

func TestBookingEditRestarts(t *testing.T) {
	flow := NewBookingFlow(newFakeRepo(), DefaultCompanyInfo())
	sess := newTestSession()
	ctx := context.Background()
	flow.Start(sess)

	for _, input := range []string{"Kasun Perera", "kasun@example.com", "0771234567", "42 Galle Road, Colombo", "We need a CRM system built"} {
		flow.Handle(ctx, sess, input)
	}
	if sess.BookingDraft.Step != models.StepConfirmation {
		t.Fatal("walkthrough did not reach confirmation")
	}

	flow.Handle(ctx, sess, "edit")
	draft := sess.BookingDraft
	if draft.Step != models.StepName {
		t.Fatalf("edit must reset to the name step, got %s", draft.Step)
	}
	if draft.Name != "" || draft.Email != "" || draft.Phone != "" || draft.Address != "" || draft.ServiceDetails != "" {
		t.Fatalf("edit must clear all fields: %+v", draft)
	}
}

func TestBookingUnrecognizedConfirmationReprompts(t *testing.T) {
	flow := NewBookingFlow(newFakeRepo(), DefaultCompanyInfo())
	sess := newTestSession()
	ctx := context.Background()
	flow.Start(sess)

	for _, input := range []string{"Kasun Perera", "kasun@example.com", "0771234567", "42 Galle Road, Colombo", "We need a CRM system built"} {
		flow.Handle(ctx, sess, input)
	}

	reply := flow.Handle(ctx, sess, "maybe later")
	if sess.BookingDraft.Step != models.StepConfirmation {
		t.Fatal("unrecognized reply must stay at confirmation")
	}
	if !strings.Contains(reply, "confirm") {
		t.Fatalf("reprompt should mention confirm, got %q", reply)
	}
}

func TestBookingCommitFailureStaysAtConfirmation(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New("mongo down")
	flow := NewBookingFlow(repo, DefaultCompanyInfo())
	sess := newTestSession()
	ctx := context.Background()
	flow.Start(sess)

	for _, input := range []string{"Kasun Perera", "kasun@example.com", "0771234567", "42 Galle Road, Colombo", "We need a CRM system built"} {
		flow.Handle(ctx, sess, input)
	}

	reply := flow.Handle(ctx, sess, "confirm")
	if sess.BookingDraft == nil || sess.BookingDraft.Step != models.StepConfirmation {
		t.Fatal("failed commit must keep the draft at confirmation")
	}
	if strings.Contains(reply, "mongo") {
		t.Fatalf("raw error text leaked to the user: %q", reply)
	}
	if !strings.Contains(reply, DefaultCompanyInfo().Phone) {
		t.Fatalf("failure copy should offer the support phone, got %q", reply)
	}
}
