package intent

import (
	"testing"

	"adeonabot/models"
)

func TestClassifyCategories(t *testing.T) {
	r := NewRouter()

	cases := []struct {
		message string
		want    models.IntentCategory
	}{
		{"I want to cancel my booking", models.IntentCancellation},
		{"cancel AB12CD34 please", models.IntentCancellation},
		{"cancel", models.IntentCancellation},
		{"what is your facebook page", models.IntentSocialMedia},
		{"how to contact you", models.IntentContactRequest},
		{"what's your phone number", models.IntentContactRequest},
		{"I want to book a service", models.IntentServiceBooking},
		{"what services do you offer", models.IntentServiceInquiry},
		{"tell me about your privacy policy", models.IntentPrivacyInquiry},
		{"hello", models.IntentGreeting},
		{"hi there", models.IntentGreeting},
		{"when was the company founded", models.IntentCompanyInfo},
	}

	for _, tc := range cases {
		got := r.Classify(tc.message)
		if got.Category != tc.want {
			t.Errorf("Classify(%q) = %s, want %s (rule %s)", tc.message, got.Category, tc.want, got.Rule)
		}
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	r := NewRouter()

	// Cancellation phrasing wins even when booking terms co-occur.
	got := r.Classify("I want to cancel my service booking")
	if got.Category != models.IntentCancellation {
		t.Fatalf("expected cancellation to outrank booking, got %s", got.Category)
	}

	// Social media wins over contact when both appear.
	got = r.Classify("contact you on facebook")
	if got.Category != models.IntentSocialMedia {
		t.Fatalf("expected social media to outrank contact, got %s", got.Category)
	}
}

func TestClassifyGreetingOnlyWhenShort(t *testing.T) {
	r := NewRouter()

	got := r.Classify("hello I would like to know more about your software development services")
	if got.Category == models.IntentGreeting {
		t.Fatalf("long message must not classify as greeting, got rule %s", got.Rule)
	}
}

func TestClassifyDefault(t *testing.T) {
	r := NewRouter()

	got := r.Classify("random unrelated text about weather")
	if got.Category != models.IntentCompanyInfo {
		t.Fatalf("expected default company_info, got %s", got.Category)
	}
	if got.Rule != "default" {
		t.Fatalf("expected default rule, got %s", got.Rule)
	}
	if got.Confidence >= 0.5 {
		t.Fatalf("default confidence should be low, got %f", got.Confidence)
	}
}

func TestClassifyIdentifierAdjacentCancellation(t *testing.T) {
	r := NewRouter()

	got := r.Classify("my id is ab12cd34 and I need to cancel")
	if got.Category != models.IntentCancellation {
		t.Fatalf("identifier-adjacent cancel must classify as cancellation, got %s", got.Category)
	}
}
