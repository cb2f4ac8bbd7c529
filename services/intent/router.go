// File: services/intent/router.go
package intent

import (
	"regexp"
	"strings"

	"adeonabot/models"
)

// rule is one entry in the ordered evaluation table. Rules are checked
// top-down and the first match wins, so earlier categories take priority
// when keywords overlap.
type rule struct {
	name       string
	category   models.IntentCategory
	confidence float64
	matches    func(msg string, words []string) bool
}

// Router classifies a raw message into exactly one category. It never
// fails: a message matching no rule is company-info with low confidence.
type Router struct {
	rules []rule
}

var (
	cancellationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(cancel|stop|remove|delete)\b.*\b(service|order|booking|subscription|request)\b`),
		regexp.MustCompile(`\b(cancel|stop|remove|delete) my\b`),
		regexp.MustCompile(`\b(how to cancel|want to cancel|need to cancel|please cancel)\b`),
		regexp.MustCompile(`\bcancel (it|that)\b`),
		regexp.MustCompile(`\b[a-z0-9]{8}\b.*\bcancel\b`),
		regexp.MustCompile(`\bcancel\b.*\b[a-z0-9]{8}\b`),
	}

	socialMediaTerms = []string{
		"facebook", "fb", "twitter", "x profile", "x account", "linkedin",
		"instagram", "insta", "social media", "social profiles", "social accounts",
	}

	contactTerms = []string{
		"phone number", "contact number", "telephone", "call",
		"email address", "email", "contact email",
		"contact info", "contact details", "how to contact",
		"reach you", "get in touch", "address", "location",
	}

	bookingTerms = []string{
		"book", "order", "purchase", "buy", "get service", "need service",
		"want service", "hire", "request service", "i want to", "i need to",
	}

	serviceInquiryTerms = []string{
		"what services", "what do you offer", "what can you do",
		"services do you provide", "what are your services",
		"list of services", "available services", "services offered",
		"what solutions", "what kind of services", "service list",
	}

	privacyTerms = []string{
		"privacy", "privacy policy", "data protection", "personal data",
		"personal information",
	}

	greetingTokens = []string{
		"hello", "hi", "hey", "good morning", "good afternoon", "good evening",
	}
)

func containsAny(msg string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(msg, t) {
			return true
		}
	}
	return false
}

func isCancellation(msg string, words []string) bool {
	for _, p := range cancellationPatterns {
		if p.MatchString(msg) {
			return true
		}
	}
	// A short message mentioning cancel is a cancellation even without
	// a recognizable object ("cancel", "cancel ABC12345 please").
	return strings.Contains(msg, "cancel") && len(words) <= 5
}

// NewRouter builds the evaluation table. Cancellation sits first because
// cancellation and booking keywords frequently co-occur ("I want to cancel
// my booking") and re-entering the booking flow for such a message would
// strand the user.
func NewRouter() *Router {
	return &Router{rules: []rule{
		{
			name:       "cancellation",
			category:   models.IntentCancellation,
			confidence: 0.95,
			matches:    isCancellation,
		},
		{
			name:       "social_media",
			category:   models.IntentSocialMedia,
			confidence: 0.9,
			matches: func(msg string, _ []string) bool {
				return containsAny(msg, socialMediaTerms)
			},
		},
		{
			name:       "contact_request",
			category:   models.IntentContactRequest,
			confidence: 0.85,
			matches: func(msg string, _ []string) bool {
				return containsAny(msg, contactTerms)
			},
		},
		{
			name:       "service_booking",
			category:   models.IntentServiceBooking,
			confidence: 0.85,
			matches: func(msg string, _ []string) bool {
				return containsAny(msg, bookingTerms)
			},
		},
		{
			name:       "service_inquiry",
			category:   models.IntentServiceInquiry,
			confidence: 0.8,
			matches: func(msg string, _ []string) bool {
				return containsAny(msg, serviceInquiryTerms)
			},
		},
		{
			name:       "privacy_inquiry",
			category:   models.IntentPrivacyInquiry,
			confidence: 0.8,
			matches: func(msg string, _ []string) bool {
				return containsAny(msg, privacyTerms)
			},
		},
		{
			// Restrictive on purpose: only short messages with no content
			// beyond a greeting token qualify, so "hi, what services do
			// you have" routes to service inquiry, not greeting.
			name:       "greeting",
			category:   models.IntentGreeting,
			confidence: 0.9,
			matches: func(msg string, words []string) bool {
				return containsAny(msg, greetingTokens) && len(words) <= 3
			},
		},
	}}
}

// Classify evaluates the rule table top-down and returns the first match.
func (r *Router) Classify(message string) models.Classification {
	msg := strings.ToLower(strings.TrimSpace(message))
	words := strings.Fields(msg)

	for _, rl := range r.rules {
		if rl.matches(msg, words) {
			return models.Classification{
				Category:   rl.category,
				Confidence: rl.confidence,
				Rule:       rl.name,
			}
		}
	}
	return models.Classification{
		Category:   models.IntentCompanyInfo,
		Confidence: 0.3,
		Rule:       "default",
	}
}
