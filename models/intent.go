package models

// IntentCategory names one of the routable message categories.
type IntentCategory string

const (
	IntentCancellation   IntentCategory = "cancellation"
	IntentSocialMedia    IntentCategory = "social_media"
	IntentContactRequest IntentCategory = "contact_request"
	IntentServiceBooking IntentCategory = "service_booking"
	IntentServiceInquiry IntentCategory = "service_inquiry"
	IntentPrivacyInquiry IntentCategory = "privacy_inquiry"
	IntentGreeting       IntentCategory = "greeting"
	IntentCompanyInfo    IntentCategory = "company_info"
)

// Classification is the result of routing one message.
type Classification struct {
	Category   IntentCategory `json:"category"`
	Confidence float64        `json:"confidence"`
	Rule       string         `json:"rule"`
}
