package models

// BookingStep enumerates the phases of the service booking flow, in order.
type BookingStep int

const (
	StepName BookingStep = iota
	StepEmail
	StepPhone
	StepAddress
	StepServiceDetails
	StepConfirmation
	StepCompleted
)

func (s BookingStep) String() string {
	switch s {
	case StepName:
		return "name"
	case StepEmail:
		return "email"
	case StepPhone:
		return "phone"
	case StepAddress:
		return "address"
	case StepServiceDetails:
		return "service_details"
	case StepConfirmation:
		return "confirmation"
	case StepCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// BookingDraft is the partially-filled service request being collected
// across a multi-step conversation. Fields before the current step are
// validated and set; fields at or after it are empty.
type BookingDraft struct {
	Step           BookingStep
	Name           string
	Email          string
	Phone          string
	Address        string
	ServiceDetails string
}

// Reset returns the draft to the first step with all fields cleared.
func (d *BookingDraft) Reset() {
	*d = BookingDraft{Step: StepName}
}
