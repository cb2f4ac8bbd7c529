// File: services/chat/knowledge.go
package chat

import (
	"fmt"
	"strings"
)

// CompanyInfo is the canned knowledge the assistant can answer from
// without touching the retrieval stack.
type CompanyInfo struct {
	Identity      string
	Name          string
	Domain        string
	Founded       string
	Location      string
	Phone         string
	Email         string
	Website       string
	PrivacyPolicy string
	Address       string
	LinkedIn      string
	Twitter       string
	Facebook      string
	Services      []string
}

// DefaultCompanyInfo returns the Adeona Technologies knowledge base.
func DefaultCompanyInfo() CompanyInfo {
	return CompanyInfo{
		Identity:      "I'm AdeonaBot, the official AI assistant for Adeona Technologies.",
		Name:          "Adeona Technologies",
		Domain:        "adeonatech.net",
		Founded:       "2017",
		Location:      "Colombo, Sri Lanka",
		Phone:         "(+94) 117 433 3333",
		Email:         "info@adeonatech.net",
		Website:       "https://adeonatech.net/",
		PrivacyPolicy: "https://adeonatech.net/privacy-policy",
		Address:       "14, Sir Baron Jayathilaka Mawatha, Colombo, Sri Lanka, 00100",
		LinkedIn:      "https://www.linkedin.com/company/adeona-technologies/",
		Twitter:       "https://twitter.com/adeona_tech",
		Facebook:      "https://web.facebook.com/adeonatech",
		Services: []string{
			"Tailored Software Development",
			"Adeona Foresight CRM",
			"Digital Bill",
			"Digital Business Card",
			"Value Added Service Development (VAS)",
			"Cross-Platform Mobile and Web Application Development",
			"In-App and In-Web Advertising Solutions",
			"API Design and Implementation",
			"Inventory Management Solutions",
			"Bulk SMS and Rich Messaging",
			"Fleet Management Solutions",
			"Website Builder Tool",
			"Restaurant Management System",
			"3CX Business Communication",
			"Scratch Card Solution",
			"Lead Manager",
		},
	}
}

// ContactBlock renders the contact details appended to many responses.
func (ci CompanyInfo) ContactBlock() string {
	return fmt.Sprintf("Phone: %s\nEmail: %s\nWebsite: %s", ci.Phone, ci.Email, ci.Website)
}

func (ci CompanyInfo) greetingResponse() string {
	return fmt.Sprintf(`Hello! Welcome to %s. %s

%s is an IT solutions company in %s, specializing in custom software development and digital transformation since %s.

I can help you with:
- Information about our %d services and solutions
- Company background and expertise
- Service booking and inquiries

What would you like to know?`,
		ci.Name, ci.Identity, ci.Name, ci.Location, ci.Founded, len(ci.Services))
}

func (ci CompanyInfo) contactResponse(message string) string {
	switch {
	case containsAny(message, "phone", "number", "call", "telephone"):
		return fmt.Sprintf("You can call %s at: %s\n\nOther contact methods:\nEmail: %s\nWebsite: %s",
			ci.Name, ci.Phone, ci.Email, ci.Website)
	case containsAny(message, "email", "mail"):
		return fmt.Sprintf("You can email %s at: %s\n\nOther contact methods:\nPhone: %s\nWebsite: %s",
			ci.Name, ci.Email, ci.Phone, ci.Website)
	case containsAny(message, "address", "location", "office"):
		return fmt.Sprintf("%s office location:\nAddress: %s\n\nContact us:\nPhone: %s\nEmail: %s",
			ci.Name, ci.Address, ci.Phone, ci.Email)
	default:
		return fmt.Sprintf(`Contact %s:

Phone: %s
Email: %s
Website: %s
Address: %s

Social Media:
- Facebook: %s
- LinkedIn: %s
- Twitter/X: %s

How can we assist you today?`,
			ci.Name, ci.Phone, ci.Email, ci.Website, ci.Address, ci.Facebook, ci.LinkedIn, ci.Twitter)
	}
}

func (ci CompanyInfo) socialMediaResponse(message string) string {
	switch {
	case containsAny(message, "facebook", "fb"):
		return fmt.Sprintf("Here's %s Facebook profile: %s\n\nYou can also find us on:\n- LinkedIn: %s\n- Twitter/X: %s",
			ci.Name, ci.Facebook, ci.LinkedIn, ci.Twitter)
	case containsAny(message, "twitter", "x profile", "x account"):
		return fmt.Sprintf("Here's %s Twitter/X profile: %s\n\nYou can also find us on:\n- Facebook: %s\n- LinkedIn: %s",
			ci.Name, ci.Twitter, ci.Facebook, ci.LinkedIn)
	case containsAny(message, "linkedin"):
		return fmt.Sprintf("Here's %s LinkedIn profile: %s\n\nYou can also connect with us on:\n- Facebook: %s\n- Twitter/X: %s",
			ci.Name, ci.LinkedIn, ci.Facebook, ci.Twitter)
	default:
		return fmt.Sprintf(`Here are %s social media profiles:

- Facebook: %s
- LinkedIn: %s
- Twitter/X: %s

Connect with us to stay updated on our latest services and projects!

Other contact methods:
%s`,
			ci.Name, ci.Facebook, ci.LinkedIn, ci.Twitter, ci.ContactBlock())
	}
}

func (ci CompanyInfo) serviceListResponse() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s offers %d comprehensive IT solutions and services:\n\n", ci.Name, len(ci.Services))
	for _, svc := range ci.Services {
		fmt.Fprintf(&sb, "- %s\n", svc)
	}
	fmt.Fprintf(&sb, "\nGet detailed information:\n%s\n\nWould you like more information about any specific service, or would you like to book a consultation?", ci.ContactBlock())
	return sb.String()
}

func (ci CompanyInfo) privacyResponse() string {
	return fmt.Sprintf(`For comprehensive privacy policy information, please visit: %s

%s is committed to protecting your personal information and maintaining transparent privacy practices.

For specific privacy questions:
Phone: %s
Email: %s`,
		ci.PrivacyPolicy, ci.Name, ci.Phone, ci.Email)
}

func (ci CompanyInfo) aboutResponse() string {
	return fmt.Sprintf(`About %s

%s is an IT solutions company established in %s and based in %s.

- Founded: %s
- Location: %s
- Services: %d comprehensive solutions

We specialize in custom software development, CRM systems, mobile applications, and digital transformation solutions.

Get in touch:
%s`,
		ci.Name, ci.Name, ci.Founded, ci.Location, ci.Founded, ci.Address, len(ci.Services), ci.ContactBlock())
}

// fallbackResponse categorizes a question and answers from canned
// knowledge when retrieval comes back empty.
func (ci CompanyInfo) fallbackResponse(message string) string {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, "service", "solution", "software", "development", "what do", "what can"):
		return ci.serviceListResponse()
	case containsAny(lower, "privacy", "policy", "data", "protection"):
		return ci.privacyResponse()
	case containsAny(lower, "about", "company", "history", "founded", "who are"):
		return ci.aboutResponse()
	case containsAny(lower, "contact", "phone", "email", "address", "reach"):
		return ci.contactResponse(lower)
	default:
		return fmt.Sprintf(`I'd be happy to help you with information about %s!

Quick facts:
- Founded: %s in %s
- Services: %d comprehensive IT solutions
- Specialties: custom software, CRM systems, mobile apps

For detailed information about your specific inquiry:
%s

What would you like to know more about?`,
			ci.Name, ci.Founded, ci.Location, len(ci.Services), ci.ContactBlock())
	}
}

// basicInfoResponse answers simple factual questions straight from the
// canned knowledge, skipping retrieval and generation entirely.
func (ci CompanyInfo) basicInfoResponse(message string) (string, bool) {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, "who are you", "what are you", "your name"):
		return ci.Identity + " How can I help you today?", true
	case containsAny(lower, "founded", "established", "how old", "since when"):
		return fmt.Sprintf("%s was founded in %s and is based in %s.", ci.Name, ci.Founded, ci.Location), true
	case containsAny(lower, "where are you", "where is the company", "which country", "based in"):
		return fmt.Sprintf("%s is located in %s.\n\nAddress: %s", ci.Name, ci.Location, ci.Address), true
	case containsAny(lower, "website", "web site", "url", "your site"):
		return fmt.Sprintf("Our website is %s. You can also reach us at %s or %s.", ci.Website, ci.Email, ci.Phone), true
	}
	return "", false
}

func containsAny(s string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
