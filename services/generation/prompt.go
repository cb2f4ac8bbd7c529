// File: services/generation/prompt.go
package generation

import (
	"fmt"
	"strings"
)

// PromptContext is the structured input to the generation boundary.
// The verified facts, the user's question, and the response constraints
// are explicit fields serialized at a single place, instead of ad hoc
// string concatenation at every call site.
type PromptContext struct {
	Persona       string   // who the assistant is speaking as
	VerifiedFacts []string // context chunks the answer must be grounded in
	Question      string
	Constraints   []string // response instructions
	ContactInfo   string   // appended so the model can offer escalation
}

// Render serializes the context into the prompt sent to the model.
func (pc PromptContext) Render() string {
	var sb strings.Builder

	if pc.Persona != "" {
		sb.WriteString(pc.Persona)
		sb.WriteString("\n\n")
	}

	if len(pc.VerifiedFacts) > 0 {
		sb.WriteString("VERIFIED INFORMATION:\n")
		for _, fact := range pc.VerifiedFacts {
			sb.WriteString(fact)
			sb.WriteString("\n\n")
		}
	}

	fmt.Fprintf(&sb, "USER QUESTION: %s\n", pc.Question)

	if len(pc.Constraints) > 0 {
		sb.WriteString("\nINSTRUCTIONS:\n")
		for _, c := range pc.Constraints {
			fmt.Fprintf(&sb, "- %s\n", c)
		}
	}

	if pc.ContactInfo != "" {
		sb.WriteString("\nCONTACT INFO (include when helpful):\n")
		sb.WriteString(pc.ContactInfo)
		sb.WriteString("\n")
	}

	return sb.String()
}
