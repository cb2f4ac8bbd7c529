package chat

import (
	"regexp"
	"testing"
)

func TestExtractUserIDWholeMessage(t *testing.T) {
	cases := []string{"AB12CD34", "ab12cd34", "  AB12CD34  ", "Ab12Cd34"}
	for _, msg := range cases {
		id, ok := ExtractUserID(msg)
		if !ok {
			t.Errorf("ExtractUserID(%q) failed", msg)
			continue
		}
		if id != "AB12CD34" {
			t.Errorf("ExtractUserID(%q) = %q, want AB12CD34", msg, id)
		}
	}
}

func TestExtractUserIDEmbedded(t *testing.T) {
	id, ok := ExtractUserID("my reference id is AB12CD34, please cancel it")
	if !ok || id != "AB12CD34" {
		t.Fatalf("embedded extraction = %q %v", id, ok)
	}
}

func TestExtractUserIDPrefixShape(t *testing.T) {
	// Letters-then-digits form only counts when it is exactly 8 chars.
	id, ok := ExtractUserID("cancel ADNA1234 for me")
	if !ok || id != "ADNA1234" {
		t.Fatalf("prefix extraction = %q %v", id, ok)
	}
}

func TestExtractUserIDSkipsShorterPrefixMatches(t *testing.T) {
	// An earlier letters-then-digits run of the wrong length must not
	// shadow a valid 8-char one later in the message.
	id, ok := ExtractUserID("ids AB1234 and ADNA1234X please")
	if !ok || id != "ADNA1234" {
		t.Fatalf("extraction = %q %v, want ADNA1234", id, ok)
	}
}

func TestExtractUserIDRejectsWrongLength(t *testing.T) {
	for _, msg := range []string{"ABC1234", "hello there", "", "cancel my booking please"} {
		if id, ok := ExtractUserID(msg); ok {
			t.Errorf("ExtractUserID(%q) unexpectedly extracted %q", msg, id)
		}
	}
}

func TestGenerateUserIDShape(t *testing.T) {
	shape := regexp.MustCompile(`^[A-Z0-9]{8}$`)
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := GenerateUserID()
		if !shape.MatchString(id) {
			t.Fatalf("generated id %q does not match the 8-char uppercase alnum shape", id)
		}
		seen[id] = struct{}{}
	}
	if len(seen) < 90 {
		t.Fatalf("generated ids collide too often: %d unique of 100", len(seen))
	}
}

func TestGeneratedIDRoundTrips(t *testing.T) {
	id := GenerateUserID()
	got, ok := ExtractUserID(id)
	if !ok || got != id {
		t.Fatalf("generated id %q did not extract back, got %q %v", id, got, ok)
	}
}
