package contact

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value string
		want  Verdict
	}{
		{"name empty", FieldName, "", Verdict{Message: "Name is required"}},
		{"name whitespace only", FieldName, "   ", Verdict{Message: "Name is required"}},
		{"name one char", FieldName, "A", Verdict{Message: "Name must be at least 2 characters"}},
		{"name trimmed to one char", FieldName, "  A  ", Verdict{Message: "Name must be at least 2 characters"}},
		{"name two chars", FieldName, "Al", Verdict{Valid: true}},
		{"email empty", FieldEmail, "", Verdict{Message: "Email is required"}},
		{"email no tld", FieldEmail, "a@b", Verdict{Message: "Please enter a valid email address"}},
		{"email with space", FieldEmail, "a b@c.com", Verdict{Message: "Please enter a valid email address"}},
		{"email valid", FieldEmail, "a@b.com", Verdict{Valid: true}},
		{"email padded", FieldEmail, " a@b.com ", Verdict{Valid: true}},
		{"subject empty", FieldSubject, "", Verdict{Message: "Please select a subject"}},
		{"subject set", FieldSubject, "project", Verdict{Valid: true}},
		{"message empty", FieldMessage, "", Verdict{Message: "Message is required"}},
		{"message nine chars", FieldMessage, strings.Repeat("x", 9), Verdict{Message: "Message must be at least 10 characters"}},
		{"message ten chars", FieldMessage, strings.Repeat("x", 10), Verdict{Valid: true}},
		{"message at max", FieldMessage, strings.Repeat("x", 1000), Verdict{Valid: true}},
		{"message over max", FieldMessage, strings.Repeat("x", 1001), Verdict{Message: "Message must be less than 1000 characters"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.field, tt.value)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("verdict mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateIsDeterministic(t *testing.T) {
	for _, field := range Fields() {
		for _, value := range []string{"", "A", "a@b", "hello world!"} {
			first := Validate(field, value)
			second := Validate(field, value)
			if first != second {
				t.Fatalf("Validate(%s, %q) changed between runs: %+v then %+v", field, value, first, second)
			}
		}
	}
}

func TestParseField(t *testing.T) {
	if f, ok := ParseField("email"); !ok || f != FieldEmail {
		t.Fatalf("ParseField(email) = %q, %v", f, ok)
	}
	if _, ok := ParseField("phone"); ok {
		t.Fatal("ParseField accepted unknown field")
	}
}

func TestCharCount(t *testing.T) {
	count, near := CharCount(strings.Repeat("a", 900))
	if count != 900 || near {
		t.Fatalf("CharCount(900) = %d, %v", count, near)
	}
	count, near = CharCount(strings.Repeat("a", 901))
	if count != 901 || !near {
		t.Fatalf("CharCount(901) = %d, %v", count, near)
	}
}
