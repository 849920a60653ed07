// Package contact implements the contact page: per-field validation with a
// sticky error state, gated submission and the simulated send cycle.
package contact

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field names a contact form input.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
)

// Fields lists the form inputs in display order.
func Fields() []Field {
	return []Field{FieldName, FieldEmail, FieldSubject, FieldMessage}
}

// ParseField maps a form key to a Field.
func ParseField(s string) (Field, bool) {
	for _, f := range Fields() {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Message length limits.
const (
	MessageMinLength = 10
	MessageMaxLength = 1000
	// NearLimitAt is where the character counter switches to its warning colour.
	NearLimitAt = 900
)

// Verdict is the outcome of running a rule against a value.
type Verdict struct {
	Valid   bool
	Message string
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validate is the package-level validator instance used for field rules.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("simpleemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

type rule struct {
	tags     string
	messages map[string]string
}

var rules = map[Field]rule{
	FieldName: {
		tags: "required,min=2",
		messages: map[string]string{
			"required": "Name is required",
			"min":      "Name must be at least 2 characters",
		},
	},
	FieldEmail: {
		tags: "required,simpleemail",
		messages: map[string]string{
			"required":    "Email is required",
			"simpleemail": "Please enter a valid email address",
		},
	},
	FieldSubject: {
		tags: "required",
		messages: map[string]string{
			"required": "Please select a subject",
		},
	},
	FieldMessage: {
		tags: "required,min=10,max=1000",
		messages: map[string]string{
			"required": "Message is required",
			"min":      "Message must be at least 10 characters",
			"max":      "Message must be less than 1000 characters",
		},
	},
}

// Validate runs the rule for field against the trimmed value. It is pure:
// the same input always yields the same verdict.
func Validate(field Field, value string) Verdict {
	r, ok := rules[field]
	if !ok {
		return Verdict{Valid: false, Message: "Unknown field"}
	}

	err := validate.Var(strings.TrimSpace(value), r.tags)
	if err == nil {
		return Verdict{Valid: true}
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		if msg, ok := r.messages[fieldErrs[0].Tag()]; ok {
			return Verdict{Valid: false, Message: msg}
		}
	}
	return Verdict{Valid: false, Message: err.Error()}
}

// SubjectOption is one entry of the subject select.
type SubjectOption struct {
	Value string
	Label string
}

// SubjectOptions are offered by the subject select; the empty value is the
// placeholder and fails validation.
func SubjectOptions() []SubjectOption {
	return []SubjectOption{
		{Value: "", Label: "Select a subject"},
		{Value: "project", Label: "Project inquiry"},
		{Value: "collaboration", Label: "Collaboration"},
		{Value: "job", Label: "Job opportunity"},
		{Value: "other", Label: "Just saying hello"},
	}
}
