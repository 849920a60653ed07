package contact

import (
	"unicode/utf8"
)

// State is where a field sits in its validation lifecycle.
type State int

const (
	Untouched State = iota
	Invalid
	Valid
)

func (s State) String() string {
	switch s {
	case Invalid:
		return "invalid"
	case Valid:
		return "valid"
	default:
		return "untouched"
	}
}

// ParseState is the inverse of State.String. Unknown values are Untouched.
func ParseState(s string) State {
	switch s {
	case "invalid":
		return Invalid
	case "valid":
		return Valid
	default:
		return Untouched
	}
}

// Event is a visitor interaction with a field.
type Event int

const (
	Blur Event = iota
	Input
)

// ParseEvent maps an HTMX trigger name to an Event.
func ParseEvent(s string) (Event, bool) {
	switch s {
	case "blur", "focusout":
		return Blur, true
	case "input", "keyup", "change":
		return Input, true
	}
	return 0, false
}

// FieldControl is one input plus its error display.
type FieldControl struct {
	Field   Field
	Value   string
	State   State
	Message string
}

// Handle applies an event carrying the field's current value. Blur always
// validates; Input only re-validates a field already showing an error, so
// the first pass of typing stays quiet. It reports whether validation ran.
func (c *FieldControl) Handle(ev Event, value string) bool {
	c.Value = value
	if ev == Input && c.State != Invalid {
		return false
	}
	c.Validate()
	return true
}

// Validate runs the field's rule, updating the error display, and returns
// the verdict.
func (c *FieldControl) Validate() bool {
	v := Validate(c.Field, c.Value)
	if !v.Valid {
		c.State = Invalid
		c.Message = v.Message
		return false
	}
	c.State = Valid
	c.Message = ""
	return true
}

func (c *FieldControl) reset() {
	c.Value = ""
	c.State = Untouched
	c.Message = ""
}

// Form holds the four contact inputs.
type Form struct {
	controls []*FieldControl
}

// NewForm returns an empty form with every field untouched.
func NewForm() *Form {
	f := &Form{}
	for _, field := range Fields() {
		f.controls = append(f.controls, &FieldControl{Field: field})
	}
	return f
}

// Control returns the input for field, or nil for unknown fields.
func (f *Form) Control(field Field) *FieldControl {
	for _, c := range f.controls {
		if c.Field == field {
			return c
		}
	}
	return nil
}

// Controls returns the inputs in display order.
func (f *Form) Controls() []*FieldControl {
	return f.controls
}

// Set stores a value without validating.
func (f *Form) Set(field Field, value string) {
	if c := f.Control(field); c != nil {
		c.Value = value
	}
}

// ValidateAll validates every field regardless of prior state.
func (f *Form) ValidateAll() ValidationErrors {
	var errs ValidationErrors
	for _, c := range f.controls {
		if !c.Validate() {
			errs = append(errs, &ValidationError{Field: c.Field, Message: c.Message})
		}
	}
	return errs
}

// Reset clears every value and error.
func (f *Form) Reset() {
	for _, c := range f.controls {
		c.reset()
	}
}

// Message builds the outgoing message from the current values.
func (f *Form) Message() Message {
	return Message{
		Name:    f.Control(FieldName).Value,
		Email:   f.Control(FieldEmail).Value,
		Subject: f.Control(FieldSubject).Value,
		Body:    f.Control(FieldMessage).Value,
	}
}

// CharCount is the message counter shown beside its label.
func CharCount(value string) (count int, nearLimit bool) {
	count = utf8.RuneCountInString(value)
	return count, count > NearLimitAt
}
