package contact

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSubmissionInFlight is returned when Submit is called while the submit
// control is disabled.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// ErrSimulatedFailure is what MockSender returns when told to fail.
var ErrSimulatedFailure = errors.New("simulated send failure")

// ValidationError is a user-correctable problem with one field.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every failing field of a submit attempt, in
// form order.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, ve := range e {
		parts = append(parts, ve.Error())
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// For returns the error for field, or nil.
func (e ValidationErrors) For(field Field) *ValidationError {
	for _, ve := range e {
		if ve.Field == field {
			return ve
		}
	}
	return nil
}

// SubmissionError is a failed send. The form keeps its values and the
// submit control is re-armed.
type SubmissionError struct {
	Cause error
}

// AlertMessage is shown to the visitor when a send fails.
const AlertMessage = "There was an error sending your message. Please try again."

func (e *SubmissionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("sending message: %v", e.Cause)
	}
	return "sending message failed"
}

func (e *SubmissionError) Unwrap() error {
	return e.Cause
}
