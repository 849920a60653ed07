package contact

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/schedule"
)

// Default timings of the simulated send cycle.
const (
	DefaultSendDelay  = 2000 * time.Millisecond
	DefaultResetDelay = 5000 * time.Millisecond
)

// Controller owns one visitor's contact form. Its mutex stands in for the
// browser event loop: handlers and the scheduled reset never interleave.
type Controller struct {
	mu         sync.Mutex
	form       *Form
	sender     Sender
	scheduler  *schedule.Scheduler
	resetDelay time.Duration
	logger     *zap.Logger

	disabled       bool
	loading        bool
	formVisible    bool
	successVisible bool
	disables       int
	enables        int
	reset          *schedule.Sequence
	closed         bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithResetDelay sets how long the success panel stays up.
func WithResetDelay(d time.Duration) Option {
	return func(c *Controller) { c.resetDelay = d }
}

// WithLogger sets the logger used for send failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewController returns a controller with an empty, visible form.
func NewController(sender Sender, scheduler *schedule.Scheduler, opts ...Option) *Controller {
	c := &Controller{
		form:        NewForm(),
		sender:      sender,
		scheduler:   scheduler,
		resetDelay:  DefaultResetDelay,
		logger:      zap.NewNop(),
		formVisible: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HandleEvent routes a blur or input event to field and returns the
// field's display afterwards.
func (c *Controller) HandleEvent(field Field, ev Event, value string) (FieldView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctrl := c.form.Control(field)
	if ctrl == nil {
		return FieldView{}, false
	}
	ctrl.Handle(ev, value)
	return fieldView(ctrl), true
}

// Submit validates every field and, when all pass, runs the send cycle.
// Invalid forms return ValidationErrors without touching the submit
// control or any value. A failed send returns *SubmissionError.
func (c *Controller) Submit(ctx context.Context, values map[Field]string) error {
	c.mu.Lock()
	if c.disabled {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}
	for field, value := range values {
		c.form.Set(field, value)
	}
	if errs := c.form.ValidateAll(); len(errs) > 0 {
		c.mu.Unlock()
		return errs
	}

	c.disable()
	c.loading = true
	msg := c.form.Message()
	c.mu.Unlock()

	err := c.sender.Send(ctx, msg)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.logger.Warn("contact submission failed", zap.Error(err))
		c.loading = false
		c.enable()
		return &SubmissionError{Cause: err}
	}

	c.formVisible = false
	c.successVisible = true
	if !c.closed {
		c.reset = c.scheduler.Run(schedule.After(c.resetDelay, c.restore))
	}
	return nil
}

func (c *Controller) restore() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.formVisible = true
	c.form.Reset()
	c.successVisible = false
	c.loading = false
	c.enable()
}

func (c *Controller) disable() {
	c.disabled = true
	c.disables++
}

func (c *Controller) enable() {
	c.disabled = false
	c.enables++
}

// Close drops a pending reset. The controller is not usable afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.reset != nil {
		c.reset.Cancel()
	}
}

// ResetDone is closed once the pending success-panel reset has run. It
// returns nil when no reset was scheduled.
func (c *Controller) ResetDone() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reset == nil {
		return nil
	}
	return c.reset.Done()
}

// ResetDelay is how long the success panel stays up.
func (c *Controller) ResetDelay() time.Duration {
	return c.resetDelay
}

// FieldView is the render state of one input.
type FieldView struct {
	Field   Field
	Value   string
	State   State
	Message string
}

// Errored reports whether the field shows an error.
func (v FieldView) Errored() bool { return v.State == Invalid }

func fieldView(c *FieldControl) FieldView {
	return FieldView{Field: c.Field, Value: c.Value, State: c.State, Message: c.Message}
}

// View is the render state of the whole contact widget.
type View struct {
	Fields         []FieldView
	Disabled       bool
	Loading        bool
	FormVisible    bool
	SuccessVisible bool
	Disables       int
	Enables        int
	CharCount      int
	NearLimit      bool
}

// Field returns the view of one input.
func (v View) Field(field Field) FieldView {
	for _, f := range v.Fields {
		if f.Field == field {
			return f
		}
	}
	return FieldView{}
}

// View snapshots the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Disabled:       c.disabled,
		Loading:        c.loading,
		FormVisible:    c.formVisible,
		SuccessVisible: c.successVisible,
		Disables:       c.disables,
		Enables:        c.enables,
	}
	for _, ctrl := range c.form.Controls() {
		v.Fields = append(v.Fields, fieldView(ctrl))
	}
	v.CharCount, v.NearLimit = CharCount(c.form.Control(FieldMessage).Value)
	return v
}

// IsValidationError reports whether err came from field validation.
func IsValidationError(err error) bool {
	var errs ValidationErrors
	return errors.As(err, &errs)
}
