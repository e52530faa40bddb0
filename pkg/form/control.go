package form

import (
	"fmt"
	"regexp"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Native constraint messages, worded the way browsers report them.
const (
	MsgValueMissing    = "Please fill out this field."
	MsgTypeEmail       = "Please enter an email address."
	MsgTypeURL         = "Please enter a URL."
	MsgTypeNumber      = "Please enter a number."
	MsgPatternMismatch = "Please match the requested format."
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func nativeValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Control is the server side stand-in for a form control: it holds the
// current value and a custom validity message and answers the same questions
// a browser control does.
type Control struct {
	mu          sync.RWMutex
	name        string
	value       string
	custom      string
	constraints Constraints
	pattern     *regexp.Regexp
}

func newControl(f field) *Control {
	return &Control{
		name:        f.spec.Name,
		constraints: f.spec.Constraints,
		pattern:     f.pattern,
	}
}

// Name returns the field name.
func (c *Control) Name() string { return c.name }

// Value returns the current value.
func (c *Control) Value() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

func (c *Control) setValue(v string) {
	c.mu.Lock()
	c.value = v
	c.mu.Unlock()
}

// SetCustomValidity marks the control invalid with msg; "" clears it.
func (c *Control) SetCustomValidity(msg string) {
	c.mu.Lock()
	c.custom = msg
	c.mu.Unlock()
}

// ValidationMessage returns the custom validity message when set, otherwise
// the first failing native constraint message, otherwise "".
func (c *Control) ValidationMessage() string {
	c.mu.RLock()
	custom, value := c.custom, c.value
	c.mu.RUnlock()
	if custom != "" {
		return custom
	}
	return c.nativeMessage(value)
}

// CheckValidity reports whether the control currently has no validation
// message.
func (c *Control) CheckValidity() bool {
	return c.ValidationMessage() == ""
}

// nativeMessage runs the declarative constraints in browser order:
// required, type, length, pattern. Empty optional values are valid.
func (c *Control) nativeMessage(value string) string {
	v := nativeValidator()
	cons := c.constraints

	if value == "" {
		if cons.Required {
			return MsgValueMissing
		}
		return ""
	}

	switch cons.Type {
	case TypeEmail:
		if v.Var(value, "email") != nil {
			return MsgTypeEmail
		}
	case TypeURL:
		if v.Var(value, "url") != nil {
			return MsgTypeURL
		}
	case TypeNumber:
		if v.Var(value, "numeric") != nil {
			return MsgTypeNumber
		}
	}

	length := utf8.RuneCountInString(value)
	if cons.MinLength > 0 && v.Var(value, fmt.Sprintf("min=%d", cons.MinLength)) != nil {
		return fmt.Sprintf("Please lengthen this text to %d characters or more (you are currently using %d characters).", cons.MinLength, length)
	}
	if cons.MaxLength > 0 && v.Var(value, fmt.Sprintf("max=%d", cons.MaxLength)) != nil {
		return fmt.Sprintf("Please shorten this text to %d characters or less (you are currently using %d characters).", cons.MaxLength, length)
	}

	if c.pattern != nil && !c.pattern.MatchString(value) {
		return MsgPatternMismatch
	}
	return ""
}
