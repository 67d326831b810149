package auth

import (
	"strings"

	"lighthouse.app/internal/core/navigation"
	"lighthouse.app/pkg/errors"
)

// PINLength is the number of digits that triggers a login submission
const PINLength = 6

// Stage is a phase of the two-step login
type Stage string

const (
	StageUsername Stage = "username"
	StagePIN      Stage = "pin"
)

func (s Stage) String() string {
	return string(s)
}

// FlowState is a read-only view of the login flow. The PIN itself is never
// exposed, only how many digits were entered.
type FlowState struct {
	Stage       Stage  `json:"stage"`
	Username    string `json:"username"`
	DigitCount  int    `json:"digitCount"`
	PINLength   int    `json:"pinLength"`
	Validating  bool   `json:"validating"`
	Submitting  bool   `json:"submitting"`
	ErrorKind   string `json:"errorKind,omitempty"`
	Error       string `json:"error,omitempty"`
	LastFailure error  `json:"-"`
}

// Outcome is returned when the flow finished and the client should move on
type Outcome struct {
	NavigateTo navigation.Route
	Username   string
	UserID     string
}

// pin accumulates digit presses up to PINLength
type pin struct {
	digits []byte
}

func (p *pin) full() bool {
	return len(p.digits) >= PINLength
}

func (p *pin) push(d byte) {
	if !p.full() {
		p.digits = append(p.digits, d)
	}
}

func (p *pin) pop() {
	if len(p.digits) > 0 {
		p.digits = p.digits[:len(p.digits)-1]
	}
}

func (p *pin) clear() {
	p.digits = p.digits[:0]
}

func (p *pin) String() string {
	return string(p.digits)
}

// parseDigit accepts exactly one ASCII digit
func parseDigit(input string) (byte, error) {
	input = strings.TrimSpace(input)
	if len(input) != 1 || input[0] < '0' || input[0] > '9' {
		return 0, errors.NewValidationError("a PIN digit must be a single character 0-9")
	}
	return input[0], nil
}

func errorKind(err error) string {
	if err == nil {
		return ""
	}
	return errors.TypeOf(err).String()
}
