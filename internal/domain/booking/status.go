package booking

import (
	"fmt"

	"github.com/BruksfildServices01/petsit-scheduler/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// validTransitions is the whole lifecycle graph. Rejected and completed are terminal.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusAccepted, StatusRejected},
	StatusAccepted:  {StatusCompleted},
	StatusRejected:  {},
	StatusCompleted: {},
}

func (s Status) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal also reports true for unknown statuses, nothing leaves them.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

func (s Status) String() string {
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid booking status: %q", s)
	}
	return st, nil
}

// AllowedTransitions returns the targets reachable from s in one step.
func AllowedTransitions(s Status) []Status {
	out := make([]Status, len(validTransitions[s]))
	copy(out, validTransitions[s])
	return out
}

// ===============================
// Validations
// ===============================

func CanTransition(from, to Status) error {
	if !from.CanTransitionTo(to) {
		return httperr.ErrInvalidTransition(string(from), string(to))
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
