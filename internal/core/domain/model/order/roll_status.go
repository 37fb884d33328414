package order

import (
	"fmt"
	"strings"

	"rollmill/internal/pkg/errs"
)

// RollStatus is the production stage of a single roll.
//
// Rolls move through a fixed workflow:
//
//	Pending -> casting -> annealing -> machining -> baring/wobler -> dispached
//
// The spellings are the ones stored and shown to operators, including
// "dispached".
type RollStatus string

const (
	RollStatusPending      RollStatus = "Pending"
	RollStatusCasting      RollStatus = "casting"
	RollStatusAnnealing    RollStatus = "annealing"
	RollStatusMachining    RollStatus = "machining"
	RollStatusBaringWobler RollStatus = "baring/wobler"
	RollStatusDispatched   RollStatus = "dispached"
)

var rollStatuses = []RollStatus{
	RollStatusPending,
	RollStatusCasting,
	RollStatusAnnealing,
	RollStatusMachining,
	RollStatusBaringWobler,
	RollStatusDispatched,
}

// RollStatuses lists every status in workflow order.
func RollStatuses() []RollStatus {
	out := make([]RollStatus, len(rollStatuses))
	copy(out, rollStatuses)
	return out
}

// ParseRollStatus matches s case-insensitively against the workflow and
// returns the canonical spelling. A blank value yields RollStatusPending.
func ParseRollStatus(s string) (RollStatus, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RollStatusPending, nil
	}
	for _, status := range rollStatuses {
		if strings.EqualFold(s, string(status)) {
			return status, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not one of %s", s, joinRollStatuses()),
	)
}

// Validate rejects values outside the workflow, including the empty string.
func (s RollStatus) Validate() error {
	if s.Position() == 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%q is not one of %s", string(s), joinRollStatuses()),
		)
	}
	return nil
}

// Position is the 1-based place of the status in the workflow, 0 if unknown.
func (s RollStatus) Position() int {
	for i, status := range rollStatuses {
		if s == status {
			return i + 1
		}
	}
	return 0
}

func (s RollStatus) String() string {
	return string(s)
}

func joinRollStatuses() string {
	names := make([]string, len(rollStatuses))
	for i, status := range rollStatuses {
		names[i] = string(status)
	}
	return strings.Join(names, ", ")
}
