package order

import (
	"errors"
	"strings"

	"rollmill/internal/pkg/errs"
)

// Roll is one manufactured piece of an order. Rolls have no identity of
// their own: they live inside the order and are replaced as a whole on
// update.
type Roll struct {
	rollNumber  string
	hardness    string
	machining   string
	description string
	dimensions  string
	status      RollStatus
	grade       Grade
}

// RollParams carries the attributes of a roll into NewRoll.
type RollParams struct {
	RollNumber  string
	Hardness    string
	Machining   string
	Description string
	Dimensions  string
	Status      RollStatus
	Grade       Grade
}

// NewRoll builds a roll. RollNumber and Hardness are required; an empty
// Status becomes RollStatusPending.
func NewRoll(p RollParams) (Roll, error) {
	r := Roll{
		rollNumber:  strings.TrimSpace(p.RollNumber),
		hardness:    strings.TrimSpace(p.Hardness),
		machining:   p.Machining,
		description: p.Description,
		dimensions:  p.Dimensions,
		status:      p.Status,
		grade:       p.Grade,
	}
	if r.status == "" {
		r.status = RollStatusPending
	}

	var errList []error
	if r.rollNumber == "" {
		errList = append(errList, errs.NewValueIsRequiredError("rollNumber"))
	}
	if r.hardness == "" {
		errList = append(errList, errs.NewValueIsRequiredError("hardness"))
	}
	errList = append(errList, r.status.Validate(), r.grade.Validate())
	if err := errors.Join(errList...); err != nil {
		return Roll{}, err
	}

	return r, nil
}

func (r Roll) RollNumber() string {
	return r.rollNumber
}

func (r Roll) Hardness() string {
	return r.hardness
}

func (r Roll) Machining() string {
	return r.machining
}

// Description is the free-text roll description (SHAFT, ROLL, ...).
func (r Roll) Description() string {
	return r.description
}

func (r Roll) Dimensions() string {
	return r.dimensions
}

func (r Roll) Status() RollStatus {
	return r.status
}

func (r Roll) Grade() Grade {
	return r.grade
}
