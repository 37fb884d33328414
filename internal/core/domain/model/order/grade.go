package order

import (
	"fmt"
	"strings"

	"rollmill/internal/pkg/errs"
)

// Grade is the material grade of a roll. It is optional; the empty Grade
// means "not specified".
type Grade string

const (
	GradeNone      Grade = ""
	GradeAlloys    Grade = "ALLOYS"
	GradeAdamite   Grade = "ADAMITE"
	GradeSGI       Grade = "S.G.I"
	GradeWSG       Grade = "W.S.G"
	GradeAccicular Grade = "ACCICULAR"
	GradeChill     Grade = "CHILL"
)

var grades = []Grade{GradeAlloys, GradeAdamite, GradeSGI, GradeWSG, GradeAccicular, GradeChill}

// Grades lists the known grades.
func Grades() []Grade {
	out := make([]Grade, len(grades))
	copy(out, grades)
	return out
}

// ParseGrade matches s case-insensitively and returns the canonical spelling.
// A blank value yields GradeNone.
func ParseGrade(s string) (Grade, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return GradeNone, nil
	}
	for _, g := range grades {
		if strings.EqualFold(s, string(g)) {
			return g, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("grade", fmt.Errorf("%q is not one of %s", s, joinGrades()))
}

func (g Grade) Validate() error {
	if g == GradeNone {
		return nil
	}
	for _, known := range grades {
		if g == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("grade", fmt.Errorf("%q is not one of %s", string(g), joinGrades()))
}

func (g Grade) String() string {
	return string(g)
}

func joinGrades() string {
	names := make([]string, len(grades))
	for i, g := range grades {
		names[i] = string(g)
	}
	return strings.Join(names, ", ")
}

// DescriptionSuggestions are the roll descriptions offered by the order
// form. Descriptions are free text and are never checked against this list.
func DescriptionSuggestions() []string {
	return []string{"SHAFT", "ROLL", "REEL", "CASTING"}
}
