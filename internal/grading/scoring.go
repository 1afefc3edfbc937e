// ============================================================================
// internal/grading/scoring.go
// Pure scoring engine: component validation, total, letter grade
// ============================================================================

package grading

import (
	"campusgrades/internal/shared"
)

// Components are the four raw grade components of one student in one
// subject. Each is bounded to [0,100] at the request layer; the scoring
// engine enforces the tighter per-subject ceilings.
type Components struct {
	Midterm   float64 `json:"midtermGrade" validate:"min=0,max=100"`
	Practical float64 `json:"practicalGrade" validate:"min=0,max=100"`
	YearsWork float64 `json:"yearsWorkGrade" validate:"min=0,max=100"`
	Final     float64 `json:"finalGrade" validate:"min=0,max=100"`
}

// Score validates the components against the subject's configured maxima and
// derives the total and letter grade. Components are checked in a fixed
// order (midterm, practical, years work, final) and the first violation
// wins, so clients always see a deterministic error for a given payload.
// Both the create and update paths go through here; there is no second
// scoring implementation anywhere.
func Score(c Components, subject *shared.Subject) (total float64, letter string, err error) {
	checks := []struct {
		field   string
		value   float64
		ceiling *float64
	}{
		{"midtermGrade", c.Midterm, subject.MidtermMax},
		{"practicalGrade", c.Practical, subject.PracticalMax},
		{"yearsWorkGrade", c.YearsWork, subject.YearsWorkMax},
		{"finalGrade", c.Final, subject.FinalMax},
	}
	for _, check := range checks {
		if check.ceiling != nil && check.value > *check.ceiling {
			return 0, "", shared.ComponentExceedsMaximum(check.field, *check.ceiling)
		}
	}

	total = c.Midterm + c.Practical + c.YearsWork + c.Final
	if subject.TotalMax != nil && total > *subject.TotalMax {
		return 0, "", shared.TotalExceedsMaximum(*subject.TotalMax)
	}

	return total, LetterFor(total), nil
}

// LetterFor maps a total grade to its letter on the fixed breakpoint scale.
// Breakpoints are inclusive: a total of exactly 80 is an A.
func LetterFor(total float64) string {
	switch {
	case total >= 80:
		return shared.GradeA
	case total >= 75:
		return shared.GradeBPlus
	case total >= 65:
		return shared.GradeB
	case total >= 60:
		return shared.GradeCPlus
	case total >= 50:
		return shared.GradeC
	default:
		return shared.GradeF
	}
}
