package types

// ResultStatus is the declared pass/fail outcome for a semester snapshot.
type ResultStatus string

const (
	StatusPass ResultStatus = "PASS"
	StatusFail ResultStatus = "FAIL"
)

// SubjectResult is one subject outcome within a student's semester record.
type SubjectResult struct {
	Code        string   `json:"code"`
	LetterGrade string   `json:"letter_grade"`
	GradePoint  *float64 `json:"grade_point,omitempty"`
	Credits     *float64 `json:"credits,omitempty"`
}

// StudentRecord is one row of the result sheet: one student, one semester.
// Optional numerics are nil when the source value was missing or failed
// numeric coercion.
type StudentRecord struct {
	RollNumber     string          `json:"roll_number"`
	Name           string          `json:"name"`
	Branch         string          `json:"branch"`
	ParentBranch   string          `json:"parent_branch,omitempty"`
	Specialization string          `json:"specialization,omitempty"`
	Section        string          `json:"section,omitempty"`
	CGPA           *float64        `json:"cgpa,omitempty"`
	SGPA           *float64        `json:"sgpa,omitempty"`
	Credits        *float64        `json:"credits,omitempty"`
	Backlogs       *int            `json:"backlogs,omitempty"`
	ResultStatus   ResultStatus    `json:"result_status"`
	Subjects       []SubjectResult `json:"subjects,omitempty"`
}

// Passed reports whether the declared result status is a pass.
func (r *StudentRecord) Passed() bool {
	return r.ResultStatus == StatusPass
}

// HasFailingSubject reports whether any subject carries a failing grade.
// A subject fails with the letter grade F, an absence marker, or a zero
// grade point.
func (r *StudentRecord) HasFailingSubject() bool {
	for _, s := range r.Subjects {
		if IsFailingGrade(s.LetterGrade) {
			return true
		}
		if s.GradePoint != nil && *s.GradePoint == 0 {
			return true
		}
	}
	return false
}

// IsFailingGrade reports whether a letter grade counts as a fail.
func IsFailingGrade(grade string) bool {
	switch grade {
	case "F", "AB", "RA", "RL":
		return true
	}
	return false
}
