package analytics

import (
	"errors"

	"github.com/kumardhruv88/result-analytics/internal/dataset"
	"github.com/kumardhruv88/result-analytics/internal/types"
)

// ErrNotFound is returned when a roll number is absent from the dataset.
var ErrNotFound = errors.New("student not found")

// SubjectComparison compares one of a student's subject results against
// branch peers who took the same subject.
type SubjectComparison struct {
	Code        string   `json:"code"`
	LetterGrade string   `json:"letter_grade"`
	GradePoint  *float64 `json:"grade_point,omitempty"`
	PeerMean    float64  `json:"peer_mean"`
	PeerMax     float64  `json:"peer_max"`
}

// StudentReport is the full analytics view of one student: the record,
// rank within the cohort and branch, percentile, and per-subject peer
// comparison.
type StudentReport struct {
	Student       types.StudentRecord `json:"student"`
	OverallRank   int                 `json:"overall_rank"`
	TotalStudents int                 `json:"total_students"`
	BranchRank    int                 `json:"branch_rank"`
	BranchTotal   int                 `json:"branch_total"`
	Percentile    float64             `json:"percentile"`
	Subjects      []SubjectComparison `json:"subjects,omitempty"`
}

// BuildStudentReport assembles the report for one roll number. It fails
// with ErrNotFound for an unknown roll; a student without a valid CGPA
// gets zero ranks but keeps the subject comparison.
func BuildStudentReport(ds *dataset.Dataset, roll string) (*StudentReport, error) {
	student, ok := ds.ByRoll(roll)
	if !ok {
		return nil, ErrNotFound
	}

	report := &StudentReport{Student: *student}

	if student.CGPA != nil {
		groups, err := Ranking(ds, ScopeAll)
		if err == nil && len(groups) == 1 {
			for _, rs := range groups[0].Students {
				if rs.RollNumber == roll {
					report.OverallRank = rs.Rank
					report.Percentile = rs.Percentile
					break
				}
			}
			report.TotalStudents = len(groups[0].Students)
		}

		branchGroups, err := Ranking(ds, ScopeBranch)
		if err == nil {
			for _, g := range branchGroups {
				if g.Key != student.Branch {
					continue
				}
				report.BranchTotal = len(g.Students)
				for _, rs := range g.Students {
					if rs.RollNumber == roll {
						report.BranchRank = rs.Rank
						break
					}
				}
			}
		}
	}

	peers := ds.BranchRecords(student.Branch)
	for _, sub := range student.Subjects {
		cmp := SubjectComparison{
			Code:        sub.Code,
			LetterGrade: sub.LetterGrade,
			GradePoint:  sub.GradePoint,
		}
		var sum, max float64
		count := 0
		for i := range peers {
			for _, ps := range peers[i].Subjects {
				if ps.Code != sub.Code || ps.GradePoint == nil {
					continue
				}
				sum += *ps.GradePoint
				if count == 0 || *ps.GradePoint > max {
					max = *ps.GradePoint
				}
				count++
			}
		}
		if count > 0 {
			cmp.PeerMean = sum / float64(count)
			cmp.PeerMax = max
		}
		report.Subjects = append(report.Subjects, cmp)
	}

	return report, nil
}
