package analytics

import (
	"sort"

	"github.com/kumardhruv88/result-analytics/internal/dataset"
	"github.com/kumardhruv88/result-analytics/internal/types"
)

// DefaultTopK is the number of top performers reported per subject.
const DefaultTopK = 5

// BranchStats aggregates one branch. PassRate is a percentage of all
// records in the branch; the CGPA statistics cover records with a valid
// CGPA.
type BranchStats struct {
	Branch        string  `json:"branch"`
	Students      int     `json:"students"`
	PassRate      float64 `json:"pass_rate"`
	MeanCGPA      float64 `json:"mean_cgpa"`
	MedianCGPA    float64 `json:"median_cgpa"`
	StdDevCGPA    float64 `json:"std_dev_cgpa"`
	MinCGPA       float64 `json:"min_cgpa"`
	MaxCGPA       float64 `json:"max_cgpa"`
	TotalBacklogs int     `json:"total_backlogs"`
}

// BranchAggregate computes per-branch statistics, sorted by branch name.
// The per-branch student counts always sum to the dataset total.
func BranchAggregate(ds *dataset.Dataset) ([]BranchStats, error) {
	if ds.Len() == 0 {
		return nil, ErrNoData
	}

	out := make([]BranchStats, 0, len(ds.Branches()))
	for _, branch := range ds.Branches() {
		records := ds.BranchRecords(branch)
		stats := BranchStats{Branch: branch, Students: len(records)}

		var cgpas []float64
		passed := 0
		for i := range records {
			if records[i].CGPA != nil {
				cgpas = append(cgpas, *records[i].CGPA)
			}
			if records[i].Passed() {
				passed++
			}
			if records[i].Backlogs != nil {
				stats.TotalBacklogs += *records[i].Backlogs
			}
		}
		stats.PassRate = float64(passed) / float64(len(records)) * 100
		if s, err := Describe(cgpas); err == nil {
			stats.MeanCGPA = s.Mean
			stats.MedianCGPA = s.Median
			stats.StdDevCGPA = s.StdDev
			stats.MinCGPA = s.Min
			stats.MaxCGPA = s.Max
		}
		out = append(out, stats)
	}
	return out, nil
}

// SubjectTopper is one entry of a subject's top-performer list.
type SubjectTopper struct {
	RollNumber  string  `json:"roll_number"`
	Name        string  `json:"name"`
	LetterGrade string  `json:"letter_grade"`
	GradePoint  float64 `json:"grade_point"`
}

// SubjectStats aggregates one subject across all students who took it.
// DifficultyIndex is 1 - meanGradePoint/10; higher means harder.
type SubjectStats struct {
	Code            string          `json:"code"`
	Students        int             `json:"students"`
	MeanGradePoint  float64         `json:"mean_grade_point"`
	PassRate        float64         `json:"pass_rate"`
	GradeHistogram  map[string]int  `json:"grade_histogram"`
	TopPerformers   []SubjectTopper `json:"top_performers"`
	DifficultyIndex float64         `json:"difficulty_index"`
}

// SubjectAggregate computes per-subject statistics over the folded
// subject results, sorted hardest-first by difficulty index (subject
// code as tiebreak). topK bounds each subject's top-performer list;
// ties are broken by ascending roll number.
func SubjectAggregate(ds *dataset.Dataset, topK int) ([]SubjectStats, error) {
	if ds.Len() == 0 {
		return nil, ErrNoData
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	type subjectAcc struct {
		stats   SubjectStats
		gpSum   float64
		gpCount int
		passed  int
		toppers []SubjectTopper
	}
	accs := make(map[string]*subjectAcc)

	for i := range ds.Records {
		r := &ds.Records[i]
		for _, sub := range r.Subjects {
			acc := accs[sub.Code]
			if acc == nil {
				acc = &subjectAcc{stats: SubjectStats{
					Code:           sub.Code,
					GradeHistogram: make(map[string]int),
				}}
				accs[sub.Code] = acc
			}
			acc.stats.Students++
			if sub.LetterGrade != "" {
				acc.stats.GradeHistogram[sub.LetterGrade]++
			}
			// A pass needs evidence: a non-failing letter grade or a
			// positive grade point. Entries with neither stay out of
			// the pass count.
			graded := sub.LetterGrade != "" || sub.GradePoint != nil
			failing := types.IsFailingGrade(sub.LetterGrade) ||
				(sub.GradePoint != nil && *sub.GradePoint == 0)
			if graded && !failing {
				acc.passed++
			}
			if sub.GradePoint != nil {
				acc.gpSum += *sub.GradePoint
				acc.gpCount++
				acc.toppers = append(acc.toppers, SubjectTopper{
					RollNumber:  r.RollNumber,
					Name:        r.Name,
					LetterGrade: sub.LetterGrade,
					GradePoint:  *sub.GradePoint,
				})
			}
		}
	}

	out := make([]SubjectStats, 0, len(accs))
	for _, acc := range accs {
		if acc.gpCount > 0 {
			acc.stats.MeanGradePoint = acc.gpSum / float64(acc.gpCount)
		}
		acc.stats.PassRate = float64(acc.passed) / float64(acc.stats.Students) * 100
		acc.stats.DifficultyIndex = 1 - acc.stats.MeanGradePoint/10

		sort.Slice(acc.toppers, func(i, j int) bool {
			if acc.toppers[i].GradePoint != acc.toppers[j].GradePoint {
				return acc.toppers[i].GradePoint > acc.toppers[j].GradePoint
			}
			return acc.toppers[i].RollNumber < acc.toppers[j].RollNumber
		})
		if len(acc.toppers) > topK {
			acc.toppers = acc.toppers[:topK]
		}
		acc.stats.TopPerformers = acc.toppers
		out = append(out, acc.stats)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DifficultyIndex != out[j].DifficultyIndex {
			return out[i].DifficultyIndex > out[j].DifficultyIndex
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}
