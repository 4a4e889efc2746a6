package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumardhruv88/result-analytics/internal/dataset"
	"github.com/kumardhruv88/result-analytics/internal/types"
)

func backlog(n int) *int { return &n }

func aggregateDataset() *dataset.Dataset {
	return dataset.FromRecords([]types.StudentRecord{
		{
			RollNumber: "R1", Name: "Asha", Branch: "CSE", CGPA: ptr(9.0),
			ResultStatus: types.StatusPass,
			Subjects: []types.SubjectResult{
				{Code: "CS101", LetterGrade: "A+", GradePoint: ptr(10)},
				{Code: "MA101", LetterGrade: "B", GradePoint: ptr(8)},
			},
		},
		{
			RollNumber: "R2", Name: "Vikram", Branch: "CSE", CGPA: ptr(6.0),
			ResultStatus: types.StatusFail, Backlogs: backlog(2),
			Subjects: []types.SubjectResult{
				{Code: "CS101", LetterGrade: "F", GradePoint: ptr(0)},
				{Code: "MA101", LetterGrade: "C", GradePoint: ptr(6)},
			},
		},
		{
			RollNumber: "R3", Name: "Meera", Branch: "ECE", CGPA: ptr(8.0),
			ResultStatus: types.StatusPass,
			Subjects: []types.SubjectResult{
				{Code: "MA101", LetterGrade: "A", GradePoint: ptr(9)},
			},
		},
	})
}

func TestBranchAggregateCountsSumToTotal(t *testing.T) {
	ds := aggregateDataset()
	stats, err := BranchAggregate(ds)
	require.NoError(t, err)

	total := 0
	for _, s := range stats {
		total += s.Students
	}
	assert.Equal(t, ds.Len(), total)
}

func TestBranchAggregateValues(t *testing.T) {
	stats, err := BranchAggregate(aggregateDataset())
	require.NoError(t, err)
	require.Len(t, stats, 2)

	cse := stats[0]
	require.Equal(t, "CSE", cse.Branch)
	assert.Equal(t, 2, cse.Students)
	assert.InDelta(t, 50.0, cse.PassRate, 1e-9)
	assert.InDelta(t, 7.5, cse.MeanCGPA, 1e-9)
	assert.InDelta(t, 7.5, cse.MedianCGPA, 1e-9)
	assert.InDelta(t, 9.0, cse.MaxCGPA, 1e-9)
	assert.InDelta(t, 6.0, cse.MinCGPA, 1e-9)
	assert.Equal(t, 2, cse.TotalBacklogs)

	ece := stats[1]
	require.Equal(t, "ECE", ece.Branch)
	assert.InDelta(t, 100.0, ece.PassRate, 1e-9)
	assert.InDelta(t, 0.0, ece.StdDevCGPA, 1e-9)
}

func TestBranchAggregateEmptyDataset(t *testing.T) {
	_, err := BranchAggregate(dataset.FromRecords(nil))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestSubjectAggregate(t *testing.T) {
	stats, err := SubjectAggregate(aggregateDataset(), 2)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// CS101 averages (10+0)/2 = 5, MA101 (8+6+9)/3; CS101 is harder
	// and sorts first.
	cs := stats[0]
	require.Equal(t, "CS101", cs.Code)
	assert.Equal(t, 2, cs.Students)
	assert.InDelta(t, 5.0, cs.MeanGradePoint, 1e-9)
	assert.InDelta(t, 0.5, cs.DifficultyIndex, 1e-9)
	assert.InDelta(t, 50.0, cs.PassRate, 1e-9)
	assert.Equal(t, map[string]int{"A+": 1, "F": 1}, cs.GradeHistogram)

	require.Len(t, cs.TopPerformers, 2)
	assert.Equal(t, "R1", cs.TopPerformers[0].RollNumber)
	assert.InDelta(t, 10.0, cs.TopPerformers[0].GradePoint, 1e-9)

	ma := stats[1]
	require.Equal(t, "MA101", ma.Code)
	assert.Equal(t, 3, ma.Students)
	assert.InDelta(t, 100.0, ma.PassRate, 1e-9)
	// topK = 2 trims the list; the best two grade points survive.
	require.Len(t, ma.TopPerformers, 2)
	assert.Equal(t, "R3", ma.TopPerformers[0].RollNumber)
	assert.Equal(t, "R1", ma.TopPerformers[1].RollNumber)
}

func TestSubjectAggregateUngradedEntryIsNotAPass(t *testing.T) {
	ds := dataset.FromRecords([]types.StudentRecord{
		{RollNumber: "R1", Subjects: []types.SubjectResult{{Code: "CS101", LetterGrade: "A", GradePoint: ptr(9)}}},
		// Subject listed but never graded: no letter, no grade point.
		{RollNumber: "R2", Subjects: []types.SubjectResult{{Code: "CS101"}}},
	})

	stats, err := SubjectAggregate(ds, 5)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].Students)
	assert.InDelta(t, 50.0, stats[0].PassRate, 1e-9)
}

func TestSubjectAggregateTopperTieBreak(t *testing.T) {
	ds := dataset.FromRecords([]types.StudentRecord{
		{RollNumber: "R2", Subjects: []types.SubjectResult{{Code: "CS101", LetterGrade: "A", GradePoint: ptr(9)}}},
		{RollNumber: "R1", Subjects: []types.SubjectResult{{Code: "CS101", LetterGrade: "A", GradePoint: ptr(9)}}},
	})

	stats, err := SubjectAggregate(ds, 5)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.Len(t, stats[0].TopPerformers, 2)
	assert.Equal(t, "R1", stats[0].TopPerformers[0].RollNumber)
	assert.Equal(t, "R2", stats[0].TopPerformers[1].RollNumber)
}
