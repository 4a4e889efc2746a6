package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumardhruv88/result-analytics/internal/dataset"
	"github.com/kumardhruv88/result-analytics/internal/types"
)

func ptr(v float64) *float64 { return &v }

func rankingDataset() *dataset.Dataset {
	return dataset.FromRecords([]types.StudentRecord{
		{RollNumber: "R1", Name: "Asha", Branch: "CSE", Section: "A", CGPA: ptr(9.0), ResultStatus: types.StatusPass},
		{RollNumber: "R2", Name: "Vikram", Branch: "ECE", Section: "A", CGPA: ptr(7.5), ResultStatus: types.StatusPass},
		{RollNumber: "R3", Name: "Meera", Branch: "CSE", Section: "B", CGPA: ptr(9.0), ResultStatus: types.StatusPass},
	})
}

func TestRankingDoesNotRepeatDuplicateRolls(t *testing.T) {
	ds := dataset.FromRecords([]types.StudentRecord{
		{RollNumber: "R1", Name: "Asha", Branch: "CSE", CGPA: ptr(9.0), ResultStatus: types.StatusPass},
		{RollNumber: "R1", Name: "Asha Repeat", Branch: "CSE", CGPA: ptr(8.0), ResultStatus: types.StatusPass},
		{RollNumber: "R2", Name: "Vikram", Branch: "CSE", CGPA: ptr(7.0), ResultStatus: types.StatusPass},
	})

	overview, err := OverallStats(ds)
	require.NoError(t, err)
	assert.Equal(t, 2, overview.TotalStudents)

	groups, err := Ranking(ds, ScopeAll)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Students, 2)
	assert.Equal(t, "R1", groups[0].Students[0].RollNumber)
	assert.Equal(t, "R2", groups[0].Students[1].RollNumber)
}

func TestRankingTiePolicy(t *testing.T) {
	groups, err := Ranking(rankingDataset(), ScopeAll)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	students := groups[0].Students
	require.Len(t, students, 3)

	// CGPAs [9.0, 7.5, 9.0]: equal CGPAs are ordered by roll number,
	// so R1 and R3 take ranks 1 and 2 and R2 takes rank 3.
	assert.Equal(t, "R1", students[0].RollNumber)
	assert.Equal(t, 1, students[0].Rank)
	assert.Equal(t, "R3", students[1].RollNumber)
	assert.Equal(t, 2, students[1].Rank)
	assert.Equal(t, "R2", students[2].RollNumber)
	assert.Equal(t, 3, students[2].Rank)
}

func TestRankingIsPermutationWithMonotonicPercentile(t *testing.T) {
	groups, err := Ranking(rankingDataset(), ScopeAll)
	require.NoError(t, err)

	students := groups[0].Students
	seen := make(map[int]bool)
	for i, s := range students {
		assert.False(t, seen[s.Rank], "duplicate rank %d", s.Rank)
		seen[s.Rank] = true
		assert.GreaterOrEqual(t, s.Rank, 1)
		assert.LessOrEqual(t, s.Rank, len(students))

		if i > 0 {
			assert.LessOrEqual(t, s.Percentile, students[i-1].Percentile)
		}
	}

	// Rank 1 holds the 100th percentile.
	assert.InDelta(t, 100.0, students[0].Percentile, 1e-9)
}

func TestRankingByBranchScope(t *testing.T) {
	groups, err := Ranking(rankingDataset(), ScopeBranch)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "CSE", groups[0].Key)
	assert.Len(t, groups[0].Students, 2)
	assert.Equal(t, "ECE", groups[1].Key)
	require.Len(t, groups[1].Students, 1)
	assert.Equal(t, 1, groups[1].Students[0].Rank)
	assert.InDelta(t, 100.0, groups[1].Students[0].Percentile, 1e-9)
}

func TestRankingUnknownScope(t *testing.T) {
	_, err := Ranking(rankingDataset(), Scope("cohort"))
	assert.Error(t, err)
}

func TestRankingSkipsMissingCGPA(t *testing.T) {
	ds := dataset.FromRecords([]types.StudentRecord{
		{RollNumber: "R1", CGPA: ptr(8)},
		{RollNumber: "R2", CGPA: nil},
	})

	groups, err := Ranking(ds, ScopeAll)
	require.NoError(t, err)
	assert.Len(t, groups[0].Students, 1)
}

func TestRankingEmptyDataset(t *testing.T) {
	_, err := Ranking(dataset.FromRecords(nil), ScopeAll)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestTopPerformers(t *testing.T) {
	ds := rankingDataset()

	top, err := TopPerformers(ds, 2, "")
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "R1", top[0].RollNumber)
	assert.Equal(t, "R3", top[1].RollNumber)
	assert.Equal(t, 1, top[0].Rank)
	assert.Equal(t, 2, top[1].Rank)

	cse, err := TopPerformers(ds, 10, "CSE")
	require.NoError(t, err)
	require.Len(t, cse, 2)
	assert.Equal(t, "R1", cse[0].RollNumber)
}
