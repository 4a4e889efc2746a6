package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumardhruv88/result-analytics/internal/types"
)

func ptr(v float64) *float64 { return &v }

func sampleRecords() []types.StudentRecord {
	return []types.StudentRecord{
		{RollNumber: "2023UCS6001", Name: "Asha Rao", Branch: "CSE", Section: "A", CGPA: ptr(9.1), ResultStatus: types.StatusPass},
		{RollNumber: "2023UCS6002", Name: "Vikram Shah", Branch: "CSE", Section: "B", CGPA: ptr(5.4), ResultStatus: types.StatusFail},
		{RollNumber: "2023UEC6003", Name: "Meera Nair", Branch: "ECE", Section: "A", CGPA: ptr(7.8), ResultStatus: types.StatusPass},
		{RollNumber: "2023UIT6004", Name: "Rahul Verma", Branch: "IT", Section: "A", CGPA: nil, ResultStatus: types.StatusPass},
	}
}

func TestFromRecordsDropsDuplicateRolls(t *testing.T) {
	records := append(sampleRecords(), types.StudentRecord{
		RollNumber: "2023UCS6001", Name: "Asha Repeat", Branch: "CSE", CGPA: ptr(8.0), ResultStatus: types.StatusPass,
	})
	ds := FromRecords(records)

	assert.Equal(t, 1, ds.Stats.DuplicateRolls)
	assert.Equal(t, len(records), ds.Stats.Rows)
	assert.Equal(t, len(records)-1, ds.Len())

	// The branch index must not point at the dropped row either.
	assert.Len(t, ds.BranchRecords("CSE"), 2)

	rec, ok := ds.ByRoll("2023UCS6001")
	require.True(t, ok)
	assert.Equal(t, "Asha Rao", rec.Name)
}

func TestBranchesAndBranchRecords(t *testing.T) {
	ds := FromRecords(sampleRecords())

	assert.Equal(t, []string{"CSE", "ECE", "IT"}, ds.Branches())
	assert.Len(t, ds.BranchRecords("CSE"), 2)
	assert.Nil(t, ds.BranchRecords("ME"))
}

func TestFilter(t *testing.T) {
	ds := FromRecords(sampleRecords())

	cse := ds.Filter(FilterOptions{Branch: "CSE"})
	assert.Len(t, cse, 2)

	passed := ds.Filter(FilterOptions{ResultStatus: types.StatusPass})
	assert.Len(t, passed, 3)

	// A tightened CGPA range drops records with a missing CGPA.
	strong := ds.Filter(FilterOptions{MinCGPA: 7, MaxCGPA: 10})
	require.Len(t, strong, 2)
	for _, r := range strong {
		assert.GreaterOrEqual(t, *r.CGPA, 7.0)
	}

	sectionA := ds.Filter(FilterOptions{Section: "A", Branch: "CSE"})
	require.Len(t, sectionA, 1)
	assert.Equal(t, "2023UCS6001", sectionA[0].RollNumber)
}

func TestSearch(t *testing.T) {
	ds := FromRecords(sampleRecords())

	byName := ds.Search("meera")
	require.Len(t, byName, 1)
	assert.Equal(t, "2023UEC6003", byName[0].RollNumber)

	byRoll := ds.Search("6001")
	require.Len(t, byRoll, 1)
	assert.Equal(t, "Asha Rao", byRoll[0].Name)

	assert.Empty(t, ds.Search("nobody"))
	assert.Empty(t, ds.Search("   "))
}
