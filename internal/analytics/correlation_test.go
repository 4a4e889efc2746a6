package analytics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumardhruv88/result-analytics/internal/dataset"
	"github.com/kumardhruv88/result-analytics/internal/types"
)

func intPtr(v int) *int { return &v }

func correlationDataset() *dataset.Dataset {
	// SGPA tracks CGPA exactly; backlogs move in the opposite
	// direction; credits are constant.
	return dataset.FromRecords([]types.StudentRecord{
		{RollNumber: "R1", CGPA: ptr(9), SGPA: ptr(9), Backlogs: intPtr(0), Credits: ptr(22)},
		{RollNumber: "R2", CGPA: ptr(8), SGPA: ptr(8), Backlogs: intPtr(1), Credits: ptr(22)},
		{RollNumber: "R3", CGPA: ptr(7), SGPA: ptr(7), Backlogs: intPtr(2), Credits: ptr(22)},
		{RollNumber: "R4", CGPA: ptr(6), SGPA: ptr(6), Backlogs: intPtr(3), Credits: ptr(22)},
	})
}

func TestCorrelationMatrixPerfectAndInverse(t *testing.T) {
	corr, err := CorrelationMatrix(correlationDataset(), []string{FieldCGPA, FieldSGPA, FieldBacklogs})
	require.NoError(t, err)

	// Diagonal is 1 for fields with variance.
	for i := range corr.Fields {
		assert.InDelta(t, 1.0, corr.Matrix[i][i], 1e-9)
	}

	// cgpa vs sgpa is a perfect positive correlation, cgpa vs
	// backlogs a perfect negative one.
	assert.InDelta(t, 1.0, corr.Matrix[0][1], 1e-9)
	assert.InDelta(t, -1.0, corr.Matrix[0][2], 1e-9)

	// Symmetry.
	for i := range corr.Matrix {
		for j := range corr.Matrix {
			assert.InDelta(t, corr.Matrix[i][j], corr.Matrix[j][i], 1e-12)
		}
	}
}

func TestCorrelationMatrixZeroVarianceIsNaN(t *testing.T) {
	corr, err := CorrelationMatrix(correlationDataset(), []string{FieldCGPA, FieldCredits})
	require.NoError(t, err)

	assert.True(t, math.IsNaN(corr.Matrix[0][1]))
	assert.True(t, math.IsNaN(corr.Matrix[1][1]))
	assert.InDelta(t, 1.0, corr.Matrix[0][0], 1e-9)
}

func TestCorrelationMatrixSkipsMissingPairwise(t *testing.T) {
	ds := dataset.FromRecords([]types.StudentRecord{
		{RollNumber: "R1", CGPA: ptr(9), SGPA: ptr(9)},
		{RollNumber: "R2", CGPA: ptr(8), SGPA: nil},
		{RollNumber: "R3", CGPA: ptr(7), SGPA: ptr(7)},
	})

	corr, err := CorrelationMatrix(ds, []string{FieldCGPA, FieldSGPA})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, corr.Matrix[0][1], 1e-9)
}

func TestCorrelationMatrixRejectsBadFields(t *testing.T) {
	ds := correlationDataset()

	_, err := CorrelationMatrix(ds, []string{FieldCGPA})
	assert.Error(t, err)

	_, err = CorrelationMatrix(ds, []string{FieldCGPA, "shoe_size"})
	assert.Error(t, err)
}

func TestCorrelationJSONEncodesNaNAsNull(t *testing.T) {
	corr, err := CorrelationMatrix(correlationDataset(), []string{FieldCGPA, FieldCredits})
	require.NoError(t, err)

	data, err := json.Marshal(corr)
	require.NoError(t, err)

	var decoded struct {
		Fields []string     `json:"fields"`
		Matrix [][]*float64 `json:"matrix"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded.Matrix[0][1])
	require.NotNil(t, decoded.Matrix[0][0])
	assert.InDelta(t, 1.0, *decoded.Matrix[0][0], 1e-9)
}
