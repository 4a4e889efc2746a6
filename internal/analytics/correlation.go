package analytics

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/kumardhruv88/result-analytics/internal/dataset"
	"github.com/kumardhruv88/result-analytics/internal/types"
)

// Numeric fields available for correlation analysis.
const (
	FieldCGPA     = "cgpa"
	FieldSGPA     = "sgpa"
	FieldBacklogs = "backlogs"
	FieldCredits  = "credits"
)

var fieldAccessors = map[string]func(*types.StudentRecord) *float64{
	FieldCGPA: func(r *types.StudentRecord) *float64 { return r.CGPA },
	FieldSGPA: func(r *types.StudentRecord) *float64 { return r.SGPA },
	FieldBacklogs: func(r *types.StudentRecord) *float64 {
		if r.Backlogs == nil {
			return nil
		}
		v := float64(*r.Backlogs)
		return &v
	},
	FieldCredits: func(r *types.StudentRecord) *float64 { return r.Credits },
}

// NumericFields lists the field names CorrelationMatrix accepts, sorted.
func NumericFields() []string {
	names := make([]string, 0, len(fieldAccessors))
	for name := range fieldAccessors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Correlation is a pairwise Pearson correlation matrix. Matrix[i][j] is
// NaN when either field i or field j has zero variance over the rows
// where both are present; JSON encoding renders NaN as null.
type Correlation struct {
	Fields []string
	Matrix [][]float64
}

// CorrelationMatrix computes pairwise Pearson correlations over the
// named numeric fields. Rows missing either value of a pair are excluded
// for that pair only.
func CorrelationMatrix(ds *dataset.Dataset, fields []string) (*Correlation, error) {
	if len(fields) < 2 {
		return nil, fmt.Errorf("correlation needs at least 2 fields, got %d", len(fields))
	}
	accessors := make([]func(*types.StudentRecord) *float64, len(fields))
	for i, name := range fields {
		acc, ok := fieldAccessors[name]
		if !ok {
			return nil, fmt.Errorf("unknown numeric field %q", name)
		}
		accessors[i] = acc
	}

	matrix := make([][]float64, len(fields))
	for i := range matrix {
		matrix[i] = make([]float64, len(fields))
	}

	for i := range fields {
		for j := i; j < len(fields); j++ {
			var xs, ys []float64
			for k := range ds.Records {
				x := accessors[i](&ds.Records[k])
				y := accessors[j](&ds.Records[k])
				if x == nil || y == nil {
					continue
				}
				xs = append(xs, *x)
				ys = append(ys, *y)
			}
			r := pearson(xs, ys)
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}

	return &Correlation{Fields: fields, Matrix: matrix}, nil
}

// pearson returns the correlation coefficient of two equal-length
// series, or NaN when either has zero variance or fewer than two points.
func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	if n < 2 {
		return math.NaN()
	}
	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var covXY, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		covXY += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return covXY / math.Sqrt(varX*varY)
}

// MarshalJSON encodes NaN cells as null so the matrix survives JSON
// transport.
func (c *Correlation) MarshalJSON() ([]byte, error) {
	rows := make([][]*float64, len(c.Matrix))
	for i, row := range c.Matrix {
		rows[i] = make([]*float64, len(row))
		for j := range row {
			if !math.IsNaN(row[j]) {
				v := row[j]
				rows[i][j] = &v
			}
		}
	}
	return json.Marshal(struct {
		Fields []string     `json:"fields"`
		Matrix [][]*float64 `json:"matrix"`
	}{Fields: c.Fields, Matrix: rows})
}
