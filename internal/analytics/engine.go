// Package analytics computes derived statistics over a loaded result
// dataset: ranks and percentiles, branch and subject aggregates, grade
// histograms, correlation matrices, and descriptive summaries. Every
// operation is a pure function of the dataset it is given.
package analytics

import (
	"errors"

	"github.com/kumardhruv88/result-analytics/internal/dataset"
	"github.com/kumardhruv88/result-analytics/internal/types"
)

// ErrNoData is returned when an aggregate is requested over an empty
// dataset.
var ErrNoData = errors.New("dataset has no records")

// EliteThreshold is the CGPA at or above which a student counts toward
// the elite KPI on the overview.
const EliteThreshold = 9.0

// Overview holds the dashboard-wide KPIs.
type Overview struct {
	TotalStudents        int     `json:"total_students"`
	MeanCGPA             float64 `json:"mean_cgpa"`
	MedianCGPA           float64 `json:"median_cgpa"`
	StdDevCGPA           float64 `json:"std_dev_cgpa"`
	MinCGPA              float64 `json:"min_cgpa"`
	MaxCGPA              float64 `json:"max_cgpa"`
	PassCount            int     `json:"pass_count"`
	FailCount            int     `json:"fail_count"`
	PassRate             float64 `json:"pass_rate"`
	EliteCount           int     `json:"elite_count"`
	TotalBacklogs        int     `json:"total_backlogs"`
	StudentsWithBacklogs int     `json:"students_with_backlogs"`
	StatusMismatches     int     `json:"status_mismatches"`
}

// OverallStats computes the overview KPIs for the whole dataset.
//
// StatusMismatches counts records whose declared Result_Status disagrees
// with their subject grades and backlogs. The declared status is still
// trusted everywhere else; the counter is a data-quality signal only.
func OverallStats(ds *dataset.Dataset) (*Overview, error) {
	if ds.Len() == 0 {
		return nil, ErrNoData
	}

	o := &Overview{TotalStudents: ds.Len()}
	var cgpas []float64
	for i := range ds.Records {
		r := &ds.Records[i]
		if r.CGPA != nil {
			cgpas = append(cgpas, *r.CGPA)
			if *r.CGPA >= EliteThreshold {
				o.EliteCount++
			}
		}
		switch r.ResultStatus {
		case types.StatusPass:
			o.PassCount++
		case types.StatusFail:
			o.FailCount++
		}
		if r.Backlogs != nil && *r.Backlogs > 0 {
			o.TotalBacklogs += *r.Backlogs
			o.StudentsWithBacklogs++
		}
		if statusMismatched(r) {
			o.StatusMismatches++
		}
	}
	o.PassRate = float64(o.PassCount) / float64(ds.Len()) * 100

	if s, err := Describe(cgpas); err == nil {
		o.MeanCGPA = s.Mean
		o.MedianCGPA = s.Median
		o.StdDevCGPA = s.StdDev
		o.MinCGPA = s.Min
		o.MaxCGPA = s.Max
	}
	return o, nil
}

func statusMismatched(r *types.StudentRecord) bool {
	failExpected := r.HasFailingSubject() || (r.Backlogs != nil && *r.Backlogs > 0)
	switch r.ResultStatus {
	case types.StatusPass:
		return failExpected
	case types.StatusFail:
		return !failExpected
	}
	return false
}

// HistogramBin is one half-open bucket [Low, High) of a histogram; the
// last bin is closed on the right.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// GPAHistogram buckets valid CGPAs into equal-width bins over the 0-10
// domain. Values outside the domain are clamped into the edge bins.
func GPAHistogram(ds *dataset.Dataset, bins int) ([]HistogramBin, error) {
	if ds.Len() == 0 {
		return nil, ErrNoData
	}
	if bins <= 0 {
		bins = 10
	}

	width := 10.0 / float64(bins)
	out := make([]HistogramBin, bins)
	for i := range out {
		out[i].Low = float64(i) * width
		out[i].High = float64(i+1) * width
	}
	for i := range ds.Records {
		if ds.Records[i].CGPA == nil {
			continue
		}
		b := int(*ds.Records[i].CGPA / width)
		if b < 0 {
			b = 0
		}
		if b >= bins {
			b = bins - 1
		}
		out[b].Count++
	}
	return out, nil
}

// Band is one CGPA performance band.
type Band struct {
	Name     string  `json:"name"`
	MinCGPA  float64 `json:"min_cgpa"`
	MaxCGPA  float64 `json:"max_cgpa"`
	Count    int     `json:"count"`
	MeanCGPA float64 `json:"mean_cgpa"`
	Share    float64 `json:"share"`
}

// PerformanceBands buckets students into the three advisory bands used
// on the clustering view: High (CGPA >= 8), Average (6 <= CGPA < 8) and
// At-Risk (CGPA < 6). Share is each band's percentage of students with
// a valid CGPA.
func PerformanceBands(ds *dataset.Dataset) ([]Band, error) {
	if ds.Len() == 0 {
		return nil, ErrNoData
	}

	bands := []Band{
		{Name: "High Performers", MinCGPA: 8, MaxCGPA: 10},
		{Name: "Average Performers", MinCGPA: 6, MaxCGPA: 8},
		{Name: "At-Risk Students", MinCGPA: 0, MaxCGPA: 6},
	}
	sums := make([]float64, len(bands))
	total := 0
	for i := range ds.Records {
		if ds.Records[i].CGPA == nil {
			continue
		}
		cgpa := *ds.Records[i].CGPA
		total++
		for b := range bands {
			if cgpa >= bands[b].MinCGPA {
				bands[b].Count++
				sums[b] += cgpa
				break
			}
		}
	}
	for b := range bands {
		if bands[b].Count > 0 {
			bands[b].MeanCGPA = sums[b] / float64(bands[b].Count)
		}
		if total > 0 {
			bands[b].Share = float64(bands[b].Count) / float64(total) * 100
		}
	}
	return bands, nil
}
