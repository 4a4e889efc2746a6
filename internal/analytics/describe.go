package analytics

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptyInput is returned when a statistical function receives no
// values.
var ErrEmptyInput = errors.New("no values to describe")

// Summary holds the descriptive statistics of one numeric series.
// Variance is the sample variance (n-1 denominator); Skewness and
// Kurtosis are the moment coefficients g1 and excess g2, zero for a
// constant series.
type Summary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Mode     float64 `json:"mode"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Q1       float64 `json:"q1"`
	Q3       float64 `json:"q3"`
	IQR      float64 `json:"iqr"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// Describe computes descriptive statistics over values. It fails with
// ErrEmptyInput on an empty slice and never mutates its input.
func Describe(values []float64) (*Summary, error) {
	n := len(values)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var m2, m3, m4 float64
	for _, v := range sorted {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
		m4 += d * d * d * d
	}
	m2 /= float64(n)
	m3 /= float64(n)
	m4 /= float64(n)

	variance := 0.0
	if n > 1 {
		variance = m2 * float64(n) / float64(n-1)
	}

	skew, kurt := 0.0, 0.0
	if m2 > 0 {
		skew = m3 / math.Pow(m2, 1.5)
		kurt = m4/(m2*m2) - 3
	}

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)

	return &Summary{
		Count:    n,
		Mean:     mean,
		Median:   quantile(sorted, 0.5),
		Mode:     mode(values),
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Min:      sorted[0],
		Max:      sorted[n-1],
		Q1:       q1,
		Q3:       q3,
		IQR:      q3 - q1,
		Skewness: skew,
		Kurtosis: kurt,
	}, nil
}

// quantile interpolates linearly between closest ranks, matching the
// convention the dashboard's aggregates were computed with. The input
// must be sorted and non-empty.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// mode returns the most frequent value; on a frequency tie the value
// encountered first in the original order wins.
func mode(values []float64) float64 {
	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best := values[0]
	bestCount := counts[best]
	for _, v := range values {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}
