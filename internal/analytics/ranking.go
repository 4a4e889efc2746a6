package analytics

import (
	"fmt"
	"sort"

	"github.com/kumardhruv88/result-analytics/internal/dataset"
	"github.com/kumardhruv88/result-analytics/internal/types"
)

// Scope selects the grouping for rank computation.
type Scope string

const (
	ScopeAll     Scope = "all"
	ScopeBranch  Scope = "branch"
	ScopeSection Scope = "section"
)

// RankedStudent is one row of a ranking table. Rank is 1-based within
// its group; Percentile is 100 * (1 - (rank-1)/N).
type RankedStudent struct {
	RollNumber string  `json:"roll_number"`
	Name       string  `json:"name"`
	Branch     string  `json:"branch"`
	Section    string  `json:"section,omitempty"`
	CGPA       float64 `json:"cgpa"`
	Rank       int     `json:"rank"`
	Percentile float64 `json:"percentile"`
}

// RankGroup is the ranking of one scope group (for ScopeAll the single
// group has an empty key).
type RankGroup struct {
	Key      string          `json:"key,omitempty"`
	Students []RankedStudent `json:"students"`
}

// Ranking orders students by CGPA descending within each group of the
// given scope. Ties are broken by ascending roll number so the order is
// a documented, reproducible total order: equal CGPAs get distinct
// consecutive ranks in roll-number order. Students without a valid CGPA
// are excluded.
func Ranking(ds *dataset.Dataset, scope Scope) ([]RankGroup, error) {
	if ds.Len() == 0 {
		return nil, ErrNoData
	}

	var keyOf func(*types.StudentRecord) string
	switch scope {
	case ScopeAll:
		keyOf = func(*types.StudentRecord) string { return "" }
	case ScopeBranch:
		keyOf = func(r *types.StudentRecord) string { return r.Branch }
	case ScopeSection:
		keyOf = func(r *types.StudentRecord) string { return r.Section }
	default:
		return nil, fmt.Errorf("unknown ranking scope %q", scope)
	}

	groups := make(map[string][]RankedStudent)
	for i := range ds.Records {
		r := &ds.Records[i]
		if r.CGPA == nil {
			continue
		}
		key := keyOf(r)
		groups[key] = append(groups[key], RankedStudent{
			RollNumber: r.RollNumber,
			Name:       r.Name,
			Branch:     r.Branch,
			Section:    r.Section,
			CGPA:       *r.CGPA,
		})
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]RankGroup, 0, len(keys))
	for _, key := range keys {
		students := groups[key]
		sortByCGPADesc(students)
		n := len(students)
		for i := range students {
			students[i].Rank = i + 1
			students[i].Percentile = 100 * (1 - float64(i)/float64(n))
		}
		out = append(out, RankGroup{Key: key, Students: students})
	}
	return out, nil
}

// TopPerformers returns the best n students by CGPA, optionally limited
// to one branch, under the same CGPA-then-roll-number order as Ranking.
func TopPerformers(ds *dataset.Dataset, n int, branch string) ([]RankedStudent, error) {
	if ds.Len() == 0 {
		return nil, ErrNoData
	}
	if n <= 0 {
		n = 10
	}

	var students []RankedStudent
	for i := range ds.Records {
		r := &ds.Records[i]
		if r.CGPA == nil {
			continue
		}
		if branch != "" && r.Branch != branch {
			continue
		}
		students = append(students, RankedStudent{
			RollNumber: r.RollNumber,
			Name:       r.Name,
			Branch:     r.Branch,
			Section:    r.Section,
			CGPA:       *r.CGPA,
		})
	}
	sortByCGPADesc(students)
	if len(students) > n {
		students = students[:n]
	}
	for i := range students {
		students[i].Rank = i + 1
	}
	return students, nil
}

func sortByCGPADesc(students []RankedStudent) {
	sort.Slice(students, func(i, j int) bool {
		if students[i].CGPA != students[j].CGPA {
			return students[i].CGPA > students[j].CGPA
		}
		return students[i].RollNumber < students[j].RollNumber
	})
}
