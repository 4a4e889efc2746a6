package dataset

import (
	"sort"
	"strings"
	"time"

	"github.com/kumardhruv88/result-analytics/internal/types"
)

// LoadStats counts data-quality issues seen while parsing a source file.
// The issues do not abort the load; they are surfaced for logging.
type LoadStats struct {
	Rows             int `json:"rows"`
	CoercionFailures int `json:"coercion_failures"`
	DuplicateRolls   int `json:"duplicate_rolls"`
}

// Dataset is an immutable snapshot of one parsed result sheet, plus
// lookup indices. It is safe for concurrent readers; nothing mutates it
// after construction.
type Dataset struct {
	Records     []types.StudentRecord
	SourcePath  string
	Fingerprint string
	LoadedAt    time.Time
	Stats       LoadStats

	byRoll   map[string]int
	byBranch map[string][]int
}

// FromRecords builds a dataset from records, indexing by roll number
// and by branch. Repeats of a roll number are dropped entirely, first
// occurrence wins, so totals, aggregates and rankings never count the
// same student twice. Stats.Rows keeps the source row count.
func FromRecords(records []types.StudentRecord) *Dataset {
	ds := &Dataset{
		Records:  make([]types.StudentRecord, 0, len(records)),
		LoadedAt: time.Now(),
		byRoll:   make(map[string]int, len(records)),
		byBranch: make(map[string][]int),
	}
	for _, r := range records {
		if _, dup := ds.byRoll[r.RollNumber]; dup {
			ds.Stats.DuplicateRolls++
			continue
		}
		i := len(ds.Records)
		ds.byRoll[r.RollNumber] = i
		ds.byBranch[r.Branch] = append(ds.byBranch[r.Branch], i)
		ds.Records = append(ds.Records, r)
	}
	ds.Stats.Rows = len(records)
	return ds
}

// Len returns the number of records in the snapshot.
func (ds *Dataset) Len() int {
	return len(ds.Records)
}

// ByRoll looks up a student by exact roll number.
func (ds *Dataset) ByRoll(roll string) (*types.StudentRecord, bool) {
	i, ok := ds.byRoll[roll]
	if !ok {
		return nil, false
	}
	return &ds.Records[i], true
}

// Branches returns the distinct branch names, sorted.
func (ds *Dataset) Branches() []string {
	names := make([]string, 0, len(ds.byBranch))
	for name := range ds.byBranch {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BranchRecords returns the records belonging to one branch, in source
// order. The result is nil for an unknown branch.
func (ds *Dataset) BranchRecords(branch string) []types.StudentRecord {
	idx, ok := ds.byBranch[branch]
	if !ok {
		return nil
	}
	out := make([]types.StudentRecord, 0, len(idx))
	for _, i := range idx {
		out = append(out, ds.Records[i])
	}
	return out
}

// FilterOptions narrows a dataset to matching records. Zero values mean
// "no constraint"; the CGPA range defaults to the full 0-10 domain.
type FilterOptions struct {
	Branch       string
	Section      string
	MinCGPA      float64
	MaxCGPA      float64
	ResultStatus types.ResultStatus
}

// Filter returns the records matching the given options. Records with a
// missing CGPA are excluded only when a CGPA range tighter than the full
// domain is requested.
func (ds *Dataset) Filter(opts FilterOptions) []types.StudentRecord {
	minCGPA, maxCGPA := opts.MinCGPA, opts.MaxCGPA
	if minCGPA == 0 && maxCGPA == 0 {
		maxCGPA = 10
	}
	rangeActive := minCGPA > 0 || maxCGPA < 10

	var out []types.StudentRecord
	for _, r := range ds.Records {
		if opts.Branch != "" && r.Branch != opts.Branch {
			continue
		}
		if opts.Section != "" && r.Section != opts.Section {
			continue
		}
		if opts.ResultStatus != "" && r.ResultStatus != opts.ResultStatus {
			continue
		}
		if r.CGPA == nil {
			if rangeActive {
				continue
			}
		} else if *r.CGPA < minCGPA || *r.CGPA > maxCGPA {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Search matches students whose roll number or name contains the term,
// case-insensitively. An empty term or no match yields an empty result,
// never an error.
func (ds *Dataset) Search(term string) []types.StudentRecord {
	term = strings.ToUpper(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	var out []types.StudentRecord
	for _, r := range ds.Records {
		if strings.Contains(strings.ToUpper(r.RollNumber), term) ||
			strings.Contains(strings.ToUpper(r.Name), term) {
			out = append(out, r)
		}
	}
	return out
}
