package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kumardhruv88/result-analytics/internal/types"
)

// Required result sheet columns. Name and Credits have accepted aliases,
// see columnAliases.
var requiredColumns = []string{"Roll_Number", "Name", "Branch", "CGPA", "Result_Status"}

// columnAliases maps alternate header names emitted by newer extraction
// runs onto the canonical names.
var columnAliases = map[string]string{
	"Student_Name":  "Name",
	"Total_Credits": "Credits",
}

// maxSubjectColumns bounds the Subject_i_* column groups scanned per row.
const maxSubjectColumns = 7

// SchemaError reports required columns missing from the source header.
// The load aborts; no partial dataset is returned.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("result sheet is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Loader parses result sheets and serves repeated loads from a cache
// keyed by path and file modification time.
type Loader struct {
	cache *Cache
	log   *zap.Logger
}

// NewLoader builds a loader. A nil cache disables caching; a nil logger
// silences load diagnostics.
func NewLoader(cache *Cache, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{cache: cache, log: log}
}

// Load returns the dataset for path, reading and parsing the file only
// when no unexpired cache entry exists for its current modification
// time.
func (l *Loader) Load(path string) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat result sheet: %w", err)
	}
	modTime := info.ModTime()

	if l.cache != nil {
		if ds, ok := l.cache.Get(path, modTime); ok {
			return ds, nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open result sheet: %w", err)
	}
	defer f.Close()

	ds, err := l.parse(f)
	if err != nil {
		return nil, err
	}
	ds.SourcePath = path
	ds.Fingerprint = fmt.Sprintf("%s@%d", path, modTime.UnixNano())

	l.log.Info("result sheet loaded",
		zap.String("path", path),
		zap.Int("rows", ds.Stats.Rows),
		zap.Int("coercion_failures", ds.Stats.CoercionFailures),
		zap.Int("duplicate_rolls", ds.Stats.DuplicateRolls),
	)

	if l.cache != nil {
		l.cache.Put(path, modTime, ds)
	}
	return ds, nil
}

// Invalidate drops any cached dataset for path.
func (l *Loader) Invalidate(path string) {
	if l.cache != nil {
		l.cache.Invalidate(path)
	}
}

func (l *Loader) parse(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read result sheet header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if canonical, ok := columnAliases[name]; ok {
			if _, exists := cols[canonical]; !exists {
				cols[canonical] = i
			}
			continue
		}
		cols[name] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	var records []types.StudentRecord
	stats := LoadStats{}
	rowNum := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read result sheet row %d: %w", rowNum+1, err)
		}
		rowNum++

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		coerce := func(name string) *float64 {
			v, ok := parseFloat(field(name))
			if !ok {
				stats.CoercionFailures++
				l.log.Warn("non-numeric value treated as missing",
					zap.Int("row", rowNum), zap.String("column", name))
			}
			return v
		}

		rec := types.StudentRecord{
			RollNumber:   field("Roll_Number"),
			Name:         field("Name"),
			Branch:       field("Branch"),
			Section:      field("Section"),
			CGPA:         coerce("CGPA"),
			SGPA:         coerce("SGPA"),
			Credits:      coerce("Credits"),
			ResultStatus: normalizeStatus(field("Result_Status")),
		}
		if gp := coerce("Backlogs"); gp != nil {
			n := int(*gp)
			rec.Backlogs = &n
		}

		for i := 1; i <= maxSubjectColumns; i++ {
			code := field(fmt.Sprintf("Subject_%d_Code", i))
			if code == "" {
				continue
			}
			rec.Subjects = append(rec.Subjects, types.SubjectResult{
				Code:        code,
				LetterGrade: strings.ToUpper(field(fmt.Sprintf("Subject_%d_Grade", i))),
				GradePoint:  coerce(fmt.Sprintf("Subject_%d_GradePoint", i)),
				Credits:     coerce(fmt.Sprintf("Subject_%d_Credits", i)),
			})
		}

		rec.ParentBranch = rec.Branch
		rec.Specialization = rec.Branch
		if info, ok := branchFromRoll(rec.RollNumber); ok {
			rec.ParentBranch = info.Parent
			rec.Specialization = info.Specialization
		}

		records = append(records, rec)
	}

	ds := FromRecords(records)
	ds.Stats.CoercionFailures = stats.CoercionFailures
	return ds, nil
}

// parseFloat coerces a cell to a float. The bool result is false only
// for a non-empty value that failed to parse; blanks and the usual
// missing-data markers count as cleanly missing. ParseFloat accepts
// spellings of NaN and Inf, which are never valid grades, so those
// parse results are rejected too.
func parseFloat(s string) (*float64, bool) {
	switch s {
	case "", "-", "NA", "N/A", "NaN":
		return nil, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return &v, true
}

func normalizeStatus(s string) types.ResultStatus {
	return types.ResultStatus(strings.ToUpper(strings.TrimSpace(s)))
}
