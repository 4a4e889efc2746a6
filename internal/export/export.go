// Package export renders analytics results and raw datasets to
// downloadable CSV, Excel and JSON bytes for the HTTP API and the
// report CLI.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/kumardhruv88/result-analytics/internal/analytics"
	"github.com/kumardhruv88/result-analytics/internal/dataset"
)

// Format selects the serialization of a report.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "xlsx"
	FormatJSON  Format = "json"
)

// Report names an exportable view of the dataset.
type Report string

const (
	ReportDataset  Report = "dataset"
	ReportBranches Report = "branches"
	ReportSubjects Report = "subjects"
	ReportToppers  Report = "toppers"
)

// ContentType returns the MIME type to serve a format with.
func (f Format) ContentType() string {
	switch f {
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatJSON:
		return "application/json"
	default:
		return "text/csv"
	}
}

// table is the flat rendering shared by the CSV and Excel writers.
type table struct {
	Sheet   string
	Headers []string
	Rows    [][]string
}

// Build renders the named report in the requested format, returning the
// bytes and a suggested file name. topN bounds the toppers report.
func Build(rep Report, format Format, ds *dataset.Dataset, topN int) ([]byte, string, error) {
	var (
		t       table
		payload any
		err     error
	)

	switch rep {
	case ReportDataset:
		t = datasetTable(ds)
		payload = ds.Records
	case ReportBranches:
		var stats []analytics.BranchStats
		stats, err = analytics.BranchAggregate(ds)
		if err == nil {
			t = branchTable(stats)
			payload = stats
		}
	case ReportSubjects:
		var stats []analytics.SubjectStats
		stats, err = analytics.SubjectAggregate(ds, 0)
		if err == nil {
			t = subjectTable(stats)
			payload = stats
		}
	case ReportToppers:
		var toppers []analytics.RankedStudent
		toppers, err = analytics.TopPerformers(ds, topN, "")
		if err == nil {
			t = topperTable(toppers)
			payload = toppers
		}
	default:
		return nil, "", fmt.Errorf("unknown report %q", rep)
	}
	if err != nil {
		return nil, "", err
	}

	name := fmt.Sprintf("%s.%s", rep, format)
	switch format {
	case FormatCSV:
		data, err := writeCSV(t)
		return data, name, err
	case FormatExcel:
		data, err := writeExcel(t)
		return data, name, err
	case FormatJSON:
		data, err := json.MarshalIndent(payload, "", "  ")
		return data, name, err
	}
	return nil, "", fmt.Errorf("unknown export format %q", format)
}

func writeCSV(t table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Headers); err != nil {
		return nil, err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func datasetTable(ds *dataset.Dataset) table {
	t := table{
		Sheet:   "Results",
		Headers: []string{"Roll_Number", "Name", "Branch", "Section", "CGPA", "SGPA", "Backlogs", "Result_Status"},
	}
	for i := range ds.Records {
		r := &ds.Records[i]
		t.Rows = append(t.Rows, []string{
			r.RollNumber, r.Name, r.Branch, r.Section,
			floatCell(r.CGPA), floatCell(r.SGPA), intCell(r.Backlogs),
			string(r.ResultStatus),
		})
	}
	return t
}

func branchTable(stats []analytics.BranchStats) table {
	t := table{
		Sheet:   "Branch Statistics",
		Headers: []string{"Branch", "Students", "Pass_Rate", "Mean_CGPA", "Median_CGPA", "Std_CGPA", "Min_CGPA", "Max_CGPA", "Total_Backlogs"},
	}
	for _, s := range stats {
		t.Rows = append(t.Rows, []string{
			s.Branch,
			strconv.Itoa(s.Students),
			formatFloat(s.PassRate),
			formatFloat(s.MeanCGPA),
			formatFloat(s.MedianCGPA),
			formatFloat(s.StdDevCGPA),
			formatFloat(s.MinCGPA),
			formatFloat(s.MaxCGPA),
			strconv.Itoa(s.TotalBacklogs),
		})
	}
	return t
}

func subjectTable(stats []analytics.SubjectStats) table {
	t := table{
		Sheet:   "Subject Statistics",
		Headers: []string{"Subject_Code", "Students", "Mean_Grade_Point", "Pass_Rate", "Difficulty_Index"},
	}
	for _, s := range stats {
		t.Rows = append(t.Rows, []string{
			s.Code,
			strconv.Itoa(s.Students),
			formatFloat(s.MeanGradePoint),
			formatFloat(s.PassRate),
			formatFloat(s.DifficultyIndex),
		})
	}
	return t
}

func topperTable(toppers []analytics.RankedStudent) table {
	t := table{
		Sheet:   "Top Performers",
		Headers: []string{"Rank", "Roll_Number", "Name", "Branch", "CGPA"},
	}
	for _, s := range toppers {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(s.Rank), s.RollNumber, s.Name, s.Branch, formatFloat(s.CGPA),
		})
	}
	return t
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
