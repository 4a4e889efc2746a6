// Command report prints a terminal summary of a result sheet and
// optionally exports the aggregate reports to files.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/kumardhruv88/result-analytics/internal/analytics"
	"github.com/kumardhruv88/result-analytics/internal/dataset"
	"github.com/kumardhruv88/result-analytics/internal/export"
)

func main() {
	dataFile := flag.String("data", "data/results_data.csv", "path to the result sheet CSV")
	topN := flag.Int("top", 10, "number of top performers to show")
	exportDir := flag.String("export", "", "directory to write report files to (disabled when empty)")
	format := flag.String("format", "csv", "export format: csv, xlsx or json")
	flag.Parse()

	loader := dataset.NewLoader(nil, nil)
	ds, err := loader.Load(*dataFile)
	if err != nil {
		log.Fatalf("Error loading result sheet: %v", err)
	}

	color.Cyan("\n=== Student Result Analytics ===")
	fmt.Printf("Source: %s (%d records)\n", ds.SourcePath, ds.Len())

	printOverview(ds)
	printBranchStats(ds)
	printSubjectStats(ds)
	printToppers(ds, *topN)
	printDescriptive(ds)

	if *exportDir != "" {
		if err := exportReports(ds, *exportDir, export.Format(*format), *topN); err != nil {
			log.Fatalf("Error exporting reports: %v", err)
		}
	}
}

func printOverview(ds *dataset.Dataset) {
	stats, err := analytics.OverallStats(ds)
	if err != nil {
		log.Printf("Error computing overview: %v", err)
		return
	}

	color.Yellow("\nOverview")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Total Students", fmt.Sprintf("%d", stats.TotalStudents)})
	table.Append([]string{"Pass Rate", fmt.Sprintf("%.1f%%", stats.PassRate)})
	table.Append([]string{"Avg CGPA", fmt.Sprintf("%.2f", stats.MeanCGPA)})
	table.Append([]string{"Median CGPA", fmt.Sprintf("%.2f", stats.MedianCGPA)})
	table.Append([]string{"Std Dev CGPA", fmt.Sprintf("%.2f", stats.StdDevCGPA)})
	table.Append([]string{"Elite (9+ CGPA)", fmt.Sprintf("%d", stats.EliteCount)})
	table.Append([]string{"Total Backlogs", fmt.Sprintf("%d", stats.TotalBacklogs)})
	table.Append([]string{"Status Mismatches", fmt.Sprintf("%d", stats.StatusMismatches)})
	table.Render()
}

func printBranchStats(ds *dataset.Dataset) {
	stats, err := analytics.BranchAggregate(ds)
	if err != nil {
		log.Printf("Error computing branch statistics: %v", err)
		return
	}

	color.Yellow("\nBranch Statistics")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Branch", "Students", "Pass %", "Avg CGPA", "Median", "Std Dev", "Backlogs"})

	for _, s := range stats {
		table.Append([]string{
			s.Branch,
			fmt.Sprintf("%d", s.Students),
			fmt.Sprintf("%.1f", s.PassRate),
			fmt.Sprintf("%.2f", s.MeanCGPA),
			fmt.Sprintf("%.2f", s.MedianCGPA),
			fmt.Sprintf("%.2f", s.StdDevCGPA),
			fmt.Sprintf("%d", s.TotalBacklogs),
		})
	}

	table.Render()
}

func printSubjectStats(ds *dataset.Dataset) {
	stats, err := analytics.SubjectAggregate(ds, analytics.DefaultTopK)
	if err != nil {
		log.Printf("Error computing subject statistics: %v", err)
		return
	}
	if len(stats) == 0 {
		return
	}

	color.Yellow("\nSubject Statistics (hardest first)")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Subject", "Students", "Avg GP", "Pass %", "Difficulty"})

	for _, s := range stats {
		table.Append([]string{
			s.Code,
			fmt.Sprintf("%d", s.Students),
			fmt.Sprintf("%.2f", s.MeanGradePoint),
			fmt.Sprintf("%.1f", s.PassRate),
			fmt.Sprintf("%.3f", s.DifficultyIndex),
		})
	}

	table.Render()
}

func printToppers(ds *dataset.Dataset, n int) {
	toppers, err := analytics.TopPerformers(ds, n, "")
	if err != nil {
		log.Printf("Error computing top performers: %v", err)
		return
	}

	color.Yellow("\nTop %d Performers", n)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Rank", "Roll Number", "Name", "Branch", "CGPA"})

	for _, s := range toppers {
		table.Append([]string{
			fmt.Sprintf("%d", s.Rank),
			s.RollNumber,
			s.Name,
			s.Branch,
			fmt.Sprintf("%.2f", s.CGPA),
		})
	}

	table.Render()
}

func printDescriptive(ds *dataset.Dataset) {
	var cgpas []float64
	for i := range ds.Records {
		if ds.Records[i].CGPA != nil {
			cgpas = append(cgpas, *ds.Records[i].CGPA)
		}
	}

	summary, err := analytics.Describe(cgpas)
	if err != nil {
		log.Printf("Error computing CGPA summary: %v", err)
		return
	}

	color.Yellow("\nCGPA Distribution")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Mean", fmt.Sprintf("%.3f", summary.Mean)})
	table.Append([]string{"Median", fmt.Sprintf("%.3f", summary.Median)})
	table.Append([]string{"Mode", fmt.Sprintf("%.3f", summary.Mode)})
	table.Append([]string{"Variance", fmt.Sprintf("%.3f", summary.Variance)})
	table.Append([]string{"IQR", fmt.Sprintf("%.3f", summary.IQR)})
	table.Append([]string{"Skewness", fmt.Sprintf("%.3f", summary.Skewness)})
	table.Append([]string{"Kurtosis", fmt.Sprintf("%.3f", summary.Kurtosis)})
	table.Render()
}

func exportReports(ds *dataset.Dataset, dir string, format export.Format, topN int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	reports := []export.Report{
		export.ReportDataset,
		export.ReportBranches,
		export.ReportSubjects,
		export.ReportToppers,
	}
	for _, rep := range reports {
		data, name, err := export.Build(rep, format, ds, topN)
		if err != nil {
			return fmt.Errorf("build %s report: %w", rep, err)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		color.Green("Wrote %s", path)
	}
	return nil
}
