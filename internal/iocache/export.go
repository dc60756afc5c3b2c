package iocache

import (
	"errors"
	"fmt"

	"github.com/oss-pulse/pulse/internal/parquet"
)

// ExecuteAnalysisExport performs the actual export of analysis data to Parquet files.
func ExecuteAnalysisExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetAnalysisStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analysis runs: %d\n", status.TotalRuns)
	fmt.Printf("Total projects analyzed: %d\n", status.TotalProjectsAnalyzed)

	analysisRuns, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}

	projectScores, err := store.GetAllProjectScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve project scores: %w", err)
	}

	parquetAnalysisRuns := parquet.ConvertAnalysisRunRecords(analysisRuns)
	parquetProjectScores := parquet.ConvertProjectScoreRecords(projectScores)

	analysisRunsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquetAnalysisRuns, analysisRunsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	fmt.Printf("Exported %d analysis runs to: %s\n", len(parquetAnalysisRuns), analysisRunsFile)

	projectScoresFile := outputFile + ".project_scores.parquet"
	if err := parquet.WriteProjectScoresParquet(parquetProjectScores, projectScoresFile); err != nil {
		return fmt.Errorf("failed to write project scores: %w", err)
	}
	fmt.Printf("Exported %d project score records to: %s\n", len(parquetProjectScores), projectScoresFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
