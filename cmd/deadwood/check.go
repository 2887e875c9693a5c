package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/halvard/deadwood/internal/output"
	"github.com/halvard/deadwood/internal/progress"
	"github.com/halvard/deadwood/internal/scanner"
	"github.com/halvard/deadwood/pkg/analyzer/unused"
	"github.com/halvard/deadwood/pkg/semantic"
)

var checkCmd = &cobra.Command{
	Use:   "check [path...]",
	Short: "Report declarations nothing in the program references",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringP("format", "f", "", "Output format: text, json, markdown")
	checkCmd.Flags().StringP("output", "o", "", "Write output to file instead of stdout")
	checkCmd.Flags().StringSlice("also", nil, "Extra files outside the scanned roots to analyze")
	checkCmd.Flags().Int("workers", 0, "Parallel file workers (0 = 2x CPU count)")
	checkCmd.Flags().Bool("no-fail", false, "Exit zero even when findings exist")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files, err := scanner.New(cfg).ScanPaths(getPaths(args))
	if err != nil {
		return err
	}
	extra, _ := cmd.Flags().GetStringSlice("also")

	if len(files) == 0 && len(extra) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	// One session over everything, so cross-references between scanned
	// and extra files resolve in both directions. The extra files still
	// go through the secondary resolution path and its eligibility gate.
	all := make([]string, 0, len(files)+len(extra))
	all = append(all, files...)
	all = append(all, extra...)
	session := semantic.NewSession(all)

	workers, _ := cmd.Flags().GetInt("workers")
	if workers == 0 {
		workers = cfg.Check.Workers
	}
	cwd, _ := os.Getwd()

	tracker := progress.NewTracker("Checking declarations...", len(all))
	analyzer := unused.New(session,
		unused.WithSecondaryResolver(
			semantic.ResolverFunc(session.ResolveAdHoc),
			func(path string) bool { return !cfg.ShouldExclude(path) },
		),
		unused.WithRoot(cwd),
		unused.WithIgnore(cfg.Check.Ignore),
		unused.WithWorkers(workers),
		unused.WithProgress(tracker.Tick),
	)
	result, err := analyzer.Analyze(cmd.Context(), files, extra)
	tracker.Finish()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = cfg.Output.Format
	}
	outFile, _ := cmd.Flags().GetString("output")

	formatter, err := output.NewFormatter(output.ParseFormat(format), outFile, cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if err := renderAnalysis(formatter, result); err != nil {
		return err
	}

	noFail, _ := cmd.Flags().GetBool("no-fail")
	if result.Summary.TotalIssues > 0 && cfg.Check.FailOnIssues && !noFail {
		return fmt.Errorf("%d unused declarations found", result.Summary.TotalIssues)
	}
	return nil
}

// renderAnalysis hands the result to the reporter in the selected shape.
func renderAnalysis(formatter *output.Formatter, result *unused.Analysis) error {
	if formatter.Format() == output.FormatJSON {
		return formatter.Output(result)
	}

	if result.Summary.TotalIssues == 0 {
		formatter.Success("No unused declarations found (%d files analyzed)", result.Summary.FilesAnalyzed)
		return nil
	}

	var rows [][]string
	for _, report := range result.Reports {
		for _, issue := range report.Issues {
			rows = append(rows, []string{
				fmt.Sprintf("%s:%d:%d", report.RelPath, issue.Location.Line, issue.Location.Column),
				issue.Name,
				issue.Kind,
				issue.Fingerprint,
			})
		}
	}

	table := output.NewTable(
		"Unused Declarations",
		[]string{"Location", "Name", "Kind", "Fingerprint"},
		rows,
		result,
	)
	if err := formatter.Output(table); err != nil {
		return err
	}

	fmt.Printf("Summary: %d unused declarations in %d of %d files\n",
		result.Summary.TotalIssues,
		result.Summary.FilesWithIssues,
		result.Summary.FilesAnalyzed)
	return nil
}
