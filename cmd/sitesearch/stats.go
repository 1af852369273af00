package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/igusev/sitesearch/internal/model"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Build the index and show what it contains",
	Long: `Loads every content source, builds the search index and prints
per-source and per-type document counts plus the vocabulary size.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	out := cmd.OutOrStdout()

	// A failed build still has a report worth showing
	buildErr := sess.ready(cmd.Context())
	report := sess.provider.Report()

	printSection(out, "Sources")
	rows := make([][]string, 0, len(report.Sources))
	for _, src := range report.Sources {
		status := "ok"
		if src.Err != nil {
			status = src.Err.Error()
		}
		rows = append(rows, []string{
			src.Name,
			fmt.Sprintf("%d", src.Loaded),
			fmt.Sprintf("%d", src.Kept),
			src.Duration.Round(time.Millisecond).String(),
			status,
		})
	}
	if err := renderTable(out, []string{"Source", "Loaded", "Kept", "Time", "Status"}, rows); err != nil {
		return err
	}

	if buildErr != nil {
		return buildErr
	}

	idx := sess.provider.Index()
	counts := idx.CountByType()

	fmt.Fprintln(out)
	printSection(out, "Documents")
	rows = rows[:0]
	for _, t := range model.AllDocumentTypes() {
		rows = append(rows, []string{t.Label(), fmt.Sprintf("%d", counts[t])})
	}
	if err := renderTable(out, []string{"Type", "Documents"}, rows); err != nil {
		return err
	}

	fmt.Fprintln(out)
	printSuccess(out, fmt.Sprintf("%d documents, %d terms, built in %v",
		idx.Len(), idx.TermCount(), sess.provider.BuildDuration().Round(time.Millisecond)))
	if report.Invalid > 0 || report.Duplicates > 0 {
		printWarning(out, fmt.Sprintf("%d invalid and %d duplicate documents dropped", report.Invalid, report.Duplicates))
	}
	if failed := report.Failed(); failed > 0 {
		printWarning(out, fmt.Sprintf("%d of %d sources failed to load", failed, len(report.Sources)))
	}
	return nil
}
