package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recentClear bool

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recent searches",
	Long: `Lists the recent searches, most recent first.
Use --clear to forget them.`,
	Args: cobra.NoArgs,
	RunE: runRecent,
}

func init() {
	recentCmd.Flags().BoolVar(&recentClear, "clear", false, "clear recent searches")
	rootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.loadHistory()
	out := cmd.OutOrStdout()

	if recentClear {
		sess.provider.ClearRecentSearches()
		if sess.history.Degraded() {
			return fmt.Errorf("failed to clear recent searches")
		}
		printSuccess(out, "Recent searches cleared")
		return nil
	}

	entries := sess.provider.RecentSearches()
	if len(entries) == 0 {
		printMuted(out, "No recent searches yet.")
		return nil
	}
	for i, q := range entries {
		fmt.Fprintf(out, "%2d. %s\n", i+1, q)
	}
	return nil
}
