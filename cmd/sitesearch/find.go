package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/igusev/sitesearch/internal/model"
	"github.com/igusev/sitesearch/internal/search"
)

var (
	findType  string
	findLimit int
	findFuzzy bool
	findJSON  bool
)

var findCmd = &cobra.Command{
	Use:   "find <query...>",
	Short: "Search the site and print the results",
	Long: `Builds the index, runs one query and prints the results as a table
(or JSON with --json). The query is added to the recent searches.

Examples:
  sitesearch find ransomware
  sitesearch find --type blog zero trust
  sitesearch find --fuzzy --limit 5 comliance
  sitesearch find --json soc 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringVarP(&findType, "type", "t", "", "only return documents of this type (product, blog, docs, whitepaper, learn, page)")
	findCmd.Flags().IntVarP(&findLimit, "limit", "n", search.DefaultLimit, "maximum number of results (max 100)")
	findCmd.Flags().BoolVarP(&findFuzzy, "fuzzy", "f", false, "tolerate small typos")
	findCmd.Flags().BoolVar(&findJSON, "json", false, "print results as JSON")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("find requires a search query")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := search.Options{Limit: findLimit, Fuzzy: findFuzzy}
	if !cmd.Flags().Changed("limit") {
		opts.Limit = cfg.Search.Limit
	}
	if !cmd.Flags().Changed("fuzzy") {
		opts.Fuzzy = cfg.Search.Fuzzy
	}
	if findType != "" {
		t, err := model.ParseDocumentType(findType)
		if err != nil {
			return fmt.Errorf("--type: %w", err)
		}
		opts.Type = t
	}

	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	results, err := findDocuments(cmd.Context(), sess, query, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if findJSON {
		for i := range results {
			results[i].URL = resolveURL(cfg.Site.BaseURL, results[i].URL)
		}
		return outputJSON(out, results)
	}

	if len(results) == 0 {
		printMuted(out, fmt.Sprintf("No results for %q. Check the spelling or try --fuzzy.", query))
		return nil
	}
	return writeResultsTable(out, results, cfg.Site.BaseURL)
}

// findDocuments builds the index, runs query and records it as a recent search
func findDocuments(ctx context.Context, sess *session, query string, opts search.Options) ([]model.SearchDocument, error) {
	sess.loadHistory()
	if err := sess.ready(ctx); err != nil {
		return nil, err
	}

	results := sess.provider.Search(query, opts)
	sess.provider.AddRecentSearch(query)
	return results, nil
}
