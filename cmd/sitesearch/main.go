package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/igusev/sitesearch/internal/config"
	"github.com/igusev/sitesearch/internal/logger"
	"github.com/igusev/sitesearch/internal/search"
	"github.com/igusev/sitesearch/internal/tui"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"     // Version from git tag or "dev"
	commit    = "unknown" // Git commit hash (used in version output)
	buildTime = "unknown" // Build timestamp (used in version output)
)

// Platform constants for runtime.GOOS
const (
	platformDarwin  = "darwin"
	platformLinux   = "linux"
	platformWindows = "windows"
)

var (
	verbose bool // Flag to enable verbose logging
	autoGo  bool // Flag to open the top result in the browser
)

var rootCmd = &cobra.Command{
	Use:   "sitesearch [flags] [query...]",
	Short: "Search the website content from the terminal",
	Long: `sitesearch indexes the site's products, blog posts, docs pages, white papers
and learn articles, and searches them instantly.

Getting Started:
  1. Run: sitesearch config (writes an example configuration)
  2. Copy it to ~/.config/sitesearch/config.yaml and point content.dir at your content
  3. Run: sitesearch (interactive mode) or sitesearch find <query>

Examples:
  sitesearch                    # Interactive search
  sitesearch zero trust         # Interactive search starting with "zero trust"
  sitesearch -g torscan         # Open the top result in the browser
  sitesearch find ransomware    # Print matching pages as a table
  sitesearch recent             # List recent searches

Configuration:
  Settings live in ~/.config/sitesearch/config.yaml or environment variables:
    SITESEARCH_SITE_BASE_URL=https://www.example.com
    SITESEARCH_CONTENT_DIR=./content`,
	RunE: runSearch,
	// Accept any number of arguments as search query
	Args: cobra.ArbitraryArgs,
	// Don't suggest commands when args don't match subcommands
	SuggestionsMinimumDistance: 2,
}

// loadConfig loads configuration with a hint when nothing is configured
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: no content sources, run 'sitesearch config' for an example", err)
	}
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// runSearch handles the default search behavior
func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	// Join all args to support multi-word queries: "sitesearch zero trust"
	query := strings.TrimSpace(strings.Join(args, " "))

	if autoGo {
		if query == "" {
			return fmt.Errorf("-g/--go requires a search query")
		}
		return runAutoGo(cmd.Context(), sess, query)
	}

	return runInteractive(cmd.Context(), sess, query)
}

// runAutoGo opens the top result for query in the browser
func runAutoGo(ctx context.Context, sess *session, query string) error {
	results, err := findDocuments(ctx, sess, query, search.Options{Limit: 1, Fuzzy: sess.cfg.Search.Fuzzy})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no results for query: %s", query)
	}

	openResult(sess.cfg.Site.BaseURL, results[0].URL)
	return nil
}

// runInteractive launches the TUI while the index builds in the background
func runInteractive(ctx context.Context, sess *session, initialQuery string) error {
	sess.provider.Start(ctx)

	m := tui.New(tui.Options{
		Searcher:     sess.provider,
		History:      sess.history,
		InitialQuery: initialQuery,
		Version:      version,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if model, ok := finalModel.(tui.Model); ok && model.SelectedURL() != "" {
		openResult(sess.cfg.Site.BaseURL, model.SelectedURL())
	}
	return nil
}

// openResult opens a document URL in the browser and prints it
func openResult(baseURL, docURL string) {
	target := resolveURL(baseURL, docURL)

	if isAbsoluteURL(target) {
		logger.Debug("Opening browser with URL: %s", target)
		if err := openBrowser(target); err != nil {
			logger.Warn("Failed to open browser: %v", err)
		}
	} else {
		logger.Debug("Not opening relative URL %s, set site.base_url", target)
	}

	// Output URL to stdout (for copying or script usage)
	fmt.Println(target)
}

// resolveURL resolves a site-relative document URL against the base URL
func resolveURL(baseURL, docURL string) string {
	if baseURL == "" || isAbsoluteURL(docURL) {
		return docURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return docURL
	}
	ref, err := url.Parse(docURL)
	if err != nil {
		return docURL
	}
	return base.ResolveReference(ref).String()
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// openBrowser opens the given URL in the default browser (cross-platform)
func openBrowser(link string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case platformDarwin: // macOS
		cmd = exec.CommandContext(ctx, "open", link)
	case platformLinux:
		cmd = exec.CommandContext(ctx, "xdg-open", link)
	case platformWindows:
		// Empty string before URL is important: start interprets first quoted arg as window title
		cmd = exec.CommandContext(ctx, "cmd", "/c", "start", "", link)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Run()
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Flags().BoolVarP(&autoGo, "go", "g", false, "open the top result in the browser")

	// Set up verbose mode before command execution
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
		logger.Debug("Verbose mode enabled")
	}
}

func main() {
	// Enable interspersed flags (flags can appear anywhere in the command line)
	rootCmd.Flags().SetInterspersed(true)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
