package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/igusev/sitesearch/internal/config"
	"github.com/igusev/sitesearch/internal/gitlab"
)

var (
	configPrint bool
	configCheck bool
	configForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create or check the configuration file",
	Long: `Writes an annotated example configuration to
~/.config/sitesearch/config.yaml.example. Copy it to config.yaml and edit.

With --check the current configuration is loaded and summarised, and the
GitLab connection is tested when a GitLab source is configured.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configPrint, "print", false, "print the example configuration instead of writing it")
	configCmd.Flags().BoolVar(&configCheck, "check", false, "validate the current configuration")
	configCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing example file")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	switch {
	case configPrint:
		data, err := config.RenderExampleConfig()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case configCheck:
		return checkConfig(cmd.Context(), out)
	}

	path := config.ExampleConfigPath()
	if _, err := os.Stat(path); err == nil && !configForce {
		printMuted(out, "Example configuration already exists (use --force to overwrite):")
		printURL(out, path)
		return nil
	}

	if err := config.CreateExampleConfig(); err != nil {
		return err
	}

	printSuccess(out, "Example configuration written to")
	printURL(out, path)
	fmt.Fprintln(out)
	printMuted(out, "Copy it to config.yaml in the same directory and adjust the paths.")
	return nil
}

// checkConfig loads the configuration and reports its content sources
func checkConfig(ctx context.Context, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			printWarning(out, "No content sources configured")
			printMuted(out, "Run 'sitesearch config' to create an example configuration.")
			return nil
		}
		return err
	}

	printSection(out, "Content sources")
	gen, err := buildGenerator(cfg)
	if err != nil {
		return err
	}
	for _, name := range gen.Sources() {
		printBullet(out, name)
	}
	fmt.Fprintln(out)

	settings := cfg.StorageSettings()
	printSection(out, "Recent searches")
	printBullet(out, fmt.Sprintf("%s: %s", settings.Driver, settings.Path))

	if !cfg.Content.GitLab.Enabled() {
		fmt.Fprintln(out)
		printSuccess(out, "Configuration is valid")
		return nil
	}

	gl := cfg.Content.GitLab
	fmt.Fprintln(out)
	printSection(out, "GitLab")
	printBullet(out, fmt.Sprintf("%s (%s@%s, token %s)", gl.URL, gl.Project, gl.Ref, maskToken(gl.Token)))

	client, err := gitlab.New(gl.URL, gl.Token, gl.GetTimeout())
	if err != nil {
		return fmt.Errorf("failed to create GitLab client: %w", err)
	}
	if err := client.TestConnection(ctx); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}

	fmt.Fprintln(out)
	printSuccess(out, "Configuration is valid and GitLab is reachable")
	return nil
}

func maskToken(token string) string {
	if token == "" {
		return "(none)"
	}
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "****" + token[len(token)-4:]
}
