package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/igusev/sitesearch/internal/model"
	"github.com/igusev/sitesearch/internal/storage"
)

// ErrConfigNotFound is returned when no content source is configured
var ErrConfigNotFound = errors.New("configuration not found")

// Config holds the application configuration
type Config struct {
	Site    SiteConfig    `mapstructure:"site" yaml:"site"`
	Content ContentConfig `mapstructure:"content" yaml:"content"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Search  SearchConfig  `mapstructure:"search" yaml:"search"`
}

// SiteConfig describes the website being searched
type SiteConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// ContentConfig lists the content sources
// When Dir is set, the conventional layout under it is loaded as well
// (products.yaml, whitepapers.yaml, blog/, docs/, learn/).
type ContentConfig struct {
	Dir         string             `mapstructure:"dir" yaml:"dir"`
	StaticPages bool               `mapstructure:"static_pages" yaml:"static_pages"`
	Catalogs    []CollectionConfig `mapstructure:"catalogs" yaml:"catalogs"`
	Markdown    []CollectionConfig `mapstructure:"markdown" yaml:"markdown"`
	GitLab      GitLabConfig       `mapstructure:"gitlab" yaml:"gitlab"`
}

// CollectionConfig is one catalog file or markdown directory
type CollectionConfig struct {
	Name      string `mapstructure:"name" yaml:"name"`
	Path      string `mapstructure:"path" yaml:"path"` // catalog file or markdown directory
	Type      string `mapstructure:"type" yaml:"type"`
	URLPrefix string `mapstructure:"url_prefix" yaml:"url_prefix"`
	Category  string `mapstructure:"category" yaml:"category,omitempty"`
}

// GitLabConfig holds the settings of a docs tree kept in GitLab
type GitLabConfig struct {
	URL       string `mapstructure:"url" yaml:"url"`
	Token     string `mapstructure:"token" yaml:"token"`
	Project   string `mapstructure:"project" yaml:"project"`
	Ref       string `mapstructure:"ref" yaml:"ref"`
	Path      string `mapstructure:"path" yaml:"path"`
	Type      string `mapstructure:"type" yaml:"type"`
	URLPrefix string `mapstructure:"url_prefix" yaml:"url_prefix"`
	Timeout   int    `mapstructure:"timeout" yaml:"timeout"` // timeout in seconds
}

// StorageConfig selects where recent searches are kept
type StorageConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"` // file, sqlite or memory
	Path   string `mapstructure:"path" yaml:"path"`
}

// SearchConfig holds query defaults
type SearchConfig struct {
	Limit        int      `mapstructure:"limit" yaml:"limit"`
	Fuzzy        bool     `mapstructure:"fuzzy" yaml:"fuzzy"`
	Popular      []string `mapstructure:"popular" yaml:"popular"`
	BuildTimeout int      `mapstructure:"build_timeout" yaml:"build_timeout"` // seconds, 0 = none
}

// ConfigDir returns the directory holding config.yaml
func ConfigDir() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "sitesearch")
}

// CacheDir returns the default directory for local state
func CacheDir() string {
	return filepath.Join(os.Getenv("HOME"), ".cache", "sitesearch")
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(ConfigDir())
	viper.AddConfigPath(".") // Also check current directory

	// SITESEARCH_SITE_BASE_URL, SITESEARCH_CONTENT_GITLAB_TOKEN, ...
	viper.SetEnvPrefix("SITESEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// Try to read config file (it's okay if it doesn't exist)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Content.Dir = expandPath(cfg.Content.Dir)
	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	for i := range cfg.Content.Catalogs {
		cfg.Content.Catalogs[i].Path = expandPath(cfg.Content.Catalogs[i].Path)
	}
	for i := range cfg.Content.Markdown {
		cfg.Content.Markdown[i].Path = expandPath(cfg.Content.Markdown[i].Path)
	}

	if cfg.Content.GitLab.Timeout <= 0 {
		cfg.Content.GitLab.Timeout = 30 // Fallback to default
	}
	if cfg.Search.BuildTimeout < 0 {
		cfg.Search.BuildTimeout = 0
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.HasSources() {
		return nil, ErrConfigNotFound
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("site.base_url", "")
	viper.SetDefault("content.dir", "content")
	viper.SetDefault("content.static_pages", true)
	viper.SetDefault("content.gitlab.url", "")
	viper.SetDefault("content.gitlab.token", "")
	viper.SetDefault("content.gitlab.project", "")
	viper.SetDefault("content.gitlab.ref", "main")
	viper.SetDefault("content.gitlab.path", "docs")
	viper.SetDefault("content.gitlab.type", string(model.TypeDocs))
	viper.SetDefault("content.gitlab.url_prefix", "/docs")
	viper.SetDefault("content.gitlab.timeout", 30) // Default 30 seconds timeout
	viper.SetDefault("storage.driver", storage.DriverFile)
	viper.SetDefault("storage.path", "")
	viper.SetDefault("search.limit", 20)
	viper.SetDefault("search.fuzzy", false)
	viper.SetDefault("search.build_timeout", 0)
}

// Validate checks driver names and document types
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Driver) {
	case "", storage.DriverFile, storage.DriverSQLite, storage.DriverMemory:
	default:
		return fmt.Errorf("storage.driver: %w: %q", storage.ErrUnknownDriver, c.Storage.Driver)
	}

	check := func(section string, list []CollectionConfig) error {
		for i, col := range list {
			if col.Path == "" {
				return fmt.Errorf("%s[%d]: path is required", section, i)
			}
			if _, err := model.ParseDocumentType(col.Type); err != nil {
				return fmt.Errorf("%s[%d]: %w", section, i, err)
			}
		}
		return nil
	}
	if err := check("content.catalogs", c.Content.Catalogs); err != nil {
		return err
	}
	if err := check("content.markdown", c.Content.Markdown); err != nil {
		return err
	}

	if c.Content.GitLab.Enabled() {
		if _, err := model.ParseDocumentType(c.Content.GitLab.Type); err != nil {
			return fmt.Errorf("content.gitlab: %w", err)
		}
	}
	return nil
}

// HasSources reports whether at least one content source is configured
func (c *Config) HasSources() bool {
	return c.Content.Dir != "" ||
		c.Content.StaticPages ||
		len(c.Content.Catalogs) > 0 ||
		len(c.Content.Markdown) > 0 ||
		c.Content.GitLab.Enabled()
}

// Enabled reports whether the GitLab docs source is configured
func (g *GitLabConfig) Enabled() bool {
	return g.URL != "" && g.Project != ""
}

// GetTimeout returns the GitLab API timeout as time.Duration
func (g *GitLabConfig) GetTimeout() time.Duration {
	return time.Duration(g.Timeout) * time.Second
}

// GetBuildTimeout returns the index build timeout; zero means none
func (s *SearchConfig) GetBuildTimeout() time.Duration {
	return time.Duration(s.BuildTimeout) * time.Second
}

// StorageSettings returns the storage settings with the default path filled in
func (c *Config) StorageSettings() storage.Config {
	path := c.Storage.Path
	if path == "" {
		path = storage.DefaultPath(CacheDir(), c.Storage.Driver)
	}
	return storage.Config{Driver: c.Storage.Driver, Path: path}
}

// expandPath expands ~ to home directory in paths
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home := os.Getenv("HOME")
		if len(path) == 1 {
			return home
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

// EnsureConfigDir ensures the config directory exists
func EnsureConfigDir() error {
	return os.MkdirAll(ConfigDir(), 0755)
}

// ExampleConfigPath returns the path where the example config should be created
func ExampleConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml.example")
}

// exampleConfig is rendered into the example file
func exampleConfig() Config {
	return Config{
		Site: SiteConfig{BaseURL: "https://www.example.com"},
		Content: ContentConfig{
			Dir:         "~/site/content",
			StaticPages: true,
			Catalogs: []CollectionConfig{
				{Name: "partners", Path: "~/site/content/partners.yaml", Type: string(model.TypePage), URLPrefix: "/partners"},
			},
			Markdown: []CollectionConfig{
				{Name: "case-studies", Path: "~/site/content/case-studies", Type: string(model.TypeLearn), URLPrefix: "/learn/case-studies", Category: "Case Studies"},
			},
			GitLab: GitLabConfig{
				URL:       "https://gitlab.example.com",
				Token:     "your-gitlab-token-here",
				Project:   "web/docs",
				Ref:       "main",
				Path:      "docs",
				Type:      string(model.TypeDocs),
				URLPrefix: "/docs",
				Timeout:   30,
			},
		},
		Storage: StorageConfig{Driver: storage.DriverFile, Path: "~/.cache/sitesearch/storage.json"},
		Search: SearchConfig{
			Limit:   20,
			Fuzzy:   false,
			Popular: []string{"dark web monitoring", "penetration testing", "compliance", "API security", "ransomware", "zero trust"},
		},
	}
}

const exampleHeader = `# sitesearch configuration file
# Place this file at ~/.config/sitesearch/config.yaml
#
# content.dir uses the conventional layout:
#   products.yaml, whitepapers.yaml   YAML catalogs
#   blog/, docs/, learn/               markdown with front matter
# content.gitlab is optional; leave url empty to disable it.
# Required GitLab token scope: read_repository
# storage.driver: file | sqlite | memory
# search.build_timeout: seconds, 0 waits for the build indefinitely
#
# Environment variables can also be used:
# SITESEARCH_SITE_BASE_URL=https://www.example.com
# SITESEARCH_CONTENT_GITLAB_TOKEN=your-token-here

`

// RenderExampleConfig returns the annotated example configuration
func RenderExampleConfig() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(exampleHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(exampleConfig()); err != nil {
		return nil, fmt.Errorf("failed to render example config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to render example config: %w", err)
	}
	return buf.Bytes(), nil
}

// CreateExampleConfig creates an example configuration file
func CreateExampleConfig() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	data, err := RenderExampleConfig()
	if err != nil {
		return err
	}
	return os.WriteFile(ExampleConfigPath(), data, 0644)
}
