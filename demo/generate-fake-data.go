package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/igusev/sitesearch/internal/content"
	"github.com/igusev/sitesearch/internal/history"
	"github.com/igusev/sitesearch/internal/storage"
)

type demoPage struct {
	path     string // relative to the content directory
	title    string
	date     string
	category string
	body     string
}

func main() {
	// Demo content lives in demo/data/content, recent searches next to it
	demoDir := "demo/data"
	contentDir := filepath.Join(demoDir, "content")
	if err := os.MkdirAll(contentDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create demo dir: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating fake site content in: %s\n", contentDir)

	products := []content.CatalogRecord{
		{
			Title:       "TorScan",
			Description: "Dark web monitoring for leaked credentials and brand mentions",
			Category:    "Threat Intelligence",
			Features:    []string{"Credential leak alerts", "Onion site crawling", "Slack and email notifications"},
		},
		{
			Title:       "Vault Guard",
			Description: "Secrets management for CI pipelines and Kubernetes clusters",
			Category:    "Cloud Security",
			Features:    []string{"Automatic secret rotation", "Audit trail", "Terraform provider"},
		},
		{
			Title:       "PhishNet",
			Description: "Phishing simulation and security awareness training",
			Category:    "Awareness",
			Features:    []string{"Template library", "Per-team reports", "SCORM export"},
		},
		{
			Title:       "Perimeter Scan",
			Description: "Continuous external attack surface discovery and vulnerability scanning",
			Category:    "Vulnerability Management",
			Features:    []string{"Subdomain discovery", "TLS checks", "CVE matching"},
		},
		{
			Title:       "Compliance Hub",
			Description: "Evidence collection for SOC 2, ISO 27001 and GDPR audits",
			Category:    "Compliance",
			Features:    []string{"Control mapping", "Policy templates", "Auditor workspace"},
		},
	}

	whitepapers := []content.CatalogRecord{
		{
			Title:       "State of Ransomware 2025",
			Description: "How ransomware groups choose targets and what stops them",
			Date:        "2025-02-11",
		},
		{
			Title:       "Zero Trust Architecture Guide",
			Description: "A practical path from VPNs to identity-aware access",
			Date:        "2024-09-30",
		},
		{
			Title:       "Securing the Software Supply Chain",
			Description: "SBOMs, signed builds and dependency review in practice",
			Date:        "2024-05-14",
		},
	}

	pages := []demoPage{
		{"blog/security-tips.md", "10 Security Tips for Small Teams", "2024-03-01", "",
			"Start with **MFA everywhere**, rotate credentials and keep an inventory of your SaaS apps."},
		{"blog/security-roadmap.md", "Our 2025 Security Roadmap", "2025-01-10", "",
			"What we are shipping next year: passkeys, `audit-log` streaming and regional data residency."},
		{"blog/phishing-trends.md", "Phishing Trends We Saw This Quarter", "2024-11-20", "",
			"QR code phishing doubled. Read how [PhishNet](/products/phishnet) templates keep up."},
		{"blog/incident-response.md", "Writing an Incident Response Plan", "2024-07-08", "",
			"## Roles\n\nName an incident commander before you need one.\n\n## Runbooks\n\nKeep them short."},
		{"docs/getting-started.md", "Getting Started", "", "Guides",
			"Create a workspace, invite your team and connect your first data source."},
		{"docs/api/authentication.md", "API Authentication", "", "Reference",
			"Every request needs a bearer token. Create API tokens under **Settings > API**."},
		{"docs/api/webhooks.md", "Webhooks", "", "Reference",
			"Webhooks deliver alerts as JSON. Verify the `X-Signature` header before trusting a payload."},
		{"docs/integrations/slack.md", "Slack Integration", "", "Integrations",
			"Route TorScan alerts to a Slack channel of your choice."},
		{"learn/what-is-zero-trust.md", "What Is Zero Trust?", "", "Fundamentals",
			"Zero trust means never trusting a request because of where it comes from."},
		{"learn/soc2-explained.md", "SOC 2 Explained", "", "Compliance",
			"SOC 2 reports describe how a service organisation protects customer data."},
		{"learn/case-studies/fintech.md", "Case Study: Fintech Startup", "2024-06-03", "Case Studies",
			"How a 40-person fintech passed its first SOC 2 audit in twelve weeks."},
	}

	if err := writeCatalog(filepath.Join(contentDir, "products.yaml"), products); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write products: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Created products catalog (%d products)\n", len(products))

	if err := writeCatalog(filepath.Join(contentDir, "whitepapers.yaml"), whitepapers); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write white papers: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Created white paper catalog (%d papers)\n", len(whitepapers))

	for _, page := range pages {
		if err := writePage(contentDir, page); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", page.path, err)
			os.Exit(1)
		}
	}
	fmt.Printf("✓ Created markdown pages (%d pages)\n", len(pages))

	// Seed recent searches, oldest first so the last one ends up on top
	storePath := filepath.Join(demoDir, "recent-searches.json")
	store, err := storage.Open(storage.Config{Driver: storage.DriverFile, Path: storePath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	hist := history.New(store)
	for _, q := range []string{"soc 2", "webhooks", "ransomware", "zero trust", "torscan"} {
		hist.Add(q)
	}
	if hist.Degraded() {
		fmt.Fprintf(os.Stderr, "Failed to save recent searches\n")
		os.Exit(1)
	}
	fmt.Printf("✓ Created recent searches\n")

	fmt.Printf("\n✅ Demo data generated successfully!\n\n")
	fmt.Printf("To use with sitesearch:\n")
	fmt.Printf("  export SITESEARCH_CONTENT_DIR=$(pwd)/%s\n", contentDir)
	fmt.Printf("  export SITESEARCH_STORAGE_PATH=$(pwd)/%s\n", storePath)
	fmt.Printf("  sitesearch\n\n")
	fmt.Printf("Demo directory: %s\n", demoDir)
}

func writeCatalog(path string, records []content.CatalogRecord) error {
	data, err := yaml.Marshal(map[string]any{"items": records})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func writePage(root string, page demoPage) error {
	path := filepath.Join(root, page.path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", page.title)
	if page.date != "" {
		fmt.Fprintf(&b, "date: %s\n", page.date)
	}
	if page.category != "" {
		fmt.Fprintf(&b, "category: %q\n", page.category)
	}
	b.WriteString("---\n\n")
	b.WriteString(page.body)
	b.WriteString("\n")

	return os.WriteFile(path, []byte(b.String()), 0644)
}
