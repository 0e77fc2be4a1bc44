// Package branding provides compile-time identity values for the CLI.
//
// Edit branding.yaml in this package to rebrand the tool; Go's //go:embed
// bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName            string `yaml:"cli_name"`
	DisplayName        string `yaml:"display_name"`
	Description        string `yaml:"description"`
	HomeDir            string `yaml:"home_dir"`
	EnvPrefix          string `yaml:"env_prefix"`
	GoModule           string `yaml:"go_module"`
	TemplateRepoURL    string `yaml:"template_repo_url"`
	TemplateRepoBranch string `yaml:"template_repo_branch"`
	HostingAPIURL      string `yaml:"hosting_api_url"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:            "sampy",
			DisplayName:        "Sampy",
			Description:        "Personal toolbox for bootstrapping and maintaining projects",
			HomeDir:            ".sampy",
			EnvPrefix:          "SAMPY",
			GoModule:           "github.com/samuelgthorpe/sampy",
			TemplateRepoURL:    "https://github.com/samuelgthorpe/st-experiment-template.git",
			TemplateRepoBranch: "master",
			HostingAPIURL:      "https://api.github.com",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "sampy").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Sampy").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".sampy").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "SAMPY").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path.
func GoModule() string { load(); return defaults.GoModule }

// TemplateRepoURL returns the default git URL of the project template.
func TemplateRepoURL() string { load(); return defaults.TemplateRepoURL }

// TemplateRepoBranch returns the branch cloned from the template repo.
func TemplateRepoBranch() string { load(); return defaults.TemplateRepoBranch }

// HostingAPIURL returns the base URL of the repository hosting API.
func HostingAPIURL() string { load(); return defaults.HostingAPIURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "SAMPY_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
