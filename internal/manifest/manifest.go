// Package manifest parses and validates the optional template.yaml a
// project template may ship at its root. The manifest is advisory for
// copied templates but lets a template declare the minimum sampy version
// it was built for.
package manifest

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

// FileName is the manifest file looked up at the template root.
const FileName = "template.yaml"

// TemplateManifest describes a project template.
type TemplateManifest struct {
	Name            string `yaml:"name" json:"name"`
	Description     string `yaml:"description,omitempty" json:"description,omitempty"`
	MinSampyVersion string `yaml:"min_sampy_version,omitempty" json:"min_sampy_version,omitempty"`
}

// Parse decodes a template manifest after validating it against the
// embedded schema.
func Parse(data []byte) (*TemplateManifest, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid template manifest: %s", result.Issues[0].Message)
	}

	var m TemplateManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing template manifest: %w", err)
	}
	return &m, nil
}

// ParseFile reads and parses the manifest at path.
func ParseFile(path string) (*TemplateManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// CheckVersion verifies that buildVersion satisfies the manifest's
// min_sampy_version constraint. Dev builds ("dev", empty) always pass.
func (m *TemplateManifest) CheckVersion(buildVersion string) error {
	if m.MinSampyVersion == "" || buildVersion == "" || buildVersion == "dev" {
		return nil
	}
	min, err := semver.NewVersion(m.MinSampyVersion)
	if err != nil {
		return fmt.Errorf("template declares invalid min_sampy_version %q: %w", m.MinSampyVersion, err)
	}
	cur, err := semver.NewVersion(buildVersion)
	if err != nil {
		return fmt.Errorf("cannot parse build version %q: %w", buildVersion, err)
	}
	if cur.LessThan(min) {
		return fmt.Errorf("template requires sampy >= %s, this build is %s", min, cur)
	}
	return nil
}
