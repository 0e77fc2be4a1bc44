// Package rewrite turns materialized template content into project-specific
// content: it renames the template's source subdirectory and substitutes
// template identifiers across every file in the tree.
package rewrite

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrSourceDirMissing is returned when the template does not contain the
// expected snake_case source subdirectory (template-shape mismatch).
var ErrSourceDirMissing = errors.New("template source directory not found")

// TokenPair is one ordered find/replace rule applied to every file.
type TokenPair struct {
	Old string
	New string
}

// TokenMap builds the ordered substitution rules from the template name
// and the project name (both hyphen-separated). The snake_case module
// token comes first so it is never corrupted by the hyphenated rule.
func TokenMap(templateName, projectName string) []TokenPair {
	return []TokenPair{
		{Old: Snake(templateName), New: Snake(projectName)},
		{Old: templateName, New: projectName},
	}
}

// Snake converts a hyphen-separated name to its snake_case form.
func Snake(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// Apply renames repoDir/<snake template> to repoDir/<snake project> and
// replaces every occurrence of the template tokens in every regular file
// under repoDir. Substitution is exact-text and case-sensitive; there is
// no transaction boundary, so an I/O failure mid-walk can leave some files
// rewritten and others not. The pipeline runs this exactly once.
func Apply(repoDir, templateName, projectName string) error {
	oldDir := filepath.Join(repoDir, Snake(templateName))
	newDir := filepath.Join(repoDir, Snake(projectName))

	info, err := os.Stat(oldDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrSourceDirMissing, oldDir)
	}
	if err := os.Rename(oldDir, newDir); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", oldDir, newDir, err)
	}

	pairs := TokenMap(templateName, projectName)
	return substituteAll(repoDir, pairs)
}

// substituteAll walks every regular file under root and applies the token
// pairs in order. Binary files are not special-cased: every file, every
// occurrence.
func substituteAll(root string, pairs []TokenPair) error {
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		changed, err := substituteFile(path, pairs)
		if err != nil {
			return fmt.Errorf("rewriting %s: %w", path, err)
		}
		if changed {
			count++
		}
		return nil
	})
	if err != nil {
		return err
	}
	slog.Debug("token substitution complete", slog.String("root", root), slog.Int("files_changed", count))
	return nil
}

func substituteFile(path string, pairs []TokenPair) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	out := string(data)
	for _, p := range pairs {
		out = strings.ReplaceAll(out, p.Old, p.New)
	}
	if out == string(data) {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(out), info.Mode()); err != nil {
		return false, err
	}
	return true, nil
}
