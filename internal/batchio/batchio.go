// Package batchio saves and loads data by dispatching on file extension,
// covering the handful of formats the toolbox shuttles around: JSON, YAML,
// CSV, and plain text.
package batchio

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ErrUnknownExtension is returned when no codec handles the file extension.
var ErrUnknownExtension = errors.New("unrecognized batch extension")

// Save writes v to path, choosing the codec from the extension:
// .json, .yaml/.yml, .csv (v must be [][]string), .txt (v must be []string).
func Save(path string, v any) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err := json.MarshalIndent(v, "", "    ")
		if err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		return os.WriteFile(path, append(data, '\n'), 0644)
	case ".yaml", ".yml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		return os.WriteFile(path, data, 0644)
	case ".csv":
		records, ok := v.([][]string)
		if !ok {
			return fmt.Errorf("saving %s: csv requires [][]string, got %T", path, v)
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w := csv.NewWriter(f)
		if err := w.WriteAll(records); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	case ".txt":
		lines, ok := v.([]string)
		if !ok {
			return fmt.Errorf("saving %s: txt requires []string, got %T", path, v)
		}
		return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownExtension, ext)
	}
}

// Load reads path into out (a pointer) for .json and .yaml/.yml files.
// Use LoadCSV and LoadLines for the tabular and text formats.
func Load(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}
		return nil
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownExtension, ext)
	}
}

// LoadCSV reads a CSV file into records.
func LoadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}

// LoadLines reads a text file into lines, dropping a trailing empty line.
func LoadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(data), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}
