package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.tmpl
var scaffoldFS embed.FS

// Kinds of file skeletons sampy can generate.
const (
	KindClass    = "class"
	KindFunction = "func"
)

var titleCaser = cases.Title(language.English)

// Data holds the template variables available to file skeletons.
type Data struct {
	FileName  string // e.g. "my_loader.py"
	ClassName string // derived: "MyLoader" (class skeletons only)
	Date      string // e.g. "June 19, 2024"
	Author    string
}

// NewData derives template variables from the target file name. The class
// name is the CamelCase form of the snake_case base name.
func NewData(fileName, author string) *Data {
	base := strings.TrimSuffix(filepath.Base(fileName), ".py")

	var b strings.Builder
	for _, part := range strings.Split(base, "_") {
		if part != "" {
			b.WriteString(titleCaser.String(part))
		}
	}

	return &Data{
		FileName:  filepath.Base(fileName),
		ClassName: b.String(),
		Date:      time.Now().Format("January 2, 2006"),
		Author:    author,
	}
}

// Generate writes a Python file skeleton of the given kind to outPath and
// marks it executable. It refuses to overwrite an existing file.
func Generate(kind string, data *Data, outPath string) error {
	var tmplName string
	switch kind {
	case KindClass:
		tmplName = "class.py.tmpl"
	case KindFunction:
		tmplName = "function.py.tmpl"
	default:
		return fmt.Errorf("unknown skeleton kind %q: supported kinds are %q and %q", kind, KindClass, KindFunction)
	}

	if _, err := os.Stat(outPath); err == nil {
		return fmt.Errorf("%s already exists; refusing to overwrite", outPath)
	}

	tmplBytes, err := scaffoldFS.ReadFile("templates/" + tmplName)
	if err != nil {
		return fmt.Errorf("reading template %s: %w", tmplName, err)
	}

	tmpl, err := template.New(tmplName).Parse(string(tmplBytes))
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", tmplName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing template %s: %w", tmplName, err)
	}

	if err := os.WriteFile(outPath, buf.Bytes(), 0755); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	return nil
}
