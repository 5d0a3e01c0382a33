// Package renderer renders vectors as markdown reports.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/exalgebra"
)

//go:embed *.md
var templates embed.FS

// RenderVector renders every entry of v in a markdown table.
func RenderVector(title string, v exalgebra.Vector) string {
	partials := map[string]string{
		"vector_totals": "vector_totals.md",
	}
	return renderTemplate("vector", "vector.md", partials, NewVectorTable(title, v))
}

// RenderSummary renders v netted per base family: the nohat and hat sides
// of each family side by side with their net value.
func RenderSummary(title string, v exalgebra.Vector) string {
	partials := map[string]string{
		"summary_families": "summary_families.md",
		"summary_totals":   "summary_totals.md",
	}
	return renderTemplate("summary", "summary.md", partials, NewSummary(title, v))
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
