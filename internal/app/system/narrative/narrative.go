// Package narrative renders the Digital Twin summary text for a member.
package narrative

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/dalemusser/twindash/internal/domain/models"
)

//go:embed summary.tmpl
var defaultTemplate string

// Renderer fills the summary template from a MetricsRecord.
// A Renderer is immutable after construction and safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// New parses the built-in summary template.
func New() (*Renderer, error) {
	return Parse("summary", defaultTemplate)
}

// Load parses the template at path.
func Load(path string) (*Renderer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read summary template: %w", err)
	}
	return Parse(path, string(data))
}

// Parse builds a Renderer from template text. Fields are referenced as
// {{.meal_log}}, {{.start_bp}} and so on. Referencing a field the record
// does not carry is an error at render time.
func Parse(name, text string) (*Renderer, error) {
	t, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse summary template: %w", err)
	}
	return &Renderer{tmpl: t}, nil
}

// Render returns the summary for m with surrounding whitespace trimmed.
func (r *Renderer) Render(m models.MetricsRecord) (string, error) {
	var b strings.Builder
	if err := r.tmpl.Execute(&b, m.Strings()); err != nil {
		return "", fmt.Errorf("render summary: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}

// Check renders a fully populated probe record. An error means the
// template and the metric fields have drifted apart.
func (r *Renderer) Check() error {
	_, err := r.Render(models.NewMetricsRecord(models.DefaultValue))
	return err
}
