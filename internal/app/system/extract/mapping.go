package extract

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dalemusser/twindash/internal/app/system/rowlookup"
	"github.com/dalemusser/twindash/internal/domain/models"
	"gopkg.in/yaml.v3"
)

// ColumnRef points at a column either by zero-based position or by header
// name. Exactly one of the two is meaningful: a non-empty Name wins.
type ColumnRef struct {
	Index int
	Name  string
}

// Col is a positional reference.
func Col(i int) ColumnRef { return ColumnRef{Index: i} }

// Named is a header-name reference.
func Named(name string) ColumnRef { return ColumnRef{Index: -1, Name: name} }

func (c ColumnRef) String() string {
	if c.Name != "" {
		return strconv.Quote(c.Name)
	}
	return strconv.Itoa(c.Index)
}

// UnmarshalYAML accepts either an integer (position) or a string (header name).
func (c *ColumnRef) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: column must be a number or a header name", n.Line)
	}
	if n.Tag == "!!int" {
		i, err := strconv.Atoi(n.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		*c = Col(i)
		return nil
	}
	*c = Named(n.Value)
	return nil
}

// Mapping maps each metric field to one column, or two for composite
// fields such as blood pressure.
type Mapping map[string][]ColumnRef

// DefaultMapping returns the column layout of the coaching sheet.
func DefaultMapping() Mapping {
	return Mapping{
		models.FieldMealLog:      {Col(11)},
		models.FieldGFY:          {Col(12)},
		models.FieldSteps:        {Col(37)},
		models.FieldSleep:        {Col(41)},
		models.FieldProtein:      {Col(54)},
		models.FieldFiber:        {Col(53)},
		models.FieldStartHbA1c:   {Col(15)},
		models.FieldLatestEA1c:   {Col(19)},
		models.FieldStartWeight:  {Col(21)},
		models.FieldLatestWeight: {Col(23)},
		models.FieldStartBMI:     {Col(27)},
		models.FieldLatestBMI:    {Col(28)},
		models.FieldStartVFat:    {Col(59)},
		models.FieldLatestVFat:   {Col(60)},
		models.FieldStartBP:      {Col(30), Col(32)},
		models.FieldLatestBP:     {Col(31), Col(33)},
		models.FieldMedicine:     {Col(52)},
	}
}

type mappingFile struct {
	Columns map[string][]ColumnRef `yaml:"columns"`
}

// LoadMapping reads a YAML column map and lays it over DefaultMapping.
// Fields the file does not mention keep their default columns.
//
//	columns:
//	  medicine: ["Medicine"]
//	  start_bp: [30, 32]
func LoadMapping(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read column map: %w", err)
	}
	var f mappingFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse column map %s: %w", path, err)
	}
	m := DefaultMapping()
	for field, refs := range f.Columns {
		m[field] = refs
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("column map %s: %w", path, err)
	}
	return m, nil
}

// Validate checks the mapping covers exactly the metric fields and that
// every reference is usable.
func (m Mapping) Validate() error {
	var errs []error
	known := make(map[string]bool, len(models.MetricFields))
	for _, f := range models.MetricFields {
		known[f] = true
		refs, ok := m[f]
		if !ok {
			errs = append(errs, fmt.Errorf("field %s has no column", f))
			continue
		}
		if len(refs) < 1 || len(refs) > 2 {
			errs = append(errs, fmt.Errorf("field %s needs 1 or 2 columns, has %d", f, len(refs)))
		}
		for _, r := range refs {
			if r.Name == "" && r.Index < 0 {
				errs = append(errs, fmt.Errorf("field %s: negative column %d", f, r.Index))
			}
			if r.Name != "" && strings.TrimSpace(r.Name) == "" {
				errs = append(errs, fmt.Errorf("field %s: blank column name", f))
			}
		}
	}
	for f := range m {
		if !known[f] {
			errs = append(errs, fmt.Errorf("unknown field %s", f))
		}
	}
	return errors.Join(errs...)
}

// CheckHeader reports named references that do not appear in header.
// Positional references are not checked; the sheet has no header text
// worth trusting for them.
func (m Mapping) CheckHeader(header []string) []string {
	var problems []string
	for _, f := range models.MetricFields {
		for _, r := range m[f] {
			if r.Name == "" {
				continue
			}
			if _, err := rowlookup.ColumnIndex(header, r.Name); err != nil {
				problems = append(problems, fmt.Sprintf("%s: header %q not found", f, r.Name))
			}
		}
	}
	return problems
}
