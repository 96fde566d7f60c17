// internal/domain/models/metrics.go
package models

import (
	"bytes"
	"encoding/json"
)

// Metric field names, in the order they are rendered and serialized.
const (
	FieldMealLog      = "meal_log"
	FieldGFY          = "gfy"
	FieldSteps        = "steps"
	FieldSleep        = "sleep"
	FieldProtein      = "protein"
	FieldFiber        = "fiber"
	FieldStartHbA1c   = "start_hba1c"
	FieldLatestEA1c   = "latest_ea1c"
	FieldStartWeight  = "start_weight"
	FieldLatestWeight = "latest_weight"
	FieldStartBMI     = "start_bmi"
	FieldLatestBMI    = "latest_bmi"
	FieldStartVFat    = "start_vfat"
	FieldLatestVFat   = "latest_vfat"
	FieldStartBP      = "start_bp"
	FieldLatestBP     = "latest_bp"
	FieldMedicine     = "medicine"
)

// MetricFields lists every field a MetricsRecord carries.
var MetricFields = []string{
	FieldMealLog,
	FieldGFY,
	FieldSteps,
	FieldSleep,
	FieldProtein,
	FieldFiber,
	FieldStartHbA1c,
	FieldLatestEA1c,
	FieldStartWeight,
	FieldLatestWeight,
	FieldStartBMI,
	FieldLatestBMI,
	FieldStartVFat,
	FieldLatestVFat,
	FieldStartBP,
	FieldLatestBP,
	FieldMedicine,
}

// DefaultValue is substituted for cells that are missing from a row.
const DefaultValue = "0"

// Value is one extracted metric.
//
// Present is false when the source cell did not exist and Text holds the
// substituted default. A cell that exists but is blank is Present with
// empty Text.
type Value struct {
	Text    string
	Present bool
}

// String returns the display text.
func (v Value) String() string { return v.Text }

// MarshalJSON encodes the value as its text so the wire shape stays a flat
// object of strings.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Text)
}

// MetricsRecord holds one member's metrics. Every field in MetricFields is
// always set; use NewMetricsRecord to get a fully defaulted record.
type MetricsRecord struct {
	values map[string]Value
}

// NewMetricsRecord returns a record with every field set to def and
// marked absent.
func NewMetricsRecord(def string) MetricsRecord {
	m := MetricsRecord{values: make(map[string]Value, len(MetricFields))}
	for _, f := range MetricFields {
		m.values[f] = Value{Text: def}
	}
	return m
}

// Set stores v under field.
func (m *MetricsRecord) Set(field string, v Value) {
	if m.values == nil {
		m.values = make(map[string]Value, len(MetricFields))
	}
	m.values[field] = v
}

// Get returns the value for field and whether the record knows the field.
func (m MetricsRecord) Get(field string) (Value, bool) {
	v, ok := m.values[field]
	return v, ok
}

// Strings returns field name -> display text for every field.
func (m MetricsRecord) Strings() map[string]string {
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v.Text
	}
	return out
}

// Missing returns, in field order, the fields whose value was defaulted.
func (m MetricsRecord) Missing() []string {
	var out []string
	for _, f := range MetricFields {
		if v, ok := m.values[f]; ok && !v.Present {
			out = append(out, f)
		}
	}
	return out
}

// MarshalJSON writes the record as a flat object in MetricFields order.
func (m MetricsRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range MetricFields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(f)
		v, err := json.Marshal(m.values[f].Text)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
