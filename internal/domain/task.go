package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Detail field keys, in the order they are reported.
const (
	FieldPersonnelRequired = "personnel_required"
	FieldEnergyIsolation   = "energy_isolation"
	FieldTimeRequired      = "time_required"
	FieldConsumables       = "consumables"
	FieldToolsRequired     = "tools_required"
	FieldSummary           = "summary"
)

// FieldKeys lists every detail key a TaskRecord carries.
var FieldKeys = []string{
	FieldPersonnelRequired,
	FieldEnergyIsolation,
	FieldTimeRequired,
	FieldConsumables,
	FieldToolsRequired,
	FieldSummary,
}

var taskNumberRegex = regexp.MustCompile(`^\d{1,2}\.\d{1,2}$`)

// TaskDetails holds the labeled fields found in a task block.
// Absent fields stay empty; every key is always serialized.
type TaskDetails struct {
	PersonnelRequired string `json:"personnel_required"`
	EnergyIsolation   string `json:"energy_isolation"`
	TimeRequired      string `json:"time_required"`
	Consumables       string `json:"consumables"`
	ToolsRequired     string `json:"tools_required"`
	Summary           string `json:"summary"`
}

// Get returns the value stored under a field key, or "" for unknown keys.
func (d TaskDetails) Get(key string) string {
	switch key {
	case FieldPersonnelRequired:
		return d.PersonnelRequired
	case FieldEnergyIsolation:
		return d.EnergyIsolation
	case FieldTimeRequired:
		return d.TimeRequired
	case FieldConsumables:
		return d.Consumables
	case FieldToolsRequired:
		return d.ToolsRequired
	case FieldSummary:
		return d.Summary
	default:
		return ""
	}
}

// Set stores value under a field key. It reports false for unknown keys.
func (d *TaskDetails) Set(key, value string) bool {
	switch key {
	case FieldPersonnelRequired:
		d.PersonnelRequired = value
	case FieldEnergyIsolation:
		d.EnergyIsolation = value
	case FieldTimeRequired:
		d.TimeRequired = value
	case FieldConsumables:
		d.Consumables = value
	case FieldToolsRequired:
		d.ToolsRequired = value
	case FieldSummary:
		d.Summary = value
	default:
		return false
	}
	return true
}

// TaskRecord is one maintenance task found in a document.
type TaskRecord struct {
	Number  string      `json:"task_number"`
	Title   string      `json:"task_title"`
	Details TaskDetails `json:"details"`
}

// Validate checks that the record carries a well-formed task number.
func (t TaskRecord) Validate() error {
	if !taskNumberRegex.MatchString(t.Number) {
		return fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidTaskNumber, t.Number)
	}
	return nil
}

// ExtractionStats counts what a single extraction run observed.
// It is reported through logs and metrics, never in the response body.
type ExtractionStats struct {
	PagesScanned        int
	PagesWithoutMarkers int
	InvalidMarkers      int
	DuplicatesSkipped   int
}

// ExtractionResult is the ordered, deduplicated output of one run.
type ExtractionResult struct {
	Tasks []TaskRecord    `json:"tasks"`
	Stats ExtractionStats `json:"-"`
}

// NewExtractionResult returns an empty result whose task list is non-nil.
func NewExtractionResult() *ExtractionResult {
	return &ExtractionResult{Tasks: []TaskRecord{}}
}

// MarshalJSON serializes the result as {"tasks": [...]}, never with a null list.
func (r ExtractionResult) MarshalJSON() ([]byte, error) {
	tasks := r.Tasks
	if tasks == nil {
		tasks = []TaskRecord{}
	}
	return json.Marshal(struct {
		Tasks []TaskRecord `json:"tasks"`
	}{Tasks: tasks})
}
