package output

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/task-extract-api/internal/domain"
)

func TestValidate(t *testing.T) {
	t.Run("empty result", func(t *testing.T) {
		assert.NoError(t, Validate(domain.NewExtractionResult()))
		assert.NoError(t, Validate(&domain.ExtractionResult{}))
	})

	t.Run("populated result", func(t *testing.T) {
		res := domain.NewExtractionResult()
		res.Tasks = append(res.Tasks,
			domain.TaskRecord{Number: "1.01", Title: "Replace Filter", Details: domain.TaskDetails{Summary: "x"}},
			domain.TaskRecord{Number: "12.3", Title: ""},
		)
		assert.NoError(t, Validate(res))
	})

	t.Run("malformed task number", func(t *testing.T) {
		res := domain.NewExtractionResult()
		res.Tasks = append(res.Tasks, domain.TaskRecord{Number: "1.001"})
		err := Validate(res)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrProcessing))
	})

	t.Run("nil result", func(t *testing.T) {
		err := Validate(nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrProcessing))
	})
}

func TestValidateJSON(t *testing.T) {
	validTask := `{"task_number":"1.01","task_title":"t","details":{
		"personnel_required":"","energy_isolation":"","time_required":"",
		"consumables":"","tools_required":"","summary":""}}`

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"empty list", `{"tasks":[]}`, false},
		{"one task", `{"tasks":[` + validTask + `]}`, false},
		{"null list", `{"tasks":null}`, true},
		{"missing list", `{}`, true},
		{"extra envelope key", `{"tasks":[],"raw":1}`, true},
		{"missing detail key", `{"tasks":[{"task_number":"1.01","task_title":"t","details":{"summary":""}}]}`, true},
		{"non string detail", `{"tasks":[{"task_number":"1.01","task_title":"t","details":{
			"personnel_required":2,"energy_isolation":"","time_required":"",
			"consumables":"","tools_required":"","summary":""}}]}`, true},
		{"not json", `{"tasks":`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateJSON([]byte(tc.body))
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
