package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_Embedded(t *testing.T) {
	for _, name := range []string{SkillDictionary, RankedCandidates} {
		content, err := Schema(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(content), "$schema")
	}
}

func TestSchema_Unknown(t *testing.T) {
	_, err := Schema("nope.schema.json")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "nope.schema.json", loadErr.Path)
}

func TestValidate_SkillDictionary(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantError bool
	}{
		{
			name: "valid dictionary",
			doc:  `{"languages": [{"name": "Go", "aliases": ["golang"]}, {"name": "Python"}]}`,
		},
		{
			name:      "empty object",
			doc:       `{}`,
			wantError: true,
		},
		{
			name:      "missing name",
			doc:       `{"languages": [{"aliases": ["golang"]}]}`,
			wantError: true,
		},
		{
			name:      "blank name",
			doc:       `{"languages": [{"name": "   "}]}`,
			wantError: true,
		},
		{
			name:      "category is not a list",
			doc:       `{"languages": {"name": "Go"}}`,
			wantError: true,
		},
		{
			name:      "unknown field",
			doc:       `{"languages": [{"name": "Go", "level": "expert"}]}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(SkillDictionary, []byte(tt.doc))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError type")
			assert.Greater(t, len(validationErr.Errors), 0)
		})
	}
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(SkillDictionary, []byte("{ invalid json }"))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateFile_RankedCandidates(t *testing.T) {
	tmpDir := t.TempDir()

	valid := filepath.Join(tmpDir, "ranked.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{
		"batch_id": "b1",
		"ranked_candidates": [{
			"id": "r1",
			"final_score": 74.5,
			"rank": 1,
			"normalized_scores": {"similarity": 60, "skills": 80, "experience": 90},
			"explanation": "Candidate ranks as a Potential Match"
		}]
	}`), 0644))
	assert.NoError(t, ValidateFile(RankedCandidates, valid))

	invalid := filepath.Join(tmpDir, "bad_rank.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{
		"batch_id": "b1",
		"ranked_candidates": [{
			"id": "r1",
			"final_score": 74.5,
			"rank": 0,
			"normalized_scores": {"similarity": 60, "skills": 80, "experience": 90},
			"explanation": ""
		}]
	}`), 0644))
	err := ValidateFile(RankedCandidates, invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rank")
}

func TestValidateFile_NonExistentJSON(t *testing.T) {
	err := ValidateFile(RankedCandidates, "testdata/nonexistent_json.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["id"], "properties": {"id": {"type": "string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"id": "abc"}`))

	err := ValidateJSONString(schema, `{"id": 5}`)
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "id", validationErr.Errors[0].Field)
}
