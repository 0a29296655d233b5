package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Priyagaggar/TalentLens-AI/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)

	cats := d.Categories()
	assert.Contains(t, cats, "programming_languages")
	assert.Contains(t, cats, "soft_skills")
	assert.IsIncreasing(t, cats)
	assert.Greater(t, d.Len(), 50)
	assert.NotEmpty(t, d.Fingerprint())
}

func TestParse_EntriesKeepFileOrderAndCategory(t *testing.T) {
	d, err := Parse([]byte(`{
		"zeta": [{"name": "Zig"}],
		"alpha": [{"name": " React ", "aliases": [" reactjs "]}, {"name": "Angular"}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "zeta"}, d.Categories())

	entries := d.Entries("alpha")
	require.Len(t, entries, 2)
	assert.Equal(t, "React", entries[0].Name)
	assert.Equal(t, []string{"reactjs"}, entries[0].Aliases)
	assert.Equal(t, "alpha", entries[0].Category)
	assert.Equal(t, "Angular", entries[1].Name)
	assert.Nil(t, d.Entries("missing"))
}

func TestParse_DuplicateNameInCategory(t *testing.T) {
	_, err := Parse([]byte(`{"languages": [{"name": "Go"}, {"name": "go"}]}`))
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Message, "duplicate skill")
}

func TestParse_SameNameInDifferentCategories(t *testing.T) {
	_, err := Parse([]byte(`{"a": [{"name": "SQL"}], "b": [{"name": "SQL"}]}`))
	assert.NoError(t, err)
}

func TestParse_SchemaViolation(t *testing.T) {
	_, err := Parse([]byte(`{"languages": [{"aliases": ["x"]}]}`))
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`not json`))
	require.Error(t, err)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "skills.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tools": [{"name": "Git"}]}`), 0644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Len())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFingerprint_TracksContent(t *testing.T) {
	a, err := Parse([]byte(`{"tools": [{"name": "Git"}], "db": [{"name": "Redis"}]}`))
	require.NoError(t, err)
	b, err := Parse([]byte(`{"db": [{"name": "Redis"}], "tools": [{"name": "Git"}]}`))
	require.NoError(t, err)
	c, err := Parse([]byte(`{"tools": [{"name": "Git", "aliases": ["github"]}], "db": [{"name": "Redis"}]}`))
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
