package ingestion

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"cv.txt", FormatText},
		{"CV.MD", FormatText},
		{"resume.pdf", FormatPDF},
		{"resume.Docx", FormatDOCX},
	}
	for _, tt := range tests {
		got, err := DetectFormat(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	for _, name := range []string{"photo.png", "legacy.doc", "noext"} {
		_, err := DetectFormat(name)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, name)
	}
}

func TestExtractText_Plain(t *testing.T) {
	text, err := ExtractText("cv.txt", []byte("Jane   Doe\r\nGo developer"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo developer", text)
}

func TestExtractText_BinaryTextFile(t *testing.T) {
	_, err := ExtractText("cv.txt", []byte{0x89, 'P', 'N', 'G', 0x00, 0x01})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, "cv.txt", extractErr.Source)
}

func TestExtractText_DOCX(t *testing.T) {
	doc := buildDOCX(t, map[string]string{
		"word/document.xml": `<w:document><w:body>` +
			`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
			`<w:p><w:r><w:t>Skills:</w:t></w:r><w:r><w:tab/><w:t>Go &amp; Python</w:t></w:r></w:p>` +
			`</w:body></w:document>`,
		"[Content_Types].xml": `<Types/>`,
	})

	text, err := ExtractText("cv.docx", doc)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills: Go & Python", text)
}

func TestExtractText_DOCXWithoutBody(t *testing.T) {
	doc := buildDOCX(t, map[string]string{"docProps/app.xml": "<x/>"})

	_, err := ExtractText("cv.docx", doc)
	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestExtractText_CorruptArchives(t *testing.T) {
	for _, name := range []string{"cv.pdf", "cv.docx"} {
		_, err := ExtractText(name, []byte("definitely not a document"))
		var extractErr *ExtractionError
		assert.True(t, errors.As(err, &extractErr), name)
	}
}

func TestExtractText_Unsupported(t *testing.T) {
	_, err := ExtractText("cv.rtf", []byte("{\\rtf1}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
