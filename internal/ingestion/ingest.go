package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

// IngestFromFile reads a document, extracts and cleans its text, and returns it with metadata
func IngestFromFile(path string) (string, *Metadata, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return "", nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	cleaned, err := ExtractText(path, content)
	if err != nil {
		return "", nil, err
	}

	return cleaned, NewMetadata(path, format, cleaned, len(content)), nil
}

// LoadDocuments ingests every path into a Document. A file that cannot be read
// carries its error in Document.Err instead of failing the whole set.
// IDs are file base names without extension, suffixed when repeated.
func LoadDocuments(paths []string) []types.Document {
	docs := make([]types.Document, 0, len(paths))
	ids := newIDAllocator(len(paths))

	for _, path := range paths {
		text, _, err := IngestFromFile(path)
		docs = append(docs, types.Document{ID: ids.next(path), Text: text, Err: err})
	}
	return docs
}

// Upload is a named document received in memory, e.g. a multipart form file
type Upload struct {
	Name string
	Data []byte
}

// DocumentsFromUploads converts uploads into Documents the way LoadDocuments converts files.
// An upload larger than maxBytes (when positive) fails with ErrTooLarge.
func DocumentsFromUploads(uploads []Upload, maxBytes int64) []types.Document {
	docs := make([]types.Document, 0, len(uploads))
	ids := newIDAllocator(len(uploads))

	for _, u := range uploads {
		id := ids.next(u.Name)
		if maxBytes > 0 && int64(len(u.Data)) > maxBytes {
			docs = append(docs, types.Document{ID: id, Err: &ExtractionError{Source: u.Name, Cause: ErrTooLarge}})
			continue
		}
		text, err := ExtractText(u.Name, u.Data)
		docs = append(docs, types.Document{ID: id, Text: text, Err: err})
	}
	return docs
}

// DocumentID derives a document ID from a file name: its base name without extension
func DocumentID(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// idAllocator hands out DocumentIDs, suffixing repeats with -2, -3, ...
type idAllocator struct {
	seen map[string]int
}

func newIDAllocator(capacity int) *idAllocator {
	return &idAllocator{seen: make(map[string]int, capacity)}
}

func (a *idAllocator) next(name string) string {
	id := DocumentID(name)
	a.seen[id]++
	if n := a.seen[id]; n > 1 {
		id = id + "-" + strconv.Itoa(n)
	}
	return id
}
