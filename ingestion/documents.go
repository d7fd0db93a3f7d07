package ingestion

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ReadDocuments loads each path as a Document named after its base name.
func ReadDocuments(paths ...string) ([]Document, error) {
	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		docs = append(docs, Document{Name: filepath.Base(path), Text: string(data)})
	}
	return docs, nil
}

// ReadDocument loads a single Document from r.
func ReadDocument(name string, r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", name, err)
	}
	return Document{Name: name, Text: string(data)}, nil
}
