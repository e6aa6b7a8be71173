// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"ecotourism-workers/internal/common/validation"
)

var ErrInvalidDocument = errors.New("invalid vocabulary document")

// LoadDocument reads a vocabulary document and validates it against DocumentSchema.
func LoadDocument(path string) (*VocabularyDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDocument(data)
}

// ParseDocument validates and decodes a vocabulary document.
func ParseDocument(data []byte) (*VocabularyDocument, error) {
	result, err := validation.ValidateJSON(data, DocumentSchema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(result.GetErrorMessages(), "; "))
	}

	var doc VocabularyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &doc, nil
}

// SaveDocument writes doc as indented JSON.
func SaveDocument(path string, doc *VocabularyDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
