package storage

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	vitaerrors "github.com/klauern/vita-go/internal/errors"
)

// WriteXML writes data to an XML file with pretty formatting (2-space
// indentation). Creates parent directories if they don't exist. Used for
// the run summary and saved-genome formats, which are XML rather than JSON.
func WriteXML(filePath string, data interface{}) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	xmlData, err := xml.MarshalIndent(data, "", "  ")
	if err != nil {
		return vitaerrors.New(vitaerrors.CodeSerializationFailed, fmt.Sprintf("failed to marshal data to XML: %v", err))
	}

	payload := append([]byte(xml.Header), xmlData...)
	if err := os.WriteFile(filePath, payload, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filePath, err)
	}

	return nil
}

// ReadXML reads and unmarshals an XML file into the provided data structure.
func ReadXML(filePath string, data interface{}) error {
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	if err := xml.Unmarshal(fileData, data); err != nil {
		return vitaerrors.New(vitaerrors.CodeSerializationFailed, fmt.Sprintf("failed to unmarshal XML from %s: %v", filePath, err))
	}

	return nil
}
