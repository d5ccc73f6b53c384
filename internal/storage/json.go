// Package storage provides file I/O utilities for persisting run artifacts:
// statistics, saved genomes and run summaries. Handles JSON and XML
// serialization with proper formatting and error handling.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	vitaerrors "github.com/klauern/vita-go/internal/errors"
)

// WriteJSON writes data to a JSON file with pretty formatting (2-space
// indentation). Creates parent directories if they don't exist.
func WriteJSON(filePath string, data interface{}) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return vitaerrors.New(vitaerrors.CodeSerializationFailed, fmt.Sprintf("failed to marshal data to JSON: %v", err))
	}

	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filePath, err)
	}

	return nil
}

// ReadJSON reads and unmarshals a JSON file into the provided data structure.
func ReadJSON(filePath string, data interface{}) error {
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	if err := json.Unmarshal(fileData, data); err != nil {
		return vitaerrors.New(vitaerrors.CodeSerializationFailed, fmt.Sprintf("failed to unmarshal JSON from %s: %v", filePath, err))
	}

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// DirectoryExists checks if a directory exists at the given path.
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && info.IsDir()
}

// EnsureDirectory creates a directory and all parent directories if they
// don't exist.
func EnsureDirectory(dirPath string) error {
	if DirectoryExists(dirPath) {
		return nil
	}

	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}

	return nil
}

// ListFiles returns all files in dirPath whose extension matches ext
// (e.g. ".json"). Returns an empty slice if the directory doesn't exist.
func ListFiles(dirPath, ext string) ([]string, error) {
	if !DirectoryExists(dirPath) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dirPath, err)
	}

	matched := make([]string, 0)
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ext {
			matched = append(matched, filepath.Join(dirPath, entry.Name()))
		}
	}

	return matched, nil
}

// DeleteFile removes a file if it exists. Returns nil if the file doesn't
// exist (idempotent).
func DeleteFile(filePath string) error {
	if !FileExists(filePath) {
		return nil
	}

	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", filePath, err)
	}

	return nil
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(filePath string) (int64, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to stat file %s: %w", filePath, err)
	}

	return info.Size(), nil
}
