// Package csvutil writes simple header+rows CSV documents, grounded on
// the teacher's internal/csvutil writer: create parent directories,
// write headers, write rows, flush.
package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauern/vita-go/internal/closeutil"
)

// Write writes CSV headers and rows to filePath, creating parent directories.
func Write(filePath string, headers []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer closeutil.CloseWithLog("csvutil", file, filePath)

	return WriteTo(file, headers, rows)
}

// WriteTo writes CSV headers and rows to a writer.
func WriteTo(w io.Writer, headers []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	return nil
}
