package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/klauern/vita-go/internal/closeutil"
	vitaerrors "github.com/klauern/vita-go/internal/errors"
	"github.com/klauern/vita-go/pkg/gp/primitive"
)

// LoadCSV reads a comma-delimited file with the first column as the output
// (target) and every other column as a numeric feature, building an
// InMemory dataset. Numeric recognition is standard float64 parsing; if
// the first column's values fail to parse as numbers, the dataset is
// treated as classification and the distinct first-column strings become
// class labels (spec.md §6's "non-numeric first-column values trigger
// classification mode").
//
// This is deliberately the thin end of the dataset story: full
// delimiter-sniffing, header detection and double-quote escaping is out
// of scope (spec.md §1), so this adapter assumes no header row, a comma
// delimiter, and leaves richer formats (XRFF, configurable output column)
// unimplemented.
func LoadCSV(path string) (*InMemory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer closeutil.CloseWithLog("dataset", f, path)

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, vitaerrors.New(vitaerrors.CodeDatasetParseFailed, fmt.Sprintf("failed to parse dataset %s: %v", path, err))
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, vitaerrors.New(vitaerrors.CodeEmptyDataset, "dataset contains zero valid examples")
	}

	features := len(rows[0]) - 1
	if features <= 0 {
		return nil, fmt.Errorf("dataset %s: need at least one feature column in addition to the output column", path)
	}

	_, classification := classifyOutputColumn(rows)

	var labels []string
	labelIndex := make(map[string]int)
	if classification {
		for _, row := range rows {
			if _, ok := labelIndex[row[0]]; !ok {
				labelIndex[row[0]] = len(labels)
				labels = append(labels, row[0])
			}
		}
		if len(labels) < 2 {
			return nil, vitaerrors.New(vitaerrors.CodeInsufficientClasses, fmt.Sprintf("dataset %s: classification requires at least 2 distinct classes, found %d", path, len(labels)))
		}
	}

	examples := make([]Example, 0, len(rows))
	for _, row := range rows {
		if len(row)-1 != features {
			log.Printf("dataset %s: skipping row with %d feature columns, want %d", path, len(row)-1, features)
			continue // skip malformed row (spec.md §7: data-format errors are skipped with a warning)
		}

		input := make([]primitive.Value, features)
		ok := true
		for i := 0; i < features; i++ {
			v, err := strconv.ParseFloat(row[i+1], 64)
			if err != nil {
				ok = false
				break
			}
			input[i] = primitive.Value{Domain: primitive.DomainDouble, Double: v}
		}
		if !ok {
			continue
		}

		var output primitive.Value
		if classification {
			output = primitive.Value{Domain: primitive.DomainInt, Int: int64(labelIndex[row[0]])}
		} else {
			v, err := strconv.ParseFloat(row[0], 64)
			if err != nil {
				continue
			}
			output = primitive.Value{Domain: primitive.DomainDouble, Double: v}
		}

		examples = append(examples, Example{Input: input, Output: output})
	}

	if len(examples) == 0 {
		return nil, vitaerrors.New(vitaerrors.CodeEmptyDataset, "dataset contains zero valid examples after parsing")
	}

	return NewInMemory(examples, features, nil, labels), nil
}

// classifyOutputColumn decides whether the first column is numeric
// (regression) or nominal (classification): if every row's first value
// parses as a float, it's regression.
func classifyOutputColumn(rows [][]string) (float64, bool) {
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		if _, err := strconv.ParseFloat(row[0], 64); err != nil {
			return 0, true
		}
	}
	return 0, false
}
