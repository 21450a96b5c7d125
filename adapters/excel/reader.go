package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"goquade/domain/core"
	"goquade/domain/quade"
)

// MatrixData is an observation matrix read from a file, plus its header row
// of treatment labels
type MatrixData struct {
	Treatments []string
	Matrix     quade.Matrix
}

// DataReader reads block-design observation matrices from Excel or CSV files.
// The expected layout is a header row of treatment labels followed by one row
// per block of numeric observations.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadMatrix reads the observation matrix. Malformed files surface as
// InvalidInput so callers can distinguish boundary errors from I/O failures.
func (r *DataReader) ReadMatrix() (*MatrixData, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, core.NewInvalidInputErrorf("unsupported file type: %s", r.fileType)
	}
}

// readExcel reads Sheet1 into a matrix
func (r *DataReader) readExcel() (*MatrixData, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	// Always use Sheet1
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}

	return parseRows(rows)
}

// readCSV reads a CSV file into a matrix
func (r *DataReader) readCSV() (*MatrixData, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	return parseRows(records)
}

func parseRows(rows [][]string) (*MatrixData, error) {
	if len(rows) < 3 {
		return nil, core.NewInvalidInputError("file must have a header row and at least 2 block rows")
	}

	header := rows[0]
	treatments := make([]string, len(header))
	for j, label := range header {
		treatments[j] = strings.TrimSpace(label)
	}

	matrix := make(quade.Matrix, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != len(treatments) {
			return nil, core.NewInvalidInputErrorf("row %d has %d cells, expected %d", i+2, len(row), len(treatments))
		}
		values := make([]float64, len(row))
		for j, cell := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, core.NewInvalidInputErrorf("row %d, column %q: %q is not numeric", i+2, treatments[j], cell)
			}
			values[j] = v
		}
		matrix = append(matrix, values)
	}

	if err := matrix.Validate(); err != nil {
		return nil, err
	}

	return &MatrixData{Treatments: treatments, Matrix: matrix}, nil
}
