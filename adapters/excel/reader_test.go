package excel

import (
	"os"
	"path/filepath"
	"testing"

	"goquade/domain/core"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestDataReader_ReadCSV(t *testing.T) {
	path := writeTempCSV(t, "control,low,high\n1.5,2.0,3.25\n4,5,6\n7,8,9\n")

	data, err := NewDataReader(path).ReadMatrix()
	if err != nil {
		t.Fatalf("ReadMatrix failed: %v", err)
	}

	if len(data.Treatments) != 3 || data.Treatments[0] != "control" || data.Treatments[2] != "high" {
		t.Errorf("unexpected treatments: %v", data.Treatments)
	}
	if data.Matrix.Rows() != 3 || data.Matrix.Cols() != 3 {
		t.Errorf("unexpected shape: %dx%d", data.Matrix.Rows(), data.Matrix.Cols())
	}
	if data.Matrix[0][2] != 3.25 {
		t.Errorf("matrix[0][2] = %v, want 3.25", data.Matrix[0][2])
	}
}

func TestDataReader_TrimsWhitespace(t *testing.T) {
	path := writeTempCSV(t, " a , b \n 1 , 2 \n 3 , 4 \n")

	data, err := NewDataReader(path).ReadMatrix()
	if err != nil {
		t.Fatalf("ReadMatrix failed: %v", err)
	}
	if data.Treatments[0] != "a" || data.Treatments[1] != "b" {
		t.Errorf("labels not trimmed: %v", data.Treatments)
	}
	if data.Matrix[1][1] != 4 {
		t.Errorf("matrix[1][1] = %v, want 4", data.Matrix[1][1])
	}
}

func TestDataReader_NonNumericCell(t *testing.T) {
	path := writeTempCSV(t, "a,b\n1,2\n3,oops\n")

	_, err := NewDataReader(path).ReadMatrix()
	if !core.IsInvalidInput(err) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDataReader_TooFewRows(t *testing.T) {
	path := writeTempCSV(t, "a,b\n1,2\n")

	_, err := NewDataReader(path).ReadMatrix()
	if !core.IsInvalidInput(err) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDataReader_MissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "absent.csv")).ReadMatrix()
	if err == nil {
		t.Error("expected error for missing file")
	}
}
