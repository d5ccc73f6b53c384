package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauern/vita-go/pkg/gp/primitive"
)

func TestInMemoryBasicAccess(t *testing.T) {
	examples := []Example{
		{Input: []primitive.Value{{Domain: primitive.DomainDouble, Double: 1}}, Output: primitive.Value{Domain: primitive.DomainDouble, Double: 2}},
		{Input: []primitive.Value{{Domain: primitive.DomainDouble, Double: 3}}, Output: primitive.Value{Domain: primitive.DomainDouble, Double: 4}},
	}
	ds := NewInMemory(examples, 1, nil, nil)

	if ds.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ds.Len())
	}
	if ds.IsClassification() {
		t.Fatalf("expected regression dataset (no class labels)")
	}
	if ds.Example(1).Output.Double != 4 {
		t.Fatalf("unexpected example output: %+v", ds.Example(1))
	}
}

func TestInMemoryDifficultyAndAgeMutable(t *testing.T) {
	ds := NewInMemory([]Example{{Input: nil, Output: primitive.Void}}, 0, nil, nil)

	ds.SetDifficulty(0, 3.5)
	ds.SetAge(0, 7)

	if ds.Difficulty(0) != 3.5 {
		t.Fatalf("Difficulty(0) = %v, want 3.5", ds.Difficulty(0))
	}
	if ds.Age(0) != 7 {
		t.Fatalf("Age(0) = %d, want 7", ds.Age(0))
	}
}

func TestLoadCSVRegression(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	content := "1.0,0.5\n2.0,1.5\n3.0,2.5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	ds, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if ds.IsClassification() {
		t.Fatalf("expected regression dataset")
	}
	if ds.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ds.Len())
	}
	if ds.Features() != 1 {
		t.Fatalf("Features() = %d, want 1", ds.Features())
	}
}

func TestLoadCSVClassification(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "iris-like.csv")
	content := "setosa,5.1,3.5\nversicolor,7.0,3.2\nsetosa,4.9,3.0\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	ds, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if !ds.IsClassification() {
		t.Fatalf("expected classification dataset")
	}
	if ds.Classes() != 2 {
		t.Fatalf("Classes() = %d, want 2", ds.Classes())
	}
}

func TestLoadCSVSingleClassErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "one-class.csv")
	content := "setosa,5.1,3.5\nsetosa,4.9,3.0\nsetosa,4.7,3.2\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := LoadCSV(path); err == nil {
		t.Fatalf("expected error loading a classification dataset with a single class")
	}
}

func TestLoadCSVEmptyFileErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := LoadCSV(path); err == nil {
		t.Fatalf("expected error loading an empty dataset")
	}
}
