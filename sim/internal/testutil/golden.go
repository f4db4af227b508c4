// Package testutil provides shared test infrastructure for the routing engine.
// It holds the golden multi-tick scenarios replayed by sim/ subpackage tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenScenario `json:"tests"`
}

// GoldenScenario is a sequence of ticks replayed through one router, so path
// memory carries over from tick to tick.
type GoldenScenario struct {
	Name  string       `json:"name"`
	Ticks []GoldenTick `json:"ticks"`
}

// GoldenTick pairs one input state with the expected action object.
type GoldenTick struct {
	Input    json.RawMessage `json:"input"`
	Expected json.RawMessage `json:"expected"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// InputStream renders the scenario's states as newline-delimited compact JSON,
// the way they arrive on stdin.
func (s GoldenScenario) InputStream(t *testing.T) string {
	t.Helper()
	var sb strings.Builder
	for i, tick := range s.Ticks {
		var buf bytes.Buffer
		if err := json.Compact(&buf, tick.Input); err != nil {
			t.Fatalf("%s: tick %d input: %v", s.Name, i+1, err)
		}
		sb.Write(buf.Bytes())
		sb.WriteByte('\n')
	}
	return sb.String()
}
