package metcolour

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ResultsFileName is the file WriteResults creates inside its directory.
const ResultsFileName = "images.json"

// WriteResults writes results as a JSON array to dir/images.json, creating dir
// if needed, and returns the file path. A nil slice is written as [].
func WriteResults(dir string, results []ImageResult) (string, error) {
	if results == nil {
		results = []ImageResult{}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create results directory %s: %w", dir, err)
	}

	data, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("encode results: %w", err)
	}

	path := filepath.Join(dir, ResultsFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // results are meant to be readable
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ReadResults loads a file previously written by WriteResults.
func ReadResults(path string) ([]ImageResult, error) {
	data, err := os.ReadFile(path) //nolint:gosec // caller-supplied results path
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var results []ImageResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return results, nil
}
