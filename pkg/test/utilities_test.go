package test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"personhood-verifier/pkg/utilities"
)

type MockConfigJson struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Debug   bool   `json:"debug"`
}

type MockConfig struct {
	Name    string
	Version string
	Debug   bool
}

func (mcj MockConfigJson) ConvertToDomain() MockConfig {
	return MockConfig{
		Name:    mcj.Name,
		Version: mcj.Version,
		Debug:   mcj.Debug,
	}
}

type MockItemJson struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type MockItem struct {
	ID   int
	Name string
}

func (mij MockItemJson) ConvertToDomain() MockItem {
	return MockItem{
		ID:   mij.ID,
		Name: mij.Name,
	}
}

func writeTempConfig(t *testing.T, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestReadConfig(t *testing.T) {
	configData, err := json.Marshal(MockConfigJson{
		Name:    "test-app",
		Version: "1.0.0",
		Debug:   true,
	})
	if err != nil {
		t.Fatalf("Failed to marshal test config: %v", err)
	}
	path := writeTempConfig(t, configData)

	result, err := utilities.ReadConfig[MockConfigJson, MockConfig](path)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if result.Name != "test-app" {
		t.Errorf("Expected Name to be 'test-app', got '%s'", result.Name)
	}
	if result.Version != "1.0.0" {
		t.Errorf("Expected Version to be '1.0.0', got '%s'", result.Version)
	}
	if !result.Debug {
		t.Error("Expected Debug to be true")
	}
}

func TestReadConfigFileNotFound(t *testing.T) {
	_, err := utilities.ReadConfig[MockConfigJson, MockConfig]("nonexistent_file.json")
	if err == nil {
		t.Error("Expected error when reading nonexistent file, got nil")
	}
}

func TestReadConfigInvalidJSON(t *testing.T) {
	path := writeTempConfig(t, []byte("{ invalid json"))

	_, err := utilities.ReadConfig[MockConfigJson, MockConfig](path)
	if err == nil {
		t.Error("Expected error when reading invalid JSON, got nil")
	}
}

func TestConvertJsonArrayToDomain(t *testing.T) {
	jsonArray := []MockItemJson{
		{ID: 1, Name: "Item 1"},
		{ID: 2, Name: "Item 2"},
		{ID: 3, Name: "Item 3"},
	}

	result := utilities.ConvertJsonArrayToDomain[MockItemJson, MockItem](jsonArray)

	if len(result) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(result))
	}
	for i, item := range result {
		if item.ID != i+1 {
			t.Errorf("Expected item %d to have ID %d, got %d", i, i+1, item.ID)
		}
		if item.Name != jsonArray[i].Name {
			t.Errorf("Expected item %d to have name '%s', got '%s'", i, jsonArray[i].Name, item.Name)
		}
	}
}

func TestConvertJsonArrayToDomainEmpty(t *testing.T) {
	result := utilities.ConvertJsonArrayToDomain[MockItemJson, MockItem]([]MockItemJson{})
	if len(result) != 0 {
		t.Errorf("Expected 0 items for empty array, got %d", len(result))
	}
}

func TestFailOnErrorWithNilError(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("FailOnError should not panic with nil error: %v", r)
		}
	}()

	utilities.FailOnError(nil, "no error message")
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"Struct", MockItem{ID: 42, Name: "test"}},
		{"String", "simple string"},
		{"Number", 123},
		{"Map", map[string]any{"key1": "value1", "key2": 42}},
		{"Array", []string{"item1", "item2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := utilities.Serialize[any](tt.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			var decoded any
			if err := json.Unmarshal(result, &decoded); err != nil {
				t.Errorf("Serialized result is not valid JSON: %v", err)
			}
		})
	}
}

func TestTernary(t *testing.T) {
	if got := utilities.Ternary(true, "a", "b"); got != "a" {
		t.Errorf("Expected 'a', got '%s'", got)
	}
	if got := utilities.Ternary(false, "a", "b"); got != "b" {
		t.Errorf("Expected 'b', got '%s'", got)
	}
	if got := utilities.Ternary(true, 42, 0); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}
	if got := utilities.Ternary(false, 42, 0); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
}
