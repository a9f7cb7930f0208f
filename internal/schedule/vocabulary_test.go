package schedule

import (
	"os"
	"reflect"
	"testing"
)

// Helper to create a temporary YAML file for testing
func createTempConfig(t *testing.T, content string) string {
	tmpfile, err := os.CreateTemp("", "vocabulary_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}
	return tmpfile.Name()
}

func TestLoadVocabulary(t *testing.T) {
	// Case 1: No file configured
	voc, err := LoadVocabulary("")
	if err != nil {
		t.Fatalf("Empty path should give defaults, got %v", err)
	}
	if !reflect.DeepEqual(voc, DefaultVocabulary()) {
		t.Errorf("Got %+v, want defaults", voc)
	}

	// Case 2: Partial override keeps the other list
	path := createTempConfig(t, `
platforms:
  - FB
  - IG
  - Dcard
`)
	defer os.Remove(path)

	voc, err = LoadVocabulary(path)
	if err != nil {
		t.Fatalf("Failed to load valid vocabulary: %v", err)
	}
	if want := []string{"FB", "IG", "Dcard"}; !reflect.DeepEqual(voc.Platforms, want) {
		t.Errorf("Platforms: Got %v, want %v", voc.Platforms, want)
	}
	if !reflect.DeepEqual(voc.Formats, DefaultVocabulary().Formats) {
		t.Errorf("Formats should keep defaults, got %v", voc.Formats)
	}
	if !voc.HasPlatform("Dcard") || voc.HasPlatform("YT") {
		t.Error("HasPlatform does not follow the loaded list")
	}
}

func TestLoadVocabulary_Errors(t *testing.T) {
	// Case 1: File does not exist
	if _, err := LoadVocabulary("non_existent_file.yaml"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}

	// Case 2: Invalid YAML syntax
	badYamlPath := createTempConfig(t, "platforms: [FB, IG")
	defer os.Remove(badYamlPath)

	if _, err := LoadVocabulary(badYamlPath); err == nil {
		t.Error("Expected error for invalid YAML, got nil")
	}
}

func TestOptions(t *testing.T) {
	opts := DefaultVocabulary().Options()
	if len(opts.Weekdays) != 7 || opts.Weekdays[0] != "每週一" {
		t.Errorf("Weekdays should start on Monday, got %v", opts.Weekdays)
	}
	if len(opts.CycleModes) != 3 || len(opts.Kinds) != 2 || len(opts.Statuses) != 2 {
		t.Errorf("Unexpected options: %+v", opts)
	}

	// Callers must not be able to edit the vocabulary through the options
	opts.Platforms[0] = "changed"
	if DefaultVocabulary().Platforms[0] != "FB" {
		t.Error("Options leaked the vocabulary slice")
	}
}
