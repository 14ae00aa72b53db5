package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rupor-github/gencfg"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
book:
  id: "testmod:guide"
  resource_dirs: ["resources", "overrides"]
  lang: ru_ru
  allow_missing_translations: true
site:
  title: "Guide Book"
  search_index: true
  textures:
    scale: nearest
    icon_size: 128
logging:
  console:
    level: normal
  file:
    level: debug
    destination: /tmp/test.log
    mode: append
reporting:
  destination: /tmp/test-report.zip
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Book.ID != "testmod:guide" {
		t.Errorf("Book.ID = %q, want testmod:guide", cfg.Book.ID)
	}

	if len(cfg.Book.ResourceDirs) != 2 {
		t.Errorf("ResourceDirs length = %d, want 2", len(cfg.Book.ResourceDirs))
	}

	if cfg.Book.Lang != "ru_ru" {
		t.Errorf("Lang = %q, want ru_ru", cfg.Book.Lang)
	}

	if !cfg.Book.AllowMissing {
		t.Error("Expected AllowMissing to be true")
	}

	if cfg.Site.Textures.Scale != TextureScaleModeNearest {
		t.Errorf("Textures.Scale = %v, want nearest", cfg.Site.Textures.Scale)
	}

	if cfg.Site.Textures.IconSize != 128 {
		t.Errorf("IconSize = %d, want 128", cfg.Site.Textures.IconSize)
	}

	// defaults survive partial override
	if cfg.Book.DefaultLang == "" {
		t.Error("DefaultLang should keep its default value")
	}
	if cfg.Site.TitleTemplate == "" {
		t.Error("TitleTemplate should keep its default value")
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unknown.yaml")

	configWithUnknown := `version: 1
unknown_field: value
book:
  id: "testmod:guide"
`

	if err := os.WriteFile(configPath, []byte(configWithUnknown), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_ValidationError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad version", "version: 2\n"},
		{"empty resource dirs", "version: 1\nbook:\n  resource_dirs: []\n"},
		{"icon size too small", "version: 1\nsite:\n  textures:\n    icon_size: 4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write config file: %v", err)
			}
			if _, err := LoadConfiguration(configPath); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if len(data) == 0 {
		t.Error("Prepare() returned empty data")
	}

	// Verify it's valid YAML by trying to unmarshal
	cfg := &Config{}
	_, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Book.ID = "testmod:guide"

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	cfg2 := &Config{}
	if _, err := unmarshalConfig(data, cfg2, false); err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if cfg2.Book.ID != cfg.Book.ID {
		t.Errorf("Book.ID mismatch after dump/load: got %q, want %q", cfg2.Book.ID, cfg.Book.ID)
	}
	if cfg2.Site.Textures.Scale != cfg.Site.Textures.Scale {
		t.Errorf("Textures.Scale mismatch after dump/load")
	}
}

func TestTextureScaleModeParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  TextureScaleMode
		shouldErr bool
	}{
		{"none", "none", TextureScaleModeNone, false},
		{"nearest", "nearest", TextureScaleModeNearest, false},
		{"smooth", "smooth", TextureScaleModeSmooth, false},
		{"invalid", "bicubic", TextureScaleMode(0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTextureScaleMode(tt.input)
			if tt.shouldErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ParseTextureScaleMode(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestOutputLayout(t *testing.T) {
	if got, err := ParseOutputLayout("zip"); err != nil || got != OutputLayoutZip {
		t.Errorf("ParseOutputLayout(zip) = %v, %v", got, err)
	}
	if _, err := ParseOutputLayout("tar"); err == nil {
		t.Error("Expected error for unknown layout")
	}
	if OutputLayoutTree.Ext() != "" {
		t.Errorf("tree layout Ext() = %q, want empty", OutputLayoutTree.Ext())
	}
	if OutputLayoutZip.Ext() != ".zip" {
		t.Errorf("zip layout Ext() = %q", OutputLayoutZip.Ext())
	}
}

func TestOutputLayout_Ext_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Ext() should panic for invalid layout")
		}
	}()
	OutputLayout(99).Ext()
}
