package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	BookConfig struct {
		// Book id is a resource location, for example "hexcasting:thehexbook".
		// Checked when generation starts, there is no sensible default.
		ID           string   `yaml:"id"`
		ResourceDirs []string `yaml:"resource_dirs" validate:"required,min=1,dive,required"`
		Lang         string   `yaml:"lang" validate:"required"`
		DefaultLang  string   `yaml:"default_lang" validate:"required"`
		// When set, untranslated keys render as the key itself instead of
		// aborting the build.
		AllowMissing bool `yaml:"allow_missing_translations"`
	}

	TexturesConfig struct {
		Scale    TextureScaleMode `yaml:"scale" validate:"gte=0"`
		IconSize int              `yaml:"icon_size" validate:"min=16,max=256"`
		Strict   bool             `yaml:"strict"`
	}

	SiteConfig struct {
		Title          string         `yaml:"title"`
		URL            string         `yaml:"url"`
		BuildID        string         `yaml:"build_id,omitempty"`
		TitleTemplate  string         `yaml:"title_template"`
		StylesheetPath string         `yaml:"stylesheet_path" sanitize:"assure_file_access"`
		SearchIndex    bool           `yaml:"search_index"`
		Textures       TexturesConfig `yaml:"textures"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Book      BookConfig     `yaml:"book"`
		Site      SiteConfig     `yaml:"site"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	PageTitleTemplateFieldName TemplateFieldName = "title_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(PageTitleTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
