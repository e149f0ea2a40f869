package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-reportpdf/internal/fileutil"
	"github.com/alnah/go-reportpdf/internal/hints"
	"github.com/alnah/go-reportpdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrNoSectionOrder  = errors.New("config declares no sections")
)

// Config holds all configuration for report generation.
type Config struct {
	Sections []SectionConfig `yaml:"sections"`
	Input    InputConfig     `yaml:"input"`
	Output   OutputConfig    `yaml:"output"`
	Report   ReportConfig    `yaml:"report"`
	Sources  SourcesConfig   `yaml:"sources"`
	Assets   AssetsConfig    `yaml:"assets"`
	Debug    DebugConfig     `yaml:"debug"`
}

// SectionConfig declares one section of the report, in order.
// The section's Markdown lives at {input.sectionsDir}/{id}.md.
type SectionConfig struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"` // Empty = derived from id
}

// InputConfig defines input source options.
type InputConfig struct {
	SectionsDir string `yaml:"sectionsDir"` // Directory holding <id>.md files
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Output directory (empty = current directory)
}

// ReportConfig defines report-level metadata.
type ReportConfig struct {
	CompanyName    string `yaml:"companyName"`
	ReportType     string `yaml:"reportType"` // Default: Analysis
	Language       string `yaml:"language"`   // Default: English
	GenerationDate string `yaml:"generationDate"`
	LogoURL        string `yaml:"logoUrl"`
	FaviconURL     string `yaml:"faviconUrl"`
}

// SourcesConfig defines sources block handling.
type SourcesConfig struct {
	Labels              []string `yaml:"labels"`              // Extra heading labels (empty = defaults)
	MaxURLDisplayLength int      `yaml:"maxUrlDisplayLength"` // 0 = default (60)
	CoerceParagraphs    bool     `yaml:"coerceParagraphs"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	Style    string `yaml:"style"`    // Style name (empty = built-in default)
	Template string `yaml:"template"` // Template name (empty = built-in default)
}

// DebugConfig defines debug artifact options.
type DebugConfig struct {
	HTMLDir string `yaml:"htmlDir"` // Empty = no debug output
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if len(cfg.Sections) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSectionOrder, configPath)
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-reportpdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-reportpdf", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s%s",
		ErrConfigNotFound,
		strings.Join(triedPaths, ", "),
		hints.ForConfigNotFound(triedPaths))
}

// titleFromID derives a display title from a section id: underscores become
// spaces and each word is capitalized ("market_overview" -> "Market Overview").
func titleFromID(id string) string {
	words := strings.Fields(strings.ReplaceAll(id, "_", " "))
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
