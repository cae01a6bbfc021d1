// Package config provides configuration loading and management for ontodiff.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/ontodiff/export"
	"github.com/c360studio/ontodiff/ontology"
)

// Output formats for diff reports.
const (
	OutputText     = "text"
	OutputMarkdown = "markdown"
	OutputJSON     = "json"
)

// Config represents the complete ontodiff configuration
type Config struct {
	Input    InputConfig       `yaml:"input"`
	Output   OutputConfig      `yaml:"output"`
	Prefixes map[string]string `yaml:"prefixes,omitempty"`
	Groups   GroupsConfig      `yaml:"groups"`
	Export   ExportConfig      `yaml:"export"`
	Metrics  MetricsConfig     `yaml:"metrics"`
	NATS     NATSConfig        `yaml:"nats"`
	Watch    WatchConfig       `yaml:"watch"`
}

// InputConfig configures how ontology files are read
type InputConfig struct {
	// Format forces a serialization (turtle, ntriples, nquads, rdfxml).
	// Empty detects it from each file extension.
	Format string `yaml:"format"`
}

// OutputConfig configures report rendering
type OutputConfig struct {
	// Format is text, markdown or json (default: text)
	Format string `yaml:"format"`
	// Language is the label language tag (default: en)
	Language string `yaml:"language"`
	// DescriptionLength truncates class descriptions; 0 disables truncation
	DescriptionLength int `yaml:"description_length"`
}

// GroupsConfig maps classes to human-facing domains
type GroupsConfig struct {
	// Namespace is prepended to every local name in Domains
	Namespace string `yaml:"namespace"`
	// Domains maps a domain name to the local names of its main classes
	Domains map[string][]string `yaml:"domains,omitempty"`
}

// ExportConfig configures RDF export of relation deltas
type ExportConfig struct {
	// Format is turtle, ntriples or jsonld (default: turtle)
	Format string `yaml:"format"`
}

// MetricsConfig configures Prometheus metrics output
type MetricsConfig struct {
	// Textfile is written after every diff when set
	Textfile string `yaml:"textfile"`
}

// NATSConfig configures report publishing
type NATSConfig struct {
	// URL is the NATS server URL (empty disables publishing)
	URL string `yaml:"url"`
	// Subject receives JSON diff reports
	Subject string `yaml:"subject"`
	// Timeout bounds connect and flush
	Timeout time.Duration `yaml:"timeout"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	// Debounce is how long to wait after the last change before re-running
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Format: "", // Detect from extension
		},
		Output: OutputConfig{
			Format:            OutputText,
			Language:          "en",
			DescriptionLength: 200,
		},
		Export: ExportConfig{
			Format: string(export.FormatTurtle),
		},
		NATS: NATSConfig{
			Subject: "ontodiff.reports",
			Timeout: 5 * time.Second,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := ontology.ParseFormat(c.Input.Format); err != nil {
		return fmt.Errorf("input.format: %w", err)
	}
	switch c.Output.Format {
	case OutputText, OutputMarkdown, OutputJSON:
	default:
		return fmt.Errorf("output.format must be one of text, markdown, json")
	}
	if c.Output.Language == "" {
		return fmt.Errorf("output.language is required")
	}
	if c.Output.DescriptionLength < 0 {
		return fmt.Errorf("output.description_length must not be negative")
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return fmt.Errorf("export.format: %w", err)
	}
	if c.NATS.URL != "" && c.NATS.Subject == "" {
		return fmt.Errorf("nats.subject is required when nats.url is set")
	}
	if c.NATS.Timeout < 0 {
		return fmt.Errorf("nats.timeout must not be negative")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	for prefix, ns := range c.Prefixes {
		if ns == "" {
			return fmt.Errorf("prefixes.%s has an empty namespace", prefix)
		}
	}
	return nil
}

// DomainOf returns a lookup from class URI to its domain. A class listed
// under several domains belongs to the lexically first one.
func (g GroupsConfig) DomainOf() map[string]string {
	names := make([]string, 0, len(g.Domains))
	for name := range g.Domains {
		names = append(names, name)
	}
	sort.Strings(names)

	lookup := make(map[string]string)
	for _, name := range names {
		for _, local := range g.Domains[name] {
			uri := g.Namespace + local
			if _, taken := lookup[uri]; !taken {
				lookup[uri] = name
			}
		}
	}
	return lookup
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := decodeFile(path, config); err != nil {
		return nil, err
	}
	return config, nil
}

// loadLayer decodes path into a zero Config so that only the keys the file
// sets are non-zero when merged.
func loadLayer(path string) (*Config, error) {
	config := &Config{}
	if err := decodeFile(path, config); err != nil {
		return nil, err
	}
	return config, nil
}

func decodeFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Input
	if other.Input.Format != "" {
		c.Input.Format = other.Input.Format
	}

	// Output
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Output.Language != "" {
		c.Output.Language = other.Output.Language
	}
	if other.Output.DescriptionLength != 0 {
		c.Output.DescriptionLength = other.Output.DescriptionLength
	}

	// Prefixes accumulate
	if len(other.Prefixes) > 0 {
		if c.Prefixes == nil {
			c.Prefixes = make(map[string]string, len(other.Prefixes))
		}
		for k, v := range other.Prefixes {
			c.Prefixes[k] = v
		}
	}

	// Groups replace as a whole
	if len(other.Groups.Domains) > 0 {
		c.Groups = other.Groups
	} else if other.Groups.Namespace != "" {
		c.Groups.Namespace = other.Groups.Namespace
	}

	// Export
	if other.Export.Format != "" {
		c.Export.Format = other.Export.Format
	}

	// Metrics
	if other.Metrics.Textfile != "" {
		c.Metrics.Textfile = other.Metrics.Textfile
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Subject != "" {
		c.NATS.Subject = other.NATS.Subject
	}
	if other.NATS.Timeout != 0 {
		c.NATS.Timeout = other.NATS.Timeout
	}

	// Watch
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
}
