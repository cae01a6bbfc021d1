package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output.Format != OutputText {
		t.Errorf("expected default output format text, got %s", cfg.Output.Format)
	}
	if cfg.Output.Language != "en" {
		t.Errorf("expected default language en, got %s", cfg.Output.Language)
	}
	if cfg.Export.Format != "turtle" {
		t.Errorf("expected default export format turtle, got %s", cfg.Export.Format)
	}
	if cfg.NATS.URL != "" {
		t.Error("expected publishing disabled by default")
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("expected debounce 500ms, got %v", cfg.Watch.Debounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "input format override",
			modify:  func(c *Config) { c.Input.Format = "rdfxml" },
			wantErr: false,
		},
		{
			name:    "unknown input format",
			modify:  func(c *Config) { c.Input.Format = "csv" },
			wantErr: true,
		},
		{
			name:    "unknown output format",
			modify:  func(c *Config) { c.Output.Format = "html" },
			wantErr: true,
		},
		{
			name:    "missing language",
			modify:  func(c *Config) { c.Output.Language = "" },
			wantErr: true,
		},
		{
			name:    "negative description length",
			modify:  func(c *Config) { c.Output.DescriptionLength = -1 },
			wantErr: true,
		},
		{
			name:    "unknown export format",
			modify:  func(c *Config) { c.Export.Format = "rdfxml" },
			wantErr: true,
		},
		{
			name:    "nats url without subject",
			modify:  func(c *Config) { c.NATS.URL = "nats://localhost:4222"; c.NATS.Subject = "" },
			wantErr: true,
		},
		{
			name:    "empty prefix namespace",
			modify:  func(c *Config) { c.Prefixes = map[string]string{"ec": ""} },
			wantErr: true,
		},
		{
			name:    "negative debounce",
			modify:  func(c *Config) { c.Watch.Debounce = -time.Second },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temp file with config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
output:
  format: markdown
  language: fr
prefixes:
  ec: "http://www.ebu.ch/metadata/ontologies/ebucoreplus#"
groups:
  namespace: "http://www.ebu.ch/metadata/ontologies/ebucoreplus#"
  domains:
    Rights & Legal: [Contract, Licence, Rights]
    Actors & Agents: [Account, Agent]
nats:
  url: "nats://test:4222"
  timeout: 2s
watch:
  debounce: 1s
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Output.Format != OutputMarkdown {
		t.Errorf("expected output markdown, got %s", cfg.Output.Format)
	}
	if cfg.Output.Language != "fr" {
		t.Errorf("expected language fr, got %s", cfg.Output.Language)
	}
	if cfg.Output.DescriptionLength != 200 {
		t.Errorf("expected default description length to survive, got %d", cfg.Output.DescriptionLength)
	}
	if cfg.Prefixes["ec"] == "" {
		t.Error("expected ec prefix")
	}
	if len(cfg.Groups.Domains) != 2 {
		t.Errorf("expected 2 domains, got %d", len(cfg.Groups.Domains))
	}
	if cfg.NATS.URL != "nats://test:4222" {
		t.Errorf("expected NATS URL nats://test:4222, got %s", cfg.NATS.URL)
	}
	if cfg.NATS.Subject != "ontodiff.reports" {
		t.Errorf("expected default subject, got %s", cfg.NATS.Subject)
	}
	if cfg.NATS.Timeout != 2*time.Second {
		t.Errorf("expected timeout 2s, got %v", cfg.NATS.Timeout)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("output: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(bad); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestDomainOf(t *testing.T) {
	groups := GroupsConfig{
		Namespace: "http://ex.org/#",
		Domains: map[string][]string{
			"Production": {"Asset", "Essence"},
			"Commercial": {"Asset", "Contract"},
		},
	}

	lookup := groups.DomainOf()
	want := map[string]string{
		"http://ex.org/#Asset":    "Commercial",
		"http://ex.org/#Contract": "Commercial",
		"http://ex.org/#Essence":  "Production",
	}
	if len(lookup) != len(want) {
		t.Fatalf("DomainOf() = %v, want %v", lookup, want)
	}
	for uri, dom := range want {
		if lookup[uri] != dom {
			t.Errorf("DomainOf()[%s] = %s, want %s", uri, lookup[uri], dom)
		}
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	base.Prefixes = map[string]string{"ex": "http://ex.org/#"}
	override := &Config{
		Output: OutputConfig{
			Format: OutputJSON,
		},
		Prefixes: map[string]string{"ec": "http://ec.org/#"},
		Groups: GroupsConfig{
			Namespace: "http://ec.org/#",
			Domains:   map[string][]string{"Audit": {"AuditJob"}},
		},
		Metrics: MetricsConfig{Textfile: "/tmp/ontodiff.prom"},
	}

	base.Merge(override)

	if base.Output.Format != OutputJSON {
		t.Errorf("expected output json, got %s", base.Output.Format)
	}
	// Language should remain from base since override didn't set it
	if base.Output.Language != "en" {
		t.Errorf("expected language to remain default, got %s", base.Output.Language)
	}
	if len(base.Prefixes) != 2 {
		t.Errorf("expected prefixes to accumulate, got %v", base.Prefixes)
	}
	if base.Groups.Namespace != "http://ec.org/#" || len(base.Groups.Domains) != 1 {
		t.Errorf("expected groups to be replaced, got %+v", base.Groups)
	}
	if base.Metrics.Textfile != "/tmp/ontodiff.prom" {
		t.Errorf("expected metrics textfile, got %s", base.Metrics.Textfile)
	}

	base.Merge(nil)
	if base.Output.Format != OutputJSON {
		t.Error("merging nil should be a no-op")
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Output.Format = OutputMarkdown

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	// Load and verify
	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Output.Format != OutputMarkdown {
		t.Errorf("expected output markdown, got %s", loaded.Output.Format)
	}
	if loaded.Watch.Debounce != cfg.Watch.Debounce {
		t.Errorf("expected debounce %v, got %v", cfg.Watch.Debounce, loaded.Watch.Debounce)
	}
}
