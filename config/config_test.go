package config

import (
	"strings"
	"testing"
)

func TestValidateYAMLContent_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte("storage:\n  db_path: \"data.db\"\n"))
	if err != nil {
		t.Fatalf("expected config to validate: %v", err)
	}
	if cfg.Storage.DBPath != "data.db" {
		t.Fatalf("unexpected db path %q", cfg.Storage.DBPath)
	}
	if cfg.Server.Port != DefaultPort || cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if got := cfg.Server.BaseURL(); got != "http://localhost:8080" {
		t.Fatalf("unexpected base url %q", got)
	}
}

func TestValidateYAMLContent_ExampleIsValid(t *testing.T) {
	t.Parallel()

	if _, err := ValidateYAMLContent([]byte(ExampleYAML())); err != nil {
		t.Fatalf("example config must validate: %v", err)
	}
}

func TestValidateYAMLContent_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "bad log level", content: "log:\n  level: \"verbose\"\n", field: "Level"},
		{name: "bad log format", content: "log:\n  format: \"xml\"\n", field: "Format"},
		{name: "port out of range", content: "server:\n  port: 70000\n", field: "Port"},
		{name: "public url", content: "server:\n  public_url: \"not a url\"\n", field: "PublicURL"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ValidateYAMLContent([]byte(tc.content))
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Fatalf("expected error on %s, got %v", tc.field, err)
			}
		})
	}
}

func TestValidateYAMLContent_NormalizesLogSettings(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte("log:\n  level: \" DEBUG \"\n  format: \"Console\"\n"))
	if err != nil {
		t.Fatalf("expected config to validate: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestServerConfig_BaseURLPrefersPublicURL(t *testing.T) {
	t.Parallel()

	server := ServerConfig{Host: "127.0.0.1", Port: 9000, PublicURL: "https://overtime.example.com/"}
	if got := server.BaseURL(); got != "https://overtime.example.com" {
		t.Fatalf("unexpected base url %q", got)
	}
	if got := server.Addr(); got != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr %q", got)
	}
}
