package shared_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	c := shared.Load()
	if c.DataBackend != "csv" || c.HTTPAddr != ":8080" {
		t.Fatalf("defaults: %+v", c)
	}
	if c.CacheTTL != 900*time.Second {
		t.Fatalf("default TTL: %v", c.CacheTTL)
	}
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "http_addr: \":9090\"\ndata_backend: mysql\ncache_ttl_seconds: 60\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ANALYZER_CONFIG", path)
	t.Setenv("DATA_BACKEND", "csv") // env wins over file

	c := shared.Load()
	if c.HTTPAddr != ":9090" {
		t.Fatalf("file override lost: %q", c.HTTPAddr)
	}
	if c.DataBackend != "csv" {
		t.Fatalf("env should win over file: %q", c.DataBackend)
	}
	if c.CacheTTL != 60*time.Second {
		t.Fatalf("TTL from file: %v", c.CacheTTL)
	}
}

func TestLoad_BadFileIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\nnot yaml ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ANALYZER_CONFIG", path)

	c := shared.Load()
	if c.HTTPAddr != ":8080" {
		t.Fatalf("bad file should leave defaults: %+v", c)
	}
}
