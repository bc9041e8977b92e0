package warehouse

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
version: "1"
mode: release
timezone: UTC
server:
  addr: ":9443"
certificate:
  cert: server.crt
  key: server.key
warehouse:
  project_id: proj
  table: ds.tbl
  credentials_file: creds.json
  insert_mode: legacy
  dry_run: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != "release" || cfg.Timezone != "UTC" || cfg.Server.Addr != ":9443" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Certificate.Cert != "server.crt" || cfg.Certificate.Key != "server.key" {
		t.Errorf("certificate = %+v", cfg.Certificate)
	}
	w := cfg.Warehouse
	if w.ProjectID != "proj" || w.Table != "ds.tbl" || w.CredentialsFile != "creds.json" {
		t.Errorf("warehouse = %+v", w)
	}
	if w.InsertMode != InsertModeLegacy || !w.DryRun {
		t.Errorf("warehouse = %+v", w)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
mode: dev
warehouse:
  project_id: proj
  table: ds.tbl
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timezone != DefaultTimezone {
		t.Errorf("timezone = %q, want %q", cfg.Timezone, DefaultTimezone)
	}
	if cfg.Server.Addr != ":8443" {
		t.Errorf("addr = %q, want :8443", cfg.Server.Addr)
	}
	if cfg.Warehouse.InsertMode != InsertModeParams {
		t.Errorf("insert_mode = %q, want %q", cfg.Warehouse.InsertMode, InsertModeParams)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing project_id", "mode: dev\nwarehouse:\n  table: ds.tbl\n"},
		{"missing table", "mode: dev\nwarehouse:\n  project_id: proj\n"},
		{"bad insert_mode", "mode: dev\nwarehouse:\n  project_id: proj\n  table: ds.tbl\n  insert_mode: upsert\n"},
		{"broken yaml", "mode: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.body)); err == nil {
				t.Error("want error")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("want error")
	}
}

func TestDryRunner(t *testing.T) {
	ref, err := DryRunner{}.RunStatement(context.Background(), "INSERT INTO t VALUES (1)", nil)
	if err != nil {
		t.Fatal(err)
	}
	if ref.JobID != "dry-run" {
		t.Errorf("job = %q, want dry-run", ref.JobID)
	}
}
