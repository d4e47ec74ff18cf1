package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akyairhashvil/timeplan/internal/config"
	"github.com/spf13/viper"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_DOCUMENTS_DIR", filepath.Join(dir, "docs"))
	t.Cleanup(viper.Reset)
	return dir
}

func TestRunListWithMemoryStorage(t *testing.T) {
	setupEnv(t)
	var out, errOut bytes.Buffer
	if code := run([]string{"-storage", "memory", "list"}, &out, &errOut); code != 0 {
		t.Fatalf("expected success, got %d: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "No milestones yet") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunPersistsToSQLite(t *testing.T) {
	dir := setupEnv(t)
	var out, errOut bytes.Buffer
	if code := run([]string{"add", "-date", "2026-04", "Launch"}, &out, &errOut); code != 0 {
		t.Fatalf("add failed with %d: %s", code, errOut.String())
	}
	viper.Reset()
	out.Reset()
	if code := run([]string{"list"}, &out, &errOut); code != 0 {
		t.Fatalf("list failed with %d: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "Launch") {
		t.Fatalf("expected milestone to survive restart, got %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "data", config.AppName, config.DBFileName)); err != nil {
		t.Fatalf("expected sqlite file: %v", err)
	}
}

func TestRunUsageErrors(t *testing.T) {
	setupEnv(t)
	var out, errOut bytes.Buffer
	if code := run([]string{"-nope"}, &out, &errOut); code != 2 {
		t.Fatalf("expected 2 for unknown flag, got %d", code)
	}
	if code := run([]string{"-storage", "mongo", "list"}, &out, &errOut); code != 2 {
		t.Fatalf("expected 2 for unknown storage, got %d", code)
	}
	if code := run([]string{"-storage", "memory", "dance"}, &out, &errOut); code != 2 {
		t.Fatalf("expected 2 for unknown subcommand, got %d", code)
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	dir := setupEnv(t)
	cfgDir := filepath.Join(dir, "config", config.AppName)
	if err := os.MkdirAll(cfgDir, 0o700); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "timeplan.yaml"), []byte("timeline:\n  yearsToShow: 0\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	var out, errOut bytes.Buffer
	if code := run([]string{"list"}, &out, &errOut); code != 1 {
		t.Fatalf("expected 1 for invalid config, got %d", code)
	}
}

func TestOpenLoggerInteractiveWritesFile(t *testing.T) {
	dir := setupEnv(t)
	logger, closeLog, err := openLogger(config.Config{LogLevel: "debug"}, true, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("openLogger failed: %v", err)
	}
	logger.Info().Msg("hello")
	closeLog()
	data, err := os.ReadFile(filepath.Join(dir, "data", config.AppName, config.LogFileName))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("expected log line in file, got %q", data)
	}
}
