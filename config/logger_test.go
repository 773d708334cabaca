package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggingPrepare_ConsoleOnly(t *testing.T) {
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "none"},
	}
	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Info("goes nowhere")
}

func TestLoggingPrepare_File(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "test.log")

	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "normal", Destination: dest, Mode: "overwrite"},
	}
	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Debug("filtered out")
	log.Info("kept")
	_ = log.Sync()

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "kept") || strings.Contains(string(data), "filtered out") {
		t.Errorf("log content = %q", data)
	}
}

func TestLoggingPrepare_ReportForcesDebug(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "test.log")

	rconf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	rpt, err := rconf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	defer rpt.Close()

	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "none", Destination: dest},
	}
	log, err := conf.Prepare(rpt)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Debug("debug entry")
	_ = log.Sync()

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "debug entry") {
		t.Errorf("log content = %q", data)
	}
	if _, ok := rpt.entries["final.log"]; !ok {
		t.Error("log file is not stored in report")
	}
}
