package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, name string) map[string]string {
	t.Helper()

	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReport_Archive(t *testing.T) {
	dir := t.TempDir()

	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	stored := filepath.Join(dir, "stored.log")
	if err := os.WriteFile(stored, []byte("log line"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	r.Store("final.log", stored)
	r.StoreData("config/config.yaml", []byte("version: 1\n"))
	r.Record("input", "#ff0000")
	r.Record("output", "rgb(100.0%, 0.0%, 0.0%)")
	r.Store("missing.log", filepath.Join(dir, "does-not-exist"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["final.log"] != "log line" {
		t.Errorf("final.log = %q", files["final.log"])
	}
	if files["config/config.yaml"] != "version: 1\n" {
		t.Errorf("config = %q", files["config/config.yaml"])
	}
	transcript := files[TranscriptName]
	if !strings.Contains(transcript, "input\t#ff0000") || !strings.Contains(transcript, "output\trgb(100.0%, 0.0%, 0.0%)") {
		t.Errorf("transcript = %q", transcript)
	}
	if _, ok := files["missing.log"]; ok {
		t.Error("absent file should be skipped")
	}
	if !strings.Contains(files["MANIFEST"], "final.log") {
		t.Errorf("MANIFEST = %q", files["MANIFEST"])
	}
}

func TestReportClose_RemovesCopies(t *testing.T) {
	reportFile, err := os.CreateTemp(t.TempDir(), "test-report-*.zip")
	if err != nil {
		t.Fatalf("failed to create temp report file: %v", err)
	}

	r := &Report{
		entries: make(map[string]entry),
		file:    reportFile,
	}

	src := filepath.Join(t.TempDir(), "swatch.png")
	if err := os.WriteFile(src, []byte("image"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if err := r.StoreCopy("wheel/swatch.png", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	// same name again is versioned
	if err := r.StoreCopy("wheel/swatch.png", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	if len(r.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(r.entries))
	}

	var copies []string
	for _, e := range r.entries {
		copies = append(copies, e.actual)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Report.Close() error: %v", err)
	}

	for _, c := range copies {
		if _, err := os.Stat(filepath.Dir(c)); !os.IsNotExist(err) {
			os.RemoveAll(filepath.Dir(c))
			t.Errorf("expected temporary copy %s to be removed", c)
		}
	}
	// original must stay
	if _, err := os.Stat(src); err != nil {
		t.Errorf("original file should not be removed, but got error: %v", err)
	}

	files := readArchive(t, reportFile.Name())
	if files["wheel/swatch.png"] != "image" {
		t.Errorf("archived copy = %q", files["wheel/swatch.png"])
	}
}

func TestReport_StoreCopyDirectory(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.StoreCopy("dir", t.TempDir()); err == nil {
		t.Error("expected error for directory")
	}
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	r.Record("input", "ignored")
	r.Store("name", "path")
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name() = %q, want empty", r.Name())
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}

func TestReport_StoreDataTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("StoreData() should panic on duplicate name")
		}
	}()
	r := &Report{entries: make(map[string]entry)}
	r.StoreData("a", []byte("1"))
	r.StoreData("a", []byte("2"))
}
