package logging

import (
	"os"
	"strings"
	"testing"
)

func TestNewDevelopmentLogger(t *testing.T) {
	logger, err := New("")
	if err != nil {
		t.Fatalf("New(\"\") = %v", err)
	}
	logger.Info("hello")
}

func TestNewFileLogger(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(dir)
	if err != nil {
		t.Fatalf("New(%q) = %v", dir, err)
	}
	// One write so lumberjack creates the file.
	logger.Info("delivery created")
	_ = logger.Sync()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var found bool
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "courier-") && strings.HasSuffix(e.Name(), ".log") {
			found = true
		}
	}
	if !found {
		t.Fatalf("no log file created in %q: %v", dir, entries)
	}
}
