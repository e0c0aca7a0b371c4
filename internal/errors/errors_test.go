package errors

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, ""},
		{"plain", errors.New("habit not found"), "Error: habit not found"},
		{"wrapped", errors.New("log entry: entry already exists"), "Error: log entry: entry already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("habit %q has %d entries", "Running", 3)
	want := `Error: habit "Running" has 3 entries`
	if got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, errors.New("storage not initialized"), "run 'habitlog init' first", "  ")

	out := buf.String()
	if !strings.HasPrefix(out, "Error: storage not initialized\n") {
		t.Errorf("Report() output = %q, missing error line", out)
	}
	if !strings.Contains(out, "run 'habitlog init' first") {
		t.Errorf("Report() output = %q, missing hint", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("Report() should skip blank hints, got %q", out)
	}

	buf.Reset()
	Report(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("Report(nil) wrote %q", buf.String())
	}
}

func TestFatal(t *testing.T) {
	if os.Getenv("HABITLOG_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "HABITLOG_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Fatal() did not exit with error: %v", err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("Fatal() exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.Contains(stderr.String(), "Error: test error") {
		t.Errorf("Fatal() stderr = %q", stderr.String())
	}
}

func TestFatalNil(t *testing.T) {
	if os.Getenv("HABITLOG_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatalNil$")
	cmd.Env = append(os.Environ(), "HABITLOG_TEST_FATAL_NIL=1")
	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit non-zero: %v", err)
	}
}
