package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/binlabel/pkg/errors"
)

// execute runs a fresh root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var logs, out bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	for _, name := range []string{"generate", "config", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestGenerateCommand(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		width, height int
	}{
		{"default", nil, 609, 203},
		{"explicit bin", []string{"--bin", "A12"}, 609, 203},
		{"rotate cw", []string{"--rotate", "cw"}, 203, 609},
		{"rotate ccw", []string{"--rotate", "CCW"}, 203, 609},
		{"no crop", []string{"--no-crop"}, 609, 203},
		{"300 dpi", []string{"--dpi", "300"}, 900, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", "label.png")
			args := append([]string{"generate", "--part", "ADS1115", "--qty", "25", "-o", path}, tt.args...)

			out, err := execute(t, args...)
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if !strings.Contains(out, path) {
				t.Errorf("output %q does not mention %s", out, path)
			}

			img, err := imaging.Open(path)
			if err != nil {
				t.Fatalf("open output: %v", err)
			}
			if b := img.Bounds(); b.Dx() != tt.width || b.Dy() != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.width, tt.height)
			}
		})
	}
}

func TestGenerateDefaultOutPath(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if _, err := execute(t, "generate", "--part", "LM358", "--qty", "100"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := os.Stat("label_LM358_100.png"); err != nil {
		t.Errorf("default output missing: %v", err)
	}
}

func TestGenerateErrors(t *testing.T) {
	dir := t.TempDir()
	badProfile := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(badProfile, []byte("dpi = 203\nwidth = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		wantCode errors.Code
	}{
		{"missing part", []string{"--qty", "1"}, ""},
		{"missing qty", []string{"--part", "X"}, ""},
		{"bad rotation", []string{"--part", "X", "--qty", "1", "--rotate", "sideways"}, errors.ErrCodeInvalidConfig},
		{"zero dpi", []string{"--part", "X", "--qty", "1", "--dpi", "0"}, errors.ErrCodeInvalidConfig},
		{"unknown profile key", []string{"--part", "X", "--qty", "1", "--config", badProfile}, errors.ErrCodeInvalidConfig},
		{"empty part", []string{"--part", "", "--qty", "1"}, errors.ErrCodeInvalidInput},
		{"unencodable part", []string{"--part", "日本", "--qty", "1"}, errors.ErrCodeBarcodeRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, tt.name+".png")
			args := append([]string{"generate", "-o", out}, tt.args...)

			_, err := execute(t, args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantCode != "" && !errors.Is(err, tt.wantCode) {
				t.Errorf("code = %q, want %q (err: %v)", errors.GetCode(err), tt.wantCode, err)
			}
			if _, statErr := os.Stat(out); statErr == nil {
				t.Error("output written despite error")
			}
		})
	}
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{"dpi = 203", `bin_rotation = "ccw"`, `print_rotation = "none"`, "[retry]"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigProfileRoundTrip(t *testing.T) {
	out, err := execute(t, "config", "--dpi", "300", "--rotate", "cw")
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	dir := t.TempDir()
	profile := filepath.Join(dir, "printer.toml")
	if err := os.WriteFile(profile, []byte(out), 0o644); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "label.png")
	if _, err := execute(t, "generate", "--config", profile, "--part", "ADS1115", "--qty", "25", "-o", path); err != nil {
		t.Fatalf("generate with profile: %v", err)
	}
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 900 {
		t.Errorf("size = %dx%d, want 300x900", b.Dx(), b.Dy())
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, "binlabel") {
		t.Error("bash completion does not mention binlabel")
	}
}
