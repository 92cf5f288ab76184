package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yildizm/irsum/internal/formatter"
)

const testCapture = `Filetype: IR signals file
Version: 1
#
name: Power
type: parsed
protocol: NEC
address: 04 00 00 00
command: 08 00 00 00
#
name: Vol_up
type: raw
frequency: 38000
duty_cycle: 0.330000
data: 9000 4500 560 560 560 1690 560 560 560 1690
`

const parsedOnlyCapture = `Filetype: IR signals file
Version: 1
#
name: Power
type: parsed
protocol: NEC
address: 04 00 00 00
command: 08 00 00 00
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// runCLI executes the root command with a config that turns off color and
// emoji, plus any extra YAML sections
func runCLI(t *testing.T, extraConfig string, args ...string) (string, error) {
	t.Helper()

	cfgPath := writeFile(t, t.TempDir(), "irsum.yaml",
		"output:\n  color_mode: never\n  emoji: false\n"+extraConfig)

	var out bytes.Buffer
	root := NewRootCommand("dev", "none", "unknown")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestAnalyzeTextReport(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tv.ir", testCapture)

	output, err := runCLI(t, "", "analyze", path)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	for _, want := range []string{"IR Capture Analysis", "PDM", "Power", "Vol_up", "0101"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, output)
		}
	}
}

func TestAnalyzeJSONReport(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tv.ir", testCapture)

	output, err := runCLI(t, "", "analyze", "-o", "json", path)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var report formatter.JSONOutput
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("Expected JSON output, got %v:\n%s", err, output)
	}
	if report.Signal.Modulation != "PDM" {
		t.Errorf("Expected PDM, got %s", report.Signal.Modulation)
	}
	if report.Source != path {
		t.Errorf("Expected source %s, got %s", path, report.Source)
	}
	if len(report.Buttons) != 2 || report.Buttons[1].Bits != "0101" {
		t.Errorf("Unexpected buttons: %+v", report.Buttons)
	}
	// every mark is 560 so the bit1 mark bucket is empty
	if len(report.Warnings) != 1 {
		t.Errorf("Expected one empty bucket warning, got %v", report.Warnings)
	}
}

func TestAnalyzeDefaultFormatFromConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tv.ir", testCapture)

	output, err := runCLI(t, "", "analyze", path)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if strings.HasPrefix(output, "Button,") {
		t.Fatal("Expected text output by default")
	}

	cfgPath := writeFile(t, t.TempDir(), "irsum.yaml", "output:\n  default_format: csv\n")
	var out bytes.Buffer
	root := NewRootCommand("dev", "none", "unknown")
	root.SetOut(&out)
	root.SetArgs([]string{"--config", cfgPath, "analyze", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Button,Kind,Modulation") {
		t.Errorf("Expected CSV from config default_format, got:\n%s", out.String())
	}
}

func TestAnalyzeOutputFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tv.ir", testCapture)
	outputPath := filepath.Join(dir, "report.md")

	output, err := runCLI(t, "", "analyze", "-o", "markdown", "--output-file", outputPath, path)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if output != "" {
		t.Errorf("Expected nothing on stdout, got:\n%s", output)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Expected report file: %v", err)
	}
	if !strings.Contains(string(data), "# IR Capture Analysis") {
		t.Errorf("Unexpected report file content:\n%s", data)
	}
}

func TestAnalyzeFailuresMapToExitCodes(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		config string
		args   []string
		want   int
	}{
		{
			name: "missing file",
			args: []string{"analyze", filepath.Join(dir, "missing.ir")},
			want: ExitIO,
		},
		{
			name:   "file larger than max_file_size",
			config: "analysis:\n  max_file_size: 16\n",
			args:   []string{"analyze", writeFile(t, dir, "big.ir", testCapture)},
			want:   ExitIO,
		},
		{
			name: "malformed capture",
			args: []string{"analyze", writeFile(t, dir, "bad.ir", strings.Replace(testCapture, "type: raw", "type: unknown", 1))},
			want: ExitFormat,
		},
		{
			name: "header only",
			args: []string{"analyze", writeFile(t, dir, "empty.ir", "Filetype: IR signals file\nVersion: 1\n")},
			want: ExitEmptyFile,
		},
		{
			name: "parsed buttons only",
			args: []string{"analyze", writeFile(t, dir, "parsed.ir", parsedOnlyCapture)},
			want: ExitNoRawData,
		},
		{
			name: "strict bucket policy",
			args: []string{"analyze", "--bucket-policy", "strict", writeFile(t, dir, "strict.ir", testCapture)},
			want: ExitDegenerateBucket,
		},
		{
			name: "unknown bucket policy",
			args: []string{"analyze", "--bucket-policy", "lenient", writeFile(t, dir, "policy.ir", testCapture)},
			want: ExitFailure,
		},
		{
			name: "repeat factor beyond 32 bits",
			args: []string{"analyze", "--repeat-factor", "4294967306", writeFile(t, dir, "factor.ir", testCapture)},
			want: ExitFailure,
		},
		{
			name: "zero group size",
			args: []string{"analyze", "--group-size", "0", writeFile(t, dir, "group.ir", testCapture)},
			want: ExitFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.config, tt.args...)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if got := ExitCode(err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d (err: %v)", got, tt.want, err)
			}
		})
	}
}

func TestAnalyzeErrorNamesStep(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, "", "analyze", writeFile(t, dir, "parsed.ir", parsedOnlyCapture))
	if err == nil || !strings.Contains(err.Error(), "analyze signal") {
		t.Errorf("Expected analysis step in error, got %v", err)
	}

	_, err = runCLI(t, "", "analyze", writeFile(t, dir, "empty.ir", "Filetype: IR signals file\nVersion: 1\n"))
	if err == nil || !strings.Contains(err.Error(), "parse capture") {
		t.Errorf("Expected parse step in error, got %v", err)
	}
}

func TestButtonsCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tv.ir", testCapture)

	output, err := runCLI(t, "", "buttons", path)
	if err != nil {
		t.Fatalf("buttons failed: %v", err)
	}
	for _, want := range []string{"Found 2 buttons", "Power", "(parsed)", "Protocol", "NEC", "Command", "Vol_up", "(raw)", "Carrier", "38000 Hz", "4 pulses"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, output)
		}
	}

	output, err = runCLI(t, "", "buttons", "--kind", "parsed", path)
	if err != nil {
		t.Fatalf("buttons failed: %v", err)
	}
	if strings.Contains(output, "Vol_up") {
		t.Errorf("Expected raw buttons to be filtered out:\n%s", output)
	}

	output, err = runCLI(t, "", "buttons", writeFile(t, dir, "final.ir", strings.TrimSuffix(testCapture, "\n")+" 560\n"))
	if err != nil {
		t.Fatalf("buttons failed: %v", err)
	}
	if !strings.Contains(output, "Final mark") || !strings.Contains(output, "560 µs") {
		t.Errorf("Expected the trailing mark to be listed:\n%s", output)
	}

	// parsed-only files are listed even though analyze rejects them
	if _, err := runCLI(t, "", "buttons", writeFile(t, dir, "parsed.ir", parsedOnlyCapture)); err != nil {
		t.Errorf("Expected parsed-only file to list, got %v", err)
	}

	if _, err := runCLI(t, "", "buttons", "--kind", "mystery", path); err == nil {
		t.Error("Expected invalid kind to fail")
	}
}

func TestVersionCommand(t *testing.T) {
	output, err := runCLI(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(output, "irsum development (local-build)") {
		t.Errorf("Unexpected version output:\n%s", output)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "irsum.yaml")

	if _, err := runCLI(t, "", "config", "init", "--output", path); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := runCLI(t, "", "config", "init", "--output", path); err == nil {
		t.Error("Expected init to refuse overwriting without --force")
	}

	var out bytes.Buffer
	root := NewRootCommand("dev", "none", "unknown")
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "config", "validate"})
	if err := root.Execute(); err != nil {
		t.Fatalf("config validate failed: %v", err)
	}
	if !strings.Contains(out.String(), "Configuration is valid") {
		t.Errorf("Unexpected validate output:\n%s", out.String())
	}
}

func TestConfigValidateReportsBrokenConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "irsum.yaml", "analysis:\n  bucket_policy: lenient\n")

	var out bytes.Buffer
	root := NewRootCommand("dev", "none", "unknown")
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "config", "validate"})

	if err := root.Execute(); err == nil {
		t.Fatal("Expected validation to fail")
	}
	if !strings.Contains(out.String(), "invalid bucket_policy") {
		t.Errorf("Expected the validation error to be printed:\n%s", out.String())
	}
}
