package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/moviescope-cli/internal/dataset"
)

// execCmd runs the root command with args and stdin, returning captured stdout.
func execCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	// Reset sticky flags that may persist Changed state across invocations
	if fl := sectionCmd.Flags().Lookup("range"); fl != nil {
		if sv, ok := fl.Value.(interface{ Replace([]string) error }); ok {
			_ = sv.Replace(nil)
		}
		fl.Changed = false
	}
	secRanges = nil
	if fl := rootCmd.PersistentFlags().Lookup("config"); fl != nil {
		_ = fl.Value.Set("")
		fl.Changed = false
	}
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := execCmd(t, stdin, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v\n%s", args, err, out)
	}
	return out
}

// isolate points HOME at a temp dir and writes a 30-movie fixture where every
// third movie has a zero budget.
func isolate(t *testing.T) (data, charts string) {
	t.Helper()
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	t.Cleanup(func() { os.Setenv("HOME", oldHome) })
	os.Setenv("HOME", home)

	var b strings.Builder
	b.WriteString("id,title,budget,revenue,popularity,vote_count,vote_average\n")
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, "%d,Movie %d,%d,%d,%d.5,%d,%.1f\n",
			i+1, i, (i%3)*1000000, i*2500000, i%17, 40*i+3, 4+float64(i%6)/2)
	}
	data = filepath.Join(home, "movies.csv")
	if err := os.WriteFile(data, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return data, filepath.Join(home, "charts")
}

func pngs(t *testing.T, dir string) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dir, "*", "*.png"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	return files
}

func TestCLI_SectionAnalysesWithRanges(t *testing.T) {
	data, charts := isolate(t)
	out := runCmd(t, "", "section", "analyses", "--data", data, "--charts-dir", charts, "--range", "budget=0:0")
	if !strings.Contains(out, "10 movies selected") {
		t.Fatalf("expected filtered count in output:\n%s", out)
	}
	files := pngs(t, charts)
	if len(files) != 3 {
		t.Fatalf("expected 3 charts, got %v", files)
	}
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil || !bytes.HasPrefix(b, []byte("\x89PNG")) {
			t.Fatalf("%s is not a PNG: %v", f, err)
		}
	}
}

func TestCLI_SectionModelsAndNarrative(t *testing.T) {
	data, charts := isolate(t)
	out := runCmd(t, "", "section", "4", "--data", data, "--charts-dir", charts)
	for _, want := range []string{"MSE:", "RMSE:", "R²:", "budget", "vote_count", "Saved chart to"} {
		if !strings.Contains(out, want) {
			t.Fatalf("models output missing %q:\n%s", want, out)
		}
	}
	if len(pngs(t, charts)) != 2 {
		t.Fatalf("expected 2 model charts")
	}

	out = runCmd(t, "", "section", "conclusions", "--data", data, "--charts-dir", charts)
	if !strings.Contains(out, "Main findings") {
		t.Fatalf("conclusions output:\n%s", out)
	}
	if _, err := execCmd(t, "", "section", "models", "--data", data, "--range", "budget=0:1"); err == nil {
		t.Fatalf("expected --range to be rejected outside analyses")
	}
}

func TestCLI_InteractiveDashboard(t *testing.T) {
	data, charts := isolate(t)
	// An out-of-range choice and an invalid edit are reported and skipped.
	// The second analyses pass keeps the zero-budget filter.
	stdin := strings.Join([]string{
		"9",
		"3", "budget=0:0", "revenue=oops", "",
		"3", "",
		"1",
		"q",
	}, "\n") + "\n"
	out := runCmd(t, stdin, "dashboard", "--data", data, "--charts-dir", charts)
	for _, want := range []string{"MovieScope", "Dataset preview (30 movies)", "Choose a project step:", "✗ menu number out of range", "✗ invalid range", "🌍 Scenario", "Bye."} {
		if !strings.Contains(out, want) {
			t.Fatalf("dashboard output missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "10 movies selected"); n != 2 {
		t.Fatalf("expected the zero-budget filter on both analyses passes, got %d:\n%s", n, out)
	}
	if len(pngs(t, charts)) != 6 {
		t.Fatalf("expected 6 charts across two render passes")
	}
}

func TestCLI_SummaryAndConfig(t *testing.T) {
	data, _ := isolate(t)
	out := runCmd(t, "", "summary", "--data", data)
	for _, want := range []string{"[DATASET SUMMARY]", "Rows: 30", "[HEAD]", "Movie 0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary output missing %q:\n%s", want, out)
		}
	}

	runCmd(t, "", "config", "set", "hist_bins", "12")
	out = runCmd(t, "", "config", "show")
	if !strings.Contains(out, "hist_bins: 12") {
		t.Fatalf("config show:\n%s", out)
	}
	if _, err := execCmd(t, "", "config", "set", "test_fraction", "1.5"); err == nil {
		t.Fatalf("expected invalid test_fraction to fail")
	}
}

func TestCLI_MissingDatasetIsLoadError(t *testing.T) {
	_, charts := isolate(t)
	_, err := execCmd(t, "", "section", "scenario", "--data", filepath.Join(charts, "nope.csv"))
	var le *dataset.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}

func TestCLI_BrokenConfigFallsBackToDefaults(t *testing.T) {
	data, charts := isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("seed: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := runCmd(t, "", "section", "models", "--config", path, "--data", data, "--charts-dir", charts)
	if cfg.Seed != 42 || cfg.TestFraction != 0.2 || cfg.DataPath != data {
		t.Fatalf("fallback config = %+v", cfg)
	}
	if !strings.Contains(out, "R²:") {
		t.Fatalf("models output:\n%s", out)
	}
}
