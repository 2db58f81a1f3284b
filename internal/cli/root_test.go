package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TheJP/factorio-blueprint/pkg/blueprint"
	"github.com/TheJP/factorio-blueprint/pkg/errors"
	"github.com/TheJP/factorio-blueprint/pkg/fixtures"
)

// testEnv points the config and cache directories into a temporary
// directory and writes a config file keeping the library there too.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	cfgDir := filepath.Join(dir, "config", appName)
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := fmt.Sprintf("library_path = %q\n", filepath.Join(dir, "library.db"))
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), err
}

func mustExecute(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := execute(t, stdin, args...)
	if err != nil {
		t.Fatalf("fbp %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestDecodeCommand(t *testing.T) {
	testEnv(t)

	out := mustExecute(t, "", "decode", fixtures.LoaderCell)
	want, err := blueprint.DecodeToPrettyJSON(fixtures.LoaderCell)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != want {
		t.Errorf("decode output =\n%s\nwant\n%s", out, want)
	}

	stdin := mustExecute(t, "\n"+fixtures.LoaderCell+"\n", "decode", "-")
	if stdin != out {
		t.Error("decode from stdin differs from decode of the argument")
	}
}

func TestDecodeCommandModel(t *testing.T) {
	testEnv(t)

	out := mustExecute(t, "", "decode", "--model", fixtures.Clock)
	if !strings.Contains(out, `"is_on": false`) {
		t.Errorf("decode --model lost unmodeled keys:\n%s", out)
	}
}

func TestDecodeCommandErrors(t *testing.T) {
	testEnv(t)

	tests := []struct {
		arg  string
		want errors.Code
	}{
		{"1abc", errors.ErrCodeInvalidVersion},
		{"0%%%", errors.ErrCodeBase64Decode},
		{"", errors.ErrCodeInvalidVersion},
	}
	for _, tt := range tests {
		_, err := execute(t, "", "decode", tt.arg)
		if !errors.Is(err, tt.want) {
			t.Errorf("decode %q error = %v, want %s", tt.arg, err, tt.want)
		}
	}
}

func TestReencodeCommand(t *testing.T) {
	testEnv(t)

	out := mustExecute(t, "", "reencode", fixtures.MemoryCell)
	bp, err := blueprint.Decode(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("reencoded string does not decode: %v", err)
	}
	if bp.Len() != 5 {
		t.Errorf("Len() = %d, want 5", bp.Len())
	}
}

func TestInspectCommand(t *testing.T) {
	testEnv(t)

	out := mustExecute(t, "", "inspect", fixtures.LoaderCell)
	for _, want := range []string{"constant-combinator", "decider-combinator", "2 entities", "1 wires"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCommandDOT(t *testing.T) {
	testEnv(t)

	out := mustExecute(t, "", "render", "--format", "dot", fixtures.LoaderCell)
	if !strings.HasPrefix(out, "graph G {") {
		t.Errorf("render output is not DOT: %.40q", out)
	}

	path := filepath.Join(t.TempDir(), "clock.dot")
	mustExecute(t, "", "render", "-o", path, fixtures.Clock)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "graph G {") {
		t.Errorf("format from extension: file is not DOT: %.40q", data)
	}
}

func TestGenerateMemoryCommand(t *testing.T) {
	dir := testEnv(t)

	out := mustExecute(t, "", "generate", "memory", "--width", "2", "--height", "3")
	bp, err := blueprint.Decode(strings.TrimSpace(out))
	if err != nil {
		t.Fatal(err)
	}
	if bp.Len() != 30 {
		t.Errorf("Len() = %d, want 30", bp.Len())
	}

	entries, _ := filepath.Glob(filepath.Join(dir, "cache", appName, "*", "*.json"))
	if len(entries) != 1 {
		t.Errorf("cache entries = %d, want 1", len(entries))
	}

	again := mustExecute(t, "", "generate", "memory", "--width", "2", "--height", "3")
	if again != out {
		t.Error("cached result differs from generated result")
	}
}

func TestGenerateMemoryParams(t *testing.T) {
	testEnv(t)
	params := writeFile(t, "memory.toml", "width = 3\nheight = 3\n")

	out := mustExecute(t, "", "generate", "memory", "--no-cache", "--params", params, "--height", "1")
	bp, err := blueprint.Decode(strings.TrimSpace(out))
	if err != nil {
		t.Fatal(err)
	}
	if bp.Len() != 15 {
		t.Errorf("Len() = %d, want 15 (3 × 1 cells)", bp.Len())
	}
}

func TestGenerateMemoryInvalid(t *testing.T) {
	testEnv(t)

	_, err := execute(t, "", "generate", "memory", "--no-cache", "--width", "0")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestGenerateLoaderCommand(t *testing.T) {
	testEnv(t)
	input := writeFile(t, "data.bin", "hello")

	out := mustExecute(t, "", "generate", "loader", "--no-cache", "--input", input)
	bp, err := blueprint.Decode(strings.TrimSpace(out))
	if err != nil {
		t.Fatal(err)
	}
	// Clock, two words of two entities each, one pole.
	if bp.Len() != 7 {
		t.Errorf("Len() = %d, want 7", bp.Len())
	}

	stdin := mustExecute(t, "hello", "generate", "loader", "--no-cache", "--input", "-")
	if stdin != out {
		t.Error("loader from stdin differs from loader of the file")
	}

	if _, err := execute(t, "", "generate", "loader"); err == nil {
		t.Error("generate loader without --input should fail")
	}
}

func TestLibraryCommands(t *testing.T) {
	testEnv(t)

	mustExecute(t, "", "library", "save", "clock", fixtures.Clock)
	mustExecute(t, fixtures.LoaderCell, "library", "save", "loader", "-")

	if _, err := execute(t, "", "library", "save", "clock", fixtures.Clock); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("duplicate save error = %v, want INVALID_INPUT", err)
	}

	list := mustExecute(t, "", "library", "list")
	if i, j := strings.Index(list, "clock"), strings.Index(list, "loader"); i < 0 || j < i {
		t.Errorf("library list not sorted by name:\n%s", list)
	}

	if got := strings.TrimSpace(mustExecute(t, "", "library", "show", "loader")); got != fixtures.LoaderCell {
		t.Errorf("library show = %q, want the saved string", got)
	}

	_, err := execute(t, "", "library", "rm", "loader")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("rm by name error = %v, want NOT_FOUND", err)
	}
}

func TestCachePathCommand(t *testing.T) {
	dir := testEnv(t)

	out := mustExecute(t, "", "cache", "path")
	if want := filepath.Join(dir, "cache", appName); strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := testEnv(t)
	status := captureStatus(t)

	mustExecute(t, "", "cache", "clear")
	if !strings.Contains(status.String(), "Cache is empty") {
		t.Errorf("status = %q, want empty cache notice", status.String())
	}
	mustExecute(t, "", "generate", "memory")
	status.Reset()
	mustExecute(t, "", "cache", "clear")
	if !strings.Contains(status.String(), "Cleared 1 cached entries") {
		t.Errorf("status = %q, want one cleared entry", status.String())
	}

	entries, _ := filepath.Glob(filepath.Join(dir, "cache", appName, "*", "*.json"))
	if len(entries) != 0 {
		t.Errorf("cache entries after clear = %d, want 0", len(entries))
	}
}

func TestConfigFlag(t *testing.T) {
	testEnv(t)

	missing := filepath.Join(t.TempDir(), "missing.toml")
	if _, err := execute(t, "", "--config", missing, "cache", "path"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("missing --config error = %v, want INVALID_CONFIG", err)
	}

	cfg := writeFile(t, "fbp.toml", `cache_dir = "/srv/cache"`)
	if out := mustExecute(t, "", "--config", cfg, "cache", "path"); strings.TrimSpace(out) != "/srv/cache" {
		t.Errorf("cache path = %q, want /srv/cache", strings.TrimSpace(out))
	}
}

func TestCompletionCommand(t *testing.T) {
	testEnv(t)

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out := mustExecute(t, "", "completion", shell)
		if !strings.Contains(out, appName) {
			t.Errorf("%s completion does not mention %s", shell, appName)
		}
	}
	if _, err := execute(t, "", "completion", "tcsh"); err == nil {
		t.Error("completion for an unknown shell should fail")
	}
}
