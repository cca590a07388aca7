package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/relayout/pkg/cache"
	"github.com/matzehuels/relayout/pkg/config"
	rerrors "github.com/matzehuels/relayout/pkg/errors"
	"github.com/matzehuels/relayout/pkg/graph"
)

const rowTOML = `
name = "row"
width = { mode = "exact", size = 100 }

[[children]]
id = "a"
intrinsic = { width = 20, height = 10 }

[[children]]
id = "b"
intrinsic = { width = 30, height = 10 }
rules = { right_of = "a" }
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testCLI(t *testing.T) *CLI {
	t.Helper()
	dir := t.TempDir()
	c := New(io.Discard, log.InfoLevel)
	c.ConfigPath = writeFile(t, dir, "config.toml", "[cache]\nbackend = \"memory\"\n")
	return c
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := testCLI(t).RootCommand()
	want := []string{"cache", "completion", "config", "deps", "preview", "render", "serve", "solve"}
	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	for _, name := range want {
		found := false
		for _, g := range got {
			if g == name {
				found = true
			}
		}
		if !found {
			t.Errorf("RootCommand() missing %q, have %v", name, got)
		}
	}
}

func TestParseBound(t *testing.T) {
	tests := []struct {
		in      string
		want    *graph.Bound
		wantErr bool
	}{
		{"", nil, false},
		{"exact:320", &graph.Bound{Mode: "exact", Size: 320}, false},
		{"at_most: 480", &graph.Bound{Mode: "at_most", Size: 480}, false},
		{"unspecified", &graph.Bound{Mode: "unspecified"}, false},
		{"exact:wide", nil, true},
		{"huge:10", nil, true},
		{"exact:-5", nil, true},
	}
	for _, tt := range tests {
		got, err := parseBound(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseBound(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !rerrors.Is(err, rerrors.ErrCodeInvalidInput) {
			t.Errorf("parseBound(%q) error code = %v, want INVALID_INPUT", tt.in, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseBound(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); got != nil {
		t.Errorf("parseFormats(\"\") = %v, want nil", got)
	}
	got := parseFormats("svg, text,,json")
	if want := []string{"svg", "text", "json"}; !reflect.DeepEqual(got, want) {
		t.Errorf("parseFormats() = %v, want %v", got, want)
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct{ name, kind, format, want string }{
		{"card", "frames", "svg", "card.svg"},
		{"card", "frames", "text", "card.txt"},
		{"card", "horizontal", "dot", "card.horizontal.dot"},
	}
	for _, tt := range tests {
		if got := outputName(tt.name, tt.kind, tt.format); got != tt.want {
			t.Errorf("outputName(%q, %q, %q) = %q, want %q", tt.name, tt.kind, tt.format, got, tt.want)
		}
	}
}

func TestNewCache_Backends(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Cache.Dir = dir

	tests := []struct {
		backend string
		noCache bool
		check   func(cache.Cache) bool
	}{
		{config.BackendFile, false, func(c cache.Cache) bool { _, ok := c.(*cache.FileCache); return ok }},
		{config.BackendMemory, false, func(c cache.Cache) bool { _, ok := c.(*cache.MemoryCache); return ok }},
		{config.BackendNone, false, func(c cache.Cache) bool { _, ok := c.(cache.NullCache); return ok }},
		{config.BackendFile, true, func(c cache.Cache) bool { _, ok := c.(cache.NullCache); return ok }},
	}
	for _, tt := range tests {
		cfg.Cache.Backend = tt.backend
		c, err := newCache(ctx, cfg, tt.noCache)
		if err != nil {
			t.Fatalf("newCache(%s) error: %v", tt.backend, err)
		}
		if !tt.check(c) {
			t.Errorf("newCache(%s, noCache=%v) = %T", tt.backend, tt.noCache, c)
		}
		c.Close()
	}
}

func TestCacheDir(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Dir = "/tmp/layouts"
	if dir, _ := cacheDir(cfg); dir != "/tmp/layouts" {
		t.Errorf("cacheDir() = %q, want configured dir", dir)
	}

	t.Setenv("XDG_CACHE_HOME", "/var/cache")
	cfg.Cache.Dir = ""
	dir, err := cacheDir(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/var/cache", "relayout"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestRunRender_WritesFiles(t *testing.T) {
	c := testCLI(t)
	dir := t.TempDir()
	doc := writeFile(t, dir, "row.toml", rowTOML)
	out := filepath.Join(dir, "out")

	opts := renderOpts{kind: "frames", formats: "svg,json", outDir: out, cols: 20, rows: 2, scale: 1}
	ctx := withLogger(context.Background(), c.Logger)
	if err := c.runRender(ctx, doc, &opts); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(out, "row.svg"))
	if err != nil {
		t.Fatalf("row.svg not written: %v", err)
	}
	if !strings.Contains(string(svg), `id="frame-b"`) {
		t.Error("row.svg should contain the frame of b")
	}
	f, err := os.Open(filepath.Join(out, "row.json"))
	if err != nil {
		t.Fatalf("row.json not written: %v", err)
	}
	defer f.Close()
	res, err := graph.ReadResult(f)
	if err != nil {
		t.Fatal(err)
	}
	if b, _ := res.Find("b"); b.Left != 20 || b.Right != 50 {
		t.Errorf("frame b = [%d, %d], want [20, 50]", b.Left, b.Right)
	}
}

func TestRunRender_InvalidFormat(t *testing.T) {
	c := testCLI(t)
	doc := writeFile(t, t.TempDir(), "row.toml", rowTOML)

	opts := renderOpts{kind: "frames", formats: "dot", outDir: t.TempDir()}
	err := c.runRender(context.Background(), doc, &opts)
	if !rerrors.Is(err, rerrors.ErrCodeInvalidFormat) {
		t.Errorf("runRender() error = %v, want INVALID_FORMAT", err)
	}
}

func TestRunSolve_Cycle(t *testing.T) {
	c := testCLI(t)
	doc := writeFile(t, t.TempDir(), "loop.toml", `
name = "loop"
[[children]]
id = "a"
rules = { right_of = "b" }
[[children]]
id = "b"
rules = { right_of = "a" }
`)
	err := c.runSolve(context.Background(), doc, &solveOpts{})
	if !rerrors.Is(err, rerrors.ErrCodeUnsatisfiable) {
		t.Errorf("runSolve() error = %v, want UNSATISFIABLE", err)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.ConfigPath = filepath.Join(t.TempDir(), "absent.toml")
	if _, err := c.loadConfig(); !rerrors.Is(err, rerrors.ErrCodeFileNotFound) {
		t.Errorf("loadConfig() error = %v, want FILE_NOT_FOUND", err)
	}
}
