package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/piechart/pkg/cache"
	"github.com/matzehuels/piechart/pkg/errors"
)

// isolate points the default config location at an empty directory and
// clears PIECHART_* variables from the test environment.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix+"_") {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Chart.Width != 750 || cfg.Chart.Height != 450 || cfg.Chart.Margin != 25 {
		t.Errorf("chart dims = %vx%v margin %v", cfg.Chart.Width, cfg.Chart.Height, cfg.Chart.Margin)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
}

func TestLoadDefaultFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "piechart", "config.toml"), `
[chart]
leader_lines = true
palette = ["#ff0000", "#00ff00"]

[server]
addr = ":9090"
read_timeout = "5s"
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Chart.LeaderLines {
		t.Error("leader_lines not applied")
	}
	if len(cfg.Chart.Palette) != 2 {
		t.Errorf("palette = %v", cfg.Chart.Palette)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Chart.Width != 750 {
		t.Errorf("unset width changed to %v", cfg.Chart.Width)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, "[chart]\nwidth = 500\nheight = 300\n")
	t.Setenv("PIECHART_CHART_WIDTH", "640")
	t.Setenv("PIECHART_CHART_PALETTE", "#111111,#222222,#333333")
	t.Setenv("PIECHART_CACHE_BACKEND", "none")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Chart.Width != 640 {
		t.Errorf("width = %v, want env value 640", cfg.Chart.Width)
	}
	if cfg.Chart.Height != 300 {
		t.Errorf("height = %v, want file value 300", cfg.Chart.Height)
	}
	if len(cfg.Chart.Palette) != 3 {
		t.Errorf("palette = %v", cfg.Chart.Palette)
	}
	if cfg.Cache.Backend != BackendNone {
		t.Errorf("backend = %q", cfg.Cache.Backend)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		missing bool
		code    errors.Code
	}{
		{name: "missing explicit file", missing: true, code: errors.ErrCodeNotFound},
		{name: "malformed toml", content: "[chart\nwidth = 1", code: errors.ErrCodeInvalidConfig},
		{name: "unknown key", content: "[chart]\nwdith = 100\n", code: errors.ErrCodeInvalidConfig},
		{name: "bad backend", content: "[cache]\nbackend = \"memcached\"\n", code: errors.ErrCodeInvalidConfig},
		{name: "mongo without uri", content: "[cache]\nbackend = \"mongo\"\n", code: errors.ErrCodeInvalidConfig},
		{name: "negative width", content: "[chart]\nwidth = -1\n", code: errors.ErrCodeInvalidConfig},
		{name: "bad env value", content: "", env: map[string]string{"PIECHART_CHART_WIDTH": "wide"}, code: errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "config.toml")
			if !tt.missing {
				writeFile(t, path, tt.content)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestChartOptions(t *testing.T) {
	c := Default().Chart
	c.Margin = 0
	c.HoleRatio = 0.5

	opts := c.Options()
	if opts.Margin == nil || *opts.Margin != 0 {
		t.Fatalf("margin = %v, want explicit zero", opts.Margin)
	}
	if opts.HoleRatio != 0.5 {
		t.Errorf("hole = %v", opts.HoleRatio)
	}

	c.Margin = 40
	if *opts.Margin != 0 {
		t.Error("options share margin storage with config")
	}
}

func TestServerConfig(t *testing.T) {
	s := Default().Server
	s.Addr = "127.0.0.1:0"
	got := s.ServerConfig()
	if got.Addr != s.Addr || got.MaxBodyBytes != s.MaxBodyBytes {
		t.Errorf("ServerConfig() = %+v", got)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		c, err := CacheConfig{Backend: BackendNone}.Open(ctx)
		if err != nil {
			t.Fatal(err)
		}
		defer c.Close()
		if _, ok := c.(cache.NullCache); !ok {
			t.Errorf("got %T, want NullCache", c)
		}
	})

	t.Run("file", func(t *testing.T) {
		dir := t.TempDir()
		c, err := CacheConfig{Backend: BackendFile, Dir: dir}.Open(ctx)
		if err != nil {
			t.Fatal(err)
		}
		defer c.Close()
		fc, ok := c.(*cache.FileCache)
		if !ok {
			t.Fatalf("got %T, want *FileCache", c)
		}
		if fc.Dir() != dir {
			t.Errorf("dir = %q, want %q", fc.Dir(), dir)
		}
	})
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	got, err := CacheConfig{}.CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join("/tmp/xdg", "piechart") {
		t.Errorf("CacheDir() = %q", got)
	}

	got, _ = CacheConfig{Dir: "/data/cache"}.CacheDir()
	if got != "/data/cache" {
		t.Errorf("explicit dir = %q", got)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/cfg", "piechart", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestKeyer(t *testing.T) {
	opts := cache.LayoutKeyOpts{Width: 750}

	plain := CacheConfig{}.Keyer().LayoutKey("abc", opts)
	scoped := CacheConfig{KeyPrefix: "staging:"}.Keyer().LayoutKey("abc", opts)

	if scoped != "staging:"+plain {
		t.Errorf("scoped key = %q, want prefix on %q", scoped, plain)
	}
}
