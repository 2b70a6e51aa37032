package cli

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	want := filepath.Join("/tmp/custom-cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	want := filepath.Join(home, ".cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestResolveCacheDirPrecedence(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	c := New(io.Discard, LogInfo)

	// XDG default when nothing else is set.
	dir, err := c.resolveCacheDir()
	if err != nil {
		t.Fatalf("resolveCacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg", appName); dir != want {
		t.Errorf("resolveCacheDir() = %q, want %q", dir, want)
	}

	// Config file value wins over XDG.
	c.Config.Cache.Dir = "/tmp/from-config"
	dir, err = c.resolveCacheDir()
	if err != nil {
		t.Fatalf("resolveCacheDir() error: %v", err)
	}
	if dir != "/tmp/from-config" {
		t.Errorf("resolveCacheDir() = %q, want /tmp/from-config", dir)
	}

	// Flag wins over everything.
	c.cacheDir = "/tmp/from-flag"
	dir, err = c.resolveCacheDir()
	if err != nil {
		t.Fatalf("resolveCacheDir() error: %v", err)
	}
	if dir != "/tmp/from-flag" {
		t.Errorf("resolveCacheDir() = %q, want /tmp/from-flag", dir)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg,pdf,dot", []string{"svg", "pdf", "dot"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBaseOptionsFromConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Layout.VerticalGap = 33
	c.Config.Render.Style = "sketch"

	opts := c.baseOptions()
	if opts.VerticalGap != 33 {
		t.Errorf("VerticalGap = %v, want 33", opts.VerticalGap)
	}
	if opts.Style != "sketch" {
		t.Errorf("Style = %q, want sketch", opts.Style)
	}
}
