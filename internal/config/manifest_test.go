package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"jaotc/internal/config"
)

func TestFindManifestWalksUpToParent(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "jaotc.toml"), []byte(`[target]
triple = "x86_64-unknown-linux"
`), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := config.FindManifest(nested)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, "jaotc.toml")
	if got != want {
		t.Fatalf("FindManifest = %q; want %q", got, want)
	}
}

func TestFindManifestNotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := config.FindManifest(dir)
	if err != config.ErrManifestNotFound {
		t.Fatalf("err = %v; want ErrManifestNotFound", err)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jaotc.toml")
	if err := os.WriteFile(path, []byte(`[target]
triple = "arm-unknown-linux"
`), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Target.Triple != "arm-unknown-linux" {
		t.Errorf("Target.Triple = %q", m.Target.Triple)
	}
	if m.Output.Mode != "both" {
		t.Errorf("Output.Mode = %q; want default %q", m.Output.Mode, "both")
	}
	if m.Output.Dir != "build" {
		t.Errorf("Output.Dir = %q; want default %q", m.Output.Dir, "build")
	}
}
