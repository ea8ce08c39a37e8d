package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrPackageSectionMissing indicates that [package] is missing in momo.toml.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrBuildMainMissing indicates that [build].main is missing in momo.toml.
	ErrBuildMainMissing = errors.New("missing [build].main")
)

// Manifest is the resolved content of momo.toml.
type Manifest struct {
	Root string // directory holding momo.toml
	Name string
	// Main and Output are absolute paths.
	Main   string
	Output string
}

type manifestFile struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Build struct {
		Main   string `toml:"main"`
		Output string `toml:"output"`
	} `toml:"build"`
}

// LoadManifest parses momo.toml:
//
//	[package]
//	name = "demo"
//
//	[build]
//	main = "src/main.momo"
//	output = "out/demo.wasm"   # optional, defaults to main with .wasm
func LoadManifest(path string) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	mainRel := strings.TrimSpace(cfg.Build.Main)
	if !meta.IsDefined("build", "main") || mainRel == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrBuildMainMissing)
	}

	root := filepath.Dir(path)
	mainPath, err := resolveInside(root, mainRel, "[build].main")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if info, err := os.Stat(mainPath); err != nil {
		return nil, fmt.Errorf("%s: invalid [build].main %q: %w", path, mainRel, err)
	} else if info.IsDir() {
		return nil, fmt.Errorf("%s: invalid [build].main %q: is a directory", path, mainRel)
	}

	output := strings.TrimSuffix(mainPath, filepath.Ext(mainPath)) + ".wasm"
	if out := strings.TrimSpace(cfg.Build.Output); out != "" {
		if output, err = resolveInside(root, out, "[build].output"); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	name := strings.TrimSpace(cfg.Package.Name)
	if name == "" {
		name = filepath.Base(root)
	}
	return &Manifest{Root: root, Name: name, Main: mainPath, Output: output}, nil
}

// Discover finds and loads the manifest governing startDir.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadManifest(path)
	return m, true, err
}

// resolveInside joins a relative manifest path to root and rejects escapes.
func resolveInside(root, rel, field string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("invalid %s %q: must be relative", field, rel)
	}
	p := filepath.Join(root, filepath.Clean(filepath.FromSlash(rel)))
	if !pathWithin(root, p) {
		return "", fmt.Errorf("invalid %s %q: escapes project root", field, rel)
	}
	return p, nil
}
