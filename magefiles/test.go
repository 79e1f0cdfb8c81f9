//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// TestRace runs all tests with the race detector.
func TestRace() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Roundtrip builds hydrocard and runs "hydrocard roundtrip" over every
// network and dataset file under internal/*/testdata. Dataset files are
// checked against the mask in the same directory when there is one.
func Roundtrip() error {
	mg.Deps(Build)
	bin := filepath.Join(binaryDir, binaryName)

	dirs, err := filepath.Glob(filepath.Join("internal", "*", "testdata"))
	if err != nil {
		return err
	}
	sort.Strings(dirs)
	for _, dir := range dirs {
		networks, _ := filepath.Glob(filepath.Join(dir, "*.spn"))
		datasets, _ := filepath.Glob(filepath.Join(dir, "*.dat"))
		masks, _ := filepath.Glob(filepath.Join(dir, "*.msk"))

		if len(networks) > 0 {
			args := append([]string{"roundtrip"}, canonical(networks)...)
			if len(args) > 1 {
				if err := runIsolated(bin, args...); err != nil {
					return fmt.Errorf("%s: %w", dir, err)
				}
			}
		}
		if len(datasets) > 0 && len(masks) > 0 {
			args := append([]string{"--mask", masks[0], "roundtrip"}, datasets...)
			if err := runIsolated(bin, args...); err != nil {
				return fmt.Errorf("%s: %w", dir, err)
			}
		}
	}
	return nil
}

// canonical drops fixtures that exist to exercise non-canonical input.
func canonical(files []string) []string {
	var out []string
	for _, f := range files {
		if filepath.Base(f) != "loose.spn" {
			out = append(out, f)
		}
	}
	return out
}

// runIsolated runs bin with throwaway config and data directories.
func runIsolated(bin string, args ...string) error {
	dir, err := os.MkdirTemp("", "hydrocard-mage-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)
	full := append([]string{
		"--config-dir", filepath.Join(dir, "config"),
		"--data-dir", filepath.Join(dir, "data"),
	}, args...)
	return sh.RunV(bin, full...)
}
