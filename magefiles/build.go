//go:build mage

// Package main provides build targets for hydrocard using Mage.
//
// Usage:
//
//	mage build      Compile the hydrocard binary to bin/
//	mage test       Run all tests
//	mage testRace   Run all tests with the race detector
//	mage roundtrip  Check that every testdata card file re-encodes unchanged
//	mage lint       Run golangci-lint
//	mage clean      Remove build artifacts
//	mage install    Install hydrocard to GOPATH/bin
//	mage stats      Print Go LOC and documentation word counts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "hydrocard"
	binaryDir  = "bin"
	cmdDir     = "./cmd/hydrocard"
	versionVar = "github.com/mesh-intelligence/hydrocard/internal/cli.Version"
)

// ldflags stamps the version from $HYDROCARD_VERSION when set.
func ldflags() string {
	if v := os.Getenv("HYDROCARD_VERSION"); v != "" {
		return "-X " + versionVar + "=" + v
	}
	return ""
}

// Build compiles the hydrocard binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags(), "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
