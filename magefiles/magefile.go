//go:build mage

// Package main contains Mage build targets for citation-service developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binDir = "bin"

// binaries maps output names to their main packages.
var binaries = map[string]string{
	"citation-server": "./cmd/server",
	"cite":            "./cmd/cite",
}

// fuzzTargets lists the fuzz functions run by Fuzz, keyed by package.
var fuzzTargets = []struct {
	pkg  string
	name string
}{
	{"./internal/domain", "FuzzClassify"},
	{"./internal/domain", "FuzzCitationString"},
	{"./internal/server/http", "FuzzCreateCitation"},
}

// Default is run when mage is invoked without a target.
var Default = Build

// Build compiles the server and CLI binaries into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	for name, pkg := range binaries {
		out := filepath.Join(binDir, name)
		if err := sh.RunV("go", "build", "-o", out, pkg); err != nil {
			return fmt.Errorf("go build %s: %w", pkg, err)
		}
		fmt.Printf("Built %s\n", out)
	}
	return nil
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Test runs the unit tests with the race detector.
func Test() error {
	mg.Deps(Vet)
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

// Fuzz runs each fuzz target for a short, fixed duration.
func Fuzz() error {
	for _, ft := range fuzzTargets {
		if err := sh.RunV("go", "test", ft.pkg, "-run=^$", "-fuzz=^"+ft.name+"$", "-fuzztime=30s"); err != nil {
			return fmt.Errorf("fuzzing %s: %w", ft.name, err)
		}
	}
	return nil
}

// Serve builds and starts the HTTP server with the local environment.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, "citation-server"))
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}
