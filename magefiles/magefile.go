//go:build mage

// Package main contains Mage build targets for img2pdf.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "img2pdf"
	cmdPkg  = "./cmd"
)

// Default runs when mage is invoked without a target.
var Default = Build

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// BuildVips compiles the CLI with the libvips WebP decoder.
func BuildVips() error {
	return buildTagged("vips")
}

// BuildImagick compiles the CLI with the ImageMagick WebP decoder.
func BuildImagick() error {
	return buildTagged("imagick")
}

func buildTagged(tag string) error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName+"-"+tag)
	if err := sh.RunV("go", "build", "-tags", tag, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build -tags %s: %w", tag, err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Vet runs go vet on every package.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Test vets, then runs the test suite.
func Test() error {
	mg.Deps(Vet)
	return sh.RunV("go", "test", "./...")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}
