//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// TestMain builds boatyard from the module root once for the whole suite
func TestMain(m *testing.M) {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Printf("Failed to get working directory: %v\n", err)
		os.Exit(1)
	}
	binPath = filepath.Join(dir, "boatyard_e2e")

	build := exec.Command("go", "build", "-o", binPath, ".")
	build.Dir = ".."
	if out, err := build.CombinedOutput(); err != nil {
		fmt.Printf("Failed to build boatyard: %v\n%s", err, out)
		os.Exit(1)
	}

	code := m.Run()
	os.Remove(binPath)
	os.Exit(code)
}
