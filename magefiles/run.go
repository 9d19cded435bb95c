//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds and starts the map viewer. VIEWER_CONFIG overrides the config path.
func (Run) Viewer() error {
	mg.Deps(Build.Viewer)

	args := []string{}
	if path := os.Getenv("VIEWER_CONFIG"); path != "" {
		args = append(args, "-config", path)
	}
	fmt.Println("Run viewer...")
	if _, err := executeCmd(binaryPath, withArgs(args...), withStream()); err != nil {
		return err
	}
	return nil
}
