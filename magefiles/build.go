//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

const binaryPath = "bin/navview"

type Build mg.Namespace

// Builds the map viewer into bin/navview.
func (Build) Viewer() error {
	if _, err := executeCmd("go", withArgs("build", "-o", binaryPath, "."), withEnv(map[string]string{"CGO_ENABLED": "1"}), withStream()); err != nil {
		return err
	}
	return nil
}
