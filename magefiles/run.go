//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the testbed, playing the demo clip headless.
func (Run) Demo() error {
	mg.Deps(Build.Vet)
	fmt.Println("Run demo...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "engine.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
