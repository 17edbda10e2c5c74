//go:build !js && !wasm

// Command site-serve hosts the portfolio site locally with a contact relay and live
// reload.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
