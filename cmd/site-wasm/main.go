//go:build js && wasm

// Command site-wasm is the browser entry point for the portfolio page.
package main

import "github.com/Its-donkey/luxe-portfolio/internal/ui/wasm"

func main() {
	wasm.RunApp()
}
