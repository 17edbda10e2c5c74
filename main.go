//go:build !js && !wasm

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"
)

type procConfig struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

const siteDir = "site"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	build := []procConfig{
		{
			Name: "build-site-wasm",
			Args: []string{"go", "build", "-o", filepath.Join(siteDir, "main.wasm"), "./cmd/site-wasm"},
			Env:  []string{"GOOS=js", "GOARCH=wasm"},
		},
		{
			Name: "copy-wasm-exec",
			Args: []string{"cp", wasmExecPath(), filepath.Join(siteDir, "wasm_exec.js")},
		},
	}
	serve := []procConfig{
		{
			Name: "site-serve",
			Args: append([]string{"go", "run", "./cmd/site-serve", "--dir", siteDir}, os.Args[1:]...),
		},
	}

	if err := runSequential(ctx, build); err != nil {
		fmt.Fprintf(os.Stderr, "luxe-portfolio build failed: %v\n", err)
		os.Exit(1)
	}
	if err := runAll(ctx, serve); err != nil {
		fmt.Fprintf(os.Stderr, "luxe-portfolio exited with error: %v\n", err)
		os.Exit(1)
	}
}

func wasmExecPath() string {
	// Go 1.24 moved the loader from misc/wasm to lib/wasm.
	out, err := exec.Command("go", "env", "GOROOT").Output()
	if err != nil {
		return filepath.Join("lib", "wasm", "wasm_exec.js")
	}
	root := strings.TrimSpace(string(out))
	for _, rel := range []string{"lib/wasm/wasm_exec.js", "misc/wasm/wasm_exec.js"} {
		path := filepath.Join(root, rel)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(root, "lib", "wasm", "wasm_exec.js")
}

func command(ctx context.Context, cfg procConfig) *exec.Cmd {
	cmd := exec.CommandContext(ctx, cfg.Args[0], cfg.Args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if cfg.Dir != "" {
		cmd.Dir = cfg.Dir
	}
	if len(cfg.Env) > 0 {
		cmd.Env = append(append([]string{}, os.Environ()...), cfg.Env...)
	}
	return cmd
}

func runSequential(ctx context.Context, procs []procConfig) error {
	for _, cfg := range procs {
		if err := command(ctx, cfg).Run(); err != nil {
			return fmt.Errorf("%s: %w", cfg.Name, err)
		}
	}
	return nil
}

// runAll runs procs side by side. The first failure cancels the rest; a signal
// cancels all of them and counts as a clean exit.
func runAll(ctx context.Context, procs []procConfig) error {
	if len(procs) == 0 {
		return errors.New("no processes configured")
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, cfg := range procs {
		g.Go(func() error {
			if err := command(gctx, cfg).Run(); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("%s exited: %w", cfg.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}
