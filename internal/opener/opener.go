// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package opener opens files and folders with the desktop's default
// application.
package opener

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Opener hands paths to the platform's default application.
type Opener interface {
	// Name returns the command used to open paths.
	Name() string

	// Open opens a file with its associated application.
	Open(path string) error

	// OpenFolder opens the directory containing path, or path itself when it
	// is a directory.
	OpenFolder(path string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Start(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Start launches the command without waiting for the viewer to exit.
func (o *osExecutor) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait() //nolint:errcheck
	return nil
}

// command opens paths with one launcher binary. Launchers differ only in
// binary name and leading arguments.
type command struct {
	bin  string
	args []string
	exec executor
}

func (c *command) Name() string { return c.bin }

func (c *command) Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("opening %s: %w", abs, err)
	}
	args := append(append([]string{}, c.args...), abs)
	if err := c.exec.Start(c.bin, args...); err != nil {
		return fmt.Errorf("running %s %s: %w", c.bin, abs, err)
	}
	return nil
}

func (c *command) OpenFolder(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("opening folder of %s: %w", abs, err)
	}
	if !info.IsDir() {
		abs = filepath.Dir(abs)
	}
	return c.Open(abs)
}

// candidates lists the launchers to try for goos, in order.
func candidates(goos string, exec executor) []*command {
	switch goos {
	case "darwin":
		return []*command{{bin: "open", exec: exec}}
	case "windows":
		return []*command{{bin: "explorer", exec: exec}}
	default:
		return []*command{
			{bin: "xdg-open", exec: exec},
			{bin: "gio", args: []string{"open"}, exec: exec},
		}
	}
}

var defaultExec = &osExecutor{}

// Detect returns the first launcher available on this system.
func Detect() (Opener, error) {
	return detect(runtime.GOOS, defaultExec)
}

func detect(goos string, exec executor) (Opener, error) {
	var tried []string
	for _, c := range candidates(goos, exec) {
		if _, err := exec.LookPath(c.bin); err == nil {
			return c, nil
		}
		tried = append(tried, c.bin)
	}
	return nil, fmt.Errorf("no file opener available on %s: tried %v", goos, tried)
}
