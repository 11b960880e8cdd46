// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package share

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

const (
	binXdgOpen = "xdg-open"
	binOpen    = "open"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Opener shares a file by handing it to the desktop's default handler,
// which lets the user forward it from there.
type Opener struct {
	bin  string
	exec executor
}

func (o *Opener) Name() string { return o.bin }

// Available reports whether the opener binary is on PATH.
func (o *Opener) Available(context.Context) bool {
	_, err := o.exec.LookPath(o.bin)
	return err == nil
}

func (o *Opener) Share(ctx context.Context, path string) error {
	if err := o.exec.Run(ctx, o.bin, path); err != nil {
		return fmt.Errorf("running %s: %w", o.bin, err)
	}
	return nil
}

var defaultExec = &osExecutor{}

// DetectOpener returns the opener for the current platform: open on macOS,
// xdg-open elsewhere.
func DetectOpener() *Opener {
	return detectOpener(runtime.GOOS, defaultExec)
}

func detectOpener(goos string, exec executor) *Opener {
	bin := binXdgOpen
	if goos == "darwin" {
		bin = binOpen
	}
	return &Opener{bin: bin, exec: exec}
}
