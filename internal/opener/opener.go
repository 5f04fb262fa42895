package opener

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Opener hands a file to the operating system's default handler.
type Opener interface {
	// Open launches the default viewer for the file at path. A non-zero exit
	// or I/O error is returned with the command's diagnostic output attached.
	Open(ctx context.Context, path string) error
}

// New returns the Opener for the current platform.
func New() Opener {
	return osOpener{}
}

type osOpener struct{}

// newOpenCmd is swapped out in tests.
var newOpenCmd = defaultOpenCmd

func defaultOpenCmd(ctx context.Context, path string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.CommandContext(ctx, "open", path)
	case "windows":
		// The empty string is the window title argument start expects.
		return exec.CommandContext(ctx, "cmd", "/c", "start", "", path)
	default:
		return exec.CommandContext(ctx, "xdg-open", path)
	}
}

func (osOpener) Open(ctx context.Context, path string) error {
	cmd := newOpenCmd(ctx, path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("open %s: %w: %s", filepath.Base(path), err, msg)
		}
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	return nil
}
