// Package trigger starts the operator-configured follow-up command after a
// pager record was delivered, e.g. to switch on hall lights or a monitor.
package trigger

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnsupportedOS indicates the current OS has no known shell to run the command.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// Start launches the configured command through the platform shell:
// - Linux/macOS: `/bin/sh -c <command>`
// - Windows:     `cmd /C <command>`
// The command runs asynchronously and is never waited for by the caller;
// a hanging trigger must not stall alarm processing.
func Start(ctx context.Context, command string) error {
	var cmd *exec.Cmd

	osName := strings.ToLower(runtime.GOOS)

	switch {
	case strings.Contains(osName, "linux") || strings.Contains(osName, "darwin"):
		cmd = exec.CommandContext(ctx, "/bin/sh", "-c", command)
	case strings.Contains(osName, "windows"):
		cmd = exec.CommandContext(ctx, "cmd", "/C", command)
	default:
		return fmt.Errorf("%s: %w", runtime.GOOS, ErrUnsupportedOS)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start trigger command: %w", err)
	}

	// Reap the child in the background, the exit status is irrelevant.
	go func() {
		_ = cmd.Wait()
	}()

	return nil
}
