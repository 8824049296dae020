// Package notify runs a user-supplied command after the hosts file has
// been modified, for example to reload a local DNS cache.
package notify

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/apex/log"
	"github.com/google/shlex"
)

// CommandExecutor executes update notification commands.
type CommandExecutor interface {
	Execute(ctx context.Context, command string) error
}

// ExecCommandExecutor runs commands directly, without a shell. The
// command string is split into arguments with shlex rules, so quoting
// works but interpolation does not.
type ExecCommandExecutor struct{}

// Execute runs the command and waits for it to finish. An empty command
// is a no-op.
func (e *ExecCommandExecutor) Execute(ctx context.Context, command string) error {
	if command == "" {
		return nil
	}

	args, err := shlex.Split(command)
	if err != nil {
		return fmt.Errorf("failed to parse command: %w", err)
	}
	if len(args) == 0 {
		return nil
	}

	log.Infof("exec: %s", command)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if len(output) > 0 {
			log.Errorf("command output: %s", string(output))
		}
		return fmt.Errorf("command failed: %w", err)
	}

	if len(output) > 0 {
		log.Debugf("command output: %s", string(output))
	}
	return nil
}
