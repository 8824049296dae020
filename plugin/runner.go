package plugin

import (
	"context"

	"github.com/apex/log"
	"github.com/larsks/hostedit/hostfile"
	"github.com/larsks/hostedit/notify"
)

// Runner services a single module invocation. The executor is injected so
// tests can observe notify behavior without running commands.
type Runner struct {
	Executor notify.CommandExecutor
}

// Run validates the parameters, applies the edit, and runs the notify
// command when the file actually changed. A notify failure is logged but
// does not fail the invocation: the edit has already been written.
func (r *Runner) Run(ctx context.Context, params Params) (hostfile.Result, error) {
	if err := params.Validate(); err != nil {
		return hostfile.Result{}, err
	}

	editor := hostfile.NewEditor(params.Path)
	result, err := editor.Apply(params.Request())
	if err != nil {
		return hostfile.Result{}, err
	}

	if result.Changed && !params.CheckMode && params.NotifyCommand != "" {
		executor := r.Executor
		if executor == nil {
			executor = &notify.ExecCommandExecutor{}
		}
		if err := executor.Execute(ctx, params.NotifyCommand); err != nil {
			log.WithError(err).Error("notify command failed")
		}
	}

	return result, nil
}
